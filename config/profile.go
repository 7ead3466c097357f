package config

import (
	"io/ioutil"

	"github.com/exlskills/storyboardutil/ir"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Profile is a saved deck look, loaded from a YAML file by the CLI.
type Profile struct {
	ir.Theme       `yaml:",inline"`
	MaxTextLines   int `yaml:"max_text_lines"`
	MaxBulletLines int `yaml:"max_bullet_lines"`
}

func LoadProfile(path string) (*Profile, error) {
	contents, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read theme profile")
	}
	return ParseProfile(contents)
}

func ParseProfile(contents []byte) (*Profile, error) {
	p := &Profile{}
	if err := yaml.UnmarshalStrict(contents, p); err != nil {
		return nil, errors.Wrap(err, "invalid theme profile")
	}
	if p.MaxTextLines < 0 || p.MaxBulletLines < 0 {
		return nil, errors.New("invalid theme profile: line caps must not be negative")
	}
	return p, nil
}
