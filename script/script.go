package script

import (
	"io"

	"github.com/exlskills/storyboardutil/config"
	"github.com/exlskills/storyboardutil/extfmt"
	"github.com/exlskills/storyboardutil/ir"
	"github.com/pkg/errors"
)

var Log = config.Cfg().GetLogger()

func NewScriptFormat() *Script {
	return &Script{}
}

// Script is the human-authored storyboard markup.
type Script struct {
}

func (s *Script) Import(from extfmt.Source) (toBlocks []ir.Block, err error) {
	return Parse(string(from.Data)), nil
}

func (s *Script) Export(fromBlocks []ir.Block, opts extfmt.Options, to io.Writer) (err error) {
	_, err = io.WriteString(to, Write(fromBlocks))
	return errors.Wrap(err, "script: write failed")
}

func (s *Script) FileExtension() string {
	return "txt"
}

func (s *Script) MIMEType() string {
	return "text/plain; charset=utf-8"
}
