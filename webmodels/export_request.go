package webmodels

import (
	"strconv"
	"strings"

	"github.com/exlskills/storyboardutil/extfmt"
	"github.com/exlskills/storyboardutil/ir"
	"github.com/exlskills/storyboardutil/service"
	"github.com/pkg/errors"
)

// ExportRequest is the export form: pasted script or an uploaded table, plus output settings.
type ExportRequest struct {
	Script         string `json:"script"`
	Format         string `json:"format"`
	FontName       string `json:"font_name"`
	FontColor      string `json:"font_color"`
	BgColor        string `json:"bg_color"`
	Filename       string `json:"filename"`
	MaxTextLines   string `json:"max_text_lines"`
	MaxBulletLines string `json:"max_bullet_lines"`

	Upload *extfmt.Source `json:"-"`

	maxText, maxBullets int
}

func (er *ExportRequest) Parameters() error {
	format, err := service.NormalizeFormat(er.Format)
	if err != nil {
		return err
	}
	er.Format = format
	er.FontName = strings.TrimSpace(er.FontName)
	er.FontColor = strings.TrimSpace(er.FontColor)
	er.BgColor = strings.TrimSpace(er.BgColor)
	if er.maxText, err = optionalCap("max_text_lines", er.MaxTextLines); err != nil {
		return err
	}
	if er.maxBullets, err = optionalCap("max_bullet_lines", er.MaxBulletLines); err != nil {
		return err
	}
	return nil
}

func optionalCap(name, v string) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 || n > 50 {
		return 0, errors.Errorf("%s must be a number between 1 and 50", name)
	}
	return n, nil
}

// ServiceRequest converts the validated form into a service request.
func (er *ExportRequest) ServiceRequest() service.Request {
	return service.Request{
		Script:         er.Script,
		Upload:         er.Upload,
		Format:         er.Format,
		Theme:          ir.Theme{FontName: er.FontName, FontColor: er.FontColor, BgColor: er.BgColor},
		Filename:       er.Filename,
		MaxTextLines:   er.maxText,
		MaxBulletLines: er.maxBullets,
	}
}
