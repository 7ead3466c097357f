package rise

import (
	"io"
	"strings"

	"github.com/exlskills/storyboardutil/config"
	"github.com/exlskills/storyboardutil/extfmt"
	"github.com/exlskills/storyboardutil/ir"
	"github.com/pkg/errors"
)

var Log = config.Cfg().GetLogger()

func NewRiseFormat() *Rise {
	return &Rise{}
}

// Rise exports lesson markdown for pasting into a Rise course.
type Rise struct {
}

func (r *Rise) Import(from extfmt.Source) (toBlocks []ir.Block, err error) {
	return nil, errors.WithStack(extfmt.ErrImportUnsupported)
}

func (r *Rise) Export(fromBlocks []ir.Block, opts extfmt.Options, to io.Writer) (err error) {
	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = "Course"
	}
	md := Lesson(title, fromBlocks)
	Log.Debugf("Writing %d bytes of lesson markdown", len(md))
	_, err = io.WriteString(to, md)
	return errors.Wrap(err, "rise: write failed")
}

func (r *Rise) FileExtension() string {
	return "md"
}

func (r *Rise) MIMEType() string {
	return "text/markdown; charset=utf-8"
}
