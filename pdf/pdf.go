package pdf

import (
	"bytes"
	"context"
	"io"

	"github.com/exlskills/storyboardutil/assets"
	"github.com/exlskills/storyboardutil/config"
	"github.com/exlskills/storyboardutil/extfmt"
	"github.com/exlskills/storyboardutil/ir"
	"github.com/pkg/errors"
)

var Log = config.Cfg().GetLogger()

func NewPDFExtFmt() *PDF {
	return &PDF{}
}

// PDF exports a printable handout of the storyboard.
type PDF struct {
}

func (o *PDF) Import(from extfmt.Source) (toBlocks []ir.Block, err error) {
	return nil, errors.WithStack(extfmt.ErrImportUnsupported)
}

func (o *PDF) Export(fromBlocks []ir.Block, opts extfmt.Options, to io.Writer) (err error) {
	store := assets.NewStore()
	defer store.Cleanup()
	var buf bytes.Buffer
	if err = NewHandout(opts, store).Write(context.Background(), fromBlocks, &buf); err != nil {
		return err
	}
	_, err = to.Write(buf.Bytes())
	return errors.Wrap(err, "pdf: write failed")
}

func (o *PDF) FileExtension() string {
	return "pdf"
}

func (o *PDF) MIMEType() string {
	return "application/pdf"
}
