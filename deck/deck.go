package deck

import (
	"context"
	"io"

	"github.com/exlskills/storyboardutil/extfmt"
	"github.com/exlskills/storyboardutil/ir"
	"github.com/exlskills/storyboardutil/pptx"
	"github.com/pkg/errors"
)

func NewDeckFormat() *Deck {
	return &Deck{}
}

// Deck exports the storyboard presentation. It cannot import.
type Deck struct {
}

func (d *Deck) Import(from extfmt.Source) (toBlocks []ir.Block, err error) {
	return nil, errors.WithStack(extfmt.ErrImportUnsupported)
}

func (d *Deck) Export(fromBlocks []ir.Block, opts extfmt.Options, to io.Writer) (err error) {
	data, err := Render(context.Background(), fromBlocks, opts)
	if err != nil {
		return err
	}
	_, err = to.Write(data)
	return errors.Wrap(err, "unable to write deck")
}

func (d *Deck) FileExtension() string {
	return "pptx"
}

func (d *Deck) MIMEType() string {
	return pptx.MediaType
}
