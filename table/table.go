package table

import (
	"io"

	"github.com/exlskills/storyboardutil/config"
	"github.com/exlskills/storyboardutil/extfmt"
	"github.com/exlskills/storyboardutil/ir"
)

var Log = config.Cfg().GetLogger()

func NewTableFormat() *Table {
	return &Table{}
}

// Table imports title/body/narration spreadsheets and exports the quiz table.
type Table struct {
}

func (t *Table) Import(from extfmt.Source) (toBlocks []ir.Block, err error) {
	rows, err := ReadRows(from.Name, from.Data)
	if err != nil {
		return nil, err
	}
	return ImportRows(rows), nil
}

func (t *Table) Export(fromBlocks []ir.Block, opts extfmt.Options, to io.Writer) (err error) {
	return ExportQuizCSV(fromBlocks, to)
}

func (t *Table) FileExtension() string {
	return "csv"
}

func (t *Table) MIMEType() string {
	return "text/csv"
}
