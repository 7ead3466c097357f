package table

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/exlskills/storyboardutil/extfmt"
	"github.com/extrame/xls"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const utf8BOM = "\xEF\xBB\xBF"

// SupportedExtensions are the upload extensions ReadRows accepts.
var SupportedExtensions = []string{".csv", ".tsv", ".xlsx", ".xls"}

// IsSupported reports whether name carries a readable table extension.
func IsSupported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range SupportedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ReadRows decodes the first sheet of a table file into rows. The extension is checked before
// any content is read.
func ReadRows(name string, data []byte) (rows []Row, err error) {
	ext := strings.ToLower(filepath.Ext(name))
	if !IsSupported(name) {
		return nil, errors.WithStack(&extfmt.UnsupportedExtensionError{Ext: ext})
	}
	defer func() {
		if r := recover(); r != nil {
			rows = nil
			err = errors.WithStack(&extfmt.ImportError{Name: name, Cause: fmt.Errorf("%v", r)})
		}
	}()
	var cells [][]string
	switch ext {
	case ".csv":
		cells, err = readDelimited(data, ',')
	case ".tsv":
		cells, err = readDelimited(data, '\t')
	case ".xlsx":
		cells, err = readXLSX(data)
	case ".xls":
		cells, err = readXLS(data)
	}
	if err != nil {
		return nil, errors.WithStack(&extfmt.ImportError{Name: name, Cause: err})
	}
	Log.Debugf("Read %d rows from %s", len(cells), name)
	return toRows(cells), nil
}

func toRows(cells [][]string) []Row {
	rows := make([]Row, 0, len(cells))
	for _, rec := range cells {
		r := Row{}
		if len(rec) > 0 {
			r.Title = rec[0]
		}
		if len(rec) > 1 {
			r.Body = rec[1]
		}
		if len(rec) > 2 {
			r.Narration = rec[2]
		}
		rows = append(rows, r)
	}
	return rows
}

func readDelimited(data []byte, comma rune) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte(utf8BOM))
	rdr := csv.NewReader(bytes.NewReader(data))
	rdr.Comma = comma
	rdr.FieldsPerRecord = -1
	rdr.LazyQuotes = true
	var out [][]string
	for {
		rec, err := rdr.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}

func readXLS(data []byte) ([][]string, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, errors.New("workbook has no sheets")
	}
	var out [][]string
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			continue
		}
		rec := make([]string, 3)
		for c := 0; c < 3; c++ {
			rec[c] = row.Col(c)
		}
		out = append(out, rec)
	}
	return out, nil
}
