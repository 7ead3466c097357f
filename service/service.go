// Package service is the export pipeline shared by the HTTP server and the CLI: import the
// request's script or table upload, then produce a deck, a quiz table or a zip of both.
package service

import (
	"archive/zip"
	"bytes"
	"context"
	"regexp"
	"strings"

	"github.com/exlskills/storyboardutil/config"
	"github.com/exlskills/storyboardutil/deck"
	"github.com/exlskills/storyboardutil/extfmt"
	"github.com/exlskills/storyboardutil/ir"
	"github.com/exlskills/storyboardutil/pptx"
	"github.com/exlskills/storyboardutil/script"
	"github.com/exlskills/storyboardutil/table"
	"github.com/pkg/errors"
)

var Log = config.Cfg().GetLogger()

const (
	FormatPPTX = "pptx"
	FormatCSV  = "csv"
	FormatZIP  = "zip"

	DefaultFilename = "export"
)

// Formats are the export formats a request may ask for.
var Formats = []string{FormatPPTX, FormatCSV, FormatZIP}

var unsafeFilenameRe = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

type Request struct {
	// Script is storyboard markup. It is ignored when Upload is set.
	Script string
	// Upload is a .csv, .tsv, .xlsx or .xls table.
	Upload   *extfmt.Source
	Format   string
	Theme    ir.Theme
	Filename string

	MaxTextLines   int
	MaxBulletLines int
}

type Result struct {
	Filename string
	MIMEType string
	Data     []byte
	Slides   int
	Quizzes  int
}

// SanitizeFilename replaces every run of characters outside [A-Za-z0-9._-] with a dash.
func SanitizeFilename(name string) string {
	name = unsafeFilenameRe.ReplaceAllString(strings.TrimSpace(name), "-")
	if name == "" {
		return DefaultFilename
	}
	return name
}

// NormalizeFormat lowercases format, defaulting to pptx, and rejects anything outside Formats.
func NormalizeFormat(format string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	if f == "" {
		return FormatPPTX, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", errors.Wrapf(extfmt.ErrUnsupportedFormat, "unknown format %q (expected pptx, csv or zip)", format)
}

// IsClientError reports whether err was caused by the request rather than by the service.
func IsClientError(err error) bool {
	return err != nil && extfmt.IsInputError(err)
}

// Blocks imports the request input.
func Blocks(req Request) ([]ir.Block, error) {
	if req.Upload != nil {
		return table.NewTableFormat().Import(*req.Upload)
	}
	return script.Parse(req.Script), nil
}

func Export(ctx context.Context, req Request) (*Result, error) {
	format, err := NormalizeFormat(req.Format)
	if err != nil {
		return nil, err
	}
	blocks, err := Blocks(req)
	if err != nil {
		return nil, err
	}
	name := SanitizeFilename(req.Filename)
	opts := extfmt.Options{
		Title:          name,
		Theme:          req.Theme,
		MaxTextLines:   req.MaxTextLines,
		MaxBulletLines: req.MaxBulletLines,
	}
	res := &Result{Filename: name + "." + format}
	res.Slides, res.Quizzes = ir.CountBlocks(blocks)

	switch format {
	case FormatPPTX:
		res.MIMEType = pptx.MediaType
		res.Data, err = deck.Render(ctx, blocks, opts)
	case FormatCSV:
		res.MIMEType = "text/csv"
		res.Data, err = quizCSV(blocks)
	case FormatZIP:
		res.MIMEType = "application/zip"
		res.Data, err = Bundle(ctx, name, blocks, opts)
	}
	if err != nil {
		return nil, err
	}
	Log.Debugf("Exported %s (%d slides, %d quizzes, %d bytes)", res.Filename, res.Slides, res.Quizzes, len(res.Data))
	return res, nil
}

func quizCSV(blocks []ir.Block) ([]byte, error) {
	var buf bytes.Buffer
	if err := table.ExportQuizCSV(blocks, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Bundle zips the deck and quiz table as <name>.pptx and <name>.csv.
func Bundle(ctx context.Context, name string, blocks []ir.Block, opts extfmt.Options) ([]byte, error) {
	deckBytes, err := deck.Render(ctx, blocks, opts)
	if err != nil {
		return nil, err
	}
	csvBytes, err := quizCSV(blocks)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, entry := range []struct {
		name string
		data []byte
	}{
		{name + "." + FormatPPTX, deckBytes},
		{name + "." + FormatCSV, csvBytes},
	} {
		w, err := zw.Create(entry.name)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to add %s to archive", entry.name)
		}
		if _, err := w.Write(entry.data); err != nil {
			return nil, errors.Wrapf(err, "unable to add %s to archive", entry.name)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, errors.Wrap(err, "unable to close archive")
	}
	return buf.Bytes(), nil
}
