// Package vtt exports slide narration as WebVTT caption files, one per narrated slide, bundled
// in a zip archive.
package vtt

import (
	"archive/zip"
	"fmt"
	"io"
	"strings"

	"github.com/exlskills/storyboardutil/config"
	"github.com/exlskills/storyboardutil/extfmt"
	"github.com/exlskills/storyboardutil/ir"
	"github.com/pkg/errors"
)

var Log = config.Cfg().GetLogger()

const cueTiming = "00:00.000 --> 00:06.000"

type File struct {
	Name string
	Body string
}

// Files builds slide_NN.vtt captions numbered over narrated slides only.
func Files(blocks []ir.Block) []File {
	var out []File
	for _, b := range blocks {
		s, ok := b.(*ir.Slide)
		if !ok {
			continue
		}
		narration := strings.TrimSpace(s.Narration)
		if narration == "" {
			continue
		}
		out = append(out, File{
			Name: fmt.Sprintf("slide_%02d.vtt", len(out)+1),
			Body: fmt.Sprintf("WEBVTT\n\n%s\n%s\n", cueTiming, narration),
		})
	}
	return out
}

func NewVTTFormat() *VTT {
	return &VTT{}
}

type VTT struct {
}

func (v *VTT) Import(from extfmt.Source) (toBlocks []ir.Block, err error) {
	return nil, errors.WithStack(extfmt.ErrImportUnsupported)
}

func (v *VTT) Export(fromBlocks []ir.Block, opts extfmt.Options, to io.Writer) (err error) {
	zw := zip.NewWriter(to)
	files := Files(fromBlocks)
	for _, f := range files {
		w, err := zw.Create(f.Name)
		if err != nil {
			return errors.Wrapf(err, "vtt: create %s", f.Name)
		}
		if _, err := io.WriteString(w, f.Body); err != nil {
			return errors.Wrapf(err, "vtt: write %s", f.Name)
		}
	}
	Log.Debugf("Wrote %d caption files", len(files))
	return errors.Wrap(zw.Close(), "vtt: close archive")
}

func (v *VTT) FileExtension() string {
	return "zip"
}

func (v *VTT) MIMEType() string {
	return "application/zip"
}
