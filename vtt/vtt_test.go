package vtt

import (
	"archive/zip"
	"bytes"
	"io/ioutil"
	"testing"

	"github.com/exlskills/storyboardutil/extfmt"
	"github.com/exlskills/storyboardutil/ir"
)

func TestFilesNumberNarratedSlidesOnly(t *testing.T) {
	blocks := []ir.Block{
		&ir.Slide{Title: "a", Narration: "first line\nsecond line"},
		&ir.Slide{Title: "silent", Narration: "  "},
		ir.NewQuiz(),
		&ir.Slide{Title: "b", Narration: " last "},
	}
	files := Files(blocks)
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	if files[0].Name != "slide_01.vtt" || files[1].Name != "slide_02.vtt" {
		t.Fatalf("unexpected names %s, %s", files[0].Name, files[1].Name)
	}
	if files[1].Body != "WEBVTT\n\n00:00.000 --> 00:06.000\nlast\n" {
		t.Fatalf("unexpected body %q", files[1].Body)
	}
}

func TestExportZip(t *testing.T) {
	var buf bytes.Buffer
	err := NewVTTFormat().Export([]ir.Block{&ir.Slide{Narration: "hello"}}, extfmt.Options{}, &buf)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	if len(zr.File) != 1 || zr.File[0].Name != "slide_01.vtt" {
		t.Fatalf("unexpected entries %v", zr.File)
	}
	rc, _ := zr.File[0].Open()
	defer rc.Close()
	body, _ := ioutil.ReadAll(rc)
	if !bytes.HasPrefix(body, []byte("WEBVTT\n")) {
		t.Fatalf("unexpected body %q", body)
	}
}
