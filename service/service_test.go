package service

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/exlskills/storyboardutil/extfmt"
	"github.com/exlskills/storyboardutil/pptx"
	"github.com/pkg/errors"
)

const scenarioA = `## Slide: Welcome
Text:
Hello there
Bullets:
- Point one
- Point two
## Quiz: Single Choice
Question: 2+2?
A: 3
B: 4
Answer: B
`

func TestExportScenarioACSV(t *testing.T) {
	res, err := Export(context.Background(), Request{Script: scenarioA, Format: "csv", Filename: "My Deck!"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if res.Filename != "My-Deck-.csv" || res.MIMEType != "text/csv" {
		t.Fatalf("unexpected result %s %s", res.Filename, res.MIMEType)
	}
	recs, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(res.Data, []byte("\xEF\xBB\xBF")))).ReadAll()
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(recs))
	}
	if recs[1][6] != "B" || recs[1][1] != "2+2?" {
		t.Fatalf("unexpected quiz row %#v", recs[1])
	}
	if res.Slides != 1 || res.Quizzes != 1 {
		t.Fatalf("unexpected counts %d/%d", res.Slides, res.Quizzes)
	}
}

func TestExportScenarioCZip(t *testing.T) {
	res, err := Export(context.Background(), Request{Script: scenarioA, Format: "ZIP", Filename: "lesson"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if res.Filename != "lesson.zip" {
		t.Fatalf("unexpected filename %s", res.Filename)
	}
	zr, err := zip.NewReader(bytes.NewReader(res.Data), int64(len(res.Data)))
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(zr.File))
	}
	if zr.File[0].Name != "lesson.pptx" || zr.File[1].Name != "lesson.csv" {
		t.Fatalf("unexpected entries %s, %s", zr.File[0].Name, zr.File[1].Name)
	}
	for _, f := range zr.File {
		if f.UncompressedSize64 == 0 {
			t.Fatalf("%s is empty", f.Name)
		}
	}
}

func TestExportPPTXDefaults(t *testing.T) {
	res, err := Export(context.Background(), Request{Script: scenarioA})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if res.Filename != "export.pptx" || res.MIMEType != pptx.MediaType {
		t.Fatalf("unexpected result %s %s", res.Filename, res.MIMEType)
	}
	sum, err := pptx.Inspect(res.Data)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if len(sum.Slides) != 3 || sum.Slides[0].Shape("Title").Texts()[0] != "export" {
		t.Fatalf("unexpected deck %+v", sum.Slides)
	}
}

func TestExportUnknownFormat(t *testing.T) {
	_, err := Export(context.Background(), Request{Script: scenarioA, Format: "docx"})
	if err == nil || errors.Cause(err) != extfmt.ErrUnsupportedFormat {
		t.Fatalf("expected unsupported format, got %v", err)
	}
	if !IsClientError(err) {
		t.Fatalf("expected client error")
	}
}

func TestExportRejectsUploadExtension(t *testing.T) {
	_, err := Export(context.Background(), Request{Upload: &extfmt.Source{Name: "slides.docx", Data: []byte("x")}, Format: "csv"})
	if !IsClientError(err) || !strings.Contains(err.Error(), ".docx") {
		t.Fatalf("expected client error naming the extension, got %v", err)
	}
}

func TestExportUploadTable(t *testing.T) {
	data := []byte("QUIZ: Safety,\"Question: Is fire hot?\nA: Yes\nB: No\nAnswer: A\",\n")
	res, err := Export(context.Background(), Request{Upload: &extfmt.Source{Name: "deck.csv", Data: data}, Format: "csv"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(string(res.Data), "Safety,Is fire hot?,Yes,No,,,A") {
		t.Fatalf("unexpected csv %q", res.Data)
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"":               "export",
		"   ":            "export",
		"a b/c":          "a-b-c",
		"deck_v1.2-beta": "deck_v1.2-beta",
		"ünïcode":        "-n-code",
	}
	for in, want := range cases {
		if got := SanitizeFilename(in); got != want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
	if IsClientError(nil) {
		t.Fatalf("nil is not a client error")
	}
}
