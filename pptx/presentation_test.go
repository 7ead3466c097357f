package pptx

import (
	"archive/zip"
	"bytes"
	"image"
	"image/color"
	"image/png"
	"reflect"
	"testing"

	"github.com/pkg/errors"
)

func tinyPNG(t *testing.T) []byte {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func buildDeck(t *testing.T) []byte {
	p := New()
	p.Title = "Fish & Chips"

	s := p.AddSlide()
	if err := s.SetBackground(RGB{0xFF, 0xEE, 0xDD}); err != nil {
		t.Fatal(err)
	}
	title := s.AddTextBox("Title", Rect{X: Inches(0.5), Y: Inches(0.3), W: Inches(9), H: Inches(1.2)})
	para := title.AddParagraph("Intro <1>")
	para.SetSize(40)
	para.SetBold(true)
	para.SetFontName("Calibri")
	para.SetColor(RGB{0x11, 0x11, 0x11})

	bullets := s.AddTextBox("Bullets", Rect{X: Inches(0.75), Y: Inches(1.8), W: Inches(8.5), H: Inches(4)})
	for _, b := range []string{"one", "two"} {
		if err := bullets.AddParagraph(b).SetBullet(true); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.AddPicture(tinyPNG(t), ".png", "a red dot", Rect{W: Inches(1), H: Inches(1)}); err != nil {
		t.Fatal(err)
	}
	s.Notes().AddParagraph("say hello")

	p.AddSlide().AddTextBox("Title", Rect{W: Inches(9), H: Inches(1)}).AddParagraph("Second")

	data, err := p.Bytes()
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	return data
}

func TestWriteProducesOpenablePackage(t *testing.T) {
	data := buildDeck(t)
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("not a zip: %v", err)
	}
	names := map[string]bool{}
	for _, f := range zr.File {
		names[f.Name] = true
	}
	for _, want := range []string{
		"[Content_Types].xml",
		"ppt/presentation.xml",
		"ppt/slides/slide1.xml",
		"ppt/slides/slide2.xml",
		"ppt/notesSlides/notesSlide1.xml",
		"ppt/media/image1.png",
		"ppt/theme/theme1.xml",
	} {
		if !names[want] {
			t.Errorf("missing part %s", want)
		}
	}
	if names["ppt/notesSlides/notesSlide2.xml"] {
		t.Errorf("slide without notes should not get a notes part")
	}
}

func TestInspectReadsBack(t *testing.T) {
	sum, err := Inspect(buildDeck(t))
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if sum.Width != DefaultSlideWidth || sum.Height != DefaultSlideHeight {
		t.Fatalf("unexpected size %dx%d", sum.Width, sum.Height)
	}
	if len(sum.Slides) != 2 {
		t.Fatalf("expected 2 slides, got %d", len(sum.Slides))
	}
	first := sum.Slides[0]
	if first.Background != "FFEEDD" {
		t.Fatalf("unexpected background %q", first.Background)
	}
	title := first.Shape("Title")
	if title == nil || title.Paragraphs[0].Text != "Intro <1>" {
		t.Fatalf("unexpected title %+v", title)
	}
	tp := title.Paragraphs[0]
	if tp.Size != 4000 || !tp.Bold || tp.Font != "Calibri" || tp.Color != "111111" || tp.Bullet {
		t.Fatalf("unexpected title styling %+v", tp)
	}
	bullets := first.Shape("Bullets")
	if !reflect.DeepEqual(bullets.Texts(), []string{"one", "two"}) || !bullets.Paragraphs[1].Bullet {
		t.Fatalf("unexpected bullets %+v", bullets)
	}
	if !reflect.DeepEqual(first.Pictures, []string{"a red dot"}) {
		t.Fatalf("unexpected pictures %#v", first.Pictures)
	}
	if !reflect.DeepEqual(first.Notes, []string{"say hello"}) {
		t.Fatalf("unexpected notes %#v", first.Notes)
	}
	second := sum.Slides[1]
	if second.Background != "" || len(second.Notes) != 0 || second.Shape("Title").Texts()[0] != "Second" {
		t.Fatalf("unexpected second slide %+v", second)
	}
}

func TestSettersReportErrors(t *testing.T) {
	s := New().AddSlide()
	notes := s.Notes().AddParagraph("n")
	if err := notes.SetBullet(true); err != ErrBulletsUnsupported {
		t.Fatalf("expected bullets unsupported, got %v", err)
	}
	p := s.AddTextBox("Body", Rect{}).AddParagraph("x")
	if err := p.SetFontName("  "); errors.Cause(err) != ErrInvalidFontName {
		t.Fatalf("expected invalid font, got %v", err)
	}
	if err := p.SetSize(0); errors.Cause(err) != ErrInvalidFontSize {
		t.Fatalf("expected invalid size, got %v", err)
	}
	if err := p.SetLevel(9); errors.Cause(err) != ErrInvalidLevel {
		t.Fatalf("expected invalid level, got %v", err)
	}
	var nilPara *Paragraph
	if err := nilPara.SetBold(true); err != ErrNilParagraph {
		t.Fatalf("expected nil paragraph error, got %v", err)
	}
	if err := s.AddPicture([]byte("x"), "tiff", "", Rect{}); errors.Cause(err) != ErrUnsupportedImage {
		t.Fatalf("expected unsupported image, got %v", err)
	}
}

func TestInspectRejectsGarbage(t *testing.T) {
	if _, err := Inspect([]byte("nope")); err == nil {
		t.Fatalf("expected error")
	}
}
