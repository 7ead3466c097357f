// Package pptx writes PresentationML decks: solid backgrounds, text boxes, pictures and speaker
// notes. Styling setters return an error instead of panicking so callers can treat them as
// best-effort.
package pptx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

const (
	EMUPerInch = 914400

	DefaultSlideWidth  = 10 * EMUPerInch
	DefaultSlideHeight = 7.5 * EMUPerInch

	MediaType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
)

var (
	ErrNilFrame           = errors.New("pptx: no text frame")
	ErrNilParagraph       = errors.New("pptx: no paragraph")
	ErrBulletsUnsupported = errors.New("pptx: bullets are not supported in notes")
	ErrInvalidFontName    = errors.New("pptx: invalid font name")
	ErrInvalidFontSize    = errors.New("pptx: font size out of range")
	ErrInvalidLevel       = errors.New("pptx: indent level out of range")
	ErrUnsupportedImage   = errors.New("pptx: unsupported image type")
)

// Inches converts inches to EMU.
func Inches(in float64) int64 {
	return int64(in * EMUPerInch)
}

type RGB struct {
	R, G, B uint8
}

func (c RGB) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// Rect is a shape frame in EMU.
type Rect struct {
	X, Y, W, H int64
}

type Presentation struct {
	Width  int64
	Height int64
	Title  string
	slides []*Slide
	media  []*media
}

type media struct {
	name string
	ext  string
	data []byte
}

func New() *Presentation {
	return &Presentation{Width: DefaultSlideWidth, Height: DefaultSlideHeight}
}

func (p *Presentation) AddSlide() *Slide {
	s := &Slide{pres: p, number: len(p.slides) + 1}
	p.slides = append(p.slides, s)
	return s
}

func (p *Presentation) Slides() []*Slide {
	return p.slides
}

type Slide struct {
	pres       *Presentation
	number     int
	background *RGB
	shapes     []shape
	notes      *TextFrame
	images     []*media
}

type shape interface {
	writeXML(sb *strings.Builder, id int)
}

func (s *Slide) SetBackground(c RGB) error {
	s.background = &c
	return nil
}

// AddTextBox places a word-wrapped text box. The name is written to the shape so readers can
// tell boxes apart.
func (s *Slide) AddTextBox(name string, r Rect) *TextFrame {
	tf := &TextFrame{wrap: true}
	s.shapes = append(s.shapes, &textBox{name: name, rect: r, frame: tf})
	return tf
}

// AddPicture embeds an image. ext must be png, jpeg or gif.
func (s *Slide) AddPicture(data []byte, ext, descr string, r Rect) error {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ext == "jpg" {
		ext = "jpeg"
	}
	if ext != "png" && ext != "jpeg" && ext != "gif" {
		return errors.Wrapf(ErrUnsupportedImage, "%q", ext)
	}
	if len(data) == 0 {
		return errors.New("pptx: empty image")
	}
	m := &media{name: fmt.Sprintf("image%d.%s", len(s.pres.media)+1, ext), ext: ext, data: data}
	s.pres.media = append(s.pres.media, m)
	s.images = append(s.images, m)
	s.shapes = append(s.shapes, &picture{rel: len(s.images) + 2, descr: descr, rect: r})
	return nil
}

// Notes returns the speaker notes frame, creating it on first use.
func (s *Slide) Notes() *TextFrame {
	if s.notes == nil {
		s.notes = &TextFrame{wrap: true, notes: true}
	}
	return s.notes
}

func (s *Slide) hasNotes() bool {
	return s.notes != nil && len(s.notes.paragraphs) > 0
}

type TextFrame struct {
	paragraphs []*Paragraph
	wrap       bool
	notes      bool
}

// Clear removes every paragraph.
func (tf *TextFrame) Clear() error {
	if tf == nil {
		return ErrNilFrame
	}
	tf.paragraphs = nil
	return nil
}

func (tf *TextFrame) SetWordWrap(wrap bool) error {
	if tf == nil {
		return ErrNilFrame
	}
	tf.wrap = wrap
	return nil
}

func (tf *TextFrame) AddParagraph(text string) *Paragraph {
	if tf == nil {
		return nil
	}
	p := &Paragraph{Text: text, frame: tf}
	tf.paragraphs = append(tf.paragraphs, p)
	return p
}

func (tf *TextFrame) Paragraphs() []*Paragraph {
	if tf == nil {
		return nil
	}
	return tf.paragraphs
}

type Paragraph struct {
	Text   string
	frame  *TextFrame
	size   int
	bold   bool
	font   string
	color  *RGB
	bullet bool
	level  int
}

func (p *Paragraph) SetSize(pt float64) error {
	if p == nil {
		return ErrNilParagraph
	}
	if pt < 1 || pt > 4000 {
		return errors.Wrapf(ErrInvalidFontSize, "%v", pt)
	}
	p.size = int(pt * 100)
	return nil
}

func (p *Paragraph) SetBold(bold bool) error {
	if p == nil {
		return ErrNilParagraph
	}
	p.bold = bold
	return nil
}

// SetFontName sets the latin and complex-script typeface.
func (p *Paragraph) SetFontName(name string) error {
	if p == nil {
		return ErrNilParagraph
	}
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 64 {
		return errors.Wrapf(ErrInvalidFontName, "%q", name)
	}
	for _, r := range name {
		if unicode.IsControl(r) || r == unicode.ReplacementChar {
			return errors.Wrapf(ErrInvalidFontName, "%q", name)
		}
	}
	p.font = name
	return nil
}

func (p *Paragraph) SetColor(c RGB) error {
	if p == nil {
		return ErrNilParagraph
	}
	p.color = &c
	return nil
}

func (p *Paragraph) SetBullet(on bool) error {
	if p == nil {
		return ErrNilParagraph
	}
	if on && p.frame != nil && p.frame.notes {
		return ErrBulletsUnsupported
	}
	p.bullet = on
	return nil
}

func (p *Paragraph) SetLevel(level int) error {
	if p == nil {
		return ErrNilParagraph
	}
	if level < 0 || level > 8 {
		return errors.Wrapf(ErrInvalidLevel, "%d", level)
	}
	p.level = level
	return nil
}

func (p *Paragraph) IsBullet() bool {
	return p != nil && p.bullet
}

// Write serializes the deck as a .pptx package.
func (p *Presentation) Write(w io.Writer) error {
	zw := zip.NewWriter(w)
	parts := p.parts()
	for _, part := range parts {
		fw, err := zw.Create(part.name)
		if err != nil {
			return errors.Wrapf(err, "pptx: create %s", part.name)
		}
		if _, err := fw.Write(part.data); err != nil {
			return errors.Wrapf(err, "pptx: write %s", part.name)
		}
	}
	return errors.Wrap(zw.Close(), "pptx: close package")
}

func (p *Presentation) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
