package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/exlskills/storyboardutil/config"
	"github.com/exlskills/storyboardutil/deck"
	"github.com/exlskills/storyboardutil/extfmt"
	"github.com/exlskills/storyboardutil/ir"
	"github.com/exlskills/storyboardutil/pptx"
	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"
)

const (
	pageW  = 10.0
	pageH  = 7.5
	margin = 0.75
)

// Handout lays the storyboard out one page per physical deck slide, with narration printed under
// the content and quiz answers marked.
type Handout struct {
	Title          string
	Family         string
	FontColor      pptx.RGB
	BgColor        pptx.RGB
	MaxTextLines   int
	MaxBulletLines int
	Images         deck.ImageResolver

	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func NewHandout(opts extfmt.Options, images deck.ImageResolver) *Handout {
	r := deck.NewRenderer(opts, images)
	return &Handout{
		Title:          r.Title,
		Family:         coreFamily(r.FontName),
		FontColor:      r.FontColor,
		BgColor:        r.BgColor,
		MaxTextLines:   r.MaxTextLines,
		MaxBulletLines: r.MaxBulletLines,
		Images:         images,
	}
}

// coreFamily maps a deck font to one of the PDF core fonts.
func coreFamily(name string) string {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "times") || strings.Contains(n, "georgia") || strings.Contains(n, "garamond"):
		return "Times"
	case strings.Contains(n, "courier") || strings.Contains(n, "mono") || strings.Contains(n, "consolas"):
		return "Courier"
	}
	return "Helvetica"
}

func (h *Handout) Write(ctx context.Context, blocks []ir.Block, w io.Writer) error {
	h.pdf = gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "L",
		UnitStr:        "in",
		Size:           gofpdf.SizeType{Wd: pageW, Ht: pageH},
	})
	h.pdf.SetTitle(h.Title, true)
	h.pdf.SetMargins(margin, margin, margin)
	h.pdf.SetAutoPageBreak(true, margin)
	h.tr = h.pdf.UnicodeTranslatorFromDescriptor("")

	h.page()
	h.pdf.SetY(2.5)
	h.heading(h.Title, 36)
	h.body(config.Cfg().DeckSubtitle, 16, "")

	for _, b := range blocks {
		switch blk := b.(type) {
		case *ir.Slide:
			h.slidePages(ctx, blk)
		case *ir.Quiz:
			h.quizPage(blk)
		}
	}
	if err := h.pdf.Error(); err != nil {
		return errors.Wrap(err, "unable to build handout")
	}
	return errors.Wrap(h.pdf.Output(w), "unable to serialize handout")
}

func (h *Handout) page() {
	h.pdf.AddPage()
	h.pdf.SetFillColor(int(h.BgColor.R), int(h.BgColor.G), int(h.BgColor.B))
	h.pdf.Rect(0, 0, pageW, pageH, "F")
	h.pdf.SetTextColor(int(h.FontColor.R), int(h.FontColor.G), int(h.FontColor.B))
	h.pdf.SetXY(margin, margin)
}

func (h *Handout) heading(text string, size float64) {
	h.pdf.SetFont(h.Family, "B", size)
	h.pdf.MultiCell(0, size/60, h.tr(text), "", "L", false)
	h.pdf.Ln(0.15)
}

func (h *Handout) body(text string, size float64, style string) {
	h.pdf.SetFont(h.Family, style, size)
	h.pdf.MultiCell(0, size/55, h.tr(text), "", "L", false)
}

func (h *Handout) slidePages(ctx context.Context, s *ir.Slide) {
	for i, chunk := range deck.Paginate(s.Text, s.Bullets, h.MaxTextLines, h.MaxBulletLines) {
		h.page()
		title := s.GetDisplayName()
		if i > 0 {
			title += deck.ContinuedSuffix
		}
		h.heading(title, 28)
		if i == 0 && s.HasImage() {
			h.image(ctx, s.Image)
		}
		for _, ln := range chunk.Text {
			h.body(ln, 16, "")
		}
		if len(chunk.Text) > 0 && len(chunk.Bullets) > 0 {
			h.pdf.Ln(0.15)
		}
		for _, ln := range chunk.Bullets {
			h.body("- "+ln, 14, "")
		}
		if i == 0 && strings.TrimSpace(s.Narration) != "" {
			h.pdf.Ln(0.25)
			h.body("Narration: "+strings.TrimSpace(s.Narration), 11, "I")
		}
	}
}

func (h *Handout) image(ctx context.Context, ref string) {
	if h.Images == nil {
		return
	}
	img, err := h.Images.Resolve(ctx, ref)
	if err != nil {
		Log.Warnf("Dropping image %s: %v", ref, err)
		return
	}
	if img.Width <= 0 || img.Height <= 0 {
		return
	}
	imageType := strings.ToUpper(img.Ext)
	if imageType == "JPEG" {
		imageType = "JPG"
	}
	name := fmt.Sprintf("img-%d", h.pdf.PageNo())
	opts := gofpdf.ImageOptions{ImageType: imageType}
	if info := h.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.Data)); info == nil || h.pdf.Err() {
		Log.Warnf("Dropping image %s: %v", ref, h.pdf.Error())
		h.pdf.ClearError()
		return
	}
	boxW := pageW - 2*margin
	boxH := (pageH - 2.5) * 0.4
	w, ht := float64(img.Width)/96, float64(img.Height)/96
	scale := 1.0
	if boxW/w < scale {
		scale = boxW / w
	}
	if boxH/ht < scale {
		scale = boxH / ht
	}
	w, ht = w*scale, ht*scale
	y := h.pdf.GetY()
	h.pdf.ImageOptions(name, margin+(boxW-w)/2, y, w, ht, false, opts, 0, "")
	h.pdf.SetY(y + ht + 0.2)
}

func (h *Handout) quizPage(q *ir.Quiz) {
	h.page()
	h.heading(q.GetDisplayName(), 28)
	question := q.Question
	if q.IsMultiAnswer() {
		question += deck.MultiAnswerHint
	}
	h.body(question, 16, "")
	h.pdf.Ln(0.15)
	for _, l := range ir.Letters {
		opt := strings.TrimSpace(q.Option(l))
		if opt == "" {
			continue
		}
		if q.IsCorrect(l) {
			h.body(fmt.Sprintf("%s: %s  (correct)", l, opt), 14, "B")
		} else {
			h.body(fmt.Sprintf("%s: %s", l, opt), 14, "")
		}
	}
	h.pdf.Ln(0.25)
	if q.FeedbackCorrect != "" {
		h.body("Correct: "+q.FeedbackCorrect, 11, "I")
	}
	if q.FeedbackIncorrect != "" {
		h.body("Incorrect: "+q.FeedbackIncorrect, 11, "I")
	}
}
