// Package deck renders a block list to a .pptx storyboard: a title slide followed by one or
// more physical slides per block.
//
// Styling is best-effort. Every setter on the pptx backend reports failure, and the renderer
// logs those at debug level and keeps going with the backend default. Only a failure to build or
// serialize the package fails a render.
package deck

import (
	"context"
	"strings"

	"github.com/exlskills/storyboardutil/assets"
	"github.com/exlskills/storyboardutil/config"
	"github.com/exlskills/storyboardutil/extfmt"
	"github.com/exlskills/storyboardutil/ir"
	"github.com/exlskills/storyboardutil/pptx"
	"github.com/pkg/errors"
)

var Log = config.Cfg().GetLogger()

const (
	ContinuedSuffix = " (cont.)"
	MultiAnswerHint = " (Select all that apply)"

	titleSlideSize = 44
	subtitleSize   = 20
	titleSize      = 40
	bodySize       = 28
	bulletSize     = 24
	notesSize      = 14

	// Pixel sizes are read at 96 dpi.
	emuPerPixel = pptx.EMUPerInch / 96

	imageShare = 0.4
	textShare  = 0.55
)

var gutter = pptx.Inches(0.2)

// ImageResolver turns an image reference into embeddable bytes.
type ImageResolver interface {
	Resolve(ctx context.Context, ref string) (*assets.Image, error)
}

type Renderer struct {
	Title          string
	Subtitle       string
	FontName       string
	FontColor      pptx.RGB
	BgColor        pptx.RGB
	MaxTextLines   int
	MaxBulletLines int
	// Images may be nil, in which case image references are dropped.
	Images ImageResolver
}

// NewRenderer applies configured defaults to opts. Malformed colors fall back per field.
func NewRenderer(opts extfmt.Options, images ImageResolver) *Renderer {
	cfg := config.Cfg()
	theme := opts.Theme.WithDefaults(cfg.Theme())
	r := &Renderer{
		Title:          opts.Title,
		Subtitle:       cfg.DeckSubtitle,
		FontName:       strings.TrimSpace(theme.FontName),
		FontColor:      ColorOr(theme.FontColor, DefaultFontColor),
		BgColor:        ColorOr(theme.BgColor, DefaultBgColor),
		MaxTextLines:   opts.MaxTextLines,
		MaxBulletLines: opts.MaxBulletLines,
		Images:         images,
	}
	if r.MaxTextLines < 1 {
		r.MaxTextLines = cfg.MaxTextLines
	}
	if r.MaxBulletLines < 1 {
		r.MaxBulletLines = cfg.MaxBulletLines
	}
	if strings.TrimSpace(r.Title) == "" {
		r.Title = "Course"
	}
	return r
}

// Render builds the deck with a fresh asset store. Downloaded images are removed before it
// returns.
func Render(ctx context.Context, blocks []ir.Block, opts extfmt.Options) ([]byte, error) {
	store := assets.NewStore()
	defer store.Cleanup()
	return NewRenderer(opts, store).Render(ctx, blocks)
}

func (r *Renderer) Render(ctx context.Context, blocks []ir.Block) ([]byte, error) {
	pres := pptx.New()
	pres.Title = r.Title
	r.titleSlide(pres)
	for _, b := range blocks {
		switch blk := b.(type) {
		case *ir.Slide:
			r.contentSlides(ctx, pres, blk)
		case *ir.Quiz:
			r.quizSlide(pres, blk)
		default:
			Log.Debugf("Skipping unknown block type %T", b)
		}
	}
	data, err := pres.Bytes()
	if err != nil {
		return nil, errors.Wrap(err, "unable to serialize deck")
	}
	Log.Debugf("Rendered %d slides for %d blocks", len(pres.Slides()), len(blocks))
	return data, nil
}

func cosmetic(what string, err error) {
	if err != nil {
		Log.Debugf("Ignoring %s failure: %v", what, err)
	}
}

func (r *Renderer) newSlide(pres *pptx.Presentation) *pptx.Slide {
	s := pres.AddSlide()
	cosmetic("background", s.SetBackground(r.BgColor))
	return s
}

func (r *Renderer) frame(tf *pptx.TextFrame) *pptx.TextFrame {
	cosmetic("clear", tf.Clear())
	cosmetic("word wrap", tf.SetWordWrap(true))
	return tf
}

func (r *Renderer) para(tf *pptx.TextFrame, text string, size float64, bold, bullet bool) {
	p := tf.AddParagraph(text)
	cosmetic("font size", p.SetSize(size))
	cosmetic("bold", p.SetBold(bold))
	cosmetic("font name", p.SetFontName(r.FontName))
	cosmetic("font color", p.SetColor(r.FontColor))
	if bullet {
		cosmetic("level", p.SetLevel(0))
	}
	cosmetic("bullet", p.SetBullet(bullet))
}

func (r *Renderer) titleSlide(pres *pptx.Presentation) {
	s := r.newSlide(pres)
	w := pres.Width - pptx.Inches(1.5)
	tf := r.frame(s.AddTextBox("Title", pptx.Rect{X: pptx.Inches(0.75), Y: pptx.Inches(2.3), W: w, H: pptx.Inches(1.5)}))
	r.para(tf, r.Title, titleSlideSize, true, false)
	if r.Subtitle != "" {
		sub := r.frame(s.AddTextBox("Subtitle", pptx.Rect{X: pptx.Inches(0.75), Y: pptx.Inches(4.0), W: w, H: pptx.Inches(0.8)}))
		r.para(sub, r.Subtitle, subtitleSize, false, false)
	}
}

func (r *Renderer) slideTitle(pres *pptx.Presentation, s *pptx.Slide, title string) {
	tf := r.frame(s.AddTextBox("Title", pptx.Rect{X: pptx.Inches(0.75), Y: pptx.Inches(0.6), W: pres.Width - pptx.Inches(1.5), H: pptx.Inches(1.1)}))
	r.para(tf, title, titleSize, true, false)
}

// contentBounds is the region below the title: 0.75in side margins, 1.8in top, 1.0in bottom.
func contentBounds(pres *pptx.Presentation) pptx.Rect {
	top := pptx.Inches(1.8)
	side := pptx.Inches(0.75)
	return pptx.Rect{X: side, Y: top, W: pres.Width - 2*side, H: pres.Height - top - pptx.Inches(1.0)}
}

func (r *Renderer) contentSlides(ctx context.Context, pres *pptx.Presentation, blk *ir.Slide) {
	title := blk.GetDisplayName()
	var img *assets.Image
	if blk.HasImage() {
		img = r.resolveImage(ctx, blk.Image)
	}
	for i, chunk := range Paginate(blk.Text, blk.Bullets, r.MaxTextLines, r.MaxBulletLines) {
		s := r.newSlide(pres)
		if i == 0 {
			r.slideTitle(pres, s, title)
		} else {
			r.slideTitle(pres, s, title+ContinuedSuffix)
		}
		region := contentBounds(pres)
		if i == 0 && img != nil {
			region = r.placeImage(s, img, blk.Alt, region)
		}
		r.layoutBody(s, region, chunk.Text, chunk.Bullets, "Text", "Bullets")
		if i == 0 {
			r.notes(s, strings.Split(blk.Narration, "\n"))
		}
	}
}

func (r *Renderer) resolveImage(ctx context.Context, ref string) *assets.Image {
	if r.Images == nil {
		return nil
	}
	img, err := r.Images.Resolve(ctx, ref)
	if err != nil {
		Log.Warnf("Dropping image %s: %v", ref, err)
		return nil
	}
	return img
}

// placeImage centers the image in the top share of region, scaled down to fit, and returns the
// space left below it.
func (r *Renderer) placeImage(s *pptx.Slide, img *assets.Image, alt string, region pptx.Rect) pptx.Rect {
	boxH := int64(float64(region.H) * imageShare)
	w, h := assets.FitWithin(int64(img.Width)*emuPerPixel, int64(img.Height)*emuPerPixel, region.W, boxH)
	if w == 0 || h == 0 {
		return region
	}
	rect := pptx.Rect{X: region.X + (region.W-w)/2, Y: region.Y + (boxH-h)/2, W: w, H: h}
	if err := s.AddPicture(img.Data, img.Ext, alt, rect); err != nil {
		Log.Warnf("Dropping image: %v", err)
		return region
	}
	region.Y += boxH + gutter
	region.H -= boxH + gutter
	return region
}

// layoutBody gives text 55% and bullets the rest less a gutter when both are present; otherwise
// the one present gets the whole region.
func (r *Renderer) layoutBody(s *pptx.Slide, region pptx.Rect, text, bullets []string, textName, bulletsName string) {
	textH, bulletsH := region.H, region.H
	if len(text) > 0 && len(bullets) > 0 {
		textH = int64(float64(region.H) * textShare)
		bulletsH = region.H - textH - gutter
	}
	if len(text) > 0 {
		tf := r.frame(s.AddTextBox(textName, pptx.Rect{X: region.X, Y: region.Y, W: region.W, H: textH}))
		for _, line := range text {
			r.para(tf, line, bodySize, false, false)
		}
	}
	if len(bullets) > 0 {
		y := region.Y
		if len(text) > 0 {
			y += textH + gutter
		}
		tf := r.frame(s.AddTextBox(bulletsName, pptx.Rect{X: region.X, Y: y, W: region.W, H: bulletsH}))
		for _, line := range bullets {
			r.para(tf, line, bulletSize, false, true)
		}
	}
}

func (r *Renderer) notes(s *pptx.Slide, lines []string) {
	var kept []string
	for _, ln := range lines {
		if ln = strings.TrimSpace(ln); ln != "" {
			kept = append(kept, ln)
		}
	}
	if len(kept) == 0 {
		return
	}
	tf := r.frame(s.Notes())
	for _, ln := range kept {
		r.para(tf, ln, notesSize, false, false)
	}
}

// quizSlide renders a quiz on exactly one slide regardless of length.
func (r *Renderer) quizSlide(pres *pptx.Presentation, q *ir.Quiz) {
	s := r.newSlide(pres)
	r.slideTitle(pres, s, q.GetDisplayName())

	var question []string
	if qt := strings.TrimSpace(q.Question); qt != "" {
		if q.IsMultiAnswer() {
			qt += MultiAnswerHint
		}
		question = []string{qt}
	}
	r.layoutBody(s, contentBounds(pres), question, OptionLines(q), "Question", "Options")

	var notes []string
	if q.FeedbackCorrect != "" {
		notes = append(notes, "Correct: "+q.FeedbackCorrect)
	}
	if q.FeedbackIncorrect != "" {
		notes = append(notes, "Incorrect: "+q.FeedbackIncorrect)
	}
	r.notes(s, notes)
}

// OptionLines formats the non-empty options as "<Letter>: <text>" in A-D order.
func OptionLines(q *ir.Quiz) []string {
	var out []string
	for _, l := range ir.Letters {
		if opt := strings.TrimSpace(q.Option(l)); opt != "" {
			out = append(out, l+": "+opt)
		}
	}
	return out
}
