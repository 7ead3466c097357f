package deck

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/exlskills/storyboardutil/assets"
	"github.com/exlskills/storyboardutil/extfmt"
	"github.com/exlskills/storyboardutil/ir"
	"github.com/exlskills/storyboardutil/pptx"
	"github.com/exlskills/storyboardutil/script"
	"github.com/pkg/errors"
)

// tinyGIF is a 1x1 gif.
var tinyGIF = []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\x00\x00\x00\xff\xff\xff!\xf9\x04\x01\x00\x00\x00\x00,\x00\x00\x00\x00\x01\x00\x01\x00\x00\x02\x02D\x01\x00;")

type fakeImages struct {
	calls int
	fail  bool
}

func (f *fakeImages) Resolve(ctx context.Context, ref string) (*assets.Image, error) {
	f.calls++
	if f.fail {
		return nil, errors.New("offline")
	}
	return &assets.Image{Data: tinyGIF, Ext: "gif", Width: 400, Height: 300}, nil
}

func lines(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s %d", prefix, i+1)
	}
	return out
}

func render(t *testing.T, r *Renderer, blocks []ir.Block) *pptx.Summary {
	data, err := r.Render(context.Background(), blocks)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	sum, err := pptx.Inspect(data)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	return sum
}

func TestPaginateLockstep(t *testing.T) {
	chunks := Paginate(lines("t", 7), lines("b", 13), 6, 6)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	var tc, bc []int
	for _, c := range chunks {
		tc = append(tc, len(c.Text))
		bc = append(bc, len(c.Bullets))
	}
	if !reflect.DeepEqual(tc, []int{6, 1, 0}) || !reflect.DeepEqual(bc, []int{6, 6, 1}) {
		t.Fatalf("text %v bullets %v", tc, bc)
	}
	if chunks[1].Bullets[0] != "b 7" || chunks[1].Text[0] != "t 7" {
		t.Fatalf("unexpected second chunk %+v", chunks[1])
	}
	if got := Paginate(nil, nil, 6, 6); len(got) != 1 {
		t.Fatalf("expected a single empty chunk, got %d", len(got))
	}
	if got := Paginate(lines("t", 7), nil, 0, 0); len(got) != 2 {
		t.Fatalf("expected default caps to apply, got %d chunks", len(got))
	}
}

func TestRenderPaginatesThirteenBullets(t *testing.T) {
	images := &fakeImages{}
	r := NewRenderer(extfmt.Options{Title: "Course", MaxBulletLines: 6}, images)
	sum := render(t, r, []ir.Block{&ir.Slide{
		Title:     "Long",
		Bullets:   lines("point", 13),
		Narration: "Only once",
		Image:     "pic.gif",
		Alt:       "diagram",
	}})
	if len(sum.Slides) != 4 {
		t.Fatalf("expected title slide + 3, got %d", len(sum.Slides))
	}
	var counts []int
	for i, s := range sum.Slides[1:] {
		counts = append(counts, len(s.Shape("Bullets").Paragraphs))
		wantTitle := "Long"
		if i > 0 {
			wantTitle = "Long (cont.)"
		}
		if got := s.Shape("Title").Texts()[0]; got != wantTitle {
			t.Errorf("slide %d title %q, want %q", i+2, got, wantTitle)
		}
		wantPics, wantNotes := 0, 0
		if i == 0 {
			wantPics, wantNotes = 1, 1
		}
		if len(s.Pictures) != wantPics || len(s.Notes) != wantNotes {
			t.Errorf("slide %d: %d pictures, %d notes", i+2, len(s.Pictures), len(s.Notes))
		}
	}
	if !reflect.DeepEqual(counts, []int{6, 6, 1}) {
		t.Fatalf("bullet counts %v", counts)
	}
	if images.calls != 1 {
		t.Fatalf("expected image resolved once, got %d", images.calls)
	}
	if sum.Slides[1].Pictures[0] != "diagram" {
		t.Fatalf("expected alt text on picture, got %q", sum.Slides[1].Pictures[0])
	}
}

func TestRenderScenarioA(t *testing.T) {
	blocks := script.Parse("## Slide: Welcome\nText:\nHello there\nBullets:\n- Point one\n- Point two\n## Quiz: Single Choice\nQuestion: 2+2?\nA: 3\nB: 4\nAnswer: B\nFeedbackCorrect: Yes\n")
	r := NewRenderer(extfmt.Options{Title: "intro", Theme: ir.Theme{FontName: "Arial", FontColor: "#0a0", BgColor: "000000"}}, nil)
	sum := render(t, r, blocks)
	if len(sum.Slides) != 3 {
		t.Fatalf("expected 3 slides, got %d", len(sum.Slides))
	}

	title := sum.Slides[0]
	if title.Shape("Title").Texts()[0] != "intro" || title.Shape("Title").Paragraphs[0].Size != 4400 || !title.Shape("Title").Paragraphs[0].Bold {
		t.Fatalf("unexpected title slide %s", title)
	}
	if title.Shape("Subtitle") == nil {
		t.Fatalf("expected subtitle on title slide")
	}

	welcome := sum.Slides[1]
	if welcome.Background != "000000" {
		t.Fatalf("unexpected background %q", welcome.Background)
	}
	text := welcome.Shape("Text").Paragraphs[0]
	if text.Text != "Hello there" || text.Font != "Arial" || text.Color != "00AA00" || text.Bullet || text.Size != 2800 {
		t.Fatalf("unexpected text paragraph %+v", text)
	}
	if b := welcome.Shape("Bullets"); !reflect.DeepEqual(b.Texts(), []string{"Point one", "Point two"}) || !b.Paragraphs[0].Bullet {
		t.Fatalf("unexpected bullets %+v", b)
	}

	quiz := sum.Slides[2]
	if quiz.Shape("Title").Texts()[0] != ir.DefaultQuizTitle {
		t.Fatalf("unexpected quiz title %q", quiz.Shape("Title").Texts()[0])
	}
	if got := quiz.Shape("Question").Texts(); !reflect.DeepEqual(got, []string{"2+2?"}) {
		t.Fatalf("unexpected question %#v", got)
	}
	if got := quiz.Shape("Options").Texts(); !reflect.DeepEqual(got, []string{"A: 3", "B: 4"}) {
		t.Fatalf("unexpected options %#v", got)
	}
	if !reflect.DeepEqual(quiz.Notes, []string{"Correct: Yes"}) {
		t.Fatalf("unexpected quiz notes %#v", quiz.Notes)
	}
}

func TestRenderMultiAnswerQuizIsNeverPaginated(t *testing.T) {
	q := ir.NewQuiz()
	q.Title = "Pick"
	q.Question = "Which?"
	q.Options["A"] = "a"
	q.Options["C"] = "c"
	q.Answer = "A,C"
	q.FeedbackIncorrect = "no"
	sum := render(t, NewRenderer(extfmt.Options{MaxTextLines: 1, MaxBulletLines: 1}, nil), []ir.Block{q})
	if len(sum.Slides) != 2 {
		t.Fatalf("expected a single quiz slide, got %d slides", len(sum.Slides)-1)
	}
	s := sum.Slides[1]
	if got := s.Shape("Question").Texts()[0]; got != "Which? (Select all that apply)" {
		t.Fatalf("unexpected question %q", got)
	}
	if q.Question != "Which?" {
		t.Fatalf("stored question must not change")
	}
	if !reflect.DeepEqual(s.Notes, []string{"Incorrect: no"}) {
		t.Fatalf("unexpected notes %#v", s.Notes)
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	blocks := []ir.Block{
		&ir.Slide{Title: "A", Text: lines("p", 8), Bullets: lines("b", 3), Narration: "n"},
		&ir.Slide{Title: "B"},
	}
	r := NewRenderer(extfmt.Options{Title: "x"}, nil)
	a, b := render(t, r, blocks), render(t, r, blocks)
	if len(a.Slides) != len(b.Slides) {
		t.Fatalf("slide counts differ: %d vs %d", len(a.Slides), len(b.Slides))
	}
	for i := range a.Slides {
		if a.Slides[i].String() != b.Slides[i].String() {
			t.Fatalf("slide %d differs:\n%s\n%s", i+1, a.Slides[i], b.Slides[i])
		}
	}
}

func TestRenderDropsUnresolvableImage(t *testing.T) {
	sum := render(t, NewRenderer(extfmt.Options{}, &fakeImages{fail: true}), []ir.Block{
		&ir.Slide{Title: "Pic", Image: "http://offline/x.png", Text: []string{"still here"}},
	})
	s := sum.Slides[1]
	if len(s.Pictures) != 0 || s.Shape("Text").Texts()[0] != "still here" {
		t.Fatalf("expected slide without picture, got %s", s)
	}
}

func TestMalformedColorsFallBack(t *testing.T) {
	r := NewRenderer(extfmt.Options{Theme: ir.Theme{FontName: "\x00", FontColor: "notacolor", BgColor: "#12"}}, nil)
	if r.FontColor != DefaultFontColor || r.BgColor != DefaultBgColor {
		t.Fatalf("expected defaults, got %v %v", r.FontColor, r.BgColor)
	}
	sum := render(t, r, []ir.Block{&ir.Slide{Title: "T", Text: []string{"x"}}})
	p := sum.Slides[1].Shape("Text").Paragraphs[0]
	if p.Font != "" || p.Color != "111111" {
		t.Fatalf("expected backend default font and fallback color, got %+v", p)
	}
}

func TestParseHexColor(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"#FFF", "FFFFFF", true},
		{"abc", "AABBCC", true},
		{"#102030", "102030", true},
		{" 0a0B0c ", "0A0B0C", true},
		{"notacolor", "", false},
		{"#12345", "", false},
		{"", "", false},
		{"#GGGGGG", "", false},
	}
	for _, c := range cases {
		got, err := ParseHexColor(c.in)
		if (err == nil) != c.ok {
			t.Errorf("ParseHexColor(%q) error = %v", c.in, err)
			continue
		}
		if c.ok && got.Hex() != c.want {
			t.Errorf("ParseHexColor(%q) = %s, want %s", c.in, got.Hex(), c.want)
		}
	}
}
