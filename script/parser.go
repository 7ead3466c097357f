package script

import (
	"regexp"
	"strings"

	"github.com/exlskills/storyboardutil/ir"
)

// Section and field matchers. Shared read-only by every parse.
var (
	slideRe = regexp.MustCompile(`(?i)^##\s*Slide:\s*(.+)$`)
	quizRe  = regexp.MustCompile(`(?i)^##\s*Quiz:\s*Single\s*Choice\s*$`)
	fieldRe = regexp.MustCompile(`^(\w+):\s*(.*)$`)
)

const bulletPrefix = "- "

type parser struct {
	lines   []string
	pos     int
	blocks  []ir.Block
	current ir.Block
}

// Parse turns authored markup into blocks, in authoring order. It never fails: lines it cannot
// place are folded into the open slide's body text or dropped.
func Parse(text string) []ir.Block {
	text = strings.Replace(text, "\r\n", "\n", -1)
	text = strings.Replace(text, "\r", "\n", -1)
	p := &parser{lines: strings.Split(text, "\n")}
	for p.pos < len(p.lines) {
		p.step()
	}
	p.flush()
	Log.Debugf("Parsed script into %d blocks", len(p.blocks))
	return p.blocks
}

func (p *parser) line(i int) string {
	return strings.TrimSpace(p.lines[i])
}

func isSection(ln string) bool {
	return slideRe.MatchString(ln) || quizRe.MatchString(ln)
}

// atCaptureEnd reports whether a multi-line text capture must stop at ln.
func atCaptureEnd(ln string) bool {
	return ln == "" || strings.HasPrefix(ln, bulletPrefix) || fieldRe.MatchString(ln) || isSection(ln)
}

func (p *parser) flush() {
	if p.current != nil {
		p.blocks = append(p.blocks, p.current)
		p.current = nil
	}
}

func (p *parser) step() {
	ln := p.line(p.pos)

	if m := slideRe.FindStringSubmatch(ln); m != nil {
		p.flush()
		p.current = &ir.Slide{Title: strings.TrimSpace(m[1])}
		p.pos++
		return
	}
	if quizRe.MatchString(ln) {
		p.flush()
		p.current = ir.NewQuiz()
		p.pos++
		return
	}
	if p.current == nil || ln == "" {
		p.pos++
		return
	}

	switch blk := p.current.(type) {
	case *ir.Slide:
		p.slideLine(blk, ln)
	case *ir.Quiz:
		p.quizLine(blk, ln)
		p.pos++
	}
}

func (p *parser) slideLine(s *ir.Slide, ln string) {
	m := fieldRe.FindStringSubmatch(ln)
	if m == nil {
		p.foldFreeform(s)
		return
	}
	key, val := strings.ToLower(m[1]), strings.TrimSpace(m[2])
	switch key {
	case "narration", "notes":
		lines := p.collectText(p.pos+1, val)
		s.Narration = strings.TrimSpace(strings.Join(lines, "\n"))
	case "text", "body", "content":
		s.Text = p.collectText(p.pos+1, val)
	case "bullets":
		s.Bullets = p.collectBullets(p.pos + 1)
	case "image":
		s.Image = val
		p.pos++
	case "alt":
		s.Alt = val
		p.pos++
	default:
		// Unknown keys are authored prose that happens to contain a colon.
		s.Text = append(s.Text, ln)
		p.pos++
	}
}

// foldFreeform captures unlabeled lines as body text.
func (p *parser) foldFreeform(s *ir.Slide) {
	if strings.HasPrefix(p.line(p.pos), bulletPrefix) {
		// A stray bullet outside a Bullets: list is still body copy.
		s.Text = append(s.Text, p.line(p.pos))
		p.pos++
		return
	}
	s.Text = append(s.Text, p.collectText(p.pos, "")...)
}

// collectText gathers the same-line value plus following lines until a blank line, bullet,
// field or section. It leaves pos on the line that ended the capture.
func (p *parser) collectText(start int, first string) []string {
	var out []string
	if first != "" {
		out = append(out, first)
	}
	j := start
	for ; j < len(p.lines); j++ {
		ln := p.line(j)
		if atCaptureEnd(ln) {
			break
		}
		out = append(out, ln)
	}
	p.pos = j
	return out
}

// collectBullets gathers "- " lines until anything else.
func (p *parser) collectBullets(start int) []string {
	var out []string
	j := start
	for ; j < len(p.lines); j++ {
		ln := p.line(j)
		if !strings.HasPrefix(ln, bulletPrefix) {
			break
		}
		if item := strings.TrimSpace(ln[len(bulletPrefix):]); item != "" {
			out = append(out, item)
		}
	}
	p.pos = j
	return out
}

func (p *parser) quizLine(q *ir.Quiz, ln string) {
	m := fieldRe.FindStringSubmatch(ln)
	if m == nil {
		return
	}
	key, val := strings.ToLower(m[1]), strings.TrimSpace(m[2])
	switch key {
	case "title":
		q.Title = val
	case "question":
		q.Question = val
	case "a", "b", "c", "d":
		q.Options[strings.ToUpper(key)] = val
	case "correct", "answer":
		q.Answer = answerLetters(val)
	case "feedbackcorrect", "feedback_correct":
		q.FeedbackCorrect = val
	case "feedbackincorrect", "feedback_incorrect":
		q.FeedbackIncorrect = val
	default:
		Log.Debugf("Ignoring unknown quiz field %q", m[1])
	}
}

// answerLetters keeps the A-D letters of an authored answer in order, comma-joined.
func answerLetters(val string) string {
	var letters []string
	for _, part := range ir.SplitAnswer(ir.CleanAnswer(val)) {
		if ir.IsLetter(part) {
			letters = append(letters, part)
		}
	}
	return strings.Join(letters, ",")
}
