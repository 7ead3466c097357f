package script

import (
	"fmt"
	"strings"

	"github.com/exlskills/storyboardutil/ir"
)

// Write renders blocks back into markup that Parse reads to the same blocks.
func Write(blocks []ir.Block) string {
	sb := strings.Builder{}
	for i, b := range blocks {
		if i > 0 {
			sb.WriteString("\n")
		}
		switch blk := b.(type) {
		case *ir.Slide:
			writeSlide(&sb, blk)
		case *ir.Quiz:
			writeQuiz(&sb, blk)
		}
	}
	return sb.String()
}

func writeSlide(sb *strings.Builder, s *ir.Slide) {
	sb.WriteString(fmt.Sprintf("## Slide: %s\n", s.GetDisplayName()))
	if len(s.Text) > 0 {
		sb.WriteString("Text:\n")
		for _, ln := range s.Text {
			sb.WriteString(ln + "\n")
		}
	}
	if len(s.Bullets) > 0 {
		sb.WriteString("Bullets:\n")
		for _, ln := range s.Bullets {
			sb.WriteString(bulletPrefix + ln + "\n")
		}
	}
	if s.Narration != "" {
		sb.WriteString("Narration:\n")
		for _, ln := range strings.Split(s.Narration, "\n") {
			if ln = strings.TrimSpace(ln); ln != "" {
				sb.WriteString(ln + "\n")
			}
		}
	}
	if s.Image != "" {
		sb.WriteString(fmt.Sprintf("Image: %s\n", s.Image))
	}
	if s.Alt != "" {
		sb.WriteString(fmt.Sprintf("Alt: %s\n", s.Alt))
	}
}

func writeQuiz(sb *strings.Builder, q *ir.Quiz) {
	sb.WriteString("## Quiz: Single Choice\n")
	if q.Title != "" {
		sb.WriteString(fmt.Sprintf("Title: %s\n", q.Title))
	}
	sb.WriteString(fmt.Sprintf("Question: %s\n", q.Question))
	for _, l := range ir.Letters {
		if opt := q.Option(l); opt != "" {
			sb.WriteString(fmt.Sprintf("%s: %s\n", l, opt))
		}
	}
	if q.Answer != "" {
		sb.WriteString(fmt.Sprintf("Answer: %s\n", q.Answer))
	}
	if q.FeedbackCorrect != "" {
		sb.WriteString(fmt.Sprintf("FeedbackCorrect: %s\n", q.FeedbackCorrect))
	}
	if q.FeedbackIncorrect != "" {
		sb.WriteString(fmt.Sprintf("FeedbackIncorrect: %s\n", q.FeedbackIncorrect))
	}
}
