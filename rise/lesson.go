package rise

import (
	"fmt"
	"strings"

	"github.com/exlskills/storyboardutil/ir"
)

const correctMarker = "   ← correct"

// Lesson renders blocks as Rise-style lesson markdown: a text block per slide and a knowledge
// check per quiz, each followed by a rule.
func Lesson(title string, blocks []ir.Block) string {
	mdStr := strings.Builder{}
	mdStr.WriteString(fmt.Sprintf("# Lesson: %s\n\n", title))
	for _, b := range blocks {
		switch blk := b.(type) {
		case *ir.Slide:
			writeTextBlock(&mdStr, blk)
		case *ir.Quiz:
			writeKnowledgeCheck(&mdStr, blk)
		default:
			continue
		}
		mdStr.WriteString("---\n\n")
	}
	return strings.TrimSpace(mdStr.String()) + "\n"
}

func writeTextBlock(mdStr *strings.Builder, s *ir.Slide) {
	mdStr.WriteString("## Text Block\n")
	mdStr.WriteString(fmt.Sprintf("**%s**\n", s.GetDisplayName()))
	for _, ln := range s.Text {
		mdStr.WriteString(ln + "\n")
	}
	mdStr.WriteString(strings.TrimSpace(s.Narration) + "\n\n")
	if len(s.Bullets) > 0 {
		for _, b := range s.Bullets {
			mdStr.WriteString(fmt.Sprintf("- %s\n", b))
		}
		mdStr.WriteString("\n")
	}
	if s.HasImage() {
		mdStr.WriteString(fmt.Sprintf("_Image (upload %s). Alt: \"%s\"_\n\n", strings.TrimSpace(s.Image), strings.TrimSpace(s.Alt)))
	}
}

func writeKnowledgeCheck(mdStr *strings.Builder, q *ir.Quiz) {
	kind := "Single Choice"
	if q.IsMultiAnswer() {
		kind = "Multiple Choice"
	}
	mdStr.WriteString(fmt.Sprintf("## Knowledge Check (%s)\n", kind))
	if q.Title != "" {
		mdStr.WriteString(fmt.Sprintf("_%s_\n", q.Title))
	}
	mdStr.WriteString(fmt.Sprintf("**%s**\n", q.Question))
	for _, l := range ir.Letters {
		opt := q.Option(l)
		if opt == "" {
			continue
		}
		if q.IsCorrect(l) {
			mdStr.WriteString(fmt.Sprintf("- **%s: %s**%s\n", l, opt, correctMarker))
		} else {
			mdStr.WriteString(fmt.Sprintf("- %s: %s\n", l, opt))
		}
	}
	mdStr.WriteString("\n")
	mdStr.WriteString(fmt.Sprintf("Feedback (Correct): %s\n", q.FeedbackCorrect))
	mdStr.WriteString(fmt.Sprintf("Feedback (Incorrect): %s\n\n", q.FeedbackIncorrect))
}
