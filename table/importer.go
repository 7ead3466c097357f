package table

import (
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/exlskills/storyboardutil/ir"
	"github.com/exlskills/storyboardutil/quiz"
)

// Row is one spreadsheet row read positionally: column 1 title, 2 body, 3 narration.
type Row struct {
	Title     string
	Body      string
	Narration string
}

var (
	breakRe = regexp.MustCompile(`(?i)<br\s*/?>`)
	// A bare dash directly followed by text ("-item") also marks a bullet.
	bareDashRe = regexp2.MustCompile(`^-(?! )`, regexp2.None)
)

var bulletPrefixes = []string{"- ", "• ", "* ", "– ", "— "}

// ImportRows maps rows to blocks in row order. Rows with every cell blank are skipped.
func ImportRows(rows []Row) []ir.Block {
	blocks := make([]ir.Block, 0, len(rows))
	for _, r := range rows {
		if strings.TrimSpace(r.Title) == "" && strings.TrimSpace(r.Body) == "" && strings.TrimSpace(r.Narration) == "" {
			continue
		}
		blocks = append(blocks, importRow(r))
	}
	return blocks
}

func importRow(r Row) ir.Block {
	body := unescapeNewlines(r.Body)
	lines := splitLines(body)
	title := strings.TrimSpace(r.Title)
	if strings.HasPrefix(strings.ToUpper(title), "QUIZ") {
		return quizFromRow(title, lines)
	}
	return slideFromRow(title, body, lines, r.Narration)
}

func unescapeNewlines(s string) string {
	return strings.Replace(s, `\n`, "\n", -1)
}

// splitLines splits on HTML breaks and newlines into trimmed, non-empty lines.
func splitLines(s string) []string {
	s = breakRe.ReplaceAllString(s, "\n")
	var out []string
	for _, ln := range strings.Split(s, "\n") {
		if ln = strings.TrimSpace(ln); ln != "" {
			out = append(out, ln)
		}
	}
	return out
}

func quizFromRow(title string, lines []string) *ir.Quiz {
	if idx := strings.Index(title, ":"); idx >= 0 {
		title = title[idx+1:]
	}
	fields := quiz.Fields{}
	for _, ln := range lines {
		idx := strings.Index(ln, ":")
		if idx < 0 {
			continue
		}
		key := normalizeKey(ln[:idx])
		val := strings.TrimSpace(ln[idx+1:])
		switch key {
		case "question", "answer", "correct":
			fields[key] = val
		case "a", "b", "c", "d":
			fields[strings.ToUpper(key)] = val
		case "feedbackcorrect":
			fields["feedback_correct"] = val
		case "feedbackincorrect":
			fields["feedback_incorrect"] = val
		}
	}
	q := quiz.FromLetters(fields)
	q.Title = strings.TrimSpace(title)
	return q
}

func normalizeKey(k string) string {
	k = strings.ToLower(strings.TrimSpace(k))
	k = strings.Replace(k, " ", "", -1)
	return strings.Replace(k, "_", "", -1)
}

func slideFromRow(title, body string, lines []string, narration string) *ir.Slide {
	if len(lines) == 1 && strings.Contains(lines[0], ";") && !strings.Contains(body, "\n") {
		lines = splitSemicolons(lines[0])
	}
	s := &ir.Slide{Title: title}
	if s.Title == "" {
		s.Title = ir.DefaultSlideTitle
	}
	s.Narration = strings.TrimSpace(strings.Join(splitLines(unescapeNewlines(narration)), "\n"))

	items := make([]string, 0, len(lines))
	bulleted := false
	for _, ln := range lines {
		item, ok := stripBullet(ln)
		if ok {
			bulleted = true
		}
		if item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return s
	}
	if bulleted {
		s.Bullets = items
	} else {
		s.Text = items
	}
	return s
}

func splitSemicolons(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// stripBullet removes a bullet marker and reports whether one was present.
func stripBullet(ln string) (string, bool) {
	for _, p := range bulletPrefixes {
		if strings.HasPrefix(ln, p) {
			return strings.TrimSpace(ln[len(p):]), true
		}
	}
	if ok, err := bareDashRe.MatchString(ln); err == nil && ok {
		return strings.TrimSpace(ln[1:]), true
	}
	return ln, false
}
