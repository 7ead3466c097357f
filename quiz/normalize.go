// Package quiz reconciles the historical quiz shapes into the canonical letter-keyed ir.Quiz.
//
// Two shapes reach the system. The index form carries four choices and a zero-based
// correctIndex; it is a legacy input shape only and never leaves this package. The letter form
// carries options keyed A-D and an answer string that may name several letters.
package quiz

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/exlskills/storyboardutil/ir"
)

// IndexQuiz is the legacy single-choice shape.
type IndexQuiz struct {
	Title             string
	Question          string
	Choices           []string
	CorrectIndex      *int
	FeedbackCorrect   string
	FeedbackIncorrect string
}

// LetterForIndex maps a zero-based choice index to its letter. Nil, negative and
// out-of-range indexes map to "".
func LetterForIndex(idx *int) string {
	if idx == nil || *idx < 0 || *idx >= len(ir.Letters) {
		return ""
	}
	return ir.Letters[*idx]
}

// FromIndex converts the index form. Choices beyond the fourth are dropped and missing ones are
// left empty.
func FromIndex(iq IndexQuiz) *ir.Quiz {
	q := ir.NewQuiz()
	q.Title = iq.Title
	q.Question = iq.Question
	for i, letter := range ir.Letters {
		if i < len(iq.Choices) {
			q.Options[letter] = iq.Choices[i]
		} else {
			q.Options[letter] = ""
		}
	}
	q.Answer = LetterForIndex(iq.CorrectIndex)
	q.FeedbackCorrect = iq.FeedbackCorrect
	q.FeedbackIncorrect = iq.FeedbackIncorrect
	return q
}

// Fields is a loosely keyed quiz record, as decoded from a document or spreadsheet cell.
type Fields map[string]interface{}

// Get looks up the first present key among names and renders it as a trimmed string.
// Lookup tries the exact key first, then a case-insensitive match.
func (f Fields) Get(names ...string) string {
	for _, n := range names {
		if v, ok := f[n]; ok && v != nil {
			if s := stringify(v); s != "" {
				return s
			}
		}
	}
	for _, n := range names {
		for k, v := range f {
			if strings.EqualFold(k, n) && v != nil {
				if s := stringify(v); s != "" {
					return s
				}
			}
		}
	}
	return ""
}

// FromLetters converts the letter form. The snake-case feedback keys win over the camel-case
// ones. The answer is uppercased with whitespace removed.
func FromLetters(f Fields) *ir.Quiz {
	q := ir.NewQuiz()
	q.Title = f.Get("title")
	q.Question = f.Get("question")
	for _, letter := range ir.Letters {
		q.Options[letter] = f.Get(letter, strings.ToLower(letter))
	}
	q.Answer = ir.CleanAnswer(f.Get("answer", "correct"))
	q.FeedbackCorrect = f.Get("feedback_correct", "feedbackCorrect")
	q.FeedbackIncorrect = f.Get("feedback_incorrect", "feedbackIncorrect")
	return q
}

// IsIndexForm reports whether the record uses the legacy choices/correctIndex shape.
func IsIndexForm(f Fields) bool {
	_, hasChoices := f["choices"]
	_, hasIndex := f["correctIndex"]
	return hasChoices || hasIndex
}

// Normalize converts either shape into the canonical form.
func Normalize(f Fields) *ir.Quiz {
	if !IsIndexForm(f) {
		return FromLetters(f)
	}
	iq := IndexQuiz{
		Title:             f.Get("title"),
		Question:          f.Get("question"),
		Choices:           choicesOf(f["choices"]),
		CorrectIndex:      indexOf(f["correctIndex"]),
		FeedbackCorrect:   f.Get("feedback_correct", "feedbackCorrect"),
		FeedbackIncorrect: f.Get("feedback_incorrect", "feedbackIncorrect"),
	}
	return FromIndex(iq)
}

func choicesOf(v interface{}) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []interface{}:
		out := make([]string, 0, len(vv))
		for _, c := range vv {
			out = append(out, stringify(c))
		}
		return out
	}
	return nil
}

func indexOf(v interface{}) *int {
	var idx int
	switch vv := v.(type) {
	case int:
		idx = vv
	case int64:
		idx = int(vv)
	case float64:
		idx = int(vv)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(vv))
		if err != nil {
			return nil
		}
		idx = n
	default:
		return nil
	}
	return &idx
}

func stringify(v interface{}) string {
	switch vv := v.(type) {
	case string:
		return strings.TrimSpace(vv)
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(vv))
	}
}
