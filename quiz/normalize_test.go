package quiz

import "testing"

func intp(i int) *int { return &i }

func TestLetterForIndex(t *testing.T) {
	cases := []struct {
		idx  *int
		want string
	}{
		{nil, ""},
		{intp(-1), ""},
		{intp(0), "A"},
		{intp(3), "D"},
		{intp(4), ""},
	}
	for _, c := range cases {
		if got := LetterForIndex(c.idx); got != c.want {
			t.Errorf("LetterForIndex(%v) = %q, want %q", c.idx, got, c.want)
		}
	}
}

func TestFromIndexPadsChoices(t *testing.T) {
	q := FromIndex(IndexQuiz{
		Question:        "Pick one",
		Choices:         []string{"x", "y"},
		CorrectIndex:    intp(1),
		FeedbackCorrect: "yes",
	})
	if q.Answer != "B" {
		t.Fatalf("expected answer B, got %q", q.Answer)
	}
	if q.Option("A") != "x" || q.Option("B") != "y" || q.Option("C") != "" || q.Option("D") != "" {
		t.Fatalf("unexpected options: %#v", q.Options)
	}
	if q.FeedbackCorrect != "yes" || q.FeedbackIncorrect != "" {
		t.Fatalf("unexpected feedback: %q / %q", q.FeedbackCorrect, q.FeedbackIncorrect)
	}
}

func TestFromLettersPrefersSnakeCaseFeedback(t *testing.T) {
	q := FromLetters(Fields{
		"question":          "Q?",
		"A":                 "one",
		"c":                 "three",
		"answer":            " a, c ",
		"feedback_correct":  "snake",
		"feedbackCorrect":   "camel",
		"feedbackIncorrect": "camel only",
	})
	if q.Answer != "A,C" {
		t.Fatalf("expected A,C got %q", q.Answer)
	}
	if q.Option("A") != "one" || q.Option("C") != "three" {
		t.Fatalf("unexpected options: %#v", q.Options)
	}
	if q.FeedbackCorrect != "snake" {
		t.Fatalf("expected snake-case feedback, got %q", q.FeedbackCorrect)
	}
	if q.FeedbackIncorrect != "camel only" {
		t.Fatalf("expected camel-case fallback, got %q", q.FeedbackIncorrect)
	}
}

func TestNormalizeDetectsIndexForm(t *testing.T) {
	q := Normalize(Fields{
		"question":     "2+2?",
		"choices":      []interface{}{"3", "4", "5", "6", "7"},
		"correctIndex": 1,
	})
	if q.Answer != "B" || q.Option("D") != "6" {
		t.Fatalf("unexpected quiz: %+v", q)
	}

	q = Normalize(Fields{"question": "?", "choices": []interface{}{"a"}, "correctIndex": nil})
	if q.Answer != "" {
		t.Fatalf("expected empty answer for null index, got %q", q.Answer)
	}

	q = Normalize(Fields{"question": "?", "choices": []interface{}{"a"}, "correctIndex": "7"})
	if q.Answer != "" {
		t.Fatalf("expected empty answer for out-of-range index, got %q", q.Answer)
	}
}

func TestNormalizeLetterForm(t *testing.T) {
	q := Normalize(Fields{"question": "?", "B": "b", "correct": "b"})
	if q.Answer != "B" || q.Option("B") != "b" {
		t.Fatalf("unexpected quiz: %+v", q)
	}
}
