package ir

import "strings"

const (
	SlideBlockType = "slide"
	QuizBlockType  = "quiz"

	DefaultSlideTitle = "Slide"
	DefaultQuizTitle  = "Knowledge Check"
)

// Letters are the quiz option labels in display order.
var Letters = []string{"A", "B", "C", "D"}

// Block is one unit of authored content. Blocks are produced once per request by an importer and
// are read-only for every exporter that consumes them.
type Block interface {
	GetBlockType() string
	GetDisplayName() string
}

type Slide struct {
	Title     string   `yaml:"title"`
	Text      []string `yaml:"text"`
	Bullets   []string `yaml:"bullets"`
	Narration string   `yaml:"narration"`
	Image     string   `yaml:"image"`
	Alt       string   `yaml:"alt"`
}

func (s *Slide) GetBlockType() string {
	return SlideBlockType
}

func (s *Slide) GetDisplayName() string {
	if strings.TrimSpace(s.Title) == "" {
		return DefaultSlideTitle
	}
	return strings.TrimSpace(s.Title)
}

func (s *Slide) HasImage() bool {
	return strings.TrimSpace(s.Image) != ""
}

// Quiz is the canonical letter-keyed quiz. Answer holds the correct letters comma-joined
// without spaces, e.g. "B" or "A,C".
type Quiz struct {
	Title             string            `yaml:"title"`
	Question          string            `yaml:"question"`
	Options           map[string]string `yaml:"options"`
	Answer            string            `yaml:"answer"`
	FeedbackCorrect   string            `yaml:"feedback_correct"`
	FeedbackIncorrect string            `yaml:"feedback_incorrect"`
}

func NewQuiz() *Quiz {
	return &Quiz{Options: map[string]string{}}
}

func (q *Quiz) GetBlockType() string {
	return QuizBlockType
}

func (q *Quiz) GetDisplayName() string {
	if strings.TrimSpace(q.Title) == "" {
		return DefaultQuizTitle
	}
	return strings.TrimSpace(q.Title)
}

// Option returns the text for a letter, empty when unset.
func (q *Quiz) Option(letter string) string {
	if q.Options == nil {
		return ""
	}
	return q.Options[strings.ToUpper(letter)]
}

// AnswerLetters splits Answer into its letters, in authored order.
func (q *Quiz) AnswerLetters() []string {
	return SplitAnswer(q.Answer)
}

func (q *Quiz) IsMultiAnswer() bool {
	return len(q.AnswerLetters()) > 1
}

// IsCorrect reports whether letter is one of the answer letters.
func (q *Quiz) IsCorrect(letter string) bool {
	for _, l := range q.AnswerLetters() {
		if l == strings.ToUpper(letter) {
			return true
		}
	}
	return false
}

// CleanAnswer uppercases an answer string and removes all whitespace.
func CleanAnswer(raw string) string {
	return strings.Join(strings.Fields(strings.ToUpper(raw)), "")
}

func SplitAnswer(answer string) []string {
	var out []string
	for _, part := range strings.Split(answer, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsLetter reports whether s is one of A-D.
func IsLetter(s string) bool {
	for _, l := range Letters {
		if s == l {
			return true
		}
	}
	return false
}

// CountBlocks returns the number of slides and quizzes in blocks.
func CountBlocks(blocks []Block) (slides, quizzes int) {
	for _, b := range blocks {
		switch b.GetBlockType() {
		case SlideBlockType:
			slides++
		case QuizBlockType:
			quizzes++
		}
	}
	return
}
