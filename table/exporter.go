package table

import (
	"encoding/csv"
	"io"

	"github.com/exlskills/storyboardutil/ir"
	"github.com/pkg/errors"
)

// QuizHeader is the header row of the quiz table.
var QuizHeader = []string{"Title", "Question", "A", "B", "C", "D", "Correct (Single or Multiple)", "FeedbackCorrect", "FeedbackIncorrect"}

// QuizRow renders one quiz as a table row.
func QuizRow(q *ir.Quiz) []string {
	return []string{
		q.Title,
		q.Question,
		q.Option("A"),
		q.Option("B"),
		q.Option("C"),
		q.Option("D"),
		ir.CleanAnswer(q.Answer),
		q.FeedbackCorrect,
		q.FeedbackIncorrect,
	}
}

// ExportQuizCSV writes one row per quiz in block order, after a byte-order mark and the header.
// Slides are skipped.
func ExportQuizCSV(blocks []ir.Block, w io.Writer) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return errors.Wrap(err, "table: write failed")
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(QuizHeader); err != nil {
		return errors.Wrap(err, "table: write failed")
	}
	n := 0
	for _, b := range blocks {
		q, ok := b.(*ir.Quiz)
		if !ok {
			continue
		}
		if err := cw.Write(QuizRow(q)); err != nil {
			return errors.Wrap(err, "table: write failed")
		}
		n++
	}
	cw.Flush()
	Log.Debugf("Exported %d quiz rows", n)
	return errors.Wrap(cw.Error(), "table: write failed")
}
