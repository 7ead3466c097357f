// Package blockdoc reads and writes block lists as structured documents. Input may be YAML or
// JSON, either a bare list of blocks or a mapping with a "blocks" list. Each block carries a
// "type" of slide, quiz or quiz_single; quizzes may use the letter form or the legacy
// choices/correctIndex form.
package blockdoc

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/exlskills/storyboardutil/config"
	"github.com/exlskills/storyboardutil/extfmt"
	"github.com/exlskills/storyboardutil/ir"
	"github.com/exlskills/storyboardutil/quiz"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

var Log = config.Cfg().GetLogger()

func NewBlockDocFormat() *BlockDoc {
	return &BlockDoc{}
}

type BlockDoc struct {
}

type document struct {
	Title  string                   `yaml:"title" json:"title"`
	Blocks []map[string]interface{} `yaml:"blocks" json:"blocks"`
}

func (d *BlockDoc) Import(from extfmt.Source) (toBlocks []ir.Block, err error) {
	records, err := decode(from.Data)
	if err != nil {
		return nil, errors.WithStack(&extfmt.ImportError{Name: from.Name, Cause: err})
	}
	return FromRecords(records), nil
}

func decode(data []byte) ([]map[string]interface{}, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	var list []map[string]interface{}
	var doc document
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, err
		}
		return list, nil
	case '{':
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, err
		}
		return doc.Blocks, nil
	}
	if err := yaml.Unmarshal(trimmed, &list); err == nil {
		return list, nil
	}
	if err := yaml.Unmarshal(trimmed, &doc); err != nil {
		return nil, err
	}
	return doc.Blocks, nil
}

// FromRecords maps decoded records to blocks, skipping records of unknown type.
func FromRecords(records []map[string]interface{}) []ir.Block {
	blocks := make([]ir.Block, 0, len(records))
	for i, rec := range records {
		f := quiz.Fields(rec)
		switch strings.ToLower(f.Get("type")) {
		case ir.SlideBlockType:
			blocks = append(blocks, slideFrom(f))
		case ir.QuizBlockType, "quiz_single":
			blocks = append(blocks, quiz.Normalize(f))
		default:
			Log.Debugf("Skipping block %d with type %q", i, f.Get("type"))
		}
	}
	return blocks
}

func slideFrom(f quiz.Fields) *ir.Slide {
	s := &ir.Slide{
		Title:     f.Get("title"),
		Text:      linesOf(f["text"]),
		Bullets:   linesOf(f["bullets"]),
		Narration: f.Get("narration"),
		Image:     f.Get("image"),
		Alt:       f.Get("alt"),
	}
	if s.Title == "" {
		s.Title = ir.DefaultSlideTitle
	}
	return s
}

// linesOf flattens a string or list of strings into trimmed non-empty lines.
func linesOf(v interface{}) []string {
	var raw []string
	switch vv := v.(type) {
	case string:
		raw = []string{vv}
	case []interface{}:
		for _, item := range vv {
			if s, ok := item.(string); ok {
				raw = append(raw, s)
			}
		}
	}
	var out []string
	for _, r := range raw {
		for _, ln := range strings.Split(r, "\n") {
			if ln = strings.TrimSpace(ln); ln != "" {
				out = append(out, ln)
			}
		}
	}
	return out
}

type slideRecord struct {
	Type      string   `yaml:"type"`
	Title     string   `yaml:"title"`
	Text      []string `yaml:"text,omitempty"`
	Bullets   []string `yaml:"bullets,omitempty"`
	Narration string   `yaml:"narration,omitempty"`
	Image     string   `yaml:"image,omitempty"`
	Alt       string   `yaml:"alt,omitempty"`
}

type quizRecord struct {
	Type              string `yaml:"type"`
	Title             string `yaml:"title,omitempty"`
	Question          string `yaml:"question"`
	A                 string `yaml:"A,omitempty"`
	B                 string `yaml:"B,omitempty"`
	C                 string `yaml:"C,omitempty"`
	D                 string `yaml:"D,omitempty"`
	Answer            string `yaml:"answer"`
	FeedbackCorrect   string `yaml:"feedback_correct,omitempty"`
	FeedbackIncorrect string `yaml:"feedback_incorrect,omitempty"`
}

// Export writes the blocks as a YAML list in the letter form.
func (d *BlockDoc) Export(fromBlocks []ir.Block, opts extfmt.Options, to io.Writer) (err error) {
	records := make([]interface{}, 0, len(fromBlocks))
	for _, b := range fromBlocks {
		switch blk := b.(type) {
		case *ir.Slide:
			records = append(records, slideRecord{
				Type: ir.SlideBlockType, Title: blk.Title, Text: blk.Text, Bullets: blk.Bullets,
				Narration: blk.Narration, Image: blk.Image, Alt: blk.Alt,
			})
		case *ir.Quiz:
			records = append(records, quizRecord{
				Type: ir.QuizBlockType, Title: blk.Title, Question: blk.Question,
				A: blk.Option("A"), B: blk.Option("B"), C: blk.Option("C"), D: blk.Option("D"),
				Answer: blk.Answer, FeedbackCorrect: blk.FeedbackCorrect, FeedbackIncorrect: blk.FeedbackIncorrect,
			})
		}
	}
	out, err := yaml.Marshal(records)
	if err != nil {
		return errors.Wrap(err, "blockdoc: marshal failed")
	}
	_, err = to.Write(out)
	return errors.Wrap(err, "blockdoc: write failed")
}

func (d *BlockDoc) FileExtension() string {
	return "yaml"
}

func (d *BlockDoc) MIMEType() string {
	return "application/x-yaml"
}
