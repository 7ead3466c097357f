package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io/ioutil"
	"path"
	"strings"

	"github.com/pkg/errors"
)

// Summary is a read-back of a .pptx package, enough to check what a renderer produced.
type Summary struct {
	Width  int64
	Height int64
	Slides []SlideSummary
}

type SlideSummary struct {
	Number     int
	Background string
	Shapes     []ShapeSummary
	Pictures   []string
	Notes      []string
}

type ShapeSummary struct {
	Name       string
	Paragraphs []ParagraphSummary
}

type ParagraphSummary struct {
	Text   string
	Bullet bool
	Size   int
	Bold   bool
	Font   string
	Color  string
}

// Shape returns the first shape with the given name, or nil.
func (s *SlideSummary) Shape(name string) *ShapeSummary {
	for i := range s.Shapes {
		if s.Shapes[i].Name == name {
			return &s.Shapes[i]
		}
	}
	return nil
}

func (s *ShapeSummary) Texts() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.Paragraphs))
	for _, p := range s.Paragraphs {
		out = append(out, p.Text)
	}
	return out
}

type xColor struct {
	Val string `xml:"val,attr"`
}

type xRun struct {
	Props struct {
		Size  int    `xml:"sz,attr"`
		Bold  string `xml:"b,attr"`
		Color xColor `xml:"solidFill>srgbClr"`
		Latin struct {
			Typeface string `xml:"typeface,attr"`
		} `xml:"latin"`
	} `xml:"rPr"`
	Text string `xml:"t"`
}

type xPara struct {
	Bullet []struct {
		Char string `xml:"char,attr"`
	} `xml:"pPr>buChar"`
	Runs []xRun `xml:"r"`
}

type xShape struct {
	Props struct {
		Name string `xml:"name,attr"`
	} `xml:"nvSpPr>cNvPr"`
	Paragraphs []xPara `xml:"txBody>p"`
}

type xPicture struct {
	Props struct {
		Descr string `xml:"descr,attr"`
	} `xml:"nvPicPr>cNvPr"`
}

type xSlide struct {
	Background xColor     `xml:"cSld>bg>bgPr>solidFill>srgbClr"`
	Shapes     []xShape   `xml:"cSld>spTree>sp"`
	Pictures   []xPicture `xml:"cSld>spTree>pic"`
}

type xPresentation struct {
	Size struct {
		CX int64 `xml:"cx,attr"`
		CY int64 `xml:"cy,attr"`
	} `xml:"sldSz"`
	SlideIDs []struct {
		RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldIdLst>sldId"`
}

type xRels struct {
	Rels []struct {
		ID     string `xml:"Id,attr"`
		Type   string `xml:"Type,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

type pkgReader struct {
	files map[string]*zip.File
}

func (r *pkgReader) read(name string, v interface{}) error {
	f, ok := r.files[name]
	if !ok {
		return errors.Errorf("pptx: missing part %s", name)
	}
	rc, err := f.Open()
	if err != nil {
		return errors.Wrapf(err, "pptx: open %s", name)
	}
	defer rc.Close()
	data, err := ioutil.ReadAll(rc)
	if err != nil {
		return errors.Wrapf(err, "pptx: read %s", name)
	}
	return errors.Wrapf(xml.Unmarshal(data, v), "pptx: parse %s", name)
}

// rels maps relationship ids to package paths for the part at name.
func (r *pkgReader) rels(name string) (map[string]string, map[string]string, error) {
	dir, file := path.Split(name)
	relsName := dir + "_rels/" + file + ".rels"
	byID := map[string]string{}
	byType := map[string]string{}
	if _, ok := r.files[relsName]; !ok {
		return byID, byType, nil
	}
	var x xRels
	if err := r.read(relsName, &x); err != nil {
		return nil, nil, err
	}
	for _, rl := range x.Rels {
		target := path.Join(dir, rl.Target)
		byID[rl.ID] = target
		byType[path.Base(rl.Type)] = target
	}
	return byID, byType, nil
}

// Inspect opens a .pptx package and summarizes its slides in presentation order.
func Inspect(data []byte) (*Summary, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.Wrap(err, "pptx: not a package")
	}
	r := &pkgReader{files: map[string]*zip.File{}}
	for _, f := range zr.File {
		r.files[f.Name] = f
	}
	var pres xPresentation
	if err := r.read("ppt/presentation.xml", &pres); err != nil {
		return nil, err
	}
	presRels, _, err := r.rels("ppt/presentation.xml")
	if err != nil {
		return nil, err
	}
	sum := &Summary{Width: pres.Size.CX, Height: pres.Size.CY}
	for i, id := range pres.SlideIDs {
		slidePath, ok := presRels[id.RID]
		if !ok {
			return nil, errors.Errorf("pptx: slide %d has no relationship %s", i+1, id.RID)
		}
		ss, err := r.slide(slidePath)
		if err != nil {
			return nil, err
		}
		ss.Number = i + 1
		sum.Slides = append(sum.Slides, *ss)
	}
	return sum, nil
}

func (r *pkgReader) slide(name string) (*SlideSummary, error) {
	var x xSlide
	if err := r.read(name, &x); err != nil {
		return nil, err
	}
	ss := &SlideSummary{Background: x.Background.Val}
	for _, shp := range x.Shapes {
		ss.Shapes = append(ss.Shapes, summarizeShape(shp))
	}
	for _, pic := range x.Pictures {
		ss.Pictures = append(ss.Pictures, pic.Props.Descr)
	}
	_, byType, err := r.rels(name)
	if err != nil {
		return nil, err
	}
	if notesPath, ok := byType["notesSlide"]; ok {
		var notes xSlide
		if err := r.read(notesPath, &notes); err != nil {
			return nil, err
		}
		for _, shp := range notes.Shapes {
			ss.Notes = append(ss.Notes, summarizeShape(shp).textsNonEmpty()...)
		}
	}
	return ss, nil
}

func summarizeShape(x xShape) ShapeSummary {
	s := ShapeSummary{Name: x.Props.Name}
	for _, p := range x.Paragraphs {
		ps := ParagraphSummary{Bullet: len(p.Bullet) > 0}
		var text strings.Builder
		for i, run := range p.Runs {
			text.WriteString(run.Text)
			if i == 0 {
				ps.Size = run.Props.Size
				ps.Bold = run.Props.Bold == "1" || run.Props.Bold == "true"
				ps.Font = run.Props.Latin.Typeface
				ps.Color = run.Props.Color.Val
			}
		}
		ps.Text = text.String()
		s.Paragraphs = append(s.Paragraphs, ps)
	}
	return s
}

func (s ShapeSummary) textsNonEmpty() []string {
	var out []string
	for _, p := range s.Paragraphs {
		if p.Text != "" {
			out = append(out, p.Text)
		}
	}
	return out
}

func (s SlideSummary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "slide %d", s.Number)
	if s.Background != "" {
		fmt.Fprintf(&sb, " bg=#%s", s.Background)
	}
	for _, shp := range s.Shapes {
		fmt.Fprintf(&sb, "\n  [%s] %s", shp.Name, strings.Join(shp.Texts(), " | "))
	}
	for _, descr := range s.Pictures {
		fmt.Fprintf(&sb, "\n  [picture] %s", descr)
	}
	for _, n := range s.Notes {
		fmt.Fprintf(&sb, "\n  [notes] %s", n)
	}
	return sb.String()
}
