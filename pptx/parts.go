package pptx

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"
)

const (
	xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
	nsDecl    = `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"`

	relNS            = "http://schemas.openxmlformats.org/package/2006/relationships"
	relTypeBase      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/"
	relOfficeDoc     = relTypeBase + "officeDocument"
	relSlideMaster   = relTypeBase + "slideMaster"
	relSlideLayout   = relTypeBase + "slideLayout"
	relNotesMaster   = relTypeBase + "notesMaster"
	relNotesSlide    = relTypeBase + "notesSlide"
	relSlide         = relTypeBase + "slide"
	relTheme         = relTypeBase + "theme"
	relImage         = relTypeBase + "image"
	relExtendedProps = relTypeBase + "extended-properties"
	relCoreProps     = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"

	ctBase = "application/vnd.openxmlformats-officedocument."
)

type part struct {
	name string
	data []byte
}

type rel struct {
	id     string
	typ    string
	target string
}

func esc(s string) string {
	sb := strings.Builder{}
	xml.EscapeText(&sb, []byte(s))
	return sb.String()
}

func relsXML(rels []rel) []byte {
	sb := strings.Builder{}
	sb.WriteString(xmlHeader)
	sb.WriteString(`<Relationships xmlns="` + relNS + `">`)
	for _, r := range rels {
		fmt.Fprintf(&sb, `<Relationship Id="%s" Type="%s" Target="%s"/>`, r.id, r.typ, esc(r.target))
	}
	sb.WriteString(`</Relationships>`)
	return []byte(sb.String())
}

func (p *Presentation) parts() []part {
	parts := []part{
		{"[Content_Types].xml", p.contentTypesXML()},
		{"_rels/.rels", relsXML([]rel{
			{"rId1", relOfficeDoc, "ppt/presentation.xml"},
			{"rId2", relCoreProps, "docProps/core.xml"},
			{"rId3", relExtendedProps, "docProps/app.xml"},
		})},
		{"docProps/core.xml", p.corePropsXML()},
		{"docProps/app.xml", p.appPropsXML()},
		{"ppt/presentation.xml", p.presentationXML()},
		{"ppt/_rels/presentation.xml.rels", p.presentationRelsXML()},
		{"ppt/slideMasters/slideMaster1.xml", []byte(slideMasterXML)},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", relsXML([]rel{
			{"rId1", relSlideLayout, "../slideLayouts/slideLayout1.xml"},
			{"rId2", relTheme, "../theme/theme1.xml"},
		})},
		{"ppt/slideLayouts/slideLayout1.xml", []byte(slideLayoutXML)},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", relsXML([]rel{
			{"rId1", relSlideMaster, "../slideMasters/slideMaster1.xml"},
		})},
		{"ppt/notesMasters/notesMaster1.xml", []byte(notesMasterXML)},
		{"ppt/notesMasters/_rels/notesMaster1.xml.rels", relsXML([]rel{
			{"rId1", relTheme, "../theme/theme2.xml"},
		})},
		{"ppt/theme/theme1.xml", []byte(themeXML("Storyboard"))},
		{"ppt/theme/theme2.xml", []byte(themeXML("Notes"))},
	}
	for _, s := range p.slides {
		parts = append(parts, s.parts()...)
	}
	for _, m := range p.media {
		parts = append(parts, part{"ppt/media/" + m.name, m.data})
	}
	return parts
}

func (p *Presentation) contentTypesXML() []byte {
	sb := strings.Builder{}
	sb.WriteString(xmlHeader)
	sb.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	sb.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	sb.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	sb.WriteString(`<Default Extension="png" ContentType="image/png"/>`)
	sb.WriteString(`<Default Extension="jpeg" ContentType="image/jpeg"/>`)
	sb.WriteString(`<Default Extension="gif" ContentType="image/gif"/>`)
	override := func(name, ct string) {
		fmt.Fprintf(&sb, `<Override PartName="%s" ContentType="%s"/>`, name, ct)
	}
	override("/ppt/presentation.xml", ctBase+"presentationml.presentation.main+xml")
	override("/ppt/slideMasters/slideMaster1.xml", ctBase+"presentationml.slideMaster+xml")
	override("/ppt/slideLayouts/slideLayout1.xml", ctBase+"presentationml.slideLayout+xml")
	override("/ppt/notesMasters/notesMaster1.xml", ctBase+"presentationml.notesMaster+xml")
	override("/ppt/theme/theme1.xml", ctBase+"theme+xml")
	override("/ppt/theme/theme2.xml", ctBase+"theme+xml")
	for _, s := range p.slides {
		override(fmt.Sprintf("/ppt/slides/slide%d.xml", s.number), ctBase+"presentationml.slide+xml")
		if s.hasNotes() {
			override(fmt.Sprintf("/ppt/notesSlides/notesSlide%d.xml", s.number), ctBase+"presentationml.notesSlide+xml")
		}
	}
	override("/docProps/core.xml", "application/vnd.openxmlformats-package.core-properties+xml")
	override("/docProps/app.xml", ctBase+"extended-properties+xml")
	sb.WriteString(`</Types>`)
	return []byte(sb.String())
}

func (p *Presentation) corePropsXML() []byte {
	now := time.Now().UTC().Format(time.RFC3339)
	return []byte(xmlHeader +
		`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" xmlns:dcmitype="http://purl.org/dc/dcmitype/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` +
		`<dc:title>` + esc(p.Title) + `</dc:title>` +
		`<dc:creator>storyboardutil</dc:creator>` +
		`<dcterms:created xsi:type="dcterms:W3CDTF">` + now + `</dcterms:created>` +
		`<dcterms:modified xsi:type="dcterms:W3CDTF">` + now + `</dcterms:modified>` +
		`</cp:coreProperties>`)
}

func (p *Presentation) appPropsXML() []byte {
	notes := 0
	for _, s := range p.slides {
		if s.hasNotes() {
			notes++
		}
	}
	return []byte(xmlHeader +
		`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties" xmlns:vt="http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes">` +
		`<Application>storyboardutil</Application>` +
		`<PresentationFormat>On-screen Show (4:3)</PresentationFormat>` +
		fmt.Sprintf(`<Slides>%d</Slides><Notes>%d</Notes>`, len(p.slides), notes) +
		`</Properties>`)
}

// Presentation-level relationship ids: rId1 master, rId2 notes master, rId3 theme, then slides.
const firstSlideRel = 4

func (p *Presentation) presentationXML() []byte {
	sb := strings.Builder{}
	sb.WriteString(xmlHeader)
	sb.WriteString(`<p:presentation ` + nsDecl + ` saveSubsetFonts="1">`)
	sb.WriteString(`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`)
	sb.WriteString(`<p:notesMasterIdLst><p:notesMasterId r:id="rId2"/></p:notesMasterIdLst>`)
	if len(p.slides) > 0 {
		sb.WriteString(`<p:sldIdLst>`)
		for i := range p.slides {
			fmt.Fprintf(&sb, `<p:sldId id="%d" r:id="rId%d"/>`, 256+i, firstSlideRel+i)
		}
		sb.WriteString(`</p:sldIdLst>`)
	}
	fmt.Fprintf(&sb, `<p:sldSz cx="%d" cy="%d"/>`, p.Width, p.Height)
	sb.WriteString(`<p:notesSz cx="6858000" cy="9144000"/>`)
	sb.WriteString(`</p:presentation>`)
	return []byte(sb.String())
}

func (p *Presentation) presentationRelsXML() []byte {
	rels := []rel{
		{"rId1", relSlideMaster, "slideMasters/slideMaster1.xml"},
		{"rId2", relNotesMaster, "notesMasters/notesMaster1.xml"},
		{"rId3", relTheme, "theme/theme1.xml"},
	}
	for i, s := range p.slides {
		rels = append(rels, rel{fmt.Sprintf("rId%d", firstSlideRel+i), relSlide, fmt.Sprintf("slides/slide%d.xml", s.number)})
	}
	return relsXML(rels)
}

func (s *Slide) parts() []part {
	rels := []rel{{"rId1", relSlideLayout, "../slideLayouts/slideLayout1.xml"}}
	if s.hasNotes() {
		rels = append(rels, rel{"rId2", relNotesSlide, fmt.Sprintf("../notesSlides/notesSlide%d.xml", s.number)})
	}
	for i, m := range s.images {
		rels = append(rels, rel{fmt.Sprintf("rId%d", i+3), relImage, "../media/" + m.name})
	}
	parts := []part{
		{fmt.Sprintf("ppt/slides/slide%d.xml", s.number), s.slideXML()},
		{fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", s.number), relsXML(rels)},
	}
	if s.hasNotes() {
		parts = append(parts,
			part{fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", s.number), s.notesXML()},
			part{fmt.Sprintf("ppt/notesSlides/_rels/notesSlide%d.xml.rels", s.number), relsXML([]rel{
				{"rId1", relNotesMaster, "../notesMasters/notesMaster1.xml"},
				{"rId2", relSlide, fmt.Sprintf("../slides/slide%d.xml", s.number)},
			})},
		)
	}
	return parts
}

const groupShapeProps = `<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
	`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`

func (s *Slide) slideXML() []byte {
	sb := strings.Builder{}
	sb.WriteString(xmlHeader)
	sb.WriteString(`<p:sld ` + nsDecl + `><p:cSld>`)
	if s.background != nil {
		fmt.Fprintf(&sb, `<p:bg><p:bgPr><a:solidFill><a:srgbClr val="%s"/></a:solidFill><a:effectLst/></p:bgPr></p:bg>`, s.background.Hex())
	}
	sb.WriteString(`<p:spTree>` + groupShapeProps)
	for i, shp := range s.shapes {
		shp.writeXML(&sb, i+2)
	}
	sb.WriteString(`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`)
	return []byte(sb.String())
}

func (s *Slide) notesXML() []byte {
	sb := strings.Builder{}
	sb.WriteString(xmlHeader)
	sb.WriteString(`<p:notes ` + nsDecl + `><p:cSld><p:spTree>` + groupShapeProps)
	sb.WriteString(`<p:sp><p:nvSpPr><p:cNvPr id="2" name="Notes Placeholder"/><p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr><p:nvPr><p:ph type="body" idx="1"/></p:nvPr></p:nvSpPr>`)
	sb.WriteString(notesBodyFrame)
	s.notes.writeXML(&sb)
	sb.WriteString(`</p:sp></p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:notes>`)
	return []byte(sb.String())
}

type textBox struct {
	name  string
	rect  Rect
	frame *TextFrame
}

func writeXfrm(sb *strings.Builder, r Rect) {
	fmt.Fprintf(sb, `<a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`, r.X, r.Y, r.W, r.H)
}

func (t *textBox) writeXML(sb *strings.Builder, id int) {
	fmt.Fprintf(sb, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`, id, esc(t.name))
	sb.WriteString(`<p:spPr>`)
	writeXfrm(sb, t.rect)
	sb.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom><a:noFill/></p:spPr>`)
	t.frame.writeXML(sb)
	sb.WriteString(`</p:sp>`)
}

func (tf *TextFrame) writeXML(sb *strings.Builder) {
	wrap := "square"
	if !tf.wrap {
		wrap = "none"
	}
	fmt.Fprintf(sb, `<p:txBody><a:bodyPr wrap="%s" rtlCol="0"><a:noAutofit/></a:bodyPr><a:lstStyle/>`, wrap)
	if len(tf.paragraphs) == 0 {
		sb.WriteString(`<a:p><a:endParaRPr lang="en-US" dirty="0"/></a:p>`)
	}
	for _, p := range tf.paragraphs {
		p.writeXML(sb)
	}
	sb.WriteString(`</p:txBody>`)
}

func (p *Paragraph) writeXML(sb *strings.Builder) {
	sb.WriteString(`<a:p>`)
	if p.bullet {
		indent := 342900
		fmt.Fprintf(sb, `<a:pPr marL="%d" lvl="%d" indent="-%d"><a:buFont typeface="Arial"/><a:buChar char="&#8226;"/></a:pPr>`, indent*(p.level+1), p.level, indent)
	} else {
		fmt.Fprintf(sb, `<a:pPr lvl="%d"><a:buNone/></a:pPr>`, p.level)
	}
	sb.WriteString(`<a:r><a:rPr lang="en-US"`)
	if p.size > 0 {
		fmt.Fprintf(sb, ` sz="%d"`, p.size)
	}
	if p.bold {
		sb.WriteString(` b="1"`)
	}
	sb.WriteString(` dirty="0">`)
	if p.color != nil {
		fmt.Fprintf(sb, `<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, p.color.Hex())
	}
	if p.font != "" {
		fmt.Fprintf(sb, `<a:latin typeface="%s"/><a:cs typeface="%s"/>`, esc(p.font), esc(p.font))
	}
	sb.WriteString(`</a:rPr><a:t>` + esc(p.Text) + `</a:t></a:r></a:p>`)
}

type picture struct {
	rel   int
	descr string
	rect  Rect
}

func (pic *picture) writeXML(sb *strings.Builder, id int) {
	fmt.Fprintf(sb, `<p:pic><p:nvPicPr><p:cNvPr id="%d" name="Picture %d" descr="%s"/><p:cNvPicPr><a:picLocks noChangeAspect="1"/></p:cNvPicPr><p:nvPr/></p:nvPicPr>`, id, id, esc(pic.descr))
	fmt.Fprintf(sb, `<p:blipFill><a:blip r:embed="rId%d"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`, pic.rel)
	sb.WriteString(`<p:spPr>`)
	writeXfrm(sb, pic.rect)
	sb.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`)
}
