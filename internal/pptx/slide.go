package pptx

import (
	"fmt"
	"strings"

	"github.com/slidewise/deckgen/internal/deck"
)

// titleSlideXML renders the opening slide: deck title, summary, and a
// byline, left-aligned in the style of the original templates.
func titleSlideXML(out deck.Outline, theme deck.StyleTheme) string {
	var shapes strings.Builder

	titleBody := paragraph(out.Title, theme.TitleSize+14, true, theme.Title, theme.FontFamily, false, theme)
	shapes.WriteString(phShape(2, "Title 1", `<p:ph type="title"/>`,
		0.8, 1.0, 8.4, 2.0, "", titleBody))

	if out.Summary != "" {
		summaryBody := paragraph(out.Summary, theme.BodySize, false, theme.Body, theme.FontFamily, false, theme)
		shapes.WriteString(phShape(3, "Subtitle 2", `<p:ph type="body" idx="1"/>`,
			0.8, 3.4, 8.4, 2.0, "", summaryBody))
	}

	byline := paragraph("Generated with deckgen", 13, false, theme.Accent, theme.FontFamily, false, theme)
	shapes.WriteString(txBoxShape(4, "Byline 3", 0.8, 6.8, 5.0, 0.5, byline))

	return slideXML(theme, shapes.String())
}

// contentSlideXML renders one outline slide: title placeholder, a boxed
// body placeholder with one bulleted paragraph per bullet, and, when an
// image prompt is present, a visible annotation region at the bottom.
func contentSlideXML(s deck.Slide, theme deck.StyleTheme) string {
	var shapes strings.Builder

	titleBody := paragraph(s.Title, theme.TitleSize, true, theme.Title, theme.FontFamily, false, theme)
	shapes.WriteString(phShape(2, "Title 1", `<p:ph type="title"/>`,
		0.8, 0.6, 8.4, 1.0, "", titleBody))

	var body strings.Builder
	for _, bullet := range s.Bullets {
		body.WriteString(paragraph(bullet, theme.BodySize, false, theme.Body, theme.FontFamily, true, theme))
	}
	shapes.WriteString(phShape(3, "Content 2", `<p:ph type="body" idx="1"/>`,
		0.8, 1.8, 8.4, 4.6, theme.Box, body.String()))

	if s.ImagePrompt != "" {
		note := paragraph("Image suggestion: "+s.ImagePrompt, theme.BodySize-3, false, theme.Accent, theme.FontFamily, false, theme)
		shapes.WriteString(txBoxShape(4, "Image Note 3", 0.8, 6.6, 8.4, 0.6, note))
	}

	return slideXML(theme, shapes.String())
}

func slideXML(theme deck.StyleTheme, shapes string) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<p:sld xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">`, nsA, nsR, nsP)
	b.WriteString(`<p:cSld>`)
	fmt.Fprintf(&b, `<p:bg><p:bgPr><a:solidFill><a:srgbClr val="%s"/></a:solidFill><a:effectLst/></p:bgPr></p:bg>`, theme.Background)
	b.WriteString(`<p:spTree>`)
	b.WriteString(`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>`)
	b.WriteString(`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`)
	b.WriteString(shapes)
	b.WriteString(`</p:spTree></p:cSld>`)
	b.WriteString(`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>`)
	b.WriteString(`</p:sld>`)
	return b.String()
}

// phShape emits a placeholder shape. fill is an optional RRGGBB box color.
func phShape(id int, name, ph string, x, y, w, h float64, fill, paragraphs string) string {
	var spPr strings.Builder
	fmt.Fprintf(&spPr, `<a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`,
		emu(x), emu(y), emu(w), emu(h))
	if fill != "" {
		spPr.WriteString(`<a:prstGeom prst="roundRect"><a:avLst/></a:prstGeom>`)
		fmt.Fprintf(&spPr, `<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, fill)
	} else {
		spPr.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom>`)
	}

	return fmt.Sprintf(
		`<p:sp>`+
			`<p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr><p:nvPr>%s</p:nvPr></p:nvSpPr>`+
			`<p:spPr>%s</p:spPr>`+
			`<p:txBody><a:bodyPr wrap="square" lIns="91440" tIns="45720" rIns="91440" bIns="45720"><a:normAutofit/></a:bodyPr><a:lstStyle/>%s</p:txBody>`+
			`</p:sp>`,
		id, esc(name), ph, spPr.String(), paragraphs,
	)
}

// txBoxShape emits a plain text box (no placeholder), used for annotation
// regions the reader treats as non-content.
func txBoxShape(id int, name string, x, y, w, h float64, paragraphs string) string {
	return fmt.Sprintf(
		`<p:sp>`+
			`<p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`+
			`<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>`+
			`<p:txBody><a:bodyPr wrap="square"/><a:lstStyle/>%s</p:txBody>`+
			`</p:sp>`,
		id, esc(name), emu(x), emu(y), emu(w), emu(h), paragraphs,
	)
}

// paragraph emits one a:p with a single run. Font sizes are points; the
// sz attribute wants hundredths.
func paragraph(text string, sizePt int, bold bool, color, font string, bullet bool, theme deck.StyleTheme) string {
	boldAttr := "0"
	if bold {
		boldAttr = "1"
	}
	pPr := `<a:pPr><a:buNone/></a:pPr>`
	if bullet {
		pPr = fmt.Sprintf(`<a:pPr marL="228600" indent="-228600"><a:buClr><a:srgbClr val="%s"/></a:buClr><a:buChar char="•"/></a:pPr>`, theme.Accent)
	}
	return fmt.Sprintf(
		`<a:p>%s<a:r><a:rPr sz="%d" b="%s" dirty="0"><a:solidFill><a:srgbClr val="%s"/></a:solidFill><a:latin typeface="%s"/></a:rPr><a:t>%s</a:t></a:r></a:p>`,
		pPr, sizePt*100, boldAttr, color, esc(font), esc(text),
	)
}
