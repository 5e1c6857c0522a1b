package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"image"
	"os"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/tsawler/lectern/model"
)

const (
	emuPerPixel = 9525 // 914400 EMU per inch at 96 DPI

	bulletNumID = "1"
	numberNumID = "2"
)

// Save writes the document to filename as a .docx file. The output file is
// created exclusively; Save refuses to overwrite an existing file. A
// document with no blocks is written as a single empty paragraph.
func Save(doc *model.Document, filename string) error {
	f, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filename, err)
	}

	w := &writer{zip: zip.NewWriter(f)}
	err = w.write(doc)
	if closeErr := w.zip.Close(); err == nil {
		err = closeErr
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(filename)
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	return nil
}

type writer struct {
	zip    *zip.Writer
	images []savedImage
}

type savedImage struct {
	name        string // media file name, e.g. image1.png
	relID       string
	contentType string
}

func (w *writer) write(doc *model.Document) error {
	body, err := w.buildBody(doc)
	if err != nil {
		return err
	}
	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", w.contentTypes()},
		{"_rels/.rels", rootRelationships},
		{"word/_rels/document.xml.rels", w.documentRelationships()},
		{"word/document.xml", body},
		{"word/styles.xml", stylesPart},
		{"word/numbering.xml", numberingPart},
	}
	for _, part := range parts {
		if err := w.addPart(part.name, []byte(part.content)); err != nil {
			return err
		}
	}
	return nil
}

func (w *writer) addPart(name string, content []byte) error {
	entry, err := w.zip.Create(name)
	if err != nil {
		return err
	}
	_, err = entry.Write(content)
	return err
}

func (w *writer) buildBody(doc *model.Document) (string, error) {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"` +
		` xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"` +
		` xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"` +
		` xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"` +
		` xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture">`)
	b.WriteString("<w:body>")

	blocks := doc.Blocks
	if len(blocks) == 0 {
		blocks = []model.Block{{Kind: model.Paragraph}}
	}
	for i := range blocks {
		if err := w.writeParagraph(&b, &blocks[i]); err != nil {
			return "", err
		}
	}

	b.WriteString(`<w:sectPr><w:pgSz w:w="12240" w:h="15840"/>` +
		`<w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440"/></w:sectPr>`)
	b.WriteString("</w:body></w:document>")
	return b.String(), nil
}

func (w *writer) writeParagraph(b *strings.Builder, block *model.Block) error {
	b.WriteString("<w:p>")
	if props := paragraphProps(block); props != "" {
		b.WriteString(props)
	}
	for i := range block.Runs {
		if err := w.writeRun(b, &block.Runs[i]); err != nil {
			return err
		}
	}
	b.WriteString("</w:p>")
	return nil
}

func paragraphProps(block *model.Block) string {
	switch block.Kind {
	case model.Heading:
		level := block.Level
		if level < 1 || level > 6 {
			level = 1
		}
		return fmt.Sprintf(`<w:pPr><w:pStyle w:val="Heading%d"/></w:pPr>`, level)
	case model.ListItem:
		style, numID := "ListBullet", bulletNumID
		if block.List == model.Number {
			style, numID = "ListNumber", numberNumID
		}
		return fmt.Sprintf(`<w:pPr><w:pStyle w:val=%q/>`+
			`<w:numPr><w:ilvl w:val="0"/><w:numId w:val=%q/></w:numPr></w:pPr>`, style, numID)
	default:
		return ""
	}
}

func (w *writer) writeRun(b *strings.Builder, run *model.Run) error {
	if run.Image != nil {
		return w.writeImage(b, run.Image)
	}
	b.WriteString("<w:r>")
	if props := runProps(run); props != "" {
		b.WriteString(props)
	}
	if run.LineBreak {
		b.WriteString("<w:br/>")
	} else {
		b.WriteString(`<w:t xml:space="preserve">`)
		b.WriteString(escape(run.Text))
		b.WriteString("</w:t>")
	}
	b.WriteString("</w:r>")
	return nil
}

func runProps(run *model.Run) string {
	var props strings.Builder
	if run.Bold {
		props.WriteString("<w:b/>")
	}
	if run.Italic {
		props.WriteString("<w:i/>")
	}
	if run.Underline {
		props.WriteString(`<w:u w:val="single"/>`)
	}
	if run.SizePt > 0 {
		// Word stores font size in half-points.
		fmt.Fprintf(&props, `<w:sz w:val="%d"/>`, int(run.SizePt*2))
	}
	if run.Color != nil {
		fmt.Fprintf(&props, `<w:color w:val="%02X%02X%02X"/>`, run.Color.R, run.Color.G, run.Color.B)
	}
	if props.Len() == 0 {
		return ""
	}
	return "<w:rPr>" + props.String() + "</w:rPr>"
}

func (w *writer) writeImage(b *strings.Builder, img *model.Image) error {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(img.Data))
	if err != nil {
		return fmt.Errorf("decoding embedded image: %w", err)
	}

	index := len(w.images) + 1
	saved := savedImage{
		name:        fmt.Sprintf("image%d%s", index, extensionFor(img.ContentType)),
		relID:       fmt.Sprintf("rIdImg%d", index),
		contentType: img.ContentType,
	}
	if err := w.addPart("word/media/"+saved.name, img.Data); err != nil {
		return err
	}
	w.images = append(w.images, saved)

	widthEMU := cfg.Width * emuPerPixel
	heightEMU := cfg.Height * emuPerPixel
	fmt.Fprintf(b, `<w:r><w:drawing><wp:inline distT="0" distB="0" distL="0" distR="0">`+
		`<wp:extent cx="%d" cy="%d"/>`+
		`<wp:docPr id="%d" name="%s"/>`+
		`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture">`+
		`<pic:pic><pic:nvPicPr><pic:cNvPr id="%d" name="%s"/><pic:cNvPicPr/></pic:nvPicPr>`+
		`<pic:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>`+
		`<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
		`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr>`+
		`</pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing></w:r>`,
		widthEMU, heightEMU, index, saved.name, index, saved.name, saved.relID, widthEMU, heightEMU)
	return nil
}

func (w *writer) contentTypes() string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
		`<Default Extension="xml" ContentType="application/xml"/>`)
	seen := make(map[string]bool)
	for _, img := range w.images {
		ext := strings.TrimPrefix(extensionFor(img.contentType), ".")
		if !seen[ext] {
			seen[ext] = true
			fmt.Fprintf(&b, `<Default Extension=%q ContentType=%q/>`, ext, img.contentType)
		}
	}
	b.WriteString(`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
		`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
		`<Override PartName="/word/numbering.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"/>` +
		`</Types>`)
	return b.String()
}

func (w *writer) documentRelationships() string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rIdStyles" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
		`<Relationship Id="rIdNumbering" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering" Target="numbering.xml"/>`)
	for _, img := range w.images {
		fmt.Fprintf(&b, `<Relationship Id=%q Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/%s"/>`,
			img.relID, img.name)
	}
	b.WriteString("</Relationships>")
	return b.String()
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/bmp":
		return ".bmp"
	case "image/tiff":
		return ".tif"
	default:
		return ".png"
	}
}

func escape(s string) string {
	var b bytes.Buffer
	xml.EscapeText(&b, []byte(s))
	return b.String()
}

const rootRelationships = xml.Header +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

const stylesPart = xml.Header +
	`<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/><w:rPr><w:b/><w:sz w:val="32"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/><w:basedOn w:val="Normal"/><w:rPr><w:b/><w:sz w:val="28"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading3"><w:name w:val="heading 3"/><w:basedOn w:val="Normal"/><w:rPr><w:b/><w:sz w:val="26"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading4"><w:name w:val="heading 4"/><w:basedOn w:val="Normal"/><w:rPr><w:b/><w:sz w:val="24"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading5"><w:name w:val="heading 5"/><w:basedOn w:val="Normal"/><w:rPr><w:b/><w:sz w:val="22"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading6"><w:name w:val="heading 6"/><w:basedOn w:val="Normal"/><w:rPr><w:b/><w:sz w:val="22"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="ListBullet"><w:name w:val="List Bullet"/><w:basedOn w:val="Normal"/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="ListNumber"><w:name w:val="List Number"/><w:basedOn w:val="Normal"/></w:style>` +
	`</w:styles>`

const numberingPart = xml.Header +
	`<w:numbering xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:abstractNum w:abstractNumId="0"><w:lvl w:ilvl="0"><w:numFmt w:val="bullet"/><w:lvlText w:val="&#8226;"/><w:pPr><w:ind w:left="720" w:hanging="360"/></w:pPr></w:lvl></w:abstractNum>` +
	`<w:abstractNum w:abstractNumId="1"><w:lvl w:ilvl="0"><w:numFmt w:val="decimal"/><w:lvlText w:val="%1."/><w:pPr><w:ind w:left="720" w:hanging="360"/></w:pPr></w:lvl></w:abstractNum>` +
	`<w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num>` +
	`<w:num w:numId="2"><w:abstractNumId w:val="1"/></w:num>` +
	`</w:numbering>`
