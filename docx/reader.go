package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/tsawler/lectern/model"
)

var headingStylePattern = regexp.MustCompile(`(?i)^heading\s*([1-6])$`)

// Read opens a .docx file and converts its main document part into the flat
// document model. Tables, headers, footers, and footnotes are skipped.
func Read(filename string) (*model.Document, error) {
	archive, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filename, err)
	}
	defer archive.Close()

	parts := make(map[string][]byte)
	for _, file := range archive.File {
		data, err := readZipFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", file.Name, err)
		}
		parts[file.Name] = data
	}

	raw, ok := parts["word/document.xml"]
	if !ok {
		return nil, fmt.Errorf("%s: missing word/document.xml", filename)
	}

	var docXML documentXML
	if err := xml.Unmarshal(raw, &docXML); err != nil {
		return nil, fmt.Errorf("parsing document.xml: %w", err)
	}
	if docXML.Body == nil {
		return nil, fmt.Errorf("%s: document has no body", filename)
	}

	rdr := &reader{
		styles:    parseStyles(parts["word/styles.xml"]),
		numFmts:   parseNumbering(parts["word/numbering.xml"]),
		media:     mediaParts(parts),
		relations: parseRelationships(parts["word/_rels/document.xml.rels"]),
	}

	doc := model.NewDocument()
	for i := range docXML.Body.Paragraphs {
		doc.AddBlock(rdr.convertParagraph(&docXML.Body.Paragraphs[i]))
	}
	return doc, nil
}

type reader struct {
	styles    map[string]string // styleId -> style name
	numFmts   map[string]string // numId -> numFmt of level 0
	media     map[string][]byte // part name -> bytes
	relations map[string]string // rId -> target
}

func (r *reader) convertParagraph(p *paragraphXML) model.Block {
	block := model.Block{Kind: model.Paragraph}

	styleID := p.Properties.Style.Val
	if m := headingStylePattern.FindStringSubmatch(styleID); m != nil {
		block.Kind = model.Heading
		block.Level, _ = strconv.Atoi(m[1])
	} else if name, ok := r.styles[styleID]; ok {
		if m := headingStylePattern.FindStringSubmatch(name); m != nil {
			block.Kind = model.Heading
			block.Level, _ = strconv.Atoi(m[1])
		}
	}

	if block.Kind == model.Paragraph {
		if kind, ok := r.listKind(p); ok {
			block.Kind = model.ListItem
			block.List = kind
		}
	}

	for i := range p.Runs {
		block.Runs = append(block.Runs, r.convertRun(&p.Runs[i])...)
	}
	for i := range p.Hyperlinks {
		for j := range p.Hyperlinks[i].Runs {
			block.Runs = append(block.Runs, r.convertRun(&p.Hyperlinks[i].Runs[j])...)
		}
	}
	return block
}

// listKind resolves whether a paragraph is a list item, and of which kind.
// Style IDs written by this package take precedence; otherwise any numbering
// reference marks a list item, with the format looked up in numbering.xml.
func (r *reader) listKind(p *paragraphXML) (model.ListKind, bool) {
	switch p.Properties.Style.Val {
	case "ListBullet":
		return model.Bullet, true
	case "ListNumber":
		return model.Number, true
	}
	numID := p.Properties.NumPr.NumID.Val
	if numID == "" {
		return 0, false
	}
	if r.numFmts[numID] == "bullet" {
		return model.Bullet, true
	}
	return model.Number, true
}

func (r *reader) convertRun(run *runXML) []model.Run {
	props := run.Properties
	base := model.Run{
		Bold:      props.Bold.set(),
		Italic:    props.Italic.set(),
		Underline: props.Underline.set(),
	}
	if props.FontSize.Val != "" {
		if halfPoints, err := strconv.ParseFloat(props.FontSize.Val, 64); err == nil {
			base.SizePt = halfPoints / 2
		}
	}
	if c := parseHexColor(props.Color.Val); c != nil {
		base.Color = c
	}

	var runs []model.Run
	for _, content := range run.Content {
		switch content.XMLName.Local {
		case "t":
			r := base
			r.Text = content.Value
			runs = append(runs, r)
		case "br", "cr":
			r := base
			r.LineBreak = true
			runs = append(runs, r)
		case "tab":
			r := base
			r.Text = "\t"
			runs = append(runs, r)
		}
	}
	for _, drawing := range run.Drawing {
		for _, blip := range drawing.Blips {
			if img := r.resolveImage(blip.Embed); img != nil {
				runs = append(runs, model.Run{Image: img})
			}
		}
	}
	return runs
}

func (r *reader) resolveImage(relID string) *model.Image {
	target, ok := r.relations[relID]
	if !ok {
		return nil
	}
	// Targets are relative to the word/ directory.
	name := path.Join("word", target)
	data, ok := r.media[name]
	if !ok {
		return nil
	}
	return &model.Image{Data: data, ContentType: contentTypeFor(target)}
}

func parseHexColor(val string) *model.Color {
	val = strings.TrimPrefix(val, "#")
	if len(val) != 6 || strings.EqualFold(val, "auto") {
		return nil
	}
	n, err := strconv.ParseUint(val, 16, 32)
	if err != nil {
		return nil
	}
	return &model.Color{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n)}
}

func parseStyles(raw []byte) map[string]string {
	styles := make(map[string]string)
	if len(raw) == 0 {
		return styles
	}
	var parsed stylesXML
	if err := xml.Unmarshal(raw, &parsed); err != nil {
		return styles
	}
	for _, s := range parsed.Styles {
		styles[s.ID] = s.Name.Val
	}
	return styles
}

func parseNumbering(raw []byte) map[string]string {
	formats := make(map[string]string)
	if len(raw) == 0 {
		return formats
	}
	var parsed numberingXML
	if err := xml.Unmarshal(raw, &parsed); err != nil {
		return formats
	}
	abstract := make(map[string]string)
	for _, a := range parsed.AbstractNums {
		for _, lvl := range a.Levels {
			if lvl.ILvl == "0" || lvl.ILvl == "" {
				abstract[a.ID] = lvl.NumFmt.Val
				break
			}
		}
	}
	for _, n := range parsed.Nums {
		formats[n.ID] = abstract[n.AbstractNum.Val]
	}
	return formats
}

func parseRelationships(raw []byte) map[string]string {
	rels := make(map[string]string)
	if len(raw) == 0 {
		return rels
	}
	var parsed relationshipsXML
	if err := xml.Unmarshal(raw, &parsed); err != nil {
		return rels
	}
	for _, rel := range parsed.Relationships {
		rels[rel.ID] = rel.Target
	}
	return rels
}

func mediaParts(parts map[string][]byte) map[string][]byte {
	media := make(map[string][]byte)
	for name, data := range parts {
		if strings.HasPrefix(name, "word/media/") {
			media[name] = data
		}
	}
	return media
}

func contentTypeFor(target string) string {
	switch strings.ToLower(path.Ext(target)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".bmp":
		return "image/bmp"
	case ".tif", ".tiff":
		return "image/tiff"
	default:
		return "application/octet-stream"
	}
}

func readZipFile(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
