package htmldoc

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/lectern/model"
)

const (
	minFontPt = 6
	maxFontPt = 72
)

// ParseFragment converts an HTML fragment into the flat document model.
// Block elements map to paragraphs, headings, or list items; inline
// formatting and style attributes are carried on the runs. An empty or
// whitespace-only fragment yields a single empty paragraph.
func ParseFragment(fragment string) (*model.Document, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), context)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML fragment: %w", err)
	}

	doc := model.NewDocument()
	for _, node := range nodes {
		convertTopLevel(doc, node)
	}
	if doc.IsEmpty() {
		doc.AddBlock(model.Block{Kind: model.Paragraph})
	}
	return doc, nil
}

func convertTopLevel(doc *model.Document, node *html.Node) {
	switch node.Type {
	case html.TextNode:
		if strings.TrimSpace(node.Data) != "" {
			doc.AddBlock(model.Block{Kind: model.Paragraph, Runs: inlineRuns(node, format{})})
		}
	case html.ElementNode:
		convertElement(doc, node)
	}
}

func convertElement(doc *model.Document, node *html.Node) {
	switch node.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		level := int(node.Data[1] - '0')
		doc.AddBlock(model.Block{Kind: model.Heading, Level: level, Runs: childRuns(node, formatFromStyle(node, format{}))})
	case atom.Ul:
		convertList(doc, node, model.Bullet)
	case atom.Ol:
		convertList(doc, node, model.Number)
	case atom.Br, atom.Hr:
		doc.AddBlock(model.Block{Kind: model.Paragraph})
	default:
		// p, div, and anything unrecognized all become a paragraph.
		doc.AddBlock(model.Block{Kind: model.Paragraph, Runs: childRuns(node, formatFromStyle(node, format{}))})
	}
}

// convertList emits one list item per direct li child. Lists nested under
// an item are dropped, not recursed into a sub-list; only the item's own
// inline content survives.
func convertList(doc *model.Document, list *html.Node, kind model.ListKind) {
	for child := list.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode && child.DataAtom == atom.Li {
			doc.AddBlock(model.Block{Kind: model.ListItem, List: kind, Runs: itemRuns(child)})
		}
	}
}

// itemRuns gathers the inline content of a list item, excluding any nested
// lists, which are handled as items of their own.
func itemRuns(li *html.Node) []model.Run {
	var runs []model.Run
	for child := li.FirstChild; child != nil; child = child.NextSibling {
		if child.DataAtom == atom.Ul || child.DataAtom == atom.Ol {
			continue
		}
		runs = append(runs, inlineRuns(child, format{})...)
	}
	return runs
}

// format is the inline formatting state inherited while walking nested
// inline elements.
type format struct {
	bold      bool
	italic    bool
	underline bool
	sizePt    float64
	color     *model.Color
}

func (f format) apply(r *model.Run) {
	r.Bold = f.bold
	r.Italic = f.italic
	r.Underline = f.underline
	r.SizePt = f.sizePt
	r.Color = f.color
}

func childRuns(node *html.Node, f format) []model.Run {
	var runs []model.Run
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		runs = append(runs, inlineRuns(child, f)...)
	}
	return runs
}

func inlineRuns(node *html.Node, f format) []model.Run {
	switch node.Type {
	case html.TextNode:
		if node.Data == "" {
			return nil
		}
		run := model.Run{Text: node.Data}
		f.apply(&run)
		return []model.Run{run}
	case html.ElementNode:
		switch node.DataAtom {
		case atom.Strong, atom.B:
			f.bold = true
		case atom.Em, atom.I:
			f.italic = true
		case atom.U:
			f.underline = true
		case atom.Br:
			run := model.Run{LineBreak: true}
			f.apply(&run)
			return []model.Run{run}
		case atom.Img:
			if img := imageFromNode(node); img != nil {
				return []model.Run{{Image: img}}
			}
			return nil
		}
		return childRuns(node, formatFromStyle(node, f))
	}
	return nil
}

// formatFromStyle folds a node's style attribute into the inherited state.
// Only font-size and color are recognized.
func formatFromStyle(node *html.Node, f format) format {
	style := attrValue(node, "style")
	if style == "" {
		return f
	}
	for _, decl := range strings.Split(style, ";") {
		name, value, found := strings.Cut(decl, ":")
		if !found {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		value = strings.TrimSpace(value)
		switch name {
		case "font-size":
			if pt, ok := parseFontSize(value); ok {
				f.sizePt = pt
			}
		case "color":
			if c := parseCSSColor(value); c != nil {
				f.color = c
			}
		}
	}
	return f
}

// parseFontSize converts a CSS font-size to points. Pixel values assume the
// CSS reference 96 DPI (1px = 0.75pt) and em values a 12pt base. The result
// is clamped to [6, 72].
func parseFontSize(value string) (float64, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	var scale float64
	var raw string
	switch {
	case strings.HasSuffix(value, "pt"):
		scale, raw = 1, strings.TrimSuffix(value, "pt")
	case strings.HasSuffix(value, "px"):
		scale, raw = 0.75, strings.TrimSuffix(value, "px")
	case strings.HasSuffix(value, "em"):
		scale, raw = 12, strings.TrimSuffix(value, "em")
	default:
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	pt := n * scale
	if pt < minFontPt {
		pt = minFontPt
	}
	if pt > maxFontPt {
		pt = maxFontPt
	}
	return pt, true
}

// parseCSSColor accepts rgb(r, g, b) and 6-digit hex notations.
func parseCSSColor(value string) *model.Color {
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, "#") {
		hex := value[1:]
		if len(hex) != 6 {
			return nil
		}
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return nil
		}
		return &model.Color{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n)}
	}
	lower := strings.ToLower(value)
	if !strings.HasPrefix(lower, "rgb(") || !strings.HasSuffix(lower, ")") {
		return nil
	}
	parts := strings.Split(lower[4:len(lower)-1], ",")
	if len(parts) != 3 {
		return nil
	}
	var channels [3]uint8
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 || n > 255 {
			return nil
		}
		channels[i] = uint8(n)
	}
	return &model.Color{R: channels[0], G: channels[1], B: channels[2]}
}

func imageFromNode(node *html.Node) *model.Image {
	src := attrValue(node, "src")
	const prefix = "data:"
	if !strings.HasPrefix(src, prefix) {
		return nil
	}
	meta, payload, found := strings.Cut(src[len(prefix):], ",")
	if !found {
		return nil
	}
	contentType := meta
	if i := strings.Index(meta, ";"); i >= 0 {
		contentType = meta[:i]
	}
	if !strings.Contains(meta, "base64") {
		return nil
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil
	}
	return &model.Image{Data: data, ContentType: contentType}
}

func attrValue(node *html.Node, name string) string {
	for _, attr := range node.Attr {
		if attr.Key == name {
			return attr.Val
		}
	}
	return ""
}
