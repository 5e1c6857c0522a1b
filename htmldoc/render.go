package htmldoc

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/lectern/model"
)

// RenderFragment converts a document into an HTML fragment. Consecutive
// list items of the same kind are grouped under one ul or ol, empty
// paragraphs render as <p></p>, and embedded images become data URIs. A
// document with no blocks renders as a single empty paragraph.
func RenderFragment(doc *model.Document) (string, error) {
	if doc == nil || len(doc.Blocks) == 0 {
		return "<p></p>", nil
	}

	var b strings.Builder
	for i := 0; i < len(doc.Blocks); {
		block := &doc.Blocks[i]
		if block.Kind == model.ListItem {
			i = renderList(&b, doc.Blocks, i)
			continue
		}
		renderBlock(&b, block)
		i++
	}
	return b.String(), nil
}

// renderList writes the run of consecutive list items starting at index
// start that share the same list kind, and returns the index of the first
// block past the group.
func renderList(b *strings.Builder, blocks []model.Block, start int) int {
	kind := blocks[start].List
	tag := "ul"
	if kind == model.Number {
		tag = "ol"
	}
	b.WriteString("<" + tag + ">")
	i := start
	for ; i < len(blocks) && blocks[i].Kind == model.ListItem && blocks[i].List == kind; i++ {
		b.WriteString("<li>")
		renderRuns(b, blocks[i].Runs)
		b.WriteString("</li>")
	}
	b.WriteString("</" + tag + ">")
	return i
}

func renderBlock(b *strings.Builder, block *model.Block) {
	tag := "p"
	if block.Kind == model.Heading {
		level := block.Level
		if level < 1 || level > 6 {
			level = 1
		}
		tag = fmt.Sprintf("h%d", level)
	}
	b.WriteString("<" + tag + ">")
	renderRuns(b, block.Runs)
	b.WriteString("</" + tag + ">")
}

func renderRuns(b *strings.Builder, runs []model.Run) {
	for i := range runs {
		renderRun(b, &runs[i])
	}
}

func renderRun(b *strings.Builder, run *model.Run) {
	switch {
	case run.Image != nil:
		fmt.Fprintf(b, `<img src="data:%s;base64,%s"/>`,
			run.Image.ContentType, base64.StdEncoding.EncodeToString(run.Image.Data))
		return
	case run.LineBreak:
		b.WriteString("<br/>")
		return
	}

	var open, closing strings.Builder
	if run.Bold {
		open.WriteString("<strong>")
	}
	if run.Italic {
		open.WriteString("<em>")
	}
	if run.Underline {
		open.WriteString("<u>")
	}
	if style := runStyle(run); style != "" {
		fmt.Fprintf(&open, `<span style=%q>`, style)
		closing.WriteString("</span>")
	}
	if run.Underline {
		closing.WriteString("</u>")
	}
	if run.Italic {
		closing.WriteString("</em>")
	}
	if run.Bold {
		closing.WriteString("</strong>")
	}

	b.WriteString(open.String())
	b.WriteString(html.EscapeString(run.Text))
	b.WriteString(closing.String())
}

func runStyle(run *model.Run) string {
	var decls []string
	if run.SizePt > 0 {
		decls = append(decls, "font-size: "+strconv.FormatFloat(run.SizePt, 'f', -1, 64)+"pt")
	}
	if run.Color != nil {
		decls = append(decls, fmt.Sprintf("color: #%02x%02x%02x", run.Color.R, run.Color.G, run.Color.B))
	}
	return strings.Join(decls, "; ")
}
