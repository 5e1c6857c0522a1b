package htmldoc

import (
	"strings"
	"testing"

	"github.com/tsawler/lectern/model"
)

func mustParse(t *testing.T, fragment string) *model.Document {
	t.Helper()
	doc, err := ParseFragment(fragment)
	if err != nil {
		t.Fatalf("ParseFragment(%q): %v", fragment, err)
	}
	return doc
}

func TestParseBoldRunKeepsFollowingSpace(t *testing.T) {
	doc := mustParse(t, "<p><strong>Hi</strong> there</p>")
	if len(doc.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(doc.Blocks))
	}
	runs := doc.Blocks[0].Runs
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d: %+v", len(runs), runs)
	}
	if !runs[0].Bold || runs[0].Text != "Hi" {
		t.Errorf("run 0: want bold %q, got %+v", "Hi", runs[0])
	}
	if runs[1].Bold || runs[1].Text != " there" {
		t.Errorf("run 1: want plain %q, got %+v", " there", runs[1])
	}
}

func TestParseHeadings(t *testing.T) {
	doc := mustParse(t, "<h1>Top</h1><h3>Sub</h3>")
	if len(doc.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(doc.Blocks))
	}
	if doc.Blocks[0].Kind != model.Heading || doc.Blocks[0].Level != 1 {
		t.Errorf("block 0: want h1, got %+v", doc.Blocks[0])
	}
	if doc.Blocks[1].Kind != model.Heading || doc.Blocks[1].Level != 3 {
		t.Errorf("block 1: want h3, got %+v", doc.Blocks[1])
	}
}

func TestParseHeadingStyle(t *testing.T) {
	doc := mustParse(t, `<h2 style="color: #ff0000; font-size: 18pt">Red</h2>`)
	if len(doc.Blocks) != 1 || doc.Blocks[0].Kind != model.Heading {
		t.Fatalf("expected one heading, got %+v", doc.Blocks)
	}
	run := doc.Blocks[0].Runs[0]
	if run.Color == nil || *run.Color != (model.Color{R: 255}) {
		t.Errorf("heading style color lost: %+v", run.Color)
	}
	if run.SizePt != 18 {
		t.Errorf("heading style size lost: %v", run.SizePt)
	}
}

func TestParseNestedFormatting(t *testing.T) {
	doc := mustParse(t, "<p><strong><em>both</em></strong></p>")
	runs := doc.Blocks[0].Runs
	if len(runs) != 1 || !runs[0].Bold || !runs[0].Italic {
		t.Errorf("expected bold italic run, got %+v", runs)
	}
}

func TestParseFontSizes(t *testing.T) {
	tests := []struct {
		css  string
		want float64
	}{
		{"14pt", 14},
		{"16px", 12},
		{"2em", 24},
		{"4pt", 6},    // clamped up
		{"100pt", 72}, // clamped down
	}
	for _, tc := range tests {
		doc := mustParse(t, `<p style="font-size: `+tc.css+`">x</p>`)
		if got := doc.Blocks[0].Runs[0].SizePt; got != tc.want {
			t.Errorf("font-size %s: want %v pt, got %v", tc.css, tc.want, got)
		}
	}
}

func TestParseColors(t *testing.T) {
	doc := mustParse(t, `<p style="color: rgb(0, 0, 139)">a</p><p style="color: #ff8000">b</p>`)
	if c := doc.Blocks[0].Runs[0].Color; c == nil || *c != (model.Color{B: 139}) {
		t.Errorf("rgb() color: got %+v", c)
	}
	if c := doc.Blocks[1].Runs[0].Color; c == nil || *c != (model.Color{R: 255, G: 128}) {
		t.Errorf("hex color: got %+v", c)
	}
}

func TestParseListsDropNested(t *testing.T) {
	doc := mustParse(t, "<ul><li>one<ol><li>one-a</li></ol></li><li>two</li></ul>")
	if len(doc.Blocks) != 2 {
		t.Fatalf("expected 2 items with the nested list dropped, got %d: %+v", len(doc.Blocks), doc.Blocks)
	}
	wantTexts := []string{"one", "two"}
	for i, block := range doc.Blocks {
		if block.Kind != model.ListItem || block.List != model.Bullet {
			t.Errorf("block %d: want bullet list item, got %+v", i, block)
		}
		if got := block.Text(); got != wantTexts[i] {
			t.Errorf("block %d: want text %q, got %q", i, wantTexts[i], got)
		}
	}
}

func TestParseOrderedList(t *testing.T) {
	doc := mustParse(t, "<ol><li>a</li><li>b</li></ol>")
	if len(doc.Blocks) != 2 {
		t.Fatalf("expected 2 items, got %d", len(doc.Blocks))
	}
	for i, block := range doc.Blocks {
		if block.Kind != model.ListItem || block.List != model.Number {
			t.Errorf("block %d: want numbered list item, got %+v", i, block)
		}
	}
}

func TestParseTopLevelBreaks(t *testing.T) {
	doc := mustParse(t, "<p>a</p><hr><p>b</p>")
	if len(doc.Blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(doc.Blocks))
	}
	if len(doc.Blocks[1].Runs) != 0 {
		t.Errorf("hr should yield an empty paragraph, got %+v", doc.Blocks[1])
	}
}

func TestParseInnerBreak(t *testing.T) {
	doc := mustParse(t, "<p>one<br>two</p>")
	runs := doc.Blocks[0].Runs
	if len(runs) != 3 || !runs[1].LineBreak {
		t.Fatalf("expected text/break/text runs, got %+v", runs)
	}
	if got := doc.Blocks[0].Text(); got != "one\ntwo" {
		t.Errorf("want %q, got %q", "one\ntwo", got)
	}
}

func TestParseEmptyFragment(t *testing.T) {
	for _, fragment := range []string{"", "   \n  "} {
		doc := mustParse(t, fragment)
		if len(doc.Blocks) != 1 || doc.Blocks[0].Kind != model.Paragraph || len(doc.Blocks[0].Runs) != 0 {
			t.Errorf("fragment %q: expected single empty paragraph, got %+v", fragment, doc.Blocks)
		}
	}
}

func TestParseUnknownElementBecomesParagraph(t *testing.T) {
	doc := mustParse(t, "<blockquote>quoted</blockquote>")
	if len(doc.Blocks) != 1 || doc.Blocks[0].Kind != model.Paragraph || doc.Blocks[0].Text() != "quoted" {
		t.Errorf("expected paragraph %q, got %+v", "quoted", doc.Blocks)
	}
}

func TestRenderEmptyDocument(t *testing.T) {
	got, err := RenderFragment(model.NewDocument())
	if err != nil {
		t.Fatal(err)
	}
	if got != "<p></p>" {
		t.Errorf("want %q, got %q", "<p></p>", got)
	}
}

func TestRenderGroupsListItems(t *testing.T) {
	doc := model.NewDocument()
	doc.AddBlock(model.Block{Kind: model.ListItem, List: model.Bullet, Runs: []model.Run{{Text: "a"}}})
	doc.AddBlock(model.Block{Kind: model.ListItem, List: model.Bullet, Runs: []model.Run{{Text: "b"}}})
	doc.AddBlock(model.Block{Kind: model.ListItem, List: model.Number, Runs: []model.Run{{Text: "c"}}})

	got, err := RenderFragment(doc)
	if err != nil {
		t.Fatal(err)
	}
	want := "<ul><li>a</li><li>b</li></ul><ol><li>c</li></ol>"
	if got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestRenderEscapesText(t *testing.T) {
	doc := model.NewDocument()
	doc.AddParagraph().AddRun(model.Run{Text: "a < b & c"})
	got, err := RenderFragment(doc)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "a < b") || !strings.Contains(got, "&lt;") {
		t.Errorf("text not escaped: %q", got)
	}
}

func TestRenderStyles(t *testing.T) {
	doc := model.NewDocument()
	doc.AddBlock(model.Block{Kind: model.Paragraph, Runs: []model.Run{
		{Text: "styled", Bold: true, SizePt: 14, Color: &model.Color{B: 139}},
	}})
	got, err := RenderFragment(doc)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"<strong>", "font-size: 14pt", "color: #00008b"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q: %q", want, got)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	fragment := `<h2>Notes</h2><p><strong>Hi</strong> there</p><ul><li>first</li><li>second</li></ul>`
	doc := mustParse(t, fragment)
	rendered, err := RenderFragment(doc)
	if err != nil {
		t.Fatal(err)
	}
	again := mustParse(t, rendered)
	if len(again.Blocks) != len(doc.Blocks) {
		t.Fatalf("round trip changed block count: %d vs %d", len(doc.Blocks), len(again.Blocks))
	}
	for i := range doc.Blocks {
		if doc.Blocks[i].Kind != again.Blocks[i].Kind || doc.Blocks[i].Text() != again.Blocks[i].Text() {
			t.Errorf("block %d changed: %+v vs %+v", i, doc.Blocks[i], again.Blocks[i])
		}
	}
}
