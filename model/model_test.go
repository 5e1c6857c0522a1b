package model

import "testing"

func TestDocument_AddBlock(t *testing.T) {
	doc := NewDocument()
	if !doc.IsEmpty() {
		t.Error("new document should be empty")
	}

	b := doc.AddBlock(Block{Kind: Heading, Level: 2})
	b.AddRun(Run{Text: "Title"})

	if len(doc.Blocks) != 1 {
		t.Fatalf("len(Blocks) = %d, want 1", len(doc.Blocks))
	}
	if doc.Blocks[0].Level != 2 {
		t.Errorf("Level = %d, want 2", doc.Blocks[0].Level)
	}
	if got := doc.Blocks[0].Text(); got != "Title" {
		t.Errorf("Text() = %q, want %q", got, "Title")
	}
}

func TestBlock_Text(t *testing.T) {
	tests := []struct {
		name string
		runs []Run
		want string
	}{
		{"empty", nil, ""},
		{"single run", []Run{{Text: "hello"}}, "hello"},
		{"multiple runs", []Run{{Text: "hello ", Bold: true}, {Text: "world"}}, "hello world"},
		{"line break", []Run{{Text: "a"}, {LineBreak: true}, {Text: "b"}}, "a\nb"},
		{"image contributes nothing", []Run{{Text: "x"}, {Image: &Image{ContentType: "image/png"}}}, "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Block{Runs: tt.runs}
			if got := b.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}
