package model

// BlockKind identifies the kind of a block.
type BlockKind int

const (
	// Paragraph is a plain body paragraph.
	Paragraph BlockKind = iota
	// Heading is a heading block with a level of 1-6.
	Heading
	// ListItem is a single bulleted or numbered list entry.
	ListItem
)

// ListKind identifies the marker style of a list item.
type ListKind int

const (
	// Bullet is an unordered list marker.
	Bullet ListKind = iota
	// Number is an ordered list marker.
	Number
)

// Color is an opaque RGB color.
type Color struct {
	R, G, B uint8
}

// Image is an embedded image carried inline in a run.
type Image struct {
	Data        []byte // Raw encoded image bytes
	ContentType string // MIME type, e.g. "image/png"
}

// Run is a span of text with uniform formatting inside a block.
// A run with LineBreak set represents an in-paragraph line break and
// carries no text. A run with Image set represents an inline image.
type Run struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline bool
	SizePt    float64 // Font size in points; 0 means inherit
	Color     *Color  // nil means default color
	LineBreak bool
	Image     *Image
}

// Block is one element of a document: a paragraph, heading, or list item.
type Block struct {
	Kind  BlockKind
	Level int      // Heading level (1-6); 0 for other kinds
	List  ListKind // Marker style when Kind == ListItem
	Runs  []Run
}

// Document is an ordered sequence of blocks.
type Document struct {
	Blocks []Block
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{}
}

// AddBlock appends a block and returns a pointer to the stored copy so
// callers can continue to append runs to it.
func (d *Document) AddBlock(b Block) *Block {
	d.Blocks = append(d.Blocks, b)
	return &d.Blocks[len(d.Blocks)-1]
}

// AddParagraph appends an empty paragraph block.
func (d *Document) AddParagraph() *Block {
	return d.AddBlock(Block{Kind: Paragraph})
}

// IsEmpty reports whether the document has no blocks.
func (d *Document) IsEmpty() bool {
	return len(d.Blocks) == 0
}

// Text returns the plain text of a block, ignoring formatting. Line break
// runs contribute a newline; image runs contribute nothing.
func (b *Block) Text() string {
	var out []byte
	for _, r := range b.Runs {
		if r.LineBreak {
			out = append(out, '\n')
			continue
		}
		out = append(out, r.Text...)
	}
	return string(out)
}

// AddRun appends a run to the block.
func (b *Block) AddRun(r Run) {
	b.Runs = append(b.Runs, r)
}
