package raster

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// PageImage is one rasterized page.
type PageImage struct {
	Index int         // 1-based, contiguous
	Image image.Image // Pixel data at the requested DPI
}

// Document provides page-level access to a PDF file.
type Document struct {
	doc  *fitz.Document
	path string
}

// Open opens a PDF file for rasterization and text sampling.
func Open(filename string) (*Document, error) {
	doc, err := fitz.New(filename)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	return &Document{doc: doc, path: filename}, nil
}

// Close releases the underlying document resources.
func (d *Document) Close() error {
	if d.doc != nil {
		err := d.doc.Close()
		d.doc = nil
		return err
	}
	return nil
}

// Path returns the filename the document was opened from.
func (d *Document) Path() string {
	return d.path
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return d.doc.NumPage()
}

// PageText returns the embedded text of the 0-indexed page.
func (d *Document) PageText(n int) (string, error) {
	text, err := d.doc.Text(n)
	if err != nil {
		return "", fmt.Errorf("extracting text from page %d: %w", n+1, err)
	}
	return text, nil
}

// Render rasterizes the 0-indexed page at the given DPI. The caller is
// expected to have clamped the DPI already; no re-clamping happens here.
func (d *Document) Render(n int, dpi int) (PageImage, error) {
	img, err := d.doc.ImageDPI(n, float64(dpi))
	if err != nil {
		return PageImage{}, fmt.Errorf("rendering page %d: %w", n+1, err)
	}
	return PageImage{Index: n + 1, Image: img}, nil
}

// RenderAll rasterizes every page in order at the given DPI. The returned
// slice has exactly one entry per source page, in source page order. Any
// per-page render failure aborts the whole job; unlike recognition failures,
// an unreadable source is not recoverable.
func (d *Document) RenderAll(dpi int) ([]PageImage, error) {
	count := d.PageCount()
	pages := make([]PageImage, 0, count)
	for i := 0; i < count; i++ {
		page, err := d.Render(i, dpi)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, nil
}
