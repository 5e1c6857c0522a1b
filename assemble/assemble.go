package assemble

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/gardar/ocrchestra/pkg/hocr"
	"github.com/gardar/ocrchestra/pkg/pdfocr"
)

// Page is one resolved page ready for assembly: the rasterized (and possibly
// preprocessed) image plus the hOCR recognized from it. An empty HOCR marks
// a placeholder page, emitted with the image only and no text layer.
type Page struct {
	Index int // 1-based source page number
	Image image.Image
	HOCR  string
}

// WritePDF assembles the pages, in order, into a searchable PDF at
// outputPath. The file is created fresh; an existing file at that path is an
// error. On failure no partial output is left behind.
func WritePDF(pages []Page, outputPath string) error {
	if len(pages) == 0 {
		return fmt.Errorf("no pages to assemble")
	}

	images := make([][]byte, 0, len(pages))
	doc := hocr.HOCR{Pages: make([]hocr.Page, 0, len(pages))}

	for _, p := range pages {
		var buf bytes.Buffer
		if err := png.Encode(&buf, p.Image); err != nil {
			return fmt.Errorf("encoding page %d: %w", p.Index, err)
		}
		images = append(images, buf.Bytes())
		doc.Pages = append(doc.Pages, hocrPage(p))
	}

	cfg := pdfocr.DefaultConfig()
	cfg.LogWarnings = false

	out, err := pdfocr.AssembleWithOCR(&doc, images, cfg)
	if err != nil {
		return fmt.Errorf("assembling searchable PDF: %w", err)
	}

	return writeExclusive(outputPath, out)
}

// hocrPage converts one page's recognition output into the hOCR object
// model, renumbered to its position in the source document. Placeholder
// pages and unparseable hOCR yield an empty page sized to the image.
func hocrPage(p Page) hocr.Page {
	if p.HOCR != "" {
		parsed, err := hocr.ParseHOCR([]byte(p.HOCR))
		if err == nil && len(parsed.Pages) > 0 {
			page := parsed.Pages[0]
			page.PageNumber = p.Index
			return page
		}
	}

	b := p.Image.Bounds()
	return hocr.Page{
		ID:         fmt.Sprintf("page_%d", p.Index),
		PageNumber: p.Index,
		BBox:       hocr.NewBoundingBox(0, 0, float64(b.Dx()), float64(b.Dy())),
	}
}

// CopyFile copies src to dst byte for byte. Used when the source PDF is
// already digital and needs no OCR. dst must not already exist.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("copying: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return fmt.Errorf("closing output: %w", err)
	}
	return nil
}

// writeExclusive writes data to path in one flush, failing if the file
// already exists and removing it again if the write fails.
func writeExclusive(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("writing output: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("closing output: %w", err)
	}
	return nil
}
