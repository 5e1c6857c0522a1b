// Package classify decides whether a PDF already carries a usable text layer
// or needs OCR.
//
// The heuristic mirrors common practice for scan detection: sample the first
// few pages, extract any embedded text, and compare the average text length
// per page against a threshold. Documents below the threshold are treated as
// scanned (image-based); documents at or above it are treated as digital.
package classify

import "strings"

// TextSampler provides per-page access to a document's embedded text layer.
// *raster.Document satisfies this interface; tests substitute a double.
type TextSampler interface {
	// PageCount returns the number of pages in the document.
	PageCount() int
	// PageText returns the embedded text of the 0-indexed page.
	PageText(n int) (string, error)
}

const (
	// samplePages is the maximum number of leading pages inspected.
	samplePages = 3
	// minCharsPerPage is the average trimmed character count below which a
	// document is considered scanned.
	minCharsPerPage = 50
)

// IsScanned reports whether the document appears to be a scan (image-based,
// needing OCR) rather than a digital PDF with sufficient embedded text.
//
// It samples up to the first three pages. A document with zero pages is
// treated as scanned. Pages whose text cannot be extracted contribute zero
// characters rather than failing; the classifier never returns an error.
func IsScanned(src TextSampler) bool {
	pages := src.PageCount()
	if pages > samplePages {
		pages = samplePages
	}
	if pages == 0 {
		// Empty document: fail toward OCR, which will yield nothing.
		return true
	}

	total := 0
	for i := 0; i < pages; i++ {
		text, err := src.PageText(i)
		if err != nil {
			continue
		}
		total += len(strings.TrimSpace(text))
	}

	avg := float64(total) / float64(pages)
	return avg < minCharsPerPage
}
