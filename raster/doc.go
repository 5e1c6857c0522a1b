// Package raster renders PDF pages to images and exposes each page's
// embedded text layer.
//
// It wraps the MuPDF engine via github.com/gen2brain/go-fitz. A [Document]
// is opened once per conversion request and is not safe for concurrent use;
// render all pages first, then fan work out over the resulting [PageImage]
// slice.
package raster
