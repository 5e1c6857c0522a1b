// Package assemble builds the final output PDF for a conversion.
//
// For the OCR path it combines rasterized page images with per-page hOCR
// into a searchable PDF whose text layer is invisible but selectable, using
// github.com/gardar/ocrchestra. Pages whose recognition produced no hOCR
// (placeholders) contribute the image alone with an empty text layer, so the
// output always has exactly one page per input page.
//
// For digital sources that need no OCR, [CopyFile] produces a byte-for-byte
// copy of the original.
//
// Output files are written in a single flush only after every page has been
// resolved, and an existing file at the output path is never overwritten.
package assemble
