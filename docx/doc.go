// Package docx reads and writes Office Open XML word processing documents.
//
// Reading maps the main document part onto the flat block model in the
// model package: paragraphs, headings, and list items carrying formatted
// runs and embedded images. Writing produces a minimal but valid .docx
// package from the same model, so documents survive a read/write round
// trip with their structure and formatting intact.
package docx
