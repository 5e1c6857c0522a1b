// Package htmldoc converts between HTML fragments and the flat document
// model. Parsing maps block elements to paragraphs, headings, and list
// items and carries inline formatting onto runs; rendering produces a
// fragment that parses back to an equivalent document.
package htmldoc
