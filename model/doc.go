// Package model defines the flat document model shared by the DOCX and HTML
// packages.
//
// A [Document] is an ordered sequence of [Block] values. Each block is a
// paragraph, a heading with a level, or a list item, and owns an ordered
// sequence of [Run] values carrying text and inline formatting (bold, italic,
// underline, font size in points, RGB color). Runs may also be in-paragraph
// line breaks or embedded images.
//
// The model is deliberately flat: there is no block nesting and no
// paragraph-level alignment. Documents produced from edited HTML stay freely
// re-editable because no alignment overrides are ever written.
package model
