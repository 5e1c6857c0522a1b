package lectern

import (
	"fmt"

	"github.com/tsawler/lectern/docx"
	"github.com/tsawler/lectern/format"
	"github.com/tsawler/lectern/htmldoc"
)

// DocxToHTML reads a Word file and returns its body as an HTML fragment.
// Paragraph structure, headings, lists, inline formatting, and embedded
// images (as data URIs) are preserved. An empty document yields "<p></p>".
func DocxToHTML(filename string) (string, error) {
	detected, err := format.DetectFile(filename)
	if err != nil {
		return "", &ValidationError{Msg: fmt.Sprintf("cannot read %s: %v", filename, err)}
	}
	if detected != format.DOCX {
		return "", &ValidationError{Msg: fmt.Sprintf("%s is not a Word document (detected %s)", filename, detected)}
	}
	doc, err := docx.Read(filename)
	if err != nil {
		return "", err
	}
	return htmldoc.RenderFragment(doc)
}

// HTMLToDocx converts an HTML fragment into a Word file at outputPath.
// An empty or whitespace-only fragment produces a document with a single
// empty paragraph. The output file must not already exist.
func HTMLToDocx(fragment, outputPath string) error {
	if outputPath == "" {
		return &ValidationError{Msg: "no output file specified"}
	}
	doc, err := htmldoc.ParseFragment(fragment)
	if err != nil {
		return &ValidationError{Msg: fmt.Sprintf("invalid HTML fragment: %v", err)}
	}
	if err := docx.Save(doc, outputPath); err != nil {
		return &WriteError{Path: outputPath, Err: err}
	}
	return nil
}
