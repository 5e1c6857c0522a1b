package lectern

import "fmt"

// ValidationError reports invalid input: a missing file, an unsupported
// format, or an unusable option value.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Msg
}

// MissingDependencyError reports that a required external component, such
// as the Tesseract OCR engine, is not available.
type MissingDependencyError struct {
	Dependency string
	Err        error
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("missing dependency %s: %v", e.Dependency, e.Err)
}

func (e *MissingDependencyError) Unwrap() error {
	return e.Err
}

// RenderError reports a failure opening or rasterizing the source PDF.
// Page is the 1-based page number, or 0 when the whole document is
// affected.
type RenderError struct {
	Page int
	Err  error
}

func (e *RenderError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("rendering page %d: %v", e.Page, e.Err)
	}
	return fmt.Sprintf("rendering document: %v", e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// WriteError reports a failure producing the output file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
