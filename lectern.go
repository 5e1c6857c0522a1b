// Package lectern converts PDF documents into searchable PDF, plain text,
// or Word output, running OCR on scanned documents and passing digital
// documents through untouched.
//
// Basic usage:
//
//	out, warnings, err := lectern.Open("scan.pdf").ToPDF("")
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", lectern.FormatWarnings(warnings))
//	}
//
// With options:
//
//	out, _, err := lectern.Open("scan.pdf").
//	    DPI(300).
//	    Language("eng+fra").
//	    ForceOCR().
//	    ToText("scan.txt")
//
// OCR requires Tesseract and the "ocr" build tag; without it, conversions
// that need recognition fail with a MissingDependencyError. The docx and
// htmldoc subpackages, also reachable through DocxToHTML and HTMLToDocx,
// work without any external engine.
package lectern

// Open prepares a conversion of the named PDF file and returns a Converter
// for fluent configuration. The file is not touched until a terminal
// operation such as ToPDF, ToText, or ToDocx runs.
//
// Example:
//
//	out, warnings, err := lectern.Open("scan.pdf").ToPDF("scan_ocr.pdf")
func Open(filename string) *Converter {
	return &Converter{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromSource creates a Converter reading pages from an already-opened
// source. The caller remains responsible for closing the source.
//
// Example:
//
//	doc, err := raster.Open("scan.pdf")
//	if err != nil {
//	    // handle error
//	}
//	defer doc.Close()
//	out, warnings, err := lectern.FromSource(doc).ToText("scan.txt")
func FromSource(src PageSource) *Converter {
	return &Converter{
		source:  src,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustConvert is a helper that wraps a terminal operation and panics if
// the error is non-nil. It discards warnings and returns just the output
// path or value.
//
// Example:
//
//	out := lectern.MustConvert(lectern.Open("scan.pdf").ToPDF(""))
func MustConvert[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
