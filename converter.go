package lectern

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/lectern/assemble"
	"github.com/tsawler/lectern/classify"
	"github.com/tsawler/lectern/docx"
	"github.com/tsawler/lectern/emit"
	"github.com/tsawler/lectern/enhance"
	"github.com/tsawler/lectern/format"
	"github.com/tsawler/lectern/ocr"
	"github.com/tsawler/lectern/raster"
)

// PageSource supplies the pages of a PDF document: embedded text for
// classification and digital extraction, rasterized images for OCR.
// *raster.Document is the standard implementation.
type PageSource interface {
	// Path returns the filename backing the source, if any.
	Path() string
	// PageCount returns the number of pages.
	PageCount() int
	// PageText returns the embedded text of page n (0-indexed).
	PageText(n int) (string, error)
	// RenderAll rasterizes every page at the given resolution.
	RenderAll(dpi int) ([]raster.PageImage, error)
	// Close releases the source.
	Close() error
}

// Recognizer performs OCR on a single page image. Implementations need
// not be safe for concurrent use; the converter gives each worker its
// own instance. *ocr.Client is the standard implementation.
type Recognizer interface {
	RecognizeImage(imageData []byte) (string, error)
	RecognizeHOCR(imageData []byte) (string, error)
	SetLanguage(lang string) error
	Close() error
}

// RecognizerFactory creates a fresh Recognizer for one OCR worker.
type RecognizerFactory func() (Recognizer, error)

func defaultRecognizer() (Recognizer, error) {
	client, err := ocr.New()
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Converter provides a fluent interface for converting PDF documents.
// Each configuration method returns a new Converter instance, making it
// safe to branch a partially-configured chain.
type Converter struct {
	// Source
	filename string
	source   PageSource

	// Configuration
	options ConvertOptions
	factory RecognizerFactory

	// Accumulated error (fail-fast)
	err error
}

// clone creates a copy of the Converter with a copy of its options.
func (c *Converter) clone() *Converter {
	return &Converter{
		filename: c.filename,
		source:   c.source,
		options:  c.options.clone(),
		factory:  c.factory,
		err:      c.err,
	}
}

// DPI sets the rasterization resolution for OCR. Values outside
// [MinDPI, MaxDPI] are clamped into range.
func (c *Converter) DPI(dpi int) *Converter {
	nc := c.clone()
	nc.options.dpi = dpi
	return nc
}

// Language sets the Tesseract language code(s) used for recognition.
// Multiple languages are "+" separated, e.g. "eng+fra".
func (c *Converter) Language(lang string) *Converter {
	nc := c.clone()
	if strings.TrimSpace(lang) == "" {
		nc.err = &ValidationError{Msg: "language must not be empty"}
		return nc
	}
	nc.options.language = lang
	return nc
}

// ForceOCR skips classification and treats the document as scanned.
func (c *Converter) ForceOCR() *Converter {
	nc := c.clone()
	nc.options.forceOCR = true
	return nc
}

// PreserveColor controls whether page images keep their color during
// preprocessing. When false, pages are converted to grayscale before
// recognition, which is often faster and can improve accuracy on clean
// black-and-white scans.
func (c *Converter) PreserveColor(keep bool) *Converter {
	nc := c.clone()
	nc.options.preserveColor = keep
	return nc
}

// NoPreprocess disables contrast and sharpness enhancement; pages are
// recognized exactly as rasterized.
func (c *Converter) NoPreprocess() *Converter {
	nc := c.clone()
	nc.options.preprocess = false
	return nc
}

// Workers sets how many pages are recognized concurrently.
func (c *Converter) Workers(n int) *Converter {
	nc := c.clone()
	if n < 1 {
		nc.err = &ValidationError{Msg: fmt.Sprintf("workers must be at least 1, got %d", n)}
		return nc
	}
	nc.options.workers = n
	return nc
}

// Logger sets a logger for progress and diagnostics. Nil (the default)
// disables logging.
func (c *Converter) Logger(logger *log.Logger) *Converter {
	nc := c.clone()
	nc.options.logger = logger
	return nc
}

// WithRecognizer replaces the OCR engine. Each worker receives its own
// Recognizer from the factory.
func (c *Converter) WithRecognizer(factory RecognizerFactory) *Converter {
	nc := c.clone()
	nc.factory = factory
	return nc
}

// IsScanned classifies the document without converting it. It reports
// true when the document needs OCR: its first pages carry too little
// embedded text to be a digital PDF. Individual pages whose text cannot
// be read count as empty and lean the result toward scanned, but a
// document that cannot be opened at all returns an error rather than a
// classification, since such a document cannot be rasterized for OCR
// either.
func (c *Converter) IsScanned() (bool, error) {
	src, owns, err := c.open()
	if err != nil {
		return false, err
	}
	if owns {
		defer src.Close()
	}
	return classify.IsScanned(src), nil
}

// ToPDF converts the document to a searchable PDF at outputPath and
// returns the path written. A digital source is copied byte for byte; a
// scanned source is rasterized, recognized, and reassembled with an
// invisible text layer under each page image. An empty outputPath derives
// the destination from the input filename.
func (c *Converter) ToPDF(outputPath string) (string, []Warning, error) {
	src, owns, err := c.open()
	if err != nil {
		return "", nil, err
	}
	if owns {
		defer src.Close()
	}
	outputPath, err = c.resolveOutput(src, outputPath, format.PDF)
	if err != nil {
		return "", nil, err
	}

	if !c.options.forceOCR && !classify.IsScanned(src) {
		c.logf("digital document, copying to %s", outputPath)
		if src.Path() == "" {
			return "", nil, &ValidationError{Msg: "cannot pass through a source with no backing file"}
		}
		if err := assemble.CopyFile(src.Path(), outputPath); err != nil {
			return "", nil, &WriteError{Path: outputPath, Err: err}
		}
		return outputPath, nil, nil
	}

	results, warnings, err := c.recognizeAll(src, true)
	if err != nil {
		return "", nil, err
	}
	pages := make([]assemble.Page, len(results))
	for i, res := range results {
		pages[i] = assemble.Page{Index: res.page.Index, Image: res.image, HOCR: res.hocr}
	}
	if err := assemble.WritePDF(pages, outputPath); err != nil {
		return "", warnings, &WriteError{Path: outputPath, Err: err}
	}
	return outputPath, warnings, nil
}

// ToText converts the document to delimited plain text at outputPath and
// returns the path written. Each page is wrapped with a "--- Page N ---"
// delimiter; pages that fail OCR are emitted as a placeholder marker so
// page numbering is preserved.
func (c *Converter) ToText(outputPath string) (string, []Warning, error) {
	src, owns, err := c.open()
	if err != nil {
		return "", nil, err
	}
	if owns {
		defer src.Close()
	}
	outputPath, err = c.resolveOutput(src, outputPath, format.Unknown)
	if err != nil {
		return "", nil, err
	}

	text, warnings, err := c.extractText(src)
	if err != nil {
		return "", nil, err
	}
	if err := emit.WriteText(text, outputPath); err != nil {
		return "", warnings, &WriteError{Path: outputPath, Err: err}
	}
	return outputPath, warnings, nil
}

// ToDocx converts the document to a Word file at outputPath and returns
// the path written. The document carries a title naming the source, then
// a styled "Page N" heading and body for every page.
func (c *Converter) ToDocx(outputPath string) (string, []Warning, error) {
	src, owns, err := c.open()
	if err != nil {
		return "", nil, err
	}
	if owns {
		defer src.Close()
	}
	outputPath, err = c.resolveOutput(src, outputPath, format.DOCX)
	if err != nil {
		return "", nil, err
	}

	text, warnings, err := c.extractText(src)
	if err != nil {
		return "", nil, err
	}
	sourceName := filepath.Base(c.inputName(src))
	doc := emit.BuildDocx(emit.Sanitize(text), sourceName)
	if err := docx.Save(doc, outputPath); err != nil {
		return "", warnings, &WriteError{Path: outputPath, Err: err}
	}
	return outputPath, warnings, nil
}

// open resolves the page source, validating the input file when the
// converter was created with Open.
func (c *Converter) open() (PageSource, bool, error) {
	if c.err != nil {
		return nil, false, c.err
	}
	if c.source != nil {
		return c.source, false, nil
	}
	if c.filename == "" {
		return nil, false, &ValidationError{Msg: "no input file specified"}
	}
	detected, err := format.DetectFile(c.filename)
	if err != nil {
		return nil, false, &ValidationError{Msg: fmt.Sprintf("cannot read %s: %v", c.filename, err)}
	}
	if detected != format.PDF {
		return nil, false, &ValidationError{Msg: fmt.Sprintf("%s is not a PDF (detected %s)", c.filename, detected)}
	}
	doc, err := raster.Open(c.filename)
	if err != nil {
		return nil, false, &RenderError{Err: err}
	}
	return doc, true, nil
}

func (c *Converter) inputName(src PageSource) string {
	if c.filename != "" {
		return c.filename
	}
	if p := src.Path(); p != "" {
		return p
	}
	return "document"
}

// resolveOutput derives the output path from the input when none is
// given: "<stem>_searchable.pdf" for searchable PDF so the source is never
// clobbered, "<stem>_converted.<ext>" otherwise.
func (c *Converter) resolveOutput(src PageSource, outputPath string, target format.Format) (string, error) {
	if outputPath != "" {
		return outputPath, nil
	}
	input := c.inputName(src)
	stem := strings.TrimSuffix(input, filepath.Ext(input))
	switch target {
	case format.PDF:
		return stem + "_searchable.pdf", nil
	case format.DOCX:
		return stem + "_converted.docx", nil
	default:
		return stem + "_converted.txt", nil
	}
}

// extractText produces the delimited page text for ToText and ToDocx,
// choosing digital extraction or OCR based on classification.
func (c *Converter) extractText(src PageSource) (string, []Warning, error) {
	if !c.options.forceOCR && !classify.IsScanned(src) {
		return c.digitalText(src)
	}

	results, warnings, err := c.recognizeAll(src, false)
	if err != nil {
		return "", nil, err
	}
	contents := make([]string, len(results))
	for i, res := range results {
		contents[i] = res.text
	}
	return emit.JoinPages(contents), warnings, nil
}

// digitalText extracts the embedded text of every page. Pages with no
// text get the empty-page marker; extraction failures additionally raise
// a warning.
func (c *Converter) digitalText(src PageSource) (string, []Warning, error) {
	c.logf("digital document, extracting embedded text")
	count := src.PageCount()
	var warnings []Warning
	contents := make([]string, count)
	for i := 0; i < count; i++ {
		text, err := src.PageText(i)
		if err != nil {
			warnings = append(warnings, Warning{Page: i + 1, Message: fmt.Sprintf("text extraction failed: %v", err)})
			contents[i] = emit.EmptyPageMarker
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			contents[i] = emit.EmptyPageMarker
			continue
		}
		contents[i] = text
	}
	return emit.JoinPages(contents), warnings, nil
}

// pageResult is the outcome of recognizing one page.
type pageResult struct {
	page  raster.PageImage
	image image.Image // the image recognition succeeded on; raw for placeholders
	text  string      // recognized text, or the failure marker
	hocr  string      // hOCR markup; empty marks a placeholder page
	warn  *Warning
}

// recognizeAll rasterizes every page and runs OCR across the worker pool.
// Results come back in page order. A page whose recognition fails twice
// becomes a placeholder result with a warning rather than an error; only
// document-level problems (rendering, engine startup) are fatal.
func (c *Converter) recognizeAll(src PageSource, wantHOCR bool) ([]pageResult, []Warning, error) {
	dpi := clampDPI(c.options.dpi)
	c.logf("rasterizing %d page(s) at %d DPI", src.PageCount(), dpi)
	images, err := src.RenderAll(dpi)
	if err != nil {
		return nil, nil, &RenderError{Err: err}
	}
	if len(images) == 0 {
		return nil, nil, &RenderError{Err: errors.New("document has no pages")}
	}

	workers := c.options.workers
	if workers > len(images) {
		workers = len(images)
	}
	pool, err := c.recognizerPool(workers)
	if err != nil {
		return nil, nil, err
	}
	defer closePool(pool)

	results := make([]pageResult, len(images))
	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i := range images {
		i := i
		g.Go(func() error {
			rec := <-pool
			defer func() { pool <- rec }()
			results[i] = c.recognizePage(rec, images[i], wantHOCR)
			c.logf("page %d/%d done", i+1, len(images))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var warnings []Warning
	for _, res := range results {
		if res.warn != nil {
			warnings = append(warnings, *res.warn)
		}
	}
	return results, warnings, nil
}

// recognizePage runs OCR on one page: first on the preprocessed image,
// then once more on the raw rasterization if that fails. When both
// attempts fail the page degrades to a placeholder.
func (c *Converter) recognizePage(rec Recognizer, page raster.PageImage, wantHOCR bool) pageResult {
	attempts := []image.Image{page.Image}
	if c.options.preprocess {
		attempts = []image.Image{enhance.ForOCR(page.Image, c.options.preserveColor), page.Image}
	}

	var lastErr error
	for _, img := range attempts {
		data, err := encodePNG(img)
		if err != nil {
			lastErr = err
			continue
		}
		var out string
		if wantHOCR {
			out, err = rec.RecognizeHOCR(data)
		} else {
			out, err = rec.RecognizeImage(data)
		}
		if err != nil {
			lastErr = err
			continue
		}
		// The image that was actually recognized becomes the visible
		// layer, so grayscale preprocessing shows in the output PDF.
		res := pageResult{page: page, image: img}
		if wantHOCR {
			res.hocr = out
		} else {
			res.text = out
		}
		return res
	}

	return pageResult{
		page:  page,
		image: page.Image,
		text:  emit.FailureMarker,
		warn:  &Warning{Page: page.Index, Message: fmt.Sprintf("recognition failed, emitting placeholder: %v", lastErr)},
	}
}

// recognizerPool creates one Recognizer per worker. A failure to start
// the engine is fatal for the whole conversion.
func (c *Converter) recognizerPool(workers int) (chan Recognizer, error) {
	pool := make(chan Recognizer, workers)
	for i := 0; i < workers; i++ {
		rec, err := c.newRecognizer()
		if err != nil {
			closePool(pool)
			return nil, err
		}
		pool <- rec
	}
	return pool, nil
}

func (c *Converter) newRecognizer() (Recognizer, error) {
	factory := c.factory
	if factory == nil {
		factory = defaultRecognizer
	}
	rec, err := factory()
	if err != nil {
		return nil, &MissingDependencyError{Dependency: "tesseract OCR engine", Err: err}
	}
	if err := rec.SetLanguage(c.options.language); err != nil {
		rec.Close()
		return nil, &ValidationError{Msg: fmt.Sprintf("language %q: %v", c.options.language, err)}
	}
	return rec, nil
}

func closePool(pool chan Recognizer) {
	for {
		select {
		case rec := <-pool:
			rec.Close()
		default:
			return
		}
	}
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding page image: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *Converter) logf(msg string, args ...any) {
	if c.options.logger != nil {
		c.options.logger.Printf(msg, args...)
	}
}
