// Command lectern converts PDF documents to searchable PDF, plain text, or
// Word output, running OCR on scanned documents. It also transcodes Word
// documents to and from HTML fragments.
//
// Usage:
//
//	lectern -to pdf scan.pdf
//	lectern -to text -lang eng+fra -dpi 300 scan.pdf
//	lectern -to docx -force-ocr scan.pdf
//	lectern -to html letter.docx
//	lectern -to docx -o letter.docx letter.html
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/tsawler/lectern"
	"github.com/tsawler/lectern/format"
)

type options struct {
	input    string
	output   string
	target   string
	dpi      int
	language string
	forceOCR bool
	noColor  bool
	noPrep   bool
	workers  int
	verbose  bool
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "lectern: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "lectern: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: lectern [flags] <input>\n")
		flag.PrintDefaults()
	}
	flag.StringVar(&opts.target, "to", "pdf", "Output format: pdf, text, docx, or html")
	flag.StringVar(&opts.output, "o", "", "Output path (default: derived from input)")
	flag.IntVar(&opts.dpi, "dpi", 350, fmt.Sprintf("OCR rasterization resolution, clamped to [%d, %d]", lectern.MinDPI, lectern.MaxDPI))
	flag.StringVar(&opts.language, "lang", "eng", `OCR language(s), "+" separated`)
	flag.BoolVar(&opts.forceOCR, "force-ocr", false, "Treat the document as scanned even if it has embedded text")
	flag.BoolVar(&opts.noColor, "grayscale", false, "Convert pages to grayscale before OCR")
	flag.BoolVar(&opts.noPrep, "no-preprocess", false, "Skip contrast and sharpness enhancement")
	flag.IntVar(&opts.workers, "workers", 4, "Pages recognized concurrently")
	flag.BoolVar(&opts.verbose, "v", false, "Log progress to stderr")
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		return options{}, fmt.Errorf("missing input path")
	}
	opts.input = flag.Arg(0)
	switch opts.target {
	case "pdf", "text", "docx", "html":
	default:
		return options{}, fmt.Errorf("unknown output format %q", opts.target)
	}
	return opts, nil
}

func run(opts options) error {
	inputFormat, err := format.DetectFile(opts.input)
	if err != nil {
		return err
	}

	switch inputFormat {
	case format.DOCX:
		return transcodeDocx(opts)
	case format.HTML:
		return transcodeHTML(opts)
	default:
		return convertPDF(opts)
	}
}

func convertPDF(opts options) error {
	conv := lectern.Open(opts.input).
		DPI(opts.dpi).
		Language(opts.language).
		Workers(opts.workers).
		PreserveColor(!opts.noColor)
	if opts.forceOCR {
		conv = conv.ForceOCR()
	}
	if opts.noPrep {
		conv = conv.NoPreprocess()
	}
	if opts.verbose {
		conv = conv.Logger(log.New(os.Stderr, "lectern: ", 0))
	}

	var out string
	var warnings []lectern.Warning
	var err error
	switch opts.target {
	case "pdf":
		out, warnings, err = conv.ToPDF(opts.output)
	case "text":
		out, warnings, err = conv.ToText(opts.output)
	case "docx":
		out, warnings, err = conv.ToDocx(opts.output)
	default:
		return fmt.Errorf("cannot convert a PDF to %s", opts.target)
	}
	if err != nil {
		return err
	}
	if len(warnings) > 0 {
		fmt.Fprintln(os.Stderr, lectern.FormatWarnings(warnings))
	}
	fmt.Println(out)
	return nil
}

func transcodeDocx(opts options) error {
	if opts.target != "html" {
		return fmt.Errorf("a Word input can only be converted to html")
	}
	fragment, err := lectern.DocxToHTML(opts.input)
	if err != nil {
		return err
	}
	if opts.output == "" {
		fmt.Println(fragment)
		return nil
	}
	return os.WriteFile(opts.output, []byte(fragment), 0o644)
}

func transcodeHTML(opts options) error {
	if opts.target != "docx" {
		return fmt.Errorf("an HTML input can only be converted to docx")
	}
	data, err := os.ReadFile(opts.input)
	if err != nil {
		return err
	}
	output := opts.output
	if output == "" {
		output = strings.TrimSuffix(opts.input, ".html") + ".docx"
	}
	if err := lectern.HTMLToDocx(string(data), output); err != nil {
		return err
	}
	fmt.Println(output)
	return nil
}
