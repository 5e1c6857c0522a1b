package emit

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"github.com/tsawler/lectern/model"
)

// FailureMarker is substituted for a page whose recognition failed even
// after the retry.
const FailureMarker = "[OCR failed for this page]"

// EmptyPageMarker is substituted for a digital page with no embedded text.
const EmptyPageMarker = "[No text found on this page]"

// pagePattern matches the page delimiter. The regexp split (rather than a
// plain string split) avoids misfiring when page content itself contains
// dashes.
var pagePattern = regexp.MustCompile(`(?i)--- Page (\d+) ---\n\n`)

// FormatPage wraps one page's text with its delimiter line.
func FormatPage(n int, content string) string {
	return fmt.Sprintf("--- Page %d ---\n\n%s\n\n", n, content)
}

// JoinPages concatenates per-page text in order, each page wrapped with its
// delimiter. Page numbers are 1-based positions in the slice.
func JoinPages(pages []string) string {
	var b strings.Builder
	for i, content := range pages {
		b.WriteString(FormatPage(i+1, content))
	}
	return b.String()
}

// PageContent is one page recovered from delimited text.
type PageContent struct {
	Number  int
	Content string
}

// SplitPages recovers (page number, content) pairs from delimited text.
// Text before the first delimiter is discarded.
func SplitPages(text string) []PageContent {
	matches := pagePattern.FindAllStringSubmatchIndex(text, -1)
	pages := make([]PageContent, 0, len(matches))
	for i, m := range matches {
		n, err := strconv.Atoi(text[m[2]:m[3]])
		if err != nil {
			continue
		}
		start := m[1]
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		pages = append(pages, PageContent{
			Number:  n,
			Content: strings.TrimSpace(text[start:end]),
		})
	}
	return pages
}

// Sanitize replaces ill-formed UTF-8 sequences, which OCR output can
// contain, with the Unicode replacement character so the write never fails.
func Sanitize(text string) string {
	out, _, err := transform.String(runes.ReplaceIllFormed(), text)
	if err != nil {
		// ReplaceIllFormed does not error on any input; keep the original
		// text if it somehow does.
		return text
	}
	return out
}

// WriteText writes the sanitized transcript to path in a single flush.
// An existing file at path is an error; on failure no partial output is
// left behind.
func WriteText(text, path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if _, err := f.WriteString(Sanitize(text)); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("writing output: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("closing output: %w", err)
	}
	return nil
}

// Heading and title styling for the DOCX emitter.
var (
	docxTitleSize   = 14.0
	docxHeadingSize = 12.0
	docxHeadingBlue = model.Color{R: 0, G: 0, B: 139}
)

// BuildDocx converts delimited transcript text into a word-processor
// document: a bold title naming the source, then per page a bold dark-blue
// "Page N" heading, the page body, and a blank spacer paragraph. No
// paragraph alignment is ever set.
func BuildDocx(text, sourceName string) *model.Document {
	doc := model.NewDocument()

	title := doc.AddParagraph()
	title.AddRun(model.Run{
		Text:   fmt.Sprintf("Extracted from: %s", sourceName),
		Bold:   true,
		SizePt: docxTitleSize,
	})
	doc.AddParagraph()

	for _, page := range SplitPages(text) {
		heading := doc.AddParagraph()
		heading.AddRun(model.Run{
			Text:   fmt.Sprintf("Page %d", page.Number),
			Bold:   true,
			SizePt: docxHeadingSize,
			Color:  &docxHeadingBlue,
		})

		body := doc.AddParagraph()
		if page.Content != "" {
			body.AddRun(model.Run{Text: page.Content})
		}
		doc.AddParagraph()
	}

	return doc
}
