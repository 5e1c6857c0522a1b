package lectern

import (
	"fmt"
	"strings"
)

// Warning represents a non-fatal problem encountered during conversion,
// such as a page that failed OCR and was emitted as a placeholder. Page is
// the 1-based page number, or 0 for document-level warnings.
type Warning struct {
	Page    int
	Message string
}

func (w Warning) String() string {
	if w.Page > 0 {
		return fmt.Sprintf("page %d: %s", w.Page, w.Message)
	}
	return w.Message
}

// FormatWarnings renders warnings as a single string, one per line.
// Returns an empty string if there are no warnings.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
