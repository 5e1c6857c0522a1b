package classify

import (
	"errors"
	"strings"
	"testing"
)

// fakeSampler is a TextSampler backed by a slice of page texts.
type fakeSampler struct {
	pages []string
	fail  map[int]bool // pages whose extraction errors
}

func (f *fakeSampler) PageCount() int { return len(f.pages) }

func (f *fakeSampler) PageText(n int) (string, error) {
	if f.fail[n] {
		return "", errors.New("extraction failed")
	}
	return f.pages[n], nil
}

func TestIsScanned_EmptyDocument(t *testing.T) {
	if !IsScanned(&fakeSampler{}) {
		t.Error("IsScanned() = false for zero-page document, want true")
	}
}

func TestIsScanned_Threshold(t *testing.T) {
	tests := []struct {
		name  string
		pages []string
		want  bool
	}{
		{"no text at all", []string{"", "", ""}, true},
		{"well below threshold", []string{"short", "also short", "tiny"}, true},
		{"exactly at threshold", []string{strings.Repeat("a", 50)}, false},
		{"one below threshold", []string{strings.Repeat("a", 49)}, true},
		{"average over three pages", []string{strings.Repeat("a", 150), "", ""}, false},
		{"whitespace does not count", []string{strings.Repeat(" \t\n", 100)}, true},
		{"digital document", []string{strings.Repeat("lorem ipsum ", 50), strings.Repeat("dolor sit ", 50)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsScanned(&fakeSampler{pages: tt.pages}); got != tt.want {
				t.Errorf("IsScanned() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsScanned_SamplesOnlyFirstThreePages(t *testing.T) {
	// Pages 4+ are rich in text but must not affect the decision.
	s := &fakeSampler{pages: []string{"", "", "", strings.Repeat("a", 1000), strings.Repeat("a", 1000)}}
	if !IsScanned(s) {
		t.Error("IsScanned() = false, want true: only the first 3 pages should be sampled")
	}
}

func TestIsScanned_ExtractionErrorsCountAsEmpty(t *testing.T) {
	s := &fakeSampler{
		pages: []string{strings.Repeat("a", 200), "", ""},
		fail:  map[int]bool{0: true},
	}
	if !IsScanned(s) {
		t.Error("IsScanned() = false, want true: failed pages contribute no text")
	}
}
