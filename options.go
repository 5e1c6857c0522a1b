package lectern

import "log"

const (
	// MinDPI and MaxDPI bound the rasterization resolution. Values
	// outside the range are clamped, not rejected.
	MinDPI = 150
	MaxDPI = 600

	defaultDPI      = 350
	defaultLanguage = "eng"
	defaultWorkers  = 4
)

// ConvertOptions holds configuration for a conversion.
type ConvertOptions struct {
	// Rasterization resolution in dots per inch.
	dpi int

	// Tesseract language code(s), "+"-separated for multiple.
	language string

	// Skip classification and treat the document as scanned.
	forceOCR bool

	// Keep color during preprocessing instead of converting to grayscale.
	preserveColor bool

	// Apply contrast and sharpness enhancement before recognition.
	preprocess bool

	// Number of pages recognized concurrently.
	workers int

	// Optional progress/diagnostic logger. Nil disables logging.
	logger *log.Logger
}

// defaultOptions returns the default conversion options.
func defaultOptions() ConvertOptions {
	return ConvertOptions{
		dpi:           defaultDPI,
		language:      defaultLanguage,
		forceOCR:      false,
		preserveColor: true,
		preprocess:    true,
		workers:       defaultWorkers,
		logger:        nil,
	}
}

// clone creates a copy of ConvertOptions.
func (o ConvertOptions) clone() ConvertOptions {
	return o
}

// clampDPI forces a resolution into the supported range.
func clampDPI(dpi int) int {
	if dpi < MinDPI {
		return MinDPI
	}
	if dpi > MaxDPI {
		return MaxDPI
	}
	return dpi
}
