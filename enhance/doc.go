// Package enhance applies deterministic image cleanup before OCR.
//
// The transforms mirror the behavior of the PIL ImageEnhance module so that
// output is stable across platforms: contrast interpolates each pixel toward
// the image's mean luminance, and sharpness interpolates toward a 3x3
// smoothing of the image. [ForOCR] applies the fixed policy used by the
// conversion pipeline: optional grayscale conversion followed by a 1.5x
// contrast boost and a 1.5x sharpness boost.
package enhance
