package enhance

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// ocrBoost is the fixed enhancement factor applied before recognition.
// Values above 1.0 increase contrast/sharpness; 1.0 is a no-op.
const ocrBoost = 1.5

// ForOCR prepares a page image for recognition: converts to grayscale unless
// preserveColor is set, then applies the fixed contrast and sharpness boosts.
// The input image is never modified.
func ForOCR(src image.Image, preserveColor bool) image.Image {
	var img image.Image = src
	if !preserveColor {
		img = Grayscale(img)
	}
	img = AdjustContrast(img, ocrBoost)
	img = AdjustSharpness(img, ocrBoost)
	return img
}

// Grayscale converts an image to single-channel grayscale using the standard
// luma weights.
func Grayscale(src image.Image) *image.Gray {
	if g, ok := src.(*image.Gray); ok {
		return g
	}
	b := src.Bounds()
	dst := image.NewGray(b)
	xdraw.Draw(dst, b, src, b.Min, xdraw.Src)
	return dst
}

// AdjustContrast interpolates every pixel toward the image's mean luminance.
// A factor of 1.0 returns an unchanged copy; 0.0 yields a uniform gray image.
func AdjustContrast(src image.Image, factor float64) image.Image {
	adjust := func(mean float64) func(uint8) uint8 {
		return func(v uint8) uint8 {
			return clamp8(mean + factor*(float64(v)-mean))
		}
	}

	if g, ok := src.(*image.Gray); ok {
		return mapGray(g, adjust(meanLuminance(g)))
	}
	rgba := toRGBA(src)
	return mapRGBA(rgba, adjust(meanLuminance(Grayscale(rgba))))
}

// AdjustSharpness interpolates every pixel toward a 3x3 smoothed copy of the
// image. A factor of 1.0 returns an unchanged copy; values above 1.0 sharpen,
// values below 1.0 blur. The one-pixel border is not filtered.
func AdjustSharpness(src image.Image, factor float64) image.Image {
	if g, ok := src.(*image.Gray); ok {
		out := image.NewGray(g.Bounds())
		copy(out.Pix, g.Pix)
		sharpenInterior(g.Bounds(), 1, g.Pix, g.Stride, out.Pix, out.Stride, factor)
		return out
	}

	rgba := toRGBA(src)
	out := image.NewRGBA(rgba.Bounds())
	copy(out.Pix, rgba.Pix)
	sharpenInterior(rgba.Bounds(), 4, rgba.Pix, rgba.Stride, out.Pix, out.Stride, factor)
	return out
}

func toRGBA(src image.Image) *image.RGBA {
	if r, ok := src.(*image.RGBA); ok {
		return r
	}
	b := src.Bounds()
	dst := image.NewRGBA(b)
	xdraw.Draw(dst, b, src, b.Min, xdraw.Src)
	return dst
}

// meanLuminance returns the mean pixel value of a grayscale image. Empty
// images report mid-gray so contrast adjustment stays a no-op.
func meanLuminance(g *image.Gray) float64 {
	b := g.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return 128
	}
	var sum uint64
	for y := 0; y < h; y++ {
		row := g.Pix[y*g.Stride : y*g.Stride+w]
		for _, v := range row {
			sum += uint64(v)
		}
	}
	return float64(sum) / float64(w*h)
}

func mapGray(g *image.Gray, f func(uint8) uint8) *image.Gray {
	b := g.Bounds()
	out := image.NewGray(b)
	w, h := b.Dx(), b.Dy()
	for y := 0; y < h; y++ {
		src := g.Pix[y*g.Stride : y*g.Stride+w]
		dst := out.Pix[y*out.Stride : y*out.Stride+w]
		for x, v := range src {
			dst[x] = f(v)
		}
	}
	return out
}

func mapRGBA(r *image.RGBA, f func(uint8) uint8) *image.RGBA {
	b := r.Bounds()
	out := image.NewRGBA(b)
	w, h := b.Dx(), b.Dy()
	for y := 0; y < h; y++ {
		src := r.Pix[y*r.Stride : y*r.Stride+w*4]
		dst := out.Pix[y*out.Stride : y*out.Stride+w*4]
		for x := 0; x < w*4; x += 4 {
			dst[x] = f(src[x])
			dst[x+1] = f(src[x+1])
			dst[x+2] = f(src[x+2])
			dst[x+3] = src[x+3] // alpha untouched
		}
	}
	return out
}

// smoothKernel is the 3x3 smoothing kernel: center weight 5, neighbors 1,
// normalized by 13.
var smoothKernel = [9]int{1, 1, 1, 1, 5, 1, 1, 1, 1}

// sharpenInterior writes sharpened pixel values for the interior of the
// image into dst: each pixel is interpolated between its 3x3 smoothed value
// and its original value by factor. The alpha channel (when channels == 4)
// and the one-pixel border pass through unchanged.
func sharpenInterior(b image.Rectangle, channels int, src []uint8, srcStride int, dst []uint8, dstStride int, factor float64) {
	w, h := b.Dx(), b.Dy()
	colorChannels := channels
	if channels == 4 {
		colorChannels = 3
	}
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			for c := 0; c < colorChannels; c++ {
				sum := 0
				k := 0
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						sum += int(src[(y+dy)*srcStride+(x+dx)*channels+c]) * smoothKernel[k]
						k++
					}
				}
				smooth := float64(sum) / 13.0
				orig := float64(src[y*srcStride+x*channels+c])
				dst[y*dstStride+x*channels+c] = clamp8(smooth + factor*(orig-smooth))
			}
		}
	}
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
