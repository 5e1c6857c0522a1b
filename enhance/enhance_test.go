package enhance

import (
	"image"
	"image/color"
	"testing"
)

func grayImage(w, h int, fill uint8) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, w, h))
	for i := range g.Pix {
		g.Pix[i] = fill
	}
	return g
}

func TestGrayscale_ConvertsRGBA(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.Set(0, 0, color.RGBA{R: 255, A: 255})
	src.Set(1, 0, color.RGBA{G: 255, A: 255})
	src.Set(0, 1, color.RGBA{B: 255, A: 255})
	src.Set(1, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	g := Grayscale(src)
	if g.Bounds() != src.Bounds() {
		t.Fatalf("bounds = %v, want %v", g.Bounds(), src.Bounds())
	}
	// Green contributes more luminance than red, red more than blue.
	r := g.GrayAt(0, 0).Y
	gr := g.GrayAt(1, 0).Y
	b := g.GrayAt(0, 1).Y
	if !(gr > r && r > b) {
		t.Errorf("luma ordering wrong: green=%d red=%d blue=%d", gr, r, b)
	}
	if g.GrayAt(1, 1).Y != 255 {
		t.Errorf("white pixel = %d, want 255", g.GrayAt(1, 1).Y)
	}
}

func TestGrayscale_PassthroughForGray(t *testing.T) {
	g := grayImage(3, 3, 42)
	if got := Grayscale(g); got != g {
		t.Error("Grayscale() should return gray input unchanged")
	}
}

func TestAdjustContrast_UnitFactorIsNoop(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 4, 1))
	copy(g.Pix, []uint8{10, 100, 200, 250})

	out := AdjustContrast(g, 1.0).(*image.Gray)
	for i, v := range out.Pix {
		if v != g.Pix[i] {
			t.Errorf("pixel %d = %d, want %d", i, v, g.Pix[i])
		}
	}
}

func TestAdjustContrast_SpreadsAroundMean(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 2, 1))
	copy(g.Pix, []uint8{100, 200}) // mean 150

	out := AdjustContrast(g, 1.5).(*image.Gray)
	// 150 + 1.5*(100-150) = 75; 150 + 1.5*(200-150) = 225
	if out.Pix[0] != 75 {
		t.Errorf("dark pixel = %d, want 75", out.Pix[0])
	}
	if out.Pix[1] != 225 {
		t.Errorf("bright pixel = %d, want 225", out.Pix[1])
	}
}

func TestAdjustContrast_Clamps(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 2, 1))
	copy(g.Pix, []uint8{0, 255})

	out := AdjustContrast(g, 3.0).(*image.Gray)
	if out.Pix[0] != 0 || out.Pix[1] != 255 {
		t.Errorf("pixels = %v, want [0 255]", out.Pix)
	}
}

func TestAdjustSharpness_UnitFactorIsNoop(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 5, 5))
	for i := range g.Pix {
		g.Pix[i] = uint8(i * 10)
	}

	out := AdjustSharpness(g, 1.0).(*image.Gray)
	for i, v := range out.Pix {
		if v != g.Pix[i] {
			t.Errorf("pixel %d = %d, want %d", i, v, g.Pix[i])
		}
	}
}

func TestAdjustSharpness_IncreasesEdgeContrast(t *testing.T) {
	// A single bright pixel in a dark field: sharpening should push the
	// center further from its smoothed neighborhood, i.e. keep it at least
	// as bright; a blur factor should dim it.
	g := grayImage(5, 5, 0)
	g.SetGray(2, 2, color.Gray{Y: 200})

	sharp := AdjustSharpness(g, 1.5).(*image.Gray)
	blur := AdjustSharpness(g, 0.0).(*image.Gray)

	if sharp.GrayAt(2, 2).Y < 200 {
		t.Errorf("sharpened center = %d, want >= 200", sharp.GrayAt(2, 2).Y)
	}
	if blur.GrayAt(2, 2).Y >= 200 {
		t.Errorf("blurred center = %d, want < 200", blur.GrayAt(2, 2).Y)
	}
}

func TestAdjustSharpness_BorderUnchanged(t *testing.T) {
	g := grayImage(4, 4, 50)
	g.SetGray(0, 0, color.Gray{Y: 250})

	out := AdjustSharpness(g, 2.0).(*image.Gray)
	if out.GrayAt(0, 0).Y != 250 {
		t.Errorf("border pixel = %d, want 250", out.GrayAt(0, 0).Y)
	}
}

func TestForOCR_Deterministic(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := range src.Pix {
		src.Pix[i] = uint8(i * 7)
	}

	a := ForOCR(src, false)
	b := ForOCR(src, false)

	ga, gb := a.(*image.Gray), b.(*image.Gray)
	for i := range ga.Pix {
		if ga.Pix[i] != gb.Pix[i] {
			t.Fatalf("ForOCR not deterministic at pixel %d", i)
		}
	}
}

func TestForOCR_ColorModes(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))

	if _, ok := ForOCR(src, false).(*image.Gray); !ok {
		t.Error("ForOCR(preserveColor=false) should produce grayscale")
	}
	if _, ok := ForOCR(src, true).(*image.RGBA); !ok {
		t.Error("ForOCR(preserveColor=true) should keep color")
	}
}
