package imaging

import (
	"image/color"
	"testing"
)

func TestFillStyle_Hex(t *testing.T) {
	if got := DarkBackgroundFill.Hex(); got != "#C8C8C86E" {
		t.Errorf("DarkBackgroundFill.Hex: got %s, want #C8C8C86E", got)
	}
	if got := LightBackgroundFill.Hex(); got != "#00C85060" {
		t.Errorf("LightBackgroundFill.Hex: got %s, want #00C85060", got)
	}
}

func TestSelectFill(t *testing.T) {
	tests := []struct {
		name string
		bg   color.NRGBA
		want FillStyle
	}{
		{"black is dark", color.NRGBA{0, 0, 0, 255}, DarkBackgroundFill},
		{"just below cutoff", color.NRGBA{84, 84, 84, 255}, DarkBackgroundFill},
		{"just above cutoff", color.NRGBA{86, 86, 86, 255}, LightBackgroundFill},
		{"white is light", color.NRGBA{255, 255, 255, 255}, LightBackgroundFill},
		{"transparent is light", color.NRGBA{0, 0, 0, 0}, LightBackgroundFill},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := newFilledImage(20, 20, tt.bg)
			if got := SelectFill(img); got != tt.want {
				t.Errorf("SelectFill: got %v, want %v (luminance %.2f)", got, tt.want, AverageLuminance(img))
			}
		})
	}
}

func TestSelectFillWith_CustomCutoff(t *testing.T) {
	img := newFilledImage(10, 10, color.NRGBA{100, 100, 100, 255})
	dark := FillStyle{R: 1, A: 1}
	light := FillStyle{R: 2, A: 2}

	if got := SelectFillWith(img, 150, dark, light); got != dark {
		t.Errorf("cutoff 150: got %v, want dark", got)
	}
	if got := SelectFillWith(img, 50, dark, light); got != light {
		t.Errorf("cutoff 50: got %v, want light", got)
	}
}

func TestRenderOverlay_Blend(t *testing.T) {
	bg := color.NRGBA{100, 100, 100, 255}
	box := BBox{X: 2, Y: 2, W: 3, H: 3}

	tests := []struct {
		name  string
		style FillStyle
		want  color.NRGBA
	}{
		{"opaque fill replaces", FillStyle{R: 200, G: 0, B: 0, A: 255}, color.NRGBA{200, 0, 0, 255}},
		{"zero alpha keeps", FillStyle{R: 200, G: 0, B: 0, A: 0}, bg},
		{"half alpha mixes", FillStyle{R: 200, G: 0, B: 0, A: 128}, color.NRGBA{150, 50, 50, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := newFilledImage(8, 8, bg)
			out := RenderOverlay(img, box, tt.style)

			for y := 0; y < 8; y++ {
				for x := 0; x < 8; x++ {
					got := out.PixelAt(x, y)
					inside := x >= 2 && x < 5 && y >= 2 && y < 5
					want := bg
					if inside {
						want = tt.want
					}
					if got != want {
						t.Fatalf("pixel (%d,%d): got %v, want %v", x, y, got, want)
					}
				}
			}
		})
	}
}

func TestRenderOverlay_DoesNotModifyInput(t *testing.T) {
	bg := color.NRGBA{10, 20, 30, 255}
	img := newFilledImage(6, 6, bg)

	out := RenderOverlay(img, BBox{X: 0, Y: 0, W: 6, H: 6}, LightBackgroundFill)

	if out == img {
		t.Fatal("RenderOverlay returned its input")
	}
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			if got := img.PixelAt(x, y); got != bg {
				t.Fatalf("input pixel (%d,%d) changed to %v", x, y, got)
			}
		}
	}
}

func TestRenderOverlay_ForcesOpaque(t *testing.T) {
	img := newFilledImage(4, 4, color.NRGBA{0, 0, 0, 0})

	out := RenderOverlay(img, BBox{X: 1, Y: 1, W: 2, H: 2}, FillStyle{R: 255, G: 255, B: 255, A: 255})

	if got := out.PixelAt(1, 1); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("inside pixel: got %v, want opaque white", got)
	}
	if got := out.PixelAt(0, 0); got.A != 0 {
		t.Errorf("outside pixel alpha: got %d, want 0", got.A)
	}
}

func TestRenderOverlay_ClampsBox(t *testing.T) {
	bg := color.NRGBA{0, 0, 0, 255}
	img := newFilledImage(5, 5, bg)
	fill := FillStyle{R: 255, A: 255}

	out := RenderOverlay(img, BBox{X: 3, Y: 3, W: 10, H: 10}, fill)

	if got := out.PixelAt(4, 4); got.R != 255 {
		t.Errorf("pixel (4,4): got %v, want red", got)
	}
	if got := out.PixelAt(2, 2); got != bg {
		t.Errorf("pixel (2,2): got %v, want unchanged", got)
	}

	// Entirely off-canvas leaves a plain copy.
	off := RenderOverlay(img, BBox{X: 50, Y: 50, W: 2, H: 2}, fill)
	if got := off.PixelAt(4, 4); got != bg {
		t.Errorf("off-canvas overlay changed pixel: got %v", got)
	}
}

func TestParseFillStyle(t *testing.T) {
	tests := []struct {
		input   string
		want    FillStyle
		wantErr bool
	}{
		{"#FF0000", FillStyle{R: 255, G: 0, B: 0, A: 77}, false},
		{"00ff00", FillStyle{R: 0, G: 255, B: 0, A: 77}, false},
		{"#0000FF80", FillStyle{R: 0, G: 0, B: 255, A: 128}, false},
		{" #C8C8C86E ", DarkBackgroundFill, false},
		{"", FillStyle{}, true},
		{"#FFF", FillStyle{}, true},
		{"#GGGGGG", FillStyle{}, true},
		{"#FF0000ZZ", FillStyle{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFillStyle(tt.input, 77)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFillStyle(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseFillStyle(%q): got %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFillStyle_HexRoundTrip(t *testing.T) {
	for _, f := range []FillStyle{DarkBackgroundFill, LightBackgroundFill} {
		got, err := ParseFillStyle(f.Hex(), 0)
		if err != nil {
			t.Fatalf("ParseFillStyle(%s): %v", f.Hex(), err)
		}
		if got != f {
			t.Errorf("round trip %s: got %v", f.Hex(), got)
		}
	}
}
