package imaging

import (
	"image/color"
	"testing"
)

func TestFitWidth(t *testing.T) {
	img := newFilledImage(200, 100, color.NRGBA{50, 50, 50, 255})

	tests := []struct {
		name       string
		maxWidth   int
		wantW      int
		wantH      int
		wantFactor float64
	}{
		{"disabled", 0, 200, 100, 1},
		{"negative disables", -10, 200, 100, 1},
		{"already narrow", 200, 200, 100, 1},
		{"wider limit", 400, 200, 100, 1},
		{"downscale", 50, 50, 25, 4},
		{"half", 100, 100, 50, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, factor := FitWidth(img, tt.maxWidth)
			if got.Width() != tt.wantW || got.Height() != tt.wantH {
				t.Errorf("dimensions: got %dx%d, want %dx%d", got.Width(), got.Height(), tt.wantW, tt.wantH)
			}
			if factor != tt.wantFactor {
				t.Errorf("factor: got %v, want %v", factor, tt.wantFactor)
			}
			if tt.wantFactor == 1 && got != img {
				t.Error("no-op resize should return the input image")
			}
		})
	}
}

func TestFitWidth_MapsBoxBack(t *testing.T) {
	img := newFilledImage(400, 200, color.NRGBA{0, 0, 0, 255})

	small, factor := FitWidth(img, 100)
	box := BBox{X: 10, Y: 5, W: 20, H: 10}.Scale(factor)

	want := BBox{X: 40, Y: 20, W: 80, H: 40}
	if box != want {
		t.Errorf("mapped box: got %v, want %v (small %dx%d)", box, want, small.Width(), small.Height())
	}
}
