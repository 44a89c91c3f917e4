package imaging

import (
	"image"
	"testing"
)

func TestBBox_Rect(t *testing.T) {
	b := BBox{X: 2, Y: 3, W: 4, H: 5}
	want := image.Rect(2, 3, 6, 8)
	if got := b.Rect(); got != want {
		t.Errorf("Rect: got %v, want %v", got, want)
	}
}

func TestBBox_Contains(t *testing.T) {
	outer := BBox{X: 0, Y: 0, W: 10, H: 10}

	tests := []struct {
		name  string
		inner BBox
		want  bool
	}{
		{"same", outer, true},
		{"inside", BBox{X: 2, Y: 2, W: 3, H: 3}, true},
		{"touching far edge", BBox{X: 5, Y: 5, W: 5, H: 5}, true},
		{"overflow right", BBox{X: 5, Y: 0, W: 6, H: 1}, false},
		{"negative origin", BBox{X: -1, Y: 0, W: 2, H: 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outer.Contains(tt.inner); got != tt.want {
				t.Errorf("Contains(%v): got %v, want %v", tt.inner, got, tt.want)
			}
		})
	}
}

func TestBBox_String(t *testing.T) {
	if got := (BBox{X: 1, Y: 2, W: 30, H: 40}).String(); got != "30x40+1+2" {
		t.Errorf("String: got %q", got)
	}
}

func TestApplyPadding(t *testing.T) {
	tests := []struct {
		name    string
		box     BBox
		pad     Padding
		w, h    int
		want    BBox
		present bool
	}{
		{
			name:    "zero padding is identity",
			box:     BBox{X: 2, Y: 3, W: 4, H: 5},
			w:       10,
			h:       10,
			want:    BBox{X: 2, Y: 3, W: 4, H: 5},
			present: true,
		},
		{
			name:    "uniform growth",
			box:     BBox{X: 2, Y: 2, W: 3, H: 3},
			pad:     Padding{Top: 1, Right: 1, Bottom: 1, Left: 1},
			w:       10,
			h:       10,
			want:    BBox{X: 1, Y: 1, W: 5, H: 5},
			present: true,
		},
		{
			name:    "per-side growth",
			box:     BBox{X: 4, Y: 4, W: 2, H: 2},
			pad:     Padding{Top: 1, Right: 2, Bottom: 3, Left: 4},
			w:       20,
			h:       20,
			want:    BBox{X: 0, Y: 3, W: 8, H: 6},
			present: true,
		},
		{
			name:    "clamped at origin",
			box:     BBox{X: 0, Y: 0, W: 4, H: 4},
			pad:     Padding{Top: 2, Right: 2, Bottom: 2, Left: 2},
			w:       10,
			h:       10,
			want:    BBox{X: 0, Y: 0, W: 6, H: 6},
			present: true,
		},
		{
			name:    "clamped at far edge",
			box:     BBox{X: 6, Y: 6, W: 4, H: 4},
			pad:     Padding{Top: 0, Right: 5, Bottom: 5, Left: 0},
			w:       10,
			h:       10,
			want:    BBox{X: 6, Y: 6, W: 4, H: 4},
			present: true,
		},
		{
			name:    "shrink",
			box:     BBox{X: 2, Y: 2, W: 6, H: 6},
			pad:     Padding{Top: -1, Right: -2, Bottom: -1, Left: -2},
			w:       10,
			h:       10,
			want:    BBox{X: 4, Y: 3, W: 2, H: 4},
			present: true,
		},
		{
			name: "shrink past nothing",
			box:  BBox{X: 0, Y: 0, W: 1, H: 1},
			pad:  Padding{Left: -5, Right: -5},
			w:    10,
			h:    10,
		},
		{
			name: "shrink to zero height",
			box:  BBox{X: 3, Y: 3, W: 4, H: 2},
			pad:  Padding{Top: -1, Bottom: -1},
			w:    10,
			h:    10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ApplyPadding(tt.box, tt.pad, tt.w, tt.h)
			if ok != tt.present {
				t.Fatalf("present: got %v, want %v (box %v)", ok, tt.present, got)
			}
			if !ok {
				return
			}
			if got != tt.want {
				t.Errorf("ApplyPadding: got %v, want %v", got, tt.want)
			}
			canvas := BBox{W: tt.w, H: tt.h}
			if !canvas.Contains(got) {
				t.Errorf("padded box %v escapes %dx%d canvas", got, tt.w, tt.h)
			}
		})
	}
}

func TestBBox_Scale(t *testing.T) {
	tests := []struct {
		name   string
		box    BBox
		factor float64
		want   BBox
	}{
		{"identity", BBox{X: 3, Y: 4, W: 5, H: 6}, 1, BBox{X: 3, Y: 4, W: 5, H: 6}},
		{"double", BBox{X: 3, Y: 4, W: 5, H: 6}, 2, BBox{X: 6, Y: 8, W: 10, H: 12}},
		{"half rounds away from zero", BBox{X: 3, Y: 5, W: 7, H: 9}, 0.5, BBox{X: 2, Y: 3, W: 4, H: 5}},
		{"fractional", BBox{X: 10, Y: 10, W: 10, H: 10}, 1.25, BBox{X: 13, Y: 13, W: 13, H: 13}},
		{"no clamping", BBox{X: 90, Y: 90, W: 20, H: 20}, 3, BBox{X: 270, Y: 270, W: 60, H: 60}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.box.Scale(tt.factor); got != tt.want {
				t.Errorf("Scale(%v): got %v, want %v", tt.factor, got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, want int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tt := range tests {
		if got := clamp(tt.val, tt.min, tt.max); got != tt.want {
			t.Errorf("clamp(%d, %d, %d): got %d, want %d", tt.val, tt.min, tt.max, got, tt.want)
		}
	}
}
