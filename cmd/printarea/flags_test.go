package main

import (
	"errors"
	"testing"

	"github.com/ironsheep/printarea-mcp/internal/detection"
	"github.com/ironsheep/printarea-mcp/internal/imaging"
)

func TestParseRegion(t *testing.T) {
	tests := []struct {
		input   string
		want    detection.Region
		wantErr bool
	}{
		{"0.28,0.72,0.22,0.78", detection.DefaultRegion, false},
		{" 0, 1 ,0,1", detection.FullRegion, false},
		{"0,1,0", detection.Region{}, true},
		{"0,1,0,x", detection.Region{}, true},
		{"0.8,0.2,0,1", detection.Region{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseRegion(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseRegion(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseRegion(%q): got %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseRegion_InvalidWrapsSentinel(t *testing.T) {
	_, err := parseRegion("0.5,0.5,0,1")
	if !errors.Is(err, detection.ErrInvalidRegion) {
		t.Errorf("expected ErrInvalidRegion, got %v", err)
	}
}

func TestParsePadding(t *testing.T) {
	tests := []struct {
		input   string
		want    imaging.Padding
		wantErr bool
	}{
		{"4", imaging.Padding{Top: 4, Right: 4, Bottom: 4, Left: 4}, false},
		{"-2", imaging.Padding{Top: -2, Right: -2, Bottom: -2, Left: -2}, false},
		{"1,2,3,4", imaging.Padding{Top: 1, Right: 2, Bottom: 3, Left: 4}, false},
		{"1, -2, 3, 0", imaging.Padding{Top: 1, Right: -2, Bottom: 3}, false},
		{"1,2", imaging.Padding{}, true},
		{"a", imaging.Padding{}, true},
		{"", imaging.Padding{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parsePadding(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePadding(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parsePadding(%q): got %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
