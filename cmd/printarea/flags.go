package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ironsheep/printarea-mcp/internal/detection"
	"github.com/ironsheep/printarea-mcp/internal/imaging"
)

// parseRegion parses "x0,x1,y0,y1".
func parseRegion(s string) (detection.Region, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return detection.Region{}, fmt.Errorf("want x0,x1,y0,y1, got %q", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return detection.Region{}, fmt.Errorf("bad coordinate %q: %w", p, err)
		}
		v[i] = f
	}
	r := detection.Region{X0: v[0], X1: v[1], Y0: v[2], Y1: v[3]}
	return r, r.Validate()
}

// parsePadding parses "N" (all sides) or "top,right,bottom,left".
func parsePadding(s string) (imaging.Padding, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 1 && len(parts) != 4 {
		return imaging.Padding{}, fmt.Errorf("want N or top,right,bottom,left, got %q", s)
	}
	v := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return imaging.Padding{}, fmt.Errorf("bad padding %q: %w", p, err)
		}
		v[i] = n
	}
	if len(v) == 1 {
		return imaging.Padding{Top: v[0], Right: v[0], Bottom: v[0], Left: v[0]}, nil
	}
	return imaging.Padding{Top: v[0], Right: v[1], Bottom: v[2], Left: v[3]}, nil
}
