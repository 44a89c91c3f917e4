// Package calibrate runs the full print-area calibration pipeline: load an
// image, detect and transform the print box, optionally sweep parameters,
// render a verification overlay, and assemble a report.
package calibrate

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ironsheep/printarea-mcp/internal/config"
	"github.com/ironsheep/printarea-mcp/internal/detection"
	"github.com/ironsheep/printarea-mcp/internal/fetch"
	"github.com/ironsheep/printarea-mcp/internal/imaging"
	"github.com/ironsheep/printarea-mcp/internal/logging"
	"github.com/ironsheep/printarea-mcp/internal/report"
)

// Artifact file names written by WriteArtifacts.
const (
	ReportFile  = "report.json"
	OverlayFile = "overlay.png"
	EdgesFile   = "edges.png"
)

// Options controls a calibration run.
type Options struct {
	Threshold      float64
	Region         detection.Region
	Padding        imaging.Padding
	Scale          float64
	MaxDetectWidth int

	// Sweep enables the threshold/region sweep.
	Sweep           bool
	SweepThresholds []float64
	SweepRegions    []detection.Region
	Workers         int

	DarkCutoff float64
	DarkFill   imaging.FillStyle
	LightFill  imaging.FillStyle
}

// OptionsFromConfig builds Options from a validated Config.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	dark, light, err := cfg.Fills()
	if err != nil {
		return Options{}, err
	}
	return Options{
		Threshold:       cfg.Threshold,
		Region:          cfg.Region,
		Padding:         cfg.Padding,
		Scale:           cfg.Scale,
		MaxDetectWidth:  cfg.MaxDetectWidth,
		SweepThresholds: cfg.SweepThresholds,
		SweepRegions:    cfg.SweepRegions,
		Workers:         cfg.Workers,
		DarkCutoff:      cfg.DarkLuminanceCutoff,
		DarkFill:        dark,
		LightFill:       light,
	}, nil
}

// Outcome is the result of Run.
type Outcome struct {
	Report *report.Report

	// Image is the analyzed source image.
	Image *imaging.Image

	// Overlay is Image with the padded box highlighted, or nil when no
	// padded box exists.
	Overlay *imaging.Image
}

// Load reads location as a local file, or downloads it with fetcher when it
// is an http(s) URL.
func Load(ctx context.Context, location string, fetcher *fetch.Client) (*imaging.Image, error) {
	if !fetch.IsURL(location) {
		return imaging.Open(location)
	}
	if fetcher == nil {
		return nil, fmt.Errorf("cannot load %s: no fetcher configured", location)
	}
	resp, err := fetcher.Fetch(ctx, location)
	if err != nil {
		return nil, err
	}
	logging.Debugf("fetched %s (%d bytes, %s)", location, len(resp.Body), resp.ContentType)
	return imaging.DecodeBytes(resp.Body)
}

// Run calibrates img. location is recorded in the report only.
//
// All boxes in the outcome are in source-image pixels, even when detection
// ran on a downscaled copy.
func Run(ctx context.Context, img *imaging.Image, location string, opts Options) (*Outcome, error) {
	w, h := img.Width(), img.Height()
	detectImg, factor := imaging.FitWidth(img, opts.MaxDetectWidth)
	if factor != 1 {
		logging.Debugf("detecting on %dx%d copy (factor %.3f)", detectImg.Width(), detectImg.Height(), factor)
	}

	res := toSource(detection.Detect(detectImg, opts.Threshold, opts.Region), factor)
	cal := detection.Calibrate(res, opts.Padding, opts.Scale, w, h)

	rep := report.New(
		report.Source{Location: location, Width: w, Height: h, DetectScale: factor},
		report.Parameters{Threshold: opts.Threshold, Region: opts.Region, Padding: opts.Padding, Scale: opts.Scale},
	)
	rep.Detection = cal

	if opts.Sweep {
		results, err := detection.SweepParallel(ctx, detectImg, opts.SweepThresholds, opts.SweepRegions, opts.Workers)
		if err != nil {
			return nil, fmt.Errorf("sweep failed: %w", err)
		}
		for i := range results {
			results[i] = toSource(results[i], factor)
		}
		rep.Sweep = detection.CalibrateAll(results, opts.Padding, opts.Scale, w, h)
		summary := detection.Summarize(results)
		rep.Summary = &summary
	}

	rep.AverageLuminance = imaging.AverageLuminance(img)
	rep.Fill = imaging.SelectFillWith(img, opts.DarkCutoff, opts.DarkFill, opts.LightFill)

	out := &Outcome{Report: rep, Image: img}
	if cal.Padded != nil {
		out.Overlay = imaging.RenderOverlay(img, *cal.Padded, rep.Fill)
	} else {
		log.Printf("No print area at threshold %g in %s (max gradient %.1f)", opts.Threshold, opts.Region, res.MaxGradient)
	}
	return out, nil
}

// toSource maps a result's box from detection pixels to source pixels.
func toSource(res detection.Result, factor float64) detection.Result {
	if factor == 1 || res.BBox == nil {
		return res
	}
	scaled := res.BBox.Scale(factor)
	res.BBox = &scaled
	return res
}

// WriteArtifacts writes the report, the overlay (when present) and, if
// edgeMap is set, a Sobel edge map into dir. Artifact paths are recorded in
// the report before it is written.
func WriteArtifacts(out *Outcome, dir string, edgeMap bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if out.Overlay != nil {
		p := filepath.Join(dir, OverlayFile)
		if err := imaging.Save(out.Overlay, p); err != nil {
			return err
		}
		out.Report.AddArtifact("overlay", p)
	}
	if edgeMap {
		p := filepath.Join(dir, EdgesFile)
		if err := imaging.Save(imaging.EdgeMap(out.Image), p); err != nil {
			return err
		}
		out.Report.AddArtifact("edges", p)
	}
	return out.Report.Write(filepath.Join(dir, ReportFile))
}
