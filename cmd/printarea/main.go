// printarea detects the print area of a product mockup and writes a
// calibration report and verification overlay.
//
// Usage:
//
//	printarea -input mockup.png -out ./calib
//	printarea -input https://example.com/preview.png -sweep -padding 4
//	printarea -config printarea.json -input mockup.png -region 0.2,0.8,0.2,0.8
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ironsheep/printarea-mcp/internal/calibrate"
	"github.com/ironsheep/printarea-mcp/internal/config"
	"github.com/ironsheep/printarea-mcp/internal/fetch"
	"github.com/ironsheep/printarea-mcp/internal/logging"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "", "JSON config file with detection defaults")
	input := flag.String("input", "", "Image path or http(s) URL (required)")
	outDir := flag.String("out", ".", "Directory for report.json and overlay.png")
	threshold := flag.Float64("threshold", 0, "Gradient threshold (default from config, 120)")
	region := flag.String("region", "", "Search region as x0,x1,y0,y1 fractions")
	padding := flag.String("padding", "", "Padding as N, or top,right,bottom,left")
	scale := flag.Float64("scale", 0, "Factor applied to the padded box (default 1)")
	sweep := flag.Bool("sweep", false, "Also sweep the configured thresholds and regions")
	workers := flag.Int("workers", 0, "Parallel sweep workers (0 uses all CPUs)")
	edgeMap := flag.Bool("edge-map", false, "Also write edges.png")
	debug := flag.Bool("debug", false, "Enable debug logging")
	version := flag.Bool("version", false, "Print version information")
	flag.Parse()

	if *version {
		fmt.Printf("printarea %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	}
	if *input == "" {
		fmt.Fprintln(os.Stderr, "printarea: -input is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "printarea: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	logOpts := logging.FromEnv()
	logOpts.Debug = logOpts.Debug || *debug
	if logOpts.File == "" {
		logOpts.File = cfg.LogFile
	}
	closer := logging.Setup(logOpts)
	defer closer.Close()

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["threshold"] {
		cfg.Threshold = *threshold
	}
	if set["region"] {
		r, err := parseRegion(*region)
		if err != nil {
			log.Fatalf("Invalid -region: %v", err)
		}
		cfg.Region = r
	}
	if set["padding"] {
		p, err := parsePadding(*padding)
		if err != nil {
			log.Fatalf("Invalid -padding: %v", err)
		}
		cfg.Padding = p
	}
	if set["scale"] {
		cfg.Scale = *scale
	}
	if set["workers"] {
		cfg.Workers = *workers
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}

	opts, err := calibrate.OptionsFromConfig(cfg)
	if err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}
	opts.Sweep = *sweep

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, opts, *input, *outDir, *edgeMap); err != nil {
		log.Printf("Calibration failed: %v", err)
		closer.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, opts calibrate.Options, input, outDir string, edgeMap bool) error {
	fetcher := fetch.NewClient(fetch.Options{
		UserAgent: cfg.UserAgent,
		Timeout:   time.Duration(cfg.FetchTimeoutSeconds) * time.Second,
		MaxBytes:  cfg.MaxDownloadBytes,
	})

	img, err := calibrate.Load(ctx, input, fetcher)
	if err != nil {
		return err
	}
	out, err := calibrate.Run(ctx, img, input, opts)
	if err != nil {
		return err
	}
	if err := calibrate.WriteArtifacts(out, outDir, edgeMap); err != nil {
		return err
	}

	det := out.Report.Detection
	if det.Padded == nil {
		fmt.Printf("no print area found (hits=%d, max gradient %.1f)\n", det.Hits, det.MaxGradient)
	} else {
		fmt.Printf("print area %s (scaled %s, hits=%d)\n", det.Padded, det.Scaled, det.Hits)
	}
	if s := out.Report.Summary; s != nil && s.Median != nil {
		fmt.Printf("sweep median %s (%d/%d combinations found a box)\n", s.Median, s.WithBox, s.Combinations)
	}
	fmt.Printf("report written to %s\n", filepath.Join(outDir, calibrate.ReportFile))
	return nil
}
