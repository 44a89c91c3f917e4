// Package config holds the calibration presets and runtime settings shared by
// the command-line tool and the MCP server.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/ironsheep/printarea-mcp/internal/detection"
	"github.com/ironsheep/printarea-mcp/internal/imaging"
)

// Config holds runtime configuration for detection, rendering and fetching.
// Fields may be loaded from a JSON file and overridden by command-line flags
// or tool arguments.
type Config struct {
	// Detection parameters
	Threshold       float64            `json:"threshold"`
	Region          detection.Region   `json:"region"`
	SweepThresholds []float64          `json:"sweep_thresholds"`
	SweepRegions    []detection.Region `json:"sweep_regions"`
	Workers         int                `json:"workers"`

	// MaxDetectWidth downscales wider images before detection. 0 disables.
	MaxDetectWidth int `json:"max_detect_width"`

	// Box transforms
	Padding imaging.Padding `json:"padding"`
	Scale   float64         `json:"scale"`

	// Overlay
	DarkLuminanceCutoff float64 `json:"dark_luminance_cutoff"`
	DarkFill            string  `json:"dark_fill"`
	LightFill           string  `json:"light_fill"`

	// Fetching
	UserAgent           string `json:"user_agent"`
	FetchTimeoutSeconds int    `json:"fetch_timeout_seconds"`
	MaxDownloadBytes    int64  `json:"max_download_bytes"`

	// LogFile, when set, sends logs to a rotating file instead of stderr.
	LogFile string `json:"log_file"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Threshold:           detection.DefaultThreshold,
		Region:              detection.DefaultRegion,
		SweepThresholds:     append([]float64(nil), detection.DefaultSweepThresholds...),
		SweepRegions:        append([]detection.Region(nil), detection.DefaultSweepRegions...),
		Workers:             0,
		MaxDetectWidth:      0,
		Padding:             imaging.Padding{},
		Scale:               1.0,
		DarkLuminanceCutoff: imaging.DarkLuminanceCutoff,
		DarkFill:            imaging.DarkBackgroundFill.Hex(),
		LightFill:           imaging.LightBackgroundFill.Hex(),
		UserAgent:           "printarea-mcp/0.1",
		FetchTimeoutSeconds: 30,
		MaxDownloadBytes:    32 << 20,
	}
}

// Validate normalizes soft settings to safe values and rejects settings that
// would make detection meaningless.
//
// Zero or negative numeric settings fall back to their defaults. Invalid
// regions, negative thresholds and unparseable fills are errors.
func (c *Config) Validate() error {
	def := DefaultConfig()

	if c.Threshold < 0 {
		return fmt.Errorf("threshold must be >= 0, got %g", c.Threshold)
	}
	if err := c.Region.Validate(); err != nil {
		return fmt.Errorf("region: %w", err)
	}
	if len(c.SweepThresholds) == 0 {
		c.SweepThresholds = def.SweepThresholds
	}
	for _, t := range c.SweepThresholds {
		if t < 0 {
			return fmt.Errorf("sweep threshold must be >= 0, got %g", t)
		}
	}
	if len(c.SweepRegions) == 0 {
		c.SweepRegions = def.SweepRegions
	}
	for i, r := range c.SweepRegions {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("sweep region %d: %w", i, err)
		}
	}
	if c.Workers < 0 {
		c.Workers = 0
	}
	if c.MaxDetectWidth < 0 {
		c.MaxDetectWidth = 0
	}
	if c.Scale <= 0 {
		c.Scale = def.Scale
	}
	// 0 is a valid cutoff: no image is dark, so the light fill always wins.
	if c.DarkLuminanceCutoff < 0 {
		return fmt.Errorf("dark_luminance_cutoff must be >= 0, got %g", c.DarkLuminanceCutoff)
	}
	if c.DarkFill == "" {
		c.DarkFill = def.DarkFill
	}
	if c.LightFill == "" {
		c.LightFill = def.LightFill
	}
	if _, _, err := c.Fills(); err != nil {
		return err
	}
	if c.UserAgent == "" {
		c.UserAgent = def.UserAgent
	}
	if c.FetchTimeoutSeconds <= 0 {
		c.FetchTimeoutSeconds = def.FetchTimeoutSeconds
	}
	if c.MaxDownloadBytes <= 0 {
		c.MaxDownloadBytes = def.MaxDownloadBytes
	}
	return nil
}

// Fills parses DarkFill and LightFill.
func (c *Config) Fills() (dark, light imaging.FillStyle, err error) {
	dark, err = imaging.ParseFillStyle(c.DarkFill, imaging.DarkBackgroundFill.A)
	if err != nil {
		return dark, light, fmt.Errorf("dark_fill: %w", err)
	}
	light, err = imaging.ParseFillStyle(c.LightFill, imaging.LightBackgroundFill.A)
	if err != nil {
		return dark, light, fmt.Errorf("light_fill: %w", err)
	}
	return dark, light, nil
}

// Load reads configuration from the JSON file at path and validates it.
// Fields missing from the file keep their defaults. If the file does not
// exist, Load returns DefaultConfig().
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}
