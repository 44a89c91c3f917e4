// Package report serializes calibration results to JSON.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ironsheep/printarea-mcp/internal/detection"
	"github.com/ironsheep/printarea-mcp/internal/imaging"
)

// Source describes the analyzed image.
type Source struct {
	// Location is the file path or URL the image came from.
	Location string `json:"location"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`

	// DetectScale maps detection coordinates back to source pixels. It is 1
	// unless the image was downscaled before detection.
	DetectScale float64 `json:"detect_scale"`
}

// Parameters records the settings a report was produced with.
type Parameters struct {
	Threshold float64          `json:"threshold"`
	Region    detection.Region `json:"region"`
	Padding   imaging.Padding  `json:"padding"`
	Scale     float64          `json:"scale"`
}

// Report is the complete output of one calibration run.
type Report struct {
	RunID            string                  `json:"run_id"`
	GeneratedAt      time.Time               `json:"generated_at"`
	Source           Source                  `json:"source"`
	Parameters       Parameters              `json:"parameters"`
	AverageLuminance float64                 `json:"average_luminance"`
	Fill             imaging.FillStyle       `json:"fill"`
	Detection        detection.Calibration   `json:"detection"`
	Sweep            []detection.Calibration `json:"sweep,omitempty"`
	Summary          *detection.Summary      `json:"summary,omitempty"`

	// Artifacts lists files written alongside the report, keyed by kind
	// ("overlay", "edges").
	Artifacts map[string]string `json:"artifacts,omitempty"`
}

// New returns a Report with a fresh run id and timestamp.
func New(src Source, params Parameters) *Report {
	return &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Source:      src,
		Parameters:  params,
	}
}

// AddArtifact records a written file.
func (r *Report) AddArtifact(kind, path string) {
	if r.Artifacts == nil {
		r.Artifacts = make(map[string]string)
	}
	r.Artifacts[kind] = path
}

// Marshal returns the report as indented JSON.
func (r *Report) Marshal() ([]byte, error) {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return append(b, '\n'), nil
}

// Write saves the report as JSON at path, creating parent directories. The
// file is written to a temporary name first and renamed into place.
func (r *Report) Write(path string) error {
	data, err := r.Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Read loads a report written by Write.
func Read(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	return &r, nil
}
