package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/printarea-mcp/internal/detection"
	"github.com/ironsheep/printarea-mcp/internal/imaging"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "printarea.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, detection.DefaultThreshold, cfg.Threshold)
	assert.Equal(t, detection.DefaultRegion, cfg.Region)
	assert.Equal(t, detection.DefaultSweepThresholds, cfg.SweepThresholds)
	assert.Equal(t, detection.DefaultSweepRegions, cfg.SweepRegions)
	assert.Equal(t, 1.0, cfg.Scale)
	assert.NoError(t, cfg.Validate())

	dark, light, err := cfg.Fills()
	require.NoError(t, err)
	assert.Equal(t, imaging.DarkBackgroundFill, dark)
	assert.Equal(t, imaging.LightBackgroundFill, light)
}

func TestDefaultConfig_PresetsNotShared(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SweepThresholds[0] = -1
	cfg.SweepRegions[0] = detection.FullRegion

	assert.Equal(t, 80.0, detection.DefaultSweepThresholds[0])
	assert.Equal(t, detection.DefaultRegion, detection.DefaultSweepRegions[0])
}

func TestValidate(t *testing.T) {
	t.Run("Soft Settings Fall Back", func(t *testing.T) {
		cfg := &Config{
			Threshold: 90,
			Region:    detection.FullRegion,
			Workers:   -3,
			Scale:     -2,
		}
		require.NoError(t, cfg.Validate())

		def := DefaultConfig()
		assert.Equal(t, 90.0, cfg.Threshold)
		assert.Equal(t, 0, cfg.Workers)
		assert.Equal(t, def.Scale, cfg.Scale)
		assert.Equal(t, def.SweepThresholds, cfg.SweepThresholds)
		assert.Equal(t, def.SweepRegions, cfg.SweepRegions)
		assert.Equal(t, def.DarkFill, cfg.DarkFill)
		assert.Equal(t, def.UserAgent, cfg.UserAgent)
		assert.Equal(t, def.FetchTimeoutSeconds, cfg.FetchTimeoutSeconds)
		assert.Equal(t, def.MaxDownloadBytes, cfg.MaxDownloadBytes)
	})

	t.Run("Negative Threshold", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Threshold = -1
		assert.Error(t, cfg.Validate())
	})

	t.Run("Zero Dark Cutoff Is Kept", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.DarkLuminanceCutoff = 0
		require.NoError(t, cfg.Validate())
		assert.Equal(t, 0.0, cfg.DarkLuminanceCutoff)
	})

	t.Run("Negative Dark Cutoff", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.DarkLuminanceCutoff = -5
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dark_luminance_cutoff")
	})

	t.Run("Invalid Region", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Region = detection.Region{X0: 0.9, X1: 0.1, Y0: 0, Y1: 1}
		err := cfg.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, detection.ErrInvalidRegion))
	})

	t.Run("Invalid Sweep Region", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.SweepRegions = []detection.Region{detection.FullRegion, {X0: 0, X1: 2, Y0: 0, Y1: 1}}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sweep region 1")
	})

	t.Run("Invalid Fill", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.LightFill = "#nothex"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "light_fill")
	})
}

func TestLoad(t *testing.T) {
	t.Run("Missing File Uses Defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("Partial Override", func(t *testing.T) {
		path := writeConfig(t, `{
			"threshold": 95,
			"region": {"x0": 0.1, "x1": 0.9, "y0": 0.2, "y1": 0.8},
			"padding": {"top": 3, "left": -1},
			"dark_fill": "#FFFFFF"
		}`)

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 95.0, cfg.Threshold)
		assert.Equal(t, detection.Region{X0: 0.1, X1: 0.9, Y0: 0.2, Y1: 0.8}, cfg.Region)
		assert.Equal(t, imaging.Padding{Top: 3, Left: -1}, cfg.Padding)
		assert.Equal(t, detection.DefaultSweepThresholds, cfg.SweepThresholds)

		dark, _, err := cfg.Fills()
		require.NoError(t, err)
		assert.Equal(t, imaging.FillStyle{R: 255, G: 255, B: 255, A: imaging.DarkBackgroundFill.A}, dark)
	})

	t.Run("Unknown Field", func(t *testing.T) {
		path := writeConfig(t, `{"treshold": 95}`)
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		path := writeConfig(t, `{"threshold": `)
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("Invalid Values", func(t *testing.T) {
		path := writeConfig(t, `{"region": {"x0": 0.5, "x1": 0.5, "y0": 0, "y1": 1}}`)
		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, detection.ErrInvalidRegion))
	})
}
