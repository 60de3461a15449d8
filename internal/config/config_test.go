package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qrcode "github.com/RashadAnsari/go-qrstudio"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, 256, cfg.Size)
	assert.Equal(t, "rounded", cfg.Style)
	assert.Equal(t, qrcode.DefaultEncoder, cfg.Encoder)
	assert.Equal(t, 2*time.Second, cfg.Cooldown)
	assert.Equal(t, 5*time.Second, cfg.Notify)
	assert.True(t, cfg.IsLocal())

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, qrcode.Medium, opts.Level)
	assert.Equal(t, qrcode.StyleRounded, opts.Style)
	assert.Equal(t, qrcode.PitchAligned, opts.Pitch)

	loc, err := cfg.Locator()
	require.NoError(t, err)
	assert.Nil(t, loc)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("QRSTUDIO_SIZE", "512")
	t.Setenv("QRSTUDIO_STYLE", "dotted")
	t.Setenv("QRSTUDIO_GEO_LAT", "35.689")
	t.Setenv("QRSTUDIO_GEO_LNG", "51.389")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, 512, cfg.Size)
	assert.Equal(t, "dotted", cfg.Style)

	loc, err := cfg.Locator()
	require.NoError(t, err)
	assert.Equal(t, qrcode.StaticLocator{Latitude: 35.689, Longitude: 51.389}, loc)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qrstudio.yaml")
	require.NoError(t, os.WriteFile(path, []byte("level: H\nframe: double\nfg: '#112233'\n"), 0o600))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, qrcode.Highest, opts.Level)
	assert.Equal(t, qrcode.FrameDouble, opts.Frame)
	assert.Equal(t, "#112233", qrcode.HexColor(opts.Foreground))
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"size", "QRSTUDIO_SIZE", "0"},
		{"style", "QRSTUDIO_STYLE", "wavy"},
		{"level", "QRSTUDIO_LEVEL", "X"},
		{"color", "QRSTUDIO_FG", "#12"},
		{"encoder", "QRSTUDIO_ENCODER", "none"},
		{"half location", "QRSTUDIO_GEO_LAT", "1.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			_, err := Load(viper.New(), "")
			assert.Error(t, err)
		})
	}
}
