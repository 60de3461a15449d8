package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	qrcode "github.com/RashadAnsari/go-qrstudio"
)

const (
	EnvPrefix = "QRSTUDIO"

	defaultEnv       = "local"
	defaultSize      = 256
	defaultLevel     = "M"
	defaultFG        = "#000000"
	defaultBG        = "#ffffff"
	defaultStyle     = "rounded"
	defaultFrame     = "none"
	defaultPitch     = "aligned"
	defaultFormat    = "png"
	defaultOutputDir = "."
	defaultCooldown  = 2 * time.Second
	defaultNotify    = 5 * time.Second
	maxSize          = 4096
)

type Config struct {
	Env       string        `mapstructure:"env"`
	Size      int           `mapstructure:"size"`
	Level     string        `mapstructure:"level"`
	FG        string        `mapstructure:"fg"`
	BG        string        `mapstructure:"bg"`
	Style     string        `mapstructure:"style"`
	Frame     string        `mapstructure:"frame"`
	Pitch     string        `mapstructure:"pitch"`
	Encoder   string        `mapstructure:"encoder"`
	Format    string        `mapstructure:"format"`
	OutputDir string        `mapstructure:"out"`
	Base64    bool          `mapstructure:"base64"`
	Cooldown  time.Duration `mapstructure:"cooldown"`
	Notify    time.Duration `mapstructure:"notify"`
	GeoLat    string        `mapstructure:"geo_lat"`
	GeoLng    string        `mapstructure:"geo_lng"`
}

// SetDefaults registers every key so env variables are picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("env", defaultEnv)
	v.SetDefault("size", defaultSize)
	v.SetDefault("level", defaultLevel)
	v.SetDefault("fg", defaultFG)
	v.SetDefault("bg", defaultBG)
	v.SetDefault("style", defaultStyle)
	v.SetDefault("frame", defaultFrame)
	v.SetDefault("pitch", defaultPitch)
	v.SetDefault("encoder", qrcode.DefaultEncoder)
	v.SetDefault("format", defaultFormat)
	v.SetDefault("out", defaultOutputDir)
	v.SetDefault("base64", false)
	v.SetDefault("cooldown", defaultCooldown)
	v.SetDefault("notify", defaultNotify)
	v.SetDefault("geo_lat", "")
	v.SetDefault("geo_lng", "")
}

// Load reads .env (when present), the optional config file and QRSTUDIO_* env vars.
func Load(v *viper.Viper, file string) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Size <= 0 || c.Size > maxSize {
		return fmt.Errorf("size must be in 1..%d, got %d", maxSize, c.Size)
	}

	if _, err := c.Options(); err != nil {
		return err
	}

	if _, err := qrcode.ParseFormat(c.Format); err != nil {
		return err
	}

	if _, err := qrcode.NewEncoder(c.Encoder); err != nil {
		return err
	}

	if (c.GeoLat == "") != (c.GeoLng == "") {
		return errors.New("geo_lat and geo_lng must be set together")
	}

	return nil
}

// Options converts the config into generator options.
func (c *Config) Options() (qrcode.Options, error) {
	var (
		opts qrcode.Options
		err  error
	)

	opts.Size = c.Size
	opts.Base64 = c.Base64

	if opts.Level, err = qrcode.ParseLevel(c.Level); err != nil {
		return opts, err
	}

	if opts.Foreground, err = qrcode.ParseHexColor(c.FG); err != nil {
		return opts, err
	}

	if opts.Background, err = qrcode.ParseHexColor(c.BG); err != nil {
		return opts, err
	}

	if opts.Style, err = qrcode.ParseStyle(c.Style); err != nil {
		return opts, err
	}

	if opts.Frame, err = qrcode.ParseFrame(c.Frame); err != nil {
		return opts, err
	}

	if opts.Pitch, err = qrcode.ParsePitchMode(c.Pitch); err != nil {
		return opts, err
	}

	return opts, nil
}

// Locator returns a fixed-position locator when coordinates are configured.
func (c *Config) Locator() (qrcode.Locator, error) {
	if c.GeoLat == "" {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(c.GeoLat, 64)
	if err != nil {
		return nil, fmt.Errorf("geo_lat: %w", err)
	}

	lng, err := strconv.ParseFloat(c.GeoLng, 64)
	if err != nil {
		return nil, fmt.Errorf("geo_lng: %w", err)
	}

	return qrcode.StaticLocator{Latitude: lat, Longitude: lng}, nil
}

func (c *Config) IsLocal() bool {
	return c.Env == defaultEnv || c.Env == ""
}
