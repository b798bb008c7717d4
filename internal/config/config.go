package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml"
)

// ErrInvalidConfig is returned by Validate for any out-of-range setting.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Terrain TerrainConfig `toml:"terrain"`
	Assets  AssetsConfig  `toml:"assets"`
	Output  OutputConfig  `toml:"output"`
	Logging LoggingConfig `toml:"logging"`
}

type TerrainConfig struct {
	MinCol    int     `toml:"min_col"`
	MaxCol    int     `toml:"max_col"`
	MinRow    int     `toml:"min_row"`
	MaxRow    int     `toml:"max_row"`
	Radius    float64 `toml:"radius"`
	Scale     float64 `toml:"scale"`
	Exponent  float64 `toml:"exponent"`
	MaxHeight float64 `toml:"max_height"`
	// Band fractions of MaxHeight, lowest first: stone, sand, grass, dirt, dirt2.
	BandFractions []float64 `toml:"band_fractions"`
	Seed          int64     `toml:"seed"`
	Noise         string    `toml:"noise"`
}

type AssetsConfig struct {
	Dir         string        `toml:"dir"`
	Environment string        `toml:"environment"`
	LoadTimeout time.Duration `toml:"-"`
}

type OutputConfig struct {
	Dir string `toml:"dir"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Defaults returns the built-in configuration before any file or env overlay.
func Defaults() *Config {
	return &Config{
		Terrain: TerrainConfig{
			MinCol:        -15,
			MaxCol:        14,
			MinRow:        -15,
			MaxRow:        14,
			Radius:        16,
			Scale:         0.1,
			Exponent:      1.5,
			MaxHeight:     10,
			BandFractions: []float64{0, 0.3, 0.5, 0.7, 0.8},
			Seed:          0,
			Noise:         "simplex",
		},
		Assets: AssetsConfig{
			Dir:         "./public",
			Environment: "clarens-night.hdr",
			LoadTimeout: 30 * time.Second,
		},
		Output: OutputConfig{
			Dir: "./out",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration from defaults and environment variables.
func Load() *Config {
	cfg := Defaults()
	applyEnv(cfg)
	return cfg
}

// LoadFile overlays a TOML file on the defaults, then applies environment variables.
func LoadFile(path string) (*Config, error) {
	cfg := Defaults()

	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := toml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	t := &cfg.Terrain
	t.MinCol = getEnvInt("TERRAIN_MIN_COL", t.MinCol)
	t.MaxCol = getEnvInt("TERRAIN_MAX_COL", t.MaxCol)
	t.MinRow = getEnvInt("TERRAIN_MIN_ROW", t.MinRow)
	t.MaxRow = getEnvInt("TERRAIN_MAX_ROW", t.MaxRow)
	t.Radius = getEnvFloat("TERRAIN_RADIUS", t.Radius)
	t.Scale = getEnvFloat("TERRAIN_SCALE", t.Scale)
	t.Exponent = getEnvFloat("TERRAIN_EXPONENT", t.Exponent)
	t.MaxHeight = getEnvFloat("TERRAIN_MAX_HEIGHT", t.MaxHeight)
	t.BandFractions = getEnvFloats("TERRAIN_BAND_FRACTIONS", t.BandFractions)
	t.Seed = getEnvInt64("TERRAIN_SEED", t.Seed)
	t.Noise = getEnvStr("TERRAIN_NOISE", t.Noise)

	cfg.Assets.Dir = getEnvStr("ASSETS_DIR", cfg.Assets.Dir)
	cfg.Assets.Environment = getEnvStr("ASSETS_ENVIRONMENT", cfg.Assets.Environment)
	cfg.Assets.LoadTimeout = getEnvDuration("ASSETS_LOAD_TIMEOUT", cfg.Assets.LoadTimeout)

	cfg.Output.Dir = getEnvStr("OUTPUT_DIR", cfg.Output.Dir)

	cfg.Logging.Level = getEnvStr("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = getEnvStr("LOG_FORMAT", cfg.Logging.Format)
}

// Validate checks the terrain settings for values generation cannot work with.
func (c *Config) Validate() error {
	t := c.Terrain
	switch {
	case t.MinCol > t.MaxCol || t.MinRow > t.MaxRow:
		return fmt.Errorf("%w: empty grid [%d..%d]x[%d..%d]", ErrInvalidConfig, t.MinCol, t.MaxCol, t.MinRow, t.MaxRow)
	case t.Radius <= 0:
		return fmt.Errorf("%w: radius must be positive, got %v", ErrInvalidConfig, t.Radius)
	case t.MaxHeight <= 0:
		return fmt.Errorf("%w: max height must be positive, got %v", ErrInvalidConfig, t.MaxHeight)
	case t.Exponent <= 0:
		return fmt.Errorf("%w: exponent must be positive, got %v", ErrInvalidConfig, t.Exponent)
	case len(t.BandFractions) != 5:
		return fmt.Errorf("%w: expected 5 band fractions, got %d", ErrInvalidConfig, len(t.BandFractions))
	}
	for i := 1; i < len(t.BandFractions); i++ {
		if t.BandFractions[i] <= t.BandFractions[i-1] {
			return fmt.Errorf("%w: band fractions must be strictly ascending", ErrInvalidConfig)
		}
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("%w: output dir is empty", ErrInvalidConfig)
	}
	return nil
}

func getEnvStr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvFloats(key string, defaultValue []float64) []float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return defaultValue
		}
		out = append(out, f)
	}
	return out
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
