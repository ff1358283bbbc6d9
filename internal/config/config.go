// Package config loads the mdpull configuration file.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// RelPath is the config file location below the XDG config directories.
const RelPath = "mdpull/config.toml"

const (
	IndicatorText  = "text"
	IndicatorPlain = "plain"
)

const (
	GravityStart  = "start"
	GravityCenter = "center"
	GravityEnd    = "end"
)

// Config is the whole configuration file.
type Config struct {
	Refresh RefreshConfig `toml:"refresh"`
	Viewer  ViewerConfig  `toml:"viewer"`
	Log     LogConfig     `toml:"log"`
}

// RefreshConfig tunes the pull gesture.
type RefreshConfig struct {
	// WheelStep is the number of rows one wheel notch scrolls.
	WheelStep int `toml:"wheel_step"`
	// ReleaseDelay is how long the wheel must stay still before the pull
	// counts as released.
	ReleaseDelay Duration `toml:"release_delay"`
	TouchSlop    float64  `toml:"touch_slop"`
	FrameRate    int      `toml:"frame_rate"`
	Indicator    string   `toml:"indicator"`
	// ResultLinger keeps the refresh result on screen before the header
	// closes. Zero closes it right away.
	ResultLinger  Duration `toml:"result_linger"`
	HeaderGravity string   `toml:"header_gravity"`
}

type ViewerConfig struct {
	Style   string `toml:"style"`
	Mouse   bool   `toml:"mouse"`
	Watch   bool   `toml:"watch"`
	Session bool   `toml:"session"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Refresh: RefreshConfig{
			WheelStep:     3,
			ReleaseDelay:  Duration{150 * time.Millisecond},
			TouchSlop:     1,
			FrameRate:     60,
			Indicator:     IndicatorText,
			ResultLinger:  Duration{600 * time.Millisecond},
			HeaderGravity: GravityCenter,
		},
		Viewer: ViewerConfig{
			Style:   "tokyo-night",
			Mouse:   true,
			Watch:   true,
			Session: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the file at path. An empty path searches the XDG config
// directories; when nothing is found the defaults are returned.
func Load(path string) (Config, error) {
	if path == "" {
		found, err := xdg.SearchConfigFile(RelPath)
		if err != nil {
			return withEnv(Default())
		}
		path = found
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return withEnv(cfg)
}

// Decode parses TOML from r on top of the defaults. Unknown keys are
// rejected.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, strict.String())
		}
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func withEnv(cfg Config) (Config, error) {
	if v := os.Getenv("MDPULL_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("MDPULL_STYLE"); v != "" {
		cfg.Viewer.Style = v
	}
	return cfg, cfg.Validate()
}

// Validate reports the first field outside its allowed range.
func (c Config) Validate() error {
	r := c.Refresh
	switch {
	case r.WheelStep < 1:
		return fmt.Errorf("%w: refresh.wheel_step must be at least 1, got %d", ErrInvalidConfig, r.WheelStep)
	case r.ReleaseDelay.Duration <= 0:
		return fmt.Errorf("%w: refresh.release_delay must be positive", ErrInvalidConfig)
	case r.TouchSlop < 0:
		return fmt.Errorf("%w: refresh.touch_slop must not be negative", ErrInvalidConfig)
	case r.FrameRate < 1 || r.FrameRate > 240:
		return fmt.Errorf("%w: refresh.frame_rate must be within 1..240, got %d", ErrInvalidConfig, r.FrameRate)
	}
	switch r.Indicator {
	case IndicatorText, IndicatorPlain:
	default:
		return fmt.Errorf("%w: unknown refresh.indicator %q", ErrInvalidConfig, r.Indicator)
	}
	switch r.HeaderGravity {
	case GravityStart, GravityCenter, GravityEnd:
	default:
		return fmt.Errorf("%w: unknown refresh.header_gravity %q", ErrInvalidConfig, r.HeaderGravity)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// FrameInterval is the time between two animation frames.
func (r RefreshConfig) FrameInterval() time.Duration {
	return time.Second / time.Duration(r.FrameRate)
}

// ParseLevel maps a log level name to its slog level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("%w: log.level: %w", ErrInvalidConfig, err)
	}
	return level, nil
}

// LogFile returns the configured log file, defaulting to the XDG state
// directory.
func (c Config) LogFile() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	path, err := xdg.StateFile("mdpull/mdpull.log")
	if err != nil {
		return "", fmt.Errorf("failed to resolve log file: %w", err)
	}
	return path, nil
}
