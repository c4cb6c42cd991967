package motion

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config is the host-level configuration: logging, the settings store, and
// the defaults given to new controllers and transitions.
type Config struct {
	LogLevel  string `mapstructure:"logLevel"`
	LogFormat string `mapstructure:"logFormat"`

	Store struct {
		Driver string `mapstructure:"driver"`
		Path   string `mapstructure:"path"`
	} `mapstructure:"store"`

	Motion struct {
		Behavior     string  `mapstructure:"behavior"`
		PathType     string  `mapstructure:"pathType"`
		Duration     float64 `mapstructure:"duration"`
		Acceleration float64 `mapstructure:"acceleration"`
		Easing       string  `mapstructure:"easing"`
	} `mapstructure:"motion"`

	Transition struct {
		BezierX float64 `mapstructure:"bezierX"`
		BezierY float64 `mapstructure:"bezierY"`
	} `mapstructure:"transition"`
}

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("logFormat", "console")

	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.path", "")

	v.SetDefault("motion.behavior", "") // per-kind default
	v.SetDefault("motion.pathType", PathLinear.String())
	v.SetDefault("motion.duration", 1.0)
	v.SetDefault("motion.acceleration", 0.0)
	v.SetDefault("motion.easing", "linear")

	v.SetDefault("transition.bezierX", 0.0)
	v.SetDefault("transition.bezierY", 0.0)
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	cfg, _ := LoadConfig("")
	return cfg
}

// LoadConfig reads the configuration file at path (JSON, YAML or TOML,
// chosen by extension) over the built-in defaults. Environment variables
// prefixed with MOTION_ override both, e.g. MOTION_LOGLEVEL. An empty path
// loads the defaults and environment only.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	setConfigDefaults(v)
	v.SetEnvPrefix("motion")
	v.AutomaticEnv()

	var cfg Config
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config: decode: %w", err)
	}
	return cfg, nil
}

// NewLogger builds the logger described by the configuration.
func (c Config) NewLogger(w io.Writer) zerolog.Logger {
	return NewLogger(w, c.LogLevel, c.LogFormat)
}

// ApplyMotionDefaults registers the configured motion defaults on s,
// replacing the per-kind defaults, so call it after Defaults. An empty
// behavior keeps the kind's own.
func (c Config) ApplyMotionDefaults(s *Settings) {
	if b, ok := ParseBehavior(c.Motion.Behavior); ok {
		s.SetDefault(KeyBehavior, int64(b))
	}
	if p, ok := ParsePathType(c.Motion.PathType); ok {
		s.SetDefault(KeyPathType, int64(p))
	}
	s.SetDefault(KeyDuration, max(c.Motion.Duration, 0))
	s.SetDefault(KeyAcceleration, clamp(c.Motion.Acceleration, -1, 1))
	s.SetDefault(KeyEasing, c.Motion.Easing)
}

// ApplyTransitionDefaults registers the configured transition bias on s.
func (c Config) ApplyTransitionDefaults(s *Settings) {
	s.SetDefault(KeyBezierX, clamp(c.Transition.BezierX, -0.5, 0.5))
	s.SetDefault(KeyBezierY, clamp(c.Transition.BezierY, -0.5, 0.5))
}
