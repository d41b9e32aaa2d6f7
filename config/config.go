package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/lixenwraith/orrery/body"
)

// EnvPrefix namespaces environment overrides, e.g. ORRERY_TIME_SCALE
const EnvPrefix = "ORRERY"

// Keys shared by defaults, flags and files
const (
	KeyTimeScale  = "time_scale"
	KeyFPS        = "fps"
	KeyAssets     = "assets"
	KeyAudio      = "audio"
	KeyOrbits     = "orbits"
	KeyDebug      = "debug"
	KeyHoldWindow = "hold_window"
	KeyEpoch      = "epoch"

	// Negated aliases, matching --no-audio/--no-orbits and ORRERY_NO_AUDIO/ORRERY_NO_ORBITS
	KeyNoAudio  = "no_audio"
	KeyNoOrbits = "no_orbits"
)

// Defaults
const (
	DefaultTimeScale  = 3600.0
	DefaultFPS        = 60
	DefaultHoldWindow = 150 * time.Millisecond
	MaxFPS            = 240
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Ring mirrors body.Ring in file form
type Ring struct {
	Texture string  `mapstructure:"texture"`
	Inner   float64 `mapstructure:"inner"`
	Outer   float64 `mapstructure:"outer"`
	Tilt    float64 `mapstructure:"tilt"`
}

// Body mirrors body.Body in file form
type Body struct {
	Name          string  `mapstructure:"name"`
	Texture       string  `mapstructure:"texture"`
	Radius        float64 `mapstructure:"radius"`
	Distance      float64 `mapstructure:"distance"`
	RotationHours float64 `mapstructure:"rotation_hours"`
	OrbitDays     float64 `mapstructure:"orbit_days"`
	Tilt          float64 `mapstructure:"tilt"`
	Emissive      bool    `mapstructure:"emissive"`
	Ring          *Ring   `mapstructure:"ring"`
}

// Config is the resolved runtime configuration
type Config struct {
	TimeScale  float64       `mapstructure:"time_scale"`
	FPS        int           `mapstructure:"fps"`
	Assets     string        `mapstructure:"assets"`
	Audio      bool          `mapstructure:"audio"`
	Orbits     bool          `mapstructure:"orbits"`
	Debug      bool          `mapstructure:"debug"`
	HoldWindow time.Duration `mapstructure:"hold_window"`
	Epoch      string        `mapstructure:"epoch"`
	Bodies     []Body        `mapstructure:"bodies"`
}

// New returns a viper instance carrying defaults and environment binding
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyTimeScale, DefaultTimeScale)
	v.SetDefault(KeyFPS, DefaultFPS)
	v.SetDefault(KeyAssets, "")
	v.SetDefault(KeyAudio, true)
	v.SetDefault(KeyOrbits, true)
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyHoldWindow, DefaultHoldWindow)
	v.SetDefault(KeyEpoch, "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// applyNegations folds explicitly set no_* keys into their positive keys
func applyNegations(v *viper.Viper) {
	for neg, key := range map[string]string{
		KeyNoAudio:  KeyAudio,
		KeyNoOrbits: KeyOrbits,
	} {
		if v.IsSet(neg) {
			v.Set(key, !v.GetBool(neg))
		}
	}
}

// Load reads file when non-empty, then decodes and validates v
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrInvalidConfig, file, err)
		}
	}

	applyNegations(v)

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidConfig, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks ranges; body tables are checked by Registry
func (c *Config) Validate() error {
	if c.TimeScale < 0 {
		return fmt.Errorf("%w: time_scale %g is negative", ErrInvalidConfig, c.TimeScale)
	}
	if c.FPS <= 0 || c.FPS > MaxFPS {
		return fmt.Errorf("%w: fps %d outside 1..%d", ErrInvalidConfig, c.FPS, MaxFPS)
	}
	if c.HoldWindow <= 0 {
		return fmt.Errorf("%w: hold_window must be positive", ErrInvalidConfig)
	}
	if _, err := c.EpochTime(time.Time{}); err != nil {
		return err
	}
	return nil
}

// FrameInterval converts FPS to a ticker period
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

// EpochTime parses Epoch as RFC 3339, falling back to now when unset
func (c *Config) EpochTime(now time.Time) (time.Time, error) {
	if c.Epoch == "" {
		return now, nil
	}
	t, err := time.Parse(time.RFC3339, c.Epoch)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: epoch %q: %v", ErrInvalidConfig, c.Epoch, err)
	}
	return t.UTC(), nil
}

// Registry builds the body table: the file's bodies when present, otherwise the defaults
func (c *Config) Registry() (*body.Registry, error) {
	if len(c.Bodies) == 0 {
		return body.NewRegistry(body.DefaultBodies())
	}

	bodies := make([]body.Body, len(c.Bodies))
	for i, b := range c.Bodies {
		bodies[i] = body.Body{
			Name:                b.Name,
			Texture:             b.Texture,
			Radius:              b.Radius,
			OrbitalDistance:     b.Distance,
			RotationPeriodHours: b.RotationHours,
			OrbitalPeriodDays:   b.OrbitDays,
			AxialTiltDegrees:    b.Tilt,
			Emissive:            b.Emissive,
		}
		if b.Ring != nil {
			bodies[i].Ring = &body.Ring{
				Texture:     b.Ring.Texture,
				InnerScale:  b.Ring.Inner,
				OuterScale:  b.Ring.Outer,
				TiltDegrees: b.Ring.Tilt,
			}
		}
	}
	return body.NewRegistry(bodies)
}
