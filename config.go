package coaster

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/coaster/camera"
	"github.com/npillmayer/coaster/edit"
	"github.com/npillmayer/coaster/ride"
	"github.com/npillmayer/coaster/space"
	"github.com/npillmayer/coaster/track"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Configuration errors.
var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrConfigFormat  = errors.New("unknown configuration format")
)

// Config holds the parameters of a simulation. The zero value is not
// usable; start from DefaultConfig.
type Config struct {
	Segments  int          `toml:"segments" yaml:"segments"`
	Samples   int          `toml:"samples" yaml:"samples"`
	Seed      [][3]float64 `toml:"seed,omitempty" yaml:"seed,omitempty"` // 4 control points, or empty for the octagon
	Gravity   float64      `toml:"gravity" yaml:"gravity"`
	Scale     float64      `toml:"scale" yaml:"scale"`
	Slack     float64      `toml:"slack" yaml:"slack"`
	Lift      float64      `toml:"lift" yaml:"lift"`
	Tolerance float64      `toml:"tolerance" yaml:"tolerance"`
	Width     int          `toml:"width" yaml:"width"`
	Height    int          `toml:"height" yaml:"height"`
	FovY      float64      `toml:"fovy" yaml:"fovy"` // degrees
	Near      float64      `toml:"near" yaml:"near"`
	Far       float64      `toml:"far" yaml:"far"`
	Ticks     int          `toml:"ticks" yaml:"ticks"` // length of a headless run
}

// DefaultConfig returns the configuration of the classic eight segment ride.
func DefaultConfig() Config {
	return Config{
		Segments:  8,
		Samples:   track.DefaultSamples,
		Gravity:   ride.DefaultGravity,
		Scale:     ride.DefaultScale,
		Slack:     ride.DefaultSlack,
		Lift:      ride.DefaultLift,
		Tolerance: edit.DefaultTolerance,
		Width:     1280,
		Height:    720,
		FovY:      45,
		Near:      0.1,
		Far:       1000,
		Ticks:     1000,
	}
}

// Validate checks a configuration for values a simulation cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Segments < 2:
		return fmt.Errorf("%w: need at least 2 segments, have %d", ErrInvalidConfig, c.Segments)
	case c.Samples < 2:
		return fmt.Errorf("%w: need at least 2 samples per segment, have %d", ErrInvalidConfig, c.Samples)
	case len(c.Seed) != 0 && len(c.Seed) != 4:
		return fmt.Errorf("%w: seed needs 4 control points, has %d", ErrInvalidConfig, len(c.Seed))
	case !(c.Gravity > 0) || !(c.Scale > 0) || !(c.Slack > 0):
		return fmt.Errorf("%w: gravity, scale and slack must be positive", ErrInvalidConfig)
	case !(c.Tolerance > 0):
		return fmt.Errorf("%w: pick tolerance must be positive", ErrInvalidConfig)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: viewport %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case !(c.FovY > 0 && c.FovY < 180):
		return fmt.Errorf("%w: field of view %g°", ErrInvalidConfig, c.FovY)
	case !(c.Near > 0 && c.Near < c.Far):
		return fmt.Errorf("%w: clipping planes %g..%g", ErrInvalidConfig, c.Near, c.Far)
	case c.Ticks < 0:
		return fmt.Errorf("%w: negative tick count", ErrInvalidConfig)
	}
	for _, f := range []float64{c.Gravity, c.Scale, c.Slack, c.Lift, c.Tolerance, c.Near, c.Far} {
		if !space.IsFinite(f) {
			return fmt.Errorf("%w: non-finite parameter %g", ErrInvalidConfig, f)
		}
	}
	return nil
}

// TrackSeed returns the seed segment to build the loop from.
func (c Config) TrackSeed() track.Seed {
	if len(c.Seed) != 4 {
		return track.OctagonSeed()
	}
	v := func(i int) space.Vec3 {
		return space.V(c.Seed[i][0], c.Seed[i][1], c.Seed[i][2])
	}
	return track.Seed{StartAnchor: v(0), StartHandle: v(1), EndHandle: v(2), EndAnchor: v(3)}
}

// Energy returns the speed model of the configuration.
func (c Config) Energy() ride.PotentialEnergy {
	return ride.PotentialEnergy{Gravity: c.Gravity, Scale: c.Scale, Slack: c.Slack}
}

// Projection returns the camera projection of the configuration.
func (c Config) Projection() camera.Projection {
	p := camera.Projection{FovY: c.FovY * space.Deg2Rad, Aspect: 1, Near: c.Near, Far: c.Far}
	p.Resize(c.Width, c.Height)
	return p
}

// Decoder is implemented by the TOML and the YAML decoders.
type Decoder interface {
	Decode(v any) error
}

// DecoderFunc creates a Decoder reading from r.
type DecoderFunc func(r io.Reader) Decoder

var decoders = map[string]DecoderFunc{
	".toml": func(r io.Reader) Decoder { return toml.NewDecoder(r).DisallowUnknownFields() },
	".yaml": newYAMLDecoder,
	".yml":  newYAMLDecoder,
}

func newYAMLDecoder(r io.Reader) Decoder {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	return dec
}

// LoadConfig reads a configuration file, in TOML or YAML format depending on
// the file's extension. Parameters missing from the file keep their default
// values. The result is validated.
func LoadConfig(path string) (Config, error) {
	f, ok := decoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigFormat, path)
	}
	fp, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer fp.Close()
	return ReadConfig(bufio.NewReader(fp), f)
}

// ReadConfig decodes a configuration from r, starting from the defaults.
func ReadConfig(r io.Reader, f DecoderFunc) (Config, error) {
	cfg := DefaultConfig()
	if err := f(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	tracer().Debugf("configuration: %d segments, %d samples", cfg.Segments, cfg.Samples)
	return cfg, nil
}

// TOML and YAML are the decoders for the two configuration formats.
var (
	TOML = decoders[".toml"]
	YAML = decoders[".yaml"]
)
