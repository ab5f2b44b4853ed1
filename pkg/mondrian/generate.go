package mondrian

import (
	"image/draw"
	"strings"

	"github.com/matzehuels/mondrian/pkg/errors"
)

// Mode selects the coloring policy of a generation.
type Mode int

const (
	// ModeBasic colors leaves uniformly from [Palette].
	ModeBasic Mode = 1
	// ModeComplex colors leaves by canvas quadrant.
	ModeComplex Mode = 2
)

// Modes lists every valid mode in menu order.
var Modes = []Mode{ModeBasic, ModeComplex}

// ParseMode accepts the menu number ("1", "2") or the name ("basic", "complex").
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "basic":
		return ModeBasic, nil
	case "2", "complex":
		return ModeComplex, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidMode, "invalid mode %q (must be 1/basic or 2/complex)", s)
	}
}

// Valid reports whether m is one of [Modes].
func (m Mode) Valid() bool {
	return m == ModeBasic || m == ModeComplex
}

// String returns the mode name used for output files and URLs.
// The zero Mode, meaning "not chosen yet", prints as the empty string.
func (m Mode) String() string {
	switch m {
	case 0:
		return ""
	case ModeBasic:
		return "basic"
	case ModeComplex:
		return "complex"
	default:
		return "unknown"
	}
}

// Strategy returns the leaf coloring strategy for m.
// Invalid modes fall back to [Uniform].
func (m Mode) Strategy() Strategy {
	if m == ModeComplex {
		return LocationBiased
	}
	return Uniform
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidMode, "invalid mode %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Set implements pflag.Value so a Mode can be bound to a command-line flag.
func (m *Mode) Set(s string) error {
	return m.UnmarshalText([]byte(s))
}

// Type implements pflag.Value.
func (m *Mode) Type() string {
	return "mode"
}

// Generate paints dst with one full subdivision of its bounds using the
// strategy of mode and the caller's random source.
func Generate(dst draw.Image, mode Mode, rng Rand, opts ...Option) Stats {
	var st Stats
	opts = append(opts, WithStats(&st))
	Subdivide(dst, dst.Bounds(), mode.Strategy(), rng, opts...)
	return st
}

// GenerateBasic paints dst with uniformly colored regions using a freshly
// seeded random source.
func GenerateBasic(dst draw.Image) {
	Generate(dst, ModeBasic, NewRand(NewSeed()))
}

// GenerateComplex paints dst with quadrant-biased colors using a freshly
// seeded random source.
func GenerateComplex(dst draw.Image) {
	Generate(dst, ModeComplex, NewRand(NewSeed()))
}
