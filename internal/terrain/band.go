package terrain

import (
	"fmt"
)

// Band is a height bucket that decides which material layer a tile joins.
type Band int

const (
	Stone Band = iota
	Sand
	Grass
	Dirt
	Dirt2
)

// BandCount is the number of material layers.
const BandCount = 5

// Bands lists every band from lowest to highest.
var Bands = [BandCount]Band{Stone, Sand, Grass, Dirt, Dirt2}

// DefaultFractions are the band thresholds as fractions of the max height.
var DefaultFractions = []float64{0, 0.3, 0.5, 0.7, 0.8}

func (b Band) String() string {
	switch b {
	case Stone:
		return "stone"
	case Sand:
		return "sand"
	case Grass:
		return "grass"
	case Dirt:
		return "dirt"
	case Dirt2:
		return "dirt2"
	default:
		return fmt.Sprintf("band(%d)", int(b))
	}
}

// Valid reports whether b is one of the five bands.
func (b Band) Valid() bool {
	return b >= Stone && b <= Dirt2
}

// Thresholds holds the lower (exclusive) bound of each band in world units,
// indexed by Band.
type Thresholds [BandCount]float64

// NewThresholds scales the fractions by maxHeight. Fractions must be five
// strictly ascending values.
func NewThresholds(maxHeight float64, fractions []float64) (Thresholds, error) {
	var t Thresholds
	if len(fractions) != BandCount {
		return t, fmt.Errorf("%w: expected %d band fractions, got %d", ErrInvalidOptions, BandCount, len(fractions))
	}
	for i, f := range fractions {
		t[i] = f * maxHeight
	}
	return t, t.Validate()
}

// DefaultThresholds returns the stock thresholds for maxHeight.
func DefaultThresholds(maxHeight float64) Thresholds {
	t, _ := NewThresholds(maxHeight, DefaultFractions)
	return t
}

// Validate checks that thresholds ascend strictly.
func (t Thresholds) Validate() error {
	for i := 1; i < BandCount; i++ {
		if t[i] <= t[i-1] {
			return fmt.Errorf("%w: thresholds must ascend strictly, %s (%v) <= %s (%v)",
				ErrInvalidOptions, Band(i), t[i], Band(i-1), t[i-1])
		}
	}
	return nil
}

// Select picks the band for height h, testing from the highest threshold
// down. Heights at or below the stone threshold get no band and the tile is
// dropped.
func (t Thresholds) Select(h float64) (Band, bool) {
	for b := Dirt2; b >= Stone; b-- {
		if h > t[b] {
			return b, true
		}
	}
	return 0, false
}

// MarshalText encodes the band by name.
func (b Band) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("cannot marshal %s", b)
	}
	return []byte(b.String()), nil
}

// ParseBand looks a band up by name.
func ParseBand(name string) (Band, error) {
	for _, b := range Bands {
		if b.String() == name {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unknown band %q", name)
}
