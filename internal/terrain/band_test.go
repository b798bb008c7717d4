package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThresholds_Select(t *testing.T) {
	thresholds := DefaultThresholds(10)
	require.Equal(t, Thresholds{0, 3, 5, 7, 8}, thresholds)

	tests := []struct {
		name     string
		height   float64
		wantBand Band
		wantOK   bool
	}{
		{name: "max height is dirt2", height: 10, wantBand: Dirt2, wantOK: true},
		{name: "just above dirt2 threshold", height: 8.0001, wantBand: Dirt2, wantOK: true},
		{name: "exactly dirt2 threshold is dirt", height: 8, wantBand: Dirt, wantOK: true},
		{name: "exactly dirt threshold is grass", height: 7, wantBand: Grass, wantOK: true},
		{name: "mid grass", height: 6, wantBand: Grass, wantOK: true},
		{name: "exactly grass threshold is sand", height: 5, wantBand: Sand, wantOK: true},
		{name: "exactly sand threshold is stone", height: 3, wantBand: Stone, wantOK: true},
		{name: "tiny positive height is stone", height: 1e-9, wantBand: Stone, wantOK: true},
		{name: "zero height is dropped", height: 0, wantOK: false},
		{name: "negative height is dropped", height: -1, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			band, ok := thresholds.Select(tt.height)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantBand, band)
			}
		})
	}
}

func TestThresholds_SelectIsExclusive(t *testing.T) {
	thresholds := DefaultThresholds(10)

	for i := 0; i <= 1000; i++ {
		h := float64(i) / 100
		band, ok := thresholds.Select(h)
		if !ok {
			assert.LessOrEqual(t, h, thresholds[Stone])
			continue
		}

		matches := 0
		for _, b := range Bands {
			upper := 10.0
			if b < Dirt2 {
				upper = thresholds[b+1]
			}
			if h > thresholds[b] && (h <= upper || b == Dirt2) {
				matches++
				assert.Equal(t, b, band, "height %v", h)
			}
		}
		assert.Equal(t, 1, matches, "height %v must fall in exactly one band", h)
	}
}

func TestNewThresholds(t *testing.T) {
	tests := []struct {
		name      string
		maxHeight float64
		fractions []float64
		want      Thresholds
		wantErr   bool
	}{
		{name: "default", maxHeight: 10, fractions: DefaultFractions, want: Thresholds{0, 3, 5, 7, 8}},
		{name: "scaled", maxHeight: 20, fractions: DefaultFractions, want: Thresholds{0, 6, 10, 14, 16}},
		{name: "wrong count", maxHeight: 10, fractions: []float64{0, 1}, wantErr: true},
		{name: "not ascending", maxHeight: 10, fractions: []float64{0, 0.5, 0.3, 0.7, 0.8}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewThresholds(tt.maxHeight, tt.fractions)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidOptions)
				return
			}
			require.NoError(t, err)
			for i := range tt.want {
				assert.InDelta(t, tt.want[i], got[i], 1e-9)
			}
		})
	}
}

func TestBand_Names(t *testing.T) {
	names := []string{"stone", "sand", "grass", "dirt", "dirt2"}
	for i, b := range Bands {
		assert.Equal(t, names[i], b.String())
		assert.True(t, b.Valid())

		parsed, err := ParseBand(names[i])
		require.NoError(t, err)
		assert.Equal(t, b, parsed)

		text, err := b.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, names[i], string(text))
	}

	assert.False(t, Band(7).Valid())
	_, err := Band(7).MarshalText()
	assert.Error(t, err)
	_, err = ParseBand("lava")
	assert.Error(t, err)
}
