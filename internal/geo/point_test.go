package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePoint(t *testing.T) {
	c, err := ParsePoint("POINT(-73.5 45.5)")
	require.NoError(t, err)
	assert.Equal(t, Coordinates{Longitude: -73.5, Latitude: 45.5}, c)
	assert.Equal(t, [2]float64{-73.5, 45.5}, c.Pair())
}

func TestParsePoint_AcceptsSRIDPrefix(t *testing.T) {
	c, err := ParsePoint("SRID=4326;POINT(2.3522 48.8566)")
	require.NoError(t, err)
	assert.Equal(t, 2.3522, c.Longitude)
	assert.Equal(t, 48.8566, c.Latitude)
}

func TestParsePoint_Empty(t *testing.T) {
	for _, text := range []string{"", "   ", "POINT EMPTY"} {
		_, err := ParsePoint(text)
		assert.ErrorIs(t, err, ErrUnknownLocation, "input %q", text)
	}
}

func TestParsePoint_Malformed(t *testing.T) {
	for _, text := range []string{
		"POINT(",
		"not a point",
		"LINESTRING(0 0, 1 1)",
		"POINT(200 10)",
		"POINT(10 -95)",
	} {
		_, err := ParsePoint(text)
		assert.ErrorIs(t, err, ErrInvalidPoint, "input %q", text)
	}
}

func TestFormatPoint_RoundTrip(t *testing.T) {
	in := Coordinates{Longitude: -122.4194, Latitude: 37.7749}

	out, err := ParsePoint(FormatPoint(in))
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
