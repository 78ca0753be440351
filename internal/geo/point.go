// Package geo converts stored point geometries into the coordinate pairs
// returned to API consumers.
package geo

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

var (
	// ErrUnknownLocation is returned for an empty geometry
	ErrUnknownLocation = errors.New("unknown location")

	// ErrInvalidPoint is returned for text that is not a valid WKT point
	ErrInvalidPoint = errors.New("invalid point geometry")
)

// Coordinates is a point as exposed in API responses
type Coordinates struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// Pair returns the coordinates in GeoJSON order: longitude, then latitude.
func (c Coordinates) Pair() [2]float64 {
	return [2]float64{c.Longitude, c.Latitude}
}

// ParsePoint reads a well-known-text point such as "POINT(-73.5 45.5)".
// An optional EWKT "SRID=n;" prefix is accepted.
func ParsePoint(text string) (Coordinates, error) {
	text = strings.TrimSpace(text)
	if i := strings.IndexByte(text, ';'); i >= 0 && strings.HasPrefix(strings.ToUpper(text), "SRID=") {
		text = strings.TrimSpace(text[i+1:])
	}

	if text == "" || strings.EqualFold(text, "POINT EMPTY") {
		return Coordinates{}, ErrUnknownLocation
	}

	p, err := wkt.UnmarshalPoint(text)
	if err != nil {
		return Coordinates{}, fmt.Errorf("%w %q: %v", ErrInvalidPoint, text, err)
	}

	c := Coordinates{Longitude: p.Lon(), Latitude: p.Lat()}
	if err := c.Validate(); err != nil {
		return Coordinates{}, fmt.Errorf("%w %q: %v", ErrInvalidPoint, text, err)
	}
	return c, nil
}

// FormatPoint renders c as a WKT point
func FormatPoint(c Coordinates) string {
	return wkt.MarshalString(orb.Point{c.Longitude, c.Latitude})
}

// Validate checks that c lies on the WGS84 globe
func (c Coordinates) Validate() error {
	if math.IsNaN(c.Longitude) || c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("longitude %v out of range", c.Longitude)
	}
	if math.IsNaN(c.Latitude) || c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("latitude %v out of range", c.Latitude)
	}
	return nil
}
