package game

import (
	"fmt"
	"math"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-essentials/internal/snbt"
)

// Location is a point in a dimension together with the facing of whoever
// stood there. It is a plain value: copies never share state with the host.
type Location struct {
	X         float64
	Y         float64
	Z         float64
	Yaw       float32
	Pitch     float32
	Dimension string
}

// Validate reports a missing dimension or coordinates that cannot be stored.
func (l Location) Validate() error {
	el := errors.NewErrorList()

	if l.Dimension == "" {
		el.Add(fmt.Errorf("dimension must be set"))
	}

	coords := []struct {
		name string
		val  float64
	}{
		{"x", l.X}, {"y", l.Y}, {"z", l.Z},
		{"yaw", float64(l.Yaw)}, {"pitch", float64(l.Pitch)},
	}
	for _, c := range coords {
		if math.IsNaN(c.val) || math.IsInf(c.val, 0) {
			el.Add(fmt.Errorf("%s must be finite", c.name))
		}
	}

	return el.Err()
}

// Encode returns the six location fields in their stored order.
func (l Location) Encode() snbt.Compound {
	return snbt.Compound{
		{Name: "X", Value: snbt.Double(l.X)},
		{Name: "Y", Value: snbt.Double(l.Y)},
		{Name: "Z", Value: snbt.Double(l.Z)},
		{Name: "Yaw", Value: snbt.Float(l.Yaw)},
		{Name: "Pitch", Value: snbt.Float(l.Pitch)},
		{Name: "Dimension", Value: snbt.String(l.Dimension)},
	}
}

// DecodeLocation reads a location written by Encode. All six fields are required.
func DecodeLocation(c snbt.Compound) (Location, error) {
	l, err := decodePosition(c)
	if err != nil {
		return Location{}, err
	}

	yaw, err := requireFloat(c, "Yaw")
	if err != nil {
		return Location{}, err
	}
	pitch, err := requireFloat(c, "Pitch")
	if err != nil {
		return Location{}, err
	}
	l.Yaw = float32(yaw)
	l.Pitch = float32(pitch)

	return l, nil
}

// decodePosition reads the coordinates and dimension, leaving the facing zeroed.
func decodePosition(c snbt.Compound) (Location, error) {
	var l Location
	var err error

	if l.X, err = requireFloat(c, "X"); err != nil {
		return Location{}, err
	}
	if l.Y, err = requireFloat(c, "Y"); err != nil {
		return Location{}, err
	}
	if l.Z, err = requireFloat(c, "Z"); err != nil {
		return Location{}, err
	}
	if l.Dimension, err = requireString(c, "Dimension"); err != nil {
		return Location{}, err
	}

	return l, nil
}

// encodeLastPosition writes the legacy last position layout followed by the facing.
func encodeLastPosition(l Location) snbt.Compound {
	return snbt.Compound{
		{Name: "X", Value: snbt.Double(l.X)},
		{Name: "Y", Value: snbt.Double(l.Y)},
		{Name: "Z", Value: snbt.Double(l.Z)},
		{Name: "Dimension", Value: snbt.String(l.Dimension)},
		{Name: "Yaw", Value: snbt.Float(l.Yaw)},
		{Name: "Pitch", Value: snbt.Float(l.Pitch)},
	}
}

// decodeLastPosition accepts files written before the facing was stored.
func decodeLastPosition(c snbt.Compound) (Location, error) {
	l, err := decodePosition(c)
	if err != nil {
		return Location{}, err
	}

	yaw, err := optionalFloat(c, "Yaw")
	if err != nil {
		return Location{}, err
	}
	pitch, err := optionalFloat(c, "Pitch")
	if err != nil {
		return Location{}, err
	}
	l.Yaw = float32(yaw)
	l.Pitch = float32(pitch)

	return l, nil
}
