package qrcode

import (
	"context"
	"strconv"
)

// Coordinates is a position in decimal degrees.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Locator acquires the current position. Implementations must honour ctx.
type Locator interface {
	Locate(ctx context.Context) (Coordinates, error)
}

// StaticLocator always reports the same position.
type StaticLocator Coordinates

func (l StaticLocator) Locate(ctx context.Context) (Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return Coordinates{}, err
	}

	return Coordinates(l), nil
}

// LocationResult is delivered once by Session.RequestLocation.
type LocationResult struct {
	Location Location
	Err      error
}

// ToLocation formats c with six decimals, ready for Build.
func (c Coordinates) ToLocation() Location {
	return Location{
		Latitude:  strconv.FormatFloat(c.Latitude, 'f', 6, 64),
		Longitude: strconv.FormatFloat(c.Longitude, 'f', 6, 64),
	}
}
