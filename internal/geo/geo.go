package geo

import "context"

// Coordinates is a latitude/longitude pair
type Coordinates struct {
	Lat float64
	Lon float64
}

// Geocoder resolves city names to coordinates and back. Absence of a result
// is a normal outcome, not an error.
type Geocoder interface {
	// Forward returns the first match for a city name, or (nil, nil)
	Forward(ctx context.Context, city string) (*Coordinates, error)
	// Reverse returns a display city name for coordinates, or ""
	Reverse(ctx context.Context, lat, lon float64) (string, error)
}

// TimezoneResolver maps coordinates to an IANA timezone name.
// Returns "" when the point cannot be resolved.
type TimezoneResolver interface {
	TimezoneAt(lat, lon float64) string
}
