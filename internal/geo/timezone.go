package geo

import "github.com/zsefvlol/timezonemapper"

// MapResolver resolves timezones from an embedded timezone boundary map,
// no network calls involved.
type MapResolver struct{}

// NewMapResolver creates a TimezoneResolver backed by timezonemapper
func NewMapResolver() *MapResolver {
	return &MapResolver{}
}

// TimezoneAt returns the IANA timezone name for the coordinates, or ""
func (*MapResolver) TimezoneAt(lat, lon float64) string {
	return timezonemapper.LatLngToTimezoneString(lat, lon)
}
