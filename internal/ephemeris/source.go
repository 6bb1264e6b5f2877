package ephemeris

import (
	"AstroEngine/internal/domain/models"
)

// BodyState is a raw geocentric ecliptic state at one instant, before
// sign/house decoration.
type BodyState struct {
	Longitude float64 // degrees, [0, 360)
	Latitude  float64 // degrees
	Distance  float64 // AU (Earth-Moon distance for the Moon)
	Speed     float64 // degrees/day in longitude, negative when retrograde
}

// Source produces body states. Implementations must be safe for
// concurrent use; all methods are pure functions of their arguments.
type Source interface {
	// State returns the geocentric ecliptic state of body at jd.
	// Returns models.UnknownBodyError for bodies the source cannot
	// compute, models.ErrEphemerisUnavailable when it has no data
	// covering jd.
	State(jd float64, body models.Body) (BodyState, error)

	// Name identifies the source in logs and diagnostics.
	Name() string
}

// ComputableBodies are the bodies a Source is expected to answer for.
// South node, angles and derived points are produced by the provider.
var ComputableBodies = []models.Body{
	models.Sun, models.Moon, models.Mercury, models.Venus, models.Mars,
	models.Jupiter, models.Saturn, models.Uranus, models.Neptune,
	models.Pluto, models.Chiron, models.NorthNode,
}

// ParseBody maps a request identifier to a Body, accepting both
// computed and derived point names.
func ParseBody(name string) (models.Body, error) {
	b := models.Body(name)
	for _, known := range models.StandardBodies {
		if b == known {
			return b, nil
		}
	}
	for _, known := range models.ChartAngles {
		if b == known {
			return b, nil
		}
	}
	return "", &models.UnknownBodyError{Name: name}
}
