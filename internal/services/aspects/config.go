package aspects

import "AstroEngine/internal/domain/models"

// aspectAngle pairs an aspect with its ideal angle.
var aspectAngles = map[models.AspectType]float64{
	models.Conjunction:    0,
	models.Opposition:     180,
	models.Trine:          120,
	models.Square:         90,
	models.Sextile:        60,
	models.Quincunx:       150,
	models.SemiSextile:    30,
	models.SemiSquare:     45,
	models.Sesquiquadrate: 135,
	models.Quintile:       72,
}

// DefaultOrbs are the maximum deviations from the ideal angle within
// which each aspect is recognized.
func DefaultOrbs() map[models.AspectType]float64 {
	return map[models.AspectType]float64{
		models.Conjunction:    8,
		models.Opposition:     8,
		models.Trine:          6,
		models.Square:         6,
		models.Sextile:        4,
		models.Quincunx:       3,
		models.SemiSextile:    2,
		models.SemiSquare:     2,
		models.Sesquiquadrate: 2,
		models.Quintile:       2,
	}
}

// DefaultSpeeds are typical daily motions, used for the applying
// heuristic when a caller supplies bare longitudes without velocities.
func DefaultSpeeds() map[models.Body]float64 {
	return map[models.Body]float64{
		models.Sun:       1.0,
		models.Moon:      13.0,
		models.Mercury:   1.0,
		models.Venus:     1.0,
		models.Mars:      0.5,
		models.Jupiter:   0.08,
		models.Saturn:    0.03,
		models.Uranus:    0.01,
		models.Neptune:   0.006,
		models.Pluto:     0.004,
		models.Chiron:    0.05,
		models.NorthNode: 0.05,
		models.SouthNode: 0.05,
	}
}

// AngleOf returns the ideal angle for a known aspect.
func AngleOf(t models.AspectType) (float64, bool) {
	a, ok := aspectAngles[t]
	return a, ok
}

// ParseAspect maps a request identifier to an AspectType.
func ParseAspect(name string) (models.AspectType, error) {
	t := models.AspectType(name)
	if _, ok := aspectAngles[t]; !ok {
		return "", models.NewInvalidInput("aspect", "unknown aspect type: "+name)
	}
	return t, nil
}
