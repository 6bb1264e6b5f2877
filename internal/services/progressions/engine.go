package progressions

import (
	"context"

	"AstroEngine/internal/domain/models"
	"AstroEngine/internal/ephemeris"
	"AstroEngine/internal/services/aspects"
	"AstroEngine/pkg/logger"
)

// Day ratios of the symbolic time mappings.
const (
	daysPerYear      = 365.25
	tertiaryRatio    = 27.32 // one sidereal month of days per year
	minorMonthFactor = 30.44     // mean synodic-ish month length per year
)

// Engine computes progressed charts: the natal chart advanced along a
// compressed time axis. Each method maps the real target date to a
// virtual instant shortly after birth (or, for solar arc, to a uniform
// angular offset of the natal chart).
type Engine struct {
	provider *ephemeris.Provider
	aspects  *aspects.Engine
	log      *logger.Logger
}

// NewEngine wires an Engine over the position provider and the aspect
// matcher.
func NewEngine(provider *ephemeris.Provider, aspectEngine *aspects.Engine, log *logger.Logger) *Engine {
	return &Engine{provider: provider, aspects: aspectEngine, log: log}
}

// Map translates a real target date into the virtual instant of the
// chosen method. Solar arc keeps the virtual instant at birth; its
// offset is computed later from the progressed sun.
func Map(birth, target models.Instant, method models.ProgressionMethod) (models.ProgressionMapping, error) {
	if !models.ValidProgressionMethod(method) {
		return models.ProgressionMapping{}, models.NewInvalidInput("method", "unknown progression method: "+string(method))
	}
	birthJD := ephemeris.JulianDayOf(birth)
	days := ephemeris.JulianDayOf(target) - birthJD
	if days < 0 {
		return models.ProgressionMapping{}, models.NewInvalidInput("target_date", "target date precedes birth date")
	}

	m := models.ProgressionMapping{
		Method:     method,
		BirthJD:    birthJD,
		TargetDate: target.DateString(),
	}
	switch method {
	case models.Secondary:
		m.VirtualJD = birthJD + days/daysPerYear
	case models.Tertiary:
		m.VirtualJD = birthJD + days/tertiaryRatio
	case models.Minor:
		m.VirtualJD = birthJD + days/daysPerYear*minorMonthFactor
	case models.SolarArc:
		m.VirtualJD = birthJD
	}
	return m, nil
}

// Progressed computes the progressed positions for one target date.
// With includeHouses the cusps are progressed too, which needs the
// birth place.
func (e *Engine) Progressed(ctx context.Context, birth, target models.Instant, method models.ProgressionMethod, bodies []models.Body, includeHouses bool, lat, lon float64, system ephemeris.HouseSystem) (models.ProgressedChart, error) {
	mapping, err := Map(birth, target, method)
	if err != nil {
		return models.ProgressedChart{}, err
	}
	if method == models.SolarArc {
		return e.solarArcChart(ctx, mapping, birth, target, bodies, includeHouses, lat, lon, system)
	}

	positions, err := e.provider.Positions(ctx, mapping.VirtualJD, bodies)
	if err != nil {
		return models.ProgressedChart{}, err
	}
	chart := models.ProgressedChart{Mapping: mapping, Positions: positions}
	if includeHouses {
		houses, err := e.provider.Houses(ctx, mapping.VirtualJD, lat, lon, system)
		if err != nil {
			return models.ProgressedChart{}, err
		}
		chart.Houses = &houses
	}
	return chart, nil
}

// TransitAspects cross-matches the sky at one instant against the
// progressed chart, pairing each transiting body with each progressed
// point. The transiting set is the first side of every match.
func (e *Engine) TransitAspects(ctx context.Context, birth, target, at models.Instant, method models.ProgressionMethod, bodies []models.Body, opts aspects.Options) (models.ProgressedChart, []models.AspectMatch, error) {
	chart, err := e.Progressed(ctx, birth, target, method, nil, false, 0, 0, ephemeris.Placidus)
	if err != nil {
		return models.ProgressedChart{}, nil, err
	}
	sky, err := e.provider.Positions(ctx, ephemeris.JulianDayOf(at), bodies)
	if err != nil {
		return models.ProgressedChart{}, nil, err
	}
	matches := e.aspects.Synastry(sky.Longitudes(), chart.Positions.Longitudes(), sky.Speeds(), chart.Positions.Speeds(), opts)
	return chart, matches, nil
}

// solarArcChart advances every natal point by the arc the secondary
// progressed sun has covered since birth. Natal speeds and retrograde
// flags are carried unchanged; the chart rotates as a rigid whole.
func (e *Engine) solarArcChart(ctx context.Context, mapping models.ProgressionMapping, birth, target models.Instant, bodies []models.Body, includeHouses bool, lat, lon float64, system ephemeris.HouseSystem) (models.ProgressedChart, error) {
	secondary, err := Map(birth, target, models.Secondary)
	if err != nil {
		return models.ProgressedChart{}, err
	}
	natalSun, err := e.provider.Position(ctx, mapping.BirthJD, models.Sun)
	if err != nil {
		return models.ProgressedChart{}, err
	}
	progSun, err := e.provider.Position(ctx, secondary.VirtualJD, models.Sun)
	if err != nil {
		return models.ProgressedChart{}, err
	}
	arc := models.NormalizeDegrees(progSun.Longitude - natalSun.Longitude)
	mapping.SolarArc = arc

	natal, err := e.provider.Positions(ctx, mapping.BirthJD, bodies)
	if err != nil {
		return models.ProgressedChart{}, err
	}
	positions := make(models.PositionSet, len(natal))
	for body, pos := range natal {
		positions[body] = shiftPosition(pos, arc)
	}

	chart := models.ProgressedChart{Mapping: mapping, Positions: positions}
	if includeHouses {
		houses, err := e.provider.Houses(ctx, mapping.BirthJD, lat, lon, system)
		if err != nil {
			return models.ProgressedChart{}, err
		}
		shifted := shiftHouses(houses, arc)
		chart.Houses = &shifted
	}
	return chart, nil
}

// shiftPosition rotates one position by the solar arc, recomputing its
// zodiacal view but keeping its motion.
func shiftPosition(pos models.CelestialPosition, arc float64) models.CelestialPosition {
	lon := models.NormalizeDegrees(pos.Longitude + arc)
	pos.Longitude = lon
	pos.Sign = models.SignOf(lon)
	pos.Degree = models.DegreeInSign(lon)
	return pos
}

// shiftHouses rotates a cusp set by the solar arc.
func shiftHouses(set models.HouseCuspSet, arc float64) models.HouseCuspSet {
	out := set
	for i := 1; i <= 12; i++ {
		out.Cusps[i] = models.NewHouseCusp(models.NormalizeDegrees(set.Cusps[i].Longitude + arc))
	}
	out.Ascendant = models.NormalizeDegrees(set.Ascendant + arc)
	out.Midheaven = models.NormalizeDegrees(set.Midheaven + arc)
	out.Vertex = models.NormalizeDegrees(set.Vertex + arc)
	return out
}
