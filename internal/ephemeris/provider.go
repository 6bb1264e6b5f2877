package ephemeris

import (
	"context"

	"AstroEngine/internal/domain/models"
	"AstroEngine/pkg/logger"
)

// Provider is the position service used by every higher layer. It
// decorates raw source states with sign, degree and retrograde
// information and derives the points no source computes directly:
// the south node, the chart angles and the Part of Fortune.
type Provider struct {
	source Source
	log    *logger.Logger
}

// NewProvider wires a Provider over a Source.
func NewProvider(source Source, log *logger.Logger) *Provider {
	return &Provider{source: source, log: log}
}

// SourceName reports the active source for diagnostics.
func (p *Provider) SourceName() string { return p.source.Name() }

// Position returns one decorated body position. The south node is
// derived from the north node; angle bodies need geography and are
// rejected here.
func (p *Provider) Position(ctx context.Context, jd float64, body models.Body) (models.CelestialPosition, error) {
	if body == models.SouthNode {
		north, err := p.Position(ctx, jd, models.NorthNode)
		if err != nil {
			return models.CelestialPosition{}, err
		}
		return oppositePoint(models.SouthNode, north), nil
	}

	state, err := p.source.State(jd, body)
	if err != nil {
		return models.CelestialPosition{}, err
	}
	return decorate(body, state), nil
}

// Positions computes a set of body positions at one instant. An empty
// body list means every standard computable body plus the south node.
func (p *Provider) Positions(ctx context.Context, jd float64, bodies []models.Body) (models.PositionSet, error) {
	if len(bodies) == 0 {
		bodies = append(append([]models.Body{}, ComputableBodies...), models.SouthNode)
	}
	set := make(models.PositionSet, len(bodies))
	for _, body := range bodies {
		pos, err := p.Position(ctx, jd, body)
		if err != nil {
			return nil, err
		}
		set[body] = pos
	}
	return set, nil
}

// Houses computes the cusp set for an instant and place, logging when
// a polar latitude forces the Porphyry fallback.
func (p *Provider) Houses(ctx context.Context, jd, lat, lon float64, system HouseSystem) (models.HouseCuspSet, error) {
	set, fellBack, err := Houses(jd, lat, lon, system)
	if err != nil {
		return models.HouseCuspSet{}, err
	}
	if fellBack {
		p.log.Warn("polar latitude, house system fell back to porphyry",
			logger.String("requested", string(system)),
			logger.Any("latitude", lat))
	}
	return set, nil
}

// ChartPoints computes the full point set for a chart: bodies, angles
// and the Part of Fortune, all stamped with their house.
func (p *Provider) ChartPoints(ctx context.Context, jd, lat, lon float64, system HouseSystem) (models.PositionSet, models.HouseCuspSet, error) {
	set, err := p.Positions(ctx, jd, nil)
	if err != nil {
		return nil, models.HouseCuspSet{}, err
	}
	houses, err := p.Houses(ctx, jd, lat, lon, system)
	if err != nil {
		return nil, models.HouseCuspSet{}, err
	}

	set[models.Ascendant] = pointAt(models.Ascendant, houses.Ascendant)
	set[models.MC] = pointAt(models.MC, houses.Midheaven)
	set[models.Vertex] = pointAt(models.Vertex, houses.Vertex)

	fortune := norm360(houses.Ascendant + set[models.Moon].Longitude - set[models.Sun].Longitude)
	set[models.PartOfFortune] = pointAt(models.PartOfFortune, fortune)

	for body, pos := range set {
		pos.House = houses.HouseOf(pos.Longitude)
		set[body] = pos
	}
	return set, houses, nil
}

// decorate fills the zodiacal view of a raw state.
func decorate(body models.Body, st BodyState) models.CelestialPosition {
	lon := norm360(st.Longitude)
	return models.CelestialPosition{
		Body:       body,
		Longitude:  lon,
		Latitude:   st.Latitude,
		Distance:   st.Distance,
		Speed:      st.Speed,
		Sign:       models.SignOf(lon),
		Degree:     models.DegreeInSign(lon),
		Retrograde: st.Speed < 0,
	}
}

// oppositePoint mirrors a position across the zodiac, keeping the
// motion of the source point. Used for the south node.
func oppositePoint(body models.Body, src models.CelestialPosition) models.CelestialPosition {
	lon := norm360(src.Longitude + 180)
	return models.CelestialPosition{
		Body:       body,
		Longitude:  lon,
		Latitude:   -src.Latitude,
		Distance:   src.Distance,
		Speed:      src.Speed,
		Sign:       models.SignOf(lon),
		Degree:     models.DegreeInSign(lon),
		Retrograde: src.Retrograde,
	}
}

// pointAt builds a speedless derived point such as an angle.
func pointAt(body models.Body, lon float64) models.CelestialPosition {
	lon = norm360(lon)
	return models.CelestialPosition{
		Body:      body,
		Longitude: lon,
		Sign:      models.SignOf(lon),
		Degree:    models.DegreeInSign(lon),
	}
}
