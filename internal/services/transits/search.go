package transits

import (
	"context"
	"math"
	"sort"

	"AstroEngine/internal/domain/models"
	"AstroEngine/internal/ephemeris"
	"AstroEngine/internal/services/aspects"
	"AstroEngine/pkg/logger"
)

// DefaultTransitBodies are the moving bodies scanned when a request
// does not narrow the set. Nodes are excluded; their mean motion makes
// daily transit scans noise.
var DefaultTransitBodies = []models.Body{
	models.Sun, models.Moon, models.Mercury, models.Venus, models.Mars,
	models.Jupiter, models.Saturn, models.Uranus, models.Neptune,
	models.Pluto, models.Chiron,
}

// tightOrb is the retention threshold for period scans: a sampled day
// stays in the timeline only when the aspect is essentially exact or
// the estimated exact date is that day.
const tightOrb = 0.1

// Search runs all time-domain queries: instant transits, period scans,
// exact-date tracking, ingresses and forecasts. Stateless; safe for
// concurrent use.
type Search struct {
	provider *ephemeris.Provider
	engine   *aspects.Engine
	log      *logger.Logger
	step     float64 // sampling step in days, shared by all scans
}

// NewSearch wires a Search over the position provider and the aspect
// engine.
func NewSearch(provider *ephemeris.Provider, engine *aspects.Engine, log *logger.Logger) *Search {
	return &Search{provider: provider, engine: engine, log: log, step: 1}
}

// SetStep overrides the default one-day sampling step. Values below one
// day trade scan time for finer event dating.
func (s *Search) SetStep(days float64) {
	if days > 0 {
		s.step = days
	}
}

// At computes the transits in effect at one instant against a fixed
// natal point set. Results are ordered tightest orb first.
func (s *Search) At(ctx context.Context, at models.Instant, natal map[models.Body]float64, bodies []models.Body, opts aspects.Options) ([]models.Transit, error) {
	if len(natal) == 0 {
		return nil, models.NewInvalidInput("natal_positions", "at least one natal position is required")
	}
	if len(bodies) == 0 {
		bodies = DefaultTransitBodies
	}
	jd := ephemeris.JulianDayOf(at)
	positions, err := s.provider.Positions(ctx, jd, bodies)
	if err != nil {
		return nil, err
	}

	natalBodies := sortedNatal(natal)
	var out []models.Transit
	for _, tb := range bodies {
		tp := positions[tb]
		for _, nb := range natalBodies {
			m, ok := s.engine.Match(tb, nb, tp.Longitude, natal[nb], tp.Speed, 0, opts)
			if !ok {
				continue
			}
			out = append(out, models.Transit{
				TransitBody: tb,
				NatalBody:   nb,
				Aspect:      m.Type,
				Orb:         m.Orb,
				Applying:    m.Applying,
				Influence:   m.Influence,
				TransitSign: tp.Sign,
				Retrograde:  tp.Retrograde,
				ExactDate:   estimateExactDate(jd, tp, natal[nb], m.Angle, m.Applying),
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Orb < out[j].Orb })
	return out, nil
}

// Period scans [start, end] day by day and keeps the days on which a
// transit is effectively exact. Duplicate (date, pair, aspect) entries
// collapse to the first occurrence; events come back sorted by date.
func (s *Search) Period(ctx context.Context, natal map[models.Body]float64, start, end models.Instant, bodies []models.Body, opts aspects.Options) ([]models.TimelineEvent, error) {
	if len(natal) == 0 {
		return nil, models.NewInvalidInput("natal_positions", "at least one natal position is required")
	}
	if len(bodies) == 0 {
		bodies = DefaultTransitBodies
	}
	sampler, err := NewSampler(s.provider, bodies, start, end, s.step)
	if err != nil {
		return nil, err
	}

	natalBodies := sortedNatal(natal)
	seen := make(map[string]struct{})
	var events []models.TimelineEvent
	for {
		sample, ok, err := sampler.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		date := sample.Date.DateString()
		for _, tb := range bodies {
			tp := sample.Positions[tb]
			for _, nb := range natalBodies {
				m, matched := s.engine.Match(tb, nb, tp.Longitude, natal[nb], tp.Speed, 0, opts)
				if !matched {
					continue
				}
				exact := estimateExactDate(sample.JD, tp, natal[nb], m.Angle, m.Applying)
				if m.Orb >= tightOrb && exact != date {
					continue
				}
				ev := models.TimelineEvent{
					Date:        date,
					TransitBody: tb,
					NatalBody:   nb,
					Aspect:      m.Type,
					Applying:    m.Applying,
					Retrograde:  tp.Retrograde,
					Orb:         m.Orb,
				}
				if _, dup := seen[ev.Key()]; dup {
					continue
				}
				seen[ev.Key()] = struct{}{}
				events = append(events, ev)
			}
		}
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].Date < events[j].Date })
	return events, nil
}

// estimateExactDate projects the day the transit perfects, assuming
// constant daily motion. Empty for a stationary body. Accuracy is a
// day or two for the fast bodies, worse near stations.
func estimateExactDate(jd float64, tp models.CelestialPosition, natalLon, angle float64, applying bool) string {
	speed := math.Abs(tp.Speed)
	if speed < 1e-6 {
		return ""
	}
	target := models.NormalizeDegrees(natalLon + angle)
	dist := models.AngularSeparation(tp.Longitude, target)
	if !applying {
		speed = -speed
	}
	days := math.Round(dist / speed)
	return ephemeris.InstantOf(jd + days).DateString()
}

func sortedNatal(natal map[models.Body]float64) []models.Body {
	bodies := make([]models.Body, 0, len(natal))
	for b := range natal {
		bodies = append(bodies, b)
	}
	sort.Slice(bodies, func(i, j int) bool { return bodies[i] < bodies[j] })
	return bodies
}
