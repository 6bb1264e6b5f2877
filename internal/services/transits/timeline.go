package transits

import (
	"context"

	"AstroEngine/internal/domain/models"
	"AstroEngine/internal/services/aspects"
)

// exactThreshold marks a day as exact outright when the deviation
// drops under half a degree while still shrinking.
const exactThreshold = 0.5

// ExactAspects walks [start, end] daily and flags the days on which
// the tracked aspect between two moving bodies perfects. The detector
// fires when the deviation turns upward inside the orb, or drops under
// the exact threshold, and re-arms only after the pair leaves orb, so
// one crossing yields exactly one event. Resolution is the one-day
// sampling step.
func (s *Search) ExactAspects(ctx context.Context, body1, body2 models.Body, aspect models.AspectType, start, end models.Instant, orb float64) ([]models.ExactAspectEvent, error) {
	angle, ok := aspects.AngleOf(aspect)
	if !ok {
		return nil, models.NewInvalidInput("aspect", "unknown aspect type: "+string(aspect))
	}
	if orb <= 0 {
		return nil, models.NewInvalidInput("orb", "orb must be positive")
	}
	sampler, err := NewSampler(s.provider, []models.Body{body1, body2}, start, end, s.step)
	if err != nil {
		return nil, err
	}

	var events []models.ExactAspectEvent
	prevDiff := 0.0
	first := true
	armed := true
	for {
		sample, ok, err := sampler.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		p1 := sample.Positions[body1]
		p2 := sample.Positions[body2]
		sep := models.AngularSeparation(p1.Longitude, p2.Longitude)
		diff := sep - angle
		if diff < 0 {
			diff = -diff
		}

		if first {
			first = false
			prevDiff = diff
			continue
		}
		if diff > orb {
			armed = true
			prevDiff = diff
			continue
		}
		if armed && ((prevDiff < diff && diff < orb) || (prevDiff > diff && diff < exactThreshold)) {
			events = append(events, models.ExactAspectEvent{
				Date:            sample.Date.DateString(),
				Body1:           body1,
				Body2:           body2,
				Aspect:          aspect,
				Orb:             diff,
				Body1Sign:       p1.Sign,
				Body2Sign:       p2.Sign,
				Body1Retrograde: p1.Retrograde,
				Body2Retrograde: p2.Retrograde,
			})
			armed = false
		}
		prevDiff = diff
	}
	return events, nil
}

// Ingresses reports each sign change of a body between consecutive
// daily samples in [start, end].
func (s *Search) Ingresses(ctx context.Context, body models.Body, start, end models.Instant) ([]models.IngressEvent, error) {
	sampler, err := NewSampler(s.provider, []models.Body{body}, start, end, s.step)
	if err != nil {
		return nil, err
	}

	var events []models.IngressEvent
	var prevSign models.Sign
	first := true
	for {
		sample, ok, err := sampler.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		pos := sample.Positions[body]
		if !first && pos.Sign != prevSign {
			events = append(events, models.IngressEvent{
				Date:       sample.Date.DateString(),
				Body:       body,
				Sign:       pos.Sign,
				Degree:     pos.Degree,
				Retrograde: pos.Retrograde,
			})
		}
		prevSign = pos.Sign
		first = false
	}
	return events, nil
}

// PositionRange samples a body's position over [start, end] at the
// given day interval.
func (s *Search) PositionRange(ctx context.Context, body models.Body, start, end models.Instant, intervalDays int) ([]models.PositionSample, error) {
	if intervalDays < 1 {
		intervalDays = 1
	}
	sampler, err := NewSampler(s.provider, []models.Body{body}, start, end, float64(intervalDays))
	if err != nil {
		return nil, err
	}

	var out []models.PositionSample
	for {
		sample, ok, err := sampler.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		pos := sample.Positions[body]
		out = append(out, models.PositionSample{
			Date:       sample.Date.DateString(),
			Longitude:  pos.Longitude,
			Sign:       pos.Sign,
			Degree:     pos.Degree,
			Speed:      pos.Speed,
			Retrograde: pos.Retrograde,
		})
	}
	return out, nil
}
