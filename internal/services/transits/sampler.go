package transits

import (
	"context"

	"AstroEngine/internal/domain/models"
	"AstroEngine/internal/ephemeris"
)

// Sample is one step of a scan: the sampled instant and the positions
// of the tracked bodies.
type Sample struct {
	JD        float64
	Date      models.Instant
	Positions models.PositionSet
}

// Sampler walks a Julian Day range at a fixed step, computing the
// tracked positions lazily at each step. A scan that stops early costs
// nothing for the remaining days, and Reset rewinds for reuse.
type Sampler struct {
	provider *ephemeris.Provider
	bodies   []models.Body
	startJD  float64
	endJD    float64
	step     float64
	cursor   float64
}

// NewSampler builds a sampler over [start, end] inclusive. A step of 0
// defaults to one day.
func NewSampler(p *ephemeris.Provider, bodies []models.Body, start, end models.Instant, stepDays float64) (*Sampler, error) {
	if stepDays <= 0 {
		stepDays = 1
	}
	startJD := ephemeris.JulianDayOf(start)
	endJD := ephemeris.JulianDayOf(end)
	if endJD < startJD {
		return nil, models.NewInvalidInput("end_date", "end date precedes start date")
	}
	return &Sampler{
		provider: p,
		bodies:   bodies,
		startJD:  startJD,
		endJD:    endJD,
		step:     stepDays,
		cursor:   startJD,
	}, nil
}

// Next yields the sample at the cursor and advances. The second result
// is false once the range is exhausted.
func (s *Sampler) Next(ctx context.Context) (Sample, bool, error) {
	const halfStepSlack = 1e-9
	if s.cursor > s.endJD+halfStepSlack {
		return Sample{}, false, nil
	}
	if err := ctx.Err(); err != nil {
		return Sample{}, false, err
	}
	positions, err := s.provider.Positions(ctx, s.cursor, s.bodies)
	if err != nil {
		return Sample{}, false, err
	}
	sample := Sample{
		JD:        s.cursor,
		Date:      ephemeris.InstantOf(s.cursor),
		Positions: positions,
	}
	s.cursor += s.step
	return sample, true, nil
}

// Reset rewinds the sampler to the start of its range.
func (s *Sampler) Reset() { s.cursor = s.startJD }
