package progressions

import (
	"context"

	"AstroEngine/internal/domain/models"
	"AstroEngine/internal/ephemeris"
)

// DefaultTimelineBodies are the points tracked in progression
// timelines. The progressed outer planets barely move over a lifetime
// and stay out of the default set.
var DefaultTimelineBodies = []models.Body{
	models.Sun, models.Moon, models.Mercury, models.Venus, models.Mars,
}

// Timeline samples the progressed chart between two real dates at a
// month interval. Each tracked body carries an ingress flag on the
// first sample in a new sign.
func (e *Engine) Timeline(ctx context.Context, birth, start, end models.Instant, intervalMonths int, method models.ProgressionMethod, bodies []models.Body) ([]models.ProgressionSample, error) {
	if intervalMonths < 1 {
		return nil, models.NewInvalidInput("interval_months", "interval must be at least one month")
	}
	if len(bodies) == 0 {
		bodies = DefaultTimelineBodies
	}
	startJD := ephemeris.JulianDayOf(start)
	endJD := ephemeris.JulianDayOf(end)
	if endJD < startJD {
		return nil, models.NewInvalidInput("end_date", "end date precedes start date")
	}

	var samples []models.ProgressionSample
	prevSigns := make(map[models.Body]models.Sign)
	for date := start; ephemeris.JulianDayOf(date) <= endJD+1e-9; date = addMonths(date, intervalMonths) {
		chart, err := e.Progressed(ctx, birth, date, method, bodies, false, 0, 0, "")
		if err != nil {
			return nil, err
		}
		sample := models.ProgressionSample{
			Date:      date.DateString(),
			Positions: make(map[models.Body]models.ProgressedPosition, len(bodies)),
		}
		for _, body := range bodies {
			pos := chart.Positions[body]
			prev, seen := prevSigns[body]
			sample.Positions[body] = models.ProgressedPosition{
				Sign:       pos.Sign,
				Degree:     pos.Degree,
				Retrograde: pos.Retrograde,
				Ingress:    seen && pos.Sign != prev,
			}
			prevSigns[body] = pos.Sign
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

// addMonths advances a calendar date by whole months, clamping the day
// to the target month's length.
func addMonths(i models.Instant, months int) models.Instant {
	total := (i.Year*12 + (i.Month - 1)) + months
	i.Year = total / 12
	i.Month = total%12 + 1
	if limit := daysInMonth(i.Year, i.Month); i.Day > limit {
		i.Day = limit
	}
	return i
}

func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	}
	if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
		return 29
	}
	return 28
}
