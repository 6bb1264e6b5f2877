package transits

import (
	"context"
	"fmt"

	"AstroEngine/internal/domain/models"
	"AstroEngine/internal/services/aspects"
	"AstroEngine/pkg/logger"
)

// ForecastYears is the horizon of the long-range scan.
const ForecastYears = 5

// ForecastBodies are the slow movers whose transits shape multi-year
// periods. The fast bodies churn too quickly to matter at this scale.
var ForecastBodies = []models.Body{
	models.Jupiter, models.Saturn, models.Uranus, models.Neptune, models.Pluto,
}

// forecastAspects are the hard angles plus the conjunction; the softer
// aspects rarely mark period boundaries.
var forecastAspects = []models.AspectType{
	models.Conjunction, models.Opposition, models.Square,
}

// keystoneBodies are the natal points whose transits get tagged as
// major life events.
var keystoneBodies = map[models.Body]bool{
	models.Sun:       true,
	models.Moon:      true,
	models.Ascendant: true,
}

// Forecast scans the coming years for slow transits to the natal
// chart. Events touching the sun, moon or ascendant are split out as
// life events.
func (s *Search) Forecast(ctx context.Context, natal map[models.Body]float64, start models.Instant, bodies []models.Body) (models.Forecast, error) {
	if len(bodies) == 0 {
		bodies = ForecastBodies
	}
	end := models.Instant{
		Year: start.Year + ForecastYears, Month: start.Month, Day: start.Day,
		Hour: start.Hour, Minute: start.Minute, Second: start.Second,
	}

	events, err := s.Period(ctx, natal, start, end, bodies, aspects.Options{Types: forecastAspects})
	if err != nil {
		return models.Forecast{}, err
	}

	forecast := models.Forecast{
		StartDate: start.DateString(),
		EndDate:   end.DateString(),
	}
	for _, ev := range events {
		ev.Description = describeTransit(ev.TransitBody, ev.NatalBody, ev.Aspect)
		if keystoneBodies[ev.NatalBody] {
			ev.Significance = "major"
			forecast.LifeEvents = append(forecast.LifeEvents, ev)
		} else {
			ev.Significance = "significant"
		}
		forecast.Transits = append(forecast.Transits, ev)
	}
	s.log.Debug("forecast scan complete",
		logger.String("start", forecast.StartDate),
		logger.String("end", forecast.EndDate),
		logger.Int("events", len(forecast.Transits)))
	return forecast, nil
}

type transitKey struct {
	transit models.Body
	natal   models.Body
	aspect  models.AspectType
}

// transitReadings are the curated interpretations for the most
// consequential combinations. Everything else falls through to the
// per-aspect template.
var transitReadings = map[transitKey]string{
	{models.Jupiter, models.Sun, models.Conjunction}:      "A year of expansion and opportunity. Confidence and visibility peak; growth comes through saying yes.",
	{models.Jupiter, models.Sun, models.Opposition}:       "Overreach is the risk. Ambitions meet external limits; balance optimism against what circumstances allow.",
	{models.Jupiter, models.Moon, models.Conjunction}:     "Emotional abundance and domestic growth. A favorable period for family matters and inner security.",
	{models.Jupiter, models.Ascendant, models.Conjunction}: "A new twelve-year chapter of personal growth opens. How you meet the world broadens.",
	{models.Saturn, models.Sun, models.Conjunction}:       "A defining period of consolidation. Responsibilities peak and lasting structures are built from what survives scrutiny.",
	{models.Saturn, models.Sun, models.Opposition}:        "Authority and obligations press from outside. Endurance now pays off at the next conjunction.",
	{models.Saturn, models.Sun, models.Square}:            "A testing quarter-cycle. Friction between duty and will exposes what needs reworking.",
	{models.Saturn, models.Moon, models.Conjunction}:      "Emotional sobriety. Old supports fall away so sturdier ones can be established.",
	{models.Saturn, models.Ascendant, models.Conjunction}: "Identity is restructured. Commitments made now set the tone for years.",
	{models.Uranus, models.Sun, models.Conjunction}:       "Sudden liberation. The settled order of life breaks open; authenticity beats stability.",
	{models.Uranus, models.Sun, models.Opposition}:        "Midpoint reckoning. Restlessness signals which freedoms were deferred too long.",
	{models.Uranus, models.Moon, models.Conjunction}:      "Emotional awakening and domestic upheaval. Needs change faster than habits.",
	{models.Neptune, models.Sun, models.Conjunction}:      "Boundaries dissolve. Inspiration and confusion arrive together; drift or transcend.",
	{models.Neptune, models.Moon, models.Conjunction}:     "Heightened sensitivity and porous moods. Imagination floods the inner life.",
	{models.Pluto, models.Sun, models.Conjunction}:        "Deep transformation of identity. What is outgrown is stripped away, rarely gently.",
	{models.Pluto, models.Sun, models.Opposition}:         "Power struggles externalize an inner metamorphosis. Control contests reveal what must change.",
	{models.Pluto, models.Moon, models.Conjunction}:       "Emotional ground shifts at the root. Compulsions surface to be outlived.",
	{models.Pluto, models.Ascendant, models.Conjunction}:  "A slow, total remaking of self-presentation. Others notice the change before you do.",
}

var genericReadings = map[models.AspectType]string{
	models.Conjunction: "%s conjunct natal %s: a new cycle begins for the themes these bodies rule.",
	models.Opposition:  "%s opposite natal %s: tensions around these themes reach full visibility and ask for balance.",
	models.Square:      "%s square natal %s: friction around these themes forces adjustment and growth.",
}

// describeTransit returns the curated reading when one exists, else a
// per-aspect template.
func describeTransit(transit, natal models.Body, aspect models.AspectType) string {
	if text, ok := transitReadings[transitKey{transit, natal, aspect}]; ok {
		return text
	}
	tmpl, ok := genericReadings[aspect]
	if !ok {
		tmpl = "%s in aspect to natal %s: the themes of these bodies interact."
	}
	return fmt.Sprintf(tmpl, titleBody(transit), titleBody(natal))
}

func titleBody(b models.Body) string {
	s := string(b)
	if s == "" {
		return s
	}
	switch b {
	case models.MC:
		return "Midheaven"
	case models.NorthNode:
		return "North Node"
	case models.SouthNode:
		return "South Node"
	case models.PartOfFortune:
		return "Part of Fortune"
	}
	return string(s[0]-'a'+'A') + s[1:]
}
