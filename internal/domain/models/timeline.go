package models

// TimelineEvent is one dated entry in a transit timeline. Events are
// ordered by date ascending and deduplicated by (date, transit body,
// natal body, aspect).
type TimelineEvent struct {
	Date         string     `json:"date"` // YYYY-MM-DD
	TransitBody  Body       `json:"transit_body"`
	NatalBody    Body       `json:"natal_body"`
	Aspect       AspectType `json:"aspect"`
	Applying     bool       `json:"applying"`
	Retrograde   bool       `json:"retrograde"`
	Orb          float64    `json:"orb"`
	Description  string     `json:"description,omitempty"`
	Significance string     `json:"significance,omitempty"`
}

// Key identifies the event for deduplication.
func (e TimelineEvent) Key() string {
	return e.Date + "|" + string(e.TransitBody) + "|" + string(e.NatalBody) + "|" + string(e.Aspect)
}

// ExactAspectEvent marks a day on which a tracked aspect is exact to
// within the daily sampling resolution.
type ExactAspectEvent struct {
	Date            string     `json:"date"`
	Body1           Body       `json:"body1"`
	Body2           Body       `json:"body2"`
	Aspect          AspectType `json:"aspect"`
	Orb             float64    `json:"orb"`
	Body1Sign       Sign       `json:"body1_sign"`
	Body2Sign       Sign       `json:"body2_sign"`
	Body1Retrograde bool       `json:"body1_retrograde"`
	Body2Retrograde bool       `json:"body2_retrograde"`
}

// IngressEvent records a body crossing into a new zodiac sign between
// two consecutive samples.
type IngressEvent struct {
	Date       string  `json:"date"`
	Body       Body    `json:"body"`
	Sign       Sign    `json:"sign"`
	Degree     float64 `json:"degree"`
	Retrograde bool    `json:"retrograde"`
}

// PositionSample is one entry of a position-range scan.
type PositionSample struct {
	Date       string  `json:"date"`
	Longitude  float64 `json:"longitude"`
	Sign       Sign    `json:"sign"`
	Degree     float64 `json:"degree"`
	Speed      float64 `json:"speed"`
	Retrograde bool    `json:"retrograde"`
}

// Forecast bundles the events of a multi-year transit scan.
type Forecast struct {
	StartDate  string          `json:"start_date"`
	EndDate    string          `json:"end_date"`
	Transits   []TimelineEvent `json:"transits"`
	LifeEvents []TimelineEvent `json:"life_events"`
}
