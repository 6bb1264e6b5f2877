package models

import "time"

// Element is one of the four classical elements.
type Element string

const (
	Fire  Element = "fire"
	Earth Element = "earth"
	Air   Element = "air"
	Water Element = "water"
)

// Modality is one of the three sign qualities.
type Modality string

const (
	Cardinal Modality = "cardinal"
	Fixed    Modality = "fixed"
	Mutable  Modality = "mutable"
)

// SignTrait couples a sign with its element and modality.
type SignTrait struct {
	Element  Element
	Modality Modality
}

// DefaultSignTraits returns the immutable sign property table. Callers
// pass it into component constructors; it is never mutated.
func DefaultSignTraits() map[Sign]SignTrait {
	return map[Sign]SignTrait{
		Aries:       {Fire, Cardinal},
		Taurus:      {Earth, Fixed},
		Gemini:      {Air, Mutable},
		Cancer:      {Water, Cardinal},
		Leo:         {Fire, Fixed},
		Virgo:       {Earth, Mutable},
		Libra:       {Air, Cardinal},
		Scorpio:     {Water, Fixed},
		Sagittarius: {Fire, Mutable},
		Capricorn:   {Earth, Cardinal},
		Aquarius:    {Air, Fixed},
		Pisces:      {Water, Mutable},
	}
}

// ElementBalance holds weighted element percentages summing to 100
// (all zero when no weighted bodies are present).
type ElementBalance struct {
	Fire  float64 `json:"fire"`
	Earth float64 `json:"earth"`
	Air   float64 `json:"air"`
	Water float64 `json:"water"`
}

// ModalityBalance holds weighted modality percentages.
type ModalityBalance struct {
	Cardinal float64 `json:"cardinal"`
	Fixed    float64 `json:"fixed"`
	Mutable  float64 `json:"mutable"`
}

// Dignity names a body's essential dignity in its sign.
type Dignity string

const (
	Rulership  Dignity = "rulership"
	Exaltation Dignity = "exaltation"
	Detriment  Dignity = "detriment"
	Fall       Dignity = "fall"
)

// ChartSummary is the one-line reading of a chart.
type ChartSummary struct {
	SunSign          string `json:"sun_sign"`
	MoonSign         string `json:"moon_sign"`
	Ascendant        string `json:"ascendant,omitempty"`
	DominantElement  string `json:"dominant_element,omitempty"`
	DominantModality string `json:"dominant_modality,omitempty"`
}

// Chart is a fully assembled natal chart.
type Chart struct {
	ID        string           `json:"chart_id"`
	CreatedAt time.Time        `json:"created_at"`
	Birth     Instant          `json:"birth"`
	Latitude  float64          `json:"latitude"`
	Longitude float64          `json:"longitude"`
	Planets   PositionSet      `json:"planets"`
	Houses    *HouseCuspSet    `json:"houses,omitempty"`
	Aspects   []AspectMatch    `json:"aspects,omitempty"`
	Elements  *ElementBalance  `json:"element_balance,omitempty"`
	Modality  *ModalityBalance `json:"modality_balance,omitempty"`
	Dignities map[Body]Dignity `json:"dignities,omitempty"`
	Summary   *ChartSummary    `json:"summary,omitempty"`
}
