package models

// AspectType names an angular relationship between two bodies.
type AspectType string

const (
	Conjunction    AspectType = "conjunction"
	Opposition     AspectType = "opposition"
	Trine          AspectType = "trine"
	Square         AspectType = "square"
	Sextile        AspectType = "sextile"
	Quincunx       AspectType = "quincunx"
	SemiSextile    AspectType = "semi_sextile"
	SemiSquare     AspectType = "semi_square"
	Sesquiquadrate AspectType = "sesquiquadrate"
	Quintile       AspectType = "quintile"
)

// MajorAspects are the five Ptolemaic aspects, the default working set.
var MajorAspects = []AspectType{Conjunction, Opposition, Trine, Square, Sextile}

// AspectMatch is one detected angular relationship within orb.
type AspectMatch struct {
	Body1     Body       `json:"body1"`
	Body2     Body       `json:"body2"`
	Type      AspectType `json:"type"`
	Angle     float64    `json:"angle"` // ideal angle of the aspect type
	Orb       float64    `json:"orb"`   // measured deviation, >= 0
	Applying  bool       `json:"applying"`
	Influence float64    `json:"influence"` // 1 - orb/maxOrb, in [0,1]
	ExactDate string     `json:"exact_date,omitempty"`
}

// Transit is an aspect between a moving body and a fixed natal position.
type Transit struct {
	TransitBody Body       `json:"transit_body"`
	NatalBody   Body       `json:"natal_body"`
	Aspect      AspectType `json:"aspect"`
	Orb         float64    `json:"orb"`
	Applying    bool       `json:"applying"`
	Influence   float64    `json:"influence"`
	TransitSign Sign       `json:"transit_sign"`
	Retrograde  bool       `json:"retrograde"`
	ExactDate   string     `json:"exact_date,omitempty"`
	Description string     `json:"description,omitempty"`
}
