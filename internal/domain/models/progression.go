package models

// ProgressionMethod selects one of the four time-mapping techniques.
type ProgressionMethod string

const (
	Secondary ProgressionMethod = "secondary"
	Tertiary  ProgressionMethod = "tertiary"
	SolarArc  ProgressionMethod = "solar_arc"
	Minor     ProgressionMethod = "minor"
)

// ValidProgressionMethod reports whether m names a supported method.
func ValidProgressionMethod(m ProgressionMethod) bool {
	switch m {
	case Secondary, Tertiary, SolarArc, Minor:
		return true
	}
	return false
}

// ProgressionMapping records how a real target date was mapped to a
// virtual instant (or, for solar arc, to a uniform angular offset).
type ProgressionMapping struct {
	Method     ProgressionMethod `json:"method"`
	BirthJD    float64           `json:"birth_jd"`
	TargetDate string            `json:"target_date"`
	VirtualJD  float64           `json:"virtual_jd"`
	SolarArc   float64           `json:"solar_arc,omitempty"` // degrees, solar_arc only
}

// ProgressedChart is the result of one progression request.
type ProgressedChart struct {
	Mapping   ProgressionMapping `json:"mapping"`
	Positions PositionSet        `json:"positions"`
	Houses    *HouseCuspSet      `json:"houses,omitempty"`
}

// ProgressionSample is one entry in a progression timeline.
type ProgressionSample struct {
	Date      string                      `json:"date"`
	Positions map[Body]ProgressedPosition `json:"positions"`
}

// ProgressedPosition is the timeline view of one tracked body.
type ProgressedPosition struct {
	Sign       Sign    `json:"sign"`
	Degree     float64 `json:"degree"`
	Retrograde bool    `json:"retrograde"`
	Ingress    bool    `json:"ingress"`
}
