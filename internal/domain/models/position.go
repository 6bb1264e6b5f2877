package models

import "math"

// Body identifies a celestial body or derived chart point.
type Body string

const (
	Sun           Body = "sun"
	Moon          Body = "moon"
	Mercury       Body = "mercury"
	Venus         Body = "venus"
	Mars          Body = "mars"
	Jupiter       Body = "jupiter"
	Saturn        Body = "saturn"
	Uranus        Body = "uranus"
	Neptune       Body = "neptune"
	Pluto         Body = "pluto"
	Chiron        Body = "chiron"
	NorthNode     Body = "north_node"
	SouthNode     Body = "south_node"
	Ascendant     Body = "ascendant"
	MC            Body = "mc"
	Vertex        Body = "vertex"
	PartOfFortune Body = "part_of_fortune"
)

// StandardBodies is the default body set for chart calculations, in
// traditional order.
var StandardBodies = []Body{
	Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn,
	Uranus, Neptune, Pluto, NorthNode, SouthNode, Chiron,
}

// ChartAngles are the derived points a chart carries alongside the
// computed bodies. They appear in natal position maps but no ephemeris
// source computes them directly.
var ChartAngles = []Body{Ascendant, MC, Vertex, PartOfFortune}

// Sign is a zodiac sign index, 0 (Aries) through 11 (Pisces).
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

var signNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer",
	"Leo", "Virgo", "Libra", "Scorpio",
	"Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

func (s Sign) String() string {
	if s < 0 || s > 11 {
		return "Unknown"
	}
	return signNames[s]
}

// MarshalJSON renders the sign by name.
func (s Sign) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// SignOf maps an ecliptic longitude to its zodiac sign. Longitudes are
// normalized first, so inputs just under 360 resolve to Pisces, never out
// of range.
func SignOf(longitude float64) Sign {
	lon := NormalizeDegrees(longitude)
	idx := int(lon/30) % 12
	return Sign(idx)
}

// DegreeInSign returns the degree within the sign, [0,30).
func DegreeInSign(longitude float64) float64 {
	lon := NormalizeDegrees(longitude)
	d := lon - float64(int(lon/30))*30
	if d < 0 {
		d = 0
	}
	return d
}

// NormalizeDegrees wraps an angle into [0,360).
func NormalizeDegrees(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d = 0
	}
	return d
}

// AngularSeparation is the shortest angular distance between two
// longitudes, in [0,180].
func AngularSeparation(lon1, lon2 float64) float64 {
	d := NormalizeDegrees(lon1 - lon2)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// SignedArc is the shortest signed arc from one longitude to another,
// in (-180, 180]. Positive means the target lies ahead in zodiacal
// order.
func SignedArc(from, to float64) float64 {
	d := NormalizeDegrees(to - from)
	if d > 180 {
		d -= 360
	}
	return d
}

// CelestialPosition is an immutable snapshot of a body at one instant.
type CelestialPosition struct {
	Body       Body    `json:"body"`
	Longitude  float64 `json:"longitude"`
	Latitude   float64 `json:"latitude"`
	Distance   float64 `json:"distance"`
	Speed      float64 `json:"speed"` // daily motion in longitude, signed
	Sign       Sign    `json:"sign"`
	Degree     float64 `json:"degree"`
	House      int     `json:"house,omitempty"` // 1-12, 0 when unknown
	Retrograde bool    `json:"retrograde"`
}

// PositionSet maps bodies to full positions.
type PositionSet map[Body]CelestialPosition

// Longitudes reduces a position set to the bare body->longitude mapping
// consumed by the aspect engine.
func (ps PositionSet) Longitudes() map[Body]float64 {
	out := make(map[Body]float64, len(ps))
	for b, p := range ps {
		out[b] = p.Longitude
	}
	return out
}

// Speeds reduces a position set to the body->daily motion mapping.
func (ps PositionSet) Speeds() map[Body]float64 {
	out := make(map[Body]float64, len(ps))
	for b, p := range ps {
		out[b] = p.Speed
	}
	return out
}
