package models

// HouseCusp is one house boundary on the ecliptic circle.
type HouseCusp struct {
	Longitude float64 `json:"longitude"`
	Sign      Sign    `json:"sign"`
	Degree    float64 `json:"degree"`
}

// NewHouseCusp derives sign and degree from a cusp longitude.
func NewHouseCusp(longitude float64) HouseCusp {
	lon := NormalizeDegrees(longitude)
	return HouseCusp{
		Longitude: lon,
		Sign:      SignOf(lon),
		Degree:    DegreeInSign(lon),
	}
}

// HouseCuspSet holds the twelve cusps plus the angular points for one
// instant and location. Cusps are indexed 1-12; index 0 is unused.
type HouseCuspSet struct {
	System    string        `json:"system"`
	Cusps     [13]HouseCusp `json:"cusps"`
	Ascendant float64       `json:"ascendant"`
	Midheaven float64       `json:"midheaven"`
	Vertex    float64       `json:"vertex"`
}

// HouseOf returns the 1-based house containing the given longitude,
// handling cusp pairs that straddle 0 degrees.
func (h *HouseCuspSet) HouseOf(longitude float64) int {
	lon := NormalizeDegrees(longitude)
	for i := 1; i <= 12; i++ {
		next := i%12 + 1
		lo := h.Cusps[i].Longitude
		hi := h.Cusps[next].Longitude
		if lo <= hi {
			if lon >= lo && lon < hi {
				return i
			}
		} else if lon >= lo || lon < hi {
			return i
		}
	}
	return 1
}
