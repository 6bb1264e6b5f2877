package ephemeris

import (
	"math"

	"AstroEngine/internal/domain/models"
)

// HouseSystem identifies a supported division scheme.
type HouseSystem string

const (
	Placidus      HouseSystem = "placidus"
	Koch          HouseSystem = "koch"
	WholeSign     HouseSystem = "whole_sign"
	Equal         HouseSystem = "equal"
	Porphyry      HouseSystem = "porphyry"
	Campanus      HouseSystem = "campanus"
	Regiomontanus HouseSystem = "regiomontanus"
)

// polarLimit is the latitude beyond which the semi-arc systems
// (Placidus, Koch) degenerate; above it we fall back to Porphyry.
const polarLimit = 66.5

// ParseHouseSystem maps a request identifier to a HouseSystem.
func ParseHouseSystem(name string) (HouseSystem, error) {
	switch HouseSystem(name) {
	case Placidus, Koch, WholeSign, Equal, Porphyry, Campanus, Regiomontanus:
		return HouseSystem(name), nil
	}
	return "", &models.UnknownHouseSystemError{Name: name}
}

// Obliquity returns the mean obliquity of the ecliptic in degrees.
func Obliquity(jd float64) float64 {
	t := Centuries(jd)
	return 23.43929111 - 0.01300417*t - 1.64e-7*t*t + 5.04e-7*t*t*t
}

// GMST returns Greenwich mean sidereal time in degrees.
func GMST(jd float64) float64 {
	t := Centuries(jd)
	theta := 280.46061837 + 360.98564736629*(jd-J2000) +
		0.000387933*t*t - t*t*t/38710000
	return norm360(theta)
}

// ARMC is the right ascension of the local meridian: sidereal time at
// the observer's longitude (east positive), in degrees.
func ARMC(jd, geoLon float64) float64 {
	return norm360(GMST(jd) + geoLon)
}

// ascendantAt computes the ecliptic longitude rising on the eastern
// horizon for a given meridian and latitude.
func ascendantAt(armc, lat, eps float64) float64 {
	return norm360(atan2d(cosd(armc), -(sind(armc)*cosd(eps) + tand(lat)*sind(eps))))
}

// midheavenAt computes the ecliptic longitude culminating on the
// meridian.
func midheavenAt(armc, eps float64) float64 {
	return norm360(atan2d(sind(armc), cosd(armc)*cosd(eps)))
}

// vertexAt computes the Vertex, the western intersection of the prime
// vertical with the ecliptic. It is the ascendant formula evaluated
// with the co-latitude and the anti-meridian.
func vertexAt(armc, lat, eps float64) float64 {
	return ascendantAt(norm360(armc+180), 90-lat, eps)
}

// eclLonOfRA returns the ecliptic longitude of the ecliptic point
// whose right ascension is ra.
func eclLonOfRA(ra, eps float64) float64 {
	return norm360(atan2d(sind(ra), cosd(ra)*cosd(eps)))
}

// Houses computes the twelve cusps plus angles for one instant and
// place. fellBack reports that a semi-arc system was replaced by
// Porphyry because the latitude is beyond the polar limit.
func Houses(jd, lat, lon float64, system HouseSystem) (models.HouseCuspSet, bool, error) {
	if err := models.ValidCoordinates(lat, lon); err != nil {
		return models.HouseCuspSet{}, false, err
	}

	armc := ARMC(jd, lon)
	eps := Obliquity(jd)
	asc := ascendantAt(armc, lat, eps)
	mc := midheavenAt(armc, eps)

	fellBack := false
	effective := system
	if (system == Placidus || system == Koch) && math.Abs(lat) >= polarLimit {
		effective = Porphyry
		fellBack = true
	}

	var cusps [13]float64
	switch effective {
	case WholeSign:
		start := math.Floor(asc/30) * 30
		for i := 1; i <= 12; i++ {
			cusps[i] = norm360(start + float64(i-1)*30)
		}
	case Equal:
		for i := 1; i <= 12; i++ {
			cusps[i] = norm360(asc + float64(i-1)*30)
		}
	case Porphyry:
		cusps = porphyryCusps(asc, mc)
	case Placidus:
		cusps = placidusCusps(armc, lat, eps, asc, mc)
	case Koch:
		cusps = kochCusps(armc, lat, eps, asc, mc)
	case Campanus:
		cusps = campanusCusps(armc, lat, eps, asc, mc)
	case Regiomontanus:
		cusps = regiomontanusCusps(armc, lat, eps, asc, mc)
	default:
		return models.HouseCuspSet{}, false, &models.UnknownHouseSystemError{Name: string(system)}
	}

	set := models.HouseCuspSet{
		System:    string(system),
		Ascendant: asc,
		Midheaven: mc,
		Vertex:    vertexAt(armc, lat, eps),
	}
	for i := 1; i <= 12; i++ {
		set.Cusps[i] = models.NewHouseCusp(cusps[i])
	}
	return set, fellBack, nil
}

// porphyryCusps trisects each quadrant between the angles.
func porphyryCusps(asc, mc float64) [13]float64 {
	var c [13]float64
	ic := norm360(mc + 180)
	dayArc := norm360(asc - mc)    // MC -> Asc
	nightArc := norm360(ic - asc)  // Asc -> IC

	c[10] = mc
	c[11] = norm360(mc + dayArc/3)
	c[12] = norm360(mc + 2*dayArc/3)
	c[1] = asc
	c[2] = norm360(asc + nightArc/3)
	c[3] = norm360(asc + 2*nightArc/3)
	fillOpposites(&c)
	return c
}

// placidusCusps finds the intermediate cusps by iterating on the
// proportional semi-arc condition. Converges quickly below the polar
// limit.
func placidusCusps(armc, lat, eps, asc, mc float64) [13]float64 {
	var c [13]float64
	c[10] = mc
	c[1] = asc
	c[11] = placidusIterate(armc, lat, eps, 1.0/3.0, false)
	c[12] = placidusIterate(armc, lat, eps, 2.0/3.0, false)
	c[2] = placidusIterate(armc, lat, eps, 2.0/3.0, true)
	c[3] = placidusIterate(armc, lat, eps, 1.0/3.0, true)
	fillOpposites(&c)
	return c
}

// placidusIterate solves for the cusp whose diurnal (or nocturnal)
// semi-arc fraction equals f.
func placidusIterate(armc, lat, eps, f float64, nocturnal bool) float64 {
	var ra float64
	if nocturnal {
		ra = armc + 180 - 90*f
	} else {
		ra = armc + 90*f
	}
	lambda := eclLonOfRA(ra, eps)
	for i := 0; i < 30; i++ {
		dec := asind(sind(eps) * sind(lambda))
		x := tand(lat) * tand(dec)
		if x > 1 {
			x = 1
		} else if x < -1 {
			x = -1
		}
		ad := asind(x)
		if nocturnal {
			ra = armc + 180 - (90-ad)*f
		} else {
			ra = armc + (90+ad)*f
		}
		next := eclLonOfRA(ra, eps)
		if math.Abs(signedArc(lambda, next)) < 1e-7 {
			lambda = next
			break
		}
		lambda = next
	}
	return norm360(lambda)
}

// kochCusps takes the ascendant at times when the MC degree has swept
// equal thirds of its own semi-arc.
func kochCusps(armc, lat, eps, asc, mc float64) [13]float64 {
	var c [13]float64
	decMC := asind(sind(eps) * sind(mc))
	x := tand(lat) * tand(decMC)
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}
	ad := asind(x)
	sda := 90 + ad
	sna := 90 - ad

	c[10] = mc
	c[11] = ascendantAt(norm360(armc-2*sda/3), lat, eps)
	c[12] = ascendantAt(norm360(armc-sda/3), lat, eps)
	c[1] = asc
	c[2] = ascendantAt(norm360(armc+sna/3), lat, eps)
	c[3] = ascendantAt(norm360(armc+2*sna/3), lat, eps)
	fillOpposites(&c)
	return c
}

// campanusCusps divides the prime vertical into equal 30 degree lunes
// bounded by great circles through the north and south horizon points.
func campanusCusps(armc, lat, eps, asc, mc float64) [13]float64 {
	var c [13]float64
	c[1] = asc
	c[10] = mc
	// alpha measured from the east point up the prime vertical
	c[12] = houseCircleCusp(armc, lat, eps, 30, true)
	c[11] = houseCircleCusp(armc, lat, eps, 60, true)
	c[9] = houseCircleCusp(armc, lat, eps, 120, true)
	c[8] = houseCircleCusp(armc, lat, eps, 150, true)
	c[2] = norm360(c[8] + 180)
	c[3] = norm360(c[9] + 180)
	fillOpposites(&c)
	return c
}

// regiomontanusCusps divides the celestial equator into equal arcs
// from the east point, with the same polar house circles.
func regiomontanusCusps(armc, lat, eps, asc, mc float64) [13]float64 {
	var c [13]float64
	c[1] = asc
	c[10] = mc
	c[11] = houseCircleCusp(armc, lat, eps, 30, false)
	c[12] = houseCircleCusp(armc, lat, eps, 60, false)
	c[2] = houseCircleCusp(armc, lat, eps, 120, false)
	c[3] = houseCircleCusp(armc, lat, eps, 150, false)
	fillOpposites(&c)
	return c
}

// houseCircleCusp intersects one polar house circle with the ecliptic.
// The circle passes through the north and south points of the horizon
// and through a reference direction: a point alpha degrees up the
// prime vertical from the east point (Campanus), or the equator point
// alpha degrees of right ascension past the meridian (Regiomontanus).
// Of the two ecliptic intersections the one on the reference side is
// returned.
func houseCircleCusp(armc, lat, eps, alpha float64, primeVertical bool) float64 {
	st, ct := sind(armc), cosd(armc)
	sp, cp := sind(lat), cosd(lat)

	// equatorial frame unit vectors of the local horizon
	north := [3]float64{-sp * ct, -sp * st, cp}
	east := [3]float64{-st, ct, 0}
	up := [3]float64{cp * ct, cp * st, sp}

	var ref [3]float64
	if primeVertical {
		ca, sa := cosd(alpha), sind(alpha)
		for i := 0; i < 3; i++ {
			ref[i] = east[i]*ca + up[i]*sa
		}
	} else {
		ra := armc + alpha
		ref = [3]float64{cosd(ra), sind(ra), 0}
	}

	// plane normal spanned by the polar axis of the circle family
	n := [3]float64{
		north[1]*ref[2] - north[2]*ref[1],
		north[2]*ref[0] - north[0]*ref[2],
		north[0]*ref[1] - north[1]*ref[0],
	}

	// ecliptic point: e(lambda) = (cos, sin*cos eps, sin*sin eps)
	lambda := atan2d(-n[0], n[1]*cosd(eps)+n[2]*sind(eps))
	e := [3]float64{cosd(lambda), sind(lambda) * cosd(eps), sind(lambda) * sind(eps)}
	if e[0]*ref[0]+e[1]*ref[1]+e[2]*ref[2] < 0 {
		lambda += 180
	}
	return norm360(lambda)
}

// fillOpposites completes cusps 4..9 from their opposites.
func fillOpposites(c *[13]float64) {
	c[4] = norm360(c[10] + 180)
	c[5] = norm360(c[11] + 180)
	c[6] = norm360(c[12] + 180)
	c[7] = norm360(c[1] + 180)
	c[8] = norm360(c[2] + 180)
	c[9] = norm360(c[3] + 180)
}
