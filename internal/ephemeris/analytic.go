package ephemeris

import (
	"math"

	"AstroEngine/internal/domain/models"
)

const kmPerAU = 149597870.7

// AnalyticSource computes positions from closed-form series and mean
// orbital elements, with no external data files. Accuracy is on the
// order of arcminutes for the Sun and Moon and a fraction of a degree
// for the planets over roughly 1800-2050, which is sufficient for
// sign, house and aspect work at the orbs used here.
type AnalyticSource struct{}

// NewAnalyticSource returns the built-in fallback source.
func NewAnalyticSource() *AnalyticSource { return &AnalyticSource{} }

func (s *AnalyticSource) Name() string { return "analytic" }

// State implements Source. Longitude speed is derived from a one-day
// central difference, which also determines the retrograde flag.
func (s *AnalyticSource) State(jd float64, body models.Body) (BodyState, error) {
	lon, lat, dist, err := s.position(jd, body)
	if err != nil {
		return BodyState{}, err
	}
	before, _, _, _ := s.position(jd-0.5, body)
	after, _, _, _ := s.position(jd+0.5, body)
	return BodyState{
		Longitude: lon,
		Latitude:  lat,
		Distance:  dist,
		Speed:     signedArc(before, after),
	}, nil
}

func (s *AnalyticSource) position(jd float64, body models.Body) (lon, lat, dist float64, err error) {
	switch body {
	case models.Sun:
		lon, dist = solarPosition(jd)
		return lon, 0, dist, nil
	case models.Moon:
		lon, lat, dist = lunarPosition(jd)
		return lon, lat, dist, nil
	case models.NorthNode:
		return meanLunarNode(jd), 0, 0.00257, nil
	case models.Mercury, models.Venus, models.Mars, models.Jupiter,
		models.Saturn, models.Uranus, models.Neptune, models.Pluto,
		models.Chiron:
		lon, lat, dist = planetPosition(jd, body)
		return lon, lat, dist, nil
	}
	return 0, 0, 0, &models.UnknownBodyError{Name: string(body)}
}

// solarPosition returns the geocentric apparent-ish longitude of the
// Sun and its distance in AU, from the low-precision solar theory.
func solarPosition(jd float64) (lon, dist float64) {
	t := Centuries(jd)
	l0 := 280.46646 + 36000.76983*t + 0.0003032*t*t
	m := 357.52911 + 35999.05029*t - 0.0001537*t*t
	e := 0.016708634 - 0.000042037*t - 0.0000001267*t*t

	c := (1.914602-0.004817*t-0.000014*t*t)*sind(m) +
		(0.019993-0.000101*t)*sind(2*m) +
		0.000289*sind(3*m)

	nu := m + c
	dist = 1.000001018 * (1 - e*e) / (1 + e*cosd(nu))
	return norm360(l0 + c), dist
}

// lunarPosition evaluates a truncated lunar series: the dominant
// periodic terms of the modern lunar theory, enough for a couple of
// arcminutes in longitude.
func lunarPosition(jd float64) (lon, lat, dist float64) {
	t := Centuries(jd)

	lp := 218.3164477 + 481267.88123421*t - 0.0015786*t*t + t*t*t/538841
	d := 297.8501921 + 445267.1114034*t - 0.0018819*t*t + t*t*t/545868
	m := 357.5291092 + 35999.0502909*t - 0.0001536*t*t
	mp := 134.9633964 + 477198.8675055*t + 0.0087414*t*t + t*t*t/69699
	f := 93.2720950 + 483202.0175233*t - 0.0036539*t*t

	dl := 6.288774*sind(mp) +
		1.274027*sind(2*d-mp) +
		0.658314*sind(2*d) +
		0.213618*sind(2*mp) -
		0.185116*sind(m) -
		0.114332*sind(2*f) +
		0.058793*sind(2*d-2*mp) +
		0.057066*sind(2*d-m-mp) +
		0.053322*sind(2*d+mp) +
		0.045758*sind(2*d-m) -
		0.040923*sind(m-mp) -
		0.034720*sind(d) -
		0.030383*sind(m+mp) +
		0.015327*sind(2*d-2*f) -
		0.012528*sind(mp+2*f) +
		0.010980*sind(mp-2*f)

	lat = 5.128122*sind(f) +
		0.280602*sind(mp+f) +
		0.277693*sind(mp-f) +
		0.173237*sind(2*d-f) +
		0.055413*sind(2*d-mp+f) +
		0.046271*sind(2*d-mp-f) +
		0.032573*sind(2*d+f) +
		0.017198*sind(2*mp+f)

	distKM := 385000.56 -
		20905.355*cosd(mp) -
		3699.111*cosd(2*d-mp) -
		2955.968*cosd(2*d) -
		569.925*cosd(2*mp)

	return norm360(lp + dl), lat, distKM / kmPerAU
}

// meanLunarNode returns the mean ascending node of the lunar orbit.
// The mean node regresses at roughly -0.053 degrees/day, so the
// derived speed marks it retrograde, matching convention.
func meanLunarNode(jd float64) float64 {
	t := Centuries(jd)
	omega := 125.0445479 - 1934.1362891*t + 0.0020754*t*t + t*t*t/467441
	return norm360(omega)
}

// kepElements are mean Keplerian elements at J2000 with linear rates
// per Julian century. Angles in degrees, semi-major axis in AU.
type kepElements struct {
	a, e, i, l, peri, node       float64
	da, de, di, dl, dperi, dnode float64
}

// planetElements follow the standard approximate-position element set
// fitted for 1800-2050. Chiron uses fixed osculating elements near
// J2000 with only a mean-longitude rate, which drifts slowly over
// decades but stays within a degree or two through the fit interval.
var planetElements = map[models.Body]kepElements{
	models.Mercury: {
		a: 0.38709927, e: 0.20563593, i: 7.00497902, l: 252.25032350, peri: 77.45779628, node: 48.33076593,
		da: 0.00000037, de: 0.00001906, di: -0.00594749, dl: 149472.67411175, dperi: 0.16047689, dnode: -0.12534081,
	},
	models.Venus: {
		a: 0.72333566, e: 0.00677672, i: 3.39467605, l: 181.97909950, peri: 131.60246718, node: 76.67984255,
		da: 0.00000390, de: -0.00004107, di: -0.00078890, dl: 58517.81538729, dperi: 0.00268329, dnode: -0.27769418,
	},
	models.Mars: {
		a: 1.52371034, e: 0.09339410, i: 1.84969142, l: -4.55343205, peri: -23.94362959, node: 49.55953891,
		da: 0.00001847, de: 0.00007882, di: -0.00813131, dl: 19140.30268499, dperi: 0.44441088, dnode: -0.29257343,
	},
	models.Jupiter: {
		a: 5.20288700, e: 0.04838624, i: 1.30439695, l: 34.39644051, peri: 14.72847983, node: 100.47390909,
		da: -0.00011607, de: -0.00013253, di: -0.00183714, dl: 3034.74612775, dperi: 0.21252668, dnode: 0.20469106,
	},
	models.Saturn: {
		a: 9.53667594, e: 0.05386179, i: 2.48599187, l: 49.95424423, peri: 92.59887831, node: 113.66242448,
		da: -0.00125060, de: -0.00050991, di: 0.00193609, dl: 1222.49362201, dperi: -0.41897216, dnode: -0.28867794,
	},
	models.Uranus: {
		a: 19.18916464, e: 0.04725744, i: 0.77263783, l: 313.23810451, peri: 170.95427630, node: 74.01692503,
		da: -0.00196176, de: -0.00004397, di: -0.00242939, dl: 428.48202785, dperi: 0.40805281, dnode: 0.04240589,
	},
	models.Neptune: {
		a: 30.06992276, e: 0.00859048, i: 1.77004347, l: -55.12002969, peri: 44.96476227, node: 131.78422574,
		da: 0.00026291, de: 0.00005105, di: 0.00035372, dl: 218.45945325, dperi: -0.32241464, dnode: -0.00508664,
	},
	models.Pluto: {
		a: 39.48211675, e: 0.24882730, i: 17.14001206, l: 238.92903833, peri: 224.06891629, node: 110.30393684,
		da: -0.00031596, de: 0.00005170, di: 0.00004818, dl: 145.20780515, dperi: -0.04062942, dnode: -0.01183482,
	},
	models.Chiron: {
		a: 13.6703, e: 0.38308, i: 6.9352, l: 216.5, peri: 188.94, node: 209.38,
		dl: 712.45,
	},
}

// earthElements are for the Earth-Moon barycenter, used to shift
// heliocentric planet vectors to the geocenter.
var earthElements = kepElements{
	a: 1.00000261, e: 0.01671123, i: -0.00001531, l: 100.46457166, peri: 102.93768193, node: 0.0,
	da: 0.00000562, de: -0.00004392, di: -0.01294668, dl: 35999.37244981, dperi: 0.32327364, dnode: 0.0,
}

// planetPosition computes geocentric ecliptic coordinates of a planet
// from its mean elements and the Earth's.
func planetPosition(jd float64, body models.Body) (lon, lat, dist float64) {
	t := Centuries(jd)
	px, py, pz := heliocentric(planetElements[body], t)
	ex, ey, ez := heliocentric(earthElements, t)

	gx, gy, gz := px-ex, py-ey, pz-ez
	lon = norm360(atan2d(gy, gx))
	lat = atan2d(gz, math.Hypot(gx, gy))
	dist = math.Sqrt(gx*gx + gy*gy + gz*gz)
	return
}

// heliocentric evaluates one element set at time t (Julian centuries
// from J2000) and returns heliocentric ecliptic rectangular
// coordinates in AU.
func heliocentric(el kepElements, t float64) (x, y, z float64) {
	a := el.a + el.da*t
	e := el.e + el.de*t
	inc := el.i + el.di*t
	l := el.l + el.dl*t
	peri := el.peri + el.dperi*t
	node := el.node + el.dnode*t

	m := norm360(l - peri)
	if m > 180 {
		m -= 360
	}
	ecc := solveKepler(m, e)

	xp := a * (cosd(ecc) - e)
	yp := a * math.Sqrt(1-e*e) * sind(ecc)

	w := peri - node
	cw, sw := cosd(w), sind(w)
	cn, sn := cosd(node), sind(node)
	ci, si := cosd(inc), sind(inc)

	x = (cw*cn-sw*sn*ci)*xp + (-sw*cn-cw*sn*ci)*yp
	y = (cw*sn+sw*cn*ci)*xp + (-sw*sn+cw*cn*ci)*yp
	z = (sw*si)*xp + (cw*si)*yp
	return
}

// solveKepler solves E - e*sin(E) = M for the eccentric anomaly by
// Newton iteration. M in degrees, e dimensionless.
func solveKepler(m, e float64) float64 {
	eStar := rad2deg * e
	ecc := m + eStar*sind(m)
	for i := 0; i < 10; i++ {
		dm := m - (ecc - eStar*sind(ecc))
		de := dm / (1 - e*cosd(ecc))
		ecc += de
		if math.Abs(de) < 1e-7 {
			break
		}
	}
	return ecc
}
