package ephemeris

import (
	"errors"
	"math"
	"testing"

	"AstroEngine/internal/domain/models"
)

func TestSolarPosition(t *testing.T) {
	cases := []struct {
		name string
		jd   float64
		want float64 // expected longitude, degrees
		tol  float64
	}{
		{"j2000", JulianDay(2000, 1, 1, 12), 280.37, 0.1},
		{"march equinox 2000", JulianDay(2000, 3, 20, 7.5), 0, 0.1},
		{"june solstice 2000", JulianDay(2000, 6, 21, 1.8), 90, 0.1},
		{"september equinox 2000", JulianDay(2000, 9, 22, 17.5), 180, 0.1},
	}
	for _, tc := range cases {
		lon, _ := solarPosition(tc.jd)
		diff := math.Abs(signedArc(tc.want, lon))
		if diff > tc.tol {
			t.Errorf("%s: sun longitude = %.4f, want %.4f within %.2f", tc.name, lon, tc.want, tc.tol)
		}
	}
}

func TestSolarDistanceNearPerihelion(t *testing.T) {
	// Earth is at perihelion in early January, aphelion in early July.
	_, jan := solarPosition(JulianDay(2000, 1, 3, 0))
	_, jul := solarPosition(JulianDay(2000, 7, 4, 0))
	if jan >= jul {
		t.Errorf("january distance %.5f should be below july distance %.5f", jan, jul)
	}
	if jan < 0.98 || jan > 0.985 {
		t.Errorf("perihelion distance %.5f out of expected band", jan)
	}
}

func TestLunarMotion(t *testing.T) {
	src := NewAnalyticSource()
	jd := JulianDay(1995, 4, 12, 0)
	st, err := src.State(jd, models.Moon)
	if err != nil {
		t.Fatalf("moon state: %v", err)
	}
	if st.Speed < 11 || st.Speed > 16 {
		t.Errorf("moon speed %.3f deg/day outside [11, 16]", st.Speed)
	}
	if math.Abs(st.Latitude) > 5.5 {
		t.Errorf("moon latitude %.3f exceeds orbital inclination band", st.Latitude)
	}

	// one sidereal month later the longitude comes back around
	later, _ := src.State(jd+27.321661, models.Moon)
	if d := math.Abs(signedArc(st.Longitude, later.Longitude)); d > 1.5 {
		t.Errorf("longitude after one sidereal month drifted %.3f deg", d)
	}
}

func TestMeanLunarNode(t *testing.T) {
	if got := meanLunarNode(J2000); math.Abs(got-125.0445479) > 1e-6 {
		t.Errorf("node at J2000 = %.7f, want 125.0445479", got)
	}

	src := NewAnalyticSource()
	st, err := src.State(J2000, models.NorthNode)
	if err != nil {
		t.Fatalf("node state: %v", err)
	}
	if st.Speed >= 0 {
		t.Errorf("mean node speed %.5f should be negative", st.Speed)
	}
	if math.Abs(st.Speed+0.0529539) > 0.003 {
		t.Errorf("mean node speed %.5f far from -0.0529", st.Speed)
	}
}

func TestPlanetRetrogradeEpisodes(t *testing.T) {
	src := NewAnalyticSource()
	cases := []struct {
		name  string
		body  models.Body
		jd    float64
		retro bool
	}{
		{"mars 2003 opposition", models.Mars, JulianDay(2003, 8, 28, 0), true},
		{"mars 2003 spring direct", models.Mars, JulianDay(2003, 3, 1, 0), false},
		{"venus inferior conjunction 2004", models.Venus, JulianDay(2004, 6, 8, 0), true},
		{"jupiter mid 2000 direct", models.Jupiter, JulianDay(2000, 6, 1, 0), false},
	}
	for _, tc := range cases {
		st, err := src.State(tc.jd, tc.body)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if (st.Speed < 0) != tc.retro {
			t.Errorf("%s: speed %.4f, want retrograde=%v", tc.name, st.Speed, tc.retro)
		}
	}
}

func TestPlanetSpeedBands(t *testing.T) {
	src := NewAnalyticSource()
	limits := map[models.Body]float64{
		models.Mercury: 2.3,
		models.Venus:   1.3,
		models.Mars:    0.9,
		models.Jupiter: 0.3,
		models.Saturn:  0.2,
		models.Uranus:  0.1,
		models.Neptune: 0.05,
		models.Pluto:   0.05,
	}
	for body, limit := range limits {
		for _, jd := range []float64{J2000, JulianDay(1980, 5, 1, 0), JulianDay(2030, 11, 15, 0)} {
			st, err := src.State(jd, body)
			if err != nil {
				t.Fatalf("%s: %v", body, err)
			}
			if math.Abs(st.Speed) > limit {
				t.Errorf("%s at jd %.1f: |speed| %.4f exceeds %.2f deg/day", body, jd, math.Abs(st.Speed), limit)
			}
		}
	}
}

func TestSolveKepler(t *testing.T) {
	for _, e := range []float64{0.0167, 0.2056, 0.383} {
		for m := -180.0; m <= 180; m += 30 {
			ecc := solveKepler(m, e)
			residual := ecc - rad2deg*e*sind(ecc) - m
			if math.Abs(residual) > 1e-5 {
				t.Errorf("e=%.4f m=%.0f: residual %.2e", e, m, residual)
			}
		}
	}
}

func TestUnknownBody(t *testing.T) {
	src := NewAnalyticSource()
	_, err := src.State(J2000, models.Body("ceres"))
	if err == nil {
		t.Fatal("expected error for unknown body")
	}
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("error %v should unwrap to ErrInvalidInput", err)
	}
}
