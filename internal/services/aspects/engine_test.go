package aspects

import (
	"math"
	"testing"

	"AstroEngine/internal/domain/models"
	"AstroEngine/pkg/logger"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return NewEngine(log)
}

func TestSunMoonTrine(t *testing.T) {
	e := testEngine(t)
	// separation 117.70, trine orb 2.30, influence 1 - 2.3/6
	m, ok := e.Match(models.Sun, models.Moon, 84.83, 202.53, 1.0, 13.0, Options{})
	if !ok {
		t.Fatal("expected a trine")
	}
	if m.Type != models.Trine {
		t.Fatalf("aspect = %s, want trine", m.Type)
	}
	if math.Abs(m.Orb-2.30) > 1e-9 {
		t.Errorf("orb = %.4f, want 2.30", m.Orb)
	}
	if math.Abs(m.Influence-(1-2.30/6)) > 1e-9 {
		t.Errorf("influence = %.4f, want %.4f", m.Influence, 1-2.30/6)
	}
	// inside the ideal angle the heuristic applies only when the first
	// body is the faster one
	if m.Applying {
		t.Error("sun-first trine should read as separating")
	}
}

func TestSmallestOrbWinsAcrossTypes(t *testing.T) {
	e := testEngine(t)
	// 31.5 degrees apart sits within the semi-sextile orb only
	m, ok := e.Match(models.Venus, models.Mars, 10, 41.5, 1.0, 0.5, Options{})
	if !ok {
		t.Fatal("expected an aspect at 31.5 degrees")
	}
	if m.Type != models.SemiSextile {
		t.Errorf("aspect = %s, want semi_sextile", m.Type)
	}

	// with widened orbs a separation of 128 is inside both the trine
	// window (orb 8) and the sesquiquadrate window (orb 7): the
	// smaller measured orb wins
	opts := Options{Orbs: map[models.AspectType]float64{
		models.Trine:          15,
		models.Sesquiquadrate: 15,
	}}
	m, ok = e.Match(models.Venus, models.Mars, 0, 128, 1.0, 0.5, opts)
	if !ok {
		t.Fatal("expected an aspect at 128 degrees")
	}
	if m.Type != models.Sesquiquadrate {
		t.Errorf("aspect = %s, want sesquiquadrate to win on orb", m.Type)
	}
	if math.Abs(m.Orb-7) > 1e-9 {
		t.Errorf("orb = %.4f, want 7", m.Orb)
	}
}

func TestPairYieldsAtMostOneAspect(t *testing.T) {
	e := testEngine(t)
	// 44 degrees: within semi-square orb (45 +/- 2); also 14 degrees
	// from the 30 degree semi-sextile, far outside every other orb
	m, ok := e.Match(models.Sun, models.Mercury, 0, 44, 1.0, 1.0, Options{})
	if !ok {
		t.Fatal("expected semi-square")
	}
	if m.Type != models.SemiSquare {
		t.Errorf("aspect = %s, want semi_square", m.Type)
	}
}

func TestApplyingHeuristic(t *testing.T) {
	e := testEngine(t)
	cases := []struct {
		name           string
		lon1, lon2     float64
		speed1, speed2 float64
		applying       bool
	}{
		// separation 115 < 120 and body1 faster: closing
		{"closing trine", 0, 115, 1.0, 0.1, true},
		// separation 115 < 120 and body1 slower: drifting apart
		{"separating trine", 0, 115, 0.1, 1.0, false},
		// separation 125 > 120 and body1 slower: closing back
		{"closing from beyond", 0, 125, 0.1, 1.0, true},
		// relative speed under the floor: never applying
		{"locked pair", 0, 115, 1.0, 1.0, false},
	}
	for _, tc := range cases {
		m, ok := e.Match(models.Sun, models.Jupiter, tc.lon1, tc.lon2, tc.speed1, tc.speed2, Options{})
		if !ok {
			t.Fatalf("%s: no aspect found", tc.name)
		}
		if m.Applying != tc.applying {
			t.Errorf("%s: applying = %v, want %v", tc.name, m.Applying, tc.applying)
		}
	}
}

func TestComputeOrdersByOrb(t *testing.T) {
	e := testEngine(t)
	positions := map[models.Body]float64{
		models.Sun:     0,
		models.Moon:    120.5, // trine, orb 0.5
		models.Mars:    93,    // square, orb 3
		models.Venus:   181,   // opposition, orb 1
		models.Jupiter: 200,   // no aspect to sun
	}
	matches := e.Compute(positions, nil, Options{Types: models.MajorAspects})
	if len(matches) == 0 {
		t.Fatal("expected aspects")
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Orb < matches[i-1].Orb {
			t.Errorf("matches not ordered by orb at %d: %.3f after %.3f", i, matches[i].Orb, matches[i-1].Orb)
		}
	}
}

func TestComputeRespectsTypeFilter(t *testing.T) {
	e := testEngine(t)
	positions := map[models.Body]float64{
		models.Sun:  0,
		models.Moon: 150.5, // quincunx, orb 0.5
	}
	matches := e.Compute(positions, nil, Options{Types: models.MajorAspects})
	if len(matches) != 0 {
		t.Errorf("quincunx should be filtered out, got %v", matches)
	}
	matches = e.Compute(positions, nil, Options{})
	if len(matches) != 1 || matches[0].Type != models.Quincunx {
		t.Errorf("full set should find the quincunx, got %v", matches)
	}
}

func TestOrbOverrides(t *testing.T) {
	e := testEngine(t)
	opts := Options{Orbs: map[models.AspectType]float64{models.Trine: 1}}
	if _, ok := e.Match(models.Sun, models.Moon, 0, 122, 1.0, 13.0, opts); ok {
		t.Error("trine at orb 2 should be outside the tightened orb 1")
	}
	m, ok := e.Match(models.Sun, models.Moon, 0, 120.5, 1.0, 13.0, opts)
	if !ok {
		t.Fatal("trine at orb 0.5 should pass")
	}
	if math.Abs(m.Influence-0.5) > 1e-9 {
		t.Errorf("influence with overridden orb = %.4f, want 0.5", m.Influence)
	}
}

func TestSynastryCrossesSets(t *testing.T) {
	e := testEngine(t)
	set1 := map[models.Body]float64{models.Sun: 10, models.Moon: 40}
	set2 := map[models.Body]float64{models.Sun: 190, models.Venus: 100}
	matches := e.Synastry(set1, set2, nil, nil, Options{Types: models.MajorAspects})

	// sun-sun opposition and moon-venus sextile must both appear
	var oppFound, sexFound bool
	for _, m := range matches {
		if m.Body1 == models.Sun && m.Body2 == models.Sun && m.Type == models.Opposition {
			oppFound = true
		}
		if m.Body1 == models.Moon && m.Body2 == models.Venus && m.Type == models.Sextile {
			sexFound = true
		}
	}
	if !oppFound || !sexFound {
		t.Errorf("expected cross aspects, got %v", matches)
	}
}

func TestParseAspect(t *testing.T) {
	if _, err := ParseAspect("trine"); err != nil {
		t.Errorf("trine should parse: %v", err)
	}
	if _, err := ParseAspect("novile"); err == nil {
		t.Error("unsupported aspect should be rejected")
	}
}
