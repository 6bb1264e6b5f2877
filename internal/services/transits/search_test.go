package transits

import (
	"context"
	"errors"
	"math"
	"testing"

	"AstroEngine/internal/domain/models"
	"AstroEngine/internal/ephemeris"
	"AstroEngine/internal/services/aspects"
	"AstroEngine/pkg/logger"
)

func testSearch(t *testing.T) (*Search, *ephemeris.Provider) {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	provider := ephemeris.NewProvider(ephemeris.NewAnalyticSource(), log)
	return NewSearch(provider, aspects.NewEngine(log), log), provider
}

func sunLongitudeOn(t *testing.T, p *ephemeris.Provider, date models.Instant) float64 {
	t.Helper()
	pos, err := p.Position(context.Background(), ephemeris.JulianDayOf(date), models.Sun)
	if err != nil {
		t.Fatalf("sun position: %v", err)
	}
	return pos.Longitude
}

func TestAtFindsSolarReturn(t *testing.T) {
	s, p := testSearch(t)
	birth := models.Instant{Year: 1970, Month: 4, Day: 2, Hour: 12}
	natal := map[models.Body]float64{models.Sun: sunLongitudeOn(t, p, birth)}

	// on the birthday thirty years on, the transiting sun conjoins the
	// natal sun within a fraction of a degree
	ret := models.Instant{Year: 2000, Month: 4, Day: 2, Hour: 12}
	transits, err := s.At(context.Background(), ret, natal, []models.Body{models.Sun}, aspects.Options{})
	if err != nil {
		t.Fatalf("at: %v", err)
	}
	var conj *models.Transit
	for i := range transits {
		if transits[i].Aspect == models.Conjunction {
			conj = &transits[i]
		}
	}
	if conj == nil {
		t.Fatalf("no conjunction found in %v", transits)
	}
	if conj.Orb > 1.5 {
		t.Errorf("solar return orb %.3f too wide", conj.Orb)
	}
	if conj.ExactDate == "" {
		t.Error("conjunction should carry an exact date estimate")
	}
}

func TestAtRequiresNatalPositions(t *testing.T) {
	s, _ := testSearch(t)
	_, err := s.At(context.Background(), models.Instant{Year: 2000, Month: 1, Day: 1}, nil, nil, aspects.Options{})
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("empty natal set should be invalid input, got %v", err)
	}
}

func TestEstimateExactDate(t *testing.T) {
	jd := ephemeris.JulianDay(2000, 1, 1, 12)
	tp := models.CelestialPosition{Longitude: 100, Speed: 1.0}

	// applying conjunction 5 degrees short of natal 105: five days out
	got := estimateExactDate(jd, tp, 105, 0, true)
	if got != "2000-01-06" {
		t.Errorf("applying estimate = %s, want 2000-01-06", got)
	}

	// separating: the exact date lies in the past
	got = estimateExactDate(jd, tp, 97, 0, false)
	if got != "1999-12-29" {
		t.Errorf("separating estimate = %s, want 1999-12-29", got)
	}

	// stationary bodies produce no estimate
	tp.Speed = 0
	if got = estimateExactDate(jd, tp, 105, 0, true); got != "" {
		t.Errorf("stationary estimate = %q, want empty", got)
	}
}

func TestPeriodKeepsOnlyExactDays(t *testing.T) {
	s, p := testSearch(t)
	// natal point the transiting sun crosses mid-window
	crossing := models.Instant{Year: 2000, Month: 5, Day: 10, Hour: 12}
	natal := map[models.Body]float64{models.Sun: sunLongitudeOn(t, p, crossing)}

	events, err := s.Period(context.Background(), natal,
		models.Instant{Year: 2000, Month: 5, Day: 1, Hour: 12},
		models.Instant{Year: 2000, Month: 5, Day: 20, Hour: 12},
		[]models.Body{models.Sun},
		aspects.Options{Types: []models.AspectType{models.Conjunction}})
	if err != nil {
		t.Fatalf("period: %v", err)
	}
	if len(events) == 0 {
		t.Fatal("expected at least one exact-day event")
	}
	seen := make(map[string]bool)
	for _, ev := range events {
		if ev.Date < "2000-05-08" || ev.Date > "2000-05-12" {
			t.Errorf("event on %s far from the crossing", ev.Date)
		}
		if seen[ev.Key()] {
			t.Errorf("duplicate event %s", ev.Key())
		}
		seen[ev.Key()] = true
	}
	for i := 1; i < len(events); i++ {
		if events[i].Date < events[i-1].Date {
			t.Error("events not sorted by date")
		}
	}
}

func TestPeriodRejectsReversedRange(t *testing.T) {
	s, _ := testSearch(t)
	_, err := s.Period(context.Background(),
		map[models.Body]float64{models.Sun: 0},
		models.Instant{Year: 2000, Month: 2, Day: 1},
		models.Instant{Year: 2000, Month: 1, Day: 1},
		nil, aspects.Options{})
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("reversed range should be invalid input, got %v", err)
	}
}

func TestSamplerWalksInclusiveRange(t *testing.T) {
	_, p := testSearch(t)
	sampler, err := NewSampler(p, []models.Body{models.Sun},
		models.Instant{Year: 2000, Month: 1, Day: 1, Hour: 12},
		models.Instant{Year: 2000, Month: 1, Day: 5, Hour: 12}, 1)
	if err != nil {
		t.Fatalf("sampler: %v", err)
	}
	count := 0
	var lastJD float64
	for {
		sample, ok, err := sampler.Next(context.Background())
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if !ok {
			break
		}
		count++
		lastJD = sample.JD
		if _, present := sample.Positions[models.Sun]; !present {
			t.Fatal("sample missing tracked body")
		}
	}
	if count != 5 {
		t.Errorf("sampled %d days, want 5", count)
	}
	if want := ephemeris.JulianDay(2000, 1, 5, 12); math.Abs(lastJD-want) > 1e-9 {
		t.Errorf("last sample jd %.4f, want %.4f", lastJD, want)
	}

	sampler.Reset()
	if _, ok, _ := sampler.Next(context.Background()); !ok {
		t.Error("reset sampler should yield again")
	}
}
