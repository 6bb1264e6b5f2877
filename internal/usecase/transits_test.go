package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"AstroEngine/internal/domain/models"
	domrepo "AstroEngine/internal/domain/repository"
	"AstroEngine/internal/ephemeris"
	"AstroEngine/internal/services/aspects"
	"AstroEngine/internal/services/transits"
	"AstroEngine/pkg/logger"
)

type capturePublisher struct {
	key    string
	events []models.TimelineEvent
	fail   bool
}

func (p *capturePublisher) PublishEvents(ctx context.Context, key string, events []models.TimelineEvent) error {
	if p.fail {
		return errors.New("broker down")
	}
	p.key = key
	p.events = append(p.events, events...)
	return nil
}
func (p *capturePublisher) Close() error { return nil }

func testTransitUseCase(t *testing.T, pub *capturePublisher, archive *memoryArchive) *TransitUseCase {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	provider := ephemeris.NewProvider(ephemeris.NewAnalyticSource(), log)
	search := transits.NewSearch(provider, aspects.NewEngine(log), log)

	var publisher domrepo.EventPublisher
	if pub != nil {
		publisher = pub
	}
	var arch domrepo.ChartArchive
	if archive != nil {
		arch = archive
	}
	uc := NewTransitUseCase(provider, search, publisher, arch, &noopMetrics{}, log)
	uc.now = func() time.Time { return time.Date(2000, 4, 2, 12, 0, 0, 0, time.UTC) }
	return uc
}

func TestCurrentTransitsSolarReturn(t *testing.T) {
	uc := testTransitUseCase(t, nil, nil)
	// birthday matching the pinned clock: the transiting sun sits on
	// the natal sun
	birth := models.Instant{Year: 1970, Month: 4, Day: 2, Hour: 12}
	result, err := uc.CurrentTransits(context.Background(), birth, nil, nil, 2.0)
	if err != nil {
		t.Fatalf("current transits: %v", err)
	}
	found := false
	for _, tr := range result {
		if tr.TransitBody == models.Sun && tr.NatalBody == models.Sun && tr.Aspect == models.Conjunction {
			found = true
			if tr.Orb > 2.0 {
				t.Errorf("solar return orb %.3f exceeds requested orb", tr.Orb)
			}
		}
	}
	if !found {
		t.Errorf("no sun-sun conjunction in %v", result)
	}
}

func TestCurrentTransitsWithGeoIncludesAngles(t *testing.T) {
	uc := testTransitUseCase(t, nil, nil)
	lat, lon := 40.71, -74.01
	birth := models.Instant{Year: 1970, Month: 4, Day: 2, Hour: 18}
	result, err := uc.CurrentTransits(context.Background(), birth, &lat, &lon, 8.0)
	if err != nil {
		t.Fatalf("current transits: %v", err)
	}
	// a wide orb over a full natal point set must hit an angle
	angleHit := false
	for _, tr := range result {
		if tr.NatalBody == models.Ascendant || tr.NatalBody == models.MC {
			angleHit = true
		}
	}
	if !angleHit {
		t.Errorf("expected a transit to an angle in %d results", len(result))
	}
}

func TestForecastPublishesLifeEvents(t *testing.T) {
	pub := &capturePublisher{}
	uc := testTransitUseCase(t, pub, nil)
	birth := models.Instant{Year: 1970, Month: 4, Day: 2, Hour: 12}

	forecast, err := uc.Forecast(context.Background(), birth, nil, nil,
		models.Instant{Year: 2000, Month: 1, Day: 1, Hour: 12}, nil)
	if err != nil {
		t.Fatalf("forecast: %v", err)
	}
	if len(forecast.LifeEvents) == 0 {
		t.Fatal("expected life events over five years")
	}
	if pub.key != "1970-04-02" {
		t.Errorf("published under key %q, want birth date", pub.key)
	}
	if len(pub.events) != len(forecast.LifeEvents) {
		t.Errorf("published %d events, want %d", len(pub.events), len(forecast.LifeEvents))
	}
}

func TestForecastArchivesTimelineEvents(t *testing.T) {
	archive := newMemoryArchive()
	uc := testTransitUseCase(t, nil, archive)
	birth := models.Instant{Year: 1970, Month: 4, Day: 2, Hour: 12}

	forecast, err := uc.Forecast(context.Background(), birth, nil, nil,
		models.Instant{Year: 2000, Month: 1, Day: 1, Hour: 12}, nil)
	if err != nil {
		t.Fatalf("forecast: %v", err)
	}
	if len(forecast.Transits) == 0 {
		t.Fatal("expected transit events over five years")
	}
	if got := len(archive.events["1970-04-02"]); got != len(forecast.Transits) {
		t.Errorf("archived %d events, want %d", got, len(forecast.Transits))
	}
}

func TestForecastSurvivesPublisherFailure(t *testing.T) {
	pub := &capturePublisher{fail: true}
	uc := testTransitUseCase(t, pub, nil)
	birth := models.Instant{Year: 1970, Month: 4, Day: 2, Hour: 12}

	forecast, err := uc.Forecast(context.Background(), birth, nil, nil,
		models.Instant{Year: 2000, Month: 1, Day: 1, Hour: 12}, nil)
	if err != nil {
		t.Fatalf("forecast should not fail on publish error: %v", err)
	}
	if len(forecast.Transits) == 0 {
		t.Error("forecast content should be intact")
	}
}
