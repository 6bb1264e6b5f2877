package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"AstroEngine/internal/domain/models"
	domrepo "AstroEngine/internal/domain/repository"
	"AstroEngine/internal/ephemeris"
	"AstroEngine/internal/services/aspects"
	"AstroEngine/internal/services/balance"
	"AstroEngine/pkg/logger"
)

type memoryArchive struct {
	charts map[string]*models.Chart
	events map[string][]models.TimelineEvent
	fail   bool
}

func newMemoryArchive() *memoryArchive {
	return &memoryArchive{
		charts: make(map[string]*models.Chart),
		events: make(map[string][]models.TimelineEvent),
	}
}

func (a *memoryArchive) Init(ctx context.Context) error { return nil }
func (a *memoryArchive) Store(ctx context.Context, chart *models.Chart) error {
	if a.fail {
		return errors.New("archive down")
	}
	a.charts[chart.ID] = chart
	return nil
}
func (a *memoryArchive) Get(ctx context.Context, id string) (*models.Chart, error) {
	c, ok := a.charts[id]
	if !ok {
		return nil, domrepo.ErrChartNotFound
	}
	return c, nil
}
func (a *memoryArchive) StoreEvents(ctx context.Context, key string, events []models.TimelineEvent) error {
	if a.fail {
		return errors.New("archive down")
	}
	a.events[key] = append(a.events[key], events...)
	return nil
}
func (a *memoryArchive) Health(ctx context.Context) error { return nil }
func (a *memoryArchive) Close() error                     { return nil }

type noopMetrics struct{ errs []string }

func (m *noopMetrics) RecordComputation(kind string, seconds float64) {}
func (m *noopMetrics) RecordCacheHit(scope string)                    {}
func (m *noopMetrics) RecordCacheMiss(scope string)                   {}
func (m *noopMetrics) RecordError(kind string)                        { m.errs = append(m.errs, kind) }

func testChartUseCase(t *testing.T, archive domrepo.ChartArchive) *ChartUseCase {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	provider := ephemeris.NewProvider(ephemeris.NewAnalyticSource(), log)
	return NewChartUseCase(provider, aspects.NewEngine(log), balance.NewAnalyzer(), archive, &noopMetrics{}, log)
}

func TestBuildChartFullSections(t *testing.T) {
	archive := newMemoryArchive()
	uc := testChartUseCase(t, archive)

	chart, err := uc.BuildChart(context.Background(), BuildChartParams{
		Birth:          models.Instant{Year: 1990, Month: 6, Day: 15, Hour: 14, Minute: 30},
		Latitude:       40.71,
		Longitude:      -74.01,
		WithAspects:    true,
		WithDignities:  true,
		WithElements:   true,
		WithModalities: true,
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if !strings.HasPrefix(chart.ID, "chart-") || len(chart.ID) != len("chart-")+8 {
		t.Errorf("chart id %q not in chart-<8 hex> form", chart.ID)
	}
	if chart.Houses == nil || len(chart.Aspects) == 0 || chart.Elements == nil || chart.Modality == nil {
		t.Error("requested sections missing from chart")
	}
	if chart.Summary == nil || chart.Summary.SunSign != "Gemini" {
		t.Errorf("summary = %+v, want sun sign Gemini", chart.Summary)
	}
	if _, ok := chart.Planets[models.PartOfFortune]; !ok {
		t.Error("chart should include the part of fortune")
	}

	// archived and retrievable
	got, err := uc.GetChart(context.Background(), chart.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != chart.ID {
		t.Errorf("retrieved chart id %s, want %s", got.ID, chart.ID)
	}
}

func TestBuildChartSurvivesArchiveFailure(t *testing.T) {
	archive := newMemoryArchive()
	archive.fail = true
	uc := testChartUseCase(t, archive)

	chart, err := uc.BuildChart(context.Background(), BuildChartParams{
		Birth:    models.Instant{Year: 2000, Month: 1, Day: 1, Hour: 12},
		Latitude: 51.5, Longitude: -0.13,
	})
	if err != nil {
		t.Fatalf("build should not fail on archive error: %v", err)
	}
	if chart.ID == "" {
		t.Error("chart should still carry an id")
	}
}

func TestBuildChartValidation(t *testing.T) {
	uc := testChartUseCase(t, newMemoryArchive())
	_, err := uc.BuildChart(context.Background(), BuildChartParams{
		Birth:    models.Instant{Year: 2000, Month: 1, Day: 1, Hour: 12},
		Latitude: 95,
	})
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("latitude 95 should be invalid input, got %v", err)
	}

	_, err = uc.BuildChart(context.Background(), BuildChartParams{
		Birth:       models.Instant{Year: 2000, Month: 1, Day: 1, Hour: 12},
		HouseSystem: "topocentric",
	})
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("unknown house system should be invalid input, got %v", err)
	}
}

func TestGetChartUnknownID(t *testing.T) {
	uc := testChartUseCase(t, newMemoryArchive())
	if _, err := uc.GetChart(context.Background(), "chart-deadbeef"); !errors.Is(err, domrepo.ErrChartNotFound) {
		t.Errorf("unknown id should be ErrChartNotFound, got %v", err)
	}
}

func TestQuickSummary(t *testing.T) {
	uc := testChartUseCase(t, nil)
	lat, lon := 40.71, -74.01

	withGeo, err := uc.QuickSummary(context.Background(), SummaryParams{
		Birth:    models.Instant{Year: 1990, Month: 6, Day: 15, Hour: 12},
		Latitude: &lat, Longitude: &lon,
	})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if withGeo.SunSign != "Gemini" {
		t.Errorf("sun sign %s, want Gemini", withGeo.SunSign)
	}
	if withGeo.Ascendant == "" {
		t.Error("summary with coordinates should include the ascendant")
	}
	if withGeo.DominantElement == "" || withGeo.DominantModality == "" {
		t.Error("summary should include dominants")
	}

	noGeo, err := uc.QuickSummary(context.Background(), SummaryParams{
		Birth: models.Instant{Year: 1990, Month: 6, Day: 15, Hour: 12},
	})
	if err != nil {
		t.Fatalf("summary without geo: %v", err)
	}
	if noGeo.Ascendant != "" {
		t.Error("summary without coordinates must omit the ascendant")
	}
}

func TestDignityTable(t *testing.T) {
	table := defaultDignities()
	cases := []struct {
		body models.Body
		sign models.Sign
		want models.Dignity
	}{
		{models.Sun, models.Leo, models.Rulership},
		{models.Sun, models.Aries, models.Exaltation},
		{models.Sun, models.Aquarius, models.Detriment},
		{models.Sun, models.Libra, models.Fall},
		{models.Mars, models.Scorpio, models.Rulership},
		{models.Venus, models.Virgo, models.Fall},
	}
	for _, tc := range cases {
		got, ok := table.dignityOf(tc.body, tc.sign)
		if !ok || got != tc.want {
			t.Errorf("%s in %v = %v (ok=%v), want %v", tc.body, tc.sign, got, ok, tc.want)
		}
	}
	if _, ok := table.dignityOf(models.Sun, models.Gemini); ok {
		t.Error("sun in gemini is peregrine, no dignity expected")
	}
}
