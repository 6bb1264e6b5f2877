package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"AstroEngine/internal/domain/models"
	domrepo "AstroEngine/internal/domain/repository"
	"AstroEngine/internal/ephemeris"
	"AstroEngine/internal/services/aspects"
	"AstroEngine/internal/services/balance"
	"AstroEngine/pkg/logger"
)

// ChartUseCase assembles full natal charts from the core services and
// keeps them in the archive for retrieval by ID.
type ChartUseCase struct {
	provider *ephemeris.Provider
	engine   *aspects.Engine
	analyzer *balance.Analyzer
	archive  domrepo.ChartArchive
	metrics  domrepo.Metrics
	dign     dignityTable
	log      *logger.Logger
}

func NewChartUseCase(provider *ephemeris.Provider, engine *aspects.Engine, analyzer *balance.Analyzer, archive domrepo.ChartArchive, metrics domrepo.Metrics, log *logger.Logger) *ChartUseCase {
	return &ChartUseCase{
		provider: provider,
		engine:   engine,
		analyzer: analyzer,
		archive:  archive,
		metrics:  metrics,
		dign:     defaultDignities(),
		log:      log,
	}
}

// BuildChartParams carries one chart request. HouseSystem defaults to
// placidus; the With flags gate the optional sections.
type BuildChartParams struct {
	Birth          models.Instant
	Latitude       float64
	Longitude      float64
	HouseSystem    string
	WithAspects    bool
	WithDignities  bool
	WithElements   bool
	WithModalities bool
}

// BuildChart computes and archives a natal chart.
func (uc *ChartUseCase) BuildChart(ctx context.Context, p BuildChartParams) (*models.Chart, error) {
	start := time.Now()
	if err := models.ValidCoordinates(p.Latitude, p.Longitude); err != nil {
		return nil, err
	}
	if p.HouseSystem == "" {
		p.HouseSystem = string(ephemeris.Placidus)
	}
	system, err := ephemeris.ParseHouseSystem(p.HouseSystem)
	if err != nil {
		return nil, err
	}

	jd := ephemeris.JulianDayOf(p.Birth)
	positions, houses, err := uc.provider.ChartPoints(ctx, jd, p.Latitude, p.Longitude, system)
	if err != nil {
		return nil, models.WrapComputation("chart points", err)
	}

	chart := &models.Chart{
		ID:        newChartID(),
		CreatedAt: time.Now().UTC(),
		Birth:     p.Birth,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Planets:   positions,
		Houses:    &houses,
	}

	if p.WithAspects {
		chart.Aspects = uc.engine.Compute(positions.Longitudes(), positions.Speeds(), aspects.Options{})
	}
	if p.WithElements {
		eb := uc.analyzer.Elements(positions)
		chart.Elements = &eb
	}
	if p.WithModalities {
		mb := uc.analyzer.Modalities(positions)
		chart.Modality = &mb
	}
	if p.WithDignities {
		chart.Dignities = uc.dignities(positions)
	}
	chart.Summary = uc.summarize(chart)

	if uc.archive != nil {
		if err := uc.archive.Store(ctx, chart); err != nil {
			// archival is best effort; the computed chart is still good
			uc.log.Error("chart archive store failed", logger.String("chart_id", chart.ID), logger.Error(err))
			if uc.metrics != nil {
				uc.metrics.RecordError("chart_archive")
			}
		}
	}
	if uc.metrics != nil {
		uc.metrics.RecordComputation("chart", time.Since(start).Seconds())
	}
	return chart, nil
}

// GetChart loads a previously computed chart from the archive.
func (uc *ChartUseCase) GetChart(ctx context.Context, id string) (*models.Chart, error) {
	if uc.archive == nil {
		return nil, domrepo.ErrChartNotFound
	}
	if id == "" {
		return nil, models.NewInvalidInput("chart_id", "chart id required")
	}
	return uc.archive.Get(ctx, id)
}

// SummaryParams identify a birth moment, with optional geography for
// the ascendant.
type SummaryParams struct {
	Birth     models.Instant
	Latitude  *float64
	Longitude *float64
}

// QuickSummary computes the one-line chart reading without a full
// chart build. Without coordinates the ascendant is omitted.
func (uc *ChartUseCase) QuickSummary(ctx context.Context, p SummaryParams) (*models.ChartSummary, error) {
	jd := ephemeris.JulianDayOf(p.Birth)
	positions, err := uc.provider.Positions(ctx, jd, nil)
	if err != nil {
		return nil, models.WrapComputation("summary positions", err)
	}

	summary := &models.ChartSummary{
		SunSign:  positions[models.Sun].Sign.String(),
		MoonSign: positions[models.Moon].Sign.String(),
	}
	if p.Latitude != nil && p.Longitude != nil {
		if err := models.ValidCoordinates(*p.Latitude, *p.Longitude); err != nil {
			return nil, err
		}
		houses, err := uc.provider.Houses(ctx, jd, *p.Latitude, *p.Longitude, ephemeris.Placidus)
		if err != nil {
			return nil, err
		}
		summary.Ascendant = models.SignOf(houses.Ascendant).String()
	}
	eb := uc.analyzer.Elements(positions)
	mb := uc.analyzer.Modalities(positions)
	summary.DominantElement = string(balance.DominantElement(eb))
	summary.DominantModality = string(balance.DominantModality(mb))
	return summary, nil
}

// dignities evaluates the essential dignity of every placed body.
func (uc *ChartUseCase) dignities(positions models.PositionSet) map[models.Body]models.Dignity {
	out := make(map[models.Body]models.Dignity)
	for body, pos := range positions {
		if d, ok := uc.dign.dignityOf(body, pos.Sign); ok {
			out[body] = d
		}
	}
	return out
}

// summarize fills the one-line reading from an assembled chart.
func (uc *ChartUseCase) summarize(chart *models.Chart) *models.ChartSummary {
	s := &models.ChartSummary{
		SunSign:  chart.Planets[models.Sun].Sign.String(),
		MoonSign: chart.Planets[models.Moon].Sign.String(),
	}
	if chart.Houses != nil {
		s.Ascendant = models.SignOf(chart.Houses.Ascendant).String()
	}
	if chart.Elements != nil {
		s.DominantElement = string(balance.DominantElement(*chart.Elements))
	}
	if chart.Modality != nil {
		s.DominantModality = string(balance.DominantModality(*chart.Modality))
	}
	return s
}

// newChartID mints a chart-<8 hex> identifier.
func newChartID() string {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		// extraordinarily unlikely; fall back to a time-derived id
		return fmt.Sprintf("chart-%08x", time.Now().UnixNano()&0xffffffff)
	}
	return "chart-" + hex.EncodeToString(b[:])
}
