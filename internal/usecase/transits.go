package usecase

import (
	"context"
	"time"

	"AstroEngine/internal/domain/models"
	domrepo "AstroEngine/internal/domain/repository"
	"AstroEngine/internal/ephemeris"
	"AstroEngine/internal/services/aspects"
	"AstroEngine/internal/services/transits"
	"AstroEngine/pkg/logger"
)

// TransitUseCase answers the birth-data transit queries: it resolves
// the natal point set first, then delegates to the time-domain search.
type TransitUseCase struct {
	provider  *ephemeris.Provider
	search    *transits.Search
	publisher domrepo.EventPublisher
	archive   domrepo.ChartArchive
	metrics   domrepo.Metrics
	log       *logger.Logger
	now       func() time.Time
}

func NewTransitUseCase(provider *ephemeris.Provider, search *transits.Search, publisher domrepo.EventPublisher, archive domrepo.ChartArchive, metrics domrepo.Metrics, log *logger.Logger) *TransitUseCase {
	return &TransitUseCase{
		provider:  provider,
		search:    search,
		publisher: publisher,
		archive:   archive,
		metrics:   metrics,
		log:       log,
		now:       time.Now,
	}
}

// natalPoints resolves the natal longitudes for a birth moment. With
// coordinates the angles join the set; without, planets only.
func (uc *TransitUseCase) natalPoints(ctx context.Context, birth models.Instant, lat, lon *float64) (map[models.Body]float64, error) {
	jd := ephemeris.JulianDayOf(birth)
	if lat != nil && lon != nil {
		if err := models.ValidCoordinates(*lat, *lon); err != nil {
			return nil, err
		}
		positions, _, err := uc.provider.ChartPoints(ctx, jd, *lat, *lon, ephemeris.Placidus)
		if err != nil {
			return nil, err
		}
		return positions.Longitudes(), nil
	}
	positions, err := uc.provider.Positions(ctx, jd, nil)
	if err != nil {
		return nil, err
	}
	return positions.Longitudes(), nil
}

// CurrentTransits reports the aspects the sky makes to a natal chart
// right now, at the requested uniform orb.
func (uc *TransitUseCase) CurrentTransits(ctx context.Context, birth models.Instant, lat, lon *float64, orb float64) ([]models.Transit, error) {
	start := time.Now()
	if orb <= 0 {
		orb = 1.0
	}
	natal, err := uc.natalPoints(ctx, birth, lat, lon)
	if err != nil {
		return nil, err
	}

	orbs := make(map[models.AspectType]float64, len(models.MajorAspects))
	for _, t := range models.MajorAspects {
		orbs[t] = orb
	}
	now := models.InstantFromTime(uc.now())
	result, err := uc.search.At(ctx, now, natal, nil, aspects.Options{Types: models.MajorAspects, Orbs: orbs})
	if err != nil {
		return nil, err
	}
	if uc.metrics != nil {
		uc.metrics.RecordComputation("current_transits", time.Since(start).Seconds())
	}
	return result, nil
}

// Forecast runs the five-year outlook for a birth chart and streams
// the life events to the publisher when one is wired.
func (uc *TransitUseCase) Forecast(ctx context.Context, birth models.Instant, lat, lon *float64, start models.Instant, bodies []models.Body) (models.Forecast, error) {
	began := time.Now()
	natal, err := uc.natalPoints(ctx, birth, lat, lon)
	if err != nil {
		return models.Forecast{}, err
	}
	if start == (models.Instant{}) {
		start = models.InstantFromTime(uc.now())
	}

	forecast, err := uc.search.Forecast(ctx, natal, start, bodies)
	if err != nil {
		return models.Forecast{}, err
	}

	if uc.publisher != nil && len(forecast.LifeEvents) > 0 {
		if err := uc.publisher.PublishEvents(ctx, birth.DateString(), forecast.LifeEvents); err != nil {
			// delivery is best effort; the forecast itself is complete
			uc.log.Error("life event publish failed", logger.Error(err))
			if uc.metrics != nil {
				uc.metrics.RecordError("event_publish")
			}
		}
	}
	if uc.archive != nil && len(forecast.Transits) > 0 {
		if err := uc.archive.StoreEvents(ctx, birth.DateString(), forecast.Transits); err != nil {
			uc.log.Error("timeline event archive failed", logger.Error(err))
			if uc.metrics != nil {
				uc.metrics.RecordError("event_archive")
			}
		}
	}
	if uc.metrics != nil {
		uc.metrics.RecordComputation("forecast", time.Since(began).Seconds())
	}
	return forecast, nil
}
