package api

import (
	"errors"
	"strings"
	"time"

	"AstroEngine/internal/domain/models"
	domrepo "AstroEngine/internal/domain/repository"
	"AstroEngine/internal/ephemeris"
	icache "AstroEngine/internal/service/cache"
	"AstroEngine/internal/service/geocoding"
	"AstroEngine/internal/service/metrics"
	"AstroEngine/internal/service/ratelimit"
	"AstroEngine/internal/services/aspects"
	"AstroEngine/internal/services/progressions"
	tsearch "AstroEngine/internal/services/transits"
	"AstroEngine/internal/usecase"
	xhttp "AstroEngine/pkg/http"
	applogger "AstroEngine/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RateLimits carries token-bucket settings for the expensive endpoints.
type RateLimits struct {
	ForecastCapacity float64
	ForecastRefill   float64
	PeriodCapacity   float64
	PeriodRefill     float64
}

// Handler implements the Echo-based calculation API.
type Handler struct {
	log      *applogger.Logger
	charts   *usecase.ChartUseCase
	transits *usecase.TransitUseCase
	provider *ephemeris.Provider
	engine   *aspects.Engine
	search   *tsearch.Search
	prog     *progressions.Engine
	geocoder geocoding.Resolver
	cache    icache.BytesCache
	rl       *ratelimit.Limiter
	limits   RateLimits

	summaryTTL  time.Duration
	forecastTTL time.Duration
}

func NewHandler(
	log *applogger.Logger,
	charts *usecase.ChartUseCase,
	transits *usecase.TransitUseCase,
	provider *ephemeris.Provider,
	engine *aspects.Engine,
	search *tsearch.Search,
	prog *progressions.Engine,
) *Handler {
	metrics.Register()
	return &Handler{
		log:      log,
		charts:   charts,
		transits: transits,
		provider: provider,
		engine:   engine,
		search:   search,
		prog:     prog,
		rl:       ratelimit.New(),
		limits: RateLimits{
			ForecastCapacity: 3, ForecastRefill: 1,
			PeriodCapacity: 5, PeriodRefill: 2,
		},
		summaryTTL:  10 * time.Minute,
		forecastTTL: time.Hour,
	}
}

// SetCache injects a byte cache for response caching.
func (h *Handler) SetCache(c icache.BytesCache) { h.cache = c }

// SetCacheTTLs overrides the response cache lifetimes; zero keeps the
// defaults.
func (h *Handler) SetCacheTTLs(summary, forecast time.Duration) {
	if summary > 0 {
		h.summaryTTL = summary
	}
	if forecast > 0 {
		h.forecastTTL = forecast
	}
}

// SetGeocoder injects a place resolver for coordinate-less chart requests.
func (h *Handler) SetGeocoder(g geocoding.Resolver) { h.geocoder = g }

// SetRateLimits overrides the default token-bucket settings.
func (h *Handler) SetRateLimits(l RateLimits) { h.limits = l }

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")

	g.POST("/charts", h.BuildChart)
	g.GET("/charts/summary", h.ChartSummary)
	g.GET("/charts/:id", h.GetChart)

	g.GET("/planets", h.Positions)
	g.GET("/planets/position-range", h.PositionRange)
	g.GET("/planets/ingress", h.Ingresses)

	g.POST("/aspects", h.Aspects)
	g.POST("/aspects/synastry", h.Synastry)
	g.GET("/aspects/timeline", h.AspectTimeline)

	g.POST("/transits", h.Transits)
	g.POST("/transits/period", h.TransitPeriod)
	g.GET("/transits/current", h.CurrentTransits)
	g.GET("/transits/forecast", h.Forecast)

	g.POST("/progressions", h.Progressions)
	g.POST("/progressions/transits", h.ProgressedTransits)
	g.GET("/progressions/secondary", h.SecondaryProgressions)
	g.GET("/progressions/timeline", h.ProgressionTimeline)
}

// respondError maps domain errors onto the response envelope.
func (h *Handler) respondError(c echo.Context, endpoint string, err error) error {
	metrics.EndpointErrors.WithLabelValues(endpoint).Inc()
	switch {
	case errors.Is(err, domrepo.ErrChartNotFound):
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError("chart not found").WithError(err))
	case errors.Is(err, geocoding.ErrNotFound):
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("place could not be resolved").WithError(err))
	case errors.Is(err, models.ErrInvalidInput):
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()).WithError(err))
	case errors.Is(err, models.ErrEphemerisUnavailable):
		h.log.Error(endpoint+" ephemeris unavailable", applogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("ephemeris unavailable").WithError(err))
	default:
		h.log.Error(endpoint+" error", applogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("computation failed").WithError(err))
	}
}

func (h *Handler) rateLimited(c echo.Context, endpoint string, capacity, refill float64) bool {
	if capacity <= 0 {
		return false
	}
	if h.rl.Allow(c.RealIP()+":"+endpoint, capacity, refill) {
		return false
	}
	h.log.Warn(endpoint+" rate limited", applogger.String("remote", c.RealIP()))
	return true
}

// --- request parsing helpers ---

func parseBodyNames(names []string) ([]models.Body, error) {
	if len(names) == 0 {
		return nil, nil
	}
	out := make([]models.Body, 0, len(names))
	for _, n := range names {
		b, err := ephemeris.ParseBody(n)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func parseBodyCSV(s string) ([]models.Body, error) {
	if s == "" {
		return nil, nil
	}
	return parseBodyNames(splitCSV(s))
}

func parseAspectNames(names []string) ([]models.AspectType, error) {
	if len(names) == 0 {
		return nil, nil
	}
	out := make([]models.AspectType, 0, len(names))
	for _, n := range names {
		t, err := aspects.ParseAspect(n)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func parseOrbOverrides(orbs map[string]float64) (map[models.AspectType]float64, error) {
	if len(orbs) == 0 {
		return nil, nil
	}
	out := make(map[models.AspectType]float64, len(orbs))
	for name, orb := range orbs {
		t, err := aspects.ParseAspect(name)
		if err != nil {
			return nil, err
		}
		if orb <= 0 {
			return nil, models.NewInvalidInput("orbs", "orb for "+name+" must be positive")
		}
		out[t] = orb
	}
	return out, nil
}

func parsePositionMap(positions map[string]float64) (map[models.Body]float64, error) {
	out := make(map[models.Body]float64, len(positions))
	for name, lon := range positions {
		b, err := ephemeris.ParseBody(name)
		if err != nil {
			return nil, err
		}
		out[b] = models.NormalizeDegrees(lon)
	}
	return out, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
