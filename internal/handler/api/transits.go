package api

import (
	"encoding/json"
	"fmt"
	"time"

	"AstroEngine/internal/domain/models"
	"AstroEngine/internal/service/metrics"
	"AstroEngine/internal/services/aspects"
	xhttp "AstroEngine/pkg/http"
	applogger "AstroEngine/pkg/logger"

	"github.com/labstack/echo/v4"
)

func (h *Handler) Transits(c echo.Context) error {
	start := time.Now()
	endpoint := "transits"
	defer func() { metrics.EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.TransitsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	natal, err := parsePositionMap(req.NatalPositions)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}
	at, err := models.ParseInstant(req.Date, req.Time)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}
	bodies, err := parseBodyNames(req.Bodies)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}
	types, err := parseAspectNames(req.Aspects)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}
	orbs, err := parseOrbOverrides(req.Orbs)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}

	result, err := h.search.At(c.Request().Context(), at, natal, bodies, aspects.Options{Types: types, Orbs: orbs})
	if err != nil {
		return h.respondError(c, endpoint, err)
	}
	return xhttp.SuccessResponse(c, echo.Map{"transits": result})
}

func (h *Handler) TransitPeriod(c echo.Context) error {
	start := time.Now()
	endpoint := "transit_period"
	defer func() { metrics.EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	if h.rateLimited(c, endpoint, h.limits.PeriodCapacity, h.limits.PeriodRefill) {
		return xhttp.AppErrorResponse(c, xhttp.NewAppError("ERR_RATE_LIMITED", "", "too many period scans", 429))
	}

	req := &models.TransitPeriodRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	natal, err := parsePositionMap(req.NatalPositions)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}
	from, err := models.ParseDate(req.StartDate)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}
	to, err := models.ParseDate(req.EndDate)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}
	bodies, err := parseBodyNames(req.Bodies)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}
	types, err := parseAspectNames(req.Aspects)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}
	orbs, err := parseOrbOverrides(req.Orbs)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}

	events, err := h.search.Period(c.Request().Context(), natal, from, to, bodies, aspects.Options{Types: types, Orbs: orbs})
	if err != nil {
		return h.respondError(c, endpoint, err)
	}
	return xhttp.SuccessResponse(c, echo.Map{"events": events})
}

func (h *Handler) CurrentTransits(c echo.Context) error {
	start := time.Now()
	endpoint := "current_transits"
	defer func() { metrics.EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.CurrentTransitsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	birth, err := models.ParseInstant(req.BirthDate, req.BirthTime)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}

	result, err := h.transits.CurrentTransits(c.Request().Context(), birth, req.Latitude, req.Longitude, req.Orb)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}
	return xhttp.SuccessResponse(c, echo.Map{"transits": result})
}

func (h *Handler) Forecast(c echo.Context) error {
	start := time.Now()
	endpoint := "forecast"
	defer func() { metrics.EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	if h.rateLimited(c, endpoint, h.limits.ForecastCapacity, h.limits.ForecastRefill) {
		return xhttp.AppErrorResponse(c, xhttp.NewAppError("ERR_RATE_LIMITED", "", "too many forecast requests", 429))
	}

	req := &models.ForecastRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	birth, err := models.ParseInstant(req.BirthDate, req.BirthTime)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}
	var from models.Instant
	if req.StartDate != "" {
		if from, err = models.ParseDate(req.StartDate); err != nil {
			return h.respondError(c, endpoint, err)
		}
	}
	bodies, err := parseBodyCSV(req.Bodies)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}

	cacheKey := forecastCacheKey(req)
	if h.cache != nil {
		if b, ok, cerr := h.cache.GetBytes(cacheKey); cerr != nil {
			h.log.Warn("forecast cache get failed", applogger.Error(cerr))
		} else if ok {
			var cached models.Forecast
			if json.Unmarshal(b, &cached) == nil {
				return xhttp.SuccessResponse(c, &cached)
			}
		}
	}

	forecast, err := h.transits.Forecast(c.Request().Context(), birth, req.Latitude, req.Longitude, from, bodies)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}

	if h.cache != nil {
		if b, merr := json.Marshal(forecast); merr == nil {
			if cerr := h.cache.SetBytes(cacheKey, b, h.forecastTTL); cerr != nil {
				h.log.Warn("forecast cache set failed", applogger.Error(cerr))
			}
		}
	}
	return xhttp.SuccessResponse(c, forecast)
}

func forecastCacheKey(req *models.ForecastRequest) string {
	lat, lon := "", ""
	if req.Latitude != nil {
		lat = fmt.Sprintf("%.4f", *req.Latitude)
	}
	if req.Longitude != nil {
		lon = fmt.Sprintf("%.4f", *req.Longitude)
	}
	return fmt.Sprintf("forecast:%s:%s:%s:%s:%s:%s",
		req.BirthDate, req.BirthTime, lat, lon, req.StartDate, req.Bodies)
}
