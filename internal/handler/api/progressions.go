package api

import (
	"time"

	"AstroEngine/internal/domain/models"
	"AstroEngine/internal/ephemeris"
	"AstroEngine/internal/service/metrics"
	"AstroEngine/internal/services/aspects"
	xhttp "AstroEngine/pkg/http"

	"github.com/labstack/echo/v4"
)

func (h *Handler) Progressions(c echo.Context) error {
	start := time.Now()
	endpoint := "progressions"
	defer func() { metrics.EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.ProgressionsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	birth, err := models.ParseInstant(req.BirthDate, req.BirthTime)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}
	target, err := models.ParseDate(req.TargetDate)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}
	bodies, err := parseBodyNames(req.Bodies)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}
	system, err := ephemeris.ParseHouseSystem(req.HouseSystem)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}

	var lat, lon float64
	includeHouses := req.IncludeHouses
	if includeHouses {
		if req.Latitude == nil || req.Longitude == nil {
			return h.respondError(c, endpoint,
				models.NewInvalidInput("latitude", "coordinates are required for progressed houses"))
		}
		lat, lon = *req.Latitude, *req.Longitude
	}

	chart, err := h.prog.Progressed(c.Request().Context(), birth, target,
		models.ProgressionMethod(req.Method), bodies, includeHouses, lat, lon, system)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}
	return xhttp.SuccessResponse(c, chart)
}

func (h *Handler) ProgressedTransits(c echo.Context) error {
	start := time.Now()
	endpoint := "progressed_transits"
	defer func() { metrics.EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.ProgressedTransitsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	birth, err := models.ParseInstant(req.BirthDate, req.BirthTime)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}
	target, err := models.ParseDate(req.TargetDate)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}
	at := target
	if req.Date != "" {
		if at, err = models.ParseInstant(req.Date, req.Time); err != nil {
			return h.respondError(c, endpoint, err)
		}
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

	chart, matches, err := h.prog.TransitAspects(c.Request().Context(), birth, target, at,
		models.ProgressionMethod(req.Method), bodies, aspects.Options{Types: types, Orbs: orbs})
	if err != nil {
		return h.respondError(c, endpoint, err)
	}
	return xhttp.SuccessResponse(c, echo.Map{"progressed": chart, "aspects": matches})
}

func (h *Handler) SecondaryProgressions(c echo.Context) error {
	start := time.Now()
	endpoint := "secondary_progressions"
	defer func() { metrics.EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.SecondaryProgressionsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	birth, err := models.ParseInstant(req.BirthDate, req.BirthTime)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}
	target, err := models.ParseDate(req.TargetDate)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}
	bodies, err := parseBodyCSV(req.Bodies)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}

	chart, err := h.prog.Progressed(c.Request().Context(), birth, target,
		models.Secondary, bodies, false, 0, 0, ephemeris.Placidus)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}
	return xhttp.SuccessResponse(c, chart)
}

func (h *Handler) ProgressionTimeline(c echo.Context) error {
	start := time.Now()
	endpoint := "progression_timeline"
	defer func() { metrics.EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.ProgressionTimelineRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	birth, err := models.ParseInstant(req.BirthDate, req.BirthTime)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}

	from := birth
	if req.StartDate != "" {
		if from, err = models.ParseDate(req.StartDate); err != nil {
			return h.respondError(c, endpoint, err)
		}
	}
	to := models.Instant{Year: from.Year + 10, Month: from.Month, Day: from.Day, Hour: from.Hour}
	if req.EndDate != "" {
		if to, err = models.ParseDate(req.EndDate); err != nil {
			return h.respondError(c, endpoint, err)
		}
	}

	var bodies []models.Body
	if req.Body != "" {
		b, err := ephemeris.ParseBody(req.Body)
		if err != nil {
			return h.respondError(c, endpoint, err)
		}
		bodies = []models.Body{b}
	}

	samples, err := h.prog.Timeline(c.Request().Context(), birth, from, to, req.IntervalMonths,
		models.ProgressionMethod(req.Method), bodies)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}
	return xhttp.SuccessResponse(c, echo.Map{"samples": samples})
}
