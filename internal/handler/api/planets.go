package api

import (
	"time"

	"AstroEngine/internal/domain/models"
	"AstroEngine/internal/ephemeris"
	"AstroEngine/internal/service/metrics"
	xhttp "AstroEngine/pkg/http"

	"github.com/labstack/echo/v4"
)

func (h *Handler) Positions(c echo.Context) error {
	start := time.Now()
	endpoint := "positions"
	defer func() { metrics.EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.PositionsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	at, err := models.ParseInstant(req.Date, req.Time)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}
	bodies, err := parseBodyCSV(req.Bodies)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}

	jd := ephemeris.JulianDayOf(at)
	if req.Latitude != nil && req.Longitude != nil {
		positions, houses, err := h.provider.ChartPoints(c.Request().Context(), jd, *req.Latitude, *req.Longitude, ephemeris.Placidus)
		if err != nil {
			return h.respondError(c, endpoint, err)
		}
		positions = filterBodies(positions, bodies)
		return xhttp.SuccessResponse(c, echo.Map{
			"positions": positions,
			"houses":    houses,
		})
	}

	positions, err := h.provider.Positions(c.Request().Context(), jd, bodies)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}
	return xhttp.SuccessResponse(c, echo.Map{"positions": positions})
}

func (h *Handler) PositionRange(c echo.Context) error {
	start := time.Now()
	endpoint := "position_range"
	defer func() { metrics.EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.PositionRangeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	body, err := ephemeris.ParseBody(req.Body)
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

	samples, err := h.search.PositionRange(c.Request().Context(), body, from, to, req.IntervalDays)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}
	return xhttp.SuccessResponse(c, echo.Map{
		"body":    body,
		"samples": samples,
	})
}

func (h *Handler) Ingresses(c echo.Context) error {
	start := time.Now()
	endpoint := "ingress"
	defer func() { metrics.EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.IngressRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	body, err := ephemeris.ParseBody(req.Body)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}
	from, err := models.ParseDate(req.StartDate)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}
	to := models.Instant{Year: from.Year + 1, Month: from.Month, Day: from.Day, Hour: from.Hour}
	if req.EndDate != "" {
		if to, err = models.ParseDate(req.EndDate); err != nil {
			return h.respondError(c, endpoint, err)
		}
	}

	events, err := h.search.Ingresses(c.Request().Context(), body, from, to)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}
	return xhttp.SuccessResponse(c, echo.Map{
		"body":      body,
		"ingresses": events,
	})
}

// filterBodies trims a full point set to the requested bodies, keeping
// everything when no filter was given.
func filterBodies(set models.PositionSet, bodies []models.Body) models.PositionSet {
	if len(bodies) == 0 {
		return set
	}
	out := make(models.PositionSet, len(bodies))
	for _, b := range bodies {
		if pos, ok := set[b]; ok {
			out[b] = pos
		}
	}
	return out
}
