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

func (h *Handler) Aspects(c echo.Context) error {
	start := time.Now()
	endpoint := "aspects"
	defer func() { metrics.EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.AspectsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	positions, err := parsePositionMap(req.Positions)
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

	matches := h.engine.Compute(positions, nil, aspects.Options{Types: types, Orbs: orbs})
	return xhttp.SuccessResponse(c, echo.Map{"aspects": matches})
}

func (h *Handler) Synastry(c echo.Context) error {
	start := time.Now()
	endpoint := "synastry"
	defer func() { metrics.EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.SynastryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	first, err := models.ParseInstant(req.Date1, req.Time1)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}
	second := first
	if req.Date2 != "" {
		if second, err = models.ParseInstant(req.Date2, req.Time2); err != nil {
			return h.respondError(c, endpoint, err)
		}
	}
	bodies1, err := parseBodyNames(req.Bodies1)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}
	bodies2, err := parseBodyNames(req.Bodies2)
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

	ctx := c.Request().Context()
	set1, err := h.provider.Positions(ctx, ephemeris.JulianDayOf(first), bodies1)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}
	set2, err := h.provider.Positions(ctx, ephemeris.JulianDayOf(second), bodies2)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}

	matches := h.engine.Synastry(set1.Longitudes(), set2.Longitudes(), set1.Speeds(), set2.Speeds(),
		aspects.Options{Types: types, Orbs: orbs})
	return xhttp.SuccessResponse(c, echo.Map{"aspects": matches})
}

func (h *Handler) AspectTimeline(c echo.Context) error {
	start := time.Now()
	endpoint := "aspect_timeline"
	defer func() { metrics.EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.AspectTimelineRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	body1, err := ephemeris.ParseBody(req.Body1)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}
	body2, err := ephemeris.ParseBody(req.Body2)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}
	aspect, err := aspects.ParseAspect(req.Aspect)
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

	events, err := h.search.ExactAspects(c.Request().Context(), body1, body2, aspect, from, to, req.Orb)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}
	return xhttp.SuccessResponse(c, echo.Map{"events": events})
}
