package api

import (
	"encoding/json"
	"fmt"
	"time"

	"AstroEngine/internal/domain/models"
	"AstroEngine/internal/service/metrics"
	"AstroEngine/internal/usecase"
	xhttp "AstroEngine/pkg/http"
	applogger "AstroEngine/pkg/logger"

	"github.com/labstack/echo/v4"
)

func (h *Handler) BuildChart(c echo.Context) error {
	start := time.Now()
	endpoint := "build_chart"
	defer func() { metrics.EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.ChartRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	birth, err := models.ParseInstant(req.Date, req.Time)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}

	lat, lon := req.Latitude, req.Longitude
	if req.Place != "" && lat == 0 && lon == 0 {
		if h.geocoder == nil {
			return h.respondError(c, endpoint, models.NewInvalidInput("place", "place lookup is not configured"))
		}
		loc, err := h.geocoder.Resolve(c.Request().Context(), req.Place)
		if err != nil {
			return h.respondError(c, endpoint, err)
		}
		lat, lon = loc.Latitude, loc.Longitude
		h.log.Debug("place resolved",
			applogger.String("place", req.Place),
			applogger.String("name", loc.Name),
		)
	}

	chart, err := h.charts.BuildChart(c.Request().Context(), usecase.BuildChartParams{
		Birth:          birth,
		Latitude:       lat,
		Longitude:      lon,
		HouseSystem:    req.HouseSystem,
		WithAspects:    req.Aspects,
		WithDignities:  req.Dignities,
		WithElements:   req.Elements,
		WithModalities: req.Modalities,
	})
	if err != nil {
		return h.respondError(c, endpoint, err)
	}
	return xhttp.CreatedResponse(c, chart)
}

func (h *Handler) GetChart(c echo.Context) error {
	start := time.Now()
	endpoint := "get_chart"
	defer func() { metrics.EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	chart, err := h.charts.GetChart(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.respondError(c, endpoint, err)
	}
	return xhttp.SuccessResponse(c, chart)
}

func (h *Handler) ChartSummary(c echo.Context) error {
	start := time.Now()
	endpoint := "chart_summary"
	defer func() { metrics.EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.ChartSummaryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	birth, err := models.ParseInstant(req.Date, req.Time)
	if err != nil {
		return h.respondError(c, endpoint, err)
	}

	cacheKey := summaryCacheKey(req)
	if h.cache != nil {
		if b, ok, cerr := h.cache.GetBytes(cacheKey); cerr != nil {
			h.log.Warn("summary cache get failed", applogger.Error(cerr))
		} else if ok {
			var cached models.ChartSummary
			if json.Unmarshal(b, &cached) == nil {
				return xhttp.SuccessResponse(c, &cached)
			}
		}
	}

	summary, err := h.charts.QuickSummary(c.Request().Context(), usecase.SummaryParams{
		Birth:     birth,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		return h.respondError(c, endpoint, err)
	}

	if h.cache != nil {
		if b, merr := json.Marshal(summary); merr == nil {
			if cerr := h.cache.SetBytes(cacheKey, b, h.summaryTTL); cerr != nil {
				h.log.Warn("summary cache set failed", applogger.Error(cerr))
			}
		}
	}
	return xhttp.SuccessResponse(c, summary)
}

func summaryCacheKey(req *models.ChartSummaryRequest) string {
	lat, lon := "", ""
	if req.Latitude != nil {
		lat = fmt.Sprintf("%.4f", *req.Latitude)
	}
	if req.Longitude != nil {
		lon = fmt.Sprintf("%.4f", *req.Longitude)
	}
	return fmt.Sprintf("summary:%s:%s:%s:%s", req.Date, req.Time, lat, lon)
}
