package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"AstroEngine/internal/ephemeris"
	"AstroEngine/internal/services/aspects"
	"AstroEngine/internal/services/balance"
	"AstroEngine/internal/services/progressions"
	tsearch "AstroEngine/internal/services/transits"
	"AstroEngine/internal/usecase"
	"AstroEngine/pkg/logger"

	"github.com/labstack/echo/v4"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	provider := ephemeris.NewProvider(ephemeris.NewAnalyticSource(), log)
	engine := aspects.NewEngine(log)
	search := tsearch.NewSearch(provider, engine, log)
	prog := progressions.NewEngine(provider, engine, log)
	charts := usecase.NewChartUseCase(provider, engine, balance.NewAnalyzer(), nil, nil, log)
	transits := usecase.NewTransitUseCase(provider, search, nil, nil, nil, log)

	h := NewHandler(log, charts, transits, provider, engine, search, prog)
	e := echo.New()
	h.RegisterRoutes(e)
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) envelope {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope from %q: %v", rec.Body.String(), err)
	}
	return env
}

func TestBuildChartEndpoint(t *testing.T) {
	e := newTestServer(t)
	env := doJSON(t, e, http.MethodPost, "/api/charts", `{
		"date": "1990-06-15",
		"time": "14:30:00",
		"latitude": 40.71,
		"longitude": -74.01,
		"with_aspects": true,
		"with_elements": true,
		"with_modalities": true
	}`)
	if env.Status != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (%s)", env.Status, env.Data)
	}

	var chart struct {
		ID      string `json:"id"`
		Summary struct {
			SunSign string `json:"sun_sign"`
		} `json:"summary"`
		Houses  json.RawMessage `json:"houses"`
		Aspects json.RawMessage `json:"aspects"`
	}
	if err := json.Unmarshal(env.Data, &chart); err != nil {
		t.Fatalf("decode chart: %v", err)
	}
	if !strings.HasPrefix(chart.ID, "chart-") {
		t.Errorf("chart id %q", chart.ID)
	}
	if chart.Summary.SunSign != "Gemini" {
		t.Errorf("sun sign %q, want Gemini", chart.Summary.SunSign)
	}
	if len(chart.Houses) == 0 || len(chart.Aspects) == 0 {
		t.Error("houses and aspects should be present")
	}
}

func TestBuildChartValidation(t *testing.T) {
	e := newTestServer(t)
	env := doJSON(t, e, http.MethodPost, "/api/charts", `{"time": "14:30:00"}`)
	if env.Status != http.StatusBadRequest {
		t.Errorf("missing date should be 400, got %d", env.Status)
	}

	env = doJSON(t, e, http.MethodPost, "/api/charts", `{"date": "1990-06-15", "latitude": 95}`)
	if env.Status != http.StatusBadRequest {
		t.Errorf("latitude 95 should be 400, got %d", env.Status)
	}
}

func TestGetChartNotFound(t *testing.T) {
	e := newTestServer(t)
	env := doJSON(t, e, http.MethodGet, "/api/charts/chart-deadbeef", "")
	if env.Status != http.StatusNotFound {
		t.Errorf("unknown chart should be 404, got %d", env.Status)
	}
}

func TestChartSummaryEndpoint(t *testing.T) {
	e := newTestServer(t)
	env := doJSON(t, e, http.MethodGet, "/api/charts/summary?date=1990-06-15&latitude=40.71&longitude=-74.01", "")
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d (%s)", env.Status, env.Data)
	}
	var summary struct {
		SunSign   string `json:"sun_sign"`
		Ascendant string `json:"ascendant"`
	}
	if err := json.Unmarshal(env.Data, &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.SunSign != "Gemini" {
		t.Errorf("sun sign %q, want Gemini", summary.SunSign)
	}
	if summary.Ascendant == "" {
		t.Error("ascendant should be present with coordinates")
	}
}

func TestPositionsEndpoint(t *testing.T) {
	e := newTestServer(t)
	env := doJSON(t, e, http.MethodGet, "/api/planets?date=2000-01-01&bodies=sun,moon", "")
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d (%s)", env.Status, env.Data)
	}
	var payload struct {
		Positions map[string]struct {
			Longitude float64 `json:"longitude"`
			Sign      string  `json:"sign"`
		} `json:"positions"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("decode positions: %v", err)
	}
	sun, ok := payload.Positions["sun"]
	if !ok {
		t.Fatalf("sun missing from %v", payload.Positions)
	}
	if sun.Sign != "Capricorn" {
		t.Errorf("new year sun in %s, want Capricorn", sun.Sign)
	}
	if _, ok := payload.Positions["mars"]; ok {
		t.Error("mars should be filtered out")
	}
}

func TestPositionsUnknownBody(t *testing.T) {
	e := newTestServer(t)
	env := doJSON(t, e, http.MethodGet, "/api/planets?date=2000-01-01&bodies=vulcan", "")
	if env.Status != http.StatusBadRequest {
		t.Errorf("unknown body should be 400, got %d", env.Status)
	}
}

func TestAspectsEndpoint(t *testing.T) {
	e := newTestServer(t)
	env := doJSON(t, e, http.MethodPost, "/api/aspects", `{
		"positions": {"sun": 10.0, "moon": 130.5, "mars": 12.0}
	}`)
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d (%s)", env.Status, env.Data)
	}
	var payload struct {
		Aspects []struct {
			Body1 string `json:"body1"`
			Body2 string `json:"body2"`
			Type  string `json:"type"`
		} `json:"aspects"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("decode aspects: %v", err)
	}
	foundTrine, foundConj := false, false
	for _, a := range payload.Aspects {
		if a.Type == "trine" {
			foundTrine = true
		}
		if a.Type == "conjunction" {
			foundConj = true
		}
	}
	if !foundTrine || !foundConj {
		t.Errorf("expected sun-moon trine and sun-mars conjunction in %v", payload.Aspects)
	}
}

func TestSynastryEndpoint(t *testing.T) {
	e := newTestServer(t)
	env := doJSON(t, e, http.MethodPost, "/api/aspects/synastry", `{
		"date1": "1990-06-15",
		"date2": "1992-09-01",
		"bodies1": ["sun", "moon", "venus"],
		"bodies2": ["sun", "moon", "mars"]
	}`)
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d (%s)", env.Status, env.Data)
	}
}

func TestTransitsEndpoint(t *testing.T) {
	e := newTestServer(t)
	env := doJSON(t, e, http.MethodPost, "/api/transits", `{
		"natal_positions": {"sun": 280.5, "moon": 120.0},
		"date": "2000-01-01"
	}`)
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d (%s)", env.Status, env.Data)
	}
	var payload struct {
		Transits []struct {
			TransitBody string  `json:"transit_body"`
			NatalBody   string  `json:"natal_body"`
			Aspect      string  `json:"aspect"`
			Orb         float64 `json:"orb"`
		} `json:"transits"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("decode transits: %v", err)
	}
	// transiting sun sits right on the natal sun longitude on new year 2000
	found := false
	for _, tr := range payload.Transits {
		if tr.TransitBody == "sun" && tr.NatalBody == "sun" && tr.Aspect == "conjunction" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a sun-sun conjunction in %v", payload.Transits)
	}
}

func TestTransitsAcceptChartAngles(t *testing.T) {
	e := newTestServer(t)
	// an all-encompassing conjunction orb makes every transiting body
	// contact every natal point, angles included
	env := doJSON(t, e, http.MethodPost, "/api/transits", `{
		"natal_positions": {"sun": 84.83, "ascendant": 123.45, "mc": 33.21, "part_of_fortune": 290.0},
		"date": "2000-01-01",
		"aspects": ["conjunction"],
		"orbs": {"conjunction": 180}
	}`)
	if env.Status != http.StatusOK {
		t.Fatalf("angle-bearing natal map rejected: status = %d (%s)", env.Status, env.Data)
	}
	var payload struct {
		Transits []struct {
			NatalBody string `json:"natal_body"`
		} `json:"transits"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("decode transits: %v", err)
	}
	hit := map[string]bool{}
	for _, tr := range payload.Transits {
		hit[tr.NatalBody] = true
	}
	for _, want := range []string{"ascendant", "mc", "part_of_fortune"} {
		if !hit[want] {
			t.Errorf("no transit contacts natal %s", want)
		}
	}
}

func TestProgressionsEndpoint(t *testing.T) {
	e := newTestServer(t)
	env := doJSON(t, e, http.MethodPost, "/api/progressions", `{
		"birth_date": "1970-04-02",
		"target_date": "2000-04-02",
		"method": "secondary"
	}`)
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d (%s)", env.Status, env.Data)
	}
	var chart struct {
		Mapping struct {
			Method string `json:"method"`
		} `json:"mapping"`
		Positions map[string]json.RawMessage `json:"positions"`
	}
	if err := json.Unmarshal(env.Data, &chart); err != nil {
		t.Fatalf("decode chart: %v", err)
	}
	if chart.Mapping.Method != "secondary" {
		t.Errorf("method %q", chart.Mapping.Method)
	}
	if len(chart.Positions) == 0 {
		t.Error("progressed positions missing")
	}
}

func TestProgressedTransitsEndpoint(t *testing.T) {
	e := newTestServer(t)
	env := doJSON(t, e, http.MethodPost, "/api/progressions/transits", `{
		"birth_date": "1970-04-02",
		"target_date": "2000-04-02",
		"bodies": ["saturn", "jupiter"]
	}`)
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d (%s)", env.Status, env.Data)
	}
	var out struct {
		Progressed struct {
			Positions map[string]json.RawMessage `json:"positions"`
		} `json:"progressed"`
		Aspects []struct {
			Body1 string `json:"body1"`
		} `json:"aspects"`
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Progressed.Positions) == 0 {
		t.Error("progressed positions missing")
	}
	for _, m := range out.Aspects {
		if m.Body1 != "saturn" && m.Body1 != "jupiter" {
			t.Errorf("transiting body %q outside requested set", m.Body1)
		}
	}
}

func TestProgressionsBadMethod(t *testing.T) {
	e := newTestServer(t)
	env := doJSON(t, e, http.MethodPost, "/api/progressions", `{
		"birth_date": "1970-04-02",
		"target_date": "2000-04-02",
		"method": "quaternary"
	}`)
	if env.Status != http.StatusBadRequest {
		t.Errorf("bad method should be 400, got %d", env.Status)
	}
}
