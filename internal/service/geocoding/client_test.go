package geocoding

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestResolve(t *testing.T) {
	var gotQuery, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"40.7127281","lon":"-74.0060152","display_name":"New York, United States"}]`))
	}))
	defer srv.Close()

	g := New(srv.URL, "astro-test", time.Second)
	loc, err := g.Resolve(context.Background(), "New York")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if gotQuery != "New York" {
		t.Errorf("query q = %q", gotQuery)
	}
	if gotAgent != "astro-test" {
		t.Errorf("user agent = %q", gotAgent)
	}
	if loc.Latitude < 40.7 || loc.Latitude > 40.72 {
		t.Errorf("latitude = %v", loc.Latitude)
	}
	if loc.Longitude > -74.0 || loc.Longitude < -74.01 {
		t.Errorf("longitude = %v", loc.Longitude)
	}
	if loc.Name == "" {
		t.Error("display name missing")
	}
}

func TestResolveNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	g := New(srv.URL, "astro-test", time.Second)
	if _, err := g.Resolve(context.Background(), "Nowhere Specific"); !errors.Is(err, ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestResolveEmptyPlace(t *testing.T) {
	g := New("http://localhost:1", "astro-test", time.Second)
	if _, err := g.Resolve(context.Background(), "  "); !errors.Is(err, ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}
