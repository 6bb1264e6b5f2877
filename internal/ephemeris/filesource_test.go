package ephemeris

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"AstroEngine/internal/domain/models"
)

func writeTable(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ephemeris.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write table: %v", err)
	}
	return path
}

func TestFileSourceInterpolation(t *testing.T) {
	path := writeTable(t, `
sun:
  start_jd: 2451545.0
  step_days: 1.0
  longitudes: [280.0, 281.0, 282.0]
  distances: [0.983, 0.983, 0.984]
moon:
  start_jd: 2451545.0
  step_days: 1.0
  longitudes: [359.0, 12.0, 25.0]
`)
	src, err := NewFileSource(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	st, err := src.State(2451545.5, models.Sun)
	if err != nil {
		t.Fatalf("sun: %v", err)
	}
	if math.Abs(st.Longitude-280.5) > 1e-9 {
		t.Errorf("interpolated longitude %.6f, want 280.5", st.Longitude)
	}
	if math.Abs(st.Speed-1.0) > 1e-9 {
		t.Errorf("speed %.6f, want 1.0", st.Speed)
	}

	// interpolation across the 0 degree boundary takes the short way
	st, err = src.State(2451545.5, models.Moon)
	if err != nil {
		t.Fatalf("moon: %v", err)
	}
	if math.Abs(st.Longitude-5.5) > 1e-9 {
		t.Errorf("wrapped interpolation %.6f, want 5.5", st.Longitude)
	}
	if math.Abs(st.Speed-13.0) > 1e-9 {
		t.Errorf("wrapped speed %.6f, want 13.0", st.Speed)
	}
}

func TestFileSourceCoverage(t *testing.T) {
	path := writeTable(t, `
sun:
  start_jd: 2451545.0
  step_days: 1.0
  longitudes: [280.0, 281.0]
`)
	src, err := NewFileSource(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if _, err := src.State(2451540.0, models.Sun); !errors.Is(err, models.ErrEphemerisUnavailable) {
		t.Errorf("out of range should be ErrEphemerisUnavailable, got %v", err)
	}
	if _, err := src.State(2451545.5, models.Moon); !errors.Is(err, models.ErrEphemerisUnavailable) {
		t.Errorf("missing body should be ErrEphemerisUnavailable, got %v", err)
	}
}

func TestFileSourceRejectsBadTable(t *testing.T) {
	path := writeTable(t, `
sun:
  start_jd: 2451545.0
  step_days: 0
  longitudes: [280.0, 281.0]
`)
	if _, err := NewFileSource(path); err == nil {
		t.Fatal("zero step_days should be rejected")
	}
}

func TestFallbackSource(t *testing.T) {
	path := writeTable(t, `
sun:
  start_jd: 2451545.0
  step_days: 1.0
  longitudes: [280.0, 281.0]
`)
	file, err := NewFileSource(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	src := NewFallbackSource(file, NewAnalyticSource(), testLogger(t))

	// covered by the table: served from the table
	st, err := src.State(2451545.0, models.Sun)
	if err != nil {
		t.Fatalf("primary: %v", err)
	}
	if st.Longitude != 280.0 {
		t.Errorf("expected table value 280.0, got %.4f", st.Longitude)
	}

	// no moon table: falls through to the analytic series
	if _, err := src.State(2451545.0, models.Moon); err != nil {
		t.Errorf("fallback should cover the moon: %v", err)
	}

	// bad input does not fall back
	if _, err := src.State(2451545.0, models.Body("ceres")); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("unknown body should surface invalid input, got %v", err)
	}
}
