package ephemeris

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"AstroEngine/internal/domain/models"
	"AstroEngine/pkg/logger"
)

// bodyTable is one tabulated body: states sampled on a uniform Julian
// Day grid, linearly interpolated between samples.
type bodyTable struct {
	StartJD    float64   `yaml:"start_jd"`
	StepDays   float64   `yaml:"step_days"`
	Longitudes []float64 `yaml:"longitudes"`
	Latitudes  []float64 `yaml:"latitudes,omitempty"`
	Distances  []float64 `yaml:"distances,omitempty"`
}

// FileSource serves positions from a precomputed table on disk, for
// deployments that want higher precision than the analytic series over
// a bounded date range.
type FileSource struct {
	tables map[models.Body]bodyTable
	path   string
}

// NewFileSource loads a table file. The format is a YAML map of body
// name to sampled series.
func NewFileSource(path string) (*FileSource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ephemeris table: %w", err)
	}
	tables := make(map[models.Body]bodyTable)
	if err := yaml.Unmarshal(raw, &tables); err != nil {
		return nil, fmt.Errorf("parse ephemeris table %s: %w", path, err)
	}
	for body, t := range tables {
		if t.StepDays <= 0 || len(t.Longitudes) < 2 {
			return nil, fmt.Errorf("ephemeris table %s: body %s needs step_days > 0 and at least 2 samples", path, body)
		}
	}
	return &FileSource{tables: tables, path: path}, nil
}

func (s *FileSource) Name() string { return "table:" + s.path }

// State implements Source by linear interpolation on the grid. Speed
// is the slope of the bracketing segment.
func (s *FileSource) State(jd float64, body models.Body) (BodyState, error) {
	t, ok := s.tables[body]
	if !ok {
		return BodyState{}, fmt.Errorf("%w: no table for %s", models.ErrEphemerisUnavailable, body)
	}
	endJD := t.StartJD + float64(len(t.Longitudes)-1)*t.StepDays
	if jd < t.StartJD || jd > endJD {
		return BodyState{}, fmt.Errorf("%w: jd %.2f outside table range [%.2f, %.2f]", models.ErrEphemerisUnavailable, jd, t.StartJD, endJD)
	}

	pos := (jd - t.StartJD) / t.StepDays
	i := int(pos)
	if i >= len(t.Longitudes)-1 {
		i = len(t.Longitudes) - 2
	}
	frac := pos - float64(i)

	step := signedArc(t.Longitudes[i], t.Longitudes[i+1])
	return BodyState{
		Longitude: norm360(t.Longitudes[i] + step*frac),
		Latitude:  sampleAt(t.Latitudes, i, frac),
		Distance:  sampleAt(t.Distances, i, frac),
		Speed:     step / t.StepDays,
	}, nil
}

func sampleAt(series []float64, i int, frac float64) float64 {
	if len(series) <= i+1 {
		return 0
	}
	return series[i] + (series[i+1]-series[i])*frac
}

// FallbackSource tries a primary source and falls back to a secondary
// when the primary has no coverage. Bad input errors pass through.
type FallbackSource struct {
	primary  Source
	fallback Source
	log      *logger.Logger
}

// NewFallbackSource chains two sources.
func NewFallbackSource(primary, fallback Source, log *logger.Logger) *FallbackSource {
	return &FallbackSource{primary: primary, fallback: fallback, log: log}
}

func (s *FallbackSource) Name() string {
	return s.primary.Name() + "+" + s.fallback.Name()
}

func (s *FallbackSource) State(jd float64, body models.Body) (BodyState, error) {
	state, err := s.primary.State(jd, body)
	if err == nil {
		return state, nil
	}
	if !errors.Is(err, models.ErrEphemerisUnavailable) {
		return BodyState{}, err
	}
	s.log.Warn("primary ephemeris source unavailable, using fallback",
		logger.String("primary", s.primary.Name()),
		logger.String("body", string(body)),
		logger.Error(err))
	return s.fallback.State(jd, body)
}
