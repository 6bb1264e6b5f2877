package repository

import (
	"context"
	"errors"

	"AstroEngine/internal/domain/models"
)

// ChartArchive persists computed charts for later retrieval by ID,
// plus the timeline events produced by forecast scans.
type ChartArchive interface {
	Init(ctx context.Context) error // ensure tables, health checks
	Store(ctx context.Context, chart *models.Chart) error
	Get(ctx context.Context, id string) (*models.Chart, error)
	StoreEvents(ctx context.Context, key string, events []models.TimelineEvent) error
	Health(ctx context.Context) error // ping
	Close() error
}

// EventPublisher streams computed timeline events to downstream
// consumers. Optional wiring; callers nil-check it.
type EventPublisher interface {
	PublishEvents(ctx context.Context, key string, events []models.TimelineEvent) error
	Close() error
}

// Metrics is implemented by the observability layer.
type Metrics interface {
	RecordComputation(kind string, seconds float64)
	RecordCacheHit(scope string)
	RecordCacheMiss(scope string)
	RecordError(kind string)
}

// ErrChartNotFound is returned by archives for unknown chart IDs.
var ErrChartNotFound = errors.New("chart not found")
