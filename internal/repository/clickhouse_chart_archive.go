package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"AstroEngine/internal/domain/models"
	domrepo "AstroEngine/internal/domain/repository"
	pkgch "AstroEngine/pkg/clickhouse"
	applogger "AstroEngine/pkg/logger"
)

// CHChartArchive implements ChartArchive backed by ClickHouse. Charts are
// stored as JSON payloads keyed by chart id; ReplacingMergeTree collapses
// duplicate writes for the same id.
type CHChartArchive struct {
	db       *sql.DB
	client   *pkgch.Client
	database string
	l        *applogger.Logger
}

func NewCHChartArchive(ch *pkgch.Client, database string) *CHChartArchive {
	if database == "" {
		database = "astro"
	}
	return &CHChartArchive{db: ch.DB(), client: ch, database: database}
}

// SetLogger injects a structured logger.
func (a *CHChartArchive) SetLogger(l *applogger.Logger) { a.l = l }

func (a *CHChartArchive) table() string {
	return a.database + ".charts"
}

func (a *CHChartArchive) eventsTable() string {
	return a.database + ".timeline_events"
}

func (a *CHChartArchive) Init(ctx context.Context) error {
	stmts := []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", a.database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			chart_id   String,
			created_at DateTime,
			birth_date String,
			birth_time String,
			latitude   Float64,
			longitude  Float64,
			payload    String
		) ENGINE=ReplacingMergeTree(created_at) ORDER BY chart_id`, a.table()),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			chart_key    String,
			event_date   String,
			transit_body String,
			natal_body   String,
			aspect       String,
			applying     UInt8,
			retrograde   UInt8,
			orb          Float64,
			significance String,
			created_at   DateTime
		) ENGINE=ReplacingMergeTree(created_at)
		ORDER BY (chart_key, event_date, transit_body, natal_body, aspect)`, a.eventsTable()),
	}
	return a.client.InitSchema(ctx, stmts)
}

func (a *CHChartArchive) Store(ctx context.Context, chart *models.Chart) error {
	start := time.Now()
	payload, err := json.Marshal(chart)
	if err != nil {
		return fmt.Errorf("marshal chart: %w", err)
	}

	q := fmt.Sprintf("INSERT INTO %s (chart_id, created_at, birth_date, birth_time, latitude, longitude, payload) VALUES (?, ?, ?, ?, ?, ?, ?)", a.table())
	_, err = a.db.ExecContext(ctx, q,
		chart.ID,
		chart.CreatedAt,
		chart.Birth.DateString(),
		chart.Birth.TimeString(),
		chart.Latitude,
		chart.Longitude,
		string(payload),
	)
	if err != nil {
		if a.l != nil {
			a.l.Error("clickhouse chart store error",
				applogger.String("chart_id", chart.ID),
				applogger.Error(err),
			)
		}
		return fmt.Errorf("store chart: %w", err)
	}
	if a.l != nil {
		a.l.Debug("clickhouse chart stored",
			applogger.String("chart_id", chart.ID),
			applogger.Int("bytes", len(payload)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return nil
}

func (a *CHChartArchive) Get(ctx context.Context, id string) (*models.Chart, error) {
	q := fmt.Sprintf("SELECT payload FROM %s WHERE chart_id = ? ORDER BY created_at DESC LIMIT 1", a.table())
	var payload string
	if err := a.db.QueryRowContext(ctx, q, id).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domrepo.ErrChartNotFound
		}
		if a.l != nil {
			a.l.Error("clickhouse chart get error",
				applogger.String("chart_id", id),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("get chart: %w", err)
	}

	var chart models.Chart
	if err := json.Unmarshal([]byte(payload), &chart); err != nil {
		return nil, fmt.Errorf("unmarshal chart %s: %w", id, err)
	}
	return &chart, nil
}

// StoreEvents batch-inserts forecast timeline events under a chart key.
// The replacing merge tree collapses re-runs over the same period.
func (a *CHChartArchive) StoreEvents(ctx context.Context, key string, events []models.TimelineEvent) error {
	if len(events) == 0 {
		return nil
	}
	start := time.Now()

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin events batch: %w", err)
	}
	q := fmt.Sprintf("INSERT INTO %s (chart_key, event_date, transit_body, natal_body, aspect, applying, retrograde, orb, significance, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)", a.eventsTable())
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare events batch: %w", err)
	}
	now := time.Now().UTC()
	for _, ev := range events {
		if _, err := stmt.ExecContext(ctx, key, ev.Date,
			string(ev.TransitBody), string(ev.NatalBody), string(ev.Aspect),
			boolToUint8(ev.Applying), boolToUint8(ev.Retrograde),
			ev.Orb, ev.Significance, now,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("store event %s: %w", ev.Key(), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit events batch: %w", err)
	}

	if a.l != nil {
		a.l.Debug("clickhouse timeline events stored",
			applogger.String("chart_key", key),
			applogger.Int("events", len(events)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return nil
}

func boolToUint8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

func (a *CHChartArchive) Health(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

func (a *CHChartArchive) Close() error {
	return a.client.Close()
}
