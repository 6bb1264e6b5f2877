package di

import (
	"context"
	"fmt"
	"time"

	domrepo "AstroEngine/internal/domain/repository"
	"AstroEngine/internal/ephemeris"
	internalrepo "AstroEngine/internal/repository"
	"AstroEngine/internal/services/aspects"
	"AstroEngine/internal/services/balance"
	"AstroEngine/internal/services/progressions"
	tsearch "AstroEngine/internal/services/transits"
	"AstroEngine/internal/usecase"
	pkgch "AstroEngine/pkg/clickhouse"
	"AstroEngine/pkg/config"
	pkgkafka "AstroEngine/pkg/kafka"
	applogger "AstroEngine/pkg/logger"
	"AstroEngine/pkg/metrics"
	"AstroEngine/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	level := cfg.Logging.Level
	if level == "" {
		level = "info"
	}
	format := cfg.Logging.Format
	if format == "" {
		format = "console"
	}
	output := cfg.Logging.Output
	if output == "" {
		output = "stdout"
	}
	l, err := applogger.New(&applogger.Config{Level: level, Format: format, Output: output})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideEphemerisProvider builds the position provider. A file-backed
// table source falls back to the analytic source when the table cannot
// be loaded.
func ProvideEphemerisProvider(cfg *config.Config, l *applogger.Logger) *ephemeris.Provider {
	analytic := ephemeris.NewAnalyticSource()
	var source ephemeris.Source = analytic

	if cfg.Ephemeris.Source == "file" {
		file, err := ephemeris.NewFileSource(cfg.Ephemeris.TablePath)
		if err != nil {
			l.Warn("ephemeris table unavailable, using analytic source",
				applogger.String("path", cfg.Ephemeris.TablePath),
				applogger.Error(err),
			)
		} else {
			source = ephemeris.NewFallbackSource(file, analytic, l)
		}
	}

	return ephemeris.NewProvider(source, l)
}

// ProvideAspectEngine creates the aspect matcher.
func ProvideAspectEngine(l *applogger.Logger) *aspects.Engine {
	return aspects.NewEngine(l)
}

// ProvideBalanceAnalyzer creates the element/modality analyzer.
func ProvideBalanceAnalyzer() *balance.Analyzer {
	return balance.NewAnalyzer()
}

// ProvideTransitSearch creates the time-domain search.
func ProvideTransitSearch(cfg *config.Config, provider *ephemeris.Provider, engine *aspects.Engine, l *applogger.Logger) *tsearch.Search {
	s := tsearch.NewSearch(provider, engine, l)
	s.SetStep(cfg.Ephemeris.StepDays)
	return s
}

// ProvideProgressionEngine creates the progression engine.
func ProvideProgressionEngine(provider *ephemeris.Provider, engine *aspects.Engine, l *applogger.Logger) *progressions.Engine {
	return progressions.NewEngine(provider, engine, l)
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideChartArchive creates the ClickHouse chart archive when enabled.
// A disabled archive yields nil; chart retrieval then reports not found.
func ProvideChartArchive(cfg *config.Config, l *applogger.Logger) (domrepo.ChartArchive, error) {
	if !cfg.Archive.Enabled {
		return nil, nil
	}

	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.Archive.Host),
		pkgch.WithPort(cfg.Archive.Port),
		pkgch.WithDatabase(cfg.Archive.Database),
		pkgch.WithCredentials(cfg.Archive.User, cfg.Archive.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.Archive.UseHTTP),
		pkgch.WithAsyncInsert(cfg.Archive.AsyncInsert, cfg.Archive.WaitForAsync),
		pkgch.WithTimeouts(cfg.Archive.DialTimeout, cfg.Archive.ReadTimeout, cfg.Archive.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.Archive.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	archive := internalrepo.NewCHChartArchive(client, cfg.Archive.Database)
	archive.SetLogger(l)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := archive.Init(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("chart archive schema: %w", err)
	}

	return archive, nil
}

// ProvideEventPublisher creates the Kafka event publisher when enabled.
func ProvideEventPublisher(cfg *config.Config) (domrepo.EventPublisher, error) {
	if !cfg.Events.Enabled {
		return nil, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Events.Brokers),
		pkgkafka.WithCompression(cfg.Events.Compression),
		pkgkafka.WithRequiredAcks(cfg.Events.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Events.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Events.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Events.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Events.Producer.WriteTimeout, cfg.Events.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Events.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Events.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}

	return internalrepo.NewKafkaEventPublisher(producer, cfg.Events.Topic), nil
}

// ProvideChartUseCase creates the chart builder.
func ProvideChartUseCase(
	provider *ephemeris.Provider,
	engine *aspects.Engine,
	analyzer *balance.Analyzer,
	archive domrepo.ChartArchive,
	m domrepo.Metrics,
	l *applogger.Logger,
) *usecase.ChartUseCase {
	return usecase.NewChartUseCase(provider, engine, analyzer, archive, m, l)
}

// ProvideTransitUseCase creates the transit query use case.
func ProvideTransitUseCase(
	provider *ephemeris.Provider,
	search *tsearch.Search,
	publisher domrepo.EventPublisher,
	archive domrepo.ChartArchive,
	m domrepo.Metrics,
	l *applogger.Logger,
) *usecase.TransitUseCase {
	return usecase.NewTransitUseCase(provider, search, publisher, archive, m, l)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	provider *ephemeris.Provider,
	engine *aspects.Engine,
	search *tsearch.Search,
	prog *progressions.Engine,
	charts *usecase.ChartUseCase,
	transits *usecase.TransitUseCase,
	archive domrepo.ChartArchive,
	publisher domrepo.EventPublisher,
) *server.App {
	return server.New(cfg, l, provider, engine, search, prog, charts, transits, archive, publisher)
}
