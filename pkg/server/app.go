package server

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	domrepo "AstroEngine/internal/domain/repository"
	"AstroEngine/internal/ephemeris"
	"AstroEngine/internal/handler/api"
	icache "AstroEngine/internal/service/cache"
	"AstroEngine/internal/service/geocoding"
	"AstroEngine/internal/services/aspects"
	"AstroEngine/internal/services/progressions"
	tsearch "AstroEngine/internal/services/transits"
	"AstroEngine/internal/usecase"
	pkgcache "AstroEngine/pkg/cache"
	"AstroEngine/pkg/config"
	xhttp "AstroEngine/pkg/http"
	applogger "AstroEngine/pkg/logger"
)

const slowRequestThreshold = 2 * time.Second

// App encapsulates the entire application lifecycle.
type App struct {
	cfg       *config.Config
	log       *applogger.Logger
	provider  *ephemeris.Provider
	engine    *aspects.Engine
	search    *tsearch.Search
	prog      *progressions.Engine
	charts    *usecase.ChartUseCase
	transits  *usecase.TransitUseCase
	archive   domrepo.ChartArchive
	publisher domrepo.EventPublisher

	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	provider *ephemeris.Provider,
	engine *aspects.Engine,
	search *tsearch.Search,
	prog *progressions.Engine,
	charts *usecase.ChartUseCase,
	transits *usecase.TransitUseCase,
	archive domrepo.ChartArchive,
	publisher domrepo.EventPublisher,
) *App {
	return &App{
		cfg:       cfg,
		log:       log,
		provider:  provider,
		engine:    engine,
		search:    search,
		prog:      prog,
		charts:    charts,
		transits:  transits,
		archive:   archive,
		publisher: publisher,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	handler := api.NewHandler(a.log, a.charts, a.transits, a.provider, a.engine, a.search, a.prog)

	if a.cfg.Cache.Enabled {
		handler.SetCache(a.buildResponseCache())
		handler.SetCacheTTLs(a.cfg.Cache.TTL.Summary, a.cfg.Cache.TTL.Forecast)
	}
	if a.cfg.Geocoding.Enabled {
		handler.SetGeocoder(a.buildGeocoder())
	}
	handler.SetRateLimits(api.RateLimits{
		ForecastCapacity: a.cfg.RateLimit.ForecastCapacity,
		ForecastRefill:   a.cfg.RateLimit.ForecastRefill,
		PeriodCapacity:   a.cfg.RateLimit.PeriodCapacity,
		PeriodRefill:     a.cfg.RateLimit.PeriodRefill,
	})

	a.httpServer = xhttp.NewServer(handler,
		xhttp.WithHost(a.cfg.Server.Host),
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithRequestLogger(a.log, slowRequestThreshold),
	)

	// Aggregate warn/error logs into Kafka alongside domain events.
	if pub, ok := a.publisher.(applogger.Publisher); ok && a.cfg.Events.LogTopic != "" {
		a.log.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   30 * time.Second,
			CountThreshold: 100,
			Topic:          a.cfg.Events.LogTopic,
			Publisher:      pub,
		})
	}

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("server started",
		applogger.String("host", a.cfg.Server.Host),
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("ephemeris", a.cfg.Ephemeris.Source),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.shutdown()
}

// buildResponseCache picks the byte cache used for summary/forecast responses.
func (a *App) buildResponseCache() icache.BytesCache {
	if a.cfg.Cache.Redis.Enabled {
		a.log.Info("response cache: redis", applogger.String("addr", a.cfg.Cache.Redis.Addr))
		return icache.NewRedisCache(icache.RedisConfig{
			Addr:     a.cfg.Cache.Redis.Addr,
			Password: a.cfg.Cache.Redis.Password,
			DB:       a.cfg.Cache.Redis.DB,
		})
	}
	a.log.Info("response cache: in-memory")
	return icache.NewTTLCache()
}

// buildGeocoder wires the Nominatim client with a layered lookup cache.
func (a *App) buildGeocoder() geocoding.Resolver {
	opts := []geocoding.Option{geocoding.WithLogger(a.log)}

	var svc pkgcache.Service
	if a.cfg.Cache.Enabled && a.cfg.Cache.Redis.Enabled {
		host, port := splitAddr(a.cfg.Cache.Redis.Addr)
		redisCache, err := pkgcache.NewRedisCache(
			pkgcache.WithRedisHost(host),
			pkgcache.WithRedisPort(port),
			pkgcache.WithRedisPassword(a.cfg.Cache.Redis.Password),
			pkgcache.WithRedisDB(a.cfg.Cache.Redis.DB),
			pkgcache.WithRedisPrefix("astro"),
		)
		if err != nil {
			a.log.Warn("geocoding redis cache unavailable, using memory cache", applogger.Error(err))
			svc = pkgcache.NewMemoryCache()
		} else {
			svc = pkgcache.NewLayeredCache(redisCache)
		}
	} else {
		svc = pkgcache.NewMemoryCache()
	}
	opts = append(opts, geocoding.WithCache(svc, a.cfg.Geocoding.CacheTTL))

	return geocoding.New(a.cfg.Geocoding.BaseURL, a.cfg.Geocoding.UserAgent, a.cfg.Geocoding.Timeout, opts...)
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	a.log.RemoveCollector()

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.log.Warn("event publisher close error", applogger.Error(err))
		}
	}
	if a.archive != nil {
		if err := a.archive.Close(); err != nil {
			a.log.Warn("chart archive close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}

func splitAddr(addr string) (string, int) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return addr, 6379
	}
	port := 6379
	if p, perr := net.LookupPort("tcp", portStr); perr == nil {
		port = p
	}
	return host, port
}
