package geocoding

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"AstroEngine/pkg/cache"
	xhttp "AstroEngine/pkg/http"
	applogger "AstroEngine/pkg/logger"
)

// ErrNotFound is returned when the place yields no results.
var ErrNotFound = errors.New("geocoding: place not found")

// Location is a resolved place.
type Location struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Resolver turns a free-form place name into coordinates.
type Resolver interface {
	Resolve(ctx context.Context, place string) (Location, error)
}

// Client is a Nominatim-style geocoding client with an optional cache in
// front of the HTTP lookup.
type Client struct {
	baseURL   string
	userAgent string
	client    *xhttp.Client
	cache     cache.Service
	ttl       time.Duration
	l         *applogger.Logger
}

// Option configures Client.
type Option func(*Client)

// WithCache attaches a cache for resolved locations.
func WithCache(c cache.Service, ttl time.Duration) Option {
	return func(g *Client) {
		g.cache = c
		if ttl > 0 {
			g.ttl = ttl
		}
	}
}

// WithLogger injects a structured logger.
func WithLogger(l *applogger.Logger) Option {
	return func(g *Client) {
		g.l = l
	}
}

// New builds a geocoding client. baseURL points at a Nominatim-compatible
// /search endpoint; userAgent is required by the Nominatim usage policy.
func New(baseURL, userAgent string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	g := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		client:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
		ttl:       24 * time.Hour,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (g *Client) Resolve(ctx context.Context, place string) (Location, error) {
	if g.baseURL == "" {
		return Location{}, fmt.Errorf("geocoding client not configured")
	}
	place = strings.TrimSpace(place)
	if place == "" {
		return Location{}, ErrNotFound
	}

	key := cache.GenerateKey("geo", strings.ToLower(place))
	if g.cache != nil {
		var loc Location
		if err := g.cache.Get(ctx, key, &loc); err == nil {
			if g.l != nil {
				g.l.Debug("geocoding cache hit", applogger.String("place", place))
			}
			return loc, nil
		}
	}

	var results []searchResult
	err := g.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    g.baseURL + "/search",
		Headers: map[string]string{
			"User-Agent": g.userAgent,
		},
		QueryParams: map[string][]string{
			"q":      {place},
			"format": {"json"},
			"limit":  {"1"},
		},
	}, &results)
	if err != nil {
		return Location{}, fmt.Errorf("geocode %q: %w", place, err)
	}
	if len(results) == 0 {
		return Location{}, ErrNotFound
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Location{}, fmt.Errorf("geocode %q: bad latitude %q", place, results[0].Lat)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Location{}, fmt.Errorf("geocode %q: bad longitude %q", place, results[0].Lon)
	}

	loc := Location{Name: results[0].DisplayName, Latitude: lat, Longitude: lon}
	if g.cache != nil {
		if err := g.cache.Set(ctx, key, loc, g.ttl); err != nil && g.l != nil {
			g.l.Warn("geocoding cache set failed", applogger.Error(err))
		}
	}
	return loc, nil
}
