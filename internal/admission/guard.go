// Package admission gates event creation. Only the "ads" category is
// restricted: the caller's IP is resolved to a country, and the country is
// checked against an external permission endpoint. Every lookup failure
// degrades to deny; the guard itself never returns an error.
package admission

import (
	"context"
	"log/slog"
	"time"

	"github.com/events7/events7-api/internal/events/domain"
)

// loopbackV6 cannot be geolocated; requests from it are looked up as the
// configured override address instead so local testing still works.
const loopbackV6 = "::1"

const defaultTimeout = 5 * time.Second

// DefaultTestIPOverride is the address substituted for the IPv6 loopback
// literal. Kept as the historical value for local-testing parity.
const DefaultTestIPOverride = "193.77.212.29"

type Config struct {
	// GeoBaseURL is the base URL of the IP geolocation service.
	GeoBaseURL string
	// PolicyURL is the country-permission endpoint. When empty, every ads
	// creation is denied.
	PolicyURL      string
	PolicyUsername string
	PolicyPassword string
	// TestIPOverride replaces the IPv6 loopback literal before geolocation.
	TestIPOverride string
	// Timeout bounds each of the two outbound lookups.
	Timeout time.Duration
}

// Payload is the slice of the create-event body the guard inspects.
type Payload struct {
	Type domain.EventType `json:"type"`
}

// Guard decides whether a create-event request may proceed to persistence.
// It holds no state; one instance serves all requests concurrently.
type Guard struct {
	geo        *GeoClient
	policy     *PolicyClient
	ipOverride string
	logger     *slog.Logger
}

func NewGuard(cfg Config, logger *slog.Logger) *Guard {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.TestIPOverride == "" {
		cfg.TestIPOverride = DefaultTestIPOverride
	}
	return &Guard{
		geo:        NewGeoClient(cfg.GeoBaseURL, cfg.Timeout),
		policy:     NewPolicyClient(cfg.PolicyURL, cfg.PolicyUsername, cfg.PolicyPassword, cfg.Timeout),
		ipOverride: cfg.TestIPOverride,
		logger:     logger,
	}
}

// Evaluate returns true when the request may proceed. forwarded carries the
// proxy-reported addresses in order; remoteIP is the connection-level
// fallback.
func (g *Guard) Evaluate(ctx context.Context, payload *Payload, forwarded []string, remoteIP string) bool {
	// A missing body is let through; the validation layer behind the guard
	// rejects it. Historical behavior, kept for compatibility.
	if payload == nil {
		return true
	}

	if payload.Type != domain.EventTypeAds {
		return true
	}

	ip := remoteIP
	if len(forwarded) > 0 {
		ip = forwarded[0]
	}
	if ip == "" {
		return false
	}

	return g.validateIPForAds(ctx, ip)
}

func (g *Guard) validateIPForAds(ctx context.Context, ip string) bool {
	if ip == loopbackV6 {
		ip = g.ipOverride
	}

	geo, err := g.geo.Lookup(ctx, ip)
	if err != nil {
		g.logger.Error("geolocation lookup failed", "ip", ip, "error", err)
		return false
	}
	if geo.Status == geoStatusFail || geo.CountryCode == "" {
		return false
	}

	allowed, err := g.policy.CountryAllowed(ctx, geo.CountryCode)
	if err != nil {
		g.logger.Error("country permission lookup failed", "country_code", geo.CountryCode, "error", err)
		return false
	}
	return allowed
}
