package discovery

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Advertiser provides mDNS service advertising.
type Advertiser interface {
	// Advertise registers the service, replacing any earlier registration.
	Advertise(ctx context.Context, info *ServiceInfo) error

	// Update replaces the TXT records of the registered service.
	Update(info *ServiceInfo) error

	// Stop withdraws the service.
	Stop()
}

// AdvertiserConfig configures advertiser behavior.
type AdvertiserConfig struct {
	// Interface specifies which network interface to use.
	// Empty string means all interfaces.
	Interface string

	// TTL is the DNS record TTL.
	// Default: 120 seconds.
	TTL time.Duration
}

// DefaultAdvertiserConfig returns the default advertiser configuration.
func DefaultAdvertiserConfig() AdvertiserConfig {
	return AdvertiserConfig{
		Interface: "",
		TTL:       120 * time.Second,
	}
}

// Announcer keeps an advertisement in step with the timer phase.
type Announcer struct {
	mu         sync.Mutex
	advertiser Advertiser
	info       ServiceInfo
	active     bool
	logger     *slog.Logger
}

// NewAnnouncer creates an announcer for info. Nothing is advertised until
// Start is called.
func NewAnnouncer(advertiser Advertiser, info ServiceInfo, logger *slog.Logger) *Announcer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Announcer{advertiser: advertiser, info: info, logger: logger}
}

// Start registers the service.
func (a *Announcer) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.info.Validate(); err != nil {
		return err
	}
	info := a.info
	if err := a.advertiser.Advertise(ctx, &info); err != nil {
		return err
	}
	a.active = true
	a.logger.Info("advertising service",
		"instance", info.Instance,
		"service", ServiceType,
		"port", info.Port)
	return nil
}

// SetState records the timer phase and updates the TXT records if the
// service is registered.
func (a *Announcer) SetState(state string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.info.State = state
	if !a.active {
		return
	}
	info := a.info
	if err := a.advertiser.Update(&info); err != nil {
		a.logger.Warn("mDNS update failed", "state", state, "error", err)
	}
}

// Info returns the current advertisement.
func (a *Announcer) Info() ServiceInfo {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.info
}

// Stop withdraws the service.
func (a *Announcer) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.active {
		return
	}
	a.advertiser.Stop()
	a.active = false
}
