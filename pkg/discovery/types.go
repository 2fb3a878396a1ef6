package discovery

import (
	"errors"
	"fmt"
)

// Service parameters.
const (
	ServiceType = "_segtimer._tcp"
	Domain      = "local."
	DefaultPort = 80

	// MaxInstanceNameLength is the DNS-SD limit for an instance label.
	MaxInstanceNameLength = 63
)

// TXT record keys.
const (
	TXTKeyVersion      = "version"
	TXTKeyStatusPath   = "status_path"
	TXTKeyIntervalPath = "interval_path"
	TXTKeyState        = "state"
)

// Errors.
var (
	ErrMissingRequired     = errors.New("missing required field")
	ErrInvalidInstanceName = errors.New("invalid instance name")
	ErrInvalidPort         = errors.New("invalid port")
	ErrNotAdvertising      = errors.New("not advertising")
)

// ServiceInfo describes the advertised timer.
type ServiceInfo struct {
	Instance     string
	Port         uint16
	Version      string
	StatusPath   string
	IntervalPath string

	// State is the timer phase name; empty omits the record.
	State string
}

// Validate checks the fields needed to register the service.
func (i *ServiceInfo) Validate() error {
	if err := ValidateInstanceName(i.Instance); err != nil {
		return err
	}
	if i.Port == 0 {
		return ErrInvalidPort
	}
	if i.Version == "" {
		return fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyVersion)
	}
	return nil
}
