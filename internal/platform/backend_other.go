//go:build !linux

package platform

import "time"

// NewBackend opens the platform backend for this OS. Only X11 is
// implemented so far; other platforms get the unsupported stub.
func NewBackend(pollInterval time.Duration) (Backend, error) {
	return nil, ErrUnsupported
}
