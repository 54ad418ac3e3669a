//go:build !linux

package stderr

import "log/slog"

// Capture is a no-op outside Linux.
type Capture struct{}

// Start does nothing outside Linux.
func Start(*slog.Logger) (*Capture, error) { return &Capture{}, nil }

// Stop does nothing outside Linux.
func (c *Capture) Stop() {}
