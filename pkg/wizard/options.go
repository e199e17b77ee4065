package wizard

import (
	"strings"

	"github.com/rs/zerolog"
)

// Option configures a Controller.
type Option func(*Controller)

// WithSeed pre-populates the FormData, typically from the record being
// edited. Reset does not restore the seed.
func WithSeed(values map[string]any) Option {
	return func(c *Controller) {
		c.seed = values
	}
}

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithSessionID overrides the generated session identifier.
func WithSessionID(id string) Option {
	return func(c *Controller) {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			c.sessionID = trimmed
		}
	}
}

// WithNotifier shares an existing notifier, for example one created before
// the controller so observers can be registered early.
func WithNotifier(n *Notifier) Option {
	return func(c *Controller) {
		if n != nil {
			c.notifier = n
		}
	}
}
