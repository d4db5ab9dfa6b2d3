package document

import (
	"github.com/rs/zerolog"

	"github.com/archivist/substance/internal/event"
)

// Option configures a Document.
type Option func(*Document)

// WithContainerID sets the id of the default container node. The default
// is "body".
func WithContainerID(id string) Option {
	return func(d *Document) {
		if id != "" {
			d.containerID = id
		}
	}
}

// WithLogger attaches a logger. Without it the document stays silent.
func WithLogger(log zerolog.Logger) Option {
	return func(d *Document) {
		d.log = log
	}
}

// WithBus attaches an externally owned event bus, letting several
// components share one. The default is a private bus.
func WithBus(bus *event.Bus) Option {
	return func(d *Document) {
		if bus != nil {
			d.bus = bus
		}
	}
}
