package riffchunk

import "github.com/rs/zerolog"

// DefaultMaxDepth bounds container nesting when no WithMaxDepth option is given.
const DefaultMaxDepth = 64

// ReadOption configures the eager reader and lazy cursors.
type ReadOption func(*readConfig)

type readConfig struct {
	strictPadding bool
	maxDepth      int
	log           zerolog.Logger
}

func newReadConfig(opts []ReadOption) readConfig {
	cfg := readConfig{
		maxDepth: DefaultMaxDepth,
		log:      zerolog.Nop(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// WithStrictPadding rejects streams whose outermost odd-sized chunk is missing
// its trailing pad byte. By default such streams are accepted.
func WithStrictPadding() ReadOption {
	return func(c *readConfig) {
		c.strictPadding = true
	}
}

// WithLogger sets the logger used for debug events while reading.
func WithLogger(l zerolog.Logger) ReadOption {
	return func(c *readConfig) {
		c.log = l
	}
}

// WithMaxDepth sets the maximum container nesting depth. Values below 1 are ignored.
func WithMaxDepth(n int) ReadOption {
	return func(c *readConfig) {
		if n > 0 {
			c.maxDepth = n
		}
	}
}
