package evidence

import (
	"github.com/aeroatlas/spotmerge/pkg/errors"
)

// options configures a Resolver.
type options struct {
	prefixes []string
	fallback bool
}

func defaultOptions() *options {
	return &options{
		prefixes: pathPrefixes,
		fallback: true,
	}
}

// Option is a function that configures a Resolver.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns resolver options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithPathPrefixes replaces the storage prefixes stripped from declared
// image paths before folder extraction.
func WithPathPrefixes(prefixes ...string) Option {
	return func(o *options) error {
		if len(prefixes) == 0 {
			return &errors.ValidationError{
				Field:   "prefixes",
				Message: "cannot be empty",
			}
		}
		o.prefixes = prefixes
		return nil
	}
}

// WithPositionalFallback toggles the position pass for folders the
// votes leave open. Enabled by default.
func WithPositionalFallback(enabled bool) Option {
	return func(o *options) error {
		o.fallback = enabled
		return nil
	}
}
