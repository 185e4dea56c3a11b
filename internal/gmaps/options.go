package gmaps

import (
	"time"

	"github.com/aeroatlas/spotmerge/pkg/constants"
	"github.com/aeroatlas/spotmerge/pkg/errors"
	"github.com/aeroatlas/spotmerge/pkg/geo"
)

// options configures a Scraper.
type options struct {
	headless    bool
	navTimeout  time.Duration
	settle      time.Duration
	retries     int
	backoff     time.Duration
	countryHint string
	envelope    geo.BoundingBox
}

func defaultOptions() *options {
	return &options{
		headless:    true,
		navTimeout:  constants.LookupNavigateTimeout,
		settle:      constants.LookupSettleDelay,
		retries:     constants.LookupRetryAttempts,
		backoff:     constants.LookupRetryBackoff,
		countryHint: DefaultCountryHint,
		envelope:    DefaultEnvelope,
	}
}

// Option is a function that configures a Scraper.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns scraper options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithHeadless toggles headless mode. Running headful is occasionally
// useful when debugging why a search stopped resolving.
func WithHeadless(enabled bool) Option {
	return func(o *options) error {
		o.headless = enabled
		return nil
	}
}

// WithNavigateTimeout bounds one navigation attempt.
func WithNavigateTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d <= 0 {
			return &errors.ValidationError{
				Field:   "navigate timeout",
				Value:   d.String(),
				Message: "must be positive",
			}
		}
		o.navTimeout = d
		return nil
	}
}

// WithSettleDelay sets how long to wait after navigation for Maps to
// finish redirecting to the place URL.
func WithSettleDelay(d time.Duration) Option {
	return func(o *options) error {
		if d < 0 {
			return &errors.ValidationError{
				Field:   "settle delay",
				Value:   d.String(),
				Message: "cannot be negative",
			}
		}
		o.settle = d
		return nil
	}
}

// WithRetries sets how many times a failed navigation is attempted
// before the lookup counts as a miss.
func WithRetries(attempts int) Option {
	return func(o *options) error {
		if attempts < 1 {
			return &errors.ValidationError{
				Field:   "retries",
				Value:   attempts,
				Message: "must be at least 1",
			}
		}
		o.retries = attempts
		return nil
	}
}

// WithCountryHint sets the country appended to bare queries. Empty
// disables the hint.
func WithCountryHint(hint string) Option {
	return func(o *options) error {
		o.countryHint = hint
		return nil
	}
}

// WithEnvelope sets the bounding box a scraped coordinate must fall
// inside to count as an answer.
func WithEnvelope(box geo.BoundingBox) Option {
	return func(o *options) error {
		if box.LatMin > box.LatMax || box.LngMin > box.LngMax {
			return &errors.ValidationError{
				Field:   "envelope",
				Message: "bounds are inverted",
			}
		}
		o.envelope = box
		return nil
	}
}
