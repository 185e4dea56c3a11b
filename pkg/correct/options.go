package correct

import (
	"time"

	"github.com/aeroatlas/spotmerge/pkg/constants"
	"github.com/aeroatlas/spotmerge/pkg/errors"
)

// options configures a Corrector.
type options struct {
	threshold float64
	delay     time.Duration
}

func defaultOptions() *options {
	return &options{
		threshold: constants.DefaultThresholdKm,
		delay:     constants.DefaultRequestDelay,
	}
}

// Option is a function that configures a Corrector.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns corrector options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

func validateGeocoder(geocoder Geocoder) error {
	if geocoder == nil {
		return &errors.ValidationError{
			Field:   "geocoder",
			Message: "cannot be nil",
		}
	}
	return nil
}

// WithThreshold sets the distance in kilometers beyond which an
// observed coordinate replaces the stored one.
func WithThreshold(km float64) Option {
	return func(o *options) error {
		if km < 0 {
			return &errors.ValidationError{
				Field:   "threshold",
				Value:   km,
				Message: "cannot be negative",
			}
		}
		o.threshold = km
		return nil
	}
}

// WithDelay sets the politeness pause applied after every issued
// lookup.
func WithDelay(d time.Duration) Option {
	return func(o *options) error {
		if d < 0 {
			return &errors.ValidationError{
				Field:   "delay",
				Value:   d.String(),
				Message: "cannot be negative",
			}
		}
		o.delay = d
		return nil
	}
}
