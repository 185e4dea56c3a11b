// Package gmaps resolves place coordinates by driving a headless
// browser against Google Maps search. When Maps recognizes a place it
// redirects to a URL that carries the coordinates, which is the only
// part of the page this package trusts; DOM fallbacks exist for the
// occasions it does not redirect.
package gmaps

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/aeroatlas/spotmerge/pkg/correct"
	"github.com/aeroatlas/spotmerge/pkg/errors"
	"github.com/aeroatlas/spotmerge/pkg/geo"
	"github.com/aeroatlas/spotmerge/pkg/logging"
)

// userAgent masks the headless browser as a desktop Chrome session.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Scraper looks up place coordinates on Google Maps. It implements
// the corrector's Geocoder contract: every failure mode, from a
// browser that will not start to a result page without coordinates,
// folds into a not-found answer.
type Scraper struct {
	headless    bool
	navTimeout  time.Duration
	settle      time.Duration
	retries     int
	backoff     time.Duration
	countryHint string
	envelope    geo.BoundingBox
}

var _ correct.Geocoder = (*Scraper)(nil)

// New creates a Scraper with the given options.
func New(opts ...Option) (*Scraper, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &Scraper{
		headless:    options.headless,
		navTimeout:  options.navTimeout,
		settle:      options.settle,
		retries:     options.retries,
		backoff:     options.backoff,
		countryHint: options.countryHint,
		envelope:    options.envelope,
	}, nil
}

// Geocode searches Maps for the place and returns the coordinate it
// lands on. Navigation failures are retried with quadratic backoff; a
// page that loads cleanly but yields no coordinate is a miss and is
// not retried.
func (s *Scraper) Geocode(ctx context.Context, name, address string) (geo.Point, bool) {
	query := Query(name, address, s.countryHint)
	if query == "" {
		return geo.Point{}, false
	}
	logger := logging.FromContext(ctx)

	for attempt := 0; attempt < s.retries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt*attempt) * s.backoff
			logger.Warn().
				Str("query", query).
				Int("attempt", attempt+1).
				Dur("backoff", backoff).
				Msg("Retrying lookup")
			select {
			case <-ctx.Done():
				return geo.Point{}, false
			case <-time.After(backoff):
			}
		}

		point, found, err := s.lookup(ctx, query)
		if err != nil {
			logger.Warn().Err(err).Str("query", query).Msg("Lookup attempt failed")
			continue
		}
		if !found {
			logger.Debug().Str("query", query).Msg("No coordinates on result page")
			return geo.Point{}, false
		}
		logger.Debug().
			Str("query", query).
			Float64("lat", point.Lat).
			Float64("lng", point.Lng).
			Msg("Resolved place coordinates")
		return point, true
	}
	return geo.Point{}, false
}

// lookup runs one browser session for one query. Each call launches a
// fresh browser so a wedged renderer cannot poison later lookups.
func (s *Scraper) lookup(ctx context.Context, query string) (geo.Point, bool, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", s.headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent(userAgent),
		chromedp.WindowSize(1280, 900),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelTab()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, s.navTimeout)
	defer cancelTimeout()

	var landed string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(SearchURL(query)),
		chromedp.Sleep(s.settle),
		chromedp.Location(&landed),
	)
	if err != nil {
		return geo.Point{}, false, errors.WrapLookup(query, "navigate", err)
	}

	if point, ok := ExtractCoords(landed, s.envelope); ok {
		return point, true, nil
	}

	// No redirect. Some result pages stash a maps URL in a data
	// attribute instead.
	var dataValue string
	_ = chromedp.Run(tabCtx, chromedp.Evaluate(`
		(function() {
			var el = document.querySelector('[data-value*="@"]');
			return el ? (el.getAttribute('data-value') || '') : '';
		})()
	`, &dataValue))
	if point, ok := ExtractCoords(dataValue, s.envelope); ok {
		return point, true, nil
	}

	var title string
	_ = chromedp.Run(tabCtx, chromedp.Title(&title))
	if point, ok := ExtractCoords(title, s.envelope); ok {
		return point, true, nil
	}

	return geo.Point{}, false, nil
}
