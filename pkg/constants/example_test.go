package constants_test

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aeroatlas/spotmerge/pkg/constants"
)

// Example demonstrates resolving the well-known data file names.
func Example() {
	dataDir := "data"
	output := filepath.Join(dataDir, constants.OutputFileName)
	lock := filepath.Join(dataDir, constants.LockFileName)

	fmt.Printf("Canonical output: %s\n", output)
	fmt.Printf("Run lock: %s\n", lock)
	// Output:
	// Canonical output: data/spots-simple.json
	// Run lock: data/.spotmerge.lock
}

// Example_correction demonstrates the correction tunables.
func Example_correction() {
	fmt.Printf("Replace beyond: %.1f km\n", constants.DefaultThresholdKm)
	fmt.Printf("Pause between lookups: %v\n", constants.DefaultRequestDelay)
	// Output:
	// Replace beyond: 5.0 km
	// Pause between lookups: 2s
}

// Example_lookupTimeout demonstrates bounding a lookup attempt.
func Example_lookupTimeout() {
	ctx, cancel := context.WithTimeout(
		context.Background(),
		constants.LookupNavigateTimeout,
	)
	defer cancel()

	select {
	case <-time.After(10 * time.Millisecond):
		fmt.Println("Lookup completed")
	case <-ctx.Done():
		fmt.Println("Lookup timed out")
	}

	// Output:
	// Lookup completed
}
