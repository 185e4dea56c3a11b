package main

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/spf13/viper"

	"github.com/aeroatlas/spotmerge/pkg/constants"
	"github.com/aeroatlas/spotmerge/pkg/errors"
)

// acquireLock takes the data dir lock so two runs cannot write the
// same files at once. The returned release must be called even when
// the command fails.
func acquireLock() (func(), error) {
	path := filepath.Join(viper.GetString("data-dir"), constants.LockFileName)
	lock := flock.New(path)

	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, errors.ErrLockHeld)
	}

	return func() { _ = lock.Unlock() }, nil
}
