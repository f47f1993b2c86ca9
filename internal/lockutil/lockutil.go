// Package lockutil provides cross-process advisory locking for the
// Configuration Store's atomic writes and the FormID Index's exclusive
// ingest window.
package lockutil

import (
	"fmt"

	"github.com/gofrs/flock"
)

// Acquire takes an exclusive advisory lock on the file at path, creating it
// if necessary, and returns a release function. The caller must defer the
// release function.
//
// This is a general-purpose cross-process lock suitable for any
// read-modify-write operation that needs serialization across separate
// invocations of the scanner (e.g. two `classic` processes writing settings,
// or an ingest run racing a concurrent scan).
func Acquire(path string) (func(), error) {
	fl := flock.New(path)
	if err := fl.Lock(); err != nil {
		return nil, fmt.Errorf("acquiring lock %s: %w", path, err)
	}
	return func() {
		_ = fl.Unlock()
	}, nil
}

// TryAcquire attempts a non-blocking exclusive lock. ok is false if the lock
// is already held elsewhere; release is nil in that case.
func TryAcquire(path string) (release func(), ok bool, err error) {
	fl := flock.New(path)
	locked, err := fl.TryLock()
	if err != nil {
		return nil, false, fmt.Errorf("acquiring lock %s: %w", path, err)
	}
	if !locked {
		return nil, false, nil
	}
	return func() { _ = fl.Unlock() }, true, nil
}
