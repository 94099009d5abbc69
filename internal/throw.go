package internal

import "github.com/pkg/errors"

// Invariant violations (building an edge event over a reflex endpoint,
// splitting at a convex vertex, normalizing a zero vector) indicate a logic
// defect, not bad input, and can surface deep inside the event loop.
// Threading error returns through every geometric helper would add a ton of
// complexity to the code. Instead, we use panics, and the public API recovers
// to convert to an error.

type SkeletonError error

// Panic with a SkeletonError.
func fatalf(format string, args ...interface{}) {
	panic(SkeletonError(errors.Errorf(format, args...)))
}

// Panic with an existing error, preserving its identity for errors.Is style
// checks after recovery.
func fatal(err error) {
	panic(SkeletonError(err))
}

func HandleSkeletonPanicRecover(r interface{}) error {
	if r != nil {
		if skeletonError, ok := r.(SkeletonError); ok {
			return skeletonError
		}
		panic(r)
	}
	return nil
}
