// A straight skeleton package for Go.
//
// This package shrinks a simple polygon's boundary inward along its angle
// bisectors and records the structure left behind: the finished skeleton
// segments, plus every intermediate wavefront for inspection. The input must
// be a simple polygon wound counterclockwise; holes and self-intersections
// are rejected.
package skeletonize

import "github.com/osuushi/skeletonize/internal"

type Vector = internal.Vector
type Segment = internal.Segment
type Polygon = internal.Polygon
type Skeleton = internal.Skeleton

// Build computes the straight skeleton of the polygon described by points.
//
// The points must be at least three distinct coordinates forming a simple,
// counterclockwise polygon. Invalid input returns an error; internal
// invariant violations surface as errors here too rather than panicking
// through the caller.
//
// The returned Skeleton exposes the finished segments, the wavefront
// history, the bisector debug rays, and a diagnostic trace, all as
// independent copies.
func Build(points []Vector) (result *Skeleton, err error) {
	defer func() {
		recoveredErr := internal.HandleSkeletonPanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()
	skeleton, err := internal.BuildSkeleton(points)
	if err != nil {
		return nil, err
	}
	skeleton.Run(0)
	return skeleton, nil
}

// BuildWithBudget is Build with a cap on processed events. Degenerate
// geometry can churn events indefinitely; a positive budget guarantees
// termination, leaving a partial but well-formed result.
func BuildWithBudget(points []Vector, maxEvents int) (result *Skeleton, err error) {
	defer func() {
		recoveredErr := internal.HandleSkeletonPanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()
	skeleton, err := internal.BuildSkeleton(points)
	if err != nil {
		return nil, err
	}
	skeleton.Run(maxEvents)
	return skeleton, nil
}
