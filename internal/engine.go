package internal

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// Length of the bisector rays kept for display. They are direction markers,
// not trajectories, so they are never scaled by time.
const debugRayLength = 1.0

type snapshot struct {
	Time float64
	Poly *Polygon
}

// Skeleton drives the wavefront simulation and accumulates its output. It
// owns the live topology exclusively; every query hands out deep copies, so
// no caller can reach the mutable state through a returned value.
//
// Everything is single threaded. One call to Run computes the whole
// skeleton; a caller that needs an iteration budget can drive Step itself.
type Skeleton struct {
	// History of committed wavefronts, strictly increasing in time, seeded
	// with the validated input at t=0.
	snapshots []snapshot
	segments  []Segment
	rays      []Segment
	trace     []string
	queue     *EventQueue
	// The live wavefront; nil once the boundary has fully collapsed.
	current *Polygon
	now     float64
}

// BuildSkeleton validates the input and seeds the engine. The points must
// form a simple counterclockwise polygon; anything else is a construction
// error for the caller. Run or Step does the actual work.
func BuildSkeleton(points []Vector) (*Skeleton, error) {
	poly, err := NewPolygon(points)
	if err != nil {
		return nil, errors.Wrap(err, "invalid input polygon")
	}
	s := &Skeleton{current: poly}
	s.snapshots = append(s.snapshots, snapshot{Time: 0, Poly: poly.Clone()})
	for _, v := range poly.Vertices {
		s.rays = append(s.rays, Segment{
			Start: v.Position,
			End:   v.Position.Add(v.Bisector.Scale(debugRayLength)),
		})
	}
	s.tracef("seeded wavefront with %d vertices", len(poly.Vertices))
	s.rebuildQueue()
	return s, nil
}

// Run drains the event queue. maxEvents bounds the number of processed queue
// entries when positive; zero or negative means run to completion. The bound
// is the only cancellation seam: degenerate geometry can in principle churn
// out events indefinitely, and a caller who cares should pass a budget.
func (s *Skeleton) Run(maxEvents int) {
	for i := 0; maxEvents <= 0 || i < maxEvents; i++ {
		if !s.Step() {
			return
		}
	}
	s.tracef("stopped at event budget")
}

// Step processes a single queued event and reports whether any candidates
// remain. Stale events are dropped silently (they are the normal residue of
// superseded topology); application failures are skipped and recorded in the
// trace. Only a successful application changes the topology, and only then
// is the candidate queue rebuilt from scratch.
func (s *Skeleton) Step() bool {
	event, ok := s.queue.Poll()
	if !ok || s.current == nil {
		return false
	}
	if !event.Validate(s.current) {
		s.tracef("dropped stale %s", event)
		return s.queue.Len() > 0
	}
	if err := s.apply(event); err != nil {
		s.tracef("skipped %s: %v", event, err)
		return s.queue.Len() > 0
	}
	s.tracef("applied %s", event)
	s.rebuildQueue()
	return s.queue.Len() > 0
}

// rebuildQueue discards all pending candidates and rescans the current
// topology. Rebuilding from scratch after every applied event is a
// deliberate correctness-over-efficiency trade: it makes per-event
// invalidation tracking unnecessary at O(n²) per rebuild.
func (s *Skeleton) rebuildQueue() {
	s.queue = &EventQueue{}
	if s.current == nil {
		return
	}
	events := scanEvents(s.current, s.now)
	for _, event := range events {
		s.queue.Push(event)
	}
	s.tracef("scanned %d candidates from %d vertices at t=%.4f",
		len(events), len(s.current.Vertices), s.now)
}

// apply dispatches on the event shape. Any invariant panic raised while
// applying is converted to an error here, at the per-event boundary; one
// pathological event must not abort recovery of the rest of the skeleton.
func (s *Skeleton) apply(event Event) (err error) {
	defer func() {
		if recovered := HandleSkeletonPanicRecover(recover()); recovered != nil {
			err = recovered
		}
	}()
	switch ev := event.(type) {
	case *EdgeEvent:
		return s.applyEdgeEvent(ev)
	case *SplitEvent:
		return s.applySplitEvent(ev)
	default:
		fatalf("unknown event type %T", event)
		return nil
	}
}

// applyEdgeEvent advances the wavefront to the event time and merges the
// collapsed edge's endpoints into a single vertex at their meeting point.
// The span between the advanced endpoints becomes a skeleton segment when it
// has any length; with a consistent collapse time the endpoints coincide and
// the span is suppressed, and the durable output of a collapse is usually
// the terminal ridge left when the whole boundary degenerates.
func (s *Skeleton) applyEdgeEvent(ev *EdgeEvent) error {
	i1 := s.current.indexOf(ev.Edge.V1)
	i2 := s.current.indexOf(ev.Edge.V2)
	if i1 < 0 || i2 < 0 {
		return errors.New("edge endpoints not in current topology")
	}
	positions := s.advancedPositions(ev.Time() - s.now)
	merged := positions[i1].Add(positions[i2]).Scale(0.5)

	staged := make([]Vector, 0, len(positions)-1)
	for i, p := range positions {
		switch i {
		case i1:
			staged = append(staged, merged)
		case i2:
			// dropped; the merged vertex stands in for both
		default:
			staged = append(staged, p)
		}
	}

	var produced []Segment
	if span := positions[i1].DistanceTo(positions[i2]); span > Tolerance {
		produced = append(produced, Segment{Start: positions[i1], End: positions[i2]})
	}
	return s.commitStaged(staged, ev.Time(), produced)
}

// applySplitEvent advances the wavefront to the event time and inserts a new
// vertex at the recorded intersection, immediately after the splitting
// reflex vertex; the relink in Initialize derives the new edge from the
// altered sequence. The finished segment is the reflex vertex's arc, from
// its pre-split position to the intersection.
func (s *Skeleton) applySplitEvent(ev *SplitEvent) error {
	iv := s.current.indexOf(ev.Vertex)
	if iv < 0 {
		return errors.New("splitting vertex not in current topology")
	}
	preSplit := ev.Vertex.Position
	positions := s.advancedPositions(ev.Time() - s.now)

	staged := make([]Vector, 0, len(positions)+1)
	staged = append(staged, positions[:iv+1]...)
	staged = append(staged, ev.Intersection)
	staged = append(staged, positions[iv+1:]...)

	produced := []Segment{{Start: preSplit, End: ev.Intersection}}
	return s.commitStaged(staged, ev.Time(), produced)
}

// advancedPositions computes where every vertex sits at now+dt, without
// touching the live topology. Edges sweep inward at unit normal speed, so a
// vertex slides along its bisector at 1/sin(φ), φ being the angle between
// the bisector and an incident edge (the bisector property makes both edges
// give the same φ). A vertex whose bisector runs along its edge would need
// infinite speed; it is left in place and the health check deals with the
// aftermath.
func (s *Skeleton) advancedPositions(dt float64) []Vector {
	if dt < 0 {
		dt = 0
	}
	positions := make([]Vector, len(s.current.Vertices))
	for i, v := range s.current.Vertices {
		sinPhi := math.Abs(AngleBetween(s.current.Edges[i].Direction(), v.Bisector).Sin())
		speed := 0.0
		if sinPhi >= PredicateTolerance {
			speed = 1 / sinPhi
		}
		positions[i] = v.Position.Add(v.Bisector.Scale(dt * speed))
	}
	return positions
}

// commitStaged coalesces the staged vertex sequence, rebuilds and
// health-checks the topology, and commits it along with the produced
// segments. On any failure the live topology is untouched and nothing is
// recorded; the caller logs and moves on.
func (s *Skeleton) commitStaged(staged []Vector, t float64, produced []Segment) error {
	staged = coalescePositions(staged)
	if len(staged) < 3 {
		// The boundary has degenerated. Two surviving distinct vertices are
		// the final ridge; fewer mean it vanished into a point.
		if len(staged) == 2 && staged[0].DistanceTo(staged[1]) > Tolerance {
			produced = append(produced, Segment{Start: staged[0], End: staged[1]})
		}
		s.segments = append(s.segments, produced...)
		s.current = nil
		s.now = t
		s.tracef("wavefront fully collapsed at t=%.4f", t)
		return nil
	}

	poly, err := newPolygon(staged)
	if err != nil {
		return errors.Wrap(err, "rebuild after mutation failed")
	}
	if !poly.IsSimple() {
		return errors.New("mutation produced a self-intersecting wavefront")
	}
	if poly.SignedArea() <= 0 {
		return errors.New("mutation inverted the wavefront")
	}

	s.segments = append(s.segments, produced...)
	s.current = poly
	s.now = t
	snap := snapshot{Time: t, Poly: poly.Clone()}
	if n := len(s.snapshots); n > 1 && Equal(s.snapshots[n-1].Time, t) {
		// A chain of same-time events: keep the latest topology so the
		// history stays strictly time-increasing.
		s.snapshots[n-1] = snap
	} else {
		s.snapshots = append(s.snapshots, snap)
	}
	return nil
}

// WavefrontSnapshots returns the committed wavefronts in construction order,
// as independent copies.
func (s *Skeleton) WavefrontSnapshots() []*Polygon {
	result := make([]*Polygon, len(s.snapshots))
	for i, snap := range s.snapshots {
		result[i] = snap.Poly.Clone()
	}
	return result
}

// PolygonAtTime returns a copy of the latest wavefront committed at or
// before t. Times before the first snapshot have no wavefront to report.
func (s *Skeleton) PolygonAtTime(t float64) (*Polygon, error) {
	var found *Polygon
	for _, snap := range s.snapshots {
		if snap.Time > t {
			break
		}
		found = snap.Poly
	}
	if found == nil {
		return nil, errors.Errorf("no wavefront at or before t=%v", t)
	}
	return found.Clone(), nil
}

// AngleBisectorRays returns fixed-length display rays for the input
// polygon's bisectors.
func (s *Skeleton) AngleBisectorRays() []Segment {
	return append([]Segment(nil), s.rays...)
}

// SkeletonSegments returns the finished segments in production order.
func (s *Skeleton) SkeletonSegments() []Segment {
	return append([]Segment(nil), s.segments...)
}

// DebugTrace returns the diagnostic log accumulated so far.
func (s *Skeleton) DebugTrace() []string {
	return append([]string(nil), s.trace...)
}

func (s *Skeleton) tracef(format string, args ...interface{}) {
	s.trace = append(s.trace, fmt.Sprintf(format, args...))
}

func (p *Polygon) indexOf(v *Vertex) int {
	for i, member := range p.Vertices {
		if member == v {
			return i
		}
	}
	return -1
}

// coalescePositions removes cyclically consecutive coincident positions.
// Simultaneous collapses leave several vertices stacked on one point; they
// must become a single vertex before relinking, or the bisector computation
// has zero-length edges to chew on.
func coalescePositions(positions []Vector) []Vector {
	if len(positions) == 0 {
		return positions
	}
	result := []Vector{positions[0]}
	for _, p := range positions[1:] {
		if !p.Equal(result[len(result)-1]) {
			result = append(result, p)
		}
	}
	for len(result) > 1 && result[0].Equal(result[len(result)-1]) {
		result = result[:len(result)-1]
	}
	return result
}
