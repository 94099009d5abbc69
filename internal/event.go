package internal

import (
	"fmt"
	"math"

	"github.com/osuushi/skeletonize/dbg"
)

// An Event is a candidate change to the wavefront at a known future time.
// Events are transient: each one is only meaningful against the exact
// topology it was scanned from, and must pass Validate against the current
// topology before it may be applied. A stale event is an expected outcome,
// not an error.
//
// There are exactly two shapes, dispatched by type switch in the engine.
type Event interface {
	Time() float64
	Validate(poly *Polygon) bool
	String() string
}

// EdgeEvent: a boundary edge shrinks to nothing and its endpoints merge.
type EdgeEvent struct {
	time float64
	Edge *Edge
}

// NewEdgeEvent throws if either endpoint is reflex. Reflex-terminated edges
// never collapse (their endpoints are split candidates instead), so asking
// for one is a logic defect in the caller, not a runtime condition.
func NewEdgeEvent(time float64, edge *Edge) *EdgeEvent {
	if edge.HasReflexEndpoint() {
		fatalf("edge event on an edge with a reflex endpoint (%v -> %v)",
			edge.V1.Position, edge.V2.Position)
	}
	return &EdgeEvent{time: time, Edge: edge}
}

func (e *EdgeEvent) Time() float64 { return e.time }

func (e *EdgeEvent) Validate(poly *Polygon) bool {
	return poly.ContainsEdge(e.Edge) && !e.Edge.HasReflexEndpoint()
}

func (e *EdgeEvent) String() string {
	return fmt.Sprintf("EdgeEvent t=%.4f %s%v -> %s%v",
		e.time,
		dbg.Name(e.Edge.V1), e.Edge.V1.Position,
		dbg.Name(e.Edge.V2), e.Edge.V2.Position)
}

// SplitEvent: a reflex vertex's advancing bisector ray reaches a non-incident
// edge and severs the boundary there. The intersection point is precomputed
// at scan time and re-derived at validation time; any drift means the event
// belongs to a superseded wavefront.
type SplitEvent struct {
	time         float64
	Vertex       *Vertex
	Edge         *Edge
	Intersection Vector
}

// NewSplitEvent throws unless the vertex is reflex and the edge is
// non-adjacent to it. Both are caller obligations.
func NewSplitEvent(time float64, vertex *Vertex, edge *Edge, intersection Vector) *SplitEvent {
	if !vertex.IsReflex() {
		fatalf("split event at a non-reflex vertex (%v)", vertex.Position)
	}
	if edge.IsAdjacent(vertex) {
		fatalf("split event against an edge adjacent to its vertex (%v)", vertex.Position)
	}
	return &SplitEvent{time: time, Vertex: vertex, Edge: edge, Intersection: intersection}
}

func (e *SplitEvent) Time() float64 { return e.time }

func (e *SplitEvent) Validate(poly *Polygon) bool {
	if !poly.Contains(e.Vertex) || !poly.ContainsEdge(e.Edge) {
		return false
	}
	if !e.Vertex.IsReflex() || e.Edge.IsAdjacent(e.Vertex) {
		return false
	}
	point, s, ok := rayLineIntersection(
		e.Vertex.Position, e.Vertex.Bisector,
		e.Edge.V1.Position, e.Edge.V2.Position)
	if !ok || s < 0 || s > 1 {
		return false
	}
	return point.DistanceTo(e.Intersection) < PredicateTolerance
}

func (e *SplitEvent) String() string {
	return fmt.Sprintf("SplitEvent t=%.4f %s%v splits %s%v -> %s%v at %v",
		e.time,
		dbg.Name(e.Vertex), e.Vertex.Position,
		dbg.Name(e.Edge.V1), e.Edge.V1.Position,
		dbg.Name(e.Edge.V2), e.Edge.V2.Position,
		e.Intersection)
}

// collapseTime gives the time from now until the edge's endpoints meet, or
// ok=false when the edge is degenerate or not closing. Each endpoint slides
// along its bisector at 1/sin(θ) per unit of inward edge travel, where θ is
// the signed angle from the edge direction to the bisector; cot(θ) is the
// along-edge component of that motion, so the closing velocity is
// cot(θ1) - cot(θ2). A sine near zero means the bisector runs parallel to
// the edge and the formula has nothing useful to say.
func collapseTime(edge *Edge) (float64, bool) {
	direction := edge.Direction()
	theta1 := AngleBetween(direction, edge.V1.Bisector)
	theta2 := AngleBetween(direction, edge.V2.Bisector)
	sin1, sin2 := theta1.Sin(), theta2.Sin()
	if math.Abs(sin1) < PredicateTolerance || math.Abs(sin2) < PredicateTolerance {
		return 0, false
	}
	velocity := theta1.Cos()/sin1 - theta2.Cos()/sin2
	if velocity < PredicateTolerance {
		// The endpoints are parting or parallel; this edge outlives every
		// candidate we could compute for it.
		return 0, false
	}
	return edge.Length() / velocity, true
}

// rayLineIntersection solves origin + t·dir = a + s·(b-a) for the ray
// against the infinite line through a and b. ok=false when the two are
// numerically parallel or the hit is behind the ray origin.
func rayLineIntersection(origin, dir, a, b Vector) (point Vector, s float64, ok bool) {
	lineDir := b.Sub(a)
	det := dir.Cross(lineDir)
	if math.Abs(det) < PredicateTolerance {
		return Vector{}, 0, false
	}
	w := a.Sub(origin)
	t := w.Cross(lineDir) / det
	if t < 0 {
		return Vector{}, 0, false
	}
	s = w.Cross(dir) / det
	return origin.Add(dir.Scale(t)), s, true
}

// scanEvents builds the full candidate set for the current topology: one
// collapse candidate per edge with two non-reflex endpoints, and one split
// candidate per reflex vertex against every non-adjacent edge whose line its
// bisector ray crosses within the edge's span. Candidate times are absolute,
// offset from now. Degenerate candidates are silently not produced.
func scanEvents(poly *Polygon, now float64) []Event {
	var events []Event
	for _, edge := range poly.Edges {
		if edge.HasReflexEndpoint() {
			continue
		}
		if dt, ok := collapseTime(edge); ok {
			events = append(events, NewEdgeEvent(now+dt, edge))
		}
	}
	for _, vertex := range poly.Vertices {
		if !vertex.IsReflex() {
			continue
		}
		for _, edge := range poly.Edges {
			if edge.IsAdjacent(vertex) {
				continue
			}
			point, s, ok := rayLineIntersection(
				vertex.Position, vertex.Bisector,
				edge.V1.Position, edge.V2.Position)
			if !ok || s < 0 || s > 1 {
				continue
			}
			distance := vertex.Position.DistanceTo(point)
			if distance < PredicateTolerance {
				// Already touching; the boundary is pinched, not splitting.
				continue
			}
			events = append(events, NewSplitEvent(now+distance, vertex, edge, point))
		}
	}
	return events
}
