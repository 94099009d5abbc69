package internal

import (
	"math"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"

	"github.com/osuushi/skeletonize/dbg"
)

// The topology is a circular sequence of vertices with derived edges. Note
// that vertices are always handled as pointers: events hold references into
// the topology they were computed from, and since every mutation rebuilds the
// vertex set wholesale, pointer identity doubles as a staleness check. A
// vertex pointer that is no longer in the polygon belongs to a superseded
// wavefront.

type Vertex struct {
	Position Vector
	// Unit direction of motion, bisecting the angle between the incident
	// edges and pointing into the polygon. Valid once Initialize has run.
	Bisector   Vector
	prev, next *Vertex
}

func (v *Vertex) Prev() *Vertex { return v.prev }
func (v *Vertex) Next() *Vertex { return v.next }

// IsReflex reports whether the interior angle at v exceeds 180°. For a
// counterclockwise boundary the cross product of the two outgoing neighbor
// directions is positive exactly at reflex vertices. Reflex status is always
// derived from the current links, never cached.
func (v *Vertex) IsReflex() bool {
	if v.prev == nil || v.next == nil {
		fatalf("reflex test on an unlinked vertex at %v", v.Position)
	}
	toPrev := v.prev.Position.Sub(v.Position)
	toNext := v.next.Position.Sub(v.Position)
	return toPrev.Cross(toNext) > 0
}

// computeBisector sets the unit bisector from the two incident edges. The
// naive unit-tangent sum points out of the polygon at a reflex vertex, so it
// is negated there; every vertex moves inward. Fails when the vertex is
// degenerate: a neighbor coincides with it, or the incident edges are
// exactly collinear and the sum has no direction.
func (v *Vertex) computeBisector() error {
	toPrev, err := v.prev.Position.Sub(v.Position).Normalize()
	if err != nil {
		return errors.Wrap(err, "previous neighbor coincides with vertex")
	}
	toNext, err := v.next.Position.Sub(v.Position).Normalize()
	if err != nil {
		return errors.Wrap(err, "next neighbor coincides with vertex")
	}
	bisector, err := toPrev.Add(toNext).Normalize()
	if err != nil {
		return errors.Wrap(err, "straight vertex has no bisector")
	}
	if v.IsReflex() {
		bisector = bisector.Scale(-1)
	}
	v.Bisector = bisector
	return nil
}

type Edge struct {
	V1, V2 *Vertex
}

func (e *Edge) Length() float64 {
	return e.V1.Position.DistanceTo(e.V2.Position)
}

// Direction is the unit vector from V1 to V2.
func (e *Edge) Direction() Vector {
	return e.V2.Position.Sub(e.V1.Position).mustNormalize()
}

// HasReflexEndpoint reports whether either endpoint is reflex. Such edges
// never get collapse events; their endpoints are handled by split events.
func (e *Edge) HasReflexEndpoint() bool {
	return e.V1.IsReflex() || e.V2.IsReflex()
}

// IsAdjacent reports whether v is an endpoint of the edge or a direct
// boundary neighbor of one. The deliberately wide neighborhood keeps split
// events from targeting edges too close to the splitting vertex, where the
// "split" would just pinch off a sliver.
func (e *Edge) IsAdjacent(v *Vertex) bool {
	return v == e.V1 || v == e.V2 ||
		v == e.V1.prev || v == e.V1.next ||
		v == e.V2.prev || v == e.V2.next
}

type Polygon struct {
	Vertices []*Vertex
	Edges    []*Edge
}

// NewPolygon builds and validates a topology from an ordered point list. The
// points must form a simple polygon wound counterclockwise; orientation is
// checked, never repaired.
func NewPolygon(points []Vector) (*Polygon, error) {
	poly, err := newPolygon(points)
	if err != nil {
		return nil, err
	}
	if !poly.IsSimple() {
		return nil, errors.New("polygon is self-intersecting")
	}
	if poly.SignedArea() <= 0 {
		return nil, errors.New("polygon must wind counterclockwise")
	}
	return poly, nil
}

// newPolygon builds and links a topology without the simplicity and
// orientation checks. The engine stages mutations through this and runs the
// health checks itself so it can report which one failed.
func newPolygon(points []Vector) (*Polygon, error) {
	if len(points) < 3 {
		return nil, errors.Errorf("a polygon needs at least 3 vertices, got %d", len(points))
	}
	poly := &Polygon{Vertices: make([]*Vertex, len(points))}
	for i, p := range points {
		poly.Vertices[i] = &Vertex{Position: p}
	}
	if err := poly.Initialize(); err != nil {
		return nil, err
	}
	return poly, nil
}

// Initialize relinks every vertex, rebuilds the edge list in sequence order,
// and recomputes every bisector. It is the single recomputation entry point:
// any structural change must go through it, and there is no incremental
// update of individual vertices.
func (p *Polygon) Initialize() error {
	n := len(p.Vertices)
	if n < 3 {
		return errors.Errorf("cannot link a polygon with %d vertices", n)
	}
	for i, v := range p.Vertices {
		v.prev = p.Vertices[CircularIndex(i-1, n)]
		v.next = p.Vertices[CircularIndex(i+1, n)]
	}
	p.Edges = make([]*Edge, n)
	for i, v := range p.Vertices {
		p.Edges[i] = &Edge{V1: v, V2: v.next}
	}
	for _, v := range p.Vertices {
		if err := v.computeBisector(); err != nil {
			return errors.Wrapf(err, "no bisector for vertex at %v", v.Position)
		}
	}
	return nil
}

// IsSimple tests every pair of non-adjacent edges for intersection. O(n²),
// which is fine at the sizes the engine handles; it runs at construction and
// as a health check after each mutation.
func (p *Polygon) IsSimple() bool {
	for i := 0; i < len(p.Edges); i++ {
		for j := i + 1; j < len(p.Edges); j++ {
			a, b := p.Edges[i], p.Edges[j]
			if a.V1 == b.V1 || a.V1 == b.V2 || a.V2 == b.V1 || a.V2 == b.V2 {
				continue
			}
			if segmentsIntersect(a.V1.Position, a.V2.Position, b.V1.Position, b.V2.Position) {
				return false
			}
		}
	}
	return true
}

// SignedArea is the shoelace sum; positive for counterclockwise winding.
func (p *Polygon) SignedArea() float64 {
	var sum float64
	for _, e := range p.Edges {
		sum += e.V1.Position.Cross(e.V2.Position)
	}
	return sum / 2
}

// Positions copies out the vertex coordinates in sequence order.
func (p *Polygon) Positions() []Vector {
	positions := make([]Vector, len(p.Vertices))
	for i, v := range p.Vertices {
		positions[i] = v.Position
	}
	return positions
}

// Clone produces a fully independent copy: fresh vertex objects, relinked,
// bisectors recomputed. This is the only sanctioned way to hand a topology
// to another owner; everything else in the engine aliases live state.
func (p *Polygon) Clone() *Polygon {
	clone, err := newPolygon(p.Positions())
	if err != nil {
		// The source was linked, so its positions must relink.
		fatalf("clone failed to initialize: %v", err)
	}
	return clone
}

// Contains reports whether the vertex pointer is a member of the current
// sequence. Events use this to detect that their references are stale.
func (p *Polygon) Contains(v *Vertex) bool {
	for _, member := range p.Vertices {
		if member == v {
			return true
		}
	}
	return false
}

// ContainsEdge is the edge-identity analogue of Contains.
func (p *Polygon) ContainsEdge(e *Edge) bool {
	for _, member := range p.Edges {
		if member == e {
			return true
		}
	}
	return false
}

func (p *Polygon) String() string {
	var sb strings.Builder
	sb.WriteString("Polygon{")
	for i, v := range p.Vertices {
		if i > 0 {
			sb.WriteString(", ")
		}
		label := dbg.Name(v) + v.Position.String()
		if v.prev != nil && v.IsReflex() {
			label = aurora.Red(label).String()
		} else {
			label = aurora.Cyan(label).String()
		}
		sb.WriteString(label)
	}
	sb.WriteString("}")
	return sb.String()
}

// Orientation sign of the triangle a, b, c, with collinearity snapped to
// zero by tolerance.
func orientation(a, b, c Vector) int {
	cross := b.Sub(a).Cross(c.Sub(a))
	if math.Abs(cross) < PredicateTolerance {
		return 0
	}
	if cross > 0 {
		return 1
	}
	return -1
}

// onSegment assumes c is collinear with a-b and reports whether it lies
// within the segment's bounding box.
func onSegment(a, b, c Vector) bool {
	return math.Min(a.X, b.X) <= c.X && c.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= c.Y && c.Y <= math.Max(a.Y, b.Y)
}

// The standard four-orientation segment intersection test, including the
// collinear overlap cases.
func segmentsIntersect(p1, q1, p2, q2 Vector) bool {
	o1 := orientation(p1, q1, p2)
	o2 := orientation(p1, q1, q2)
	o3 := orientation(p2, q2, p1)
	o4 := orientation(p2, q2, q1)

	if o1 != o2 && o3 != o4 {
		return true
	}
	if o1 == 0 && onSegment(p1, q1, p2) {
		return true
	}
	if o2 == 0 && onSegment(p1, q1, q2) {
		return true
	}
	if o3 == 0 && onSegment(p2, q2, p1) {
		return true
	}
	if o4 == 0 && onSegment(p2, q2, q1) {
		return true
	}
	return false
}
