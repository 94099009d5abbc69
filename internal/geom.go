package internal

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// ErrZeroVector is returned when normalizing a vector with no direction.
// Inside the engine this only happens if two adjacent wavefront vertices
// coincide, which the coalescing pass is supposed to have prevented.
var ErrZeroVector = errors.New("cannot normalize a zero-length vector")

// Vector is a 2D point or direction. It is a value type: every operation
// returns a copy and nothing ever shares one.
type Vector struct {
	X, Y float64
}

func (v Vector) Add(other Vector) Vector {
	return Vector{v.X + other.X, v.Y + other.Y}
}

func (v Vector) Sub(other Vector) Vector {
	return Vector{v.X - other.X, v.Y - other.Y}
}

func (v Vector) Scale(factor float64) Vector {
	return Vector{v.X * factor, v.Y * factor}
}

func (v Vector) Dot(other Vector) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Cross is the z component of the 3D cross product. Its sign is the basis of
// every orientation test in the package.
func (v Vector) Cross(other Vector) float64 {
	return v.X*other.Y - v.Y*other.X
}

func (v Vector) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v Vector) DistanceTo(other Vector) float64 {
	return other.Sub(v).Length()
}

func (v Vector) Equal(other Vector) bool {
	return Equal(v.X, other.X) && Equal(v.Y, other.Y)
}

// Normalize scales the vector to unit length. A zero vector has no direction
// to keep, so this fails with ErrZeroVector.
func (v Vector) Normalize() (Vector, error) {
	length := v.Length()
	if length < PredicateTolerance {
		return Vector{}, ErrZeroVector
	}
	return Vector{v.X / length, v.Y / length}, nil
}

// mustNormalize is for callsites where a zero vector means topology
// corruption rather than bad input.
func (v Vector) mustNormalize() Vector {
	normalized, err := v.Normalize()
	if err != nil {
		fatal(err)
	}
	return normalized
}

func (v Vector) String() string {
	return fmt.Sprintf("(%.3f, %.3f)", v.X, v.Y)
}

// Segment is a finished piece of skeleton, or a debug ray. Unlike the live
// topology it holds positions by value, so a returned segment can never alias
// engine state.
type Segment struct {
	Start, End Vector
}

func (s Segment) Length() float64 {
	return s.Start.DistanceTo(s.End)
}

// Angle is a signed radian measure.
type Angle float64

// AngleBetween gives the signed rotation carrying a onto b, in (-π, π].
// Using atan2 of the cross and dot products handles every quadrant without
// case analysis; this is the basis for the collapse velocity computation.
func AngleBetween(a, b Vector) Angle {
	return Angle(math.Atan2(a.Cross(b), a.Dot(b)))
}

// AngleOf gives the direction of v relative to the x axis.
func AngleOf(v Vector) Angle {
	return Angle(math.Atan2(v.Y, v.X))
}

func (a Angle) Radians() float64 { return float64(a) }

func (a Angle) Degrees() float64 { return float64(a) * 180 / math.Pi }

func (a Angle) Sin() float64 { return math.Sin(float64(a)) }

func (a Angle) Cos() float64 { return math.Cos(float64(a)) }

func (a Angle) Tan() float64 { return math.Tan(float64(a)) }

// Normalized reduces the measure modulo 2π. Negative inputs keep their sign
// (math.Mod semantics); callers comparing degrees may observe negative
// values.
func (a Angle) Normalized() Angle {
	return Angle(math.Mod(float64(a), 2*math.Pi))
}
