// Package ned provides vector math in the North-East-Down frame.
// All distances are metres; Down is positive toward the ground.
package ned

import "math"

// Vector is a position or displacement in NED coordinates.
type Vector struct {
	North float64
	East  float64
	Down  float64
}

// Add returns v + o.
func (v Vector) Add(o Vector) Vector {
	return Vector{v.North + o.North, v.East + o.East, v.Down + o.Down}
}

// Sub returns v - o.
func (v Vector) Sub(o Vector) Vector {
	return Vector{v.North - o.North, v.East - o.East, v.Down - o.Down}
}

// Scale returns v scaled by s.
func (v Vector) Scale(s float64) Vector {
	return Vector{v.North * s, v.East * s, v.Down * s}
}

// Norm returns the Euclidean length of v.
func (v Vector) Norm() float64 {
	return math.Sqrt(v.North*v.North + v.East*v.East + v.Down*v.Down)
}

// Unit returns v normalised to unit length.
func (v Vector) Unit() Vector {
	n := v.Norm()
	return Vector{v.North / n, v.East / n, v.Down / n}
}

// Lerp linearly interpolates from a to b. alpha=0 yields a, alpha=1 yields b.
func Lerp(a, b Vector, alpha float64) Vector {
	return a.Add(b.Sub(a).Scale(alpha))
}
