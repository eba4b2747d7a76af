/*
Package space implements pairs, 3D vectors and affine transformations in
homogeneous coordinates.

Pairs are used for screen and device coordinates, vectors for world
coordinates. Transformations are 4x4 matrices, flattened by rows.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package space

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'coaster.space'
func tracer() tracing.Trace {
	return tracing.Select("coaster.space")
}

// === Numeric Data Type =====================================================

// Deg2Rad is a constant for converting from DEG to RAD or vice versa
var Deg2Rad float64 = 0.01745329251

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// IsFinite is a predicate: is n neither NaN nor ±Inf ?
func IsFinite(n float64) bool {
	return !math.IsNaN(n) && !math.IsInf(n, 0)
}

// === Pair Data Type ========================================================

// Pair is a 2D-point, used for screen and normalized device coordinates.
type Pair complex128

// P is a quick notation for contructing a pair from floats.
func P(x, y float64) Pair {
	return Pair(complex(x, y))
}

// Pretty Stringer for simple pairs.
func (p Pair) String() string {
	return fmt.Sprintf("(%g,%g)", real(p), imag(p))
}

// X is the x-part of a pair.
func (p Pair) X() float64 {
	return real(p)
}

// Y is the y-part of a pair.
func (p Pair) Y() float64 {
	return imag(p)
}

// Length is the euclidean distance of p from the origin.
func (p Pair) Length() float64 {
	return cmplx.Abs(complex128(p))
}

// Equal compares two pairs.
func (p Pair) Equal(p2 Pair) bool {
	return Is0(p.X()-p2.X()) && Is0(p.Y()-p2.Y())
}

// === Vector Data Type ======================================================

// Vec3 is a point or direction in world space. Y is up.
type Vec3 struct {
	X, Y, Z float64
}

// Origin represents the frequently used constant (0,0,0).
var Origin = V(0, 0, 0)

// Up is the world up axis.
var Up = V(0, 1, 0)

// V is a quick notation for contructing a vector from floats.
func V(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Pretty Stringer for vectors.
func (v Vec3) String() string {
	return fmt.Sprintf("(%g,%g,%g)", v.X, v.Y, v.Z)
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// Scaled returns a new vector scaled by factor a.
func (v Vec3) Scaled(a float64) Vec3 {
	return Vec3{v.X * a, v.Y * a, v.Z * a}
}

// Dot returns v · w.
func (v Vec3) Dot(w Vec3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross returns v × w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

// Length returns the length of the vector.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalized returns the unit vector of v. The zero vector is returned
// unchanged, so callers have to test for it if they need a direction.
func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if Is0(l) {
		return Vec3{}
	}
	return v.Scaled(1 / l)
}

// IsZero is a predicate: is v the zero vector (within ε) ?
func (v Vec3) IsZero() bool {
	return Is0(v.X) && Is0(v.Y) && Is0(v.Z)
}

// IsFinite is a predicate: are all coordinates finite?
func (v Vec3) IsFinite() bool {
	return IsFinite(v.X) && IsFinite(v.Y) && IsFinite(v.Z)
}

// Equal compares two vectors within ε.
func (v Vec3) Equal(w Vec3) bool {
	return v.Sub(w).IsZero()
}

// Mirrored returns v reflected through center c, i.e. c - (v - c).
func (v Vec3) Mirrored(c Vec3) Vec3 {
	return c.Sub(v.Sub(c))
}

// XZ projects v onto the ground plane. The pair holds (x, z).
func (v Vec3) XZ() Pair {
	return P(v.X, v.Z)
}

// Lerp interpolates linearly between v (a=0) and w (a=1).
func (v Vec3) Lerp(w Vec3, a float64) Vec3 {
	return v.Add(w.Sub(v).Scaled(a))
}

// === Affine Transformations ================================================

// AT is an affine transform, a matrix type used for transforming vectors.
type AT []float64 // a 4x4 matrix, flattened by rows

// Internal constructor. Clients implicitely use this as a starting point for
// transform combinations.
func newAT() AT {
	m := make([]float64, 16)
	return m
}

func (m AT) get(row, col int) float64 {
	return m[row*4+col]
}

func (m AT) set(row, col int, value float64) {
	m[row*4+col] = value
}

func (m AT) row(row int) []float64 {
	return m[row*4 : (row+1)*4]
}

func (m AT) col(col int) []float64 {
	c := make([]float64, 4)
	for i := 0; i < 4; i++ {
		c[i] = m[i*4+col]
	}
	return c
}

// Identity transform. Will transform a point onto itself.
func Identity() AT {
	m := newAT()
	for i := 0; i < 4; i++ {
		m.set(i, i, 1.0)
	}
	return m
}

// Translation transform. Translate a point by v.
func Translation(v Vec3) AT {
	m := Identity()
	m.set(0, 3, v.X)
	m.set(1, 3, v.Y)
	m.set(2, 3, v.Z)
	return m
}

// Rotation transform. Rotate a point counter-clockwise around axis
// (right hand rule). Argument theta is in radians. A zero axis yields
// the identity.
func Rotation(axis Vec3, theta float64) AT {
	a := axis.Normalized()
	if a.IsZero() {
		return Identity()
	}
	sin, cos := math.Sincos(theta)
	t := 1 - cos
	m := newAT()
	m.set(0, 0, t*a.X*a.X+cos)
	m.set(0, 1, t*a.X*a.Y-sin*a.Z)
	m.set(0, 2, t*a.X*a.Z+sin*a.Y)
	m.set(1, 0, t*a.X*a.Y+sin*a.Z)
	m.set(1, 1, t*a.Y*a.Y+cos)
	m.set(1, 2, t*a.Y*a.Z-sin*a.X)
	m.set(2, 0, t*a.X*a.Z-sin*a.Y)
	m.set(2, 1, t*a.Y*a.Z+sin*a.X)
	m.set(2, 2, t*a.Z*a.Z+cos)
	m.set(3, 3, 1.0)
	return m
}

// Basis transform. Maps the local axes x, y, z onto the given vectors.
func Basis(x, y, z Vec3) AT {
	m := Identity()
	for i, v := range []Vec3{x, y, z} {
		m.set(0, i, v.X)
		m.set(1, i, v.Y)
		m.set(2, i, v.Z)
	}
	return m
}

// Perspective is a projection transform (OpenGL convention, clip space
// z in [-w,w]). fovy is in radians.
func Perspective(fovy, aspect, near, far float64) AT {
	return fromMat4(mgl64.Perspective(fovy, aspect, near, far))
}

// fromMat4 converts a column-major GL matrix.
func fromMat4(g mgl64.Mat4) AT {
	m := newAT()
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			m.set(row, col, g.At(row, col))
		}
	}
	return m
}

// LookAt is a view transform for an eye at position eye, looking at
// point at, with up being the approximate up direction. Unlike
// mgl64.LookAtV it does not produce NaNs if eye and at coincide or the view
// direction is parallel to up.
func LookAt(eye, at, up Vec3) AT {
	f := at.Sub(eye).Normalized()
	s := f.Cross(up).Normalized()
	u := s.Cross(f)
	m := Identity()
	m.set(0, 0, s.X)
	m.set(0, 1, s.Y)
	m.set(0, 2, s.Z)
	m.set(1, 0, u.X)
	m.set(1, 1, u.Y)
	m.set(1, 2, u.Z)
	m.set(2, 0, -f.X)
	m.set(2, 1, -f.Y)
	m.set(2, 2, -f.Z)
	m.set(0, 3, -s.Dot(eye))
	m.set(1, 3, -u.Dot(eye))
	m.set(2, 3, f.Dot(eye))
	return m
}

// Debug Stringer for an affine transform.
func (m AT) String() string {
	s := "["
	for row := 0; row < 4; row++ {
		if row > 0 {
			s += "|"
		}
		s += fmt.Sprintf("%g,%g,%g,%g", m.get(row, 0), m.get(row, 1), m.get(row, 2), m.get(row, 3))
	}
	return s + "]"
}

// v1 × v2, v.n = [a,b,c,d]
func dotProd(vec1, vec2 []float64) float64 {
	return vec1[0]*vec2[0] + vec1[1]*vec2[1] + vec1[2]*vec2[2] + vec1[3]*vec2[3]
}

// Combine 2 affine transformation to a new one. Returns a new transformation
// without changing the argument(s). The result applies m first, then n.
func (m AT) Combine(n AT) AT {
	o := newAT()
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			o.set(row, col, dotProd(n.row(row), m.col(col)))
		}
	}
	return o
}

func (m AT) multiplyVector(v []float64) []float64 {
	c := make([]float64, 4)
	for i := 0; i < 4; i++ {
		c[i] = dotProd(m.row(i), v)
	}
	return c
}

// Transform a 3D-point. The argument is unchanged and a new vector is returned.
func (m AT) Transform(p Vec3) Vec3 {
	c := m.multiplyVector([]float64{p.X, p.Y, p.Z, 1.0})
	return V(c[0], c[1], c[2])
}

// TransformDir transforms a direction, i.e. ignores the translation part.
func (m AT) TransformDir(d Vec3) Vec3 {
	c := m.multiplyVector([]float64{d.X, d.Y, d.Z, 0.0})
	return V(c[0], c[1], c[2])
}

// Project transforms p to clip space and divides by w. It returns the
// normalized device coordinates (x, y) and w. If w is 0 or less, the point
// lies on or behind the eye plane and the pair is meaningless.
func (m AT) Project(p Vec3) (Pair, float64) {
	c := m.multiplyVector([]float64{p.X, p.Y, p.Z, 1.0})
	w := c[3]
	if w <= 0 {
		return P(0, 0), w
	}
	return P(c[0]/w, c[1]/w), w
}

// Column returns the upper 3 entries of column col, e.g. a basis axis or,
// for col = 3, the translation of an affine transform.
func (m AT) Column(col int) Vec3 {
	return V(m.get(0, col), m.get(1, col), m.get(2, col))
}
