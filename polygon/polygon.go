/*
Package polygon deals with flat polygons: the plan view of a track loop and
the outlines of projected track segments on screen.

Polygons are built knot by knot, MetaPost style:

	pg := NullPolygon().Knot(P(0,0)).Knot(P(1,3)).Knot(P(3,0)).Cycle()

Clipping is done by polyclip-go, an implementation of the algorithm by
Martínez, Rueda and Feito.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package polygon

import (
	"bytes"
	"fmt"
	"math"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/npillmayer/coaster/space"
	"github.com/npillmayer/schuko/tracing"
)

// L is the tracer for package polygon, writing to trace key 'coaster.polygon'.
func L() tracing.Trace {
	return tracing.Select("coaster.polygon")
}

// Polygon is a closed polygon in the plane.
type Polygon struct {
	knots  []space.Pair
	closed bool
}

// NullPolygon creates an empty polygon.
func NullPolygon() *Polygon {
	return &Polygon{}
}

// Knot appends a corner point. Knots of a polygon already closed are
// ignored.
func (pg *Polygon) Knot(p space.Pair) *Polygon {
	if pg.closed {
		L().Errorf("polygon is closed, cannot add knot %s", p)
		return pg
	}
	pg.knots = append(pg.knots, p)
	return pg
}

// Cycle closes the polygon. The last knot connects to the first one.
func (pg *Polygon) Cycle() *Polygon {
	pg.closed = true
	return pg
}

// Box creates a rectangle from two opposite corners.
func Box(a, b space.Pair) *Polygon {
	ll := space.P(math.Min(a.X(), b.X()), math.Min(a.Y(), b.Y()))
	ur := space.P(math.Max(a.X(), b.X()), math.Max(a.Y(), b.Y()))
	return NullPolygon().Knot(ll).Knot(space.P(ur.X(), ll.Y())).Knot(ur).
		Knot(space.P(ll.X(), ur.Y())).Cycle()
}

// N returns the number of knots.
func (pg *Polygon) N() int {
	return len(pg.knots)
}

// Pt returns knot i.
func (pg *Polygon) Pt(i int) space.Pair {
	return pg.knots[i]
}

// IsCycle is a predicate: has the polygon been closed?
func (pg *Polygon) IsCycle() bool {
	return pg.closed
}

// AsString returns a polygon in MetaPost notation.
func AsString(pg *Polygon) string {
	var s bytes.Buffer
	for i, k := range pg.knots {
		if i > 0 {
			s.WriteString(" -- ")
		}
		s.WriteString(fmt.Sprintf("(%.4g,%.4g)", k.X(), k.Y()))
	}
	if pg.closed {
		s.WriteString(" -- cycle")
	}
	return s.String()
}

// Area returns the unsigned area enclosed by the polygon. Self-intersecting
// polygons yield the net area of the shoelace formula.
func (pg *Polygon) Area() float64 {
	return math.Abs(shoelace(pg.contour()))
}

// BoundingBox returns the lower left and the upper right corner of the
// smallest axis-parallel rectangle containing the polygon.
func (pg *Polygon) BoundingBox() (space.Pair, space.Pair) {
	if len(pg.knots) == 0 {
		return space.P(0, 0), space.P(0, 0)
	}
	r := pg.contour().BoundingBox()
	return space.P(r.Min.X, r.Min.Y), space.P(r.Max.X, r.Max.Y)
}

// Contains is a predicate: does p lie inside the polygon?
func (pg *Polygon) Contains(p space.Pair) bool {
	if len(pg.knots) < 3 {
		return false
	}
	return pg.contour().Contains(polyclip.Point{X: p.X(), Y: p.Y()})
}

// Intersect clips pg with other.
func (pg *Polygon) Intersect(other *Polygon) Region {
	return pg.construct(polyclip.INTERSECTION, other)
}

// Union merges pg with other.
func (pg *Polygon) Union(other *Polygon) Region {
	return pg.construct(polyclip.UNION, other)
}

func (pg *Polygon) construct(op polyclip.Op, other *Polygon) Region {
	subject := polyclip.Polygon{pg.contour()}
	clipping := polyclip.Polygon{other.contour()}
	return Region{pg: subject.Construct(op, clipping)}
}

func (pg *Polygon) contour() polyclip.Contour {
	c := make(polyclip.Contour, len(pg.knots))
	for i, k := range pg.knots {
		c[i] = polyclip.Point{X: k.X(), Y: k.Y()}
	}
	return c
}

// shoelace returns the signed area of a contour, positive if it runs
// counter-clockwise.
func shoelace(c polyclip.Contour) float64 {
	var a float64
	for i := range c {
		j := (i + 1) % len(c)
		a += c[i].X*c[j].Y - c[j].X*c[i].Y
	}
	return a / 2
}

// Region is the result of a clipping operation, consisting of zero or more
// contours.
type Region struct {
	pg polyclip.Polygon
}

// Empty is a predicate: does the region cover nothing?
func (r Region) Empty() bool {
	return r.Area() <= space.Epsilon
}

// Area returns the area covered by the region. Contours are taken to be
// disjoint; holes are not subtracted.
func (r Region) Area() float64 {
	var a float64
	for _, c := range r.pg {
		a += math.Abs(shoelace(c))
	}
	return a
}

// Contours returns the region as a list of closed polygons.
func (r Region) Contours() []*Polygon {
	pgs := make([]*Polygon, 0, len(r.pg))
	for _, c := range r.pg {
		pg := NullPolygon()
		for _, p := range c {
			pg.Knot(space.P(p.X, p.Y))
		}
		pgs = append(pgs, pg.Cycle())
	}
	return pgs
}
