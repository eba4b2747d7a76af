package polygon

import (
	"github.com/npillmayer/coaster/space"
)

// Footprint returns the plan view of a loop: the outline of its sample
// points projected onto the ground (x, z) plane. samples holds the sample
// points of every segment, in ring order. As the last sample of a segment
// coincides with the first of its successor, it is skipped.
func Footprint(samples [][]space.Vec3) *Polygon {
	pg := NullPolygon()
	for _, seg := range samples {
		for i, p := range seg {
			if i == len(seg)-1 && len(seg) > 1 {
				break
			}
			pg.Knot(p.XZ())
		}
	}
	L().Debugf("footprint with %d knots", pg.N())
	return pg.Cycle()
}

// Viewport is the visible square in normalized device coordinates.
func Viewport() *Polygon {
	return Box(space.P(-1, -1), space.P(1, 1))
}

// Visible is a predicate: does an outline given in normalized device
// coordinates reach into the viewport? The outline is closed by connecting
// its last point to the first. Outlines without area (e.g. a straight
// segment seen from the side) are tested by their bounding box.
func Visible(ndc []space.Pair) bool {
	if len(ndc) == 0 {
		return false
	}
	vp := Viewport()
	for _, p := range ndc {
		if inSquare(p) {
			return true
		}
	}
	outline := NullPolygon()
	for _, p := range ndc {
		outline.Knot(p)
	}
	outline.Cycle()
	ll, ur := outline.BoundingBox()
	if ur.X() < -1 || ll.X() > 1 || ur.Y() < -1 || ll.Y() > 1 {
		return false
	}
	if outline.Area() <= space.Epsilon {
		outline = Box(ll, ur)
		if outline.Area() <= space.Epsilon { // a horizontal or vertical line
			return true
		}
	}
	return !outline.Intersect(vp).Empty()
}

func inSquare(p space.Pair) bool {
	return p.X() >= -1 && p.X() <= 1 && p.Y() >= -1 && p.Y() <= 1
}
