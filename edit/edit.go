/*
Package edit lets a user grab control points of a track loop on screen and
drag them around.

Cursor positions are handled in normalized device coordinates (NDC), with
x and y in [-1,1] and y pointing up. A control point is hit if its projection
lies within a small tolerance of the cursor. Dragging moves the point
parallel to the image plane, at the depth it currently has, so that it
follows the cursor.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package edit

import (
	"github.com/npillmayer/coaster/camera"
	"github.com/npillmayer/coaster/space"
	"github.com/npillmayer/coaster/track"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'coaster.edit'
func tracer() tracing.Trace {
	return tracing.Select("coaster.edit")
}

// DefaultTolerance is the hit radius for picking, in NDC units.
const DefaultTolerance = 0.035

// ToNDC converts a pixel position (origin top left, y pointing down) in a
// viewport of width × height to normalized device coordinates. An empty
// viewport maps everything to its center.
func ToNDC(x, y float64, width, height int) space.Pair {
	if width <= 0 || height <= 0 {
		return space.P(0, 0)
	}
	w, h := float64(width), float64(height)
	return space.P((2*x-w)/w, (h-2*y)/h)
}

// Pick returns the control point whose projection is nearest to cursor,
// provided it is closer than tol. Points projecting onto the same spot are
// told apart by depth, the one nearest to the eye wins. Points on or behind
// the eye plane are never hit. If no point is hit, Pick returns track.NoPoint.
func Pick(points []track.ControlPoint, viewProj space.AT, cursor space.Pair, tol float64) track.PointID {
	found, best, depth := track.NoPoint, tol, 0.0
	for i, pt := range points {
		ndc, w := viewProj.Project(pt.Loc)
		if w <= 0 {
			continue
		}
		d := (ndc - cursor).Length()
		if d >= tol {
			continue
		}
		if found == track.NoPoint || d < best-space.Epsilon || (d <= best+space.Epsilon && w < depth) {
			found, best, depth = track.PointID(i), d, w
		}
	}
	return found
}

// Offset maps a cursor movement delta (in NDC) to a world space offset for
// a point at location at. The offset lies in the lens's right/up plane and
// is scaled by the point's depth, so the point's projection moves by delta.
// Points on or behind the eye plane do not move.
func Offset(lens camera.Lens, at space.Vec3, delta space.Pair) space.Vec3 {
	right, up, forward := lens.Axes()
	depth := at.Sub(lens.Eye).Dot(forward)
	if depth <= 0 || forward.IsZero() {
		return space.Vec3{}
	}
	hh := lens.HalfHeight(depth)
	return right.Scaled(delta.X() * hh * lens.Aspect).Add(up.Scaled(delta.Y() * hh))
}
