package camera

import (
	"math"

	"github.com/npillmayer/coaster/space"
)

// Projection is a perspective projection. FovY is in radians.
type Projection struct {
	FovY   float64
	Aspect float64
	Near   float64
	Far    float64
}

// DefaultProjection returns a 45° projection for a viewport of the given size.
func DefaultProjection(width, height int) Projection {
	p := Projection{FovY: 45 * space.Deg2Rad, Aspect: 1, Near: 0.1, Far: 1000}
	p.Resize(width, height)
	return p
}

// Resize adapts the aspect ratio to a viewport. Empty viewports are ignored.
func (p *Projection) Resize(width, height int) {
	if width > 0 && height > 0 {
		p.Aspect = float64(width) / float64(height)
	}
}

// Matrix returns the projection transform.
func (p Projection) Matrix() space.AT {
	return space.Perspective(p.FovY, p.Aspect, p.Near, p.Far)
}

// Lens is a snapshot of a camera: where it is, where it looks, and how it
// projects.
type Lens struct {
	Eye    space.Vec3
	LookAt space.Vec3
	Up     space.Vec3
	Projection
}

// View returns the view transform of the lens.
func (l Lens) View() space.AT {
	return space.LookAt(l.Eye, l.LookAt, l.Up)
}

// ViewProjection maps world coordinates to clip space.
func (l Lens) ViewProjection() space.AT {
	return l.View().Combine(l.Projection.Matrix())
}

// Axes returns the unit right, up and forward vectors of the lens, in world
// coordinates.
func (l Lens) Axes() (right, up, forward space.Vec3) {
	forward = l.LookAt.Sub(l.Eye).Normalized()
	right = forward.Cross(l.Up).Normalized()
	up = right.Cross(forward)
	return
}

// HalfHeight is the half height of the visible area at distance depth from
// the eye.
func (l Lens) HalfHeight(depth float64) float64 {
	return depth * math.Tan(l.FovY/2)
}

// RiderOffset is the position of a mounted camera in the rider's frame:
// one unit up and one unit ahead.
var RiderOffset = space.V(0, 1, 1)

// Mount puts a lens onto a rider. model is the rider's model transform, with
// the rider's heading along local +z. The lens looks along heading and
// shares the rider's up axis.
func Mount(model space.AT, heading space.Vec3, p Projection) Lens {
	eye := model.Transform(RiderOffset)
	up := model.TransformDir(space.Up).Normalized()
	if up.IsZero() {
		up = space.Up
	}
	return Lens{Eye: eye, LookAt: eye.Add(heading), Up: up, Projection: p}
}
