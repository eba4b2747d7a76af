/*
Package camera provides the view of a scene: a free-flying camera steered by
keys, cursor and scroll wheel, and a camera mounted on a rider.

Both end up as a Lens, i.e. an eye position, a point to look at and an up
direction, together with a perspective projection.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package camera

import (
	"math"

	"github.com/npillmayer/coaster/space"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'coaster.camera'
func tracer() tracing.Trace {
	return tracing.Select("coaster.camera")
}

// Default placement of the free camera.
var (
	DefaultEye    = space.V(0, 0, 20)
	DefaultLookAt = space.Origin
)

// Cursor movements shorter than this are ignored by Look.
const lookThreshold = 0.0001

// Move is a translation of the free camera, relative to its direction.
type Move int

// Moves of the camera, as bound to W, A, S and D.
const (
	Forward Move = iota
	Left
	Back
	Right
)

func (m Move) String() string {
	switch m {
	case Forward:
		return "forward"
	case Left:
		return "left"
	case Back:
		return "back"
	case Right:
		return "right"
	}
	return "<unknown move>"
}

// Camera is a free-flying camera. Direction is the unit vector from Eye
// towards LookAt.
type Camera struct {
	Eye       space.Vec3
	LookAt    space.Vec3
	Up        space.Vec3
	Direction space.Vec3
	cursor    space.Pair // last cursor position seen by Look
}

// New creates a camera at its default position.
func New() *Camera {
	c := &Camera{}
	c.Reset()
	return c
}

// Reset moves the camera back to its default position, looking at the origin.
func (c *Camera) Reset() {
	c.Eye = DefaultEye
	c.LookAt = DefaultLookAt
	c.Up = space.Up
	c.Direction = c.LookAt.Sub(c.Eye).Normalized()
	c.cursor = space.P(0, 0)
}

// Translate moves eye and look-at point by one unit. Sideways moves are
// perpendicular to both the up vector and the direction.
func (c *Camera) Translate(m Move) {
	var d space.Vec3
	switch m {
	case Forward:
		d = c.Direction
	case Back:
		d = c.Direction.Scaled(-1)
	case Left:
		d = c.Up.Cross(c.Direction)
	case Right:
		d = c.Direction.Cross(c.Up)
	default:
		tracer().Errorf("camera: unknown move %d", m)
		return
	}
	c.Eye = c.Eye.Add(d)
	c.LookAt = c.LookAt.Add(d)
}

// Begin sets the reference position of the cursor for the next call to Look.
func (c *Camera) Begin(cursor space.Pair) {
	c.cursor = cursor
}

// Look turns the camera by the cursor's movement since the last call (or
// since Begin). Cursor positions are in normalized device coordinates.
// A vertical movement of d pitches the camera by 2·asin(d/2), a horizontal
// one yaws it about the world's up axis by the same rule.
func (c *Camera) Look(cursor space.Pair) {
	d := c.cursor - cursor
	c.cursor = cursor
	if d.Length() <= lookThreshold {
		return
	}
	pitch := space.Rotation(c.Up.Cross(c.Direction), arc(d.Y()))
	yaw := space.Rotation(space.Up, arc(d.X()))
	dir := pitch.Combine(yaw).TransformDir(c.Direction).Normalized()
	if dir.IsZero() || !dir.IsFinite() {
		return
	}
	c.Direction = dir
	c.LookAt = c.Eye.Add(dir)
}

// arc converts a cursor distance into an angle, as on a trackball of radius 1.
func arc(d float64) float64 {
	return 2 * math.Asin(math.Max(-1, math.Min(1, d/2)))
}

// Zoom moves the eye towards the origin by amount (away for negative
// amounts). The look-at point stays where it is.
func (c *Camera) Zoom(amount float64) {
	toward := c.Eye.Normalized()
	if toward.IsZero() {
		return
	}
	c.Eye = c.Eye.Sub(toward.Scaled(amount))
	if dir := c.LookAt.Sub(c.Eye).Normalized(); !dir.IsZero() {
		c.Direction = dir
	}
}

// View returns the view transform of the camera.
func (c *Camera) View() space.AT {
	return space.LookAt(c.Eye, c.LookAt, c.Up)
}

// Lens returns the camera's current view, combined with projection p.
func (c *Camera) Lens(p Projection) Lens {
	return Lens{Eye: c.Eye, LookAt: c.LookAt, Up: c.Up, Projection: p}
}
