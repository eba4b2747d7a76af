/*
Package ride moves a rider along a track loop.

The rider is driven by a simple energy model: the lower it is below the
highest point of the track, the faster it goes. Each tick the speed is
re-derived from the current height, the curve parameter is advanced and
segment boundaries are crossed as needed. Whenever the model reports that no
energy is left (the rider would climb above the highest point, e.g. after
numerical drift or an edit), the rider turns around and keeps its previous
speed.

The rider's orientation is not integrated; it is recomputed every tick from
the positional delta, so it cannot drift.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package ride

import (
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/coaster/space"
	"github.com/npillmayer/coaster/track"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'coaster.ride'
func tracer() tracing.Trace {
	return tracing.Select("coaster.ride")
}

// DefaultLift is the height of the rider above the track.
const DefaultLift = 0.5

// ErrInvalidLocation indicates a location outside of the loop.
var ErrInvalidLocation = errors.New("invalid track location")

// Direction of travel along the loop.
type Direction int

// Directions are signs of the curve parameter delta.
const (
	Forward  Direction = 1
	Backward Direction = -1
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Ride is the traversal state of one rider on a loop.
type Ride struct {
	loop    *track.Loop
	model   SpeedModel
	lift    float64
	seg     track.SegmentID
	t       float64
	speed   float64
	dir     Direction
	ext     track.Extremes
	pos     space.Vec3 // rider position, including lift
	heading space.Vec3 // unit direction of travel
	right   space.Vec3 // last valid right axis
	ticks   uint64
}

// Option configures a ride.
type Option func(*Ride)

// WithLift sets the height of the rider above the track.
func WithLift(lift float64) Option {
	return func(r *Ride) {
		r.lift = lift
	}
}

// New creates a ride on loop, driven by model, and places the rider at the
// highest point of the loop.
func New(loop *track.Loop, model SpeedModel, opts ...Option) *Ride {
	r := &Ride{
		loop:  loop,
		model: model,
		lift:  DefaultLift,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.Reset()
	return r
}

// Reset places the rider at the highest sample of the loop, heading forward.
// Extremes are recomputed first, as the geometry may have been edited.
// Calling Reset twice in a row yields the same state.
func (r *Ride) Reset() {
	r.Recalibrate()
	r.dir = Forward
	r.right = space.V(1, 0, 0)
	r.heading = space.V(0, 0, 1)
	r.speed = 0
	r.place(r.ext.Highest.Segment, r.ext.Highest.T)
	r.ticks = 0
	tracer().Infof("ride reset to segment %d, t=%.4f, speed=%.6f", r.seg, r.t, r.speed)
}

// Recalibrate recomputes the highest and lowest point of the loop. It has to
// be called after the geometry of the loop changed.
func (r *Ride) Recalibrate() {
	r.ext = r.loop.Extremes()
}

// Place moves the rider to a location on the loop, without changing its
// direction. The speed is re-derived for the new height.
func (r *Ride) Place(loc track.Location) error {
	if int(loc.Segment) < 0 || int(loc.Segment) >= r.loop.N() {
		return fmt.Errorf("%w: segment %d", ErrInvalidLocation, loc.Segment)
	}
	if !(loc.T >= 0 && loc.T < 1) {
		return fmt.Errorf("%w: t=%g", ErrInvalidLocation, loc.T)
	}
	r.place(loc.Segment, loc.T)
	return nil
}

func (r *Ride) place(s track.SegmentID, t float64) {
	r.seg, r.t = s, t
	r.pos = r.lifted(r.loop.Evaluate(s, t))
	if speed, ok := r.model.Speed(r.loop.Evaluate(s, t).Y, r.ext.Max, r.ext.Min); ok && space.IsFinite(speed) {
		r.speed = speed
	}
	if tangent := r.loop.Tangent(s, t); !tangent.IsZero() {
		r.orient(tangent.Normalized().Scaled(float64(r.dir)))
	}
}

func (r *Ride) lifted(p space.Vec3) space.Vec3 {
	return p.Add(space.V(0, r.lift, 0))
}

// Step advances the rider by one tick and returns its new pose.
//
// The speed is derived from the height at the current location. Then the
// curve parameter is advanced by dir·speed. If this crosses the end of the
// segment, the rider continues on the next (or, going backward, the
// previous) segment, as often as necessary to bring t back into [0,1).
// Speeds above 1 therefore skip whole segments instead of being clamped.
func (r *Ride) Step() Pose {
	h := r.loop.Evaluate(r.seg, r.t).Y
	if speed, ok := r.model.Speed(h, r.ext.Max, r.ext.Min); ok && space.IsFinite(speed) {
		r.speed = speed
	} else {
		r.dir = -r.dir
		tracer().P("tick", r.ticks).Debugf("no energy left at height %.4f, turning %s", h, r.dir)
	}
	old := r.pos
	r.advance(float64(r.dir) * r.speed)
	r.pos = r.lifted(r.loop.Evaluate(r.seg, r.t))
	if delta := r.pos.Sub(old); !delta.IsZero() {
		r.orient(delta.Normalized())
	}
	r.ticks++
	return r.Pose()
}

func (r *Ride) advance(dt float64) {
	t := r.t + dt
	whole := math.Floor(t)
	t -= whole
	if t >= 1 { // rounding of tiny negative t
		t -= 1
		whole++
	}
	n := int(math.Mod(whole, float64(r.loop.N())))
	for ; n > 0; n-- {
		r.seg = r.loop.Next(r.seg)
	}
	for ; n < 0; n++ {
		r.seg = r.loop.Prev(r.seg)
	}
	r.t = t
}

// orient sets the heading. The right axis is held if heading is vertical.
func (r *Ride) orient(heading space.Vec3) {
	r.heading = heading
	if right := space.Up.Cross(heading).Normalized(); !right.IsZero() {
		r.right = right
	}
}

// Segment returns the segment the rider is on.
func (r *Ride) Segment() track.SegmentID { return r.seg }

// T returns the curve parameter of the rider on its segment.
func (r *Ride) T() float64 { return r.t }

// Speed returns the current speed in curve parameter units per tick.
func (r *Ride) Speed() float64 { return r.speed }

// Dir returns the direction of travel.
func (r *Ride) Dir() Direction { return r.dir }

// MaxHeight returns the height of the highest sample of the loop.
func (r *Ride) MaxHeight() float64 { return r.ext.Max }

// MinHeight returns the height of the lowest sample of the loop.
func (r *Ride) MinHeight() float64 { return r.ext.Min }

// Ticks returns the number of steps since the last reset.
func (r *Ride) Ticks() uint64 { return r.ticks }

// Pose returns the current pose of the rider.
func (r *Ride) Pose() Pose {
	up := r.heading.Cross(r.right).Normalized()
	if up.IsZero() {
		up = space.Up
	}
	orientation := space.Basis(r.right, up, r.heading)
	return Pose{
		Segment:  r.seg,
		T:        r.t,
		Position: r.pos,
		Heading:  r.heading,
		Speed:    r.speed,
		Dir:      r.dir,
		Model:    orientation.Combine(space.Translation(r.pos)),
	}
}

// Pose is the rider's state as consumed by a renderer.
type Pose struct {
	Segment  track.SegmentID
	T        float64
	Position space.Vec3 // on the track, raised by the lift
	Heading  space.Vec3 // unit direction of travel
	Speed    float64
	Dir      Direction
	Model    space.AT // orientation first, then translation to Position
}
