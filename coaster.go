/*
Package coaster runs a roller coaster ride on an editable track.

A Simulation ties together a track loop (package track), a rider moving
along it (package ride), a free and a rider-mounted camera (package camera)
and an editor for dragging control points (package edit). Input is queued
and applied at the start of the next tick. Every tick runs

	apply pending input → step the rider → resample edited segments → publish a frame

Frames are double-buffered: a renderer reads the frame of the last completed
tick while the next one is being built.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package coaster

import (
	"fmt"
	"sync"

	"github.com/npillmayer/coaster/camera"
	"github.com/npillmayer/coaster/edit"
	"github.com/npillmayer/coaster/polygon"
	"github.com/npillmayer/coaster/ride"
	"github.com/npillmayer/coaster/space"
	"github.com/npillmayer/coaster/track"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'coaster'
func tracer() tracing.Trace {
	return tracing.Select("coaster")
}

// CameraMode selects the camera a frame is rendered with.
type CameraMode int

// The free camera is steered by the user, the rider camera sits on the rider.
const (
	FreeCamera CameraMode = iota
	RiderCamera
)

func (m CameraMode) String() string {
	if m == RiderCamera {
		return "rider"
	}
	return "free"
}

// Simulation is the context of a ride. Input methods may be called from any
// goroutine; Tick must not be called concurrently with itself.
type Simulation struct {
	cfg    Config
	loop   *track.Loop
	ride   *ride.Ride
	free   *camera.Camera
	proj   camera.Projection
	mode   CameraMode
	editor *edit.Editor
	edited bool

	mu      sync.Mutex // guards pending and the frame buffers
	pending []func()
	front   *Frame
	back    *Frame
}

// New creates a simulation from a configuration and publishes its first
// frame, showing the rider at the highest point of the track.
func New(cfg Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	loop, err := track.Build(cfg.TrackSeed(), cfg.Segments, track.WithSamples(cfg.Samples))
	if err != nil {
		return nil, fmt.Errorf("cannot build track: %w", err)
	}
	sim := &Simulation{
		cfg:    cfg,
		loop:   loop,
		ride:   ride.New(loop, cfg.Energy(), ride.WithLift(cfg.Lift)),
		free:   camera.New(),
		proj:   cfg.Projection(),
		editor: edit.NewEditor(loop, edit.WithTolerance(cfg.Tolerance)),
		front:  &Frame{},
		back:   &Frame{},
	}
	sim.publish(sim.ride.Pose())
	tracer().Infof("simulation of %d segments, %d control points", loop.N(), loop.NumPoints())
	return sim, nil
}

// Config returns the configuration the simulation was created with.
func (sim *Simulation) Config() Config {
	return sim.cfg
}

// Loop returns the track loop. It must only be accessed between ticks, from
// the goroutine calling Tick.
func (sim *Simulation) Loop() *track.Loop {
	return sim.loop
}

// Tick advances the simulation by one step and returns the new frame.
func (sim *Simulation) Tick() *Frame {
	sim.mu.Lock()
	pending := sim.pending
	sim.pending = nil
	sim.mu.Unlock()
	for _, apply := range pending {
		apply()
	}
	if sim.edited {
		sim.ride.Recalibrate()
		sim.edited = false
	}
	pose := sim.ride.Step()
	sim.loop.Refresh()
	return sim.publish(pose)
}

func (sim *Simulation) enqueue(f func()) {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	sim.pending = append(sim.pending, f)
}

// Reset puts the rider back onto the highest point of the track.
func (sim *Simulation) Reset() {
	sim.enqueue(func() {
		sim.ride.Reset()
	})
}

// ResetCamera moves the free camera back to its default position.
func (sim *Simulation) ResetCamera() {
	sim.enqueue(sim.free.Reset)
}

// Press grabs the control point under the cursor, given in pixels.
func (sim *Simulation) Press(x, y float64) {
	sim.enqueue(func() {
		sim.editor.Press(sim.lens(), sim.ndc(x, y))
	})
}

// Drag moves a grabbed control point along with the cursor, given in pixels.
func (sim *Simulation) Drag(x, y float64) {
	sim.enqueue(func() {
		touched, err := sim.editor.Drag(sim.lens(), sim.ndc(x, y))
		if err != nil {
			tracer().Errorf("drag: %v", err)
			return
		}
		if len(touched) > 0 {
			sim.edited = true
		}
	})
}

// Release lets go of a grabbed control point.
func (sim *Simulation) Release() {
	sim.enqueue(sim.editor.Release)
}

// ToggleCamera switches between the free and the rider camera.
func (sim *Simulation) ToggleCamera() {
	sim.enqueue(func() {
		sim.mode = 1 - sim.mode
		tracer().Debugf("switched to %s camera", sim.mode)
	})
}

// MoveCamera translates the free camera.
func (sim *Simulation) MoveCamera(m camera.Move) {
	sim.enqueue(func() {
		sim.free.Translate(m)
	})
}

// BeginLook sets the reference cursor position, in pixels, for Look.
func (sim *Simulation) BeginLook(x, y float64) {
	sim.enqueue(func() {
		sim.free.Begin(sim.ndc(x, y))
	})
}

// Look turns the free camera by the cursor's movement, given in pixels.
func (sim *Simulation) Look(x, y float64) {
	sim.enqueue(func() {
		sim.free.Look(sim.ndc(x, y))
	})
}

// Zoom moves the free camera towards the origin, as a scroll wheel does.
func (sim *Simulation) Zoom(amount float64) {
	sim.enqueue(func() {
		sim.free.Zoom(amount)
	})
}

// Resize adapts the simulation to a new viewport size in pixels.
func (sim *Simulation) Resize(width, height int) {
	sim.enqueue(func() {
		if width > 0 && height > 0 {
			sim.cfg.Width, sim.cfg.Height = width, height
			sim.proj.Resize(width, height)
		}
	})
}

func (sim *Simulation) ndc(x, y float64) space.Pair {
	return edit.ToNDC(x, y, sim.cfg.Width, sim.cfg.Height)
}

// lens returns the active camera's view of the current pose.
func (sim *Simulation) lens() camera.Lens {
	if sim.mode == RiderCamera {
		pose := sim.ride.Pose()
		return camera.Mount(pose.Model, pose.Heading, sim.proj)
	}
	return sim.free.Lens(sim.proj)
}

// Footprint returns the plan view of the track.
func (sim *Simulation) Footprint() *polygon.Polygon {
	samples := make([][]space.Vec3, sim.loop.N())
	s := track.SegmentID(0)
	for i := range samples {
		samples[i] = sim.loop.Samples(s)
		s = sim.loop.Next(s)
	}
	return polygon.Footprint(samples)
}

// InField is a predicate: is p inside the area enclosed by the track, as
// seen from above?
func (sim *Simulation) InField(p space.Vec3) bool {
	return sim.Footprint().Contains(p.XZ())
}
