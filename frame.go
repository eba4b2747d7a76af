package coaster

import (
	"github.com/npillmayer/coaster/camera"
	"github.com/npillmayer/coaster/polygon"
	"github.com/npillmayer/coaster/ride"
	"github.com/npillmayer/coaster/space"
	"github.com/npillmayer/coaster/track"
)

// Frame is a snapshot of a simulation after a tick, holding everything a
// renderer needs. Sample and control point data are copies, not views into
// the live track.
type Frame struct {
	Tick       uint64
	Pose       ride.Pose
	Samples    [][]space.Vec3 // per segment
	Visible    []bool         // per segment, within the active camera's viewport
	Controls   []track.ControlPoint
	Selected   track.PointID
	Camera     CameraMode
	Lens       camera.Lens
	View       space.AT
	Projection space.AT
}

// Frame returns the frame of the last completed tick. The frame is owned by
// the simulation: it must not be modified, and it is overwritten by the
// tick after next. Use Clone to keep it longer.
func (sim *Simulation) Frame() *Frame {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	return sim.front
}

// publish fills the back buffer and swaps it to the front.
func (sim *Simulation) publish(pose ride.Pose) *Frame {
	f := sim.back
	f.Tick = sim.ride.Ticks()
	model := f.Pose.Model
	f.Pose = pose
	f.Pose.Model = append(model[:0], pose.Model...)
	n := sim.loop.N()
	f.Samples = resize(f.Samples, n)
	for s := 0; s < n; s++ {
		f.Samples[s] = append(f.Samples[s][:0], sim.loop.Samples(track.SegmentID(s))...)
	}
	f.Controls = append(f.Controls[:0], sim.loop.Points()...)
	f.Selected = sim.editor.Selected()
	f.Camera = sim.mode
	f.Lens = sim.lens()
	f.View = f.Lens.View()
	f.Projection = f.Lens.Projection.Matrix()
	f.Visible = f.Visible[:0]
	vp := f.Lens.ViewProjection()
	for s := 0; s < n; s++ {
		f.Visible = append(f.Visible, visible(vp, f.Samples[s]))
	}
	sim.mu.Lock()
	sim.front, sim.back = f, sim.front
	sim.mu.Unlock()
	return f
}

func resize(samples [][]space.Vec3, n int) [][]space.Vec3 {
	if cap(samples) < n {
		return append(samples[:cap(samples)], make([][]space.Vec3, n-cap(samples))...)
	}
	return samples[:n]
}

// visible projects the samples of a segment and tests them against the
// viewport. A segment reaching behind the eye is taken to be visible.
func visible(viewProj space.AT, samples []space.Vec3) bool {
	ndc := make([]space.Pair, 0, len(samples))
	behind := 0
	for _, p := range samples {
		q, w := viewProj.Project(p)
		if w <= 0 {
			behind++
			continue
		}
		ndc = append(ndc, q)
	}
	if len(ndc) == 0 {
		return false
	}
	return behind > 0 || polygon.Visible(ndc)
}

// Clone returns a deep copy of a frame.
func (f *Frame) Clone() *Frame {
	c := *f
	c.Pose.Model = append(space.AT(nil), f.Pose.Model...)
	c.Samples = make([][]space.Vec3, len(f.Samples))
	for i, s := range f.Samples {
		c.Samples[i] = append([]space.Vec3(nil), s...)
	}
	c.Visible = append([]bool(nil), f.Visible...)
	c.Controls = append([]track.ControlPoint(nil), f.Controls...)
	c.View = append(space.AT(nil), f.View...)
	c.Projection = append(space.AT(nil), f.Projection...)
	return &c
}
