package ride

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/coaster/space"
	"github.com/npillmayer/coaster/track"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixed is a speed model for testing purposes.
type fixed struct {
	speed float64
	ok    bool
	calls int
}

func (f *fixed) Speed(height, maxHeight, minHeight float64) (float64, bool) {
	f.calls++
	return f.speed, f.ok
}

func octagon(t *testing.T) *track.Loop {
	t.Helper()
	loop, err := track.Build(track.OctagonSeed(), 8)
	require.NoError(t, err)
	return loop
}

func TestPotentialEnergy(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pe := DefaultEnergy()
	s, ok := pe.Speed(1, 1, -1)
	assert.True(t, ok)
	assert.InDelta(t, math.Sqrt(2)/1500, s, 1e-15)
	// below the lowest point counts as the lowest point
	s1, _ := pe.Speed(-5, 1, -1)
	s2, _ := pe.Speed(-1, 1, -1)
	assert.Equal(t, s2, s1)
	_, ok = pe.Speed(1.2, 1, -1)
	assert.False(t, ok)
	_, ok = pe.Speed(2, 1, -1)
	assert.False(t, ok)
	_, ok = pe.Speed(math.NaN(), 1, -1)
	assert.False(t, ok)
}

func TestSpeedApproachesZeroAtApex(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pe := DefaultEnergy()
	last := math.Inf(1)
	for _, h := range []float64{-1, 0, 0.5, 0.9, 0.99, 1.0, 1.1, 1.19, 1.199} {
		s, ok := pe.Speed(h, 1, -1)
		require.True(t, ok, "height %g", h)
		assert.Greater(t, s, 0.0)
		assert.Less(t, s, last)
		last = s
	}
}

func TestResetPlacesAtApex(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	loop := octagon(t)
	r := New(loop, DefaultEnergy())
	ext := loop.Extremes()
	assert.Equal(t, ext.Highest.Segment, r.Segment())
	assert.Equal(t, ext.Highest.T, r.T())
	assert.Equal(t, Forward, r.Dir())
	assert.Equal(t, ext.Max, r.MaxHeight())
	assert.Equal(t, ext.Min, r.MinHeight())
	p := r.Pose()
	assert.Equal(t, loop.Evaluate(r.Segment(), r.T()).Add(space.V(0, DefaultLift, 0)), p.Position)
	assert.InDelta(t, math.Sqrt(DefaultGravity*DefaultSlack)/DefaultScale, r.Speed(), 1e-12)
}

func TestResetIdempotence(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	r := New(octagon(t), DefaultEnergy())
	for i := 0; i < 500; i++ {
		r.Step()
	}
	r.Reset()
	first := r.Pose()
	r.Reset()
	second := r.Pose()
	assert.Equal(t, first, second)
	assert.Equal(t, uint64(0), r.Ticks())
}

func TestResetForgetsSpeed(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m := &fixed{speed: 0.01, ok: true}
	r := New(octagon(t), m)
	r.Step()
	require.Equal(t, 0.01, r.Speed())
	m.ok = false // no speed at the apex
	r.Reset()
	assert.Equal(t, 0.0, r.Speed())
	assert.Equal(t, Forward, r.Dir())
}

func TestZeroSlackStallsAtApex(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	r := New(octagon(t), PotentialEnergy{Gravity: DefaultGravity, Scale: DefaultScale})
	seg, at := r.Segment(), r.T()
	r.Step()
	r.Step()
	assert.Equal(t, seg, r.Segment())
	assert.Equal(t, at, r.T())
	assert.Equal(t, 0.0, r.Speed())
	r = New(octagon(t), DefaultEnergy())
	r.Step()
	assert.NotEqual(t, at, r.T(), "positive slack gets the rider going")
}

func TestStepWithinSegment(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	loop := octagon(t)
	r := New(loop, DefaultEnergy())
	t0, seg := r.T(), r.Segment()
	h := loop.Evaluate(seg, t0).Y
	s := math.Sqrt(DefaultGravity*(r.MaxHeight()+DefaultSlack-h)) / DefaultScale
	p := r.Step()
	require.Less(t, t0+s, 1.0)
	assert.Equal(t, seg, p.Segment)
	assert.Equal(t, t0+s, p.T)
	assert.Equal(t, s, p.Speed)
}

func TestStepCrossesForward(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	loop := octagon(t)
	r := New(loop, &fixed{speed: 0.1, ok: true})
	require.NoError(t, r.Place(track.Location{Segment: 7, T: 0.95}))
	p := r.Step()
	assert.Equal(t, track.SegmentID(0), p.Segment)
	assert.InDelta(t, 0.05, p.T, 1e-12)
	assert.Equal(t, 0.95+0.1-1, p.T)
}

func TestStepCrossesBackward(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	loop := octagon(t)
	model := &fixed{speed: 0.1, ok: true}
	r := New(loop, model)
	require.NoError(t, r.Place(track.Location{Segment: 0, T: 0.05}))
	model.ok = false // no energy: turn around, keep speed
	p := r.Step()
	assert.Equal(t, Backward, p.Dir)
	assert.Equal(t, 0.1, p.Speed)
	assert.Equal(t, track.SegmentID(7), p.Segment)
	assert.InDelta(t, 0.95, p.T, 1e-12)
	model.ok = true
	p = r.Step()
	assert.Equal(t, Backward, p.Dir)
	assert.InDelta(t, 0.85, p.T, 1e-12)
}

func TestOvershootSkipsSegments(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	loop := octagon(t)
	model := &fixed{speed: 2.5, ok: true}
	r := New(loop, model)
	require.NoError(t, r.Place(track.Location{Segment: 6, T: 0.25}))
	p := r.Step()
	assert.Equal(t, track.SegmentID(0), p.Segment)
	assert.InDelta(t, 0.75, p.T, 1e-12)
	model.speed = 17.5 // more than two full rounds
	p = r.Step()
	assert.Equal(t, track.SegmentID(2), p.Segment)
	assert.InDelta(t, 0.25, p.T, 1e-12)
}

func TestTinyBackwardStepStaysInRange(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	loop := octagon(t)
	model := &fixed{speed: 1e-17, ok: true}
	r := New(loop, model)
	require.NoError(t, r.Place(track.Location{Segment: 3, T: 0}))
	model.ok = false
	p := r.Step()
	assert.GreaterOrEqual(t, p.T, 0.0)
	assert.Less(t, p.T, 1.0)
}

func TestHeadingFollowsMotion(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	loop := octagon(t)
	model := &fixed{speed: 0.01, ok: true}
	r := New(loop, model)
	before := r.Pose()
	after := r.Step()
	want := after.Position.Sub(before.Position).Normalized()
	assert.True(t, after.Heading.Equal(want))
	assert.InDelta(t, 1.0, after.Heading.Length(), 1e-12)
	// standing still holds the previous heading
	model.speed = 0
	still := r.Step()
	assert.Equal(t, after.Heading, still.Heading)
	assert.Equal(t, after.Position, still.Position)
	// the model transform maps local +z onto the heading, at the position
	assert.True(t, still.Model.Transform(space.Origin).Equal(still.Position))
	assert.True(t, still.Model.TransformDir(space.V(0, 0, 1)).Equal(still.Heading))
}

func TestPlaceRejectsInvalidLocation(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	r := New(octagon(t), DefaultEnergy())
	for _, loc := range []track.Location{{Segment: 8}, {Segment: -1}, {Segment: 0, T: 1}, {Segment: 0, T: math.NaN()}} {
		err := r.Place(loc)
		assert.True(t, errors.Is(err, ErrInvalidLocation), "location %v", loc)
	}
}

func TestLongRunInvariants(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	loop := octagon(t)
	r := New(loop, DefaultEnergy())
	visited := make(map[track.SegmentID]bool)
	for i := 0; i < 20000; i++ {
		p := r.Step()
		visited[p.Segment] = true
		require.True(t, p.T >= 0 && p.T < 1, "t out of range at tick %d: %g", i, p.T)
		require.True(t, p.Dir == Forward || p.Dir == Backward)
		require.True(t, p.Speed > 0 && !math.IsInf(p.Speed, 0))
	}
	assert.Len(t, visited, 8)
}

func TestReversalAfterEdit(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	loop := octagon(t)
	r := New(loop, DefaultEnergy())
	// raise the rider's segment above the calibrated apex
	seg := loop.Segment(r.Segment())
	_, err := loop.Move(seg.Points[0], space.V(0, 3, 0))
	require.NoError(t, err)
	_, err = loop.Move(seg.Points[3], space.V(0, 3, 0))
	require.NoError(t, err)
	p := r.Step()
	assert.Equal(t, Backward, p.Dir)
	r.Recalibrate()
	assert.Greater(t, r.MaxHeight(), 3.0)
}
