package track

import (
	"fmt"
	"math"

	"github.com/npillmayer/coaster/space"
)

// Option configures a loop during Build.
type Option func(*Loop)

// WithSamples sets the number of cached sample points per segment.
func WithSamples(n int) Option {
	return func(loop *Loop) {
		loop.samples = n
	}
}

// Build creates a closed loop of n segments from a seed segment.
//
// Segment i+1 starts at the end anchor of segment i. Its start handle is the
// end handle of segment i, mirrored about the shared anchor. Its end anchor
// and end handle are the previous ones, rotated by 360°/n about the up axis.
// The last segment does not get fresh end points: it ends at the seed's start
// anchor (the very same point), and its end handle mirrors the seed's start
// handle. Thus the ring is closed and C1-continuous at every anchor.
//
// Build fails for n < 2 and for seeds with non-finite coordinates.
func Build(seed Seed, n int, opts ...Option) (*Loop, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w, got %d", ErrTooFewSegments, n)
	}
	for i, v := range []space.Vec3{seed.StartAnchor, seed.StartHandle, seed.EndHandle, seed.EndAnchor} {
		if !v.IsFinite() {
			return nil, fmt.Errorf("%w at seed point %d", ErrInvalidSeed, i)
		}
	}
	loop := &Loop{samples: DefaultSamples}
	for _, opt := range opts {
		opt(loop)
	}
	if loop.samples < 2 {
		return nil, fmt.Errorf("%w, got %d", ErrTooFewSamples, loop.samples)
	}
	loop.points = make([]ControlPoint, 0, 3*n)
	loop.segments = make([]Segment, 0, n)
	a1 := loop.addPoint(seed.StartAnchor, Anchor)
	s1 := loop.addPoint(seed.StartHandle, TangentHandle)
	s2 := loop.addPoint(seed.EndHandle, TangentHandle)
	a2 := loop.addPoint(seed.EndAnchor, Anchor)
	loop.attach(a1, s1, Out)
	loop.attach(a2, s2, In)
	first := loop.addSegment(a1, s1, s2, a2)
	rot := space.Rotation(space.Up, 2*math.Pi/float64(n))
	anchorLoc, handleLoc := seed.EndAnchor, seed.EndHandle
	prev, endAnchor, endHandle := first, a2, s2
	for i := 1; i < n; i++ {
		startAnchor := endAnchor
		start := loop.addPoint(loop.points[endHandle].Loc.Mirrored(loop.points[startAnchor].Loc), TangentHandle)
		loop.attach(startAnchor, start, Out)
		loop.pair(endHandle, start)
		if i == n-1 { // last iteration: close the ring at the seed's start anchor
			endAnchor = a1
			endHandle = loop.addPoint(loop.points[s1].Loc.Mirrored(loop.points[a1].Loc), TangentHandle)
			loop.attach(a1, endHandle, In)
			loop.pair(s1, endHandle)
		} else {
			anchorLoc = rot.Transform(anchorLoc)
			handleLoc = rot.Transform(handleLoc)
			endHandle = loop.addPoint(handleLoc, TangentHandle)
			endAnchor = loop.addPoint(anchorLoc, Anchor)
			loop.attach(endAnchor, endHandle, In)
		}
		seg := loop.addSegment(startAnchor, start, endHandle, endAnchor)
		loop.link(prev, seg)
		prev = seg
	}
	loop.link(prev, first)
	for s := range loop.segments {
		loop.Resample(SegmentID(s))
	}
	tracer().Infof("built loop of %d segments and %d control points", loop.N(), len(loop.points))
	tracer().Debugf("loop = %s", AsString(loop))
	return loop, nil
}

func (loop *Loop) addPoint(loc space.Vec3, role Role) PointID {
	loop.points = append(loop.points, ControlPoint{
		Loc:     loc,
		Role:    role,
		Anchor:  NoPoint,
		Mirror:  NoPoint,
		Handles: [2]PointID{NoPoint, NoPoint},
	})
	return PointID(len(loop.points) - 1)
}

// attach registers handle h at anchor a, on side In or Out.
func (loop *Loop) attach(a, h PointID, side int) {
	loop.points[a].Handles[side] = h
	loop.points[h].Anchor = a
}

// pair makes h1 and h2 mirror partners.
func (loop *Loop) pair(h1, h2 PointID) {
	loop.points[h1].Mirror = h2
	loop.points[h2].Mirror = h1
}

func (loop *Loop) addSegment(a1, h1, h2, a2 PointID) SegmentID {
	loop.segments = append(loop.segments, Segment{
		Points: [4]PointID{a1, h1, h2, a2},
		Next:   -1,
		Prev:   -1,
		stale:  true,
	})
	return SegmentID(len(loop.segments) - 1)
}

func (loop *Loop) link(from, to SegmentID) {
	loop.segments[from].Next = to
	loop.segments[to].Prev = from
}
