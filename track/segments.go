package track

import (
	"github.com/npillmayer/coaster/space"
)

// N returns the number of segments of the loop.
func (loop *Loop) N() int {
	return len(loop.segments)
}

// Segment returns segment s.
func (loop *Loop) Segment(s SegmentID) Segment {
	return loop.segments[s]
}

// Next returns the successor of segment s.
func (loop *Loop) Next(s SegmentID) SegmentID {
	return loop.segments[s].Next
}

// Prev returns the predecessor of segment s.
func (loop *Loop) Prev(s SegmentID) SegmentID {
	return loop.segments[s].Prev
}

// SampleCount is the number of cached sample points per segment.
func (loop *Loop) SampleCount() int {
	return loop.samples
}

// control returns the four control point locations of segment s.
func (loop *Loop) control(s SegmentID) (space.Vec3, space.Vec3, space.Vec3, space.Vec3) {
	pts := loop.segments[s].Points
	return loop.points[pts[0]].Loc, loop.points[pts[1]].Loc, loop.points[pts[2]].Loc, loop.points[pts[3]].Loc
}

// Evaluate returns the point on segment s at curve parameter t. t is clamped
// to [0,1]. Evaluate(s,0) and Evaluate(s,1) are exactly the segment's anchors.
func (loop *Loop) Evaluate(s SegmentID, t float64) space.Vec3 {
	t = clamp01(t)
	p0, p1, p2, p3 := loop.control(s)
	mt := 1 - t
	b0 := mt * mt * mt
	b1 := 3 * mt * mt * t
	b2 := 3 * mt * t * t
	b3 := t * t * t
	return p0.Scaled(b0).Add(p1.Scaled(b1)).Add(p2.Scaled(b2)).Add(p3.Scaled(b3))
}

// Tangent returns the first derivative of segment s at curve parameter t
// (clamped to [0,1]). For coincident control points the tangent may be the
// zero vector.
func (loop *Loop) Tangent(s SegmentID, t float64) space.Vec3 {
	t = clamp01(t)
	p0, p1, p2, p3 := loop.control(s)
	mt := 1 - t
	d0 := p1.Sub(p0).Scaled(3 * mt * mt)
	d1 := p2.Sub(p1).Scaled(6 * mt * t)
	d2 := p3.Sub(p2).Scaled(3 * t * t)
	return d0.Add(d1).Add(d2)
}

// Resample regenerates the cached sample points of segment s.
func (loop *Loop) Resample(s SegmentID) {
	seg := &loop.segments[s]
	if len(seg.samples) != loop.samples {
		seg.samples = make([]space.Vec3, loop.samples)
	}
	last := float64(loop.samples - 1)
	for i := range seg.samples {
		seg.samples[i] = loop.Evaluate(s, float64(i)/last)
	}
	seg.stale = false
}

// Stale is a predicate: do the samples of segment s need recomputation?
func (loop *Loop) Stale(s SegmentID) bool {
	return loop.segments[s].stale
}

// Samples returns the cached sample points of segment s, recomputing them
// if s is stale. Clients must not modify the returned slice.
func (loop *Loop) Samples(s SegmentID) []space.Vec3 {
	if loop.segments[s].stale {
		loop.Resample(s)
	}
	return loop.segments[s].samples
}

// Refresh resamples every stale segment and returns how many were stale.
func (loop *Loop) Refresh() int {
	cnt := 0
	for s := range loop.segments {
		if loop.segments[s].stale {
			loop.Resample(SegmentID(s))
			cnt++
		}
	}
	if cnt > 0 {
		tracer().Debugf("resampled %d segments", cnt)
	}
	return cnt
}

// Extremes finds the highest and the lowest sample of the loop. Segments are
// visited in ring order, starting with the seed segment; on ties the first
// maximum wins. A maximum found at t=1 is reported as t=0 of the next
// segment, which is the same point.
func (loop *Loop) Extremes() Extremes {
	ext := Extremes{Max: -maxFloat, Min: maxFloat}
	if loop.N() == 0 {
		return Extremes{}
	}
	last := float64(loop.samples - 1)
	s := SegmentID(0)
	for k := 0; k < loop.N(); k++ {
		for i, pt := range loop.Samples(s) {
			if pt.Y > ext.Max {
				ext.Max = pt.Y
				ext.Highest = Location{Segment: s, T: float64(i) / last}
			}
			if pt.Y < ext.Min {
				ext.Min = pt.Y
			}
		}
		s = loop.segments[s].Next
	}
	if ext.Highest.T >= 1 {
		ext.Highest = Location{Segment: loop.segments[ext.Highest.Segment].Next, T: 0}
	}
	tracer().P("max", ext.Max).P("min", ext.Min).Debugf("highest sample at segment %d, t=%.4f",
		ext.Highest.Segment, ext.Highest.T)
	return ext
}
