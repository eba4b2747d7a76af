package track

import (
	"fmt"

	"github.com/npillmayer/coaster/space"
)

// NumPoints returns the number of control points of the loop.
func (loop *Loop) NumPoints() int {
	return len(loop.points)
}

// Valid is a predicate: does id address a control point of the loop?
func (loop *Loop) Valid(id PointID) bool {
	return id >= 0 && int(id) < len(loop.points)
}

// Point returns control point id.
func (loop *Loop) Point(id PointID) ControlPoint {
	return loop.points[id]
}

// Points returns a copy of all control points, indexed by PointID.
func (loop *Loop) Points() []ControlPoint {
	pts := make([]ControlPoint, len(loop.points))
	copy(pts, loop.points)
	return pts
}

// Move shifts control point id by offset and returns the segments touched,
// in ascending order. Touched segments are marked stale.
//
// Moving an anchor drags its handles along, which leaves the tangents at
// the anchor unchanged. Moving a handle re-mirrors its partner about the
// shared anchor.
func (loop *Loop) Move(id PointID, offset space.Vec3) ([]SegmentID, error) {
	if !loop.Valid(id) {
		return nil, fmt.Errorf("%w: %d", ErrNoSuchPoint, id)
	}
	if !offset.IsFinite() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOffset, offset)
	}
	moved := []PointID{id}
	pt := &loop.points[id]
	pt.Loc = pt.Loc.Add(offset)
	switch pt.Role {
	case Anchor:
		for _, h := range pt.Handles {
			if h != NoPoint {
				loop.points[h].Loc = loop.points[h].Loc.Add(offset)
				moved = append(moved, h)
			}
		}
	case TangentHandle:
		if pt.Mirror != NoPoint && pt.Anchor != NoPoint {
			m := &loop.points[pt.Mirror]
			m.Loc = pt.Loc.Mirrored(loop.points[pt.Anchor].Loc)
			moved = append(moved, pt.Mirror)
		}
	}
	touched := loop.Touching(moved...)
	for _, s := range touched {
		loop.segments[s].stale = true
	}
	tracer().P("point", id).Debugf("moved %s by %v, %d segments touched", pt.Role, offset, len(touched))
	return touched, nil
}

// MoveTo moves control point id to location loc. See Move.
func (loop *Loop) MoveTo(id PointID, loc space.Vec3) ([]SegmentID, error) {
	if !loop.Valid(id) {
		return nil, fmt.Errorf("%w: %d", ErrNoSuchPoint, id)
	}
	return loop.Move(id, loc.Sub(loop.points[id].Loc))
}

// Touching returns the segments referencing any of the given points, in
// ascending order.
func (loop *Loop) Touching(ids ...PointID) []SegmentID {
	var touched []SegmentID
	for s, seg := range loop.segments {
		if references(seg, ids) {
			touched = append(touched, SegmentID(s))
		}
	}
	return touched
}

func references(seg Segment, ids []PointID) bool {
	for _, p := range seg.Points {
		for _, id := range ids {
			if p == id {
				return true
			}
		}
	}
	return false
}

// ControlPolygon returns the tangent lines of the loop: for every anchor the
// line from its incoming to its outgoing handle, which passes through the
// anchor. Anchors without two handles are skipped.
func (loop *Loop) ControlPolygon() [][2]space.Vec3 {
	var lines [][2]space.Vec3
	for _, seg := range loop.segments {
		a := loop.points[seg.Points[0]]
		in, out := a.Handles[In], a.Handles[Out]
		if in == NoPoint || out == NoPoint {
			continue
		}
		lines = append(lines, [2]space.Vec3{loop.points[in].Loc, loop.points[out].Loc})
	}
	return lines
}
