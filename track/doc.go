// Package track deals with closed roller-coaster tracks built from cubic
// Bézier segments.
/*

A track is a ring of segments. Each segment is a cubic curve between two
anchors; the shape of the curve near an anchor is controlled by a tangent
handle. Neighbouring segments share their anchor, and the two handles at a
shared anchor are kept mirrored about it:

   h_out = A - (h_in - A)

This keeps the tangent direction continuous across segment boundaries (C1
continuity), no matter how a user drags the points around.

Control points live in an arena owned by the Loop. Segments do not hold
copies of points but their IDs, so two segments sharing an anchor store the
same PointID. Closing the ring therefore is a matter of re-using the first
segment's start anchor for the last segment's end, not of copying it.

Usage

Clients build a loop from a seed segment, which is rotated about the up axis
to produce the remaining segments:

   loop, err := Build(OctagonSeed(), 8)

The seed of the classic ride is one side of an octagon, lying in the plane
z=10, with a hump and a dip. Evaluation is done by segment ID
and curve parameter:

   p := loop.Evaluate(0, 0.5)

Segments cache a fixed number of sample points, used for drawing and for
finding the highest and lowest point of the track. Moving a control point
marks every segment referencing it as stale; samples are recomputed before
the next query.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package track

import "fmt"

// AsString returns a loop as a (debugging) string, including control points.
// The format is close to MetaPost's path notation:
//
//	(-4.142,0,10) .. controls (-2,2,10) and (2,-2,10)
//	  .. (4.142,0,10) .. controls (6.284,2,10) and (8.485,-2,5.657)
//	  .. ...
//	  .. cycle
func AsString(loop *Loop) string {
	var s string
	seg := SegmentID(0)
	for i := 0; i < loop.N(); i++ {
		pts := loop.segments[seg].Points
		if i > 0 {
			s += "\n  .. "
		}
		s += fmt.Sprintf("%s .. controls %s and %s", ptstring(loop.points[pts[0]].Loc),
			ptstring(loop.points[pts[1]].Loc), ptstring(loop.points[pts[2]].Loc))
		seg = loop.segments[seg].Next
	}
	if loop.N() > 0 {
		s += "\n  .. cycle"
	}
	return s
}
