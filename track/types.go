package track

import (
	"errors"

	"github.com/npillmayer/coaster/space"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'coaster.track'
func tracer() tracing.Trace {
	return tracing.Select("coaster.track")
}

// DefaultSamples is the number of cached sample points per segment.
const DefaultSamples = 100

var (
	// ErrTooFewSegments indicates a loop of less than 2 segments.
	ErrTooFewSegments = errors.New("loop needs at least 2 segments")
	// ErrTooFewSamples indicates a sample count which cannot cover a segment.
	ErrTooFewSamples = errors.New("segment needs at least 2 samples")
	// ErrInvalidSeed indicates a seed coordinate contains NaN/Inf.
	ErrInvalidSeed = errors.New("seed has invalid coordinate")
	// ErrNoSuchPoint indicates a point ID which is not part of the loop.
	ErrNoSuchPoint = errors.New("no such control point")
	// ErrInvalidOffset indicates an offset containing NaN/Inf.
	ErrInvalidOffset = errors.New("offset has invalid coordinate")
)

// PointID addresses a control point within its loop.
type PointID int

// NoPoint is the null value for point references.
const NoPoint PointID = -1

// SegmentID addresses a segment within its loop.
type SegmentID int

// Role tells anchors from tangent handles.
type Role int

// Roles of control points.
const (
	Anchor        Role = iota // lies on the curve
	TangentHandle             // controls the tangent at its anchor
)

func (r Role) String() string {
	if r == Anchor {
		return "anchor"
	}
	return "handle"
}

// Handles of an anchor are indexed by In and Out.
const (
	In  = 0 // end handle of the segment ending at the anchor
	Out = 1 // start handle of the segment starting at the anchor
)

// ControlPoint is a node of the track's control point graph.
type ControlPoint struct {
	Loc     space.Vec3 // world location
	Role    Role       // anchor or handle
	Anchor  PointID    // handles: the anchor this handle belongs to
	Mirror  PointID    // handles: the opposite handle at the same anchor
	Handles [2]PointID // anchors: incoming and outgoing handle
}

// Segment is a cubic curve between two anchors. Points holds, in order, the
// start anchor, the start handle, the end handle and the end anchor.
type Segment struct {
	Points     [4]PointID
	Next, Prev SegmentID
	samples    []space.Vec3 // cached points on the curve
	stale      bool         // samples need recomputation
}

// Loop is a closed ring of segments, together with the arena of control
// points they refer to.
type Loop struct {
	points   []ControlPoint
	segments []Segment
	samples  int // sample count per segment
}

// Location addresses a point on the track by segment and curve parameter.
type Location struct {
	Segment SegmentID
	T       float64
}

// Extremes holds the highest and lowest sampled height of a loop, and the
// location of the (first) highest sample.
type Extremes struct {
	Max, Min float64
	Highest  Location
}

// Seed holds the four points of the first segment of a loop.
type Seed struct {
	StartAnchor, StartHandle, EndHandle, EndAnchor space.Vec3
}

// OctagonSeed returns the seed segment of the classic ride: one eighth of
// an octagon at radius ≈10.8 around the up axis, with a hump after the start
// and a dip before the end.
func OctagonSeed() Seed {
	return Seed{
		StartAnchor: space.V(-4.142135624, 0, 10),
		StartHandle: space.V(-2, 2, 10),
		EndHandle:   space.V(2, -2, 10),
		EndAnchor:   space.V(4.142135624, 0, 10),
	}
}
