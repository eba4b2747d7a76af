package edit

import (
	"github.com/npillmayer/coaster/camera"
	"github.com/npillmayer/coaster/space"
	"github.com/npillmayer/coaster/track"
)

// Editor tracks a press-drag-release gesture on the control points of a
// loop. The selection is held as a point ID, which stays valid for the
// lifetime of the loop.
type Editor struct {
	loop   *track.Loop
	tol    float64
	sel    track.PointID
	cursor space.Pair // cursor position at the last press or drag
}

// Option configures an editor.
type Option func(*Editor)

// WithTolerance sets the hit radius for picking, in NDC units.
func WithTolerance(tol float64) Option {
	return func(e *Editor) {
		e.tol = tol
	}
}

// NewEditor creates an editor for loop, with nothing selected.
func NewEditor(loop *track.Loop, opts ...Option) *Editor {
	e := &Editor{loop: loop, tol: DefaultTolerance, sel: track.NoPoint}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Press selects the control point under the cursor, if any, and returns it.
func (e *Editor) Press(lens camera.Lens, cursor space.Pair) track.PointID {
	e.sel = Pick(e.loop.Points(), lens.ViewProjection(), cursor, e.tol)
	e.cursor = cursor
	if e.sel != track.NoPoint {
		tracer().Debugf("picked %s %d at %v", e.loop.Point(e.sel).Role, e.sel, cursor)
	}
	return e.sel
}

// Drag moves the selected control point by the cursor's movement since the
// last press or drag. It returns the segments touched, which are stale
// afterwards. Without a selection, Drag does nothing.
func (e *Editor) Drag(lens camera.Lens, cursor space.Pair) ([]track.SegmentID, error) {
	delta := cursor - e.cursor
	e.cursor = cursor
	if e.sel == track.NoPoint || delta == 0 {
		return nil, nil
	}
	offset := Offset(lens, e.loop.Point(e.sel).Loc, delta)
	if offset.IsZero() {
		return nil, nil
	}
	return e.loop.Move(e.sel, offset)
}

// Release ends a gesture and clears the selection.
func (e *Editor) Release() {
	e.sel = track.NoPoint
}

// Selected returns the selected control point, or track.NoPoint.
func (e *Editor) Selected() track.PointID {
	return e.sel
}
