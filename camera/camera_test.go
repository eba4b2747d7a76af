package camera

import (
	"math"
	"testing"

	"github.com/npillmayer/coaster/space"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := New()
	assert.Equal(t, space.V(0, 0, 20), c.Eye)
	assert.Equal(t, space.Origin, c.LookAt)
	assert.True(t, c.Direction.Equal(space.V(0, 0, -1)))
}

func TestTranslate(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := New()
	c.Translate(Forward)
	assert.True(t, c.Eye.Equal(space.V(0, 0, 19)))
	assert.True(t, c.LookAt.Equal(space.V(0, 0, -1)))
	c.Translate(Back)
	assert.True(t, c.Eye.Equal(DefaultEye))
	c.Translate(Left)
	assert.True(t, c.Eye.Equal(space.V(-1, 0, 20)), "left is -x when looking down -z, have %v", c.Eye)
	c.Translate(Right)
	c.Translate(Right)
	assert.True(t, c.Eye.Equal(space.V(1, 0, 20)))
	assert.True(t, c.Direction.Equal(space.V(0, 0, -1)), "translation must not turn the camera")
}

func TestLookYaw(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := New()
	c.Begin(space.P(0, 0))
	c.Look(space.P(-0.2, 0))
	theta := 2 * math.Asin(0.1)
	assert.InDelta(t, -math.Sin(theta), c.Direction.X, 1e-9)
	assert.InDelta(t, 0, c.Direction.Y, 1e-9)
	assert.InDelta(t, -math.Cos(theta), c.Direction.Z, 1e-9)
	assert.True(t, c.LookAt.Equal(c.Eye.Add(c.Direction)))
}

func TestLookPitch(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := New()
	c.Begin(space.P(0, 0))
	c.Look(space.P(0, -0.2))
	theta := 2 * math.Asin(0.1)
	assert.InDelta(t, -math.Sin(theta), c.Direction.Y, 1e-9)
	assert.InDelta(t, 1.0, c.Direction.Length(), 1e-9)
}

func TestLookIgnoresJitter(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := New()
	c.Begin(space.P(0.5, 0.5))
	c.Look(space.P(0.5, 0.50005))
	assert.True(t, c.Direction.Equal(space.V(0, 0, -1)))
	// the reference moved nevertheless
	c.Look(space.P(0.5, 0.50005))
	assert.True(t, c.Direction.Equal(space.V(0, 0, -1)))
}

func TestZoomAndReset(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := New()
	c.Zoom(2)
	assert.True(t, c.Eye.Equal(space.V(0, 0, 18)))
	assert.Equal(t, space.Origin, c.LookAt)
	c.Zoom(-4)
	assert.True(t, c.Eye.Equal(space.V(0, 0, 22)))
	c.Reset()
	assert.Equal(t, DefaultEye, c.Eye)
	c.Eye = space.Origin
	c.Zoom(1) // nowhere to go
	assert.Equal(t, space.Origin, c.Eye)
}

func TestView(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := New()
	c.Translate(Left)
	v := c.View()
	assert.True(t, v.Transform(c.Eye).Equal(space.Origin))
	assert.True(t, v.Transform(c.LookAt).Equal(space.V(0, 0, -1)))
}

func TestProjection(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := DefaultProjection(800, 400)
	assert.Equal(t, 2.0, p.Aspect)
	p.Resize(0, 0)
	assert.Equal(t, 2.0, p.Aspect)
	lens := New().Lens(p)
	ndc, w := lens.ViewProjection().Project(space.Origin)
	assert.Greater(t, w, 0.0)
	assert.True(t, ndc.Equal(space.P(0, 0)))
	// a point at the top edge of the visible area
	top := space.V(0, lens.HalfHeight(20), 0)
	ndc, _ = lens.ViewProjection().Project(top)
	assert.InDelta(t, 1.0, ndc.Y(), 1e-9)
	_, w = lens.ViewProjection().Project(space.V(0, 0, 30))
	assert.LessOrEqual(t, w, 0.0, "points behind the eye have w <= 0")
}

func TestAxes(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	right, up, forward := New().Lens(DefaultProjection(1, 1)).Axes()
	assert.True(t, right.Equal(space.V(1, 0, 0)))
	assert.True(t, up.Equal(space.Up))
	assert.True(t, forward.Equal(space.V(0, 0, -1)))
}

func TestMount(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pos := space.V(3, 1, -2)
	heading := space.V(1, 0, 0)
	right := space.Up.Cross(heading) // (0,0,-1)
	model := space.Basis(right, space.Up, heading).Combine(space.Translation(pos))
	lens := Mount(model, heading, DefaultProjection(1, 1))
	assert.True(t, lens.Eye.Equal(space.V(4, 2, -2)), "eye = %v", lens.Eye)
	assert.True(t, lens.LookAt.Equal(space.V(5, 2, -2)))
	assert.True(t, lens.Up.Equal(space.Up))
}
