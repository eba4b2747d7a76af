package space

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestNumericBasic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := 0.000000008
	if !Is0(a) {
		t.Errorf("Expected a to be zero, is not")
	}
	if IsFinite(math.NaN()) || IsFinite(math.Inf(-1)) {
		t.Errorf("Expected NaN and -Inf not to be finite")
	}
}

func TestPairBasic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := P(3, 4)
	q := P(-3, -4)
	if !(p + q).Equal(P(0, 0)) {
		t.Errorf("Expected p + q to be (0,0), is %v", p+q)
	}
	if p.Length() != 5 {
		t.Errorf("Expected |p| = 5, is %g", p.Length())
	}
}

func TestVectorBasic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	x, y := V(1, 0, 0), V(0, 1, 0)
	assert.Equal(t, V(0, 0, 1), x.Cross(y))
	assert.Equal(t, 0.0, x.Dot(y))
	assert.True(t, V(3, 0, 4).Normalized().Equal(V(0.6, 0, 0.8)))
	assert.True(t, Origin.Normalized().IsZero())
}

func TestMirror(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	anchor := V(4.142135624, 0, 10)
	handle := V(2, -2, 10)
	m := handle.Mirrored(anchor)
	assert.True(t, m.Equal(V(6.284271248, 2, 10)), "mirrored handle is %v", m)
	assert.True(t, m.Mirrored(anchor).Equal(handle))
}

func TestTranslation(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	if !Translation(V(-1, -1, -1)).Transform(V(1, 1, 1)).IsZero() {
		t.Errorf("Expected (1,1,1) shifted (-1,-1,-1) to be origin, is not")
	}
	d := Translation(V(5, 5, 5)).TransformDir(V(1, 0, 0))
	assert.Equal(t, V(1, 0, 0), d)
}

func TestRotationAboutUp(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	r := Rotation(Up, 90*Deg2Rad)
	p := r.Transform(V(0, 0, 1))
	if !p.Equal(V(1, 0, 0)) {
		t.Errorf("Expected +z rotated 90° about y to be +x, is %v", p)
	}
	eight := Identity()
	r45 := Rotation(Up, 45*Deg2Rad)
	for i := 0; i < 8; i++ {
		eight = eight.Combine(r45)
	}
	q := eight.Transform(V(4.142135624, 0, 10))
	assert.True(t, q.Equal(V(4.142135624, 0, 10)) || q.Sub(V(4.142135624, 0, 10)).Length() < 1e-6)
}

func TestCombineOrder(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	r := Rotation(Up, 90*Deg2Rad)
	tr := Translation(V(10, 0, 0))
	// rotate first, then translate
	p := r.Combine(tr).Transform(V(0, 0, 1))
	assert.True(t, p.Equal(V(11, 0, 0)), "p = %v", p)
	// translate first, then rotate
	q := tr.Combine(r).Transform(V(0, 0, 1))
	assert.True(t, q.Equal(V(1, 0, -10)), "q = %v", q)
}

func TestLookAtProjection(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	view := LookAt(V(0, 0, 20), Origin, Up)
	assert.True(t, view.Transform(Origin).Equal(V(0, 0, -20)))
	proj := Perspective(45*Deg2Rad, 1, 0.1, 1000)
	vp := view.Combine(proj)
	ndc, w := vp.Project(Origin)
	assert.True(t, ndc.Equal(P(0, 0)))
	assert.InDelta(t, 20.0, w, 1e-9)
	_, w = vp.Project(V(0, 0, 30))
	assert.Less(t, w, 0.0)
}

func TestBasis(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	b := Basis(V(0, 0, -1), Up, V(1, 0, 0))
	assert.Equal(t, V(1, 0, 0), b.Transform(V(0, 0, 1)))
	assert.Equal(t, V(1, 0, 0), b.Column(2))
}

func TestLookAtMatchesGL(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	eye, at := V(3, 4, 12), V(-1, 0.5, 2)
	gl := fromMat4(mgl64.LookAtV(mgl64.Vec3{eye.X, eye.Y, eye.Z}, mgl64.Vec3{at.X, at.Y, at.Z}, mgl64.Vec3{0, 1, 0}))
	view := LookAt(eye, at, Up)
	for i := range view {
		assert.InDelta(t, gl[i], view[i], 1e-12, "entry %d", i)
	}
	degenerate := LookAt(eye, eye, Up)
	for i := range degenerate {
		assert.False(t, math.IsNaN(degenerate[i]))
	}
}

func TestPerspective(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := Perspective(90*Deg2Rad, 2, 1, 3)
	// near plane maps to z = -1, far plane to z = +1
	near := p.multiplyVector([]float64{0, 0, -1, 1})
	far := p.multiplyVector([]float64{0, 0, -3, 1})
	assert.InDelta(t, -1, near[2]/near[3], 1e-9)
	assert.InDelta(t, 1, far[2]/far[3], 1e-9)
	// a point at 45° up on the near plane lands on the upper edge
	edge, _ := p.Project(V(0, 1, -1))
	assert.InDelta(t, 1, edge.Y(), 1e-6)
}
