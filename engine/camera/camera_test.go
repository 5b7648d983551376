package camera

import (
	"bytes"
	"math"
	"testing"

	"github.com/pulsar3d/pulsar-go/common"
)

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()

	if x, y, z := c.Target(); x != 0 || y != 0 || z != 0 {
		t.Errorf("default target = (%v, %v, %v), want origin", x, y, z)
	}
	if x, y, z := c.Up(); x != 0 || y != 1 || z != 0 {
		t.Errorf("default up = (%v, %v, %v), want +Y", x, y, z)
	}
	wantFov := float32(45.0 * (math.Pi / 180.0))
	if got := c.Fov(); got != wantFov {
		t.Errorf("default fov = %v, want %v", got, wantFov)
	}
	if got := c.Near(); got != 0.1 {
		t.Errorf("default near = %v, want 0.1", got)
	}
	if got := c.Far(); got != 100.0 {
		t.Errorf("default far = %v, want 100.0", got)
	}
	if got := c.Aspect(); got != 1.0 {
		t.Errorf("default aspect = %v, want 1.0", got)
	}
}

func TestNewCameraOptions(t *testing.T) {
	c := NewCamera(
		WithPosition(2, 2, 2),
		WithTarget(0, 0.5, 0),
		WithUp(0, 0, 1),
		WithFov(1.2),
		WithAspect(800.0/600.0),
		WithNear(0.5),
		WithFar(50),
	)

	if x, y, z := c.Position(); x != 2 || y != 2 || z != 2 {
		t.Errorf("position = (%v, %v, %v), want (2, 2, 2)", x, y, z)
	}
	if x, y, z := c.Target(); x != 0 || y != 0.5 || z != 0 {
		t.Errorf("target = (%v, %v, %v), want (0, 0.5, 0)", x, y, z)
	}
	if x, y, z := c.Up(); x != 0 || y != 0 || z != 1 {
		t.Errorf("up = (%v, %v, %v), want (0, 0, 1)", x, y, z)
	}
	if got := c.Fov(); got != 1.2 {
		t.Errorf("fov = %v, want 1.2", got)
	}
	if got := c.Aspect(); got != 800.0/600.0 {
		t.Errorf("aspect = %v, want %v", got, 800.0/600.0)
	}
	if got := c.Near(); got != 0.5 {
		t.Errorf("near = %v, want 0.5", got)
	}
	if got := c.Far(); got != 50.0 {
		t.Errorf("far = %v, want 50", got)
	}
}

func TestViewProjectionFiniteAndInvertible(t *testing.T) {
	tests := []struct {
		name     string
		position [3]float32
		aspect   float32
	}{
		{"diagonal", [3]float32{2, 2, 2}, 800.0 / 600.0},
		{"axis aligned", [3]float32{0, 0, 5}, 1.0},
		{"below origin", [3]float32{-1, -3, 4}, 1920.0 / 1080.0},
		{"tall surface", [3]float32{10, 1, 0.5}, 600.0 / 800.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera(
				WithPosition(tt.position[0], tt.position[1], tt.position[2]),
				WithAspect(tt.aspect),
			)
			vp := c.ViewProjectionMatrix()
			for i, v := range vp {
				if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
					t.Fatalf("vp[%d] = %v, want finite", i, v)
				}
			}
			var inv [16]float32
			if !common.Invert4(inv[:], vp[:]) {
				t.Fatal("view-projection matrix is singular")
			}
		})
	}
}

func TestSetAspectRecomputesProjection(t *testing.T) {
	c := NewCamera(WithPosition(2, 2, 2))
	before := c.ViewProjectionMatrix()

	c.SetAspect(2.0)
	after := c.ViewProjectionMatrix()

	if before == after {
		t.Error("view-projection unchanged after SetAspect")
	}

	// m[0] carries the horizontal scale f/aspect, so doubling the aspect
	// must shrink it.
	projBefore := NewCamera(WithPosition(2, 2, 2)).ProjectionMatrix()
	projAfter := c.ProjectionMatrix()
	if projAfter[0] >= projBefore[0] {
		t.Errorf("projection x scale %v not reduced from %v after widening aspect", projAfter[0], projBefore[0])
	}
}

func TestSettersRecomputeMatrices(t *testing.T) {
	c := NewCamera(WithPosition(2, 2, 2))
	base := c.ViewProjectionMatrix()

	steps := []struct {
		name  string
		apply func()
	}{
		{"SetPosition", func() { c.SetPosition(3, 1, 2) }},
		{"SetTarget", func() { c.SetTarget(0, 1, 0) }},
		{"SetUp", func() { c.SetUp(0, 0, 1) }},
		{"SetFov", func() { c.SetFov(1.0) }},
		{"SetNear", func() { c.SetNear(0.25) }},
		{"SetFar", func() { c.SetFar(200) }},
	}
	for _, step := range steps {
		t.Run(step.name, func(t *testing.T) {
			step.apply()
			got := c.ViewProjectionMatrix()
			if got == base {
				t.Errorf("%s did not change the view-projection matrix", step.name)
			}
			base = got
		})
	}
}

func TestGPUCameraUniformIdentity(t *testing.T) {
	u := NewGPUCameraUniform()
	want := [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	if u.ViewProj != want {
		t.Errorf("new uniform = %v, want identity", u.ViewProj)
	}
	if u.Size() != 64 {
		t.Errorf("Size() = %d, want 64", u.Size())
	}
	if got := len(u.Marshal()); got != 64 {
		t.Errorf("len(Marshal()) = %d, want 64", got)
	}
}

func TestGPUCameraUniformUpdateFromIdempotent(t *testing.T) {
	c := NewCamera(WithPosition(2, 2, 2), WithAspect(800.0/600.0))
	u := NewGPUCameraUniform()

	u.UpdateFrom(c)
	first := u.Marshal()
	u.UpdateFrom(c)
	second := u.Marshal()

	if !bytes.Equal(first, second) {
		t.Error("Marshal differs between UpdateFrom calls for an unchanged camera")
	}
	if u.ViewProj != c.ViewProjectionMatrix() {
		t.Error("uniform does not match camera view-projection matrix")
	}
}
