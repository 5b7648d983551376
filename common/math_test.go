package common

import (
	"math"
	"testing"
)

func isFinite(m []float32) bool {
	for _, v := range m {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

func matApprox(a, b []float32, eps float32) bool {
	for i := range a {
		d := a[i] - b[i]
		if d < 0 {
			d = -d
		}
		if d > eps {
			return false
		}
	}
	return true
}

func TestIdentity(t *testing.T) {
	m := make([]float32, 16)
	for i := range m {
		m[i] = float32(i)
	}
	Identity(m)
	want := []float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	if !matApprox(m, want, 0) {
		t.Errorf("Identity() = %v, want %v", m, want)
	}
}

func TestMul4IdentityLaws(t *testing.T) {
	ident := []float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	m := []float32{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53}

	out := make([]float32, 16)
	Mul4(out, ident, m)
	if !matApprox(out, m, 0) {
		t.Errorf("I * m = %v, want %v", out, m)
	}

	Mul4(out, m, ident)
	if !matApprox(out, m, 0) {
		t.Errorf("m * I = %v, want %v", out, m)
	}
}

func TestMul4Aliasing(t *testing.T) {
	a := []float32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	b := []float32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	want := make([]float32, 16)
	Mul4(want, a, b)

	// out aliases the left operand
	got := append([]float32(nil), a...)
	Mul4(got, got, b)
	if !matApprox(got, want, 0) {
		t.Errorf("aliased Mul4 = %v, want %v", got, want)
	}
}

func TestPerspectiveFiniteAndInvertible(t *testing.T) {
	tests := []struct {
		name   string
		fovY   float32
		aspect float32
		near   float32
		far    float32
	}{
		{"square", float32(math.Pi / 4), 1.0, 0.1, 100.0},
		{"wide", float32(math.Pi / 4), 800.0 / 600.0, 0.1, 100.0},
		{"tall", float32(math.Pi / 3), 0.5, 0.1, 100.0},
		{"deep frustum", float32(math.Pi / 4), 1.6, 0.01, 100000.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := make([]float32, 16)
			Perspective(m, tt.fovY, tt.aspect, tt.near, tt.far)
			if !isFinite(m) {
				t.Fatalf("Perspective produced non-finite matrix: %v", m)
			}
			inv := make([]float32, 16)
			if !Invert4(inv, m) {
				t.Errorf("Perspective matrix is singular: %v", m)
			}
		})
	}
}

func TestPerspectiveClipRange(t *testing.T) {
	// A point on the near plane must map to z=0, a point on the far plane to
	// z=1 after the perspective divide (WebGPU clip space convention).
	near, far := float32(0.1), float32(100.0)
	m := make([]float32, 16)
	Perspective(m, float32(math.Pi/4), 1.0, near, far)

	project := func(z float32) float32 {
		// Column-major: clipZ = m[10]*z + m[14], clipW = m[11]*z + m[15]
		clipZ := m[10]*z + m[14]
		clipW := m[11]*z + m[15]
		return clipZ / clipW
	}

	// View space looks down -Z, so the near plane sits at z = -near.
	if got := project(-near); math.Abs(float64(got)) > 1e-5 {
		t.Errorf("near plane mapped to %v, want 0", got)
	}
	if got := project(-far); math.Abs(float64(got-1)) > 1e-4 {
		t.Errorf("far plane mapped to %v, want 1", got)
	}
}

func TestLookAtMapsEyeToOrigin(t *testing.T) {
	m := make([]float32, 16)
	LookAt(m, 2, 2, 2, 0, 0, 0, 0, 1, 0)

	if !isFinite(m) {
		t.Fatalf("LookAt produced non-finite matrix: %v", m)
	}

	// Transforming the eye position must land on the view-space origin.
	ex, ey, ez := float32(2), float32(2), float32(2)
	vx := m[0]*ex + m[4]*ey + m[8]*ez + m[12]
	vy := m[1]*ex + m[5]*ey + m[9]*ez + m[13]
	vz := m[2]*ex + m[6]*ey + m[10]*ez + m[14]
	const eps = 1e-5
	if math.Abs(float64(vx)) > eps || math.Abs(float64(vy)) > eps || math.Abs(float64(vz)) > eps {
		t.Errorf("eye transformed to (%v, %v, %v), want origin", vx, vy, vz)
	}
}

func TestLookAtTargetOnNegativeZ(t *testing.T) {
	m := make([]float32, 16)
	LookAt(m, 0, 0, 5, 0, 0, 0, 0, 1, 0)

	// The target must end up in front of the camera, on the -Z axis.
	vz := m[2]*0 + m[6]*0 + m[10]*0 + m[14]
	if vz >= 0 {
		t.Errorf("target view-space z = %v, want negative (in front of camera)", vz)
	}
}

func TestInvert4RoundTrip(t *testing.T) {
	m := make([]float32, 16)
	LookAt(m, 3, 1, -2, 0.5, 0, 1, 0, 1, 0)

	inv := make([]float32, 16)
	if !Invert4(inv, m) {
		t.Fatalf("view matrix reported singular")
	}

	out := make([]float32, 16)
	Mul4(out, m, inv)
	ident := []float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	if !matApprox(out, ident, 1e-5) {
		t.Errorf("m * m^-1 = %v, want identity", out)
	}
}

func TestInvert4Singular(t *testing.T) {
	zero := make([]float32, 16)
	out := []float32{9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9}
	if Invert4(out, zero) {
		t.Error("Invert4 inverted a singular matrix")
	}
	for i, v := range out {
		if v != 9 {
			t.Errorf("output modified at %d on singular input: %v", i, v)
			break
		}
	}
}

func TestSliceToBytes(t *testing.T) {
	data := []float32{1.0, 2.0}
	b := SliceToBytes(data)
	if len(b) != 8 {
		t.Errorf("SliceToBytes length = %d, want 8", len(b))
	}
	if b := SliceToBytes([]float32(nil)); b != nil {
		t.Errorf("SliceToBytes(nil) = %v, want nil", b)
	}
}
