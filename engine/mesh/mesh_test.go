package mesh

import (
	"testing"
	"unsafe"
)

func TestCubeVertices(t *testing.T) {
	vertices := CubeVertices()
	if len(vertices) != 24 {
		t.Fatalf("len(vertices) = %d, want 24", len(vertices))
	}

	// Each face contributes 4 vertices sharing a single flat color.
	for face := 0; face < 6; face++ {
		color := vertices[face*4].Color
		for i := 1; i < 4; i++ {
			if vertices[face*4+i].Color != color {
				t.Errorf("face %d vertex %d color = %v, want %v", face, i, vertices[face*4+i].Color, color)
			}
		}
	}

	// All positions lie on the unit cube surface.
	for i, v := range vertices {
		for axis, p := range v.Position {
			if p != 0.5 && p != -0.5 {
				t.Errorf("vertices[%d].Position[%d] = %v, want +/-0.5", i, axis, p)
			}
		}
	}

	// Six distinct face colors.
	seen := map[[3]float32]bool{}
	for face := 0; face < 6; face++ {
		seen[vertices[face*4].Color] = true
	}
	if len(seen) != 6 {
		t.Errorf("distinct face colors = %d, want 6", len(seen))
	}
}

func TestCubeIndices(t *testing.T) {
	indices := CubeIndices()
	if len(indices) != 36 {
		t.Fatalf("len(indices) = %d, want 36", len(indices))
	}
	for i, idx := range indices {
		if idx >= 24 {
			t.Errorf("indices[%d] = %d, out of range for 24 vertices", i, idx)
		}
	}

	// Every face is two triangles over its own 4 vertices.
	for face := 0; face < 6; face++ {
		lo, hi := uint16(face*4), uint16(face*4+3)
		for i := 0; i < 6; i++ {
			idx := indices[face*6+i]
			if idx < lo || idx > hi {
				t.Errorf("face %d index %d = %d, want within [%d, %d]", face, i, idx, lo, hi)
			}
		}
	}
}

func TestGPUVertexLayout(t *testing.T) {
	var v GPUVertex
	if v.Size() != 24 {
		t.Errorf("Size() = %d, want 24", v.Size())
	}
	if got := len(v.Marshal()); got != 24 {
		t.Errorf("len(Marshal()) = %d, want 24", got)
	}

	layout := VertexBufferLayout()
	if layout.ArrayStride != uint64(v.Size()) {
		t.Errorf("ArrayStride = %d, want %d", layout.ArrayStride, v.Size())
	}
	if len(layout.Attributes) != 2 {
		t.Fatalf("len(Attributes) = %d, want 2", len(layout.Attributes))
	}
	if layout.Attributes[0].Offset != 0 || layout.Attributes[0].ShaderLocation != 0 {
		t.Errorf("position attribute = %+v, want offset 0 location 0", layout.Attributes[0])
	}
	wantColorOffset := uint64(unsafe.Offsetof(GPUVertex{}.Color))
	if layout.Attributes[1].Offset != wantColorOffset || layout.Attributes[1].ShaderLocation != 1 {
		t.Errorf("color attribute = %+v, want offset %d location 1", layout.Attributes[1], wantColorOffset)
	}
}

func TestGPUVertexMarshalRoundsFloats(t *testing.T) {
	v := GPUVertex{
		Position: [3]float32{-0.5, 0.5, 0.25},
		Color:    [3]float32{1, 0, 1},
	}
	buf := v.Marshal()
	if buf[0] == 0 && buf[1] == 0 && buf[2] == 0 && buf[3] == 0 {
		t.Error("position x not serialized")
	}
}
