package geometry

import (
	"fmt"
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// NormalizedMesh is a de-indexed mesh plus the transform that moves its
// centroid to the origin and fits it in the unit cube.
type NormalizedMesh struct {
	Vertices []Vertex
	// Negated centroid of the distinct referenced positions.
	Translation mgl32.Vec3
	// 1 / max absolute coordinate, never above 1.
	InverseScale float32
}

// ModelMatrix scales by scaleTweak × InverseScale after translating to the centroid.
func (nm *NormalizedMesh) ModelMatrix(scaleTweak float32) mgl32.Mat4 {
	s := scaleTweak * nm.InverseScale
	t := nm.Translation
	return mgl32.Scale3D(s, s, s).Mul4(mgl32.Translate3D(t.X(), t.Y(), t.Z()))
}

// validAttribute reports whether an optional attribute stream can be used.
// nil, empty and NaN-led streams are all treated as absent.
func validAttribute(values []float32) bool {
	return len(values) > 0 && !gomath.IsNaN(float64(values[0]))
}

// NormalizeMesh emits one vertex per index occurrence and computes the
// centering translation and inverse scale over the distinct referenced vertices.
func NormalizeMesh(indices []int, positions, normals, uvs []float32) (*NormalizedMesh, error) {
	if len(indices) == 0 {
		return nil, ErrEmptyMesh
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: %d indices", ErrNotTriangulated, len(indices))
	}

	useNormals := validAttribute(normals)
	useUVs := validAttribute(uvs)

	nm := &NormalizedMesh{
		Vertices: make([]Vertex, len(indices)),
	}

	seen := make(map[int]struct{}, len(positions)/3)
	maxAbs := float32(1.0)
	var sum mgl32.Vec3

	for i, idx := range indices {
		if idx < 0 || idx*3+2 >= len(positions) {
			return nil, fmt.Errorf("%w: index %d at position %d, %d vertices", ErrIndexOutOfRange, idx, i, len(positions)/3)
		}
		p := mgl32.Vec3{positions[idx*3], positions[idx*3+1], positions[idx*3+2]}
		v := NewVertex(p.X(), p.Y(), p.Z())

		if useNormals {
			if idx*3+2 >= len(normals) {
				return nil, fmt.Errorf("%w: normal %d, %d normals", ErrIndexOutOfRange, idx, len(normals)/3)
			}
			n := mgl32.Vec3{normals[idx*3], normals[idx*3+1], normals[idx*3+2]}
			v.Normal = &n
		}
		if useUVs {
			if idx*2+1 >= len(uvs) {
				return nil, fmt.Errorf("%w: uv %d, %d uvs", ErrIndexOutOfRange, idx, len(uvs)/2)
			}
			uv := mgl32.Vec2{uvs[idx*2], uvs[idx*2+1]}
			v.UV = &uv
		}
		nm.Vertices[i] = v

		if _, ok := seen[idx]; ok {
			continue
		}
		seen[idx] = struct{}{}
		for _, c := range p {
			if a := float32(gomath.Abs(float64(c))); a > maxAbs {
				maxAbs = a
			}
		}
		sum = sum.Add(p)
	}

	nm.Translation = sum.Mul(-1 / float32(len(seen)))
	nm.InverseScale = 1 / maxAbs
	return nm, nil
}
