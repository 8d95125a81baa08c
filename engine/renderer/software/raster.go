package software

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/blitz/engine/renderer/metadata"
)

// clipVertex is a vertex after the vertex stage, in clip space.
type clipVertex struct {
	pos mgl32.Vec4
	v   varyings
}

// screenVertex holds a vertex transformed to screen space.
type screenVertex struct {
	x, y, z float32
	invW    float32
	v       varyings // already divided by w
}

type fragmentShader func(call *metadata.DrawCall, in varyings) mgl32.Vec4

const wEpsilon = 1e-5

// vertexStage transforms vertex i of the call and computes its varyings.
func vertexStage(call *metadata.DrawCall, mvp mgl32.Mat4, i int) clipVertex {
	vb := call.Buffers
	p := vb.Position(i).Vec4(1)
	world := call.Model.Mul4x1(p)

	n := vb.Normal(i)
	if n.Len() > 0 {
		n = n.Normalize()
	}
	return clipVertex{
		pos: mvp.Mul4x1(p),
		v: varyings{
			color:  vb.Color(i),
			normal: n,
			uv:     vb.UV(i),
			dist:   world.Vec3().Sub(call.Eye).Len(),
		},
	}
}

// clipNear clips a polygon against the near plane (z >= -w) and w > 0.
func clipNear(in []clipVertex) []clipVertex {
	dist := func(c clipVertex) float32 {
		return float32(gomath.Min(float64(c.pos.Z()+c.pos.W()), float64(c.pos.W()-wEpsilon)))
	}
	out := make([]clipVertex, 0, len(in)+2)
	for i := range in {
		a, b := in[i], in[(i+1)%len(in)]
		da, db := dist(a), dist(b)
		if da >= 0 {
			out = append(out, a)
		}
		if (da >= 0) != (db >= 0) {
			t := da / (da - db)
			out = append(out, clipVertex{
				pos: a.pos.Mul(1 - t).Add(b.pos.Mul(t)),
				v:   lerpVaryings(a.v, b.v, t),
			})
		}
	}
	return out
}

func (b *Backend) toScreen(c clipVertex) screenVertex {
	invW := 1 / c.pos.W()
	fb := b.back
	return screenVertex{
		x:    (c.pos.X()*invW + 1) * 0.5 * float32(fb.Width),
		y:    (1 - c.pos.Y()*invW) * 0.5 * float32(fb.Height),
		z:    (c.pos.Z()*invW + 1) * 0.5,
		invW: invW,
		v:    c.v.scale(invW),
	}
}

// drawTriangles runs every triangle of the call through clipping and rasterization.
func (b *Backend) drawTriangles(call *metadata.DrawCall, shade fragmentShader) {
	mvp := call.Projection.Mul4(call.View).Mul4(call.Model)
	count := call.Buffers.Count - call.Buffers.Count%3

	poly := make([]clipVertex, 3)
	for i := 0; i < count; i += 3 {
		poly[0] = vertexStage(call, mvp, i)
		poly[1] = vertexStage(call, mvp, i+1)
		poly[2] = vertexStage(call, mvp, i+2)

		clipped := clipNear(poly)
		if len(clipped) < 3 {
			continue
		}
		s0 := b.toScreen(clipped[0])
		for k := 1; k+1 < len(clipped); k++ {
			b.rasterize(call, shade, s0, b.toScreen(clipped[k]), b.toScreen(clipped[k+1]))
		}
	}
}

func edge(ax, ay, bx, by, px, py float32) float32 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// rasterize fills one screen-space triangle with a less-than depth test and
// perspective-correct varyings. Both windings are drawn.
func (b *Backend) rasterize(call *metadata.DrawCall, shade fragmentShader, s0, s1, s2 screenVertex) {
	fb := b.back
	area := edge(s0.x, s0.y, s1.x, s1.y, s2.x, s2.y)
	if area == 0 {
		return
	}

	minX := int(gomath.Max(0, gomath.Floor(float64(min3(s0.x, s1.x, s2.x)))))
	maxX := int(gomath.Min(float64(fb.Width-1), gomath.Ceil(float64(max3(s0.x, s1.x, s2.x)))))
	minY := int(gomath.Max(0, gomath.Floor(float64(min3(s0.y, s1.y, s2.y)))))
	maxY := int(gomath.Min(float64(fb.Height-1), gomath.Ceil(float64(max3(s0.y, s1.y, s2.y)))))

	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5

			w0 := edge(s1.x, s1.y, s2.x, s2.y, px, py) / area
			w1 := edge(s2.x, s2.y, s0.x, s0.y, px, py) / area
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			z := w0*s0.z + w1*s1.z + w2*s2.z
			if z < 0 || z > 1 || z >= fb.depthAt(x, y) {
				continue
			}

			invW := w0*s0.invW + w1*s1.invW + w2*s2.invW
			if invW == 0 {
				continue
			}
			in := s0.v.scale(w0).add(s1.v.scale(w1)).add(s2.v.scale(w2)).scale(1 / invW)

			fb.setPixel(x, y, z, toRGBA(shade(call, in)))
		}
	}
}

func min3(a, b, c float32) float32 {
	return float32(gomath.Min(float64(a), gomath.Min(float64(b), float64(c))))
}

func max3(a, b, c float32) float32 {
	return float32(gomath.Max(float64(a), gomath.Max(float64(b), float64(c))))
}
