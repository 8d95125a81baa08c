package software

import (
	"image/color"
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/blitz/engine/math"
	"github.com/spaghettifunk/blitz/engine/renderer/metadata"
)

// varyings interpolated across a triangle.
type varyings struct {
	color  mgl32.Vec4
	normal mgl32.Vec3
	uv     mgl32.Vec2
	dist   float32
}

func (v varyings) scale(s float32) varyings {
	return varyings{
		color:  v.color.Mul(s),
		normal: v.normal.Mul(s),
		uv:     v.uv.Mul(s),
		dist:   v.dist * s,
	}
}

func (v varyings) add(o varyings) varyings {
	return varyings{
		color:  v.color.Add(o.color),
		normal: v.normal.Add(o.normal),
		uv:     v.uv.Add(o.uv),
		dist:   v.dist + o.dist,
	}
}

func lerpVaryings(a, b varyings, t float32) varyings {
	return a.scale(1 - t).add(b.scale(t))
}

// shadeLit is the fragment stage of the lit pipeline: diffuse plus ambient
// lighting, or the normal itself when phong is off, then linear distance fog.
func shadeLit(call *metadata.DrawCall, in varyings) mgl32.Vec4 {
	n := in.normal
	if n.Len() > 0 {
		n = n.Normalize()
	}
	rgb := in.color.Vec3()

	nDotL := float32(gomath.Max(float64(call.DiffuseDirection.Dot(n)), 0))
	diffuse := mulVec3(call.LightColor, rgb).Mul(nDotL)
	ambient := mulVec3(call.Ambient, rgb)

	var lit mgl32.Vec3
	if call.Phong {
		lit = diffuse.Add(ambient)
	} else {
		lit = n
	}

	fog := float32(1)
	if span := call.FogFar - call.FogNear; span != 0 {
		fog = math.Clamp((call.FogFar-in.dist)/span, 0, 1)
	}
	out := mgl32.Vec3{
		math.Mix(call.FogColor.X(), lit.X(), fog),
		math.Mix(call.FogColor.Y(), lit.Y(), fog),
		math.Mix(call.FogColor.Z(), lit.Z(), fog),
	}
	return out.Vec4(in.color.W())
}

func mulVec3(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a.X() * b.X(), a.Y() * b.Y(), a.Z() * b.Z()}
}

// shadeTextured samples the texture at the interpolated coordinates.
func shadeTextured(call *metadata.DrawCall, in varyings) mgl32.Vec4 {
	return sampleTexture(call.Texture, in.uv)
}

// sampleTexture returns the texel color in [0,1]. v = 0 is the bottom row
// when the texture is flipped.
func sampleTexture(tex *metadata.Texture, uv mgl32.Vec2) mgl32.Vec4 {
	if !tex.Ready() {
		return mgl32.Vec4{0, 0, 0, 1}
	}
	w, h := tex.Size()
	u, v := wrap(uv.X(), tex.RepeatU), wrap(uv.Y(), tex.RepeatV)
	if tex.FlipY {
		v = 1 - v
	}
	x := u*float32(w) - 0.5
	y := v*float32(h) - 0.5

	if tex.Filter == metadata.TextureFilterModeNearest {
		return texel(tex, int(gomath.Round(float64(x))), int(gomath.Round(float64(y))))
	}

	x0, y0 := int(gomath.Floor(float64(x))), int(gomath.Floor(float64(y)))
	fx, fy := x-float32(x0), y-float32(y0)
	c00 := texel(tex, x0, y0)
	c10 := texel(tex, x0+1, y0)
	c01 := texel(tex, x0, y0+1)
	c11 := texel(tex, x0+1, y0+1)
	top := c00.Mul(1 - fx).Add(c10.Mul(fx))
	bottom := c01.Mul(1 - fx).Add(c11.Mul(fx))
	return top.Mul(1 - fy).Add(bottom.Mul(fy))
}

func wrap(t float32, mode metadata.TextureRepeat) float32 {
	if mode == metadata.TextureRepeatRepeat {
		t -= float32(gomath.Floor(float64(t)))
		return t
	}
	return math.Clamp(t, 0, 1)
}

// texel reads a pixel, clamping coordinates to the edge.
func texel(tex *metadata.Texture, x, y int) mgl32.Vec4 {
	w, h := tex.Size()
	x = math.Clamp(x, 0, w-1)
	y = math.Clamp(y, 0, h-1)
	b := tex.Image.Bounds()
	c := tex.Image.NRGBAAt(b.Min.X+x, b.Min.Y+y)
	return mgl32.Vec4{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255}
}

// toRGBA quantizes a [0,1] color the way a fixed-point color buffer does.
func toRGBA(c mgl32.Vec4) color.RGBA {
	q := func(f float32) uint8 {
		return uint8(math.Clamp(f, 0, 1)*255 + 0.5)
	}
	return color.RGBA{R: q(c.X()), G: q(c.Y()), B: q(c.Z()), A: q(c.W())}
}
