package scene

import (
	"fmt"

	"desk-replica/core"
	"desk-replica/math"
)

type SurfaceMode int

const (
	SurfaceFlat SurfaceMode = iota
	SurfaceTextured
)

// Surface selects what colors a part: either a flat color or a registered
// texture. Both the mode flag and the value are pushed on every draw.
type Surface struct {
	Mode       SurfaceMode
	Color      core.Color
	TextureTag string
	UVScale    math.Vec2
}

func Flat(c core.Color) Surface {
	return Surface{Mode: SurfaceFlat, Color: c}
}

func Textured(tag string) Surface {
	return Surface{Mode: SurfaceTextured, TextureTag: tag, UVScale: math.Vec2One}
}

func (s Surface) WithUVScale(u, v float32) Surface {
	s.UVScale = math.NewVec2(u, v)
	return s
}

func (s Surface) IsTextured() bool {
	return s.Mode == SurfaceTextured
}

func (s Surface) String() string {
	if s.IsTextured() {
		return fmt.Sprintf("texture(%s, uv=%gx%g)", s.TextureTag, s.UVScale.X, s.UVScale.Y)
	}
	return fmt.Sprintf("flat(%g, %g, %g, %g)", s.Color.R, s.Color.G, s.Color.B, s.Color.A)
}

func applyFlat(bridge ShaderBridge, c core.Color) {
	bridge.SetBool(UniformUseTexture, false)
	bridge.SetVec4(UniformObjectColor, c.Vec4())
}

func applyTexture(bridge ShaderBridge, slot int, uv math.Vec2) {
	bridge.SetBool(UniformUseTexture, true)
	bridge.SetSampler(UniformTexture, slot)
	bridge.SetVec2(UniformUVScale, uv)
}
