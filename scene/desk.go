package scene

import (
	"path/filepath"

	"desk-replica/core"
	"desk-replica/math"
	"desk-replica/scene/shapes"
)

// Texture tags used by the desk scene, in slot order.
const (
	TexMarble = "marble"
	TexFace   = "face"
	TexBody   = "body"
	TexArm    = "arm"
	TexLeg    = "leg"
	TexCan    = "can"
)

// Material tags used by the desk scene.
const (
	MatPlastic = "plastic"
	MatMetal   = "metal"
	MatCloth   = "cloth"
	MatGlass   = "glass"
	MatMatte   = "matteFinish"
)

var (
	darkGray  = core.RGB(0.2, 0.2, 0.2)
	rimSilver = core.RGB(0.7, 0.7, 0.7)
	lampBlue  = core.RGB(0.1, 0.1, 0.2)
)

func xf(scale math.Vec3, rx, ry, rz float32, pos math.Vec3) Transform {
	return Transform{Scale: scale, RotX: rx, RotY: ry, RotZ: rz, Position: pos}
}

func v3(x, y, z float32) math.Vec3 {
	return math.NewVec3(x, y, z)
}

// DeskScene describes the desk with a toy figure, a soda can, headphones and
// a lamp base. Texture files are resolved relative to textureDir.
func DeskScene(textureDir string) Definition {
	return Definition{
		Textures:  deskTextures(textureDir),
		Materials: DeskMaterials(),
		Lights:    DeskLights(),
		Groups: []ObjectGroup{
			desktop(),
			legoMan(),
			sodaCan(),
			headphones(),
			lampBase(),
		},
	}
}

func deskTextures(dir string) []TextureSpec {
	return []TextureSpec{
		{Tag: TexMarble, Path: filepath.Join(dir, "marble.jpg")},
		{Tag: TexFace, Path: filepath.Join(dir, "superhero-face.jpg")},
		{Tag: TexBody, Path: filepath.Join(dir, "superhero-body.jpg")},
		{Tag: TexArm, Path: filepath.Join(dir, "superhero-arm.jpg")},
		{Tag: TexLeg, Path: filepath.Join(dir, "superhero-leg.jpg")},
		{Tag: TexCan, Path: filepath.Join(dir, "soda-can.jpg")},
	}
}

func DeskMaterials() []Material {
	return []Material{
		{
			Tag:             MatPlastic,
			AmbientColor:    math.Splat(0.2),
			AmbientStrength: 0.3,
			DiffuseColor:    math.Splat(0.2),
			SpecularColor:   math.Splat(0.4),
			Shininess:       12,
		},
		{
			Tag:             MatMetal,
			AmbientColor:    math.Splat(0.2),
			AmbientStrength: 0.3,
			DiffuseColor:    math.Splat(0.2),
			SpecularColor:   math.Splat(0.5),
			Shininess:       22,
		},
		{
			Tag:             MatCloth,
			AmbientColor:    math.Splat(0.1),
			AmbientStrength: 0.2,
			DiffuseColor:    math.Splat(0.3),
			SpecularColor:   math.Splat(0.1),
			Shininess:       0.3,
		},
		{
			Tag:             MatGlass,
			AmbientColor:    math.Splat(0.4),
			AmbientStrength: 0.3,
			DiffuseColor:    math.Splat(0.3),
			SpecularColor:   math.Splat(0.6),
			Shininess:       85,
		},
		{
			Tag:             MatMatte,
			AmbientColor:    math.Splat(0.2),
			AmbientStrength: 0.2,
			DiffuseColor:    math.Splat(0.1),
			SpecularColor:   math.Vec3Zero,
			Shininess:       0,
		},
	}
}

// DeskLights returns the lamp light, a fill light, an unlit back slot and the
// ceiling light.
func DeskLights() LightRig {
	return LightRig{
		{
			Position:          v3(7.75, 10, -17.75),
			AmbientColor:      math.Splat(0.1),
			DiffuseColor:      math.Splat(0.5),
			SpecularColor:     math.Splat(0.4),
			FocalStrength:     32,
			SpecularIntensity: 0.7,
		},
		{
			Position:          v3(13, 10, 6),
			DiffuseColor:      math.Splat(0.5),
			SpecularColor:     math.Splat(0.2),
			FocalStrength:     32,
			SpecularIntensity: 0.2,
		},
		{
			Position:          v3(-20, 10, 2),
			FocalStrength:     12,
			SpecularIntensity: 0.2,
		},
		{
			Position:          v3(0, 32, 32),
			AmbientColor:      math.Splat(0.2),
			DiffuseColor:      math.Splat(0.5),
			SpecularColor:     v3(0.6, 0.6, 0.1),
			FocalStrength:     3,
			SpecularIntensity: 0.5,
		},
	}
}

func desktop() ObjectGroup {
	return ObjectGroup{Name: "desktop", Parts: []Part{
		{
			Name:      "surface",
			Shape:     shapes.Plane,
			Transform: xf(v3(20, 1, 30), 0, -25, 0, v3(10, -1, 0)),
			Material:  MatGlass,
			Surface:   Textured(TexMarble),
		},
	}}
}

func legoMan() ObjectGroup {
	legScale := v3(1.75, 2.7, 1.5)
	armScale := v3(0.5, 3.5, 0.5)
	handScale := math.Splat(0.7)

	return ObjectGroup{Name: "legoMan", Parts: []Part{
		{Name: "leftLeg", Shape: shapes.Box, Transform: xf(legScale, 0, 0, 0, v3(-0.2, 0.4, 0)), Material: MatCloth, Surface: Textured(TexLeg)},
		{Name: "rightLeg", Shape: shapes.Box, Transform: xf(legScale, 0, 0, 0, v3(-2.2, 0.4, 0)), Material: MatCloth, Surface: Textured(TexLeg)},
		{Name: "hip", Shape: shapes.Box, Transform: xf(v3(4.2, 1, 1.7), 180, 0, 0, v3(-1.25, 2.05, 0)), Material: MatCloth, Surface: Textured(TexLeg)},
		{Name: "body", Shape: shapes.Cylinder, Transform: xf(v3(2.25, 4, 1.25), 0, 180, 0, v3(-1.25, 2.5, 0)), Material: MatCloth, Surface: Textured(TexBody)},
		{Name: "neck", Shape: shapes.Cylinder, Transform: xf(v3(2.25, 0.1, 1.25), 0, 0, 0, v3(-1.25, 6.5, 0)), Material: MatPlastic, Surface: Flat(darkGray)},
		{Name: "shoulders", Shape: shapes.Cylinder, Transform: xf(math.Splat(0.5), 0, 0, 0, v3(-1.25, 6.5, 0)), Material: MatPlastic, Surface: Flat(darkGray)},
		{Name: "head", Shape: shapes.Sphere, Transform: xf(v3(1.5, 1.75, 1.5), 0, 0, 0, v3(-1.25, 8.5, 0)), Material: MatCloth, Surface: Textured(TexFace)},
		{Name: "leftArm", Shape: shapes.Cylinder, Transform: xf(armScale, 0, 180, -10, v3(1.5, 3, 0)), Material: MatCloth, Surface: Textured(TexArm)},
		{Name: "rightArm", Shape: shapes.Cylinder, Transform: xf(armScale, -30, 0, -10, v3(-4, 3, 1.7)), Material: MatCloth, Surface: Textured(TexArm)},
		{Name: "leftHand", Shape: shapes.Sphere, Transform: xf(handScale, 0, 0, 0, v3(1.6, 2.5, 0)), Material: MatPlastic, Surface: Flat(darkGray)},
		{Name: "rightHand", Shape: shapes.Sphere, Transform: xf(handScale, 0, 0, 0, v3(-4.1, 2.5, 2.1)), Material: MatPlastic, Surface: Flat(darkGray)},
	}}
}

func sodaCan() ObjectGroup {
	return ObjectGroup{Name: "sodaCan", Parts: []Part{
		{Name: "body", Shape: shapes.Cylinder, Transform: xf(v3(3.5, 9, 3.5), 0, 0, 0, v3(10, -0.9, 10)), Material: MatPlastic, Surface: Textured(TexCan)},
		{Name: "rim", Shape: shapes.TaperedCylinder, Transform: xf(v3(3.5, 0.1, 3.5), 0, 0, 0, v3(10, 8.1, 10)), Material: MatMetal, Surface: Flat(rimSilver)},
	}}
}

func headphones() ObjectGroup {
	cup := math.Splat(3.15)
	return ObjectGroup{Name: "headphones", Parts: []Part{
		{Name: "band", Shape: shapes.HalfTorus, Transform: xf(v3(5, 16, 7), 90, -7.5, 255, v3(10, 2.75, -3)), Material: MatMatte, Surface: Flat(core.ColorWhite)},
		{Name: "leftCup", Shape: shapes.Cylinder, Transform: xf(cup, 0, 90, 90, v3(9, 2.25, -0.25)), Material: MatMatte, Surface: Flat(core.ColorWhite)},
		{Name: "rightCup", Shape: shapes.Cylinder, Transform: xf(cup, 0, 115, 90, v3(6, 2.25, -7.75)), Material: MatMatte, Surface: Flat(core.ColorWhite)},
	}}
}

func lampBase() ObjectGroup {
	return ObjectGroup{Name: "lampBase", Parts: []Part{
		{Name: "base", Shape: shapes.Box, Transform: xf(v3(15, 1.5, 10.5), 0, 0, 0, v3(7.75, 0, -17.75)), Material: MatPlastic, Surface: Flat(lampBlue)},
		{Name: "upper", Shape: shapes.Box, Transform: xf(v3(4.5, 4.5, 8.25), 0, 0, 0, v3(2.5, 1.5, -18.9)), Material: MatPlastic, Surface: Flat(lampBlue)},
		{Name: "wedge", Shape: shapes.Prism, Transform: xf(math.Splat(4.5), -90, 0, 90, v3(2.5, 1.5, -14.77)), Material: MatPlastic, Surface: Flat(lampBlue)},
	}}
}
