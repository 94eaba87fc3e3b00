package scene

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"desk-replica/core"
	"desk-replica/math"
	"desk-replica/scene/shapes"
)

type harness struct {
	bridge  *recordingBridge
	decoder *stubDecoder
	device  *fakeDevice
	meshes  *fakeMeshes
}

func newHarness() *harness {
	b := &recordingBridge{}
	return &harness{
		bridge:  b,
		decoder: newStubDecoder(),
		device:  newFakeDevice(),
		meshes:  newFakeMeshes(b),
	}
}

func (h *harness) composer(def Definition, opts ...Option) *Composer {
	return NewComposer(def, h.bridge, h.meshes, h.decoder, h.device, opts...)
}

func smallScene() Definition {
	return Definition{
		Textures: []TextureSpec{
			{Tag: "marble", Path: "marble.jpg"},
			{Tag: "glass", Path: "glass.png"},
			{Tag: "can", Path: "can.jpg"},
		},
		Materials: []Material{
			{Tag: "plastic", Shininess: 12},
			{Tag: "metal", Shininess: 22},
		},
		Groups: []ObjectGroup{
			{Name: "table", Parts: []Part{
				{Name: "top", Shape: shapes.Plane, Transform: xf(v3(2, 1, 2), 0, 30, 0, v3(0, -1, 0)), Material: "plastic", Surface: Textured("marble").WithUVScale(2, 2)},
			}},
			{Name: "can", Parts: []Part{
				{Name: "body", Shape: shapes.Cylinder, Transform: xf(v3(1, 3, 1), 0, 0, 0, v3(1, 0, 1)), Material: "plastic", Surface: Textured("can")},
				{Name: "rim", Shape: shapes.TaperedCylinder, Transform: xf(v3(1, 0.1, 1), 0, 0, 0, v3(1, 3, 1)), Material: "metal", Surface: Flat(core.RGB(0.7, 0.7, 0.7))},
			}},
		},
	}
}

func prepared(t *testing.T, h *harness, def Definition, opts ...Option) *Composer {
	t.Helper()
	for _, spec := range def.Textures {
		h.decoder.add(spec.Path, 4)
	}
	c := h.composer(def, opts...)
	require.NoError(t, c.Prepare())
	h.bridge.reset()
	return c
}

func TestComposerSlotAssignment(t *testing.T) {
	h := newHarness()
	c := prepared(t, h, smallScene())

	slot, ok := c.Textures().FindSlot("can")
	require.True(t, ok)
	assert.Equal(t, 2, slot)

	records, err := c.DrawList()
	require.NoError(t, err)
	assert.Equal(t, 0, records[0].Slot)
	assert.Equal(t, 2, records[1].Slot)
	assert.Equal(t, -1, records[2].Slot)
}

func TestComposerPrepare(t *testing.T) {
	h := newHarness()
	def := smallScene()
	def.Lights = DeskLights()
	for _, spec := range def.Textures {
		h.decoder.add(spec.Path, 3)
	}
	c := h.composer(def)

	require.NoError(t, c.Prepare())

	assert.True(t, c.Prepared())
	assert.Equal(t, 3, c.Textures().Len())
	assert.Equal(t, 2, c.Materials().Len())
	assert.Len(t, h.device.bound, 3)
	require.Len(t, h.meshes.loaded, len(shapes.All))
	for _, kind := range shapes.All {
		assert.Equal(t, 1, h.meshes.loaded[kind], kind.String())
	}
	assert.Contains(t, h.bridge.calls, "bool bUseLighting true")

	assert.ErrorIs(t, c.Prepare(), ErrAlreadyPrepared)
}

func TestComposerPrepareMeshFailureReleasesTextures(t *testing.T) {
	h := newHarness()
	def := smallScene()
	for _, spec := range def.Textures {
		h.decoder.add(spec.Path, 3)
	}
	h.meshes.failLoads = 1
	c := h.composer(def)

	err := c.Prepare()
	require.ErrorIs(t, err, errOutOfMemory)
	assert.False(t, c.Prepared())
	assert.Equal(t, 0, c.Textures().Len())
	assert.Empty(t, h.device.live)
	assert.Equal(t, 1, h.meshes.released)

	require.NoError(t, c.Prepare())
	assert.Equal(t, 3, c.Textures().Len())
	assert.Len(t, h.device.live, 3)
	slot, ok := c.Textures().FindSlot("can")
	require.True(t, ok)
	assert.Equal(t, 2, slot)
}

func TestComposerPrepareSkipsBadTextures(t *testing.T) {
	h := newHarness()
	h.decoder.add("marble.jpg", 3)
	h.decoder.add("glass.png", 1)
	c := h.composer(smallScene())

	require.NoError(t, c.Prepare())

	assert.Equal(t, 1, c.Textures().Len())
	_, ok := c.Textures().FindSlot("can")
	assert.False(t, ok)
}

func TestComposerRenderBeforePrepare(t *testing.T) {
	h := newHarness()
	c := h.composer(smallScene())

	assert.ErrorIs(t, c.Render(), ErrNotPrepared)
	_, err := c.DrawList()
	assert.ErrorIs(t, err, ErrNotPrepared)
	assert.Empty(t, h.bridge.calls)
}

func TestComposerRenderOrder(t *testing.T) {
	h := newHarness()
	c := prepared(t, h, smallScene())

	require.NoError(t, c.Render())

	model := xf(v3(2, 1, 2), 0, 30, 0, v3(0, -1, 0)).Matrix()
	want := []string{
		fmt.Sprintf("mat4 model %v", model),
		"vec3 material.ambientColor {0 0 0}",
		"float material.ambientStrength 0",
		"vec3 material.diffuseColor {0 0 0}",
		"vec3 material.specularColor {0 0 0}",
		"float material.shininess 12",
		"bool bUseTexture true",
		"sampler objectTexture 0",
		"vec2 UVscale {2 2}",
		"draw plane ",
	}
	assert.Equal(t, want, h.bridge.calls[:len(want)])
	assert.Equal(t, 3, h.bridge.count("draw "))
	assert.Equal(t, 3, h.bridge.count("mat4 model "))

	// The flat rim turns texturing off and never pushes a sampler.
	tail := h.bridge.calls[len(h.bridge.calls)-3:]
	assert.Equal(t, []string{
		"bool bUseTexture false",
		"vec4 objectColor {0.7 0.7 0.7 1}",
		"draw taperedCylinder ",
	}, tail)
}

func TestComposerRenderIsIdempotent(t *testing.T) {
	h := newHarness()
	c := prepared(t, h, smallScene())

	require.NoError(t, c.Render())
	first := append([]string(nil), h.bridge.calls...)
	h.bridge.reset()
	require.NoError(t, c.Render())

	assert.Equal(t, first, h.bridge.calls)
}

func TestComposerDrawListHasNoSideEffects(t *testing.T) {
	h := newHarness()
	c := prepared(t, h, smallScene())

	records, err := c.DrawList()
	require.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Empty(t, h.bridge.calls)
	assert.True(t, records[0].Model.ApproxEqual(xf(v3(2, 1, 2), 0, 30, 0, v3(0, -1, 0)).Matrix(), 1e-6))
	assert.Equal(t, "metal", records[2].Material.Tag)
}

func TestComposerTextureMissFallsBackToFlat(t *testing.T) {
	obs, logs := observer.New(zap.WarnLevel)
	h := newHarness()
	def := smallScene()
	def.Groups[1].Parts[0].Surface = Textured("label")
	c := prepared(t, h, def, WithLogger(zap.New(obs)), WithFallbackColor(core.RGB(0.3, 0.3, 0.3)))

	require.NoError(t, c.Render())
	require.NoError(t, c.Render())

	for _, call := range h.bridge.calls {
		assert.NotEqual(t, "sampler objectTexture -1", call)
	}
	assert.Equal(t, 2, h.bridge.count("vec4 objectColor {0.3 0.3 0.3 1}"))
	assert.Equal(t, 1, logs.FilterMessage("texture not found, drawing flat").Len())
}

func TestComposerMaterialMissUsesDefault(t *testing.T) {
	h := newHarness()
	def := smallScene()
	def.Groups[1].Parts[0].Material = "rubber"
	c := prepared(t, h, def)

	records, err := c.DrawList()
	require.NoError(t, err)
	assert.Equal(t, DefaultMaterial, records[1].Material)

	require.NoError(t, c.Render())
	assert.Contains(t, h.bridge.calls, "float material.shininess 1")
}

func TestComposerStrictLookups(t *testing.T) {
	t.Run("texture", func(t *testing.T) {
		h := newHarness()
		def := smallScene()
		def.Groups[1].Parts[0].Surface = Textured("label")
		c := prepared(t, h, def, WithStrictLookups(true))

		assert.ErrorIs(t, c.Render(), ErrTextureNotFound)
		assert.Empty(t, h.bridge.calls)
	})
	t.Run("material", func(t *testing.T) {
		h := newHarness()
		def := smallScene()
		def.Groups[1].Parts[1].Material = "rubber"
		c := prepared(t, h, def, WithStrictLookups(true))

		assert.ErrorIs(t, c.Render(), ErrMaterialNotFound)
		assert.Zero(t, h.bridge.count("draw "))
	})
}

func TestComposerTeardown(t *testing.T) {
	h := newHarness()
	c := prepared(t, h, smallScene())

	c.Teardown()

	assert.False(t, c.Prepared())
	assert.Len(t, h.device.deleted, 3)
	assert.Empty(t, h.device.live)
	assert.Equal(t, 1, h.meshes.released)
	assert.ErrorIs(t, c.Render(), ErrNotPrepared)

	require.NoError(t, c.Prepare())
	require.NoError(t, c.Render())
}

func TestTransformMatrixComposition(t *testing.T) {
	tr := xf(v3(2, 3, 4), 10, 20, 30, v3(5, 6, 7))
	want := math.Mat4Scale(tr.Scale).
		Mul(math.Mat4RotationZ(math.Radians(30))).
		Mul(math.Mat4RotationY(math.Radians(20))).
		Mul(math.Mat4RotationX(math.Radians(10))).
		Mul(math.Mat4Translation(tr.Position))

	assert.True(t, tr.Matrix().ApproxEqual(want, 1e-6))
}
