package scene

import (
	"fmt"

	"go.uber.org/zap"

	"desk-replica/core"
	"desk-replica/math"
	"desk-replica/scene/shapes"
)

// Transform holds independent scale, rotation (degrees about the world axes)
// and translation parameters.
type Transform struct {
	Scale    math.Vec3
	RotX     float32
	RotY     float32
	RotZ     float32
	Position math.Vec3
}

// Matrix composes T * Rx * Ry * Rz * S.
func (t Transform) Matrix() math.Mat4 {
	return math.Mat4ModelXYZ(t.Scale, t.RotX, t.RotY, t.RotZ, t.Position)
}

// Part is one drawn piece of an object.
type Part struct {
	Name      string
	Shape     shapes.Kind
	Transform Transform
	Material  string
	Surface   Surface
}

// ObjectGroup is a named, ordered set of parts drawn together.
type ObjectGroup struct {
	Name  string
	Parts []Part
}

type TextureSpec struct {
	Tag  string
	Path string
}

// Definition is everything a scene needs: textures in slot order, materials,
// lights and the groups in draw order.
type Definition struct {
	Textures  []TextureSpec
	Materials []Material
	Lights    LightRig
	Groups    []ObjectGroup
}

// Shapes returns the distinct shape kinds used by the groups, in first-use
// order.
func (d *Definition) Shapes() []shapes.Kind {
	seen := make(map[shapes.Kind]bool)
	var kinds []shapes.Kind
	for _, g := range d.Groups {
		for _, p := range g.Parts {
			if !seen[p.Shape] {
				seen[p.Shape] = true
				kinds = append(kinds, p.Shape)
			}
		}
	}
	return kinds
}

// PartCount is the number of draw calls per frame.
func (d *Definition) PartCount() int {
	n := 0
	for _, g := range d.Groups {
		n += len(g.Parts)
	}
	return n
}

// DrawRecord is a part with every lookup resolved. Slot is -1 for flat
// surfaces.
type DrawRecord struct {
	Group    string
	Part     string
	Shape    shapes.Kind
	Model    math.Mat4
	Material Material
	Surface  Surface
	Slot     int
}

type Option func(*Composer)

func WithLogger(log *zap.Logger) Option {
	return func(c *Composer) {
		if log != nil {
			c.log = log
		}
	}
}

// WithStrictLookups turns texture and material lookup misses into errors
// returned from Render and DrawList.
func WithStrictLookups(strict bool) Option {
	return func(c *Composer) {
		c.strict = strict
	}
}

// WithFallbackColor sets the flat color drawn in place of a missing texture.
func WithFallbackColor(color core.Color) Option {
	return func(c *Composer) {
		c.fallback = color
	}
}

// Composer prepares a scene definition once and then draws it every frame in
// a fixed order.
type Composer struct {
	def       Definition
	bridge    ShaderBridge
	meshes    MeshLibrary
	textures  *TextureRegistry
	materials *MaterialRegistry

	log      *zap.Logger
	strict   bool
	fallback core.Color

	prepared bool
	warned   map[string]bool
}

func NewComposer(def Definition, bridge ShaderBridge, meshes MeshLibrary, decoder TextureDecoder, device TextureDevice, opts ...Option) *Composer {
	c := &Composer{
		def:       def,
		bridge:    bridge,
		meshes:    meshes,
		materials: NewMaterialRegistry(),
		log:       zap.NewNop(),
		fallback:  core.RGB(1, 0, 1),
		warned:    make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.textures = NewTextureRegistry(decoder, device, c.log)
	return c
}

// Prepare loads and binds textures, defines materials, pushes the lights and
// loads every mesh kind. A texture that fails to load is logged and left out
// of the registry. A mesh failure releases everything loaded so far, so
// Prepare can be retried. Prepare runs once.
func (c *Composer) Prepare() error {
	if c.prepared {
		return ErrAlreadyPrepared
	}

	for _, t := range c.def.Textures {
		if err := c.textures.Load(t.Path, t.Tag); err != nil {
			c.log.Warn("texture skipped", zap.String("tag", t.Tag), zap.Error(err))
		}
	}
	c.textures.BindAll()

	c.materials = NewMaterialRegistry()
	for _, m := range c.def.Materials {
		c.materials.Define(m)
	}

	c.def.Lights.Apply(c.bridge)

	for _, kind := range shapes.All {
		if err := c.meshes.Load(kind); err != nil {
			c.textures.ReleaseAll()
			c.meshes.Release()
			return fmt.Errorf("load %s mesh: %w", kind, err)
		}
	}

	c.prepared = true
	c.log.Info("scene prepared",
		zap.Int("textures", c.textures.Len()),
		zap.Int("materials", c.materials.Len()),
		zap.Int("groups", len(c.def.Groups)),
		zap.Int("parts", c.def.PartCount()))
	return nil
}

// DrawList resolves every part in draw order without touching the shader.
func (c *Composer) DrawList() ([]DrawRecord, error) {
	if !c.prepared {
		return nil, ErrNotPrepared
	}

	records := make([]DrawRecord, 0, c.def.PartCount())
	for _, g := range c.def.Groups {
		for _, p := range g.Parts {
			rec, err := c.resolve(g.Name, p)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
	}
	return records, nil
}

// Render draws every part. Lookups for the whole frame are resolved first, so
// a strict lookup error is returned before anything is drawn.
func (c *Composer) Render() error {
	records, err := c.DrawList()
	if err != nil {
		return err
	}

	for _, rec := range records {
		c.bridge.SetMat4(UniformModel, rec.Model)
		rec.Material.Apply(c.bridge)
		if rec.Surface.IsTextured() {
			applyTexture(c.bridge, rec.Slot, rec.Surface.UVScale)
		} else {
			applyFlat(c.bridge, rec.Surface.Color)
		}
		if err := c.meshes.Draw(rec.Shape); err != nil {
			return fmt.Errorf("draw %s/%s: %w", rec.Group, rec.Part, err)
		}
	}
	return nil
}

func (c *Composer) resolve(group string, p Part) (DrawRecord, error) {
	rec := DrawRecord{
		Group:   group,
		Part:    p.Name,
		Shape:   p.Shape,
		Model:   p.Transform.Matrix(),
		Surface: p.Surface,
		Slot:    -1,
	}

	m, ok := c.materials.Find(p.Material)
	if !ok {
		if c.strict {
			return rec, fmt.Errorf("%s/%s: %w: %q", group, p.Name, ErrMaterialNotFound, p.Material)
		}
		c.warnOnce("material:"+p.Material, "material not found, using default",
			zap.String("material", p.Material), zap.String("part", group+"/"+p.Name))
		m = DefaultMaterial
	}
	rec.Material = m

	if p.Surface.IsTextured() {
		slot, ok := c.textures.FindSlot(p.Surface.TextureTag)
		if !ok {
			if c.strict {
				return rec, fmt.Errorf("%s/%s: %w: %q", group, p.Name, ErrTextureNotFound, p.Surface.TextureTag)
			}
			c.warnOnce("texture:"+p.Surface.TextureTag, "texture not found, drawing flat",
				zap.String("texture", p.Surface.TextureTag), zap.String("part", group+"/"+p.Name))
			rec.Surface = Flat(c.fallback)
		} else {
			rec.Slot = slot
		}
	}
	return rec, nil
}

func (c *Composer) warnOnce(key, msg string, fields ...zap.Field) {
	if c.warned[key] {
		return
	}
	c.warned[key] = true
	c.log.Warn(msg, fields...)
}

// Teardown releases textures and meshes. The composer can be prepared again
// afterwards.
func (c *Composer) Teardown() {
	c.textures.ReleaseAll()
	c.meshes.Release()
	c.prepared = false
	c.warned = make(map[string]bool)
}

func (c *Composer) Prepared() bool { return c.prepared }
func (c *Composer) Definition() Definition { return c.def }
func (c *Composer) Textures() *TextureRegistry { return c.textures }
func (c *Composer) Materials() *MaterialRegistry { return c.materials }
