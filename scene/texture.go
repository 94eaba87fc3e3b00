package scene

import (
	"fmt"

	"go.uber.org/zap"
)

// MaxTextureSlots is the number of texture units the scene may occupy.
const MaxTextureSlots = 16

// TextureHandle is an opaque GPU texture reference.
type TextureHandle uint32

// DecodedImage holds tightly packed pixel rows, bottom row first when the
// decoder was asked to flip.
type DecodedImage struct {
	Pixels   []byte
	Width    int
	Height   int
	Channels int
}

// TextureDecoder reads an image file into raw pixels.
type TextureDecoder interface {
	Decode(path string, flipVertical bool) (*DecodedImage, error)
}

// TextureDevice allocates, binds and frees GPU textures.
type TextureDevice interface {
	// Upload creates a 2D texture with repeat wrapping, linear filtering and
	// mipmaps. img.Channels is 3 or 4.
	Upload(img *DecodedImage) (TextureHandle, error)
	Bind(unit int, h TextureHandle)
	Delete(h TextureHandle)
}

// TextureEntry is one registered texture. Its slot is its position in the
// registry.
type TextureEntry struct {
	Tag      string
	Path     string
	Handle   TextureHandle
	Width    int
	Height   int
	Channels int
}

// TextureRegistry maps tags to loaded textures in load order. The load order
// is also the texture unit each texture is bound to.
type TextureRegistry struct {
	decoder TextureDecoder
	device  TextureDevice
	log     *zap.Logger
	entries []TextureEntry
}

func NewTextureRegistry(decoder TextureDecoder, device TextureDevice, log *zap.Logger) *TextureRegistry {
	if log == nil {
		log = zap.NewNop()
	}
	return &TextureRegistry{
		decoder: decoder,
		device:  device,
		log:     log,
		entries: make([]TextureEntry, 0, MaxTextureSlots),
	}
}

// Load decodes path, uploads it and registers it under tag at the next free
// slot. On any failure the registry is left unchanged.
func (r *TextureRegistry) Load(path, tag string) error {
	if len(r.entries) >= MaxTextureSlots {
		r.log.Error("texture registry full", zap.String("tag", tag), zap.String("path", path))
		return fmt.Errorf("load %q: %w (%d slots)", tag, ErrRegistryFull, MaxTextureSlots)
	}

	img, err := r.decoder.Decode(path, true)
	if err != nil {
		r.log.Warn("could not load image", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("load %q from %s: %w: %w", tag, path, ErrDecode, err)
	}
	if img.Channels != 3 && img.Channels != 4 {
		r.log.Warn("image channel count not handled",
			zap.String("path", path), zap.Int("channels", img.Channels))
		return fmt.Errorf("load %q from %s: %w: %d", tag, path, ErrUnsupportedChannels, img.Channels)
	}

	handle, err := r.device.Upload(img)
	if err != nil {
		return fmt.Errorf("upload %q: %w", tag, err)
	}

	r.entries = append(r.entries, TextureEntry{
		Tag:      tag,
		Path:     path,
		Handle:   handle,
		Width:    img.Width,
		Height:   img.Height,
		Channels: img.Channels,
	})
	r.log.Info("loaded image",
		zap.String("path", path),
		zap.String("tag", tag),
		zap.Int("slot", len(r.entries)-1),
		zap.Int("width", img.Width),
		zap.Int("height", img.Height),
		zap.Int("channels", img.Channels))
	return nil
}

// BindAll binds every registered texture to the unit equal to its slot.
func (r *TextureRegistry) BindAll() {
	for i, e := range r.entries {
		r.device.Bind(i, e.Handle)
	}
}

// FindHandle returns the handle of the first texture registered under tag.
func (r *TextureRegistry) FindHandle(tag string) (TextureHandle, bool) {
	if slot, ok := r.FindSlot(tag); ok {
		return r.entries[slot].Handle, true
	}
	return 0, false
}

// FindSlot returns the slot of the first texture registered under tag, or -1.
func (r *TextureRegistry) FindSlot(tag string) (int, bool) {
	for i, e := range r.entries {
		if e.Tag == tag {
			return i, true
		}
	}
	return -1, false
}

func (r *TextureRegistry) Len() int {
	return len(r.entries)
}

// Entries returns a copy of the registered textures in slot order.
func (r *TextureRegistry) Entries() []TextureEntry {
	out := make([]TextureEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// ReleaseAll deletes every texture that was uploaded and empties the
// registry.
func (r *TextureRegistry) ReleaseAll() {
	for _, e := range r.entries {
		r.device.Delete(e.Handle)
	}
	if len(r.entries) > 0 {
		r.log.Debug("released textures", zap.Int("count", len(r.entries)))
	}
	r.entries = r.entries[:0]
}
