package scene

import "errors"

var (
	// ErrDecode reports a texture file that could not be read or decoded.
	ErrDecode = errors.New("texture decode failed")
	// ErrUnsupportedChannels reports an image that is neither RGB nor RGBA.
	ErrUnsupportedChannels = errors.New("unsupported texture channel count")
	// ErrRegistryFull reports that every texture slot is taken.
	ErrRegistryFull = errors.New("texture registry full")
	// ErrTextureNotFound reports a texture tag with no registered texture.
	ErrTextureNotFound = errors.New("texture not found")
	// ErrMaterialNotFound reports a material tag with no definition.
	ErrMaterialNotFound = errors.New("material not found")
	// ErrNotPrepared is returned when rendering before Prepare.
	ErrNotPrepared = errors.New("scene not prepared")
	// ErrAlreadyPrepared is returned by a second Prepare call.
	ErrAlreadyPrepared = errors.New("scene already prepared")
	// ErrUnknownShape reports a draw of a mesh kind that was never loaded.
	ErrUnknownShape = errors.New("shape mesh not loaded")
)
