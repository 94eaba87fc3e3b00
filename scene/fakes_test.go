package scene

import (
	"errors"
	"fmt"

	"desk-replica/math"
	"desk-replica/scene/shapes"
)

type recordingBridge struct {
	calls []string
}

func (b *recordingBridge) record(kind, name string, v any) {
	b.calls = append(b.calls, fmt.Sprintf("%s %s %v", kind, name, v))
}

func (b *recordingBridge) SetMat4(name string, m math.Mat4) { b.record("mat4", name, m) }
func (b *recordingBridge) SetBool(name string, v bool) { b.record("bool", name, v) }
func (b *recordingBridge) SetFloat(name string, v float32) { b.record("float", name, v) }
func (b *recordingBridge) SetVec2(name string, v math.Vec2) { b.record("vec2", name, v) }
func (b *recordingBridge) SetVec3(name string, v math.Vec3) { b.record("vec3", name, v) }
func (b *recordingBridge) SetVec4(name string, v math.Vec4) { b.record("vec4", name, v) }
func (b *recordingBridge) SetSampler(name string, unit int) { b.record("sampler", name, unit) }

func (b *recordingBridge) reset() { b.calls = nil }

func (b *recordingBridge) count(prefix string) int {
	n := 0
	for _, c := range b.calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

var (
	errNoFile      = errors.New("no such file")
	errOutOfMemory = errors.New("gl out of memory")
)

// stubDecoder returns a fixed image per path; unknown paths fail.
type stubDecoder struct {
	images map[string]*DecodedImage
	flips  []bool
}

func newStubDecoder() *stubDecoder {
	return &stubDecoder{images: make(map[string]*DecodedImage)}
}

func (d *stubDecoder) add(path string, channels int) {
	d.images[path] = &DecodedImage{
		Pixels:   make([]byte, 2*2*channels),
		Width:    2,
		Height:   2,
		Channels: channels,
	}
}

func (d *stubDecoder) Decode(path string, flipVertical bool) (*DecodedImage, error) {
	d.flips = append(d.flips, flipVertical)
	img, ok := d.images[path]
	if !ok {
		return nil, errNoFile
	}
	return img, nil
}

type fakeDevice struct {
	next    TextureHandle
	live    map[TextureHandle]bool
	uploads int
	bound   map[int]TextureHandle
	deleted []TextureHandle
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		next:  100,
		live:  make(map[TextureHandle]bool),
		bound: make(map[int]TextureHandle),
	}
}

func (d *fakeDevice) Upload(img *DecodedImage) (TextureHandle, error) {
	d.uploads++
	d.next++
	d.live[d.next] = true
	return d.next, nil
}

func (d *fakeDevice) Bind(unit int, h TextureHandle) {
	d.bound[unit] = h
}

func (d *fakeDevice) Delete(h TextureHandle) {
	delete(d.live, h)
	d.deleted = append(d.deleted, h)
}

// fakeMeshes logs draws into the same bridge so draw order can be checked
// against uniform pushes.
type fakeMeshes struct {
	bridge   *recordingBridge
	loaded   map[shapes.Kind]int
	released int
	// failLoads makes the next n Load calls fail.
	failLoads int
}

func newFakeMeshes(bridge *recordingBridge) *fakeMeshes {
	return &fakeMeshes{bridge: bridge, loaded: make(map[shapes.Kind]int)}
}

func (m *fakeMeshes) Load(kind shapes.Kind) error {
	if m.failLoads > 0 {
		m.failLoads--
		return errOutOfMemory
	}
	m.loaded[kind]++
	return nil
}

func (m *fakeMeshes) Draw(kind shapes.Kind) error {
	if m.loaded[kind] == 0 {
		return ErrUnknownShape
	}
	m.bridge.record("draw", kind.String(), "")
	return nil
}

func (m *fakeMeshes) Release() {
	m.released++
	m.loaded = make(map[shapes.Kind]int)
}
