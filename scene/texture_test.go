package scene

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry() (*TextureRegistry, *stubDecoder, *fakeDevice) {
	dec := newStubDecoder()
	dev := newFakeDevice()
	return NewTextureRegistry(dec, dev, nil), dec, dev
}

func TestTextureRegistrySlotsFollowLoadOrder(t *testing.T) {
	reg, dec, _ := newTestRegistry()
	dec.add("marble.jpg", 3)
	dec.add("glass.png", 4)
	dec.add("can.jpg", 3)

	require.NoError(t, reg.Load("marble.jpg", "marble"))
	require.NoError(t, reg.Load("glass.png", "glass"))
	require.NoError(t, reg.Load("can.jpg", "can"))

	for want, tag := range []string{"marble", "glass", "can"} {
		slot, ok := reg.FindSlot(tag)
		require.True(t, ok, tag)
		assert.Equal(t, want, slot, tag)
	}

	entries := reg.Entries()
	h, ok := reg.FindHandle("can")
	require.True(t, ok)
	assert.Equal(t, entries[2].Handle, h)
	assert.Equal(t, []bool{true, true, true}, dec.flips)
}

func TestTextureRegistryMissReturnsMinusOne(t *testing.T) {
	reg, _, _ := newTestRegistry()

	slot, ok := reg.FindSlot("missing")
	assert.False(t, ok)
	assert.Equal(t, -1, slot)

	_, ok = reg.FindHandle("missing")
	assert.False(t, ok)
}

func TestTextureRegistryLookupIsCaseSensitive(t *testing.T) {
	reg, dec, _ := newTestRegistry()
	dec.add("a.png", 4)
	require.NoError(t, reg.Load("a.png", "Marble"))

	_, ok := reg.FindSlot("marble")
	assert.False(t, ok)
}

func TestTextureRegistryFirstTagWins(t *testing.T) {
	reg, dec, _ := newTestRegistry()
	dec.add("a.png", 4)
	dec.add("b.png", 4)
	require.NoError(t, reg.Load("a.png", "dup"))
	require.NoError(t, reg.Load("b.png", "dup"))

	slot, _ := reg.FindSlot("dup")
	assert.Equal(t, 0, slot)
	assert.Equal(t, 2, reg.Len())
}

func TestTextureRegistryRejectsUnsupportedChannels(t *testing.T) {
	for _, channels := range []int{1, 2} {
		t.Run(fmt.Sprintf("%d channels", channels), func(t *testing.T) {
			reg, dec, dev := newTestRegistry()
			dec.add("ok.png", 4)
			dec.add("gray.png", channels)
			require.NoError(t, reg.Load("ok.png", "ok"))

			err := reg.Load("gray.png", "gray")
			require.ErrorIs(t, err, ErrUnsupportedChannels)
			assert.Equal(t, 1, reg.Len())
			assert.Equal(t, 1, dev.uploads)
			_, ok := reg.FindSlot("gray")
			assert.False(t, ok)
		})
	}
}

func TestTextureRegistryDecodeFailure(t *testing.T) {
	reg, _, dev := newTestRegistry()

	err := reg.Load("nope.png", "nope")
	require.ErrorIs(t, err, ErrDecode)
	require.ErrorIs(t, err, errNoFile)
	assert.Zero(t, reg.Len())
	assert.Zero(t, dev.uploads)
}

func TestTextureRegistryCapacity(t *testing.T) {
	reg, dec, dev := newTestRegistry()
	for i := 0; i <= MaxTextureSlots; i++ {
		dec.add(fmt.Sprintf("t%d.png", i), 4)
	}
	for i := 0; i < MaxTextureSlots; i++ {
		require.NoError(t, reg.Load(fmt.Sprintf("t%d.png", i), fmt.Sprintf("t%d", i)))
	}

	err := reg.Load(fmt.Sprintf("t%d.png", MaxTextureSlots), "overflow")
	require.ErrorIs(t, err, ErrRegistryFull)
	assert.Equal(t, MaxTextureSlots, reg.Len())
	assert.Equal(t, MaxTextureSlots, dev.uploads)
}

func TestTextureRegistryBindAll(t *testing.T) {
	reg, dec, dev := newTestRegistry()
	dec.add("a.png", 3)
	dec.add("b.png", 4)
	require.NoError(t, reg.Load("a.png", "a"))
	require.NoError(t, reg.Load("b.png", "b"))

	reg.BindAll()

	entries := reg.Entries()
	assert.Equal(t, entries[0].Handle, dev.bound[0])
	assert.Equal(t, entries[1].Handle, dev.bound[1])
}

func TestTextureRegistryReleaseDeletesOriginalHandles(t *testing.T) {
	reg, dec, dev := newTestRegistry()
	dec.add("a.png", 3)
	dec.add("b.png", 3)
	require.NoError(t, reg.Load("a.png", "a"))
	require.NoError(t, reg.Load("b.png", "b"))
	entries := reg.Entries()

	reg.ReleaseAll()

	assert.Equal(t, []TextureHandle{entries[0].Handle, entries[1].Handle}, dev.deleted)
	assert.Empty(t, dev.live)
	assert.Equal(t, 2, dev.uploads, "release must not allocate")
	assert.Zero(t, reg.Len())

	reg.ReleaseAll()
	assert.Len(t, dev.deleted, 2)
}

func TestRepackChannels(t *testing.T) {
	rect := image.Rect(0, 0, 2, 2)
	opaque := image.NewNRGBA(rect)
	for i := 3; i < len(opaque.Pix); i += 4 {
		opaque.Pix[i] = 255
	}

	tests := []struct {
		name string
		img  image.Image
		want int
	}{
		{"gray", image.NewGray(rect), 1},
		{"alpha", image.NewAlpha(rect), 1},
		{"ycbcr", image.NewYCbCr(rect, image.YCbCrSubsampleRatio444), 3},
		{"opaque nrgba", opaque, 3},
		{"translucent rgba", image.NewRGBA(rect), 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Repack(tt.img, false)
			assert.Equal(t, tt.want, got.Channels)
			assert.Len(t, got.Pixels, 2*2*tt.want)
		})
	}
}

func TestRepackFlipsRows(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, A: 255})
	img.SetNRGBA(0, 1, color.NRGBA{R: 20, A: 255})

	flipped := Repack(img, true)
	require.Equal(t, 3, flipped.Channels)
	assert.Equal(t, []byte{20, 0, 0, 10, 0, 0}, flipped.Pixels)

	straight := Repack(img, false)
	assert.Equal(t, []byte{10, 0, 0, 20, 0, 0}, straight.Pixels)
}

func TestImageDecoderReadsPNG(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	img.SetNRGBA(0, 1, color.NRGBA{R: 7, G: 8, B: 9, A: 255})
	img.SetNRGBA(2, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 0})

	path := filepath.Join(t.TempDir(), "tile.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	got, err := ImageDecoder{}.Decode(path, true)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Width)
	assert.Equal(t, 2, got.Height)
	require.Equal(t, 4, got.Channels)
	// The bottom source row is first after the flip.
	assert.Equal(t, []byte{7, 8, 9, 255}, got.Pixels[:4])
}

func TestImageDecoderMissingFile(t *testing.T) {
	_, err := ImageDecoder{}.Decode("does/not/exist.png", true)
	assert.Error(t, err)
}

// rawPNG encodes a w x h 8-bit PNG of the given color type with every sample
// set to 128. image/png never writes gray+alpha, so the chunks are built here.
func rawPNG(t *testing.T, w, h int, colorType byte, transparency bool) []byte {
	t.Helper()
	samples := map[byte]int{0: 1, 2: 3, 3: 1, 4: 2, 6: 4}[colorType]

	var buf bytes.Buffer
	buf.Write(pngSignature)
	chunk := func(typ string, data []byte) {
		binary.Write(&buf, binary.BigEndian, uint32(len(data)))
		buf.WriteString(typ)
		buf.Write(data)
		crc := crc32.NewIEEE()
		crc.Write([]byte(typ))
		crc.Write(data)
		binary.Write(&buf, binary.BigEndian, crc.Sum32())
	}

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], uint32(w))
	binary.BigEndian.PutUint32(ihdr[4:], uint32(h))
	ihdr[8] = 8
	ihdr[9] = colorType
	chunk("IHDR", ihdr)

	if colorType == 3 {
		chunk("PLTE", bytes.Repeat([]byte{128}, 129*3))
	}
	if transparency {
		switch colorType {
		case 0:
			chunk("tRNS", []byte{0, 0})
		case 2:
			chunk("tRNS", []byte{0, 0, 0, 0, 0, 0})
		case 3:
			chunk("tRNS", []byte{255, 0})
		}
	}

	var raw bytes.Buffer
	for y := 0; y < h; y++ {
		raw.WriteByte(0)
		raw.Write(bytes.Repeat([]byte{128}, w*samples))
	}
	var idat bytes.Buffer
	zw := zlib.NewWriter(&idat)
	_, err := zw.Write(raw.Bytes())
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	chunk("IDAT", idat.Bytes())
	chunk("IEND", nil)
	return buf.Bytes()
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestPNGChannelsFollowColorType(t *testing.T) {
	tests := []struct {
		name         string
		colorType    byte
		transparency bool
		want         int
	}{
		{"gray", 0, false, 1},
		{"gray with tRNS", 0, true, 2},
		{"gray alpha", 4, false, 2},
		{"rgb", 2, false, 3},
		{"rgb with tRNS", 2, true, 4},
		{"palette", 3, false, 3},
		{"palette with tRNS", 3, true, 4},
		{"rgba", 6, false, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok, err := pngChannels(bytes.NewReader(rawPNG(t, 2, 2, tt.colorType, tt.transparency)))
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestPNGChannelsIgnoresOtherFormats(t *testing.T) {
	_, ok, err := pngChannels(bytes.NewReader([]byte("BM not a png at all")))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestImageDecoderKeepsGrayAlphaChannels(t *testing.T) {
	path := writeFile(t, "ga.png", rawPNG(t, 2, 2, 4, false))

	got, err := ImageDecoder{}.Decode(path, true)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Channels)
	assert.Len(t, got.Pixels, 2*2*2)
}

func TestTextureRegistryRejectsGrayAlphaPNG(t *testing.T) {
	dev := newFakeDevice()
	reg := NewTextureRegistry(ImageDecoder{}, dev, nil)

	err := reg.Load(writeFile(t, "ga.png", rawPNG(t, 2, 2, 4, false)), "ga")
	require.ErrorIs(t, err, ErrUnsupportedChannels)
	assert.Equal(t, 0, reg.Len())
	assert.Equal(t, 0, dev.uploads)

	require.NoError(t, reg.Load(writeFile(t, "rgb.png", rawPNG(t, 2, 2, 2, false)), "rgb"))
	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, 3, reg.Entries()[0].Channels)
}
