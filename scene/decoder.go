package scene

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"io"
	"os"
	"image/color"
	_ "image/jpeg"
	_ "image/png"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageDecoder decodes PNG, JPEG, BMP, TIFF and WebP files.
type ImageDecoder struct{}

// Decode reads path and repacks it with the channel count the file was
// stored with. PNG files report their IHDR color type, so gray+alpha comes
// back as 2 channels; other formats fall back to the decoded color model.
func (ImageDecoder) Decode(path string, flipVertical bool) (*DecodedImage, error) {
	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decode texture %q: %w", path, err)
	}
	channels, err := sourceChannels(path, img)
	if err != nil {
		return nil, fmt.Errorf("decode texture %q: %w", path, err)
	}
	return repack(img, channels, flipVertical), nil
}

// Repack converts img into tightly packed rows. The channel count comes from
// the source color model, before any flip.
func Repack(img image.Image, flipVertical bool) *DecodedImage {
	return repack(img, channelCount(img), flipVertical)
}

func repack(img image.Image, channels int, flipVertical bool) *DecodedImage {
	if flipVertical {
		img = transform.FlipV(img)
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 0, w*h*channels)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			switch channels {
			case 1:
				g := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
				pixels = append(pixels, g.Y)
			case 2:
				c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				g := color.GrayModel.Convert(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}).(color.Gray)
				pixels = append(pixels, g.Y, c.A)
			case 3:
				c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				pixels = append(pixels, c.R, c.G, c.B)
			default:
				c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				pixels = append(pixels, c.R, c.G, c.B, c.A)
			}
		}
	}

	return &DecodedImage{Pixels: pixels, Width: w, Height: h, Channels: channels}
}

func channelCount(img image.Image) int {
	switch img.ColorModel() {
	case color.GrayModel, color.Gray16Model, color.AlphaModel, color.Alpha16Model:
		return 1
	case color.YCbCrModel, color.CMYKModel:
		return 3
	}
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return 3
	}
	return 4
}

func sourceChannels(path string, img image.Image) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n, ok, err := pngChannels(f)
	if err != nil {
		return 0, err
	}
	if ok {
		return n, nil
	}
	return channelCount(img), nil
}

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// pngChannels reads the PNG chunk stream up to the first IDAT and maps the
// IHDR color type to a channel count, counting a tRNS chunk as alpha. ok is
// false when r does not hold a PNG.
func pngChannels(r io.Reader) (channels int, ok bool, err error) {
	br := bufio.NewReader(r)
	sig := make([]byte, len(pngSignature))
	if _, err := io.ReadFull(br, sig); err != nil || !bytes.Equal(sig, pngSignature) {
		return 0, false, nil
	}

	colorType := -1
	transparency := false
	header := make([]byte, 8)
	for {
		if _, err := io.ReadFull(br, header); err != nil {
			return 0, true, fmt.Errorf("png chunk header: %w", err)
		}
		length := int64(binary.BigEndian.Uint32(header[:4]))
		switch string(header[4:]) {
		case "IHDR":
			data := make([]byte, length+4)
			if _, err := io.ReadFull(br, data); err != nil || length < 13 {
				return 0, true, fmt.Errorf("png IHDR truncated")
			}
			colorType = int(data[9])
			continue
		case "tRNS":
			transparency = true
		case "IDAT", "IEND":
			if colorType < 0 {
				return 0, true, fmt.Errorf("png has no IHDR")
			}
			return pngColorTypeChannels(colorType, transparency), true, nil
		}
		if _, err := io.CopyN(io.Discard, br, length+4); err != nil {
			return 0, true, fmt.Errorf("png chunk %s: %w", header[4:], err)
		}
	}
}

func pngColorTypeChannels(colorType int, transparency bool) int {
	switch colorType {
	case 0:
		if transparency {
			return 2
		}
		return 1
	case 4:
		return 2
	case 2, 3:
		if transparency {
			return 4
		}
		return 3
	}
	return 4
}
