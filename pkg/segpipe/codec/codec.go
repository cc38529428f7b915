// Package codec is the Image Codec Facade: it decodes a file on disk into
// either a 3-channel 8-bit color matrix or a 1-channel 8-bit gray matrix,
// and fails loudly when the file is missing or the decoder produces no
// data. It is the one place in segpipe that talks to an actual image
// codec; everything above it (loader, augment, provider) works on the
// decoded matrices.
//
// It opens the file, fails with a named sentinel error on any
// read/format problem, and never retries. Format support beyond the
// standard library's built-in PNG and JPEG decoders is registered from
// golang.org/x/image (BMP, TIFF).
package codec

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	segerrors "github.com/hyperifyio/segpipe/pkg/segpipe/errors"
)

// ColorMatrix is a decoded 3-channel 8-bit-per-channel image in the
// decoder's native channel order, B,G,R. Converting to R,G,B is the
// loader's job, not the codec's.
type ColorMatrix struct {
	H, W int
	// Pix is H*W*3 bytes, laid out (y, x, c) with c in B,G,R order.
	Pix []byte
}

// GrayMatrix is a decoded 1-channel 8-bit image.
type GrayMatrix struct {
	H, W int
	Pix  []byte
}

// DecodeColor decodes path as a 3-channel 8-bit image.
func DecodeColor(path string) (*ColorMatrix, error) {
	img, err := decode(path)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("%w: %s", segerrors.ErrNoImageData, path)
	}
	out := &ColorMatrix{H: h, W: w, Pix: make([]byte, h*w*3)}
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			out.Pix[i] = byte(bl >> 8)
			out.Pix[i+1] = byte(g >> 8)
			out.Pix[i+2] = byte(r >> 8)
			i += 3
		}
	}
	return out, nil
}

// DecodeGray decodes path as a 1-channel 8-bit image.
func DecodeGray(path string) (*GrayMatrix, error) {
	img, err := decode(path)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("%w: %s", segerrors.ErrNoImageData, path)
	}
	out := &GrayMatrix{H: h, W: w, Pix: make([]byte, h*w)}
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			gr := image.GrayModel.Convert(img.At(x, y)).(image.Gray)
			out.Pix[i] = gr.Y
			i++
		}
	}
	return out, nil
}

func decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", segerrors.ErrNoImageData, path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", segerrors.ErrNoImageData, path, err)
	}
	return img, nil
}
