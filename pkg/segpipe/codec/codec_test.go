package codec

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, path string, w, h int, fill color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, fill)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestDecodeColor(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "img.png")
	writeTestPNG(t, path, 2, 2, color.RGBA{R: 255, G: 128, B: 0, A: 255})

	m, err := DecodeColor(path)
	require.NoError(t, err)
	require.Equal(t, 2, m.W)
	require.Equal(t, 2, m.H)
	// native order is B,G,R
	require.Equal(t, byte(0), m.Pix[0])
	require.Equal(t, byte(128), m.Pix[1])
	require.Equal(t, byte(255), m.Pix[2])
}

func TestDecodeColorMissingFile(t *testing.T) {
	_, err := DecodeColor("/nonexistent/path/does-not-exist.png")
	require.Error(t, err)
}

func TestDecodeGray(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "label.png")
	img := image.NewGray(image.Rect(0, 0, 3, 3))
	for i := range img.Pix {
		img.Pix[i] = 7
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	f.Close()

	m, err := DecodeGray(path)
	require.NoError(t, err)
	require.Equal(t, 3, m.W)
	require.Equal(t, 3, m.H)
	for _, v := range m.Pix {
		require.Equal(t, byte(7), v)
	}
}
