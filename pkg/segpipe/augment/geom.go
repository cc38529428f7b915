// Geometry helpers shared by Subsample, Translation, Zoom, and Rotate:
// boundary reflection, and resize primitives built on golang.org/x/image.
package augment

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"

	"github.com/hyperifyio/segpipe/pkg/segpipe/imgmat"
)

// reflectIndex implements the fixed reflect-without-repeat boundary
// policy: i' = |i| for i<0, i' = 2n-i-1 for i>=n. Applied repeatedly in
// case a single bounce still lands out of range.
func reflectIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		} else {
			i = 2*n - i - 1
		}
	}
	return i
}

// rgbToImage converts an RGBMatrix (float32, [0,1]) into a uint8 NRGBA
// image so it can be driven through golang.org/x/image/draw's resize
// kernels.
func rgbToImage(m *imgmat.RGBMatrix) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, m.W, m.H))
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			r := clampTo8(m.At(x, y, 0))
			g := clampTo8(m.At(x, y, 1))
			b := clampTo8(m.At(x, y, 2))
			off := img.PixOffset(x, y)
			img.Pix[off] = r
			img.Pix[off+1] = g
			img.Pix[off+2] = b
			img.Pix[off+3] = 255
		}
	}
	return img
}

func clampTo8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

func imageToRGB(img *image.NRGBA, w, h int) *imgmat.RGBMatrix {
	out := imgmat.NewRGBMatrix(h, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off := img.PixOffset(x, y)
			out.Set(x, y, 0, float32(img.Pix[off])/255)
			out.Set(x, y, 1, float32(img.Pix[off+1])/255)
			out.Set(x, y, 2, float32(img.Pix[off+2])/255)
		}
	}
	return out
}

// labelToImage wraps a LabelMatrix as a stdlib image.Gray, whose 8-bit Y
// channel matches the label byte range exactly, so x/image/draw's
// NearestNeighbor interpolator can transform it without blending ids.
func labelToImage(m *imgmat.LabelMatrix) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.W, m.H))
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			img.SetGray(x, y, color.Gray{Y: m.At(x, y)})
		}
	}
	return img
}

func imageToLabel(img *image.Gray, w, h int) *imgmat.LabelMatrix {
	out := imgmat.NewLabelMatrix(h, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Set(x, y, img.GrayAt(x, y).Y)
		}
	}
	return out
}

// resizeRGBLanczos resizes m to (newH, newW) using a high-quality
// (Catmull-Rom) resampling kernel.
func resizeRGBLanczos(m *imgmat.RGBMatrix, newH, newW int) *imgmat.RGBMatrix {
	if newH <= 0 || newW <= 0 {
		return imgmat.NewRGBMatrix(0, 0)
	}
	src := rgbToImage(m)
	dst := image.NewNRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return imageToRGB(dst, newW, newH)
}

// resizeLabelNearest resizes m to (newH, newW) with nearest-neighbor
// sampling, the only resampling rule valid for a discrete label plane
// outside of Subsample's majority-vote rule.
func resizeLabelNearest(m *imgmat.LabelMatrix, newH, newW int) *imgmat.LabelMatrix {
	out := imgmat.NewLabelMatrix(newH, newW)
	if m.H == 0 || m.W == 0 || newH == 0 || newW == 0 {
		return out
	}
	for y := 0; y < newH; y++ {
		sy := y * m.H / newH
		if sy >= m.H {
			sy = m.H - 1
		}
		for x := 0; x < newW; x++ {
			sx := x * m.W / newW
			if sx >= m.W {
				sx = m.W - 1
			}
			out.Set(x, y, m.At(sx, sy))
		}
	}
	return out
}

// centerCropRGB extracts the centered (newH, newW) window of m.
func centerCropRGB(m *imgmat.RGBMatrix, newH, newW int) *imgmat.RGBMatrix {
	y0 := (m.H - newH) / 2
	x0 := (m.W - newW) / 2
	out := imgmat.NewRGBMatrix(newH, newW)
	for y := 0; y < newH; y++ {
		for x := 0; x < newW; x++ {
			for c := 0; c < 3; c++ {
				out.Set(x, y, c, m.At(x0+x, y0+y, c))
			}
		}
	}
	return out
}

// centerCropLabel extracts the centered (newH, newW) window of m.
func centerCropLabel(m *imgmat.LabelMatrix, newH, newW int) *imgmat.LabelMatrix {
	y0 := (m.H - newH) / 2
	x0 := (m.W - newW) / 2
	out := imgmat.NewLabelMatrix(newH, newW)
	for y := 0; y < newH; y++ {
		for x := 0; x < newW; x++ {
			out.Set(x, y, m.At(x0+x, y0+y))
		}
	}
	return out
}

// centerEmbedRGB places m into the center of a (h, w) zero-filled canvas.
func centerEmbedRGB(m *imgmat.RGBMatrix, h, w int) *imgmat.RGBMatrix {
	out := imgmat.NewRGBMatrix(h, w)
	y0 := (h - m.H) / 2
	x0 := (w - m.W) / 2
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			for c := 0; c < 3; c++ {
				out.Set(x0+x, y0+y, c, m.At(x, y, c))
			}
		}
	}
	return out
}

// centerEmbedLabel places m into the center of a (h, w) void-filled
// canvas.
func centerEmbedLabel(m *imgmat.LabelMatrix, h, w int) *imgmat.LabelMatrix {
	out := imgmat.NewLabelMatrix(h, w)
	y0 := (h - m.H) / 2
	x0 := (w - m.W) / 2
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			out.Set(x0+x, y0+y, m.At(x, y))
		}
	}
	return out
}
