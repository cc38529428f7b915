package augment

import (
	"math"

	"github.com/hyperifyio/segpipe/pkg/segpipe/imgmat"
	"github.com/hyperifyio/segpipe/pkg/segpipe/rng"
)

// BlurAugmentor draws sigma ~ U(0, sigmaMax) and Gaussian-blurs the image
// plane only, with kernel width 3*ceil(sigma) forced odd. A non-positive
// sigmaMax makes this a no-op.
type BlurAugmentor struct {
	sigmaMax float64
	src      *rng.Source
}

// Blur returns a new BlurAugmentor with max sigma sigmaMax.
func Blur(sigmaMax float64) *BlurAugmentor {
	return &BlurAugmentor{sigmaMax: sigmaMax, src: rng.New(0)}
}

// Augment implements Augmentor.
func (a *BlurAugmentor) Augment(p *imgmat.Pair) error {
	if a.sigmaMax <= 0 {
		return nil
	}
	sigma := a.src.Uniform(0, a.sigmaMax)
	if sigma <= 0 {
		return nil
	}
	width := 3 * int(math.Ceil(sigma))
	if width%2 == 0 {
		width++
	}
	if width < 1 {
		width = 1
	}
	kernel := gaussianKernel1D(sigma, width)
	p.Image = separableBlur(p.Image, kernel)
	return nil
}

func gaussianKernel1D(sigma float64, width int) []float64 {
	k := make([]float64, width)
	radius := width / 2
	sum := 0.0
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		k[i+radius] = v
		sum += v
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}

// separableBlur applies the 1D kernel horizontally then vertically, using
// reflect-without-repeat boundary handling to stay consistent with
// Translation's edge policy.
func separableBlur(m *imgmat.RGBMatrix, kernel []float64) *imgmat.RGBMatrix {
	radius := len(kernel) / 2
	h, w := m.H, m.W

	tmp := imgmat.NewRGBMatrix(h, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			for c := 0; c < 3; c++ {
				sum := 0.0
				for k := -radius; k <= radius; k++ {
					sx := reflectIndex(x+k, w)
					sum += float64(m.At(sx, y, c)) * kernel[k+radius]
				}
				tmp.Set(x, y, c, float32(sum))
			}
		}
	}

	out := imgmat.NewRGBMatrix(h, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			for c := 0; c < 3; c++ {
				sum := 0.0
				for k := -radius; k <= radius; k++ {
					sy := reflectIndex(y+k, h)
					sum += float64(tmp.At(x, sy, c)) * kernel[k+radius]
				}
				out.Set(x, y, c, float32(sum))
			}
		}
	}
	return out
}
