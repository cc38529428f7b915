package augment

import (
	"math"

	"github.com/hyperifyio/segpipe/pkg/segpipe/imgmat"
	"github.com/hyperifyio/segpipe/pkg/segpipe/rng"
)

// rgbToHSV converts r,g,b in [0,1] to h in [0,360), s,v in [0,1].
func rgbToHSV(r, g, b float32) (h, s, v float32) {
	maxC := max(r, max(g, b))
	minC := min(r, min(g, b))
	v = maxC
	delta := maxC - minC
	if maxC <= 0 {
		return 0, 0, v
	}
	s = delta / maxC
	if delta == 0 {
		return 0, s, v
	}
	switch maxC {
	case r:
		h = 60 * float32(math.Mod(float64((g-b)/delta), 6))
	case g:
		h = 60 * ((b-r)/delta + 2)
	default:
		h = 60 * ((r-g)/delta + 4)
	}
	if h < 0 {
		h += 360
	}
	return h, s, v
}

// hsvToRGB converts h in [0,360), s,v in [0,1] back to r,g,b in [0,1].
func hsvToRGB(h, s, v float32) (r, g, b float32) {
	c := v * s
	hp := h / 60
	x := c * (1 - float32(math.Abs(math.Mod(float64(hp), 2)-1)))
	var r1, g1, b1 float32
	switch {
	case hp < 1:
		r1, g1, b1 = c, x, 0
	case hp < 2:
		r1, g1, b1 = x, c, 0
	case hp < 3:
		r1, g1, b1 = 0, c, x
	case hp < 4:
		r1, g1, b1 = 0, x, c
	case hp < 5:
		r1, g1, b1 = x, 0, c
	default:
		r1, g1, b1 = c, 0, x
	}
	m := v - c
	return r1 + m, g1 + m, b1 + m
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// SaturationAugmentor multiplies the S channel (HSV) by a random factor
// in [min,max], clamped to [0,1].
type SaturationAugmentor struct {
	lo, hi float64
	src    *rng.Source
}

// Saturation returns a new SaturationAugmentor drawing its factor from
// [lo, hi].
func Saturation(lo, hi float64) *SaturationAugmentor {
	return &SaturationAugmentor{lo: lo, hi: hi, src: rng.New(0)}
}

// Augment implements Augmentor.
func (a *SaturationAugmentor) Augment(p *imgmat.Pair) error {
	factor := float32(a.src.Uniform(a.lo, a.hi))
	forEachPixel(p.Image, func(r, g, b float32) (float32, float32, float32) {
		h, s, v := rgbToHSV(r, g, b)
		s = clamp01(s * factor)
		return hsvToRGB(h, s, v)
	})
	return nil
}

// HueAugmentor adds a random offset in [min,max] to the H channel (HSV),
// wrapped modulo 360.
type HueAugmentor struct {
	lo, hi float64
	src    *rng.Source
}

// Hue returns a new HueAugmentor drawing its offset from [lo, hi].
func Hue(lo, hi float64) *HueAugmentor {
	return &HueAugmentor{lo: lo, hi: hi, src: rng.New(0)}
}

// Augment implements Augmentor.
func (a *HueAugmentor) Augment(p *imgmat.Pair) error {
	offset := float32(a.src.Uniform(a.lo, a.hi))
	forEachPixel(p.Image, func(r, g, b float32) (float32, float32, float32) {
		h, s, v := rgbToHSV(r, g, b)
		h = float32(math.Mod(float64(h+offset), 360))
		if h < 0 {
			h += 360
		}
		return hsvToRGB(h, s, v)
	})
	return nil
}

// BrightnessAugmentor adds a random offset in [min,max] to each channel,
// clamped to [0,1].
type BrightnessAugmentor struct {
	lo, hi float64
	src    *rng.Source
}

// Brightness returns a new BrightnessAugmentor drawing its offset from
// [lo, hi].
func Brightness(lo, hi float64) *BrightnessAugmentor {
	return &BrightnessAugmentor{lo: lo, hi: hi, src: rng.New(0)}
}

// Augment implements Augmentor.
func (a *BrightnessAugmentor) Augment(p *imgmat.Pair) error {
	offset := float32(a.src.Uniform(a.lo, a.hi))
	img := p.Image
	for i, v := range img.Pix {
		img.Pix[i] = clamp01(v + offset)
	}
	return nil
}

// forEachPixel applies fn to every RGB triple of m in place.
func forEachPixel(m *imgmat.RGBMatrix, fn func(r, g, b float32) (float32, float32, float32)) {
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			r, g, b := m.At(x, y, 0), m.At(x, y, 1), m.At(x, y, 2)
			nr, ng, nb := fn(r, g, b)
			m.Set(x, y, 0, nr)
			m.Set(x, y, 1, ng)
			m.Set(x, y, 2, nb)
		}
	}
}
