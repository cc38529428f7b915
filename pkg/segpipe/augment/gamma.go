package augment

import (
	"math"

	"github.com/hyperifyio/segpipe/pkg/segpipe/imgmat"
	"github.com/hyperifyio/segpipe/pkg/segpipe/rng"
)

// GammaAugmentor draws gamma ~ U(-min(a,0.5), min(a,0.5)), warps it
// through a log-ratio transform, then raises every image channel to that
// power. The label plane is untouched.
type GammaAugmentor struct {
	limit float64
	src   *rng.Source
}

// Gamma returns a new GammaAugmentor with strength in [0, 0.5].
func Gamma(strength float64) *GammaAugmentor {
	limit := strength
	if limit > 0.5 {
		limit = 0.5
	}
	return &GammaAugmentor{limit: limit, src: rng.New(0)}
}

// Augment implements Augmentor.
func (a *GammaAugmentor) Augment(p *imgmat.Pair) error {
	if a.limit == 0 {
		return nil
	}
	gamma := a.src.Uniform(-a.limit, a.limit)
	gammaPrime := math.Log(0.5+gamma/math.Sqrt2) / math.Log(0.5-gamma/math.Sqrt2)

	img := p.Image
	for i, v := range img.Pix {
		if v < 0 {
			v = 0
		}
		img.Pix[i] = float32(math.Pow(float64(v), gammaPrime))
	}
	return nil
}
