package augment

import "github.com/hyperifyio/segpipe/pkg/segpipe/imgmat"

// FloatCastAugmentor is the implicit first step of the standard chain: it
// asserts the image plane is 32-bit float, 3-channel, scaled to [0,1],
// clamping any stray out-of-range value produced upstream. The target
// plane is untouched.
type FloatCastAugmentor struct{}

// FloatCast returns a new FloatCastAugmentor.
func FloatCast() *FloatCastAugmentor { return &FloatCastAugmentor{} }

// Augment implements Augmentor.
func (a *FloatCastAugmentor) Augment(p *imgmat.Pair) error {
	for i, v := range p.Image.Pix {
		if v < 0 {
			p.Image.Pix[i] = 0
		} else if v > 1 {
			p.Image.Pix[i] = 1
		}
	}
	return nil
}
