package augment

import (
	"github.com/hyperifyio/segpipe/pkg/segpipe/imgmat"
	"github.com/hyperifyio/segpipe/pkg/segpipe/rng"
)

// ZoomAugmentor draws a scale factor f ~ U(1-r, 1+r), resizes both planes
// (Catmull-Rom for image, nearest for target), then center-crops (f>1) or
// center-embeds into a zero/void canvas (f<1) back to the original size.
type ZoomAugmentor struct {
	r   float64
	src *rng.Source
}

// Zooming returns a new ZoomAugmentor with range r in (0,1).
func Zooming(r float64) *ZoomAugmentor {
	return &ZoomAugmentor{r: r, src: rng.New(0)}
}

// Augment implements Augmentor.
func (a *ZoomAugmentor) Augment(p *imgmat.Pair) error {
	f := a.src.Uniform(1-a.r, 1+a.r)
	return a.apply(p, f)
}

func (a *ZoomAugmentor) apply(p *imgmat.Pair, f float64) error {
	h, w := p.Image.H, p.Image.W
	newH := int(float64(h) * f)
	newW := int(float64(w) * f)
	if newH <= 0 || newW <= 0 {
		return nil
	}

	resizedImg := resizeRGBLanczos(p.Image, newH, newW)
	resizedTgt := resizeLabelNearest(p.Target, newH, newW)

	if f > 1 {
		p.Image = centerCropRGB(resizedImg, h, w)
		p.Target = centerCropLabel(resizedTgt, h, w)
	} else if f < 1 {
		p.Image = centerEmbedRGB(resizedImg, h, w)
		p.Target = centerEmbedLabel(resizedTgt, h, w)
	} else {
		p.Image = resizedImg
		p.Target = resizedTgt
	}
	return nil
}
