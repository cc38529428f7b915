package augment

import (
	"github.com/hyperifyio/segpipe/pkg/segpipe/config"
	segerrors "github.com/hyperifyio/segpipe/pkg/segpipe/errors"
	"github.com/hyperifyio/segpipe/pkg/segpipe/imgmat"
	"github.com/hyperifyio/segpipe/pkg/segpipe/rng"
)

// TranslationAugmentor draws an integer (rowOffset, colOffset) ~
// U{-d,...,d}^2 per call and shifts the pair: output pixel (i,j) reads
// input (i-rowOffset, j-colOffset). Out-of-bounds image reads reflect
// without repeating the edge pixel; out-of-bounds target reads use the
// void sentinel. Requires image and target to share dimensions.
type TranslationAugmentor struct {
	d   int
	src *rng.Source
}

// Translation returns a new TranslationAugmentor with max offset d >= 0.
func Translation(d int) *TranslationAugmentor {
	return &TranslationAugmentor{d: d, src: rng.New(0)}
}

// Augment implements Augmentor.
func (a *TranslationAugmentor) Augment(p *imgmat.Pair) error {
	if !p.SameSize() {
		return segerrors.ErrDimensionMismatch
	}
	if a.d == 0 {
		return nil
	}
	rowOffset := a.src.IntRange(-a.d, a.d)
	colOffset := a.src.IntRange(-a.d, a.d)
	return a.apply(p, rowOffset, colOffset)
}

func (a *TranslationAugmentor) apply(p *imgmat.Pair, rowOffset, colOffset int) error {
	h, w := p.Image.H, p.Image.W
	newImg := imgmat.NewRGBMatrix(h, w)
	newTgt := imgmat.NewLabelMatrix(h, w)

	for y := 0; y < h; y++ {
		sy := y - rowOffset
		imgInY := sy >= 0 && sy < h
		refY := reflectIndex(sy, h)
		for x := 0; x < w; x++ {
			sx := x - colOffset
			refX := reflectIndex(sx, w)
			for c := 0; c < 3; c++ {
				newImg.Set(x, y, c, p.Image.At(refX, refY, c))
			}
			if imgInY && sx >= 0 && sx < w {
				newTgt.Set(x, y, p.Target.At(sx, sy))
			} else {
				newTgt.Set(x, y, config.VoidLabel8)
			}
		}
	}
	p.Image = newImg
	p.Target = newTgt
	return nil
}
