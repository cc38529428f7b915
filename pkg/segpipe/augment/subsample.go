package augment

import (
	"github.com/hyperifyio/segpipe/pkg/segpipe/config"
	segerrors "github.com/hyperifyio/segpipe/pkg/segpipe/errors"
	"github.com/hyperifyio/segpipe/pkg/segpipe/imgmat"
)

// SubsampleAugmentor resizes the image with a Catmull-Rom kernel and the
// target by per-tile majority vote. Like Crop, it changes the pair's
// dimensions; both planes always change together.
type SubsampleAugmentor struct {
	factor int
}

// Subsample returns a new SubsampleAugmentor with the given integer
// downsample factor.
func Subsample(factor int) (*SubsampleAugmentor, error) {
	if factor <= 0 {
		return nil, segerrors.ErrInvalidNumClasses
	}
	return &SubsampleAugmentor{factor: factor}, nil
}

// Augment implements Augmentor.
func (a *SubsampleAugmentor) Augment(p *imgmat.Pair) error {
	f := a.factor
	newH, newW := p.Image.H/f, p.Image.W/f
	p.Image = resizeRGBLanczos(p.Image, newH, newW)
	p.Target = voteSubsampleLabel(p.Target, f, newH, newW)
	return nil
}

// voteSubsampleLabel implements the per-tile majority vote: for each
// output pixel, build a 256-bin histogram of the f x f input block
// (excluding nothing -- void counts like any other label), take the
// argmax bin; if that bin's count is <= f*f/2, the output is void.
func voteSubsampleLabel(src *imgmat.LabelMatrix, f, newH, newW int) *imgmat.LabelMatrix {
	out := imgmat.NewLabelMatrix(newH, newW)
	threshold := (f * f) / 2
	var hist [256]int
	for oy := 0; oy < newH; oy++ {
		for ox := 0; ox < newW; ox++ {
			for i := range hist {
				hist[i] = 0
			}
			for dy := 0; dy < f; dy++ {
				sy := oy*f + dy
				if sy >= src.H {
					continue
				}
				for dx := 0; dx < f; dx++ {
					sx := ox*f + dx
					if sx >= src.W {
						continue
					}
					hist[src.At(sx, sy)]++
				}
			}
			best, bestCount := 0, -1
			for label, count := range hist {
				if count > bestCount {
					best, bestCount = label, count
				}
			}
			if bestCount <= threshold {
				out.Set(ox, oy, config.VoidLabel8)
			} else {
				out.Set(ox, oy, uint8(best))
			}
		}
	}
	return out
}
