package augment

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/hyperifyio/segpipe/pkg/segpipe/config"
	"github.com/hyperifyio/segpipe/pkg/segpipe/imgmat"
	"github.com/hyperifyio/segpipe/pkg/segpipe/rng"
)

// RotateAugmentor draws an angle in U(-theta, theta) degrees (negative
// angles wrapped by +360), rotates the image around its center with
// bilinear sampling and zero fill, and rotates the target with
// nearest-neighbor sampling and constant void fill.
type RotateAugmentor struct {
	maxAngle float64
	src      *rng.Source
}

// Rotation returns a new RotateAugmentor with max angle maxAngle degrees.
func Rotation(maxAngle float64) *RotateAugmentor {
	return &RotateAugmentor{maxAngle: maxAngle, src: rng.New(0)}
}

// Augment implements Augmentor.
func (a *RotateAugmentor) Augment(p *imgmat.Pair) error {
	angle := a.src.Uniform(-a.maxAngle, a.maxAngle)
	if angle < 0 {
		angle += 360
	}
	return a.apply(p, angle)
}

// apply rotates both planes by angleDeg around the image center using
// x/image/draw's affine Transform: bilinear for the image plane (zero
// fill outside the rotated frame), nearest-neighbor for the label plane
// (void fill outside), so the label kernel never blends label ids.
func (a *RotateAugmentor) apply(p *imgmat.Pair, angleDeg float64) error {
	h, w := p.Image.H, p.Image.W
	cx, cy := float64(w-1)/2, float64(h-1)/2
	theta := angleDeg * math.Pi / 180
	cosT, sinT := math.Cos(theta), math.Sin(theta)

	// s2d maps a source-plane coordinate to its destination-plane
	// coordinate under rotation by theta about (cx, cy).
	s2d := f64.Aff3{
		cosT, -sinT, cx - cosT*cx + sinT*cy,
		sinT, cosT, cy - sinT*cx - cosT*cy,
	}

	src := rgbToImage(p.Image)
	dstImg := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.BiLinear.Transform(dstImg, s2d, src, src.Bounds(), xdraw.Src, nil)
	p.Image = imageToRGB(dstImg, w, h)

	srcTgt := labelToImage(p.Target)
	dstTgt := image.NewGray(image.Rect(0, 0, w, h))
	for i := range dstTgt.Pix {
		dstTgt.Pix[i] = config.VoidLabel8
	}
	xdraw.NearestNeighbor.Transform(dstTgt, s2d, srcTgt, srcTgt.Bounds(), xdraw.Src, nil)
	p.Target = imageToLabel(dstTgt, w, h)

	return nil
}
