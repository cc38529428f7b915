package augment

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hyperifyio/segpipe/pkg/segpipe/config"
	segerrors "github.com/hyperifyio/segpipe/pkg/segpipe/errors"
	"github.com/hyperifyio/segpipe/pkg/segpipe/imgmat"
)

func mkPair(h, w int) *imgmat.Pair {
	return &imgmat.Pair{Image: imgmat.NewRGBMatrix(h, w), Target: imgmat.NewLabelMatrix(h, w)}
}

func TestSubsampleVote(t *testing.T) {
	// A 4x4 majority-vote block, two classes per quadrant.
	tgt := &imgmat.LabelMatrix{H: 4, W: 4, Pix: []byte{
		1, 1, 2, 2,
		1, 1, 2, 2,
		3, 3, 4, 4,
		3, 3, 4, 4,
	}}
	out := voteSubsampleLabel(tgt, 2, 2, 2)
	require.Equal(t, uint8(1), out.At(0, 0))
	require.Equal(t, uint8(2), out.At(1, 0))
	require.Equal(t, uint8(3), out.At(0, 1))
	require.Equal(t, uint8(4), out.At(1, 1))
}

func TestSubsampleVoteStillMajority(t *testing.T) {
	tgt := &imgmat.LabelMatrix{H: 4, W: 4, Pix: []byte{
		1, 1, 2, 3,
		1, 1, 2, 2,
		3, 3, 4, 4,
		3, 3, 4, 4,
	}}
	out := voteSubsampleLabel(tgt, 2, 2, 2)
	require.Equal(t, uint8(1), out.At(0, 0))
	// Top-right block is {2, 3, 2, 2}: label 2 still holds 3 of 4 pixels.
	require.Equal(t, uint8(2), out.At(1, 0))
}

func TestSubsampleVoteTie(t *testing.T) {
	// Top-left 2x2 block has two classes, 2 pixels each: tie, no >50%.
	tgt := &imgmat.LabelMatrix{H: 2, W: 2, Pix: []byte{1, 1, 2, 2}}
	out := voteSubsampleLabel(tgt, 2, 1, 1)
	require.Equal(t, config.VoidLabel8, out.At(0, 0))
}

func TestSubsampleGeometricCoherence(t *testing.T) {
	p := mkPair(8, 8)
	a, err := Subsample(2)
	require.NoError(t, err)
	require.NoError(t, a.Augment(p))
	require.Equal(t, p.Image.H, p.Target.H)
	require.Equal(t, p.Image.W, p.Target.W)
	require.Equal(t, 4, p.Image.H)
}

func TestTranslationOOB(t *testing.T) {
	p := &imgmat.Pair{
		Image: &imgmat.RGBMatrix{H: 2, W: 2, Pix: make([]float32, 12)},
		Target: &imgmat.LabelMatrix{H: 2, W: 2, Pix: []byte{
			10, 20,
			30, 40,
		}},
	}
	a := Translation(1)
	require.NoError(t, a.apply(p, 1, 0))
	require.Equal(t, config.VoidLabel8, p.Target.At(0, 0))
	require.Equal(t, config.VoidLabel8, p.Target.At(1, 0))
	require.Equal(t, uint8(10), p.Target.At(0, 1))
	require.Equal(t, uint8(20), p.Target.At(1, 1))
}

func TestTranslationDimensionMismatch(t *testing.T) {
	p := &imgmat.Pair{Image: imgmat.NewRGBMatrix(4, 4), Target: imgmat.NewLabelMatrix(2, 2)}
	a := Translation(1)
	require.ErrorIs(t, a.Augment(p), segerrors.ErrDimensionMismatch)
}

func TestGeometricCoherenceZoomRotateCrop(t *testing.T) {
	zoom := Zooming(0.3)
	rot := Rotation(15)
	crop, err := Crop(4, 5)
	require.NoError(t, err)

	p := mkPair(10, 10)
	require.NoError(t, zoom.Augment(p))
	require.Equal(t, p.Image.H, p.Target.H)
	require.Equal(t, p.Image.W, p.Target.W)

	p2 := mkPair(10, 10)
	require.NoError(t, rot.Augment(p2))
	require.Equal(t, p2.Image.H, p2.Target.H)
	require.Equal(t, p2.Image.W, p2.Target.W)

	p3 := mkPair(10, 10)
	require.NoError(t, crop.Augment(p3))
	require.Equal(t, 4, p3.Image.H)
	require.Equal(t, 4, p3.Image.W)
	require.Equal(t, p3.Image.H, p3.Target.H)
}

func TestBrightnessSaturationGammaRangePreserved(t *testing.T) {
	p := mkPair(4, 4)
	for i := range p.Image.Pix {
		p.Image.Pix[i] = 0.5
	}
	bright := Brightness(-2, 2)
	require.NoError(t, bright.Augment(p))
	for _, v := range p.Image.Pix {
		require.GreaterOrEqual(t, v, float32(0))
		require.LessOrEqual(t, v, float32(1))
	}

	sat := Saturation(-5, 5)
	require.NoError(t, sat.Augment(p))
	for _, v := range p.Image.Pix {
		require.GreaterOrEqual(t, v, float32(0))
		require.LessOrEqual(t, v, float32(1))
	}

	gamma := Gamma(0.5)
	require.NoError(t, gamma.Augment(p))
	for _, v := range p.Image.Pix {
		require.GreaterOrEqual(t, v, float32(-0.001))
		require.LessOrEqual(t, v, float32(1.001))
	}
}

func TestHueWraparound(t *testing.T) {
	p := mkPair(2, 2)
	for i := 0; i < len(p.Image.Pix); i += 3 {
		p.Image.Pix[i] = 1
		p.Image.Pix[i+1] = 0
		p.Image.Pix[i+2] = 0
	}
	hue := Hue(350, 370)
	require.NoError(t, hue.Augment(p))
	for y := 0; y < p.Image.H; y++ {
		for x := 0; x < p.Image.W; x++ {
			r, g, b := p.Image.At(x, y, 0), p.Image.At(x, y, 1), p.Image.At(x, y, 2)
			h, _, _ := rgbToHSV(r, g, b)
			require.GreaterOrEqual(t, h, float32(0))
			require.Less(t, h, float32(360))
		}
	}
}

func TestLabelRemapOutOfRangeIsVoid(t *testing.T) {
	// Label remap sends unknown ids to void.
	remap, err := NewLabelRemap(make([]uint8, 34))
	require.NoError(t, err)
	p := mkPair(1, 1)
	p.Target.Pix[0] = 200 // out of table range entirely -> void
	require.NoError(t, remap.Augment(p))
	require.Equal(t, config.VoidLabel8, p.Target.At(0, 0))
}

func TestCombinedChainOrder(t *testing.T) {
	order := []int{}
	c := NewCombined([]Augmentor{
		recordingAugmentor{&order, 1},
		recordingAugmentor{&order, 2},
		recordingAugmentor{&order, 3},
	})
	require.NoError(t, c.Augment(mkPair(2, 2)))
	require.Equal(t, []int{1, 2, 3}, order)
}

type recordingAugmentor struct {
	order *[]int
	id    int
}

func (r recordingAugmentor) Augment(p *imgmat.Pair) error {
	*r.order = append(*r.order, r.id)
	return nil
}
