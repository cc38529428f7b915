package augment

import (
	"github.com/hyperifyio/segpipe/pkg/segpipe/config"
	segerrors "github.com/hyperifyio/segpipe/pkg/segpipe/errors"
	"github.com/hyperifyio/segpipe/pkg/segpipe/imgmat"
)

// cityscapesRawToTrainID is the fixed 34-entry table mapping Cityscapes
// raw label ids (0..33) to contiguous training ids (0..18); ids not in
// the training set map to the void sentinel. The table is owned by this
// augmentor, not a package-level global shared with unrelated code.
var cityscapesRawToTrainID = [34]uint8{
	255, 255, 255, 255, 255, 255, 255,
	0, 1, 255, 255,
	2, 3, 4, 255, 255, 255,
	5, 255, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 255, 255, 16, 17, 18,
}

// LabelRemapAugmentor applies a fixed raw-id -> training-id table to the
// target plane; the image plane is untouched.
type LabelRemapAugmentor struct {
	table [34]uint8
}

// CityscapesLabelRemap returns a LabelRemapAugmentor using the fixed
// Cityscapes 34-entry table.
func CityscapesLabelRemap() *LabelRemapAugmentor {
	return &LabelRemapAugmentor{table: cityscapesRawToTrainID}
}

// NewLabelRemap builds a LabelRemapAugmentor from a caller-supplied
// 34-entry table, for datasets that reuse the remap mechanism with a
// different raw id space.
func NewLabelRemap(table []uint8) (*LabelRemapAugmentor, error) {
	if len(table) != 34 {
		return nil, segerrors.ErrInvalidLabelRemapTable
	}
	a := &LabelRemapAugmentor{}
	copy(a.table[:], table)
	return a, nil
}

// Augment implements Augmentor.
func (a *LabelRemapAugmentor) Augment(p *imgmat.Pair) error {
	for i, v := range p.Target.Pix {
		if int(v) < len(a.table) {
			p.Target.Pix[i] = a.table[v]
		} else {
			p.Target.Pix[i] = config.VoidLabel8
		}
	}
	return nil
}
