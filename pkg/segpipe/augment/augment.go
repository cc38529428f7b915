// Package augment implements the Augmentor set: stochastic in-place
// mutations of an image/label pair that must preserve pixel-to-label
// alignment. Each augmentor owns a seeded RNG (pkg/segpipe/rng) and
// serializes sampling under that RNG's own mutex; pixel work itself runs
// unlocked, since the provider parallelizes across pairs rather than
// within one pair.
package augment

import "github.com/hyperifyio/segpipe/pkg/segpipe/imgmat"

// Augmentor mutates an ImageLabelPair in place.
type Augmentor interface {
	Augment(p *imgmat.Pair) error
}

// Combined applies a sequence of augmentors in declared order: a plain
// slice of the shared interface in place of a combined-node class
// hierarchy.
type Combined struct {
	chain []Augmentor
}

// NewCombined builds a Combined augmentor over chain, applied in order.
func NewCombined(chain []Augmentor) *Combined {
	return &Combined{chain: append([]Augmentor(nil), chain...)}
}

// Augment implements Augmentor.
func (c *Combined) Augment(p *imgmat.Pair) error {
	for _, a := range c.chain {
		if err := a.Augment(p); err != nil {
			return err
		}
	}
	return nil
}
