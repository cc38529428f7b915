// Package pairs implements the Pair Loader: composing an image loader and
// a target loader into a single load of one image/label pair.
package pairs

import (
	"github.com/hyperifyio/segpipe/pkg/segpipe/imgmat"
	"github.com/hyperifyio/segpipe/pkg/segpipe/iterator"
	"github.com/hyperifyio/segpipe/pkg/segpipe/loader"
)

// Loader composes an image loader and a target loader into one pair load.
type Loader struct {
	Image  loader.Loader
	Target loader.TargetLoader
}

// New builds a pair Loader from an image loader and a target loader.
func New(image loader.Loader, target loader.TargetLoader) *Loader {
	return &Loader{Image: image, Target: target}
}

// Load resolves handle into an imgmat.Pair. All errors propagate from the
// underlying loaders.
func (l *Loader) Load(handle iterator.FilenamePair) (*imgmat.Pair, error) {
	img, err := l.Image.LoadImage(handle.Image)
	if err != nil {
		return nil, err
	}
	tgt, err := l.Target.LoadTarget(handle.Target)
	if err != nil {
		return nil, err
	}
	return &imgmat.Pair{Image: img, Target: tgt}, nil
}
