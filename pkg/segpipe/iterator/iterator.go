// Package iterator implements the Filename Iterator component: it
// produces the next (image-path, target-path) pair under Sequential,
// Random, or WeightedRandom policies. Next is called concurrently from
// the provider's fan-out workers, so every variant serializes access to
// its mutable cursor/RNG/shuffle state behind a mutex.
package iterator

import (
	"sort"
	"sync"

	segerrors "github.com/hyperifyio/segpipe/pkg/segpipe/errors"
	"github.com/hyperifyio/segpipe/pkg/segpipe/logging"
	"github.com/hyperifyio/segpipe/pkg/segpipe/rng"
)

// FilenamePair is an immutable (image, target) path pair.
type FilenamePair struct {
	Image  string
	Target string
}

// Iterator produces the next FilenamePair under some selection policy.
type Iterator interface {
	// Next returns a non-owning handle to the next FilenamePair.
	Next() FilenamePair
	// Reset returns the iterator to its initial state; randomized
	// policies re-seed from their original seed.
	Reset()
	// Count returns the number of elements in the underlying container.
	Count() int
}

// Sequential visits elements in declared order, wrapping to the
// beginning on reaching the end.
type Sequential struct {
	mu     sync.Mutex
	files  []FilenamePair
	cursor int
}

// NewSequential builds a Sequential iterator over files. Fails on an
// empty container.
func NewSequential(files []FilenamePair) (*Sequential, error) {
	if len(files) == 0 {
		return nil, segerrors.ErrEmptyFileList
	}
	return &Sequential{files: append([]FilenamePair(nil), files...)}, nil
}

// Next implements Iterator.
func (s *Sequential) Next() FilenamePair {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.files[s.cursor]
	s.cursor = (s.cursor + 1) % len(s.files)
	return p
}

// Reset implements Iterator.
func (s *Sequential) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = 0
}

// Count implements Iterator.
func (s *Sequential) Count() int {
	return len(s.files)
}

// Random visits elements in a shuffled order for one epoch, then
// re-shuffles and restarts. Reset re-seeds from the original seed so the
// emission sequence is reproducible.
type Random struct {
	mu    sync.Mutex
	files []FilenamePair
	keys  []int
	pos   int
	src   *rng.Source
}

// NewRandom builds a Random iterator over files, seeded with seed (0
// sources a nondeterministic seed).
func NewRandom(files []FilenamePair, seed uint64) (*Random, error) {
	if len(files) == 0 {
		return nil, segerrors.ErrEmptyFileList
	}
	r := &Random{files: append([]FilenamePair(nil), files...), src: rng.New(seed)}
	r.reshuffle()
	return r, nil
}

func (r *Random) reshuffle() {
	r.keys = make([]int, len(r.files))
	for i := range r.keys {
		r.keys[i] = i
	}
	r.src.Shuffle(len(r.keys), func(i, j int) {
		r.keys[i], r.keys[j] = r.keys[j], r.keys[i]
	})
	r.pos = 0
}

// Next implements Iterator.
func (r *Random) Next() FilenamePair {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pos >= len(r.keys) {
		r.reshuffle()
	}
	k := r.keys[r.pos]
	r.pos++
	return r.files[k]
}

// Reset implements Iterator.
func (r *Random) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.src.Reset()
	r.reshuffle()
}

// Count implements Iterator.
func (r *Random) Count() int {
	return len(r.files)
}

// WeightedRandom draws an independent sample per call from the
// normalized-weight distribution via inverse-CDF lookup.
type WeightedRandom struct {
	mu    sync.Mutex
	files []FilenamePair
	cum   []float64 // cumulative distribution, cum[len-1] == 1
	src   *rng.Source
}

// NewWeightedRandom builds a WeightedRandom iterator. Negative weights
// are folded to their absolute value before normalizing; all-zero
// weights are a construction error.
func NewWeightedRandom(files []FilenamePair, weights []float64, seed uint64) (*WeightedRandom, error) {
	if len(files) == 0 {
		return nil, segerrors.ErrEmptyFileList
	}
	if len(weights) != len(files) {
		return nil, segerrors.ErrWeightLengthMismatch
	}
	abs := make([]float64, len(weights))
	var sum float64
	for i, w := range weights {
		if w < 0 {
			w = -w
		}
		abs[i] = w
		sum += w
	}
	if sum <= 0 {
		return nil, segerrors.ErrAllZeroWeights
	}
	cum := make([]float64, len(abs))
	running := 0.0
	for i, w := range abs {
		running += w / sum
		cum[i] = running
	}
	cum[len(cum)-1] = 1 // guard against floating point drift
	logging.Debugf("iterator: weighted random built over %d files, sum=%v", len(files), sum)
	return &WeightedRandom{
		files: append([]FilenamePair(nil), files...),
		cum:   cum,
		src:   rng.New(seed),
	}, nil
}

// Next implements Iterator. Tie-breaks: cumulative intervals are
// strictly half-open [c_{k-1}, c_k); u landing on the final boundary
// returns the last element.
func (w *WeightedRandom) Next() FilenamePair {
	w.mu.Lock()
	u := w.src.Float64()
	w.mu.Unlock()

	idx := sort.Search(len(w.cum), func(i int) bool { return u < w.cum[i] })
	if idx >= len(w.cum) {
		idx = len(w.cum) - 1
	}
	return w.files[idx]
}

// Reset implements Iterator.
func (w *WeightedRandom) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.src.Reset()
}

// Count implements Iterator.
func (w *WeightedRandom) Count() int {
	return len(w.files)
}
