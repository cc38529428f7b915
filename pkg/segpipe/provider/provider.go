// Package provider implements the prefetch worker, parallel batch
// assembly, and tensor packing that turn a stream of augmented pairs into
// ready-to-train batches. The prefetch handshake is a single-entry
// Empty/Filled slot guarded by a sync.Mutex + sync.Cond; the intra-batch
// fan-out splits one batch across a bounded set of goroutines coordinated
// with a sync.WaitGroup and a buffered error channel.
package provider

import (
	"fmt"
	"sync"

	"github.com/hyperifyio/segpipe/pkg/segpipe/augment"
	"github.com/hyperifyio/segpipe/pkg/segpipe/config"
	segerrors "github.com/hyperifyio/segpipe/pkg/segpipe/errors"
	"github.com/hyperifyio/segpipe/pkg/segpipe/iterator"
	"github.com/hyperifyio/segpipe/pkg/segpipe/logging"
	"github.com/hyperifyio/segpipe/pkg/segpipe/loader"
	"github.com/hyperifyio/segpipe/pkg/segpipe/pairs"
	"github.com/hyperifyio/segpipe/pkg/segpipe/tensor"
)

// Mode selects the target tensor's encoding, a binding-time choice fixed
// at construction rather than switched at runtime.
type Mode int

const (
	// DenseTargets packs targets as (B, Ht, Wt) int32, -1 for void.
	DenseTargets Mode = iota
	// OneHotTargets packs targets as (B, C, Ht, Wt) float32.
	OneHotTargets
)

// Batch owns the tensors produced by one Next() call. Exactly one of
// Dense or OneHot is populated, matching the Provider's Mode.
type Batch struct {
	Images *tensor.Tensor[float32]
	Dense  *tensor.Tensor[int32]
	OneHot *tensor.Tensor[float32]
}

// Provider is the prefetching batch assembler: a dedicated worker
// goroutine fills a single-slot buffer that Next() drains.
type Provider struct {
	augmentor augment.Augmentor
	pairs     *pairs.Loader
	it        iterator.Iterator
	batchSize int
	numClass  int
	mode      Mode
	cfg       *config.RuntimeConfig

	imgH, imgW int
	tgtH, tgtW int

	mu        sync.Mutex
	cond      *sync.Cond
	filled    bool
	terminate bool
	pending   *Batch
	pendingErr error

	wg sync.WaitGroup
}

// New constructs a Provider and starts its prefetch worker. It pulls one
// pair from it to learn image/target dimensions, then resets it so the
// first pair of the first batch is the iterator's first post-reset
// emission.
func New(augmentor augment.Augmentor, imageLoader loader.Loader, targetLoader loader.TargetLoader, it iterator.Iterator, batchSize, numClasses int, mode Mode) (*Provider, error) {
	if batchSize <= 0 {
		return nil, segerrors.ErrInvalidBatchSize
	}
	if numClasses <= 0 {
		return nil, segerrors.ErrInvalidNumClasses
	}

	pl := pairs.New(imageLoader, targetLoader)
	handle := it.Next()
	probe, err := pl.Load(handle)
	if err != nil {
		return nil, err
	}
	if err := augmentor.Augment(probe); err != nil {
		return nil, err
	}
	it.Reset()

	p := &Provider{
		augmentor: augmentor,
		pairs:     pl,
		it:        it,
		batchSize: batchSize,
		numClass:  numClasses,
		mode:      mode,
		cfg:       config.NewRuntimeConfig(),
		imgH:      probe.Image.H,
		imgW:      probe.Image.W,
		tgtH:      probe.Target.H,
		tgtW:      probe.Target.W,
	}
	p.cond = sync.NewCond(&p.mu)

	p.wg.Add(1)
	go p.run()
	return p, nil
}

// NumBatches returns floor(iterator.Count() / batchSize).
func (p *Provider) NumBatches() int {
	return p.it.Count() / p.batchSize
}

// Reset forwards to the iterator. It does not drain an already-prefetched
// batch: the consumer may still observe one pre-reset batch after this
// call returns. This is a benign, documented race, not a bug.
func (p *Provider) Reset() {
	p.it.Reset()
}

// Next blocks until a batch is available, takes ownership of it, and
// returns it. It never returns a partially constructed batch: a failed
// build instead surfaces as an error here.
func (p *Provider) Next() (*Batch, error) {
	p.mu.Lock()
	for !p.filled && !p.terminate {
		p.cond.Wait()
	}
	if p.terminate {
		p.mu.Unlock()
		return nil, segerrors.ErrClosed
	}
	batch, err := p.pending, p.pendingErr
	p.pending, p.pendingErr = nil, nil
	p.filled = false
	p.cond.Signal()
	p.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return batch, nil
}

// Close signals shutdown, releases the slot so the worker can observe the
// terminate flag, and joins it.
func (p *Provider) Close() {
	p.mu.Lock()
	p.terminate = true
	p.cond.Broadcast()
	p.mu.Unlock()
	p.wg.Wait()
}

// run is the prefetch worker's main loop: fill when Empty, wait when
// Filled, exit from either state once terminate is observed.
func (p *Provider) run() {
	defer p.wg.Done()
	for {
		p.mu.Lock()
		for p.filled && !p.terminate {
			p.cond.Wait()
		}
		if p.terminate {
			p.mu.Unlock()
			return
		}
		p.mu.Unlock()

		batch, err := p.buildBatch()

		p.mu.Lock()
		if p.terminate {
			p.mu.Unlock()
			return
		}
		p.pending, p.pendingErr = batch, err
		p.filled = true
		p.cond.Signal()
		p.mu.Unlock()
	}
}

// buildBatch allocates the output tensors, pulls batchSize handles from
// the iterator, loads and augments each pair in parallel, and packs the
// results into images and targets.
func (p *Provider) buildBatch() (*Batch, error) {
	images, err := tensor.New[float32](p.batchSize, 3, p.imgH, p.imgW)
	if err != nil {
		return nil, err
	}

	var dense *tensor.Tensor[int32]
	var oneHot *tensor.Tensor[float32]
	switch p.mode {
	case DenseTargets:
		dense, err = tensor.New[int32](p.batchSize, p.tgtH, p.tgtW)
	case OneHotTargets:
		oneHot, err = tensor.New[float32](p.batchSize, p.numClass, p.tgtH, p.tgtW)
	}
	if err != nil {
		return nil, err
	}

	handles := make([]iterator.FilenamePair, p.batchSize)
	for i := range handles {
		handles[i] = p.it.Next()
	}

	errs := make(chan error, p.batchSize)
	workers := min(p.cfg.MaxWorkers, p.batchSize)
	var wg sync.WaitGroup
	chunk := (p.batchSize + workers - 1) / workers
	for start := 0; start < p.batchSize; start += chunk {
		end := min(start+chunk, p.batchSize)
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				if err := p.buildOne(i, handles[i], images, dense, oneHot); err != nil {
					errs <- err
				}
			}
		}(start, end)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		logging.Errorf("batch assembly failed: %v", err)
		return nil, fmt.Errorf("%w: %v", segerrors.ErrBatchAborted, err)
	}

	images.ScrubNaN()
	if oneHot != nil {
		oneHot.ScrubNaN()
	}

	return &Batch{Images: images, Dense: dense, OneHot: oneHot}, nil
}

func (p *Provider) buildOne(i int, handle iterator.FilenamePair, images *tensor.Tensor[float32], dense *tensor.Tensor[int32], oneHot *tensor.Tensor[float32]) error {
	pair, err := p.pairs.Load(handle)
	if err != nil {
		return err
	}
	if err := p.augmentor.Augment(pair); err != nil {
		return err
	}
	if pair.Image.H != p.imgH || pair.Image.W != p.imgW {
		return fmt.Errorf("%w: image is %dx%d, expected %dx%d", segerrors.ErrDimensionMismatch, pair.Image.H, pair.Image.W, p.imgH, p.imgW)
	}
	if pair.Target.H != p.tgtH || pair.Target.W != p.tgtW {
		return fmt.Errorf("%w: target is %dx%d, expected %dx%d", segerrors.ErrDimensionMismatch, pair.Target.H, pair.Target.W, p.tgtH, p.tgtW)
	}

	for c := 0; c < 3; c++ {
		for y := 0; y < p.imgH; y++ {
			for x := 0; x < p.imgW; x++ {
				images.Set(pair.Image.At(x, y, c), i, c, y, x)
			}
		}
	}

	for y := 0; y < p.tgtH; y++ {
		for x := 0; x < p.tgtW; x++ {
			label := pair.Target.At(x, y)
			switch p.mode {
			case DenseTargets:
				if label == config.VoidLabel8 {
					dense.Set(config.VoidLabelIndex, i, y, x)
				} else {
					dense.Set(int32(label), i, y, x)
				}
			case OneHotTargets:
				if label != config.VoidLabel8 && int(label) < p.numClass {
					oneHot.Set(1, i, int(label), y, x)
				}
			}
		}
	}
	return nil
}
