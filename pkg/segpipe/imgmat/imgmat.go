// Package imgmat holds the in-memory pixel matrices augmentors mutate in
// place, prior to final packing into output tensor.Tensor values. Keeping
// these as dedicated plane types, rather than reusing tensor.Tensor for
// working storage, separates the pair mutated per augmentor call from the
// batch tensors assembled once, at the end, by the packer.
package imgmat

import "github.com/hyperifyio/segpipe/pkg/segpipe/config"

// RGBMatrix is a 3-channel 32-bit-float image plane, row-major, channel
// order R,G,B, values nominally in [0,1].
type RGBMatrix struct {
	H, W int
	// Pix is H*W*3 floats, laid out (y, x, c).
	Pix []float32
}

// NewRGBMatrix allocates a zero-filled RGB matrix.
func NewRGBMatrix(h, w int) *RGBMatrix {
	return &RGBMatrix{H: h, W: w, Pix: make([]float32, h*w*3)}
}

// At returns the channel c value at pixel (x, y).
func (m *RGBMatrix) At(x, y, c int) float32 {
	return m.Pix[(y*m.W+x)*3+c]
}

// Set assigns the channel c value at pixel (x, y).
func (m *RGBMatrix) Set(x, y, c int, v float32) {
	m.Pix[(y*m.W+x)*3+c] = v
}

// Clone returns a deep copy.
func (m *RGBMatrix) Clone() *RGBMatrix {
	out := &RGBMatrix{H: m.H, W: m.W, Pix: make([]float32, len(m.Pix))}
	copy(out.Pix, m.Pix)
	return out
}

// LabelMatrix is a 1-channel 8-bit label plane, row-major.
type LabelMatrix struct {
	H, W int
	Pix  []uint8
}

// NewLabelMatrix allocates a label matrix filled with the void sentinel.
func NewLabelMatrix(h, w int) *LabelMatrix {
	m := &LabelMatrix{H: h, W: w, Pix: make([]uint8, h*w)}
	for i := range m.Pix {
		m.Pix[i] = config.VoidLabel8
	}
	return m
}

// At returns the label at pixel (x, y).
func (m *LabelMatrix) At(x, y int) uint8 {
	return m.Pix[y*m.W+x]
}

// Set assigns the label at pixel (x, y).
func (m *LabelMatrix) Set(x, y int, v uint8) {
	m.Pix[y*m.W+x] = v
}

// Clone returns a deep copy.
func (m *LabelMatrix) Clone() *LabelMatrix {
	out := &LabelMatrix{H: m.H, W: m.W, Pix: make([]uint8, len(m.Pix))}
	copy(out.Pix, m.Pix)
	return out
}

// Pair bundles a source image and its dense per-pixel label, the unit
// augmentors mutate in place.
type Pair struct {
	Image  *RGBMatrix
	Target *LabelMatrix
}

// SameSize reports whether Image and Target share (H, W).
func (p *Pair) SameSize() bool {
	return p.Image.H == p.Target.H && p.Image.W == p.Target.W
}
