// Package loader implements the pure, reentrant loaders that turn one
// filename into one typed matrix: RGBLoader, LabelLoader, ValueMapLoader,
// and ColorMapLoader.
package loader

import (
	"fmt"

	"github.com/hyperifyio/segpipe/pkg/segpipe/codec"
	segerrors "github.com/hyperifyio/segpipe/pkg/segpipe/errors"
	"github.com/hyperifyio/segpipe/pkg/segpipe/imgmat"
)

// Loader maps one filename to one typed matrix.
type Loader interface {
	// LoadImage loads path as the source-image plane.
	LoadImage(path string) (*imgmat.RGBMatrix, error)
}

// TargetLoader maps one filename to a label plane.
type TargetLoader interface {
	LoadTarget(path string) (*imgmat.LabelMatrix, error)
}

// RGBLoader decodes a file as 3-channel color, converts to 32-bit float,
// scales by 1/255, and reorders from the codec's native B,G,R order to
// R,G,B.
type RGBLoader struct{}

// RGB returns a new RGBLoader.
func RGB() *RGBLoader { return &RGBLoader{} }

// LoadImage implements Loader.
func (l *RGBLoader) LoadImage(path string) (*imgmat.RGBMatrix, error) {
	cm, err := codec.DecodeColor(path)
	if err != nil {
		return nil, err
	}
	out := imgmat.NewRGBMatrix(cm.H, cm.W)
	for y := 0; y < cm.H; y++ {
		for x := 0; x < cm.W; x++ {
			i := (y*cm.W + x) * 3
			b, g, r := cm.Pix[i], cm.Pix[i+1], cm.Pix[i+2]
			out.Set(x, y, 0, float32(r)/255)
			out.Set(x, y, 1, float32(g)/255)
			out.Set(x, y, 2, float32(b)/255)
		}
	}
	return out, nil
}

// LabelLoader decodes a file as single-channel 8-bit label data, with no
// further transform.
type LabelLoader struct{}

// Label returns a new LabelLoader.
func Label() *LabelLoader { return &LabelLoader{} }

// LoadTarget implements TargetLoader.
func (l *LabelLoader) LoadTarget(path string) (*imgmat.LabelMatrix, error) {
	gm, err := codec.DecodeGray(path)
	if err != nil {
		return nil, err
	}
	out := &imgmat.LabelMatrix{H: gm.H, W: gm.W, Pix: append([]byte(nil), gm.Pix...)}
	return out, nil
}

// ValueMapLoader decodes single-channel 8-bit data, then applies a fixed
// 256-entry permutation table.
type ValueMapLoader struct {
	table [256]uint8
}

// ValueMapper builds a ValueMapLoader from a 256-entry table. Construction
// fails unless table has exactly 256 entries.
func ValueMapper(table []uint8) (*ValueMapLoader, error) {
	if len(table) != 256 {
		return nil, segerrors.ErrInvalidValueTable
	}
	l := &ValueMapLoader{}
	copy(l.table[:], table)
	return l, nil
}

// LoadTarget implements TargetLoader.
func (l *ValueMapLoader) LoadTarget(path string) (*imgmat.LabelMatrix, error) {
	gm, err := codec.DecodeGray(path)
	if err != nil {
		return nil, err
	}
	out := &imgmat.LabelMatrix{H: gm.H, W: gm.W, Pix: make([]byte, len(gm.Pix))}
	for i, v := range gm.Pix {
		out.Pix[i] = l.table[v]
	}
	return out, nil
}

// colorKey packs an (R,G,B) triple into a lookup key.
type colorKey [3]uint8

// ColorMapLoader decodes 3-channel 8-bit data, then maps each pixel's
// (R,G,B) triple via a lookup table; an unmapped color fails that image.
type ColorMapLoader struct {
	table map[colorKey]uint8
}

// ColorMapper builds a ColorMapLoader from an (R,G,B) -> class-id table.
func ColorMapper(table map[[3]uint8]uint8) *ColorMapLoader {
	l := &ColorMapLoader{table: make(map[colorKey]uint8, len(table))}
	for k, v := range table {
		l.table[colorKey(k)] = v
	}
	return l
}

// LoadTarget implements TargetLoader.
func (l *ColorMapLoader) LoadTarget(path string) (*imgmat.LabelMatrix, error) {
	cm, err := codec.DecodeColor(path)
	if err != nil {
		return nil, err
	}
	out := imgmat.NewLabelMatrix(cm.H, cm.W)
	for y := 0; y < cm.H; y++ {
		for x := 0; x < cm.W; x++ {
			i := (y*cm.W + x) * 3
			b, g, r := cm.Pix[i], cm.Pix[i+1], cm.Pix[i+2]
			id, ok := l.table[colorKey{r, g, b}]
			if !ok {
				return nil, fmt.Errorf("%w: %s at (%d,%d) = (%d,%d,%d)", segerrors.ErrUnmappedColor, path, x, y, r, g, b)
			}
			out.Set(x, y, id)
		}
	}
	return out, nil
}
