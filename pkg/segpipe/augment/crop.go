package augment

import (
	"math"

	segerrors "github.com/hyperifyio/segpipe/pkg/segpipe/errors"
	"github.com/hyperifyio/segpipe/pkg/segpipe/imgmat"
	"github.com/hyperifyio/segpipe/pkg/segpipe/rng"
)

// CropAugmentor extracts an s x s window whose position is sampled
// proportionally to the class-entropy of the window's label histogram.
// Window histograms are built with a sliding-window accumulator: a
// per-column rolling histogram absorbs/evicts one row at a time as the
// window slides down, and a per-row rolling sum absorbs/evicts one
// column at a time as the window slides right. Both passes touch each
// pixel a constant number of times, so the whole table is still built in
// O(H*W*numClasses).
type CropAugmentor struct {
	size       int
	numClasses int
	src        *rng.Source
}

// Crop returns a new CropAugmentor with window size s and numClasses
// classes (used to size the per-pixel histogram; labels >= numClasses,
// including the void label 255, are excluded from counts).
func Crop(size, numClasses int) (*CropAugmentor, error) {
	if size <= 0 {
		return nil, segerrors.ErrInvalidNumClasses
	}
	if numClasses <= 0 {
		return nil, segerrors.ErrInvalidNumClasses
	}
	return &CropAugmentor{size: size, numClasses: numClasses, src: rng.New(0)}, nil
}

// Augment implements Augmentor.
func (a *CropAugmentor) Augment(p *imgmat.Pair) error {
	h, w := p.Target.H, p.Target.W
	s := a.size
	if s > h || s > w {
		return segerrors.ErrDimensionMismatch
	}
	rows := h - s + 1
	cols := w - s + 1

	scores := a.windowScores(p.Target, rows, cols)
	total := 0.0
	for _, sc := range scores {
		total += sc
	}

	var row, col int
	if total <= 0 {
		// Degenerate case (e.g. every window is entirely void): fall
		// back to a uniform pick so Crop never blocks.
		flat := a.src.IntN(rows * cols)
		row, col = flat/cols, flat%cols
	} else {
		u := a.src.Float64()
		cum := 0.0
		flat := rows*cols - 1
		for i, sc := range scores {
			cum += sc / total
			if u < cum {
				flat = i
				break
			}
		}
		row, col = flat/cols, flat%cols
	}

	p.Image = cropRGBAt(p.Image, row, col, s)
	p.Target = cropLabelAt(p.Target, row, col, s)
	return nil
}

// windowScores returns, for every valid top-left (row, col) in row-major
// flattened order, the normalized entropy-like score
// (-sum n_c*log(n_c) + N*log(N)) / s^2 of the s x s window's class
// histogram, excluding void pixels from the counts.
func (a *CropAugmentor) windowScores(target *imgmat.LabelMatrix, rows, cols int) []float64 {
	s := a.size
	numClasses := a.numClasses
	scores := make([]float64, rows*cols)

	// colHist[x] holds the histogram of column x across the current
	// s-row band [i, i+s).
	colHist := make([][]int, target.W)
	for x := range colHist {
		colHist[x] = make([]int, numClasses)
	}
	addCol := func(x, y, sign int) {
		v := target.At(x, y)
		if int(v) < numClasses {
			colHist[x][v] += sign
		}
	}

	for i := 0; i < rows; i++ {
		if i == 0 {
			for x := 0; x < target.W; x++ {
				for y := 0; y < s; y++ {
					addCol(x, y, 1)
				}
			}
		} else {
			for x := 0; x < target.W; x++ {
				addCol(x, i-1, -1)
				addCol(x, i+s-1, 1)
			}
		}

		// Rolling row-window sum over columns [j, j+s) built from
		// colHist.
		rowHist := make([]int, numClasses)
		for x := 0; x < s; x++ {
			for c := 0; c < numClasses; c++ {
				rowHist[c] += colHist[x][c]
			}
		}
		scores[i*cols] = entropyScore(rowHist, s)
		for j := 1; j < cols; j++ {
			for c := 0; c < numClasses; c++ {
				rowHist[c] += colHist[j+s-1][c] - colHist[j-1][c]
			}
			scores[i*cols+j] = entropyScore(rowHist, s)
		}
	}
	return scores
}

func entropyScore(hist []int, s int) float64 {
	n := 0
	score := 0.0
	for _, c := range hist {
		if c <= 0 {
			continue
		}
		n += c
		score -= float64(c) * math.Log(float64(c))
	}
	if n > 0 {
		score += float64(n) * math.Log(float64(n))
	}
	return score / float64(s*s)
}

func cropRGBAt(m *imgmat.RGBMatrix, row, col, s int) *imgmat.RGBMatrix {
	out := imgmat.NewRGBMatrix(s, s)
	for y := 0; y < s; y++ {
		for x := 0; x < s; x++ {
			for c := 0; c < 3; c++ {
				out.Set(x, y, c, m.At(col+x, row+y, c))
			}
		}
	}
	return out
}

func cropLabelAt(m *imgmat.LabelMatrix, row, col, s int) *imgmat.LabelMatrix {
	out := imgmat.NewLabelMatrix(s, s)
	for y := 0; y < s; y++ {
		for x := 0; x < s; x++ {
			out.Set(x, y, m.At(col+x, row+y))
		}
	}
	return out
}
