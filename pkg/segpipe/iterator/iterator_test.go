package iterator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func mkFiles(n int) []FilenamePair {
	files := make([]FilenamePair, n)
	for i := range files {
		files[i] = FilenamePair{Image: string(rune('a' + i)), Target: string(rune('a'+i)) + "_t"}
	}
	return files
}

func TestSequentialOrder(t *testing.T) {
	// Wraps around the end of the file list instead of stopping.
	it, err := NewSequential(mkFiles(3))
	require.NoError(t, err)
	var got []string
	for i := 0; i < 6; i++ {
		got = append(got, it.Next().Image)
	}
	require.Equal(t, []string{"a", "b", "c", "a", "b", "c"}, got)
}

func TestSequentialEmpty(t *testing.T) {
	_, err := NewSequential(nil)
	require.Error(t, err)
}

func TestSequentialReset(t *testing.T) {
	it, err := NewSequential(mkFiles(3))
	require.NoError(t, err)
	it.Next()
	it.Next()
	it.Reset()
	require.Equal(t, "a", it.Next().Image)
}

func TestRandomResetReproducesSequence(t *testing.T) {
	it, err := NewRandom(mkFiles(4), 42)
	require.NoError(t, err)
	var seq1, seq2 []string
	for i := 0; i < 4; i++ {
		seq1 = append(seq1, it.Next().Image)
	}
	it.Reset()
	for i := 0; i < 4; i++ {
		seq2 = append(seq2, it.Next().Image)
	}
	require.Equal(t, seq1, seq2)
}

func TestRandomShuffleIsPermutation(t *testing.T) {
	it, err := NewRandom(mkFiles(10), 7)
	require.NoError(t, err)
	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		seen[it.Next().Image] = true
	}
	require.Len(t, seen, 10)
}

func TestWeightedRandomAllZero(t *testing.T) {
	_, err := NewWeightedRandom(mkFiles(3), []float64{0, 0, 0}, 1)
	require.Error(t, err)
}

func TestWeightedRandomLengthMismatch(t *testing.T) {
	_, err := NewWeightedRandom(mkFiles(3), []float64{1, 2}, 1)
	require.Error(t, err)
}

func TestWeightedRandomNegativeFolded(t *testing.T) {
	it, err := NewWeightedRandom(mkFiles(2), []float64{-1, 1}, 1)
	require.NoError(t, err)
	require.InDelta(t, 0.5, it.cum[0], 1e-9)
}

func TestWeightedRandomConvergence(t *testing.T) {
	// Empirical draw frequency should converge to the normalized weight.
	files := mkFiles(3)
	weights := []float64{1, 2, 7}
	it, err := NewWeightedRandom(files, weights, 123)
	require.NoError(t, err)

	const draws = 200000
	counts := map[string]int{}
	for i := 0; i < draws; i++ {
		counts[it.Next().Image]++
	}
	total := 10.0
	expect := []float64{1 / total, 2 / total, 7 / total}
	for i, f := range files {
		freq := float64(counts[f.Image]) / draws
		require.True(t, math.Abs(freq-expect[i]) < 0.01, "label %s: got %v want %v", f.Image, freq, expect[i])
	}
}
