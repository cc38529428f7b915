package tensor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		shape   []int
		wantErr bool
	}{
		{name: "valid 2D", shape: []int{2, 3}},
		{name: "valid 4D", shape: []int{4, 3, 8, 8}},
		{name: "invalid zero dim", shape: []int{0, 2}, wantErr: true},
		{name: "invalid negative dim", shape: []int{-1, 2}, wantErr: true},
		{name: "invalid empty shape", shape: []int{}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New[float32](tt.shape...)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got)
			size := 1
			for _, d := range tt.shape {
				size *= d
			}
			require.Len(t, got.Data(), size)
		})
	}
}

func TestAtSet(t *testing.T) {
	tn, err := New[float32](2, 3, 4)
	require.NoError(t, err)
	tn.Set(1.5, 1, 2, 3)
	require.Equal(t, float32(1.5), tn.At(1, 2, 3))
	require.Equal(t, float32(0), tn.At(0, 0, 0))
}

func TestReshape(t *testing.T) {
	tn, err := New[float32](2, 3)
	require.NoError(t, err)
	for i, v := range []float32{1, 2, 3, 4, 5, 6} {
		tn.data[i] = v
	}
	out, err := tn.Reshape(3, 2)
	require.NoError(t, err)
	require.Equal(t, []int{3, 2}, out.Shape())
	require.Equal(t, float32(4), out.At(1, 1))
}

func TestReshapeSizeMismatch(t *testing.T) {
	tn, err := New[float32](2, 3)
	require.NoError(t, err)
	_, err = tn.Reshape(4, 4)
	require.ErrorIs(t, err, ErrInvalidReshape)
}

func TestFill(t *testing.T) {
	tn, err := New[int32](3, 3)
	require.NoError(t, err)
	tn.Fill(-1)
	for _, v := range tn.Data() {
		require.Equal(t, int32(-1), v)
	}
}

func TestScrubNaN(t *testing.T) {
	tn, err := New[float32](1, 4)
	require.NoError(t, err)
	tn.Set(float32(math.NaN()), 0, 1)
	tn.Set(2.0, 0, 2)
	tn.ScrubNaN()
	require.Equal(t, float32(0), tn.At(0, 1))
	require.Equal(t, float32(2), tn.At(0, 2))
}

func TestRow(t *testing.T) {
	tn, err := New[float32](2, 3)
	require.NoError(t, err)
	row1 := tn.Row(1)
	require.Len(t, row1, 3)
	row1[0] = 9
	require.Equal(t, float32(9), tn.At(1, 0))
}

func TestParallelForEach(t *testing.T) {
	tn, err := New[int32](16, 4)
	require.NoError(t, err)
	tn.ParallelForEach(func(b int) {
		row := tn.Row(b)
		for i := range row {
			row[i] = int32(b)
		}
	})
	for b := 0; b < 16; b++ {
		for _, v := range tn.Row(b) {
			require.Equal(t, int32(b), v)
		}
	}
}
