package traj

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestRoundTrip(t *testing.T) {
	name := filepath.Join(t.TempDir(), "assembly.trj")
	symbols := []string{"Fe", "O", "O"}
	frames := []*mat.Dense{
		mat.NewDense(3, 3, []float64{0, 0, 0, 2.1, 0, 0, -2.1, 0, 0}),
		mat.NewDense(3, 3, []float64{0, 0, 0, 2.2, 0, 0, -2.2, 0, 0}),
	}

	W, err := NewWriter(name, 3, map[string]string{"stage": "assembly"})
	require.NoError(t, err)
	require.NoError(t, W.WNext(symbols, frames[0]))
	require.NoError(t, W.WNext(nil, frames[1]))
	W.Close()

	R, meta, err := NewReader(name)
	require.NoError(t, err)
	defer R.Close()
	assert.Equal(t, "assembly", meta["stage"])
	assert.Equal(t, 3, R.Len())

	for _, want := range frames {
		syms, coords, err := R.Next()
		require.NoError(t, err)
		assert.Equal(t, symbols, syms)
		for i := 0; i < 3; i++ {
			for k := 0; k < 3; k++ {
				assert.InDelta(t, want.At(i, k), coords.At(i, k), 1e-4)
			}
		}
	}
	_, _, err = R.Next()
	assert.Equal(t, io.EOF, err)
}

func TestWriterValidation(t *testing.T) {
	name := filepath.Join(t.TempDir(), "bad.trj")
	W, err := NewWriter(name, 2, nil)
	require.NoError(t, err)
	defer W.Close()

	assert.Error(t, W.WNext(nil, nil))
	assert.Error(t, W.WNext([]string{"H"}, mat.NewDense(1, 3, nil)))
	assert.Error(t, W.WNext([]string{"H", "H", "H"}, mat.NewDense(3, 3, nil)))
}

func TestClosedWriterRejectsFrames(t *testing.T) {
	name := filepath.Join(t.TempDir(), "closed.trj")
	W, err := NewWriter(name, 1, nil)
	require.NoError(t, err)
	W.Close()
	err = W.WNext([]string{"H"}, mat.NewDense(1, 3, nil))
	require.Error(t, err)
	terr, ok := err.(Error)
	require.True(t, ok)
	assert.Equal(t, name, terr.FileName())
	assert.True(t, terr.Critical())
}
