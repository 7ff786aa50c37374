package mol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestSwapActinides(t *testing.T) {
	M, err := FromAtoms([]string{"U", "O", "O"}, mat.NewDense(3, 3, []float64{
		0, 0, 0,
		1.8, 0, 0,
		-1.8, 0, 0,
	}))
	require.NoError(t, err)

	M.SwapActinides()
	assert.True(t, M.ActinidesSwapped())
	assert.Equal(t, []string{"Nd", "O", "O"}, M.Symbols())
	assert.Equal(t, "Nd", M.AtomTypes()[0])

	// swapping again restores the original
	M.SwapActinides()
	assert.False(t, M.ActinidesSwapped())
	assert.Equal(t, []string{"U", "O", "O"}, M.Symbols())
	assert.Equal(t, "U", M.AtomTypes()[0])
}

func TestSwapActinidesNoActinides(t *testing.T) {
	M := waterMolecule(t)
	M.SwapActinides()
	assert.False(t, M.ActinidesSwapped())
	assert.Equal(t, []string{"O", "H", "H"}, M.Symbols())
}

func TestSwapActinidesSurvivesCopy(t *testing.T) {
	M, err := FromAtoms([]string{"Th"}, mat.NewDense(1, 3, []float64{0, 0, 0}))
	require.NoError(t, err)
	M.SwapActinides()
	require.True(t, M.ActinidesSwapped())
	N := M.Copy()
	N.SwapActinides()
	assert.Equal(t, []string{"Th"}, N.Symbols())
	// the original still carries the surrogate
	assert.Equal(t, []string{"Ce"}, M.Symbols())
}
