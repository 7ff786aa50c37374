package mol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func waterMolecule(t *testing.T) *Molecule {
	t.Helper()
	M, err := FromAtoms([]string{"O", "H", "H"}, mat.NewDense(3, 3, []float64{
		0, 0, 0,
		0.757, 0.586, 0,
		-0.757, 0.586, 0,
	}))
	require.NoError(t, err)
	return M
}

// octahedral hexaaqua-like fragment: Fe with six O at 2.1 angstroms
func octahedralComplex(t *testing.T) *Molecule {
	t.Helper()
	d := 2.1
	M, err := FromAtoms([]string{"Fe", "O", "O", "O", "O", "O", "O"}, mat.NewDense(7, 3, []float64{
		0, 0, 0,
		d, 0, 0,
		-d, 0, 0,
		0, d, 0,
		0, -d, 0,
		0, 0, d,
		0, 0, -d,
	}))
	require.NoError(t, err)
	return M
}

func TestFromAtomsValidation(t *testing.T) {
	_, err := FromAtoms([]string{"O", "H"}, mat.NewDense(3, 3, nil))
	assert.Error(t, err)
	_, err = FromAtoms([]string{"O"}, mat.NewDense(1, 2, []float64{0, 0}))
	assert.Error(t, err)
}

func TestDistance(t *testing.T) {
	M, err := FromAtoms([]string{"C", "C"}, mat.NewDense(2, 3, []float64{
		0, 0, 0,
		3, 4, 0,
	}))
	require.NoError(t, err)
	assert.InDelta(t, 5.0, M.Distance(0, 1), 1e-12)
}

func TestChargeSpinPairSemantics(t *testing.T) {
	M := waterMolecule(t)
	_, ok := M.Charge()
	assert.False(t, ok)
	_, ok = M.UHF()
	assert.False(t, ok)

	M.SetChargeSpin(-1, 1)
	c, ok := M.Charge()
	require.True(t, ok)
	assert.Equal(t, -1.0, c)
	u, ok := M.UHF()
	require.True(t, ok)
	assert.Equal(t, 1, u)

	// the plain and tool-scoped pairs are independent
	_, ok = M.XTBCharge()
	assert.False(t, ok)

	M.ClearElectronicState()
	_, ok = M.Charge()
	assert.False(t, ok)
}

func TestSetCell(t *testing.T) {
	M := waterMolecule(t)
	assert.NoError(t, M.SetCell([]float64{10, 10, 10, 90, 90, 90}))
	assert.Len(t, M.Cell(), 6)
	assert.NoError(t, M.SetCell([]float64{10, 10, 10, 90, 90, 90, 1, 1}))
	assert.Error(t, M.SetCell([]float64{10, 10}))
	assert.NoError(t, M.SetCell(nil))
}

func TestFindMetals(t *testing.T) {
	M := octahedralComplex(t)
	assert.Equal(t, []int{0}, M.FindMetals())
	ind, ok := M.FindMetal()
	require.True(t, ok)
	assert.Equal(t, 0, ind)

	W := waterMolecule(t)
	assert.Empty(t, W.FindMetals())
	_, ok = W.FindMetal()
	assert.False(t, ok)
}

func TestMassesUnknownElement(t *testing.T) {
	M, err := FromAtoms([]string{"Xq"}, mat.NewDense(1, 3, []float64{0, 0, 0}))
	require.NoError(t, err)
	_, err = M.Masses()
	assert.Error(t, err)
}

func TestCopyIsDeep(t *testing.T) {
	M := octahedralComplex(t)
	require.NoError(t, M.BuildGraph())
	M.SetChargeSpin(2, 4)
	N := M.Copy()

	N.Positions().Set(0, 0, 99)
	assert.Equal(t, 0.0, M.Positions().At(0, 0))

	N.BondOrders()[Key(1, 2)] = "2"
	assert.Equal(t, "1", M.BondOrders()[Key(1, 2)])

	N.SetChargeSpin(0, 0)
	c, _ := M.Charge()
	assert.Equal(t, 2.0, c)
}

func TestKeySorts(t *testing.T) {
	assert.Equal(t, BondKey{1, 5}, Key(5, 1))
	assert.Equal(t, BondKey{1, 5}, Key(1, 5))
}
