package mol

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestMol2RoundTrip(t *testing.T) {
	M := waterMolecule(t)
	require.NoError(t, M.BuildGraph())
	M.SetElectronicState(0, 0, 0, 0)

	s, err := Mol2String(M, "water")
	require.NoError(t, err)
	assert.Contains(t, s, "@<TRIPOS>MOLECULE")
	assert.Contains(t, s, "Charge: 0 Unpaired_Electrons: 0 XTB_Unpaired_Electrons: 0 XTB_Charge: 0")

	N, err := Mol2Read(s)
	require.NoError(t, err)
	assert.Equal(t, M.Symbols(), N.Symbols())
	assert.Equal(t, M.BondOrders(), N.BondOrders())
	c, ok := N.Charge()
	require.True(t, ok)
	assert.Equal(t, 0.0, c)
	for i := 0; i < M.Len(); i++ {
		for k := 0; k < 3; k++ {
			assert.InDelta(t, M.Positions().At(i, k), N.Positions().At(i, k), 1e-4)
		}
	}
}

func TestMol2NoElectronicState(t *testing.T) {
	M := waterMolecule(t)
	require.NoError(t, M.BuildGraph())
	s, err := Mol2String(M, "water")
	require.NoError(t, err)
	assert.NotContains(t, s, "Charge:")

	N, err := Mol2Read(s)
	require.NoError(t, err)
	_, ok := N.Charge()
	assert.False(t, ok)
}

func TestMol2BondOrdersSurvive(t *testing.T) {
	M, err := FromAtoms([]string{"C", "O"}, mat.NewDense(2, 3, []float64{
		0, 0, 0,
		1.2, 0, 0,
	}))
	require.NoError(t, err)
	M.SetBondOrders(map[BondKey]string{Key(1, 2): "2"})
	s, err := Mol2String(M, "carbonyl")
	require.NoError(t, err)

	N, err := Mol2Read(s)
	require.NoError(t, err)
	assert.Equal(t, "2", N.BondOrders()[Key(1, 2)])
}

func TestMol2CellRoundTrip(t *testing.T) {
	M := waterMolecule(t)
	require.NoError(t, M.BuildGraph())
	require.NoError(t, M.SetCell([]float64{10, 12, 14, 90, 90, 120, 1, 1}))
	s, err := Mol2String(M, "cell")
	require.NoError(t, err)
	assert.Contains(t, s, "@<TRIPOS>CRYSIN")

	N, err := Mol2Read(s)
	require.NoError(t, err)
	require.Len(t, N.Cell(), 8)
	assert.InDelta(t, 12, N.Cell()[1], 1e-4)
	assert.InDelta(t, 120, N.Cell()[5], 1e-4)
}

func TestMol2SybylTypes(t *testing.T) {
	M := waterMolecule(t)
	require.NoError(t, M.BuildGraph())
	s, err := Mol2String(M, "water")
	require.NoError(t, err)
	// O gets its default hybridization suffix
	assert.Contains(t, s, "O.2")

	N, err := Mol2Read(s)
	require.NoError(t, err)
	assert.Equal(t, "O.2", N.AtomTypes()[0])
	assert.Equal(t, "O", N.Symbol(0))
}

func TestMol2Substructures(t *testing.T) {
	// disjoint fragments get separate residue groups
	M := waterMolecule(t)
	require.NoError(t, M.BuildGraph())
	frag := &Fragment{
		Symbols: []string{"He"},
		Coords:  mat.NewDense(1, 3, []float64{20, 20, 20}),
	}
	require.NoError(t, M.AppendFragment(frag, true))
	s, err := Mol2String(M, "mix")
	require.NoError(t, err)
	assert.Contains(t, s, "RES1")
	assert.Contains(t, s, "RES2")
	lines := strings.Split(s, "\n")
	var counts int
	for i, l := range lines {
		if strings.Contains(l, "@<TRIPOS>MOLECULE") {
			fields := strings.Fields(lines[i+2])
			require.Len(t, fields, 5)
			assert.Equal(t, "2", fields[2])
			counts++
		}
	}
	assert.Equal(t, 1, counts)
}

func TestMol2ReadRejectsBadBondIndex(t *testing.T) {
	// a bond record naming an atom past the atom count is a value
	// error, not a crash later in the graph rebuild
	s := "@<TRIPOS>MOLECULE\npair\n@<TRIPOS>ATOM\n" +
		"1 C1 0.0 0.0 0.0 C.3 1 RES1 0.0\n" +
		"2 O1 1.2 0.0 0.0 O.2 1 RES1 0.0\n" +
		"@<TRIPOS>BOND\n1 1 5 1\n"
	_, err := Mol2Read(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bond")
}

func TestMol2SubstructureNumericOrder(t *testing.T) {
	// ten disjoint components: RES2 must come before RES10
	syms := make([]string, 10)
	coords := mat.NewDense(10, 3, nil)
	for i := range syms {
		syms[i] = "He"
		coords.Set(i, 0, float64(i)*20)
	}
	M, err := FromAtoms(syms, coords)
	require.NoError(t, err)
	require.NoError(t, M.BuildGraph())
	s, err := Mol2String(M, "noble")
	require.NoError(t, err)

	idx := strings.Index(s, "@<TRIPOS>SUBSTRUCTURE")
	require.GreaterOrEqual(t, idx, 0)
	sub := s[idx:]
	assert.Less(t, strings.Index(sub, "RES2 "), strings.Index(sub, "RES10"))
}

func TestMol2ReadRejectsGarbage(t *testing.T) {
	_, err := Mol2Read("@<TRIPOS>MOLECULE\nname\n@<TRIPOS>ATOM\n1 Qq1 0 0 0 Qq 1 RES1 0\n")
	assert.Error(t, err)
	_, err = Mol2Read("no atoms here")
	assert.Error(t, err)
}
