package mol

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestSanityCleanStructure(t *testing.T) {
	M := waterMolecule(t)
	p := FinalSanityDefaults()
	require.NoError(t, M.GraphSanityCheck(p))
	M.DistSanityCheck(p)
	assert.True(t, M.DistsSane)
	assert.Empty(t, M.SanityChecks["Graph_Dist_Checks"].Pairs)
	assert.Empty(t, M.SanityChecks["Smallest_Dist_Checks"].Pairs)
	assert.Empty(t, M.SanityChecks["Min_Dist_Checks"].Atoms)
}

func TestSanitySingleAtomPasses(t *testing.T) {
	M, err := FromAtoms([]string{"Fe"}, mat.NewDense(1, 3, []float64{0, 0, 0}))
	require.NoError(t, err)
	p := FinalSanityDefaults()
	require.NoError(t, M.GraphSanityCheck(p))
	M.DistSanityCheck(p)
	assert.True(t, M.DistsSane)
}

func TestGraphSanityStretchedBond(t *testing.T) {
	// bond imposed at 3 A between carbons: ratio 3/1.52 ~ 1.97 > 1.45
	M, err := FromAtoms([]string{"C", "C"}, mat.NewDense(2, 3, []float64{
		0, 0, 0,
		3, 0, 0,
	}))
	require.NoError(t, err)
	M.SetBondOrders(map[BondKey]string{Key(1, 2): "1"})
	require.NoError(t, M.GraphSanityCheck(FinalSanityDefaults()))
	assert.False(t, M.DistsSane)
	diag := M.SanityChecks["Graph_Dist_Checks"]
	assert.Equal(t, 1.45, diag.Cutoff)
	assert.InDelta(t, 3/1.52, diag.Pairs[[2]int{0, 1}], 1e-9)
}

func TestDistSanityFusedAtoms(t *testing.T) {
	// two carbons at 0.5 A: 0.5 < 0.55*1.52
	M, err := FromAtoms([]string{"C", "C"}, mat.NewDense(2, 3, []float64{
		0, 0, 0,
		0.5, 0, 0,
	}))
	require.NoError(t, err)
	M.DistSanityCheck(FinalSanityDefaults())
	assert.False(t, M.DistsSane)
	assert.NotEmpty(t, M.SanityChecks["Smallest_Dist_Checks"].Pairs)
}

func TestDistSanityDriftedAtom(t *testing.T) {
	M, err := FromAtoms([]string{"O", "H", "H", "He"}, mat.NewDense(4, 3, []float64{
		0, 0, 0,
		0.757, 0.586, 0,
		-0.757, 0.586, 0,
		20, 20, 20,
	}))
	require.NoError(t, err)
	M.DistSanityCheck(FinalSanityDefaults())
	assert.False(t, M.DistsSane)
	diag := M.SanityChecks["Min_Dist_Checks"]
	assert.Contains(t, diag.Atoms, 3)
	assert.Greater(t, diag.Atoms[3], 3.0)
}

func TestSanityNaNPositions(t *testing.T) {
	M := waterMolecule(t)
	M.Positions().Set(1, 0, math.NaN())
	M.SetBondOrders(map[BondKey]string{Key(1, 2): "1", Key(1, 3): "1"})
	require.NoError(t, M.GraphSanityCheck(FinalSanityDefaults()))
	assert.False(t, M.DistsSane)
	assert.True(t, M.SanityChecks["Graph_Dist_Checks"].NaNPositions)
}

func TestSanityANDReduces(t *testing.T) {
	// once unsane, a later passing check does not flip it back
	M, err := FromAtoms([]string{"C", "C"}, mat.NewDense(2, 3, []float64{
		0, 0, 0,
		3, 0, 0,
	}))
	require.NoError(t, err)
	M.SetBondOrders(map[BondKey]string{Key(1, 2): "1"})
	require.NoError(t, M.GraphSanityCheck(FinalSanityDefaults()))
	require.False(t, M.DistsSane)
	M.DistSanityCheck(FinalSanityDefaults())
	assert.False(t, M.DistsSane)

	M.ResetSanity()
	assert.True(t, M.DistsSane)
	assert.Empty(t, M.SanityChecks)
}

func TestSanityDisabled(t *testing.T) {
	M, err := FromAtoms([]string{"C", "C"}, mat.NewDense(2, 3, []float64{
		0, 0, 0,
		3, 0, 0,
	}))
	require.NoError(t, err)
	M.SetBondOrders(map[BondKey]string{Key(1, 2): "1"})
	p := FinalSanityDefaults()
	p.Enabled = false
	require.NoError(t, M.GraphSanityCheck(p))
	M.DistSanityCheck(p)
	assert.True(t, M.DistsSane)
}

func TestMetalCovRadOverride(t *testing.T) {
	// U-O imposed bond at 4.0 A fails with the tabulated radius
	// (cutoff 1.45*2.62 = 3.80) but passes with a wider metal radius
	M, err := FromAtoms([]string{"U", "O"}, mat.NewDense(2, 3, []float64{
		0, 0, 0,
		4.0, 0, 0,
	}))
	require.NoError(t, err)
	M.SetBondOrders(map[BondKey]string{Key(1, 2): "1"})
	p := FinalSanityDefaults()
	require.NoError(t, M.GraphSanityCheck(p))
	assert.False(t, M.DistsSane)

	M.ResetSanity()
	p.MetalCovRad = 2.6
	require.NoError(t, M.GraphSanityCheck(p))
	assert.True(t, M.DistsSane)
}

func TestDistSanityDriftCutoffFromParams(t *testing.T) {
	// the same geometry passes under the looser assembly defaults
	M, err := FromAtoms([]string{"O", "H", "H", "He"}, mat.NewDense(4, 3, []float64{
		0, 0, 0,
		0.757, 0.586, 0,
		-0.757, 0.586, 0,
		0, 0, 3.5,
	}))
	require.NoError(t, err)
	M.DistSanityCheck(AssemblySanityDefaults())
	assert.True(t, M.DistsSane)

	M.ResetSanity()
	M.DistSanityCheck(FinalSanityDefaults())
	assert.False(t, M.DistsSane)
}
