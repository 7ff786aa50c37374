package mol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestClassifyOctahedral(t *testing.T) {
	M := octahedralComplex(t)
	geos, err := M.ClassifyMetalGeometry()
	require.NoError(t, err)
	require.Len(t, geos, 1)
	g := geos[0]
	assert.Equal(t, "Fe", g.Metal)
	assert.Equal(t, 0, g.MetalIndex)
	assert.Equal(t, "octahedral", g.GeoType)
	assert.InDelta(t, 0, g.MAELoss, 1e-9)
	assert.InDelta(t, 1, g.Confidence, 1e-9)
	require.NotEmpty(t, g.Ranking)
	assert.Equal(t, "octahedral", g.Ranking[0].GeoType)
}

func TestClassifySquarePlanar(t *testing.T) {
	d := 2.0
	M, err := FromAtoms([]string{"Pt", "N", "N", "N", "N"}, mat.NewDense(5, 3, []float64{
		0, 0, 0,
		d, 0, 0,
		-d, 0, 0,
		0, d, 0,
		0, -d, 0,
	}))
	require.NoError(t, err)
	geos, err := M.ClassifyMetalGeometry()
	require.NoError(t, err)
	require.Len(t, geos, 1)
	assert.Equal(t, "square_planar", geos[0].GeoType)
	assert.InDelta(t, 0, geos[0].MAELoss, 1e-9)
}

func TestClassifyDistortedStillMatches(t *testing.T) {
	M := octahedralComplex(t)
	// nudge one ligand off axis
	M.Positions().Set(1, 1, 0.3)
	geos, err := M.ClassifyMetalGeometry()
	require.NoError(t, err)
	g := geos[0]
	assert.Equal(t, "octahedral", g.GeoType)
	assert.Greater(t, g.MAELoss, 0.0)
	assert.Less(t, g.Confidence, 1.0)
	assert.Greater(t, g.Confidence, 0.0)
}

func TestClassifyNoMetal(t *testing.T) {
	M := waterMolecule(t)
	_, err := M.ClassifyMetalGeometry()
	assert.Error(t, err)
}

func TestClassifyMultipleCenters(t *testing.T) {
	// two independent square-planar centers far apart
	d := 2.0
	M, err := FromAtoms([]string{"Pt", "N", "N", "N", "N", "Pt", "N", "N", "N", "N"},
		mat.NewDense(10, 3, []float64{
			0, 0, 0,
			d, 0, 0,
			-d, 0, 0,
			0, d, 0,
			0, -d, 0,
			50, 50, 50,
			50 + d, 50, 50,
			50 - d, 50, 50,
			50, 50 + d, 50,
			50, 50 - d, 50,
		}))
	require.NoError(t, err)
	geos, err := M.ClassifyMetalGeometry()
	require.NoError(t, err)
	require.Len(t, geos, 2)
	assert.Equal(t, 0, geos[0].MetalIndex)
	assert.Equal(t, 5, geos[1].MetalIndex)
	assert.Equal(t, "square_planar", geos[0].GeoType)
	assert.Equal(t, "square_planar", geos[1].GeoType)
}

func TestLigandAngleSignature(t *testing.T) {
	M := octahedralComplex(t)
	require.NoError(t, M.BuildGraph())
	sig := M.LigandAngleSignature(0)
	require.Len(t, sig, 15)
	assert.InDelta(t, 180, sig[0], 1e-9)
	assert.InDelta(t, 90, sig[14], 1e-9)
}

func TestLigandAngleSignaturePadded(t *testing.T) {
	M := octahedralComplex(t)
	require.NoError(t, M.BuildGraph())
	sig, dent, err := M.LigandAngleSignaturePadded(0)
	require.NoError(t, err)
	require.Len(t, sig, 36)
	assert.Equal(t, 6, dent)
	assert.InDelta(t, 180, sig[0], 1e-9)
	// entries past the real angles stay zero
	for _, v := range sig[15:] {
		assert.Equal(t, 0.0, v)
	}
}
