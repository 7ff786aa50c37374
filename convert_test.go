package mol

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

const waterXYZ = `3
water
O 0.000 0.000 0.000
H 0.757 0.586 0.000
H -0.757 0.586 0.000
`

const waterBare = `O 0.000 0.000 0.000
H 0.757 0.586 0.000
H -0.757 0.586 0.000`

const waterRXYZ = `3
ENERGY -76.4
O 0.000 0.000 0.000
H 0.757 0.586 0.000
H -0.757 0.586 0.000
FORCES
O 0.0 0.0 0.0
`

func TestConvertXYZString(t *testing.T) {
	M, err := Convert(waterXYZ)
	require.NoError(t, err)
	assert.Equal(t, []string{"O", "H", "H"}, M.Symbols())
	_, ok := M.Charge()
	assert.False(t, ok)
}

func TestConvertBareAtoms(t *testing.T) {
	M, err := Convert(waterBare)
	require.NoError(t, err)
	assert.Equal(t, 3, M.Len())
}

func TestConvertRXYZString(t *testing.T) {
	// the FORCES/ENERGY markers win over the plain xyz sniff
	M, err := Convert(waterRXYZ)
	require.NoError(t, err)
	assert.Equal(t, []string{"O", "H", "H"}, M.Symbols())
}

func TestConvertMol2String(t *testing.T) {
	W := waterMolecule(t)
	require.NoError(t, W.BuildGraph())
	W.SetElectronicState(0, 0, 0, 0)
	s, err := Mol2String(W, "water")
	require.NoError(t, err)

	M, err := Convert(s)
	require.NoError(t, err)
	assert.Equal(t, 3, M.Len())
	assert.NotEmpty(t, M.BondOrders())
	c, ok := M.Charge()
	require.True(t, ok)
	assert.Equal(t, 0.0, c)
}

func TestConvertFileDispatch(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "w.xyz")
	W := waterMolecule(t)
	require.NoError(t, XYZFileWrite(name, W))

	M, err := Convert(name)
	require.NoError(t, err)
	assert.Equal(t, []string{"O", "H", "H"}, M.Symbols())
}

func TestConvertDetectChargeSpin(t *testing.T) {
	M, err := Convert(waterXYZ, ConvertOptions{DetectChargeSpin: true})
	require.NoError(t, err)
	c, ok := M.Charge()
	require.True(t, ok)
	assert.Equal(t, 0.0, c)
	u, _ := M.UHF()
	assert.Equal(t, 0, u)
}

func TestConvertExplicitOverrides(t *testing.T) {
	charge := -1.0
	uhf := 1
	M, err := Convert(waterXYZ, ConvertOptions{Charge: &charge, UHF: &uhf})
	require.NoError(t, err)
	c, ok := M.Charge()
	require.True(t, ok)
	assert.Equal(t, -1.0, c)
	u, _ := M.UHF()
	assert.Equal(t, 1, u)
	assert.Equal(t, -1.0, M.InitCharges()[0])
}

func TestConvertUnrecognized(t *testing.T) {
	_, err := Convert("c1ccccc1")
	assert.Error(t, err)
	_, err = Convert("structure.cif")
	assert.Error(t, err)
}

func TestXYZRoundTrip(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "w")
	W := waterMolecule(t)
	require.NoError(t, XYZFileWrite(name, W))
	M, err := XYZFileRead(name + ".xyz")
	require.NoError(t, err)
	assert.Equal(t, W.Symbols(), M.Symbols())
	for i := 0; i < W.Len(); i++ {
		for k := 0; k < 3; k++ {
			assert.InDelta(t, W.Positions().At(i, k), M.Positions().At(i, k), 1e-7)
		}
	}
}

func TestRXYZReadSkipsForces(t *testing.T) {
	M, err := RXYZReadString(waterRXYZ)
	require.NoError(t, err)
	assert.Equal(t, 3, M.Len())
}

func TestRXYZRoundTrip(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "w")
	W := waterMolecule(t)
	forces := mat.NewDense(3, 3, []float64{
		0.01, 0, 0,
		-0.005, 0, 0,
		-0.005, 0, 0,
	})
	require.NoError(t, RXYZFileWrite(name, W, -76.4, forces))

	M, err := RXYZFileRead(name + ".rxyz")
	require.NoError(t, err)
	assert.Equal(t, W.Symbols(), M.Symbols())
	for i := 0; i < W.Len(); i++ {
		for k := 0; k < 3; k++ {
			assert.InDelta(t, W.Positions().At(i, k), M.Positions().At(i, k), 1e-7)
		}
	}
}

func TestRXYZWriteValidatesForces(t *testing.T) {
	W := waterMolecule(t)
	var b strings.Builder
	err := RXYZWrite(&b, W, 0, mat.NewDense(2, 3, nil))
	assert.Error(t, err)
}
