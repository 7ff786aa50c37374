/*
 * vibrations.go, part of molforge.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
 * GNU General Public License for more details.
 */

package mol

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// ModeType selects the scaling of the returned normal modes.
type ModeType string

const (
	// ModeDirect returns the unitless eigenvectors of the
	// mass-weighted Hessian.
	ModeDirect ModeType = "direct_eigen_vectors"
	// ModeMassWeighted divides each eigenvector component by
	// sqrt(mass); displacing along such a mode samples the classical
	// turning points uniformly.
	ModeMassWeighted ModeType = "mass_weighted_unnormalized"
	// ModeNormalized renormalizes the mass-weighted modes to unit
	// length.
	ModeNormalized ModeType = "mass_weighted_normalized"
)

// physical constants, SI
const (
	hbarSI = 1.054571817e-34   // J s
	eSI    = 1.602176634e-19   // C
	amuSI  = 1.66053906660e-27 // kg
	invCm  = 1.239841984e-4    // eV per cm^-1
)

// sqrt(eV/Å^2/amu) to eV
var freqConversion = hbarSI * 1e10 / math.Sqrt(eSI*amuSI)

// VibrationResult holds the harmonic analysis of one Hessian. All
// slices have 3N entries in ascending eigenvalue order. Imaginary
// modes are reported with negative energies and frequencies.
type VibrationResult struct {
	// Energies of the modes in eV.
	Energies []float64
	// Frequencies of the modes in cm^-1.
	Frequencies []float64
	// ForceConstants in eV/Å^2.
	ForceConstants []float64
	// ReducedMasses in amu.
	ReducedMasses []float64
	// Modes holds one Nx3 displacement matrix per mode, scaled
	// according to the requested ModeType.
	Modes []*mat.Dense
}

// VibrationalAnalysis diagonalizes the mass-weighted Hessian and
// returns mode energies, frequencies, force constants, reduced masses
// and displacement vectors. hessian is the 3Nx3N second-derivative
// matrix in eV/Å^2, row/column order (atom0 x,y,z, atom1 x,y,z, ...);
// small asymmetries are averaged away. A zero atomic mass or an
// unknown mode type is a value error. The routine is purely numeric
// and independent of the bonding graph.
func (M *Molecule) VibrationalAnalysis(hessian *mat.Dense, modeType ModeType) (*VibrationResult, error) {
	switch modeType {
	case ModeDirect, ModeMassWeighted, ModeNormalized:
	default:
		return nil, newError("VibrationalAnalysis: unknown mode type %q", modeType)
	}
	n := M.Len()
	dim := 3 * n
	if r, c := hessian.Dims(); r != dim || c != dim {
		return nil, newError("VibrationalAnalysis: hessian is %dx%d, want %dx%d", r, c, dim, dim)
	}
	masses, err := M.Masses()
	if err != nil {
		return nil, errDecorate(err, "VibrationalAnalysis")
	}
	weights := make([]float64, dim)
	for i, m := range masses {
		w := 1 / math.Sqrt(m)
		weights[3*i], weights[3*i+1], weights[3*i+2] = w, w, w
	}
	mw := mat.NewSymDense(dim, nil)
	for i := 0; i < dim; i++ {
		for j := i; j < dim; j++ {
			h := (hessian.At(i, j) + hessian.At(j, i)) / 2
			mw.SetSym(i, j, h*weights[i]*weights[j])
		}
	}
	var eig mat.EigenSym
	if !eig.Factorize(mw, true) {
		return nil, newError("VibrationalAnalysis: eigendecomposition failed")
	}
	vals := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	res := &VibrationResult{
		Energies:       make([]float64, dim),
		Frequencies:    make([]float64, dim),
		ForceConstants: make([]float64, dim),
		ReducedMasses:  make([]float64, dim),
		Modes:          make([]*mat.Dense, dim),
	}
	for k := 0; k < dim; k++ {
		lambda := vals[k]
		e := freqConversion * math.Sqrt(math.Abs(lambda))
		if lambda < 0 {
			e = -e
		}
		res.Energies[k] = e
		res.Frequencies[k] = e / invCm

		mwCol := make([]float64, dim)
		mdCol := make([]float64, dim)
		var norm2 float64
		for i := 0; i < dim; i++ {
			mwCol[i] = vecs.At(i, k)
			mdCol[i] = mwCol[i] * weights[i]
			norm2 += mdCol[i] * mdCol[i]
		}
		rmass := 1 / norm2
		res.ReducedMasses[k] = rmass
		res.ForceConstants[k] = lambda * rmass

		var src []float64
		switch modeType {
		case ModeDirect:
			src = mwCol
		case ModeMassWeighted:
			src = mdCol
		case ModeNormalized:
			nf := math.Sqrt(rmass)
			src = make([]float64, dim)
			for i := range mdCol {
				src[i] = mdCol[i] * nf
			}
		}
		res.Modes[k] = mat.NewDense(n, 3, src)
	}
	return res, nil
}
