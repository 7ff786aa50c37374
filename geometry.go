/*
 * geometry.go, part of molforge.
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
	"strconv"

	"github.com/molforge/mol/coordgeo"
)

// GeoRank is one entry of the full classification ranking: a candidate
// geometry and its mean absolute angle error against the observed
// coordination sphere.
type GeoRank struct {
	GeoType string
	MAELoss float64
}

// GeoClassification describes the coordination geometry of one metal
// center. Ranking lists every candidate geometry of the same
// coordination number, best first. For coordination numbers outside
// the reference catalog GeoType is the bare coordination number and
// Ranking is nil.
type GeoClassification struct {
	Metal      string
	MetalIndex int
	GeoType    string
	MAELoss    float64
	// Confidence is 1 - best/secondBest MAE: 1 means a clear match,
	// near 0 means the runner-up fits almost as well.
	Confidence float64
	Ranking    []GeoRank
}

// neighbors returns the 0-based indices bonded to atom i, in atom
// order.
func (M *Molecule) neighbors(i int) []int {
	inds := make([]int, 0)
	if M.graph == nil {
		return inds
	}
	for j := 0; j < M.Len(); j++ {
		if j != i && M.graph.At(i, j) != 0 {
			inds = append(inds, j)
		}
	}
	return inds
}

// LigandAngleSignature returns the sorted ligand-metal-ligand angle
// vector of the atoms bonded to metalInd, the same fingerprint the
// reference geometries are compared with.
func (M *Molecule) LigandAngleSignature(metalInd int) []float64 {
	neighs := M.neighbors(metalInd)
	c := M.Position(metalInd)
	vecs := make([][3]float64, len(neighs))
	for k, j := range neighs {
		p := M.Position(j)
		vecs[k] = [3]float64{p[0] - c[0], p[1] - c[1], p[2] - c[2]}
	}
	return coordgeo.AngleSignature(vecs)
}

// angleFeatureWidth is the fixed width of padded angle signatures,
// enough for nine coordinating atoms.
const angleFeatureWidth = 36

// n coordinating atoms produce n(n-1)/2 pairwise angles; the inverse
// lookup recovers denticity from an angle count.
var denticityByAngles = map[int]int{0: 1, 1: 2, 3: 3, 6: 4, 10: 5, 15: 6, 21: 7, 28: 8, 36: 9}

// LigandAngleSignaturePadded returns the angle signature of metalInd
// zero-padded to the fixed feature width, together with the denticity
// recovered from the unpadded angle count. Centers with more than nine
// coordinating atoms do not fit the fixed width.
func (M *Molecule) LigandAngleSignaturePadded(metalInd int) ([]float64, int, error) {
	sig := M.LigandAngleSignature(metalInd)
	dent, ok := denticityByAngles[len(sig)]
	if !ok {
		return nil, 0, newError("LigandAngleSignaturePadded: %d angles exceed the fixed feature width", len(sig))
	}
	padded := make([]float64, angleFeatureWidth)
	copy(padded, sig)
	return padded, dent, nil
}

func maeLoss(a, b []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	var sum float64
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}
	return sum / float64(len(a))
}

// ClassifyMetalGeometry classifies the coordination geometry of every
// metal center against the reference catalog, by mean absolute error
// between sorted ligand-metal-ligand angle vectors. The bonding graph
// is built first if absent. A molecule without metals is an error;
// centers whose coordination number exceeds the catalog are reported
// by bare coordination number.
func (M *Molecule) ClassifyMetalGeometry() ([]GeoClassification, error) {
	if M.graph == nil {
		if err := M.ensureGraph(); err != nil {
			return nil, errDecorate(err, "ClassifyMetalGeometry")
		}
	}
	metals := M.FindMetals()
	if len(metals) == 0 {
		return nil, newError("ClassifyMetalGeometry: no metal in this molecule")
	}
	out := make([]GeoClassification, 0, len(metals))
	for _, m := range metals {
		out = append(out, M.classifyCenter(m))
	}
	return out, nil
}

func (M *Molecule) classifyCenter(m int) GeoClassification {
	g := GeoClassification{Metal: M.symbols[m], MetalIndex: m}
	cn := len(M.neighbors(m))
	templates := coordgeo.ByCN(cn)
	if len(templates) == 0 {
		g.GeoType = strconv.Itoa(cn)
		return g
	}
	act := M.LigandAngleSignature(m)
	ranking := make([]GeoRank, 0, len(templates))
	for _, t := range templates {
		ranking = append(ranking, GeoRank{GeoType: t.Name, MAELoss: maeLoss(act, t.Signature())})
	}
	// insertion sort, the candidate lists are tiny
	for i := 1; i < len(ranking); i++ {
		for j := i; j > 0 && ranking[j].MAELoss < ranking[j-1].MAELoss; j-- {
			ranking[j], ranking[j-1] = ranking[j-1], ranking[j]
		}
	}
	g.GeoType = ranking[0].GeoType
	g.MAELoss = ranking[0].MAELoss
	g.Confidence = 1
	if len(ranking) > 1 {
		g.Confidence = 1 - g.MAELoss/ranking[1].MAELoss
	}
	g.Ranking = ranking
	return g
}
