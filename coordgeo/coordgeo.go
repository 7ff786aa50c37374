/*
 * coordgeo.go, part of molforge.
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

// Package coordgeo enumerates idealized coordination-geometry templates
// by coordination number and computes the pairwise-angle signatures used
// to classify metal centers against them. Templates are stored as unit
// vectors from the metal center; only the angles between them matter,
// so the overall orientation of each template is arbitrary.
package coordgeo

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/combin"
)

// MaxCN is the largest coordination number with registered templates.
// Centers with more neighbors are reported as a raw count, not
// classified.
const MaxCN = 12

// Template is one idealized coordination geometry.
type Template struct {
	Name string
	// Positions of the coordinating atoms relative to the center.
	Vectors [][3]float64
}

// Signature returns the template's pairwise-angle signature.
func (t Template) Signature() []float64 {
	return AngleSignature(t.Vectors)
}

// AngleSignature computes the angles, in degrees, between every
// unordered pair of vectors (each pair once), sorted in descending
// order. Two vector sets describe the same local geometry exactly when
// their signatures match.
func AngleSignature(vecs [][3]float64) []float64 {
	if len(vecs) < 2 {
		return []float64{}
	}
	pairs := combin.Combinations(len(vecs), 2)
	angles := make([]float64, 0, len(pairs))
	for _, p := range pairs {
		angles = append(angles, angleBetween(vecs[p[0]], vecs[p[1]]))
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(angles)))
	return angles
}

func angleBetween(a, b [3]float64) float64 {
	dot := a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
	na := math.Sqrt(a[0]*a[0] + a[1]*a[1] + a[2]*a[2])
	nb := math.Sqrt(b[0]*b[0] + b[1]*b[1] + b[2]*b[2])
	cos := dot / (na * nb)
	// clamp against floating point drift
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos) * 180 / math.Pi
}

// ByCN returns the templates registered for the given coordination
// number. The returned slice is shared; callers must not modify it.
func ByCN(cn int) []Template {
	return catalog[cn]
}

var catalog map[int][]Template

func deg(a float64) float64 { return a * math.Pi / 180 }

// ring returns n unit vectors evenly spaced in the plane z=zoff scaled
// so each vector has unit length, with an optional phase in degrees.
func ring(n int, zoff, phase float64) [][3]float64 {
	r := math.Sqrt(1 - zoff*zoff)
	out := make([][3]float64, 0, n)
	for i := 0; i < n; i++ {
		a := deg(phase) + 2*math.Pi*float64(i)/float64(n)
		out = append(out, [3]float64{r * math.Cos(a), r * math.Sin(a), zoff})
	}
	return out
}

func cat(sets ...[][3]float64) [][3]float64 {
	out := make([][3]float64, 0)
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}

func init() {
	up := [][3]float64{{0, 0, 1}}
	down := [][3]float64{{0, 0, -1}}
	s3 := 1 / math.Sqrt(3)
	tetra := [][3]float64{{s3, s3, s3}, {s3, -s3, -s3}, {-s3, s3, -s3}, {-s3, -s3, s3}}
	octa := [][3]float64{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}}
	// icosahedron vertices, normalized
	phi := (1 + math.Sqrt(5)) / 2
	n := math.Sqrt(1 + phi*phi)
	ico := [][3]float64{}
	for _, s1 := range []float64{1, -1} {
		for _, s2 := range []float64{1, -1} {
			ico = append(ico,
				[3]float64{0, s1 / n, s2 * phi / n},
				[3]float64{s1 / n, s2 * phi / n, 0},
				[3]float64{s1 * phi / n, 0, s2 / n})
		}
	}

	catalog = map[int][]Template{
		1: {
			{"single", [][3]float64{{1, 0, 0}}},
		},
		2: {
			{"linear", [][3]float64{{1, 0, 0}, {-1, 0, 0}}},
			{"bent", [][3]float64{{1, 0, 0}, {math.Cos(deg(120)), math.Sin(deg(120)), 0}}},
		},
		3: {
			{"trigonal_planar", ring(3, 0, 0)},
			{"t_shaped", [][3]float64{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}}},
			{"trigonal_pyramidal", tetra[:3]},
		},
		4: {
			{"tetrahedral", tetra},
			{"square_planar", ring(4, 0, 0)},
			{"seesaw", [][3]float64{{0, 0, 1}, {0, 0, -1}, {1, 0, 0}, {math.Cos(deg(120)), math.Sin(deg(120)), 0}}},
		},
		5: {
			{"trigonal_bipyramidal", cat(ring(3, 0, 0), up, down)},
			{"square_pyramidal", cat(ring(4, 0, 0), up)},
			{"pentagonal_planar", ring(5, 0, 0)},
		},
		6: {
			{"octahedral", octa},
			{"trigonal_prismatic", cat(ring(3, 0.577, 0), ring(3, -0.577, 0))},
			{"hexagonal_planar", ring(6, 0, 0)},
		},
		7: {
			{"pentagonal_bipyramidal", cat(ring(5, 0, 0), up, down)},
			{"capped_octahedral", cat(octa, [][3]float64{{s3, s3, s3}})},
		},
		8: {
			{"cube", cat(ring(4, 0.577, 0), ring(4, -0.577, 0))},
			{"square_antiprismatic", cat(ring(4, 0.526, 0), ring(4, -0.526, 45))},
			{"dodecahedral", [][3]float64{
				{0.599, 0, 0.801}, {-0.599, 0, 0.801},
				{0, 0.599, -0.801}, {0, -0.599, -0.801},
				{0.943, 0, -0.333}, {-0.943, 0, -0.333},
				{0, 0.943, 0.333}, {0, -0.943, 0.333}}},
		},
		9: {
			{"tricapped_trigonal_prismatic", cat(ring(3, 0.577, 0), ring(3, -0.577, 0), ring(3, 0, 60))},
			{"capped_square_antiprismatic", cat(ring(4, 0.526, 0), ring(4, -0.526, 45), up)},
		},
		10: {
			{"pentagonal_antiprismatic", cat(ring(5, 0.526, 0), ring(5, -0.526, 36))},
			{"bicapped_square_antiprismatic", cat(ring(4, 0.526, 0), ring(4, -0.526, 45), up, down)},
		},
		11: {
			{"capped_pentagonal_antiprismatic", cat(ring(5, 0.526, 0), ring(5, -0.526, 36), up)},
		},
		12: {
			{"icosahedral", ico},
			{"cuboctahedral", cat(ring(4, 0, 0), ring(4, 0.707, 45), ring(4, -0.707, 45))},
		},
	}
}
