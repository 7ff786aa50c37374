/*
 * ptable.go, part of molforge.
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

// Package ptable exposes static per-element reference data: covalent
// radii, masses, metal classification and default charge/spin for metal
// centers, plus the actinide/lanthanide substitution table. The tables
// are loaded once and are read-only; all access goes through the
// package functions.
package ptable

// Props holds the tabulated properties of one element.
type Props struct {
	Symbol      string
	Number      int     // atomic number
	Mass        float64 // standard atomic weight, u
	CovRad      float64 // single-bond covalent radius, Å (Cordero et al., DOI:10.1039/B801115J)
	Metal       bool
	HeavyMetal  bool    // lanthanide or actinide: needs f-in-core treatment downstream
	MetalCharge float64 // default formal charge when acting as a metal center
	MetalSpin   int     // default unpaired electrons for that charge state
}

// Covalent radii for the 3d metals are the high-spin values, as in the
// bonding-cutoff literature the defaults were taken from.
var elements = []Props{
	{"H", 1, 1.008, 0.31, false, false, 0, 0},
	{"He", 2, 4.003, 0.28, false, false, 0, 0},
	{"Li", 3, 6.94, 1.28, true, false, 1, 0},
	{"Be", 4, 9.012, 0.96, true, false, 2, 0},
	{"B", 5, 10.81, 0.84, false, false, 0, 0},
	{"C", 6, 12.011, 0.76, false, false, 0, 0},
	{"N", 7, 14.007, 0.71, false, false, 0, 0},
	{"O", 8, 15.999, 0.66, false, false, 0, 0},
	{"F", 9, 18.998, 0.57, false, false, 0, 0},
	{"Ne", 10, 20.180, 0.58, false, false, 0, 0},
	{"Na", 11, 22.990, 1.66, true, false, 1, 0},
	{"Mg", 12, 24.305, 1.41, true, false, 2, 0},
	{"Al", 13, 26.982, 1.21, true, false, 3, 0},
	{"Si", 14, 28.085, 1.11, false, false, 0, 0},
	{"P", 15, 30.974, 1.07, false, false, 0, 0},
	{"S", 16, 32.06, 1.05, false, false, 0, 0},
	{"Cl", 17, 35.45, 1.02, false, false, 0, 0},
	{"Ar", 18, 39.948, 1.06, false, false, 0, 0},
	{"K", 19, 39.098, 2.03, true, false, 1, 0},
	{"Ca", 20, 40.078, 1.76, true, false, 2, 0},
	{"Sc", 21, 44.956, 1.70, true, false, 3, 0},
	{"Ti", 22, 47.867, 1.60, true, false, 2, 2},
	{"V", 23, 50.942, 1.53, true, false, 2, 3},
	{"Cr", 24, 51.996, 1.39, true, false, 2, 4},
	{"Mn", 25, 54.938, 1.61, true, false, 2, 5},
	{"Fe", 26, 55.845, 1.52, true, false, 2, 4},
	{"Co", 27, 58.933, 1.50, true, false, 2, 3},
	{"Ni", 28, 58.693, 1.24, true, false, 2, 2},
	{"Cu", 29, 63.546, 1.32, true, false, 2, 1},
	{"Zn", 30, 65.38, 1.22, true, false, 2, 0},
	{"Ga", 31, 69.723, 1.22, true, false, 3, 0},
	{"Ge", 32, 72.630, 1.20, false, false, 0, 0},
	{"As", 33, 74.922, 1.19, false, false, 0, 0},
	{"Se", 34, 78.971, 1.20, false, false, 0, 0},
	{"Br", 35, 79.904, 1.20, false, false, 0, 0},
	{"Kr", 36, 83.798, 1.16, false, false, 0, 0},
	{"Rb", 37, 85.468, 2.20, true, false, 1, 0},
	{"Sr", 38, 87.62, 1.95, true, false, 2, 0},
	{"Y", 39, 88.906, 1.90, true, false, 3, 0},
	{"Zr", 40, 91.224, 1.75, true, false, 4, 0},
	{"Nb", 41, 92.906, 1.64, true, false, 5, 0},
	{"Mo", 42, 95.95, 1.54, true, false, 3, 3},
	{"Tc", 43, 98.0, 1.47, true, false, 4, 3},
	{"Ru", 44, 101.07, 1.46, true, false, 2, 0},
	{"Rh", 45, 102.906, 1.42, true, false, 3, 0},
	{"Pd", 46, 106.42, 1.39, true, false, 2, 0},
	{"Ag", 47, 107.868, 1.45, true, false, 1, 0},
	{"Cd", 48, 112.414, 1.44, true, false, 2, 0},
	{"In", 49, 114.818, 1.42, true, false, 3, 0},
	{"Sn", 50, 118.710, 1.39, true, false, 2, 0},
	{"Sb", 51, 121.760, 1.39, false, false, 0, 0},
	{"Te", 52, 127.60, 1.38, false, false, 0, 0},
	{"I", 53, 126.904, 1.39, false, false, 0, 0},
	{"Xe", 54, 131.293, 1.40, false, false, 0, 0},
	{"Cs", 55, 132.905, 2.44, true, false, 1, 0},
	{"Ba", 56, 137.327, 2.15, true, false, 2, 0},
	{"La", 57, 138.905, 2.07, true, true, 3, 0},
	{"Ce", 58, 140.116, 2.04, true, true, 3, 1},
	{"Pr", 59, 140.908, 2.03, true, true, 3, 2},
	{"Nd", 60, 144.242, 2.01, true, true, 3, 3},
	{"Pm", 61, 145.0, 1.99, true, true, 3, 4},
	{"Sm", 62, 150.36, 1.98, true, true, 3, 5},
	{"Eu", 63, 151.964, 1.98, true, true, 3, 6},
	{"Gd", 64, 157.25, 1.96, true, true, 3, 7},
	{"Tb", 65, 158.925, 1.94, true, true, 3, 6},
	{"Dy", 66, 162.500, 1.92, true, true, 3, 5},
	{"Ho", 67, 164.930, 1.92, true, true, 3, 4},
	{"Er", 68, 167.259, 1.89, true, true, 3, 3},
	{"Tm", 69, 168.934, 1.90, true, true, 3, 2},
	{"Yb", 70, 173.045, 1.87, true, true, 3, 1},
	{"Lu", 71, 174.967, 1.87, true, true, 3, 0},
	{"Hf", 72, 178.49, 1.75, true, false, 4, 0},
	{"Ta", 73, 180.948, 1.70, true, false, 5, 0},
	{"W", 74, 183.84, 1.62, true, false, 4, 2},
	{"Re", 75, 186.207, 1.51, true, false, 3, 4},
	{"Os", 76, 190.23, 1.44, true, false, 2, 0},
	{"Ir", 77, 192.217, 1.41, true, false, 3, 0},
	{"Pt", 78, 195.084, 1.36, true, false, 2, 0},
	{"Au", 79, 196.967, 1.36, true, false, 3, 0},
	{"Hg", 80, 200.592, 1.32, true, false, 2, 0},
	{"Tl", 81, 204.38, 1.45, true, false, 1, 0},
	{"Pb", 82, 207.2, 1.46, true, false, 2, 0},
	{"Bi", 83, 208.980, 1.48, true, false, 3, 0},
	{"Po", 84, 209.0, 1.40, true, false, 2, 0},
	{"At", 85, 210.0, 1.50, false, false, 0, 0},
	{"Rn", 86, 222.0, 1.50, false, false, 0, 0},
	{"Fr", 87, 223.0, 2.60, true, false, 1, 0},
	{"Ra", 88, 226.0, 2.21, true, false, 2, 0},
	{"Ac", 89, 227.0, 2.15, true, true, 3, 0},
	{"Th", 90, 232.038, 2.06, true, true, 4, 0},
	{"Pa", 91, 231.036, 2.00, true, true, 3, 2},
	{"U", 92, 238.029, 1.96, true, true, 3, 3},
	{"Np", 93, 237.0, 1.90, true, true, 3, 4},
	{"Pu", 94, 244.0, 1.87, true, true, 3, 5},
	{"Am", 95, 243.0, 1.80, true, true, 3, 6},
	{"Cm", 96, 247.0, 1.69, true, true, 3, 7},
	{"Bk", 97, 247.0, 1.68, true, true, 3, 6},
	{"Cf", 98, 251.0, 1.68, true, true, 3, 5},
	{"Es", 99, 252.0, 1.65, true, true, 3, 4},
	{"Fm", 100, 257.0, 1.67, true, true, 3, 3},
	{"Md", 101, 258.0, 1.73, true, true, 3, 2},
	{"No", 102, 259.0, 1.76, true, true, 3, 1},
	{"Lr", 103, 262.0, 1.61, true, true, 3, 0},
}

var bySymbol map[string]Props

// Lanthanide and actinide symbols in matching row order. The i-th
// actinide substitutes for the i-th lanthanide and back.
var lanthanides = []string{"La", "Ce", "Pr", "Nd", "Pm", "Sm", "Eu", "Gd",
	"Tb", "Dy", "Ho", "Er", "Tm", "Yb", "Lu"}
var actinides = []string{"Ac", "Th", "Pa", "U", "Np", "Pu", "Am", "Cm",
	"Bk", "Cf", "Es", "Fm", "Md", "No", "Lr"}

func init() {
	bySymbol = make(map[string]Props, len(elements))
	for _, e := range elements {
		bySymbol[e.Symbol] = e
	}
}

// Element returns the tabulated properties for symbol. The second
// return is false for symbols not in the table.
func Element(symbol string) (Props, bool) {
	p, ok := bySymbol[symbol]
	return p, ok
}

// KnownElement reports whether symbol appears in the table.
func KnownElement(symbol string) bool {
	_, ok := bySymbol[symbol]
	return ok
}

// Number returns the atomic number of symbol, or 0 if unknown.
func Number(symbol string) int {
	return bySymbol[symbol].Number
}

// Mass returns the atomic mass of symbol in u, or 0 if unknown.
func Mass(symbol string) float64 {
	return bySymbol[symbol].Mass
}

// CovalentRadius returns the covalent radius of symbol in Å, or 0 if
// unknown. Callers that cannot tolerate a zero radius must check
// KnownElement first.
func CovalentRadius(symbol string) float64 {
	return bySymbol[symbol].CovRad
}

// IsMetal reports whether symbol is classified as a metal.
func IsMetal(symbol string) bool {
	return bySymbol[symbol].Metal
}

// IsHeavyMetal reports whether symbol is a lanthanide or actinide,
// i.e. an element that downstream electronic-structure tools treat
// with f-in-core approximations.
func IsHeavyMetal(symbol string) bool {
	return bySymbol[symbol].HeavyMetal
}

// DefaultMetalCharge returns the default formal charge assigned to
// symbol when it acts as a metal center.
func DefaultMetalCharge(symbol string) float64 {
	return bySymbol[symbol].MetalCharge
}

// DefaultMetalSpin returns the default unpaired-electron count
// assigned to symbol when it acts as a metal center.
func DefaultMetalSpin(symbol string) int {
	return bySymbol[symbol].MetalSpin
}

// IsActinide reports whether symbol is an actinide.
func IsActinide(symbol string) bool {
	for _, s := range actinides {
		if s == symbol {
			return true
		}
	}
	return false
}

// IsLanthanide reports whether symbol is a lanthanide.
func IsLanthanide(symbol string) bool {
	for _, s := range lanthanides {
		if s == symbol {
			return true
		}
	}
	return false
}

// LanthanideFor returns the lanthanide analog used to substitute for
// the given actinide, for tooling without actinide parameters. The
// second return is false when symbol is not an actinide.
func LanthanideFor(actinide string) (string, bool) {
	for i, s := range actinides {
		if s == actinide {
			return lanthanides[i], true
		}
	}
	return "", false
}

// ActinideFor reverses LanthanideFor.
func ActinideFor(lanthanide string) (string, bool) {
	for i, s := range lanthanides {
		if s == lanthanide {
			return actinides[i], true
		}
	}
	return "", false
}
