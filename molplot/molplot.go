/*
 * molplot.go, part of molforge.
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

// Package molplot produces diagnostic plots for structures.
package molplot

import (
	"fmt"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/molforge/mol"
	"github.com/molforge/mol/ptable"
)

// BondRatioHistogram plots the distribution of bond length over
// covalent-radii sum for every bonded pair, a quick visual check of
// how strained a generated structure is: a well-behaved geometry
// clusters near 1. The plot is saved as PNG under plotname; a .png
// extension is appended when missing. The molecule must have at least
// one bond.
func BondRatioHistogram(M *mol.Molecule, plotname string) error {
	bo := M.BondOrders()
	if len(bo) == 0 {
		return fmt.Errorf("BondRatioHistogram: no bonds in molecule")
	}
	vals := make(plotter.Values, 0, len(bo))
	for k := range bo {
		i, j := k[0]-1, k[1]-1
		sum := ptable.CovalentRadius(M.Symbol(i)) + ptable.CovalentRadius(M.Symbol(j))
		if sum == 0 {
			return fmt.Errorf("BondRatioHistogram: no covalent radii for pair %s-%s", M.Symbol(i), M.Symbol(j))
		}
		vals = append(vals, M.Distance(i, j)/sum)
	}
	p := plot.New()
	p.Title.Text = "Bond length / covalent radii sum"
	p.Title.Padding = 3 * vg.Millimeter
	p.X.Label.Text = "ratio"
	p.Y.Label.Text = "bonds"
	h, err := plotter.NewHist(vals, 16)
	if err != nil {
		return err
	}
	p.Add(h)
	if !strings.HasSuffix(plotname, ".png") {
		plotname += ".png"
	}
	return p.Save(4*vg.Inch, 4*vg.Inch, plotname)
}
