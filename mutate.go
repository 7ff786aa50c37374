/*
 * mutate.go, part of molforge.
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
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Fragment is a structural piece to merge into a Molecule: typically a
// ligand during complex assembly, or any free-standing species (counter
// ion, solvent) when appended as non-coordinating.
//
// BondOrders uses the fragment's own 1-based numbering. For a
// coordinating fragment, index 1 denotes the host's first atom (the
// binding site, conventionally the metal) and index k>1 denotes the
// fragment's (k-1)-th atom. For a non-coordinating fragment, index k
// denotes the fragment's k-th atom.
type Fragment struct {
	Symbols     []string
	Types       []string
	Coords      *mat.Dense
	InitCharges []float64
	BondOrders  map[BondKey]string
	Charge      float64
	UHF         int
	XTBCharge   float64
	XTBUHF      int
	// DistConstraints maps a 0-based fragment atom index to a
	// required distance from the host's atom 0.
	DistConstraints map[int]float64
}

// remapBondOrders shifts a fragment's bond-order keys into the host's
// numbering: +natoms for a non-coordinating fragment; for a
// coordinating one, index 1 collapses onto host index 1 and the rest
// shift by natoms-1. It returns a fresh map and never mutates its
// input.
func remapBondOrders(bo map[BondKey]string, natoms int, nonCoordinating bool) map[BondKey]string {
	shift := func(k int) int {
		if nonCoordinating {
			return natoms + k
		}
		if k > 1 {
			return natoms + k - 1
		}
		return 1
	}
	out := make(map[BondKey]string, len(bo))
	for k, v := range bo {
		out[Key(shift(k[0]), shift(k[1]))] = v
	}
	return out
}

// rekeyBondOrders drops every entry referencing the removed atom
// (1-based index removed = ind+1) and shifts higher keys down by one.
// It returns a fresh map and never mutates its input.
func rekeyBondOrders(bo map[BondKey]string, ind int) map[BondKey]string {
	out := make(map[BondKey]string, len(bo))
	for k, v := range bo {
		if k[0] == ind+1 || k[1] == ind+1 {
			continue
		}
		a, b := k[0], k[1]
		if a > ind+1 {
			a--
		}
		if b > ind+1 {
			b--
		}
		out[Key(a, b)] = v
	}
	return out
}

// AppendFragment merges frag into the molecule. A coordinating
// fragment forms a covalent bond to the host's first atom, so only the
// charge is adjusted (by the fragment's net initial-charge sum): the
// spin must be re-estimated afterwards since the new bond may change
// the valence picture. A non-coordinating fragment is assumed fully
// additive and its charge, spin and tool-scoped overrides are summed
// onto the host's. The bonding graph is rebuilt from the merged
// bond-order mapping.
func (M *Molecule) AppendFragment(frag *Fragment, nonCoordinating bool) error {
	fr, fc := frag.Coords.Dims()
	if fr != len(frag.Symbols) || fc != 3 {
		return newError("AppendFragment: %d symbols but %dx%d coordinate matrix", len(frag.Symbols), fr, fc)
	}
	natoms := M.Len()
	newBO := remapBondOrders(frag.BondOrders, natoms, nonCoordinating)
	merged := make(map[BondKey]string, len(M.bondOrders)+len(newBO))
	for k, v := range M.bondOrders {
		merged[k] = v
	}
	for k, v := range newBO {
		merged[k] = v
	}
	M.bondOrders = merged

	for ind, dist := range frag.DistConstraints {
		M.Constraints[[2]int{0, natoms + ind}] = dist
	}

	M.symbols = append(M.symbols, frag.Symbols...)
	types := frag.Types
	if types == nil {
		types = frag.Symbols
	}
	M.types = append(M.types, types...)
	if frag.InitCharges != nil {
		M.initCharges = append(M.initCharges, frag.InitCharges...)
	} else {
		M.initCharges = append(M.initCharges, make([]float64, len(frag.Symbols))...)
	}
	M.coords = stackCoords(M.coords, frag.Coords)

	charge, _ := M.Charge()
	uhf, _ := M.UHF()
	xtbCharge, _ := M.XTBCharge()
	xtbUHF, _ := M.XTBUHF()
	if nonCoordinating {
		M.SetChargeSpin(charge+frag.Charge, uhf+frag.UHF)
		M.SetXTBChargeSpin(xtbCharge+frag.XTBCharge, xtbUHF+frag.XTBUHF)
	} else {
		lcs := 0.0
		if frag.InitCharges != nil {
			lcs = floats.Sum(frag.InitCharges)
		}
		M.SetChargeSpin(charge+lcs, uhf)
		c := xtbCharge + lcs
		M.xtbCharge = &c
	}
	M.GraphFromBondOrders()
	return nil
}

func stackCoords(a, b *mat.Dense) *mat.Dense {
	if a == nil {
		return mat.DenseCopyOf(b)
	}
	ar, _ := a.Dims()
	br, _ := b.Dims()
	out := mat.NewDense(ar+br, 3, nil)
	out.Slice(0, ar, 0, 3).(*mat.Dense).Copy(a)
	out.Slice(ar, ar+br, 0, 3).(*mat.Dense).Copy(b)
	return out
}

// RemoveAtom deletes the atom at 0-based index ind. The graph loses
// that row and column, bond-order entries referencing the atom are
// dropped, and all higher bond-order keys are re-indexed down by one,
// so the mapping never dangles.
func (M *Molecule) RemoveAtom(ind int) error {
	n := M.Len()
	if ind < 0 || ind >= n {
		return newError("RemoveAtom: index %d out of range (%d atoms)", ind, n)
	}
	M.symbols = append(M.symbols[:ind], M.symbols[ind+1:]...)
	M.types = append(M.types[:ind], M.types[ind+1:]...)
	M.initCharges = append(M.initCharges[:ind], M.initCharges[ind+1:]...)
	M.coords = deleteRow(M.coords, ind)
	if n == 1 {
		M.coords = nil
		M.graph = nil
		M.bondOrders = make(map[BondKey]string)
		return nil
	}
	if M.graph != nil {
		g := mat.NewSymDense(n-1, nil)
		for i, io := 0, 0; i < n; i++ {
			if i == ind {
				continue
			}
			for j, jo := i, io; j < n; j++ {
				if j == ind {
					continue
				}
				g.SetSym(io, jo, M.graph.At(i, j))
				jo++
			}
			io++
		}
		M.graph = g
	}
	M.bondOrders = rekeyBondOrders(M.bondOrders, ind)
	return nil
}

func deleteRow(a *mat.Dense, ind int) *mat.Dense {
	r, _ := a.Dims()
	if r <= 1 {
		return nil
	}
	out := mat.NewDense(r-1, 3, nil)
	for i, io := 0, 0; i < r; i++ {
		if i == ind {
			continue
		}
		out.SetRow(io, a.RawRowView(i))
		io++
	}
	return out
}

// RemoveMetals deletes every metal atom, in descending index order so
// earlier removals never invalidate later indices.
func (M *Molecule) RemoveMetals() error {
	metals := M.FindMetals()
	sort.Sort(sort.Reverse(sort.IntSlice(metals)))
	for _, i := range metals {
		if err := M.RemoveAtom(i); err != nil {
			return errDecorate(err, "RemoveMetals")
		}
	}
	return nil
}
