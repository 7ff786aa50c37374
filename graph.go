/*
 * graph.go, part of molforge.
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
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/combin"

	"github.com/molforge/mol/ptable"
)

// DefaultSkin is the tolerance, in Å, added to each covalent radius
// when deciding whether two atoms are bonded.
const DefaultSkin = 0.2

// GraphOptions configures bonding-graph inference.
type GraphOptions struct {
	// Skin is added to each atom's covalent radius. Zero means
	// DefaultSkin; use a small negative value for a genuinely
	// tighter cutoff.
	Skin float64
	// AllowMetalMetal keeps metal-metal edges when more than one
	// metal atom is present. By default they are suppressed.
	AllowMetalMetal bool
}

func (o GraphOptions) skin() float64 {
	if o.Skin == 0 {
		return DefaultSkin
	}
	return o.Skin
}

// BuildGraph infers the bonding graph from the atom positions: atoms i
// and j are bonded when their distance is below
// (rcov_i+skin)+(rcov_j+skin). Self-bonds never occur, and metal-metal
// bonds are suppressed when more than one metal is present unless
// opts allows them. A default bond-order mapping (order "1" per edge)
// is derived as a side effect.
//
// The only failure mode is an element symbol missing from the
// reference table; any set of known atoms, including a single one,
// yields a graph.
func (M *Molecule) BuildGraph(opts ...GraphOptions) error {
	var o GraphOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	skin := o.skin()
	n := M.Len()
	rcov := make([]float64, n)
	for i, s := range M.symbols {
		rcov[i] = ptable.CovalentRadius(s)
		if rcov[i] == 0 {
			err := newError("BuildGraph: no covalent radius for %s (atom %d)", s, i)
			err.Decorate("BuildGraph")
			return err
		}
	}
	g := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			cutoff := (rcov[i] + skin) + (rcov[j] + skin)
			if M.Distance(i, j) < cutoff {
				g.SetSym(i, j, 1)
			}
		}
	}
	metals := M.FindMetals()
	if len(metals) > 1 && !o.AllowMetalMetal {
		for _, p := range combin.Combinations(len(metals), 2) {
			g.SetSym(metals[p[0]], metals[p[1]], 0)
		}
	}
	M.graph = g
	M.BuildBondOrders(opts...)
	return nil
}

// BuildBondOrders derives the default bond-order mapping from the
// bonding graph, assigning order "1" to every edge. The graph is built
// first if absent. No bond multiplicities are inferred at this stage.
func (M *Molecule) BuildBondOrders(opts ...GraphOptions) error {
	if M.graph == nil {
		if err := M.BuildGraph(opts...); err != nil {
			return errDecorate(err, "BuildBondOrders")
		}
		return nil // BuildGraph already called us back
	}
	bo := make(map[BondKey]string)
	n := M.Len()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if M.graph.At(i, j) != 0 {
				bo[Key(i+1, j+1)] = "1"
			}
		}
	}
	M.bondOrders = bo
	return nil
}

// GraphFromBondOrders rebuilds the adjacency graph from the bond-order
// mapping, which is the authoritative bonding source when present (it
// may carry explicit orders loaded from an exchange format). Every
// mapped pair gets symmetric 1 entries and everything else is zero. An
// empty mapping leaves the graph unset.
func (M *Molecule) GraphFromBondOrders() {
	if len(M.bondOrders) == 0 {
		M.graph = nil
		return
	}
	g := mat.NewSymDense(M.Len(), nil)
	for k := range M.bondOrders {
		g.SetSym(k[0]-1, k[1]-1, 1)
	}
	M.graph = g
}

// SetBondOrders replaces the bond-order mapping and rebuilds the graph
// from it. The map is copied.
func (M *Molecule) SetBondOrders(bo map[BondKey]string) {
	M.bondOrders = make(map[BondKey]string, len(bo))
	for k, v := range bo {
		M.bondOrders[k] = v
	}
	M.GraphFromBondOrders()
}

// ensureGraph makes graph and bond orders available, preferring the
// bond-order mapping as source when it exists.
func (M *Molecule) ensureGraph() error {
	switch {
	case M.graph == nil && len(M.bondOrders) == 0:
		if err := M.BuildGraph(); err != nil {
			return err
		}
	case len(M.bondOrders) > 0:
		M.GraphFromBondOrders()
	default:
		if err := M.BuildBondOrders(); err != nil {
			return err
		}
	}
	return nil
}

// ComponentLabels returns, for each atom, the index of the connected
// component it belongs to. Components are numbered by their smallest
// atom index. Atoms with no bonds form their own components.
func (M *Molecule) ComponentLabels() ([]int, int) {
	n := M.Len()
	g := simple.NewUndirectedGraph()
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(i))
	}
	if M.graph != nil {
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if M.graph.At(i, j) != 0 {
					g.SetEdge(simple.Edge{F: simple.Node(i), T: simple.Node(j)})
				}
			}
		}
	}
	comps := topo.ConnectedComponents(g)
	// order components by smallest member
	sort.Slice(comps, func(a, b int) bool {
		return minNodeID(comps[a]) < minNodeID(comps[b])
	})
	labels := make([]int, n)
	for ci, comp := range comps {
		for _, node := range comp {
			labels[int(node.ID())] = ci
		}
	}
	return labels, len(comps)
}

// ComponentIndices returns the atom indices of the component-th
// disjoint fragment, in atom order.
func (M *Molecule) ComponentIndices(component int) []int {
	labels, _ := M.ComponentLabels()
	inds := make([]int, 0)
	for i, l := range labels {
		if l == component {
			inds = append(inds, i)
		}
	}
	return inds
}

func minNodeID(comp []graph.Node) int64 {
	min := comp[0].ID()
	for _, n := range comp[1:] {
		if n.ID() < min {
			min = n.ID()
		}
	}
	return min
}

// CanonicalLabel returns the mass-weighted graph determinant, a cheap
// identifier for the bonding topology. The graph is built first if
// absent.
func (M *Molecule) CanonicalLabel() (string, error) {
	if M.graph == nil {
		if err := M.ensureGraph(); err != nil {
			return "", errDecorate(err, "CanonicalLabel")
		}
	}
	n := M.Len()
	weights := make([]float64, n)
	for i, s := range M.symbols {
		weights[i] = ptable.Mass(s)
	}
	tmp := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				tmp.Set(i, i, weights[i])
			} else if M.graph.At(i, j) != 0 {
				// factor of 100 keeps the products in range
				tmp.Set(i, j, weights[i]*weights[j]/100.0)
			}
		}
	}
	det := mat.Det(tmp)
	if math.IsInf(det, 0) {
		tmp.Scale(1.0/100.0, tmp)
		det = mat.Det(tmp)
	}
	s := fmt.Sprintf("%v", det)
	if idx := strings.Index(s, "e+"); idx >= 0 {
		head := s[:idx]
		if len(head) > 10 {
			head = head[:10]
		}
		return head + s[idx:], nil
	}
	if len(s) > 10 {
		s = s[:10]
	}
	return s, nil
}
