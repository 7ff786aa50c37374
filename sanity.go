/*
 * sanity.go, part of molforge.
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

	"go.uber.org/zap"

	"github.com/molforge/mol/ptable"
)

// SanityParams configures the geometric sanity checks. The two
// standard parameter sets differ in strictness: assembly checks run
// while a structure is still being built up, final checks on the
// finished geometry. Failures are never errors: they are recorded on
// the molecule as a boolean plus diagnostics, so a higher-level
// regeneration loop can react without exception-style control flow.
type SanityParams struct {
	Enabled bool
	// GraphDistCutoff fails any bonded pair whose distance exceeds
	// cutoff*(sum of covalent radii).
	GraphDistCutoff float64
	// SmallestDistCutoff fails any pair closer than
	// cutoff*(sum of covalent radii): atoms fused into each other.
	SmallestDistCutoff float64
	// MinDistCutoff fails any atom whose distance to its nearest
	// neighbor exceeds this many Å: atoms that drifted away.
	MinDistCutoff float64
	// MetalCovRad, when nonzero and exactly one metal is present,
	// replaces that atom's tabulated covalent radius in both checks.
	MetalCovRad float64
}

// FinalSanityDefaults returns the strict parameter set applied to
// finished structures.
func FinalSanityDefaults() SanityParams {
	return SanityParams{
		Enabled:            true,
		GraphDistCutoff:    1.45,
		SmallestDistCutoff: 0.55,
		MinDistCutoff:      3.0,
	}
}

// AssemblySanityDefaults returns the looser parameter set applied
// between assembly steps, when the geometry is not yet relaxed.
func AssemblySanityDefaults() SanityParams {
	return SanityParams{
		Enabled:            true,
		GraphDistCutoff:    1.8,
		SmallestDistCutoff: 0.3,
		MinDistCutoff:      4.0,
	}
}

// covRadii returns the working covalent radii for the checks,
// applying the single-metal override. requireLarger restricts the
// override to values at least as large as the tabulated radius, which
// is how the graph-distance check treats it.
func (M *Molecule) covRadii(p SanityParams, requireLarger bool) []float64 {
	rcov := make([]float64, M.Len())
	for i, s := range M.symbols {
		rcov[i] = ptable.CovalentRadius(s)
	}
	if p.MetalCovRad == 0 {
		return rcov
	}
	metals := M.FindMetals()
	switch {
	case len(metals) > 1:
		logger.Debug("custom metal covalent radius is only supported for mononuclear systems, using tabulated radii",
			zap.Int("metals", len(metals)))
	case len(metals) == 1:
		m := metals[0]
		if !requireLarger || p.MetalCovRad >= rcov[m] {
			rcov[m] = p.MetalCovRad
		}
	}
	return rcov
}

func (M *Molecule) anyNaNPosition() bool {
	if M.coords == nil {
		return false
	}
	r, c := M.coords.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if math.IsNaN(M.coords.At(i, j)) {
				return true
			}
		}
	}
	return false
}

// GraphSanityCheck verifies that no bonded pair has blown up relative
// to the imposed bonding graph: a bond longer than
// GraphDistCutoff*(sum of covalent radii) marks the structure unsane.
// The scan stops at the first violation (or at any NaN position, which
// fails immediately); it is a cheap gate, not an exhaustive report.
// The result AND-reduces into DistsSane and the violation is recorded
// under "Graph_Dist_Checks".
func (M *Molecule) GraphSanityCheck(p SanityParams) error {
	if err := M.ensureGraph(); err != nil {
		return errDecorate(err, "GraphSanityCheck")
	}
	sane := M.DistsSane
	diag := Diagnostic{Pairs: make(map[[2]int]float64)}
	if p.Enabled && M.Len() > 1 {
		if M.anyNaNPosition() {
			sane = false
			diag.NaNPositions = true
		} else {
			rcov := M.covRadii(p, true)
			for k := range M.bondOrders {
				i, j := k[0]-1, k[1]-1
				sum := rcov[i] + rcov[j]
				d := M.Distance(i, j)
				if d > p.GraphDistCutoff*sum {
					sane = false
					diag.Cutoff = p.GraphDistCutoff
					diag.Pairs[[2]int{i, j}] = d / sum
					logger.Debug("graph distance long",
						zap.Int("i", i), zap.Int("j", j), zap.Float64("ratio", d/sum))
					break
				}
			}
		}
	}
	M.DistsSane = sane
	M.SanityChecks["Graph_Dist_Checks"] = diag
	return nil
}

// DistSanityCheck runs the two crowding checks over all atom pairs:
// any pair closer than SmallestDistCutoff*(sum of covalent radii)
// fails (fused atoms), and any atom whose nearest neighbor is farther
// than MinDistCutoff fails (drifted atoms). Unlike the graph check
// this scan is exhaustive. Results AND-reduce into DistsSane and are
// recorded under "Smallest_Dist_Checks" and "Min_Dist_Checks".
// Single-atom structures always pass.
func (M *Molecule) DistSanityCheck(p SanityParams) {
	sane := M.DistsSane
	smallest := Diagnostic{Pairs: make(map[[2]int]float64)}
	minDist := Diagnostic{Atoms: make(map[int]float64)}
	if p.Enabled && M.Len() > 1 {
		if M.anyNaNPosition() {
			logger.Debug("NaN in positions")
			sane = false
		} else {
			rcov := M.covRadii(p, false)
			n := M.Len()
			for i := 0; i < n; i++ {
				nearest := math.Inf(1)
				for j := 0; j < n; j++ {
					if j == i {
						continue
					}
					d := M.Distance(i, j)
					if d < nearest {
						nearest = d
					}
					if d < p.SmallestDistCutoff*(rcov[i]+rcov[j]) {
						sane = false
						smallest.Cutoff = p.SmallestDistCutoff
						smallest.Pairs[[2]int{i, j}] = d / (rcov[i] + rcov[j])
						logger.Debug("distance short",
							zap.Int("i", i), zap.Int("j", j), zap.Float64("dist", d))
					}
				}
				if nearest > p.MinDistCutoff {
					sane = false
					minDist.Cutoff = p.MinDistCutoff
					minDist.Atoms[i] = nearest
					logger.Debug("minimum distance long",
						zap.Int("atom", i), zap.Float64("dist", nearest))
				}
			}
		}
	}
	M.DistsSane = sane
	M.SanityChecks["Smallest_Dist_Checks"] = smallest
	M.SanityChecks["Min_Dist_Checks"] = minDist
}
