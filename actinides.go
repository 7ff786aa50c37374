/*
 * actinides.go, part of molforge.
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
	"go.uber.org/zap"

	"github.com/molforge/mol/ptable"
)

// SwapActinides toggles every actinide atom with the lanthanide in the
// same column of the periodic table, or back. Parameter sets for
// actinides are scarce, so a structure can be generated with the
// lanthanide surrogate and the actinide restored afterwards; calling
// the operation twice is the identity. Atom labels follow the
// substitution. Molecules without actinides are left untouched.
func (M *Molecule) SwapActinides() {
	switch {
	case M.actinidesSwapped && len(M.actinides) > 0:
		logger.Debug("swapping substituted lanthanides back to actinides",
			zap.Int("atoms", len(M.actinides)))
		for _, i := range M.actinides {
			an, ok := ptable.ActinideFor(M.symbols[i])
			if !ok {
				continue
			}
			M.symbols[i] = an
			M.types[i] = an
		}
		M.actinidesSwapped = false
	default:
		M.actinides = M.actinides[:0]
		for i, s := range M.symbols {
			if ptable.IsActinide(s) {
				M.actinides = append(M.actinides, i)
			}
		}
		if len(M.actinides) == 0 {
			logger.Debug("no actinides present to swap")
			return
		}
		logger.Debug("swapping actinides to lanthanides",
			zap.Int("atoms", len(M.actinides)))
		for _, i := range M.actinides {
			ln, ok := ptable.LanthanideFor(M.symbols[i])
			if !ok {
				continue
			}
			M.symbols[i] = ln
			M.types[i] = ln
		}
		M.actinidesSwapped = true
	}
}

// ActinidesSwapped reports whether the molecule currently carries
// lanthanide surrogates in place of its actinides.
func (M *Molecule) ActinidesSwapped() bool {
	return M.actinidesSwapped
}
