/*
 * molecule.go, part of molforge.
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

	"github.com/molforge/mol/ptable"
)

// BondKey identifies an unordered pair of bonded atoms. Indices are
// 1-based, following the convention of the mol2 exchange format the
// mapping originates from, and are stored sorted (Key ensures i < j).
type BondKey [2]int

// Key builds a BondKey from two 1-based atom indices in either order.
func Key(i, j int) BondKey {
	if j < i {
		i, j = j, i
	}
	return BondKey{i, j}
}

// Diagnostic records why a sanity check failed. Pairs maps a violating
// 0-based atom pair to the offending ratio or distance; Atoms maps a
// drifted atom to its minimum distance from the rest of the structure.
type Diagnostic struct {
	Cutoff       float64
	Pairs        map[[2]int]float64
	Atoms        map[int]float64
	NaNPositions bool
}

// Molecule is the central structural model: an ordered list of atoms
// with 3D positions, the bonding graph, the bond-order mapping, and the
// charge/spin state. A Molecule is exclusively owned by its caller;
// concurrent mutation is not safe.
//
// The bond-order mapping is the authoritative description of bonding
// when present: the adjacency graph can always be rebuilt from it with
// GraphFromBondOrders.
type Molecule struct {
	symbols     []string
	types       []string
	coords      *mat.Dense // Nx3, nil while empty
	initCharges []float64
	graph       *mat.SymDense // 0/1 adjacency, nil until computed
	bondOrders  map[BondKey]string
	charge      *float64
	uhf         *int
	xtbCharge   *float64
	xtbUHF      *int
	cell        []float64

	// Constraints holds metal-to-atom distance constraints keyed by
	// 0-based atom index pairs, accumulated while appending fragments.
	Constraints map[[2]int]float64

	// DistsSane is AND-reduced by the sanity checks: once false it
	// stays false until ResetSanity.
	DistsSane    bool
	SanityChecks map[string]Diagnostic

	actinidesSwapped bool
	actinides        []int
}

// New returns an empty Molecule ready to be populated by a codec or by
// AppendFragment.
func New() *Molecule {
	return &Molecule{
		bondOrders:   make(map[BondKey]string),
		Constraints:  make(map[[2]int]float64),
		DistsSane:    true,
		SanityChecks: make(map[string]Diagnostic),
	}
}

// FromAtoms builds a Molecule from element symbols and an Nx3 position
// matrix. Atom types default to the symbols. The coordinates are
// copied.
func FromAtoms(symbols []string, coords *mat.Dense) (*Molecule, error) {
	r, c := coords.Dims()
	if r != len(symbols) || c != 3 {
		return nil, newError("FromAtoms: %d symbols but %dx%d coordinate matrix", len(symbols), r, c)
	}
	M := New()
	M.symbols = append([]string{}, symbols...)
	M.types = append([]string{}, symbols...)
	M.coords = mat.DenseCopyOf(coords)
	M.initCharges = make([]float64, len(symbols))
	return M, nil
}

// Len returns the number of atoms.
func (M *Molecule) Len() int {
	return len(M.symbols)
}

// Symbol returns the element symbol of atom i. Panics if out of range.
func (M *Molecule) Symbol(i int) string {
	return M.symbols[i]
}

// Symbols returns a copy of the element symbols, in atom order.
func (M *Molecule) Symbols() []string {
	return append([]string{}, M.symbols...)
}

// AtomTypes returns a copy of the per-atom label strings.
func (M *Molecule) AtomTypes() []string {
	return append([]string{}, M.types...)
}

// SetAtomType sets the label of atom i.
func (M *Molecule) SetAtomType(i int, t string) {
	M.types[i] = t
}

// Positions returns the Nx3 coordinate matrix. The matrix is the
// molecule's own storage: callers mutating it mutate the molecule.
func (M *Molecule) Positions() *mat.Dense {
	return M.coords
}

// Position returns the position of atom i as a length-3 view into the
// molecule's storage.
func (M *Molecule) Position(i int) []float64 {
	return M.coords.RawRowView(i)
}

// Distance returns the distance in Å between atoms i and j.
func (M *Molecule) Distance(i, j int) float64 {
	a := M.coords.RawRowView(i)
	b := M.coords.RawRowView(j)
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	dz := a[2] - b[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// InitCharges returns the per-atom initial-charge annotations. The
// slice is the molecule's own storage.
func (M *Molecule) InitCharges() []float64 {
	return M.initCharges
}

// SetInitCharge sets the initial-charge annotation of atom i.
func (M *Molecule) SetInitCharge(i int, q float64) {
	M.initCharges[i] = q
}

// Graph returns the 0/1 adjacency matrix, or nil if the bonding graph
// has not been computed.
func (M *Molecule) Graph() *mat.SymDense {
	return M.graph
}

// BondOrders returns the bond-order mapping. The map is the molecule's
// own storage; use the mutation operations rather than editing it.
func (M *Molecule) BondOrders() map[BondKey]string {
	return M.bondOrders
}

// Cell returns the unit cell: empty, 6 lattice parameters, or 6
// lattice parameters plus 2 space-group integers.
func (M *Molecule) Cell() []float64 {
	return M.cell
}

// SetCell sets the unit cell. Only lengths 0, 6 and 8 are accepted.
func (M *Molecule) SetCell(cell []float64) error {
	switch len(cell) {
	case 0, 6, 8:
		M.cell = append([]float64{}, cell...)
		return nil
	}
	return newError("SetCell: unit cell must have 0, 6 or 8 entries, got %d", len(cell))
}

// Charge returns the total charge and whether it has been assigned.
// Charge and UHF are always assigned together.
func (M *Molecule) Charge() (float64, bool) {
	if M.charge == nil {
		return 0, false
	}
	return *M.charge, true
}

// UHF returns the unpaired-electron count and whether it has been
// assigned.
func (M *Molecule) UHF() (int, bool) {
	if M.uhf == nil {
		return 0, false
	}
	return *M.uhf, true
}

// XTBCharge returns the charge override scoped for the downstream
// electronic-structure tool, and whether it has been assigned.
func (M *Molecule) XTBCharge() (float64, bool) {
	if M.xtbCharge == nil {
		return 0, false
	}
	return *M.xtbCharge, true
}

// XTBUHF returns the unpaired-electron override scoped for the
// downstream electronic-structure tool, and whether it has been
// assigned.
func (M *Molecule) XTBUHF() (int, bool) {
	if M.xtbUHF == nil {
		return 0, false
	}
	return *M.xtbUHF, true
}

// SetChargeSpin assigns the total charge and unpaired-electron count.
// They form one snapshot: there is no way to assign only one of them.
func (M *Molecule) SetChargeSpin(charge float64, uhf int) {
	c, u := charge, uhf
	M.charge, M.uhf = &c, &u
}

// SetXTBChargeSpin assigns the tool-scoped charge/spin override pair.
func (M *Molecule) SetXTBChargeSpin(charge float64, uhf int) {
	c, u := charge, uhf
	M.xtbCharge, M.xtbUHF = &c, &u
}

// SetElectronicState assigns all four charge/spin quantities at once.
func (M *Molecule) SetElectronicState(charge float64, uhf int, xtbCharge float64, xtbUHF int) {
	M.SetChargeSpin(charge, uhf)
	M.SetXTBChargeSpin(xtbCharge, xtbUHF)
}

// ClearElectronicState marks charge and spin as unassigned.
func (M *Molecule) ClearElectronicState() {
	M.charge, M.uhf = nil, nil
	M.xtbCharge, M.xtbUHF = nil, nil
}

// ResetSanity clears the sanity flag and diagnostics.
func (M *Molecule) ResetSanity() {
	M.DistsSane = true
	M.SanityChecks = make(map[string]Diagnostic)
}

// FindMetals returns the indices of all metal atoms, in atom order.
func (M *Molecule) FindMetals() []int {
	metals := make([]int, 0)
	for i, s := range M.symbols {
		if ptable.IsMetal(s) {
			metals = append(metals, i)
		}
	}
	return metals
}

// FindMetal returns the index of the first metal atom. The second
// return is false when the molecule contains no metal.
func (M *Molecule) FindMetal() (int, bool) {
	metals := M.FindMetals()
	if len(metals) == 0 {
		return 0, false
	}
	return metals[0], true
}

// AtomicNumbers returns the atomic numbers of all atoms. Unknown
// symbols yield 0.
func (M *Molecule) AtomicNumbers() []int {
	nums := make([]int, len(M.symbols))
	for i, s := range M.symbols {
		nums[i] = ptable.Number(s)
	}
	return nums
}

// Masses returns the atomic masses of all atoms. A zero mass is a
// value error: downstream vibrational analysis cannot use it.
func (M *Molecule) Masses() ([]float64, error) {
	masses := make([]float64, len(M.symbols))
	for i, s := range M.symbols {
		m := ptable.Mass(s)
		if m == 0 {
			return nil, newError("Masses: zero mass for atom %d (%s)", i, s)
		}
		masses[i] = m
	}
	return masses, nil
}

// Copy returns a deep copy of the molecule.
func (M *Molecule) Copy() *Molecule {
	N := New()
	N.symbols = append([]string{}, M.symbols...)
	N.types = append([]string{}, M.types...)
	if M.coords != nil {
		N.coords = mat.DenseCopyOf(M.coords)
	}
	N.initCharges = append([]float64{}, M.initCharges...)
	if M.graph != nil {
		N.graph = mat.NewSymDense(M.Len(), nil)
		N.graph.CopySym(M.graph)
	}
	for k, v := range M.bondOrders {
		N.bondOrders[k] = v
	}
	if M.charge != nil {
		N.SetChargeSpin(*M.charge, *M.uhf)
	}
	if M.xtbCharge != nil {
		c := *M.xtbCharge
		N.xtbCharge = &c
	}
	if M.xtbUHF != nil {
		u := *M.xtbUHF
		N.xtbUHF = &u
	}
	N.cell = append([]float64{}, M.cell...)
	for k, v := range M.Constraints {
		N.Constraints[k] = v
	}
	N.DistsSane = M.DistsSane
	for k, v := range M.SanityChecks {
		N.SanityChecks[k] = v
	}
	N.actinidesSwapped = M.actinidesSwapped
	N.actinides = append([]int{}, M.actinides...)
	return N
}

// loadAtoms replaces the molecule's atoms, used by the codecs. The
// electronic state is cleared; the caller sets it afterwards when the
// format carries one.
func (M *Molecule) loadAtoms(symbols []string, coords *mat.Dense, types []string) {
	M.symbols = symbols
	if types == nil {
		types = append([]string{}, symbols...)
	}
	M.types = types
	M.coords = coords
	M.initCharges = make([]float64, len(symbols))
	M.graph = nil
	M.bondOrders = make(map[BondKey]string)
	M.ClearElectronicState()
	M.cell = nil
}
