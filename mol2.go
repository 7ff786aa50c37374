/*
 * mol2.go, part of molforge.
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
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/molforge/mol/ptable"
)

// mol2 is the only format in this package that round-trips the full
// structural state: positions, SYBYL atom types, bond orders, the unit
// cell, and (through a token pattern in the molecule name line) the
// charge/spin snapshot.

// chargeHeader is the token pattern carrying the electronic state on
// the molecule name line.
const chargeHeader = "%s Charge: %d Unpaired_Electrons: %d XTB_Unpaired_Electrons: %d XTB_Charge: %d\n"

// default SYBYL hybridization suffixes for the common organic atoms
var sybylDefault = map[string]string{
	"C": "3", "N": "3", "O": "2", "S": "3", "P": "3",
}

// Mol2Write writes the molecule in TRIPOS mol2 format under the given
// name. When the full charge/spin snapshot is assigned it is encoded
// on the name line; a partial snapshot is omitted entirely. The
// bonding graph is built first if absent.
func Mol2Write(w io.Writer, M *Molecule, name string) error {
	if err := M.ensureGraph(); err != nil {
		return errDecorate(err, "Mol2Write")
	}
	natoms := M.Len()
	labels, ncomp := M.ComponentLabels()

	var edges []BondKey
	for i := 0; i < natoms; i++ {
		for j := i + 1; j < natoms; j++ {
			if M.graph.At(i, j) != 0 {
				edges = append(edges, BondKey{i + 1, j + 1})
			}
		}
	}

	var b strings.Builder
	b.WriteString("@<TRIPOS>MOLECULE\n")
	charge, okC := M.Charge()
	uhf, okU := M.UHF()
	xtbCharge, okXC := M.XTBCharge()
	xtbUHF, okXU := M.XTBUHF()
	if okC && okU && okXC && okXU {
		fmt.Fprintf(&b, chargeHeader, name,
			int(math.Trunc(charge)), uhf, xtbUHF, int(math.Trunc(xtbCharge)))
	} else {
		fmt.Fprintf(&b, "%s\n", name)
	}
	fmt.Fprintf(&b, " %5d %5d %5d %5d %5d\n", natoms, len(edges), ncomp, 0, 0)
	b.WriteString("SMALL\nNoCharges\n****\nGenerated from molforge\n\n")

	b.WriteString("@<TRIPOS>ATOM\n")
	elemCount := make(map[string]int)
	for i := 0; i < natoms; i++ {
		sym := M.symbols[i]
		elemCount[sym]++
		var sybyl string
		switch {
		case M.types[i] != sym:
			sybyl = M.types[i]
		case sybylDefault[sym] != "":
			sybyl = sym + "." + sybylDefault[sym]
		default:
			sybyl = sym
		}
		p := M.Position(i)
		fmt.Fprintf(&b, "%6d %-6s %9.4f %9.4f %9.4f   %-6s%5d %-5s%8.4f\n",
			i+1, sym+strconv.Itoa(elemCount[sym]),
			p[0], p[1], p[2],
			sybyl, labels[i]+1, "RES"+strconv.Itoa(labels[i]+1), M.initCharges[i])
	}

	b.WriteString("@<TRIPOS>BOND\n")
	for n, e := range edges {
		order := "1"
		if len(M.bondOrders) > 0 {
			if o, ok := M.bondOrders[e]; ok {
				order = o
			}
		}
		fmt.Fprintf(&b, "%6d%6d%6d%5s\n", n+1, e[0], e[1], order)
	}

	b.WriteString("@<TRIPOS>SUBSTRUCTURE\n")
	groupSize := make(map[int]int)
	for _, l := range labels {
		groupSize[l]++
	}
	for l := 0; l < ncomp; l++ {
		fmt.Fprintf(&b, "%6d %-6s%7d GROUP             0 ****  ****    0  \n",
			l+1, "RES"+strconv.Itoa(l+1), groupSize[l])
	}

	if len(M.cell) == 6 || len(M.cell) == 8 {
		sg1, sg2 := 1, 1
		if len(M.cell) == 8 {
			sg1, sg2 = int(M.cell[6]), int(M.cell[7])
		}
		b.WriteString("@<TRIPOS>CRYSIN\n")
		fmt.Fprintf(&b, "%10.4f%10.4f%10.4f%10.4f%10.4f%10.4f%6d%6d\n",
			M.cell[0], M.cell[1], M.cell[2], M.cell[3], M.cell[4], M.cell[5], sg1, sg2)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return newError("Mol2Write: %v", err)
	}
	return nil
}

// Mol2String returns the molecule as a mol2 string.
func Mol2String(M *Molecule, name string) (string, error) {
	var b strings.Builder
	if err := Mol2Write(&b, M, name); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Mol2FileWrite writes the molecule to a mol2 file. A missing .mol2
// extension is appended.
func Mol2FileWrite(name string, M *Molecule) error {
	if !strings.HasSuffix(name, ".mol2") {
		name += ".mol2"
	}
	f, err := os.Create(name)
	if err != nil {
		return newError("Mol2FileWrite: %v", err)
	}
	defer f.Close()
	if err := Mol2Write(f, M, name); err != nil {
		return errDecorate(err, "Mol2FileWrite "+name)
	}
	return nil
}

var (
	mol2NameNum = regexp.MustCompile(`[0-9]+[A-Z]+`)
	mol2Num     = regexp.MustCompile(`[0-9]+`)
)

// Mol2Read parses a TRIPOS mol2 string. The element of each atom is
// recovered from the atom name column, falling back to the SYBYL type
// column; the SYBYL type is kept as the atom label when it carries a
// hybridization suffix. Bond orders, the unit cell, and the electronic
// state encoded on the name line are all restored when present; the
// graph is rebuilt from the bond records.
func Mol2Read(s string) (*Molecule, error) {
	var (
		symbols  []string
		types    []string
		rows     [][]float64
		bo       = make(map[BondKey]string)
		cell     []float64
		sawBonds bool

		readAtoms, readBonds, readCell bool

		headerFound               bool
		hCharge                   float64
		hUHF, hXTBUHF, hXTBCharge int
	)
	for _, line := range strings.Split(s, "\n") {
		if strings.Contains(line, "Charge:") && strings.Contains(line, "Unpaired_Electrons:") {
			fields := strings.Fields(line)
			if len(fields) >= 9 {
				var errs [4]error
				hCharge, errs[0] = strconv.ParseFloat(fields[2], 64)
				hUHF, errs[1] = strconv.Atoi(fields[4])
				hXTBUHF, errs[2] = strconv.Atoi(fields[6])
				hXTBCharge, errs[3] = strconv.Atoi(fields[8])
				if errs[0] == nil && errs[1] == nil && errs[2] == nil && errs[3] == nil {
					headerFound = true
				}
			}
		}
		if strings.Contains(line, "<TRIPOS>BOND") || strings.Contains(line, "<TRIPOS>UNITY_ATOM_ATTR") {
			readAtoms = false
		}
		if strings.Contains(line, "<TRIPOS>SUBSTRUCTURE") || strings.Contains(line, "<TRIPOS>UNITY_ATOM_ATTR") {
			readBonds = false
			readAtoms = false
		}
		if strings.Contains(line, "<TRIPOS>CRYSIN") {
			readBonds = false
		}
		switch {
		case readAtoms:
			fields := strings.Fields(line)
			if len(fields) < 6 {
				continue
			}
			sym1 := mol2Num.ReplaceAllString(mol2NameNum.ReplaceAllString(fields[1], ""), "")
			sybyl := fields[5]
			sym2 := strings.SplitN(sybyl, ".", 2)[0]
			typed := strings.Contains(sybyl, ".")
			var sym string
			switch {
			case ptable.KnownElement(sym1):
				sym = sym1
			case ptable.KnownElement(sym2):
				sym = sym2
			default:
				return nil, newError("Mol2Read: cannot find element for atom record %q", strings.TrimSpace(line))
			}
			x, e1 := strconv.ParseFloat(fields[2], 64)
			y, e2 := strconv.ParseFloat(fields[3], 64)
			z, e3 := strconv.ParseFloat(fields[4], 64)
			if e1 != nil || e2 != nil || e3 != nil {
				return nil, newError("Mol2Read: malformed coordinates in %q", strings.TrimSpace(line))
			}
			symbols = append(symbols, sym)
			if typed {
				types = append(types, sybyl)
			} else {
				types = append(types, sym)
			}
			rows = append(rows, []float64{x, y, z})
		case readBonds:
			fields := strings.Fields(line)
			if len(fields) < 4 {
				continue
			}
			i, e1 := strconv.Atoi(fields[1])
			j, e2 := strconv.Atoi(fields[2])
			if e1 != nil || e2 != nil {
				return nil, newError("Mol2Read: malformed bond record %q", strings.TrimSpace(line))
			}
			bo[Key(i, j)] = fields[3]
		case readCell:
			fields := strings.Fields(line)
			if len(fields) < 8 {
				continue
			}
			cell = make([]float64, 8)
			for k := 0; k < 8; k++ {
				v, err := strconv.ParseFloat(fields[k], 64)
				if err != nil {
					return nil, newError("Mol2Read: malformed cell record %q", strings.TrimSpace(line))
				}
				cell[k] = v
			}
			readCell = false
		}
		if strings.Contains(line, "<TRIPOS>ATOM") {
			readAtoms = true
		}
		if strings.Contains(line, "<TRIPOS>BOND") {
			readBonds = true
			sawBonds = true
		}
		if strings.Contains(line, "<TRIPOS>CRYSIN") {
			readCell = true
		}
	}
	if len(symbols) == 0 {
		return nil, newError("Mol2Read: no atom records found")
	}
	coords := mat.NewDense(len(rows), 3, nil)
	for i, row := range rows {
		coords.SetRow(i, row)
	}
	M := New()
	M.loadAtoms(symbols, coords, types)
	if sawBonds {
		for k := range bo {
			if k[0] < 1 || k[1] > len(symbols) {
				return nil, newError("Mol2Read: bond %d-%d references an atom outside 1..%d",
					k[0], k[1], len(symbols))
			}
		}
		M.SetBondOrders(bo)
	}
	if cell != nil {
		if err := M.SetCell(cell); err != nil {
			return nil, errDecorate(err, "Mol2Read")
		}
	}
	if headerFound {
		M.SetChargeSpin(hCharge, hUHF)
		M.SetXTBChargeSpin(float64(hXTBCharge), hXTBUHF)
	}
	return M, nil
}

// Mol2FileRead reads a molecule from a mol2 file.
func Mol2FileRead(name string) (*Molecule, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, newError("Mol2FileRead: %v", err)
	}
	M, err := Mol2Read(string(data))
	if err != nil {
		return nil, errDecorate(err, "Mol2FileRead "+name)
	}
	return M, nil
}
