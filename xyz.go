/*
 * xyz.go, part of molforge.
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
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/molforge/mol/ptable"
)

// XYZRead reads a molecule in XYZ format: an atom count line, a
// comment line, then one "symbol x y z" line per atom. XYZ carries no
// bonding or electronic state, so graph, bond orders, charge and spin
// all come back unset.
func XYZRead(r io.Reader) (*Molecule, error) {
	br := bufio.NewReader(r)
	line, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, newError("XYZRead: %v", err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return nil, newError("XYZRead: malformed atom count line %q", strings.TrimSpace(line))
	}
	if _, err := br.ReadString('\n'); err != nil && err != io.EOF {
		return nil, newError("XYZRead: %v", err)
	}
	symbols := make([]string, 0, n)
	coords := mat.NewDense(n, 3, nil)
	for i := 0; i < n; i++ {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, newError("XYZRead: atom %d: %v", i, err)
		}
		sym, xyz, perr := parseAtomLine(line)
		if perr != nil {
			return nil, errDecorate(perr, "XYZRead")
		}
		symbols = append(symbols, sym)
		coords.SetRow(i, xyz)
	}
	M := New()
	M.loadAtoms(symbols, coords, nil)
	return M, nil
}

// parseAtomLine parses one "symbol x y z" record.
func parseAtomLine(line string) (string, []float64, error) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return "", nil, newError("malformed atom line %q", strings.TrimSpace(line))
	}
	if !ptable.KnownElement(fields[0]) {
		return "", nil, newError("unknown element %q", fields[0])
	}
	xyz := make([]float64, 3)
	for k := 0; k < 3; k++ {
		v, err := strconv.ParseFloat(fields[k+1], 64)
		if err != nil {
			return "", nil, newError("malformed coordinate %q", fields[k+1])
		}
		xyz[k] = v
	}
	return fields[0], xyz, nil
}

// XYZFileRead reads a molecule from an XYZ file.
func XYZFileRead(name string) (*Molecule, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, newError("XYZFileRead: %v", err)
	}
	defer f.Close()
	M, err := XYZRead(f)
	if err != nil {
		return nil, errDecorate(err, "XYZFileRead "+name)
	}
	return M, nil
}

// XYZWrite writes the molecule in XYZ format.
func XYZWrite(w io.Writer, M *Molecule) error {
	if _, err := fmt.Fprintf(w, "%d\n\n", M.Len()); err != nil {
		return newError("XYZWrite: %v", err)
	}
	for i := 0; i < M.Len(); i++ {
		p := M.Position(i)
		if _, err := fmt.Fprintf(w, "%s %.8f %.8f %.8f\n", M.symbols[i], p[0], p[1], p[2]); err != nil {
			return newError("XYZWrite: %v", err)
		}
	}
	return nil
}

// XYZFileWrite writes the molecule to an XYZ file. A missing .xyz
// extension is appended.
func XYZFileWrite(name string, M *Molecule) error {
	if !strings.HasSuffix(name, ".xyz") {
		name += ".xyz"
	}
	f, err := os.Create(name)
	if err != nil {
		return newError("XYZFileWrite: %v", err)
	}
	defer f.Close()
	if err := XYZWrite(f, M); err != nil {
		return errDecorate(err, "XYZFileWrite "+name)
	}
	return nil
}
