/*
 * rxyz.go, part of molforge.
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

// RXYZRead reads the restart-XYZ variant: "symbol x y z" records mixed
// with energy annotations, terminated by a FORCES section which is
// ignored. Any line that is not a 4-field atom record is skipped. Like
// plain XYZ the format carries no bonding or electronic state.
func RXYZRead(r io.Reader) (*Molecule, error) {
	scanner := bufio.NewScanner(r)
	symbols := make([]string, 0)
	rows := make([][]float64, 0)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, "FORCES") {
			break
		}
		fields := strings.Fields(line)
		if len(fields) != 4 {
			continue
		}
		x, e1 := strconv.ParseFloat(fields[1], 64)
		y, e2 := strconv.ParseFloat(fields[2], 64)
		z, e3 := strconv.ParseFloat(fields[3], 64)
		if e1 != nil || e2 != nil || e3 != nil {
			continue
		}
		if !ptable.KnownElement(fields[0]) {
			return nil, newError("RXYZRead: unknown element %q", fields[0])
		}
		symbols = append(symbols, fields[0])
		rows = append(rows, []float64{x, y, z})
	}
	if err := scanner.Err(); err != nil {
		return nil, newError("RXYZRead: %v", err)
	}
	if len(symbols) == 0 {
		return nil, newError("RXYZRead: no atom records found")
	}
	coords := mat.NewDense(len(rows), 3, nil)
	for i, row := range rows {
		coords.SetRow(i, row)
	}
	M := New()
	M.loadAtoms(symbols, coords, nil)
	return M, nil
}

// RXYZWrite writes the molecule as restart-XYZ: an atom count line, an
// ENERGY annotation, the atom records, and a FORCES section. A nil
// forces matrix leaves the section empty; otherwise it must be Nx3
// with one row per atom.
func RXYZWrite(w io.Writer, M *Molecule, energy float64, forces *mat.Dense) error {
	if forces != nil {
		r, c := forces.Dims()
		if r != M.Len() || c != 3 {
			return newError("RXYZWrite: forces are %dx%d, want %dx3", r, c, M.Len())
		}
	}
	if _, err := fmt.Fprintf(w, "%d\nENERGY %.8f\n", M.Len(), energy); err != nil {
		return newError("RXYZWrite: %v", err)
	}
	for i := 0; i < M.Len(); i++ {
		p := M.Position(i)
		if _, err := fmt.Fprintf(w, "%s %.8f %.8f %.8f\n", M.symbols[i], p[0], p[1], p[2]); err != nil {
			return newError("RXYZWrite: %v", err)
		}
	}
	if _, err := fmt.Fprintln(w, "FORCES"); err != nil {
		return newError("RXYZWrite: %v", err)
	}
	if forces == nil {
		return nil
	}
	for i := 0; i < M.Len(); i++ {
		if _, err := fmt.Fprintf(w, "%s %.8f %.8f %.8f\n", M.symbols[i], forces.At(i, 0), forces.At(i, 1), forces.At(i, 2)); err != nil {
			return newError("RXYZWrite: %v", err)
		}
	}
	return nil
}

// RXYZFileWrite writes the molecule to a restart-XYZ file. A missing
// .rxyz extension is appended.
func RXYZFileWrite(name string, M *Molecule, energy float64, forces *mat.Dense) error {
	if !strings.HasSuffix(name, ".rxyz") {
		name += ".rxyz"
	}
	f, err := os.Create(name)
	if err != nil {
		return newError("RXYZFileWrite: %v", err)
	}
	defer f.Close()
	if err := RXYZWrite(f, M, energy, forces); err != nil {
		return errDecorate(err, "RXYZFileWrite "+name)
	}
	return nil
}

// RXYZFileRead reads a molecule from a restart-XYZ file.
func RXYZFileRead(name string) (*Molecule, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, newError("RXYZFileRead: %v", err)
	}
	defer f.Close()
	M, err := RXYZRead(f)
	if err != nil {
		return nil, errDecorate(err, "RXYZFileRead "+name)
	}
	return M, nil
}
