/*
 * convert.go, part of molforge.
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
	"strconv"
	"strings"
)

// ConvertOptions tunes Convert's post-parse behavior. Nil pointer
// fields leave whatever the format itself carried.
type ConvertOptions struct {
	// DetectChargeSpin runs the electron-counting bootstrap after
	// parsing, overwriting any state the format carried.
	DetectChargeSpin bool
	// Estimator backs DetectChargeSpin. Nil means NopEstimator.
	Estimator ChargeEstimator
	// Explicit overrides. Charge and UHF are a pair: specifying
	// either assigns both, the missing one defaulting to the parsed
	// value or zero. Same for the tool-scoped pair.
	Charge    *float64
	UHF       *int
	XTBCharge *float64
	XTBUHF    *int
}

// A sniffer pairs a cheap structural predicate with the parser to run
// when it fires. The chain below is ordered; the first match wins and
// the order is part of the contract, since later predicates are
// deliberately loose.
type sniffer struct {
	name  string
	match func(s string) bool
	parse func(s string) (*Molecule, error)
}

var sniffers = []sniffer{
	{
		name:  "mol2 string",
		match: func(s string) bool { return strings.Contains(s, "TRIPOS") },
		parse: Mol2Read,
	},
	{
		name:  "xyz file",
		match: func(s string) bool { return strings.HasSuffix(s, ".xyz") },
		parse: XYZFileRead,
	},
	{
		name:  "rxyz file",
		match: func(s string) bool { return strings.HasSuffix(s, ".rxyz") },
		parse: RXYZFileRead,
	},
	{
		name:  "mol2 file",
		match: func(s string) bool { return strings.HasSuffix(s, ".mol2") },
		parse: Mol2FileRead,
	},
	{
		name:  "cif file",
		match: func(s string) bool { return strings.HasSuffix(s, ".cif") },
		parse: func(s string) (*Molecule, error) {
			return nil, newError("Convert: CIF input requires an external cheminformatics codec")
		},
	},
	{
		name: "rxyz string",
		match: func(s string) bool {
			return looksLikeXYZHeader(s) && strings.Contains(s, "FORCES") && strings.Contains(s, "ENERGY")
		},
		parse: RXYZReadString,
	},
	{
		name:  "xyz string",
		match: looksLikeXYZHeader,
		parse: XYZReadString,
	},
	{
		name:  "headerless xyz string",
		match: looksLikeBareAtoms,
		parse: bareAtomsRead,
	},
}

func looksLikeXYZHeader(s string) bool {
	lines := strings.Split(s, "\n")
	if len(lines) <= 3 {
		return false
	}
	head := strings.ReplaceAll(lines[0], " ", "")
	if head == "" {
		return false
	}
	for _, r := range head {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func looksLikeBareAtoms(s string) bool {
	fields := strings.Fields(strings.Split(s, "\n")[0])
	return len(fields) == 4
}

// XYZReadString parses an XYZ-format string.
func XYZReadString(s string) (*Molecule, error) {
	return XYZRead(strings.NewReader(s))
}

// RXYZReadString parses a restart-XYZ string.
func RXYZReadString(s string) (*Molecule, error) {
	return RXYZRead(strings.NewReader(s))
}

// bareAtomsRead parses a headerless list of "symbol x y z" records by
// prepending the count header.
func bareAtomsRead(s string) (*Molecule, error) {
	lines := make([]string, 0)
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	withHeader := strings.Join(append([]string{strconv.Itoa(len(lines)), ""}, lines...), "\n")
	return XYZRead(strings.NewReader(withHeader))
}

// Convert turns any supported structure representation into a
// Molecule: a mol2/xyz/rxyz string or a path to a file in one of those
// formats, distinguished by the sniffer chain. Unrecognized input is
// an error naming nothing in particular; line notations like SMILES
// need an external toolkit and are rejected explicitly.
func Convert(structure string, opts ...ConvertOptions) (*Molecule, error) {
	var o ConvertOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	for _, sn := range sniffers {
		if !sn.match(structure) {
			continue
		}
		M, err := sn.parse(structure)
		if err != nil {
			return nil, errDecorate(err, "Convert ("+sn.name+")")
		}
		if o.DetectChargeSpin {
			if err := M.DetectChargeSpin(o.Estimator); err != nil {
				return nil, errDecorate(err, "Convert")
			}
			return M, nil
		}
		applyOverrides(M, o)
		return M, nil
	}
	return nil, newError("Convert: unrecognized structure input")
}

func applyOverrides(M *Molecule, o ConvertOptions) {
	if o.Charge != nil || o.UHF != nil {
		c, _ := M.Charge()
		u, _ := M.UHF()
		if o.Charge != nil {
			c = *o.Charge
			if M.Len() > 0 {
				M.SetInitCharge(0, c)
			}
		}
		if o.UHF != nil {
			u = *o.UHF
		}
		M.SetChargeSpin(c, u)
	}
	if o.XTBCharge != nil || o.XTBUHF != nil {
		c, _ := M.XTBCharge()
		u, _ := M.XTBUHF()
		if o.XTBCharge != nil {
			c = *o.XTBCharge
		}
		if o.XTBUHF != nil {
			u = *o.XTBUHF
		}
		M.SetXTBChargeSpin(c, u)
	}
}
