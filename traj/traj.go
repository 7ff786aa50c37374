/*
 * traj.go, part of molforge.
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

// Package traj implements a zstd-compressed text snapshot format for
// sequences of structures, such as the candidates produced during
// complex assembly. Frames are xyz-like records, so readers are easy
// to write in any language; z-standard keeps the files small.
package traj

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"gonum.org/v1/gonum/mat"
)

// Error is the concrete error type of this package. It carries the
// trajectory filename and a decoration trace.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("traj file %s: %s", err.filename, err.message)
}

// Decorate appends deco to the error's trace and returns the trace.
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// FileName returns the name of the trajectory file on which the error
// occurred.
func (err Error) FileName() string { return err.filename }

// Critical reports whether the error is recoverable.
func (err Error) Critical() bool { return err.critical }

const (
	uninitializedWrite = "trajectory not open for writing"
	wrongAtomCount     = "wrong number of atoms in frame"
	nilCoordinates     = "given nil coordinates"
)

// Writer writes snapshot frames.
type Writer struct {
	f         *os.File
	h         io.WriteCloser
	natoms    int
	filename  string
	writeable bool
}

// NewWriter creates a snapshot trajectory with the given per-frame
// atom count. header carries free-form key=value metadata written
// before the atom-count line; nil means no metadata.
func NewWriter(name string, natoms int, header map[string]string) (*Writer, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	h, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		f.Close()
		return nil, Error{"can't open encoder: " + err.Error(), name, []string{"NewWriter"}, true}
	}
	W := &Writer{f: f, h: h, natoms: natoms, filename: name, writeable: true}
	for k, v := range header {
		fmt.Fprintf(W.h, "%s=%s\n", k, v)
	}
	fmt.Fprintf(W.h, "** %d\n", natoms)
	return W, nil
}

// Len returns the number of atoms per frame.
func (W *Writer) Len() int { return W.natoms }

// WNext writes the next frame. symbols may be nil after the first
// frame, in which case the previous frame's symbols are assumed by
// readers; coords must be natoms x 3.
func (W *Writer) WNext(symbols []string, coords *mat.Dense) error {
	if !W.writeable {
		return Error{uninitializedWrite, W.filename, []string{"WNext"}, true}
	}
	if coords == nil {
		return Error{nilCoordinates, W.filename, []string{"WNext"}, true}
	}
	r, _ := coords.Dims()
	if r != W.natoms || (symbols != nil && len(symbols) != W.natoms) {
		return Error{wrongAtomCount, W.filename, []string{"WNext"}, true}
	}
	for i := 0; i < r; i++ {
		sym := "-"
		if symbols != nil {
			sym = symbols[i]
		}
		fmt.Fprintf(W.h, "%s %.4f %.4f %.4f\n", sym, coords.At(i, 0), coords.At(i, 1), coords.At(i, 2))
	}
	fmt.Fprintln(W.h, "*")
	return nil
}

// Close flushes and closes the trajectory. The Writer cannot be used
// afterwards. Close on a nil or closed Writer is a no-op.
func (W *Writer) Close() {
	if W == nil || !W.writeable {
		return
	}
	W.h.Close()
	W.f.Close()
	W.writeable = false
}

// Reader reads snapshot frames.
type Reader struct {
	f        *os.File
	dec      *zstd.Decoder
	h        *bufio.Reader
	natoms   int
	filename string
	symbols  []string
}

// NewReader opens a snapshot trajectory and returns the handle plus
// the metadata map from the header, which may be empty.
func NewReader(name string) (*Reader, map[string]string, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	dec, err := zstd.NewReader(f)
	if err != nil {
		f.Close()
		return nil, nil, Error{"can't open decoder: " + err.Error(), name, []string{"NewReader"}, true}
	}
	R := &Reader{f: f, dec: dec, h: bufio.NewReader(dec), filename: name, natoms: -1}
	meta := make(map[string]string)
	for {
		line, err := R.h.ReadString('\n')
		if err != nil {
			R.Close()
			return nil, nil, Error{"header truncated", name, []string{"NewReader"}, true}
		}
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "**") {
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "**")))
			if err != nil {
				R.Close()
				return nil, nil, Error{"malformed atom count line: " + line, name, []string{"NewReader"}, true}
			}
			R.natoms = n
			break
		}
		if k, v, ok := strings.Cut(line, "="); ok {
			meta[k] = v
		}
	}
	return R, meta, nil
}

// Len returns the number of atoms per frame.
func (R *Reader) Len() int { return R.natoms }

// Next reads the next frame. At the end of the trajectory it returns
// io.EOF, which is the normal termination, not a failure. Frames
// written without symbols inherit them from the last frame that had
// them.
func (R *Reader) Next() ([]string, *mat.Dense, error) {
	coords := mat.NewDense(R.natoms, 3, nil)
	symbols := make([]string, R.natoms)
	for i := 0; i < R.natoms; i++ {
		line, err := R.h.ReadString('\n')
		if err == io.EOF && i == 0 && strings.TrimSpace(line) == "" {
			return nil, nil, io.EOF
		}
		if err != nil && err != io.EOF {
			return nil, nil, Error{"read failed: " + err.Error(), R.filename, []string{"Next"}, true}
		}
		fields := strings.Fields(line)
		if len(fields) != 4 {
			return nil, nil, Error{"malformed frame line: " + strings.TrimSpace(line), R.filename, []string{"Next"}, true}
		}
		if fields[0] == "-" && R.symbols != nil {
			symbols[i] = R.symbols[i]
		} else {
			symbols[i] = fields[0]
		}
		for k := 0; k < 3; k++ {
			v, err := strconv.ParseFloat(fields[k+1], 64)
			if err != nil {
				return nil, nil, Error{"malformed coordinate: " + fields[k+1], R.filename, []string{"Next"}, true}
			}
			coords.Set(i, k, v)
		}
	}
	// frame terminator
	if line, err := R.h.ReadString('\n'); err != nil && err != io.EOF || !strings.HasPrefix(strings.TrimSpace(line), "*") {
		return nil, nil, Error{"missing frame terminator", R.filename, []string{"Next"}, true}
	}
	R.symbols = symbols
	return symbols, coords, nil
}

// Close closes the trajectory. Close on a nil Reader is a no-op.
func (R *Reader) Close() {
	if R == nil {
		return
	}
	R.dec.Close()
	R.f.Close()
}
