/*
Copyright © 2020 the GLAMCollate authors.
This file is part of GLAMCollate.

GLAMCollate is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

GLAMCollate is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with GLAMCollate.  If not, see <http://www.gnu.org/licenses/>.
*/

package glamcollate

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ctessum/cdf"
)

// A Concatenator joins array files along an appendable dimension. It
// abstracts the two black-box operations the merge step needs so that the
// external NetCDF operators can be replaced by an in-process
// implementation.
type Concatenator interface {
	// MakeRecordDim rewrites the file at in to out with the named
	// dimension marked as the appendable (record) dimension.
	MakeRecordDim(in, out, dim string) error

	// Concatenate joins the inputs, in order, along the appendable
	// dimension of the first input, writing the result to out.
	Concatenate(inputs []string, out string) error
}

// MergeYears concatenates the per-year files at paths, which must be sorted
// by year, along the time axis into <stem>.nc and deletes the inputs. The
// final path must not already exist: unlike the per-year scratch files,
// which are silently renamed on collision, the series file is the product
// of record and is never overwritten. If the concatenation fails nothing is
// deleted, leaving the scratch files on disk for inspection.
func MergeYears(cat Concatenator, paths []string, stem string) (string, error) {
	if len(paths) == 0 {
		return "", &MergeError{fmt.Errorf("no year files to merge")}
	}
	out := stem + ".nc"
	if _, err := os.Stat(out); err == nil {
		return "", &MergeError{fmt.Errorf("output file %s already exists", out)}
	}
	if err := os.MkdirAll(filepath.Dir(out), os.ModePerm); err != nil {
		return "", &MergeError{err}
	}

	recdim := strings.TrimSuffix(paths[0], ".nc") + "_recdim.nc"
	if err := cat.MakeRecordDim(paths[0], recdim, "time"); err != nil {
		return "", &MergeError{err}
	}
	inputs := append([]string{recdim}, paths[1:]...)
	if err := cat.Concatenate(inputs, out); err != nil {
		return "", &MergeError{err}
	}

	for _, p := range append([]string{recdim}, paths...) {
		if err := os.Remove(p); err != nil {
			return "", &MergeError{err}
		}
	}
	return out, nil
}

// NCO is a Concatenator backed by the external NetCDF operators ncks and
// ncrcat, which must be on the executable search path.
type NCO struct{}

// MakeRecordDim runs ncks to mark dim as the record dimension.
func (NCO) MakeRecordDim(in, out, dim string) error {
	cmd := exec.Command("ncks", "-O", "-h", "--mk_rec_dmn", dim, in, out)
	if b, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ncks: %v: %s", err, b)
	}
	return nil
}

// Concatenate runs ncrcat over the inputs.
func (NCO) Concatenate(inputs []string, out string) error {
	cmd := exec.Command("ncrcat", append(append([]string{}, inputs...), out)...)
	if b, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ncrcat: %v: %s", err, b)
	}
	return nil
}

// FileCat is an in-process Concatenator for NetCDF classic files. It
// produces the same artifacts as NCO without requiring external tooling.
type FileCat struct{}

// MakeRecordDim copies the file at in to out with the named dimension
// marked as the record dimension.
func (FileCat) MakeRecordDim(in, out, dim string) error {
	fin, nin, err := openNCF(in)
	if err != nil {
		return err
	}
	defer fin.Close()

	h, err := cloneHeader(nin.Header, dim)
	if err != nil {
		return err
	}
	fout, err := os.Create(out)
	if err != nil {
		return err
	}
	defer fout.Close()
	nout, err := cdf.Create(fout, h)
	if err != nil {
		return fmt.Errorf("creating %s: %v", out, err)
	}
	for _, v := range nin.Header.Variables() {
		buf, err := readVar(fin, nin, v)
		if err != nil {
			return err
		}
		if err := writeVarAt(nout, v, 0, buf); err != nil {
			return err
		}
	}
	return cdf.UpdateNumRecs(fout)
}

// Concatenate joins the inputs along the record dimension of the first
// input. The inputs must hold the same variables on consistent meshes; the
// later inputs may have the record dimension as an ordinary fixed
// dimension.
func (FileCat) Concatenate(inputs []string, out string) error {
	if len(inputs) == 0 {
		return fmt.Errorf("no input files to concatenate")
	}
	ffirst, nfirst, err := openNCF(inputs[0])
	if err != nil {
		return err
	}
	defer ffirst.Close()
	recDim, err := recordDim(nfirst.Header)
	if err != nil {
		return fmt.Errorf("%s: %v", inputs[0], err)
	}

	h, err := cloneHeader(nfirst.Header, recDim)
	if err != nil {
		return err
	}
	fout, err := os.Create(out)
	if err != nil {
		return err
	}
	defer fout.Close()
	nout, err := cdf.Create(fout, h)
	if err != nil {
		return fmt.Errorf("creating %s: %v", out, err)
	}

	// Fixed variables come from the first input only.
	for _, v := range nfirst.Header.Variables() {
		if nout.Header.IsRecordVariable(v) {
			continue
		}
		buf, err := readVar(ffirst, nfirst, v)
		if err != nil {
			return err
		}
		if err := writeVarAt(nout, v, 0, buf); err != nil {
			return err
		}
	}

	// Record variables are appended input by input.
	rec := 0
	for _, in := range inputs {
		fin, nin, err := openNCF(in)
		if err != nil {
			return err
		}
		n := 0
		for _, v := range nout.Header.Variables() {
			if !nout.Header.IsRecordVariable(v) {
				continue
			}
			buf, err := readVar(fin, nin, v)
			if err != nil {
				fin.Close()
				return err
			}
			if n, err = records(fin, nin, v); err != nil {
				fin.Close()
				return err
			}
			if err := writeVarAt(nout, v, rec, buf); err != nil {
				fin.Close()
				return err
			}
		}
		fin.Close()
		rec += n
	}
	return cdf.UpdateNumRecs(fout)
}

func openNCF(path string) (*os.File, *cdf.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	nf, err := cdf.Open(f)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("opening %s: %v", path, err)
	}
	return f, nf, nil
}

// recordDim returns the name of the record dimension of h.
func recordDim(h *cdf.Header) (string, error) {
	dims := h.Dimensions("")
	for i, l := range h.Lengths("") {
		if l == 0 {
			return dims[i], nil
		}
	}
	return "", fmt.Errorf("file has no record dimension")
}

// cloneHeader builds a header with the same dimensions, attributes and
// variables as h, with the named dimension as the record dimension.
func cloneHeader(h *cdf.Header, recDim string) (*cdf.Header, error) {
	dims := h.Dimensions("")
	lengths := h.Lengths("")
	found := false
	for i, d := range dims {
		if d == recDim {
			lengths[i] = 0
			found = true
		}
	}
	if !found {
		return nil, fmt.Errorf("no dimension named %q to mark as the record dimension", recDim)
	}
	o := cdf.NewHeader(dims, lengths)
	for _, a := range h.Attributes("") {
		o.AddAttribute("", a, h.GetAttribute("", a))
	}
	for _, v := range h.Variables() {
		o.AddVariable(v, h.Dimensions(v), h.ZeroValue(v, 1))
		for _, a := range h.Attributes(v) {
			o.AddAttribute(v, a, h.GetAttribute(v, a))
		}
	}
	o.Define()
	for _, err := range o.Check() {
		return nil, fmt.Errorf("building record-dimension header: %v", err)
	}
	return o, nil
}

// records returns the length of variable v's outermost dimension in nf,
// resolving the record dimension against the file size.
func records(f *os.File, nf *cdf.File, v string) (int, error) {
	lengths := nf.Header.Lengths(v)
	if len(lengths) == 0 {
		return 0, fmt.Errorf("variable %s has no dimensions", v)
	}
	if lengths[0] > 0 {
		return lengths[0], nil
	}
	fi, err := f.Stat()
	if err != nil {
		return 0, err
	}
	return int(nf.Header.NumRecs(fi.Size())), nil
}

// readVar reads the full contents of variable v from nf.
func readVar(f *os.File, nf *cdf.File, v string) (interface{}, error) {
	lengths := nf.Header.Lengths(v)
	nrec, err := records(f, nf, v)
	if err != nil {
		return nil, err
	}
	end := make([]int, len(lengths))
	begin := make([]int, len(lengths))
	end[0] = nrec
	n := nrec
	for i, l := range lengths[1:] {
		end[i+1] = l
		n *= l
	}
	buf := nf.Header.ZeroValue(v, n)
	r := nf.Reader(v, begin, end)
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("reading variable %s: %v", v, err)
	}
	return buf, nil
}

// writeVarAt writes buf to variable v of nf starting at record rec. The
// number of records written is inferred from the buffer length.
func writeVarAt(nf *cdf.File, v string, rec int, buf interface{}) error {
	lengths := nf.Header.Lengths(v)
	perRec := 1
	for _, l := range lengths[1:] {
		perRec *= l
	}
	n := bufLen(buf)
	begin := make([]int, len(lengths))
	end := make([]int, len(lengths))
	begin[0] = rec
	end[0] = rec + n/perRec
	copy(end[1:], lengths[1:])
	w := nf.Writer(v, begin, end)
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("writing variable %s: %v", v, err)
	}
	return nil
}

func bufLen(buf interface{}) int {
	switch b := buf.(type) {
	case []uint8:
		return len(b)
	case []int16:
		return len(b)
	case []int32:
		return len(b)
	case []float32:
		return len(b)
	case []float64:
		return len(b)
	case string:
		return len(b)
	}
	panic("unsupported variable data type")
}

// NextFreePath returns the next free path in a sequentially numbered set of
// files. pattern must contain a single %d verb; given pre-existing files
// for 1..N-1 the path for N is returned. The number of existence checks is
// logarithmic in the chosen index: an exponential probe finds an upper
// bound and a binary search narrows the boundary.
func NextFreePath(pattern string) string {
	i := 1
	for pathExists(fmt.Sprintf(pattern, i)) {
		i *= 2
	}
	// The first free index lies in (i/2, i].
	a, b := i/2, i
	for a+1 < b {
		c := (a + b) / 2
		if pathExists(fmt.Sprintf(pattern, c)) {
			a = c
		} else {
			b = c
		}
	}
	return fmt.Sprintf(pattern, b)
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
