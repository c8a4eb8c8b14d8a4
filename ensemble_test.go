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
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestYears(t *testing.T) {
	dir, err := ioutil.TempDir("", "glamcollate")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	scen := testScenario(t)
	writeYearTree(t, dir, "1981", scen)
	writeYearTree(t, dir, "1980", scen)

	// An incomplete year directory and a stray file must be skipped.
	if err := os.MkdirAll(filepath.Join(dir, "1982"), os.ModePerm); err != nil {
		t.Fatal(err)
	}
	if err := ioutil.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	years, err := Years(dir)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"1980", "1981"}; !reflect.DeepEqual(years, want) {
		t.Errorf("got %v, want %v", years, want)
	}
}

func TestCollateYears(t *testing.T) {
	dir, err := ioutil.TempDir("", "glamcollate")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	scen := testScenario(t)
	for _, year := range []string{"1980", "1981", "1982"} {
		writeYearTree(t, dir, year, scen)
	}
	stem := testStem(t, dir)

	paths, err := CollateYears([]string{"1980", "1981", "1982"}, scen, dir, stem, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{stem + "_1980.nc", stem + "_1981.nc", stem + "_1982.nc"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("got %v, want %v", paths, want)
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("missing year file %s: %v", p, err)
		}
	}
}

func TestCollateYearsFailure(t *testing.T) {
	dir, err := ioutil.TempDir("", "glamcollate")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	scen := testScenario(t)
	writeYearTree(t, dir, "1980", scen)
	writeYearTree(t, dir, "1981", scen)
	missing := filepath.Join(dir, "1981", scen.FileName("1981", "0.1", "0"))
	if err := os.Remove(missing); err != nil {
		t.Fatal(err)
	}
	stem := testStem(t, dir)

	for _, procs := range []int{1, 2} {
		_, err := CollateYears([]string{"1980", "1981"}, scen, dir, stem, procs)
		var fileErr *FileReadError
		if !errors.As(err, &fileErr) {
			t.Errorf("procs %d: got %v, want a FileReadError", procs, err)
		}
	}
}

// TestCollateSerialParallelEquivalence verifies that the number of workers
// does not influence the final series file.
func TestCollateSerialParallelEquivalence(t *testing.T) {
	dir, err := ioutil.TempDir("", "glamcollate")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	scen := testScenario(t)
	years := []string{"1980", "1981", "1982", "1983"}
	for _, year := range years {
		writeYearTree(t, dir, year, scen)
	}

	var outputs [][]byte
	for _, procs := range []int{1, 3} {
		out := filepath.Join(dir, "out", "serial")
		if procs > 1 {
			out = filepath.Join(dir, "out", "parallel")
		}
		if err := os.MkdirAll(out, os.ModePerm); err != nil {
			t.Fatal(err)
		}
		stem := filepath.Join(out, "maize_bcc-csm1-1_rcp26")
		path, err := Collate(FileCat{}, years, scen, dir, stem, procs)
		if err != nil {
			t.Fatal(err)
		}
		b, err := ioutil.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		outputs = append(outputs, b)
	}
	if !reflect.DeepEqual(outputs[0], outputs[1]) {
		t.Error("serial and parallel runs produced differing series files")
	}
}

func TestCollateNoYears(t *testing.T) {
	dir, err := ioutil.TempDir("", "glamcollate")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	scen := testScenario(t)

	_, err = Collate(FileCat{}, nil, scen, dir, testStem(t, dir), 1)
	var argErr *ArgumentError
	if !errors.As(err, &argErr) {
		t.Fatalf("got %v, want an ArgumentError", err)
	}
}
