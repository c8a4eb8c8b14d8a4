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

func TestAssembleYear(t *testing.T) {
	dir, err := ioutil.TempDir("", "glamcollate")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	scen := testScenario(t)
	writeYearTree(t, dir, "1980", scen)
	stem := testStem(t, dir)

	path, err := AssembleYear("1980", scen, dir, stem)
	if err != nil {
		t.Fatal(err)
	}
	if want := stem + "_1980.nc"; path != want {
		t.Fatalf("output path: got %s, want %s", path, want)
	}

	f, nf, err := openNCF(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	nlat, nlon := 2, 2
	wantShape := []int{1, nlat, nlon, len(ProdLevels), len(IrrLevels), 1, 1, 1}
	if got := nf.Header.Lengths("yield"); !reflect.DeepEqual(got, wantShape) {
		t.Fatalf("yield shape: got %v, want %v", got, wantShape)
	}

	// The production and irrigation axes must follow the fixed level list
	// order, so their coordinates are monotonically increasing.
	prods, err := readVar(f, nf, "prod_lev")
	if err != nil {
		t.Fatal(err)
	}
	wantProds := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1}
	if !reflect.DeepEqual(prods.([]float64), wantProds) {
		t.Errorf("prod_lev coordinates: got %v, want %v", prods, wantProds)
	}
	irrs, err := readVar(f, nf, "irr_lev")
	if err != nil {
		t.Fatal(err)
	}
	wantIrrs := []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1, 2}
	if !reflect.DeepEqual(irrs.([]float64), wantIrrs) {
		t.Errorf("irr_lev coordinates: got %v, want %v", irrs, wantIrrs)
	}

	times, err := readVar(f, nf, "time")
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{1980}; !reflect.DeepEqual(times.([]float64), want) {
		t.Errorf("time coordinate: got %v, want %v", times, want)
	}

	// Spot-check that slices along the stacked axes hold the data of the
	// corresponding raw tables. yield is data column 4 (V8).
	yield, err := readVar(f, nf, "yield")
	if err != nil {
		t.Fatal(err)
	}
	vals := yield.([]float64)
	for _, probe := range []struct{ i, j, pi, ii, c int }{
		{0, 0, 0, 0, 0},
		{0, 1, 3, 5, 1},
		{1, 1, 9, 11, 3},
	} {
		got := vals[yearIndex(nlat, nlon, probe.i, probe.j, probe.pi, probe.ii)]
		if want := cellValue(probe.pi, probe.ii, 4, probe.c); got != want {
			t.Errorf("yield at (%d,%d) prod %d irr %d: got %g, want %g",
				probe.i, probe.j, probe.pi, probe.ii, got, want)
		}
	}
}

func TestAssembleYearNameCollision(t *testing.T) {
	dir, err := ioutil.TempDir("", "glamcollate")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	scen := testScenario(t)
	writeYearTree(t, dir, "1980", scen)
	stem := testStem(t, dir)

	// Occupy the preferred name; the year must not overwrite it.
	if err := ioutil.WriteFile(stem+"_1980.nc", nil, 0644); err != nil {
		t.Fatal(err)
	}
	path, err := AssembleYear("1980", scen, dir, stem)
	if err != nil {
		t.Fatal(err)
	}
	if want := stem + "_1980_1.nc"; path != want {
		t.Fatalf("output path: got %s, want %s", path, want)
	}
	fi, err := os.Stat(stem + "_1980.nc")
	if err != nil {
		t.Fatal(err)
	}
	if fi.Size() != 0 {
		t.Error("pre-existing year file was overwritten")
	}
}

func TestAssembleYearMissingTable(t *testing.T) {
	dir, err := ioutil.TempDir("", "glamcollate")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	scen := testScenario(t)
	writeYearTree(t, dir, "1980", scen)
	stem := testStem(t, dir)

	missing := filepath.Join(dir, "1980", scen.FileName("1980", "0.7", "0.4"))
	if err := os.Remove(missing); err != nil {
		t.Fatal(err)
	}

	_, err = AssembleYear("1980", scen, dir, stem)
	var fileErr *FileReadError
	if !errors.As(err, &fileErr) {
		t.Fatalf("got %v, want a FileReadError", err)
	}
	// A failed year must not leave a partial product behind.
	if _, err := os.Stat(stem + "_1980.nc"); !os.IsNotExist(err) {
		t.Error("partial year file written despite failure")
	}
}
