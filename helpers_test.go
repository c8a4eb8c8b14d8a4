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
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testScenario returns the scenario used throughout the tests.
func testScenario(t *testing.T) Scenario {
	t.Helper()
	scen, err := NewScenario("malawi", "maize", "bcc-csm1-1", "rcp26")
	if err != nil {
		t.Fatal(err)
	}
	return scen
}

// testCells is the set of gridcells the synthetic tables hold, as
// (latitude, longitude) pairs. They span a 2x2 half-degree mesh.
var testCells = [][2]float64{
	{-13.5, 33}, {-13.5, 33.5}, {-13, 33}, {-13, 33.5},
}

// writeRawTable writes a synthetic raw table to path. val gives the value
// of data column col (0-based within the data columns) at cell c.
func writeRawTable(t *testing.T, path string, year int, cells [][2]float64, val func(col, c int) float64) {
	t.Helper()
	var b strings.Builder
	for i := 1; i <= NumColumns; i++ {
		if i > 1 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "V%d", i)
	}
	b.WriteByte('\n')
	for c, cell := range cells {
		fmt.Fprintf(&b, "%d %g %g", year, cell[0], cell[1])
		for col := 0; col < NumColumns-MetaColumns; col++ {
			fmt.Fprintf(&b, " %g", val(col, c))
		}
		b.WriteByte('\n')
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		t.Fatal(err)
	}
	if err := ioutil.WriteFile(path, []byte(b.String()), 0644); err != nil {
		t.Fatal(err)
	}
}

// cellValue gives each (production level, irrigation level, data column,
// cell) combination a distinct value so stacking order mistakes are
// visible.
func cellValue(pi, ii, col, c int) float64 {
	return float64(pi)*1e6 + float64(ii)*1e4 + float64(col)*1e2 + float64(c)
}

// writeYearTree writes the full set of raw tables for one year under
// dir/year.
func writeYearTree(t *testing.T, dir, year string, scen Scenario) {
	t.Helper()
	yr := atoiYear(t, year)
	for pi, prod := range ProdLevels {
		for ii, irr := range IrrLevels {
			path := filepath.Join(dir, year, scen.FileName(year, prod, irr))
			pi, ii := pi, ii
			writeRawTable(t, path, yr, testCells, func(col, c int) float64 {
				return cellValue(pi, ii, col, c)
			})
		}
	}
}

func atoiYear(t *testing.T, year string) int {
	t.Helper()
	var yr int
	if _, err := fmt.Sscanf(year, "%d", &yr); err != nil {
		t.Fatal(err)
	}
	return yr
}

// yearIndex computes the flat element index of a year-product array with
// the given mesh size at time 0, gridcell (i, j), production level pi and
// irrigation level ii.
func yearIndex(nlat, nlon, i, j, pi, ii int) int {
	return ((i*nlon+j)*len(ProdLevels)+pi)*len(IrrLevels) + ii
}

// testStem creates an output directory under dir and returns a file stem
// inside it.
func testStem(t *testing.T, dir string) string {
	t.Helper()
	out := filepath.Join(dir, "out")
	if err := os.MkdirAll(out, os.ModePerm); err != nil {
		t.Fatal(err)
	}
	return filepath.Join(out, "maize_bcc-csm1-1_rcp26")
}
