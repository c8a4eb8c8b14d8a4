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
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ctessum/sparse"
	"github.com/gonum/floats"
)

const (
	// GridRes is the spatial resolution of the raw data [degrees].
	GridRes = 0.5

	// FillValue marks gridcells no raw table row was observed for.
	FillValue = -99.0
)

// A Record is one row of a raw table: a single gridcell's variable values
// for a fixed year, production level and irrigation level.
type Record struct {
	Year     int
	Lat, Lon float64
	// Values holds the data-variable columns, in table order.
	Values []float64
}

// A Table is the parsed contents of one raw table.
type Table struct {
	Path    string
	Records []Record
}

// ReadTable parses the space-delimited ASCII raw table at path. The table
// must have a header row and NumColumns columns. Any read or parse problem
// results in a FileReadError.
func ReadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileReadError{Path: path, Err: err}
	}
	defer f.Close()

	t := &Table{Path: path}
	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return nil, &FileReadError{Path: path, Err: fmt.Errorf("missing header row")}
	}
	line := 1
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != NumColumns {
			return nil, &FileReadError{Path: path,
				Err: fmt.Errorf("line %d: expected %d columns but found %d", line, NumColumns, len(fields))}
		}
		vals := make([]float64, NumColumns)
		for i, field := range fields {
			if vals[i], err = strconv.ParseFloat(field, 64); err != nil {
				return nil, &FileReadError{Path: path,
					Err: fmt.Errorf("line %d: parsing column V%d: %v", line, i+1, err)}
			}
		}
		t.Records = append(t.Records, Record{
			Year:   int(vals[0]),
			Lat:    vals[1],
			Lon:    vals[2],
			Values: vals[MetaColumns:],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, &FileReadError{Path: path, Err: err}
	}
	if len(t.Records) == 0 {
		return nil, &FileReadError{Path: path, Err: fmt.Errorf("table has no data rows")}
	}
	return t, nil
}

// A Grid holds the assembled arrays for one raw table: one dense array per
// data variable, all sharing the same coordinates. Each array has shape
// [time, latitude, longitude, prod_lev, irr_lev, rcp, model, crop], with
// every axis except latitude and longitude of length one.
type Grid struct {
	Year       int
	Lats, Lons []float64
	Prod, Irr  float64
	Scenario   Scenario

	// Data holds one array per data variable, in table column order.
	Data []*sparse.DenseArray
}

// AssembleGrid reads the raw table at path and maps its rows onto a dense
// regular latitude/longitude mesh, producing one array per data variable.
// The mesh bounds are derived from the observed coordinate extremes of this
// table at GridRes resolution; cells no row maps onto keep the FillValue
// marker. A table mixing rows from more than one year is reported as a
// warning and assembled under the first observed year.
func AssembleGrid(path string, scen Scenario) (*Grid, error) {
	t, err := ReadTable(path)
	if err != nil {
		return nil, err
	}

	g := &Grid{Year: t.Records[0].Year, Scenario: scen}
	for _, rec := range t.Records {
		if rec.Year != g.Year {
			log.Printf("glamcollate: warning: multiple years read within file %s; using year %d",
				filepath.Base(path), g.Year)
			break
		}
	}

	if g.Prod, g.Irr, err = levelsFromFileName(path); err != nil {
		return nil, err
	}

	lat := make([]float64, len(t.Records))
	lon := make([]float64, len(t.Records))
	for i, rec := range t.Records {
		lat[i] = rec.Lat
		lon[i] = rec.Lon
	}
	s, n := floats.Min(lat), floats.Max(lat)
	w, e := floats.Min(lon), floats.Max(lon)
	nlat := round((n-s)/GridRes) + 1
	nlon := round((e-w)/GridRes) + 1
	g.Lats = mesh(s, nlat)
	g.Lons = mesh(w, nlon)

	g.Data = make([]*sparse.DenseArray, NumColumns-MetaColumns)
	for i := range g.Data {
		a := sparse.ZerosDense(1, nlat, nlon, 1, 1, 1, 1, 1)
		for j := range a.Elements {
			a.Elements[j] = FillValue
		}
		g.Data[i] = a
	}
	for _, rec := range t.Records {
		// Integer mesh indexing; the raw coordinates are half-degree
		// aligned so the rounded offsets are exact.
		i := round((rec.Lat - s) / GridRes)
		j := round((rec.Lon - w) / GridRes)
		for k, v := range rec.Values {
			g.Data[k].Set(v, 0, i, j, 0, 0, 0, 0, 0)
		}
	}
	return g, nil
}

// levelsFromFileName parses the production and irrigation levels from a raw
// table file name of the form
// <crop>_<country>_amma_<model>_<rcp>_Fut_<year>_<prod>_<irr>_1.out.
func levelsFromFileName(path string) (prod, irr float64, err error) {
	parts := strings.Split(strings.TrimSuffix(filepath.Base(path), ".out"), "_")
	if len(parts) < 3 {
		return 0, 0, &FileReadError{Path: path, Err: fmt.Errorf("file name does not follow the raw table naming convention")}
	}
	if prod, err = strconv.ParseFloat(parts[len(parts)-3], 64); err != nil {
		return 0, 0, &FileReadError{Path: path, Err: fmt.Errorf("parsing production level from file name: %v", err)}
	}
	if irr, err = strconv.ParseFloat(parts[len(parts)-2], 64); err != nil {
		return 0, 0, &FileReadError{Path: path, Err: fmt.Errorf("parsing irrigation level from file name: %v", err)}
	}
	return prod, irr, nil
}

// mesh returns n regularly spaced coordinates starting at origin.
func mesh(origin float64, n int) []float64 {
	c := make([]float64, n)
	for i := range c {
		c[i] = origin + GridRes*float64(i)
	}
	return c
}

func round(v float64) int { return int(v + 0.5) }
