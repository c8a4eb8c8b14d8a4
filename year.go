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
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

// yearDims holds the axis names of a year product, in storage order.
var yearDims = []string{"time", "lat", "lon", "prod_lev", "irr_lev", "rcp", "model", "crop"}

// A YearProduct is one simulation year's fully assembled data: every raw
// table of the year stacked along the production-level and irrigation-level
// axes, one array per data variable.
type YearProduct struct {
	Year        int
	Lats, Lons  []float64
	Prods, Irrs []float64
	Scenario    Scenario

	// Data holds one array per data variable, in table column order, with
	// shape [time, lat, lon, prod_lev, irr_lev, rcp, model, crop].
	Data []*sparse.DenseArray
}

// AssembleYear reads all raw tables for one simulation year under
// dir/year, stacks them into a YearProduct and writes the product to a
// NetCDF file named by appending the year to stem. If a file of that name
// already exists the next free numbered name is used instead. The path of
// the written file is returned.
//
// Any table failing to assemble aborts the whole year; no partial product
// is written.
func AssembleYear(year string, scen Scenario, dir, stem string) (string, error) {
	p, err := assembleYearProduct(year, scen, dir)
	if err != nil {
		return "", err
	}

	outnm := fmt.Sprintf("%s_%s.nc", stem, year)
	if _, err := os.Stat(outnm); err == nil {
		outnm = NextFreePath(strings.TrimSuffix(outnm, ".nc") + "_%d.nc")
	}
	w, err := os.Create(outnm)
	if err != nil {
		return "", fmt.Errorf("glamcollate: creating year file: %v", err)
	}
	defer w.Close()
	if err := p.Write(w); err != nil {
		return "", err
	}
	return outnm, nil
}

func assembleYearProduct(year string, scen Scenario, dir string) (*YearProduct, error) {
	p := &YearProduct{
		Scenario: scen,
		Prods:    make([]float64, len(ProdLevels)),
		Irrs:     make([]float64, len(IrrLevels)),
	}
	tot := len(ProdLevels) * len(IrrLevels)
	n := 0
	for pi, prod := range ProdLevels {
		for ii, irr := range IrrLevels {
			n++
			path := filepath.Join(dir, year, scen.FileName(year, prod, irr))
			g, err := AssembleGrid(path, scen)
			if err != nil {
				return nil, err
			}
			if p.Data == nil {
				p.Year = g.Year
				p.Lats = g.Lats
				p.Lons = g.Lons
				p.Data = make([]*sparse.DenseArray, len(g.Data))
				for k := range p.Data {
					p.Data[k] = sparse.ZerosDense(1, len(g.Lats), len(g.Lons),
						len(ProdLevels), len(IrrLevels), 1, 1, 1)
				}
			} else if !sameMesh(g.Lats, p.Lats) || !sameMesh(g.Lons, p.Lons) {
				return nil, fmt.Errorf("glamcollate: year %s: spatial extent of %s is inconsistent with the other tables of the year",
					year, filepath.Base(path))
			} else if g.Year != p.Year {
				return nil, fmt.Errorf("glamcollate: year %s: %s holds year %d but the other tables of the year hold %d",
					year, filepath.Base(path), g.Year, p.Year)
			}
			p.Prods[pi] = g.Prod
			p.Irrs[ii] = g.Irr
			for k, a := range g.Data {
				for i := range p.Lats {
					for j := range p.Lons {
						p.Data[k].Set(a.Get(0, i, j, 0, 0, 0, 0, 0), 0, i, j, pi, ii, 0, 0, 0)
					}
				}
			}
			log.Printf("glamcollate: grid %d of %d assembled for year %s", n, tot, year)
		}
	}
	return p, nil
}

func sameMesh(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Write writes p to the NetCDF file w.
func (p *YearProduct) Write(w *os.File) error {
	nlat, nlon := len(p.Lats), len(p.Lons)
	h := cdf.NewHeader(yearDims,
		[]int{1, nlat, nlon, len(p.Prods), len(p.Irrs), 1, 1, 1})
	h.AddAttribute("", "comment", "collated GLAM crop model output")
	h.AddAttribute("", "country", p.Scenario.Country)
	h.AddAttribute("", "country_code", []int32{int32(p.Scenario.CountryCode)})

	coords := []struct {
		name, standard, long, units string
		vals                        []float64
	}{
		{"time", "time", "Time", "year", []float64{float64(p.Year)}},
		{"lat", "latitude", "Latitude", "degrees_north", p.Lats},
		{"lon", "longitude", "Longitude", "degrees_east", p.Lons},
		{"prod_lev", "", "production level", "1", p.Prods},
		{"irr_lev", "", "irrigation level", "1", p.Irrs},
		{"rcp", "", "rep. conc. pathway", "1", []float64{float64(p.Scenario.RCPCode)}},
		{"model", "", "climate model", "1", []float64{float64(p.Scenario.ModelCode)}},
		{"crop", "", "crop", "1", []float64{float64(p.Scenario.CropCode)}},
	}
	for _, c := range coords {
		h.AddVariable(c.name, []string{c.name}, []float64{0})
		if c.standard != "" {
			h.AddAttribute(c.name, "standard_name", c.standard)
		}
		h.AddAttribute(c.name, "long_name", c.long)
		h.AddAttribute(c.name, "units", c.units)
	}
	for _, col := range DataColumns() {
		h.AddVariable(col.Name, yearDims, []float64{0})
		h.AddAttribute(col.Name, "long_name", col.LongName)
		h.AddAttribute(col.Name, "units", col.Units)
		h.AddAttribute(col.Name, "_FillValue", []float64{FillValue})
		h.AddAttribute(col.Name, "missing_value", []float64{FillValue})
	}
	h.Define()
	for _, err := range h.Check() {
		return fmt.Errorf("glamcollate: creating year file header: %v", err)
	}

	f, err := cdf.Create(w, h)
	if err != nil {
		return fmt.Errorf("glamcollate: creating year file: %v", err)
	}
	for _, c := range coords {
		if err := writeNCF(f, c.name, c.vals); err != nil {
			return err
		}
	}
	for k, col := range DataColumns() {
		if err := writeNCF(f, col.Name, p.Data[k].Elements); err != nil {
			return err
		}
	}
	if err := cdf.UpdateNumRecs(w); err != nil {
		return fmt.Errorf("glamcollate: finalizing year file: %v", err)
	}
	return nil
}

func writeNCF(f *cdf.File, name string, data []float64) error {
	end := f.Header.Lengths(name)
	start := make([]int, len(end))
	w := f.Writer(name, start, end)
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("glamcollate: writing variable %s: %v", name, err)
	}
	return nil
}
