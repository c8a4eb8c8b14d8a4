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

import "fmt"

// countries maps country names to their dimension codes.
var countries = map[string]int{
	"malawi":   0,
	"safrica":  1,
	"tanzania": 2,
	"zambia":   3,
}

// crops maps crop names to their dimension codes.
var crops = map[string]int{
	"cassava":   0,
	"groundnut": 1,
	"maize":     2,
	"millet":    3,
	"potato":    4,
	"rice":      5,
	"sorghum":   6,
	"soybean":   7,
	"sugarcane": 8,
	"sweetpot":  9,
	"wheat":     10,
}

// models maps climate model names to their dimension codes.
var models = map[string]int{
	"bcc-csm1-1":     0,
	"bcc-csm1-1-m":   1,
	"BNU-ESM":        2,
	"CanESM2":        3,
	"CNRM-CM5":       4,
	"CSIRO-Mk3-6-0":  5,
	"GFDL-CM3":       6,
	"GFDL-ESM2G":     7,
	"GFDL-ESM2M":     8,
	"IPSL-CM5A-LR":   9,
	"IPSL-CM5A-MR":   10,
	"MIROC5":         11,
	"MIROC-ESM":      12,
	"MIROC-ESM-CHEM": 13,
	"MPI-ESM-LR":     14,
	"MPI-ESM-MR":     15,
	"MRI-CGCM3":      16,
	"NorESM1-M":      17,
}

// rcps maps representative concentration pathway names to their
// dimension codes.
var rcps = map[string]int{
	"rcp26": 0,
	"rcp85": 2,
}

// ProdLevels holds the production levels one simulation year is run at, in
// the order they are stacked along the production-level axis. The values
// are kept as strings because they appear verbatim in raw file names.
var ProdLevels = []string{"0.1", "0.2", "0.3", "0.4", "0.5", "0.6", "0.7", "0.8", "0.9", "1"}

// IrrLevels holds the irrigation levels one simulation year is run at, in
// the order they are stacked along the irrigation-level axis.
var IrrLevels = []string{"0", "0.1", "0.2", "0.3", "0.4", "0.5", "0.6", "0.7", "0.8", "0.9", "1", "2"}

// A Scenario identifies one simulation ensemble member: the combination of
// country, crop, climate model and representative concentration pathway
// that a set of raw tables was produced under.
type Scenario struct {
	Country, Crop, Model, RCP string

	// Dimension codes corresponding to the names above.
	CountryCode, CropCode, ModelCode, RCPCode int
}

// NewScenario looks up the dimension codes for the given scenario names.
// Unknown names result in an ArgumentError.
func NewScenario(country, crop, model, rcp string) (Scenario, error) {
	s := Scenario{Country: country, Crop: crop, Model: model, RCP: rcp}
	var ok bool
	if s.CountryCode, ok = countries[country]; !ok {
		return s, &ArgumentError{fmt.Sprintf("unknown country %q", country)}
	}
	if s.CropCode, ok = crops[crop]; !ok {
		return s, &ArgumentError{fmt.Sprintf("unknown crop %q", crop)}
	}
	if s.ModelCode, ok = models[model]; !ok {
		return s, &ArgumentError{fmt.Sprintf("unknown climate model %q", model)}
	}
	if s.RCPCode, ok = rcps[rcp]; !ok {
		return s, &ArgumentError{fmt.Sprintf("unknown representative concentration pathway %q", rcp)}
	}
	return s, nil
}

// FileName returns the name of the raw table holding the given year,
// production level and irrigation level of scenario s, following the naming
// convention of the upstream raw-data producer.
func (s Scenario) FileName(year, prod, irr string) string {
	return fmt.Sprintf("%s_%s_amma_%s_%s_Fut_%s_%s_%s_1.out",
		s.Crop, s.Country, s.Model, s.RCP, year, prod, irr)
}
