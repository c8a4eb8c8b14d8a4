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

package glamcollateutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cemac/glamcollate"
)

// The input tree must hold one directory per year in this range.
const (
	firstYear = 1980
	lastYear  = 2099
)

// maxProcs bounds the worker count.
const maxProcs = 40

// Run validates the command-line configuration and runs the consolidation
// for one climate scheme.
func Run(dir, out string, procs int, nco bool) error {
	ascdir, names, err := checkInputDir(dir)
	if err != nil {
		return err
	}
	scen, err := glamcollate.NewScenario(names[0], names[1], names[2], names[3])
	if err != nil {
		return err
	}
	if err := checkProcs(procs); err != nil {
		return err
	}
	stem, err := checkOutputDir(out, scen)
	if err != nil {
		return err
	}
	years, err := glamcollate.Years(ascdir)
	if err != nil {
		return err
	}
	var cat glamcollate.Concatenator = glamcollate.FileCat{}
	if nco {
		cat = glamcollate.NCO{}
	}
	_, err = glamcollate.Collate(cat, years, scen, ascdir, stem, procs)
	return err
}

// checkInputDir validates the raw data directory and derives the scenario
// names from its last four path components (country/crop/model/rcp).
func checkInputDir(dir string) (string, [4]string, error) {
	var names [4]string
	ascdir, err := filepath.Abs(dir)
	if err != nil {
		return "", names, &glamcollate.ArgumentError{Msg: err.Error()}
	}
	fi, err := os.Stat(ascdir)
	if err != nil || !fi.IsDir() {
		return "", names, &glamcollate.ArgumentError{
			Msg: "path to data files does not exist: " + ascdir}
	}

	parts := strings.Split(filepath.ToSlash(ascdir), "/")
	if len(parts) < 4 {
		return "", names, &glamcollate.ArgumentError{
			Msg: "data directory is expected to have the hierarchy country/crop/model/rcp: " + ascdir}
	}
	copy(names[:], parts[len(parts)-4:])

	for year := firstYear; year <= lastYear; year++ {
		fi, err := os.Stat(filepath.Join(ascdir, strconv.Itoa(year)))
		if err != nil || !fi.IsDir() {
			return "", names, &glamcollate.ArgumentError{
				Msg: fmt.Sprintf("data file directory expected to contain %d numbered folders "+
					"numbered from %d to %d inclusive, but these folders were not found; "+
					"check that the directory argument is correct; directory checked was %s",
					lastYear-firstYear+1, firstYear, lastYear, ascdir)}
		}
	}
	return ascdir, names, nil
}

// checkProcs validates the worker-count bound.
func checkProcs(procs int) error {
	if procs < 1 {
		return &glamcollate.ArgumentError{Msg: "at least one process is required"}
	}
	if procs > maxProcs {
		return &glamcollate.ArgumentError{
			Msg: fmt.Sprintf("too many processes requested; maximum of %d", maxProcs)}
	}
	return nil
}

// checkOutputDir validates the output directory, creates the
// out/ind_rcp/country hierarchy under it and returns the output file stem
// out/ind_rcp/country/crop_model_rcp.
func checkOutputDir(out string, scen glamcollate.Scenario) (string, error) {
	fi, err := os.Stat(out)
	if err != nil || !fi.IsDir() {
		return "", &glamcollate.ArgumentError{
			Msg: "directory to write NetCDF file to does not exist: " + out}
	}
	outdir := filepath.Join(out, "ind_rcp", scen.Country)
	if err := os.MkdirAll(outdir, os.ModePerm); err != nil {
		return "", &glamcollate.ArgumentError{Msg: err.Error()}
	}
	return filepath.Join(outdir, fmt.Sprintf("%s_%s_%s", scen.Crop, scen.Model, scen.RCP)), nil
}
