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
	"io/ioutil"
	"log"
	"path/filepath"
	"sort"
	"time"
)

// Collate assembles every requested year of the scenario under dir into a
// per-year file, using up to procs concurrent workers, then merges the
// per-year files into one time-ordered series file and deletes them. The
// path of the series file is returned.
func Collate(cat Concatenator, years []string, scen Scenario, dir, stem string, procs int) (string, error) {
	if len(years) == 0 {
		return "", &ArgumentError{"no year directories found under " + dir}
	}
	start := time.Now()
	paths, err := CollateYears(years, scen, dir, stem, procs)
	if err != nil {
		return "", err
	}
	out, err := MergeYears(cat, paths, stem)
	if err != nil {
		return "", err
	}
	log.Printf("glamcollate: combined %d years into %s in %v",
		len(years), out, time.Since(start).Round(time.Second))
	return out, nil
}

// CollateYears runs AssembleYear once for every year, distributing the
// years over up to procs concurrent workers, and returns the produced file
// paths sorted by year. With procs of one the years are processed strictly
// sequentially in input order; otherwise they are processed in contiguous
// chunks of procs years with a join barrier between chunks. A single
// failing year is fatal: in-flight workers are waited for, no further years
// are started, and no paths are returned.
func CollateYears(years []string, scen Scenario, dir, stem string, procs int) ([]string, error) {
	paths := make([]string, len(years))
	if procs <= 1 {
		for i, year := range years {
			p, err := AssembleYear(year, scen, dir, stem)
			if err != nil {
				return nil, err
			}
			paths[i] = p
		}
	} else {
		type result struct {
			i    int
			path string
			err  error
		}
		for begin := 0; begin < len(years); begin += procs {
			end := begin + procs
			if end > len(years) {
				end = len(years)
			}
			resChan := make(chan result, end-begin)
			for i := begin; i < end; i++ {
				go func(i int, year string) {
					p, err := AssembleYear(year, scen, dir, stem)
					resChan <- result{i, p, err}
				}(i, years[i])
			}
			var firstErr error
			for n := begin; n < end; n++ {
				r := <-resChan
				if r.err != nil && firstErr == nil {
					firstErr = r.err
				}
				paths[r.i] = r.path
			}
			if firstErr != nil {
				return nil, firstErr
			}
		}
	}
	// The merge step depends on the time axis being monotonic, so the
	// paths are ordered by year here no matter in which order the
	// workers finished.
	sort.Strings(paths)
	return paths, nil
}

// Years returns the names of the year directories found under dir: the
// subdirectories holding at least a full set of raw tables.
func Years(dir string) ([]string, error) {
	entries, err := ioutil.ReadDir(dir)
	if err != nil {
		return nil, &ArgumentError{"reading input directory: " + err.Error()}
	}
	full := len(ProdLevels) * len(IrrLevels)
	var years []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		files, err := ioutil.ReadDir(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, &ArgumentError{"reading input directory: " + err.Error()}
		}
		if len(files) >= full {
			years = append(years, entry.Name())
		}
	}
	return years, nil
}
