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

// Package glamcollate consolidates raw per-year GLAM crop model outputs
// into compact, self-describing NetCDF files.
//
// Each simulation year of a climate scheme is comprised of 120 raw ASCII
// tables (10 production levels by 12 irrigation levels), each row of which
// relates to a single 0.5deg x 0.5deg gridcell. The tables of a year are
// mapped onto a dense regular spatial grid, stacked along the
// production-level and irrigation-level axes, and written to one NetCDF
// file per year. The per-year files are then concatenated along the time
// axis into a single output file.
package glamcollate

// Version gives the version number of GLAMCollate.
const Version = "1.0.0"
