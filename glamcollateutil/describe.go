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

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/spf13/cobra"
)

// describeCmd prints a summary of a produced NetCDF file.
var describeCmd = &cobra.Command{
	Use:   "describe file",
	Short: "Print a summary of a collated NetCDF file.",
	Long: `describe lists the variables of a NetCDF file along with their dimensions
and units, and prints the values of the time axis.`,
	Args:              cobra.ExactArgs(1),
	RunE:              describe,
	DisableAutoGenTag: true,
}

func describe(cmd *cobra.Command, args []string) error {
	nc, err := netcdf.Open(args[0])
	if err != nil {
		return fmt.Errorf("glamcollate: opening %s: %v", args[0], err)
	}
	defer nc.Close()

	for _, name := range nc.ListVariables() {
		vg, err := nc.GetVarGetter(name)
		if err != nil {
			return fmt.Errorf("glamcollate: reading variable %s: %v", name, err)
		}
		units := ""
		if u, has := vg.Attributes().Get("units"); has {
			units = fmt.Sprintf(" [%v]", u)
		}
		cmd.Printf("%s%v%s: %d values\n", name, vg.Dimensions(), units, vg.Len())
	}

	tg, err := nc.GetVarGetter("time")
	if err != nil {
		return nil // No time axis; nothing more to report.
	}
	vals, err := tg.Values()
	if err != nil {
		return fmt.Errorf("glamcollate: reading time axis: %v", err)
	}
	cmd.Printf("time axis: %v\n", vals)
	return nil
}
