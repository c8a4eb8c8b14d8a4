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

// Package glamcollateutil holds the command-line interface of the
// GLAMCollate data consolidation tool.
package glamcollateutil

import (
	"fmt"

	"github.com/cemac/glamcollate"
	"github.com/lnashier/viper"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to GLAMCollate.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "dir",
			usage: `
              dir is the directory holding the yearly raw GLAM outputs for one
              climate scheme. It must contain the 120 year directories from
              1980 to 2099, and its last four path components must be
              country/crop/model/rcp.`,
			shorthand:  "d",
			defaultVal: ".",
			flagsets:   []*pflag.FlagSet{collateCmd.Flags()},
		},
		{
			name: "out",
			usage: `
              out is the directory the output file is written under. The
              output path is generated from the directory structure as
              out/ind_rcp/country/crop_model_rcp.nc.`,
			shorthand:  "o",
			defaultVal: ".",
			flagsets:   []*pflag.FlagSet{collateCmd.Flags()},
		},
		{
			name: "proc",
			usage: `
              proc is the number of parallel workers used for data reading
              and combination (maximum 40).`,
			shorthand:  "p",
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{collateCmd.Flags()},
		},
		{
			name: "nco",
			usage: `
              nco makes the merge step run the external NetCDF operators
              (ncks, ncrcat) instead of concatenating in process.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{collateCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("GLAMCOLLATE")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(collateCmd)
	Root.AddCommand(describeCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("glamcollate: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "glamcollate",
	Short: "Consolidate raw GLAM crop model outputs into NetCDF files.",
	Long: `GLAMCollate combines the raw per-year outputs of the GLAM crop model for
one climate scheme into a single NetCDF file. Each year is comprised of 120
raw ASCII tables (10 production levels by 12 irrigation levels), each row of
which relates to a single 0.5deg x 0.5deg gridcell.

Configuration can be changed by using a configuration file (and providing
the path to the file using the --config flag), by using command-line
arguments, or by setting environment variables in the format
'GLAMCOLLATE_var' where 'var' is the name of the variable to be set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of GLAMCollate.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("GLAMCollate v%s\n", glamcollate.Version)
	},
	DisableAutoGenTag: true,
}

// collateCmd runs the consolidation for one climate scheme.
var collateCmd = &cobra.Command{
	Use:   "collate",
	Short: "Combine the raw outputs of one climate scheme into a NetCDF file.",
	Long: `collate reads every yearly raw table under the input directory, assembles
each year into a gridded NetCDF file using up to proc parallel workers, and
concatenates the years along the time axis into a single output file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		procs, err := cast.ToIntE(Cfg.Get("proc"))
		if err != nil {
			return fmt.Errorf("glamcollate: parsing proc: %v", err)
		}
		return Run(Cfg.GetString("dir"), Cfg.GetString("out"),
			procs, Cfg.GetBool("nco"))
	},
	DisableAutoGenTag: true,
}
