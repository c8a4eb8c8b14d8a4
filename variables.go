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

// NumColumns is the number of columns in a raw GLAM output table.
const NumColumns = 49

// MetaColumns is the number of leading metadata columns (year, latitude,
// longitude). The remaining columns all hold data variables.
const MetaColumns = 3

// Column describes one column of a raw GLAM output table.
type Column struct {
	// Name is the short identifier the variable is stored under in
	// output files.
	Name string
	// LongName is a human-readable description.
	LongName string
	// Units holds the physical units of the variable.
	Units string
}

// Columns describes every column of a raw GLAM output table, in table
// order (V1 through V49). The first MetaColumns entries are coordinate
// metadata rather than data variables.
var Columns = [NumColumns]Column{
	{"year", "Year", "year"},
	{"latitude", "Latitude", "degrees_north"},
	{"longitude", "Longitude", "degrees_east"},
	{"plant_date", "Planting date", "days"},
	{"istg_final", "Final crop stage (ISTG)", "1"},
	{"rlv_mean", "Mean root length density by volume", "cm/cm^3"},
	{"rlai_2", "LAI (specifically RLAI (2))", "m^2/m^2"},
	{"yield", "Yield", "kg/ha"},
	{"biomass", "Biomass", "kg/ha"},
	{"sla", "Empty (irrigated fraction; SLA)", "1"},
	{"harv_index", "Harvest index", "1"},
	{"tot_rain", "Cumulative rain", "cm"},
	{"srad_final", "Solar radiation", "MJ/m^2"},
	{"soil_wat", "Total soil water", "cm"},
	{"trans", "Transpiration", "cm"},
	{"evtrans1", "Evapotranspiration_1", "cm"},
	{"pot_evtrans", "Potential evapotranspiration (limited by soil transport, LAI and energy)", "cm"},
	{"soil_wat_fac", "Soil water stress factor", "1"},
	{"evtrans2", "Evapotranspiration_2", "cm"},
	{"runoff", "Runoff", "cm"},
	{"tot_runoff", "Cumulative runoff", "cm"},
	{"pot_uptake", "Potential (root-limited) uptake", "cm"},
	{"tot_pot_uptake", "Cumulative potential uptake", "cm"},
	{"drainage", "Drainage", "cm"},
	{"tot_drainage", "Cumulative drainage", "cm"},
	{"pot_trans", "Potential (energy-limited) transpiration", "cm"},
	{"tot_pot_trans", "Cumulative potential transpiration", "cm"},
	{"tot_evap", "Cumulative evaporation", "cm"},
	{"lai_max", "Max LAI during growing season", "m^2/m^2"},
	{"tot_pot_ev", "Cumulative potential evaporation", "cm"},
	{"tot_trans", "Cumulative transpiration", "cm"},
	{"rla", "Root length density by area", "cm/cm^2"},
	{"rla_over_lai", "Root Length Density by Area / LAI", "cm/cm^2"},
	{"rain_final", "Rainfall", "cm"},
	{"d_soil_moist", "Change in soil moisture", "cm"},
	{"t_rad_abs", "Absorbed radiation", "MJ/m^2"},
	{"dur", "Duration", "days"},
	{"mean_vap_pres_def", "Mean vapour pressure deficit", "kPa"},
	{"Tot_net_rad", "Tot net radiation", "MJ/m^2"},
	{"tot_per_pod", "Total percentage of pods setting (TOTPP)", "%"},
	{"tot_per_pod_hit", "Total percentage of pods setting considering temperature only (TOTPP_HIT)", "%"},
	{"tot_per_pod_wat", "Total percentage of pods setting considering water stress only (TOTPP_WAT)", "%"},
	{"mean_temp", "Mean temperature during the crop season (planting to harvest).", "celsius"},
	{"dhdt_fac", "Factor DHDT is reduced by due to heat stress when HTS=1 or 2 (HT_FAC)", "1"},
	{"totwharvdep", "TOTWHARVDEP", "cm"},
	{"stor_wat", "STORED_WATER", "cm"},
	{"pan_init_date", "Panicle initiation date (DOY - Sorghum only)", "day"},
	{"flowr_date", "Flowering date (DOY - Sorghum only)", "day"},
	{"tot_irr_sup", "Total supplementary irrigation added to VOLSW (1) if using SUP irrigation", "cm"},
}

// DataColumns returns the descriptions of the data-variable columns, in
// table order.
func DataColumns() []Column {
	return Columns[MetaColumns:]
}
