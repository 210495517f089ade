// Package hcl loads pipeline files written in HCL into the config model.
//
// A pipeline file holds any number of step blocks, executed in file order,
// and at most one run block across all loaded files:
//
//	step "Subset" {
//	  node_id    = "clip"
//	  geo_region = "POLYGON((...))"
//	}
//	step "Reproject" { crs = "EPSG:32633" }
//
//	run {
//	  inputs    = glob("data/*S3*.zip")
//	  format    = "GeoTIFF"
//	  date_only = true
//	}
//
// Expressions may read the process environment through env.NAME and call
// glob, basename, dirname, upper, lower, format, join and concat. glob and
// other relative paths are resolved against the directory of the file that
// contains them.
package hcl
