package operators

import "github.com/beevik/etree"

// DEMNames lists the digital elevation models SNAP can download.
var DEMNames = []string{
	"ACE2_5Min",
	"ACE30",
	"ASTER 1sec GDEM",
	"CDEM",
	"Copernicus 30m Global DEM",
	"Copernicus 90m Global DEM",
	"GETASSE30",
	"SRTM 1sec HGT",
	"SRTM 3sec",
}

// AddElevation adds a DEM band to the product.
type AddElevation struct {
	chained

	DEMName             string `hcl:"dem_name,optional"`
	DEMResamplingMethod string `hcl:"dem_resampling_method,optional"`
	ElevationBandName   string `hcl:"elevation_band_name,optional"`
	// ExternalDEMFile replaces DEMName when set.
	ExternalDEMFile        string  `hcl:"external_dem_file,optional"`
	ExternalDEMNoDataValue float64 `hcl:"external_dem_no_data_value,optional"`
}

// NewAddElevation returns an AddElevation using SRTM 3Sec.
func NewAddElevation() *AddElevation {
	return &AddElevation{
		DEMName:             "SRTM 3Sec",
		DEMResamplingMethod: "BICUBIC_INTERPOLATION",
		ElevationBandName:   "elevation",
	}
}

func (*AddElevation) Operator() string    { return "AddElevation" }
func (*AddElevation) SuffixToken() string { return "elev" }

func (a *AddElevation) Parameters() (*etree.Element, error) {
	if err := oneOf("dem_resampling_method", a.DEMResamplingMethod, demResamplingMethods); err != nil {
		return nil, err
	}
	if a.ElevationBandName == "" {
		return nil, missing("elevation_band_name")
	}

	p := newParams().
		Text("demName", a.DEMName).
		Text("demResamplingMethod", a.DEMResamplingMethod)
	if a.ExternalDEMFile != "" {
		p.Text("externalDEMFile", a.ExternalDEMFile).
			Float("externalDEMNoDataValue", a.ExternalDEMNoDataValue)
	}
	return p.Text("elevationBandName", a.ElevationBandName).Element(), nil
}
