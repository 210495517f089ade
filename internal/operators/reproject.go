package operators

import (
	"github.com/beevik/etree"
	"github.com/specialistvlad/gptgrid/internal/step"
)

// Reproject moves a product to a target coordinate reference system, or onto
// the grid of another product when CollocateWith is set.
type Reproject struct {
	AddDeltaBands bool `hcl:"add_delta_bands,optional"`
	// CRS is WKT or an authority code such as EPSG:4326 or AUTO:42001.
	CRS                  string `hcl:"crs,optional"`
	IncludeTiePointGrids bool   `hcl:"include_tie_point_grids,optional"`
	// Resampling is one of Nearest, Bilinear, Bicubic.
	Resampling string `hcl:"resampling,optional"`
	// CollocateWith is the path of a product whose grid is reused. It replaces CRS.
	CollocateWith string `hcl:"collocate_with,optional"`
}

// NewReproject returns a Reproject with gpt defaults.
func NewReproject() *Reproject {
	return &Reproject{
		CRS:                  "EPSG:4326",
		IncludeTiePointGrids: true,
		Resampling:           "Nearest",
	}
}

func (*Reproject) Operator() string      { return "Reproject" }
func (*Reproject) SuffixToken() string   { return "Reprojected" }
func (*Reproject) PrimarySource() string { return step.DefaultPrimarySource }

// ExtraSources declares collocateWith when a partner product is set.
func (r *Reproject) ExtraSources() []step.ExtraSource {
	if r.CollocateWith == "" {
		return nil
	}
	return []step.ExtraSource{{Element: "collocateWith", Name: "collocateWith", Value: r.CollocateWith}}
}

func (r *Reproject) Parameters() (*etree.Element, error) {
	if err := oneOf("resampling", r.Resampling, []string{"Nearest", "Bilinear", "Bicubic"}); err != nil {
		return nil, err
	}
	p := newParams()
	if r.CollocateWith == "" {
		if r.CRS == "" {
			return nil, missing("crs")
		}
		p.Text("crs", r.CRS)
	}
	return p.
		Text("resampling", r.Resampling).
		Bool("includeTiePointGrids", r.IncludeTiePointGrids).
		Bool("addDeltaBands", r.AddDeltaBands).
		Element(), nil
}
