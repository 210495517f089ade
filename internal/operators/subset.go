package operators

import (
	"github.com/beevik/etree"
)

// Subset creates a spatial and/or spectral subset of a product.
type Subset struct {
	chained

	CopyMetadata bool `hcl:"copy_metadata,optional"`
	// FullSwath extends the region to the full swath.
	FullSwath bool `hcl:"full_swath,optional"`
	// GeoRegion is a WKT geometry; empty means the whole scene.
	GeoRegion         string   `hcl:"geo_region,optional"`
	ReferenceBand     string   `hcl:"reference_band,optional"`
	SourceBands       []string `hcl:"source_bands,optional"`
	SubSamplingX      int      `hcl:"sub_sampling_x,optional"`
	SubSamplingY      int      `hcl:"sub_sampling_y,optional"`
	TiePointGridNames []string `hcl:"tie_point_grid_names,optional"`
}

// NewSubset returns a Subset with gpt defaults.
func NewSubset() *Subset {
	return &Subset{SubSamplingX: 1, SubSamplingY: 1}
}

func (*Subset) Operator() string    { return "Subset" }
func (*Subset) SuffixToken() string { return "Subset" }

func (s *Subset) Parameters() (*etree.Element, error) {
	return newParams().
		List("sourceBands", s.SourceBands).
		OptText("referenceBand", s.ReferenceBand).
		OptText("geoRegion", s.GeoRegion).
		Int("subSamplingX", s.SubSamplingX).
		Int("subSamplingY", s.SubSamplingY).
		Bool("fullSwath", s.FullSwath).
		List("tiePointGridNames", s.TiePointGridNames).
		Bool("copyMetadata", s.CopyMetadata).
		Element(), nil
}
