package operators

import (
	"errors"

	"github.com/beevik/etree"
)

// LandSeaMask masks land or sea pixels using SRTM or a vector geometry.
type LandSeaMask struct {
	chained

	Geometry           string   `hcl:"geometry,optional"`
	InvertGeometry     bool     `hcl:"invert_geometry,optional"`
	MaskOutLand        bool     `hcl:"mask_out_land,optional"`
	ShorelineExtension int      `hcl:"shoreline_extension,optional"`
	SourceBands        []string `hcl:"source_bands,optional"`
	UseSRTM            bool     `hcl:"use_srtm,optional"`
}

// NewLandSeaMask returns a LandSeaMask masking land with SRTM.
func NewLandSeaMask() *LandSeaMask {
	return &LandSeaMask{MaskOutLand: true, UseSRTM: true}
}

func (*LandSeaMask) Operator() string    { return "Land-Sea-Mask" }
func (*LandSeaMask) SuffixToken() string { return "masked" }

func (m *LandSeaMask) Parameters() (*etree.Element, error) {
	if m.Geometry == "" && !m.UseSRTM {
		return nil, errors.New("either geometry or use_srtm is required")
	}
	return newParams().
		List("sourceBands", m.SourceBands).
		Bool("landMask", m.MaskOutLand).
		Bool("useSRTM", m.UseSRTM).
		Text("geometry", m.Geometry).
		Bool("invertGeometry", m.InvertGeometry).
		Int("shorelineExtension", m.ShorelineExtension).
		Element(), nil
}
