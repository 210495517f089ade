package operators

import "github.com/beevik/etree"

// AddLandCover adds land cover bands from SNAP's land cover models or
// external files.
type AddLandCover struct {
	chained

	ExternalFiles    []string `hcl:"external_files,optional"`
	LandCoverNames   []string `hcl:"land_cover_names,optional"`
	ResamplingMethod string   `hcl:"resampling_method,optional"`
}

func NewAddLandCover() *AddLandCover {
	return &AddLandCover{
		LandCoverNames:   []string{"AAFC Canada Sand Pct"},
		ResamplingMethod: "NEAREST_NEIGHBOUR",
	}
}

func (*AddLandCover) Operator() string    { return "AddLandCover" }
func (*AddLandCover) SuffixToken() string { return "" }

func (l *AddLandCover) Parameters() (*etree.Element, error) {
	if err := oneOf("resampling_method", l.ResamplingMethod, demResamplingMethods); err != nil {
		return nil, err
	}
	return newParams().
		List("landCoverNames", l.LandCoverNames).
		List("externalFiles", l.ExternalFiles).
		Text("resamplingMethod", l.ResamplingMethod).
		Element(), nil
}
