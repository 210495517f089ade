package operators

import "github.com/beevik/etree"

// BandSelect keeps only the selected bands.
type BandSelect struct {
	chained

	BandNamePattern       string   `hcl:"band_name_pattern,optional"`
	SelectedPolarisations []string `hcl:"selected_polarisations,optional"`
	SourceBands           []string `hcl:"source_bands,optional"`
}

func NewBandSelect() *BandSelect { return &BandSelect{} }

func (*BandSelect) Operator() string    { return "BandSelect" }
func (*BandSelect) SuffixToken() string { return "BandSelect" }

func (b *BandSelect) Parameters() (*etree.Element, error) {
	return newParams().
		List("selectedPolarisations", b.SelectedPolarisations).
		List("sourceBands", b.SourceBands).
		OptText("bandNamePattern", b.BandNamePattern).
		Element(), nil
}
