package operators

import (
	"errors"

	"github.com/beevik/etree"
)

// Collocate stacks products on the grid of a master product.
type Collocate struct {
	chained

	MasterComponentPattern string `hcl:"master_component_pattern,optional"`
	MasterProductName      string `hcl:"master_product_name,optional"`
	RenameMasterComponents bool   `hcl:"rename_master_components,optional"`
	RenameSlaveComponents  bool   `hcl:"rename_slave_components,optional"`
	ResamplingType         string `hcl:"resampling_type,optional"`
	SlaveComponentPattern  string `hcl:"slave_component_pattern,optional"`
	// SourceProductPaths lists the products to stack.
	SourceProductPaths []string `hcl:"source_product_paths,optional"`
	TargetProductType  string   `hcl:"target_product_type,optional"`
}

// NewCollocate returns a Collocate with gpt defaults.
func NewCollocate() *Collocate {
	return &Collocate{
		MasterComponentPattern: "${ORIGINAL_NAME}_M",
		RenameMasterComponents: true,
		RenameSlaveComponents:  true,
		ResamplingType:         "NEAREST_NEIGHBOUR",
		SlaveComponentPattern:  "${ORIGINAL_NAME}_S${SLAVE_NUMBER_ID}",
		TargetProductType:      "COLLOCATED",
	}
}

func (*Collocate) Operator() string    { return "Collocate" }
func (*Collocate) SuffixToken() string { return "Collocate" }

func (c *Collocate) Parameters() (*etree.Element, error) {
	if c.MasterProductName == "" {
		return nil, missing("master_product_name")
	}
	if len(c.SourceProductPaths) == 0 {
		return nil, errors.New("source_product_paths must list at least one product")
	}
	return newParams().
		List("sourceProductPaths", c.SourceProductPaths).
		Text("masterProductName", c.MasterProductName).
		Text("targetProductType", c.TargetProductType).
		Bool("renameMasterComponents", c.RenameMasterComponents).
		Bool("renameSlaveComponents", c.RenameSlaveComponents).
		Text("masterComponentPattern", c.MasterComponentPattern).
		Text("slaveComponentPattern", c.SlaveComponentPattern).
		Text("resamplingType", c.ResamplingType).
		Element(), nil
}
