package operators

import (
	"fmt"
	"os"

	"github.com/beevik/etree"
)

// ImportVector imports a shapefile into the product as masks.
type ImportVector struct {
	chained

	SeparateShapes bool   `hcl:"separate_shapes,optional"`
	VectorFile     string `hcl:"vector_file"`
}

// NewImportVector returns an ImportVector that imports each shape as its own mask.
func NewImportVector() *ImportVector {
	return &ImportVector{SeparateShapes: true}
}

func (*ImportVector) Operator() string    { return "Import-Vector" }
func (*ImportVector) SuffixToken() string { return "" }

func (v *ImportVector) Parameters() (*etree.Element, error) {
	if v.VectorFile == "" {
		return nil, missing("vector_file")
	}
	info, err := os.Stat(v.VectorFile)
	if err != nil {
		return nil, fmt.Errorf("vector_file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("vector_file: %s is not a regular file", v.VectorFile)
	}
	return newParams().
		Text("vectorFile", v.VectorFile).
		Bool("separateShapes", v.SeparateShapes).
		Element(), nil
}
