package operators

import (
	"errors"

	"github.com/beevik/etree"
)

// TargetBand is one computed band of a BandMaths step.
type TargetBand struct {
	Name        string `hcl:"name,label"`
	Expression  string `hcl:"expression"`
	Type        string `hcl:"type,optional"`
	Description string `hcl:"description,optional"`
	Unit        string `hcl:"unit,optional"`
	// NoDataValue is kept as text so "NaN" survives untouched.
	NoDataValue string `hcl:"no_data_value,optional"`
}

// BandMaths creates a product from band expressions written in SNAP's band
// maths syntax.
type BandMaths struct {
	chained

	TargetBands []TargetBand `hcl:"target_band,block"`
}

// NewBandMaths returns an empty BandMaths; add bands with AddTargetBand.
func NewBandMaths() *BandMaths {
	return &BandMaths{}
}

func (*BandMaths) Operator() string    { return "BandMaths" }
func (*BandMaths) SuffixToken() string { return "BandMaths" }

// AddTargetBand appends a float32 band with a NaN no-data value.
func (b *BandMaths) AddTargetBand(name, expression string) *TargetBand {
	b.TargetBands = append(b.TargetBands, TargetBand{
		Name:        name,
		Expression:  expression,
		Type:        "float32",
		NoDataValue: "NaN",
	})
	return &b.TargetBands[len(b.TargetBands)-1]
}

func (b *BandMaths) Parameters() (*etree.Element, error) {
	if len(b.TargetBands) == 0 {
		return nil, errors.New("at least one target band is required")
	}

	targets := etree.NewElement("targetBands")
	for _, band := range b.TargetBands {
		if band.Name == "" {
			return nil, missing("target_band name")
		}
		if band.Expression == "" {
			return nil, missing("expression of target band " + band.Name)
		}
		typ, noData := band.Type, band.NoDataValue
		if typ == "" {
			typ = "float32"
		}
		if noData == "" {
			noData = "NaN"
		}

		el := targets.CreateElement("targetBand")
		el.CreateElement("name").SetText(band.Name)
		el.CreateElement("type").SetText(typ)
		el.CreateElement("expression").SetText(band.Expression)
		if band.Description != "" {
			el.CreateElement("description").SetText(band.Description)
		}
		if band.Unit != "" {
			el.CreateElement("unit").SetText(band.Unit)
		}
		el.CreateElement("noDataValue").SetText(noData)
	}

	return newParams().
		Child(targets).
		Child(etree.NewElement("variables")).
		Element(), nil
}
