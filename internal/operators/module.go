package operators

import (
	"github.com/specialistvlad/gptgrid/internal/registry"
	"github.com/specialistvlad/gptgrid/internal/step"
)

// Module registers every operator in this package.
type Module struct{}

func (Module) Register(r *registry.Registry) {
	r.Register("Subset", func() step.Step { return NewSubset() })
	r.Register("Reproject", func() step.Step { return NewReproject() })
	r.Register("Resample", func() step.Step { return NewResample() })
	r.Register("Collocate", func() step.Step { return NewCollocate() })
	r.Register("BandMaths", func() step.Step { return NewBandMaths() })
	r.Register("BandSelect", func() step.Step { return NewBandSelect() })
	r.Register("Land-Sea-Mask", func() step.Step { return NewLandSeaMask() })
	r.Register("AddElevation", func() step.Step { return NewAddElevation() })
	r.Register("Import-Vector", func() step.Step { return NewImportVector() })
	r.Register("AddLandCover", func() step.Step { return NewAddLandCover() })
	r.Register("c2rcc.msi", func() step.Step { return NewC2RCCMSI() })
}

// Default returns a registry holding every built-in operator.
func Default() *registry.Registry {
	return registry.New().Use(Module{})
}
