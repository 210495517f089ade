package app

import (
	"github.com/specialistvlad/gptgrid/internal/operators"
	"github.com/specialistvlad/gptgrid/internal/registry"
)

// coreModules is the definitive list of operator modules compiled into the
// gptgrid binary.
var coreModules = []registry.Module{
	operators.Module{},
}
