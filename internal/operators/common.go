package operators

import "github.com/specialistvlad/gptgrid/internal/step"

// chained wires an operator through the conventional "source" element with no
// extra sources. It is embedded by most operators.
type chained struct{}

func (chained) PrimarySource() string            { return step.DefaultPrimarySource }
func (chained) ExtraSources() []step.ExtraSource { return nil }

// Resampling methods shared by the DEM and land cover operators.
var demResamplingMethods = []string{
	"NEAREST_NEIGHBOUR",
	"BILINEAR_INTERPOLATION",
	"CUBIC_CONVOLUTION",
	"BISINC_5_POINT_INTERPOLATION",
	"BISINC_11_POINT_INTERPOLATION",
	"BISINC_21_POINT_INTERPOLATION",
	"BICUBIC_INTERPOLATION",
}
