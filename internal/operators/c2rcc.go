package operators

import (
	"github.com/beevik/etree"
	"github.com/specialistvlad/gptgrid/internal/step"
)

// C2RCCMSI runs the C2RCC atmospheric correction and IOP retrieval on
// Sentinel-2 MSI L1C products.
type C2RCCMSI struct {
	AlternativeNNPath                string  `hcl:"alternative_nn_path,optional"`
	AtmosphericAuxDataPath           string  `hcl:"atmospheric_aux_data_path,optional"`
	CHLExp                           float64 `hcl:"chl_exp,optional"`
	CHLFac                           float64 `hcl:"chl_fac,optional"`
	DeriveRwFromPathAndTransmittance bool    `hcl:"derive_rw_from_path_and_transmittance,optional"`
	Elevation                        float64 `hcl:"elevation,optional"`
	// NetSet is one of C2RCC-Nets, C2X-Nets, C2X-COMPLEX-Nets.
	NetSet string `hcl:"net_set,optional"`

	OutputAcReflectance bool `hcl:"output_ac_reflectance,optional"`
	OutputAsRrs         bool `hcl:"output_as_rrs,optional"`
	OutputKd            bool `hcl:"output_kd,optional"`
	OutputOos           bool `hcl:"output_oos,optional"`
	OutputRhown         bool `hcl:"output_r_hown,optional"`
	OutputRpath         bool `hcl:"output_r_path,optional"`
	OutputRtoa          bool `hcl:"output_r_toa,optional"`
	OutputRtosaGc       bool `hcl:"output_r_tosa_gc,optional"`
	OutputRtosaGcAann   bool `hcl:"output_r_tosa_gc_ann,optional"`
	OutputTdown         bool `hcl:"output_t_down,optional"`
	OutputTup           bool `hcl:"output_t_up,optional"`
	OutputUncertainties bool `hcl:"output_uncertainties,optional"`

	Ozone                     float64 `hcl:"ozone,optional"`
	Press                     float64 `hcl:"press,optional"`
	Salinity                  float64 `hcl:"salinity,optional"`
	Temperature               float64 `hcl:"temperature,optional"`
	ThresholdAcReflectanceOos float64 `hcl:"threshold_ac_reflectance_oos,optional"`
	ThresholdCloudTDown865    float64 `hcl:"threshold_cloud_t_down_865,optional"`
	ThresholdRtosaOos         float64 `hcl:"threshold_r_tosa_oos,optional"`
	TSMExp                    float64 `hcl:"tsm_exp,optional"`
	TSMFac                    float64 `hcl:"tsm_fac,optional"`
	ValidPixelExpression      string  `hcl:"valid_pixel_expression,optional"`

	// Auxiliary products; each start/end pair must be set together.
	NCEPStartProduct    string `hcl:"ncep_start_product,optional"`
	NCEPEndProduct      string `hcl:"ncep_end_product,optional"`
	TOMSOMIStartProduct string `hcl:"tomsomi_start_product,optional"`
	TOMSOMIEndProduct   string `hcl:"tomsomi_end_product,optional"`
}

// NewC2RCCMSI returns a C2RCCMSI with the processor defaults.
func NewC2RCCMSI() *C2RCCMSI {
	return &C2RCCMSI{
		CHLExp:                    1.04,
		CHLFac:                    21.0,
		NetSet:                    "C2RCC-Nets",
		OutputAcReflectance:       true,
		OutputKd:                  true,
		OutputRhown:               true,
		OutputRtoa:                true,
		OutputUncertainties:       true,
		Ozone:                     330.0,
		Press:                     1000.0,
		Salinity:                  35.0,
		Temperature:               15.0,
		ThresholdAcReflectanceOos: 0.1,
		ThresholdCloudTDown865:    0.955,
		ThresholdRtosaOos:         0.05,
		TSMExp:                    0.942,
		TSMFac:                    1.06,
		ValidPixelExpression:      "B8 > 0 && B8 < 0.1",
	}
}

func (*C2RCCMSI) Operator() string      { return "c2rcc.msi" }
func (*C2RCCMSI) SuffixToken() string   { return "c2rcc" }
func (*C2RCCMSI) PrimarySource() string { return step.DefaultPrimarySource }

// ExtraSources declares a pair as soon as either member is set, so a half
// filled pair is reported as an unpopulated binding.
func (c *C2RCCMSI) ExtraSources() []step.ExtraSource {
	var out []step.ExtraSource
	pair := func(startName, start, endName, end string) {
		if start == "" && end == "" {
			return
		}
		out = append(out,
			step.ExtraSource{Element: startName, Name: startName, Value: start},
			step.ExtraSource{Element: endName, Name: endName, Value: end},
		)
	}
	pair("ncepStartProduct", c.NCEPStartProduct, "ncepEndProduct", c.NCEPEndProduct)
	pair("tomsomiStartProduct", c.TOMSOMIStartProduct, "tomsomiEndProduct", c.TOMSOMIEndProduct)
	return out
}

func (c *C2RCCMSI) Parameters() (*etree.Element, error) {
	if err := oneOf("net_set", c.NetSet, []string{"C2RCC-Nets", "C2X-Nets", "C2X-COMPLEX-Nets"}); err != nil {
		return nil, err
	}
	return newParams().
		Text("validPixelExpression", c.ValidPixelExpression).
		Float("salinity", c.Salinity).
		Float("temperature", c.Temperature).
		Float("ozone", c.Ozone).
		Float("press", c.Press).
		Float("elevation", c.Elevation).
		Float("TSMfac", c.TSMFac).
		Float("TSMexp", c.TSMExp).
		Float("CHLexp", c.CHLExp).
		Float("CHLfac", c.CHLFac).
		Float("thresholdRtosaOOS", c.ThresholdRtosaOos).
		Float("thresholdAcReflecOos", c.ThresholdAcReflectanceOos).
		Float("thresholdCloudTDown865", c.ThresholdCloudTDown865).
		OptText("atmosphericAuxDataPath", c.AtmosphericAuxDataPath).
		OptText("alternativeNNPath", c.AlternativeNNPath).
		Text("netSet", c.NetSet).
		Bool("outputAsRrs", c.OutputAsRrs).
		Bool("deriveRwFromPathAndTransmittance", c.DeriveRwFromPathAndTransmittance).
		Bool("outputRtoa", c.OutputRtoa).
		Bool("outputRtosaGc", c.OutputRtosaGc).
		Bool("outputRtosaGcAann", c.OutputRtosaGcAann).
		Bool("outputRpath", c.OutputRpath).
		Bool("outputTdown", c.OutputTdown).
		Bool("outputTup", c.OutputTup).
		Bool("outputAcReflectance", c.OutputAcReflectance).
		Bool("outputRhown", c.OutputRhown).
		Bool("outputOos", c.OutputOos).
		Bool("outputKd", c.OutputKd).
		Bool("outputUncertainties", c.OutputUncertainties).
		Element(), nil
}
