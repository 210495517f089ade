package operators

import (
	"errors"

	"github.com/beevik/etree"
	"github.com/specialistvlad/gptgrid/internal/step"
)

// Resample turns a multi-size product into a single-size one. Set either
// ReferenceBand or the target size.
type Resample struct {
	// Downsampling is one of First, Min, Max, Mean, Median.
	Downsampling string `hcl:"downsampling,optional"`
	// FlagDownsampling is one of First, FlagAnd, FlagOr, FlagMedianAnd, FlagMedianOr.
	FlagDownsampling        string `hcl:"flag_downsampling,optional"`
	ReferenceBand           string `hcl:"reference_band,optional"`
	ResampleOnPyramidLevels bool   `hcl:"resample_on_pyramid_levels,optional"`
	TargetHeight            int    `hcl:"target_height,optional"`
	TargetWidth             int    `hcl:"target_width,optional"`
	TargetResolution        int    `hcl:"target_resolution,optional"`
	// Upsampling is one of Nearest, Bilinear, Bicubic.
	Upsampling string `hcl:"upsampling,optional"`
}

// NewResample returns a Resample with gpt defaults.
func NewResample() *Resample {
	return &Resample{
		Downsampling:            "First",
		FlagDownsampling:        "First",
		ResampleOnPyramidLevels: true,
		Upsampling:              "Nearest",
	}
}

func (*Resample) Operator() string    { return "Resample" }
func (*Resample) SuffixToken() string { return "resampled" }

// PrimarySource is sourceProduct for Resample, unlike most operators.
func (*Resample) PrimarySource() string            { return "sourceProduct" }
func (*Resample) ExtraSources() []step.ExtraSource { return nil }

func (r *Resample) Parameters() (*etree.Element, error) {
	if err := oneOf("upsampling", r.Upsampling, []string{"Nearest", "Bilinear", "Bicubic"}); err != nil {
		return nil, err
	}
	if err := oneOf("downsampling", r.Downsampling, []string{"First", "Min", "Max", "Mean", "Median"}); err != nil {
		return nil, err
	}
	if err := oneOf("flag_downsampling", r.FlagDownsampling, []string{"First", "FlagAnd", "FlagOr", "FlagMedianAnd", "FlagMedianOr"}); err != nil {
		return nil, err
	}

	p := newParams()
	switch {
	case r.ReferenceBand != "":
		p.Text("referenceBand", r.ReferenceBand)
	case r.TargetResolution > 0 || (r.TargetWidth > 0 && r.TargetHeight > 0):
		if r.TargetWidth > 0 && r.TargetHeight > 0 {
			p.Int("targetWidth", r.TargetWidth).Int("targetHeight", r.TargetHeight)
		}
		if r.TargetResolution > 0 {
			p.Int("targetResolution", r.TargetResolution)
		}
	default:
		return nil, errors.New("either reference_band or a target size (resolution, or width and height) is required")
	}

	return p.
		Text("upsampling", r.Upsampling).
		Text("downsampling", r.Downsampling).
		Text("flagDownsampling", r.FlagDownsampling).
		Bool("resampleOnPyramidLevels", r.ResampleOnPyramidLevels).
		Element(), nil
}
