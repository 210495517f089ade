package hcl

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
)

// bodyDecoder decodes a step body with the scope of the file it came from.
type bodyDecoder struct {
	body    hcl.Body
	evalCtx *hcl.EvalContext
}

// Decode relies on gohcl leaving absent optional attributes untouched, so the
// operator defaults survive.
func (d *bodyDecoder) Decode(target any) error {
	if diags := gohcl.DecodeBody(d.body, d.evalCtx, target); diags.HasErrors() {
		return diags
	}
	return nil
}
