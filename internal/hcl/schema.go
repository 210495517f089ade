package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes the top-level blocks of a pipeline file. It has no remain
// field, so gohcl rejects any other top-level attribute or block.
type fileRoot struct {
	Steps []*stepBlock `hcl:"step,block"`
	Runs  []*runBlock  `hcl:"run,block"`
}

// stepBlock keeps the operator arguments undecoded until the operator type is
// known.
type stepBlock struct {
	Operator string   `hcl:"operator,label"`
	NodeID   *string  `hcl:"node_id,optional"`
	Body     hcl.Body `hcl:",remain"`
}

type runBlock struct {
	Inputs         []string `hcl:"inputs,optional"`
	OutputFolder   *string  `hcl:"output_folder,optional"`
	Format         *string  `hcl:"format,optional"`
	DateOnly       *bool    `hcl:"date_only,optional"`
	DateTimeOnly   *bool    `hcl:"date_time_only,optional"`
	Prefix         *string  `hcl:"prefix,optional"`
	Suffix         *string  `hcl:"suffix,optional"`
	SuppressStderr *bool    `hcl:"suppress_stderr,optional"`
	Timeout        *string  `hcl:"timeout,optional"`

	// Remain locates the block and catches unsupported arguments.
	Remain hcl.Body `hcl:",remain"`
}
