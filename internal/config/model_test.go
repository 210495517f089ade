package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/specialistvlad/gptgrid/internal/faults"
	"github.com/specialistvlad/gptgrid/internal/gpt"
	"github.com/specialistvlad/gptgrid/internal/operators"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// funcBody decodes with a plain function.
type funcBody func(target any) error

func (f funcBody) Decode(target any) error { return f(target) }

func noop(any) error { return nil }

func TestRun_Options(t *testing.T) {
	t.Run("nil run keeps defaults", func(t *testing.T) {
		var r *Run
		assert.Equal(t, gpt.NewRunOptions(), r.Options())
	})

	t.Run("overrides", func(t *testing.T) {
		folder, format, suppress, suffix := "out", "GeoTIFF", false, ""
		r := &Run{
			OutputFolder:   &folder,
			Format:         &format,
			SuppressStderr: &suppress,
			Suffix:         &suffix,
			DateOnly:       true,
			Prefix:         "p_",
			Timeout:        time.Hour,
		}

		opts := r.Options()

		assert.Equal(t, "out", opts.OutputFolder)
		assert.Equal(t, "GeoTIFF", opts.Format)
		assert.False(t, opts.SuppressStderr)
		assert.Same(t, &suffix, opts.Suffix)
		assert.True(t, opts.DateOnly)
		assert.Equal(t, "p_", opts.Prefix)
		assert.Equal(t, time.Hour, opts.Timeout)
	})
}

func TestPipeline_Build(t *testing.T) {
	// Arrange
	p := &Pipeline{Steps: []*Step{
		{Operator: "Subset", Location: "a.hcl:1", Body: funcBody(func(target any) error {
			target.(*operators.Subset).GeoRegion = "POLYGON((0 0,1 0,1 1,0 0))"
			return nil
		})},
		{Operator: "Land-Sea-Mask", NodeID: "mask", Location: "a.hcl:5", Body: funcBody(noop)},
	}}

	// Act
	g, err := p.Build(context.Background(), operators.Default())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"Subset0", "mask"}, g.NodeIDs())
	assert.Equal(t, "_subset_masked", g.Suffix())
	assert.Contains(t, g.String(), "<geoRegion>POLYGON((0 0,1 0,1 1,0 0))</geoRegion>")
}

func TestPipeline_BuildErrors(t *testing.T) {
	t.Run("unknown operator", func(t *testing.T) {
		p := &Pipeline{Steps: []*Step{{Operator: "Terrain-Flattening", Location: "a.hcl:1", Body: funcBody(noop)}}}

		_, err := p.Build(context.Background(), operators.Default())

		var cfg *faults.ConfigurationError
		require.ErrorAs(t, err, &cfg)
		assert.Contains(t, err.Error(), "a.hcl:1")
	})

	t.Run("decode failure", func(t *testing.T) {
		p := &Pipeline{Steps: []*Step{{Operator: "Subset", Location: "a.hcl:1", Body: funcBody(func(any) error {
			return errors.New("unsupported argument")
		})}}}

		_, err := p.Build(context.Background(), operators.Default())

		require.ErrorContains(t, err, "unsupported argument")
	})

	t.Run("step preconditions", func(t *testing.T) {
		p := &Pipeline{Steps: []*Step{{Operator: "Collocate", Location: "b.hcl:3", Body: funcBody(noop)}}}

		_, err := p.Build(context.Background(), operators.Default())

		var cfg *faults.ConfigurationError
		require.ErrorAs(t, err, &cfg)
		assert.Contains(t, err.Error(), "b.hcl:3")
	})
}
