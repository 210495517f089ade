package registry

import (
	"context"
	"testing"

	"github.com/beevik/etree"
	"github.com/specialistvlad/gptgrid/internal/step"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tagged struct {
	Name string `hcl:"name,optional"`
}

func (*tagged) Operator() string                    { return "Tagged" }
func (*tagged) SuffixToken() string                 { return "" }
func (*tagged) PrimarySource() string               { return step.DefaultPrimarySource }
func (*tagged) ExtraSources() []step.ExtraSource    { return nil }
func (*tagged) Parameters() (*etree.Element, error) { return etree.NewElement("parameters"), nil }

type untagged struct {
	tagged
	Missing string
}

func TestRegistry_NewReturnsFreshValues(t *testing.T) {
	// Arrange
	r := New()
	r.Register("Tagged", func() step.Step { return &tagged{} })

	// Act
	a, errA := r.New("Tagged")
	b, errB := r.New("Tagged")

	// Assert
	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.NotSame(t, a, b)
}

func TestRegistry_UnknownOperator(t *testing.T) {
	r := New()
	r.Register("Tagged", func() step.Step { return &tagged{} })

	_, err := r.New("Subset")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown operator 'Subset'")
	assert.Contains(t, err.Error(), "Tagged")
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := New()
	r.Register("Tagged", func() step.Step { return &tagged{} })

	assert.Panics(t, func() {
		r.Register("Tagged", func() step.Step { return &tagged{} })
	})
}

func TestRegistry_Validate(t *testing.T) {
	t.Run("consistent registry passes", func(t *testing.T) {
		r := New()
		r.Register("Tagged", func() step.Step { return &tagged{} })
		require.NoError(t, r.ValidateRegistry(context.Background()))
	})

	t.Run("name mismatch", func(t *testing.T) {
		r := New()
		r.Register("Other", func() step.Step { return &tagged{} })
		err := r.ValidateRegistry(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "constructor builds 'Tagged'")
	})

	t.Run("field without hcl tag", func(t *testing.T) {
		r := New()
		r.Register("Tagged", func() step.Step { return &untagged{} })
		err := r.ValidateRegistry(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "field Missing has no hcl tag")
	})
}
