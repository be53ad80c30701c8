package generators

import (
	"context"
	"testing"

	"github.com/specialistvlad/graphsync/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestModule_Register(t *testing.T) {
	r := registry.New()
	(&Module{}).Register(r)

	require.NoError(t, r.ValidateRegistry(context.Background()))
	assert.Equal(t, []string{"Noise", "Oscillator", "WavePlayer"}, r.ClassNames())

	osc, ok := r.Class("Oscillator")
	require.True(t, ok)
	assert.Equal(t, "Sine Oscillator", osc.Title())

	freq, ok := osc.Input("Frequency")
	require.True(t, ok)
	require.NotNil(t, freq.Default)
	assert.True(t, freq.Default.RawEquals(cty.NumberIntVal(440)))

	_, ok = osc.Output("Audio")
	assert.True(t, ok)
}

func TestModule_NoiseSeedIsValueAccess(t *testing.T) {
	r := registry.New()
	(&Module{}).Register(r)

	noise, ok := r.Class("Noise")
	require.True(t, ok)
	seed, ok := noise.Input("Seed")
	require.True(t, ok)
	assert.Equal(t, registry.AccessValue, seed.Access)
}
