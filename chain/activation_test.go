package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func u32(v uint32) *uint32 { return &v }

func TestActivationActiveSinceGenesis(t *testing.T) {
	for _, v := range Variants() {
		assert.True(t, InscriptionsActive(v, 0), v.String())
		assert.True(t, DunesActive(v, 0), v.String())
		assert.True(t, InscriptionsActive(v, 1_000_000), v.String())
	}
}

func TestActivationStepFunction(t *testing.T) {
	p, err := ParamsFor(Regtest).WithOverrides(Overrides{
		FirstInscriptionHeight: u32(100),
		FirstDuneHeight:        u32(250),
	})
	require.NoError(t, err)

	for h := uint32(0); h < 400; h++ {
		assert.Equal(t, h >= 100, p.InscriptionsActive(h), "inscriptions at %d", h)
		assert.Equal(t, h >= 250, p.DunesActive(h), "dunes at %d", h)
	}
}

func TestActivationIndependent(t *testing.T) {
	p, err := ParamsFor(Mainnet).WithOverrides(Overrides{FirstDuneHeight: u32(10)})
	require.NoError(t, err)
	assert.True(t, p.InscriptionsActive(5))
	assert.False(t, p.DunesActive(5))
}
