package pdas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomProgramID(t *testing.T, seed byte) Pubkey {
	t.Helper()
	var pk Pubkey
	for i := range pk {
		pk[i] = seed + byte(i)
	}
	return pk
}

func TestFindProgramAddressIsOffCurve(t *testing.T) {
	programID := randomProgramID(t, 1)
	pda, bump, err := FindProgramAddress([][]byte{[]byte("seed")}, programID)
	require.NoError(t, err)
	assert.False(t, isOnCurve(pda[:]), "derived address must be off the ed25519 curve")
	assert.LessOrEqual(t, int(bump), 255)
}

func TestFindProgramAddressDeterministic(t *testing.T) {
	programID := randomProgramID(t, 7)
	pda1, bump1, err := FindProgramAddress([][]byte{[]byte("a"), []byte("b")}, programID)
	require.NoError(t, err)
	pda2, bump2, err := FindProgramAddress([][]byte{[]byte("a"), []byte("b")}, programID)
	require.NoError(t, err)
	assert.Equal(t, pda1, pda2)
	assert.Equal(t, bump1, bump2)
}

func TestDeriveTipPaymentAddressesAreDistinct(t *testing.T) {
	programID := randomProgramID(t, 3)
	addrs, err := DeriveTipPaymentAddresses(programID)
	require.NoError(t, err)

	seen := map[Pubkey]bool{addrs.ConfigPDA: true}
	for _, tip := range addrs.TipPDAs {
		assert.False(t, seen[tip], "tip PDA %s collided with a previously derived address", tip)
		seen[tip] = true
	}
}

func TestDeriveTipDistributionAccountAddressVariesByEpoch(t *testing.T) {
	programID := randomProgramID(t, 9)
	vote := randomProgramID(t, 11)

	pdaEpoch1, _, err := DeriveTipDistributionAccountAddress(programID, vote, 1)
	require.NoError(t, err)
	pdaEpoch2, _, err := DeriveTipDistributionAccountAddress(programID, vote, 2)
	require.NoError(t, err)

	assert.NotEqual(t, pdaEpoch1, pdaEpoch2)
}

func TestPubkeyBase58RoundTrip(t *testing.T) {
	pk := randomProgramID(t, 42)
	decoded, err := PubkeyFromBase58(pk.String())
	require.NoError(t, err)
	assert.Equal(t, pk, decoded)
}

func TestPubkeyFromBase58RejectsWrongLength(t *testing.T) {
	_, err := PubkeyFromBase58("1111")
	assert.Error(t, err)
}
