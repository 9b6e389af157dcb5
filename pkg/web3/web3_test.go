package web3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidAddress(t *testing.T) {
	assert.True(t, IsValidAddress("0x1111111111111111111111111111111111111111"))
	assert.True(t, IsValidAddress("0xAbCdEF1234567890abcdef1234567890ABCDEF12"))

	assert.False(t, IsValidAddress(""))
	assert.False(t, IsValidAddress("0x"))
	assert.False(t, IsValidAddress("1111111111111111111111111111111111111111"))
	assert.False(t, IsValidAddress("0x11111111111111111111111111111111111111"))
	assert.False(t, IsValidAddress("0x111111111111111111111111111111111111111g"))
}

func TestIsValidTransactionHash(t *testing.T) {
	hash := "0xabcdef1234567890abcdef1234567890abcdef1234567890abcdef1234567890"
	assert.True(t, IsValidTransactionHash(hash))
	assert.False(t, IsValidTransactionHash("0xdeadbeef"))
	assert.False(t, IsValidTransactionHash(""))
}

func TestTruncateAddress(t *testing.T) {
	assert.Equal(t, "", TruncateAddress(""))
	assert.Equal(t, "0x1234", TruncateAddress("0x1234"))
	assert.Equal(t, "0x1111...1111", TruncateAddress("0x1111111111111111111111111111111111111111"))
}

func TestIsValidCIDv0(t *testing.T) {
	// sha2-256 multihash of an empty input, a canonical CIDv0.
	assert.True(t, IsValidCIDv0("QmbFMke1KXqnYyBBWxB74N4c5SBnJMVAiMNRcGu6x1AwQH"))

	assert.False(t, IsValidCIDv0(""))
	assert.False(t, IsValidCIDv0("bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi"))
	assert.False(t, IsValidCIDv0("Qmshort"))
	assert.False(t, IsValidCIDv0("Qm0000000000000000000000000000000000000000000I"))
}
