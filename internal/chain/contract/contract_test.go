package contract

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minet/internal/chain/rpc"
	"minet/internal/platform/metrics"
)

const testContract = "0x1234567890abcdef1234567890abcdef12345678"

var testMetrics = metrics.New()

// stubCaller returns canned eth_call results keyed by selector.
type stubCaller struct {
	calls   []string
	results map[string]string
	err     error
}

func (s *stubCaller) CallContract(_ context.Context, _, data string) (string, error) {
	s.calls = append(s.calls, data)
	if s.err != nil {
		return "", s.err
	}
	for sel, ret := range s.results {
		if strings.HasPrefix(data, sel) {
			return ret, nil
		}
	}
	return "", fmt.Errorf("unexpected calldata %s", data)
}

func encodeStringReturn(s string) string {
	hexStr := fmt.Sprintf("%x", s)
	padded := hexStr + strings.Repeat("0", (64-len(hexStr)%64)%64)
	return "0x" +
		fmt.Sprintf("%064x", 32) +
		fmt.Sprintf("%064x", len(s)) +
		padded
}

func TestSelectors(t *testing.T) {
	// Known ERC-721 selectors.
	assert.Equal(t, "0x6352211e", selOwnerOf)
	assert.Equal(t, "0x70a08231", selBalanceOf)
	assert.Equal(t, "0xc87b56dd", selTokenURI)
	assert.Equal(t, "0x4f6ccce7", selTokenByIndex)
	assert.Equal(t, "0x18160ddd", selTotalSupply)
}

func TestReaderOwnerOf(t *testing.T) {
	owner := "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd"
	stub := &stubCaller{results: map[string]string{
		selOwnerOf: "0x" + strings.Repeat("0", 24) + strings.TrimPrefix(owner, "0x"),
	}}
	r := NewReader(stub, testContract, testMetrics)

	got, err := r.OwnerOf(context.Background(), big.NewInt(7))
	require.NoError(t, err)
	assert.Equal(t, owner, got)

	require.Len(t, stub.calls, 1)
	assert.Equal(t, selOwnerOf+fmt.Sprintf("%064x", 7), stub.calls[0])
}

func TestReaderBalanceOf(t *testing.T) {
	stub := &stubCaller{results: map[string]string{
		selBalanceOf: "0x" + fmt.Sprintf("%064x", 3),
	}}
	r := NewReader(stub, testContract, testMetrics)

	got, err := r.BalanceOf(context.Background(), "0xAbCdEfAbCdEfAbCdEfAbCdEfAbCdEfAbCdEfAbCd")
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Int64())

	// Address is lowercased and left padded into the calldata word.
	assert.Contains(t, stub.calls[0], "abcdefabcdefabcdefabcdefabcdefabcdefabcd")
}

func TestReaderTokenURI(t *testing.T) {
	uri := "ipfs://QmSomeMetadataHash"
	stub := &stubCaller{results: map[string]string{
		selTokenURI: encodeStringReturn(uri),
	}}
	r := NewReader(stub, testContract, testMetrics)

	got, err := r.TokenURI(context.Background(), big.NewInt(1))
	require.NoError(t, err)
	assert.Equal(t, uri, got)
}

func TestReaderTokenByIndex(t *testing.T) {
	stub := &stubCaller{results: map[string]string{
		selTokenByIndex: "0x" + fmt.Sprintf("%064x", 42),
	}}
	r := NewReader(stub, testContract, testMetrics)

	got, err := r.TokenByIndex(context.Background(), big.NewInt(0))
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.Int64())
}

func TestReaderTotalSupply(t *testing.T) {
	stub := &stubCaller{results: map[string]string{
		selTotalSupply: "0x" + fmt.Sprintf("%064x", 128),
	}}
	r := NewReader(stub, testContract, testMetrics)

	got, err := r.TotalSupply(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(128), got.Int64())

	require.Len(t, stub.calls, 1)
	assert.Equal(t, selTotalSupply, stub.calls[0])
}

func TestIsRevert(t *testing.T) {
	assert.True(t, IsRevert(&rpc.Error{Code: 3, Message: "execution reverted"}))
	assert.True(t, IsRevert(&rpc.Error{Code: -32000, Message: "execution reverted: ERC721: invalid token ID"}))
	assert.False(t, IsRevert(&rpc.Error{Code: -32601, Message: "method not found"}))
	assert.False(t, IsRevert(fmt.Errorf("connection refused")))
	assert.False(t, IsRevert(nil))
}

func TestTokenIDFromReceipt(t *testing.T) {
	t.Run("extracts token id from the mint event", func(t *testing.T) {
		receipt := &rpc.Receipt{
			Status: "0x1",
			Logs: []rpc.Log{
				{
					Address: testContract,
					Topics: []string{
						CredentialMintedTopic,
						"0x" + strings.Repeat("0", 64),
						"0x" + fmt.Sprintf("%064x", 15),
					},
				},
			},
		}
		id := TokenIDFromReceipt(receipt, testContract)
		require.NotNil(t, id)
		assert.Equal(t, int64(15), id.Int64())
	})

	t.Run("ignores logs from other contracts", func(t *testing.T) {
		receipt := &rpc.Receipt{
			Logs: []rpc.Log{
				{
					Address: "0x9999999999999999999999999999999999999999",
					Topics:  []string{CredentialMintedTopic, "0x0", "0x" + fmt.Sprintf("%064x", 15)},
				},
			},
		}
		assert.Nil(t, TokenIDFromReceipt(receipt, testContract))
	})

	t.Run("nil receipt yields nil", func(t *testing.T) {
		assert.Nil(t, TokenIDFromReceipt(nil, testContract))
	})
}

func TestDecodeString(t *testing.T) {
	t.Run("short data rejected", func(t *testing.T) {
		_, err := decodeString("0xdead")
		assert.Error(t, err)
	})

	t.Run("empty string round trips", func(t *testing.T) {
		got, err := decodeString(encodeStringReturn(""))
		require.NoError(t, err)
		assert.Equal(t, "", got)
	})
}
