package contract

import (
	"context"
	"errors"
	"math/big"
	"strings"

	"minet/internal/chain/rpc"
	"minet/internal/platform/metrics"
)

// Caller abstracts the JSON-RPC client for contract reads.
type Caller interface {
	CallContract(ctx context.Context, to, data string) (string, error)
}

// Reader performs read-only calls against the credential contract.
type Reader struct {
	caller  Caller
	address string
	metrics *metrics.Metrics
}

// NewReader builds a Reader for the contract at address.
func NewReader(caller Caller, address string, m *metrics.Metrics) *Reader {
	return &Reader{caller: caller, address: address, metrics: m}
}

// Address returns the configured contract address.
func (r *Reader) Address() string {
	return r.address
}

// OwnerOf returns the owner address of a token. Reverts map to the error
// returned by the node; use IsRevert to detect a nonexistent token.
func (r *Reader) OwnerOf(ctx context.Context, tokenID *big.Int) (string, error) {
	r.metrics.IncrementChainCalls("ownerOf")
	ret, err := r.caller.CallContract(ctx, r.address, selOwnerOf+encodeUint256(tokenID))
	if err != nil {
		return "", err
	}
	return decodeAddress(ret)
}

// BalanceOf returns how many tokens an address holds.
func (r *Reader) BalanceOf(ctx context.Context, owner string) (*big.Int, error) {
	r.metrics.IncrementChainCalls("balanceOf")
	ret, err := r.caller.CallContract(ctx, r.address, selBalanceOf+encodeAddress(owner))
	if err != nil {
		return nil, err
	}
	return decodeUint256(ret)
}

// TokenURI returns the metadata URI of a token.
func (r *Reader) TokenURI(ctx context.Context, tokenID *big.Int) (string, error) {
	r.metrics.IncrementChainCalls("tokenURI")
	ret, err := r.caller.CallContract(ctx, r.address, selTokenURI+encodeUint256(tokenID))
	if err != nil {
		return "", err
	}
	return decodeString(ret)
}

// TokenByIndex returns the token ID at a position in the contract's
// global enumeration.
func (r *Reader) TokenByIndex(ctx context.Context, index *big.Int) (*big.Int, error) {
	r.metrics.IncrementChainCalls("tokenByIndex")
	ret, err := r.caller.CallContract(ctx, r.address, selTokenByIndex+encodeUint256(index))
	if err != nil {
		return nil, err
	}
	return decodeUint256(ret)
}

// TotalSupply returns the number of minted tokens.
func (r *Reader) TotalSupply(ctx context.Context) (*big.Int, error) {
	r.metrics.IncrementChainCalls("totalSupply")
	ret, err := r.caller.CallContract(ctx, r.address, selTotalSupply)
	if err != nil {
		return nil, err
	}
	return decodeUint256(ret)
}

// IsRevert reports whether an error is a contract revert, which for the
// view functions here means the queried token does not exist.
func IsRevert(err error) bool {
	var rpcErr *rpc.Error
	if errors.As(err, &rpcErr) {
		if rpcErr.Code == 3 {
			return true
		}
		msg := strings.ToLower(rpcErr.Message)
		return strings.Contains(msg, "revert") || strings.Contains(msg, "execution error")
	}
	return false
}

// TokenIDFromReceipt extracts the minted token ID from a transaction
// receipt's CredentialMinted event. Returns nil when the event is absent.
func TokenIDFromReceipt(receipt *rpc.Receipt, contractAddress string) *big.Int {
	if receipt == nil {
		return nil
	}
	for _, log := range receipt.Logs {
		if !strings.EqualFold(log.Address, contractAddress) {
			continue
		}
		if len(log.Topics) < 3 || !strings.EqualFold(log.Topics[0], CredentialMintedTopic) {
			continue
		}
		if id, err := decodeUint256(log.Topics[2]); err == nil {
			return id
		}
	}
	return nil
}
