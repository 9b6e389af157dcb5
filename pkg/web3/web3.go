// Package web3 holds small chain-adjacent value helpers: address and
// transaction-hash validation, display truncation, and IPFS CID checks.
package web3

import (
	"regexp"
	"strings"

	"github.com/mr-tron/base58"
)

var (
	addressRe = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)
	txHashRe  = regexp.MustCompile(`^0x[a-fA-F0-9]{64}$`)
)

// IsValidAddress reports whether s looks like a 20-byte hex EVM address.
func IsValidAddress(s string) bool {
	return addressRe.MatchString(s)
}

// IsValidTransactionHash reports whether s looks like a 32-byte hex tx hash.
func IsValidTransactionHash(s string) bool {
	return txHashRe.MatchString(s)
}

// TruncateAddress shortens an address for display: 0x1234...abcd.
func TruncateAddress(address string) string {
	if address == "" {
		return ""
	}
	if len(address) <= 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}

// IsValidCIDv0 reports whether s is a plausible CIDv0 (base58btc-encoded
// sha2-256 multihash, "Qm" prefix, 46 chars). Pinata returns CIDv0 hashes;
// this guards against garbage in the pinning response.
func IsValidCIDv0(s string) bool {
	if len(s) != 46 || !strings.HasPrefix(s, "Qm") {
		return false
	}
	raw, err := base58.Decode(s)
	if err != nil {
		return false
	}
	// 0x12 = sha2-256, 0x20 = 32-byte digest, per the multihash spec.
	return len(raw) == 34 && raw[0] == 0x12 && raw[1] == 0x20
}
