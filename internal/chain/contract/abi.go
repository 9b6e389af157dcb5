// Package contract reads the Minet credential NFT contract over raw
// JSON-RPC. Calldata is built by hand; the contract surface is four view
// functions and one event, which does not justify a codegen pipeline.
package contract

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/sha3"
)

// Method selectors, the first four bytes of the keccak-256 hash of the
// canonical signature.
var (
	selOwnerOf      = selector("ownerOf(uint256)")
	selBalanceOf    = selector("balanceOf(address)")
	selTokenURI     = selector("tokenURI(uint256)")
	selTokenByIndex = selector("tokenByIndex(uint256)")
	selTotalSupply  = selector("totalSupply()")

	// CredentialMintedTopic identifies the mint event in receipt logs.
	// The tokenId rides in the second indexed slot.
	CredentialMintedTopic = eventTopic("CredentialMinted(address,uint256,string)")
)

func keccak(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}

func selector(signature string) string {
	return "0x" + hex.EncodeToString(keccak([]byte(signature))[:4])
}

func eventTopic(signature string) string {
	return "0x" + hex.EncodeToString(keccak([]byte(signature)))
}

func encodeUint256(v *big.Int) string {
	return fmt.Sprintf("%064x", v)
}

func encodeAddress(addr string) string {
	clean := strings.ToLower(strings.TrimPrefix(addr, "0x"))
	return strings.Repeat("0", 64-len(clean)) + clean
}

func stripHex(s string) string {
	return strings.TrimPrefix(s, "0x")
}

func decodeUint256(ret string) (*big.Int, error) {
	clean := stripHex(ret)
	if clean == "" {
		return nil, fmt.Errorf("empty return data")
	}
	v, ok := new(big.Int).SetString(clean, 16)
	if !ok {
		return nil, fmt.Errorf("malformed uint256 return data %q", ret)
	}
	return v, nil
}

func decodeAddress(ret string) (string, error) {
	clean := stripHex(ret)
	if len(clean) < 64 {
		return "", fmt.Errorf("short address return data %q", ret)
	}
	return "0x" + clean[24:64], nil
}

// decodeString unpacks a single ABI-encoded dynamic string return value:
// a 32-byte offset word, a 32-byte length word, then the bytes.
func decodeString(ret string) (string, error) {
	clean := stripHex(ret)
	if len(clean) < 128 {
		return "", fmt.Errorf("short string return data %q", ret)
	}

	offset, err := hexWord(clean, 0)
	if err != nil {
		return "", err
	}
	lenPos := int(offset.Int64()) * 2
	if lenPos+64 > len(clean) {
		return "", fmt.Errorf("string offset out of range in %q", ret)
	}

	length, err := hexWord(clean, lenPos)
	if err != nil {
		return "", err
	}
	dataPos := lenPos + 64
	dataEnd := dataPos + int(length.Int64())*2
	if dataEnd > len(clean) {
		return "", fmt.Errorf("string length out of range in %q", ret)
	}

	raw, err := hex.DecodeString(clean[dataPos:dataEnd])
	if err != nil {
		return "", fmt.Errorf("decode string bytes: %w", err)
	}
	return string(raw), nil
}

func hexWord(clean string, pos int) (*big.Int, error) {
	if pos+64 > len(clean) {
		return nil, fmt.Errorf("truncated word at %d", pos)
	}
	v, ok := new(big.Int).SetString(clean[pos:pos+64], 16)
	if !ok {
		return nil, fmt.Errorf("malformed word at %d", pos)
	}
	return v, nil
}
