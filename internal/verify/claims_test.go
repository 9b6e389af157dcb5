package verify

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func metadataWithPrivate(t *testing.T, private map[string]any) map[string]any {
	t.Helper()
	raw, err := json.Marshal(private)
	require.NoError(t, err)
	return map[string]any{
		"name": "Jane Doe - OnchainCred",
		"attributes": []any{
			map[string]any{"trait_type": "Template", "value": "template-1"},
			map[string]any{"trait_type": "Private Metadata", "value": string(raw)},
		},
	}
}

func TestDeriveClaimStatusAllProvided(t *testing.T) {
	metadata := metadataWithPrivate(t, map[string]any{
		"selfAttestedClaims": map[string]any{
			"fullName":   "Jane Doe",
			"profession": "Engineer",
			"location":   "Lagos",
			"skills":     []string{"Go", "Solidity"},
			"email":      "jane@example.com",
			"phone":      "+2348012345678",
			"education":  "BSc Computer Science",
		},
		"references":    "Dr. Ade, +2348098765432",
		"walletAddress": "0x1111111111111111111111111111111111111111",
	})

	status := DeriveClaimStatus(metadata)

	require.Len(t, status.Checks, 9)
	for _, check := range status.Checks {
		assert.True(t, check.Provided, check.Label)
	}
	assert.Equal(t, 9, status.Provided)
	assert.Equal(t, 9, status.Total)
	assert.Equal(t, 100, status.Completeness)
}

func TestDeriveClaimStatusPartial(t *testing.T) {
	metadata := metadataWithPrivate(t, map[string]any{
		"selfAttestedClaims": map[string]any{
			"fullName":   "Jane Doe",
			"profession": "Engineer",
		},
	})

	status := DeriveClaimStatus(metadata)

	byLabel := make(map[string]bool, len(status.Checks))
	for _, check := range status.Checks {
		byLabel[check.Label] = check.Provided
	}

	assert.True(t, byLabel["Full Name Provided"])
	assert.True(t, byLabel["Profession Provided"])
	assert.False(t, byLabel["Location Provided"])
	assert.False(t, byLabel["Skills Included"])
	assert.False(t, byLabel["Education Entries Included"])
	assert.False(t, byLabel["Contact Email Provided"])
	assert.False(t, byLabel["Contact Phone Provided"])
	assert.False(t, byLabel["Reference Contact Provided"])
	assert.False(t, byLabel["Wallet Ownership Verified"])

	assert.Equal(t, 2, status.Provided)
	assert.Equal(t, 22, status.Completeness)
}

func TestDeriveClaimStatusArrayShapes(t *testing.T) {
	metadata := metadataWithPrivate(t, map[string]any{
		"selfAttestedClaims": map[string]any{
			"education": []string{"BSc", "MSc"},
		},
		"references": []any{map[string]any{"name": "Dr. Ade"}},
	})

	status := DeriveClaimStatus(metadata)

	byLabel := make(map[string]bool, len(status.Checks))
	for _, check := range status.Checks {
		byLabel[check.Label] = check.Provided
	}
	assert.True(t, byLabel["Education Entries Included"])
	assert.True(t, byLabel["Reference Contact Provided"])
}

func TestDeriveClaimStatusMissingOrBrokenAttribute(t *testing.T) {
	cases := map[string]map[string]any{
		"no attributes":    {"name": "x"},
		"no private":       {"attributes": []any{map[string]any{"trait_type": "Template", "value": "template-1"}}},
		"unparsable value": {"attributes": []any{map[string]any{"trait_type": "Private Metadata", "value": "{not json"}}},
		"non-string value": {"attributes": []any{map[string]any{"trait_type": "Private Metadata", "value": 42.0}}},
	}

	for name, metadata := range cases {
		t.Run(name, func(t *testing.T) {
			status := DeriveClaimStatus(metadata)
			require.Len(t, status.Checks, 9)
			for _, check := range status.Checks {
				assert.False(t, check.Provided, check.Label)
			}
			assert.Equal(t, 0, status.Provided)
			assert.Equal(t, 0, status.Completeness)
		})
	}
}
