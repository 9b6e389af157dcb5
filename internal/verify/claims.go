package verify

import (
	"math"

	"github.com/goccy/go-json"
)

// ClaimCheck is one derived claim with its verdict.
type ClaimCheck struct {
	Label    string `json:"label"`
	Provided bool   `json:"provided"`
}

// ClaimStatus summarizes which self-attested claims a credential carries.
type ClaimStatus struct {
	Checks       []ClaimCheck `json:"checks"`
	Provided     int          `json:"provided"`
	Total        int          `json:"total"`
	Completeness int          `json:"completeness"`
}

type selfAttestedClaims struct {
	FullName   string          `json:"fullName"`
	Profession string          `json:"profession"`
	Location   string          `json:"location"`
	Skills     []string        `json:"skills"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	Education  json.RawMessage `json:"education"`
}

type privateMetadata struct {
	SelfAttestedClaims selfAttestedClaims `json:"selfAttestedClaims"`
	References         json.RawMessage    `json:"references"`
	WalletAddress      string             `json:"walletAddress"`
}

// DeriveClaimStatus evaluates the nine claim checks against a metadata
// document. The claims ride inside the "Private Metadata" attribute as an
// embedded JSON string; an absent or unparsable attribute yields all-false
// checks rather than an error.
func DeriveClaimStatus(metadata map[string]any) ClaimStatus {
	var private privateMetadata
	if raw := privateMetadataValue(metadata); raw != "" {
		// Parse failures leave the zero value, claims simply read as absent.
		_ = json.Unmarshal([]byte(raw), &private)
	}

	claims := private.SelfAttestedClaims
	checks := []ClaimCheck{
		{Label: "Full Name Provided", Provided: claims.FullName != ""},
		{Label: "Profession Provided", Provided: claims.Profession != ""},
		{Label: "Location Provided", Provided: claims.Location != ""},
		{Label: "Skills Included", Provided: len(claims.Skills) > 0},
		{Label: "Education Entries Included", Provided: rawHasContent(claims.Education)},
		{Label: "Contact Email Provided", Provided: claims.Email != ""},
		{Label: "Contact Phone Provided", Provided: claims.Phone != ""},
		{Label: "Reference Contact Provided", Provided: rawHasContent(private.References)},
		{Label: "Wallet Ownership Verified", Provided: private.WalletAddress != ""},
	}

	provided := 0
	for _, c := range checks {
		if c.Provided {
			provided++
		}
	}

	return ClaimStatus{
		Checks:       checks,
		Provided:     provided,
		Total:        len(checks),
		Completeness: int(math.Round(float64(provided) / float64(len(checks)) * 100)),
	}
}

// privateMetadataValue digs the "Private Metadata" attribute value out of
// a raw metadata document.
func privateMetadataValue(metadata map[string]any) string {
	attrs, ok := metadata["attributes"].([]any)
	if !ok {
		return ""
	}
	for _, a := range attrs {
		attr, ok := a.(map[string]any)
		if !ok {
			continue
		}
		if attr["trait_type"] != "Private Metadata" {
			continue
		}
		if v, ok := attr["value"].(string); ok {
			return v
		}
	}
	return ""
}

// rawHasContent reports whether a raw JSON field holds a non-empty string
// or a non-empty array. The minting clients wrote these fields in both
// shapes over time.
func rawHasContent(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s != ""
	}

	var list []any
	if err := json.Unmarshal(raw, &list); err == nil {
		return len(list) > 0
	}
	return false
}
