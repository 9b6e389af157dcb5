// Package credential defines the data shapes shared by the renderer, the
// mint orchestrator, and the verification service.
package credential

import "strings"

// Data is the full set of fields a credential can carry. Every field except
// FullName is optional; empty sections are skipped when rendering.
// Skills is a list; the free-text sections (summary, experience, education,
// references) are single blocks that the renderer wraps as a whole.
type Data struct {
	FullName   string   `json:"fullName" validate:"max=120"`
	Profession string   `json:"profession,omitempty" validate:"max=160"`
	Summary    string   `json:"summary,omitempty" validate:"max=4000"`
	Skills     []string `json:"skills,omitempty" validate:"max=50,dive,max=120"`
	Education  string   `json:"education,omitempty" validate:"max=8000"`
	Experience string   `json:"experience,omitempty" validate:"max=8000"`
	References string   `json:"references,omitempty" validate:"max=8000"`
	Email      string   `json:"email,omitempty" validate:"omitempty,email"`
	Phone      string   `json:"phone,omitempty" validate:"max=40"`
	Location   string   `json:"location,omitempty" validate:"max=160"`
	PhotoURL   string   `json:"photoUrl,omitempty"`
	Template   string   `json:"template,omitempty" validate:"max=32"`
}

// Initials returns the uppercased first letter of each whitespace-separated
// name token, used when no photo is available.
func (d Data) Initials() string {
	var b strings.Builder
	for _, token := range strings.Fields(d.FullName) {
		r := []rune(token)
		b.WriteString(strings.ToUpper(string(r[0])))
	}
	return b.String()
}

// NonEmpty filters a slice down to entries with visible content.
func NonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

// Attribute is a single trait on an NFT metadata document.
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// Metadata is the NFT metadata document pinned to IPFS.
type Metadata struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Image       string      `json:"image,omitempty"`
	Attributes  []Attribute `json:"attributes"`
}

// Attribute returns the value of the named trait, or "" when absent.
func (m *Metadata) Attribute(traitType string) string {
	if m == nil {
		return ""
	}
	for _, a := range m.Attributes {
		if a.TraitType == traitType {
			return a.Value
		}
	}
	return ""
}

// MintResult reports the outcome of a completed mint. TokenID is "unknown"
// when the receipt carried no recognizable mint event.
type MintResult struct {
	Success         bool   `json:"success"`
	TokenID         string `json:"tokenId"`
	TransactionHash string `json:"transactionHash"`
	BlockNumber     uint64 `json:"blockNumber"`
	MetadataURI     string `json:"metadataUri"`
	ImageURI        string `json:"imageUri,omitempty"`
	DocumentURI     string `json:"documentUri,omitempty"`
}
