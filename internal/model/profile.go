package model

import "encoding/json"

// CandidateProfile is one discovered LinkedIn profile. LinkedInURL is the
// dedup key; it may be empty for matches that only exist in a paid source.
type CandidateProfile struct {
	LinkedInURL string `json:"linkedin_url"`
	Name        string `json:"name"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Snippet     string `json:"snippet"`
}

// MarshalJSON encodes absent fields as null.
func (p CandidateProfile) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		LinkedInURL *string `json:"linkedin_url"`
		Name        *string `json:"name"`
		Title       *string `json:"title"`
		Company     *string `json:"company"`
		Snippet     *string `json:"snippet"`
	}{
		LinkedInURL: Nullable(p.LinkedInURL),
		Name:        Nullable(p.Name),
		Title:       Nullable(p.Title),
		Company:     Nullable(p.Company),
		Snippet:     Nullable(p.Snippet),
	})
}

// Nullable returns nil for an empty string so it encodes as JSON null.
func Nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
