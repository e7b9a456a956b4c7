package model

// Query is a single lookup request after input normalization.
type Query struct {
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`    // user supplied, highest priority
	Country string `json:"country,omitempty"` // user supplied location hint
}

// PartialIdentity is what one identity source knows about the target person.
// Fields the source did not supply stay empty.
type PartialIdentity struct {
	Source      string `json:"source"`
	Name        string `json:"name,omitempty"`
	Title       string `json:"title,omitempty"`
	Company     string `json:"company,omitempty"`
	Location    string `json:"location,omitempty"`
	LinkedInURL string `json:"linkedin_url,omitempty"`
	Bio         string `json:"bio,omitempty"`
}

// IdentityHint is the best-known identity assembled from all sources before
// the profile search starts.
type IdentityHint struct {
	Name        string `json:"name"`
	Company     string `json:"company,omitempty"`
	Location    string `json:"location,omitempty"`
	LinkedInURL string `json:"linkedin_url,omitempty"`
}

// SourcesChecked reports which identity sources returned data for a lookup.
type SourcesChecked struct {
	Apollo   bool `json:"apollo"`
	GitHub   bool `json:"github"`
	Gravatar bool `json:"gravatar"`
}

// LookupResult is the outcome of a successful lookup.
// MatchedProfiles[0] is always the primary target.
type LookupResult struct {
	SearchedName     string             `json:"searched_name"`
	MatchedProfiles  []CandidateProfile `json:"matched_profiles"`
	CompanyName      string             `json:"company_name"`
	CompanyEmployees []CandidateProfile `json:"company_employees"`
	SourcesChecked   SourcesChecked     `json:"sources_checked"`
}
