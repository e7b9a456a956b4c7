package search

import (
	"regexp"
	"strings"

	"github.com/sells-group/linkedin-lookup/internal/identity"
	"github.com/sells-group/linkedin-lookup/internal/model"
)

var (
	pipeSuffix   = regexp.MustCompile(`(?i)\s*\|\s*LinkedIn\s*$`)
	hyphenSuffix = regexp.MustCompile(`(?i)\s*-\s*LinkedIn\s*$`)
)

// ParseTitle splits a search-indexed LinkedIn title such as
// "Jane Doe - Senior Engineer - Acme Corp | LinkedIn" into name, current
// role and current company. Missing parts are empty.
func ParseTitle(title string) (name, role, company string) {
	cleaned := pipeSuffix.ReplaceAllString(title, "")
	cleaned = strings.TrimSpace(hyphenSuffix.ReplaceAllString(cleaned, ""))

	var parts []string
	for _, p := range strings.Split(cleaned, " - ") {
		p = strings.TrimSpace(p)
		if p == "" || strings.EqualFold(p, "linkedin") {
			continue
		}
		parts = append(parts, p)
	}

	switch {
	case len(parts) >= 3:
		return parts[0], parts[1], parts[2]
	case len(parts) == 2:
		return parts[0], "", parts[1]
	case len(parts) == 1:
		return parts[0], "", ""
	default:
		return "", "", ""
	}
}

// parseHits keeps profile-page hits and maps them to candidates. The
// snippet is carried through untouched; it can mention past employers so
// the company only ever comes from the title.
func parseHits(hits []Hit) []model.CandidateProfile {
	var out []model.CandidateProfile
	for _, h := range hits {
		if h.URL == "" || !identity.IsProfileURL(h.URL) {
			continue
		}
		name, role, company := ParseTitle(h.Title)
		out = append(out, model.CandidateProfile{
			LinkedInURL: h.URL,
			Name:        name,
			Title:       role,
			Company:     company,
			Snippet:     h.Snippet,
		})
	}
	return out
}
