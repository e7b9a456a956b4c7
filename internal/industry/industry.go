// Package industry classifies candidate profiles as technology-sector
// relevant using a fixed keyword vocabulary.
package industry

import (
	_ "embed"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/sells-group/linkedin-lookup/internal/model"
)

//go:embed keywords.yaml
var keywordsYAML []byte

type vocabulary struct {
	Roles        []string `yaml:"roles"`
	Technologies []string `yaml:"technologies"`
	Employers    []string `yaml:"employers"`
}

var keywords = sync.OnceValue(func() []string {
	var v vocabulary
	if err := yaml.Unmarshal(keywordsYAML, &v); err != nil {
		panic("industry: decode embedded keywords: " + err.Error())
	}
	out := make([]string, 0, len(v.Roles)+len(v.Technologies)+len(v.Employers))
	out = append(out, v.Roles...)
	out = append(out, v.Technologies...)
	out = append(out, v.Employers...)
	return out
})

// Keywords returns a copy of the vocabulary.
func Keywords() []string {
	kw := keywords()
	out := make([]string, len(kw))
	copy(out, kw)
	return out
}

// IsRelevant reports whether the profile's title, company or snippet
// mentions any technology keyword.
func IsRelevant(p model.CandidateProfile) bool {
	text := strings.ToLower(strings.Join([]string{p.Title, p.Company, p.Snippet}, " "))
	for _, kw := range keywords() {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// Filter returns the relevant profiles, preserving order.
func Filter(profiles []model.CandidateProfile) []model.CandidateProfile {
	out := make([]model.CandidateProfile, 0, len(profiles))
	for _, p := range profiles {
		if IsRelevant(p) {
			out = append(out, p)
		}
	}
	return out
}

// FilterKeepFirst keeps profiles[0] unconditionally and filters the rest.
func FilterKeepFirst(profiles []model.CandidateProfile) []model.CandidateProfile {
	if len(profiles) == 0 {
		return profiles
	}
	return append([]model.CandidateProfile{profiles[0]}, Filter(profiles[1:])...)
}
