// Package rank scores candidate profile names against a target name.
package rank

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sells-group/linkedin-lookup/internal/model"
)

// Score weights.
const (
	exactScore    = 100
	tokenEqual    = 30
	tokenPrefix   = 20
	tokenContains = 10
	wholeContains = 25
	sameLength    = 5
	minTokenLen   = 2
)

// Score rates how well candidate matches target on a 0-100 scale.
// Every target token is compared with every candidate token and the
// per-pair bonuses are summed before the final clamp.
func Score(candidate, target string) int {
	if candidate == "" || target == "" {
		return 0
	}

	// A Caser holds state and must not be shared between goroutines.
	lower := cases.Lower(language.Und)
	c := strings.TrimSpace(lower.String(candidate))
	t := strings.TrimSpace(lower.String(target))

	if c == t {
		return exactScore
	}

	cTokens := strings.Fields(c)
	tTokens := strings.Fields(t)

	score := 0
	for _, tt := range tTokens {
		if len([]rune(tt)) < minTokenLen {
			continue
		}
		for _, ct := range cTokens {
			switch {
			case ct == tt:
				score += tokenEqual
			case strings.HasPrefix(ct, tt) || strings.HasPrefix(tt, ct):
				score += tokenPrefix
			case strings.Contains(ct, tt) || strings.Contains(tt, ct):
				score += tokenContains
			}
		}
	}

	if strings.Contains(c, t) || strings.Contains(t, c) {
		score += wholeContains
	}
	if len(cTokens) == len(tTokens) {
		score += sameLength
	}

	return min(score, exactScore)
}

// Profiles returns the profiles sorted best match first. Ties keep their
// input order. The input slice is not modified.
func Profiles(profiles []model.CandidateProfile, target string) []model.CandidateProfile {
	type scored struct {
		p     model.CandidateProfile
		score int
	}
	ranked := make([]scored, len(profiles))
	for i, p := range profiles {
		ranked[i] = scored{p: p, score: Score(p.Name, target)}
	}

	slices.SortStableFunc(ranked, func(a, b scored) int {
		return b.score - a.score
	})

	out := make([]model.CandidateProfile, len(ranked))
	for i, r := range ranked {
		out[i] = r.p
	}
	return out
}
