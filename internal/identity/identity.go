// Package identity holds the small string heuristics the lookup relies on:
// email validation, deriving a display name from an email address, and
// spotting LinkedIn profile URLs inside free text.
package identity

import (
	"regexp"
	"strings"
)

// emailPattern is intentionally loose: localpart@domain.tld with no whitespace.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

var (
	separatorPattern  = regexp.MustCompile(`[._\-]`)
	digitPattern      = regexp.MustCompile(`[0-9]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// NameFromEmail derives a best-effort display name from the local part of an
// email address. It is the last resort when no source supplied a name.
//
// A single token longer than three characters is treated as an initial
// followed by a family name ("pnarsunaidu" -> "p narsunaidu"). This is a
// low-precision heuristic, not a name parser.
func NameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")

	name := separatorPattern.ReplaceAllString(local, " ")
	name = digitPattern.ReplaceAllString(name, "")
	name = strings.TrimSpace(whitespacePattern.ReplaceAllString(name, " "))

	runes := []rune(name)
	if !strings.Contains(name, " ") && len(runes) > 3 {
		name = string(runes[0]) + " " + string(runes[1:])
	}

	return name
}

// linkedInURLPattern matches a LinkedIn member profile URL embedded in text.
var linkedInURLPattern = regexp.MustCompile(`(?i)https?://(www\.)?linkedin\.com/in/[a-zA-Z0-9_\-]+/?`)

// profilePathPattern matches any URL pointing at a LinkedIn member profile.
var profilePathPattern = regexp.MustCompile(`(?i)linkedin\.com/in/`)

// FindLinkedInURL returns the first LinkedIn profile URL found in text, or "".
func FindLinkedInURL(text string) string {
	if text == "" {
		return ""
	}
	return linkedInURLPattern.FindString(text)
}

// IsProfileURL reports whether u points at a LinkedIn member profile page.
func IsProfileURL(u string) bool {
	return u != "" && profilePathPattern.MatchString(u)
}
