package utils

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// MaxSlugTitleLength bounds the title part of a generated slug, in runes.
const MaxSlugTitleLength = 20

var (
	slugDisallowed = regexp.MustCompile(`[^a-z0-9가-힣]`)
	slugDashes     = regexp.MustCompile(`-+`)
	slugPattern    = regexp.MustCompile(`^[a-z0-9가-힣-]+$`)
)

// SlugifyTitle lowercases title, replaces every rune outside
// [a-z0-9가-힣] with '-', collapses dash runs and truncates the result to
// MaxSlugTitleLength runes. Titles are NFC-normalised first so decomposed
// Hangul jamo become syllables instead of dashes.
func SlugifyTitle(title string) string {
	s := strings.ToLower(norm.NFC.String(title))
	s = slugDisallowed.ReplaceAllString(s, "-")
	s = slugDashes.ReplaceAllString(s, "-")
	if runes := []rune(s); len(runes) > MaxSlugTitleLength {
		s = string(runes[:MaxSlugTitleLength])
	}
	return s
}

// Base36Timestamp renders t as base-36 Unix milliseconds.
func Base36Timestamp(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 36)
}

// GenerateSlug builds "{prefix}-{titleSlug}-{base36 millis}".
func GenerateSlug(prefix, title string, t time.Time) string {
	return prefix + "-" + SlugifyTitle(title) + "-" + Base36Timestamp(t)
}

// IsSlug reports whether s only uses slug characters.
func IsSlug(s string) bool {
	return slugPattern.MatchString(s)
}
