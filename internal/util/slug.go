// Package util provides common utility functions.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	// Matches any run of non-alphanumeric characters.
	nonAlphanumericRe = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slugify converts a tag name to its search key.
// Accents are stripped, so differently typed names of one place share a slug.
//
// Examples:
//
//	"Road Trip"     → "road-trip"
//	"road_trip"     → "road-trip"
//	"Café Culture"  → "cafe-culture"
//	"🐉 Dragons!"   → "dragons"
//	"--leading--"   → "leading"
func Slugify(input string) string {
	// Decompose accented characters, then drop everything outside ASCII.
	s := norm.NFKD.String(input)
	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)

	s = strings.ToLower(s)
	s = nonAlphanumericRe.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}
