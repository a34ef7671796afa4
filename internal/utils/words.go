package utils

// Word-level helpers shared by the explorer and the cleaner.

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Punctuation is the ASCII punctuation set stripped from text.
const Punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var punct = func() [128]bool {
	var m [128]bool
	for i := 0; i < len(Punctuation); i++ {
		m[Punctuation[i]] = true
	}
	return m
}()

// Words splits s on Unicode whitespace.
func Words(s string) []string { return strings.Fields(s) }

// CountWords returns the number of whitespace-delimited tokens in s.
func CountWords(s string) int { return len(strings.Fields(s)) }

// Lower case-folds s using Unicode lowercase mappings.
// A Caser holds state, so one is built per call.
func Lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// StripPunctuation removes every ASCII punctuation character from s.
func StripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 128 && punct[r] {
			return -1
		}
		return r
	}, s)
}

// CollapseSpace replaces whitespace runs with one space and trims both ends.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// IsAlpha reports whether w is non-empty and made only of letters.
func IsAlpha(w string) bool {
	if w == "" {
		return false
	}
	for _, r := range w {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// IsQualifying reports whether w counts toward common words: at least two
// letters and nothing else.
func IsQualifying(w string) bool {
	return utf8.RuneCountInString(w) >= 2 && IsAlpha(w)
}

// IsShouting reports whether w is an all-caps word of more than one letter.
// Digits, punctuation or any lowercase letter disqualify it.
func IsShouting(w string) bool {
	if utf8.RuneCountInString(w) < 2 || !IsAlpha(w) {
		return false
	}
	cased := false
	for _, r := range w {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			cased = true
		}
	}
	return cased
}

// CountShouting returns the number of shouting words in s.
func CountShouting(s string) int {
	n := 0
	for _, w := range strings.Fields(s) {
		if IsShouting(w) {
			n++
		}
	}
	return n
}
