package model

import (
	"strings"
	"unicode"
)

// Options configures the behaviour of the Builder.
type Options struct {
	Labeler func(string) string
}

// DefaultLabeler turns a field name into sentence-case prompt text:
// "hotel_preference" and "hotelPreference" both become "Hotel preference".
// Dotted paths are labelled by their last segment and acronyms such as "ID"
// keep their case.
func DefaultLabeler(name string) string {
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	words := labelWords(name)
	if len(words) == 0 {
		return ""
	}
	for i, word := range words {
		if isAcronym(word) {
			continue
		}
		word = strings.ToLower(word)
		if i == 0 {
			runes := []rune(word)
			runes[0] = unicode.ToUpper(runes[0])
			word = string(runes)
		}
		words[i] = word
	}
	return strings.Join(words, " ")
}

// labelWords splits on separators and on lower-to-upper or letter-digit
// boundaries.
func labelWords(name string) []string {
	var (
		words   []string
		current []rune
	)
	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}
	runes := []rune(name)
	for i, r := range runes {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			flush()
			continue
		}
		if i > 0 && len(current) > 0 && boundary(runes[i-1], r) {
			flush()
		}
		current = append(current, r)
	}
	flush()
	return words
}

func boundary(prev, r rune) bool {
	switch {
	case unicode.IsLower(prev) && unicode.IsUpper(r):
		return true
	case unicode.IsLetter(prev) && unicode.IsDigit(r):
		return true
	case unicode.IsDigit(prev) && unicode.IsLetter(r):
		return true
	}
	return false
}

func isAcronym(word string) bool {
	if len(word) < 2 {
		return false
	}
	for _, r := range word {
		if !unicode.IsUpper(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
