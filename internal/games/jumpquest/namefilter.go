package jumpquest

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MinNameLength = 3
	MaxNameLength = 20
)

var (
	ErrNameTooShort   = fmt.Errorf("name must be at least %d characters", MinNameLength)
	ErrNameTooLong    = fmt.Errorf("name must be at most %d characters", MaxNameLength)
	ErrNameCharacters = errors.New("name may only contain letters, digits, spaces, hyphens and underscores")
	ErrNameBlocked    = errors.New("name contains inappropriate content")
)

var blockedWords = []string{
	"merda", "puta", "caralho", "foda", "porra", "buceta", "viado", "bicha",
	"puto", "filho da puta", "fdp", "vsf", "vai se foder", "vtnc",
	"fuck", "shit", "bitch", "cunt", "dick", "pussy", "nigger", "nigga",
	"faggot", "retard",
}

// NameRune reports whether r may appear in a player name.
func NameRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_'
}

// ValidateName checks a player name, returning nil when it is acceptable.
func ValidateName(name string) error {
	n := utf8.RuneCountInString(name)
	switch {
	case n < MinNameLength:
		return ErrNameTooShort
	case n > MaxNameLength:
		return ErrNameTooLong
	}
	for _, r := range name {
		if !NameRune(r) {
			return ErrNameCharacters
		}
	}
	lower := strings.ToLower(name)
	for _, w := range blockedWords {
		if strings.Contains(lower, w) {
			return ErrNameBlocked
		}
	}
	return nil
}
