package entity

import (
	"regexp"
	"strings"
)

var identifierPattern = regexp.MustCompile(`^[A-Z0-9]{4}$`)

// Identifier is a normalized 4-character entry code such as "4HHB".
type Identifier string

// String returns the identifier as a plain string.
func (id Identifier) String() string {
	return string(id)
}

// NormalizeIdentifier trims surrounding whitespace and uppercases raw.
func NormalizeIdentifier(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// ParseIdentifier normalizes raw and checks that it is exactly four
// characters from [A-Z0-9]. It returns an *InvalidIdentifierError carrying
// the normalized value otherwise.
func ParseIdentifier(raw string) (Identifier, error) {
	normalized := NormalizeIdentifier(raw)
	if !identifierPattern.MatchString(normalized) {
		return "", &InvalidIdentifierError{Value: normalized}
	}
	return Identifier(normalized), nil
}
