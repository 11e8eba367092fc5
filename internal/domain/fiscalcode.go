package domain

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// FiscalCode identifies a message recipient. The format follows the Italian
// codice fiscale for natural persons.
type FiscalCode string

var fiscalCodePattern = regexp.MustCompile(
	`^[A-Z]{6}[0-9LMNPQRSTUV]{2}[ABCDEHLMPRST][0-9LMNPQRSTUV]{2}[A-Z][0-9LMNPQRSTUV]{3}[A-Z]$`)

// ParseFiscalCode validates and normalizes a recipient identifier.
func ParseFiscalCode(s string) (FiscalCode, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if !fiscalCodePattern.MatchString(s) {
		return "", fmt.Errorf("invalid fiscal code %q", s)
	}
	return FiscalCode(s), nil
}

// RecipientSet is a hash set of recipients a limited-write sender may target.
type RecipientSet map[FiscalCode]struct{}

// NewRecipientSet builds a set from the given codes.
func NewRecipientSet(codes ...FiscalCode) RecipientSet {
	set := make(RecipientSet, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return set
}

// Has reports membership of a single recipient.
func (s RecipientSet) Has(fc FiscalCode) bool {
	_, ok := s[fc]
	return ok
}

// Strings returns the identifiers, sorted for stable output.
func (s RecipientSet) Strings() []string {
	out := make([]string, 0, len(s))
	for fc := range s {
		out = append(out, string(fc))
	}
	sort.Strings(out)
	return out
}
