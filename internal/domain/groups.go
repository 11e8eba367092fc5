package domain

import (
	"sort"
	"strings"

	"notifygate/pkg/option"
)

// UserGroup is a named capability scope carried by a caller's credential.
// The gateway injects the caller's groups as a comma-separated header; tokens
// outside this closed enumeration are dropped during parsing.
type UserGroup string

const (
	GroupAPIMessageRead           UserGroup = "ApiMessageRead"
	GroupAPIMessageWrite          UserGroup = "ApiMessageWrite"
	GroupAPILimitedMessageWrite   UserGroup = "ApiLimitedMessageWrite"
	GroupAPIMessageList           UserGroup = "ApiMessageList"
	GroupAPIServiceRead           UserGroup = "ApiServiceRead"
	GroupAPIServiceWrite          UserGroup = "ApiServiceWrite"
	GroupAPIProfileRead           UserGroup = "ApiProfileRead"
	GroupAPIProfileWrite          UserGroup = "ApiProfileWrite"
	GroupAPISubscriptionsFeedRead UserGroup = "ApiSubscriptionsFeedRead"
	GroupAPIDebugRead             UserGroup = "ApiDebugRead"
)

var knownGroups = map[UserGroup]struct{}{
	GroupAPIMessageRead:           {},
	GroupAPIMessageWrite:          {},
	GroupAPILimitedMessageWrite:   {},
	GroupAPIMessageList:           {},
	GroupAPIServiceRead:           {},
	GroupAPIServiceWrite:          {},
	GroupAPIProfileRead:           {},
	GroupAPIProfileWrite:          {},
	GroupAPISubscriptionsFeedRead: {},
	GroupAPIDebugRead:             {},
}

// ParseUserGroup maps a header token onto the enumeration. Unknown tokens map
// to None so callers can discard them without failing the whole request;
// groups added server-side later must not break older deployments.
func ParseUserGroup(s string) option.Option[UserGroup] {
	g := UserGroup(strings.TrimSpace(s))
	if _, ok := knownGroups[g]; !ok {
		return option.None[UserGroup]()
	}
	return option.Some(g)
}

// GroupSet is a hash set of capability groups keyed by their canonical token.
type GroupSet map[UserGroup]struct{}

// NewGroupSet builds a set from the given groups.
func NewGroupSet(groups ...UserGroup) GroupSet {
	set := make(GroupSet, len(groups))
	for _, g := range groups {
		set[g] = struct{}{}
	}
	return set
}

// ParseGroups parses a comma-separated header value into a GroupSet,
// silently discarding unrecognized tokens and duplicates. An empty or
// entirely unrecognized value yields an empty set.
func ParseGroups(csv string) GroupSet {
	set := make(GroupSet)
	for _, tok := range strings.Split(csv, ",") {
		if g, ok := ParseUserGroup(tok).Get(); ok {
			set[g] = struct{}{}
		}
	}
	return set
}

// Has reports membership of a single group.
func (s GroupSet) Has(g UserGroup) bool {
	_, ok := s[g]
	return ok
}

// Intersects reports whether the two sets share at least one group.
func (s GroupSet) Intersects(other GroupSet) bool {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	for g := range small {
		if _, ok := large[g]; ok {
			return true
		}
	}
	return false
}

// Strings returns the canonical tokens, sorted for stable logging.
func (s GroupSet) Strings() []string {
	out := make([]string, 0, len(s))
	for g := range s {
		out = append(out, string(g))
	}
	sort.Strings(out)
	return out
}
