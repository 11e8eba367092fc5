// Package iputil provides CIDR set parsing and membership tests plus client
// address extraction from forwarding headers. Matching is a pure function of
// (address, range) so it stays unit-testable independent of any request.
package iputil

import (
	"fmt"
	"net/http"
	"net/netip"
	"sort"
	"strings"
)

// CIDRSet is a hash set of canonical (masked) address ranges. An empty set
// conventionally means "no restriction"; callers decide what emptiness means.
type CIDRSet map[netip.Prefix]struct{}

// ParseCIDRs builds a CIDRSet from range literals. A bare address is accepted
// as a single-host range (/32 or /128). Duplicates collapse.
func ParseCIDRs(tokens []string) (CIDRSet, error) {
	set := make(CIDRSet, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		prefix, err := parseOne(tok)
		if err != nil {
			return nil, err
		}
		set[prefix] = struct{}{}
	}
	return set, nil
}

func parseOne(tok string) (netip.Prefix, error) {
	if strings.Contains(tok, "/") {
		prefix, err := netip.ParsePrefix(tok)
		if err != nil {
			return netip.Prefix{}, fmt.Errorf("parse CIDR %q: %w", tok, err)
		}
		return prefix.Masked(), nil
	}
	addr, err := netip.ParseAddr(tok)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("parse address %q: %w", tok, err)
	}
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}

// MustParseCIDRs is ParseCIDRs for statically known literals; it panics on
// malformed input and exists for wiring and tests.
func MustParseCIDRs(tokens ...string) CIDRSet {
	set, err := ParseCIDRs(tokens)
	if err != nil {
		panic(err)
	}
	return set
}

// Contains reports whether ip falls inside at least one range of the set.
// IPv4-mapped IPv6 addresses are unmapped before matching.
func (s CIDRSet) Contains(ip netip.Addr) bool {
	ip = ip.Unmap()
	for prefix := range s {
		if prefix.Contains(ip) {
			return true
		}
	}
	return false
}

// Strings returns the ranges in canonical text form, sorted for stable output.
func (s CIDRSet) Strings() []string {
	out := make([]string, 0, len(s))
	for prefix := range s {
		out = append(out, prefix.String())
	}
	sort.Strings(out)
	return out
}

// Loopback is the sentinel address used when a request carries no usable
// forwarding metadata.
var Loopback = netip.AddrFrom4([4]byte{127, 0, 0, 1})

// FromRequest extracts the caller's address following the trusted-proxy
// convention: first hop of X-Forwarded-For, then X-Real-IP, then the socket
// peer. It never fails; unparsable or missing metadata yields Loopback.
func FromRequest(r *http.Request) netip.Addr {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := xff
		if idx := strings.Index(xff, ","); idx != -1 {
			first = xff[:idx]
		}
		if addr, err := netip.ParseAddr(strings.TrimSpace(first)); err == nil {
			return addr.Unmap()
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		if addr, err := netip.ParseAddr(xri); err == nil {
			return addr.Unmap()
		}
	}
	if r.RemoteAddr != "" {
		if ap, err := netip.ParseAddrPort(r.RemoteAddr); err == nil {
			return ap.Addr().Unmap()
		}
		if addr, err := netip.ParseAddr(r.RemoteAddr); err == nil {
			return addr.Unmap()
		}
	}
	return Loopback
}
