// (c) The grimdig authors
//
// SPDX-License-Identifier: MIT

package types

import (
	"fmt"
	"net/netip"
	"strings"
)

// Target is a single validated recon candidate: a fully qualified domain
// name, optionally paired with an IP address the name is expected to be
// reachable at. Targets are produced by the feed package, one per
// well-formed input line, and then flow through the pipeline unmodified.
type Target struct {
	FQDN FQDN
	Addr netip.Addr // optional; IsValid() reports presence
}

// ParseTarget parses a bare FQDN input line into a Target without an
// associated address.
func ParseTarget(line string, strict bool) (Target, error) {
	fqdn, err := parseFQDN(line, strict)
	if err != nil {
		return Target{}, err
	}
	return Target{FQDN: fqdn}, nil
}

// ParseAddressedTarget parses an input line of the form "<fqdn> <ip>",
// separated by exactly one space, into a Target carrying both the name and
// the address.
func ParseAddressedTarget(line string, strict bool) (Target, error) {
	name, addrtext, found := strings.Cut(line, " ")
	if !found {
		return Target{}, fmt.Errorf("cannot split %q into an FQDN and an IP address", line)
	}
	fqdn, err := parseFQDN(name, strict)
	if err != nil {
		return Target{}, err
	}
	addr, err := netip.ParseAddr(addrtext)
	if err != nil {
		return Target{}, err
	}
	return Target{FQDN: fqdn, Addr: addr}, nil
}

func parseFQDN(s string, strict bool) (FQDN, error) {
	if strict {
		return ParseStrictFQDN(s)
	}
	return ParseFQDN(s)
}

// String returns the target in its input-line form.
func (t Target) String() string {
	if t.Addr.IsValid() {
		return t.FQDN.String() + " " + t.Addr.String()
	}
	return t.FQDN.String()
}
