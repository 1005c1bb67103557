// (c) The grimdig authors
//
// SPDX-License-Identifier: MIT

package types

import (
	"fmt"
	"regexp"
	"strings"
)

// fqdnRe accepts dot-separated sequences of at least two DNS labels, each
// label between 1 and 63 characters from the LDH set (letters, digits,
// hyphens). The overall length limit is checked separately.
var fqdnRe = regexp.MustCompile(`^(?:[a-zA-Z0-9-]{1,63}\.)+[a-zA-Z0-9-]{1,63}$`)

// FQDN is a validated fully qualified domain name, kept as its sequence of
// labels. FQDNs are immutable after construction; always go through
// ParseFQDN (or ParseStrictFQDN) so that an FQDN value in hand is known to
// be well-formed.
type FQDN struct {
	labels []string
}

// ParseFQDN validates s as a fully qualified domain name and returns it in
// label form. The total name must be between 1 and 253 characters and
// consist of at least two LDH labels.
func ParseFQDN(s string) (FQDN, error) {
	if s == "" || len(s) > 253 {
		return FQDN{}, fmt.Errorf("expected a fully qualified domain name, got %q", s)
	}
	if !fqdnRe.MatchString(s) {
		return FQDN{}, fmt.Errorf("expected a fully qualified domain name, got %q", s)
	}
	return FQDN{labels: strings.Split(s, ".")}, nil
}

// ParseStrictFQDN works like [ParseFQDN], but additionally rejects labels
// that begin with a digit or hyphen, end with a hyphen, or contain a double
// hyphen. Strict validation weeds out punycode-ish and plainly broken
// candidates early when feeding from untrusted discovery output.
func ParseStrictFQDN(s string) (FQDN, error) {
	fqdn, err := ParseFQDN(s)
	if err != nil {
		return FQDN{}, err
	}
	for _, label := range fqdn.labels {
		if strings.HasSuffix(label, "-") ||
			strings.Contains(label, "--") ||
			label[0] == '-' || (label[0] >= '0' && label[0] <= '9') {
			return FQDN{}, fmt.Errorf("expected a strictly valid domain name, got %q", s)
		}
	}
	return fqdn, nil
}

// IsZero reports whether the FQDN is the zero value, that is, not the
// result of successful parsing.
func (f FQDN) IsZero() bool {
	return len(f.labels) == 0
}

// Labels returns the FQDN's labels in their original order, leftmost label
// first. The returned slice is a copy and can be modified freely.
func (f FQDN) Labels() []string {
	labels := make([]string, len(f.labels))
	copy(labels, f.labels)
	return labels
}

// Domain returns the owning domain, that is, the final two labels of the
// FQDN. For an FQDN "www.foo.example.org" this is "example.org".
func (f FQDN) Domain() string {
	if len(f.labels) < 2 {
		return f.String()
	}
	return strings.Join(f.labels[len(f.labels)-2:], ".")
}

// String returns the canonical dotted textual form, without a trailing dot.
func (f FQDN) String() string {
	return strings.Join(f.labels, ".")
}
