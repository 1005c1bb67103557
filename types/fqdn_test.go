// (c) The grimdig authors
//
// SPDX-License-Identifier: MIT

package types

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/thediveo/success"
)

var _ = Describe("FQDN validation", func() {

	It("parses well-formed names", func() {
		fqdn := Successful(ParseFQDN("www.foo.example.org"))
		Expect(fqdn.String()).To(Equal("www.foo.example.org"))
		Expect(fqdn.Labels()).To(ConsistOf("www", "foo", "example", "org"))
		Expect(fqdn.Domain()).To(Equal("example.org"))
		Expect(fqdn.IsZero()).To(BeFalse())
	})

	It("rejects malformed names", func() {
		for _, bad := range []string{
			"",
			"example",                          // single label
			"not a domain",                     // spaces
			".example.org",                     // empty label
			"example..org",                     // empty label
			"exa_mple.org",                     // non-LDH character
			strings.Repeat("a", 64) + ".org",   // overlong label
			strings.Repeat("abcdef.", 37) + "org", // overlong name
		} {
			_, err := ParseFQDN(bad)
			Expect(err).To(HaveOccurred(), "should have rejected %q", bad)
		}
	})

	It("additionally rejects shady labels in strict mode", func() {
		for _, bad := range []string{
			"0day.example.org",
			"-foo.example.org",
			"foo-.example.org",
			"xn--nope.example.org",
		} {
			Expect(Successful(ParseFQDN(bad)).IsZero()).To(BeFalse())
			_, err := ParseStrictFQDN(bad)
			Expect(err).To(HaveOccurred(), "should have rejected %q", bad)
		}
		Expect(Successful(ParseStrictFQDN("foo-bar.example.org")).String()).
			To(Equal("foo-bar.example.org"))
	})

})

var _ = Describe("Target parsing", func() {

	It("parses a bare FQDN line", func() {
		target := Successful(ParseTarget("svc.example.org", false))
		Expect(target.FQDN.String()).To(Equal("svc.example.org"))
		Expect(target.Addr.IsValid()).To(BeFalse())
		Expect(target.String()).To(Equal("svc.example.org"))
	})

	It("parses an addressed line", func() {
		target := Successful(ParseAddressedTarget("svc.example.org 192.0.2.1", false))
		Expect(target.FQDN.String()).To(Equal("svc.example.org"))
		Expect(target.Addr.String()).To(Equal("192.0.2.1"))
		Expect(target.String()).To(Equal("svc.example.org 192.0.2.1"))
	})

	It("rejects addressed lines that don't split or don't parse", func() {
		for _, bad := range []string{
			"svc.example.org",             // no address
			"svc.example.org not-an-ip",   // broken address
			"not a domain 192.0.2.1",      // too many fields
		} {
			_, err := ParseAddressedTarget(bad, false)
			Expect(err).To(HaveOccurred(), "should have rejected %q", bad)
		}
	})

})
