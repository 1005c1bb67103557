// (c) The grimdig authors
//
// SPDX-License-Identifier: MIT

package webprobe

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/thediveo/success"
)

var _ = Describe("header anonymization", func() {

	It("blanks session cookie values but keeps names and attributes", func() {
		hs := NewHeaderSet(http.Header{
			"Set-Cookie": {"session=abc123; Path=/", "theme=dark"},
			"Server":     {"nginx"},
		})
		Expect(hs).To(HaveKeyWithValue("Set-Cookie",
			ConsistOf("session=; Path=/", "theme=")))
		Expect(hs).To(HaveKeyWithValue("Server", ConsistOf("nginx")))
	})

	It("leaves cookie-less Set-Cookie garbage alone", func() {
		hs := NewHeaderSet(http.Header{
			"Set-Cookie": {"garbage-without-an-equals-sign"},
		})
		Expect(hs).To(HaveKeyWithValue("Set-Cookie",
			ConsistOf("garbage-without-an-equals-sign")))
	})

	It("round-trips through its wire encoding", func() {
		hs := NewHeaderSet(http.Header{
			"Set-Cookie": {"session=abc123; Path=/"},
			"Server":     {"nginx"},
		})
		decoded := Successful(DecodeHeaderSet(hs.Encode()))
		Expect(decoded).To(Equal(hs))
		Expect(decoded["Set-Cookie"]).To(ConsistOf("session=; Path=/"))
	})

	It("encodes nil header sets as empty objects", func() {
		var hs HeaderSet
		Expect(string(hs.JSON())).To(Equal("{}"))
	})

})
