// (c) The grimdig authors
//
// SPDX-License-Identifier: MIT

package feed

import (
	"context"
	"strings"
	"time"

	"github.com/scrydom/grimdig/types"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/onsi/gomega/gleak"
)

// slurp drains the target channel into a slice of input-line forms.
func slurp(targets <-chan types.Target) []string {
	var lines []string
	for target := range targets {
		lines = append(lines, target.String())
	}
	return lines
}

var _ = Describe("target feed", func() {

	BeforeEach(func() {
		goodgos := Goroutines()
		DeferCleanup(func() {
			Eventually(Goroutines).WithTimeout(2 * time.Second).WithPolling(100 * time.Millisecond).
				ShouldNot(HaveLeaked(goodgos))
		})
	})

	It("drops malformed lines without losing their neighbors", func(ctx context.Context) {
		f := New(strings.NewReader(
			"sub.example.com\nnot a domain\nother.example.com\n"))
		Expect(slurp(f.Targets(ctx))).To(ConsistOf(
			"sub.example.com", "other.example.com"))
	})

	It("parses fqdn/address pairs when asked to", func(ctx context.Context) {
		f := New(strings.NewReader(
			"svc.example.org 192.0.2.1\nsvc.example.org\nmail.example.org 2001:db8::25\n"),
			WithAddresses())
		Expect(slurp(f.Targets(ctx))).To(ConsistOf(
			"svc.example.org 192.0.2.1", "mail.example.org 2001:db8::25"))
	})

	It("applies strict label validation when asked to", func(ctx context.Context) {
		f := New(strings.NewReader(
			"0day.example.org\nfine.example.org\n"), WithStrict())
		Expect(slurp(f.Targets(ctx))).To(ConsistOf("fine.example.org"))
	})

	It("stops feeding when the context is cancelled", func(specctx context.Context) {
		ctx, cancel := context.WithCancel(specctx)
		f := New(strings.NewReader(
			"a.example.org\nb.example.org\nc.example.org\n"))
		targets := f.Targets(ctx)
		Expect(<-targets).NotTo(BeZero())
		cancel()
		Eventually(targets).WithTimeout(2 * time.Second).Should(BeClosed())
	})

	It("adapts an already-validated slice of targets", func(ctx context.Context) {
		fqdn, err := types.ParseFQDN("example.org")
		Expect(err).NotTo(HaveOccurred())
		Expect(slurp(FromNames(ctx, []types.Target{{FQDN: fqdn}}))).
			To(ConsistOf("example.org"))
	})

})
