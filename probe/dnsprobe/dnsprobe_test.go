// (c) The grimdig authors
//
// SPDX-License-Identifier: MIT

package dnsprobe

import (
	"context"
	"net"
	"net/netip"
	"time"

	"github.com/scrydom/grimdig/types"

	"github.com/miekg/dns"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/thediveo/success"
)

// serveDNS runs a throw-away DNS server on a loopback UDP port, answering
// with the specified handler, and registers its teardown.
func serveDNS(handler dns.Handler) (netip.Addr, uint16) {
	GinkgoHelper()
	pc := Successful(net.ListenPacket("udp", "127.0.0.1:0"))
	srv := &dns.Server{PacketConn: pc, Handler: handler}
	go func() { _ = srv.ActivateAndServe() }()
	DeferCleanup(func() { _ = srv.Shutdown() })
	addrport := Successful(netip.ParseAddrPort(pc.LocalAddr().String()))
	return addrport.Addr(), addrport.Port()
}

// probeOne runs a single probe and returns its sole resolution.
func probeOne(ctx context.Context, r *Resolver, name string) *Resolution {
	GinkgoHelper()
	target := types.Target{FQDN: Successful(types.ParseFQDN(name))}
	results := r.Probe(ctx, target)
	Expect(results).To(HaveLen(1))
	return results[0].(*Resolution)
}

var _ = Describe("DNS resolution probing", func() {

	It("classifies answers as success with the address set", func(ctx context.Context) {
		addr, port := serveDNS(dns.HandlerFunc(
			func(w dns.ResponseWriter, r *dns.Msg) {
				m := new(dns.Msg)
				m.SetReply(r)
				switch r.Question[0].Qtype {
				case dns.TypeA:
					m.Answer = append(m.Answer, &dns.A{
						Hdr: dns.RR_Header{Name: r.Question[0].Name,
							Rrtype: dns.TypeA, Class: dns.ClassINET, Ttl: 60},
						A: net.ParseIP("192.0.2.1"),
					})
				case dns.TypeAAAA:
					m.Answer = append(m.Answer, &dns.AAAA{
						Hdr: dns.RR_Header{Name: r.Question[0].Name,
							Rrtype: dns.TypeAAAA, Class: dns.ClassINET, Ttl: 60},
						AAAA: net.ParseIP("2001:db8::1"),
					})
				}
				_ = w.WriteMsg(m)
			}))

		res := probeOne(ctx, New(addr, port), "svc.example.org")
		Expect(res.Verdict()).To(Equal(types.Success))
		Expect(res.Kind()).To(Equal(types.KindDNS))
		Expect(res.Addrs).To(ConsistOf(
			netip.MustParseAddr("192.0.2.1"), netip.MustParseAddr("2001:db8::1")))
	}, SpecTimeout(10*time.Second))

	It("classifies empty answers and NXDOMAIN as valid negatives", func(ctx context.Context) {
		addr, port := serveDNS(dns.HandlerFunc(
			func(w dns.ResponseWriter, r *dns.Msg) {
				m := new(dns.Msg)
				if r.Question[0].Name == "nxdomain.example.org." {
					m.SetRcode(r, dns.RcodeNameError)
				} else {
					m.SetReply(r) // NOERROR, no answers
				}
				_ = w.WriteMsg(m)
			}))
		resolver := New(addr, port)

		res := probeOne(ctx, resolver, "empty.example.org")
		Expect(res.Verdict()).To(Equal(types.NotFound))
		Expect(res.Addrs).To(BeEmpty())

		res = probeOne(ctx, resolver, "nxdomain.example.org")
		Expect(res.Verdict()).To(Equal(types.NotFound))
		Expect(res.Addrs).To(BeEmpty())
	}, SpecTimeout(10*time.Second))

	It("treats unexpected response codes as unclassified", func(ctx context.Context) {
		addr, port := serveDNS(dns.HandlerFunc(
			func(w dns.ResponseWriter, r *dns.Msg) {
				m := new(dns.Msg)
				m.SetRcode(r, dns.RcodeServerFailure)
				_ = w.WriteMsg(m)
			}))

		res := probeOne(ctx, New(addr, port), "svc.example.org")
		Expect(res.Verdict()).To(Equal(types.Unclassified))
		Expect(res.Reason()).To(MatchError(ContainSubstring("SERVFAIL")))
	}, SpecTimeout(10*time.Second))

	It("treats network trouble as transient", func(ctx context.Context) {
		resolver := New(netip.MustParseAddr("127.0.0.1"), 1,
			WithTimeout(time.Second))

		res := probeOne(ctx, resolver, "svc.example.org")
		Expect(res.Verdict()).To(Equal(types.Transient))
		Expect(res.Reason()).To(HaveOccurred())
	}, SpecTimeout(10*time.Second))

})
