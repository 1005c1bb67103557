// (c) The grimdig authors
//
// SPDX-License-Identifier: MIT

package webprobe

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"strconv"
	"time"

	"github.com/scrydom/grimdig/types"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/thediveo/success"
)

// serviceAddrPort digs the listener address and port out of an httptest
// server URL.
func serviceAddrPort(srv *httptest.Server) (netip.Addr, uint16) {
	GinkgoHelper()
	host, porttext := Successful2R(net.SplitHostPort(srv.Listener.Addr().String()))
	port := Successful(strconv.ParseUint(porttext, 10, 16))
	return Successful(netip.ParseAddr(host)), uint16(port)
}

var _ = Describe("web knocking", func() {

	It("rejects unsupported schemes", func() {
		_, err := New("gopher")
		Expect(err).To(HaveOccurred())
	})

	It("knocks by address with the FQDN as virtual host", func(ctx context.Context) {
		var gotHost, gotUA string
		srv := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				gotHost = r.Host
				gotUA = r.Header.Get("User-Agent")
				w.Header().Add("Set-Cookie", "session=abc123; Path=/")
				w.WriteHeader(http.StatusTeapot)
			}))
		defer srv.Close()
		addr, port := serviceAddrPort(srv)

		knocker := Successful(New("http", WithPort(port), WithUserAgent("grimdig-test")))
		target := types.Target{
			FQDN: Successful(types.ParseFQDN("svc.example.org")),
			Addr: addr,
		}
		results := knocker.Probe(ctx, target)
		Expect(results).To(HaveLen(1))
		response := results[0].(*Response)
		Expect(response.Verdict()).To(Equal(types.Success))
		Expect(response.Kind()).To(Equal(types.KindHTTP))
		Expect(response.Status).To(Equal(http.StatusTeapot))
		Expect(response.URL).To(Equal("http://" + addr.String() + ":" + strconv.Itoa(int(port))))
		Expect(response.Headers).To(HaveKeyWithValue("Set-Cookie",
			ConsistOf("session=; Path=/")))
		Expect(gotHost).To(Equal("svc.example.org"))
		Expect(gotUA).To(Equal("grimdig-test"))
	}, SpecTimeout(10*time.Second))

	It("accepts invalid certificates when told to", func(ctx context.Context) {
		srv := httptest.NewTLSServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))
		defer srv.Close()
		addr, port := serviceAddrPort(srv)

		knocker := Successful(New("https", WithPort(port), WithInsecureTLS(true)))
		target := types.Target{
			FQDN: Successful(types.ParseFQDN("svc.example.org")),
			Addr: addr,
		}
		results := knocker.Probe(ctx, target)
		Expect(results).To(HaveLen(1))
		Expect(results[0].Verdict()).To(Equal(types.Success))
		Expect(results[0].Kind()).To(Equal(types.KindHTTPS))

		picky := Successful(New("https", WithPort(port), WithInsecureTLS(false)))
		results = picky.Probe(ctx, target)
		Expect(results).To(HaveLen(1))
		Expect(results[0].Verdict()).To(Equal(types.Transient))
		Expect(results[0].Reason()).To(HaveOccurred())
	}, SpecTimeout(10*time.Second))

	It("classifies unreachable services as transient", func(ctx context.Context) {
		knocker := Successful(New("http",
			WithPort(1), WithTimeout(2*time.Second)))
		target := types.Target{
			FQDN: Successful(types.ParseFQDN("svc.example.org")),
			Addr: netip.MustParseAddr("127.0.0.1"),
		}
		results := knocker.Probe(ctx, target)
		Expect(results).To(HaveLen(1))
		response := results[0].(*Response)
		Expect(response.Verdict()).To(Equal(types.Transient))
		Expect(response.Status).To(BeZero())
		Expect(response.Headers).To(BeNil())
	}, SpecTimeout(10*time.Second))

})
