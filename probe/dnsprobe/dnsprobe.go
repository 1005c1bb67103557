// (c) The grimdig authors
//
// SPDX-License-Identifier: MIT

package dnsprobe

import (
	"context"
	"fmt"
	"net/netip"
	"time"

	"github.com/scrydom/grimdig/probe"
	"github.com/scrydom/grimdig/types"

	"github.com/miekg/dns"
)

// Resolution is the classified outcome of resolving one FQDN: the address
// set found, which is empty for a valid "no records" negative.
type Resolution struct {
	probe.Attempt
	Addrs []netip.Addr
}

var _ probe.Result = (*Resolution)(nil)

// Resolver probes targets by asking a single configured DNS server for
// their A and AAAA records. The underlying DNS client is immutable after
// construction and safe for concurrent exchanges.
type Resolver struct {
	client *dns.Client
	server string
}

var _ probe.Prober = (*Resolver)(nil)

// Option configures a [Resolver] during creation.
type Option func(*Resolver)

// WithTimeout bounds each individual DNS exchange. The default is 5s.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Resolver) { r.client.Timeout = timeout }
}

// New returns a resolver probing against the DNS server at the specified
// address and port, using plain UDP exchanges.
func New(server netip.Addr, port uint16, options ...Option) *Resolver {
	r := &Resolver{
		client: &dns.Client{
			Net:     "udp",
			Timeout: 5 * time.Second,
		},
		server: netip.AddrPortFrom(server, port).String(),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Kind returns [types.KindDNS].
func (r *Resolver) Kind() types.ProbeKind { return types.KindDNS }

// Probe resolves the target's A and AAAA records and returns exactly one
// classified resolution. NXDOMAIN and empty answers are a valid NotFound
// negative carrying an empty address set; network and timeout errors are
// Transient; any other response code is returned as Unclassified, since an
// unexpected code (SERVFAIL, REFUSED, ...) from the one configured server
// points at a systemic resolver problem rather than a per-name miss.
func (r *Resolver) Probe(ctx context.Context, target types.Target) []probe.Result {
	attempt := probe.Attempt{
		ProbeKind:   types.KindDNS,
		ProbeTarget: target,
	}
	name := dns.Fqdn(target.FQDN.String())
	var addrs []netip.Addr
	for _, qtype := range []uint16{dns.TypeA, dns.TypeAAAA} {
		msg := dns.Msg{
			MsgHdr: dns.MsgHdr{Id: dns.Id()},
		}
		msg.SetQuestion(name, qtype)
		reply, _, err := r.client.ExchangeContext(ctx, &msg, r.server)
		if err != nil {
			attempt.Class = types.Transient
			attempt.Cause = fmt.Errorf("exchange with %s: %w", r.server, err)
			return []probe.Result{&Resolution{Attempt: attempt}}
		}
		switch reply.Rcode {
		case dns.RcodeSuccess:
			addrs = append(addrs, answerAddrs(reply)...)
		case dns.RcodeNameError:
			// NXDOMAIN holds for the name as a whole, no point in asking
			// for the other address family.
			attempt.Class = types.NotFound
			return []probe.Result{&Resolution{Attempt: attempt}}
		default:
			attempt.Class = types.Unclassified
			attempt.Cause = fmt.Errorf("server %s answered %q for %q",
				r.server, dns.RcodeToString[reply.Rcode], target.FQDN.String())
			return []probe.Result{&Resolution{Attempt: attempt}}
		}
	}
	if len(addrs) == 0 {
		attempt.Class = types.NotFound
	} else {
		attempt.Class = types.Success
	}
	return []probe.Result{&Resolution{Attempt: attempt, Addrs: addrs}}
}

// answerAddrs plucks the A and AAAA record addresses out of a reply.
func answerAddrs(reply *dns.Msg) []netip.Addr {
	var addrs []netip.Addr
	for _, rr := range reply.Answer {
		switch answer := rr.(type) {
		case *dns.A:
			if addr, ok := netip.AddrFromSlice(answer.A.To4()); ok {
				addrs = append(addrs, addr)
			}
		case *dns.AAAA:
			if addr, ok := netip.AddrFromSlice(answer.AAAA); ok {
				addrs = append(addrs, addr)
			}
		}
	}
	return addrs
}
