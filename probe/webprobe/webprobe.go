// (c) The grimdig authors
//
// SPDX-License-Identifier: MIT

package webprobe

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/scrydom/grimdig/probe"
	"github.com/scrydom/grimdig/types"
)

// DefaultUserAgent is the browser-alike user agent sent unless overridden.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"

// Response is the classified outcome of one HEAD knock: the probed URL
// and, on success, the response status together with the anonymized
// header set. Any response status counts as success, including client and
// server error statuses; a transient result carries status 0 and no
// headers.
type Response struct {
	probe.Attempt
	URL     string
	Status  int
	Headers HeaderSet
}

var _ probe.Result = (*Response)(nil)

// Knocker probes web endpoints with a single HEAD request per target over
// one fixed scheme, without following redirects. The underlying HTTP
// client is immutable after construction and shared by all concurrent
// probes.
type Knocker struct {
	kind      types.ProbeKind
	scheme    string
	port      uint16
	useragent string
	timeout   time.Duration
	insecure  bool
	proxy     *url.URL
	client    *http.Client
}

var _ probe.Prober = (*Knocker)(nil)

// Option configures a [Knocker] during creation.
type Option func(*Knocker)

// WithTimeout bounds the total duration of one HEAD request, connection
// establishment and TLS handshake included. The default is 10s.
func WithTimeout(timeout time.Duration) Option {
	return func(k *Knocker) { k.timeout = timeout }
}

// WithUserAgent overrides the user agent header.
func WithUserAgent(ua string) Option {
	return func(k *Knocker) { k.useragent = ua }
}

// WithPort knocks on the specified port instead of the scheme's default
// port, for reconnoitering services on alternate ports.
func WithPort(port uint16) Option {
	return func(k *Knocker) { k.port = port }
}

// WithProxy routes all probe requests through the specified proxy.
func WithProxy(proxy *url.URL) Option {
	return func(k *Knocker) { k.proxy = proxy }
}

// WithInsecureTLS controls whether invalid TLS certificates are accepted.
// Recon targets love broken certificates, so accepting them is the
// default.
func WithInsecureTLS(insecure bool) Option {
	return func(k *Knocker) { k.insecure = insecure }
}

// New returns a knocker probing over the specified scheme, either "http"
// or "https".
func New(scheme string, options ...Option) (*Knocker, error) {
	k := &Knocker{
		scheme:    scheme,
		useragent: DefaultUserAgent,
		timeout:   10 * time.Second,
		insecure:  true,
	}
	switch scheme {
	case "http":
		k.kind = types.KindHTTP
	case "https":
		k.kind = types.KindHTTPS
	default:
		return nil, fmt.Errorf("unsupported probe scheme %q", scheme)
	}
	for _, opt := range options {
		opt(k)
	}
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: k.insecure,
		},
	}
	if k.proxy != nil {
		transport.Proxy = http.ProxyURL(k.proxy)
	}
	k.client = &http.Client{
		Transport: transport,
		Timeout:   k.timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return k, nil
}

// Kind returns [types.KindHTTP] or [types.KindHTTPS], depending on the
// knocker's scheme.
func (k *Knocker) Kind() types.ProbeKind { return k.kind }

// Probe knocks once. The request goes to the target's address if the
// target carries one, with the FQDN set as the virtual host; a target
// without an address is probed under its name directly. Connection,
// timeout and TLS failures are Transient; a request that cannot even be
// constructed is Unclassified.
func (k *Knocker) Probe(ctx context.Context, target types.Target) []probe.Result {
	attempt := probe.Attempt{
		ProbeKind:   k.kind,
		ProbeTarget: target,
	}
	host := target.FQDN.String()
	if target.Addr.IsValid() {
		host = target.Addr.String()
		if target.Addr.Is6() {
			host = "[" + host + "]"
		}
	}
	probeurl := k.scheme + "://" + host
	if k.port != 0 {
		probeurl += ":" + strconv.Itoa(int(k.port))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, probeurl, nil)
	if err != nil {
		attempt.Class = types.Unclassified
		attempt.Cause = fmt.Errorf("cannot build request for %q: %w", probeurl, err)
		return []probe.Result{&Response{Attempt: attempt, URL: probeurl}}
	}
	req.Host = target.FQDN.String()
	req.Header.Set("User-Agent", k.useragent)
	resp, err := k.client.Do(req)
	if err != nil {
		attempt.Class = types.Transient
		attempt.Cause = err
		return []probe.Result{&Response{Attempt: attempt, URL: probeurl}}
	}
	resp.Body.Close()
	attempt.Class = types.Success
	return []probe.Result{&Response{
		Attempt: attempt,
		URL:     probeurl,
		Status:  resp.StatusCode,
		Headers: NewHeaderSet(resp.Header),
	}}
}
