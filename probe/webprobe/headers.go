// (c) The grimdig authors
//
// SPDX-License-Identifier: MIT

package webprobe

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// HeaderSet maps response header names to the ordered lists of their
// values as seen on the wire, with session cookie values blanked. It is
// what gets persisted and emitted for web probe responses, so nothing
// secret must ever survive its construction.
type HeaderSet map[string][]string

// NewHeaderSet anonymizes a response header map: all headers are taken
// over verbatim, except that the value of each Set-Cookie cookie is
// blanked while the cookie name and its attributes are preserved. A
// "session=abc123; Path=/" cookie thus becomes "session=; Path=/".
func NewHeaderSet(h http.Header) HeaderSet {
	hs := make(HeaderSet, len(h))
	for name, values := range h {
		anon := make([]string, 0, len(values))
		for _, value := range values {
			if http.CanonicalHeaderKey(name) == "Set-Cookie" {
				value = blankCookieValue(value)
			}
			anon = append(anon, value)
		}
		hs[name] = anon
	}
	return hs
}

// blankCookieValue strips the value from a Set-Cookie header line, keeping
// the cookie name and all attributes.
func blankCookieValue(cookie string) string {
	pair, attrs, hasAttrs := strings.Cut(cookie, ";")
	name, _, hasValue := strings.Cut(pair, "=")
	if !hasValue {
		return cookie
	}
	blanked := strings.TrimSpace(name) + "="
	if hasAttrs {
		blanked += ";" + attrs
	}
	return blanked
}

// Encode returns the header set as base64-encoded JSON, the form used in
// result output lines.
func (hs HeaderSet) Encode() string {
	blob, err := json.Marshal(hs)
	if err != nil {
		// A map of strings always marshals; keep the output line shape
		// anyway.
		return "..."
	}
	return base64.StdEncoding.EncodeToString(blob)
}

// JSON returns the header set as its JSON encoding, the form persisted
// into the recon store. A nil header set encodes as an empty object.
func (hs HeaderSet) JSON() []byte {
	if hs == nil {
		return []byte("{}")
	}
	blob, err := json.Marshal(hs)
	if err != nil {
		return []byte("{}")
	}
	return blob
}

// DecodeHeaderSet reverses [HeaderSet.Encode].
func DecodeHeaderSet(encoded string) (HeaderSet, error) {
	blob, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("cannot decode header set: %w", err)
	}
	var hs HeaderSet
	if err := json.Unmarshal(blob, &hs); err != nil {
		return nil, fmt.Errorf("cannot decode header set: %w", err)
	}
	return hs, nil
}
