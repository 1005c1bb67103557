// (c) The grimdig authors
//
// SPDX-License-Identifier: MIT

package types

// ProbeKind identifies one of the probe variants. The kind doubles as the
// dedup namespace: one store table exists per kind, and the dedup key of a
// target is its FQDN within the kind's table.
type ProbeKind int

// The probe variants.
const (
	KindCert  ProbeKind = iota // certificate-transparency identity search.
	KindDNS                    // A/AAAA resolution against a configured server.
	KindHTTP                   // HEAD probe over plain HTTP.
	KindHTTPS                  // HEAD probe over TLS.
)

// String returns the probe kind's name, which is also its store table name.
func (k ProbeKind) String() string {
	switch k {
	case KindCert:
		return "cert-recon"
	case KindDNS:
		return "dns-recon"
	case KindHTTP:
		return "http-recon"
	case KindHTTPS:
		return "https-recon"
	}
	return "unknown"
}
