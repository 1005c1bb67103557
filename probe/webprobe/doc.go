// (c) The grimdig authors
//
// SPDX-License-Identifier: MIT

/*
Package webprobe implements the HTTP and HTTPS probe variant: a single
HEAD request per target and scheme, virtual-hosted onto the target's FQDN
when probing by address, never following redirects. Response headers are
anonymized into a [HeaderSet] before they leave this package, blanking
session cookie values while keeping cookie names and attributes.
*/
package webprobe
