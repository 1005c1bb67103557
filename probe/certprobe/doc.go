// (c) The grimdig authors
//
// SPDX-License-Identifier: MIT

/*
Package certprobe implements the certificate-transparency probe variant:
one full-text identity search per target domain against a CT search
service exposing the crt.sh certwatch query dialect over the PostgreSQL
wire protocol. Identities discovered below the domain each become an
independent success result.
*/
package certprobe
