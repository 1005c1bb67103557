// (c) The grimdig authors
//
// SPDX-License-Identifier: MIT

/*
Package admission provides the token-bucket [Gate] that rate-limits
outbound probing. One Gate is shared by all concurrently running probe
tasks of a pipeline; waiting for a token is the only place where probe
tasks queue up, so the gate bounds the rate of connection attempts without
ever rejecting work.
*/
package admission
