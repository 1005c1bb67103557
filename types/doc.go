// (c) The grimdig authors
//
// SPDX-License-Identifier: MIT

/*
Package types defines grimdig's information model, which revolves around
validated [Target] values (an [FQDN], optionally with an address) flowing
into the pipeline, and [Verdict]-classified probe results flowing out of
it. [ProbeKind] names the probe variants and, at the same time, the store
tables that results of each variant are deduplicated against and persisted
into.

Targets are immutable after construction: the only way to obtain a
non-zero [FQDN] is through parsing, so any FQDN handed through a channel
is known to be well-formed and can be shared between goroutines without
further ado.
*/
package types
