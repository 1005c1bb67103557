// (c) The grimdig authors
//
// SPDX-License-Identifier: MIT

/*
Package pipeline is the concurrent recon engine shared by all probe
variants. A [Pipeline] pulls validated targets off a channel, skips
targets whose result the store already knows (an advisory check, raced
deliberately and resolved by the store's idempotent upserts), fans the
rest out into a bounded pool of probe tasks gated by a shared
token-bucket, and fans the classified results back in completion order
into the sink, which emits one result line per completed probe and
persists results idempotently.

Failure handling is asymmetric on purpose: a malformed input line or a
transient network failure costs one target at most, while a store write
failure or an unclassified probe outcome latches a fatal error, stops
admission and drains the started probes before Run returns the cause.
*/
package pipeline
