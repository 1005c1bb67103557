// (c) The grimdig authors
//
// SPDX-License-Identifier: MIT

/*
Package feed ingests newline-delimited recon candidates from an unbounded,
non-seekable stream and emits them as a channel of validated
[github.com/scrydom/grimdig/types.Target] values. Each line is parsed
independently; malformed lines are logged and skipped, so no target is
ever lost to a parse error in a different line.
*/
package feed
