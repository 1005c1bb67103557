// (c) The grimdig authors
//
// SPDX-License-Identifier: MIT

/*
Package store persists probe results into the recon database and answers
the pipeline's deduplication checks. The database keeps one table per
probe kind, named after the kind ("cert-recon", "dns-recon", "http-recon",
"https-recon"), each with a uniqueness constraint on the fqdn column.

Writes are idempotent upserts: DNS resolutions merge their address sets
into existing rows, web responses and certificate identities are
insert-if-absent. Schema creation and migration are outside this package;
it expects the tables to exist.
*/
package store
