// (c) The grimdig authors
//
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"net/netip"

	"github.com/scrydom/grimdig/types"
)

// Store is the persistence capability the pipeline consumes: an advisory
// existence check for deduplication plus one idempotent upsert per probe
// kind. Implementations must be safe for concurrent use; the pipeline
// calls into the store from many probe tasks at once.
//
// Known is advisory only. Two independent pipeline runs may both see
// "unknown" for the same key and probe it twice; the upserts resolve that
// race at the store boundary (unique constraint plus conflict clause), so
// no caller ever needs to lock around check-then-write.
type Store interface {
	// Known reports whether a record for the kind/fqdn dedup key already
	// exists.
	Known(ctx context.Context, kind types.ProbeKind, fqdn types.FQDN) (bool, error)
	// SaveResolution upserts a DNS resolution; on conflict the new address
	// set is unioned into the existing row's set. An empty address set
	// records a valid negative ("no records") result.
	SaveResolution(ctx context.Context, fqdn types.FQDN, addrs []netip.Addr) error
	// SaveResponse inserts an HTTP or HTTPS probe response unless a row
	// for the FQDN already exists (first writer wins). The header blob is
	// the JSON encoding of the anonymized header set.
	SaveResponse(ctx context.Context, kind types.ProbeKind, fqdn types.FQDN, url string, status int, headers []byte) error
	// SaveIdentity inserts a certificate-transparency identity unless
	// already present.
	SaveIdentity(ctx context.Context, fqdn types.FQDN) error
	// Close releases the underlying connection pool.
	Close() error
}
