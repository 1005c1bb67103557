// (c) The grimdig authors
//
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/netip"
	"strings"

	"github.com/scrydom/grimdig/types"

	"github.com/lib/pq"
)

// Config holds the connection parameters of the recon database service.
type Config struct {
	Host     string // host name or IP address of the PostgreSQL service.
	Port     uint16 // optional; 0 selects the driver default.
	User     string
	Password string // optional.
	Database string
	SSLMode  string // optional; defaults to "disable".
	MaxConns int    // optional bound on the connection pool; defaults to 4.
}

// DSN renders the configuration into a libpq-style keyword/value
// connection string.
func (c Config) DSN() string {
	kvs := []string{
		"host=" + quoteDSN(c.Host),
		"user=" + quoteDSN(c.User),
		"dbname=" + quoteDSN(c.Database),
	}
	if c.Port != 0 {
		kvs = append(kvs, fmt.Sprintf("port=%d", c.Port))
	}
	if c.Password != "" {
		kvs = append(kvs, "password="+quoteDSN(c.Password))
	}
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	kvs = append(kvs, "sslmode="+sslmode)
	return strings.Join(kvs, " ")
}

// quoteDSN single-quotes a DSN value if it contains characters that would
// otherwise break the keyword/value syntax.
func quoteDSN(v string) string {
	if !strings.ContainsAny(v, " '\\") {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

// PG is the PostgreSQL-backed recon store. One table exists per probe
// kind, each with a uniqueness constraint on the fqdn column; all writes
// go through conflict-safe upserts so that concurrent pipeline runs can
// race on the same key without surfacing duplicate-key errors.
type PG struct {
	db *sql.DB
}

var _ Store = (*PG)(nil)

// Open returns a recon store backed by the configured PostgreSQL service.
// Connections are established lazily, but the service is pinged once so
// that a misconfigured store surfaces as a setup error before any target
// gets processed.
func Open(ctx context.Context, cfg Config) (*PG, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("cannot open recon database: %w", err)
	}
	maxconns := cfg.MaxConns
	if maxconns <= 0 {
		maxconns = 4
	}
	db.SetMaxOpenConns(maxconns)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot reach recon database: %w", err)
	}
	return &PG{db: db}, nil
}

// Known reports whether the kind's table already has a row for the FQDN.
func (s *PG) Known(ctx context.Context, kind types.ProbeKind, fqdn types.FQDN) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %q WHERE fqdn = $1)`, kind.String())
	var known bool
	if err := s.db.QueryRowContext(ctx, query, fqdn.String()).Scan(&known); err != nil {
		return false, fmt.Errorf("cannot check %q for %q: %w", kind.String(), fqdn.String(), err)
	}
	return known, nil
}

// SaveResolution upserts the resolved address set of an FQDN. On conflict
// the stored set becomes the distinct union of the old and new sets, so
// concurrent resolutions seeing different answers accumulate instead of
// overwriting each other.
func (s *PG) SaveResolution(ctx context.Context, fqdn types.FQDN, addrs []netip.Addr) error {
	ips := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		ips = append(ips, addr.String())
	}
	const query = `
		INSERT INTO "dns-recon" (fqdn, ips, domain)
		VALUES ($1, $2, $3)
		ON CONFLICT (fqdn) DO UPDATE
		SET ips = (SELECT ARRAY(SELECT DISTINCT UNNEST("dns-recon".ips || EXCLUDED.ips)))`
	if _, err := s.db.ExecContext(ctx, query, fqdn.String(), pq.Array(ips), fqdn.Domain()); err != nil {
		return fmt.Errorf("cannot save resolution for %q: %w", fqdn.String(), err)
	}
	return nil
}

// SaveResponse inserts a web probe response into the kind's table unless a
// row for the FQDN already exists.
func (s *PG) SaveResponse(ctx context.Context, kind types.ProbeKind, fqdn types.FQDN, url string, status int, headers []byte) error {
	if kind != types.KindHTTP && kind != types.KindHTTPS {
		return fmt.Errorf("cannot save a response under kind %q", kind.String())
	}
	if headers == nil {
		headers = []byte("{}")
	}
	query := fmt.Sprintf(`
		INSERT INTO %q (fqdn, url, "response-status", headers, domain)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (fqdn) DO NOTHING`, kind.String())
	if _, err := s.db.ExecContext(ctx, query, fqdn.String(), url, status, headers, fqdn.Domain()); err != nil {
		return fmt.Errorf("cannot save response for %q: %w", fqdn.String(), err)
	}
	return nil
}

// SaveIdentity inserts a discovered certificate identity unless already
// present.
func (s *PG) SaveIdentity(ctx context.Context, fqdn types.FQDN) error {
	const query = `
		INSERT INTO "cert-recon" (fqdn, domain)
		VALUES ($1, $2)
		ON CONFLICT (fqdn) DO NOTHING`
	if _, err := s.db.ExecContext(ctx, query, fqdn.String(), fqdn.Domain()); err != nil {
		return fmt.Errorf("cannot save identity %q: %w", fqdn.String(), err)
	}
	return nil
}

// Close releases the connection pool.
func (s *PG) Close() error {
	return s.db.Close()
}
