// (c) The grimdig authors
//
// SPDX-License-Identifier: MIT

package certprobe

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/scrydom/grimdig/probe"
	"github.com/scrydom/grimdig/types"

	log "github.com/sirupsen/logrus"

	_ "github.com/lib/pq" // the CT service speaks PostgreSQL
)

// identityQuery is the text search the CT service runs for us: all
// distinct common names and subject alternative names of issued
// certificates below the queried domain.
const identityQuery = `
	SELECT DISTINCT cai.NAME_VALUE
	FROM certificate_and_identities AS cai
	WHERE
		plainto_tsquery('certwatch', $1) @@ identities(cai.certificate)
		AND (cai.NAME_TYPE = '2.5.4.3' OR cai.NAME_TYPE LIKE 'san:%')
		AND cai.NAME_VALUE LIKE '%.' || $1`

// Identity is one discovered certificate identity: an FQDN below the
// queried target's domain that has had a certificate issued for it.
type Identity struct {
	probe.Attempt
	Name types.FQDN
}

var _ probe.Result = (*Identity)(nil)

// Config holds the connection parameters of the certificate-transparency
// search service, which speaks the PostgreSQL wire protocol (as crt.sh's
// certwatch database does).
type Config struct {
	Host     string // defaults to "crt.sh".
	User     string // defaults to "guest".
	Database string // defaults to "certwatch".
}

// Searcher probes a certificate-transparency search backend for the
// identities below a target domain. Each discovered identity becomes an
// independent Success result sharing the queried target's domain.
type Searcher struct {
	db queryer
}

var _ probe.Prober = (*Searcher)(nil)

// queryer is the slice of *sql.DB the searcher needs; tests substitute a
// fake here.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// New returns a searcher connected (lazily) to the configured CT service.
// The CT service is public infrastructure, so the connection insists on
// TLS and keeps a single connection at most.
func New(cfg Config) (*Searcher, error) {
	if cfg.Host == "" {
		cfg.Host = "crt.sh"
	}
	if cfg.User == "" {
		cfg.User = "guest"
	}
	if cfg.Database == "" {
		cfg.Database = "certwatch"
	}
	dsn := fmt.Sprintf("host=%s user=%s dbname=%s sslmode=require",
		cfg.Host, cfg.User, cfg.Database)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open CT service connection: %w", err)
	}
	db.SetMaxOpenConns(1)
	return &Searcher{db: db}, nil
}

// Kind returns [types.KindCert].
func (s *Searcher) Kind() types.ProbeKind { return types.KindCert }

// Probe runs one identity search for the target's name. Every distinct
// identity found becomes its own Success result; a search without matches
// is a single NotFound; connection and query failures are Transient.
// Identity names that are no valid FQDNs (wildcard entries, mostly) are
// dropped with a warning, as they cannot serve as dedup keys.
func (s *Searcher) Probe(ctx context.Context, target types.Target) []probe.Result {
	attempt := probe.Attempt{
		ProbeKind:   types.KindCert,
		ProbeTarget: target,
	}
	rows, err := s.db.QueryContext(ctx, identityQuery, target.FQDN.String())
	if err != nil {
		attempt.Class = types.Transient
		attempt.Cause = fmt.Errorf("CT identity search for %q: %w", target.FQDN.String(), err)
		return []probe.Result{&Identity{Attempt: attempt}}
	}
	defer rows.Close()
	var results []probe.Result
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			attempt.Class = types.Transient
			attempt.Cause = fmt.Errorf("CT identity search for %q: %w", target.FQDN.String(), err)
			return []probe.Result{&Identity{Attempt: attempt}}
		}
		name = strings.TrimSuffix(name, ".")
		fqdn, err := types.ParseFQDN(name)
		if err != nil {
			log.Warnf("dropping CT identity %q: %s", name, err.Error())
			continue
		}
		results = append(results, &Identity{
			Attempt: probe.Attempt{
				ProbeKind:   types.KindCert,
				ProbeTarget: target,
				Class:       types.Success,
			},
			Name: fqdn,
		})
	}
	if err := rows.Err(); err != nil {
		attempt.Class = types.Transient
		attempt.Cause = fmt.Errorf("CT identity search for %q: %w", target.FQDN.String(), err)
		return []probe.Result{&Identity{Attempt: attempt}}
	}
	if len(results) == 0 {
		attempt.Class = types.NotFound
		return []probe.Result{&Identity{Attempt: attempt}}
	}
	return results
}
