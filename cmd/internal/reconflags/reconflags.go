// (c) The grimdig authors
//
// SPDX-License-Identifier: MIT

package reconflags

import (
	"context"
	"os"
	"time"

	"github.com/scrydom/grimdig/admission"
	"github.com/scrydom/grimdig/store"

	"github.com/spf13/pflag"
)

// EnvOr returns the value of the environment variable key, or def when it
// is unset or empty. Flag defaults come from the environment this way, so
// the flags always win over the environment.
func EnvOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Store bundles the recon database flags shared by all recon tools.
type Store struct {
	Host     string
	User     string
	Password string
	Database string
	Enabled  bool
	Reprobe  bool
}

// Register adds the recon database flags to the given flag set.
func (s *Store) Register(f *pflag.FlagSet) {
	f.StringVar(&s.Host, "recon-db-host", EnvOr("RECON_DB_HOST", "localhost"),
		"IP address or host name of the recon database service")
	f.StringVar(&s.User, "recon-db-username", EnvOr("RECON_DB_USERNAME", "recon"),
		"username for authenticating with the recon database service")
	f.StringVar(&s.Password, "recon-db-password", EnvOr("RECON_DB_PASSWORD", ""),
		"password for authenticating with the recon database service")
	f.StringVar(&s.Database, "recon-db-database", EnvOr("RECON_DB_DATABASE", "recon"),
		"database to connect to on the recon database service")
	f.BoolVarP(&s.Enabled, "enable-db-storage", "e", false,
		"store results in the recon database")
	f.BoolVar(&s.Reprobe, "query-known-fqdns", false,
		"probe targets even if their result is already known; "+
			"ignored when the recon database integration is disabled")
}

// Open connects to the recon database if storage is enabled, and otherwise
// returns a nil store, disabling deduplication and persistence.
func (s *Store) Open(ctx context.Context) (store.Store, error) {
	if !s.Enabled {
		return nil, nil
	}
	pg, err := store.Open(ctx, store.Config{
		Host:     s.Host,
		User:     s.User,
		Password: s.Password,
		Database: s.Database,
	})
	if err != nil {
		return nil, err
	}
	return pg, nil
}

// Budget bundles the admission control flags shared by all recon tools.
type Budget struct {
	PerMinute int
	Max       int
}

// Register adds the admission control flags with tool-specific defaults.
func (b *Budget) Register(f *pflag.FlagSet, perMinute int, max int) {
	f.IntVarP(&b.PerMinute, "requests-per-minute", "r", perMinute,
		"number of probe requests admitted per minute")
	f.IntVarP(&b.Max, "request-max-budget", "m", max,
		"maximum number of probe requests that can be accumulated")
}

// Gate returns the shared admission gate for the configured budget.
func (b *Budget) Gate() *admission.Gate {
	return admission.NewGate(b.Max, b.PerMinute, time.Minute)
}
