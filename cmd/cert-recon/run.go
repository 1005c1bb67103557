// (c) The grimdig authors
//
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/scrydom/grimdig/feed"
	"github.com/scrydom/grimdig/pipeline"
	"github.com/scrydom/grimdig/probe"
	"github.com/scrydom/grimdig/probe/certprobe"
	"github.com/scrydom/grimdig/types"

	log "github.com/sirupsen/logrus"
)

// SearchAndReport wires up and runs the certificate transparency recon
// pipeline: domains from the arguments (or stdin, when no arguments are
// given) are searched for certificate identities below them, discovered
// identities go to stdout and (optionally) into the recon database.
func SearchAndReport(ctx context.Context, domains []string) error {
	recondb, err := dbFlags.Open(ctx)
	if err != nil {
		return fmt.Errorf("cannot use the recon database: %w", err)
	}
	if recondb != nil {
		defer recondb.Close()
	}

	searcher, err := certprobe.New(certprobe.Config{
		Host:     *ctHost,
		User:     *ctUser,
		Database: *ctDatabase,
	})
	if err != nil {
		return err
	}

	pipe, err := pipeline.New(pipeline.Config{
		Probers: []probe.Prober{searcher},
		Gate:    budget.Gate(),
		Store:   recondb,
		Quiet:   *quiet,
		Reprobe: dbFlags.Reprobe,
		Workers: int(*workers),
	})
	if err != nil {
		return err
	}

	if len(domains) == 0 {
		log.Info("no domain arguments given, reading domains from stdin")
		return pipe.Run(ctx, feed.New(os.Stdin).Targets(ctx))
	}
	targets := make([]types.Target, 0, len(domains))
	for _, domain := range domains {
		fqdn, err := types.ParseFQDN(domain)
		if err != nil {
			return fmt.Errorf("invalid domain argument: %w", err)
		}
		targets = append(targets, types.Target{FQDN: fqdn})
	}
	return pipe.Run(ctx, feed.FromNames(ctx, targets))
}
