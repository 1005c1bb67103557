// (c) The grimdig authors
//
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"os"

	"github.com/scrydom/grimdig/feed"
	"github.com/scrydom/grimdig/pipeline"
	"github.com/scrydom/grimdig/probe"
	"github.com/scrydom/grimdig/probe/dnsprobe"
	"github.com/scrydom/grimdig/types"

	log "github.com/sirupsen/logrus"
)

// ResolveAndReport wires up and runs the DNS recon pipeline: targets from
// stdin, deduplicated against the recon database (if enabled), resolved
// against the single specified DNS server, results to stdout and
// (optionally) into the recon database.
func ResolveAndReport(ctx context.Context, server string) error {
	serverAddr, err := serverAddress(ctx, server)
	if err != nil {
		return err
	}
	recondb, err := dbFlags.Open(ctx)
	if err != nil {
		return fmt.Errorf("cannot use the recon database: %w", err)
	}
	if recondb != nil {
		defer recondb.Close()
	}

	pipe, err := pipeline.New(pipeline.Config{
		Probers: []probe.Prober{dnsprobe.New(serverAddr, *dnsPort)},
		Gate:    budget.Gate(),
		Store:   recondb,
		Quiet:   *quiet,
		Reprobe: dbFlags.Reprobe,
		Workers: int(*workers),
	})
	if err != nil {
		return err
	}

	options := []feed.Option{}
	if *strict {
		options = append(options, feed.WithStrict())
	}
	log.Info("lines that don't parse as FQDNs are dropped with a warning")
	return pipe.Run(ctx, feed.New(os.Stdin, options...).Targets(ctx))
}

// serverAddress turns the DNS server argument into an IP address,
// resolving an FQDN argument once through the system resolver.
func serverAddress(ctx context.Context, server string) (netip.Addr, error) {
	if addr, err := netip.ParseAddr(server); err == nil {
		return addr, nil
	}
	fqdn, err := types.ParseFQDN(server)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("expected an IP address or FQDN, got %q", server)
	}
	addrs, err := net.DefaultResolver.LookupNetIP(ctx, "ip", fqdn.String()+".")
	if err != nil {
		return netip.Addr{}, fmt.Errorf("cannot resolve DNS server %q: %w", server, err)
	}
	if len(addrs) == 0 {
		return netip.Addr{}, fmt.Errorf("no IP address found for %q", server)
	}
	return addrs[0], nil
}
