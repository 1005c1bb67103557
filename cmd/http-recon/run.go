// (c) The grimdig authors
//
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/scrydom/grimdig/feed"
	"github.com/scrydom/grimdig/pipeline"
	"github.com/scrydom/grimdig/probe"
	"github.com/scrydom/grimdig/probe/webprobe"

	log "github.com/sirupsen/logrus"
)

// KnockAndReport wires up and runs the web recon pipeline: "fqdn ip"
// pairs from stdin, each probed over both plain HTTP and HTTPS (with
// independent deduplication per scheme), responses to stdout and
// (optionally) into the recon database.
func KnockAndReport(ctx context.Context) error {
	recondb, err := dbFlags.Open(ctx)
	if err != nil {
		return fmt.Errorf("cannot use the recon database: %w", err)
	}
	if recondb != nil {
		defer recondb.Close()
	}

	options := []webprobe.Option{
		webprobe.WithTimeout(time.Duration(*timeoutSecs) * time.Second),
		webprobe.WithUserAgent(*userAgent),
		webprobe.WithInsecureTLS(*acceptInvalid),
	}
	if *proxy != "" {
		proxyurl, err := url.Parse(*proxy)
		if err != nil {
			return fmt.Errorf("cannot use proxy %q: %w", *proxy, err)
		}
		options = append(options, webprobe.WithProxy(proxyurl))
	}
	probers := make([]probe.Prober, 0, 2)
	for _, scheme := range []string{"http", "https"} {
		knocker, err := webprobe.New(scheme, options...)
		if err != nil {
			return err
		}
		probers = append(probers, knocker)
	}

	pipe, err := pipeline.New(pipeline.Config{
		Probers: probers,
		Gate:    budget.Gate(),
		Store:   recondb,
		Quiet:   *quiet,
		Reprobe: dbFlags.Reprobe,
		Workers: int(*workers),
	})
	if err != nil {
		return err
	}

	feedOptions := []feed.Option{feed.WithAddresses()}
	if *strict {
		feedOptions = append(feedOptions, feed.WithStrict())
	}
	log.Info("lines that don't parse as pairs of FQDN and IP address are dropped with a warning")
	return pipe.Run(ctx, feed.New(os.Stdin, feedOptions...).Targets(ctx))
}
