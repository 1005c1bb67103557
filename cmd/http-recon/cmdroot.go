// (c) The grimdig authors
//
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/scrydom/grimdig/cmd/internal/reconflags"
	"github.com/scrydom/grimdig/probe/webprobe"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	dbFlags reconflags.Store
	budget  reconflags.Budget

	timeoutSecs   *uint
	proxy         *string
	userAgent     *string
	acceptInvalid *bool
	workers       *uint
	quiet         *bool
	strict        *bool
	debug         *bool
)

func newRootCmd() (rootCmd *cobra.Command) {
	rootCmd = &cobra.Command{
		Use:     "http-recon [flags]",
		Short:   "http-recon mass-probes HTTP(S) services from \"fqdn ip\" pairs read from stdin",
		Version: "1.0",
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if *workers < 1 || *workers > 128 {
				return fmt.Errorf("--workers out of range [1..128]")
			}
			if *timeoutSecs < 1 {
				return fmt.Errorf("--timeout-secs must be at least 1")
			}
			if budget.PerMinute < 1 || budget.Max < 1 {
				return fmt.Errorf("admission budget must be at least 1")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if *debug {
				log.SetLevel(log.DebugLevel)
				log.Debugf("debug logging enabled")
			}
			return KnockAndReport(cmd.Context())
		},
	}
	// Sets up the flags.
	dbFlags.Register(rootCmd.PersistentFlags())
	budget.Register(rootCmd.PersistentFlags(), 60, 600)
	timeoutSecs = rootCmd.PersistentFlags().UintP(
		"timeout-secs", "t", 10, "total request timeout in seconds")
	proxy = rootCmd.PersistentFlags().StringP(
		"proxy", "p", reconflags.EnvOr("PROXY", ""), "proxy the HTTP(S) requests")
	userAgent = rootCmd.PersistentFlags().StringP(
		"user-agent", "u", reconflags.EnvOr("USER_AGENT", webprobe.DefaultUserAgent),
		"user agent header used during HTTP(S) requests")
	acceptInvalid = rootCmd.PersistentFlags().BoolP(
		"accept-invalid-certs", "a", true, "accept invalid certificates of HTTPS services")
	workers = rootCmd.PersistentFlags().Uint(
		"workers", 16, "number of concurrent probe workers")
	quiet = rootCmd.PersistentFlags().BoolP(
		"quiet", "q", false, "disable result output to stdout")
	strict = rootCmd.PersistentFlags().Bool(
		"strict", false, "enable strict FQDN label validation")
	debug = rootCmd.PersistentFlags().Bool(
		"debug", false, "enable debugging output")
	return
}
