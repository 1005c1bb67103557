// (c) The grimdig authors
//
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/scrydom/grimdig/cmd/internal/reconflags"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	dbFlags reconflags.Store
	budget  reconflags.Budget

	ctHost     *string
	ctUser     *string
	ctDatabase *string
	workers    *uint
	quiet      *bool
	debug      *bool
)

func newRootCmd() (rootCmd *cobra.Command) {
	rootCmd = &cobra.Command{
		Use:     "cert-recon [flags] [domain ...]",
		Short:   "cert-recon queries certificate transparency logs for the subdomains of domains",
		Long: "cert-recon queries certificate transparency logs for the subdomains of domains,\n" +
			"given either as arguments or as lines on stdin.",
		Version: "1.0",
		Args:    cobra.ArbitraryArgs,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if *workers < 1 || *workers > 128 {
				return fmt.Errorf("--workers out of range [1..128]")
			}
			if budget.PerMinute < 1 || budget.Max < 1 {
				return fmt.Errorf("admission budget must be at least 1")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if *debug {
				log.SetLevel(log.DebugLevel)
				log.Debugf("debug logging enabled")
			}
			return SearchAndReport(cmd.Context(), args)
		},
	}
	// Sets up the flags.
	dbFlags.Register(rootCmd.PersistentFlags())
	budget.Register(rootCmd.PersistentFlags(), 60, 60)
	ctHost = rootCmd.PersistentFlags().String(
		"ct-host", reconflags.EnvOr("CT_HOST", "crt.sh"),
		"IP address or host name of the certificate transparency (CT) search service")
	ctUser = rootCmd.PersistentFlags().String(
		"ct-username", reconflags.EnvOr("CT_USERNAME", "guest"),
		"username for the connection to the CT search service")
	ctDatabase = rootCmd.PersistentFlags().String(
		"ct-database", reconflags.EnvOr("CT_DATABASE", "certwatch"),
		"database to connect to on the CT search service")
	workers = rootCmd.PersistentFlags().Uint(
		"workers", 4, "number of concurrent search workers")
	quiet = rootCmd.PersistentFlags().BoolP(
		"quiet", "q", false, "disable result output to stdout")
	debug = rootCmd.PersistentFlags().Bool(
		"debug", false, "enable debugging output")
	return
}
