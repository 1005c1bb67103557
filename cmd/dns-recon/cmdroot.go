// (c) The grimdig authors
//
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/scrydom/grimdig/cmd/internal/reconflags"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	dbFlags reconflags.Store
	budget  reconflags.Budget

	dnsPort *uint16
	workers *uint
	quiet   *bool
	strict  *bool
	debug   *bool
)

func newRootCmd() (rootCmd *cobra.Command) {
	rootCmd = &cobra.Command{
		Use:     "dns-recon [flags] dns-server",
		Short:   "dns-recon mass-resolves FQDNs read from stdin against a selected DNS server",
		Version: "1.0",
		Args:    cobra.MaximumNArgs(1),
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
			server := reconflags.EnvOr("DNS_SERVER", "")
			if len(args) > 0 {
				server = args[0]
			}
			if server == "" {
				return errors.New("no DNS server given, neither as argument nor as DNS_SERVER")
			}
			return ResolveAndReport(cmd.Context(), server)
		},
	}
	// Sets up the flags.
	dbFlags.Register(rootCmd.PersistentFlags())
	budget.Register(rootCmd.PersistentFlags(), 600, 600)
	dnsPort = rootCmd.PersistentFlags().Uint16P(
		"dns-port", "p", defaultPort(), "port of the DNS server to resolve against")
	workers = rootCmd.PersistentFlags().Uint(
		"workers", 16, "number of concurrent resolution workers")
	quiet = rootCmd.PersistentFlags().BoolP(
		"quiet", "q", false, "disable result output to stdout")
	strict = rootCmd.PersistentFlags().Bool(
		"strict", false, "enable strict FQDN label validation")
	debug = rootCmd.PersistentFlags().Bool(
		"debug", false, "enable debugging output")
	return
}

// defaultPort returns the DNS server port default, honoring DNS_PORT.
func defaultPort() uint16 {
	port, err := strconv.ParseUint(reconflags.EnvOr("DNS_PORT", "53"), 10, 16)
	if err != nil {
		return 53
	}
	return uint16(port)
}
