// (c) The grimdig authors
//
// SPDX-License-Identifier: MIT

package main

import (
	"os"
)

func main() {
	// Cobra already renders the error message itself, so don't print it a
	// second time here; see https://github.com/spf13/cobra/issues/304.
	if err := newRootCmd().Execute(); err != nil {
		osExit(1)
	}
}

// For CLI unit tests...
var osExit = os.Exit
