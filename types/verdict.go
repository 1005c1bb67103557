// (c) The grimdig authors
//
// SPDX-License-Identifier: MIT

package types

import "fmt"

// Verdict classifies the outcome of a single probe attempt.
type Verdict int

// The classification verdicts of a probe attempt.
const (
	Success      Verdict = iota // the probe completed and yielded a result.
	NotFound                    // a valid negative answer, such as a name without records.
	Transient                   // a recoverable network, timeout, or TLS failure.
	Unclassified                // anything the probe cannot place; treated as fatal.
)

// String returns the clear-text representation of a Verdict value.
func (v Verdict) String() string {
	switch v {
	case Success:
		return "success"
	case NotFound:
		return "not-found"
	case Transient:
		return "transient-failure"
	case Unclassified:
		return "unclassified"
	}
	return fmt.Sprintf("Verdict(%d)", int(v))
}

// IsFatal reports whether a result with this verdict must abort the
// pipeline. Only Unclassified verdicts are fatal; transient failures and
// valid negatives keep the scan going.
func (v Verdict) IsFatal() bool {
	return v == Unclassified
}
