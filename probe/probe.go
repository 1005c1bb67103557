// (c) The grimdig authors
//
// SPDX-License-Identifier: MIT

package probe

import (
	"context"

	"github.com/scrydom/grimdig/types"
)

// Prober is the capability of performing one network round trip against a
// target and classifying what came back. Implementations must be safe for
// concurrent use: the executor invokes a single Prober from many tasks at
// once.
//
// Probe never returns a Go error; everything that can go wrong during
// probing is classified into the verdicts of the returned results. A probe
// that cannot place an outcome must return it as
// [types.Unclassified] rather than swallowing it, since the executor
// treats unclassified results as pipeline-fatal.
type Prober interface {
	// Kind names the probe variant and thus the dedup namespace its
	// results live in.
	Kind() types.ProbeKind
	// Probe performs one probe of the target. Most variants return exactly
	// one result; the certificate search returns one result per discovered
	// identity.
	Probe(ctx context.Context, target types.Target) []Result
}

// Result is one classified probe outcome. Concrete result types live with
// their probe variants and add the variant's payload on top of this
// interface.
type Result interface {
	Kind() types.ProbeKind
	Target() types.Target
	Verdict() types.Verdict
	// Reason returns the error detail behind a Transient or Unclassified
	// verdict, or nil.
	Reason() error
}

// Attempt is the common value part of a probe result, intended for
// embedding into the concrete per-variant result types.
type Attempt struct {
	ProbeKind   types.ProbeKind
	ProbeTarget types.Target
	Class       types.Verdict
	Cause       error
}

// Kind returns the probe variant that produced the result.
func (a *Attempt) Kind() types.ProbeKind { return a.ProbeKind }

// Target returns the probed target.
func (a *Attempt) Target() types.Target { return a.ProbeTarget }

// Verdict returns the outcome classification.
func (a *Attempt) Verdict() types.Verdict { return a.Class }

// Reason returns the error detail for Transient and Unclassified results.
func (a *Attempt) Reason() error { return a.Cause }
