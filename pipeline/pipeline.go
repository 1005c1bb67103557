// (c) The grimdig authors
//
// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"

	"github.com/scrydom/grimdig/admission"
	"github.com/scrydom/grimdig/probe"
	"github.com/scrydom/grimdig/store"
	"github.com/scrydom/grimdig/types"

	"github.com/gammazero/workerpool"
	log "github.com/sirupsen/logrus"
)

// Config wires up a [Pipeline]. Gate and at least one Prober are
// mandatory; a nil Store disables both deduplication and persistence.
type Config struct {
	Probers []probe.Prober
	Gate    *admission.Gate
	Store   store.Store // optional.
	Out     io.Writer   // result stream; defaults to os.Stdout.
	Quiet   bool        // suppress the result stream.
	Reprobe bool        // probe targets even when their result is already known.
	Workers int         // probe task pool size; defaults to 16.
}

// Pipeline runs the recon stream processing: targets in, deduplicated
// against the store, fanned out into rate-gated probe tasks, results
// fanned back in completion order and handed to the sink. One Pipeline
// value runs one scan; it is not reusable.
type Pipeline struct {
	cfg     Config
	workers *workerpool.WorkerPool

	mu    sync.Mutex
	fatal error
}

// New returns a pipeline for the given configuration.
func New(cfg Config) (*Pipeline, error) {
	if len(cfg.Probers) == 0 {
		return nil, errors.New("pipeline needs at least one prober")
	}
	if cfg.Gate == nil {
		return nil, errors.New("pipeline needs an admission gate")
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 16
	}
	return &Pipeline{
		cfg:     cfg,
		workers: workerpool.New(cfg.Workers),
	}, nil
}

// Run processes the target stream until it is exhausted, the context is
// done, or a fatal condition latches. It returns nil on clean exhaustion
// and the first fatal error otherwise: a store write failure or an
// unclassified probe result. Transient probe failures and valid negatives
// never abort the run.
//
// On a fatal condition Run stops admitting new targets and new probe
// starts, but lets already-started probes drain under their own timeouts
// before returning.
func (p *Pipeline) Run(ctx context.Context, targets <-chan types.Target) error {
	// Cancelling admitCtx stops the admission of new targets and releases
	// probe tasks still waiting at the gate; it deliberately does not
	// reach probes that already started their network call, which drain
	// under their own per-request timeouts.
	admitCtx, stopAdmitting := context.WithCancel(ctx)
	defer stopAdmitting()

	results := make(chan probe.Result, p.cfg.Workers)
	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for result := range results {
			if result.Verdict() == types.Unclassified {
				p.fail(result.Reason())
				stopAdmitting()
				continue
			}
			if err := p.sink(ctx, result); err != nil {
				p.fail(err)
				stopAdmitting()
			}
		}
	}()

	// In-flight window: bounds how far the admission loop may run ahead
	// of task completion, capping queued-task memory for unbounded target
	// streams.
	window := make(chan struct{}, 2*p.cfg.Workers)

admitting:
	for {
		select {
		case target, ok := <-targets:
			if !ok {
				break admitting
			}
			for _, prober := range p.cfg.Probers {
				if admitCtx.Err() != nil {
					break admitting
				}
				if !p.admit(admitCtx, prober.Kind(), target) {
					continue
				}
				select {
				case window <- struct{}{}:
				case <-admitCtx.Done():
					break admitting
				}
				prober, target := prober, target
				p.workers.Submit(func() {
					defer func() { <-window }()
					if err := p.cfg.Gate.Wait(admitCtx); err != nil {
						return // stopped while still waiting for admission.
					}
					for _, result := range prober.Probe(ctx, target) {
						select {
						case results <- result:
						case <-ctx.Done():
							return
						}
					}
				})
			}
		case <-admitCtx.Done():
			break admitting
		}
	}

	p.workers.StopWait()
	close(results)
	<-collected

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fatal == nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return p.fatal
}

// admit decides whether a target gets probed for a specific probe kind,
// consulting the store for an already-known result unless re-probing is
// forced. The check is advisory only: it holds no lock, so a concurrent
// pipeline run may reach the opposite conclusion and probe the same key;
// the store's conflict-safe upserts absorb that race. A failing check
// admits the target, as re-probing is cheaper than wrongly dropping it.
func (p *Pipeline) admit(ctx context.Context, kind types.ProbeKind, target types.Target) bool {
	if p.cfg.Store == nil || p.cfg.Reprobe {
		return true
	}
	known, err := p.cfg.Store.Known(ctx, kind, target.FQDN)
	if err != nil {
		log.Warnf("dedup check for '%s' failed, probing anyway: %s",
			target.FQDN.String(), err.Error())
		return true
	}
	if known {
		log.Debugf("skipping '%s': %s result already known",
			target.FQDN.String(), kind.String())
	}
	return !known
}

// fail latches the first fatal error; later ones only get logged.
func (p *Pipeline) fail(err error) {
	if err == nil {
		err = errors.New("unclassified probe failure")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fatal != nil {
		log.Errorf("while already aborting: %s", err.Error())
		return
	}
	p.fatal = err
}
