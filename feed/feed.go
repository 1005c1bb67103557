// (c) The grimdig authors
//
// SPDX-License-Identifier: MIT

package feed

import (
	"bufio"
	"context"
	"io"

	"github.com/scrydom/grimdig/types"

	log "github.com/sirupsen/logrus"
)

// Feed turns a line-oriented input stream into a lazy sequence of validated
// [types.Target] values. Lines that do not parse are dropped with a
// warning; they never terminate the sequence, so a single garbled line in a
// multi-hour scan costs exactly that line and nothing else.
type Feed struct {
	r         io.Reader
	addressed bool
	strict    bool
}

// Option configures a [Feed] during creation.
type Option func(*Feed)

// WithAddresses switches the feed to expect "<fqdn> <ip>" pairs, separated
// by a single space, instead of bare FQDNs.
func WithAddresses() Option {
	return func(f *Feed) { f.addressed = true }
}

// WithStrict enables strict FQDN label validation, additionally rejecting
// labels starting with a digit or hyphen, ending with a hyphen, or
// containing a double hyphen.
func WithStrict() Option {
	return func(f *Feed) { f.strict = true }
}

// New returns a feed reading targets from r, typically os.Stdin.
func New(r io.Reader, options ...Option) *Feed {
	f := &Feed{r: r}
	for _, opt := range options {
		opt(f)
	}
	return f
}

// Targets returns a channel of validated targets and starts the reading
// goroutine feeding it. The channel is closed when the input stream is
// exhausted (or failed) or when the context is done. The feed reads ahead
// only as far as the unbuffered channel allows, so a slow consumer
// naturally throttles input consumption.
func (f *Feed) Targets(ctx context.Context) <-chan types.Target {
	targets := make(chan types.Target)
	go func() {
		defer close(targets)
		scanner := bufio.NewScanner(f.r)
		for scanner.Scan() {
			target, err := f.parse(scanner.Text())
			if err != nil {
				log.Warn(err.Error())
				continue
			}
			select {
			case targets <- target:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			log.Errorf("reading targets: %s", err.Error())
		}
	}()
	return targets
}

func (f *Feed) parse(line string) (types.Target, error) {
	if f.addressed {
		return types.ParseAddressedTarget(line, f.strict)
	}
	return types.ParseTarget(line, f.strict)
}

// FromNames adapts an already-validated list of targets to the same channel
// shape as [Feed.Targets], for feeding targets given as command arguments
// rather than on stdin.
func FromNames(ctx context.Context, targets []types.Target) <-chan types.Target {
	ch := make(chan types.Target)
	go func() {
		defer close(ch)
		for _, target := range targets {
			select {
			case ch <- target:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}
