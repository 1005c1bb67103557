// (c) The grimdig authors
//
// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/scrydom/grimdig/probe"
	"github.com/scrydom/grimdig/probe/certprobe"
	"github.com/scrydom/grimdig/probe/dnsprobe"
	"github.com/scrydom/grimdig/probe/webprobe"
	"github.com/scrydom/grimdig/types"

	log "github.com/sirupsen/logrus"
)

// sink handles one classified result: it emits the result line (unless
// suppressed) and persists the result idempotently if a store is
// configured. A store write failure is returned and aborts the pipeline;
// losing a completed probe result silently would be worse than stopping
// the scan.
//
// Following the uniform negative-result policy, transient failures and
// valid negatives are persisted as negative records wherever the store
// schema can represent them: DNS as an empty address set, web probes as a
// zero response status. The certificate table carries identities only, so
// negative certificate searches are logged but not persisted.
func (p *Pipeline) sink(ctx context.Context, result probe.Result) error {
	switch result := result.(type) {
	case *dnsprobe.Resolution:
		return p.sinkResolution(ctx, result)
	case *webprobe.Response:
		return p.sinkResponse(ctx, result)
	case *certprobe.Identity:
		return p.sinkIdentity(ctx, result)
	}
	return fmt.Errorf("result of unknown type %T for '%s'",
		result, result.Target().FQDN.String())
}

func (p *Pipeline) sinkResolution(ctx context.Context, res *dnsprobe.Resolution) error {
	fqdn := res.Target().FQDN
	switch res.Verdict() {
	case types.Success:
		addrs := make([]string, 0, len(res.Addrs))
		for _, addr := range res.Addrs {
			addrs = append(addrs, addr.String())
		}
		p.emit(fqdn.String() + " " + strings.Join(addrs, " "))
	case types.NotFound:
		log.Debugf("no records found for '%s'", fqdn.String())
	case types.Transient:
		log.Debugf("resolving '%s': %s", fqdn.String(), res.Reason().Error())
	}
	if p.cfg.Store == nil {
		return nil
	}
	return p.cfg.Store.SaveResolution(ctx, fqdn, res.Addrs)
}

func (p *Pipeline) sinkResponse(ctx context.Context, res *webprobe.Response) error {
	target := res.Target()
	switch res.Verdict() {
	case types.Success:
		p.emit(target.String() + " " + res.URL + " " +
			strconv.Itoa(res.Status) + " " + res.Headers.Encode())
	case types.Transient:
		log.Debugf("requesting '%s': %s", res.URL, res.Reason().Error())
	}
	if p.cfg.Store == nil {
		return nil
	}
	return p.cfg.Store.SaveResponse(ctx, res.Kind(), target.FQDN,
		res.URL, res.Status, res.Headers.JSON())
}

func (p *Pipeline) sinkIdentity(ctx context.Context, res *certprobe.Identity) error {
	switch res.Verdict() {
	case types.Success:
		p.emit(res.Name.String())
	case types.NotFound:
		log.Debugf("no certificate identities below '%s'",
			res.Target().FQDN.String())
		return nil
	case types.Transient:
		log.Debugf("searching identities below '%s': %s",
			res.Target().FQDN.String(), res.Reason().Error())
		return nil
	}
	if p.cfg.Store == nil {
		return nil
	}
	return p.cfg.Store.SaveIdentity(ctx, res.Name)
}

// emit writes one line to the result stream. Diagnostics never go here;
// they are strictly separated onto the logging stream.
func (p *Pipeline) emit(line string) {
	if p.cfg.Quiet {
		return
	}
	fmt.Fprintln(p.cfg.Out, line)
}
