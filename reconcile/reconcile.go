// Package reconcile joins the inscription-location index against a wallet's
// unspent outputs to list the inscriptions the wallet holds.
package reconcile

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/reallyshadydev/wonkyordflopcoin/chain"
	"github.com/reallyshadydev/wonkyordflopcoin/index"
	"github.com/reallyshadydev/wonkyordflopcoin/ord"
	"github.com/reallyshadydev/wonkyordflopcoin/wallet"
)

// Index is the inscription-location index consulted by Run.
type Index interface {
	// Update blocks until the index reflects the node's chain tip.
	Update(ctx context.Context) error

	// Inscriptions returns every (location, inscription) entry.
	Inscriptions(ctx context.Context) ([]index.Entry, error)
}

// WalletLoader loads the wallet's current unspent outputs.
type WalletLoader interface {
	LoadUnspent(ctx context.Context) (wallet.UnspentSet, error)
}

var (
	_ Index        = (*index.Index)(nil)
	_ WalletLoader = (*wallet.Loader)(nil)
)

// Output is one inscription held by the wallet.
type Output struct {
	Inscription ord.InscriptionID `json:"inscription"`
	Location    ord.SatPoint      `json:"location"`
	Explorer    string            `json:"explorer"`
}

type options struct {
	log          *zap.Logger
	metrics      *Metrics
	explorerBase string
	hasExplorer  bool
}

// Option configures Run.
type Option func(*options)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithMetrics records run outcomes in m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithExplorerBase replaces the explorer base URL derived from the network
// parameters.
func WithExplorerBase(base string) Option {
	return func(o *options) {
		o.explorerBase = base
		o.hasExplorer = true
	}
}

// Run brings idx up to date, loads the wallet's unspent outputs and returns
// the inscriptions sitting on them. Update is the only step that observes
// cancellation of ctx; once it returns, the read and load run to completion.
// On any failure no outputs are returned.
func Run(ctx context.Context, params chain.Params, idx Index, w WalletLoader, opts ...Option) ([]Output, error) {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.hasExplorer {
		o.explorerBase = params.ExplorerBaseURL()
	}
	log := o.log.With(zap.Stringer("chain", params.Variant()))
	start := time.Now()

	if err := idx.Update(ctx); err != nil {
		o.metrics.observe(outcomeIndexError, start, 0)
		log.Error("index update failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrIndexUnavailable, err)
	}

	rest := context.WithoutCancel(ctx)
	entries, err := idx.Inscriptions(rest)
	if err != nil {
		o.metrics.observe(outcomeIndexError, start, 0)
		log.Error("read inscriptions failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrIndexUnavailable, err)
	}

	unspent, err := w.LoadUnspent(rest)
	if err != nil {
		o.metrics.observe(outcomeWalletError, start, 0)
		log.Error("load unspent outputs failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrWalletUnavailable, err)
	}

	out := Join(entries, unspent, o.explorerBase)
	o.metrics.observe(outcomeOK, start, len(out))
	log.Info("reconciled wallet inscriptions",
		zap.Int("indexed", len(entries)),
		zap.Int("unspent", unspent.Len()),
		zap.Int("held", len(out)))
	return out, nil
}

// Join keeps the entries whose location outpoint is in unspent, in entry
// order. The result is never nil.
func Join(entries []index.Entry, unspent wallet.UnspentSet, explorerBase string) []Output {
	out := make([]Output, 0)
	for _, e := range entries {
		if !unspent.Contains(e.Location.Outpoint) {
			continue
		}
		out = append(out, Output{
			Inscription: e.Inscription,
			Location:    e.Location,
			Explorer:    explorerBase + e.Inscription.String(),
		})
	}
	return out
}
