package wallet

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/reallyshadydev/wonkyordflopcoin/network"
	"github.com/reallyshadydev/wonkyordflopcoin/ord"
)

// Loader builds an UnspentSet from the node's listunspent view.
type Loader struct {
	lister    network.UnspentLister
	addresses []string
	log       *zap.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithAddresses restricts loading to outputs paying to addresses. Without it
// every output in the node wallet is loaded.
func WithAddresses(addresses ...string) LoaderOption {
	return func(l *Loader) { l.addresses = append([]string(nil), addresses...) }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) LoaderOption {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}

// NewLoader creates a Loader reading from lister.
func NewLoader(lister network.UnspentLister, opts ...LoaderOption) *Loader {
	l := &Loader{lister: lister, log: zap.NewNop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadUnspent fetches the wallet's unspent outputs.
func (l *Loader) LoadUnspent(ctx context.Context) (UnspentSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	utxos, err := l.lister.ListUnspent(ctx, l.addresses...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	set := make(UnspentSet, len(utxos))
	for i, u := range utxos {
		if u == nil {
			return nil, fmt.Errorf("%w: entry %d is null", ErrInvalidUTXO, i)
		}
		op, err := ord.ParseOutpoint(u.TxID + ":" + strconv.FormatUint(uint64(u.Vout), 10))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidUTXO, err)
		}
		set.Add(op, u.Amount)
	}

	l.log.Debug("loaded unspent outputs",
		zap.Int("count", set.Len()),
		zap.Uint64("total_sat", set.Total()),
		zap.Int("addresses", len(l.addresses)))
	return set, nil
}
