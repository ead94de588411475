// Package index holds the inscription-location index: which inscription sits
// at which satpoint, as of the last block the chain scanner processed.
package index

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/reallyshadydev/wonkyordflopcoin/chain"
	"github.com/reallyshadydev/wonkyordflopcoin/ord"
)

// Updater brings an Index up to date with the chain. The block-by-block
// scanner lives outside this package; it calls Index.Record, Index.Move and
// Index.SetHeight as it walks blocks.
type Updater interface {
	Update(ctx context.Context, idx *Index) error
}

// UpdaterFunc adapts a function to the Updater interface.
type UpdaterFunc func(ctx context.Context, idx *Index) error

// Update calls f(ctx, idx).
func (f UpdaterFunc) Update(ctx context.Context, idx *Index) error { return f(ctx, idx) }

// Index is an inscription-location Store bound to one network's parameters.
type Index struct {
	store   Store
	params  chain.Params
	updater Updater
	log     *zap.Logger
}

// Option configures an Index.
type Option func(*Index)

// WithUpdater sets the chain scanner run by Update.
func WithUpdater(u Updater) Option {
	return func(i *Index) { i.updater = u }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(i *Index) {
		if l != nil {
			i.log = l
		}
	}
}

// New creates an Index over store for the network described by params.
func New(store Store, params chain.Params, opts ...Option) (*Index, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store", ErrNilParam)
	}
	idx := &Index{
		store:  store,
		params: params,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(idx)
	}
	idx.log = idx.log.With(zap.Stringer("chain", params.Variant()))
	return idx, nil
}

// Params returns the network parameters the index was opened with.
func (i *Index) Params() chain.Params { return i.params }

// Update runs the configured Updater and blocks until it returns. An index
// without an Updater is treated as already current.
func (i *Index) Update(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrUpdateFailed, err)
	}
	if i.updater == nil {
		i.log.Debug("no updater configured, index treated as current")
		return nil
	}

	var fields []zap.Field
	if before, _, err := i.store.Height(); err != nil {
		i.log.Warn("read index height failed", zap.Error(err))
	} else {
		fields = append(fields, zap.Uint32("from_height", before))
	}
	if err := i.updater.Update(ctx, i); err != nil {
		i.log.Error("index update failed", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrUpdateFailed, err)
	}
	after, _, err := i.store.Height()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUpdateFailed, err)
	}
	i.log.Info("index updated", append(fields, zap.Uint32("to_height", after))...)
	return nil
}

// Inscriptions returns every (location, inscription) entry in the store's
// iteration order.
func (i *Index) Inscriptions(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return i.store.Entries()
}

// Get returns the inscription at loc.
func (i *Index) Get(loc ord.SatPoint) (ord.InscriptionID, error) {
	return i.store.Get(loc)
}

// Height returns the last processed block height.
func (i *Index) Height() (uint32, bool, error) {
	return i.store.Height()
}

// SetHeight records that every block up to height has been processed.
func (i *Index) SetHeight(height uint32) error {
	return i.store.SetHeight(height)
}

// Record stores id at loc if inscriptions are active at height. It reports
// whether the entry was stored.
func (i *Index) Record(height uint32, loc ord.SatPoint, id ord.InscriptionID) (bool, error) {
	if !i.params.InscriptionsActive(height) {
		i.log.Debug("inscription before activation height",
			zap.Uint32("height", height),
			zap.Uint32("first_inscription_height", i.params.FirstInscriptionHeight()),
			zap.Stringer("inscription", id))
		return false, nil
	}
	if err := i.store.Put(loc, id); err != nil {
		return false, err
	}
	return true, nil
}

// Move relocates the inscription at from to to, as when the output holding it
// is spent.
func (i *Index) Move(from, to ord.SatPoint) error {
	return i.store.Move(from, to)
}
