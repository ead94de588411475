package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/reallyshadydev/wonkyordflopcoin/chain"
	"github.com/reallyshadydev/wonkyordflopcoin/index"
	"github.com/reallyshadydev/wonkyordflopcoin/ord"
	"github.com/reallyshadydev/wonkyordflopcoin/wallet"
)

var (
	txX = strings.Repeat("11", 32)
	txY = strings.Repeat("22", 32)
	txI = strings.Repeat("33", 32)
)

func mustSatPoint(t *testing.T, s string) ord.SatPoint {
	t.Helper()
	sp, err := ord.ParseSatPoint(s)
	require.NoError(t, err)
	return sp
}

func mustInscription(t *testing.T, s string) ord.InscriptionID {
	t.Helper()
	id, err := ord.ParseInscriptionID(s)
	require.NoError(t, err)
	return id
}

// fakeIndex records the order of calls made against it.
type fakeIndex struct {
	entries   []index.Entry
	updateErr error
	readErr   error
	calls     *[]string
}

func (f *fakeIndex) Update(ctx context.Context) error {
	*f.calls = append(*f.calls, "update")
	if err := ctx.Err(); err != nil {
		return err
	}
	return f.updateErr
}

func (f *fakeIndex) Inscriptions(ctx context.Context) ([]index.Entry, error) {
	*f.calls = append(*f.calls, "inscriptions")
	return f.entries, f.readErr
}

type fakeWallet struct {
	unspent wallet.UnspentSet
	err     error
	calls   *[]string
}

func (f *fakeWallet) LoadUnspent(ctx context.Context) (wallet.UnspentSet, error) {
	*f.calls = append(*f.calls, "wallet")
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.unspent, f.err
}

type fixture struct {
	a, b   index.Entry
	outX   ord.Outpoint
	outY   ord.Outpoint
	calls  []string
	idx    *fakeIndex
	wallet *fakeWallet
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		a: index.Entry{Location: mustSatPoint(t, txX+":0:0"), Inscription: mustInscription(t, txI+"i0")},
		b: index.Entry{Location: mustSatPoint(t, txY+":1:500"), Inscription: mustInscription(t, txI+"i1")},
	}
	f.outX = f.a.Location.Outpoint
	f.outY = f.b.Location.Outpoint
	f.idx = &fakeIndex{entries: []index.Entry{f.a, f.b}, calls: &f.calls}
	f.wallet = &fakeWallet{unspent: wallet.NewUnspentSet(), calls: &f.calls}
	return f
}

func TestRunKeepsOnlyUnspent(t *testing.T) {
	f := newFixture(t)
	f.wallet.unspent.Add(f.outX, 10000)

	out, err := Run(context.Background(), chain.ParamsFor(chain.Mainnet), f.idx, f.wallet)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, f.a.Inscription, out[0].Inscription)
	assert.Equal(t, f.a.Location, out[0].Location)
	assert.Equal(t, "https://localhost/inscription/"+txI+"i0", out[0].Explorer)
	assert.Equal(t, []string{"update", "inscriptions", "wallet"}, f.calls)
}

func TestRunEmptyUnspent(t *testing.T) {
	f := newFixture(t)

	out, err := Run(context.Background(), chain.ParamsFor(chain.Mainnet), f.idx, f.wallet)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)

	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestRunPreservesIndexOrder(t *testing.T) {
	f := newFixture(t)
	f.idx.entries = []index.Entry{f.b, f.a, f.b}
	f.wallet.unspent.Add(f.outX, 1)
	f.wallet.unspent.Add(f.outY, 1)

	out, err := Run(context.Background(), chain.ParamsFor(chain.Testnet), f.idx, f.wallet)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, f.b.Location, out[0].Location)
	assert.Equal(t, f.a.Location, out[1].Location)
	assert.Equal(t, f.b.Location, out[2].Location)
}

func TestRunExplorerScheme(t *testing.T) {
	tests := []struct {
		variant chain.Variant
		prefix  string
	}{
		{chain.Mainnet, "https://localhost/inscription/"},
		{chain.Testnet, "https://localhost/inscription/"},
		{chain.Signet, "https://localhost/inscription/"},
		{chain.Regtest, "http://localhost/inscription/"},
	}
	for _, tt := range tests {
		t.Run(tt.variant.String(), func(t *testing.T) {
			f := newFixture(t)
			f.wallet.unspent.Add(f.outX, 1)
			out, err := Run(context.Background(), chain.ParamsFor(tt.variant), f.idx, f.wallet)
			require.NoError(t, err)
			require.Len(t, out, 1)
			assert.Equal(t, tt.prefix+txI+"i0", out[0].Explorer)
		})
	}
}

func TestRunExplorerOverride(t *testing.T) {
	f := newFixture(t)
	f.wallet.unspent.Add(f.outY, 1)

	out, err := Run(context.Background(), chain.ParamsFor(chain.Mainnet), f.idx, f.wallet,
		WithExplorerBase("https://ordinals.example/inscription/"))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "https://ordinals.example/inscription/"+txI+"i1", out[0].Explorer)
}

func TestRunIndexUpdateFailure(t *testing.T) {
	f := newFixture(t)
	f.wallet.unspent.Add(f.outX, 1)
	f.idx.updateErr = errors.New("node down")

	out, err := Run(context.Background(), chain.ParamsFor(chain.Mainnet), f.idx, f.wallet)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, ErrIndexUnavailable)
	assert.ErrorIs(t, err, f.idx.updateErr)
	assert.Equal(t, []string{"update"}, f.calls)
}

func TestRunIndexReadFailure(t *testing.T) {
	f := newFixture(t)
	f.idx.readErr = index.ErrCorruptEntry

	out, err := Run(context.Background(), chain.ParamsFor(chain.Mainnet), f.idx, f.wallet)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, ErrIndexUnavailable)
	assert.ErrorIs(t, err, index.ErrCorruptEntry)
}

func TestRunWalletFailure(t *testing.T) {
	f := newFixture(t)
	f.wallet.err = wallet.ErrLoadFailed

	out, err := Run(context.Background(), chain.ParamsFor(chain.Mainnet), f.idx, f.wallet)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, ErrWalletUnavailable)
	assert.ErrorIs(t, err, wallet.ErrLoadFailed)
}

func TestRunCancelledBeforeUpdate(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := Run(ctx, chain.ParamsFor(chain.Mainnet), f.idx, f.wallet)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, ErrIndexUnavailable)
	assert.ErrorIs(t, err, context.Canceled)
}

// cancellingIndex cancels the run's context once its update has completed.
type cancellingIndex struct {
	*fakeIndex
	cancel context.CancelFunc
}

func (c *cancellingIndex) Update(ctx context.Context) error {
	err := c.fakeIndex.Update(ctx)
	c.cancel()
	return err
}

func TestRunUpdateIsOnlyPreemptionPoint(t *testing.T) {
	f := newFixture(t)
	f.wallet.unspent.Add(f.outX, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out, err := Run(ctx, chain.ParamsFor(chain.Mainnet), &cancellingIndex{f.idx, cancel}, f.wallet)
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestRunWithRealCollaborators(t *testing.T) {
	params := chain.ParamsFor(chain.Regtest)
	idx, err := index.New(index.NewMemStore(), params)
	require.NoError(t, err)

	a := mustSatPoint(t, txX+":0:0")
	b := mustSatPoint(t, txY+":1:500")
	_, err = idx.Record(1, a, mustInscription(t, txI+"i0"))
	require.NoError(t, err)
	_, err = idx.Record(2, b, mustInscription(t, txI+"i1"))
	require.NoError(t, err)

	unspent := wallet.NewUnspentSet()
	unspent.Add(a.Outpoint, 546)
	calls := []string{}

	out, err := Run(context.Background(), params, idx, &fakeWallet{unspent: unspent, calls: &calls})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "http://localhost/inscription/"+txI+"i0", out[0].Explorer)
}

func TestOutputJSON(t *testing.T) {
	f := newFixture(t)
	out := Join([]index.Entry{f.a}, wallet.UnspentSet{f.outX: 1}, "https://localhost/inscription/")

	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `[{
		"inscription": "`+txI+`i0",
		"location": "`+txX+`:0:0",
		"explorer": "https://localhost/inscription/`+txI+`i0"
	}]`, string(data))
}

func TestJoinNilInputs(t *testing.T) {
	out := Join(nil, nil, "x")
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestRunLogsAndMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	core, logs := observer.New(zap.InfoLevel)

	f := newFixture(t)
	f.wallet.unspent.Add(f.outX, 1)
	f.wallet.unspent.Add(f.outY, 1)
	_, err := Run(context.Background(), chain.ParamsFor(chain.Signet), f.idx, f.wallet,
		WithLogger(zap.New(core)), WithMetrics(m))
	require.NoError(t, err)

	f.wallet.err = errors.New("rpc down")
	_, err = Run(context.Background(), chain.ParamsFor(chain.Signet), f.idx, f.wallet, WithMetrics(m))
	require.Error(t, err)

	entries := logs.FilterMessage("reconciled wallet inscriptions").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].ContextMap()["held"])
	assert.Equal(t, "signet", entries[0].ContextMap()["chain"])

	families, err := reg.Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			switch {
			case metric.GetCounter() != nil:
				for _, lp := range metric.GetLabel() {
					values[mf.GetName()+"/"+lp.GetValue()] = metric.GetCounter().GetValue()
				}
			case metric.GetGauge() != nil:
				values[mf.GetName()] = metric.GetGauge().GetValue()
			case metric.GetHistogram() != nil:
				values[mf.GetName()] = float64(metric.GetHistogram().GetSampleCount())
			}
		}
	}
	assert.Equal(t, float64(1), values["ord_reconcile_runs_total/ok"])
	assert.Equal(t, float64(1), values["ord_reconcile_runs_total/wallet_error"])
	assert.Equal(t, float64(2), values["ord_reconcile_held_inscriptions"])
	assert.Equal(t, float64(2), values["ord_reconcile_duration_seconds"])
}
