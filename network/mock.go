package network

import "context"

// MockChainService is a test double for ChainService.
// All function fields must be set before the corresponding method is called.
type MockChainService struct {
	ListUnspentFn        func(ctx context.Context, addresses ...string) ([]*UTXO, error)
	GetBestBlockHeightFn func(ctx context.Context) (uint64, error)
	GetBlockHashFn       func(ctx context.Context, height uint64) (string, error)
}

var _ ChainService = (*MockChainService)(nil)

func (m *MockChainService) ListUnspent(ctx context.Context, addresses ...string) ([]*UTXO, error) {
	return m.ListUnspentFn(ctx, addresses...)
}

func (m *MockChainService) GetBestBlockHeight(ctx context.Context) (uint64, error) {
	return m.GetBestBlockHeightFn(ctx)
}

func (m *MockChainService) GetBlockHash(ctx context.Context, height uint64) (string, error) {
	return m.GetBlockHashFn(ctx, height)
}
