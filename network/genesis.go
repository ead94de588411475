package network

import (
	"context"
	"fmt"

	"github.com/bsv-blockchain/go-sdk/chainhash"

	"github.com/reallyshadydev/wonkyordflopcoin/chain"
)

// CheckGenesis verifies that the node behind svc is on the chain params
// describes, by comparing its block 0 hash with params.GenesisBlock().
func CheckGenesis(ctx context.Context, svc ChainService, params chain.Params) error {
	got, err := svc.GetBlockHash(ctx, 0)
	if err != nil {
		return fmt.Errorf("network: fetch genesis hash: %w", err)
	}
	hash, err := chainhash.NewHashFromHex(got)
	if err != nil {
		return fmt.Errorf("%w: genesis hash %q: %w", ErrInvalidResponse, got, err)
	}

	want := params.GenesisBlock().Hash()
	if !hash.IsEqual(&want) {
		return fmt.Errorf("%w: %s node reports %s, expected %s",
			ErrGenesisMismatch, params.Variant(), hash, want)
	}
	return nil
}
