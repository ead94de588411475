package network

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
)

var _ ChainService = (*RPCClient)(nil)

// maxConfirmations is the listunspent upper bound used to mean "any".
const maxConfirmations = 9999999

// btcToSat converts a coin amount as returned by the node to satoshis.
func btcToSat(amount float64) uint64 {
	return uint64(math.Round(amount * 1e8))
}

type listUnspentResult struct {
	TxID          string  `json:"txid"`
	Vout          uint32  `json:"vout"`
	Amount        float64 `json:"amount"`
	ScriptPubKey  string  `json:"scriptPubKey"`
	Address       string  `json:"address"`
	Confirmations int64   `json:"confirmations"`
}

// ListUnspent calls `listunspent 0 9999999 [addresses]`, including
// unconfirmed outputs. With no addresses it lists the whole node wallet.
func (c *RPCClient) ListUnspent(ctx context.Context, addresses ...string) ([]*UTXO, error) {
	params := []interface{}{0, maxConfirmations}
	if len(addresses) > 0 {
		params = append(params, addresses)
	}
	var results []listUnspentResult
	if err := c.Call(ctx, "listunspent", params, &results); err != nil {
		return nil, err
	}

	utxos := make([]*UTXO, len(results))
	for i, r := range results {
		utxos[i] = &UTXO{
			TxID:          r.TxID,
			Vout:          r.Vout,
			Amount:        btcToSat(r.Amount),
			ScriptPubKey:  r.ScriptPubKey,
			Address:       r.Address,
			Confirmations: r.Confirmations,
		}
	}
	return utxos, nil
}

// GetBestBlockHeight calls `getblockcount`.
func (c *RPCClient) GetBestBlockHeight(ctx context.Context) (uint64, error) {
	var raw json.RawMessage
	if err := c.Call(ctx, "getblockcount", nil, &raw); err != nil {
		return 0, err
	}
	var height float64
	if err := json.Unmarshal(raw, &height); err != nil {
		return 0, fmt.Errorf("%w: invalid block height: %w", ErrInvalidResponse, err)
	}
	if height < 0 {
		return 0, fmt.Errorf("%w: negative block height %v", ErrInvalidResponse, height)
	}
	return uint64(height), nil
}

// GetBlockHash calls `getblockhash height`.
func (c *RPCClient) GetBlockHash(ctx context.Context, height uint64) (string, error) {
	var hash string
	if err := c.Call(ctx, "getblockhash", []interface{}{height}, &hash); err != nil {
		return "", err
	}
	if hash == "" {
		return "", fmt.Errorf("%w: empty block hash", ErrInvalidResponse)
	}
	return hash, nil
}
