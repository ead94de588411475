package network

import "context"

// UnspentLister lists unspent outputs known to the node's wallet.
type UnspentLister interface {
	// ListUnspent returns unspent outputs paying to any of addresses, or every
	// unspent output in the node's wallet when addresses is empty.
	ListUnspent(ctx context.Context, addresses ...string) ([]*UTXO, error)
}

// ChainService is the subset of the node's RPC interface the indexer uses.
type ChainService interface {
	UnspentLister

	// GetBestBlockHeight returns the height of the current chain tip.
	GetBestBlockHeight(ctx context.Context) (uint64, error)

	// GetBlockHash returns the hex hash of the block at height on the node's
	// active chain.
	GetBlockHash(ctx context.Context, height uint64) (string, error)
}

// UTXO represents an unspent transaction output.
type UTXO struct {
	TxID          string `json:"txid"`
	Vout          uint32 `json:"vout"`
	Amount        uint64 `json:"amount"`
	ScriptPubKey  string `json:"script_pubkey"`
	Address       string `json:"address"`
	Confirmations int64  `json:"confirmations"`
}
