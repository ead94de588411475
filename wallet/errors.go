package wallet

import "errors"

var (
	// ErrLoadFailed indicates the node could not list the wallet's unspent outputs.
	ErrLoadFailed = errors.New("wallet: load unspent outputs failed")

	// ErrInvalidUTXO indicates the node reported an output that cannot be
	// turned into an outpoint.
	ErrInvalidUTXO = errors.New("wallet: invalid utxo")
)
