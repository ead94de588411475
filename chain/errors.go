package chain

import "errors"

var (
	// ErrUnknownNetwork indicates the network selector text names no known variant.
	ErrUnknownNetwork = errors.New("chain: unknown network (must be \"mainnet\", \"testnet\", \"signet\", or \"regtest\")")

	// ErrGenesisDecode indicates genesis block bytes failed to decode or validate.
	ErrGenesisDecode = errors.New("chain: genesis block decode failed")

	// ErrAddress indicates a locking script has no address form on this network.
	ErrAddress = errors.New("chain: script has no address form")

	// ErrInvalidOverride indicates a parameter override is out of range or malformed.
	ErrInvalidOverride = errors.New("chain: invalid parameter override")
)
