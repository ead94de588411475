package reconcile

import "errors"

var (
	// ErrIndexUnavailable indicates the inscription index could not be brought
	// up to date or read.
	ErrIndexUnavailable = errors.New("reconcile: index unavailable")

	// ErrWalletUnavailable indicates the wallet's unspent outputs could not be loaded.
	ErrWalletUnavailable = errors.New("reconcile: wallet unavailable")
)
