package network

import "errors"

var (
	// ErrConnectionFailed indicates the client could not connect to the node.
	ErrConnectionFailed = errors.New("network: connection failed")

	// ErrAuthFailed indicates the node rejected the RPC credentials.
	ErrAuthFailed = errors.New("network: authentication failed")

	// ErrRPC indicates the node answered with a JSON-RPC error object.
	ErrRPC = errors.New("network: rpc error")

	// ErrInvalidResponse indicates the node returned a malformed or unexpected response.
	ErrInvalidResponse = errors.New("network: invalid response")

	// ErrInvalidRPCURL indicates the resolved RPC URL is not an http(s) URL.
	ErrInvalidRPCURL = errors.New("network: invalid rpc url")

	// ErrGenesisMismatch indicates the node is on a different chain than the
	// selected network.
	ErrGenesisMismatch = errors.New("network: genesis block mismatch")
)
