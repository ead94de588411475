package chain

import (
	"fmt"
	"strings"
)

// Overrides replaces individual parameters of a Params. Nil fields keep the
// table value.
type Overrides struct {
	RPCPort *uint16
	// ContentSizeLimit sets the content size limit in bytes; 0 removes it.
	ContentSizeLimit       *int
	FirstInscriptionHeight *uint32
	FirstDuneHeight        *uint32
	GenesisHex             *string
	ExplorerHost           *string
}

// IsZero reports whether o overrides nothing.
func (o Overrides) IsZero() bool {
	return o.RPCPort == nil &&
		o.ContentSizeLimit == nil &&
		o.FirstInscriptionHeight == nil &&
		o.FirstDuneHeight == nil &&
		o.GenesisHex == nil &&
		o.ExplorerHost == nil
}

// WithOverrides returns a copy of p with o applied. A replacement genesis is
// decoded here, so a malformed override is reported as an error rather than
// surfacing later.
func (p Params) WithOverrides(o Overrides) (Params, error) {
	out := p

	if o.RPCPort != nil {
		if *o.RPCPort == 0 {
			return Params{}, fmt.Errorf("%w: rpc port must be non-zero", ErrInvalidOverride)
		}
		out.rpcPort = *o.RPCPort
	}

	if o.ContentSizeLimit != nil {
		switch limit := *o.ContentSizeLimit; {
		case limit < 0:
			return Params{}, fmt.Errorf("%w: content size limit %d is negative", ErrInvalidOverride, limit)
		case limit == 0:
			out.contentSizeLimit, out.hasContentSizeLimit = 0, false
		default:
			out.contentSizeLimit, out.hasContentSizeLimit = limit, true
		}
	}

	if o.FirstInscriptionHeight != nil {
		out.firstInscriptionHeight = *o.FirstInscriptionHeight
	}
	if o.FirstDuneHeight != nil {
		out.firstDuneHeight = *o.FirstDuneHeight
	}

	if o.GenesisHex != nil {
		block, err := DecodeBlockHex(*o.GenesisHex)
		if err != nil {
			return Params{}, fmt.Errorf("%w: genesis: %w", ErrInvalidOverride, err)
		}
		out.genesisHex = *o.GenesisHex
		out.genesis = block
	}

	if o.ExplorerHost != nil {
		host := strings.TrimSpace(*o.ExplorerHost)
		if host == "" || strings.ContainsAny(host, "/ ") {
			return Params{}, fmt.Errorf("%w: explorer host %q", ErrInvalidOverride, *o.ExplorerHost)
		}
		out.explorerHost = host
	}

	return out, nil
}
