package chain

import (
	"fmt"
	"strings"
)

// Variant selects one of the fixed networks. The zero value is Mainnet.
type Variant uint8

const (
	// Mainnet is the production network and the default selection.
	Mainnet Variant = iota
	// Testnet is the public test network.
	Testnet
	// Signet is the signed test network.
	Signet
	// Regtest is the local regression test network.
	Regtest

	// numVariants sizes every per-variant table. Keep it last.
	numVariants
)

// variantNames maps each variant to its canonical selector text.
var variantNames = [numVariants]string{
	Mainnet: "mainnet",
	Testnet: "testnet",
	Signet:  "signet",
	Regtest: "regtest",
}

// variantAliases maps the accepted short selector forms to their variant.
var variantAliases = map[string]Variant{
	"main": Mainnet,
	"test": Testnet,
}

// Variants returns every network variant in ordinal order.
func Variants() []Variant {
	out := make([]Variant, 0, numVariants)
	for v := Variant(0); v < numVariants; v++ {
		out = append(out, v)
	}
	return out
}

// ParseVariant resolves selector text to a Variant. Matching is
// case-insensitive and ignores surrounding whitespace. The empty string means
// no selection was made and resolves to Mainnet.
func ParseVariant(s string) (Variant, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return Mainnet, nil
	}
	for v, n := range variantNames {
		if n == name {
			return Variant(v), nil
		}
	}
	if v, ok := variantAliases[name]; ok {
		return v, nil
	}
	return Mainnet, fmt.Errorf("%w: %q", ErrUnknownNetwork, s)
}

// Valid reports whether v is one of the defined variants.
func (v Variant) Valid() bool {
	return v < numVariants
}

// String returns the canonical selector text for v.
func (v Variant) String() string {
	if !v.Valid() {
		return fmt.Sprintf("Variant(%d)", uint8(v))
	}
	return variantNames[v]
}

// MarshalText implements encoding.TextMarshaler.
func (v Variant) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("%w: ordinal %d", ErrUnknownNetwork, uint8(v))
	}
	return []byte(variantNames[v]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Variant) UnmarshalText(text []byte) error {
	parsed, err := ParseVariant(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Network is the consensus network identifier used by the wire and address
// encodings underneath a Variant.
type Network uint8

const (
	// NetworkMain is the main chain.
	NetworkMain Network = iota
	// NetworkTest is the public test chain.
	NetworkTest
	// NetworkSignet is the signed test chain.
	NetworkSignet
	// NetworkRegtest is the regression test chain.
	NetworkRegtest
)

// String returns the short consensus name ("main", "test", "signet", "regtest").
func (n Network) String() string {
	switch n {
	case NetworkMain:
		return "main"
	case NetworkTest:
		return "test"
	case NetworkSignet:
		return "signet"
	case NetworkRegtest:
		return "regtest"
	default:
		return fmt.Sprintf("Network(%d)", uint8(n))
	}
}
