package chain

import (
	"fmt"
	"path/filepath"
)

// explorerPath is appended to the explorer host to form the base URL that
// inscription IDs are concatenated onto.
const explorerPath = "/inscription/"

// Params is the parameter set of one network variant. Values are copied on
// every access; there are no setters. Use WithOverrides to derive a modified
// set.
type Params struct {
	variant     Variant
	network     Network
	displayName string

	rpcPort uint16

	contentSizeLimit    int
	hasContentSizeLimit bool

	firstInscriptionHeight uint32
	firstDuneHeight        uint32

	genesisHex string
	// genesis is set only when an override replaced genesisHex.
	genesis *Block

	dataDirSubpath string

	pubKeyHashAddrID byte
	scriptHashAddrID byte
	bech32HRP        string

	explorerScheme string
	explorerHost   string
}

// params is the authoritative parameter table, indexed by Variant.
var params = [...]Params{
	Mainnet: {
		variant:                Mainnet,
		network:                NetworkMain,
		displayName:            "mainnet",
		rpcPort:                32552,
		firstInscriptionHeight: 0,
		firstDuneHeight:        0,
		genesisHex:             mainnetGenesisHex,
		dataDirSubpath:         "",
		pubKeyHashAddrID:       0x00,
		scriptHashAddrID:       0x05,
		bech32HRP:              "bc",
		explorerScheme:         "https",
		explorerHost:           "localhost",
	},
	Testnet: {
		variant:                Testnet,
		network:                NetworkTest,
		displayName:            "testnet",
		rpcPort:                44873,
		firstInscriptionHeight: 0,
		firstDuneHeight:        0,
		genesisHex:             testnetGenesisHex,
		dataDirSubpath:         "testnet3",
		pubKeyHashAddrID:       0x6f,
		scriptHashAddrID:       0xc4,
		bech32HRP:              "tb",
		explorerScheme:         "https",
		explorerHost:           "localhost",
	},
	Signet: {
		variant:                Signet,
		network:                NetworkSignet,
		displayName:            "signet",
		rpcPort:                38332,
		firstInscriptionHeight: 0,
		firstDuneHeight:        0,
		genesisHex:             signetGenesisHex,
		dataDirSubpath:         "signet",
		pubKeyHashAddrID:       0x6f,
		scriptHashAddrID:       0xc4,
		bech32HRP:              "tb",
		explorerScheme:         "https",
		explorerHost:           "localhost",
	},
	Regtest: {
		variant:                Regtest,
		network:                NetworkRegtest,
		displayName:            "regtest",
		rpcPort:                18332,
		firstInscriptionHeight: 0,
		firstDuneHeight:        0,
		genesisHex:             regtestGenesisHex,
		dataDirSubpath:         "regtest",
		pubKeyHashAddrID:       0x6f,
		scriptHashAddrID:       0xc4,
		bech32HRP:              "bcrt",
		explorerScheme:         "http",
		explorerHost:           "localhost",
	},
}

// Adding a Variant without a matching table entry fails to compile here.
var _ [numVariants]Params = params

// ParamsFor returns the parameter set for v. It panics if v is not one of the
// defined variants; ParseVariant never produces such a value.
func ParamsFor(v Variant) Params {
	if !v.Valid() {
		panic(fmt.Sprintf("chain: no parameters for %v", v))
	}
	return params[v]
}

// Variant returns the variant these parameters belong to.
func (p Params) Variant() Variant { return p.variant }

// Network returns the consensus network identifier.
func (p Params) Network() Network { return p.network }

// DisplayName returns the human-readable network name.
func (p Params) DisplayName() string { return p.displayName }

// DefaultRPCPort returns the node's default JSON-RPC port.
func (p Params) DefaultRPCPort() uint16 { return p.rpcPort }

// ContentSizeLimit returns the maximum inscription content size in bytes.
// ok is false when the network imposes no limit.
func (p Params) ContentSizeLimit() (limit int, ok bool) {
	return p.contentSizeLimit, p.hasContentSizeLimit
}

// FirstInscriptionHeight returns the first block height at which inscriptions
// are recognised.
func (p Params) FirstInscriptionHeight() uint32 { return p.firstInscriptionHeight }

// FirstDuneHeight returns the first block height at which dunes are recognised.
func (p Params) FirstDuneHeight() uint32 { return p.firstDuneHeight }

// Bech32HRP returns the human-readable prefix of segwit addresses.
func (p Params) Bech32HRP() string { return p.bech32HRP }

// GenesisHex returns the hex-encoded genesis block.
func (p Params) GenesisHex() string { return p.genesisHex }

// DataDirSubpath returns the directory name reserved for this network under
// the base data directory, or "" for mainnet.
func (p Params) DataDirSubpath() string { return p.dataDirSubpath }

// DataDirPath returns base unchanged for mainnet, and base joined with the
// network's reserved subdirectory otherwise.
func (p Params) DataDirPath(base string) string {
	if p.dataDirSubpath == "" {
		return base
	}
	return filepath.Join(base, p.dataDirSubpath)
}

// ExplorerBaseURL returns the URL prefix that an inscription ID is appended to
// in order to link it in the explorer.
func (p Params) ExplorerBaseURL() string {
	return p.explorerScheme + "://" + p.explorerHost + explorerPath
}

// String implements fmt.Stringer.
func (p Params) String() string { return p.displayName }
