package chain

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/bsv-blockchain/go-sdk/chainhash"
	"github.com/bsv-blockchain/go-sdk/transaction"
)

// Genesis blocks, one constant per variant. Mainnet, testnet and regtest
// currently carry identical bytes; they stay separate so each network can be
// changed on its own.
const (
	mainnetGenesisHex = "0100000000000000000000000000000000000000000000000000000000000000000000006159e26e6bcfbb78b4308944c811ef090579427d0fc0a3788a70e241974546d677e15167f0ff0f1e089b00000101000000010000000000000000000000000000000000000000000000000000000000000000ffffffff2604ffff001d01041e30352f31322f32303234202d205468697320697320466c6f70636f696e2effffffff010058850c02000000434104a5c56a22caf4b1c8917f8a261a83efe5885526d05ad0cb7e9fc7d000d04085e225e578d8f899d3d9811f39f2e7c2c7322c8a070fd757e0c935dd6c35fc8c66ccac00000000"

	testnetGenesisHex = "0100000000000000000000000000000000000000000000000000000000000000000000006159e26e6bcfbb78b4308944c811ef090579427d0fc0a3788a70e241974546d677e15167f0ff0f1e089b00000101000000010000000000000000000000000000000000000000000000000000000000000000ffffffff2604ffff001d01041e30352f31322f32303234202d205468697320697320466c6f70636f696e2effffffff010058850c02000000434104a5c56a22caf4b1c8917f8a261a83efe5885526d05ad0cb7e9fc7d000d04085e225e578d8f899d3d9811f39f2e7c2c7322c8a070fd757e0c935dd6c35fc8c66ccac00000000"

	signetGenesisHex = "010000000000000000000000000000000000000000000000000000000000000000000000696ad20e2dd4365c7459b4a4a5af743d5e92c6da3229e6532cd605f6533f2a5bb9a7f052f0ff0f1ef7390f000101000000010000000000000000000000000000000000000000000000000000000000000000ffffffff1004ffff001d0104084e696e746f6e646fffffffff010058850c020000004341040184710fa689ad5023690c80f3a49c8f13f8d45b8c857fbcbc8bc4a8e4d3eb4b10f4d4604fa08dce601aaf0f470216fe1b51850b4acf21b179c45070ac7b03a9ac00000000"

	regtestGenesisHex = "0100000000000000000000000000000000000000000000000000000000000000000000006159e26e6bcfbb78b4308944c811ef090579427d0fc0a3788a70e241974546d677e15167f0ff0f1e089b00000101000000010000000000000000000000000000000000000000000000000000000000000000ffffffff2604ffff001d01041e30352f31322f32303234202d205468697320697320466c6f70636f696e2effffffff010058850c02000000434104a5c56a22caf4b1c8917f8a261a83efe5885526d05ad0cb7e9fc7d000d04085e225e578d8f899d3d9811f39f2e7c2c7322c8a070fd757e0c935dd6c35fc8c66ccac00000000"
)

// coinbaseVout is the output index carried by the null outpoint a coinbase
// input spends.
const coinbaseVout = 0xffffffff

// Block is a decoded genesis block: a header and its single coinbase
// transaction. Callers must not modify a Block returned by GenesisBlock.
type Block struct {
	Header   Header
	Coinbase *transaction.Transaction
}

// Hash returns the block hash.
func (b *Block) Hash() chainhash.Hash {
	return b.Header.Hash()
}

// Transactions returns the block's transactions in block order.
func (b *Block) Transactions() []*transaction.Transaction {
	return []*transaction.Transaction{b.Coinbase}
}

// DecodeBlockHex decodes a hex string and parses it with DecodeBlock.
func DecodeBlockHex(s string) (*Block, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: hex: %w", ErrGenesisDecode, err)
	}
	return DecodeBlock(raw)
}

// DecodeBlock parses a serialized genesis block: an 80-byte header, a
// transaction count that must be 1, and one coinbase transaction that must
// consume the remaining bytes. The previous-block hash must be all zero and
// the merkle root must equal the coinbase txid.
func DecodeBlock(raw []byte) (*Block, error) {
	if len(raw) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than a header", ErrGenesisDecode, len(raw))
	}

	header, err := DeserializeHeader(raw[:HeaderSize])
	if err != nil {
		return nil, err
	}
	if !header.PrevBlock.IsEqual(&chainhash.Hash{}) {
		return nil, fmt.Errorf("%w: previous block hash is not zero", ErrGenesisDecode)
	}

	rest := raw[HeaderSize:]
	count, n, err := readCompactSize(rest)
	if err != nil {
		return nil, err
	}
	if count != 1 {
		return nil, fmt.Errorf("%w: expected 1 transaction, got %d", ErrGenesisDecode, count)
	}
	rawTx := rest[n:]
	if len(rawTx) == 0 {
		return nil, fmt.Errorf("%w: missing coinbase transaction", ErrGenesisDecode)
	}

	coinbase, err := transaction.NewTransactionFromBytes(rawTx)
	if err != nil {
		return nil, fmt.Errorf("%w: coinbase: %w", ErrGenesisDecode, err)
	}
	if !bytes.Equal(coinbase.Bytes(), rawTx) {
		return nil, fmt.Errorf("%w: trailing bytes after coinbase", ErrGenesisDecode)
	}
	if err := checkCoinbase(coinbase); err != nil {
		return nil, err
	}

	txid := chainhash.DoubleHashH(rawTx)
	if !txid.IsEqual(&header.MerkleRoot) {
		return nil, fmt.Errorf("%w: merkle root %s does not match coinbase txid %s",
			ErrGenesisDecode, header.MerkleRoot, txid)
	}

	return &Block{Header: *header, Coinbase: coinbase}, nil
}

// checkCoinbase verifies tx has exactly one input spending the null outpoint
// and at least one output.
func checkCoinbase(tx *transaction.Transaction) error {
	if len(tx.Inputs) != 1 {
		return fmt.Errorf("%w: coinbase has %d inputs", ErrGenesisDecode, len(tx.Inputs))
	}
	in := tx.Inputs[0]
	if in.SourceTXID != nil && !in.SourceTXID.IsEqual(&chainhash.Hash{}) {
		return fmt.Errorf("%w: coinbase input does not spend the null outpoint", ErrGenesisDecode)
	}
	if in.SourceTxOutIndex != coinbaseVout {
		return fmt.Errorf("%w: coinbase input index is %d", ErrGenesisDecode, in.SourceTxOutIndex)
	}
	if len(tx.Outputs) == 0 {
		return fmt.Errorf("%w: coinbase has no outputs", ErrGenesisDecode)
	}
	return nil
}

// genesisCache memoizes the decoded embedded genesis block per variant.
var genesisCache = func() (c [numVariants]func() *Block) {
	for v := range c {
		c[v] = genesisLoader(Variant(v), params[v].genesisHex)
	}
	return c
}()

// genesisLoader returns a function that decodes hexBlock on first use and
// returns the same block afterwards. A decode failure panics on every call.
func genesisLoader(v Variant, hexBlock string) func() *Block {
	return sync.OnceValue(func() *Block {
		b, err := DecodeBlockHex(hexBlock)
		if err != nil {
			panic(fmt.Sprintf("chain: embedded %s genesis block is corrupt: %v", v, err))
		}
		return b
	})
}

// GenesisBlock returns the decoded genesis block for v, decoding it on first
// use. The embedded constants are part of the build, so a decode failure
// panics instead of returning an error.
func GenesisBlock(v Variant) *Block {
	if !v.Valid() {
		panic(fmt.Sprintf("chain: no parameters for %v", v))
	}
	return genesisCache[v]()
}

// GenesisBlock returns the genesis block for these parameters. It is the
// embedded constant unless an override replaced the genesis bytes.
func (p Params) GenesisBlock() *Block {
	if p.genesis != nil {
		return p.genesis
	}
	return GenesisBlock(p.variant)
}
