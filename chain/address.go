package chain

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcutil/base58"
	"github.com/btcsuite/btcutil/bech32"

	"github.com/bsv-blockchain/go-sdk/script"
)

// AddressFromScript returns the address that locks to script on this
// network: Base58Check for P2PKH and P2SH, bech32 for version 0 witness
// programs and bech32m for versions 1 to 16. Any other pattern, including
// bare public keys and OP_RETURN outputs, returns ErrAddress.
func (p Params) AddressFromScript(lockingScript []byte) (string, error) {
	s := script.NewFromBytes(lockingScript)
	switch {
	case s.IsP2PKH():
		// OP_DUP OP_HASH160 <20> OP_EQUALVERIFY OP_CHECKSIG
		return base58.CheckEncode(lockingScript[3:23], p.pubKeyHashAddrID), nil
	case s.IsP2SH():
		// OP_HASH160 <20> OP_EQUAL
		return base58.CheckEncode(lockingScript[2:22], p.scriptHashAddrID), nil
	}
	if version, program, ok := witnessProgram(lockingScript); ok {
		return p.segwitAddress(version, program)
	}
	return "", fmt.Errorf("%w: %s", ErrAddress, p.displayName)
}

const (
	opFalse = 0x00
	op1     = 0x51
	op16    = 0x60
)

// witnessProgram splits a witness output script, OP_n followed by one push
// of 2 to 40 bytes, into its version and program.
func witnessProgram(s []byte) (byte, []byte, bool) {
	if len(s) < 4 || len(s) > 42 {
		return 0, nil, false
	}
	var version byte
	switch op := s[0]; {
	case op == opFalse:
		version = 0
	case op >= op1 && op <= op16:
		version = op - op1 + 1
	default:
		return 0, nil, false
	}
	if int(s[1]) != len(s)-2 {
		return 0, nil, false
	}
	program := s[2:]
	if version == 0 && len(program) != 20 && len(program) != 32 {
		return 0, nil, false
	}
	return version, program, true
}

// bech32mConst is the bech32m checksum constant XORed with the bech32 one.
const bech32mConst = 0x2bc830a3 ^ 1

const bech32Charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

func (p Params) segwitAddress(version byte, program []byte) (string, error) {
	conv, err := bech32.ConvertBits(program, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAddress, err)
	}
	data := append([]byte{version}, conv...)
	addr, err := bech32.Encode(p.bech32HRP, data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAddress, err)
	}
	if version == 0 {
		return addr, nil
	}
	return toBech32m(addr), nil
}

// toBech32m rewrites the six-character bech32 checksum at the end of addr as
// the bech32m checksum over the same data.
func toBech32m(addr string) string {
	body, sum := addr[:len(addr)-6], addr[len(addr)-6:]
	var polymod uint32
	for i := 0; i < len(sum); i++ {
		polymod = polymod<<5 | uint32(strings.IndexByte(bech32Charset, sum[i]))
	}
	polymod ^= bech32mConst

	out := make([]byte, 6)
	for i := range out {
		out[i] = bech32Charset[(polymod>>(5*(5-i)))&31]
	}
	return body + string(out)
}
