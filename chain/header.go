package chain

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/bsv-blockchain/go-sdk/chainhash"
)

// HeaderSize is the size of a serialized block header in bytes.
const HeaderSize = 80

// Header is a block header. Hashes are kept in wire (internal) byte order.
type Header struct {
	Version    int32          // 4 bytes, little-endian
	PrevBlock  chainhash.Hash // 32 bytes
	MerkleRoot chainhash.Hash // 32 bytes
	Timestamp  uint32         // 4 bytes, little-endian (Unix timestamp)
	Bits       uint32         // 4 bytes, little-endian (compact target)
	Nonce      uint32         // 4 bytes, little-endian
}

// Bytes serializes the header to its 80-byte wire form.
//
// Layout: version(4) | prevBlock(32) | merkleRoot(32) | timestamp(4) | bits(4) | nonce(4)
func (h *Header) Bytes() []byte {
	buf := make([]byte, HeaderSize)

	binary.LittleEndian.PutUint32(buf[0:4], uint32(h.Version))
	copy(buf[4:36], h.PrevBlock[:])
	copy(buf[36:68], h.MerkleRoot[:])
	binary.LittleEndian.PutUint32(buf[68:72], h.Timestamp)
	binary.LittleEndian.PutUint32(buf[72:76], h.Bits)
	binary.LittleEndian.PutUint32(buf[76:80], h.Nonce)

	return buf
}

// Hash returns the double-SHA256 of the serialized header.
func (h *Header) Hash() chainhash.Hash {
	return chainhash.DoubleHashH(h.Bytes())
}

// Time returns the header timestamp.
func (h *Header) Time() time.Time {
	return time.Unix(int64(h.Timestamp), 0).UTC()
}

// DeserializeHeader parses exactly 80 bytes into a Header.
func DeserializeHeader(data []byte) (*Header, error) {
	if len(data) != HeaderSize {
		return nil, fmt.Errorf("%w: header: expected %d bytes, got %d", ErrGenesisDecode, HeaderSize, len(data))
	}

	h := &Header{
		Version:   int32(binary.LittleEndian.Uint32(data[0:4])),
		Timestamp: binary.LittleEndian.Uint32(data[68:72]),
		Bits:      binary.LittleEndian.Uint32(data[72:76]),
		Nonce:     binary.LittleEndian.Uint32(data[76:80]),
	}
	copy(h.PrevBlock[:], data[4:36])
	copy(h.MerkleRoot[:], data[36:68])

	return h, nil
}

// readCompactSize decodes a wire CompactSize integer from the front of data and
// returns the value and the number of bytes consumed.
func readCompactSize(data []byte) (uint64, int, error) {
	if len(data) == 0 {
		return 0, 0, fmt.Errorf("%w: missing transaction count", ErrGenesisDecode)
	}
	var width int
	switch data[0] {
	case 0xfd:
		width = 2
	case 0xfe:
		width = 4
	case 0xff:
		width = 8
	default:
		return uint64(data[0]), 1, nil
	}
	if len(data) < 1+width {
		return 0, 0, fmt.Errorf("%w: truncated transaction count", ErrGenesisDecode)
	}
	var n uint64
	switch width {
	case 2:
		n = uint64(binary.LittleEndian.Uint16(data[1:3]))
	case 4:
		n = uint64(binary.LittleEndian.Uint32(data[1:5]))
	default:
		n = binary.LittleEndian.Uint64(data[1:9])
	}
	return n, 1 + width, nil
}
