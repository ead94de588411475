// Package ord defines the identifiers used to track inscriptions: outpoints,
// satpoints and inscription IDs, with their canonical text and key encodings.
package ord

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/bsv-blockchain/go-sdk/chainhash"
)

const (
	// OutpointSize is the size of an encoded Outpoint: txid(32) | vout(4).
	OutpointSize = chainhash.HashSize + 4

	// SatPointSize is the size of an encoded SatPoint: outpoint(36) | offset(8).
	SatPointSize = OutpointSize + 8

	// InscriptionIDSize is the size of an encoded InscriptionID: txid(32) | index(4).
	InscriptionIDSize = chainhash.HashSize + 4
)

// parseTxID parses a 64-character display-order txid.
func parseTxID(s string) (chainhash.Hash, error) {
	if len(s) != 2*chainhash.HashSize {
		return chainhash.Hash{}, fmt.Errorf("txid must be %d hex characters, got %d", 2*chainhash.HashSize, len(s))
	}
	h, err := chainhash.NewHashFromHex(s)
	if err != nil {
		return chainhash.Hash{}, err
	}
	return *h, nil
}

// Outpoint references one output of one transaction.
type Outpoint struct {
	TxID chainhash.Hash
	Vout uint32
}

// String returns "<txid>:<vout>".
func (o Outpoint) String() string {
	return o.TxID.String() + ":" + strconv.FormatUint(uint64(o.Vout), 10)
}

// ParseOutpoint parses "<txid>:<vout>".
func ParseOutpoint(s string) (Outpoint, error) {
	txid, vout, ok := strings.Cut(s, ":")
	if !ok {
		return Outpoint{}, fmt.Errorf("%w: %q", ErrInvalidOutpoint, s)
	}
	hash, err := parseTxID(txid)
	if err != nil {
		return Outpoint{}, fmt.Errorf("%w: %w", ErrInvalidOutpoint, err)
	}
	n, err := strconv.ParseUint(vout, 10, 32)
	if err != nil {
		return Outpoint{}, fmt.Errorf("%w: vout: %w", ErrInvalidOutpoint, err)
	}
	return Outpoint{TxID: hash, Vout: uint32(n)}, nil
}

// MarshalText implements encoding.TextMarshaler.
func (o Outpoint) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Outpoint) UnmarshalText(text []byte) error {
	parsed, err := ParseOutpoint(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

func (o Outpoint) put(buf []byte) {
	copy(buf[:chainhash.HashSize], o.TxID[:])
	binary.BigEndian.PutUint32(buf[chainhash.HashSize:OutpointSize], o.Vout)
}

// Bytes returns the fixed-size key encoding of o.
func (o Outpoint) Bytes() []byte {
	buf := make([]byte, OutpointSize)
	o.put(buf)
	return buf
}

// OutpointFromBytes decodes the output of Outpoint.Bytes.
func OutpointFromBytes(b []byte) (Outpoint, error) {
	if len(b) != OutpointSize {
		return Outpoint{}, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidOutpoint, OutpointSize, len(b))
	}
	var o Outpoint
	copy(o.TxID[:], b[:chainhash.HashSize])
	o.Vout = binary.BigEndian.Uint32(b[chainhash.HashSize:])
	return o, nil
}

// SatPoint locates an inscribed sat: an outpoint and a byte offset into the
// output's value.
type SatPoint struct {
	Outpoint Outpoint
	Offset   uint64
}

// String returns "<txid>:<vout>:<offset>".
func (s SatPoint) String() string {
	return s.Outpoint.String() + ":" + strconv.FormatUint(s.Offset, 10)
}

// ParseSatPoint parses "<txid>:<vout>:<offset>".
func ParseSatPoint(s string) (SatPoint, error) {
	i := strings.LastIndexByte(s, ':')
	if i < 0 {
		return SatPoint{}, fmt.Errorf("%w: %q", ErrInvalidSatPoint, s)
	}
	outpoint, err := ParseOutpoint(s[:i])
	if err != nil {
		return SatPoint{}, fmt.Errorf("%w: %w", ErrInvalidSatPoint, err)
	}
	offset, err := strconv.ParseUint(s[i+1:], 10, 64)
	if err != nil {
		return SatPoint{}, fmt.Errorf("%w: offset: %w", ErrInvalidSatPoint, err)
	}
	return SatPoint{Outpoint: outpoint, Offset: offset}, nil
}

// MarshalText implements encoding.TextMarshaler.
func (s SatPoint) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *SatPoint) UnmarshalText(text []byte) error {
	parsed, err := ParseSatPoint(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Bytes returns the fixed-size key encoding of s. Big-endian integers make
// byte order match (txid, vout, offset) order.
func (s SatPoint) Bytes() []byte {
	buf := make([]byte, SatPointSize)
	s.Outpoint.put(buf)
	binary.BigEndian.PutUint64(buf[OutpointSize:], s.Offset)
	return buf
}

// SatPointFromBytes decodes the output of SatPoint.Bytes.
func SatPointFromBytes(b []byte) (SatPoint, error) {
	if len(b) != SatPointSize {
		return SatPoint{}, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidSatPoint, SatPointSize, len(b))
	}
	outpoint, err := OutpointFromBytes(b[:OutpointSize])
	if err != nil {
		return SatPoint{}, err
	}
	return SatPoint{Outpoint: outpoint, Offset: binary.BigEndian.Uint64(b[OutpointSize:])}, nil
}

// InscriptionID identifies an inscription by the transaction that revealed it
// and its index within that transaction.
type InscriptionID struct {
	TxID  chainhash.Hash
	Index uint32
}

// String returns "<txid>i<index>".
func (id InscriptionID) String() string {
	return id.TxID.String() + "i" + strconv.FormatUint(uint64(id.Index), 10)
}

// ParseInscriptionID parses "<txid>i<index>".
func ParseInscriptionID(s string) (InscriptionID, error) {
	const sep = 2 * chainhash.HashSize
	if len(s) < sep+2 || s[sep] != 'i' {
		return InscriptionID{}, fmt.Errorf("%w: %q", ErrInvalidInscriptionID, s)
	}
	txid, err := parseTxID(s[:sep])
	if err != nil {
		return InscriptionID{}, fmt.Errorf("%w: %w", ErrInvalidInscriptionID, err)
	}
	index, err := strconv.ParseUint(s[sep+1:], 10, 32)
	if err != nil {
		return InscriptionID{}, fmt.Errorf("%w: index: %w", ErrInvalidInscriptionID, err)
	}
	return InscriptionID{TxID: txid, Index: uint32(index)}, nil
}

// MarshalText implements encoding.TextMarshaler.
func (id InscriptionID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *InscriptionID) UnmarshalText(text []byte) error {
	parsed, err := ParseInscriptionID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Bytes returns the fixed-size encoding of id.
func (id InscriptionID) Bytes() []byte {
	buf := make([]byte, InscriptionIDSize)
	copy(buf, id.TxID[:])
	binary.BigEndian.PutUint32(buf[chainhash.HashSize:], id.Index)
	return buf
}

// InscriptionIDFromBytes decodes the output of InscriptionID.Bytes.
func InscriptionIDFromBytes(b []byte) (InscriptionID, error) {
	if len(b) != InscriptionIDSize {
		return InscriptionID{}, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidInscriptionID, InscriptionIDSize, len(b))
	}
	var id InscriptionID
	copy(id.TxID[:], b[:chainhash.HashSize])
	id.Index = binary.BigEndian.Uint32(b[chainhash.HashSize:])
	return id, nil
}
