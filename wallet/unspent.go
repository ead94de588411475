// Package wallet loads the set of outputs a wallet can still spend.
package wallet

import (
	"bytes"
	"sort"

	"github.com/reallyshadydev/wonkyordflopcoin/ord"
)

// UnspentSet maps each unspent outpoint to its amount in satoshis.
type UnspentSet map[ord.Outpoint]uint64

// NewUnspentSet returns an empty set.
func NewUnspentSet() UnspentSet {
	return make(UnspentSet)
}

// Add records op with amount, replacing any earlier amount.
func (s UnspentSet) Add(op ord.Outpoint, amount uint64) {
	s[op] = amount
}

// Contains reports whether op is unspent.
func (s UnspentSet) Contains(op ord.Outpoint) bool {
	_, ok := s[op]
	return ok
}

// Amount returns the value of op and whether it is in the set.
func (s UnspentSet) Amount(op ord.Outpoint) (uint64, bool) {
	v, ok := s[op]
	return v, ok
}

// Len returns the number of outpoints.
func (s UnspentSet) Len() int { return len(s) }

// Total returns the sum of all amounts.
func (s UnspentSet) Total() uint64 {
	var total uint64
	for _, v := range s {
		total += v
	}
	return total
}

// Outpoints returns the outpoints in binary key order.
func (s UnspentSet) Outpoints() []ord.Outpoint {
	ops := make([]ord.Outpoint, 0, len(s))
	for op := range s {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool {
		return bytes.Compare(ops[i].Bytes(), ops[j].Bytes()) < 0
	})
	return ops
}
