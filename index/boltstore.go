package index

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/reallyshadydev/wonkyordflopcoin/chain"
	"github.com/reallyshadydev/wonkyordflopcoin/ord"
)

// DBFile is the index database file name inside a network's data directory.
const DBFile = "index.db"

var (
	bucketLocations = []byte("locations")
	bucketMeta      = []byte("meta")

	keyHeight = []byte("height")
)

// DBPath returns the index database path for params under the base data
// directory.
func DBPath(base string, params chain.Params) string {
	return filepath.Join(params.DataDirPath(base), DBFile)
}

// BoltStore persists the inscription-location index in bbolt. Entries iterate
// in SatPoint key order: txid, then vout, then offset.
type BoltStore struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ Store = (*BoltStore)(nil)

// OpenBoltStore opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("index: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("index: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketLocations, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("boltstore: create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("index: create buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

// Put records id at loc.
func (s *BoltStore) Put(loc ord.SatPoint, id ord.InscriptionID) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketLocations).Put(loc.Bytes(), id.Bytes()); err != nil {
			return fmt.Errorf("boltstore: put location: %w", err)
		}
		return nil
	})
}

// Get returns the inscription at loc.
func (s *BoltStore) Get(loc ord.SatPoint) (ord.InscriptionID, error) {
	var id ord.InscriptionID
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketLocations).Get(loc.Bytes())
		if data == nil {
			return ErrNotFound
		}
		decoded, err := ord.InscriptionIDFromBytes(data)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCorruptEntry, err)
		}
		id = decoded
		return nil
	})
	if err != nil {
		return ord.InscriptionID{}, err
	}
	return id, nil
}

// Delete removes the entry at loc.
func (s *BoltStore) Delete(loc ord.SatPoint) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketLocations)
		key := loc.Bytes()
		if b.Get(key) == nil {
			return ErrNotFound
		}
		if err := b.Delete(key); err != nil {
			return fmt.Errorf("boltstore: delete location: %w", err)
		}
		return nil
	})
}

// Move relocates the inscription at from to to in a single transaction.
func (s *BoltStore) Move(from, to ord.SatPoint) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketLocations)
		fromKey := from.Bytes()
		data := b.Get(fromKey)
		if data == nil {
			return ErrNotFound
		}
		// data is only valid for the life of the transaction and is
		// invalidated by the Delete below.
		value := make([]byte, len(data))
		copy(value, data)

		if err := b.Delete(fromKey); err != nil {
			return fmt.Errorf("boltstore: move delete: %w", err)
		}
		if err := b.Put(to.Bytes(), value); err != nil {
			return fmt.Errorf("boltstore: move put: %w", err)
		}
		return nil
	})
}

// Entries returns every entry in key order.
func (s *BoltStore) Entries() ([]Entry, error) {
	var entries []Entry
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketLocations)
		entries = make([]Entry, 0, b.Stats().KeyN)
		return b.ForEach(func(k, v []byte) error {
			loc, err := ord.SatPointFromBytes(k)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrCorruptEntry, err)
			}
			id, err := ord.InscriptionIDFromBytes(v)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrCorruptEntry, err)
			}
			entries = append(entries, Entry{Location: loc, Inscription: id})
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("boltstore: list entries: %w", err)
	}
	return entries, nil
}

// Len returns the number of entries.
func (s *BoltStore) Len() (int, error) {
	var count int
	err := s.db.View(func(tx *bbolt.Tx) error {
		count = tx.Bucket(bucketLocations).Stats().KeyN
		return nil
	})
	return count, err
}

// Height returns the last processed block height.
func (s *BoltStore) Height() (uint32, bool, error) {
	var (
		height uint32
		ok     bool
	)
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketMeta).Get(keyHeight)
		if data == nil {
			return nil
		}
		if len(data) != 4 {
			return fmt.Errorf("%w: height is %d bytes", ErrCorruptEntry, len(data))
		}
		height, ok = binary.BigEndian.Uint32(data), true
		return nil
	})
	if err != nil {
		return 0, false, err
	}
	return height, ok, nil
}

// SetHeight records the last processed block height.
func (s *BoltStore) SetHeight(height uint32) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		v := make([]byte, 4)
		binary.BigEndian.PutUint32(v, height)
		if err := tx.Bucket(bucketMeta).Put(keyHeight, v); err != nil {
			return fmt.Errorf("boltstore: put height: %w", err)
		}
		return nil
	})
}
