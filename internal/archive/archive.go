// Package archive remembers which videos have already been resolved, so the
// CLI can skip repeats across runs.
package archive

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

var buckets = struct {
	Metadata []byte
	Videos   []byte
}{
	Metadata: []byte("__metadata__"),
	Videos:   []byte("videos"),
}

var metadataKeys = struct {
	Version []byte
}{
	Version: []byte("version"),
}

const currentVersion = 1

// Record is one archived resolution.
type Record struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	ResolvedAt time.Time `json:"resolved_at"`
}

type Archive struct {
	db *bbolt.DB
}

func Open(path string) (*Archive, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		metadata, err := tx.CreateBucketIfNotExists(buckets.Metadata)
		if err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists(buckets.Videos); err != nil {
			return err
		}
		if raw := metadata.Get(metadataKeys.Version); raw == nil {
			return metadata.Put(metadataKeys.Version, []byte{currentVersion})
		} else if raw[0] != currentVersion {
			return fmt.Errorf("unsupported archive version %d", raw[0])
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Archive{db: db}, nil
}

func (a *Archive) Close() error {
	return a.db.Close()
}

// Seen reports whether the video id is already archived.
func (a *Archive) Seen(id string) (seen bool, err error) {
	err = a.db.View(func(tx *bbolt.Tx) error {
		seen = tx.Bucket(buckets.Videos).Get([]byte(id)) != nil
		return nil
	})
	return seen, err
}

// Put archives the record, overwriting any previous entry for the same id.
func (a *Archive) Put(record Record) error {
	data, err := json.Marshal(&record)
	if err != nil {
		return err
	}
	return a.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(buckets.Videos).Put([]byte(record.ID), data)
	})
}

// List returns all archived records in key order.
func (a *Archive) List() ([]Record, error) {
	var records []Record
	err := a.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(buckets.Videos).ForEach(func(k, v []byte) error {
			var record Record
			if err := json.Unmarshal(v, &record); err != nil {
				return err
			}
			records = append(records, record)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
