// Package history persists the recently viewed documents list in a local
// BoltDB file
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/markwatch/markwatch/pkg/logger"
	"github.com/markwatch/markwatch/pkg/models"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

const (
	// BucketRecent stores recent document entries keyed by canonical path
	BucketRecent = "recent_documents"

	// DefaultLimit caps how many entries List returns when no limit is given
	DefaultLimit = 20
)

// Store is a BoltDB-backed recent-documents store
type Store struct {
	db     *bolt.DB
	logger *zap.Logger
}

// Open opens (creating if necessary) the history database at the given path
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(BucketRecent))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history bucket: %w", err)
	}

	return &Store{db: db, logger: logger.Get()}, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// Touch records that a document was viewed now, replacing any previous entry
// for the same path
func (s *Store) Touch(doc models.RecentDocument) error {
	if doc.OpenedAt.IsZero() {
		doc.OpenedAt = time.Now()
	}

	data, err := json.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("failed to marshal history entry: %w", err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(BucketRecent)).Put([]byte(doc.Path), data)
	})
	if err != nil {
		return fmt.Errorf("failed to store history entry: %w", err)
	}

	s.logger.Debug("Recorded document view",
		zap.String("path", doc.Path),
	)
	return nil
}

// List returns up to limit entries, most recently opened first
func (s *Store) List(limit int) ([]models.RecentDocument, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	var entries []models.RecentDocument
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(BucketRecent)).ForEach(func(_, v []byte) error {
			var doc models.RecentDocument
			if err := json.Unmarshal(v, &doc); err != nil {
				// Skip entries written by incompatible versions
				return nil
			}
			entries = append(entries, doc)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].OpenedAt.After(entries[j].OpenedAt)
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Remove deletes the entry for a path, if present
func (s *Store) Remove(path string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(BucketRecent)).Delete([]byte(path))
	})
}
