// Package jsonstore keeps every collection in one JSON document on disk.
//
// The whole document is held in memory.  Reads share a read lock; writes
// go through a single writer that prepares the change on a copy, replaces
// the file by atomic rename, and only then swaps the copy in.  A failed
// write therefore leaves both the file and the in-memory state unchanged.
package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/appfrabric/roilux/internal/core/domain"
	"github.com/appfrabric/roilux/internal/pkg/metrics"

	"go.uber.org/zap"
)

// errNoChange lets an Update callback finish without a write
var errNoChange = errors.New("no change")

// Store is the JSON document store
type Store struct {
	path string
	log  *zap.SugaredLogger

	mu  sync.RWMutex
	doc *Document
}

// Open creates the data directory if needed and loads the document at path
func Open(path string, log *zap.SugaredLogger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	s := &Store{path: path, log: log, doc: newDocument()}
	s.Load()
	return s, nil
}

// Path returns the backing file location
func (s *Store) Path() string {
	return s.path
}

// Load reads the backing document.  A missing file yields empty
// collections.  An unreadable or corrupt file is logged, moved aside, and
// also yields empty collections so the API keeps accepting submissions.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := readDocument(s.path)
	switch {
	case err == nil:
		s.doc = doc
		s.log.Infow("database loaded from file",
			"path", s.path,
			"accounts", len(doc.Accounts),
			"contact_messages", len(doc.ContactMessages),
			"virtual_tours", len(doc.VirtualTours),
		)
	case errors.Is(err, fs.ErrNotExist):
		s.doc = newDocument()
		s.log.Infow("no existing database file, starting empty", "path", s.path)
	default:
		s.doc = newDocument()
		s.log.Errorw("database file unreadable, starting empty", "path", s.path, "err", err)
		s.quarantine()
	}
}

// Save rewrites the backing document from the in-memory state
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(s.doc)
}

// View runs fn with the committed document under a read lock.
// fn must not modify the document or retain references into it.
func (s *Store) View(fn func(doc *Document) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.doc)
}

// Update runs fn on a copy of the document, writes the copy to disk and
// commits it.  If fn fails nothing is written.
func (s *Store) Update(fn func(doc *Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc.clone()
	if err := fn(next); err != nil {
		if errors.Is(err, errNoChange) {
			return nil
		}
		return err
	}

	if err := s.persist(next); err != nil {
		return err
	}
	s.doc = next
	return nil
}

// Ping checks that the data directory is still reachable
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := os.Stat(filepath.Dir(s.path))
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", filepath.Dir(s.path))
	}
	return nil
}

func (s *Store) persist(doc *Document) error {
	data, err := doc.marshal()
	if err == nil {
		err = writeFileAtomic(s.path, data)
	}
	metrics.StoreSavesTotal.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		s.log.Errorw("error saving database", "path", s.path, "err", err)
		return errors.Join(domain.ErrPersistence, err)
	}
	return nil
}

// quarantine renames a corrupt file so the next save does not overwrite it
func (s *Store) quarantine() {
	dst := fmt.Sprintf("%s.corrupt-%s", s.path, time.Now().UTC().Format("20060102T150405"))
	if err := os.Rename(s.path, dst); err != nil {
		s.log.Warnw("could not move corrupt database aside", "path", s.path, "err", err)
		return
	}
	s.log.Warnw("corrupt database moved aside", "path", dst)
}

func readDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc := newDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	doc.normalize()
	return doc, nil
}

// writeFileAtomic writes data to a temp file next to path, syncs it and
// renames it over path
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
