package jsonstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const backupPrefix = "database-"

// Backup writes the committed document to dir/database-<timestamp>.json and
// prunes all but the newest keep backups.  keep <= 0 disables pruning.
func (s *Store) Backup(dir string, keep int) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	s.mu.RLock()
	data, err := s.doc.marshal()
	s.mu.RUnlock()
	if err != nil {
		return "", err
	}

	name := filepath.Join(dir, backupPrefix+time.Now().UTC().Format("20060102T150405.000000000")+".json")
	if err := writeFileAtomic(name, data); err != nil {
		return "", err
	}
	s.log.Infow("database backup written", "path", name)

	if keep > 0 {
		if err := pruneBackups(dir, keep); err != nil {
			s.log.Warnw("backup prune failed", "dir", dir, "err", err)
		}
	}
	return name, nil
}

func pruneBackups(dir string, keep int) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), backupPrefix) || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		names = append(names, e.Name())
	}
	if len(names) <= keep {
		return nil
	}

	// timestamps sort lexically
	sort.Strings(names)
	for _, n := range names[:len(names)-keep] {
		if err := os.Remove(filepath.Join(dir, n)); err != nil {
			return err
		}
	}
	return nil
}
