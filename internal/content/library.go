package content

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/anshulm/prepdeck/internal/logger"
	"github.com/anshulm/prepdeck/internal/models"
)

// Snapshot is one immutable view of the scraped content library. The core
// treats it as read-only; a reload produces a new snapshot rather than
// mutating the old one.
type Snapshot struct {
	Problems []models.Problem
	Patterns []models.Pattern
	MCQs     []models.MCQCard
}

// categoryFile is the on-disk shape of problems-<category>.json, as written
// by the scraping scripts.
type categoryFile struct {
	Patterns []models.Pattern `json:"patterns"`
	Problems []models.Problem `json:"problems"`
}

// Library holds the current snapshot and swaps it atomically on reload.
type Library struct {
	mu   sync.RWMutex
	dir  string
	snap Snapshot
	log  *logger.Logger
}

// Open loads the content directory and returns a Library serving it.
func Open(dir string) (*Library, error) {
	lib := &Library{
		dir: dir,
		log: logger.Default().WithPrefix("content"),
	}
	if err := lib.Reload(); err != nil {
		return nil, err
	}
	return lib, nil
}

// Snapshot returns the current content view.
func (l *Library) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snap
}

// Reload re-reads the content directory and swaps in the fresh snapshot.
// The old snapshot stays visible until the new one is fully parsed, so a
// broken content file never leaves the library empty.
func (l *Library) Reload() error {
	snap, err := load(l.dir, l.log)
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.snap = snap
	l.mu.Unlock()

	l.log.Info("content loaded: %d problems, %d patterns, %d mcq cards",
		len(snap.Problems), len(snap.Patterns), len(snap.MCQs))
	return nil
}

func load(dir string, log *logger.Logger) (Snapshot, error) {
	var snap Snapshot

	for _, category := range models.Categories {
		path := filepath.Join(dir, fmt.Sprintf("problems-%s.json", category))
		raw, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				log.Warn("no content file for category %s, skipping", category)
				continue
			}
			return Snapshot{}, fmt.Errorf("read %s: %w", path, err)
		}

		var file categoryFile
		if err := json.Unmarshal(raw, &file); err != nil {
			return Snapshot{}, fmt.Errorf("parse %s: %w", path, err)
		}

		for i := range file.Problems {
			file.Problems[i].Category = category
		}
		snap.Problems = append(snap.Problems, file.Problems...)
		snap.Patterns = append(snap.Patterns, file.Patterns...)
		log.Debug("category %s: %d problems, %d patterns", category, len(file.Problems), len(file.Patterns))
	}

	mcqPath := filepath.Join(dir, "mcq-cards.json")
	raw, err := os.ReadFile(mcqPath)
	if err == nil {
		var cards []models.MCQCard
		if err := json.Unmarshal(raw, &cards); err != nil {
			return Snapshot{}, fmt.Errorf("parse %s: %w", mcqPath, err)
		}
		snap.MCQs = cards
	} else if !os.IsNotExist(err) {
		return Snapshot{}, fmt.Errorf("read %s: %w", mcqPath, err)
	}

	return snap, nil
}
