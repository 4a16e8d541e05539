package worker

import (
	"context"

	"github.com/anshulm/prepdeck/internal/content"
	"github.com/anshulm/prepdeck/internal/logger"
)

// ReloadLibraryJob re-reads the content directory and swaps the in-memory
// snapshot. A parse failure leaves the previous snapshot serving.
type ReloadLibraryJob struct {
	Library *content.Library
}

func (j *ReloadLibraryJob) Name() string { return "reload_library" }

func (j *ReloadLibraryJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)
	if err := j.Library.Reload(); err != nil {
		return err
	}
	snap := j.Library.Snapshot()
	log.Info("content reloaded: %d problems, %d quiz cards", len(snap.Problems), len(snap.MCQs))
	return nil
}
