package jobs

import (
	"github.com/anshulm/prepdeck/internal/content"
	"github.com/anshulm/prepdeck/internal/errors"
	"github.com/anshulm/prepdeck/internal/worker"
)

// WorkerQueue implements JobQueue on top of a worker pool.
type WorkerQueue struct {
	reloadPool *worker.Pool
	library    *content.Library
}

// NewWorkerQueue creates a WorkerQueue.
func NewWorkerQueue(reloadPool *worker.Pool, library *content.Library) JobQueue {
	return &WorkerQueue{
		reloadPool: reloadPool,
		library:    library,
	}
}

// EnqueueReload schedules a content reload. A full queue means a reload is
// already pending, which callers surface rather than stack up.
func (q *WorkerQueue) EnqueueReload() error {
	if !q.reloadPool.TrySubmit(&worker.ReloadLibraryJob{Library: q.library}) {
		return errors.NewConflictError("a content reload is already queued")
	}
	return nil
}
