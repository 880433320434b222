package store

import (
	"context"
	"sync"

	"github.com/qflow/qflow-api/internal/domain/jobmodel"
	"github.com/qflow/qflow-api/pkg/logging"
)

var inMemLogger = logging.NewLogger("job_store_inmemory")

// InMemoryJobStore is the fallback job store when redis is unavailable.
// Job state does not survive a restart.
type InMemoryJobStore struct {
	jobMutex *sync.RWMutex
	jobMap   map[string]jobmodel.Job
}

func NewInMemoryJobStore() *InMemoryJobStore {
	return &InMemoryJobStore{
		jobMutex: new(sync.RWMutex),
		jobMap:   make(map[string]jobmodel.Job),
	}
}

func (s *InMemoryJobStore) SaveJob(ctx context.Context, job jobmodel.Job) error {
	s.jobMutex.Lock()
	defer s.jobMutex.Unlock()
	s.jobMap[job.ID] = job
	inMemLogger.Debug("saved job", "jobId", job.ID)
	return nil
}

func (s *InMemoryJobStore) GetJob(ctx context.Context, jobID string) (jobmodel.Job, bool) {
	s.jobMutex.RLock()
	defer s.jobMutex.RUnlock()
	job, found := s.jobMap[jobID]
	return job, found
}

func (s *InMemoryJobStore) DeleteJob(ctx context.Context, jobID string) {
	s.jobMutex.Lock()
	defer s.jobMutex.Unlock()
	delete(s.jobMap, jobID)
}
