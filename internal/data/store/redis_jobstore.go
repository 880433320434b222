package store

import (
	"context"
	"encoding/json"

	"github.com/qflow/qflow-api/internal/config"
	"github.com/qflow/qflow-api/internal/data/redisstore"
	"github.com/qflow/qflow-api/internal/domain/jobmodel"
	"github.com/qflow/qflow-api/pkg/logging"
)

// RedisJobStore keeps job state in redis with a TTL so polled status
// survives restarts but stale records age out.
type RedisJobStore struct {
	store  *redisstore.Store
	logger *logging.Logger
}

func NewRedisJobStore(store *redisstore.Store) *RedisJobStore {
	return &RedisJobStore{
		store:  store,
		logger: logging.NewLogger("job_store_redis"),
	}
}

func (s *RedisJobStore) SaveJob(ctx context.Context, job jobmodel.Job) error {
	log := s.logger.With("traceId", ctx.Value(config.TraceIDKey), "jobId", job.ID)
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}

	err = s.store.Set(ctx, job.ID, data, config.JobStoreTTL)
	if err == nil {
		log.Debug("saved job to redis")
	}
	return err
}

func (s *RedisJobStore) GetJob(ctx context.Context, jobID string) (jobmodel.Job, bool) {
	var job jobmodel.Job
	log := s.logger.With("traceId", ctx.Value(config.TraceIDKey), "jobId", jobID)

	val, err := s.store.Get(ctx, jobID)
	if s.store.IsNil(err) {
		return job, false
	} else if err != nil {
		log.Error("error reading job from redis", "error", err)
		return job, false
	}

	if err := json.Unmarshal([]byte(val), &job); err != nil {
		log.Error("error unmarshalling job", "error", err)
		return job, false
	}
	return job, true
}

func (s *RedisJobStore) DeleteJob(ctx context.Context, jobID string) {
	if err := s.store.Del(ctx, jobID); err != nil {
		s.logger.Error("error deleting job from redis", "jobId", jobID, "error", err)
		return
	}
	s.logger.Debug("job deleted from redis", "jobId", jobID)
}
