// Package worker runs background jobs from the job queue on an elastic
// pool: the dispatcher adds workers under load and idle workers retire
// themselves down to the minimum.
package worker

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/qflow/qflow-api/internal/config"
	"github.com/qflow/qflow-api/internal/domain/qna"
	"github.com/qflow/qflow-api/internal/job"
	"github.com/qflow/qflow-api/internal/metrics"
	"github.com/qflow/qflow-api/internal/rag/draft"
	"github.com/qflow/qflow-api/internal/rag/ingest"
	"github.com/qflow/qflow-api/pkg/logging"
)

type Pool struct {
	jobs     *job.Service
	feeder   *ingest.Feeder
	engine   *draft.Engine
	projects qna.ProjectStore

	stopChannel        chan bool
	waitGroup          *sync.WaitGroup
	currentWorkerCount int64
	logger             *logging.Logger
}

func NewPool(jobs *job.Service, feeder *ingest.Feeder, engine *draft.Engine, projects qna.ProjectStore) *Pool {
	return &Pool{
		jobs:     jobs,
		feeder:   feeder,
		engine:   engine,
		projects: projects,
		logger:   logging.NewLogger("worker_pool"),
	}
}

// Start launches the dispatcher and the first worker. stopChannel tells
// workers to retire; waitGroup lets shutdown wait for in-flight jobs.
func (p *Pool) Start(stopChannel chan bool, waitGroup *sync.WaitGroup) {
	p.stopChannel = stopChannel
	p.waitGroup = waitGroup
	p.logger.Info("initializing worker pool")
	go p.dispatcher()
}

func (p *Pool) dispatcher() {
	p.createWorker()
	p.logger.Info("dispatcher started")
	for range p.jobs.DispatcherChannel {
		if atomic.LoadInt64(&p.currentWorkerCount) < config.MaxWorkerCount {
			p.logger.Info("creating new worker", "workerCount", atomic.LoadInt64(&p.currentWorkerCount))
			p.createWorker()
		}
	}
}

func (p *Pool) createWorker() {
	p.waitGroup.Add(1)
	go p.worker()
	atomic.AddInt64(&p.currentWorkerCount, 1)
	metrics.IncrementActiveWorkerCount()
}

func (p *Pool) worker() {
	for {
		select {
		case currentJob := <-p.jobs.JobChannel:
			p.executeJob(currentJob)
			metrics.DecrementJobsInQueue()

		case <-p.stopChannel:
			p.removeWorker("stop signal received")
			return

		case <-time.After(config.IdleWorkerTimeout):
			// Idle too long: retire unless this is the last worker.
			if atomic.LoadInt64(&p.currentWorkerCount) > config.MinWorkerCount {
				p.removeWorker("idle timeout")
				return
			}
		}
	}
}

func (p *Pool) removeWorker(reason string) {
	p.waitGroup.Done()
	count := atomic.AddInt64(&p.currentWorkerCount, -1)
	metrics.DecrementActiveWorkerCount()
	p.logger.Info("removed worker", "reason", reason, "workerCount", count)
}
