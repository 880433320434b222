package job

import (
	"context"
	"testing"

	"github.com/qflow/qflow-api/internal/config"
	"github.com/qflow/qflow-api/internal/data/store"
	"github.com/qflow/qflow-api/internal/domain/jobmodel"
)

func TestEnqueue_SavesAndQueues(t *testing.T) {
	s := NewService(store.NewInMemoryJobStore())
	ctx := context.WithValue(context.Background(), config.TraceIDKey, "trace-1")

	payload := jobmodel.Payload{OwnerID: "owner-1", ProjectID: "p-1"}
	jobID, err := s.Enqueue(ctx, jobmodel.JobTypeDraftQuestions, payload)
	if err != nil {
		t.Fatalf("Enqueue returned error: %v", err)
	}
	if jobID == "" {
		t.Fatal("empty job id")
	}

	saved, found := s.GetJob(ctx, jobID)
	if !found {
		t.Fatal("job not persisted")
	}
	if saved.Status != jobmodel.JobStatusQueued {
		t.Errorf("status = %v, want QUEUED", saved.Status)
	}
	if saved.TraceID != "trace-1" {
		t.Errorf("trace id = %q", saved.TraceID)
	}
	if saved.Payload.ProjectID != "p-1" {
		t.Errorf("payload = %+v", saved.Payload)
	}

	select {
	case queued := <-s.JobChannel:
		if queued.ID != jobID {
			t.Errorf("channel carried job %q, want %q", queued.ID, jobID)
		}
	default:
		t.Fatal("job not placed on the channel")
	}
}

func TestEnqueue_KnowledgeFeedSignalsDispatcher(t *testing.T) {
	s := NewService(store.NewInMemoryJobStore())

	if _, err := s.Enqueue(context.Background(), jobmodel.JobTypeKnowledgeFeed, jobmodel.Payload{OwnerID: "o", Text: "x"}); err != nil {
		t.Fatalf("Enqueue returned error: %v", err)
	}

	select {
	case <-s.DispatcherChannel:
	default:
		t.Error("knowledge feed enqueue did not signal the dispatcher")
	}
}

func TestEnqueue_DraftJobSignalsEveryNth(t *testing.T) {
	s := NewService(store.NewInMemoryJobStore())
	ctx := context.Background()

	for i := int64(0); i < config.RequestsPerNewWorkerCount-1; i++ {
		if _, err := s.Enqueue(ctx, jobmodel.JobTypeDraftQuestions, jobmodel.Payload{OwnerID: "o", ProjectID: "p"}); err != nil {
			t.Fatalf("Enqueue returned error: %v", err)
		}
		// Drain so the buffered channel never blocks the loop.
		<-s.JobChannel
	}
	select {
	case <-s.DispatcherChannel:
		t.Fatal("dispatcher signaled before the Nth request")
	default:
	}

	if _, err := s.Enqueue(ctx, jobmodel.JobTypeDraftQuestions, jobmodel.Payload{OwnerID: "o", ProjectID: "p"}); err != nil {
		t.Fatalf("Enqueue returned error: %v", err)
	}
	select {
	case <-s.DispatcherChannel:
	default:
		t.Error("dispatcher not signaled on the Nth request")
	}
}
