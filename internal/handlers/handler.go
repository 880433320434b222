// Package handlers wires HTTP requests to the services: decode,
// authorize, delegate, encode.
package handlers

import (
	"context"

	"github.com/qflow/qflow-api/internal/auth"
	"github.com/qflow/qflow-api/internal/domain/qna"
	"github.com/qflow/qflow-api/internal/job"
	"github.com/qflow/qflow-api/internal/review"
	"github.com/qflow/qflow-api/pkg/logging"
)

var logH = logging.NewLogger("handlers")

type Handler struct {
	Auth      *auth.Service
	Jobs      *job.Service
	Review    *review.Service
	Documents qna.DocumentStore

	// HealthCheck probes the relational database; nil means degraded.
	HealthCheck func(ctx context.Context) error
}
