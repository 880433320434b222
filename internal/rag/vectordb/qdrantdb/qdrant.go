// Package qdrantdb stores knowledge chunks in a Qdrant collection over
// gRPC. Chunk text and ownership metadata live in the point payload, so
// retrieval needs no relational lookup.
package qdrantdb

import (
	"context"
	"fmt"
	"time"

	"github.com/qdrant/go-client/qdrant"

	"github.com/qflow/qflow-api/internal/config"
	"github.com/qflow/qflow-api/internal/domain/qna"
	"github.com/qflow/qflow-api/internal/metrics"
	"github.com/qflow/qflow-api/pkg/logging"
)

type Store struct {
	client     *qdrant.Client
	collection string
	logger     *logging.Logger
}

func New(host string, port int) (*Store, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     host,
		Port:     port,
		UseTLS:   config.QdrantUseTLS,
		PoolSize: uint(config.QdrantPoolSize),
	})
	if err != nil {
		return nil, fmt.Errorf("connect qdrant: %w", err)
	}
	return &Store{
		client:     client,
		collection: config.ChunkCollectionName,
		logger:     logging.NewLogger("qdrant"),
	}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) EnsureCollection(ctx context.Context) error {
	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("check collection: %w", err)
	}
	if exists {
		return nil
	}
	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(config.EmbeddingDimension),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("create collection %s: %w", s.collection, err)
	}
	s.logger.Info("created collection", "collection", s.collection)
	return nil
}

func (s *Store) UpsertChunks(ctx context.Context, chunks []qna.Chunk) error {
	points := make([]*qdrant.PointStruct, len(chunks))
	for i, chunk := range chunks {
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(chunk.ID),
			Vectors: qdrant.NewVectors(chunk.Embedding...),
			Payload: qdrant.NewValueMap(map[string]any{
				"content":     chunk.Content,
				"document_id": chunk.DocumentID,
				"owner_id":    chunk.OwnerID,
				"created_at":  chunk.CreatedAt.Unix(),
			}),
		}
	}
	start := time.Now()
	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collection,
		Points:         points,
		Wait:           qdrant.PtrOf(true),
	})
	metrics.CaptureDependencyLatency("qdrant", time.Since(start))
	if err != nil {
		return fmt.Errorf("qdrant upsert: %w", err)
	}
	return nil
}

func (s *Store) DeleteByDocument(ctx context.Context, documentID string) error {
	_, err := s.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: s.collection,
		Points: qdrant.NewPointsSelectorFilter(&qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("document_id", documentID),
			},
		}),
		Wait: qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("qdrant delete by document: %w", err)
	}
	return nil
}

func (s *Store) SearchOwned(ctx context.Context, ownerID string, vector []float32, k int) ([]qna.ScoredChunk, error) {
	loggr := s.logger.With("traceId", ctx.Value(config.TraceIDKey))
	start := time.Now()
	hits, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(k)),
		WithPayload:    qdrant.NewWithPayload(true),
		Filter: &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("owner_id", ownerID),
			},
		},
	})
	metrics.CaptureDependencyLatency("qdrant", time.Since(start))
	if err != nil {
		loggr.Error("qdrant query failed", "error", err)
		return nil, fmt.Errorf("qdrant query: %w", err)
	}

	scored := make([]qna.ScoredChunk, 0, len(hits))
	for _, hit := range hits {
		scored = append(scored, qna.ScoredChunk{
			ChunkID:    hit.Id.GetUuid(),
			DocumentID: hit.Payload["document_id"].GetStringValue(),
			Content:    hit.Payload["content"].GetStringValue(),
			Similarity: float64(hit.Score),
		})
	}
	loggr.Debug("vector search complete", "hits", len(scored))
	return scored, nil
}
