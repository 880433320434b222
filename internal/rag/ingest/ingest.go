// Package ingest turns knowledge base markdown into embedded chunks in
// the vector store: parse concepts, chunk, embed, persist. One feed run
// is the unit of work behind a KnowledgeFeed job.
package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/qflow/qflow-api/internal/chunker"
	"github.com/qflow/qflow-api/internal/config"
	"github.com/qflow/qflow-api/internal/domain/qna"
	"github.com/qflow/qflow-api/internal/metrics"
	"github.com/qflow/qflow-api/internal/rag/embedding"
	"github.com/qflow/qflow-api/internal/rag/pacing"
	"github.com/qflow/qflow-api/internal/rag/vectordb"
	"github.com/qflow/qflow-api/pkg/logging"
)

// Result reports what a feed run produced.
type Result struct {
	DocumentsCreated int
	TotalChunks      int
	TotalEmbeddings  int
}

// ProgressFunc receives feed progress in percent, monotonically
// non-decreasing from 0 to 100.
type ProgressFunc func(percent int)

type Feeder struct {
	embedder  embedding.Embedder
	chunks    vectordb.ChunkStore
	documents qna.DocumentStore
	pacer     *pacing.Pacer
	logger    *logging.Logger
}

func NewFeeder(embedder embedding.Embedder, chunks vectordb.ChunkStore, documents qna.DocumentStore) *Feeder {
	return &Feeder{
		embedder:  embedder,
		chunks:    chunks,
		documents: documents,
		pacer:     pacing.New(config.EmbedPacingInterval),
		logger:    logging.NewLogger("ingest"),
	}
}

// FeedFile extracts text from the file at sourcePath and feeds it.
func (f *Feeder) FeedFile(ctx context.Context, ownerID, sourcePath string, chunkSize int, progress ProgressFunc) (*Result, error) {
	text, err := ExtractText(sourcePath)
	if err != nil {
		return nil, err
	}
	return f.Feed(ctx, ownerID, text, chunkSize, progress)
}

// Feed runs the full pipeline over markdown text. Concepts are processed
// in order; a failure anywhere aborts the run, leaving already-persisted
// concepts in place.
func (f *Feeder) Feed(ctx context.Context, ownerID, text string, chunkSize int, progress ProgressFunc) (*Result, error) {
	if chunkSize <= 0 {
		chunkSize = config.DefaultChunkSizeTokens
	}
	if progress == nil {
		progress = func(int) {}
	}
	loggr := f.logger.With("traceId", ctx.Value(config.TraceIDKey), "ownerId", ownerID)

	progress(0)
	concepts := ParseConcepts(text)
	loggr.Info("parsed concepts", "count", len(concepts))
	progress(10)

	if len(concepts) == 0 {
		progress(100)
		return &Result{}, nil
	}
	progress(30)

	result := &Result{}
	total := len(concepts)
	for i, concept := range concepts {
		loggr.Debug("processing concept", "filename", concept.Filename)

		texts := slices.Collect(chunker.Split(concept.Markdown(), chunkSize))
		result.TotalChunks += len(texts)
		progress(30 + i*20/total)

		chunks, err := f.embedAll(ctx, ownerID, texts)
		if err != nil {
			return nil, fmt.Errorf("embed concept %s: %w", concept.Filename, err)
		}
		result.TotalEmbeddings += len(chunks)
		progress(50 + i*20/total)

		created, err := f.persist(ctx, ownerID, concept.Filename, texts, chunks)
		if err != nil {
			return nil, fmt.Errorf("persist concept %s: %w", concept.Filename, err)
		}
		if created {
			metrics.DocumentsIngested.Inc()
		}
		progress(70 + (i+1)*30/total)
	}
	result.DocumentsCreated = total

	progress(100)
	loggr.Info("knowledge feed complete",
		"documents", result.DocumentsCreated,
		"chunks", result.TotalChunks,
		"embeddings", result.TotalEmbeddings)
	return result, nil
}

// embedAll embeds chunk texts sequentially with pacing between provider
// calls. Any provider failure aborts the run.
func (f *Feeder) embedAll(ctx context.Context, ownerID string, texts []string) ([]qna.Chunk, error) {
	chunks := make([]qna.Chunk, 0, len(texts))
	for i, text := range texts {
		if i > 0 {
			if err := f.pacer.Wait(ctx); err != nil {
				return nil, err
			}
		}
		vec, err := f.embedder.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", i+1, err)
		}
		metrics.EmbeddingCalls.Inc()
		chunks = append(chunks, qna.Chunk{
			ID:        uuid.NewString(),
			OwnerID:   ownerID,
			Content:   text,
			Embedding: embedding.NormalizeDim(vec, f.logger),
			CreatedAt: time.Now(),
		})
	}
	return chunks, nil
}

// persist writes the document record and its chunks. Identical content
// (same owner, same hash) reuses the existing document and replaces its
// chunks in the vector store. Returns whether a new document was created.
func (f *Feeder) persist(ctx context.Context, ownerID, filename string, texts []string, chunks []qna.Chunk) (bool, error) {
	contentHash := hashContent(texts)

	created := false
	doc, err := f.documents.FindByOwnerAndHash(ctx, ownerID, contentHash)
	if err != nil {
		return false, fmt.Errorf("look up document: %w", err)
	}
	if doc != nil {
		f.logger.Info("document already exists, replacing chunks", "documentId", doc.ID)
		if err := f.chunks.DeleteByDocument(ctx, doc.ID); err != nil {
			return false, fmt.Errorf("delete stale chunks: %w", err)
		}
	} else {
		doc = &qna.Document{
			ID:          uuid.NewString(),
			OwnerID:     ownerID,
			Filename:    filename,
			ContentHash: contentHash,
		}
		if err := f.documents.Create(ctx, doc); err != nil {
			return false, fmt.Errorf("create document: %w", err)
		}
		created = true
	}

	for i := range chunks {
		chunks[i].DocumentID = doc.ID
	}
	if err := f.chunks.UpsertChunks(ctx, chunks); err != nil {
		return false, fmt.Errorf("upsert chunks: %w", err)
	}
	return created, nil
}

// hashContent fingerprints a document by its chunk texts joined with
// blank lines, matching how content identity is defined for dedup.
func hashContent(texts []string) string {
	sum := sha256.Sum256([]byte(strings.Join(texts, "\n\n")))
	return hex.EncodeToString(sum[:])
}
