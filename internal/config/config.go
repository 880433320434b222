package config

import (
	"os"
	"time"
)

// TraceIDKey is the context key carrying the request/job trace id.
type ctxKey string

const TraceIDKey ctxKey = "traceId"

// UserIDKey carries the authenticated user's id, set by the auth
// middleware after token verification.
const UserIDKey ctxKey = "userId"

const (
	ServerListenAddr = ":3000"

	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 30 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	RateLimitPerSecond      = 2
	BurstRateLimitPerSecond = 5

	// Job queue and worker pool.
	JobBufferLimit            = 100
	RequestsPerNewWorkerCount = 10
	MaxWorkerCount            = 10
	MinWorkerCount            = 1
	IdleWorkerTimeout         = 1 * time.Minute
	JobTimeout                = 10 * time.Minute

	// Bounded retries for jobs that fail with a retryable error.
	JobMaxAttempts      = 3
	JobRetryBackoffBase = 2 * time.Second

	// Embedding vectors are always stored at this width; shorter provider
	// output is zero-padded, longer output truncated.
	EmbeddingDimension = 1536

	// Qdrant collection holding knowledge chunks.
	ChunkCollectionName = "knowledge_chunks"
	QdrantHost          = "127.0.0.1"
	QdrantGrpcPort      = 6334
	QdrantUseTLS        = false
	QdrantPoolSize      = 2

	// Ingestion and drafting defaults.
	DefaultChunkSizeTokens = 384
	ChunkOverlapRatio      = 0.1
	RetrievalTopK          = 4
	CitationSnippetLen     = 200

	// Courtesy pacing between sequential provider calls; not a hard
	// backpressure mechanism.
	EmbedPacingInterval      = 100 * time.Millisecond
	CompletionPacingInterval = 500 * time.Millisecond

	// Project defaults applied when a questionnaire is created without
	// explicit policy values.
	DefaultReviewThreshold = 0.6
	DefaultAutoApprove     = false

	// Database reachability probe used by /health.
	HealthCheckTimeout = 15 * time.Second

	// Gemini is the default provider family; matches the embedding space
	// the knowledge base was built with.
	GeminiModelName      = "gemini-2.5-flash"
	GeminiEmbeddingModel = "text-embedding-004"
	OpenAIModelName      = "gpt-4o-mini"

	RedisAddr     = "127.0.0.1:6379"
	RedisPassword = ""
	RedisJobDB    = 0
	JobStoreTTL   = 24 * time.Hour

	PostgresDSN = "host=127.0.0.1 user=qflow password=qflow dbname=qflow port=5432 sslmode=disable"

	// Signing key must come from QFLOW_JWT_SECRET outside local dev.
	JWTSecretFallback = "dev-secret-change-me"
	JWTExpiration     = 24 * time.Hour
)

// Getenv returns the environment value for key or the fallback when unset.
func Getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
