package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/qflow/qflow-api/internal/auth"
	"github.com/qflow/qflow-api/internal/config"
	"github.com/qflow/qflow-api/internal/data/redisstore"
	"github.com/qflow/qflow-api/internal/data/store"
	"github.com/qflow/qflow-api/internal/domain/jobmodel"
	"github.com/qflow/qflow-api/internal/handlers"
	"github.com/qflow/qflow-api/internal/job"
	"github.com/qflow/qflow-api/internal/rag/draft"
	"github.com/qflow/qflow-api/internal/rag/embedding"
	"github.com/qflow/qflow-api/internal/rag/embedding/google"
	"github.com/qflow/qflow-api/internal/rag/embedding/openaiembed"
	"github.com/qflow/qflow-api/internal/rag/ingest"
	"github.com/qflow/qflow-api/internal/rag/llm"
	"github.com/qflow/qflow-api/internal/rag/llm/gemini"
	"github.com/qflow/qflow-api/internal/rag/llm/openaillm"
	"github.com/qflow/qflow-api/internal/rag/vectordb/qdrantdb"
	"github.com/qflow/qflow-api/internal/repository"
	"github.com/qflow/qflow-api/internal/review"
	"github.com/qflow/qflow-api/internal/server"
	"github.com/qflow/qflow-api/internal/worker"
	"github.com/qflow/qflow-api/pkg/logging"
)

var (
	listenAddr        string
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {
	logging.Init()
	logger := logging.NewLogger("main")

	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	// Job store: redis when reachable, in-memory otherwise.
	var jobStore jobmodel.JobStore
	redisAddr := config.Getenv("REDIS_ADDR", config.RedisAddr)
	if rs, err := redisstore.New(serviceContext, redisAddr, config.RedisJobDB); err != nil {
		logger.Warn("redis offline, using in-memory job store", "error", err)
		jobStore = store.NewInMemoryJobStore()
	} else {
		jobStore = store.NewRedisJobStore(rs)
	}

	// Relational storage is mandatory: projects and reviews live there.
	db, err := repository.Open(serviceContext, config.Getenv("POSTGRES_DSN", config.PostgresDSN))
	if err != nil {
		logger.Error("could not connect to postgres", "error", err)
		return
	}
	if err := repository.Migrate(db); err != nil {
		logger.Error("could not migrate schema", "error", err)
		return
	}

	chunkStore, err := qdrantdb.New(config.Getenv("QDRANT_HOST", config.QdrantHost), config.QdrantGrpcPort)
	if err != nil {
		logger.Error("could not connect to qdrant", "error", err)
		return
	}
	if err := chunkStore.EnsureCollection(serviceContext); err != nil {
		logger.Error("could not ensure chunk collection", "error", err)
		return
	}

	embedder, provider, err := buildAIProviders(serviceContext)
	if err != nil {
		logger.Error("could not initialize AI providers", "error", err)
		return
	}

	documents := repository.NewDocumentRepository(db)
	projects := repository.NewProjectRepository(db)
	questions := repository.NewQuestionRepository(db)
	citations := repository.NewCitationRepository(db)
	events := repository.NewReviewEventRepository(db)
	users := repository.NewUserRepository(db)

	feeder := ingest.NewFeeder(embedder, chunkStore, documents)
	engine := draft.NewEngine(embedder, provider, chunkStore, questions, citations)
	reviewService := review.NewService(projects, questions, citations, events)
	authService := auth.NewService(users, config.Getenv("QFLOW_JWT_SECRET", config.JWTSecretFallback), config.JWTExpiration)

	jobService := job.NewService(jobStore)
	pool := worker.NewPool(jobService, feeder, engine, projects)
	stopWorkerChannel = make(chan bool, 1)
	pool.Start(stopWorkerChannel, &workerWaitGroup)

	handler := &handlers.Handler{
		Auth:      authService,
		Jobs:      jobService,
		Review:    reviewService,
		Documents: documents,
		HealthCheck: func(ctx context.Context) error {
			return repository.Health(ctx, db)
		},
	}
	router := server.NewRouter(handler, authService)

	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr, router)

	<-stopExecution
	logger.Info("server stopped")
}

// buildAIProviders selects the provider family from AI_PROVIDER. Gemini
// is the default; question and chunk embeddings must share one family.
func buildAIProviders(ctx context.Context) (embedding.Embedder, llm.Provider, error) {
	if config.Getenv("AI_PROVIDER", "gemini") == "openai" {
		apiKey := os.Getenv("OPENAI_API_KEY")
		embedder := openaiembed.New(apiKey, config.Getenv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"))
		provider := openaillm.New(apiKey, config.Getenv("OPENAI_MODEL", config.OpenAIModelName))
		return embedder, provider, nil
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	embedder, err := google.New(ctx, apiKey, config.Getenv("GEMINI_EMBEDDING_MODEL", config.GeminiEmbeddingModel))
	if err != nil {
		return nil, nil, err
	}
	provider, err := gemini.New(ctx, apiKey, config.Getenv("GEMINI_MODEL", config.GeminiModelName))
	if err != nil {
		return nil, nil, err
	}
	return embedder, provider, nil
}
