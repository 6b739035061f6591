// Knowdex corpus explorer.
// Loads a tabular corpus (CSV or parquet), builds the knowledge base and
// prints the discovered topic table, optionally preceded by similarity
// search results for an ad-hoc query.
//
// Usage:
//
//	knowdex -corpus faq.csv -columns question,answer -query "reset my password"
//	knowdex -corpus venues.parquet -topics-only -seed 42
//
// Env vars:
//
//	ENV             - config environment: local, dev, prod (default: local)
//	OPENAI_API_KEY  - embeddings + completions API key
//	OPENAI_BASE_URL - OpenAI-compatible endpoint override
//	REDIS_ADDR      - embedding cache address (prod config)
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/knowdex"
	"github.com/kailas-cloud/knowdex/corpus"
	"github.com/kailas-cloud/knowdex/internal/config"
	dbRedis "github.com/kailas-cloud/knowdex/internal/db/redis"
	"github.com/kailas-cloud/knowdex/internal/domain"
	logpkg "github.com/kailas-cloud/knowdex/internal/logger"
	"github.com/kailas-cloud/knowdex/internal/metrics"
	"github.com/kailas-cloud/knowdex/internal/repository/embcache"
	openaiT "github.com/kailas-cloud/knowdex/internal/transport/openai"
	"github.com/kailas-cloud/knowdex/internal/version"
)

func main() {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	flags := parseFlags()

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting knowdex",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.String("corpus", flags.corpus),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	if err := run(ctx, flags, cfg, logger); err != nil {
		logger.Fatal("knowdex failed", zap.Error(err))
	}
}

type cliFlags struct {
	corpus      string
	columns     string
	query       string
	k           int
	seed        int64
	topicsOnly  bool
	metricsPort int
}

func parseFlags() cliFlags {
	f := cliFlags{}
	flag.StringVar(&f.corpus, "corpus", "", "corpus file to load (.csv or .parquet)")
	flag.StringVar(&f.columns, "columns", "", "comma-separated record fields for document content (default: all)")
	flag.StringVar(&f.query, "query", "", "similarity search query")
	flag.IntVar(&f.k, "k", 4, "number of search results")
	flag.Int64Var(&f.seed, "seed", -1, "random seed for reproducible sampling and naming (-1=random)")
	flag.BoolVar(&f.topicsOnly, "topics-only", false, "print the topic table and exit, skipping search")
	flag.IntVar(&f.metricsPort, "metrics-port", 0, "Prometheus metrics port (0=config value)")
	flag.Parse()
	return f
}

func run(ctx context.Context, flags cliFlags, cfg config.Config, logger *zap.Logger) error {
	if flags.corpus == "" {
		return fmt.Errorf("-corpus is required")
	}

	// Register metrics explicitly (no init())
	metrics.RegisterBackendMetrics()
	metrics.RegisterHTTPMetrics()

	port := flags.metricsPort
	if port == 0 {
		port = cfg.Metrics.Port
	}
	if port > 0 {
		srv := serveDebug(port, logger)
		defer func() {
			shutCtx, shutCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutCancel()
			_ = srv.Shutdown(shutCtx)
		}()
	}

	records, err := loadCorpus(flags.corpus)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}
	logger.Info("Corpus loaded",
		zap.String("file", flags.corpus),
		zap.Int("records", len(records)),
	)

	embedder, closeStore, err := buildEmbedder(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if closeStore != nil {
		defer closeStore()
	}

	completer := &completionBackend{inner: openaiT.NewCompleter(&openaiT.CompleterConfig{
		APIKey:      cfg.Completion.APIKey,
		BaseURL:     cfg.Completion.BaseURL,
		Model:       cfg.Completion.Model,
		Temperature: cfg.Completion.Temperature,
		MaxTokens:   cfg.Completion.MaxTokens,
		Provider:    cfg.Completion.Provider,
		Logger:      logger,
	})}

	opts := []knowdex.Option{
		knowdex.WithEmbedder(embedder),
		knowdex.WithCompleter(completer),
		knowdex.WithContextNeighbors(cfg.Knowledge.ContextNeighbors),
		knowdex.WithContextSimilarityThreshold(cfg.Knowledge.ContextSimilarityThreshold),
		knowdex.WithMinTopicSize(cfg.Knowledge.MinTopicSize),
		knowdex.WithLogger(logger),
	}
	if flags.columns != "" {
		opts = append(opts, knowdex.WithColumns(splitColumns(flags.columns)...))
	}
	if flags.seed >= 0 {
		opts = append(opts, knowdex.WithSeed(uint64(flags.seed)))
	}

	kb, err := knowdex.New(records, opts...)
	if err != nil {
		return fmt.Errorf("build knowledge base: %w", err)
	}
	logger.Info("Knowledge base ready",
		zap.Int("documents", kb.Len()),
		zap.String("language", kb.Language()),
	)

	if flags.query != "" && !flags.topicsOnly {
		if err := printQuery(ctx, kb, flags.query, flags.k); err != nil {
			return err
		}
	}

	return printTopics(ctx, kb)
}

// loadCorpus reads the corpus file, dispatching on the extension.
func loadCorpus(path string) ([]knowdex.Record, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return corpus.FromCSVFile(path)
	case ".parquet":
		return corpus.FromParquetFile(path)
	default:
		return nil, fmt.Errorf("unsupported corpus format %q (want .csv or .parquet)", filepath.Ext(path))
	}
}

func splitColumns(s string) []string {
	parts := strings.Split(s, ",")
	columns := make([]string, 0, len(parts))
	for _, p := range parts {
		if c := strings.TrimSpace(p); c != "" {
			columns = append(columns, c)
		}
	}
	return columns
}

// buildEmbedder assembles the embedding chain: OpenAI -> Redis cache (optional).
// The returned close func releases the cache store, nil when no cache is configured.
func buildEmbedder(ctx context.Context, cfg config.Config, logger *zap.Logger) (knowdex.Embedder, func(), error) {
	base := openaiT.NewEmbedder(&openaiT.EmbedderConfig{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   cfg.Embedding.Provider,
		Logger:     logger,
	})

	var embedder domain.BatchEmbedder = base
	var closeStore func()
	if cfg.Cache.Enabled {
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("create cache store: %w", err)
		}
		if err := store.WaitForReady(ctx, time.Duration(cfg.Cache.ReadinessTimeout)*time.Second); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("cache store not ready: %w", err)
		}

		ttl := time.Duration(cfg.Cache.TTLHours) * time.Hour
		embedder = embcache.New(base, store, cfg.Embedding.Model, ttl, metrics.EmbeddingCacheTotal, logger)
		closeStore = store.Close
		logger.Info("Embedding cache enabled",
			zap.Strings("addrs", cfg.Cache.Addrs),
			zap.Duration("ttl", ttl),
		)
	}

	return &embeddingBackend{inner: embedder}, closeStore, nil
}

func printQuery(ctx context.Context, kb *knowdex.KnowledgeBase, query string, k int) error {
	results, err := kb.SimilaritySearch(ctx, []string{query}, k)
	if err != nil {
		return fmt.Errorf("similarity search: %w", err)
	}

	fmt.Printf("Query: %s\n", query)
	for i, r := range results[0] {
		fmt.Printf("%3d. [%.4f] %s\n", i+1, r.Distance, firstLine(r.Document.Content()))
	}
	fmt.Println()
	return nil
}

func printTopics(ctx context.Context, kb *knowdex.KnowledgeBase) error {
	topics, err := kb.Topics(ctx)
	if err != nil {
		return fmt.Errorf("discover topics: %w", err)
	}

	counts := make(map[int]int)
	for _, doc := range kb.Documents() {
		if id, ok := doc.TopicID(); ok {
			counts[id]++
		}
	}

	ids := make([]int, 0, len(topics))
	for id := range topics {
		if id != knowdex.NoTopic {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	fmt.Printf("Topics (%d documents, language %s):\n", kb.Len(), kb.Language())
	for _, id := range ids {
		fmt.Printf("%4d  %4d docs  %s\n", id, counts[id], topics[id])
	}
	fmt.Printf("   -  %4d docs  %s\n", counts[knowdex.NoTopic], topics[knowdex.NoTopic])
	return nil
}

// firstLine renders a document content preview: first line, rune-truncated.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	const maxRunes = 100
	runes := []rune(s)
	if len(runes) > maxRunes {
		return string(runes[:maxRunes]) + "..."
	}
	return s
}

// serveDebug starts the operational listener: Prometheus scrape + liveness.
func serveDebug(port int, logger *zap.Logger) *http.Server {
	r := chi.NewRouter()
	r.Use(chiMiddleware.Recoverer)
	r.Use(requestLogger(logger))
	r.Use(metrics.Middleware())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		logpkg.FromContext(r.Context()).Debug("healthz probe")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("Debug listener started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Debug listener error", zap.Error(err))
		}
	}()

	return srv
}

// requestLogger places a per-request logger in the context and emits one
// canonical line per request.
func requestLogger(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := logpkg.ContextWithLogger(r.Context(), logger)

			next.ServeHTTP(w, r.WithContext(ctx))

			logger.Debug("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("latency", time.Since(start)),
			)
		})
	}
}

// embeddingBackend adapts domain.BatchEmbedder to knowdex.Embedder.
type embeddingBackend struct {
	inner domain.BatchEmbedder
}

func (b *embeddingBackend) BatchEmbed(ctx context.Context, texts []string) (knowdex.BatchEmbeddingResult, error) {
	res, err := b.inner.BatchEmbed(ctx, texts)
	if err != nil {
		return knowdex.BatchEmbeddingResult{}, err
	}
	return knowdex.BatchEmbeddingResult{
		Embeddings:   res.Embeddings,
		PromptTokens: res.PromptTokens,
		TotalTokens:  res.TotalTokens,
	}, nil
}

// completionBackend adapts domain.Completer to knowdex.Completer.
type completionBackend struct {
	inner domain.Completer
}

func (b *completionBackend) Complete(ctx context.Context, messages []knowdex.ChatMessage) (knowdex.CompletionResult, error) {
	msgs := make([]domain.ChatMessage, len(messages))
	for i, m := range messages {
		msgs[i] = domain.ChatMessage{Role: m.Role, Content: m.Content}
	}
	res, err := b.inner.Complete(ctx, msgs)
	if err != nil {
		return knowdex.CompletionResult{}, err
	}
	return knowdex.CompletionResult{
		Message:          knowdex.ChatMessage{Role: res.Message.Role, Content: res.Message.Content},
		PromptTokens:     res.PromptTokens,
		CompletionTokens: res.CompletionTokens,
		TotalTokens:      res.TotalTokens,
	}, nil
}
