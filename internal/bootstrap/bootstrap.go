package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/kirillkom/legal-case-intel/internal/config"
	"github.com/kirillkom/legal-case-intel/internal/core/ports"
	"github.com/kirillkom/legal-case-intel/internal/core/usecase"
	"github.com/kirillkom/legal-case-intel/internal/infrastructure/export/xlsx"
	"github.com/kirillkom/legal-case-intel/internal/infrastructure/extractor"
	"github.com/kirillkom/legal-case-intel/internal/infrastructure/graph/neo4j"
	"github.com/kirillkom/legal-case-intel/internal/infrastructure/queue/nats"
	"github.com/kirillkom/legal-case-intel/internal/infrastructure/repository/postgres"
	"github.com/kirillkom/legal-case-intel/internal/infrastructure/resilience"
	"github.com/kirillkom/legal-case-intel/internal/infrastructure/storage/localfs"
	"github.com/kirillkom/legal-case-intel/internal/infrastructure/storage/s3"
)

type App struct {
	Config config.Config

	Queue     ports.MessageQueue
	Documents ports.DocumentRepository
	Workbooks ports.WorkbookExporter

	AnalysisUC *usecase.AnalysisUseCase
	CaseUC     *usecase.CaseUseCase
	IngestUC   *usecase.IngestDocumentUseCase
	DocumentUC *usecase.DocumentUseCase
	ProcessUC  *usecase.ProcessDocumentUseCase

	closers []func()
}

type Option func(*settings)

type settings struct {
	observer ports.AnalysisObserver
	logger   *slog.Logger
}

func WithObserver(o ports.AnalysisObserver) Option {
	return func(s *settings) {
		s.observer = o
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

func New(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	s := settings{logger: slog.Default()}
	for _, opt := range opts {
		opt(&s)
	}

	app := &App{Config: cfg}
	ok := false
	defer func() {
		if !ok {
			app.Close()
		}
	}()

	analyzers, err := NewAnalyzers(cfg, s.observer)
	if err != nil {
		return nil, err
	}
	executor := resilience.NewExecutor(resilience.FromAppConfig(cfg))

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	app.closers = append(app.closers, func() { _ = db.Close() })
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	storage, err := newObjectStorage(ctx, cfg, executor)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
		Logger:             s.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}
	app.closers = append(app.closers, queue.Close)

	graph, err := app.newCaseGraph(ctx, cfg, executor)
	if err != nil {
		return nil, fmt.Errorf("init case graph: %w", err)
	}

	app.wire(db, storage, queue, graph, analyzers)
	ok = true
	return app, nil
}

func (a *App) wire(db *sql.DB, storage ports.ObjectStorage, queue ports.MessageQueue, graph ports.CaseGraph, analyzers usecase.Analyzers) {
	cfg := a.Config
	cases := postgres.NewCaseRepository(db)
	documents := postgres.NewDocumentRepository(db)
	deadlines := postgres.NewDeadlineRepository(db)
	textExtractor := extractor.New()

	a.Queue = queue
	a.Documents = documents
	a.Workbooks = xlsx.NewWorkbookExporter()

	a.AnalysisUC = usecase.NewAnalysisUseCase(textExtractor, analyzers)
	a.CaseUC = usecase.NewCaseUseCase(cases, documents, deadlines, analyzers)
	a.IngestUC = usecase.NewIngestDocumentUseCase(cases, documents, storage, queue, usecase.IngestOptions{
		MaxUploadBytes:    cfg.MaxUploadBytes,
		AllowedExtensions: cfg.AllowedExtensions,
	})
	a.DocumentUC = usecase.NewDocumentUseCase(documents, analyzers.Assessor)
	a.ProcessUC = usecase.NewProcessDocumentUseCase(cases, documents, deadlines, storage, textExtractor, analyzers, graph)
}

func newObjectStorage(ctx context.Context, cfg config.Config, executor *resilience.Executor) (ports.ObjectStorage, error) {
	switch cfg.StorageDriver {
	case "", "localfs":
		return localfs.New(cfg.StoragePath)
	case "s3":
		storage, err := s3.New(cfg, executor)
		if err != nil {
			return nil, err
		}
		if err := storage.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return storage, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// newCaseGraph returns nil when the projection is disabled; the process use
// case skips it then.
func (a *App) newCaseGraph(ctx context.Context, cfg config.Config, executor *resilience.Executor) (ports.CaseGraph, error) {
	if !cfg.GraphEnabled {
		return nil, nil
	}
	graph, err := neo4j.New(ctx, neo4j.Options{
		URI:      cfg.Neo4jURI,
		User:     cfg.Neo4jUser,
		Password: cfg.Neo4jPassword,
		Database: cfg.Neo4jDatabase,
		Executor: executor,
	})
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() { _ = graph.Close(context.Background()) })
	return graph, nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
