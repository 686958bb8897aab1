package cinedex

import (
	"context"
	"errors"
	"fmt"
	"time"

	dbMongo "github.com/kailas-cloud/cinedex/internal/db/mongo"
	dommovie "github.com/kailas-cloud/cinedex/internal/domain/movie"
	"github.com/kailas-cloud/cinedex/internal/domain/movie/patch"
	domreport "github.com/kailas-cloud/cinedex/internal/domain/report"
	"github.com/kailas-cloud/cinedex/internal/domain/search/request"
	"github.com/kailas-cloud/cinedex/internal/domain/search/result"
	"github.com/kailas-cloud/cinedex/internal/query"
	movierepo "github.com/kailas-cloud/cinedex/internal/repository/movie"
	reportrepo "github.com/kailas-cloud/cinedex/internal/repository/report"
	searchrepo "github.com/kailas-cloud/cinedex/internal/repository/search"
	"github.com/kailas-cloud/cinedex/internal/transport/voyage"
	healthuc "github.com/kailas-cloud/cinedex/internal/usecase/health"
	movieuc "github.com/kailas-cloud/cinedex/internal/usecase/movie"
	reportuc "github.com/kailas-cloud/cinedex/internal/usecase/report"
	searchuc "github.com/kailas-cloud/cinedex/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces for substitution in tests.
type movieUseCase interface {
	List(ctx context.Context, q movieuc.ListQuery) (movieuc.ListResult, error)
	Get(ctx context.Context, id string) (dommovie.Movie, error)
	Create(ctx context.Context, m dommovie.Movie) (dommovie.Movie, error)
	CreateBatch(ctx context.Context, movies []dommovie.Movie) (dommovie.BatchResult, error)
	Update(ctx context.Context, id string, p patch.Patch) (dommovie.Movie, error)
	UpdateMany(ctx context.Context, filter, update query.Document) (dommovie.UpdateCounts, error)
	Replace(ctx context.Context, id string, m dommovie.Movie) (dommovie.Movie, error)
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, filter query.Document) (int64, error)
	FindAndDelete(ctx context.Context, id string) (dommovie.Movie, error)
}

type searchUseCase interface {
	Keyword(ctx context.Context, req request.Request) (result.Page, error)
	Vector(ctx context.Context, req request.VectorRequest) ([]result.Hit, error)
	Similar(ctx context.Context, req request.SimilarRequest) ([]result.ScoredMovie, error)
}

type reportUseCase interface {
	RecentComments(ctx context.Context, limit *int, movieID string) ([]domreport.MovieWithComments, error)
	YearStatistics(ctx context.Context) ([]domreport.YearStatistics, error)
	DirectorStatistics(ctx context.Context, limit *int) ([]domreport.DirectorStatistics, error)
}

type connection interface {
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Client is the cinedex entry point.
type Client struct {
	conn      connection
	movieSvc  movieUseCase
	searchSvc searchUseCase
	reportSvc reportUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client and waits for the database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o.apply(cfg)
	}
	if cfg.uri == "" {
		return nil, errors.New("cinedex: connection string required (use WithMongo)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := dbMongo.NewStore(ctx, dbMongo.Config{
		URI:            cfg.uri,
		Database:       cfg.database,
		AppName:        "cinedex-client",
		ConnectTimeout: defaultReadinessTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("cinedex: create store: %w", err)
	}
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		_ = store.Close(ctx)
		return nil, fmt.Errorf("cinedex: database not ready: %w", err)
	}
	return wireClient(store, cfg, obs), nil
}

func wireClient(store *dbMongo.Store, cfg *clientConfig, obs *observer) *Client {
	embedder, checker := clientEmbedder(cfg)

	search := searchrepo.New(store, searchrepo.Config{
		Movies:         cfg.movies,
		EmbeddedMovies: cfg.embeddedMovies,
		SearchIndex:    "movieSearchIndex",
		VectorIndex:    "vector_index",
		VectorPath:     "plot_embedding_voyage_3_large",
		SimilarIndex:   "plotEmbeddingIndex",
		SimilarPath:    "plot_embedding",
	})

	return &Client{
		conn:      store,
		movieSvc:  movieuc.New(movierepo.New(store, cfg.movies)),
		searchSvc: searchuc.New(search, embedder),
		reportSvc: reportuc.New(reportrepo.New(store, cfg.movies, cfg.comments)),
		healthSvc: healthuc.New(store, checker),
		obs:       obs,
	}
}

// clientEmbedder picks the query embedder. Both results are nil interfaces,
// never typed nils, when vector search is unavailable.
func clientEmbedder(cfg *clientConfig) (searchuc.Embedder, healthuc.EmbeddingChecker) {
	if cfg.embedder != nil {
		return &embedderAdapter{inner: cfg.embedder}, nil
	}
	v := voyage.NewEmbedder(&voyage.Config{
		APIKey:     cfg.voyageKey,
		Dimensions: voyage.DefaultDimensions,
		Logger:     cfg.logger,
	})
	if !v.Configured() {
		return nil, v
	}
	return v, v
}

// Close releases all resources.
func (c *Client) Close(ctx context.Context) error {
	if c.conn == nil {
		return nil
	}
	if err := c.conn.Close(ctx); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.conn.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Movies returns the catalogue service.
func (c *Client) Movies() *MovieService {
	return &MovieService{svc: c.movieSvc, obs: c.obs}
}

// Search returns the search service.
func (c *Client) Search() *SearchService {
	return &SearchService{svc: c.searchSvc, obs: c.obs}
}

// Reports returns the reporting service.
func (c *Client) Reports() *ReportService {
	return &ReportService{svc: c.reportSvc, obs: c.obs}
}
