package cinedex

import (
	"context"

	dommovie "github.com/kailas-cloud/cinedex/internal/domain/movie"
	"github.com/kailas-cloud/cinedex/internal/domain/movie/patch"
	domreport "github.com/kailas-cloud/cinedex/internal/domain/report"
	"github.com/kailas-cloud/cinedex/internal/domain/search/request"
	"github.com/kailas-cloud/cinedex/internal/domain/search/result"
	"github.com/kailas-cloud/cinedex/internal/query"
	healthuc "github.com/kailas-cloud/cinedex/internal/usecase/health"
	movieuc "github.com/kailas-cloud/cinedex/internal/usecase/movie"
)

// --- movieUseCase mock ---

type mockMovieUC struct {
	listFn          func(ctx context.Context, q movieuc.ListQuery) (movieuc.ListResult, error)
	getFn           func(ctx context.Context, id string) (dommovie.Movie, error)
	createFn        func(ctx context.Context, m dommovie.Movie) (dommovie.Movie, error)
	createBatchFn   func(ctx context.Context, movies []dommovie.Movie) (dommovie.BatchResult, error)
	updateFn        func(ctx context.Context, id string, p patch.Patch) (dommovie.Movie, error)
	updateManyFn    func(ctx context.Context, filter, update query.Document) (dommovie.UpdateCounts, error)
	replaceFn       func(ctx context.Context, id string, m dommovie.Movie) (dommovie.Movie, error)
	deleteFn        func(ctx context.Context, id string) error
	deleteManyFn    func(ctx context.Context, filter query.Document) (int64, error)
	findAndDeleteFn func(ctx context.Context, id string) (dommovie.Movie, error)
}

func (m *mockMovieUC) List(ctx context.Context, q movieuc.ListQuery) (movieuc.ListResult, error) {
	return m.listFn(ctx, q)
}

func (m *mockMovieUC) Get(ctx context.Context, id string) (dommovie.Movie, error) {
	return m.getFn(ctx, id)
}

func (m *mockMovieUC) Create(ctx context.Context, mv dommovie.Movie) (dommovie.Movie, error) {
	return m.createFn(ctx, mv)
}

func (m *mockMovieUC) CreateBatch(ctx context.Context, movies []dommovie.Movie) (dommovie.BatchResult, error) {
	return m.createBatchFn(ctx, movies)
}

func (m *mockMovieUC) Update(ctx context.Context, id string, p patch.Patch) (dommovie.Movie, error) {
	return m.updateFn(ctx, id, p)
}

func (m *mockMovieUC) UpdateMany(ctx context.Context, filter, update query.Document) (dommovie.UpdateCounts, error) {
	return m.updateManyFn(ctx, filter, update)
}

func (m *mockMovieUC) Replace(ctx context.Context, id string, mv dommovie.Movie) (dommovie.Movie, error) {
	return m.replaceFn(ctx, id, mv)
}

func (m *mockMovieUC) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func (m *mockMovieUC) DeleteMany(ctx context.Context, filter query.Document) (int64, error) {
	return m.deleteManyFn(ctx, filter)
}

func (m *mockMovieUC) FindAndDelete(ctx context.Context, id string) (dommovie.Movie, error) {
	return m.findAndDeleteFn(ctx, id)
}

// --- searchUseCase mock ---

type mockSearchUC struct {
	keywordFn func(ctx context.Context, req request.Request) (result.Page, error)
	vectorFn  func(ctx context.Context, req request.VectorRequest) ([]result.Hit, error)
	similarFn func(ctx context.Context, req request.SimilarRequest) ([]result.ScoredMovie, error)
}

func (m *mockSearchUC) Keyword(ctx context.Context, req request.Request) (result.Page, error) {
	return m.keywordFn(ctx, req)
}

func (m *mockSearchUC) Vector(ctx context.Context, req request.VectorRequest) ([]result.Hit, error) {
	return m.vectorFn(ctx, req)
}

func (m *mockSearchUC) Similar(ctx context.Context, req request.SimilarRequest) ([]result.ScoredMovie, error) {
	return m.similarFn(ctx, req)
}

// --- reportUseCase mock ---

type mockReportUC struct {
	commentsFn  func(ctx context.Context, limit *int, movieID string) ([]domreport.MovieWithComments, error)
	yearsFn     func(ctx context.Context) ([]domreport.YearStatistics, error)
	directorsFn func(ctx context.Context, limit *int) ([]domreport.DirectorStatistics, error)
}

func (m *mockReportUC) RecentComments(
	ctx context.Context, limit *int, movieID string,
) ([]domreport.MovieWithComments, error) {
	return m.commentsFn(ctx, limit, movieID)
}

func (m *mockReportUC) YearStatistics(ctx context.Context) ([]domreport.YearStatistics, error) {
	return m.yearsFn(ctx)
}

func (m *mockReportUC) DirectorStatistics(ctx context.Context, limit *int) ([]domreport.DirectorStatistics, error) {
	return m.directorsFn(ctx, limit)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }

// --- connection mock ---

type mockConn struct {
	pingErr  error
	closeErr error
	closed   bool
}

func (m *mockConn) Ping(context.Context) error { return m.pingErr }

func (m *mockConn) Close(context.Context) error {
	m.closed = true
	return m.closeErr
}

// --- Embedder mock ---

type mockEmbedder struct {
	fn func(ctx context.Context, text string) (EmbeddingResult, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (EmbeddingResult, error) {
	return m.fn(ctx, text)
}
