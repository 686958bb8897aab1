package chi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cinedex/internal/domain"
	dommovie "github.com/kailas-cloud/cinedex/internal/domain/movie"
	"github.com/kailas-cloud/cinedex/internal/domain/page"
	domreport "github.com/kailas-cloud/cinedex/internal/domain/report"
	"github.com/kailas-cloud/cinedex/internal/domain/search/request"
	"github.com/kailas-cloud/cinedex/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/cinedex/internal/usecase/health"
	movieuc "github.com/kailas-cloud/cinedex/internal/usecase/movie"
	reportuc "github.com/kailas-cloud/cinedex/internal/usecase/report"
	searchuc "github.com/kailas-cloud/cinedex/internal/usecase/search"
)

const testID = "573a1390f29313caabcd4135"

// mockMovies implements movieuc.Repository. Unset funcs return zero values.
type mockMovies struct {
	listFn          func(ctx context.Context, filter, sort bson.D, p page.Page) ([]dommovie.Movie, error)
	countFn         func(ctx context.Context, filter bson.D) (int64, error)
	getFn           func(ctx context.Context, id primitive.ObjectID) (dommovie.Movie, error)
	insertFn        func(ctx context.Context, m dommovie.Movie) (primitive.ObjectID, error)
	insertManyFn    func(ctx context.Context, movies []dommovie.Movie) ([]primitive.ObjectID, error)
	updateFn        func(ctx context.Context, id primitive.ObjectID, update bson.D) (int64, error)
	updateManyFn    func(ctx context.Context, filter, update bson.D) (dommovie.UpdateCounts, error)
	replaceFn       func(ctx context.Context, id primitive.ObjectID, m dommovie.Movie) (int64, error)
	deleteFn        func(ctx context.Context, id primitive.ObjectID) (int64, error)
	deleteManyFn    func(ctx context.Context, filter bson.D) (int64, error)
	findAndDeleteFn func(ctx context.Context, id primitive.ObjectID) (dommovie.Movie, error)
}

func (m *mockMovies) List(ctx context.Context, filter, sort bson.D, p page.Page) ([]dommovie.Movie, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter, sort, p)
	}
	return []dommovie.Movie{}, nil
}

func (m *mockMovies) Count(ctx context.Context, filter bson.D) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx, filter)
	}
	return 0, nil
}

func (m *mockMovies) Get(ctx context.Context, id primitive.ObjectID) (dommovie.Movie, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return dommovie.Movie{}, &domain.NotFoundError{Resource: "movie", ID: id.Hex()}
}

func (m *mockMovies) Insert(ctx context.Context, mv dommovie.Movie) (primitive.ObjectID, error) {
	if m.insertFn != nil {
		return m.insertFn(ctx, mv)
	}
	return primitive.NewObjectID(), nil
}

func (m *mockMovies) InsertMany(ctx context.Context, movies []dommovie.Movie) ([]primitive.ObjectID, error) {
	if m.insertManyFn != nil {
		return m.insertManyFn(ctx, movies)
	}
	ids := make([]primitive.ObjectID, len(movies))
	for i := range ids {
		ids[i] = primitive.NewObjectID()
	}
	return ids, nil
}

func (m *mockMovies) Update(ctx context.Context, id primitive.ObjectID, update bson.D) (int64, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, update)
	}
	return 0, nil
}

func (m *mockMovies) UpdateMany(ctx context.Context, filter, update bson.D) (dommovie.UpdateCounts, error) {
	if m.updateManyFn != nil {
		return m.updateManyFn(ctx, filter, update)
	}
	return dommovie.UpdateCounts{}, nil
}

func (m *mockMovies) Replace(ctx context.Context, id primitive.ObjectID, mv dommovie.Movie) (int64, error) {
	if m.replaceFn != nil {
		return m.replaceFn(ctx, id, mv)
	}
	return 0, nil
}

func (m *mockMovies) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return 0, nil
}

func (m *mockMovies) DeleteMany(ctx context.Context, filter bson.D) (int64, error) {
	if m.deleteManyFn != nil {
		return m.deleteManyFn(ctx, filter)
	}
	return 0, nil
}

func (m *mockMovies) FindAndDelete(ctx context.Context, id primitive.ObjectID) (dommovie.Movie, error) {
	if m.findAndDeleteFn != nil {
		return m.findAndDeleteFn(ctx, id)
	}
	return dommovie.Movie{}, &domain.NotFoundError{Resource: "movie", ID: id.Hex()}
}

// mockSearch implements searchuc.Repository.
type mockSearch struct {
	keywordFn    func(ctx context.Context, req request.Request) ([]dommovie.Movie, error)
	candidatesFn func(ctx context.Context, v []float32, req request.VectorRequest) ([]result.Candidate, error)
	hitsFn       func(ctx context.Context, ids []primitive.ObjectID) ([]result.Hit, error)
	embeddingFn  func(ctx context.Context, id primitive.ObjectID) ([]float64, error)
	similarFn    func(ctx context.Context, v []float64, req request.SimilarRequest) ([]result.ScoredMovie, error)
}

func (m *mockSearch) Keyword(ctx context.Context, req request.Request) ([]dommovie.Movie, error) {
	if m.keywordFn != nil {
		return m.keywordFn(ctx, req)
	}
	return []dommovie.Movie{}, nil
}

func (m *mockSearch) VectorCandidates(
	ctx context.Context, v []float32, req request.VectorRequest,
) ([]result.Candidate, error) {
	if m.candidatesFn != nil {
		return m.candidatesFn(ctx, v, req)
	}
	return nil, nil
}

func (m *mockSearch) HitsByID(ctx context.Context, ids []primitive.ObjectID) ([]result.Hit, error) {
	if m.hitsFn != nil {
		return m.hitsFn(ctx, ids)
	}
	return nil, nil
}

func (m *mockSearch) PlotEmbedding(ctx context.Context, id primitive.ObjectID) ([]float64, error) {
	if m.embeddingFn != nil {
		return m.embeddingFn(ctx, id)
	}
	return nil, nil
}

func (m *mockSearch) Similar(
	ctx context.Context, v []float64, req request.SimilarRequest,
) ([]result.ScoredMovie, error) {
	if m.similarFn != nil {
		return m.similarFn(ctx, v, req)
	}
	return []result.ScoredMovie{}, nil
}

// mockReports implements reportuc.Repository.
type mockReports struct {
	commentsFn  func(ctx context.Context, limit int, movieID *primitive.ObjectID) ([]domreport.MovieWithComments, error)
	yearsFn     func(ctx context.Context) ([]domreport.YearStatistics, error)
	directorsFn func(ctx context.Context, limit int) ([]domreport.DirectorStatistics, error)
}

func (m *mockReports) RecentComments(
	ctx context.Context, limit int, movieID *primitive.ObjectID,
) ([]domreport.MovieWithComments, error) {
	if m.commentsFn != nil {
		return m.commentsFn(ctx, limit, movieID)
	}
	return []domreport.MovieWithComments{}, nil
}

func (m *mockReports) YearStatistics(ctx context.Context) ([]domreport.YearStatistics, error) {
	if m.yearsFn != nil {
		return m.yearsFn(ctx)
	}
	return []domreport.YearStatistics{}, nil
}

func (m *mockReports) DirectorStatistics(ctx context.Context, limit int) ([]domreport.DirectorStatistics, error) {
	if m.directorsFn != nil {
		return m.directorsFn(ctx, limit)
	}
	return []domreport.DirectorStatistics{}, nil
}

type mockEmbedder struct {
	embedFn func(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	if m.embedFn != nil {
		return m.embedFn(ctx, text)
	}
	return domain.EmbeddingResult{Embedding: []float32{0.1, 0.2}}, nil
}

type mockPinger struct{ err error }

func (m *mockPinger) Ping(context.Context) error { return m.err }

type mockChecker struct{ configured bool }

func (m *mockChecker) Configured() bool { return m.configured }

// deps groups the fakes behind a test server. Nil fields get defaults.
type deps struct {
	movies  *mockMovies
	search  *mockSearch
	reports *mockReports
	embed   searchuc.Embedder
	pinger  *mockPinger
	checker healthuc.EmbeddingChecker
}

func newTestServer(t *testing.T, d deps) *httptest.Server {
	t.Helper()
	if d.movies == nil {
		d.movies = &mockMovies{}
	}
	if d.search == nil {
		d.search = &mockSearch{}
	}
	if d.reports == nil {
		d.reports = &mockReports{}
	}
	if d.pinger == nil {
		d.pinger = &mockPinger{}
	}

	srv := NewServer(
		movieuc.New(d.movies),
		searchuc.New(d.search, d.embed),
		reportuc.New(d.reports),
		healthuc.New(d.pinger, d.checker),
		zap.NewNop(),
	)
	r := chi.NewRouter()
	srv.Routes(r)

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}

// do sends a request with an optional JSON body.
func do(t *testing.T, ts *httptest.Server, method, path, body string) *http.Response {
	t.Helper()
	var rd io.Reader = http.NoBody
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(context.Background(), method, ts.URL+path, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

type decodedSuccess struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Timestamp  string          `json:"timestamp"`
	Pagination *pagination     `json:"pagination"`
}

func decodeSuccess(t *testing.T, resp *http.Response, wantStatus int) decodedSuccess {
	t.Helper()
	if resp.StatusCode != wantStatus {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("status: got %d, want %d (body %s)", resp.StatusCode, wantStatus, b)
	}
	var out decodedSuccess
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode success envelope: %v", err)
	}
	if !out.Success || out.Timestamp == "" {
		t.Fatalf("envelope: got %+v", out)
	}
	return out
}

func decodeError(t *testing.T, resp *http.Response, wantStatus int, wantCode string) errorEnvelope {
	t.Helper()
	if resp.StatusCode != wantStatus {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("status: got %d, want %d (body %s)", resp.StatusCode, wantStatus, b)
	}
	var out errorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if out.Success || out.Error.Code != wantCode {
		t.Fatalf("error envelope: got %+v, want code %s", out, wantCode)
	}
	return out
}

func oid(t *testing.T, hex string) primitive.ObjectID {
	t.Helper()
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		t.Fatalf("object id: %v", err)
	}
	return id
}

var errBoom = errors.New("boom")
