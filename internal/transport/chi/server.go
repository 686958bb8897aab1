// Package chi is the HTTP transport: routes, request decoding and the
// response envelope.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/logger"
	healthuc "github.com/kailas-cloud/cinedex/internal/usecase/health"
	movieuc "github.com/kailas-cloud/cinedex/internal/usecase/movie"
	reportuc "github.com/kailas-cloud/cinedex/internal/usecase/report"
	searchuc "github.com/kailas-cloud/cinedex/internal/usecase/search"
)

// Error codes carried in error envelopes.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeNotFound           = "RESOURCE_NOT_FOUND"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeEmbeddingService   = "EMBEDDING_SERVICE_ERROR"
	CodeDatabase           = "DATABASE_ERROR"
	CodeInternal           = "INTERNAL_ERROR"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server serves the movie API.
type Server struct {
	movies        *movieuc.Service
	search        *searchuc.Service
	reports       *reportuc.Service
	health        *healthuc.Service
	validate      *validator.Validate
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	movies *movieuc.Service,
	search *searchuc.Service,
	reports *reportuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		movies:   movies,
		search:   search,
		reports:  reports,
		health:   health,
		validate: newValidator(),
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		validationHandler,
		operatorHandler,
		notFoundHandler,
		sentinelHandler(domain.ErrEmbeddingNotConfigured, http.StatusServiceUnavailable, CodeServiceUnavailable),
		sentinelHandler(domain.ErrEmbeddingAuth, http.StatusBadGateway, CodeEmbeddingService),
		sentinelHandler(domain.ErrEmbeddingService, http.StatusBadGateway, CodeEmbeddingService),
		sentinelHandler(domain.ErrDatabaseOperation, http.StatusInternalServerError, CodeDatabase),
	}
	return s
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Routes mounts every endpoint on r. Static segments take precedence over {id}.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/movies", func(r chi.Router) {
		r.Get("/", s.ListMovies)
		r.Post("/", s.CreateMovie)
		r.Patch("/", s.UpdateMovies)
		r.Delete("/", s.DeleteMovies)
		r.Post("/batch", s.CreateMovies)

		r.Get("/search", s.SearchMovies)
		r.Get("/vector-search", s.VectorSearch)
		r.Get("/find-similar-movies", s.FindSimilarMovies)

		r.Get("/aggregations/reportingByComments", s.ReportByComments)
		r.Get("/aggregations/reportingByYear", s.ReportByYear)
		r.Get("/aggregations/reportingByDirectors", s.ReportByDirectors)

		r.Get("/{id}", s.GetMovie)
		r.Patch("/{id}", s.UpdateMovie)
		r.Put("/{id}", s.ReplaceMovie)
		r.Delete("/{id}", s.DeleteMovie)
		r.Delete("/{id}/find-and-delete", s.FindAndDeleteMovie)
	})
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, healthResponse{
		Status:    string(report.Status),
		Checks:    report.Checks,
		Timestamp: now(),
	})
}

type healthResponse struct {
	Status    string                          `json:"status"`
	Checks    map[string]healthuc.CheckResult `json:"checks"`
	Timestamp string                          `json:"timestamp"`
}

// pagination is the list metadata of a success envelope.
type pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

type successEnvelope struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       any         `json:"data"`
	Timestamp  string      `json:"timestamp"`
	Pagination *pagination `json:"pagination,omitempty"`
}

type errorDetails struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

type errorEnvelope struct {
	Success   bool         `json:"success"`
	Message   string       `json:"message"`
	Error     errorDetails `json:"error"`
	Timestamp string       `json:"timestamp"`
}

var now = func() string { return time.Now().UTC().Format(time.RFC3339Nano) }

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, successEnvelope{Success: true, Message: message, Data: data, Timestamp: now()})
}

func writePage(w http.ResponseWriter, data any, p pagination) {
	writeJSON(w, http.StatusOK, successEnvelope{Success: true, Data: data, Timestamp: now(), Pagination: &p})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeErrorDetails(w, status, code, message, nil)
}

func writeErrorDetails(w http.ResponseWriter, status int, code, message string, details any) {
	writeJSON(w, status, errorEnvelope{
		Message:   message,
		Error:     errorDetails{Message: message, Code: code, Details: details},
		Timestamp: now(),
	})
}

// validationHandler exposes the client-facing reason of a ValidationError.
func validationHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrValidation) {
		return false
	}
	msg := domain.ErrValidation.Error()
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		msg = ve.Message
	}
	writeError(w, http.StatusBadRequest, CodeValidation, msg)
	return true
}

func operatorHandler(w http.ResponseWriter, err error) bool {
	var oe *domain.OperatorError
	if !errors.As(err, &oe) {
		return false
	}
	writeErrorDetails(w, http.StatusBadRequest, CodeValidation, oe.Error(), map[string]string{
		"field":    oe.Field,
		"operator": oe.Operator,
	})
	return true
}

func notFoundHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrNotFound) {
		return false
	}
	msg := domain.ErrNotFound.Error()
	var nf *domain.NotFoundError
	if errors.As(err, &nf) {
		msg = nf.Error()
	}
	writeError(w, http.StatusNotFound, CodeNotFound, msg)
	return true
}

// sentinelHandler returns an errorHandler that matches a single sentinel error
// and answers with its message, never the wrapped cause.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, sentinelMessage(sentinel))
		return true
	}
}

func sentinelMessage(sentinel error) string {
	var ee *domain.EmbeddingError
	if errors.As(sentinel, &ee) {
		return ee.Message
	}
	return sentinel.Error()
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContextOr(r.Context(), s.logger)
	for _, h := range s.errorHandlers {
		if h(w, err) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternal, "internal error")
}
