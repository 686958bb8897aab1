package chi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/cinedex/internal/domain"
)

// maxBodyBytes bounds request bodies; batch inserts are the largest.
const maxBodyBytes = 8 << 20

// queryParam binds one optional form-style query parameter into dest.
type queryParam struct {
	name string
	dest any
}

// bindQuery binds each parameter the way oapi-codegen generated handlers do.
func bindQuery(r *http.Request, params ...queryParam) error {
	q := r.URL.Query()
	for _, p := range params {
		if err := runtime.BindQueryParameter("form", true, false, p.name, q, p.dest); err != nil {
			return domain.NewValidationError("invalid format for parameter %s", p.name)
		}
	}
	return nil
}

// decodeBody decodes JSON keeping numbers as json.Number so free-form
// filter and update documents preserve integer types.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.NewValidationError("request body is required")
		}
		return domain.NewValidationError("invalid request body: %s", err.Error())
	}
	return nil
}

// check runs struct validation and reports the first failing field.
func (s *Server) check(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		fe := ve[0]
		if fe.Tag() == "required" {
			return domain.NewValidationError("%s is required", fe.Field())
		}
		return domain.NewValidationError("%s failed %s validation", fe.Field(), fe.Tag())
	}
	return domain.NewValidationError("invalid request: %s", err.Error())
}
