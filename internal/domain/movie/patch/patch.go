// Package patch models sparse movie updates with an explicit presence marker per field.
package patch

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/kailas-cloud/cinedex/internal/domain"
)

// Field is an optional update value. A zero Field is absent; JSON null also
// leaves it absent, so omitted and null both mean "do not touch".
type Field[T any] struct {
	value T
	set   bool
}

// Set returns a present field.
func Set[T any](v T) Field[T] { return Field[T]{value: v, set: true} }

// Get returns the value and whether it is present.
func (f Field[T]) Get() (T, bool) { return f.value, f.set }

// IsSet reports presence.
func (f Field[T]) IsSet() bool { return f.set }

// UnmarshalJSON marks the field present unless the value is null.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*f = Field[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Set(v)
	return nil
}

// Patch is a sparse update of the mutable movie fields.
type Patch struct {
	Title     Field[string]   `json:"title"`
	Year      Field[int]      `json:"year"`
	Plot      Field[string]   `json:"plot"`
	FullPlot  Field[string]   `json:"fullplot"`
	Genres    Field[[]string] `json:"genres"`
	Directors Field[[]string] `json:"directors"`
	Writers   Field[[]string] `json:"writers"`
	Cast      Field[[]string] `json:"cast"`
	Countries Field[[]string] `json:"countries"`
	Languages Field[[]string] `json:"languages"`
	Rated     Field[string]   `json:"rated"`
	Runtime   Field[int]      `json:"runtime"`
	Poster    Field[string]   `json:"poster"`
}

// Assignment is one stored field and its new value.
type Assignment struct {
	Field string
	Value any
}

// Assignments lists present fields in declaration order.
func (p Patch) Assignments() []Assignment {
	var out []Assignment
	add := func(name string, v any) {
		out = append(out, Assignment{Field: name, Value: v})
	}
	if v, ok := p.Title.Get(); ok {
		add("title", v)
	}
	if v, ok := p.Year.Get(); ok {
		add("year", storedInt(v))
	}
	if v, ok := p.Plot.Get(); ok {
		add("plot", v)
	}
	if v, ok := p.FullPlot.Get(); ok {
		add("fullplot", v)
	}
	if v, ok := p.Genres.Get(); ok {
		add("genres", v)
	}
	if v, ok := p.Directors.Get(); ok {
		add("directors", v)
	}
	if v, ok := p.Writers.Get(); ok {
		add("writers", v)
	}
	if v, ok := p.Cast.Get(); ok {
		add("cast", v)
	}
	if v, ok := p.Countries.Get(); ok {
		add("countries", v)
	}
	if v, ok := p.Languages.Get(); ok {
		add("languages", v)
	}
	if v, ok := p.Rated.Get(); ok {
		add("rated", v)
	}
	if v, ok := p.Runtime.Get(); ok {
		add("runtime", storedInt(v))
	}
	if v, ok := p.Poster.Get(); ok {
		add("poster", v)
	}
	return out
}

// storedInt keeps values that fit as int32 and widens the rest to int64.
func storedInt(v int) any {
	if v > math.MaxInt32 || v < math.MinInt32 {
		return int64(v)
	}
	return int32(v)
}

// IsEmpty reports whether no field is present.
func (p Patch) IsEmpty() bool { return len(p.Assignments()) == 0 }

// Validate rejects a present but blank title.
func (p Patch) Validate() error {
	if v, ok := p.Title.Get(); ok && strings.TrimSpace(v) == "" {
		return domain.NewValidationError("title cannot be blank")
	}
	return nil
}
