package request

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/domain/search/mode"
)

func intPtr(v int) *int { return &v }

func TestNew_Defaults(t *testing.T) {
	r, err := New(Searchable{Plot: " space "}, "", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Mode() != mode.Must {
		t.Errorf("Mode() = %q, want must (default)", r.Mode())
	}
	if r.Limit() != DefaultLimit {
		t.Errorf("Limit() = %d", r.Limit())
	}
	if r.Skip() != 0 {
		t.Errorf("Skip() = %d", r.Skip())
	}
	if r.Fields().Plot != "space" {
		t.Errorf("Plot = %q", r.Fields().Plot)
	}
}

func TestNew_NoFields(t *testing.T) {
	_, err := New(Searchable{Cast: "  "}, mode.Should, nil, nil)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestNew_InvalidMode(t *testing.T) {
	_, err := New(Searchable{Cast: "Tom"}, "hybrid", nil, nil)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestNew_Clamps(t *testing.T) {
	r, err := New(Searchable{Writers: "x"}, mode.Filter, intPtr(500), intPtr(-1))
	if err != nil {
		t.Fatal(err)
	}
	if r.Limit() != MaxLimit || r.Skip() != 0 {
		t.Errorf("limit=%d skip=%d", r.Limit(), r.Skip())
	}
}

func TestNewVector(t *testing.T) {
	if _, err := NewVector("   ", nil); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	r, err := NewVector("haunted house", intPtr(0))
	if err != nil {
		t.Fatal(err)
	}
	if r.Limit() != 1 || r.NumCandidates() != 20 {
		t.Errorf("limit=%d candidates=%d", r.Limit(), r.NumCandidates())
	}
	r, _ = NewVector("q", nil)
	if r.Limit() != DefaultVectorLimit || r.NumCandidates() != 200 {
		t.Errorf("limit=%d candidates=%d", r.Limit(), r.NumCandidates())
	}
}

func TestNewSimilar(t *testing.T) {
	if _, err := NewSimilar("", nil); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("empty id: %v", err)
	}
	if _, err := NewSimilar("xyz", nil); !errors.Is(err, domain.ErrInvalidIdentifier) {
		t.Errorf("bad id: %v", err)
	}
	r, err := NewSimilar("573a1390f29313caabcd4135", intPtr(99))
	if err != nil {
		t.Fatal(err)
	}
	if r.Limit() != MaxVectorLimit {
		t.Errorf("Limit() = %d", r.Limit())
	}
	if r.ID().Hex() != "573a1390f29313caabcd4135" {
		t.Errorf("ID() = %s", r.ID().Hex())
	}
}
