package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/cinedex/internal/db"
)

func TestStore_GetSet(t *testing.T) {
	s, err := NewStore(2)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if _, err := s.Get(ctx, "a"); !errors.Is(err, db.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
	_ = s.Set(ctx, "a", []byte("1"))
	got, err := s.Get(ctx, "a")
	if err != nil || string(got) != "1" {
		t.Fatalf("Get = %q, %v", got, err)
	}
}

func TestStore_Evicts(t *testing.T) {
	s, _ := NewStore(2)
	ctx := context.Background()
	_ = s.Set(ctx, "a", []byte("1"))
	_ = s.Set(ctx, "b", []byte("2"))
	_ = s.Set(ctx, "c", []byte("3"))

	if _, err := s.Get(ctx, "a"); !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("oldest entry should be evicted, got %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d", s.Len())
	}
}

func TestStore_TTL(t *testing.T) {
	s, _ := NewStore(8)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	_ = s.SetWithTTL(ctx, "k", []byte("v"), time.Minute)
	if _, err := s.Get(ctx, "k"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := s.Get(ctx, "k"); !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("expired entry: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("expired entry should be removed, Len() = %d", s.Len())
	}
}

func TestNewStore_InvalidSize(t *testing.T) {
	if _, err := NewStore(0); err == nil {
		t.Error("expected error for size 0")
	}
}
