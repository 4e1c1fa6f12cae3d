package contact

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubHistory struct {
	count int
	err   error
	since time.Time
}

func (s *stubHistory) CountRecentByEmail(_ context.Context, _ string, since time.Time) (int, error) {
	s.since = since
	return s.count, s.err
}

func TestHistoryLimiterAllows(t *testing.T) {
	h := &stubHistory{count: 0}
	l := NewHistoryLimiter(h, time.Minute)

	ok, err := l.Allow(context.Background(), "a@b.com")
	if err != nil || !ok {
		t.Fatalf("expected allow, got ok=%v err=%v", ok, err)
	}

	// The window must reach back roughly one minute from now, in UTC.
	elapsed := time.Since(h.since)
	if elapsed < 59*time.Second || elapsed > 61*time.Second {
		t.Errorf("since = %v ago, want ~1m", elapsed)
	}
}

func TestHistoryLimiterRejectsRecentDuplicate(t *testing.T) {
	l := NewHistoryLimiter(&stubHistory{count: 1}, time.Minute)
	ok, err := l.Allow(context.Background(), "a@b.com")
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if ok {
		t.Error("a recent duplicate must be rejected")
	}
}

func TestHistoryLimiterIndeterminate(t *testing.T) {
	l := NewHistoryLimiter(&stubHistory{err: errors.New("db down")}, time.Minute)
	ok, err := l.Allow(context.Background(), "a@b.com")
	if err == nil {
		t.Fatal("history failure must propagate, not silently admit or reject")
	}
	if ok {
		t.Error("indeterminate check must not report allowed")
	}
}

func TestHistoryLimiterDefaultWindow(t *testing.T) {
	h := &stubHistory{}
	l := NewHistoryLimiter(h, 0)
	l.Allow(context.Background(), "a@b.com")

	elapsed := time.Since(h.since)
	if elapsed < 59*time.Second || elapsed > 61*time.Second {
		t.Errorf("default window must be one minute, since = %v ago", elapsed)
	}
}
