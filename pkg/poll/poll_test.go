package poll

import (
	"errors"
	"testing"
	"time"
)

func TestUntilReturnsImmediatelyOnMatch(t *testing.T) {
	calls := 0
	start := time.Now()
	err := Until(func() (int, error) {
		calls++
		return 42, nil
	}, 42, 50*time.Millisecond, 200*time.Millisecond)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 probe evaluation, got %d", calls)
	}
	if elapsed := time.Since(start); elapsed >= 50*time.Millisecond {
		t.Errorf("expected no sleep on immediate match, took %s", elapsed)
	}
}

// With timeout=10 and interval=5 a never-matching probe must be
// evaluated exactly 3 times: the budget runs 10 -> 5 -> 0 -> -5 and the
// admission check fails before the third sleep.
func TestUntilBudgetBoundary(t *testing.T) {
	calls := 0
	err := Until(func() (int, error) {
		calls++
		return 0, nil
	}, 1, 5*time.Millisecond, 10*time.Millisecond)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected exactly 3 probe evaluations, got %d", calls)
	}
}

func TestUntilZeroBudgetProbesOnce(t *testing.T) {
	calls := 0
	err := Until(func() (int, error) {
		calls++
		return 0, nil
	}, 1, 5*time.Millisecond, 0)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 probe evaluation, got %d", calls)
	}
}

func TestUntilSucceedsWhenValueChanges(t *testing.T) {
	calls := 0
	err := Until(func() (string, error) {
		calls++
		if calls < 3 {
			return "off", nil
		}
		return "on", nil
	}, "on", time.Millisecond, 100*time.Millisecond)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 probe evaluations, got %d", calls)
	}
}

func TestUntilPropagatesProbeError(t *testing.T) {
	calls := 0
	probeErr := errors.New("transport failure")
	err := Until(func() (int, error) {
		calls++
		return 0, probeErr
	}, 1, time.Millisecond, 100*time.Millisecond)
	if !errors.Is(err, probeErr) {
		t.Fatalf("expected probe error to surface, got %v", err)
	}
	if calls != 1 {
		t.Errorf("probe errors must not be retried, got %d evaluations", calls)
	}
}
