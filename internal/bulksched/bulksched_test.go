package bulksched

import (
	"sync"
	"testing"
	"time"
)

func TestObserveFlushesOnLineThreshold(t *testing.T) {
	var mu sync.Mutex
	var flushes int
	s := New(func() int { return 1 }, func(int) {
		mu.Lock()
		flushes++
		mu.Unlock()
	})
	s.WithThresholds(3, 1<<20, time.Hour)

	s.Observe(1, 1)
	s.Observe(1, 1)
	mu.Lock()
	if flushes != 0 {
		t.Fatalf("expected no flush yet, got %d", flushes)
	}
	mu.Unlock()

	s.Observe(1, 1)
	mu.Lock()
	defer mu.Unlock()
	if flushes != 1 {
		t.Errorf("expected 1 flush after crossing line threshold, got %d", flushes)
	}
}

func TestObserveFlushesOnByteThreshold(t *testing.T) {
	var mu sync.Mutex
	var flushes int
	s := New(func() int { return 1 }, func(int) {
		mu.Lock()
		flushes++
		mu.Unlock()
	})
	s.WithThresholds(1<<20, 10, time.Hour)

	s.Observe(5, 0)
	s.Observe(4, 0)
	mu.Lock()
	if flushes != 0 {
		t.Fatalf("expected no flush yet, got %d", flushes)
	}
	mu.Unlock()

	s.Observe(2, 0)
	mu.Lock()
	defer mu.Unlock()
	if flushes != 1 {
		t.Errorf("expected 1 flush after crossing byte threshold, got %d", flushes)
	}
}

func TestIdleTimerFlushesPendingMutations(t *testing.T) {
	done := make(chan int, 1)
	s := New(func() int { return 42 }, func(img int) { done <- img })
	s.WithThresholds(1<<20, 1<<20, 20*time.Millisecond)

	s.Observe(1, 0)

	select {
	case img := <-done:
		if img != 42 {
			t.Errorf("expected snapshot value 42, got %d", img)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for idle-timer flush")
	}
}

func TestFlushForcesImmediateDelivery(t *testing.T) {
	var got int
	s := New(func() int { return 7 }, func(img int) { got = img })
	s.Flush()
	if got != 7 {
		t.Errorf("expected forced flush to deliver snapshot, got %d", got)
	}
}

func TestStopSuppressesFurtherFlushes(t *testing.T) {
	var flushes int
	s := New(func() int { return 1 }, func(int) { flushes++ })
	s.WithThresholds(1, 1<<20, time.Hour)
	s.Stop()
	s.Observe(1, 1)
	time.Sleep(10 * time.Millisecond)
	if flushes != 0 {
		t.Errorf("expected no flushes after Stop, got %d", flushes)
	}
}

func TestNoSpuriousFlushWhenNothingPending(t *testing.T) {
	var flushes int
	s := New(func() int { return 1 }, func(int) { flushes++ })
	s.WithThresholds(1<<20, 1<<20, 10*time.Millisecond)
	// No Observe call at all; the timer was never armed.
	time.Sleep(30 * time.Millisecond)
	if flushes != 0 {
		t.Errorf("expected no flush when nothing was observed, got %d", flushes)
	}
}
