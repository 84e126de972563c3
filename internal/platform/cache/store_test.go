package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_SetGet(t *testing.T) {
	t.Parallel()

	s := NewStore(time.Minute)
	ctx := context.Background()

	s.Set(ctx, "matches:1234", []int{1, 2, 3})

	got, ok := s.Get(ctx, "matches:1234")
	if !ok {
		t.Fatal("expected cached value")
	}
	if len(got.([]int)) != 3 {
		t.Fatalf("unexpected cached value: %v", got)
	}

	if _, ok := s.Get(ctx, "matches:9999"); ok {
		t.Fatal("expected miss for unknown key")
	}
}

func TestStore_TTLExpiry(t *testing.T) {
	t.Parallel()

	s := NewStore(10 * time.Millisecond)
	ctx := context.Background()

	s.Set(ctx, "k", "v")
	time.Sleep(25 * time.Millisecond)

	if _, ok := s.Get(ctx, "k"); ok {
		t.Fatal("expected expired entry to miss")
	}
}

func TestStore_GetOrLoadDeduplicates(t *testing.T) {
	t.Parallel()

	s := NewStore(time.Minute)
	ctx := context.Background()

	var loads int32
	const callers = 10
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(callers)

	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			<-start
			got, err := s.GetOrLoad(ctx, "club:77", func(context.Context) (any, error) {
				atomic.AddInt32(&loads, 1)
				time.Sleep(10 * time.Millisecond)
				return "payload", nil
			})
			if err != nil {
				t.Errorf("load failed: %v", err)
			}
			if got != "payload" {
				t.Errorf("unexpected value: %v", got)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&loads); got != 1 {
		t.Fatalf("expected single load, got %d", got)
	}

	if _, ok := s.Get(ctx, "club:77"); !ok {
		t.Fatal("expected loaded value to be cached")
	}
}
