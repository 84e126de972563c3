package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_SharedExecution(t *testing.T) {
	t.Parallel()

	var g SingleFlight
	var executions int32

	const callers = 16
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(callers)

	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			<-start
			val, err, _ := g.Do("club-1234", func() (any, error) {
				atomic.AddInt32(&executions, 1)
				time.Sleep(15 * time.Millisecond)
				return 42, nil
			})
			if err != nil {
				t.Errorf("shared call failed: %v", err)
			}
			if val != 42 {
				t.Errorf("expected shared value 42, got %v", val)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&executions); got != 1 {
		t.Fatalf("expected one execution, got %d", got)
	}
}

func TestSingleFlight_KeysAreIndependent(t *testing.T) {
	t.Parallel()

	var g SingleFlight

	a, err, shared := g.Do("club-1", func() (any, error) { return "a", nil })
	if err != nil || shared {
		t.Fatalf("unexpected result: err=%v shared=%v", err, shared)
	}
	b, err, shared := g.Do("club-2", func() (any, error) { return "b", nil })
	if err != nil || shared {
		t.Fatalf("unexpected result: err=%v shared=%v", err, shared)
	}

	if a != "a" || b != "b" {
		t.Fatalf("keys leaked results: a=%v b=%v", a, b)
	}
}
