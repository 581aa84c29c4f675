package locks

import (
	"context"
	"sync"
	"testing"
)

func TestKeyedMutexSerializesSameKey(t *testing.T) {
	km := NewKeyedMutex()
	ctx := context.Background()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := km.Lock(ctx, "route:1")
			if err != nil {
				t.Errorf("lock error: %v", err)
				return
			}
			defer unlock()
			// Unsynchronized read-modify-write; only the lock protects it.
			v := counter
			counter = v + 1
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Fatalf("critical section raced: counter=%d", counter)
	}
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	km := NewKeyedMutex()
	ctx := context.Background()

	unlockA, err := km.Lock(ctx, "route:1")
	if err != nil {
		t.Fatalf("lock error: %v", err)
	}
	defer unlockA()

	// A different key must not block while route:1 is held.
	done := make(chan struct{})
	go func() {
		unlockB, err := km.Lock(ctx, "company:1")
		if err == nil {
			unlockB()
		}
		close(done)
	}()
	<-done
}

func TestKeyedMutexCancelledContext(t *testing.T) {
	km := NewKeyedMutex()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := km.Lock(ctx, "route:1"); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}
