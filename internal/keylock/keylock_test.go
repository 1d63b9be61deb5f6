package keylock

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLockSerializesSameKey(t *testing.T) {
	km := New()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		current int
		maxSeen int
	)

	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.Lock("student-1|2025-Spring")
			defer unlock()

			mu.Lock()
			current++
			if current > maxSeen {
				maxSeen = current
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			current--
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Equal(t, 1, maxSeen, "critical section must admit one holder at a time")
}

func TestDifferentKeysDoNotBlock(t *testing.T) {
	km := New()

	unlockA := km.Lock("a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := km.Lock("b")
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a different key blocked")
	}
}

func TestEntriesEvictedAfterRelease(t *testing.T) {
	km := New()

	unlock := km.Lock("x")
	unlock()

	km.mu.Lock()
	defer km.mu.Unlock()
	require.Empty(t, km.entries)
}
