package ratelimit

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

const dayFormat = "2006-01-02"

// MemoryStore counts queries per (identity, UTC calendar day) in a
// concurrent map of atomic counters. The check-then-increment is a CAS
// loop bounded by the limit, so no global lock serializes unrelated
// identities. Counters for past days are swept lazily the first time the
// store observes a new day.
type MemoryStore struct {
	limit    int
	now      func() time.Time
	counters sync.Map     // "identity|2006-01-02" -> *int64
	day      atomic.Value // string, last observed UTC day
	sweepMu  sync.Mutex
}

func NewMemoryStore(limit int) *MemoryStore {
	return newMemoryStore(limit, time.Now)
}

func newMemoryStore(limit int, now func() time.Time) *MemoryStore {
	s := &MemoryStore{limit: limit, now: now}
	s.day.Store(now().UTC().Format(dayFormat))
	return s
}

func (s *MemoryStore) CheckAndIncrement(identity string) Decision {
	nowUTC := s.now().UTC()
	day := nowUTC.Format(dayFormat)
	resetAt := nowUTC.Truncate(24 * time.Hour).Add(24 * time.Hour)

	s.maybeSweep(day)

	v, _ := s.counters.LoadOrStore(identity+"|"+day, new(int64))
	counter := v.(*int64)

	for {
		current := atomic.LoadInt64(counter)
		if current >= int64(s.limit) {
			return Decision{
				Allowed:    false,
				Limit:      s.limit,
				Remaining:  0,
				RetryAfter: resetAt.Sub(nowUTC),
				ResetAt:    resetAt,
			}
		}
		if atomic.CompareAndSwapInt64(counter, current, current+1) {
			return Decision{
				Allowed:   true,
				Limit:     s.limit,
				Remaining: s.limit - int(current+1),
				ResetAt:   resetAt,
			}
		}
	}
}

// maybeSweep drops counters whose day component is in the past. The fast
// path is a single atomic load; only the first caller of a new day pays
// for the sweep.
func (s *MemoryStore) maybeSweep(day string) {
	if s.day.Load().(string) == day {
		return
	}

	s.sweepMu.Lock()
	defer s.sweepMu.Unlock()
	if s.day.Load().(string) == day {
		return
	}

	s.counters.Range(func(key, _ any) bool {
		if !strings.HasSuffix(key.(string), "|"+day) {
			s.counters.Delete(key)
		}
		return true
	})
	s.day.Store(day)
}
