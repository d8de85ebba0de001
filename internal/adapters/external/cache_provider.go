package external

import (
	"sync"
	"time"

	"weatherdeck.app/internal/ports"
)

// cacheStats is the hit/miss bookkeeping shared by the cache providers
type cacheStats struct {
	mutex  sync.RWMutex
	hits   int64
	misses int64
}

func (s *cacheStats) recordHit() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.hits++
}

func (s *cacheStats) recordMiss() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.misses++
}

func (s *cacheStats) snapshot() ports.CacheStats {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	total := s.hits + s.misses
	hitRatio := float64(0)
	if total > 0 {
		hitRatio = float64(s.hits) / float64(total)
	}

	return ports.CacheStats{
		Hits:        s.hits,
		Misses:      s.misses,
		TotalOps:    total,
		HitRatio:    hitRatio,
		LastUpdated: time.Now(),
	}
}
