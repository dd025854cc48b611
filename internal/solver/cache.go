// internal/solver/cache.go
//
// SortCache memoizes frequency rankings of candidate sets.
//
// Characteristics:
//   - Keyed by the candidate SET, not its order: a bitset over word-table
//     indices, hashed with BLAKE2b-256.
//   - Concurrency-safe via RWMutex (concurrent reads, exclusive writes), so
//     one cache can be shared by parallel simulated games.
//   - Bounded: once full, new rankings are computed but not stored.
//   - Purely a speed-up; rankings are identical with or without it.

package solver

import (
	"sync"
	"sync/atomic"

	"github.com/bits-and-blooms/bitset"
	"golang.org/x/crypto/blake2b"

	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// SortCache maps a candidate set to its frequency-ranked order.
type SortCache struct {
	mu      sync.RWMutex
	max     int
	entries map[[blake2b.Size256]byte][]string

	hits   atomic.Int64
	misses atomic.Int64
}

// NewSortCache returns a cache holding at most max rankings.
func NewSortCache(max int) *SortCache {
	return &SortCache{max: max, entries: make(map[[blake2b.Size256]byte][]string)}
}

// Rank returns cands ranked by FrequencyScore, from the cache when the same
// set was ranked before. Words outside t bypass the cache.
func (c *SortCache) Rank(t *words.Tables, cands []string) []string {
	key, ok := setKey(t, cands)
	if !ok {
		return RankByFrequency(cands, t.Freqs)
	}

	c.mu.RLock()
	cached, hit := c.entries[key]
	c.mu.RUnlock()
	if hit {
		c.hits.Add(1)
		return append([]string(nil), cached...)
	}
	c.misses.Add(1)

	ranked := RankByFrequency(cands, t.Freqs)
	c.mu.Lock()
	if len(c.entries) < c.max {
		c.entries[key] = ranked
	}
	c.mu.Unlock()
	return append([]string(nil), ranked...)
}

// Len returns the number of stored rankings.
func (c *SortCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns cache hit and miss counts.
func (c *SortCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// setKey hashes the set of table indices of cands.
func setKey(t *words.Tables, cands []string) ([blake2b.Size256]byte, bool) {
	bs := bitset.New(uint(len(t.Words)))
	for _, w := range cands {
		i, ok := t.Index(w)
		if !ok {
			return [blake2b.Size256]byte{}, false
		}
		bs.Set(i)
	}
	b, err := bs.MarshalBinary()
	if err != nil {
		return [blake2b.Size256]byte{}, false
	}
	return blake2b.Sum256(b), true
}
