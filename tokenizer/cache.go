package tokenizer

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// patternCacheSize bounds the number of compiled matcher sets kept alive.
// Each distinct configuration fingerprint occupies one slot; real workloads
// use a handful of configurations, so evictions are effectively never hit.
const patternCacheSize = 128

// The process-wide compiled-pattern cache. Reads are lock-free on the hot
// path via the LRU's internal locking; population is serialized per
// fingerprint through the singleflight group so a given configuration is
// compiled at most once even under concurrent first use.
var (
	patternCache *lru.Cache[string, *matcherSet]
	compileGroup singleflight.Group
)

func init() {
	// lru.New errors only on a non-positive size.
	patternCache, _ = lru.New[string, *matcherSet](patternCacheSize)
}

// compiledSet returns the matcher set for cfg, compiling and caching it on
// first use. cfg must already be validated.
func compiledSet(cfg Config) *matcherSet {
	key := cfg.Fingerprint()
	if ms, ok := patternCache.Get(key); ok {
		return ms
	}
	v, _, _ := compileGroup.Do(key, func() (any, error) {
		if ms, ok := patternCache.Get(key); ok {
			return ms, nil
		}
		ms := compile(cfg)
		patternCache.Add(key, ms)
		return ms, nil
	})
	return v.(*matcherSet)
}
