// Package cache provides the sharded LRU cache behind the glyph cache.
//
// ShardedCache spreads keys over 16 shards, each with its own lock and
// LRU list, so concurrent text layout does not serialize on one mutex.
//
//	c := cache.NewSharded[uint64, Glyph](256, cache.Uint64Hasher)
//	g, err := c.GetOrLoad(key, rasterize)
//
// The cache must not be copied after creation.
package cache
