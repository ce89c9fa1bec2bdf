package cache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solast-dev/solast/pkg/cache"
	"github.com/solast-dev/solast/pkg/solast"
)

const counterSource = `{
  "sources": {
    "Counter.sol": {
      "ast": {
        "id": 1,
        "nodeType": "SourceUnit",
        "src": "0:60:0",
        "absolutePath": "Counter.sol",
        "license": "MIT",
        "exportedSymbols": {},
        "nodes": [
          {
            "id": 2,
            "nodeType": "ContractDefinition",
            "src": "0:60:0",
            "name": "Counter",
            "contractKind": "contract",
            "abstract": false,
            "fullyImplemented": true,
            "scope": 1,
            "linearizedBaseContracts": [2],
            "baseContracts": [],
            "nodes": []
          }
        ]
      }
    }
  }
}`

func TestLRUTreeCacheGetPut(t *testing.T) {
	t.Parallel()

	c := cache.NewLRUTreeCache(1024 * 1024)
	raw := []byte(counterSource)
	hash := cache.HashInput(raw)

	require.Nil(t, c.Get(hash))

	result, err := solast.Read(raw, solast.ReadOptions{})
	require.NoError(t, err)

	require.NoError(t, c.Put(hash, raw, &cache.Tree{Units: result.Units, Ctx: result.Ctx}))

	cached := c.Get(hash)
	require.NotNil(t, cached)
	assert.Len(t, cached.Units, 1)
	assert.Equal(t, "Counter.sol", cached.Units[0].AbsolutePath)

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.Entries)
}

func TestLRUTreeCacheSkipsOversizedEntry(t *testing.T) {
	t.Parallel()

	c := cache.NewLRUTreeCache(1)
	raw := []byte(counterSource)
	hash := cache.HashInput(raw)

	result, err := solast.Read(raw, solast.ReadOptions{})
	require.NoError(t, err)

	require.NoError(t, c.Put(hash, raw, &cache.Tree{Units: result.Units, Ctx: result.Ctx}))

	assert.Nil(t, c.Get(hash))
	assert.Equal(t, 0, c.Stats().Entries)
}

func TestLRUStatsHitRate(t *testing.T) {
	t.Parallel()

	stats := cache.LRUStats{Hits: 3, Misses: 1}
	assert.InDelta(t, 0.75, stats.HitRate(), 0.0001)

	empty := cache.LRUStats{}
	assert.InDelta(t, 0.0, empty.HitRate(), 0.0001)
}
