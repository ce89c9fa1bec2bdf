// Package cache provides a process-local LRU cache for parsed Solidity
// trees, keyed by a content hash of the compiler JSON that produced them.
package cache

import (
	"sync"
	"sync/atomic"

	"github.com/dustin/go-humanize"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pierrec/lz4/v4"

	"github.com/solast-dev/solast/pkg/solast/pkg/node"
)

// DefaultLRUCacheSize is the default maximum memory size for the tree cache (256 MB).
const DefaultLRUCacheSize = 256 * 1024 * 1024

// Hash identifies one read's input by the Keccak256 digest of its raw
// compiler JSON, the same hash family StableHash uses elsewhere in this tree.
type Hash [32]byte

// HashInput returns the cache key for raw compiler JSON.
func HashInput(raw []byte) Hash {
	return Hash(crypto.Keccak256Hash(raw))
}

// Tree is a cached read result: the source units and the context that owns
// them, detached from whatever context the original caller built.
type Tree struct {
	Units []*node.SourceUnit
	Ctx   *node.Context
}

// cacheEntry pairs a live tree with an lz4-compressed copy of the raw input
// that produced it. The compressed copy counts toward the entry's size and
// is dropped together with the tree when the entry is evicted; the cache
// exposes no accessor for it.
type cacheEntry struct {
	hash           Hash
	tree           *Tree
	compressedRaw  []byte
	rawSize        int64
	treeSize       int64
	accessCount    int64
	prev           *cacheEntry
	next           *cacheEntry
}

func (e *cacheEntry) totalSize() int64 {
	return e.treeSize + int64(len(e.compressedRaw))
}

// evictionCost mirrors the teacher's size-aware eviction: large,
// infrequently accessed entries are evicted before small, hot ones.
func (e *cacheEntry) evictionCost() float64 {
	size := e.totalSize()
	if size == 0 {
		return float64(e.accessCount)
	}

	sizeKB := float64(size) / 1024.0
	if sizeKB < 1 {
		sizeKB = 1
	}

	return float64(e.accessCount) / sizeKB
}

// LRUTreeCache caches parsed Solidity trees across repeated reads of the
// same compiler output, evicting least-recently-used, lowest-value entries
// once maxSize is exceeded.
type LRUTreeCache struct {
	mu          sync.RWMutex
	entries     map[Hash]*cacheEntry
	head        *cacheEntry
	tail        *cacheEntry
	maxSize     int64
	currentSize int64

	hits   atomic.Int64
	misses atomic.Int64
}

// NewLRUTreeCache creates a tree cache with the given maximum size in bytes.
func NewLRUTreeCache(maxSize int64) *LRUTreeCache {
	if maxSize <= 0 {
		maxSize = DefaultLRUCacheSize
	}

	return &LRUTreeCache{
		entries: make(map[Hash]*cacheEntry),
		maxSize: maxSize,
	}
}

// Get retrieves a previously cached tree for the given raw input, or nil if
// absent.
func (c *LRUTreeCache) Get(hash Hash) *Tree {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[hash]
	if !ok {
		c.misses.Add(1)

		return nil
	}

	c.hits.Add(1)
	entry.accessCount++
	c.moveToFront(entry)

	return entry.tree
}

// Put stores tree under hash, keeping an lz4-compressed copy of raw
// alongside it. The tree's node count times approxNodeBytes is used as its
// approximate memory cost since node.Context does not expose a byte-accurate
// size.
func (c *LRUTreeCache) Put(hash Hash, raw []byte, tree *Tree) error {
	if tree == nil {
		return nil
	}

	compressed, err := compress(raw)
	if err != nil {
		return err
	}

	treeSize := int64(countNodes(tree) * approxNodeBytes)
	entrySize := treeSize + int64(len(compressed))

	// Don't cache entries larger than the entire cache; they would evict
	// everything else and still not fit.
	if entrySize > c.maxSize {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.entries[hash]; ok {
		existing.accessCount++
		c.moveToFront(existing)

		return nil
	}

	for c.currentSize+entrySize > c.maxSize && c.tail != nil {
		c.evictLowestCost()
	}

	entry := &cacheEntry{
		hash:          hash,
		tree:          tree,
		compressedRaw: compressed,
		rawSize:       int64(len(raw)),
		treeSize:      treeSize,
		accessCount:   1,
	}

	c.entries[hash] = entry
	c.currentSize += entrySize
	c.addToFront(entry)

	return nil
}

// approxNodeBytes estimates the resident cost of one cached node, used only
// to make size-aware eviction size-aware; it is not an exact accounting.
const approxNodeBytes = 256

func countNodes(t *Tree) int {
	count := 0
	for _, unit := range t.Units {
		count += len(node.Descendants(unit, true))
	}

	return count
}

func compress(raw []byte) ([]byte, error) {
	dst := make([]byte, lz4.CompressBlockBound(len(raw)))

	n, err := lz4.CompressBlock(raw, dst, nil)
	if err != nil {
		return nil, err
	}

	if n == 0 && len(raw) > 0 {
		// Incompressible input: lz4 signals this by returning 0; fall back
		// to storing it verbatim rather than failing the cache write.
		return append([]byte(nil), raw...), nil
	}

	return dst[:n], nil
}

// Stats returns cache performance metrics.
func (c *LRUTreeCache) Stats() LRUStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return LRUStats{
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
		Entries:     len(c.entries),
		CurrentSize: c.currentSize,
		MaxSize:     c.maxSize,
	}
}

// LRUStats holds cache performance metrics.
type LRUStats struct {
	Hits        int64
	Misses      int64
	Entries     int
	CurrentSize int64
	MaxSize     int64
}

// HitRate returns the cache hit rate (0.0 to 1.0).
func (s LRUStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0.0
	}

	return float64(s.Hits) / float64(total)
}

// String renders the stats with human-readable byte counts.
func (s LRUStats) String() string {
	return humanize.Bytes(uint64(s.CurrentSize)) + " / " + humanize.Bytes(uint64(s.MaxSize)) +
		" across " + humanize.Comma(int64(s.Entries)) + " entries"
}

// Clear removes all entries from the cache.
func (c *LRUTreeCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[Hash]*cacheEntry)
	c.head = nil
	c.tail = nil
	c.currentSize = 0
}

func (c *LRUTreeCache) moveToFront(entry *cacheEntry) {
	if entry == c.head {
		return
	}

	c.removeFromList(entry)
	c.addToFront(entry)
}

func (c *LRUTreeCache) addToFront(entry *cacheEntry) {
	entry.prev = nil
	entry.next = c.head

	if c.head != nil {
		c.head.prev = entry
	}

	c.head = entry

	if c.tail == nil {
		c.tail = entry
	}
}

func (c *LRUTreeCache) removeFromList(entry *cacheEntry) {
	if entry.prev != nil {
		entry.prev.next = entry.next
	} else {
		c.head = entry.next
	}

	if entry.next != nil {
		entry.next.prev = entry.prev
	} else {
		c.tail = entry.prev
	}
}

// evictionSampleSize is the number of LRU candidates to sample for size-aware eviction.
const evictionSampleSize = 5

func (c *LRUTreeCache) evictLowestCost() {
	if c.tail == nil {
		return
	}

	var candidates [evictionSampleSize]*cacheEntry

	count := 0
	entry := c.tail

	for entry != nil && count < evictionSampleSize {
		candidates[count] = entry
		count++
		entry = entry.prev
	}

	if count == 0 {
		return
	}

	victim := candidates[0]
	lowestCost := victim.evictionCost()

	for i := 1; i < count; i++ {
		cost := candidates[i].evictionCost()
		if cost < lowestCost {
			lowestCost = cost
			victim = candidates[i]
		}
	}

	c.removeFromList(victim)
	delete(c.entries, victim.hash)
	c.currentSize -= victim.totalSize()
}
