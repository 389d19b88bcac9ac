package cellrender

import (
	"container/list"

	"github.com/vibetunnel/termcore/internal/rowid"
	"github.com/vibetunnel/termcore/internal/screen"
)

// rowCacheKey includes the selection so toggling selection on/off does not
// poison the cache for the unselected rendering — both coexist as distinct
// entries.
type rowCacheKey struct {
	hasSelection bool
	selStartX    int
	selStartY    int
	selEndX      int
	selEndY      int
	screenType   screen.Type
	row          rowid.RowID
}

func makeRowCacheKey(sel *screen.Selection, st screen.Type, row rowid.RowID) rowCacheKey {
	k := rowCacheKey{screenType: st, row: row}
	if sel != nil {
		k.hasSelection = true
		k.selStartX, k.selStartY = sel.Start.X, sel.Start.Y
		k.selEndX, k.selEndY = sel.End.X, sel.End.Y
	}
	return k
}

type rowCacheEntry struct {
	key   rowCacheKey
	cells []GPUCell
}

// rowCache is a row-granularity LRU: no pack repo imports a third-party
// cache library (the teacher's own caches, e.g. termsocket.Manager's
// subscriber map, are hand-rolled maps), so this follows suit with
// container/list for recency ordering plus a map for lookup rather than
// reaching for an external cache package.
type rowCache struct {
	capacity int
	ll       *list.List
	index    map[rowCacheKey]*list.Element
}

func newRowCache(capacity int) *rowCache {
	return &rowCache{
		capacity: capacity,
		ll:       list.New(),
		index:    make(map[rowCacheKey]*list.Element),
	}
}

// get returns a copy of the cached cell list for key, if present, and
// marks it most-recently-used.
func (c *rowCache) get(key rowCacheKey) ([]GPUCell, bool) {
	el, ok := c.index[key]
	if !ok {
		return nil, false
	}
	c.ll.MoveToFront(el)
	entry := el.Value.(*rowCacheEntry)
	out := make([]GPUCell, len(entry.cells))
	copy(out, entry.cells)
	return out, true
}

// put stores cells for key, evicting the least-recently-used entry if the
// cache is at capacity. Returns true if an eviction occurred.
func (c *rowCache) put(key rowCacheKey, cells []GPUCell) bool {
	if el, ok := c.index[key]; ok {
		c.ll.MoveToFront(el)
		entry := el.Value.(*rowCacheEntry)
		entry.cells = append(entry.cells[:0], cells...)
		return false
	}

	stored := make([]GPUCell, len(cells))
	copy(stored, cells)
	el := c.ll.PushFront(&rowCacheEntry{key: key, cells: stored})
	c.index[key] = el

	evicted := false
	for c.ll.Len() > c.capacity {
		back := c.ll.Back()
		if back == nil {
			break
		}
		c.ll.Remove(back)
		delete(c.index, back.Value.(*rowCacheEntry).key)
		evicted = true
	}
	return evicted
}

func (c *rowCache) len() int {
	return c.ll.Len()
}

func (c *rowCache) cap() int {
	return c.capacity
}
