// Package cache memoizes expensive tessellations.
//
// Rounded rectangle meshes are kept in an LRU cache with an explicit
// byte budget, keyed by a structural Description of the geometry and
// paint. Shadow meshes are handled differently: they are per-frame
// tasks, deduplicated by node identity and transform so concurrent
// requests share one computation, populated ahead of time by a small
// worker pool, and trimmed at the end of every frame regardless of
// budget.
package cache

import (
	"container/list"
	"sync"
	"sync/atomic"

	"github.com/gogpu/tess"
	"github.com/gogpu/tess/geom"
	"github.com/gogpu/tess/mesh"
	"github.com/gogpu/tess/shadow"
)

// DefaultMaxSize is the default byte budget for cached round rect
// meshes.
const DefaultMaxSize = 1024 * 1024

// defaultWorkers is the size of the precache worker pool.
const defaultWorkers = 2

// ShadowBuffers is one node's tessellated shadow pair. Either buffer may
// be empty when the corresponding shadow was rejected or degenerate.
type ShadowBuffers struct {
	Ambient *mesh.VertexBuffer
	Spot    *mesh.VertexBuffer
}

// ShadowCaster bundles the inputs of one node's shadow tessellation.
// The outline is the node's flat 2D silhouette in local space; the draw
// transform maps it into receiver space, where it is raised to the
// node's elevation.
type ShadowCaster struct {
	Opaque        bool
	Outline       []geom.Vector2
	DrawTransform geom.Matrix
	Elevation     float32
	Light         shadow.Light
	LocalClip     geom.Rect
}

// Stats is a point-in-time snapshot of cache behavior.
type Stats struct {
	Size    int64
	MaxSize int64
	Entries int
	Hits    uint64
	Misses  uint64
	// Evictions counts entries removed to satisfy the byte budget.
	Evictions uint64
	// Computations counts actual tessellation runs; the gap between
	// Misses and Computations is work saved by task deduplication.
	Computations uint64
}

// entry is one cached round rect mesh plus its LRU bookkeeping.
type entry struct {
	desc    Description
	buffer  *mesh.VertexBuffer
	size    int64
	element *list.Element
}

// shadowTask tracks one in-flight or completed shadow tessellation.
// done is closed once buffers is safe to read.
type shadowTask struct {
	done    chan struct{}
	buffers *ShadowBuffers
}

// Cache memoizes tessellated meshes. It is safe for concurrent use: the
// single mutex guards map and LRU state only, never a tessellation
// computation, so the render thread is not blocked behind workers.
type Cache struct {
	mu      sync.Mutex
	entries map[Description]*entry
	lru     *list.List // front = most recently used
	size    int64
	maxSize int64

	shadows map[ShadowDescription]*shadowTask

	processor *taskProcessor

	hits         atomic.Uint64
	misses       atomic.Uint64
	evictions    atomic.Uint64
	computations atomic.Uint64
}

// New creates a cache with the given byte budget for round rect meshes.
// A non-positive budget selects DefaultMaxSize. Close must be called to
// stop the precache workers.
func New(maxSize int64) *Cache {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Cache{
		entries:   make(map[Description]*entry),
		lru:       list.New(),
		maxSize:   maxSize,
		shadows:   make(map[ShadowDescription]*shadowTask),
		processor: newTaskProcessor(defaultWorkers),
	}
}

// Close stops the worker pool and drops all cached data.
func (c *Cache) Close() {
	c.processor.close()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Description]*entry)
	c.lru.Init()
	c.size = 0
	c.shadows = make(map[ShadowDescription]*shadowTask)
}

// GetRoundRect returns the tessellated mesh for a rounded rectangle,
// computing and inserting it on a miss. The returned buffer is owned by
// the cache and must be treated as read-only.
func (c *Cache) GetRoundRect(width, height, radius float32, paint *tess.Paint, transform geom.Matrix) *mesh.VertexBuffer {
	desc := RoundRectDescription(width, height, radius, paint, transform)

	c.mu.Lock()
	if e, ok := c.entries[desc]; ok {
		c.lru.MoveToFront(e.element)
		c.mu.Unlock()
		c.hits.Add(1)
		return e.buffer
	}
	c.mu.Unlock()
	c.misses.Add(1)

	buffer := c.tessellateRoundRect(desc, paint)
	c.insert(desc, buffer)
	return buffer
}

// PrecacheRoundRect asks the worker pool to populate the cache entry for
// a rounded rectangle ahead of the render thread's need. The insert may
// transiently push the cache over budget; Trim restores it.
func (c *Cache) PrecacheRoundRect(width, height, radius float32, paint *tess.Paint, transform geom.Matrix) {
	desc := RoundRectDescription(width, height, radius, paint, transform)

	c.mu.Lock()
	_, ok := c.entries[desc]
	c.mu.Unlock()
	if ok {
		return
	}

	p := *paint
	c.processor.submit(func() {
		c.mu.Lock()
		_, ok := c.entries[desc]
		c.mu.Unlock()
		if ok {
			return
		}
		c.insert(desc, c.tessellateRoundRect(desc, &p))
	})
}

// tessellateRoundRect runs the actual tessellation for a description.
func (c *Cache) tessellateRoundRect(desc Description, paint *tess.Paint) *mesh.VertexBuffer {
	c.computations.Add(1)
	path := tess.NewPath().RoundedRectangle(0, 0, desc.Width, desc.Height, desc.Radius)
	out := mesh.NewVertexBuffer()
	tess.TessellatePath(path, paint, desc.scaleTransform(), out)
	return out
}

// insert stores a computed mesh under the byte budget, evicting least
// recently used entries first. An entry larger than the whole budget is
// returned to the caller uncached.
func (c *Cache) insert(desc Description, buffer *mesh.VertexBuffer) {
	size := int64(buffer.ByteSize())
	if size > c.maxSize {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.entries[desc]; ok {
		// Raced with another populator; keep the incumbent.
		c.lru.MoveToFront(existing.element)
		return
	}
	c.evictUntilSize(c.maxSize - size)

	e := &entry{desc: desc, buffer: buffer, size: size}
	e.element = c.lru.PushFront(e)
	c.entries[desc] = e
	c.size += size
}

// evictUntilSize evicts LRU entries until size is at or below target.
// Caller must hold c.mu.
func (c *Cache) evictUntilSize(target int64) {
	for c.size > target && c.lru.Len() > 0 {
		elem := c.lru.Back()
		e := elem.Value.(*entry)
		c.lru.Remove(elem)
		delete(c.entries, e.desc)
		c.size -= e.size
		c.evictions.Add(1)
	}
}

// GetShadowBuffers returns the shadow pair for a node, waiting for an
// in-flight precache task if one exists, or computing synchronously
// otherwise. Concurrent calls for the same description share a single
// computation.
func (c *Cache) GetShadowBuffers(nodeKey uint64, caster *ShadowCaster) *ShadowBuffers {
	desc := NewShadowDescription(nodeKey, caster.DrawTransform)

	c.mu.Lock()
	task, ok := c.shadows[desc]
	if ok {
		c.mu.Unlock()
		c.hits.Add(1)
		<-task.done
		return task.buffers
	}

	task = &shadowTask{done: make(chan struct{})}
	c.shadows[desc] = task
	c.mu.Unlock()
	c.misses.Add(1)

	task.buffers = c.tessellateShadows(caster)
	close(task.done)
	return task.buffers
}

// PrecacheShadows queues a node's shadow tessellation on the worker
// pool. A task already registered for the same description is left
// alone.
func (c *Cache) PrecacheShadows(nodeKey uint64, caster *ShadowCaster) {
	desc := NewShadowDescription(nodeKey, caster.DrawTransform)

	c.mu.Lock()
	if _, ok := c.shadows[desc]; ok {
		c.mu.Unlock()
		return
	}
	task := &shadowTask{done: make(chan struct{})}
	c.shadows[desc] = task
	c.mu.Unlock()

	run := func() {
		task.buffers = c.tessellateShadows(caster)
		close(task.done)
	}
	if !c.processor.submit(run) {
		run()
	}
}

// tessellateShadows computes the ambient and spot meshes for a caster.
func (c *Cache) tessellateShadows(caster *ShadowCaster) *ShadowBuffers {
	c.computations.Add(1)

	poly := shadow.ProjectCasterPolygon(caster.Outline, caster.DrawTransform, caster.Elevation)
	bounds := geom.EmptyRect()
	for _, v := range poly {
		bounds = bounds.UnionPoint(v.XY())
	}

	ambient := mesh.NewVertexBuffer()
	shadow.TessellateAmbientShadow(caster.Opaque, poly, bounds, caster.LocalClip,
		caster.Elevation, ambient)

	spot := mesh.NewVertexBuffer()
	shadow.TessellateSpotShadow(caster.Opaque, poly, caster.Light, bounds,
		caster.LocalClip, spot)

	return &ShadowBuffers{Ambient: ambient, Spot: spot}
}

// Trim evicts round rect entries down to the byte budget and drops all
// shadow tasks. Called once per frame, after drawing: shadow results are
// only meaningful within the frame that requested them.
func (c *Cache) Trim() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evictUntilSize(c.maxSize)
	c.shadows = make(map[ShadowDescription]*shadowTask)
}

// SetMaxSize updates the byte budget, evicting immediately if the new
// budget is smaller than current usage.
func (c *Cache) SetMaxSize(maxSize int64) {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.maxSize = maxSize
	c.evictUntilSize(maxSize)
}

// Size returns the current round rect cache usage in bytes.
func (c *Cache) Size() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// Stats returns a snapshot of cache counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	size := c.size
	maxSize := c.maxSize
	entries := len(c.entries)
	c.mu.Unlock()

	return Stats{
		Size:         size,
		MaxSize:      maxSize,
		Entries:      entries,
		Hits:         c.hits.Load(),
		Misses:       c.misses.Load(),
		Evictions:    c.evictions.Load(),
		Computations: c.computations.Load(),
	}
}
