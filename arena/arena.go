/*
 * Copyright 2024 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package arena implements a region based allocator.
//
// An Arena owns two independent lists of regions. Bump regions pack many
// allocations that are never resized in place. Reallocatable regions hold a
// single allocation each and can grow or shrink it in place while it fits.
// Nothing is freed individually: Free releases every region at once.
//
// Allocations are addressed by Ptr handles rather than raw addresses.
// A nil *Arena is valid and falls back to plain heap allocations.
//
// An Arena is NOT goroutine-safe.
package arena

import (
	"log/slog"
	"math"
	"sync/atomic"

	"github.com/cloudwego/arenax/internal/blockpool"
	"github.com/cloudwego/arenax/internal/debug"
)

var arenaSeq uint64

// region is one block of memory owned by an Arena.
// It never moves or grows, a new region is created instead.
type region struct {
	id            uint64
	data          []byte // len(data) is the capacity
	used          int
	reallocatable bool
}

func (r *region) info() RegionInfo {
	return RegionInfo{Capacity: len(r.data), Used: r.used, Reallocatable: r.reallocatable}
}

// Arena is a region allocator. Create it with New.
type Arena struct {
	id     uint64
	gen    uint64 // incremented by Free, invalidates older handles
	nextID uint64 // reset by Free, ids are only compared within one generation

	// front of each list is the last element
	bump     []*region
	reallocs []*region

	opt Option
	log *slog.Logger
}

// New creates an Arena. opt can be nil for DefaultOption.
func New(opt *Option) *Arena {
	o := opt.withDefaults()
	return &Arena{
		id:  atomic.AddUint64(&arenaSeq, 1),
		opt: o,
		log: o.Logger,
	}
}

// Option returns the effective options of the arena.
func (a *Arena) Option() Option {
	return a.opt
}

// Alloc returns a handle to n bytes of writable memory.
// The memory is NOT zeroed.
//
// Only the most recent bump region is probed. If it cannot hold n more bytes,
// a new region of max(DefaultRegionCapacity, n*AllocGrowthFactor) bytes
// becomes the front of the bump list.
//
// If a is nil, the bytes come from the heap and may be given back with Release.
func (a *Arena) Alloc(n int) Ptr {
	debug.Assertf(n >= 0, "arena: invalid alloc size %d", n)
	if a == nil {
		return heapAlloc(n)
	}
	return a.bumpAlloc(n, a.opt.Alignment)
}

// AllocAligned is like Alloc but the returned offset is a multiple of align,
// which must be a power of two. Padding is skipped in the front bump region,
// and a new region is only created if n does not fit after the padding.
//
// Region bases and heap blocks are already aligned for any Go type.
func (a *Arena) AllocAligned(n, align int) Ptr {
	debug.Assertf(n >= 0, "arena: invalid alloc size %d", n)
	debug.Assertf(align > 0 && align&(align-1) == 0, "arena: alignment %d is not a power of two", align)
	if a == nil {
		return heapAlloc(n)
	}
	return a.bumpAlloc(n, max(align, a.opt.Alignment))
}

func (a *Arena) bumpAlloc(n, align int) Ptr {
	if r := front(a.bump); r != nil {
		off := alignUp(r.used, align)
		if off+n <= len(r.data) {
			r.used = off + n
			return a.ptrTo(r, off)
		}
	}
	r := a.newRegion(n, a.opt.AllocGrowthFactor, false)
	a.bump = append(a.bump, r)
	return a.ptrTo(r, 0)
}

// Realloc returns a handle to newSize bytes whose first min(oldSize, newSize)
// bytes equal those at p. The result may differ from p, so p must not be used afterwards.
//
// A nil or unknown p is the same as Alloc(newSize). An allocation owning a
// reallocatable region is resized in place while newSize fits its capacity.
// Anything else, including every bump allocation, is copied to a new
// reallocatable region. The old bytes stay allocated until Free.
func (a *Arena) Realloc(p Ptr, oldSize, newSize int) Ptr {
	debug.Assertf(oldSize >= 0 && newSize >= 0, "arena: invalid realloc size %d -> %d", oldSize, newSize)
	if a == nil {
		return heapRealloc(p, oldSize, newSize)
	}
	r := a.owner(p)
	if r == nil {
		return a.Alloc(newSize)
	}
	if r.reallocatable && newSize <= len(r.data) {
		a.log.Debug("arena: realloc in place", "old", oldSize, "new", newSize, "capacity", len(r.data))
		r.used = newSize
		return p
	}
	nr := a.newRegion(newSize, a.opt.ReallocGrowthFactor, true)
	n := min(oldSize, newSize, len(r.data)-p.off)
	copy(nr.data[:n], r.data[p.off:p.off+n])
	a.reallocs = append(a.reallocs, nr)
	a.log.Debug("arena: realloc migrated", "old", oldSize, "new", newSize, "from_reallocatable", r.reallocatable)
	return a.ptrTo(nr, 0)
}

// Free releases every region of the arena and invalidates all its handles.
// The arena stays usable, and calling Free again is a no-op.
func (a *Arena) Free() {
	if a == nil || len(a.bump)+len(a.reallocs) == 0 {
		return
	}
	for _, r := range a.bump {
		a.log.Debug("arena: freeing region", "reallocatable", false, "used", r.used, "capacity", len(r.data))
		blockpool.Put(r.data)
		r.data = nil
	}
	for _, r := range a.reallocs {
		a.log.Debug("arena: freeing region", "reallocatable", true, "used", r.used, "capacity", len(r.data))
		blockpool.Put(r.data)
		r.data = nil
	}
	a.bump = nil
	a.reallocs = nil
	a.nextID = 0
	a.gen++
}

// Bytes returns the n bytes addressed by p.
//
// It panics if p is nil, belongs to another arena, was issued before the last Free,
// or if n runs past the end of the owning region.
func (a *Arena) Bytes(p Ptr, n int) []byte {
	debug.Assertf(n >= 0, "arena: invalid view size %d", n)
	if p.heap != nil {
		debug.Assertf(n <= p.size, "arena: view of %d bytes exceeds heap block of %d", n, p.size)
		return heapBytes(p)[:n:n]
	}
	debug.Assert(!p.IsNil(), "arena: nil pointer")
	debug.Assert(a != nil && p.arena == a.id, "arena: pointer from another arena")
	debug.Assert(p.gen == a.gen, "arena: use of pointer after Free")
	r := a.find(p.region)
	debug.Assert(r != nil, "arena: unknown region")
	debug.Assertf(p.off+n <= len(r.data), "arena: view [%d, %d) exceeds region capacity %d", p.off, p.off+n, len(r.data))
	return r.data[p.off : p.off+n : p.off+n]
}

// Owner returns the region p resolves to.
// The reallocatable list is searched first for an exact base match,
// then the bump list for a region whose byte range contains p.
func (a *Arena) Owner(p Ptr) (RegionInfo, bool) {
	if r := a.owner(p); r != nil {
		return r.info(), true
	}
	return RegionInfo{}, false
}

func (a *Arena) owner(p Ptr) *region {
	if a == nil || p.IsNil() || p.heap != nil || p.arena != a.id || p.gen != a.gen {
		return nil
	}
	for i := len(a.reallocs) - 1; i >= 0; i-- {
		if r := a.reallocs[i]; r.id == p.region && p.off == 0 {
			return r
		}
	}
	for i := len(a.bump) - 1; i >= 0; i-- {
		if r := a.bump[i]; r.id == p.region && p.off >= 0 && p.off < len(r.data) {
			return r
		}
	}
	return nil
}

// find returns the region with the given id in either list.
func (a *Arena) find(id uint64) *region {
	for i := len(a.reallocs) - 1; i >= 0; i-- {
		if a.reallocs[i].id == id {
			return a.reallocs[i]
		}
	}
	for i := len(a.bump) - 1; i >= 0; i-- {
		if a.bump[i].id == id {
			return a.bump[i]
		}
	}
	return nil
}

func (a *Arena) newRegion(n int, factor float64, reallocatable bool) *region {
	c := int(math.Ceil(float64(n) * factor))
	if c < a.opt.DefaultRegionCapacity {
		c = a.opt.DefaultRegionCapacity
	}
	a.nextID++
	r := &region{
		id:            a.nextID,
		data:          blockpool.Get(c),
		used:          n,
		reallocatable: reallocatable,
	}
	a.log.Debug("arena: region created", "reallocatable", reallocatable, "used", n, "capacity", c)
	return r
}

func (a *Arena) ptrTo(r *region, off int) Ptr {
	return Ptr{arena: a.id, gen: a.gen, region: r.id, off: off}
}

func front(rs []*region) *region {
	if len(rs) == 0 {
		return nil
	}
	return rs[len(rs)-1]
}

// alignUp rounds off up to a multiple of align, which is a power of two.
func alignUp(off, align int) int {
	return (off + align - 1) &^ (align - 1)
}
