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

// Package blockpool hands out the large byte blocks arena regions are carved from.
//
// Its layout follows cloudwego/gopkg cache/mempool: power-of-two classes
// backed by a sync.Pool each, and an 8-byte trailer stored past len(b).
// Unlike mempool, blocks are never smaller than a region needs and the pool
// tracks the bytes handed out, so a leaked region shows up in InUse.
package blockpool

import (
	"math/bits"
	"sync"
	"sync/atomic"
	"unsafe"
)

const (
	minClassShift = 12 // 4KB
	maxClassShift = 37 // 128GB, Get panics above it

	minClassSize = 1 << minClassShift
	maxClassSize = 1 << maxClassShift

	// The trailer sits in the last 8 bytes of the block capacity.
	// High 58 bits are a fixed pattern, low 6 bits the class index.
	trailerLen       = 8
	trailerClassBits = 6
	trailerClassMask = uint64(1)<<trailerClassBits - 1
	trailerMagic     = uint64(0xA4E7A4E7A4E7A4E7) &^ trailerClassMask
)

// classes[i] pools blocks of 1<<(minClassShift+i) bytes.
var classes [maxClassShift - minClassShift + 1]struct {
	pool sync.Pool
	size int
}

// inUse counts bytes handed out by Get and not yet returned by Put.
var inUse int64

func init() {
	for i := range classes {
		size := minClassSize << i
		classes[i].size = size
		classes[i].pool.New = func() interface{} {
			return unsafe.SliceData(make([]byte, size))
		}
	}
}

// classOf rounds sz up to a power of two and returns its class index.
func classOf(sz int) int {
	if sz > maxClassSize {
		panic("blockpool: block too large")
	}
	if sz <= minClassSize {
		return 0
	}
	return bits.Len(uint(sz-1)) - minClassShift
}

// Get returns a block of exactly size bytes.
// The content is NOT zeroed. Do not append to the block, the tail holds the trailer.
func Get(size int) []byte {
	if size < 0 {
		panic("blockpool: negative size")
	}
	i := classOf(size + trailerLen)
	c := &classes[i]
	b := unsafe.Slice(c.pool.Get().(*byte), c.size)[:size]
	*tail(b) = trailerMagic | uint64(i)
	atomic.AddInt64(&inUse, int64(c.size))
	return b
}

// Put gives a block obtained from Get back to its class.
// Blocks not created by Get, and blocks already put back, are ignored.
func Put(b []byte) {
	n := cap(b)
	if n < minClassSize || n&(n-1) != 0 || n-len(b) < trailerLen {
		return
	}
	t := tail(b)
	if *t&^trailerClassMask != trailerMagic {
		return
	}
	i := int(*t & trailerClassMask)
	if i >= len(classes) || classes[i].size != n {
		return
	}
	*t = 0
	atomic.AddInt64(&inUse, -int64(n))
	classes[i].pool.Put(unsafe.SliceData(b[:1]))
}

// ClassSize returns the number of bytes a Get(size) really reserves.
func ClassSize(size int) int {
	return classes[classOf(size+trailerLen)].size
}

// InUse returns the bytes currently held by callers of Get.
func InUse() int64 {
	return atomic.LoadInt64(&inUse)
}

// tail points at the trailer word of b.
func tail(b []byte) *uint64 {
	b = b[:cap(b)]
	return (*uint64)(unsafe.Pointer(&b[len(b)-trailerLen]))
}
