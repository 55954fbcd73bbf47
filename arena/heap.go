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

package arena

import (
	"unsafe"

	"github.com/bytedance/gopkg/lang/mcache"
)

// heap fallback used by a nil *Arena

func heapAlloc(n int) Ptr {
	b := mcache.Malloc(n)
	return Ptr{heap: unsafe.Pointer(unsafe.SliceData(b)), size: cap(b)}
}

func heapRealloc(p Ptr, oldSize, newSize int) Ptr {
	if p.heap == nil {
		return heapAlloc(newSize)
	}
	if newSize <= p.size {
		return p
	}
	b := mcache.Malloc(newSize)
	old := heapBytes(p)
	n := min(oldSize, newSize, len(old))
	copy(b[:n], old[:n])
	mcache.Free(old)
	return Ptr{heap: unsafe.Pointer(unsafe.SliceData(b)), size: cap(b)}
}

func heapBytes(p Ptr) []byte {
	return unsafe.Slice((*byte)(p.heap), p.size)
}

// Release gives a heap allocation back, see Alloc on a nil *Arena.
// Memory owned by an arena is only released by (*Arena).Free, so Release ignores it.
// A heap Ptr must be released at most once and not used afterwards.
func Release(p Ptr) {
	if p.heap == nil {
		return
	}
	mcache.Free(heapBytes(p))
}
