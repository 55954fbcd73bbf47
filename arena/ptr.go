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

import "unsafe"

// Ptr is a handle to bytes allocated by an Arena, or from the heap when the arena is nil.
//
// Ptr values are comparable: Realloc returning a Ptr equal to its input means the
// allocation was resized in place. The zero Ptr is the nil handle.
type Ptr struct {
	// heap fallback block and its capacity, nil for arena memory
	heap unsafe.Pointer
	size int

	arena  uint64
	gen    uint64
	region uint64 // never 0 for arena memory
	off    int
}

// IsNil reports whether p is the nil handle.
func (p Ptr) IsNil() bool {
	return p.heap == nil && p.region == 0
}

// IsHeap reports whether p was allocated without an arena.
func (p Ptr) IsHeap() bool {
	return p.heap != nil
}
