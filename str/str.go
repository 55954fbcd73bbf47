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

// Package str provides byte strings stored in an arena.
//
// A String is a da.Array of bytes, so it follows the same rules: operations
// that may reallocate return a new String, and memory is released with the arena.
// Strings created with a nil arena live on the heap and can be released with Free.
package str

import (
	"bytes"
	"unsafe"

	"github.com/bytedance/gopkg/util/xxhash3"

	"github.com/cloudwego/arenax/arena"
	"github.com/cloudwego/arenax/da"
	"github.com/cloudwego/arenax/internal/debug"
)

// String is a byte string backed by an arena.
type String struct {
	arr da.Array
}

// New returns an empty String able to hold capacity bytes without reallocating.
func New(a *arena.Arena, capacity int) String {
	return String{arr: da.New(a, capacity, 1).Resize(0)}
}

// From copies s into a.
func From(a *arena.Arena, s string) String {
	arr := da.New(a, len(s), 1)
	copy(arr.Bytes(), s)
	return String{arr: arr}
}

// Concat returns a new String holding s1 followed by s2.
func Concat(a *arena.Arena, s1, s2 String) String {
	arr := da.New(a, s1.Len()+s2.Len(), 1)
	b := arr.Bytes()
	copy(b, s1.Bytes())
	copy(b[s1.Len():], s2.Bytes())
	return String{arr: arr}
}

// Cat appends src to dst in place. dst must have at least src.Len() spare bytes.
func Cat(dst, src String) String {
	debug.Assertf(dst.Cap()-dst.Len() >= src.Len(),
		"str: cat needs %d spare bytes, have %d", src.Len(), dst.Cap()-dst.Len())
	return Append(dst, src)
}

// Append appends src to dst, growing dst if needed.
func Append(dst, src String) String {
	if dst.arr.Stride() == 0 {
		return src.Clone(src.Arena())
	}
	if src.arr.Stride() == 0 {
		return dst
	}
	return String{arr: da.Append(dst.arr, src.arr)}
}

// Len returns the length in bytes.
func (s String) Len() int { return s.arr.Size() }

// Cap returns the number of bytes s can hold without reallocating.
func (s String) Cap() int { return s.arr.Cap() }

// Arena returns the arena backing s.
func (s String) Arena() *arena.Arena { return s.arr.Arena() }

// Bytes returns the content of s, sharing its memory.
func (s String) Bytes() []byte { return s.arr.Bytes() }

// String returns the content of s without copying.
// The result must not be used after the arena is freed, see Copy.
func (s String) String() string {
	b := s.Bytes()
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// Copy returns the content of s in a new heap slice.
func (s String) Copy() []byte { return s.arr.Copy() }

// Clone copies s into a.
func (s String) Clone(a *arena.Arena) String {
	if s.arr.Stride() == 0 {
		return New(a, 0)
	}
	return String{arr: da.Clone(a, s.arr)}
}

// Equal reports whether s and o hold the same bytes.
func (s String) Equal(o String) bool {
	return bytes.Equal(s.Bytes(), o.Bytes())
}

// Hash returns the xxhash3 of the content.
func (s String) Hash() uint64 {
	return xxhash3.Hash(s.Bytes())
}

// Free releases a heap String, one created with a nil arena, and resets it.
// It does nothing for Strings owned by an arena, and calling it again is a no-op.
func (s *String) Free() {
	if s.arr.Arena() != nil {
		return
	}
	da.Release(s.arr)
	s.arr = da.Array{}
}
