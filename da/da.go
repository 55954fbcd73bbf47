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

// Package da implements growable arrays whose memory lives in an arena.
//
// An Array is a small value, like a slice header: every operation that may
// reallocate returns a new Array, and the caller must keep using the returned value.
//
//	arr := da.New(a, 4, 8)
//	arr = arr.Resize(16)
//	arr = da.Append(arr, other)
//
// Arrays are never freed individually. Their memory is released with the arena.
// Logical shrinking keeps the allocation, so growing again up to Cap does not reallocate.
package da

import (
	"github.com/bytedance/gopkg/lang/dirtmake"

	"github.com/cloudwego/arenax/arena"
	"github.com/cloudwego/arenax/internal/debug"
)

// Array is a growable sequence of fixed size elements backed by an arena.
type Array struct {
	a        *arena.Arena
	p        arena.Ptr
	size     int // elements in use
	stride   int // bytes per element, fixed
	capacity int // elements the allocation holds
	align    int // alignment of the allocation, 1 for byte arrays
}

// New creates an array of n zeroed elements of stride bytes each.
// a can be nil, the array is then allocated from the heap, see Release.
func New(a *arena.Arena, n, stride int) Array {
	return newArray(a, n, stride, 1)
}

func newArray(a *arena.Arena, n, stride, align int) Array {
	debug.Assertf(stride > 0, "da: invalid stride %d", stride)
	debug.Assertf(n >= 0, "da: invalid size %d", n)
	arr := Array{
		a:        a,
		p:        alloc(a, n*stride, align),
		size:     n,
		stride:   stride,
		capacity: n,
		align:    align,
	}
	clear(arr.Bytes())
	return arr
}

func alloc(a *arena.Arena, n, align int) arena.Ptr {
	if align > 1 {
		return a.AllocAligned(n, align)
	}
	return a.Alloc(n)
}

// Arena returns the arena backing the array.
func (arr Array) Arena() *arena.Arena { return arr.a }

// Size returns the number of elements.
func (arr Array) Size() int { return arr.size }

// Stride returns the size in bytes of one element.
func (arr Array) Stride() int { return arr.stride }

// Cap returns the number of elements the array can hold without reallocating.
func (arr Array) Cap() int { return arr.capacity }

// Bytes returns the size*stride bytes of the array.
// The slice is only valid until the next operation that returns a new Array.
func (arr Array) Bytes() []byte {
	if arr.p.IsNil() {
		return nil
	}
	return arr.a.Bytes(arr.p, arr.size*arr.stride)
}

// At returns the bytes of the ith element.
func (arr Array) At(i int) []byte {
	debug.Assertf(i >= 0 && i < arr.size, "da: index %d out of range [0, %d)", i, arr.size)
	s := arr.stride
	return arr.Bytes()[i*s : (i+1)*s : (i+1)*s]
}

// Set copies v into the ith element. len(v) must equal Stride.
func (arr Array) Set(i int, v []byte) {
	debug.Assertf(len(v) == arr.stride, "da: value of %d bytes, stride is %d", len(v), arr.stride)
	copy(arr.At(i), v)
}

// Copy returns the content of the array in a new heap slice.
func (arr Array) Copy() []byte {
	b := arr.Bytes()
	ret := dirtmake.Bytes(len(b), len(b))
	copy(ret, b)
	return ret
}

// Resize sets the number of elements to n.
//
// The arena is only asked to reallocate when n exceeds Cap, otherwise the size
// changes in place. Elements exposed by growing are zeroed.
func (arr Array) Resize(n int) Array {
	debug.Assertf(arr.stride > 0, "da: resize of an uninitialized array")
	debug.Assertf(n >= 0, "da: invalid size %d", n)
	s := arr.stride
	if n > arr.capacity {
		if arr.capacity == 0 && arr.align > 1 {
			// nothing to keep, and Realloc may place an unresolved handle at any offset
			arr.p = alloc(arr.a, n*s, arr.align)
		} else {
			arr.p = arr.a.Realloc(arr.p, arr.size*s, n*s)
		}
		arr.capacity = n
	}
	if n > arr.size {
		clear(arr.a.Bytes(arr.p, n*s)[arr.size*s:])
	}
	arr.size = n
	return arr
}

// PushBack appends one element. v must not point into arr.
func (arr Array) PushBack(v []byte) Array {
	debug.Assertf(len(v) == arr.stride, "da: value of %d bytes, stride is %d", len(v), arr.stride)
	n := arr.size
	arr = arr.Resize(n + 1)
	copy(arr.At(n), v)
	return arr
}

// Push inserts one element at pos, shifting the following elements right.
// v must not point into arr.
func (arr Array) Push(pos int, v []byte) Array {
	debug.Assertf(len(v) == arr.stride, "da: value of %d bytes, stride is %d", len(v), arr.stride)
	debug.Assertf(pos >= 0 && pos <= arr.size, "da: invalid pos %d, size %d", pos, arr.size)
	n := arr.size
	arr = arr.Resize(n + 1)
	b := arr.Bytes()
	s := arr.stride
	copy(b[(pos+1)*s:], b[pos*s:n*s])
	copy(b[pos*s:(pos+1)*s], v)
	return arr
}

// Pop removes the element at pos, shifting the following elements left.
func (arr Array) Pop(pos int) Array {
	debug.Assertf(pos >= 0 && pos < arr.size, "da: invalid pos %d, size %d", pos, arr.size)
	b := arr.Bytes()
	s := arr.stride
	copy(b[pos*s:], b[(pos+1)*s:])
	arr.size--
	return arr
}

// PopBack removes the last element. The allocation is kept.
func (arr Array) PopBack() Array {
	debug.Assert(arr.size > 0, "da: pop back of an empty array")
	arr.size--
	return arr
}

// Append appends the elements of src to dst. Both must have the same stride.
func Append(dst, src Array) Array {
	debug.Assertf(dst.stride == src.stride, "da: stride mismatch %d != %d", dst.stride, src.stride)
	sb := sourceBytes(dst, src)
	n := dst.size
	dst = dst.Resize(n + src.size)
	copy(dst.Bytes()[n*dst.stride:], sb)
	return dst
}

// Insert inserts the elements of src into dst at pos, shifting the following
// elements right. Both must have the same stride and pos must be in [0, dst.Size()].
func Insert(dst, src Array, pos int) Array {
	debug.Assertf(dst.stride == src.stride, "da: stride mismatch %d != %d", dst.stride, src.stride)
	debug.Assertf(pos >= 0 && pos <= dst.size, "da: invalid pos %d, size %d", pos, dst.size)
	sb := sourceBytes(dst, src)
	n, m, s := dst.size, src.size, dst.stride
	dst = dst.Resize(n + m)
	b := dst.Bytes()
	copy(b[(pos+m)*s:], b[pos*s:n*s])
	copy(b[pos*s:(pos+m)*s], sb)
	return dst
}

// Clone copies arr into a new array allocated from a.
// It's the way to keep an array alive when its own arena is about to be freed.
func Clone(a *arena.Arena, arr Array) Array {
	ret := Array{
		a:        a,
		p:        alloc(a, arr.size*arr.stride, arr.align),
		size:     arr.size,
		stride:   arr.stride,
		capacity: arr.size,
		align:    arr.align,
	}
	copy(ret.Bytes(), arr.Bytes())
	return ret
}

// Release gives the memory of a heap backed array back, see New with a nil arena.
// It does nothing for arrays owned by an arena.
func Release(arr Array) {
	if arr.a == nil {
		arena.Release(arr.p)
	}
}

// sourceBytes returns the bytes of src, copied out when src shares dst's
// allocation since resizing dst may move or overwrite them.
func sourceBytes(dst, src Array) []byte {
	b := src.Bytes()
	if !src.p.IsNil() && src.p == dst.p {
		c := dirtmake.Bytes(len(b), len(b))
		copy(c, b)
		return c
	}
	return b
}
