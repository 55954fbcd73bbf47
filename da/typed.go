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

package da

import (
	"unsafe"

	"github.com/cloudwego/arenax/arena"
	"github.com/cloudwego/arenax/internal/debug"
)

// Make creates an array of n zero values of T, aligned for T.
//
// T must NOT contain pointers: arena memory is invisible to the garbage collector.
func Make[T any](a *arena.Arena, n int) Array {
	var zero T
	return newArray(a, n, int(unsafe.Sizeof(zero)), int(unsafe.Alignof(zero)))
}

// Slice returns the elements of arr as a []T sharing its memory.
// The stride of arr must be the size of T, and T must NOT contain pointers.
func Slice[T any](arr Array) []T {
	var zero T
	debug.Assertf(int(unsafe.Sizeof(zero)) == arr.stride, "da: element size %d, stride is %d", unsafe.Sizeof(zero), arr.stride)
	if arr.size == 0 {
		return nil
	}
	b := arr.Bytes()
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), arr.size)
}

// AppendValue appends v to arr.
func AppendValue[T any](arr Array, v T) Array {
	n := arr.size
	arr = arr.Resize(n + 1)
	Slice[T](arr)[n] = v
	return arr
}
