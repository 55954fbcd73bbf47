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
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudwego/arenax/arena"
)

type point struct {
	X, Y int32
}

func TestMakeSlice(t *testing.T) {
	a := arena.New(nil)
	defer a.Free()

	arr := Make[int64](a, 4)
	assert.Equal(t, 8, arr.Stride())
	vv := Slice[int64](arr)
	require.Len(t, vv, 4)
	assert.Equal(t, []int64{0, 0, 0, 0}, vv)

	vv[1] = -7
	assert.Equal(t, int64(-7), Slice[int64](arr)[1])
	assert.Nil(t, Slice[int64](Make[int64](a, 0)))
	assert.Panics(t, func() { Slice[int32](arr) })
}

func TestMakeAligned(t *testing.T) {
	a := arena.New(nil)
	defer a.Free()

	odd := New(a, 3, 1) // byte arrays pack, leaving the region at an odd offset
	arr := Make[int64](a, 4)
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(arr.Bytes())))
	assert.Zero(t, addr%unsafe.Alignof(int64(0)))
	assert.Equal(t, 3, len(odd.Bytes()))

	// clones keep the alignment too
	New(a, 1, 1)
	c := Clone(a, arr)
	addr = uintptr(unsafe.Pointer(unsafe.SliceData(c.Bytes())))
	assert.Zero(t, addr%unsafe.Alignof(int64(0)))

	// growing from empty after more odd allocations
	e := Make[int64](a, 0)
	New(a, 5, 1)
	e = AppendValue(e, int64(42))
	addr = uintptr(unsafe.Pointer(unsafe.SliceData(e.Bytes())))
	assert.Zero(t, addr%unsafe.Alignof(int64(0)))
	assert.Equal(t, []int64{42}, Slice[int64](e))
}

func TestAppendValue(t *testing.T) {
	for _, a := range []*arena.Arena{arena.New(nil), nil} {
		arr := Make[point](a, 0)
		for i := int32(0); i < 1000; i++ {
			arr = AppendValue(arr, point{X: i, Y: -i})
		}
		pp := Slice[point](arr)
		require.Len(t, pp, 1000)
		for i, p := range pp {
			require.Equal(t, point{X: int32(i), Y: -int32(i)}, p)
		}
		Release(arr)
		a.Free()
	}
}
