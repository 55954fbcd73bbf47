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

package blockpool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPut(t *testing.T) {
	for i := 0; i < 1<<20; i += 1000 { // 0B - 1MB, step 1000
		b := Get(i)
		require.Equal(t, i, len(b))
		require.GreaterOrEqual(t, cap(b), i+trailerLen)
		Put(b)
	}
}

func TestClassOf(t *testing.T) {
	tests := []struct {
		size, class int
	}{
		{0, 0},
		{1, 0},
		{minClassSize, 0},
		{minClassSize + 1, 1},
		{8 << 10, 1},
		{8<<10 + 1, 2},
		{1 << 20, 20 - minClassShift},
		{maxClassSize, len(classes) - 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.class, classOf(tt.size), "size %d", tt.size)
		assert.GreaterOrEqual(t, classes[tt.class].size, tt.size)
	}
	assert.PanicsWithValue(t, "blockpool: block too large", func() { classOf(maxClassSize + 1) })
}

func TestClassSize(t *testing.T) {
	assert.Equal(t, minClassSize, ClassSize(0))
	assert.Equal(t, 8<<10, ClassSize(8<<10-trailerLen))
	assert.Equal(t, 16<<10, ClassSize(8<<10))
	assert.Equal(t, 16<<10, ClassSize(11250))
}

func TestInUse(t *testing.T) {
	before := InUse()
	b := Get(8192)
	assert.Equal(t, before+int64(ClassSize(8192)), InUse())
	Put(b)
	assert.Equal(t, before, InUse())

	Put(b) // double put is ignored
	assert.Equal(t, before, InUse())
}

func TestPutForeign(t *testing.T) {
	before := InUse()
	Put(nil)
	Put([]byte{})
	Put(make([]byte, 0, minClassSize+1)) // not power of two
	Put(make([]byte, minClassSize-1, minClassSize))
	Put(make([]byte, minClassSize-trailerLen, minClassSize)) // no magic
	assert.Equal(t, before, InUse())
}

func TestGetPanics(t *testing.T) {
	assert.PanicsWithValue(t, "blockpool: negative size", func() { Get(-1) })
}

func BenchmarkGetPut(b *testing.B) {
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			blk := Get(i & 0xffff)
			Put(blk)
			i++
		}
	})
}
