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

package str

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/cloudwego/arenax/arena"
	"github.com/cloudwego/arenax/da"
)

// ReadFile reads the whole file at path into a single allocation of a.
func ReadFile(a *arena.Arena, path string) (String, error) {
	f, err := os.Open(path)
	if err != nil {
		return String{}, fmt.Errorf("str: open %s: %w", path, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return String{}, fmt.Errorf("str: stat %s: %w", path, err)
	}
	size := fi.Size()
	if size > math.MaxInt {
		return String{}, fmt.Errorf("str: %s too large (%d bytes)", path, size)
	}

	arr := da.New(a, int(size), 1)
	if _, err := io.ReadFull(f, arr.Bytes()); err != nil {
		da.Release(arr)
		return String{}, fmt.Errorf("str: read %s: %w", path, err)
	}
	return String{arr: arr}, nil
}
