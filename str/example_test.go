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

package str_test

import (
	"fmt"

	"github.com/cloudwego/arenax/arena"
	"github.com/cloudwego/arenax/str"
)

func Example() {
	a := arena.New(nil)
	defer a.Free()

	s1 := str.From(a, "Hello, ")
	s2 := str.From(a, "Utility Library!")
	s3 := str.Concat(a, s1, s2)
	fmt.Println(s3)

	s3 = str.Append(s3, str.From(a, " And World too!"))
	fmt.Println(s3)

	s := str.New(a, 128)
	s = str.Cat(s, str.From(a, "1, "))
	s = str.Cat(s, str.From(a, "2, 3"))
	fmt.Println(s)

	onHeap := str.From(nil, "no arena, release with Free")
	fmt.Println(onHeap)
	onHeap.Free()
	onHeap.Free() // does nothing

	// Output:
	// Hello, Utility Library!
	// Hello, Utility Library! And World too!
	// 1, 2, 3
	// no arena, release with Free
}
