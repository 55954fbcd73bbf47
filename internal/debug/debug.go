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

// Package debug provides the assertions and the debug logger shared by arenax packages.
//
// Assertions are always compiled in: a failed one is a programmer error and panics.
// Debug records are discarded unless the module is built with the arenadebug tag.
package debug

import (
	"fmt"
	"log/slog"
)

// Assert panics with msg if cond is false.
func Assert(cond bool, msg string) {
	if !cond {
		panic(msg)
	}
}

// Assertf is like Assert but formats the message lazily.
func Assertf(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}

// Logger returns the logger used when a caller doesn't provide one.
func Logger() *slog.Logger {
	return defaultLogger
}
