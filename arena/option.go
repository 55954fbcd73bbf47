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
	"log/slog"

	"github.com/cloudwego/arenax/internal/debug"
)

const (
	// DefaultRegionCapacity is the minimum capacity of every region (8KB).
	DefaultRegionCapacity = 8 << 10

	// DefaultAllocGrowthFactor over-allocates bump regions so later allocations fit.
	DefaultAllocGrowthFactor = 1.25

	// DefaultReallocGrowthFactor over-allocates reallocatable regions for in-place growth.
	DefaultReallocGrowthFactor = 2

	// DefaultAlignment packs bump allocations back to back.
	DefaultAlignment = 1
)

// Option configures an Arena.
type Option struct {
	// DefaultRegionCapacity is the minimum capacity in bytes of a new region.
	DefaultRegionCapacity int

	// AllocGrowthFactor scales the request when a bump region is created:
	// capacity = max(DefaultRegionCapacity, bytes * AllocGrowthFactor).
	AllocGrowthFactor float64

	// ReallocGrowthFactor scales the request when a reallocatable region is created.
	ReallocGrowthFactor float64

	// Alignment is the byte alignment of every bump allocation. It must be a power of two.
	// The default 1 packs allocations back to back; use AllocAligned to align a single allocation.
	Alignment int

	// Logger receives region lifecycle records at debug level.
	// Nil means the package default, which discards records unless built with the arenadebug tag.
	Logger *slog.Logger
}

// DefaultOption returns the default values of Option.
func DefaultOption() *Option {
	return &Option{
		DefaultRegionCapacity: DefaultRegionCapacity,
		AllocGrowthFactor:     DefaultAllocGrowthFactor,
		ReallocGrowthFactor:   DefaultReallocGrowthFactor,
		Alignment:             DefaultAlignment,
	}
}

// withDefaults returns a copy of o with unset or invalid fields replaced by defaults.
func (o *Option) withDefaults() Option {
	d := DefaultOption()
	if o == nil {
		o = d
	}
	opt := *o
	if opt.DefaultRegionCapacity <= 0 {
		opt.DefaultRegionCapacity = d.DefaultRegionCapacity
	}
	// factors below 1 would create regions smaller than the request
	if opt.AllocGrowthFactor < 1 {
		opt.AllocGrowthFactor = d.AllocGrowthFactor
	}
	if opt.ReallocGrowthFactor < 1 {
		opt.ReallocGrowthFactor = d.ReallocGrowthFactor
	}
	if opt.Alignment <= 0 || opt.Alignment&(opt.Alignment-1) != 0 {
		opt.Alignment = d.Alignment
	}
	if opt.Logger == nil {
		opt.Logger = debug.Logger()
	}
	return opt
}
