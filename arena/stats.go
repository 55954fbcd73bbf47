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

// RegionInfo is a snapshot of one region.
type RegionInfo struct {
	Capacity      int
	Used          int
	Reallocatable bool
}

// Stats is a snapshot of the memory held by an Arena.
type Stats struct {
	Regions        int // bump regions
	ReallocRegions int // reallocatable regions
	Capacity       int // bytes held by all regions
	Used           int // bytes in use across all regions
	Utilization    float64
}

// BumpRegions returns the bump regions, most recent first.
func (a *Arena) BumpRegions() []RegionInfo {
	if a == nil {
		return nil
	}
	return infos(a.bump)
}

// ReallocRegions returns the reallocatable regions, most recent first.
func (a *Arena) ReallocRegions() []RegionInfo {
	if a == nil {
		return nil
	}
	return infos(a.reallocs)
}

// Stats returns usage statistics of the arena.
// A nil arena has no regions.
func (a *Arena) Stats() Stats {
	if a == nil {
		return Stats{}
	}
	s := Stats{Regions: len(a.bump), ReallocRegions: len(a.reallocs)}
	for _, rs := range [2][]*region{a.bump, a.reallocs} {
		for _, r := range rs {
			s.Capacity += len(r.data)
			s.Used += r.used
		}
	}
	if s.Capacity > 0 {
		s.Utilization = float64(s.Used) / float64(s.Capacity)
	}
	return s
}

func infos(rs []*region) []RegionInfo {
	if len(rs) == 0 {
		return nil
	}
	ret := make([]RegionInfo, 0, len(rs))
	for i := len(rs) - 1; i >= 0; i-- {
		ret = append(ret, rs[i].info())
	}
	return ret
}
