/*
Copyright 2025 The llm-d Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package techdb

import (
	"errors"
	"fmt"
	"slices"

	"github.com/llm-d/technology-share-engine/pkg/core"
)

// ErrDependencyCycle is returned by Order when sectors depend on each other.
var ErrDependencyCycle = errors.New("sector dependency cycle")

// Dependencies records which goods each sector consumes. A good is produced
// by the sector of the same name, so producers can be ordered before their
// consumers.
type Dependencies struct {
	consumes map[string]map[string]struct{}
}

func NewDependencies() *Dependencies {
	return &Dependencies{consumes: make(map[string]map[string]struct{})}
}

// AddDependency records that sector consumes good. Empty goods are ignored.
func (d *Dependencies) AddDependency(sector, good string) {
	if sector == "" || good == "" || sector == good {
		return
	}
	goods, ok := d.consumes[sector]
	if !ok {
		goods = make(map[string]struct{})
		d.consumes[sector] = goods
	}
	goods[good] = struct{}{}
	if _, ok := d.consumes[good]; !ok {
		d.consumes[good] = make(map[string]struct{})
	}
}

// Inputs returns the goods sector consumes, sorted.
func (d *Dependencies) Inputs(sector string) []string {
	goods := make([]string, 0, len(d.consumes[sector]))
	for g := range d.consumes[sector] {
		goods = append(goods, g)
	}
	slices.Sort(goods)
	return goods
}

// Order returns every known name with producers before consumers. Ties are
// broken alphabetically.
func (d *Dependencies) Order() ([]string, error) {
	pending := make(map[string]int, len(d.consumes))
	consumers := make(map[string][]string, len(d.consumes))
	for sector, goods := range d.consumes {
		pending[sector] += len(goods)
		for g := range goods {
			consumers[g] = append(consumers[g], sector)
		}
	}

	var ready []string
	for name, n := range pending {
		if n == 0 {
			ready = append(ready, name)
		}
	}
	slices.Sort(ready)

	order := make([]string, 0, len(pending))
	for len(ready) > 0 {
		name := ready[0]
		ready = ready[1:]
		order = append(order, name)
		var next []string
		for _, c := range consumers[name] {
			pending[c]--
			if pending[c] == 0 {
				next = append(next, c)
			}
		}
		ready = append(ready, next...)
		slices.Sort(ready)
	}

	if len(order) != len(pending) {
		var stuck []string
		for name, n := range pending {
			if n > 0 {
				stuck = append(stuck, name)
			}
		}
		slices.Sort(stuck)
		return nil, fmt.Errorf("%w: %v", ErrDependencyCycle, stuck)
	}
	return order, nil
}

var _ core.DependencyRegistrar = (*Dependencies)(nil)
