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
	"context"
	"fmt"
	"slices"

	"github.com/llm-d/technology-share-engine/pkg/core"
)

type storeKey struct {
	name string
	year int
}

// Store is the shared, cross-region technology parameter store. Parameters
// handed out are shared by every technology that opts in and must be
// treated as read-only.
type Store struct {
	params map[storeKey]*core.TechnologyParameters
}

func NewStore() *Store {
	return &Store{params: make(map[storeKey]*core.TechnologyParameters)}
}

// Add registers params for the technology of the same name in year. The
// parameters are completed before they are shared. Adding the same name and
// year twice is an error.
func (s *Store) Add(ctx context.Context, year int, params *core.TechnologyParameters) error {
	if params == nil || params.Name == "" {
		return fmt.Errorf("global technology for year %d has no name", year)
	}
	key := storeKey{name: params.Name, year: year}
	if _, ok := s.params[key]; ok {
		return fmt.Errorf("duplicate global technology %q for year %d", params.Name, year)
	}
	p := params.Clone()
	p.CompleteInit(ctx)
	s.params[key] = p
	return nil
}

// TechnologyParameters returns the shared parameters of name in year.
func (s *Store) TechnologyParameters(name string, year int) (*core.TechnologyParameters, bool) {
	p, ok := s.params[storeKey{name: name, year: year}]
	return p, ok
}

// Names returns the stored technology names, sorted and deduplicated.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.params))
	for key := range s.params {
		names = append(names, key.name)
	}
	slices.Sort(names)
	return slices.Compact(names)
}

func (s *Store) Len() int { return len(s.params) }

var _ core.ParameterStore = (*Store)(nil)
