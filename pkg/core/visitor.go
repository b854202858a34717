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

package core

// Visitor receives a pre-order traversal of a technology: the technology,
// then each output channel in order, then each emission source in order,
// then the end of the technology.
type Visitor interface {
	StartVisitTechnology(tech *Technology, period int)
	VisitOutput(output OutputChannel, period int)
	VisitEmission(source EmissionSource, period int)
	EndVisitTechnology(tech *Technology, period int)
}

// Accept walks visitor over the technology for period.
func (t *Technology) Accept(visitor Visitor, period int) {
	visitor.StartVisitTechnology(t, period)
	for _, o := range t.outputs {
		o.Accept(visitor, period)
	}
	for _, g := range t.ghgs {
		g.Accept(visitor, period)
	}
	visitor.EndVisitTechnology(t, period)
}
