/*
 * Copyright 2025 The ringbuffer Authors.
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

// Package scope provides a small scope-exit guard: an action that runs
// once, either at a deferred point or early, unless it is released first.
package scope

// Guard holds a pending cleanup action.
//
// Typical use in a fallible constructor:
//
//	g := scope.Exit(func() { region.Close() })
//	defer g.Now()
//	// ... validation that may return early ...
//	g.Release() // construction succeeded, keep the region
type Guard struct {
	fn func()
}

// Exit returns a guard that will invoke fn from Now, unless Release is
// called first.
func Exit(fn func()) *Guard {
	return &Guard{fn: fn}
}

// Release disarms the guard. The action will never run.
func (g *Guard) Release() {
	g.fn = nil
}

// Now runs the action if the guard is still armed. Subsequent calls are
// no-ops, so Now is safe to use both deferred and inline.
func (g *Guard) Now() {
	if g.fn != nil {
		fn := g.fn
		g.fn = nil
		fn()
	}
}
