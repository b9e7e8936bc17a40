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

package ringbuffer

import "iter"

// Iterator is a single-pass adapter over an observer, in the style of
// bufio.Scanner: Next reports whether an item is available at the
// cursor and Value returns it. The pass ends when the observer is empty
// at the point of advancement; it is not restartable — a later push
// makes Next return true again on the same cursor. Not safe for
// concurrent use, and only one iterator should drive an observer at a
// time.
type Iterator[T any] struct {
	obs     *Observer[T]
	value   T
	started bool
}

// Iter returns a single-pass iterator over the items currently live in
// the ring. Advancing the iterator advances the observer's cursor.
func (o *Observer[T]) Iter() *Iterator[T] {
	return &Iterator[T]{obs: o}
}

// Next advances past the previously returned item and reports whether
// another item is available. It never blocks.
func (it *Iterator[T]) Next() bool {
	if it.started {
		it.obs.Advance(1)
	}

	v, ok := it.obs.TryGet()
	it.started = ok
	if !ok {
		return false
	}
	it.value = v
	return true
}

// Value returns the item fetched by the last successful Next.
func (it *Iterator[T]) Value() T {
	return it.value
}

// All returns a range-over-func sequence of the items currently live in
// the ring, ending when the observer is empty at the point of
// advancement. The sequence is single-pass: ranging consumes the
// observer's cursor, and a second range continues where the first
// stopped.
func (o *Observer[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		it := o.Iter()
		for it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}
