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

import (
	"testing"

	"github.com/google/uuid"

	"github.com/alexeiz/ringbuffer/internal/shmem"
)

// testRingName returns a unique region name and schedules its removal.
func testRingName(t *testing.T) string {
	t.Helper()
	name := "ringbuffer-test-" + uuid.NewString()[:8]
	t.Cleanup(func() { shmem.Remove(name) })
	return name
}

// newTestRing creates a producer and an attached observer over a fresh
// ring, both closed on test cleanup.
func newTestRing[T any](t *testing.T, capacity uint64, opts ...ObserverOption) (*Producer[T], *Observer[T]) {
	t.Helper()
	name := testRingName(t)

	prod, err := New[T](name, capacity, WithRemoveOnClose())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { prod.Close() })

	obs, err := Attach[T](name, opts...)
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}
	t.Cleanup(func() { obs.Close() })

	return prod, obs
}
