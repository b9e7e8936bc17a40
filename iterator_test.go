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

import "testing"

func TestIteratorTermination(t *testing.T) {
	prod, obs := newTestRing[int32](t, 4096)

	for i := int32(0); i < 4095; i++ {
		prod.Push(i)
	}

	it := obs.Iter()
	var n int32
	for it.Next() {
		if got := it.Value(); got != n {
			t.Fatalf("item %d = %d", n, got)
		}
		n++
	}

	if n != 4095 {
		t.Fatalf("iterator yielded %d items, want 4095", n)
	}
	if it.Next() {
		t.Fatal("exhausted iterator yielded another item")
	}
	if !obs.Empty() {
		t.Fatal("observer not empty after full pass")
	}
}

func TestIteratorResumesAfterPush(t *testing.T) {
	// A drained pass is over, but the cursor stays put: new pushes are
	// visible to the same observer on the next pass.
	prod, obs := newTestRing[int32](t, 64)

	prod.Push(1)
	it := obs.Iter()
	if !it.Next() || it.Value() != 1 {
		t.Fatal("first pass missed the item")
	}
	if it.Next() {
		t.Fatal("pass did not end on empty")
	}

	prod.Push(2)
	if !it.Next() || it.Value() != 2 {
		t.Fatal("cursor lost the follow-up item")
	}
}

func TestAllSeq(t *testing.T) {
	prod, obs := newTestRing[int32](t, 64)

	for i := int32(0); i < 10; i++ {
		prod.Push(i)
	}

	var got []int32
	for v := range obs.All() {
		got = append(got, v)
	}
	if len(got) != 10 {
		t.Fatalf("ranged %d items, want 10", len(got))
	}
	for i, v := range got {
		if v != int32(i) {
			t.Fatalf("item %d = %d", i, v)
		}
	}
}

func TestAllSeqEarlyBreak(t *testing.T) {
	prod, obs := newTestRing[int32](t, 64)

	for i := int32(0); i < 10; i++ {
		prod.Push(i)
	}

	var got []int32
	for v := range obs.All() {
		got = append(got, v)
		if len(got) == 3 {
			break
		}
	}
	if len(got) != 3 {
		t.Fatalf("ranged %d items, want 3", len(got))
	}

	// Breaking out leaves the cursor on the last yielded item.
	if v := obs.Get(); v != 2 {
		t.Fatalf("cursor at %d after break, want 2", v)
	}
}
