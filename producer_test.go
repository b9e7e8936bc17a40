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
	"errors"
	"io/fs"
	"testing"

	"github.com/alexeiz/ringbuffer/internal/shmem"
)

func TestNewInvalidCapacity(t *testing.T) {
	for _, capacity := range []uint64{0, 3, 100, 1<<32 + 1, 1 << 33} {
		_, err := New[int32](testRingName(t), capacity)
		if !errors.Is(err, ErrInvalidCapacity) {
			t.Fatalf("capacity %d: got %v, want ErrInvalidCapacity", capacity, err)
		}
	}
}

func TestNewRejectsBadItemTypes(t *testing.T) {
	if _, err := New[*int32](testRingName(t), 16); !errors.Is(err, ErrInvalidItemType) {
		t.Fatalf("pointer item: got %v, want ErrInvalidItemType", err)
	}
	if _, err := New[struct{}](testRingName(t), 16); !errors.Is(err, ErrInvalidItemType) {
		t.Fatalf("zero-size item: got %v, want ErrInvalidItemType", err)
	}
}

func TestNewRejectsOversizedItem(t *testing.T) {
	// A slot stride above the system page size cannot be mapped with
	// page-aligned slots.
	type huge struct {
		data [1 << 20]byte
	}
	_, err := New[huge](testRingName(t), 16)
	if !errors.Is(err, ErrItemTooLarge) {
		t.Fatalf("got %v, want ErrItemTooLarge", err)
	}
}

func TestNewDuplicateName(t *testing.T) {
	name := testRingName(t)

	prod, err := New[int32](name, 16, WithRemoveOnClose())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer prod.Close()

	_, err = New[int32](name, 16)
	if !errors.Is(err, fs.ErrExist) {
		t.Fatalf("second New: got %v, want fs.ErrExist", err)
	}
}

func TestCreateEmptyRing(t *testing.T) {
	prod, obs := newTestRing[int32](t, 4096)

	if got := prod.Capacity(); got != 4096 {
		t.Fatalf("producer capacity = %d, want 4096", got)
	}
	if got := obs.Capacity(); got != 4096 {
		t.Fatalf("observer capacity = %d, want 4096", got)
	}
	if got := prod.Size(); got != 0 {
		t.Fatalf("producer size = %d, want 0", got)
	}
	if got := obs.Size(); got != 0 {
		t.Fatalf("observer size = %d, want 0", got)
	}
	if !prod.Empty() || !obs.Empty() {
		t.Fatal("fresh ring not empty")
	}
}

func TestFillToCapacityMinusOne(t *testing.T) {
	name := testRingName(t)
	prod, err := New[int32](name, 256, WithRemoveOnClose())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer prod.Close()

	for i := int32(0); i < 256; i++ {
		if got := prod.Size(); got != uint64(i) {
			t.Fatalf("size before push %d = %d, want %d", i, got, i)
		}
		prod.Push(i)
	}

	if got := prod.Size(); got != 255 {
		t.Fatalf("size after filling = %d, want 255", got)
	}
	if prod.Empty() {
		t.Fatal("filled ring reports empty")
	}
}

// The window never exceeds capacity-1, whatever the push count.
func TestSizeSaturates(t *testing.T) {
	for _, capacity := range []uint64{4, 64, 256} {
		name := testRingName(t)
		prod, err := New[int32](name, capacity, WithRemoveOnClose())
		if err != nil {
			t.Fatalf("New: %v", err)
		}

		for n := uint64(1); n <= 3*capacity; n++ {
			prod.Push(int32(n))
			want := min(n, capacity-1)
			if got := prod.Size(); got != want {
				t.Fatalf("capacity %d: size after %d pushes = %d, want %d", capacity, n, got, want)
			}
		}
		prod.Close()
	}
}

func TestPushWith(t *testing.T) {
	type record struct {
		ID    uint64
		Value float64
	}

	prod, obs := newTestRing[record](t, 64)

	prod.PushWith(func(r *record) {
		r.ID = 7
		r.Value = 2.5
	})

	got, ok := obs.TryGet()
	if !ok {
		t.Fatal("TryGet: ring empty after PushWith")
	}
	if got.ID != 7 || got.Value != 2.5 {
		t.Fatalf("got %+v, want {7 2.5}", got)
	}
}

func TestProducerCloseRemoves(t *testing.T) {
	name := testRingName(t)

	prod, err := New[int32](name, 16, WithRemoveOnClose())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !shmem.Exists(name) {
		t.Fatal("region missing after New")
	}

	if err := prod.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if shmem.Exists(name) {
		t.Fatal("region still linked after Close with WithRemoveOnClose")
	}
}

func TestProducerCloseKeeps(t *testing.T) {
	name := testRingName(t)

	prod, err := New[int32](name, 16)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := prod.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !shmem.Exists(name) {
		t.Fatal("region unlinked without WithRemoveOnClose")
	}
}
