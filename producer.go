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
	"fmt"
	"math"
	"os"
	"unsafe"

	"github.com/alexeiz/ringbuffer/internal/scope"
	"github.com/alexeiz/ringbuffer/internal/shmem"
)

// Option configures a Producer at construction.
type Option func(*producerConfig)

type producerConfig struct {
	removeOnClose bool
}

// WithRemoveOnClose unlinks the region name when the producer is
// closed. Observers still attached keep their mappings until they close.
func WithRemoveOnClose() Option {
	return func(c *producerConfig) { c.removeOnClose = true }
}

// Producer is the unique writing handle of a shared-memory ring. It
// owns the read-write mapping, never blocks, and overwrites the oldest
// items once the ring is full. A Producer must not be used from more
// than one goroutine at a time.
type Producer[T any] struct {
	region *shmem.Region
	hdr    *header
	data   unsafe.Pointer
	mask   uint32
	stride uintptr
	unlink *scope.Guard
}

// New creates the shared memory region named name, places the ring
// header in it and returns the producer handle. capacity is the number
// of slots and must be a power of two no larger than MaxUint32; one
// slot is always kept empty, so at most capacity-1 items are live.
//
// New fails with ErrInvalidCapacity, ErrInvalidItemType, ErrCacheLine
// or ErrItemTooLarge on bad arguments, and with a wrapped platform
// error when the region cannot be created (e.g. the name already
// exists).
func New[T any](name string, capacity uint64, opts ...Option) (*Producer[T], error) {
	if err := checkItemType[T](); err != nil {
		return nil, err
	}
	if capacity == 0 || capacity > math.MaxUint32 || !isPowerOfTwo(capacity) {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}

	// Slot alignment relies on the compiled-in cache line size being no
	// smaller than what the OS reports.
	if line := cacheLineSize(); line > slotAlign {
		return nil, fmt.Errorf("%w: OS reports %d", ErrCacheLine, line)
	}

	var zero T
	itemSize := unsafe.Sizeof(zero)
	stride := slotStride(itemSize)
	if stride > uintptr(os.Getpagesize()) {
		return nil, fmt.Errorf("%w: slot stride %d, page size %d", ErrItemTooLarge, stride, os.Getpagesize())
	}

	var cfg producerConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	region, err := shmem.Create(name, regionSize(capacity, stride))
	if err != nil {
		return nil, fmt.Errorf("ringbuffer: create %q: %w", name, err)
	}

	offset := slotDataOffset(stride)

	hdr := headerAt(region.Base())
	hdr.version = ringVersion
	hdr.dataSize = uint64(itemSize)
	hdr.dataOffset = uint64(offset)
	hdr.capacity = capacity
	hdr.positions.Store(packPositions(0, 0))

	p := &Producer[T]{
		region: region,
		hdr:    hdr,
		data:   unsafe.Add(region.Base(), offset),
		mask:   uint32(capacity - 1),
		stride: stride,
	}
	if cfg.removeOnClose {
		p.unlink = scope.Exit(func() { shmem.Remove(name) })
	}
	return p, nil
}

// Push appends one item, overwriting the oldest item if the ring is
// full. Push never blocks.
func (p *Producer[T]) Push(v T) {
	p.publish(func(slot *T) { *slot = v })
}

// PushWith appends one item built in place by init, which receives a
// pointer directly into the shared slot. The previous slot contents are
// whatever item occupied it last; init must set every field it cares
// about.
func (p *Producer[T]) PushWith(init func(*T)) {
	p.publish(init)
}

func (p *Producer[T]) publish(init func(*T)) {
	pos := p.hdr.positions.Load()
	first := positionsFirst(pos)
	last := positionsLast(pos)

	// Place the item. capacity is a power of two, so masking is the
	// modulo of the unbounded [first, last) counters.
	init(p.slot(last & p.mask))

	// One slot stays empty: whenever the producer writes a slot, no
	// observer cursor may legally point at it. If the window would reach
	// capacity, drag first forward past the oldest item, whose slot the
	// next push will write.
	last++
	if last-first > p.mask {
		first = last - p.mask
	}

	// The release-ordered store publishes the item bytes together with
	// the new window.
	p.hdr.positions.Store(packPositions(first, last))
}

// Capacity returns the number of slots in the ring.
func (p *Producer[T]) Capacity() uint64 {
	return p.hdr.capacity
}

// Size returns the number of live items, at most Capacity()-1.
func (p *Producer[T]) Size() uint64 {
	pos := p.hdr.positions.Load()
	// Correct under modular arithmetic: the window never exceeds
	// capacity-1, far below 2^31.
	return uint64(positionsLast(pos) - positionsFirst(pos))
}

// Empty reports whether the ring holds no live items.
func (p *Producer[T]) Empty() bool {
	return p.Size() == 0
}

// Close unmaps the region and, if the producer was created with
// WithRemoveOnClose, unlinks its name.
func (p *Producer[T]) Close() error {
	err := p.region.Close()
	if p.unlink != nil {
		p.unlink.Now()
	}
	return err
}

func (p *Producer[T]) slot(i uint32) *T {
	return (*T)(unsafe.Add(p.data, uintptr(i)*p.stride))
}
