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
	"runtime"
	"unsafe"

	"github.com/alexeiz/ringbuffer/internal/scope"
	"github.com/alexeiz/ringbuffer/internal/shmem"
)

// ObserverOption configures an Observer at attach.
type ObserverOption func(*observerConfig)

type observerConfig struct {
	fixup uint32
}

// WithUnderflowFixup sets how many items past the current oldest item a
// lapped observer jumps. Jumping only to the oldest item would let an
// actively writing producer overtake the observer again immediately;
// the margin buys breathing room proportional to the expected producer
// lead. Must be at least 1; the default is DefaultUnderflowFixup.
func WithUnderflowFixup(n uint32) ObserverOption {
	return func(c *observerConfig) { c.fixup = n }
}

// Observer is a non-consuming reader of a shared-memory ring. Any
// number of observers may attach to the same ring; each holds its own
// read cursor and never affects the producer or other observers.
//
// Observer methods adjust the local cursor and are not safe for
// concurrent use on the same handle.
type Observer[T any] struct {
	region  *shmem.Region
	hdr     *header
	data    unsafe.Pointer
	mask    uint32
	stride  uintptr
	fixup   uint32
	readPos uint32
	gaps    uint64
}

// Attach opens the ring named name read-only and positions the cursor
// at the oldest live item.
//
// Attach fails with ErrVersionMismatch or ErrItemSizeMismatch when the
// stored ring is incompatible with T, with ErrInvalidFixup on a zero
// fixup, and with a wrapped platform error (satisfying
// errors.Is(err, fs.ErrNotExist) for an absent name) when the region
// cannot be opened. Attach-time failures are fatal to the handle.
func Attach[T any](name string, opts ...ObserverOption) (*Observer[T], error) {
	if err := checkItemType[T](); err != nil {
		return nil, err
	}

	cfg := observerConfig{fixup: DefaultUnderflowFixup}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.fixup == 0 {
		return nil, ErrInvalidFixup
	}

	region, err := shmem.Open(name)
	if err != nil {
		return nil, fmt.Errorf("ringbuffer: attach %q: %w", name, err)
	}
	g := scope.Exit(func() { region.Close() })
	defer g.Now()

	if region.Size() < headerSize {
		return nil, fmt.Errorf("ringbuffer: attach %q: region too small for a ring header", name)
	}

	hdr := headerAt(region.Base())
	if hdr.version != ringVersion {
		return nil, fmt.Errorf("%w: stored %d, want %d", ErrVersionMismatch, hdr.version, ringVersion)
	}

	var zero T
	itemSize := unsafe.Sizeof(zero)
	if hdr.dataSize != uint64(itemSize) {
		return nil, fmt.Errorf("%w: stored %d bytes, observer item is %d bytes", ErrItemSizeMismatch, hdr.dataSize, itemSize)
	}

	stride := slotStride(itemSize)
	if !isPowerOfTwo(hdr.capacity) ||
		uint64(region.Size()) < hdr.dataOffset+hdr.capacity*uint64(stride) {
		return nil, fmt.Errorf("ringbuffer: attach %q: corrupt ring header", name)
	}

	o := &Observer[T]{
		region: region,
		hdr:    hdr,
		data:   unsafe.Add(region.Base(), uintptr(hdr.dataOffset)),
		mask:   uint32(hdr.capacity - 1), // cached so steady-state reads never touch the header fields
		stride: stride,
		fixup:  cfg.fixup,
	}
	o.readPos = positionsFirst(hdr.positions.Load())

	g.Release()
	return o, nil
}

// Size returns the number of items available to this observer. Calling
// Size may advance the cursor past overwritten items (see Gaps).
func (o *Observer[T]) Size() uint64 {
	pos := o.hdr.positions.Load()
	o.adjustReadPos(pos)

	if d := positionsLast(pos) - o.readPos; int32(d) > 0 {
		return uint64(d)
	}
	return 0
}

// Empty reports whether no items are available to this observer.
func (o *Observer[T]) Empty() bool {
	return o.Size() == 0
}

// Get returns the item at the cursor, spinning until one is available.
// The wait is a busy loop on the position word with a scheduler yield
// per pass; there is no timeout and no way to interrupt it from the
// core. Callers wanting bounded waits use TryGet with their own pacing.
//
// Get does not advance the cursor; repeated Gets return the same item
// until Advance is called.
func (o *Observer[T]) Get() T {
	for {
		pos := o.hdr.positions.Load()
		o.adjustReadPos(pos)

		for int32(positionsLast(pos)-o.readPos) <= 0 {
			runtime.Gosched()
			pos = o.hdr.positions.Load()
			o.adjustReadPos(pos)
		}

		if item, ok := o.readSlot(); ok {
			return item
		}
		// The producer overtook the cursor mid-copy; retry with the
		// repositioned cursor.
	}
}

// TryGet is Get without the wait: it returns the item at the cursor, or
// ok == false immediately when none is available.
func (o *Observer[T]) TryGet() (item T, ok bool) {
	for {
		pos := o.hdr.positions.Load()
		o.adjustReadPos(pos)

		if int32(positionsLast(pos)-o.readPos) <= 0 {
			var zero T
			return zero, false
		}

		if item, ok := o.readSlot(); ok {
			return item, true
		}
	}
}

// readSlot copies the slot under the cursor and re-reads positions to
// confirm the slot was not overwritten mid-copy. The copy itself is
// unsynchronized; the bracketing loads are what make it safe. The
// second load must not be optimized away: a cursor that stalls between
// load and copy can observe a torn item, and this re-check is the sole
// mechanism that rejects it.
func (o *Observer[T]) readSlot() (T, bool) {
	item := *o.slot(o.readPos & o.mask)

	saved := o.readPos
	pos := o.hdr.positions.Load()
	o.adjustReadPos(pos)

	return item, saved == o.readPos
}

// adjustReadPos repairs the cursor when the producer's first counter
// has moved past it, meaning the slot bytes under the cursor have been
// overwritten. The cursor jumps fixup items past the new oldest item;
// everything skipped is a gap, counted but never read. Running this on
// every positions load keeps the handle self-healing for its lifetime.
func (o *Observer[T]) adjustReadPos(pos uint64) {
	first := positionsFirst(pos)
	if int32(first-o.readPos) > 0 {
		next := first + o.fixup
		o.gaps += uint64(next - o.readPos)
		o.readPos = next
	}
}

// Advance moves the cursor n items forward. There is no bounds check:
// overshooting merely makes Size return 0 until the producer catches
// up, which suits the single-pass semantics.
func (o *Observer[T]) Advance(n uint32) {
	o.readPos += n
}

// Gaps returns the total number of items this handle has skipped due to
// underflow fixups since attach. Overwrite loss is not an error; this
// counter is how it is observed.
func (o *Observer[T]) Gaps() uint64 {
	return o.gaps
}

// Capacity returns the number of slots in the ring.
func (o *Observer[T]) Capacity() uint64 {
	return o.hdr.capacity
}

// Close unmaps the region. It never unlinks the ring name; only the
// producer controls the name's lifetime.
func (o *Observer[T]) Close() error {
	return o.region.Close()
}

func (o *Observer[T]) slot(i uint32) *T {
	return (*T)(unsafe.Add(o.data, uintptr(i)*o.stride))
}
