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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackPositionsRoundTrip(t *testing.T) {
	cases := []struct {
		first, last uint32
	}{
		{0, 0},
		{0, 1},
		{1, 4096},
		{math.MaxUint32, 0},       // last has just wrapped, first not yet
		{math.MaxUint32 - 5, 100}, // window spans the 2^32 boundary
		{math.MaxUint32, math.MaxUint32},
	}

	for _, c := range cases {
		pos := packPositions(c.first, c.last)
		assert.Equal(t, c.first, positionsFirst(pos), "first of (%d, %d)", c.first, c.last)
		assert.Equal(t, c.last, positionsLast(pos), "last of (%d, %d)", c.first, c.last)
	}
}

func TestPackPositionsLayout(t *testing.T) {
	// first occupies the lower half, last the upper half.
	assert.Equal(t, uint64(0x00000002_00000001), packPositions(1, 2))
}

func TestSlotStride(t *testing.T) {
	cases := []struct {
		itemSize uintptr
		want     uintptr
	}{
		{1, 64},
		{4, 64},
		{63, 64},
		{64, 64},
		{65, 128},
		{128, 128},
		{129, 192},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, slotStride(c.itemSize), "itemSize %d", c.itemSize)
	}
}

func TestSlotDataOffset(t *testing.T) {
	// The header occupies 40 bytes, so slot 0 lands on the first whole
	// stride boundary past it.
	assert.Equal(t, uintptr(64), slotDataOffset(64))
	assert.Equal(t, uintptr(128), slotDataOffset(128))
	assert.Equal(t, uintptr(192), slotDataOffset(192))
}

func TestRegionSize(t *testing.T) {
	assert.Equal(t, 64+16*64, regionSize(16, 64))
	assert.Equal(t, 128+8*128, regionSize(8, 128))
}

func TestIsPowerOfTwo(t *testing.T) {
	for _, n := range []uint64{1, 2, 4, 64, 4096, 1 << 32} {
		assert.True(t, isPowerOfTwo(n), "%d", n)
	}
	for _, n := range []uint64{0, 3, 6, 100, 1<<32 + 1} {
		assert.False(t, isPowerOfTwo(n), "%d", n)
	}
}
