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

// Package mdata holds the fixed-layout market-data record used by the
// commands and the item type tests. The type is pointer-free so it can
// travel through a shared-memory ring as raw bytes.
package mdata

import "bytes"

// Tick is one market-data update. All fields are fixed-size; the struct
// has no padding holes between fields on 64-bit platforms.
type Tick struct {
	Seq    uint64   // publisher sequence number, starts at 0
	Price  float64  // last trade price
	Time   int64    // publisher clock, nanoseconds since epoch
	Qty    uint32   // traded quantity
	_      uint32   // padding, keeps Symbol 8-byte aligned
	Symbol [16]byte // NUL-padded instrument code
}

// SetSymbol stores s into the fixed-size symbol field, truncating if
// needed and NUL-padding the remainder.
func (t *Tick) SetSymbol(s string) {
	n := copy(t.Symbol[:], s)
	for i := n; i < len(t.Symbol); i++ {
		t.Symbol[i] = 0
	}
}

// SymbolString returns the symbol with NUL padding stripped.
func (t *Tick) SymbolString() string {
	b := t.Symbol[:]
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
