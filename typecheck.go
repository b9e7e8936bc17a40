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
	"reflect"
)

// checkItemType validates that T can travel through shared memory as
// raw bytes: fixed layout, non-zero size, and no pointer-carrying kinds
// anywhere in the value. Slots are overwritten without any per-item
// teardown, so types needing cleanup or referencing process-local
// memory are rejected up front.
func checkItemType[T any]() error {
	t := reflect.TypeFor[T]()
	if err := itemLayoutOK(t); err != nil {
		return err
	}
	if t.Size() == 0 {
		return fmt.Errorf("%w: %s has zero size", ErrInvalidItemType, t)
	}
	return nil
}

func itemLayoutOK(t reflect.Type) error {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return nil

	case reflect.Array:
		return itemLayoutOK(t.Elem())

	case reflect.Struct:
		for i := range t.NumField() {
			if err := itemLayoutOK(t.Field(i).Type); err != nil {
				return err
			}
		}
		return nil

	default:
		// Pointer, UnsafePointer, Uintptr, Map, Chan, Slice, String,
		// Func, Interface: all reference process-local memory.
		return fmt.Errorf("%w: kind %s is not shareable", ErrInvalidItemType, t.Kind())
	}
}
