// SPDX-License-Identifier: Unlicense OR MIT

// Package unsafe converts between Go slices and the native
// pointers exchanged with dynamically loaded libraries.
package unsafe

import (
	"unsafe"
)

// SliceOf returns a view of the n bytes at the native pointer p.
// The view aliases foreign memory and is only valid for as long
// as its owner keeps it alive.
func SliceOf(p uintptr, n int) []byte {
	if p == 0 || n <= 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(p)), n)
}

// BytePtr returns the address of the first element of b, or 0
// for an empty slice.
func BytePtr(b []byte) uintptr {
	if len(b) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&b[0]))
}
