// Copyright 2024 The vault-plugin-secrets-anchorkem Authors
// SPDX-License-Identifier: Apache-2.0

package anchorkem

// wipeBytes overwrites buf with zeros. Every buffer that has ever held
// secret or secret-derived bytes (XOF output included, since it mixes
// public seed material with positions the secret vector will touch) is
// run through this before it is released, matching the memory-hygiene
// discipline the rest of this module's storage layer follows when it
// invalidates a cached key.
//
//go:noinline
func wipeBytes(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}

// wipeInt8 overwrites a ternary coefficient slice with zeros.
//
//go:noinline
func wipeInt8(buf []int8) {
	for i := range buf {
		buf[i] = 0
	}
}

// wipeInt16 overwrites an expanded-matrix slice with zeros.
//
//go:noinline
func wipeInt16(buf []int16) {
	for i := range buf {
		buf[i] = 0
	}
}
