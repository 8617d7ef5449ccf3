// Copyright 2024 The vault-plugin-secrets-anchorkem Authors
// SPDX-License-Identifier: Apache-2.0

package anchorkem

const (
	// N is the number of coordinates carried by each vector.
	N = 256
	// K is the number of vectors making up a matrix row or column.
	K = 5
	// QMask keeps the bottom 13 bits of an accumulator.
	QMask = 0x1FFF
	// Shift compresses a 13-bit masked value down to 8 bits.
	Shift = 5
	// SeedLen is the size in bytes of a matrix or secret expansion seed.
	SeedLen = 32
	// SharedLen is the size in bytes of the derived shared key.
	SharedLen = 32

	// vecLen is the number of coefficients in one K*N vector or matrix row block.
	vecLen = K * N
	// matLen is the number of coefficients in the full K*K*N matrix.
	matLen = K * K * N
	// maskLen is the number of bytes needed to hold one bit per coordinate.
	maskLen = N / 8
)

// Domain separation tags, prefixed onto hash/XOF input to keep matrix
// expansion, secret expansion, and key derivation independent even when
// fed the same seed material.
const (
	domainMatrix byte = 0x00
	domainSecret byte = 0x01
	domainHash   byte = 0x02
)

// anchors are the four codewords safeZone measures distance against.
var anchors = [4]int32{32, 96, 160, 224}

// safeZoneThreshold is the maximum distance (exclusive) to the nearest
// anchor for a coordinate to be declared reliable.
const safeZoneThreshold = 12
