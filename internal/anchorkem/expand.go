// Copyright 2024 The vault-plugin-secrets-anchorkem Authors
// SPDX-License-Identifier: Apache-2.0

package anchorkem

import "encoding/binary"

// genMatrixA deterministically expands a 32-byte seed into the K*K*N
// coefficient matrix A. Coefficients are consumed as little-endian 16-bit
// words from a SHAKE-256 squeeze, masked down to 13 bits.
//
// genMatrixA is a pure function of seed: the same seed always produces the
// same matrix, and domainMatrix keeps this expansion independent of
// genSecretFromSeed even when fed identical seed bytes.
func genMatrixA(seed []byte) []int16 {
	buf := make([]byte, 2*matLen)
	xof(buf, seed, domainMatrix)

	a := make([]int16, matLen)
	for i := range a {
		word := binary.LittleEndian.Uint16(buf[2*i : 2*i+2])
		a[i] = int16(int32(word) & QMask)
	}

	wipeBytes(buf)
	return a
}

// genSecretFromSeed deterministically expands seed into n ternary
// coefficients via domainSecret, independent of genMatrixA's expansion even
// when seed is shared between the two roles.
func genSecretFromSeed(seed []byte, n int) []int8 {
	buf := make([]byte, n)
	xof(buf, seed, domainSecret)

	s := make([]int8, n)
	for i, b := range buf {
		s[i] = ternary(b)
	}

	wipeBytes(buf)
	return s
}
