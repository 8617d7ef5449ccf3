// Copyright 2024 The vault-plugin-secrets-anchorkem Authors
// SPDX-License-Identifier: Apache-2.0

package anchorkem

import (
	"encoding/binary"
	"fmt"
)

// PublicKeySize is the serialized length of a PublicKey: a 32-byte seed
// followed by K*N bytes of b.
const PublicKeySize = SeedLen + vecLen

// CiphertextSize is the serialized length of a Ciphertext: K*N bytes of
// u, N/8 bytes of mask, then a little-endian 16-bit cnt.
const CiphertextSize = vecLen + maskLen + 2

// Marshal serializes pk as seed || b.
func (pk *PublicKey) Marshal() []byte {
	out := make([]byte, PublicKeySize)
	copy(out, pk.Seed[:])
	copy(out[SeedLen:], pk.B)
	return out
}

// UnmarshalPublicKey parses the wire layout Marshal produces.
func UnmarshalPublicKey(data []byte) (*PublicKey, error) {
	if len(data) != PublicKeySize {
		return nil, fmt.Errorf("anchorkem: public key must be %d bytes, got %d", PublicKeySize, len(data))
	}
	pk := &PublicKey{B: make([]byte, vecLen)}
	copy(pk.Seed[:], data[:SeedLen])
	copy(pk.B, data[SeedLen:])
	return pk, nil
}

// Marshal serializes ct as u || mask || cnt (little-endian).
//
// cnt is redundant with popcount(mask) — decapsulation never consults it —
// but the wire format still carries it so a receiver can check it against
// the mask without re-deriving it.
func (ct *Ciphertext) Marshal() []byte {
	out := make([]byte, CiphertextSize)
	copy(out, ct.U)
	copy(out[vecLen:], ct.Mask)
	binary.LittleEndian.PutUint16(out[vecLen+maskLen:], ct.Cnt)
	return out
}

// UnmarshalCiphertext parses the wire layout Marshal produces.
func UnmarshalCiphertext(data []byte) (*Ciphertext, error) {
	if len(data) != CiphertextSize {
		return nil, fmt.Errorf("anchorkem: ciphertext must be %d bytes, got %d", CiphertextSize, len(data))
	}
	ct := &Ciphertext{
		U:    make([]byte, vecLen),
		Mask: make([]byte, maskLen),
	}
	copy(ct.U, data[:vecLen])
	copy(ct.Mask, data[vecLen:vecLen+maskLen])
	ct.Cnt = binary.LittleEndian.Uint16(data[vecLen+maskLen:])
	return ct, nil
}

// popcount returns the number of set bits in mask.
func popcount(mask []byte) uint16 {
	var n uint16
	for _, b := range mask {
		for b != 0 {
			n += uint16(b & 1)
			b >>= 1
		}
	}
	return n
}
