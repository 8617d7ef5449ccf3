// Copyright 2024 The vault-plugin-secrets-anchorkem Authors
// SPDX-License-Identifier: Apache-2.0

package anchorkem

import "golang.org/x/crypto/sha3"

// xof squeezes len(out) bytes of SHAKE-256(domain || data) into out.
func xof(out, data []byte, domain byte) {
	h := sha3.NewShake256()
	h.Write([]byte{domain})
	h.Write(data)
	h.Read(out)
}

// hashKDF writes SHA3-256(domain || data) into out, which must be exactly
// SharedLen bytes long.
func hashKDF(out []byte, data []byte, domain byte) {
	h := sha3.New256()
	h.Write([]byte{domain})
	h.Write(data)
	sum := h.Sum(nil)
	copy(out, sum)
}
