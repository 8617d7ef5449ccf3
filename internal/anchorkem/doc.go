// Copyright 2024 The vault-plugin-secrets-anchorkem Authors
// SPDX-License-Identifier: Apache-2.0

// Package anchorkem implements an LWE-style key encapsulation mechanism
// over a fixed power-of-two modulus with an explicit reconciliation mask.
//
// Two parties derive a shared 32-byte secret: the recipient publishes a
// PublicKey, the sender runs Encapsulate to produce a Ciphertext and a
// SharedKey, and the recipient runs Decapsulate against its SecretVault
// to recover the same SharedKey.
//
// The scheme is IND-CPA-shaped, not IND-CCA2: there is no Fujisaki-Okamoto
// transform, and disagreement between the two derived keys is never
// reported as an error. Every operation that touches the secret vector is
// written to be branch-free and independent of secret-derived memory
// access patterns; see the ct subpackage-equivalent helpers in ct.go.
package anchorkem
