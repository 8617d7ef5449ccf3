// Copyright 2024 The vault-plugin-secrets-anchorkem Authors
// SPDX-License-Identifier: Apache-2.0

package anchorkem

import (
	"fmt"
	"runtime"
)

// SecretVault owns the K*N ternary coefficients of a long-term secret
// vector. It never exposes the coefficients as a long-lived reference:
// the only way in is AccessSecret, whose callback receives a view that is
// guaranteed not to outlive the call. Destroy overwrites the backing
// storage with zeros; a finalizer calls Destroy as a backstop for callers
// that forget to, but callers should still call it explicitly as soon as
// the key pair is no longer needed.
type SecretVault struct {
	s []int8
}

// newSecretVault takes ownership of s. Callers must not retain their own
// reference to s afterward.
func newSecretVault(s []int8) *SecretVault {
	v := &SecretVault{s: s}
	runtime.SetFinalizer(v, func(v *SecretVault) { v.Destroy() })
	return v
}

// AccessSecret invokes fn with a read-only view of the vault's
// coefficients and returns fn's result. The slice passed to fn must not
// be retained past the call.
func AccessSecret[R any](v *SecretVault, fn func(s []int8) R) R {
	return fn(v.s)
}

// NewSecretVaultFromCoefficients rebuilds a SecretVault from a previously
// extracted coefficient sequence, e.g. one decoded from durable storage.
// It copies s rather than aliasing it, validates length and range, and
// takes over zeroization responsibility for the copy.
func NewSecretVaultFromCoefficients(s []int8) (*SecretVault, error) {
	if len(s) != vecLen {
		return nil, fmt.Errorf("anchorkem: secret vector must have %d coefficients, got %d", vecLen, len(s))
	}
	cp := make([]int8, vecLen)
	for i, c := range s {
		if c < -1 || c > 1 {
			return nil, fmt.Errorf("anchorkem: coefficient %d = %d is not in {-1,0,1}", i, c)
		}
		cp[i] = c
	}
	return newSecretVault(cp), nil
}

// Export returns a copy of the vault's coefficients for durable storage
// by a trusted caller (e.g. the Vault secrets-engine storage layer). It
// is the one sanctioned escape hatch from the scoped-access discipline
// AccessSecret otherwise enforces, and exists only because this backend's
// storage barrier, not process memory, is the secret's real trust
// boundary.
func (v *SecretVault) Export() []int8 {
	cp := make([]int8, len(v.s))
	copy(cp, v.s)
	return cp
}

// Destroy overwrites the vault's coefficients with zero and releases the
// backing storage. It is safe to call more than once.
func (v *SecretVault) Destroy() {
	if v.s == nil {
		return
	}
	wipeInt8(v.s)
	v.s = nil
	runtime.SetFinalizer(v, nil)
}
