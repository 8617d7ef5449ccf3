// Copyright 2024 The vault-plugin-secrets-anchorkem Authors
// SPDX-License-Identifier: Apache-2.0

package plugin

import (
	"bytes"
	"testing"

	"github.com/anchorlabs/vault-plugin-secrets-anchorkem/internal/anchorkem"
)

func TestRecordFromGeneratedDecodeRoundTrip(t *testing.T) {
	pk, vault, err := anchorkem.KeyGen()
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}
	defer vault.Destroy()

	exported := vault.Export()
	rec := recordFromGenerated(pk, vault)

	entry, err := rec.decode()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	defer entry.vault.Destroy()

	if entry.pub.Seed != pk.Seed {
		t.Error("decoded public key seed does not match original")
	}
	if !bytes.Equal(entry.pub.B, pk.B) {
		t.Error("decoded public key b does not match original")
	}

	got := entry.vault.Export()
	if len(got) != len(exported) {
		t.Fatalf("decoded secret has %d coefficients, want %d", len(got), len(exported))
	}
	for i := range exported {
		if got[i] != exported[i] {
			t.Fatalf("coefficient %d = %d, want %d", i, got[i], exported[i])
		}
	}
}

func TestKeyRecordDecodeRejectsWrongSecretLength(t *testing.T) {
	pk, vault, err := anchorkem.KeyGen()
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}
	defer vault.Destroy()

	rec := recordFromGenerated(pk, vault)
	rec.Secret = rec.Secret[:len(rec.Secret)-1]

	if _, err := rec.decode(); err == nil {
		t.Fatal("decode accepted a truncated secret vector")
	}
}

func TestKeyRecordDecodeRejectsOutOfRangeCoefficient(t *testing.T) {
	pk, vault, err := anchorkem.KeyGen()
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}
	defer vault.Destroy()

	rec := recordFromGenerated(pk, vault)
	rec.Secret[0] = 5

	if _, err := rec.decode(); err == nil {
		t.Fatal("decode accepted a coefficient outside {-1,0,1}")
	}
}

func TestKeyRecordDecodeRejectsMalformedPublicKey(t *testing.T) {
	rec := &keyRecord{
		Seed:   []byte{0x01, 0x02},
		B:      []byte{0x03},
		Secret: make([]int8, 0),
	}
	if _, err := rec.decode(); err == nil {
		t.Fatal("decode accepted a malformed public key encoding")
	}
}
