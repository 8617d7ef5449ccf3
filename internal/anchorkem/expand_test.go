// Copyright 2024 The vault-plugin-secrets-anchorkem Authors
// SPDX-License-Identifier: Apache-2.0

package anchorkem

import "testing"

// goldenMatrixZeroSeed is the first 16 coefficients of genMatrixA applied
// to a 32-byte all-zero seed, computed independently against a
// FIPS-202-conformant SHAKE-256 implementation. Any change to the domain
// tag, byte order, or masking in genMatrixA will move this vector.
var goldenMatrixZeroSeed = []int16{
	8128, 460, 5863, 1801, 7003, 2968, 7316, 1656,
	6744, 3831, 5686, 6846, 5573, 5871, 5596, 6700,
}

func TestGenMatrixADeterministicGolden(t *testing.T) {
	seed := make([]byte, SeedLen)
	a := genMatrixA(seed)
	if len(a) != matLen {
		t.Fatalf("genMatrixA returned %d coefficients, want %d", len(a), matLen)
	}
	for i, want := range goldenMatrixZeroSeed {
		if a[i] != want {
			t.Errorf("coefficient %d = %d, want %d", i, a[i], want)
		}
	}
}

func TestGenMatrixADeterministic(t *testing.T) {
	seed := []byte("0123456789abcdef0123456789abcdef")[:SeedLen]
	a1 := genMatrixA(seed)
	a2 := genMatrixA(seed)
	for i := range a1 {
		if a1[i] != a2[i] {
			t.Fatalf("genMatrixA not deterministic at index %d: %d != %d", i, a1[i], a2[i])
		}
	}
}

func TestGenMatrixACoefficientRange(t *testing.T) {
	seed := make([]byte, SeedLen)
	for i := range seed {
		seed[i] = byte(i * 7)
	}
	a := genMatrixA(seed)
	for i, c := range a {
		if c < 0 || c > QMask {
			t.Fatalf("coefficient %d = %d out of [0, %d]", i, c, QMask)
		}
	}
}

func TestGenSecretFromSeedGolden(t *testing.T) {
	seed := make([]byte, SeedLen)
	for i := range seed {
		seed[i] = byte(i + 1)
	}
	s := genSecretFromSeed(seed, 16)
	want := []int8{0, 0, 0, 0, 0, 1, -1, 0, 1, 1, -1, 0, -1, 1, -1, 0}
	for i := range want {
		if s[i] != want[i] {
			t.Errorf("coefficient %d = %d, want %d", i, s[i], want[i])
		}
	}
}

func TestGenSecretFromSeedTernaryRange(t *testing.T) {
	seed := []byte("deterministic-secret-expansion-0")[:SeedLen]
	s := genSecretFromSeed(seed, vecLen)
	for i, c := range s {
		if c < -1 || c > 1 {
			t.Fatalf("coefficient %d = %d out of {-1,0,1}", i, c)
		}
	}
}

func TestDomainSeparation(t *testing.T) {
	seed := make([]byte, SeedLen)
	for i := range seed {
		seed[i] = byte(i)
	}

	matrixBuf := make([]byte, 64)
	secretBuf := make([]byte, 64)
	xof(matrixBuf, seed, domainMatrix)
	xof(secretBuf, seed, domainSecret)

	if eqSlice(matrixBuf, secretBuf) {
		t.Fatal("xof with different domain tags produced identical output")
	}
}
