// Copyright 2024 The vault-plugin-secrets-anchorkem Authors
// SPDX-License-Identifier: Apache-2.0

package anchorkem

// These three bilinear operations are component-wise, not convolutional:
// coordinate j of every output depends only on coordinate j of each input
// vector, summed over the K index. There is no mixing across coordinates.
// This is deliberate — the scheme's hardness rests on plain LWE per
// coordinate, not on a Ring-LWE polynomial product — and must not be
// "simplified" into a schoolbook convolution.

// compress masks an accumulator down to its low 13 bits and right-shifts
// by Shift, yielding the single byte transmitted on the wire.
func compress(acc int32) byte {
	return byte((acc & QMask) >> Shift)
}

// computeB computes b[i,j] = compress(sum_l A[i,l,j] * s[l,j]) for the
// keygen side: b = A*s.
func computeB(a []int16, s []int8) []byte {
	b := make([]byte, vecLen)
	for i := 0; i < K; i++ {
		for j := 0; j < N; j++ {
			var acc int32
			for l := 0; l < K; l++ {
				idxA := (i*K+l)*N + j
				idxS := l*N + j
				acc += int32(a[idxA]) * int32(s[idxS])
			}
			b[i*N+j] = compress(acc)
		}
	}
	return b
}

// computeU computes u[i,j] = compress(sum_l A[l,i,j] * r[l,j]) — the
// transposed first index of A relative to computeB — for the
// encapsulator side: u = A^T*r.
func computeU(a []int16, r []int8) []byte {
	u := make([]byte, vecLen)
	for i := 0; i < K; i++ {
		for j := 0; j < N; j++ {
			var acc int32
			for l := 0; l < K; l++ {
				idxA := (l*K+i)*N + j
				idxR := l*N + j
				acc += int32(a[idxA]) * int32(r[idxR])
			}
			u[i*N+j] = compress(acc)
		}
	}
	return u
}

// innerProductBR computes v[j] = lowbyte(sum_l b[l,j] * r[l,j]), the
// encapsulator's scalar per-coordinate inner product.
func innerProductBR(b []byte, r []int8) []byte {
	return innerProduct(b, r)
}

// innerProductUS computes v'[j] = lowbyte(sum_l u[l,j] * s[l,j]), the
// decapsulator's scalar per-coordinate inner product.
func innerProductUS(u []byte, s []int8) []byte {
	return innerProduct(u, s)
}

// innerProduct is shared by both sides of the reconciliation: it multiplies
// a compressed K*N vector by a ternary K*N vector coordinate-wise and sums
// over K, keeping only the low byte of each per-coordinate accumulator.
func innerProduct(compressedVec []byte, ternaryVec []int8) []byte {
	v := make([]byte, N)
	for j := 0; j < N; j++ {
		var acc int32
		for l := 0; l < K; l++ {
			idx := l*N + j
			acc += int32(compressedVec[idx]) * int32(ternaryVec[idx])
		}
		v[j] = byte(acc & 0xFF)
	}
	return v
}
