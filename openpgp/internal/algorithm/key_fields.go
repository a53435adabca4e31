// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package algorithm

// KeyFields describes the ordered multiprecision-integer fields that make up
// the key material of one public key algorithm. The order is part of the
// wire format (RFC 4880, sections 5.5.2 and 5.5.3) and must not change.
type KeyFields struct {
	Name string
	// Public names the MPI fields of the public key material.
	Public []string
	// Secret names the additional MPI fields carried by a secret key
	// packet. Empty when secret key material for the algorithm is not
	// implemented.
	Secret []string
}

var (
	rsaFields = &KeyFields{
		Name:   "RSA",
		Public: []string{"n", "e"},
		Secret: []string{"d", "p", "q", "u"},
	}
	elgamalFields = &KeyFields{
		Name:   "ElGamal",
		Public: []string{"p", "g", "y"},
	}
	dsaFields = &KeyFields{
		Name:   "DSA",
		Public: []string{"p", "q", "g", "y"},
	}
)

// KeyFieldsById maps an OpenPGP public key algorithm ID to its field layout.
// IDs 1, 2 and 3 are RSA, RSA encrypt-only and RSA sign-only, which share a
// layout; 16 and 20 are the ElGamal variants; 17 is DSA. The map is
// populated once and never mutated afterwards, so concurrent lookups need no
// locking.
var KeyFieldsById = map[uint8]*KeyFields{
	1:  rsaFields,
	2:  rsaFields,
	3:  rsaFields,
	16: elgamalFields,
	17: dsaFields,
	20: elgamalFields,
}
