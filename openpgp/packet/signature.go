// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package packet

import (
	"crypto"

	"github.com/gpglib/go-gpglib/openpgp/internal/encoding"
)

// SignatureType identifies the kind of binding a signature asserts. See RFC
// 4880, section 5.2.1.
type SignatureType uint8

const (
	SigTypePositiveCert  SignatureType = 0x13
	SigTypeSubkeyBinding SignatureType = 0x18
)

const hashAlgoSHA1 = 2

// Signature represents a version 4 signature packet. Only the structure is
// decoded: the subpacket regions are bounded and handed to the caller's
// consumer, and the signature value is kept as an MPI. No cryptographic
// verification happens here.
type Signature struct {
	Version    int
	SigType    SignatureType
	PubKeyAlgo PublicKeyAlgorithm
	Hash       crypto.Hash

	// HashedSubpackets and UnhashedSubpackets are the raw subpacket
	// regions as they appeared on the wire. Hashed and Unhashed hold
	// whatever the caller's subpacket consumer returned for them,
	// uninterpreted. Only the hashed region is protected by the
	// signature; the unhashed one carries advisory data.
	HashedSubpackets   []byte
	UnhashedSubpackets []byte
	Hashed             interface{}
	Unhashed           interface{}

	// HashTag holds the leftmost 16 bits of the signed hash value, a
	// heuristic check only; validating it requires re-hashing the signed
	// data, which is not done here.
	HashTag [2]byte

	// RSASignature contains the signature value, m**d mod n.
	RSASignature encoding.Field

	subpackets func([]byte) interface{}
}

func (sig *Signature) parse(region *encoding.Region) (err error) {
	// RFC 4880, section 5.2.3
	var buf [4]byte
	if _, err = readFull(region, buf[:]); err != nil {
		return
	}
	if err = onlyImplemented(buf[0], []uint8{4}, "signature packet version"); err != nil {
		return
	}
	sig.Version = int(buf[0])
	if err = onlyImplemented(buf[1], []uint8{uint8(SigTypePositiveCert), uint8(SigTypeSubkeyBinding)}, "signature type"); err != nil {
		return
	}
	sig.SigType = SignatureType(buf[1])
	if err = onlyImplemented(buf[2], pubKeyAlgoImplemented, "public key algorithm in signature"); err != nil {
		return
	}
	sig.PubKeyAlgo = PublicKeyAlgorithm(buf[2])
	if err = onlyImplemented(buf[3], []uint8{hashAlgoSHA1}, "hash algorithm in signature"); err != nil {
		return
	}
	sig.Hash = crypto.SHA1

	if sig.HashedSubpackets, sig.Hashed, err = sig.parseSubpackets(region); err != nil {
		return
	}
	if sig.UnhashedSubpackets, sig.Unhashed, err = sig.parseSubpackets(region); err != nil {
		return
	}

	tag, err := region.ReadBytes(2)
	if err != nil {
		return err
	}
	copy(sig.HashTag[:], tag)

	mpi := new(encoding.MPI)
	if _, err = mpi.ReadFrom(region); err != nil {
		return
	}
	sig.RSASignature = mpi
	return
}

// parseSubpackets bounds one length-prefixed subpacket region and hands it
// to the caller's consumer. The contents are not interpreted here.
func (sig *Signature) parseSubpackets(region *encoding.Region) ([]byte, interface{}, error) {
	length, err := region.ReadUint16()
	if err != nil {
		return nil, nil, err
	}
	body, err := region.ReadBytes(int(length))
	if err != nil {
		return nil, nil, err
	}
	raw := make([]byte, len(body))
	copy(raw, body)

	var opaque interface{}
	if sig.subpackets != nil {
		opaque = sig.subpackets(raw)
	}
	return raw, opaque, nil
}
