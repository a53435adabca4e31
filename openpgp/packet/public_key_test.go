// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package packet

import (
	"crypto/rsa"
	"crypto/sha1"
	"encoding/binary"
	"io"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gpglib/go-gpglib/openpgp/errors"
)

var (
	testRSAN = new(big.Int).SetBytes([]byte{
		0xd7, 0xe4, 0x47, 0x23, 0xfd, 0x31, 0x27, 0x0e,
		0xb5, 0x7a, 0x03, 0xfa, 0xbe, 0x54, 0x87, 0x11,
		0x6d, 0x5c, 0x34, 0x73, 0x4e, 0xb1, 0x48, 0x72,
		0x84, 0x09, 0x95, 0xbf, 0x46, 0x4a, 0x5f, 0x59,
	})
	testRSAE = big.NewInt(65537)
)

// expectedFingerprint hashes the fingerprint preimage independently of the
// decoder: 0x99, a two-octet body length, then the body itself.
func expectedFingerprint(body []byte) [20]byte {
	h := sha1.New()
	h.Write([]byte{0x99, byte(len(body) >> 8), byte(len(body))})
	h.Write(body)
	var fp [20]byte
	copy(fp[:], h.Sum(nil))
	return fp
}

func TestDecodePublicKey(t *testing.T) {
	body := publicKeyBody(4, testCreationTime, 1, testRSAN, testRSAE)

	p, err := Decode(tagPublicKey, body, nil)
	require.NoError(t, err)
	pk, ok := p.(*PublicKey)
	require.True(t, ok)

	require.Equal(t, 4, pk.Version)
	require.Equal(t, time.Unix(int64(testCreationTime), 0), pk.CreationTime)
	require.Equal(t, PubKeyAlgoRSA, pk.PubKeyAlgo)
	require.False(t, pk.IsSubkey)

	rsaPub := pk.PublicKey.(*rsa.PublicKey)
	require.Equal(t, 0, rsaPub.N.Cmp(testRSAN))
	require.Equal(t, 65537, rsaPub.E)

	n, ok := pk.MPI("n")
	require.True(t, ok)
	require.Equal(t, 0, n.Cmp(testRSAN))

	fp := expectedFingerprint(body)
	require.Equal(t, fp, pk.Fingerprint)
	require.Equal(t, binary.BigEndian.Uint64(fp[12:20]), pk.KeyId)

	bits, err := pk.BitLength()
	require.NoError(t, err)
	require.Equal(t, uint16(testRSAN.BitLen()), bits)
}

func TestDecodePublicSubkey(t *testing.T) {
	body := publicKeyBody(4, testCreationTime, 1, testRSAN, testRSAE)

	p, err := Decode(tagPublicSubkey, body, nil)
	require.NoError(t, err)
	pk := p.(*PublicKey)
	require.True(t, pk.IsSubkey)
}

func TestFingerprintDeterminism(t *testing.T) {
	body := publicKeyBody(4, testCreationTime, 1, testRSAN, testRSAE)

	first, err := Decode(tagPublicKey, body, nil)
	require.NoError(t, err)
	second, err := Decode(tagPublicKey, body, nil)
	require.NoError(t, err)

	fk, sk := first.(*PublicKey), second.(*PublicKey)
	require.Equal(t, fk.Fingerprint, sk.Fingerprint)
	require.Equal(t, fk.KeyId, sk.KeyId)
	require.Equal(t, fk.KeyIdString(), sk.KeyIdString())
	require.Len(t, fk.KeyIdString(), 16)
	require.Len(t, fk.KeyIdShortString(), 8)
}

func TestDecodePublicKeyUnsupportedVersion(t *testing.T) {
	body := publicKeyBody(3, testCreationTime, 1, testRSAN, testRSAE)

	_, err := Decode(tagPublicKey, body, nil)
	require.Error(t, err)
	require.IsType(t, errors.UnsupportedError(""), err)
	require.Contains(t, err.Error(), "public key version")
}

func TestDecodePublicKeyUnsupportedAlgorithm(t *testing.T) {
	for _, algo := range []byte{17, 16, 99} {
		// no MPI fields at all: the algorithm check must fire before
		// any MPI is read
		body := publicKeyBody(4, testCreationTime, algo)

		_, err := Decode(tagPublicKey, body, nil)
		require.Error(t, err, "algorithm %d", algo)
		require.IsType(t, errors.UnsupportedError(""), err)
	}
}

func TestDecodePublicKeyTruncated(t *testing.T) {
	body := publicKeyBody(4, testCreationTime, 1, testRSAN, testRSAE)

	// one byte short of the final MPI
	_, err := Decode(tagPublicKey, body[:len(body)-1], nil)
	require.Error(t, err)
	require.Equal(t, io.ErrUnexpectedEOF, err)

	// truncated inside the common header
	_, err = Decode(tagPublicKey, body[:4], nil)
	require.Error(t, err)
	require.Equal(t, io.ErrUnexpectedEOF, err)
}
