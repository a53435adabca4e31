// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package packet

import (
	"crypto/cipher"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/subtle"
	"math/big"
	"strconv"

	"github.com/gpglib/go-gpglib/openpgp/errors"
	"github.com/gpglib/go-gpglib/openpgp/internal/algorithm"
	"github.com/gpglib/go-gpglib/openpgp/internal/encoding"
	"github.com/gpglib/go-gpglib/openpgp/s2k"
)

// String-to-key usage values for secret key packets. Zero means the secret
// MPI fields follow in the clear; 254 means an s2k specifier and
// SHA-1-checksummed ciphertext follow. See RFC 4880, section 5.5.3.
const (
	s2kUsagePlaintext = 0
	s2kUsageSHA1      = 254
)

// PrivateKey represents an OpenPGP secret key or secret subkey packet. See
// RFC 4880, section 5.5.3. The public portion is always populated after
// parsing; the private portion only after Decrypt has validated the
// checksum (which Decode does for the caller).
type PrivateKey struct {
	PublicKey
	// Encrypted reports whether the private fields are still locked
	// behind a passphrase.
	Encrypted  bool
	PrivateKey interface{} // *rsa.PrivateKey

	cipher        algorithm.Cipher
	s2kParams     *s2k.Params
	iv            []byte
	encryptedData []byte
}

func (pk *PrivateKey) parse(region *encoding.Region) (err error) {
	if err = pk.PublicKey.parse(region); err != nil {
		return
	}

	s2kType, err := region.ReadByte()
	if err != nil {
		return
	}
	switch s2kType {
	case s2kUsagePlaintext:
		rest, err := region.ReadBytes(int(region.Remaining() / 8))
		if err != nil {
			return err
		}
		return pk.parsePrivateFields(rest)
	case s2kUsageSHA1:
		cipherId, err := region.ReadByte()
		if err != nil {
			return err
		}
		c, ok := algorithm.CipherById[cipherId]
		if !ok {
			return errors.UnsupportedError("cipher for private key: " + strconv.Itoa(int(cipherId)))
		}
		pk.cipher = c

		if pk.s2kParams, err = s2k.ParseIntoParams(region); err != nil {
			return err
		}

		iv, err := region.ReadBytes(c.BlockSize())
		if err != nil {
			return err
		}
		pk.iv = make([]byte, len(iv))
		copy(pk.iv, iv)

		data, err := region.ReadBytes(int(region.Remaining() / 8))
		if err != nil {
			return err
		}
		pk.encryptedData = make([]byte, len(data))
		copy(pk.encryptedData, data)
		pk.Encrypted = true
		return nil
	default:
		return errors.UnsupportedError("string-to-key usage: " + strconv.Itoa(int(s2kType)))
	}
}

// Decrypt unlocks encrypted private key material with the given passphrase.
// The ciphertext is decrypted in OpenPGP CFB mode and the trailing SHA-1
// checksum is validated before any private field is parsed; a mismatch means
// the passphrase was wrong or the packet is corrupt, and no private material
// is retained.
func (pk *PrivateKey) Decrypt(passphrase []byte) error {
	if !pk.Encrypted {
		return nil
	}

	key := make([]byte, pk.cipher.KeySize())
	f, err := pk.s2kParams.Function()
	if err != nil {
		return err
	}
	f(key, passphrase)

	data := make([]byte, len(pk.encryptedData))
	cfb := cipher.NewCFBDecrypter(pk.cipher.New(key), pk.iv)
	cfb.XORKeyStream(data, pk.encryptedData)

	if len(data) < sha1.Size {
		return errors.StructuralError("truncated private key data")
	}
	split := len(data) - sha1.Size
	sum := sha1.Sum(data[:split])
	if subtle.ConstantTimeCompare(sum[:], data[split:]) == 0 {
		return errors.ErrChecksumMismatch
	}

	if err := pk.parsePrivateFields(data[:split]); err != nil {
		return err
	}
	pk.Encrypted = false
	pk.encryptedData = nil
	return nil
}

// parsePrivateFields reads the algorithm's secret MPI fields, in table
// order, from the plaintext private key section.
func (pk *PrivateKey) parsePrivateFields(data []byte) error {
	layout := algorithm.KeyFieldsById[uint8(pk.PubKeyAlgo)]
	if len(layout.Secret) == 0 {
		return errors.UnsupportedError("secret key material for " + layout.Name + " keys")
	}

	region := encoding.NewRegion(data)
	for _, name := range layout.Secret {
		m := new(encoding.MPI)
		if _, err := m.ReadFrom(region); err != nil {
			return err
		}
		pk.fields[name] = m
	}

	switch pk.PubKeyAlgo {
	case PubKeyAlgoRSA, PubKeyAlgoRSAEncryptOnly, PubKeyAlgoRSASignOnly:
		return pk.buildRSAPrivate()
	}
	return errors.UnsupportedError("secret key material for " + layout.Name + " keys")
}

// buildRSAPrivate combines the public n, e fields with the secret d, p, q
// fields into a full rsa.PrivateKey. The wire also carries u, the
// multiplicative inverse of p mod q; Go recomputes its own CRT values, so u
// stays available only as an MPI field.
func (pk *PrivateKey) buildRSAPrivate() error {
	pub, ok := pk.PublicKey.PublicKey.(*rsa.PublicKey)
	if !ok {
		return errors.StructuralError("private key without RSA public material")
	}
	priv := &rsa.PrivateKey{
		PublicKey: *pub,
		D:         new(big.Int).SetBytes(pk.fields["d"].Bytes()),
		Primes: []*big.Int{
			new(big.Int).SetBytes(pk.fields["p"].Bytes()),
			new(big.Int).SetBytes(pk.fields["q"].Bytes()),
		},
	}
	if err := priv.Validate(); err != nil {
		return errors.StructuralError("RSA private key inconsistent: " + err.Error())
	}
	priv.Precompute()
	pk.PrivateKey = priv
	return nil
}
