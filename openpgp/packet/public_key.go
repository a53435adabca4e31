// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package packet

import (
	"crypto/rsa"
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"time"

	"github.com/gpglib/go-gpglib/openpgp/errors"
	"github.com/gpglib/go-gpglib/openpgp/internal/algorithm"
	"github.com/gpglib/go-gpglib/openpgp/internal/encoding"
)

// PublicKeyAlgorithm identifies an OpenPGP public key algorithm. See RFC
// 4880, section 9.1.
type PublicKeyAlgorithm uint8

const (
	PubKeyAlgoRSA            PublicKeyAlgorithm = 1
	PubKeyAlgoRSAEncryptOnly PublicKeyAlgorithm = 2
	PubKeyAlgoRSASignOnly    PublicKeyAlgorithm = 3
	PubKeyAlgoElGamal        PublicKeyAlgorithm = 16
	PubKeyAlgoDSA            PublicKeyAlgorithm = 17
)

// pubKeyAlgoImplemented lists the algorithms key material can currently be
// constructed for. The field layouts of DSA and ElGamal keys are known to
// the algorithm table, but only RSA keys are built.
var pubKeyAlgoImplemented = []uint8{uint8(PubKeyAlgoRSA)}

const (
	versionSize   = 1
	timestampSize = 4
	algorithmSize = 1
)

// PublicKey represents an OpenPGP public key or public subkey packet. See
// RFC 4880, section 5.5.2.
type PublicKey struct {
	Version      int
	CreationTime time.Time
	PubKeyAlgo   PublicKeyAlgorithm
	PublicKey    interface{} // *rsa.PublicKey
	Fingerprint  [20]byte
	KeyId        uint64
	IsSubkey     bool

	// fields holds the key's MPI values keyed by their RFC 4880 names;
	// the names and their order come from the algorithm table.
	fields map[string]encoding.Field

	// rawMPIBytes is the exact wire encoding of the public MPI section.
	// The fingerprint hashes these bytes verbatim, never a
	// re-serialization of the decoded values.
	rawMPIBytes []byte
}

func (pk *PublicKey) parse(region *encoding.Region) (err error) {
	// RFC 4880, section 5.5.2
	var buf [6]byte
	if _, err = readFull(region, buf[:]); err != nil {
		return
	}
	if buf[0] != 4 {
		return errors.UnsupportedError("public key version " + strconv.Itoa(int(buf[0])))
	}
	pk.Version = int(buf[0])
	pk.CreationTime = time.Unix(int64(uint32(buf[1])<<24|uint32(buf[2])<<16|uint32(buf[3])<<8|uint32(buf[4])), 0)
	pk.PubKeyAlgo = PublicKeyAlgorithm(buf[5])

	if err = onlyImplemented(buf[5], pubKeyAlgoImplemented, "public key type"); err != nil {
		return
	}
	layout, ok := algorithm.KeyFieldsById[buf[5]]
	if !ok {
		return errors.UnsupportedError("MPI algorithm: " + strconv.Itoa(int(buf[5])))
	}

	if err = pk.parseMPIFields(region, layout.Public); err != nil {
		return
	}

	switch pk.PubKeyAlgo {
	case PubKeyAlgoRSA, PubKeyAlgoRSAEncryptOnly, PubKeyAlgoRSASignOnly:
		if err = pk.buildRSA(); err != nil {
			return
		}
	}

	pk.setFingerprintAndKeyId()
	return
}

// parseMPIFields reads the named MPI fields in order and records the exact
// wire span they occupied. The span is recovered by saving the cursor
// position, decoding, seeking back and re-reading, so that the bytes match
// the wire even for permissively decoded MPIs.
func (pk *PublicKey) parseMPIFields(region *encoding.Region, names []string) error {
	posBefore := region.Pos()
	pk.fields = make(map[string]encoding.Field, len(names))
	for _, name := range names {
		m := new(encoding.MPI)
		if _, err := m.ReadFrom(region); err != nil {
			return err
		}
		pk.fields[name] = m
	}
	posAfter := region.Pos()

	if err := region.SetPos(posBefore); err != nil {
		return err
	}
	raw, err := region.ReadBytes(int((posAfter - posBefore) / 8))
	if err != nil {
		return err
	}
	pk.rawMPIBytes = make([]byte, len(raw))
	copy(pk.rawMPIBytes, raw)
	return nil
}

// buildRSA constructs the rsa.PublicKey from the parsed n and e fields.
func (pk *PublicKey) buildRSA() error {
	n := pk.fields["n"]
	e := pk.fields["e"]
	if len(e.Bytes()) > 3 {
		return errors.UnsupportedError("large public exponent")
	}
	pub := &rsa.PublicKey{
		N: new(big.Int).SetBytes(n.Bytes()),
		E: 0,
	}
	for i := 0; i < len(e.Bytes()); i++ {
		pub.E <<= 8
		pub.E |= int(e.Bytes()[i])
	}
	pk.PublicKey = pub
	return nil
}

func (pk *PublicKey) setFingerprintAndKeyId() {
	// RFC 4880, section 12.2
	fingerprint := sha1.New()
	if err := pk.SerializeForHash(fingerprint); err != nil {
		// Should not happen for a hash.
		panic(err)
	}
	copy(pk.Fingerprint[:], fingerprint.Sum(nil))
	pk.KeyId = binary.BigEndian.Uint64(pk.Fingerprint[12:20])
}

// SerializeForHash serializes the PublicKey to w with the special packet
// header format needed for hashing.
func (pk *PublicKey) SerializeForHash(w io.Writer) error {
	if err := pk.SerializeSignaturePrefix(w); err != nil {
		return err
	}
	return pk.serializeWithoutHeaders(w)
}

// SerializeSignaturePrefix writes the prefix for this public key to the given Writer.
// The prefix is used when calculating a signature over this public key. See
// RFC 4880, section 5.2.4.
func (pk *PublicKey) SerializeSignaturePrefix(w io.Writer) error {
	pLength := uint16(versionSize + timestampSize + algorithmSize + len(pk.rawMPIBytes))
	_, err := w.Write([]byte{0x99, byte(pLength >> 8), byte(pLength)})
	return err
}

// serializeWithoutHeaders marshals the PublicKey to w in the form of an
// OpenPGP public key packet, not including the packet header.
func (pk *PublicKey) serializeWithoutHeaders(w io.Writer) error {
	t := uint32(pk.CreationTime.Unix())
	if _, err := w.Write([]byte{
		byte(pk.Version),
		byte(t >> 24), byte(t >> 16), byte(t >> 8), byte(t),
		byte(pk.PubKeyAlgo),
	}); err != nil {
		return err
	}
	_, err := w.Write(pk.rawMPIBytes)
	return err
}

// MPI returns the named MPI field of the key material as a big integer. The
// field names follow RFC 4880: n, e for RSA public material and d, p, q, u
// for the secret fields.
func (pk *PublicKey) MPI(name string) (*big.Int, bool) {
	f, ok := pk.fields[name]
	if !ok {
		return nil, false
	}
	return new(big.Int).SetBytes(f.Bytes()), true
}

// KeyIdString returns the public key's fingerprint in capital hex
// (e.g. "6C7EE1B8621CC013").
func (pk *PublicKey) KeyIdString() string {
	return fmt.Sprintf("%X", pk.Fingerprint[12:20])
}

// KeyIdShortString returns the short form of public key's fingerprint
// in capital hex, as shown by gpg --list-keys (e.g. "621CC013").
func (pk *PublicKey) KeyIdShortString() string {
	return fmt.Sprintf("%X", pk.Fingerprint[16:20])
}

// BitLength returns the bit length for the given public key.
func (pk *PublicKey) BitLength() (uint16, error) {
	layout, ok := algorithm.KeyFieldsById[uint8(pk.PubKeyAlgo)]
	if !ok {
		return 0, errors.InvalidArgumentError("bad public-key algorithm")
	}
	// the leading field carries the key size for every supported layout
	return pk.fields[layout.Public[0]].BitLength(), nil
}
