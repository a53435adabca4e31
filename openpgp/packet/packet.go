// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package packet implements parsing for OpenPGP key material packets, as
// specified in RFC 4880. It decodes public key, secret key and signature
// packet bodies into structured key material; outer packet framing and
// keyring assembly belong to the caller.
package packet

import (
	"io"
	"strconv"

	"github.com/gpglib/go-gpglib/openpgp/errors"
	"github.com/gpglib/go-gpglib/openpgp/internal/encoding"
)

type packetType uint8

// Packet tags for the packet bodies this package decodes. See RFC 4880,
// section 4.3.
const (
	packetTypeSignature    packetType = 2
	packetTypeSecretKey    packetType = 5
	packetTypePublicKey    packetType = 6
	packetTypeSecretSubkey packetType = 7
	packetTypePublicSubkey packetType = 14
)

// readFull is the same as io.ReadFull except that reading zero bytes returns
// ErrUnexpectedEOF rather than EOF.
func readFull(r io.Reader, buf []byte) (n int, err error) {
	n, err = io.ReadFull(r, buf)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return
}

// onlyImplemented returns nil when v is in the allowed set and an
// UnsupportedError naming the value otherwise. It backs every whitelist of
// wire values in this package: out-of-set values always fail, they are never
// coerced to a default.
func onlyImplemented(v uint8, allowed []uint8, what string) error {
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return errors.UnsupportedError(what + ": " + strconv.Itoa(int(v)))
}

// Packet is one decoded OpenPGP packet body: a *PublicKey, *PrivateKey or
// *Signature.
type Packet interface {
	parse(*encoding.Region) error
}

// Context supplies the caller-owned collaborators a decode may need.
type Context struct {
	// Passphrase is invoked when a secret key packet carries encrypted
	// material. The public portion of the key has already been decoded
	// and may be inspected, for example to prompt with the key ID.
	Passphrase func(pk *PrivateKey) ([]byte, error)

	// Subpackets is invoked with the raw hashed and unhashed signature
	// subpacket regions. Its result is stored on the Signature
	// uninterpreted. May be nil, in which case only the raw bytes are
	// kept.
	Subpackets func(body []byte) interface{}
}

func (ctx *Context) subpackets() func([]byte) interface{} {
	if ctx == nil {
		return nil
	}
	return ctx.Subpackets
}

// Decode parses the packet body with the given tag. The body must contain
// exactly one packet's payload with the framing header already stripped.
// Secret key material is unlocked before returning, using ctx.Passphrase
// when it is encrypted; on any error no partially decoded packet is
// returned.
func Decode(tag uint8, body []byte, ctx *Context) (Packet, error) {
	var p Packet
	switch packetType(tag) {
	case packetTypePublicKey:
		p = new(PublicKey)
	case packetTypePublicSubkey:
		pk := new(PublicKey)
		pk.IsSubkey = true
		p = pk
	case packetTypeSecretKey:
		p = new(PrivateKey)
	case packetTypeSecretSubkey:
		sk := new(PrivateKey)
		sk.IsSubkey = true
		p = sk
	case packetTypeSignature:
		p = &Signature{subpackets: ctx.subpackets()}
	default:
		return nil, errors.UnknownPacketTypeError(tag)
	}

	if err := p.parse(encoding.NewRegion(body)); err != nil {
		return nil, err
	}

	if sk, ok := p.(*PrivateKey); ok && sk.Encrypted {
		if ctx == nil || ctx.Passphrase == nil {
			return nil, errors.InvalidArgumentError("no passphrase source for encrypted private key")
		}
		passphrase, err := ctx.Passphrase(sk)
		if err != nil {
			return nil, err
		}
		if err := sk.Decrypt(passphrase); err != nil {
			return nil, err
		}
	}
	return p, nil
}
