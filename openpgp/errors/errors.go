// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors contains common error types for the OpenPGP packages.
package errors

import (
	"strconv"
)

// A StructuralError is returned when OpenPGP data is found to be
// syntactically invalid.
type StructuralError string

func (s StructuralError) Error() string {
	return "openpgp: invalid data: " + string(s)
}

// UnsupportedError indicates that, although the OpenPGP data is valid, it
// makes use of currently unimplemented features.
type UnsupportedError string

func (s UnsupportedError) Error() string {
	return "openpgp: unsupported feature: " + string(s)
}

// InvalidArgumentError indicates that the caller is in error and passed an
// incorrect value.
type InvalidArgumentError string

func (i InvalidArgumentError) Error() string {
	return "openpgp: invalid argument: " + string(i)
}

type keyIncorrectError int

func (ki keyIncorrectError) Error() string {
	return "openpgp: incorrect key"
}

var ErrKeyIncorrect error = keyIncorrectError(0)

// ErrChecksumMismatch is returned when the checksum over decrypted secret
// key material does not match its expected value, which means either the
// passphrase was wrong or the data is corrupt.
type checksumMismatchError int

func (e checksumMismatchError) Error() string {
	return "openpgp: private key checksum failure, passphrase incorrect or data corrupt"
}

var ErrChecksumMismatch error = checksumMismatchError(0)

// UnknownPacketTypeError indicates that the decoder was handed a packet tag
// it does not know how to handle.
type UnknownPacketTypeError uint8

func (upte UnknownPacketTypeError) Error() string {
	return "openpgp: unknown packet type: " + strconv.Itoa(int(upte))
}
