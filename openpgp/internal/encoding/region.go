// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encoding

import (
	"io"

	"github.com/gpglib/go-gpglib/openpgp/errors"
)

// A Region is a read-only view over one packet body with a position-tracked
// cursor. The position is kept in bits so that the exact span consumed by a
// group of fields can be saved, restored and re-read verbatim, which the
// fingerprint computation relies on. The underlying buffer is never
// modified.
//
// Region implements io.Reader (at byte granularity) so that Field.ReadFrom
// can consume from it directly. Reads past the end of the region fail with
// io.ErrUnexpectedEOF.
type Region struct {
	buf []byte
	pos int64 // in bits
}

// NewRegion returns a Region reading from the start of buf. The buffer is
// retained, not copied; callers must not mutate it while the Region is in
// use.
func NewRegion(buf []byte) *Region {
	return &Region{buf: buf}
}

// Len returns the total length of the region in bits.
func (r *Region) Len() int64 {
	return int64(len(r.buf)) * 8
}

// Pos returns the current cursor position in bits.
func (r *Region) Pos() int64 {
	return r.pos
}

// SetPos moves the cursor to the given bit position. A position outside the
// region is an error and leaves the cursor unchanged.
func (r *Region) SetPos(pos int64) error {
	if pos < 0 || pos > r.Len() {
		return errors.InvalidArgumentError("region position out of range")
	}
	r.pos = pos
	return nil
}

// Remaining returns the number of unread bits.
func (r *Region) Remaining() int64 {
	return r.Len() - r.pos
}

// Read implements io.Reader. The cursor must be byte aligned.
func (r *Region) Read(p []byte) (int, error) {
	if r.pos%8 != 0 {
		return 0, errors.StructuralError("region cursor is not byte aligned")
	}
	off := int(r.pos / 8)
	if off >= len(r.buf) {
		return 0, io.EOF
	}
	n := copy(p, r.buf[off:])
	r.pos += int64(n) * 8
	return n, nil
}

// ReadBytes consumes exactly n bytes, failing with io.ErrUnexpectedEOF if
// fewer remain. The returned slice aliases the underlying buffer.
func (r *Region) ReadBytes(n int) ([]byte, error) {
	if r.pos%8 != 0 {
		return nil, errors.StructuralError("region cursor is not byte aligned")
	}
	if n < 0 {
		return nil, errors.InvalidArgumentError("negative read length")
	}
	off := int(r.pos / 8)
	if off+n > len(r.buf) {
		return nil, io.ErrUnexpectedEOF
	}
	r.pos += int64(n) * 8
	return r.buf[off : off+n], nil
}

// ReadByte consumes a single byte.
func (r *Region) ReadByte() (byte, error) {
	b, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadUint consumes a big-endian unsigned integer of the given width in
// bits. Widths from 1 to 32 are supported and need not be byte aligned.
func (r *Region) ReadUint(bits int) (uint32, error) {
	if bits < 1 || bits > 32 {
		return 0, errors.InvalidArgumentError("unsupported read width")
	}
	if int64(bits) > r.Remaining() {
		return 0, io.ErrUnexpectedEOF
	}
	var v uint32
	for i := 0; i < bits; i++ {
		byteIdx := (r.pos + int64(i)) / 8
		bitIdx := uint((r.pos + int64(i)) % 8)
		v <<= 1
		v |= uint32(r.buf[byteIdx]>>(7-bitIdx)) & 1
	}
	r.pos += int64(bits)
	return v, nil
}

// ReadUint16 consumes a big-endian 16 bit integer.
func (r *Region) ReadUint16() (uint16, error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0])<<8 | uint16(b[1]), nil
}

// ReadUint32 consumes a big-endian 32 bit integer.
func (r *Region) ReadUint32() (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}
