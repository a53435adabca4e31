// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encoding

import (
	"bytes"
	"io"
	"math/big"
	"testing"
)

var mpiTests = []struct {
	value     int64
	bitLength uint16
	encoded   []byte
}{
	{
		value:     0,
		bitLength: 0,
		encoded:   []byte{0x0, 0x0},
	},
	{
		value:     1,
		bitLength: 1,
		encoded:   []byte{0x0, 0x1, 0x1},
	},
	// byte boundary values
	{
		value:     255,
		bitLength: 8,
		encoded:   []byte{0x0, 0x8, 0xff},
	},
	{
		value:     256,
		bitLength: 9,
		encoded:   []byte{0x0, 0x9, 0x1, 0x0},
	},
	{
		value:     511,
		bitLength: 9,
		encoded:   []byte{0x0, 0x9, 0x1, 0xff},
	},
	{
		value:     65537,
		bitLength: 17,
		encoded:   []byte{0x0, 0x11, 0x1, 0x0, 0x1},
	},
}

func TestMPIRoundTrip(t *testing.T) {
	for i, test := range mpiTests {
		m := new(MPI).SetBig(big.NewInt(test.value))

		if m.BitLength() != test.bitLength {
			t.Errorf("#%d: bad bit length got:%d want:%d", i, m.BitLength(), test.bitLength)
		}
		if got := m.EncodedBytes(); !bytes.Equal(got, test.encoded) {
			t.Errorf("#%d: bad encoding got:%x want:%x", i, got, test.encoded)
		}
		if got := m.EncodedLength(); got != uint16(len(test.encoded)) {
			t.Errorf("#%d: bad encoded length got:%d want:%d", i, got, len(test.encoded))
		}

		parsed := new(MPI)
		if _, err := parsed.ReadFrom(bytes.NewReader(test.encoded)); err != nil {
			t.Errorf("#%d: ReadFrom error: %v", i, err)
			continue
		}
		if got := new(big.Int).SetBytes(parsed.Bytes()); got.Int64() != test.value {
			t.Errorf("#%d: bad round trip got:%d want:%d", i, got.Int64(), test.value)
		}
		if parsed.BitLength() != test.bitLength {
			t.Errorf("#%d: bad parsed bit length got:%d want:%d", i, parsed.BitLength(), test.bitLength)
		}
	}
}

func TestMPITruncated(t *testing.T) {
	truncated := [][]byte{
		{},              // no header
		{0x0},           // half a header
		{0x0, 0x9, 0x1}, // one magnitude byte short
	}
	for i, in := range truncated {
		m := new(MPI)
		if _, err := m.ReadFrom(bytes.NewReader(in)); err != io.ErrUnexpectedEOF {
			t.Errorf("#%d: got:%v want:%v", i, err, io.ErrUnexpectedEOF)
		}
	}
}

func TestMPIFromRegion(t *testing.T) {
	// two MPIs back to back, as they appear in key material
	region := NewRegion([]byte{0x0, 0x9, 0x1, 0x0, 0x0, 0x2, 0x3})

	first := new(MPI)
	if _, err := first.ReadFrom(region); err != nil {
		t.Fatalf("first ReadFrom error: %v", err)
	}
	second := new(MPI)
	if _, err := second.ReadFrom(region); err != nil {
		t.Fatalf("second ReadFrom error: %v", err)
	}

	if got := new(big.Int).SetBytes(first.Bytes()); got.Int64() != 256 {
		t.Errorf("first value got:%d want:256", got.Int64())
	}
	if got := new(big.Int).SetBytes(second.Bytes()); got.Int64() != 3 {
		t.Errorf("second value got:%d want:3", got.Int64())
	}
	if rem := region.Remaining(); rem != 0 {
		t.Errorf("Remaining got:%d want:0", rem)
	}
}

func TestMPITrimsMalformedLeadingZeros(t *testing.T) {
	// 16 declared bits but a zero leading octet, as emitted by some GnuPG
	// versions
	m := new(MPI)
	if _, err := m.ReadFrom(bytes.NewReader([]byte{0x0, 0x10, 0x0, 0x7f})); err != nil {
		t.Fatalf("ReadFrom error: %v", err)
	}
	if m.BitLength() != 8 {
		t.Errorf("bad bit length got:%d want:8", m.BitLength())
	}
	if !bytes.Equal(m.Bytes(), []byte{0x7f}) {
		t.Errorf("bad bytes got:%x want:7f", m.Bytes())
	}
}
