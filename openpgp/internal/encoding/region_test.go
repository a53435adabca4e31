// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encoding

import (
	"bytes"
	"io"
	"testing"
)

func TestRegionReads(t *testing.T) {
	r := NewRegion([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07})

	b, err := r.ReadByte()
	if err != nil || b != 0x01 {
		t.Fatalf("ReadByte got:%x,%v want:01,nil", b, err)
	}
	v16, err := r.ReadUint16()
	if err != nil || v16 != 0x0203 {
		t.Fatalf("ReadUint16 got:%x,%v want:0203,nil", v16, err)
	}
	v32, err := r.ReadUint32()
	if err != nil || v32 != 0x04050607 {
		t.Fatalf("ReadUint32 got:%x,%v want:04050607,nil", v32, err)
	}
	if rem := r.Remaining(); rem != 0 {
		t.Fatalf("Remaining got:%d want:0", rem)
	}
	if _, err := r.ReadByte(); err != io.ErrUnexpectedEOF {
		t.Fatalf("read past end got:%v want:%v", err, io.ErrUnexpectedEOF)
	}
}

func TestRegionReadUintBits(t *testing.T) {
	tests := []struct {
		bits int
		want uint32
	}{
		{4, 0xa},
		{4, 0xb},
		{8, 0xcd},
		{16, 0xef01},
	}

	r := NewRegion([]byte{0xab, 0xcd, 0xef, 0x01})
	for i, test := range tests {
		got, err := r.ReadUint(test.bits)
		if err != nil {
			t.Fatalf("#%d: ReadUint(%d) error: %v", i, test.bits, err)
		}
		if got != test.want {
			t.Errorf("#%d: ReadUint(%d) got:%x want:%x", i, test.bits, got, test.want)
		}
	}
	if _, err := r.ReadUint(1); err != io.ErrUnexpectedEOF {
		t.Errorf("read past end got:%v want:%v", err, io.ErrUnexpectedEOF)
	}
}

func TestRegionSeekReproducesBytes(t *testing.T) {
	buf := []byte{0xde, 0xad, 0xbe, 0xef, 0x99}
	r := NewRegion(buf)

	if _, err := r.ReadByte(); err != nil {
		t.Fatal(err)
	}
	pos := r.Pos()
	first, err := r.ReadBytes(3)
	if err != nil {
		t.Fatal(err)
	}
	after := r.Pos()

	if err := r.SetPos(pos); err != nil {
		t.Fatal(err)
	}
	second, err := r.ReadBytes(int((after - pos) / 8))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("re-read differs: %x vs %x", first, second)
	}
	if r.Pos() != after {
		t.Errorf("position after re-read got:%d want:%d", r.Pos(), after)
	}
}

func TestRegionSetPosOutOfRange(t *testing.T) {
	r := NewRegion(make([]byte, 2))
	for _, pos := range []int64{-1, 17} {
		if err := r.SetPos(pos); err == nil {
			t.Errorf("SetPos(%d) succeeded, expected error", pos)
		}
	}
	if r.Pos() != 0 {
		t.Errorf("failed SetPos moved the cursor to %d", r.Pos())
	}
}

func TestRegionReaderInterface(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	r := NewRegion(buf)

	got := make([]byte, 5)
	if _, err := io.ReadFull(r, got); err != nil {
		t.Fatalf("ReadFull error: %v", err)
	}
	if !bytes.Equal(got, buf) {
		t.Errorf("ReadFull got:%x want:%x", got, buf)
	}
	if _, err := io.ReadFull(r, got[:1]); err != io.EOF {
		t.Errorf("ReadFull at end got:%v want:%v", err, io.EOF)
	}
}
