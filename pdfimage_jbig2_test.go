// Copyright 2026 肖其顿 (XIAO QI DUN)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pdfimage

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func be32(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

// simpleSegment 短格式段: 计数0, 1字节页关联, 指定负载
func simpleSegment(number uint32, segType byte, page byte, payload []byte) []byte {
	var buf bytes.Buffer
	buf.Write(be32(number))
	buf.WriteByte(segType & 0x3F)
	buf.WriteByte(0x00)
	buf.WriteByte(page)
	buf.Write(be32(uint32(len(payload))))
	buf.Write(payload)
	return buf.Bytes()
}

func TestReadSegmentsShortForm(t *testing.T) {
	input := simpleSegment(1, 48, 1, []byte{0xAA, 0xBB, 0xCC, 0xDD})
	segments, err := NewSegmentReader(input, nil).ReadSegments()
	if err != nil {
		t.Fatalf("ReadSegments: %v", err)
	}
	want := []*Segment{{
		Number:          1,
		Flags:           SegmentFlags{Type: 48},
		RetentionFlags:  []byte{0x00},
		PageAssociation: 1,
		Data:            []byte{0xAA, 0xBB, 0xCC, 0xDD},
	}}
	if diff := cmp.Diff(want, segments); diff != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", diff)
	}
}

func TestReferredNumberWidth(t *testing.T) {
	// 段编号300时参考段编号按2字节解析
	var buf bytes.Buffer
	buf.Write(be32(300))
	buf.WriteByte(0x04)            // type 4
	buf.WriteByte(2 << 5)          // 短格式计数2
	buf.Write([]byte{0x00, 0x01})  // 参考段1
	buf.Write([]byte{0x01, 0x2B})  // 参考段299
	buf.WriteByte(0x01)            // 页关联
	buf.Write(be32(0))             // 数据长度0
	segments, err := NewSegmentReader(buf.Bytes(), nil).ReadSegments()
	if err != nil {
		t.Fatalf("ReadSegments: %v", err)
	}
	if len(segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(segments))
	}
	got := segments[0].ReferredToSegmentNumbers
	if diff := cmp.Diff([]uint32{1, 299}, got); diff != "" {
		t.Errorf("referred numbers mismatch (-want +got):\n%s", diff)
	}
}

func TestReferredNumberWidthBoundary(t *testing.T) {
	if got := referredNumberSize(256); got != 1 {
		t.Errorf("size(256) = %d, want 1", got)
	}
	if got := referredNumberSize(257); got != 2 {
		t.Errorf("size(257) = %d, want 2", got)
	}
	if got := referredNumberSize(65536); got != 2 {
		t.Errorf("size(65536) = %d, want 2", got)
	}
	if got := referredNumberSize(65537); got != 4 {
		t.Errorf("size(65537) = %d, want 4", got)
	}
}

func TestReadSegmentsLongForm(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(be32(9))
	buf.WriteByte(0x00)
	buf.Write(be32(0xE0000005))                         // 长格式计数5
	buf.WriteByte(0x00)                                 // 保留位掩码 ceil(6/8)=1 字节
	buf.Write([]byte{0x01, 0x02, 0x03, 0x04, 0x05})     // 5个1字节参考段编号
	buf.WriteByte(0x02)                                 // 页关联
	buf.Write(be32(2))                                  // 数据长度
	buf.Write([]byte{0xDE, 0xAD})
	input := buf.Bytes()
	segments, err := NewSegmentReader(input, nil).ReadSegments()
	if err != nil {
		t.Fatalf("ReadSegments: %v", err)
	}
	seg := segments[0]
	if diff := cmp.Diff([]uint32{1, 2, 3, 4, 5}, seg.ReferredToSegmentNumbers); diff != "" {
		t.Errorf("referred numbers mismatch (-want +got):\n%s", diff)
	}
	wantRetention := append(be32(0xE0000005), 0x00)
	if diff := cmp.Diff(wantRetention, seg.RetentionFlags); diff != "" {
		t.Errorf("retention flags mismatch (-want +got):\n%s", diff)
	}
	var out bytes.Buffer
	if err := NewSegmentWriter(&out).WriteFile(segments); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	want := append(append(append([]byte{}, fileHeaderID...), fileHeaderFlags), input...)
	if diff := cmp.Diff(want, out.Bytes()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTrip(t *testing.T) {
	seg1 := simpleSegment(1, 0, 1, []byte{0x01, 0x02, 0x03})
	seg2 := simpleSegment(2, 38, 1, bytes.Repeat([]byte{0x5A}, 16))
	var seg3 bytes.Buffer // 4字节页关联
	seg3.Write(be32(3))
	seg3.WriteByte(0x40 | 49)
	seg3.WriteByte(0x00)
	seg3.Write(be32(1))
	seg3.Write(be32(0))
	input := append(append(append([]byte{}, seg1...), seg2...), seg3.Bytes()...)
	segments, err := NewSegmentReader(input, nil).ReadSegments()
	if err != nil {
		t.Fatalf("ReadSegments: %v", err)
	}
	if len(segments) != 3 {
		t.Fatalf("got %d segments, want 3", len(segments))
	}
	if !segments[2].Flags.PageAssociationSize {
		t.Errorf("segment 3 should carry 4-byte page association")
	}
	var out bytes.Buffer
	if err := NewSegmentWriter(&out).WriteFile(segments); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	want := append(append(append([]byte{}, fileHeaderID...), fileHeaderFlags), input...)
	if diff := cmp.Diff(want, out.Bytes()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestGlobalsNewlineStrip(t *testing.T) {
	globalSeg := simpleSegment(1, 0, 0, []byte{0x10, 0x20})
	imageSeg := simpleSegment(2, 38, 1, []byte{0x30})
	globals := append(append([]byte{}, globalSeg...), '\n', '\n')
	segments, err := NewSegmentReader(imageSeg, globals).ReadSegments()
	if err != nil {
		t.Fatalf("ReadSegments: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(segments))
	}
	if segments[0].Number != 1 || segments[1].Number != 2 {
		t.Errorf("segment numbers = %d, %d, want 1, 2", segments[0].Number, segments[1].Number)
	}
	var out bytes.Buffer
	if err := NewSegmentWriter(&out).WriteFile(segments); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	want := append(append(append([]byte{}, fileHeaderID...), fileHeaderFlags), globalSeg...)
	want = append(want, imageSeg...)
	if diff := cmp.Diff(want, out.Bytes()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestUnsupportedSegmentLength(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(be32(1))
	buf.WriteByte(0x26)
	buf.WriteByte(0x00)
	buf.WriteByte(0x01)
	buf.Write(be32(0xFFFFFFFF))
	_, err := NewSegmentReader(buf.Bytes(), nil).ReadSegments()
	if !errors.Is(err, ErrUnsupportedSegmentLength) {
		t.Errorf("got %v, want ErrUnsupportedSegmentLength", err)
	}
}

func TestMalformedSegmentHeader(t *testing.T) {
	cases := map[string][]byte{
		"truncated header":  {0x00, 0x00, 0x00},
		"truncated payload": simpleSegment(1, 0, 1, []byte{0xAA, 0xBB})[:12],
	}
	long := simpleSegment(1, 0, 1, nil)
	long[10] = 0x10 // 声明16字节负载但没有数据
	cases["declared length overruns"] = long
	for name, input := range cases {
		if _, err := NewSegmentReader(input, nil).ReadSegments(); !errors.Is(err, ErrMalformedSegmentHeader) {
			t.Errorf("%s: got %v, want ErrMalformedSegmentHeader", name, err)
		}
	}
}

func TestCorruptSegmentCount(t *testing.T) {
	var short bytes.Buffer
	short.Write(be32(1))
	short.WriteByte(0x00)
	short.WriteByte(5 << 5) // 保留值5
	short.WriteByte(0x01)
	short.Write(be32(0))
	if _, err := NewSegmentReader(short.Bytes(), nil).ReadSegments(); !errors.Is(err, ErrCorruptSegmentCount) {
		t.Errorf("short form: got %v, want ErrCorruptSegmentCount", err)
	}
	var long bytes.Buffer
	long.Write(be32(1))
	long.WriteByte(0x00)
	long.Write(be32(0xE00000FF)) // 计数255需要32字节掩码, 缓冲区不足
	long.WriteByte(0x00)
	if _, err := NewSegmentReader(long.Bytes(), nil).ReadSegments(); !errors.Is(err, ErrCorruptSegmentCount) {
		t.Errorf("long form: got %v, want ErrCorruptSegmentCount", err)
	}
}

func TestWriteSyntheticSegment(t *testing.T) {
	// 手工构造的段没有保留标志原文, 写入器合成短格式计数字段
	segments := []*Segment{{
		Number:                   7,
		Flags:                    SegmentFlags{Type: 38},
		ReferredToSegmentNumbers: []uint32{1},
		PageAssociation:          1,
		Data:                     []byte{0xAB},
	}}
	var out bytes.Buffer
	if err := NewSegmentWriter(&out).WriteFile(segments); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	reread, err := NewSegmentReader(out.Bytes()[len(fileHeaderID)+1:], nil).ReadSegments()
	if err != nil {
		t.Fatalf("ReadSegments: %v", err)
	}
	if reread[0].Number != 7 || len(reread[0].ReferredToSegmentNumbers) != 1 {
		t.Errorf("synthetic segment did not survive re-read: %+v", reread[0])
	}
}
