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
	"io"
)

// fileHeaderID 独立 JBIG2 文件的8字节标识
var fileHeaderID = []byte{0x97, 0x4A, 0x42, 0x32, 0x0D, 0x0A, 0x1A, 0x0A}

const (
	// fileHeaderFlags 顺序组织且页数未知, 兼容性最好的独立文件配置
	fileHeaderFlags = 0x03
	// segDataLengthUnknown 未知段数据长度哨兵值
	segDataLengthUnknown = 0xFFFFFFFF
)

// SegmentFlags 段标志位
type SegmentFlags struct {
	Type                uint8
	PageAssociationSize bool
	DeferredNonRetain   bool
}

// Segment 段结构
type Segment struct {
	Number                   uint32
	Flags                    SegmentFlags
	RetentionFlags           []byte
	ReferredToSegmentNumbers []uint32
	PageAssociation          uint32
	Data                     []byte
}

// referredNumberSize 参考段编号的字段宽度
// 入参: number 当前段编号
// 返回: uint32 字节数
func referredNumberSize(number uint32) uint32 {
	if number > 65536 {
		return 4
	} else if number > 256 {
		return 2
	}
	return 1
}

// SegmentReader 段读取器
type SegmentReader struct {
	stream *ByteStream
}

// NewSegmentReader 创建段读取器
// 入参: data 图像段数据, globals 全局段数据
// 返回: *SegmentReader 段读取器
func NewSegmentReader(data []byte, globals []byte) *SegmentReader {
	input := data
	if len(globals) > 0 {
		// 只去掉全局段流末尾的换行字节, 然后与图像段流拼接
		stripped := bytes.TrimRight(globals, "\n")
		input = make([]byte, 0, len(stripped)+len(data))
		input = append(input, stripped...)
		input = append(input, data...)
	}
	return &SegmentReader{stream: NewByteStream(input)}
}

// ReadSegments 读取全部段
// 返回: []*Segment 段列表, error 错误信息
func (r *SegmentReader) ReadSegments() ([]*Segment, error) {
	var segments []*Segment
	for r.stream.GetByteLeft() > 0 {
		segment := &Segment{}
		dataLength, err := r.parseSegmentHeader(segment)
		if err != nil {
			return nil, err
		}
		data, err := r.stream.ReadBytes(dataLength)
		if err != nil {
			return nil, ErrMalformedSegmentHeader
		}
		segment.Data = data
		segments = append(segments, segment)
	}
	return segments, nil
}

// parseSegmentHeader 解析段头
// 入参: segment 段对象
// 返回: uint32 段数据长度, error 错误信息
func (r *SegmentReader) parseSegmentHeader(segment *Segment) (uint32, error) {
	if val, err := r.stream.ReadInteger(); err != nil {
		return 0, ErrMalformedSegmentHeader
	} else {
		segment.Number = val
	}
	var flags byte
	if val, err := r.stream.Read1Byte(); err != nil {
		return 0, ErrMalformedSegmentHeader
	} else {
		flags = val
	}
	segment.Flags.Type = flags & 0x3F
	segment.Flags.PageAssociationSize = (flags & 0x40) != 0
	segment.Flags.DeferredNonRetain = (flags & 0x80) != 0
	var count uint32
	cTemp := r.stream.GetCurByte()
	if (cTemp >> 5) == 7 {
		var field uint32
		if val, err := r.stream.ReadInteger(); err != nil {
			return 0, ErrMalformedSegmentHeader
		} else {
			field = val
		}
		count = field & 0x1FFFFFFF
		retentionBits := uint64(count) + 1
		maskBytes := uint32((retentionBits + 7) / 8)
		mask, err := r.stream.ReadBytes(maskBytes)
		if err != nil {
			return 0, ErrCorruptSegmentCount
		}
		segment.RetentionFlags = make([]byte, 0, 4+maskBytes)
		segment.RetentionFlags = append(segment.RetentionFlags,
			byte(field>>24), byte(field>>16), byte(field>>8), byte(field))
		segment.RetentionFlags = append(segment.RetentionFlags, mask...)
	} else {
		if val, err := r.stream.Read1Byte(); err != nil {
			return 0, ErrMalformedSegmentHeader
		} else {
			cTemp = val
		}
		count = uint32(cTemp >> 5)
		if count > 4 {
			return 0, ErrCorruptSegmentCount
		}
		segment.RetentionFlags = []byte{cTemp}
	}
	cSSize := referredNumberSize(segment.Number)
	if uint64(count)*uint64(cSSize) > uint64(r.stream.GetByteLeft()) {
		return 0, ErrMalformedSegmentHeader
	}
	if count > 0 {
		segment.ReferredToSegmentNumbers = make([]uint32, count)
		for i := uint32(0); i < count; i++ {
			switch cSSize {
			case 1:
				if val, err := r.stream.Read1Byte(); err != nil {
					return 0, ErrMalformedSegmentHeader
				} else {
					segment.ReferredToSegmentNumbers[i] = uint32(val)
				}
			case 2:
				if val, err := r.stream.ReadShortInteger(); err != nil {
					return 0, ErrMalformedSegmentHeader
				} else {
					segment.ReferredToSegmentNumbers[i] = uint32(val)
				}
			case 4:
				if val, err := r.stream.ReadInteger(); err != nil {
					return 0, ErrMalformedSegmentHeader
				} else {
					segment.ReferredToSegmentNumbers[i] = val
				}
			}
		}
	}
	if segment.Flags.PageAssociationSize {
		if val, err := r.stream.ReadInteger(); err != nil {
			return 0, ErrMalformedSegmentHeader
		} else {
			segment.PageAssociation = val
		}
	} else {
		if val, err := r.stream.Read1Byte(); err != nil {
			return 0, ErrMalformedSegmentHeader
		} else {
			segment.PageAssociation = uint32(val)
		}
	}
	var dataLength uint32
	if val, err := r.stream.ReadInteger(); err != nil {
		return 0, ErrMalformedSegmentHeader
	} else {
		dataLength = val
	}
	if dataLength == segDataLengthUnknown {
		return 0, ErrUnsupportedSegmentLength
	}
	if uint64(dataLength) > uint64(r.stream.GetByteLeft()) {
		return 0, ErrMalformedSegmentHeader
	}
	return dataLength, nil
}

// SegmentWriter 段写入器
type SegmentWriter struct {
	w io.Writer
}

// NewSegmentWriter 创建段写入器
// 入参: w 输出目标
// 返回: *SegmentWriter 段写入器
func NewSegmentWriter(w io.Writer) *SegmentWriter {
	return &SegmentWriter{w: w}
}

// WriteFile 写出独立的 JBIG2 文件
// 入参: segments 段列表
// 返回: error 错误信息
func (sw *SegmentWriter) WriteFile(segments []*Segment) error {
	if _, err := sw.w.Write(fileHeaderID); err != nil {
		return err
	}
	if _, err := sw.w.Write([]byte{fileHeaderFlags}); err != nil {
		return err
	}
	for _, segment := range segments {
		if err := sw.writeSegment(segment); err != nil {
			return err
		}
	}
	return nil
}

// writeSegment 按读取时的字段宽度原样重新序列化一个段
// 入参: segment 段对象
// 返回: error 错误信息
func (sw *SegmentWriter) writeSegment(segment *Segment) error {
	var buf bytes.Buffer
	put32(&buf, segment.Number)
	var flags byte
	flags = segment.Flags.Type & 0x3F
	if segment.Flags.PageAssociationSize {
		flags |= 0x40
	}
	if segment.Flags.DeferredNonRetain {
		flags |= 0x80
	}
	buf.WriteByte(flags)
	if len(segment.RetentionFlags) > 0 {
		buf.Write(segment.RetentionFlags)
	} else {
		// 手工构造的段没有保留标志原文, 合成一个保留位全零的计数字段
		count := uint32(len(segment.ReferredToSegmentNumbers))
		if count <= 4 {
			buf.WriteByte(byte(count << 5))
		} else {
			put32(&buf, 0xE0000000|count)
			maskBytes := (count + 1 + 7) / 8
			buf.Write(make([]byte, maskBytes))
		}
	}
	cSSize := referredNumberSize(segment.Number)
	for _, refNum := range segment.ReferredToSegmentNumbers {
		switch cSSize {
		case 1:
			buf.WriteByte(byte(refNum))
		case 2:
			buf.WriteByte(byte(refNum >> 8))
			buf.WriteByte(byte(refNum))
		case 4:
			put32(&buf, refNum)
		}
	}
	if segment.Flags.PageAssociationSize {
		put32(&buf, segment.PageAssociation)
	} else {
		buf.WriteByte(byte(segment.PageAssociation))
	}
	put32(&buf, uint32(len(segment.Data)))
	buf.Write(segment.Data)
	_, err := sw.w.Write(buf.Bytes())
	return err
}

// put32 写入4字节大端序整数
// 入参: buf 缓冲区, v 整数值
func put32(buf *bytes.Buffer, v uint32) {
	buf.WriteByte(byte(v >> 24))
	buf.WriteByte(byte(v >> 16))
	buf.WriteByte(byte(v >> 8))
	buf.WriteByte(byte(v))
}
