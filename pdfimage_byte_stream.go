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

import "errors"

// ByteStream 字节流
type ByteStream struct {
	data    []byte
	byteIdx uint32
}

// NewByteStream 创建字节流
// 入参: data 数据源
// 返回: *ByteStream 字节流对象
func NewByteStream(data []byte) *ByteStream {
	if len(data) > 256*1024*1024 {
		data = nil
	}
	return &ByteStream{data: data}
}

// Read1Byte 读取1字节
// 返回: uint8 结果, error 错误信息
func (b *ByteStream) Read1Byte() (uint8, error) {
	if !b.IsInBounds() {
		return 0, errors.New("out of bounds")
	}
	result := b.data[b.byteIdx]
	b.byteIdx++
	return result, nil
}

// ReadInteger 读取4字节大端序整数
// 返回: uint32 结果, error 错误信息
func (b *ByteStream) ReadInteger() (uint32, error) {
	if uint64(b.byteIdx)+3 >= uint64(len(b.data)) {
		return 0, errors.New("insufficient data")
	}
	result := (uint32(b.data[b.byteIdx]) << 24) | (uint32(b.data[b.byteIdx+1]) << 16) | (uint32(b.data[b.byteIdx+2]) << 8) | uint32(b.data[b.byteIdx+3])
	b.byteIdx += 4
	return result, nil
}

// ReadShortInteger 读取2字节大端序整数
// 返回: uint16 结果, error 错误信息
func (b *ByteStream) ReadShortInteger() (uint16, error) {
	if uint64(b.byteIdx)+1 >= uint64(len(b.data)) {
		return 0, errors.New("insufficient data")
	}
	result := (uint16(b.data[b.byteIdx]) << 8) | uint16(b.data[b.byteIdx+1])
	b.byteIdx += 2
	return result, nil
}

// ReadBytes 读取指定数量的字节
// 入参: n 字节数
// 返回: []byte 数据切片, error 错误信息
func (b *ByteStream) ReadBytes(n uint32) ([]byte, error) {
	if uint64(b.byteIdx)+uint64(n) > uint64(len(b.data)) {
		return nil, errors.New("insufficient data")
	}
	result := b.data[b.byteIdx : b.byteIdx+n]
	b.byteIdx += n
	return result, nil
}

// GetCurByte 获取当前字节
// 返回: uint8 当前字节
func (b *ByteStream) GetCurByte() uint8 {
	if b.IsInBounds() {
		return b.data[b.byteIdx]
	}
	return 0
}

// GetOffset 获取当前偏移量
// 返回: uint32 偏移量
func (b *ByteStream) GetOffset() uint32 {
	return b.byteIdx
}

// AddOffset 增加偏移量
// 入参: delta 增量
func (b *ByteStream) AddOffset(delta uint32) {
	newOffset := uint64(b.byteIdx) + uint64(delta)
	if newOffset <= uint64(len(b.data)) {
		b.byteIdx = uint32(newOffset)
	} else {
		b.byteIdx = uint32(len(b.data))
	}
}

// GetByteLeft 获取剩余字节数
// 返回: uint32 剩余字节数
func (b *ByteStream) GetByteLeft() uint32 {
	if b.byteIdx >= uint32(len(b.data)) {
		return 0
	}
	return uint32(len(b.data)) - b.byteIdx
}

// GetLength 获取总字节数
// 返回: uint32 总字节数
func (b *ByteStream) GetLength() uint32 {
	return uint32(len(b.data))
}

// IsInBounds 检查是否在边界内
// 返回: bool 是否在边界内
func (b *ByteStream) IsInBounds() bool {
	return b.byteIdx < uint32(len(b.data))
}
