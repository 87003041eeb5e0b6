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
	"image"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
)

// ImagingBackend 外部图像编码能力
type ImagingBackend interface {
	// EncodeRaster 将重建的光栅编码为无损交换格式
	EncodeRaster(w io.Writer, img image.Image) error
	// EncodeJPEG2000 重新编码 JPEG2000 码流
	EncodeJPEG2000(w io.Writer, data []byte) error
	// RasterExt 光栅输出文件的扩展名
	RasterExt() string
}

// PNGBackend 基于标准库的 PNG 编码后端
type PNGBackend struct{}

// EncodeRaster 编码为 PNG
// 入参: w 输出目标, img 图像
// 返回: error 错误信息
func (PNGBackend) EncodeRaster(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// EncodeJPEG2000 不支持, 没有可用的 JPEG2000 编码器
// 入参: w 输出目标, data 码流数据
// 返回: error 错误信息
func (PNGBackend) EncodeJPEG2000(w io.Writer, data []byte) error {
	return ErrMissingImagingCapability
}

// RasterExt 光栅输出扩展名
// 返回: string 扩展名
func (PNGBackend) RasterExt() string {
	return ".png"
}

// BMPBackend 基于 x/image 的 BMP 编码后端
type BMPBackend struct{}

// EncodeRaster 编码为 BMP
// 入参: w 输出目标, img 图像
// 返回: error 错误信息
func (BMPBackend) EncodeRaster(w io.Writer, img image.Image) error {
	return bmp.Encode(w, img)
}

// EncodeJPEG2000 不支持, 没有可用的 JPEG2000 编码器
// 入参: w 输出目标, data 码流数据
// 返回: error 错误信息
func (BMPBackend) EncodeJPEG2000(w io.Writer, data []byte) error {
	return ErrMissingImagingCapability
}

// RasterExt 光栅输出扩展名
// 返回: string 扩展名
func (BMPBackend) RasterExt() string {
	return ".bmp"
}
