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

// FilterKind 过滤器种类
type FilterKind int

const (
	// FilterOther 其他过滤器
	FilterOther FilterKind = 0
	// FilterDCT DCT 系列过滤器
	FilterDCT FilterKind = 1
	// FilterJPX JPX 系列过滤器
	FilterJPX FilterKind = 2
	// FilterJBIG2 JBIG2 系列过滤器
	FilterJBIG2 FilterKind = 3
)

// Strategy 导出策略
type Strategy int

const (
	// StrategyRawBitmap 从原始字节重建位图
	StrategyRawBitmap Strategy = 0
	// StrategyJPEG JPEG 直通导出
	StrategyJPEG Strategy = 1
	// StrategyJPEG2000 JPEG2000 直通导出
	StrategyJPEG2000 Strategy = 2
	// StrategyJBIG2 JBIG2 容器转码导出
	StrategyJBIG2 Strategy = 3
)

// PixelFormat 像素格式
type PixelFormat int

const (
	// PixelBilevel 黑白二值
	PixelBilevel PixelFormat = 0
	// PixelGrayscale 8位灰度
	PixelGrayscale PixelFormat = 1
	// PixelRGB 24位彩色
	PixelRGB PixelFormat = 2
	// PixelCMYK 32位印刷色
	PixelCMYK PixelFormat = 3
)

var (
	// ErrInvalidGlobalsMultiplicity 同一图像关联了多个全局段流
	ErrInvalidGlobalsMultiplicity = errors.New("more than one jbig2 globals stream associated with one image")
	// ErrUnsupportedPixelFormat 位深与通道数组合无法映射
	ErrUnsupportedPixelFormat = errors.New("unsupported bit depth and channel combination")
	// ErrMalformedSegmentHeader 段头声明的长度或偏移越界
	ErrMalformedSegmentHeader = errors.New("malformed segment header")
	// ErrCorruptSegmentCount 参考段计数字段非法
	ErrCorruptSegmentCount = errors.New("corrupt referred segment count")
	// ErrUnsupportedSegmentLength 不支持未知段数据长度
	ErrUnsupportedSegmentLength = errors.New("unsupported unknown segment data length")
	// ErrMissingImagingCapability 缺少外部图像编码能力
	ErrMissingImagingCapability = errors.New("imaging capability not available")
)
