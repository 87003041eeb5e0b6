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

import "image"

// inferPixelFormat 根据几何信息与字节长度推断像素格式
// 入参: width 宽度, height 高度, bits 每通道位数, size 字节长度
// 返回: PixelFormat 像素格式, error 错误信息
func inferPixelFormat(width, height, bits uint32, size int) (PixelFormat, error) {
	if width == 0 || height == 0 {
		return 0, ErrUnsupportedPixelFormat
	}
	switch bits {
	case 1:
		// 二值行按字节对齐, 行尾不足8像素的位填充无效
		stride := uint64(width+7) / 8
		if uint64(size) < stride*uint64(height) {
			return 0, ErrUnsupportedPixelFormat
		}
		return PixelBilevel, nil
	case 8:
		pixels := uint64(width) * uint64(height)
		if uint64(size)%pixels != 0 {
			return 0, ErrUnsupportedPixelFormat
		}
		switch uint64(size) / pixels {
		case 1:
			return PixelGrayscale, nil
		case 3:
			return PixelRGB, nil
		case 4:
			return PixelCMYK, nil
		}
	}
	return 0, ErrUnsupportedPixelFormat
}

// reconstructRaster 从原始字节重建图像
// 入参: width 宽度, height 高度, bits 每通道位数, data 原始字节
// 返回: image.Image 图像, error 错误信息
func reconstructRaster(width, height, bits uint32, data []byte) (image.Image, error) {
	format, err := inferPixelFormat(width, height, bits, len(data))
	if err != nil {
		return nil, err
	}
	rect := image.Rect(0, 0, int(width), int(height))
	switch format {
	case PixelBilevel:
		img := image.NewGray(rect)
		stride := (int(width) + 7) / 8
		for y := 0; y < int(height); y++ {
			row := data[y*stride:]
			for x := 0; x < int(width); x++ {
				if (row[x>>3]>>(7-(x&7)))&1 != 0 {
					img.Pix[y*img.Stride+x] = 0xFF
				}
			}
		}
		return img, nil
	case PixelGrayscale:
		img := image.NewGray(rect)
		copy(img.Pix, data)
		return img, nil
	case PixelRGB:
		img := image.NewNRGBA(rect)
		for i := 0; i < int(width)*int(height); i++ {
			img.Pix[i*4+0] = data[i*3+0]
			img.Pix[i*4+1] = data[i*3+1]
			img.Pix[i*4+2] = data[i*3+2]
			img.Pix[i*4+3] = 0xFF
		}
		return img, nil
	case PixelCMYK:
		img := image.NewCMYK(rect)
		copy(img.Pix, data)
		return img, nil
	}
	return nil, ErrUnsupportedPixelFormat
}
