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

// Package pdfimage 将页面描述文档中的内嵌光栅图像导出为独立文件的纯 Go 实现
package pdfimage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// ImageResource 文档层提供的单个图像资源
type ImageResource struct {
	Name             string
	Width            uint32
	Height           uint32
	BitsPerComponent uint32
	Filters          []Filter
	Data             []byte
}

// ImageWriter 图像导出器
type ImageWriter struct {
	outdir  string
	backend ImagingBackend
}

// NewImageWriter 创建图像导出器, 使用默认的 PNG 后端
// 入参: outdir 输出目录, 不存在时自动创建
// 返回: *ImageWriter 导出器, error 错误信息
func NewImageWriter(outdir string) (*ImageWriter, error) {
	return NewImageWriterBackend(outdir, PNGBackend{})
}

// NewImageWriterBackend 创建使用指定图像编码后端的导出器
// 入参: outdir 输出目录, backend 图像编码后端
// 返回: *ImageWriter 导出器, error 错误信息
func NewImageWriterBackend(outdir string, backend ImagingBackend) (*ImageWriter, error) {
	if err := os.MkdirAll(outdir, 0o755); err != nil {
		return nil, err
	}
	return &ImageWriter{outdir: outdir, backend: backend}, nil
}

// Export 导出单个图像资源, 每次调用恰好写出一个文件
// 入参: res 图像资源
// 返回: string 最终文件名, error 错误信息
func (w *ImageWriter) Export(res *ImageResource) (string, error) {
	switch Classify(res.Filters) {
	case StrategyJPEG:
		return w.saveJPEG(res)
	case StrategyJPEG2000:
		return w.saveJPEG2000(res)
	case StrategyJBIG2:
		return w.saveJBIG2(res)
	default:
		return w.saveRaster(res)
	}
}

// saveJPEG 直通保存 JPEG 编码数据
// 入参: res 图像资源
// 返回: string 最终文件名, error 错误信息
func (w *ImageWriter) saveJPEG(res *ImageResource) (string, error) {
	name, path := w.uniqueName(res.Name, ".jpg")
	if err := w.writeFile(path, res.Data); err != nil {
		return "", err
	}
	return name, nil
}

// saveJPEG2000 通过外部编码能力重新包装 JPEG2000 码流
// 入参: res 图像资源
// 返回: string 最终文件名, error 错误信息
func (w *ImageWriter) saveJPEG2000(res *ImageResource) (string, error) {
	if w.backend == nil {
		return "", ErrMissingImagingCapability
	}
	var buf bytes.Buffer
	if err := w.backend.EncodeJPEG2000(&buf, res.Data); err != nil {
		return "", err
	}
	name, path := w.uniqueName(res.Name, ".jp2")
	if err := w.writeFile(path, buf.Bytes()); err != nil {
		return "", err
	}
	return name, nil
}

// saveJBIG2 将分段容器重新封装为独立的 JBIG2 文件
// 入参: res 图像资源
// 返回: string 最终文件名, error 错误信息
func (w *ImageWriter) saveJBIG2(res *ImageResource) (string, error) {
	globals, err := jbig2Globals(res.Filters)
	if err != nil {
		return "", err
	}
	reader := NewSegmentReader(res.Data, globals)
	segments, err := reader.ReadSegments()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := NewSegmentWriter(&buf).WriteFile(segments); err != nil {
		return "", err
	}
	name, path := w.uniqueName(res.Name, ".jb2")
	if err := w.writeFile(path, buf.Bytes()); err != nil {
		return "", err
	}
	return name, nil
}

// saveRaster 从原始字节重建位图并交给外部编码能力写出
// 入参: res 图像资源
// 返回: string 最终文件名, error 错误信息
func (w *ImageWriter) saveRaster(res *ImageResource) (string, error) {
	if w.backend == nil {
		return "", ErrMissingImagingCapability
	}
	img, err := reconstructRaster(res.Width, res.Height, res.BitsPerComponent, res.Data)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := w.backend.EncodeRaster(&buf, img); err != nil {
		return "", err
	}
	name, path := w.uniqueName(res.Name, w.backend.RasterExt())
	if err := w.writeFile(path, buf.Bytes()); err != nil {
		return "", err
	}
	return name, nil
}

// uniqueName 在输出目录内分配不冲突的文件名
// 入参: base 基础名, ext 扩展名
// 返回: string 文件名, string 完整路径
func (w *ImageWriter) uniqueName(base, ext string) (string, string) {
	name := base + ext
	path := filepath.Join(w.outdir, name)
	for idx := 0; ; idx++ {
		if _, err := os.Stat(path); err != nil {
			return name, path
		}
		name = fmt.Sprintf("%s.%d%s", base, idx, ext)
		path = filepath.Join(w.outdir, name)
	}
}

// writeFile 一次性写出文件, 失败时删除残留
// 入参: path 完整路径, data 文件内容
// 返回: error 错误信息
func (w *ImageWriter) writeFile(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}
