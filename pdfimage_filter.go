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

// Filter 过滤器链条目
type Filter struct {
	Kind    FilterKind
	Globals []byte
}

// Classify 根据过滤器链选择导出策略
// 入参: chain 过滤器链, 最外层过滤器在末尾
// 返回: Strategy 导出策略
func Classify(chain []Filter) Strategy {
	if len(chain) == 0 {
		return StrategyRawBitmap
	}
	// DCT 与 JPX 是终端编码, 只看最后一个过滤器;
	// JBIG2 可能被外层通用过滤器包裹, 需要扫描整条链
	switch chain[len(chain)-1].Kind {
	case FilterDCT:
		return StrategyJPEG
	case FilterJPX:
		return StrategyJPEG2000
	}
	for _, f := range chain {
		if f.Kind == FilterJBIG2 {
			return StrategyJBIG2
		}
	}
	return StrategyRawBitmap
}

// jbig2Globals 收集过滤器链中的 JBIG2 全局段数据
// 入参: chain 过滤器链
// 返回: []byte 全局段数据, error 错误信息
func jbig2Globals(chain []Filter) ([]byte, error) {
	var globals []byte
	found := false
	for _, f := range chain {
		if f.Kind != FilterJBIG2 || f.Globals == nil {
			continue
		}
		if found {
			return nil, ErrInvalidGlobalsMultiplicity
		}
		globals = f.Globals
		found = true
	}
	return globals, nil
}
