// SPDX-License-Identifier: Unlicense OR MIT

// Package frontend translates WGSL shaders to HLSL before they are
// handed to the D3D compiler.
package frontend

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/hlsl"

	"gioui.org/d3dcompiler/internal/failure"
)

// IsWGSL reports whether the shader file holds WGSL source.
func IsWGSL(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".wgsl")
}

// Translation is HLSL generated from WGSL.
type Translation struct {
	Source []byte
	// EntryPoint is the HLSL name of the requested entry point.
	EntryPoint string
	Model      hlsl.ShaderModel
}

// TranslateWGSL converts the WGSL entry point of src to HLSL for the
// shader model implied by target.
func TranslateWGSL(src []byte, entryPoint, target string) (*Translation, error) {
	text := string(src)
	ast, err := naga.Parse(text)
	if err != nil {
		return nil, failure.Wrap(failure.CompilationError, err, "WGSL translation failed")
	}
	module, err := naga.LowerWithSource(ast, text)
	if err != nil {
		return nil, failure.Wrap(failure.CompilationError, err, "WGSL translation failed")
	}
	opts := hlsl.DefaultOptions()
	opts.ShaderModel = ShaderModel(target)
	opts.EntryPoint = entryPoint
	code, info, err := hlsl.Compile(module, opts)
	if err != nil {
		return nil, failure.Wrap(failure.CompilationError, err, "WGSL translation failed")
	}
	name := entryPoint
	if mapped, ok := info.EntryPointNames[entryPoint]; ok && mapped != "" {
		name = mapped
	}
	return &Translation{Source: []byte(code), EntryPoint: name, Model: opts.ShaderModel}, nil
}

// ShaderModel maps a target profile such as "ps_5_0" or "vs_6.2" to
// the closest shader model naga can emit.
func ShaderModel(target string) hlsl.ShaderModel {
	i := strings.IndexByte(target, '_')
	if i == -1 {
		return hlsl.ShaderModel5_0
	}
	parts := strings.FieldsFunc(target[i+1:], func(r rune) bool {
		return r == '_' || r == '.'
	})
	if len(parts) < 2 {
		return hlsl.ShaderModel5_0
	}
	major, err1 := strconv.Atoi(parts[0])
	minor, err2 := strconv.Atoi(parts[1])
	switch {
	case err1 != nil || err2 != nil, major < 5:
		return hlsl.ShaderModel5_0
	case major == 5 && minor == 0:
		return hlsl.ShaderModel5_0
	case major == 5:
		return hlsl.ShaderModel5_1
	case major == 6 && minor <= 7:
		return hlsl.ShaderModel6_0 + hlsl.ShaderModel(minor)
	default:
		return hlsl.ShaderModel6_7
	}
}
