// SPDX-License-Identifier: Unlicense OR MIT

// Package d3dcompile binds the D3DCompile entry point of a
// d3dcompiler_NN.dll loaded at runtime.
package d3dcompile

// Flags are the Flags1 bits of D3DCompile.
type Flags uint32

const (
	OptimizationLevel0 Flags = 1 << 14
	OptimizationLevel1 Flags = 0
	OptimizationLevel2 Flags = 1<<14 | 1<<15
	OptimizationLevel3 Flags = 1 << 15
)

// IncludePolicy is the pInclude argument of D3DCompile.
type IncludePolicy uintptr

// IncludesUnsupported passes no include handler: the compiler fails
// any #include directive in the source.
const IncludesUnsupported IncludePolicy = 0

// Params are the arguments of a compile call. The string fields are
// NUL-terminated and encoded in the active ANSI code page.
type Params struct {
	Source     []byte
	SourceName []byte
	EntryPoint []byte
	Target     []byte
	Include    IncludePolicy
	Flags1     Flags
	Flags2     uint32
}

// Blob is a buffer owned by the compiler library. The slice returned by
// Bytes is valid until Release. Release may be called more than once.
type Blob interface {
	Bytes() []byte
	Release()
}

// HRESULT is the status code returned by the compiler.
type HRESULT uint32

// Failed reports whether the severity bit is set.
func (hr HRESULT) Failed() bool {
	return int32(hr) < 0
}

func (hr HRESULT) Error() string {
	return hr.message()
}

// Compiler is a resolved D3DCompile entry point. Either returned blob
// may be nil, independently of the status.
type Compiler interface {
	Compile(p *Params) (code, diagnostics Blob, hr HRESULT)
}
