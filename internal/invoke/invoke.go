// SPDX-License-Identifier: Unlicense OR MIT

// Package invoke runs a compile request through a loaded compiler
// library.
package invoke

import (
	"fmt"
	"log"

	"gioui.org/d3dcompiler/internal/d3dcompile"
	"gioui.org/d3dcompiler/internal/failure"
	"gioui.org/d3dcompiler/internal/frontend"
	"gioui.org/d3dcompiler/internal/request"
	"gioui.org/d3dcompiler/internal/textenc"
)

// Invoker compiles requests with one compiler.
type Invoker struct {
	Compiler d3dcompile.Compiler
	// Text encodes the strings passed to the compiler.
	Text *textenc.Boundary
	// Info and Error receive progress and failure notices.
	Info  *log.Logger
	Error *log.Logger
}

// Outcome holds what a compile call produced. Code and Diagnostics
// are nil when absent and must be released with Release.
type Outcome struct {
	Code        d3dcompile.Blob
	Diagnostics d3dcompile.Blob
	HR          d3dcompile.HRESULT
}

// Release releases the compiler owned buffers.
func (o *Outcome) Release() {
	if o.Code != nil {
		o.Code.Release()
	}
	if o.Diagnostics != nil {
		o.Diagnostics.Release()
	}
}

// Run reads the request's shader file and compiles it. A compiler
// failure is reported through Error but only returned as an error
// when the compiler produced neither bytecode nor diagnostics.
func (inv *Invoker) Run(req *request.Request) (*Outcome, error) {
	src, err := ReadSource(req.ShaderFile)
	if err != nil {
		return nil, err
	}
	entry := req.EntryPoint
	if frontend.IsWGSL(src.Name) {
		tr, err := frontend.TranslateWGSL(src.Data, req.EntryPoint, req.Target)
		if err != nil {
			return nil, err
		}
		src.Data = tr.Source
		entry = tr.EntryPoint
	}
	p := &d3dcompile.Params{
		Source:  src.Data,
		Include: d3dcompile.IncludesUnsupported,
		Flags1:  req.Optimization.Flags(),
	}
	if p.EntryPoint, err = inv.narrow(entry); err != nil {
		return nil, err
	}
	if p.Target, err = inv.narrow(req.Target); err != nil {
		return nil, err
	}
	if p.SourceName, err = inv.narrow(src.Name); err != nil {
		return nil, err
	}
	code, diags, hr := inv.Compiler.Compile(p)
	// Drop the source as soon as the compiler is done with it.
	p.Source = nil
	out := &Outcome{Code: code, Diagnostics: diags, HR: hr}
	if !hr.Failed() {
		inv.Info.Print("Compilation succeeded")
		return out, nil
	}
	inv.Error.Printf("Compilation failed with error message: %v", hr)
	if code == nil && diags == nil {
		return nil, failure.Wrap(failure.CompilationError, hr, "Compilation produced no output")
	}
	return out, nil
}

func (inv *Invoker) narrow(s string) ([]byte, error) {
	b, err := inv.Text.CString(s)
	if err != nil {
		return nil, failure.Wrap(failure.ArgumentError, err, fmt.Sprintf("Cannot pass %q to the compiler", s))
	}
	return b, nil
}
