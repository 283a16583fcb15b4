// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"gioui.org/d3dcompiler/internal/d3dcompile"
	"gioui.org/d3dcompiler/internal/failure"
	"gioui.org/d3dcompiler/internal/header"
	"gioui.org/d3dcompiler/internal/invoke"
	"gioui.org/d3dcompiler/internal/request"
	"gioui.org/d3dcompiler/internal/textenc"
)

// compile runs the pipeline for a validated request: load the
// compiler, compile, emit the header and the diagnostics.
func (t *tool) compile(req *request.Request) error {
	lib, err := d3dcompile.Resolve(t.loader, req.VersionHint)
	if err != nil {
		return err
	}
	defer lib.Release()
	text, err := textenc.Local()
	if err != nil {
		return err
	}
	inv := &invoke.Invoker{
		Compiler: lib,
		Text:     text,
		Info:     t.infoLog,
		Error:    t.errLog,
	}
	out, err := inv.Run(req)
	if err != nil {
		return err
	}
	defer out.Release()
	// The compiler may return bytecode alongside a failure status.
	if out.Code != nil {
		h := &header.Header{
			Library:     lib.Name,
			CommandLine: t.commandLine,
			Namespaces:  req.Namespaces(),
			Name:        req.Prefix + req.EntryPoint,
			Data:        out.Code.Bytes(),
		}
		if err := t.emit(req.HeaderFile, h); err != nil {
			return err
		}
	}
	if out.Diagnostics != nil {
		t.diagnostics(out.Diagnostics.Bytes())
	}
	return nil
}

func (t *tool) emit(path string, h *header.Header) error {
	if path != "" {
		return header.WriteFile(path, h)
	}
	if err := header.Write(t.stdout, h); err != nil {
		return failure.Wrap(failure.IOError, err, "Could not write to standard output")
	}
	return nil
}

// diagnostics writes compiler messages verbatim. They are encoded in
// the ANSI code page, so the console is switched to it first and left
// that way.
func (t *tool) diagnostics(msgs []byte) {
	textenc.UseANSIConsole()
	t.stderr.Write(msgs)
}
