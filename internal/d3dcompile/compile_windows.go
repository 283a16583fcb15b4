// SPDX-License-Identifier: Unlicense OR MIT

package d3dcompile

import (
	"runtime"
	"syscall"
	"unsafe"

	gunsafe "gioui.org/d3dcompiler/internal/unsafe"

	"golang.org/x/sys/windows"
)

type dllLoader struct{}

type dllModule struct {
	dll *windows.DLL
}

type procCompiler struct {
	proc *windows.Proc
}

type _IUnknownVTbl struct {
	QueryInterface uintptr
	AddRef         uintptr
	Release        uintptr
}

type _ID3DBlob struct {
	vtbl *struct {
		_IUnknownVTbl
		GetBufferPointer uintptr
		GetBufferSize    uintptr
	}
}

type blob struct {
	obj *_ID3DBlob
}

func (dllLoader) Load(name string) (Module, error) {
	// LoadDLL uses the regular search order, so a compiler
	// shipped next to the executable is found.
	dll, err := windows.LoadDLL(name)
	if err != nil {
		return nil, err
	}
	return &dllModule{dll: dll}, nil
}

func (m *dllModule) Compiler(symbol string) (Compiler, error) {
	p, err := m.dll.FindProc(symbol)
	if err != nil {
		return nil, err
	}
	return procCompiler{proc: p}, nil
}

func (m *dllModule) Release() {
	if m.dll != nil {
		m.dll.Release()
		m.dll = nil
	}
}

func (c procCompiler) Compile(p *Params) (code, diagnostics Blob, hr HRESULT) {
	var (
		codeBlob *_ID3DBlob
		errBlob  *_ID3DBlob
	)
	r, _, _ := c.proc.Call(
		gunsafe.BytePtr(p.Source),
		uintptr(len(p.Source)),
		gunsafe.BytePtr(p.SourceName),
		0, // pDefines
		uintptr(p.Include),
		gunsafe.BytePtr(p.EntryPoint),
		gunsafe.BytePtr(p.Target),
		uintptr(p.Flags1),
		uintptr(p.Flags2),
		uintptr(unsafe.Pointer(&codeBlob)),
		uintptr(unsafe.Pointer(&errBlob)),
	)
	runtime.KeepAlive(p)
	if codeBlob != nil {
		code = &blob{obj: codeBlob}
	}
	if errBlob != nil {
		diagnostics = &blob{obj: errBlob}
	}
	return code, diagnostics, HRESULT(uint32(r))
}

func (b *_ID3DBlob) GetBufferPointer() uintptr {
	ptr, _, _ := syscall.SyscallN(b.vtbl.GetBufferPointer, uintptr(unsafe.Pointer(b)))
	return ptr
}

func (b *_ID3DBlob) GetBufferSize() uintptr {
	sz, _, _ := syscall.SyscallN(b.vtbl.GetBufferSize, uintptr(unsafe.Pointer(b)))
	return sz
}

func (b *blob) Bytes() []byte {
	if b.obj == nil {
		return nil
	}
	return gunsafe.SliceOf(b.obj.GetBufferPointer(), int(b.obj.GetBufferSize()))
}

func (b *blob) Release() {
	if b.obj == nil {
		return
	}
	_IUnknownRelease(unsafe.Pointer(b.obj), b.obj.vtbl.Release)
	b.obj = nil
}

func _IUnknownRelease(obj unsafe.Pointer, releaseMethod uintptr) {
	syscall.SyscallN(releaseMethod, uintptr(obj))
}

func (hr HRESULT) message() string {
	return windows.Errno(hr).Error()
}
