// SPDX-License-Identifier: Unlicense OR MIT

// Package d3dtest provides in-memory compiler libraries for tests.
package d3dtest

import (
	"errors"
	"fmt"

	"gioui.org/d3dcompiler/internal/d3dcompile"
)

// Blob is an in-memory d3dcompile.Blob that counts releases.
type Blob struct {
	Data     []byte
	Releases int
}

func (b *Blob) Bytes() []byte {
	if b.Releases > 0 {
		panic("d3dtest: blob read after release")
	}
	return b.Data
}

func (b *Blob) Release() {
	b.Releases++
}

// Compiler records the last compile call and returns canned results.
type Compiler struct {
	Code        *Blob
	Diagnostics *Blob
	HR          d3dcompile.HRESULT

	Calls int
	Last  d3dcompile.Params
}

func (c *Compiler) Compile(p *d3dcompile.Params) (code, diagnostics d3dcompile.Blob, hr d3dcompile.HRESULT) {
	c.Calls++
	c.Last = *p
	c.Last.Source = append([]byte(nil), p.Source...)
	if c.Code != nil {
		code = c.Code
	}
	if c.Diagnostics != nil {
		diagnostics = c.Diagnostics
	}
	return code, diagnostics, c.HR
}

// Module is a loaded fake library.
type Module struct {
	// Exports maps symbol names to entry points.
	Exports  map[string]d3dcompile.Compiler
	Releases int
}

func (m *Module) Compiler(symbol string) (d3dcompile.Compiler, error) {
	c, ok := m.Exports[symbol]
	if !ok {
		return nil, fmt.Errorf("d3dtest: procedure %s not found", symbol)
	}
	return c, nil
}

func (m *Module) Release() {
	m.Releases++
}

// ErrNotFound is returned for libraries missing from a Loader.
var ErrNotFound = errors.New("The specified module could not be found.")

// Loader loads libraries from a fixed set and records every attempt.
type Loader struct {
	Modules  map[string]*Module
	Attempts []string
}

// NewLoader returns a Loader where each named library exports c.
func NewLoader(c d3dcompile.Compiler, names ...string) *Loader {
	l := &Loader{Modules: make(map[string]*Module)}
	for _, n := range names {
		l.Modules[n] = &Module{Exports: map[string]d3dcompile.Compiler{d3dcompile.Symbol: c}}
	}
	return l
}

func (l *Loader) Load(name string) (d3dcompile.Module, error) {
	l.Attempts = append(l.Attempts, name)
	m, ok := l.Modules[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return m, nil
}
