// SPDX-License-Identifier: Unlicense OR MIT

package d3dcompile

import (
	"fmt"
	"strconv"

	"gioui.org/d3dcompiler/internal/failure"
)

const (
	// Symbol is the exported name of the compile entry point.
	Symbol = "D3DCompile"

	// MaxVersion and MinVersion bound the version probe. Newer
	// compilers are preferred; 43 is the oldest compatible ABI.
	MaxVersion = 99
	MinVersion = 43
)

// Module is a loaded dynamic library.
type Module interface {
	// Compiler resolves the compile entry point exported as symbol.
	Compiler(symbol string) (Compiler, error)
	Release()
}

// Loader loads dynamic libraries by file name.
type Loader interface {
	Load(name string) (Module, error)
}

// SystemLoader loads libraries through the operating system.
var SystemLoader Loader = dllLoader{}

// Library is a loaded compiler library with its resolved entry point.
type Library struct {
	Compiler
	// Name is the file name the library was loaded from.
	Name string
	mod  Module
}

// Release unloads the library. It is safe to call more than once.
func (l *Library) Release() {
	if l.mod != nil {
		l.mod.Release()
		l.mod = nil
	}
}

// LibraryName returns the file name of compiler version v.
func LibraryName(v string) string {
	return "d3dcompiler_" + v + ".dll"
}

// Candidates returns the library names probed when no version is
// requested, newest first.
func Candidates() []string {
	names := make([]string, 0, MaxVersion-MinVersion+1)
	for v := MaxVersion; v >= MinVersion; v-- {
		names = append(names, LibraryName(strconv.Itoa(v)))
	}
	return names
}

// Resolve loads the compiler library and its entry point. A non-empty
// hint names the only version tried; otherwise the first loadable
// candidate wins.
func Resolve(l Loader, hint string) (*Library, error) {
	if hint != "" {
		name := LibraryName(hint)
		mod, err := l.Load(name)
		if err != nil {
			return nil, failure.Wrap(failure.LibraryLoadError, err, fmt.Sprintf("Couldn't load `%s'", name))
		}
		return bind(name, mod)
	}
	for _, name := range Candidates() {
		if mod, err := l.Load(name); err == nil {
			return bind(name, mod)
		}
	}
	return nil, failure.New(failure.LibraryLoadError, "No suitable d3dcompiler DLL has been found")
}

func bind(name string, mod Module) (*Library, error) {
	c, err := mod.Compiler(Symbol)
	if err != nil {
		mod.Release()
		return nil, failure.Wrap(failure.LibraryLoadError, err, fmt.Sprintf("No suitable d3dcompiler DLL has been found: `%s' lacks %s", name, Symbol))
	}
	return &Library{Compiler: c, Name: name, mod: mod}, nil
}
