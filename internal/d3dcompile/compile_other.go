// SPDX-License-Identifier: Unlicense OR MIT

//go:build !windows
// +build !windows

package d3dcompile

import (
	"errors"
	"fmt"
)

var errNoDynamicLibraries = errors.New("loading the shader compiler requires windows")

type dllLoader struct{}

func (dllLoader) Load(name string) (Module, error) {
	return nil, fmt.Errorf("%s: %w", name, errNoDynamicLibraries)
}

var hresultMessages = map[HRESULT]string{
	0x80004001: "Not implemented",
	0x80004005: "Unspecified error",
	0x8007000E: "Not enough memory resources are available to complete this operation.",
	0x80070057: "The parameter is incorrect.",
}

func (hr HRESULT) message() string {
	if msg, ok := hresultMessages[hr]; ok {
		return msg
	}
	return fmt.Sprintf("HRESULT 0x%08X", uint32(hr))
}
