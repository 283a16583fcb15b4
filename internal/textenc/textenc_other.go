// SPDX-License-Identifier: Unlicense OR MIT

//go:build !windows
// +build !windows

package textenc

// ActiveCodePage returns UTF-8; only Windows has an ANSI code page.
func ActiveCodePage() uint32 {
	return CodePageUTF8
}

func setConsoleCodePages(cp uint32) {}
