// SPDX-License-Identifier: Unlicense OR MIT

package textenc

import (
	syscall "golang.org/x/sys/windows"
)

var (
	kernel32           = syscall.NewLazySystemDLL("kernel32")
	setConsoleCP       = kernel32.NewProc("SetConsoleCP")
	setConsoleOutputCP = kernel32.NewProc("SetConsoleOutputCP")
)

// ActiveCodePage returns the process's ANSI code page.
func ActiveCodePage() uint32 {
	return syscall.GetACP()
}

func setConsoleCodePages(cp uint32) {
	// Both calls fail harmlessly when no console is attached.
	setConsoleOutputCP.Call(uintptr(cp))
	setConsoleCP.Call(uintptr(cp))
}
