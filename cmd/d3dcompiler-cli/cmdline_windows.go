// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"golang.org/x/sys/windows"
)

// commandLine returns the process command line as the shell passed it.
func commandLine() string {
	return windows.UTF16PtrToString(windows.GetCommandLine())
}
