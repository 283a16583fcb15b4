// SPDX-License-Identifier: Unlicense OR MIT

//go:build !windows
// +build !windows

package main

import (
	"os"
	"strconv"
	"strings"
)

// commandLine reconstructs the process command line from its arguments.
func commandLine() string {
	args := make([]string, len(os.Args))
	for i, a := range os.Args {
		if a == "" || strings.ContainsAny(a, " \t\n\"'\\") {
			a = strconv.Quote(a)
		}
		args[i] = a
	}
	return strings.Join(args, " ")
}
