// SPDX-License-Identifier: Unlicense OR MIT

// Package header renders compiled shader bytecode as a C/C++ byte
// array declaration.
package header

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"gioui.org/d3dcompiler/internal/failure"
)

// bytesPerLine is the number of array values per output line.
const bytesPerLine = 8

// Header describes a generated header.
type Header struct {
	// Library is the compiler library file name named in the banner.
	Library string
	// CommandLine is the invocation echoed in a comment.
	CommandLine string
	// Namespaces are opened outermost first.
	Namespaces []string
	// Name is the array identifier.
	Name string
	Data []byte
}

// Write renders h to w.
func Write(w io.Writer, h *Header) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "/* Created automatically by d3dcompiler-cli using %s */\n", comment(h.Library))
	fmt.Fprintf(bw, "/* %s */\n\n", comment(h.CommandLine))
	for _, ns := range h.Namespaces {
		fmt.Fprintf(bw, "namespace %s {\n", ns)
	}
	fmt.Fprintf(bw, "unsigned char %s[%d] = {\n", h.Name, len(h.Data))
	for i, b := range h.Data {
		switch {
		case i == 0:
			bw.WriteString("    ")
		case i%bytesPerLine == 0:
			bw.WriteString(",\n    ")
		default:
			bw.WriteString(", ")
		}
		fmt.Fprintf(bw, "0x%02X", b)
	}
	bw.WriteString("\n};\n")
	for range h.Namespaces {
		bw.WriteString("}\n")
	}
	return bw.Flush()
}

// WriteFile renders h to the file at path, replacing its contents.
func WriteFile(path string, h *Header) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return failure.Wrap(failure.IOError, err, fmt.Sprintf("Could not open file `%s'", path))
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = failure.Wrap(failure.IOError, cerr, fmt.Sprintf("Could not close file `%s'", path))
		}
	}()
	if err := Write(f, h); err != nil {
		return failure.Wrap(failure.IOError, err, fmt.Sprintf("Could not write file `%s'", path))
	}
	return nil
}

// comment defuses comment terminators in s.
func comment(s string) string {
	return strings.ReplaceAll(s, "*/", "* /")
}
