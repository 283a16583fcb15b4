// SPDX-License-Identifier: Unlicense OR MIT

// Package textenc is the encoding boundary between the tool's UTF-8
// strings and the locale bound narrow strings of the compiler library.
//
// The compiler's narrow string ABI interprets bytes in the active ANSI
// code page, not UTF-8, so every string handed to it must pass through
// a Boundary. Compiler diagnostics come back in the same code page and
// are written raw, after switching the console to match.
package textenc

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// CodePageUTF8 is the Windows code page identifier of UTF-8.
const CodePageUTF8 = 65001

var errNUL = errors.New("string contains NUL byte")

var codePages = map[uint32]encoding.Encoding{
	437:   charmap.CodePage437,
	850:   charmap.CodePage850,
	852:   charmap.CodePage852,
	855:   charmap.CodePage855,
	858:   charmap.CodePage858,
	860:   charmap.CodePage860,
	862:   charmap.CodePage862,
	863:   charmap.CodePage863,
	865:   charmap.CodePage865,
	866:   charmap.CodePage866,
	874:   charmap.Windows874,
	932:   japanese.ShiftJIS,
	936:   simplifiedchinese.GBK,
	949:   korean.EUCKR,
	950:   traditionalchinese.Big5,
	1250:  charmap.Windows1250,
	1251:  charmap.Windows1251,
	1252:  charmap.Windows1252,
	1253:  charmap.Windows1253,
	1254:  charmap.Windows1254,
	1255:  charmap.Windows1255,
	1256:  charmap.Windows1256,
	1257:  charmap.Windows1257,
	1258:  charmap.Windows1258,
	10000: charmap.Macintosh,
	20866: charmap.KOI8R,
	21866: charmap.KOI8U,
	28591: charmap.ISO8859_1,
	28592: charmap.ISO8859_2,
	28595: charmap.ISO8859_5,
	28597: charmap.ISO8859_7,
	28605: charmap.ISO8859_15,
	54936: simplifiedchinese.GB18030,
	65001: unicode.UTF8,
}

// Boundary converts strings to and from one narrow code page.
type Boundary struct {
	codePage uint32
	enc      encoding.Encoding
}

// Local returns the Boundary for the process's active ANSI code page.
func Local() (*Boundary, error) {
	return ForCodePage(ActiveCodePage())
}

// ForCodePage returns the Boundary for the Windows code page cp.
func ForCodePage(cp uint32) (*Boundary, error) {
	enc, ok := codePages[cp]
	if !ok {
		return nil, fmt.Errorf("textenc: unsupported code page %d", cp)
	}
	return &Boundary{codePage: cp, enc: enc}, nil
}

// CodePage returns the code page identifier.
func (b *Boundary) CodePage() uint32 {
	return b.codePage
}

// CString encodes s into the code page and appends the terminating NUL.
// Characters the code page cannot represent are replaced, as
// WideCharToMultiByte does by default.
func (b *Boundary) CString(s string) ([]byte, error) {
	if strings.IndexByte(s, 0) != -1 {
		return nil, fmt.Errorf("textenc: %q: %w", s, errNUL)
	}
	narrow, err := encoding.ReplaceUnsupported(b.enc.NewEncoder()).String(s)
	if err != nil {
		return nil, fmt.Errorf("textenc: encoding %q for code page %d: %w", s, b.codePage, err)
	}
	return append([]byte(narrow), 0), nil
}

// Decode converts text in the code page to UTF-8.
func (b *Boundary) Decode(narrow []byte) (string, error) {
	s, err := b.enc.NewDecoder().Bytes(narrow)
	if err != nil {
		return "", fmt.Errorf("textenc: decoding code page %d: %w", b.codePage, err)
	}
	return string(s), nil
}

// UseUTF8Console switches the console input and output code pages to
// UTF-8, matching the tool's own output.
func UseUTF8Console() {
	setConsoleCodePages(CodePageUTF8)
}

// UseANSIConsole switches the console input and output code pages to
// the active ANSI code page so that raw compiler diagnostics render
// correctly. The previous code pages are not restored.
func UseANSIConsole() {
	setConsoleCodePages(ActiveCodePage())
}
