// SPDX-License-Identifier: Unlicense OR MIT

package header

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"gioui.org/d3dcompiler/internal/failure"
)

func render(t *testing.T, h *Header) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Write(&buf, h); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

// dataLines returns the lines between the array declaration and its
// closing brace.
func dataLines(t *testing.T, out string) []string {
	t.Helper()
	lines := strings.Split(out, "\n")
	start, end := -1, -1
	for i, l := range lines {
		if strings.HasPrefix(l, "unsigned char ") {
			start = i + 1
		}
		if l == "};" {
			end = i
		}
	}
	if start < 0 || end < start {
		t.Fatalf("no array in output:\n%s", out)
	}
	var data []string
	for _, l := range lines[start:end] {
		if l != "" {
			data = append(data, l)
		}
	}
	return data
}

// decode reassembles the array values of out.
func decode(t *testing.T, out string) []byte {
	t.Helper()
	var data []byte
	for _, l := range dataLines(t, out) {
		for _, v := range strings.Split(strings.TrimSuffix(strings.TrimSpace(l), ","), ", ") {
			if len(v) != 4 || !strings.HasPrefix(v, "0x") || strings.ToUpper(v[2:]) != v[2:] {
				t.Fatalf("malformed literal %q", v)
			}
			b, err := strconv.ParseUint(v[2:], 16, 8)
			if err != nil {
				t.Fatal(err)
			}
			data = append(data, byte(b))
		}
	}
	return data
}

func TestTenBytesOnStdout(t *testing.T) {
	out := render(t, &Header{
		Library:     "d3dcompiler_47.dll",
		CommandLine: "d3dcompiler-cli -tps_4.0 -emain shader.hlsl",
		Name:        "main",
		Data:        []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0A},
	})
	want := "/* Created automatically by d3dcompiler-cli using d3dcompiler_47.dll */\n" +
		"/* d3dcompiler-cli -tps_4.0 -emain shader.hlsl */\n" +
		"\n" +
		"unsigned char main[10] = {\n" +
		"    0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,\n" +
		"    0x09, 0x0A\n" +
		"};\n"
	if out != want {
		t.Errorf("got:\n%s\nwant:\n%s", out, want)
	}
}

func TestNamespacesAndPrefix(t *testing.T) {
	out := render(t, &Header{
		Library:    "d3dcompiler_47.dll",
		Namespaces: []string{"A", "B"},
		Name:       "MY_foo",
		Data:       []byte{0xFF},
	})
	body := out[strings.Index(out, "namespace"):]
	want := "namespace A { namespace B { unsigned char MY_foo[1] = { 0xFF }; } }"
	if got := strings.Join(strings.Fields(body), " "); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if strings.Index(out, "namespace A {") > strings.Index(out, "namespace B {") {
		t.Error("namespaces opened inner first")
	}
}

func TestBraceBalance(t *testing.T) {
	for _, ns := range [][]string{nil, {"A"}, {"A", "B"}, {"a", "b", "c", "d"}} {
		out := render(t, &Header{Namespaces: ns, Name: "x", Data: []byte{1, 2, 3}})
		opens := strings.Count(out, "{")
		closes := strings.Count(out, "}")
		if opens != closes {
			t.Errorf("%q: %d opening and %d closing braces", ns, opens, closes)
		}
		if got := strings.Count(out, "namespace "); got != len(ns) {
			t.Errorf("%q: %d namespace declarations", ns, got)
		}
		if got := opens - 1; got != len(ns) {
			t.Errorf("%q: %d namespace braces", ns, got)
		}
	}
}

func TestLineCountAndRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for _, n := range []int{1, 7, 8, 9, 15, 16, 17, 64, 1000} {
		data := make([]byte, n)
		r.Read(data)
		out := render(t, &Header{Name: "blob", Data: data})
		if got, want := len(dataLines(t, out)), (n+7)/8; got != want {
			t.Errorf("n=%d: %d data lines, want %d", n, got, want)
		}
		if got := decode(t, out); !bytes.Equal(got, data) {
			t.Errorf("n=%d: round trip mismatch", n)
		}
		if !strings.Contains(out, "unsigned char blob["+strconv.Itoa(n)+"] = {") {
			t.Errorf("n=%d: array not sized to the data", n)
		}
	}
}

func TestEmptyArtifact(t *testing.T) {
	out := render(t, &Header{Name: "main"})
	if !strings.HasSuffix(out, "unsigned char main[0] = {\n\n};\n") {
		t.Errorf("got:\n%s", out)
	}
	if lines := dataLines(t, out); len(lines) != 0 {
		t.Errorf("data lines %q", lines)
	}
}

func TestCommentTerminatorInCommandLine(t *testing.T) {
	out := render(t, &Header{CommandLine: "d3dcompiler-cli -p*/ a.hlsl", Name: "x"})
	first := strings.SplitN(out, "\n", 3)[1]
	if strings.Count(first, "*/") != 1 || !strings.HasSuffix(first, "*/") {
		t.Errorf("comment broken: %q", first)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shader.h")
	if err := os.WriteFile(path, []byte("stale contents that are longer than the header"), 0644); err != nil {
		t.Fatal(err)
	}
	h := &Header{Library: "d3dcompiler_47.dll", Name: "main", Data: []byte{0xAB}}
	if err := WriteFile(path, h); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := render(t, h); string(got) != want {
		t.Errorf("file contents:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteFileUnopenable(t *testing.T) {
	err := WriteFile(t.TempDir(), &Header{Name: "main"})
	if !failure.Is(err, failure.IOError) {
		t.Fatalf("got %v, want an IOError", err)
	}
	if !strings.HasPrefix(err.Error(), "Could not open file") {
		t.Errorf("error %q", err)
	}
}
