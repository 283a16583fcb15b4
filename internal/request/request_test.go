// SPDX-License-Identifier: Unlicense OR MIT

package request

import (
	"strings"
	"testing"

	"golang.org/x/exp/slices"

	"gioui.org/d3dcompiler/internal/d3dcompile"
	"gioui.org/d3dcompiler/internal/failure"
)

func TestParseAttachedValues(t *testing.T) {
	req, _, err := Parse([]string{"-tps_4.0", "-emain", "-v47", "-O3", "-hout.h", "-nA:B", "-pMY_", "shader.hlsl"})
	if err != nil {
		t.Fatal(err)
	}
	want := Request{
		Target:       "ps_4.0",
		EntryPoint:   "main",
		Optimization: '3',
		ShaderFile:   "shader.hlsl",
		HeaderFile:   "out.h",
		VersionHint:  "47",
		Namespace:    "A:B",
		Prefix:       "MY_",
	}
	if *req != want {
		t.Errorf("got %+v, want %+v", *req, want)
	}
}

func TestParseSeparateValues(t *testing.T) {
	req, _, err := Parse(strings.Fields("-nA:B -pMY_ -e foo -t vs_5.0 x.hlsl"))
	if err != nil {
		t.Fatal(err)
	}
	if req.EntryPoint != "foo" || req.Target != "vs_5.0" || req.ShaderFile != "x.hlsl" || req.Prefix != "MY_" {
		t.Errorf("got %+v", *req)
	}
	if got := req.Namespaces(); !slices.Equal(got, []string{"A", "B"}) {
		t.Errorf("namespaces %q", got)
	}
}

func TestParseDefaults(t *testing.T) {
	t.Setenv("D3DCOMPILER_VERSION", "")
	req, _, err := Parse([]string{"-tps_4.0", "-emain", "shader.hlsl"})
	if err != nil {
		t.Fatal(err)
	}
	if req.Optimization != '1' {
		t.Errorf("default optimization %q, want '1'", req.Optimization)
	}
	if req.HeaderFile != "" || req.VersionHint != "" || req.Namespace != "" || req.Prefix != "" {
		t.Errorf("unexpected defaults %+v", *req)
	}
	if ns := req.Namespaces(); len(ns) != 0 {
		t.Errorf("namespaces %q from empty chain", ns)
	}
}

func TestOptimizationLevels(t *testing.T) {
	want := map[string]d3dcompile.Flags{
		"0": d3dcompile.OptimizationLevel0,
		"1": d3dcompile.OptimizationLevel1,
		"2": d3dcompile.OptimizationLevel2,
		"3": d3dcompile.OptimizationLevel3,
	}
	seen := make(map[d3dcompile.Flags]bool)
	for _, flag := range []string{"-O", "-o"} {
		for lvl, flags := range want {
			req, _, err := Parse([]string{flag + lvl, "-tps_4.0", "-emain", "a.hlsl"})
			if err != nil {
				t.Fatalf("%s%s: %v", flag, lvl, err)
			}
			if got := req.Optimization.Flags(); got != flags {
				t.Errorf("%s%s: flags %#x, want %#x", flag, lvl, got, flags)
			}
			seen[req.Optimization.Flags()] = true
		}
	}
	if len(seen) != 4 {
		t.Errorf("%d distinct flag values, want 4", len(seen))
	}
}

func TestInvalidOptimizationLevels(t *testing.T) {
	for _, lvl := range []string{"4", "9", "a", "12", "-1", "", "01"} {
		_, _, err := Parse([]string{"-O=" + lvl, "-tps_4.0", "-emain", "a.hlsl"})
		if !failure.Is(err, failure.ArgumentError) {
			t.Errorf("-O%q: got %v, want an ArgumentError", lvl, err)
			continue
		}
		if !strings.Contains(err.Error(), "optimization level") {
			t.Errorf("-O%q: error %q", lvl, err)
		}
	}
}

func TestMissingArguments(t *testing.T) {
	tests := []struct {
		args []string
		msg  string
	}{
		{[]string{"-tps_4.0", "-emain"}, "HLSL shader file not given"},
		{[]string{"-tps_4.0", "a.hlsl"}, "Entry point not given"},
		{[]string{"-emain", "a.hlsl"}, "Target not given"},
		{[]string{"-t", "", "-emain", "a.hlsl"}, "Target not given"},
		{[]string{"-tps_4.0", "-emain", ""}, "HLSL shader file not given"},
		{nil, "No arguments given"},
	}
	msgs := make(map[string]bool)
	for _, test := range tests {
		_, _, err := Parse(test.args)
		if !failure.Is(err, failure.ArgumentError) {
			t.Errorf("%q: got %v, want an ArgumentError", test.args, err)
			continue
		}
		if err.Error() != test.msg {
			t.Errorf("%q: error %q, want %q", test.args, err, test.msg)
		}
		msgs[err.Error()] = true
	}
	if len(msgs) != 4 {
		t.Errorf("%d distinct messages, want 4", len(msgs))
	}
}

func TestUnknownOption(t *testing.T) {
	for _, args := range [][]string{
		{"-z", "-tps_4.0", "-emain", "a.hlsl"},
		{"-tps_4.0", "-emain", "-zfoo", "a.hlsl"},
		{"-tps_4.0", "-emain", "-", "a.hlsl"},
	} {
		_, _, err := Parse(args)
		if !failure.Is(err, failure.ArgumentError) {
			t.Errorf("%q: got %v, want an ArgumentError", args, err)
			continue
		}
		if !strings.HasPrefix(err.Error(), "Invalid option") {
			t.Errorf("%q: error %q", args, err)
		}
	}
	_, _, err := Parse([]string{"-z"})
	if !strings.Contains(err.Error(), "-z") {
		t.Errorf("error %q does not name the option", err)
	}
}

func TestLastWriteWins(t *testing.T) {
	req, f, err := Parse([]string{"-tps_4.0", "-tvs_5.0", "-emain", "-O0", "-o2", "a.hlsl", "b.hlsl"})
	if err != nil {
		t.Fatal(err)
	}
	if req.Target != "vs_5.0" || req.Optimization != '2' || req.ShaderFile != "b.hlsl" {
		t.Errorf("got %+v", *req)
	}
	if r := f.Repeated(); r != nil {
		t.Errorf("repeats reported without --warn-repeated: %q", r)
	}
}

func TestWarnRepeated(t *testing.T) {
	_, f, err := Parse([]string{"--warn-repeated", "-tps_4.0", "-tvs_5.0", "-emain", "-O0", "-o2", "a.hlsl", "b.hlsl"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"optimize", "shader file", "target"}
	if got := f.Repeated(); !slices.Equal(got, want) {
		t.Errorf("repeated %q, want %q", got, want)
	}
}

func TestVersionFromEnvironment(t *testing.T) {
	t.Setenv("D3DCOMPILER_VERSION", "46")
	req, _, err := Parse([]string{"-tps_4.0", "-emain", "a.hlsl"})
	if err != nil {
		t.Fatal(err)
	}
	if req.VersionHint != "46" {
		t.Errorf("version hint %q, want 46", req.VersionHint)
	}
	req, _, err = Parse([]string{"-v47", "-tps_4.0", "-emain", "a.hlsl"})
	if err != nil {
		t.Fatal(err)
	}
	if req.VersionHint != "47" {
		t.Errorf("version hint %q, want the flag's 47", req.VersionHint)
	}
}

func TestNamespacesSkipEmptySegments(t *testing.T) {
	for chain, want := range map[string][]string{
		"A::B":  {"A", "B"},
		":A:":   {"A"},
		":":     nil,
		"outer": {"outer"},
	} {
		r := &Request{Namespace: chain}
		if got := r.Namespaces(); !slices.Equal(got, want) {
			t.Errorf("Namespaces(%q) = %q, want %q", chain, got, want)
		}
	}
}
