// SPDX-License-Identifier: Unlicense OR MIT

// Package request turns command line arguments into a validated
// compile request.
package request

import (
	"io"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"

	"gioui.org/d3dcompiler/internal/d3dcompile"
	"gioui.org/d3dcompiler/internal/failure"
)

// EnvPrefix prefixes the environment variables consulted for
// settings not given on the command line.
const EnvPrefix = "D3DCOMPILER"

// OptLevel is an optimization level character, '0' to '3'.
type OptLevel byte

// Flags returns the compiler flags selecting the level.
func (o OptLevel) Flags() d3dcompile.Flags {
	switch o {
	case '0':
		return d3dcompile.OptimizationLevel0
	case '2':
		return d3dcompile.OptimizationLevel2
	case '3':
		return d3dcompile.OptimizationLevel3
	default:
		return d3dcompile.OptimizationLevel1
	}
}

func (o OptLevel) String() string {
	return string(o)
}

func parseOptLevel(s string) (OptLevel, bool) {
	if len(s) != 1 || s[0] < '0' || s[0] > '3' {
		return 0, false
	}
	return OptLevel(s[0]), true
}

// Request is a validated compile request.
type Request struct {
	Target       string
	EntryPoint   string
	Optimization OptLevel
	ShaderFile   string
	// HeaderFile is empty for standard output.
	HeaderFile string
	// VersionHint is empty to probe for the newest compiler.
	VersionHint string
	// Namespace is a colon separated C++ namespace chain.
	Namespace string
	Prefix    string
}

// Flags are the compile flags registered on a flag set.
type Flags struct {
	fs     *pflag.FlagSet
	config *viper.Viper

	target       string
	entryPoint   string
	version      string
	optimize     string
	header       string
	namespace    string
	prefix       string
	warnRepeated bool

	counts map[string]int
}

// countedString is a string flag that counts how often it is set.
type countedString struct {
	p    *string
	name string
	n    map[string]int
}

func (s *countedString) Set(v string) error {
	*s.p = v
	s.n[s.name]++
	return nil
}

func (s *countedString) String() string {
	if s.p == nil {
		return ""
	}
	return *s.p
}

func (s *countedString) Type() string { return "string" }

// Register defines the compile flags on fs.
func Register(fs *pflag.FlagSet) *Flags {
	f := &Flags{
		fs:       fs,
		optimize: "1",
		counts:   make(map[string]int),
	}
	str := func(p *string, name, short, usage string) {
		fs.VarP(&countedString{p: p, name: name, n: f.counts}, name, short, usage)
	}
	opt := &countedString{p: &f.optimize, name: "optimize", n: f.counts}
	str(&f.target, "target", "t", "compile to shader target `TARGET` (e.g. 'ps_4.0')")
	str(&f.entryPoint, "entrypoint", "e", "compile entry point `ENTRYPOINT`, also the name of the C array")
	str(&f.version, "version", "v", "use d3dcompiler_`XX`.dll (default: latest available one)")
	fs.VarP(opt, "optimize", "O", "optimization `level` (0-3)")
	// -o is a synonym of -O.
	fs.VarP(opt, "optimize-lower", "o", "optimization `level` (0-3)")
	fs.MarkHidden("optimize-lower")
	str(&f.header, "header", "h", "C header `file` to create (default: stdout)")
	str(&f.namespace, "namespace", "n", "C++ `namespace` chain for the generated header, separated by ':'")
	str(&f.prefix, "prefix", "p", "`prefix` for names in the C header file")
	fs.BoolVar(&f.warnRepeated, "warn-repeated", false, "warn about options given more than once")

	f.config = viper.New()
	f.config.SetEnvPrefix(EnvPrefix)
	f.config.BindPFlag("version", fs.Lookup("version"))
	f.config.BindEnv("version")
	return f
}

// Build validates the parsed flags and positional arguments. The last
// positional argument is the shader file.
func (f *Flags) Build(args []string) (*Request, error) {
	if f.fs.NFlag() == 0 && len(args) == 0 {
		return nil, failure.New(failure.ArgumentError, "No arguments given")
	}
	for _, a := range args {
		if a == "-" {
			return nil, failure.New(failure.ArgumentError, "Invalid option: %s", a)
		}
	}
	f.counts["shader file"] = len(args)
	var shader string
	if len(args) > 0 {
		shader = args[len(args)-1]
	}
	opt, ok := parseOptLevel(f.optimize)
	if !ok {
		return nil, failure.New(failure.ArgumentError, "Invalid optimization level (0-3 are valid)")
	}
	if shader == "" {
		return nil, failure.New(failure.ArgumentError, "HLSL shader file not given")
	}
	if f.entryPoint == "" {
		return nil, failure.New(failure.ArgumentError, "Entry point not given")
	}
	if f.target == "" {
		return nil, failure.New(failure.ArgumentError, "Target not given")
	}
	return &Request{
		Target:       f.target,
		EntryPoint:   f.entryPoint,
		Optimization: opt,
		ShaderFile:   shader,
		HeaderFile:   f.header,
		VersionHint:  f.config.GetString("version"),
		Namespace:    f.namespace,
		Prefix:       f.prefix,
	}, nil
}

// Repeated returns the options given more than once, sorted, when
// --warn-repeated is set.
func (f *Flags) Repeated() []string {
	if !f.warnRepeated {
		return nil
	}
	var names []string
	for name, n := range f.counts {
		if n > 1 {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// FlagError classifies a flag parsing error as an invalid option.
func FlagError(err error) error {
	return failure.Wrap(failure.ArgumentError, err, "Invalid option")
}

// Parse parses and validates args without a command around them.
func Parse(args []string) (*Request, *Flags, error) {
	fs := pflag.NewFlagSet("d3dcompiler-cli", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	f := Register(fs)
	if err := fs.Parse(args); err != nil {
		return nil, f, FlagError(err)
	}
	req, err := f.Build(fs.Args())
	return req, f, err
}

// Namespaces splits the namespace chain into its non-empty segments,
// outermost first.
func (r *Request) Namespaces() []string {
	return slices.DeleteFunc(strings.Split(r.Namespace, ":"), func(s string) bool {
		return s == ""
	})
}
