// SPDX-License-Identifier: Unlicense OR MIT

package invoke

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"

	"gioui.org/d3dcompiler/internal/failure"
)

// Source is shader text read from a file.
type Source struct {
	Name string
	Data []byte
}

type statReader interface {
	io.Reader
	Stat() (fs.FileInfo, error)
}

// ReadSource reads the shader file at path in binary mode.
func ReadSource(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, failure.Wrap(failure.IOError, unwrapPath(err), fmt.Sprintf("Failed to open file `%s'", path))
	}
	defer f.Close()
	return readSource(f, path)
}

func readSource(f statReader, path string) (*Source, error) {
	fi, err := f.Stat()
	if err != nil {
		return nil, failure.Wrap(failure.IOError, unwrapPath(err), fmt.Sprintf("Failed to query file `%s'", path))
	}
	if fi.IsDir() {
		return nil, failure.New(failure.IOError, "Failed to read file `%s': is a directory", path)
	}
	size := fi.Size()
	if size == 0 {
		return nil, failure.New(failure.IOError, "Shader file `%s' is empty", path)
	}
	data, err := alloc(size)
	if err != nil {
		return nil, err
	}
	n, err := io.ReadFull(f, data)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, failure.Wrap(failure.IOError, unwrapPath(err), fmt.Sprintf("Failed to read file `%s'", path))
	}
	if int64(n) != size {
		return nil, failure.New(failure.DataIntegrityError, "Could not read shader data completely: read=%d, size=%d", n, size)
	}
	return &Source{Name: path, Data: data}, nil
}

// alloc returns a buffer of size bytes, or an OutOfMemoryError.
func alloc(size int64) (data []byte, err error) {
	if size < 0 || uint64(size) > math.MaxInt {
		return nil, failure.New(failure.OutOfMemoryError, "Out of memory")
	}
	defer func() {
		// make panics when the length exceeds what the heap
		// can address.
		if recover() != nil {
			data, err = nil, failure.New(failure.OutOfMemoryError, "Out of memory")
		}
	}()
	return make([]byte, size), nil
}

// unwrapPath strips the *fs.PathError decoration; callers name the
// path themselves.
func unwrapPath(err error) error {
	var perr *fs.PathError
	if errors.As(err, &perr) {
		return perr.Err
	}
	return err
}
