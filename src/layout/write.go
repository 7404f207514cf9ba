package layout

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/iafilius/loadtestcharts/src/logging"
)

// ErrWrite is matched (errors.Is) by every WriteError.
var ErrWrite = errors.New("cannot write figure")

// WriteError reports a failed output write with the path that was attempted.
type WriteError struct {
	Path string
	Op   string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %s: %v", e.Path, e.Op, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

func (e *WriteError) Is(target error) bool { return target == ErrWrite }

// WriteFile stores data at path atomically: it writes a temporary file in the
// same directory, syncs it and renames it over path. On failure no partial
// file is left behind. The directory must already exist.
func WriteFile(path string, data []byte) (err error) {
	fail := func(op string, e error) error {
		return &WriteError{Path: path, Op: op, Err: errors.WithStack(e)}
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fail("create temp file", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()
	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fail("write", err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fail("sync", err)
	}
	if err = tmp.Close(); err != nil {
		return fail("close", err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fail("chmod", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fail("rename", err)
	}
	return nil
}

// Save renders the figure and writes it to path.
func (f *Figure) Save(ctx context.Context, path string) error {
	data, err := f.Render(ctx)
	if err != nil {
		return err
	}
	if err := WriteFile(path, data); err != nil {
		return err
	}
	logging.Infof("wrote %s (%d bytes, %d dpi)", path, len(data), f.DPI)
	return nil
}
