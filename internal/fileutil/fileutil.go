package fileutil

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"ovrprep/internal/services"
)

// ReadOptions controls how newline-delimited record files are decoded.
type ReadOptions struct {
	// StrictUTF8 rejects files containing invalid UTF-8 instead of passing the
	// bytes through untouched.
	StrictUTF8 bool
}

// WriteOptions controls how record files are written.
type WriteOptions struct {
	// Atomic writes to a temporary file in the destination directory and renames
	// it into place.
	Atomic bool
	// Perm defaults to 0o644.
	Perm os.FileMode
}

// ReadLines loads a newline-delimited file, one record per line. A trailing
// newline does not produce an empty final record and "\r\n" endings are
// accepted. An empty file yields no records.
func ReadLines(path string, opts ReadOptions) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrRead, "", "read", path, err)
	}
	return SplitLines(data, path, opts)
}

// SplitLines splits raw file content into records. name is used in error messages only.
func SplitLines(data []byte, name string, opts ReadOptions) ([]string, error) {
	if len(data) == 0 {
		return []string{}, nil
	}
	data = bytes.TrimSuffix(data, []byte("\n"))
	raw := bytes.Split(data, []byte("\n"))
	lines := make([]string, len(raw))
	for i, line := range raw {
		line = bytes.TrimSuffix(line, []byte("\r"))
		if opts.StrictUTF8 && !utf8.Valid(line) {
			return nil, services.Wrap(services.ErrRead, "", "decode", fmt.Sprintf("%s: line %d is not valid UTF-8", name, i+1), nil)
		}
		lines[i] = string(line)
	}
	return lines, nil
}

// WriteLines writes records separated by "\n" with no trailing newline. The
// parent directory must already exist.
func WriteLines(path string, lines []string, opts WriteOptions) error {
	perm := opts.Perm
	if perm == 0 {
		perm = 0o644
	}
	if opts.Atomic {
		return writeAtomic(path, lines, perm)
	}
	return writeOverwrite(path, lines, perm)
}

func writeOverwrite(path string, lines []string, perm os.FileMode) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return services.Wrap(services.ErrWrite, "", "create", path, err)
	}
	if err := writeRecords(f, lines); err != nil {
		_ = f.Close()
		return services.Wrap(services.ErrWrite, "", "write", path, err)
	}
	if err := f.Close(); err != nil {
		return services.Wrap(services.ErrWrite, "", "close", path, err)
	}
	return nil
}

func writeAtomic(path string, lines []string, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return services.Wrap(services.ErrWrite, "", "create", path, err)
	}
	tmpPath := tmp.Name()
	fail := func(op string, err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return services.Wrap(services.ErrWrite, "", op, path, err)
	}

	if err := tmp.Chmod(perm); err != nil {
		return fail("chmod", err)
	}
	if err := writeRecords(tmp, lines); err != nil {
		return fail("write", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("sync", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return services.Wrap(services.ErrWrite, "", "close", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return services.Wrap(services.ErrWrite, "", "rename", path, err)
	}
	return nil
}

func writeRecords(f *os.File, lines []string) error {
	bw := bufio.NewWriterSize(f, 64*1024)
	for i, line := range lines {
		if i > 0 {
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// JoinUnder joins name onto dir. Names containing path separators are kept
// as given, matching how split and vocabulary files are addressed.
func JoinUnder(dir, name string) string {
	return filepath.Join(dir, strings.TrimSpace(name))
}
