package fs

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// BinaryListFileName is the well-known aggregate artifact listing the
// binary files the diff touched.
const BinaryListFileName = "binary-files.txt"

// DirSink implements the split.Sink port against a target directory on
// the local filesystem.
type DirSink struct {
	root string
}

// NewDirSink creates the target root directory if needed and returns a
// sink writing beneath it.
func NewDirSink(root string) (*DirSink, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create target directory: %w", err)
	}
	return &DirSink{root: root}, nil
}

// Root returns the target root directory.
func (s *DirSink) Root() string {
	return s.root
}

// WriteRecord creates or overwrites the file at relPath under the target
// root, creating missing parent directories, and writes the lines
// verbatim.
func (s *DirSink) WriteRecord(ctx context.Context, relPath string, lines []string) error {
	target := filepath.Join(s.root, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}
	return writeLines(target, lines, "")
}

// WriteBinaryList writes the binary-marker aggregate under the target
// root, one marker per line.
func (s *DirSink) WriteBinaryList(ctx context.Context, markers []string) error {
	return writeLines(filepath.Join(s.root, BinaryListFileName), markers, "\n")
}

// writeLines writes each line followed by terminator. Record lines carry
// their own terminator from the input, so the record path passes "".
func writeLines(target string, lines []string, terminator string) error {
	f, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create %s: %w", target, err)
	}

	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := w.WriteString(line + terminator); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", target, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", target, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", target, err)
	}
	return nil
}
