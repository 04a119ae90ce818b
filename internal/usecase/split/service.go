package split

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/bkyoung/diffsplit/internal/domain"
)

// Sink receives the split output: one named artifact per emitted record,
// plus at most one binary-marker aggregate per run.
type Sink interface {
	// WriteRecord writes the ordered lines verbatim to the given path,
	// relative to the sink's target root, creating parent directories as
	// needed.
	WriteRecord(ctx context.Context, relPath string, lines []string) error

	// WriteBinaryList writes the aggregate of "Binary files ..." marker
	// lines, one trimmed line each.
	WriteBinaryList(ctx context.Context, markers []string) error
}

// Options controls how records are transformed before emission.
type Options struct {
	// Strip is the number of leading path components to drop, or
	// StripAuto to detect it per record from the from/to paths.
	Strip int

	// MaskLineNumbers rewrites hunk headers to hide absolute start line
	// numbers while keeping hunk sizes.
	MaskLineNumbers bool

	// SkipHeader omits the diff/index/---/+++ header block from each
	// artifact.
	SkipHeader bool
}

// Summary reports what a run produced.
type Summary struct {
	FilesWritten  int
	BinaryMarkers int
	Skipped       int
}

// Service runs the split pipeline: classify the input stream into
// per-file records, strip and optionally mask each record, and hand the
// results to the sink. A single synchronous pass; the parser owns the open
// record and hands it off at close time.
type Service struct{}

// NewService constructs the split service.
func NewService() *Service {
	return &Service{}
}

// Split consumes input to end-of-stream and writes the per-file artifacts
// through sink. Invalid UTF-8 in the input is replaced rather than
// rejected. Processing stops at the first format or sink error;
// already-written artifacts are left in place.
func (s *Service) Split(ctx context.Context, input io.Reader, sink Sink, opts Options) (Summary, error) {
	var sum Summary

	emit := func(rec *domain.Record) error {
		strip := ResolveStripLevel(opts.Strip, rec.FromPath, rec.ToPath)
		rel := StripPath(rec.ToPath, strip)
		if rel == "" {
			sum.Skipped++
			return nil
		}

		lines := rec.Lines()
		if opts.SkipHeader {
			lines = rec.BodyLines
		}
		if opts.MaskLineNumbers {
			masked := make([]string, len(lines))
			for i, line := range lines {
				masked[i] = MaskHunkHeader(line)
			}
			lines = masked
		}

		if err := sink.WriteRecord(ctx, rel, lines); err != nil {
			return fmt.Errorf("write %s: %w", rel, err)
		}
		sum.FilesWritten++
		return nil
	}

	parser := NewParser(emit)
	reader := bufio.NewReader(transform.NewReader(input, unicode.UTF8.NewDecoder()))

	for {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		line, err := reader.ReadString('\n')
		if line != "" {
			if feedErr := parser.Feed(line); feedErr != nil {
				return sum, feedErr
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return sum, fmt.Errorf("read input: %w", err)
		}
	}

	if err := parser.Finalize(); err != nil {
		return sum, err
	}
	sum.Skipped += parser.Dropped()

	if markers := parser.BinaryMarkers(); len(markers) > 0 {
		trimmed := make([]string, len(markers))
		for i, m := range markers {
			trimmed[i] = strings.TrimSpace(m)
		}
		if err := sink.WriteBinaryList(ctx, trimmed); err != nil {
			return sum, fmt.Errorf("write binary marker list: %w", err)
		}
		sum.BinaryMarkers = len(markers)
	}

	return sum, nil
}
