package split

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bkyoung/diffsplit/internal/domain"
)

// ErrInvalidFormat indicates a diff header block did not follow the
// required `diff --` / optional `index` / `---` / `+++` shape.
var ErrInvalidFormat = errors.New("invalid diff format")

// FormatError reports the line that violated the header grammar and what
// the parser expected in its place.
type FormatError struct {
	Expected string
	Line     string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid diff format: expected %s line, got %q", e.Expected, strings.TrimRight(e.Line, "\r\n"))
}

func (e *FormatError) Unwrap() error { return ErrInvalidFormat }

// Line prefixes that drive classification.
const (
	prefixDiff   = "diff --"
	prefixIndex  = "index "
	prefixFrom   = "--- "
	prefixTo     = "+++ "
	prefixBinary = "Binary files "
)

type parserState int

const (
	stateDiff parserState = iota
	stateFromOrIndex
	stateFrom
	stateTo
	stateBody
)

// EmitFunc receives each closed record that has a resolvable destination
// path and is not binary.
type EmitFunc func(rec *domain.Record) error

// Parser segments a unified-diff line stream into per-file records. Feed
// lines in stream order (each carrying its original terminator), then call
// Finalize exactly once to close the last open record.
//
// Lines before the first `diff --` line are ignored. Binary records are
// never emitted; their marker lines accumulate in encounter order and are
// available from BinaryMarkers after the stream ends. Records that close
// without a destination path are dropped silently, which tolerates
// malformed trailing fragments.
type Parser struct {
	state   parserState
	current *domain.Record
	markers []string
	dropped int
	emit    EmitFunc
}

// NewParser constructs a parser that hands completed records to emit.
func NewParser(emit EmitFunc) *Parser {
	return &Parser{emit: emit}
}

// Feed consumes the next input line. It returns a *FormatError when the
// header block is malformed, or any error returned by the emit callback.
func (p *Parser) Feed(line string) error {
	switch p.state {
	case stateDiff:
		if strings.HasPrefix(line, prefixDiff) {
			return p.open(line)
		}
		// Content before the first diff block carries no record.
		return nil

	case stateFromOrIndex:
		switch {
		case strings.HasPrefix(line, prefixIndex):
			p.current.HeaderLines = append(p.current.HeaderLines, line)
			p.state = stateFrom
			return nil
		case strings.HasPrefix(line, prefixFrom):
			p.current.FromPath = headerPath(line, prefixFrom)
			p.current.HeaderLines = append(p.current.HeaderLines, line)
			p.state = stateTo
			return nil
		default:
			return &FormatError{Expected: "'index ' or '--- '", Line: line}
		}

	case stateFrom:
		if !strings.HasPrefix(line, prefixFrom) {
			return &FormatError{Expected: "'--- '", Line: line}
		}
		p.current.FromPath = headerPath(line, prefixFrom)
		p.current.HeaderLines = append(p.current.HeaderLines, line)
		p.state = stateTo
		return nil

	case stateTo:
		if !strings.HasPrefix(line, prefixTo) {
			return &FormatError{Expected: "'+++ '", Line: line}
		}
		p.current.ToPath = headerPath(line, prefixTo)
		p.current.HeaderLines = append(p.current.HeaderLines, line)
		p.state = stateBody
		return nil

	default: // stateBody
		if strings.HasPrefix(line, prefixDiff) {
			return p.open(line)
		}
		if strings.HasPrefix(line, prefixBinary) {
			p.current.IsBinary = true
			p.markers = append(p.markers, line)
		}
		p.current.BodyLines = append(p.current.BodyLines, line)
		return nil
	}
}

// Finalize closes the last open record. Calling it when no record was ever
// opened is a no-op.
func (p *Parser) Finalize() error {
	return p.closeCurrent()
}

// BinaryMarkers returns the "Binary files ..." lines seen so far, in
// stream order.
func (p *Parser) BinaryMarkers() []string {
	return p.markers
}

// Dropped reports how many records were discarded for lacking a
// destination path.
func (p *Parser) Dropped() int {
	return p.dropped
}

// open closes any record in progress and starts a new one from a
// `diff --` line.
func (p *Parser) open(line string) error {
	if err := p.closeCurrent(); err != nil {
		return err
	}
	p.current = &domain.Record{HeaderLines: []string{line}}
	p.state = stateFromOrIndex
	return nil
}

func (p *Parser) closeCurrent() error {
	rec := p.current
	p.current = nil
	if rec == nil {
		return nil
	}
	if rec.ToPath == "" {
		p.dropped++
		return nil
	}
	if rec.IsBinary {
		// The marker line already joined the aggregate; the record itself
		// is never split into a per-file artifact.
		return nil
	}
	return p.emit(rec)
}

// headerPath extracts the path from a `--- ` or `+++ ` header line,
// discarding the prefix and any tab-delimited metadata such as timestamps.
func headerPath(line, prefix string) string {
	s := strings.TrimRight(line, "\r\n")
	s = strings.TrimPrefix(s, prefix)
	s, _, _ = strings.Cut(s, "\t")
	return s
}
