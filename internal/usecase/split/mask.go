package split

import (
	"regexp"
	"strings"
)

// Hunk header grammars. The two-file form carries one from range and one
// to range; the combined ("cc") form carries two from ranges. Counts are
// optional in both.
var (
	unifiedHunkRe  = regexp.MustCompile(`^@@ -([0-9]+)(,[0-9]+)? \+([0-9]+)(,[0-9]+)? @@$`)
	combinedHunkRe = regexp.MustCompile(`^@@@ -([0-9]+)(,[0-9]+)? -([0-9]+)(,[0-9]+)? \+([0-9]+)(,[0-9]+)? @@@$`)
)

// MaskHunkHeader rewrites a `@@`/`@@@` hunk header line so that the
// starting line number of each range is replaced digit-for-digit with `X`.
// Counts, delimiters, signs and spacing are preserved, as is any trailing
// context text after the closing delimiter (separated out by locating the
// second delimiter occurrence and never matched against the grammar).
// Lines that do not match the expected grammar pass through unchanged,
// line terminator included.
func MaskHunkHeader(line string) string {
	var delim string
	switch {
	case strings.HasPrefix(line, "@@@ "):
		delim = "@@@"
	case strings.HasPrefix(line, "@@ "):
		delim = "@@"
	default:
		return line
	}

	// Split at the second delimiter occurrence. Context text containing
	// the delimiter itself can misparse here; that is an accepted
	// tolerance of the format.
	rest := line[len(delim):]
	i := strings.Index(rest, delim)
	if i < 0 {
		return line
	}
	cut := len(delim) + i + len(delim)
	head, tail := line[:cut], line[cut:]

	var b strings.Builder
	if delim == "@@" {
		m := unifiedHunkRe.FindStringSubmatch(head)
		if m == nil {
			return line
		}
		b.WriteString("@@ -")
		b.WriteString(maskDigits(m[1]))
		b.WriteString(m[2])
		b.WriteString(" +")
		b.WriteString(maskDigits(m[3]))
		b.WriteString(m[4])
		b.WriteString(" @@")
	} else {
		m := combinedHunkRe.FindStringSubmatch(head)
		if m == nil {
			return line
		}
		b.WriteString("@@@ -")
		b.WriteString(maskDigits(m[1]))
		b.WriteString(m[2])
		b.WriteString(" -")
		b.WriteString(maskDigits(m[3]))
		b.WriteString(m[4])
		b.WriteString(" +")
		b.WriteString(maskDigits(m[5]))
		b.WriteString(m[6])
		b.WriteString(" @@@")
	}
	b.WriteString(tail)
	return b.String()
}

func maskDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return 'X'
		}
		return r
	}, s)
}
