package domain

// Record captures the diff for a single file as it appears in the input
// stream: the header block (diff/index/---/+++ lines) followed by the body
// (hunk headers and content lines), all verbatim with their original line
// terminators.
type Record struct {
	// HeaderLines holds the `diff --`, optional `index `, `--- ` and
	// `+++ ` lines in stream order, each at most once.
	HeaderLines []string

	// FromPath and ToPath are extracted from the `--- `/`+++ ` lines with
	// any tab-delimited metadata (timestamps) removed.
	FromPath string
	ToPath   string

	// BodyLines holds everything after the header block, verbatim.
	BodyLines []string

	// IsBinary is set when a body line starts with "Binary files ".
	IsBinary bool
}

// Lines returns the full diff block for the record, header first.
func (r *Record) Lines() []string {
	lines := make([]string, 0, len(r.HeaderLines)+len(r.BodyLines))
	lines = append(lines, r.HeaderLines...)
	lines = append(lines, r.BodyLines...)
	return lines
}
