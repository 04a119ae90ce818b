package split

import (
	"path"
	"strings"
)

// StripAuto selects automatic strip-level detection from the record's
// from/to paths.
const StripAuto = -1

// ResolveStripLevel determines how many leading path components to drop
// from a record's destination path. An explicit non-negative value always
// wins. Otherwise the level is detected by counting the trailing path
// components the from and to paths share: VCS diffs usually differ only in
// a prefix (`a/`, `b/`, or longer), so the strip level is whatever of the
// to path precedes that common suffix. Renames shorten the common suffix
// and therefore strip less, preserving more of the renamed path. Paths
// sharing no trailing components resolve to 0.
func ResolveStripLevel(explicit int, fromPath, toPath string) int {
	if explicit >= 0 {
		return explicit
	}

	from := pathComponents(fromPath)
	to := pathComponents(toPath)

	common := 0
	for common < len(from) && common < len(to) {
		if from[len(from)-1-common] != to[len(to)-1-common] {
			break
		}
		common++
	}
	return len(to) - common
}

// StripPath drops the first strip components from fullPath. When fullPath
// has too few components, it falls back to the final component alone. An
// empty result means the record has no usable output path and should be
// skipped.
func StripPath(fullPath string, strip int) string {
	if strip == 0 {
		return fullPath
	}
	comps := pathComponents(fullPath)
	if len(comps) > strip {
		return path.Join(comps[strip:]...)
	}
	if len(comps) == 0 {
		return ""
	}
	return comps[len(comps)-1]
}

// pathComponents splits a slash-separated diff path, discarding empty and
// `.` segments.
func pathComponents(p string) []string {
	var comps []string
	for _, c := range strings.Split(p, "/") {
		if c != "" && c != "." {
			comps = append(comps, c)
		}
	}
	return comps
}
