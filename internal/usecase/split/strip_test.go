package split_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bkyoung/diffsplit/internal/usecase/split"
)

func TestResolveStripLevel(t *testing.T) {
	tests := []struct {
		name     string
		explicit int
		fromPath string
		toPath   string
		expected int
	}{
		{
			name:     "explicit override wins",
			explicit: 3,
			fromPath: "a/dir/x.txt",
			toPath:   "b/dir/x.txt",
			expected: 3,
		},
		{
			name:     "explicit zero wins",
			explicit: 0,
			fromPath: "a/dir/x.txt",
			toPath:   "b/dir/x.txt",
			expected: 0,
		},
		{
			name:     "standard a/b prefix",
			explicit: split.StripAuto,
			fromPath: "a/dir/x.txt",
			toPath:   "b/dir/x.txt",
			expected: 1,
		},
		{
			name:     "rename shortens common suffix",
			explicit: split.StripAuto,
			fromPath: "a/old/name.txt",
			toPath:   "b/new/name.txt",
			expected: 2,
		},
		{
			name:     "deep vcs prefix",
			explicit: split.StripAuto,
			fromPath: "repo/trunk/src/pkg/main.go",
			toPath:   "repo/branch/src/pkg/main.go",
			expected: 2,
		},
		{
			name:     "identical paths strip nothing",
			explicit: split.StripAuto,
			fromPath: "src/main.go",
			toPath:   "src/main.go",
			expected: 0,
		},
		{
			name:     "no common suffix",
			explicit: split.StripAuto,
			fromPath: "a/one.txt",
			toPath:   "b/two.txt",
			expected: 2,
		},
		{
			name:     "added file against dev null",
			explicit: split.StripAuto,
			fromPath: "/dev/null",
			toPath:   "b/new.txt",
			expected: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := split.ResolveStripLevel(tt.explicit, tt.fromPath, tt.toPath)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestStripPath(t *testing.T) {
	tests := []struct {
		name     string
		fullPath string
		strip    int
		expected string
	}{
		{
			name:     "strip zero is identity",
			fullPath: "b/dir/x.txt",
			strip:    0,
			expected: "b/dir/x.txt",
		},
		{
			name:     "strip one drops prefix",
			fullPath: "b/dir/x.txt",
			strip:    1,
			expected: "dir/x.txt",
		},
		{
			name:     "strip two leaves filename",
			fullPath: "b/dir/x.txt",
			strip:    2,
			expected: "x.txt",
		},
		{
			name:     "too few components falls back to basename",
			fullPath: "b/x.txt",
			strip:    5,
			expected: "x.txt",
		},
		{
			name:     "single component falls back to itself",
			fullPath: "x.txt",
			strip:    3,
			expected: "x.txt",
		},
		{
			name:     "empty path stays empty",
			fullPath: "",
			strip:    1,
			expected: "",
		},
		{
			name:     "dot-only path strips to empty",
			fullPath: "./",
			strip:    1,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := split.StripPath(tt.fullPath, tt.strip)
			assert.Equal(t, tt.expected, got)
		})
	}
}
