package split_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bkyoung/diffsplit/internal/usecase/split"
)

func TestMaskHunkHeader(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected string
	}{
		{
			name:     "two-file form with counts and context",
			line:     "@@ -10,5 +20,5 @@ fn foo() {",
			expected: "@@ -XX,5 +XX,5 @@ fn foo() {",
		},
		{
			name:     "two-file form without counts",
			line:     "@@ -1 +1 @@",
			expected: "@@ -X +X @@",
		},
		{
			name:     "multi-digit starts keep multi-digit counts",
			line:     "@@ -100,250 +300,250 @@",
			expected: "@@ -XXX,250 +XXX,250 @@",
		},
		{
			name:     "line terminator preserved",
			line:     "@@ -7,2 +7,3 @@\n",
			expected: "@@ -X,2 +X,3 @@\n",
		},
		{
			name:     "combined three-file form",
			line:     "@@@ -1,3 -1,3 +1,4 @@@",
			expected: "@@@ -X,3 -X,3 +X,4 @@@",
		},
		{
			name:     "combined form with context",
			line:     "@@@ -120,7 -45,6 +121,8 @@@ merge conflict region\n",
			expected: "@@@ -XXX,7 -XX,6 +XXX,8 @@@ merge conflict region\n",
		},
		{
			name:     "tail containing the delimiter is preserved verbatim",
			line:     "@@ -1,2 +3,4 @@ def x(): # @@ inline",
			expected: "@@ -X,2 +X,4 @@ def x(): # @@ inline",
		},
		{
			name:     "mixed counts masked correctly",
			line:     "@@ -5 +6,2 @@ trailing",
			expected: "@@ -X +X,2 @@ trailing",
		},
		{
			name:     "non-matching grammar passes through",
			line:     "@@ bogus header @@",
			expected: "@@ bogus header @@",
		},
		{
			name:     "missing closing delimiter passes through",
			line:     "@@ -1,2 +3,4",
			expected: "@@ -1,2 +3,4",
		},
		{
			name:     "missing space after delimiter passes through",
			line:     "@@-1,2 +3,4 @@",
			expected: "@@-1,2 +3,4 @@",
		},
		{
			name:     "content line passes through",
			line:     "+added line\n",
			expected: "+added line\n",
		},
		{
			name:     "combined header with only two ranges passes through",
			line:     "@@@ -1,3 +1,4 @@@",
			expected: "@@@ -1,3 +1,4 @@@",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, split.MaskHunkHeader(tt.line))
		})
	}
}
