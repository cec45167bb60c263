// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"slices"
	"testing"
)

func TestMergeEnv(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		base     []string
		overlay  map[string]string
		foldCase bool
		want     []string
	}{
		{
			name:    "appends sorted new keys after base",
			base:    []string{"PATH=/bin", "HOME=/root"},
			overlay: map[string]string{"TOOLFORGE_VERBOSE": "0", "TOOLFORGE_DEBUG": "1"},
			want:    []string{"PATH=/bin", "HOME=/root", "TOOLFORGE_DEBUG=1", "TOOLFORGE_VERBOSE=0"},
		},
		{
			name:    "replaces inherited value in place",
			base:    []string{"TOOLFORGE_VERBOSE=1", "PATH=/bin"},
			overlay: map[string]string{"TOOLFORGE_VERBOSE": "0"},
			want:    []string{"TOOLFORGE_VERBOSE=0", "PATH=/bin"},
		},
		{
			name:    "drops later duplicates of an overridden key",
			base:    []string{"TOOLFORGE_DEBUG=x", "A=1", "TOOLFORGE_DEBUG=y"},
			overlay: map[string]string{"TOOLFORGE_DEBUG": "0"},
			want:    []string{"TOOLFORGE_DEBUG=0", "A=1"},
		},
		{
			name:    "keeps values containing equals signs",
			base:    []string{"OPTS=a=b=c"},
			overlay: map[string]string{"X": "1"},
			want:    []string{"OPTS=a=b=c", "X=1"},
		},
		{
			name:    "passes through entries without a key",
			base:    []string{"=C:=C:\\work", "junk"},
			overlay: map[string]string{"X": "1"},
			want:    []string{"=C:=C:\\work", "junk", "X=1"},
		},
		{
			name:     "case-insensitive keys",
			base:     []string{"Path=C:\\bin", "toolforge_debug=1"},
			overlay:  map[string]string{"TOOLFORGE_DEBUG": "0"},
			foldCase: true,
			want:     []string{"Path=C:\\bin", "toolforge_debug=0"},
		},
		{
			name:    "case-sensitive keys",
			base:    []string{"toolforge_debug=1"},
			overlay: map[string]string{"TOOLFORGE_DEBUG": "0"},
			want:    []string{"toolforge_debug=1", "TOOLFORGE_DEBUG=0"},
		},
		{
			name:    "empty base",
			overlay: map[string]string{"B": "2", "A": "1"},
			want:    []string{"A=1", "B=2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			baseCopy := slices.Clone(tt.base)

			got := mergeEnv(tt.base, tt.overlay, tt.foldCase)
			if !slices.Equal(got, tt.want) {
				t.Errorf("mergeEnv() = %q, want %q", got, tt.want)
			}
			if !slices.Equal(tt.base, baseCopy) {
				t.Errorf("mergeEnv() modified base: %q", tt.base)
			}
		})
	}
}
