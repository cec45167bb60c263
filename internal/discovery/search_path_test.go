// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"slices"
	"testing"
)

func TestParseSearchPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  SearchPath
	}{
		{"single", "/usr/bin", SearchPath{"/usr/bin"}},
		{"ordered", "/a:/b:/c", SearchPath{"/a", "/b", "/c"}},
		{"empty elements dropped", ":/a::/b:", SearchPath{"/a", "/b"}},
		{"duplicates kept", "/a:/a", SearchPath{"/a", "/a"}},
		{"empty value", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := parseSearchPath(tt.value, ':')
			if !slices.Equal(got, tt.want) {
				t.Errorf("parseSearchPath(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestSearchPathFromEnv(t *testing.T) {
	t.Parallel()

	unset := func(string) (string, bool) { return "", false }
	if got := SearchPathFromEnv(unset); !slices.Equal(got, SearchPath{"."}) {
		t.Errorf("SearchPathFromEnv(unset) = %v, want [.]", got)
	}

	empty := func(string) (string, bool) { return "", true }
	if got := SearchPathFromEnv(empty); len(got) != 0 {
		t.Errorf("SearchPathFromEnv(empty) = %v, want empty", got)
	}

	var asked string
	lookup := func(key string) (string, bool) {
		asked = key
		return "/opt/toolforge/bin", true
	}
	got := SearchPathFromEnv(lookup)
	if asked != PathEnvVar {
		t.Errorf("looked up %q, want %q", asked, PathEnvVar)
	}
	if !slices.Equal(got, SearchPath{"/opt/toolforge/bin"}) {
		t.Errorf("SearchPathFromEnv() = %v", got)
	}
}
