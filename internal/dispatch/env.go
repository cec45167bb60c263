// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"slices"
	"strings"

	"toolforge-cli/pkg/platform"
)

// MergeEnv returns base with overlay applied. Entries of base keep their
// order; a key already present is replaced in place and new keys are
// appended in sorted order. base is not modified.
//
// Keys compare case-insensitively on Windows, matching how the OS treats them.
func MergeEnv(base []string, overlay map[string]string) []string {
	return mergeEnv(base, overlay, platform.IsWindows())
}

func mergeEnv(base []string, overlay map[string]string, foldCase bool) []string {
	norm := func(k string) string {
		if foldCase {
			return strings.ToUpper(k)
		}
		return k
	}

	pending := make(map[string]string, len(overlay))
	keys := make(map[string]string, len(overlay))
	for k, v := range overlay {
		pending[norm(k)] = v
		keys[norm(k)] = k
	}

	merged := make([]string, 0, len(base)+len(overlay))
	for _, kv := range base {
		k, _, ok := strings.Cut(kv, "=")
		// Windows keeps per-drive cwd entries like "=C:=C:\dir"; they have
		// an empty key and are passed through.
		if !ok || k == "" {
			merged = append(merged, kv)
			continue
		}
		nk := norm(k)
		v, hit := pending[nk]
		if !hit {
			if _, done := keys[nk]; done {
				// Duplicate of a key that was already overridden.
				continue
			}
			merged = append(merged, kv)
			continue
		}
		merged = append(merged, k+"="+v)
		delete(pending, nk)
	}

	rest := make([]string, 0, len(pending))
	for nk := range pending {
		rest = append(rest, nk)
	}
	slices.Sort(rest)
	for _, nk := range rest {
		merged = append(merged, keys[nk]+"="+pending[nk])
	}
	return merged
}
