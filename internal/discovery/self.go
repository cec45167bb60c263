// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"os"
)

// selfMatcher recognizes the running umbrella binary among candidates, by
// canonical path and, where the filesystem exposes it, by file identity so
// that hard links are caught too.
type selfMatcher struct {
	resolve  Resolver
	resolved string
	info     os.FileInfo
}

func (d *Discoverer) newSelfMatcher(selfPath string) *selfMatcher {
	if selfPath == "" {
		return nil
	}

	m := &selfMatcher{resolve: d.resolve}
	if resolved, err := d.resolve(selfPath); err == nil {
		m.resolved = resolved
	} else {
		d.logger.Debug("cannot resolve umbrella path", "path", selfPath, "reason", err)
	}
	if info, err := d.fs.Stat(selfPath); err == nil {
		m.info = info
	}
	return m
}

func (m *selfMatcher) matches(path string, info os.FileInfo) bool {
	if m == nil {
		return false
	}
	if m.resolved != "" {
		if resolved, err := m.resolve(path); err == nil && resolved == m.resolved {
			return true
		}
	}
	return m.info != nil && info != nil && os.SameFile(m.info, info)
}
