// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"toolforge-cli/pkg/platform"

	"github.com/spf13/afero"
)

// DefaultPrefix is the file name prefix that marks a toolforge subcommand.
const DefaultPrefix = "toolforge-"

type (
	// Resolver canonicalizes a path so that two spellings of the same file
	// compare equal. The default makes the path absolute and follows symlinks.
	Resolver func(path string) (string, error)

	// AccessCheck reports whether the current user may execute path.
	AccessCheck func(path string) error

	// Discoverer scans search-path directories for prefixed executables.
	// The zero value is not usable; construct with New.
	Discoverer struct {
		fs      afero.Fs
		goos    string
		pathext string
		resolve Resolver
		access  AccessCheck
		logger  *slog.Logger
	}

	// Option configures a Discoverer.
	Option func(*Discoverer)
)

// WithFs sets the filesystem that directories are listed from.
func WithFs(fs afero.Fs) Option {
	return func(d *Discoverer) { d.fs = fs }
}

// WithGOOS overrides the operating system used for executability rules.
func WithGOOS(goos string) Option {
	return func(d *Discoverer) { d.goos = goos }
}

// WithPathExt sets the PATHEXT value consulted on Windows.
func WithPathExt(pathext string) Option {
	return func(d *Discoverer) { d.pathext = pathext }
}

// WithResolver replaces the path canonicalization used for self-exclusion.
func WithResolver(r Resolver) Option {
	return func(d *Discoverer) { d.resolve = r }
}

// WithAccessCheck replaces the per-user execute permission check. By default
// it runs only against the OS filesystem; other filesystems rely on the
// mode bits alone.
func WithAccessCheck(check AccessCheck) Option {
	return func(d *Discoverer) { d.access = check }
}

// WithLogger sets the logger for debug tracing of the scan.
func WithLogger(l *slog.Logger) Option {
	return func(d *Discoverer) { d.logger = l }
}

// New creates a Discoverer reading the real filesystem of the current OS.
func New(opts ...Option) *Discoverer {
	d := &Discoverer{
		fs:      afero.NewOsFs(),
		goos:    runtime.GOOS,
		pathext: os.Getenv("PATHEXT"),
		resolve: CanonicalPath,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.access == nil {
		if _, ok := d.fs.(*afero.OsFs); ok {
			d.access = platform.CheckExecutable
		}
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	return d
}

// Discover builds the command table for searchPath using the default Discoverer.
func Discover(searchPath SearchPath, prefix, selfPath string) *CommandTable {
	return New().Discover(searchPath, prefix, selfPath)
}

// CanonicalPath makes path absolute and resolves symlinks. When the path
// cannot be resolved (it vanished, a parent is unreadable) the cleaned
// absolute path is returned instead.
func CanonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}

// Discover scans searchPath and folds the result into a CommandTable.
// selfPath is the path of the running umbrella binary; any entry that refers
// to the same file is excluded. An empty selfPath disables self-exclusion.
func (d *Discoverer) Discover(searchPath SearchPath, prefix, selfPath string) *CommandTable {
	candidates := d.Candidates(searchPath, prefix, selfPath)
	table := NewCommandTable(candidates)
	d.logger.Debug("discovery finished", "candidates", len(candidates), "subcommands", table.Len())
	return table
}

// Candidates returns every surviving entry in scan order, before the
// precedence fold. Shadowed duplicates are still present.
func (d *Discoverer) Candidates(searchPath SearchPath, prefix, selfPath string) []Candidate {
	if prefix == "" {
		d.logger.Debug("empty prefix, nothing to discover")
		return nil
	}

	self := d.newSelfMatcher(selfPath)

	var candidates []Candidate
	for rank, dir := range searchPath {
		candidates = append(candidates, d.scanDir(dir, rank, prefix, self)...)
	}

	logShadowed(d.logger, candidates)
	return candidates
}

// scanDir lists the direct entries of one directory. Every failure is
// absorbed here so one bad directory never affects the others.
func (d *Discoverer) scanDir(dir string, rank int, prefix string, self *selfMatcher) []Candidate {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		d.logger.Debug("skipping search directory", "dir", dir, "reason", err)
		return nil
	}

	d.logger.Debug("checking search directory", "dir", absDir, "rank", rank)

	f, err := d.fs.Open(absDir)
	if err != nil {
		d.logger.Debug("skipping search directory", "dir", absDir, "reason", err)
		return nil
	}
	names, err := f.Readdirnames(-1)
	_ = f.Close() // Read-only handle; close error carries no information.
	if err != nil {
		d.logger.Debug("skipping search directory", "dir", absDir, "reason", err)
		return nil
	}
	sort.Strings(names)

	var found []Candidate
	for _, name := range names {
		if !strings.HasPrefix(name, prefix) {
			continue
		}

		shortName := strings.TrimPrefix(platform.TrimExecutableExt(d.goos, name, d.pathext), prefix)
		if shortName == "" {
			d.logger.Debug("skipping bare prefix", "file", name, "dir", absDir)
			continue
		}

		path := filepath.Join(absDir, name)

		// Stat follows symlinks: a link to an executable is a candidate.
		info, err := d.fs.Stat(path)
		if err != nil {
			d.logger.Debug("skipping unreadable entry", "path", path, "reason", err)
			continue
		}
		if !platform.IsExecutable(d.goos, name, info.Mode(), d.pathext) {
			d.logger.Debug("skipping non-executable entry", "path", path, "mode", info.Mode().String())
			continue
		}
		// Mode bits alone say nothing about who may run the file.
		if d.access != nil {
			if err := d.access(path); err != nil {
				d.logger.Debug("skipping entry not executable by current user", "path", path, "reason", err)
				continue
			}
		}
		if self.matches(path, info) {
			d.logger.Debug("skipping umbrella binary", "path", path)
			continue
		}

		d.logger.Debug("found subcommand", "name", shortName, "path", path, "rank", rank)
		found = append(found, Candidate{ShortName: shortName, Path: path, Rank: rank})
	}

	return found
}

func logShadowed(logger *slog.Logger, candidates []Candidate) {
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	first := make(map[string]Candidate, len(candidates))
	for _, c := range candidates {
		winner, ok := first[c.ShortName]
		if !ok {
			first[c.ShortName] = c
			continue
		}
		if winner.Path != c.Path {
			logger.Debug("subcommand shadowed", "name", c.ShortName, "path", c.Path, "by", winner.Path)
		}
	}
}
