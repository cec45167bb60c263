// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"toolforge-cli/internal/issue"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application name.
	AppName = "toolforge"
	// PrefixEnvVar overrides toolforge_prefix from every file.
	PrefixEnvVar = "TOOLFORGE_CLI_PREFIX"
	// SystemConfigPath is the lowest-priority, machine-wide config file.
	SystemConfigPath = "/etc/toolforge-cli.yaml"
	// ConfigFileName is the file name used in the user's config directories.
	ConfigFileName = "toolforge.yaml"

	// maxFileSize bounds how much of a config file is read.
	maxFileSize = 1 << 20
)

//go:embed config_schema.cue
var configSchema string

// Source is one entry of the layered file list.
type Source struct {
	Path   string
	Exists bool
}

// LayeredPaths returns the config files in merge order, lowest priority
// first. Entries whose base directory is unknown (no home directory,
// XDG_CONFIG_HOME unset) are left out.
func LayeredPaths(opts LoadOptions) []string {
	if len(opts.Paths) > 0 {
		paths := make([]string, len(opts.Paths))
		for i, p := range opts.Paths {
			paths[i] = string(p)
		}
		return paths
	}
	return layeredPaths(homeDir(opts), os.Getenv("XDG_CONFIG_HOME"))
}

func layeredPaths(home, xdgConfigHome string) []string {
	paths := []string{SystemConfigPath}
	if home != "" {
		paths = append(paths,
			filepath.Join(home, ".toolforge.yaml"),
			filepath.Join(home, ".config", ConfigFileName),
		)
	}
	if xdgConfigHome != "" {
		paths = append(paths, filepath.Join(xdgConfigHome, ConfigFileName))
	}
	return paths
}

// UserConfigPath is where `config init` writes: ~/.config/toolforge.yaml.
func UserConfigPath(opts LoadOptions) (string, error) {
	home := homeDir(opts)
	if home == "" {
		return "", errors.New("cannot determine home directory")
	}
	return filepath.Join(home, ".config", ConfigFileName), nil
}

func homeDir(opts LoadOptions) string {
	if opts.HomeDir != "" {
		return string(opts.HomeDir)
	}
	if homeDirOverride != "" {
		return homeDirOverride
	}
	home, err := os.UserHomeDir()
	if err != nil {
		slog.Debug("cannot determine home directory", "reason", err)
		return ""
	}
	return home
}

// Sources lists the files Load would consider and whether each exists.
func Sources(opts LoadOptions) []Source {
	var paths []string
	if opts.ConfigFilePath != "" {
		paths = []string{string(opts.ConfigFilePath)}
	} else {
		paths = LayeredPaths(opts)
	}

	sources := make([]Source, len(paths))
	for i, p := range paths {
		sources[i] = Source{Path: p, Exists: fileExists(p)}
	}
	return sources
}

// loadWithOptions performs option-driven config loading without touching
// package-level state beyond the test overrides.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, []string, error) {
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := newViper()
	var loaded []string

	if opts.ConfigFilePath != "" {
		path := string(opts.ConfigFilePath)
		if !fileExists(path) {
			return nil, nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Run 'toolforge config path' to see the default locations").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(fmt.Errorf("config file not found: %s", path)).
				BuildError()
		}
		if err := loadFileIntoViper(v, path); err != nil {
			return nil, nil, loadError(path, err)
		}
		loaded = append(loaded, path)
	} else {
		for _, path := range LayeredPaths(opts) {
			if !fileExists(path) {
				slog.Debug("config file not found, skipping", "path", path)
				continue
			}
			if err := loadFileIntoViper(v, path); err != nil {
				return nil, nil, loadError(path, err)
			}
			slog.Debug("merged config file", "path", path)
			loaded = append(loaded, path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		ec := issue.NewErrorContext().
			WithOperation("validate configuration").
			WithIssue(issue.ConfigLoadFailedId)
		if errors.Is(err, ErrInvalidPrefix) {
			ec = ec.WithIssue(issue.InvalidPrefixId).
				WithSuggestion("Check toolforge_prefix in your config files and the " + PrefixEnvVar + " variable")
		}
		return nil, nil, ec.Wrap(err).BuildError()
	}

	return &cfg, loaded, nil
}

func newViper() *viper.Viper {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("toolforge_prefix", string(defaults.ToolforgePrefix))
	v.SetDefault("exec_mode", string(defaults.ExecMode))
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("ui.debug", defaults.UI.Debug)
	v.SetDefault("ui.color_scheme", string(defaults.UI.ColorScheme))

	// BindEnv only errors when called without a key.
	_ = v.BindEnv("toolforge_prefix", PrefixEnvVar)

	return v
}

func loadError(path string, err error) error {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithSuggestion("Check that the file contains valid YAML").
		WithSuggestion("Verify the values match the expected keys and types").
		WithIssue(issue.ConfigLoadFailedId).
		Wrap(err).
		BuildError()
}

// loadFileIntoViper decodes a YAML file, validates it against the #Config
// schema and merges it over what v already holds.
func loadFileIntoViper(v *viper.Viper, path string) error {
	data, err := readLimited(path)
	if err != nil {
		return err
	}

	var configMap map[string]any
	if err := yaml.Unmarshal(data, &configMap); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if len(configMap) == 0 {
		// An empty or comment-only file sets nothing.
		return nil
	}

	if err := validateAgainstSchema(configMap, path); err != nil {
		return err
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

func validateAgainstSchema(configMap map[string]any, path string) error {
	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.Encode(configMap)
	if userValue.Err() != nil {
		return formatCUEError(userValue.Err(), path)
	}

	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	if err := schema.Unify(userValue).Validate(cue.Concrete(true)); err != nil {
		return formatCUEError(err, path)
	}
	return nil
}

// formatCUEError flattens a CUE error list into "<file>: <path>: <message>" lines.
func formatCUEError(err error, path string) error {
	list := cueerrors.Errors(err)
	if len(list) == 0 {
		return fmt.Errorf("%s: %w", path, err)
	}

	lines := make([]string, 0, len(list))
	for _, e := range list {
		format, args := e.Msg()
		msg := fmt.Sprintf(format, args...)
		if field := strings.Join(trimDefinition(e.Path()), "."); field != "" {
			msg = field + ": " + msg
		}
		lines = append(lines, msg)
	}
	return fmt.Errorf("%s: %s", path, strings.Join(lines, "; "))
}

// trimDefinition drops the leading "#Config" selector from error paths.
func trimDefinition(path []string) []string {
	if len(path) > 0 && strings.HasPrefix(path[0], "#") {
		return path[1:]
	}
	return path
}

func readLimited(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("%s: config file is %d bytes, larger than the %d byte limit", path, info.Size(), maxFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return data, nil
}

// fileExists reports whether path exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false
	}
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes the default configuration to the user config
// path unless a file is already there. It reports the path and whether a
// file was written.
func CreateDefaultConfig(opts LoadOptions) (string, bool, error) {
	path, err := UserConfigPath(opts)
	if err != nil {
		return "", false, err
	}
	if fileExists(path) {
		return path, false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create config directory: %w", err)
	}

	content, err := Marshal(DefaultConfig(), FormatYAML)
	if err != nil {
		return "", false, err
	}
	header := "# toolforge configuration\n# Later files override earlier ones: see 'toolforge config path'.\n"
	if err := os.WriteFile(path, append([]byte(header), content...), 0o644); err != nil {
		return "", false, fmt.Errorf("failed to write config file: %w", err)
	}
	return path, true, nil
}

// LoadedPaths loads configuration and also reports which files were merged.
func LoadedPaths(ctx context.Context, opts LoadOptions) (*Config, []string, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	return loadWithOptions(ctx, opts)
}
