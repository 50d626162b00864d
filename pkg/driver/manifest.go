package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestName is the file name looked up when no manifest path is given.
const ManifestName = "sigh.yml"

// Manifest represents the parsed contents of sigh.yml.
type Manifest struct {
	Path       string
	Name       string
	Entry      string
	Log        LogConfig
	Resolution ResolutionConfig
	Output     OutputConfig
}

// LogConfig selects the CLI logger. An empty format picks console output on a
// terminal and JSON otherwise.
type LogConfig struct {
	Level  string
	Format string
}

type ResolutionConfig struct {
	MaxDepth int
}

type OutputConfig struct {
	PrintResult bool
}

// Log levels and formats accepted by the manifest.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"

	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// DefaultManifest is used when no sigh.yml is present.
func DefaultManifest() *Manifest {
	return &Manifest{Log: LogConfig{Level: LogLevelInfo}}
}

// LoadManifest parses sigh.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	manifest := raw.toManifest(absPath)
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

// FindManifest walks up from dir looking for sigh.yml. It returns an empty path
// when none exists.
func FindManifest(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("manifest: resolve %s: %w", dir, err)
	}
	for {
		candidate := filepath.Join(absDir, ManifestName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("manifest: stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(absDir)
		if parent == absDir {
			return "", nil
		}
		absDir = parent
	}
}

// EntryPath resolves the entry program relative to the manifest's directory.
func (m *Manifest) EntryPath() string {
	if m == nil || m.Entry == "" {
		return ""
	}
	if filepath.IsAbs(m.Entry) || m.Path == "" {
		return m.Entry
	}
	return filepath.Join(filepath.Dir(m.Path), m.Entry)
}

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if m.Entry == "" {
		errs.Issues = append(errs.Issues, "entry must be provided")
	}
	switch m.Log.Level {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	default:
		errs.Issues = append(errs.Issues, fmt.Sprintf("log.level %q is not one of debug, info, warn, error", m.Log.Level))
	}
	switch m.Log.Format {
	case "", LogFormatConsole, LogFormatJSON:
	default:
		errs.Issues = append(errs.Issues, fmt.Sprintf("log.format %q is not one of console, json", m.Log.Format))
	}
	if m.Resolution.MaxDepth < 0 {
		errs.Issues = append(errs.Issues, "resolution.max_depth must not be negative")
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

type manifestFile struct {
	Name       string             `yaml:"name"`
	Entry      string             `yaml:"entry"`
	Log        manifestLog        `yaml:"log"`
	Resolution manifestResolution `yaml:"resolution"`
	Output     manifestOutput     `yaml:"output"`
}

type manifestLog struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type manifestResolution struct {
	MaxDepth int `yaml:"max_depth"`
}

type manifestOutput struct {
	PrintResult bool `yaml:"print_result"`
}

func (mf manifestFile) toManifest(path string) *Manifest {
	level := strings.ToLower(strings.TrimSpace(mf.Log.Level))
	if level == "" {
		level = LogLevelInfo
	}
	return &Manifest{
		Path:  path,
		Name:  strings.TrimSpace(mf.Name),
		Entry: strings.TrimSpace(mf.Entry),
		Log: LogConfig{
			Level:  level,
			Format: strings.ToLower(strings.TrimSpace(mf.Log.Format)),
		},
		Resolution: ResolutionConfig{MaxDepth: mf.Resolution.MaxDepth},
		Output:     OutputConfig{PrintResult: mf.Output.PrintResult},
	}
}
