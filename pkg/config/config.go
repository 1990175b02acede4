package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	perrors "github.com/grpc-protos/protosync/pkg/errors"
)

// FileName is the configuration file looked up in the repository root.
const FileName = "protosync.yml"

// Config holds the complete protosync configuration.
type Config struct {
	ServicesRoot    string        `yaml:"services_root" json:"services_root"`
	ProtoDir        string        `yaml:"proto_dir" json:"proto_dir"`
	Manifest        string        `yaml:"manifest" json:"manifest"`
	ReleaseNotes    string        `yaml:"release_notes" json:"release_notes"`
	GeneratedDir    string        `yaml:"generated_dir" json:"generated_dir"`
	BufTemplate     string        `yaml:"buf_template" json:"buf_template"`
	BreakingAgainst string        `yaml:"breaking_against" json:"breaking_against"`
	Remote          string        `yaml:"remote" json:"remote"`
	Python          string        `yaml:"python" json:"python"`
	MetricsFile     string        `yaml:"metrics_file" json:"metrics_file"`
	ImportProbe     string        `yaml:"import_probe" json:"import_probe"`
	NoColor         bool          `yaml:"no_color" json:"no_color"`
	Package         PackageConfig `yaml:"package" json:"package"`
	Logging         LoggingConfig `yaml:"logging" json:"logging"`
}

// PackageConfig identifies the published protocol package and the
// dependency source services pin it from.
type PackageConfig struct {
	ID         string `yaml:"id" json:"id"`
	ImportName string `yaml:"import_name" json:"import_name"`
	Source     string `yaml:"source" json:"source"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		ServicesRoot:    filepath.Join("..", "services"),
		ProtoDir:        "protos",
		Manifest:        "pyproject.toml",
		ReleaseNotes:    "RELEASE.md",
		GeneratedDir:    "generated",
		BufTemplate:     "buf.gen.yaml",
		BreakingAgainst: ".git#branch=main",
		Remote:          "origin",
		Python:          "python3",
		ImportProbe:     "protos.common.metadata_pb2",
		Package: PackageConfig{
			ID:         "mysingle-protos",
			ImportName: "mysingle_protos",
			Source:     "git+https://github.com/Br0therDan/grpc-protos.git",
		},
		Logging: LoggingConfig{
			Level:  "WARN",
			Format: "text",
		},
	}
}

// LoadOptions carries the command line inputs that influence loading.
type LoadOptions struct {
	ConfigPath string
	RepoRoot   string
}

// Load builds the configuration from defaults, the first config file found
// and environment overrides, then validates it. The returned string names
// the configuration source.
//
// Search order:
//  1. opts.ConfigPath (--config)
//  2. $PROTOSYNC_CONFIG
//  3. <repo-root>/protosync.yml
//  4. <repo-root>/config/protosync.yml
func Load(opts LoadOptions) (*Config, string, error) {
	config := DefaultConfig()

	path, err := loadFromFile(&config, opts)
	if err != nil {
		return nil, "", err
	}

	applyEnv(&config)

	if err := config.Validate(); err != nil {
		return nil, "", fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, path, nil
}

func loadFromFile(config *Config, opts LoadOptions) (string, error) {
	// An explicit path must exist.
	if opts.ConfigPath != "" {
		if err := readInto(config, opts.ConfigPath); err != nil {
			return "", err
		}
		return opts.ConfigPath, nil
	}

	candidates := []string{os.Getenv("PROTOSYNC_CONFIG")}
	if opts.RepoRoot != "" {
		candidates = append(candidates,
			filepath.Join(opts.RepoRoot, FileName),
			filepath.Join(opts.RepoRoot, "config", FileName),
		)
	}

	for _, path := range candidates {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		if err := readInto(config, path); err != nil {
			return "", err
		}
		return path, nil
	}

	return "built-in defaults (no config file found)", nil
}

func readInto(config *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return perrors.NewNotFoundError("config file", path)
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("%w: failed to parse config file %s: %v", perrors.ErrInvalidConfig, path, err)
	}
	return nil
}

func applyEnv(config *Config) {
	if val := os.Getenv("PROTOSYNC_SERVICES_ROOT"); val != "" {
		config.ServicesRoot = val
	}
	if val := os.Getenv("PROTOSYNC_PYTHON"); val != "" {
		config.Python = val
	}
	if val := os.Getenv("PROTOSYNC_LOG_LEVEL"); val != "" {
		config.Logging.Level = val
	}
	if val := os.Getenv("PROTOSYNC_METRICS_FILE"); val != "" {
		config.MetricsFile = val
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		config.NoColor = true
	}
}

// Validate checks required fields. It reports the first problem found.
func (c *Config) Validate() error {
	required := []struct{ key, value string }{
		{"proto_dir", c.ProtoDir},
		{"manifest", c.Manifest},
		{"release_notes", c.ReleaseNotes},
		{"package.id", c.Package.ID},
		{"package.import_name", c.Package.ImportName},
		{"package.source", c.Package.Source},
		{"python", c.Python},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf("%w: %s is required", perrors.ErrInvalidConfig, field.key)
		}
	}

	if filepath.IsAbs(c.ProtoDir) || strings.Contains(c.ProtoDir, string(filepath.Separator)) {
		return fmt.Errorf("%w: proto_dir must be a single directory name, got %q", perrors.ErrInvalidConfig, c.ProtoDir)
	}

	// A ref belongs to each service's pin, never to the source itself.
	src := c.Package.Source
	if at := strings.LastIndex(src, "@"); at > strings.LastIndex(src, "/") {
		return fmt.Errorf("%w: package.source must not carry a ref: %s", perrors.ErrInvalidConfig, src)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: invalid log level: %s", perrors.ErrInvalidConfig, c.Logging.Level)
	}

	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: invalid log format: %s", perrors.ErrInvalidConfig, c.Logging.Format)
	}

	return nil
}

// ServicesRootFor resolves services_root against the repository root.
func (c *Config) ServicesRootFor(repoRoot string) string {
	if filepath.IsAbs(c.ServicesRoot) {
		return filepath.Clean(c.ServicesRoot)
	}
	return filepath.Join(repoRoot, c.ServicesRoot)
}

// CentralProtoRoot is the protocol root of the central repository.
func (c *Config) CentralProtoRoot(repoRoot string) string {
	return filepath.Join(repoRoot, c.ProtoDir)
}

// CentralManifest is the manifest carrying the repository version.
func (c *Config) CentralManifest(repoRoot string) string {
	return filepath.Join(repoRoot, c.Manifest)
}

// ProbeStatement returns the python statement used to check that a service
// can import the generated package, e.g.
// "from mysingle_protos.protos.common import metadata_pb2".
func (c *Config) ProbeStatement() string {
	module := c.Package.ImportName + "." + c.ImportProbe
	if dot := strings.LastIndex(module, "."); dot > 0 {
		return fmt.Sprintf("from %s import %s", module[:dot], module[dot+1:])
	}
	return "import " + module
}

// FindRepoRoot walks up from start to the nearest directory holding the
// protocol directory together with buf.yaml or protosync.yml. It returns
// start when no ancestor qualifies.
func FindRepoRoot(start, protoDir string) string {
	abs, err := filepath.Abs(start)
	if err != nil {
		return start
	}

	for dir := abs; ; {
		if isDir(filepath.Join(dir, protoDir)) &&
			(exists(filepath.Join(dir, "buf.yaml")) || exists(filepath.Join(dir, FileName))) {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return abs
		}
		dir = parent
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
