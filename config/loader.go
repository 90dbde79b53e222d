package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FileSystem interface for file operations (useful for testing).
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// LoaderConfig holds explicit file paths; empty fields fall back to the
// search paths.
type LoaderConfig struct {
	ConfigFile string
	EnvFile    string
}

// Resolver finds config and env files.
type Resolver struct {
	FileSystem FileSystem
}

// ResolvedFiles contains the resolved config and env file paths.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// ResolveFiles returns explicit paths if provided, otherwise searches the
// standard locations.
func (r *Resolver) ResolveFiles(opts LoaderConfig) ResolvedFiles {
	resolved := ResolvedFiles{
		ConfigFile: opts.ConfigFile,
		EnvFile:    opts.EnvFile,
	}
	if resolved.ConfigFile == "" {
		resolved.ConfigFile = r.findFirst(
			"./pipekit.yaml",
			"./pipekit.yml",
			"./config/pipekit.yaml",
			"./config/pipekit.yml",
		)
	}
	if resolved.EnvFile == "" {
		resolved.EnvFile = r.findFirst(".env.pipekit", ".env")
	}
	return resolved
}

func (r *Resolver) findFirst(paths ...string) string {
	for _, path := range paths {
		if r.FileSystem.Exists(path) {
			return path
		}
	}
	return ""
}

// Load resolves, reads and validates the configuration.
func Load(opts LoaderConfig) (*Config, error) {
	return load(opts, &RealFileSystem{})
}

func load(opts LoaderConfig, fs FileSystem) (*Config, error) {
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles(opts)

	if files.EnvFile != "" {
		if err := fs.LoadEnv(files.EnvFile); err != nil {
			return nil, fmt.Errorf("loading env file %s: %w", files.EnvFile, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix("PIPEKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if files.ConfigFile != "" {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", files.ConfigFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}
