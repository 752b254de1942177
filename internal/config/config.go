// Package config loads the optional per-project compiler configuration.
//
// A file named .goianinha.yaml in the working directory can set defaults
// that the command-line flags override:
//
//	output: build/programa.asm
//	dump_ast: true
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up in the working
// directory.
const FileName = ".goianinha.yaml"

// DefaultOutput is the assembly file written when neither the config file
// nor the -o flag names one.
const DefaultOutput = "output.asm"

// SourceFileExt is the recognized source file extension.
const SourceFileExt = ".g"

// Config holds the project-level compiler settings.
type Config struct {
	// Output is the path of the generated assembly file.
	Output string `yaml:"output"`

	// DumpAST prints the syntax tree to stdout after parsing.
	DumpAST bool `yaml:"dump_ast"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{Output: DefaultOutput}
}

// Load reads the configuration file from dir, falling back to Default
// when the file does not exist. A malformed file is an error: silently
// ignoring it would make the compiler write to an unexpected path.
func Load(dir string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("falha ao ler %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("configuracao invalida em %s: %w", path, err)
	}
	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}
	return cfg, nil
}
