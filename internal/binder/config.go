// Package binder implements the funcast variant-binding generator.
//
// It provides the build-time pipeline that turns funcast.yaml declarations
// into Go source: for every declared (container, variant, payload) binding it
// emits the unconditional payload→container conversion edge and the variant
// accessors of the cast.Tagged protocol.
//
// The binder handles:
//   - Parsing and validating funcast.yaml configuration
//   - Introspecting the target Go package via go/packages
//   - Generating the per-package funcast_gen.go file
package binder

import (
	"fmt"
	"go/token"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultOutput is the generated file name used when the config omits one.
const DefaultOutput = "funcast_gen.go"

// Config represents the top-level funcast.yaml configuration.
type Config struct {
	// Package is the directory of the Go package containing the container
	// and payload types, relative to the config file. Defaults to ".".
	Package string `yaml:"package,omitempty"`

	// Output is the generated file name, relative to Package.
	// Defaults to "funcast_gen.go".
	Output string `yaml:"output,omitempty"`

	// Bindings lists the variant bindings to generate.
	Bindings []Binding `yaml:"bindings"`
}

// Binding ties one variant of a tagged-union container to its payload type.
type Binding struct {
	// Container is the container type name (e.g. "FooBar").
	Container string `yaml:"container"`

	// Variant is the variant tag. It names the container field that holds
	// the payload, so the field must exist with type *Payload.
	Variant string `yaml:"variant"`

	// Payload is the payload type name bound to the variant (e.g. "Bar").
	// No two variants of one container may share a payload type; the typed
	// accessors would be ambiguous otherwise.
	Payload string `yaml:"payload"`
}

// LoadConfig reads and parses a funcast.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses funcast.yaml content from bytes.
// The path argument is used only for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

// FindConfig searches for funcast.yaml starting from dir and walking up to
// parent directories, similar to how .gitignore is found.
// Returns the path to the config file and nil error if found,
// or empty string and nil error if not found.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, "funcast.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		// Also check funcast.yml (common alternative)
		candidate = filepath.Join(dir, "funcast.yml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", nil
		}
		dir = parent
	}
}

// validate checks the configuration for semantic errors.
func (c *Config) validate(path string) error {
	if len(c.Bindings) == 0 {
		return fmt.Errorf("%s: no bindings defined", path)
	}

	if c.Output != "" {
		if filepath.Base(c.Output) != c.Output {
			return fmt.Errorf("%s: output %q must be a bare file name", path, c.Output)
		}
		if filepath.Ext(c.Output) != ".go" {
			return fmt.Errorf("%s: output %q must be a .go file", path, c.Output)
		}
	}

	seenVariants := make(map[[2]string]int) // (container, variant) → binding index
	seenPayloads := make(map[[2]string]int) // (container, payload) → binding index

	for i, b := range c.Bindings {
		for _, field := range []struct {
			name, value string
		}{
			{"container", b.Container},
			{"variant", b.Variant},
			{"payload", b.Payload},
		} {
			if field.value == "" {
				return fmt.Errorf("%s: bindings[%d]: %s is required", path, i, field.name)
			}
			if !token.IsIdentifier(field.value) {
				return fmt.Errorf("%s: bindings[%d]: %s %q is not a valid Go identifier",
					path, i, field.name, field.value)
			}
		}

		variantKey := [2]string{b.Container, b.Variant}
		if prev, ok := seenVariants[variantKey]; ok {
			return fmt.Errorf("%s: bindings[%d]: variant %s of %s already bound by bindings[%d]",
				path, i, b.Variant, b.Container, prev)
		}
		seenVariants[variantKey] = i

		// One payload type per container. This keeps the typed accessors
		// unambiguous and guarantees a single payload→container edge per
		// ordered type pair.
		payloadKey := [2]string{b.Container, b.Payload}
		if prev, ok := seenPayloads[payloadKey]; ok {
			return fmt.Errorf("%s: bindings[%d]: payload %s already bound to variant %s of %s by bindings[%d]",
				path, i, b.Payload, c.Bindings[prev].Variant, b.Container, prev)
		}
		seenPayloads[payloadKey] = i
	}

	return nil
}

// setDefaults fills in default values for omitted fields.
func (c *Config) setDefaults() {
	if c.Package == "" {
		c.Package = "."
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
}

// PackageDir resolves the target package directory against the directory
// containing the config file.
func (c *Config) PackageDir(configDir string) string {
	if filepath.IsAbs(c.Package) {
		return c.Package
	}
	return filepath.Join(configDir, c.Package)
}

// Containers returns the distinct container names in first-appearance order.
func (c *Config) Containers() []string {
	seen := make(map[string]bool)
	var names []string
	for _, b := range c.Bindings {
		if !seen[b.Container] {
			names = append(names, b.Container)
			seen[b.Container] = true
		}
	}
	return names
}
