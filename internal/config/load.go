package config

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(cfg, path); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}

	applyFlags(cfg)

	return cfg, nil
}

// loadFromFile reads path and merges it into cfg.
// Files ending in .yaml or .yml hold a flat YAML mapping; anything else is
// the line-based "key value" format.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAML(cfg, data)
	default:
		return parseFlat(cfg, data)
	}
}

// parseFlat parses whitespace-separated "key value" lines.
// Blank lines and lines starting with '#' are skipped.
func parseFlat(cfg *Config, data []byte) error {
	a := newAssigner(cfg)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return fmt.Errorf("%w at line %d: want \"key value\", got %q", ErrSyntax, lineNo, line)
		}
		if err := a.set(fields[0], fields[1]); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	return a.finish()
}

// parseYAML parses a flat YAML mapping of scalars through the same key
// rules as the line format.
func parseYAML(cfg *Config, data []byte) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}

	a := newAssigner(cfg)
	if len(doc.Content) == 0 {
		return a.finish()
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: top level must be a mapping", ErrSyntax)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return fmt.Errorf("%w at line %d: %s must be a scalar", ErrSyntax, key.Line, key.Value)
		}
		if err := a.set(key.Value, value.Value); err != nil {
			return fmt.Errorf("line %d: %w", key.Line, err)
		}
	}

	return a.finish()
}
