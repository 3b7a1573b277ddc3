package config

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"

	"github.com/calvinalkan/taskstat/internal/extract"
)

// LoadMapping reads a flat name-to-name table. The format follows the
// extension: .json/.jsonc, .yaml/.yml or .toml.
func LoadMapping(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrMappingFile, path, err)
	}

	mapping, err := parseMapping(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrMappingFile, path, err)
	}

	return mapping, nil
}

func parseMapping(data []byte, ext string) (map[string]string, error) {
	mapping := map[string]string{}

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &mapping); err != nil {
			return nil, err
		}
	case ".toml":
		if err := toml.Unmarshal(data, &mapping); err != nil {
			return nil, err
		}
	case ".json", ".jsonc", "":
		standardized, err := hujson.Standardize(data)
		if err != nil {
			return nil, fmt.Errorf("invalid JSONC: %w", err)
		}

		if err := json.Unmarshal(standardized, &mapping); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported extension %q", ext)
	}

	return mapping, nil
}

// LoadExclude reads one item per line. Blank lines and lines starting
// with # are skipped.
func LoadExclude(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrExcludeFile, path, err)
	}

	var names []string

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		names = append(names, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrExcludeFile, path, err)
	}

	return names, nil
}

// Extractor builds the item extractor for cfg. Inline mapping entries
// win over the mapping file. The exclusion set is the domain's built-in
// list plus the inline list plus the exclude file.
func (c Config) Extractor() (extract.Extractor, error) {
	domain, err := extract.ParseDomain(c.Use)
	if err != nil {
		return extract.Extractor{}, err
	}

	mapping := map[string]string{}

	if c.MappingFile != "" {
		fromFile, err := LoadMapping(c.MappingFile)
		if err != nil {
			return extract.Extractor{}, err
		}

		maps.Copy(mapping, fromFile)
	}

	maps.Copy(mapping, c.Mapping)

	names := append(extract.DefaultExclude(domain), c.Exclude...)

	if c.ExcludeFile != "" {
		fromFile, err := LoadExclude(c.ExcludeFile)
		if err != nil {
			return extract.Extractor{}, err
		}

		names = append(names, fromFile...)
	}

	return extract.Extractor{
		Domain:  domain,
		Mapping: mapping,
		Exclude: extract.NewExclude(names),
	}, nil
}
