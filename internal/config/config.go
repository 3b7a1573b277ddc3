// Package config loads layered JSONC configuration and the mapping and
// exclusion tables it references.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/tailscale/hujson"

	"github.com/calvinalkan/taskstat/internal/extract"
	"github.com/calvinalkan/taskstat/internal/filter"
	"github.com/calvinalkan/taskstat/internal/task"
)

// Config holds all configuration options.
type Config struct {
	// Analysis domain: tags, heading or body.
	Use      string   `json:"use"`
	TodoKeys []string `json:"todo_keys"`
	DoneKeys []string `json:"done_keys"`

	Mapping     map[string]string `json:"mapping,omitempty"`
	MappingFile string            `json:"mapping_file,omitempty"`
	Exclude     []string          `json:"exclude,omitempty"`
	ExcludeFile string            `json:"exclude_file,omitempty"`

	MaxResults       int    `json:"max_results"`
	MaxTags          int    `json:"max_tags"`
	MaxRelations     int    `json:"max_relations"`
	MinGroupSize     int    `json:"min_group_size"`
	MaxGroups        int    `json:"max_groups"`
	Buckets          int    `json:"buckets"`
	CategoryProperty string `json:"category_property"`
	// Color forces colour on or off; nil auto-detects a terminal.
	Color *bool `json:"color,omitempty"`

	// Filters are applied before any command-line filter.
	Filters []filter.Spec `json:"filters,omitempty"`
	// Groups replace computed groups with explicit item lists.
	Groups [][]string `json:"groups,omitempty"`

	// Resolved values (computed, not serialized)
	EffectiveCwd string        `json:"-"`
	Sources      ConfigSources `json:"-"`
}

// ConfigSources tracks which config files were loaded.
type ConfigSources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project or explicit config if loaded, empty otherwise
}

// Default limits.
const (
	DefaultMaxResults   = 10
	DefaultMaxTags      = 5
	DefaultMaxRelations = 5
	DefaultMinGroupSize = 2
	DefaultMaxGroups    = 5
	DefaultBuckets      = 50
	MinBuckets          = 20
)

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Use:              string(extract.DomainTags),
		TodoKeys:         slices.Clone(task.DefaultTodoKeys),
		DoneKeys:         slices.Clone(task.DefaultDoneKeys),
		MaxResults:       DefaultMaxResults,
		MaxTags:          DefaultMaxTags,
		MaxRelations:     DefaultMaxRelations,
		MinGroupSize:     DefaultMinGroupSize,
		MaxGroups:        DefaultMaxGroups,
		Buckets:          DefaultBuckets,
		CategoryProperty: task.DifficultyProperty,
	}
}

// ConfigFileName is the project config file name.
const ConfigFileName = ".taskstat.json"

// AppName names the directory of the global config file.
const AppName = "taskstat"

// getGlobalConfigPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/taskstat/config.json if set, otherwise ~/.config/taskstat/config.json.
// Returns empty string if home directory cannot be determined.
func getGlobalConfigPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, AppName, "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", AppName, "config.json")
	}

	return ""
}

// LoadConfigInput holds the inputs for LoadConfig.
type LoadConfigInput struct {
	WorkDirOverride string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath      string            // -c/--config flag value
	Env             map[string]string // environment variables
}

// LoadConfig loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config (~/.config/taskstat/config.json or $XDG_CONFIG_HOME/taskstat/config.json)
// 3. Project config file at default location (.taskstat.json, if exists)
// 4. Explicit config file via ConfigPath (replaces 3)
//
// Command-line flags are applied by the caller with Merge. Relative
// mapping and exclude file paths are resolved against the file declaring them.
func LoadConfig(input LoadConfigInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	cfg := DefaultConfig()

	globalCfg, globalPath, err := loadGlobalConfig(input.Env)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Global = globalPath
	cfg = Merge(cfg, globalCfg)

	projectCfg, projectPath, err := loadProjectConfig(workDir, input.ConfigPath)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Project = projectPath
	cfg = Merge(cfg, projectCfg)

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}

	cfg.EffectiveCwd = workDir

	return cfg, nil
}

func loadGlobalConfig(env map[string]string) (Config, string, error) {
	globalCfgPath := getGlobalConfigPath(env)
	if globalCfgPath == "" {
		return Config{}, "", nil
	}

	globalCfg, loaded, err := loadConfigFile(globalCfgPath, false)
	if err != nil || !loaded {
		return Config{}, "", err
	}

	return globalCfg, globalCfgPath, nil
}

// loadProjectConfig loads the project config file (.taskstat.json) or an explicit config file.
func loadProjectConfig(workDir, configPath string) (Config, string, error) {
	var cfgFile string

	var mustExist bool

	if configPath != "" {
		cfgFile = configPath
		if !filepath.IsAbs(cfgFile) {
			cfgFile = filepath.Join(workDir, cfgFile)
		}

		mustExist = true

		_, statErr := os.Stat(cfgFile)
		if statErr != nil {
			return Config{}, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
		}
	} else {
		cfgFile = filepath.Join(workDir, ConfigFileName)
	}

	fileCfg, loaded, err := loadConfigFile(cfgFile, mustExist)
	if err != nil || !loaded {
		return Config{}, "", err
	}

	return fileCfg, cfgFile, nil
}

// loadConfigFile loads a config file. If mustExist is false, missing files return zero config.
func loadConfigFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, false, nil
		}

		if mustExist {
			return Config{}, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
		}

		return Config{}, false, nil
	}

	cfg, parseErr := parseConfig(data)
	if parseErr != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, parseErr)
	}

	dir := filepath.Dir(path)
	cfg.MappingFile = resolvePath(dir, cfg.MappingFile)
	cfg.ExcludeFile = resolvePath(dir, cfg.ExcludeFile)

	return cfg, true, nil
}

func resolvePath(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(dir, path)
}

func parseConfig(data []byte) (Config, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	unmarshalErr := json.Unmarshal(standardized, &cfg)
	if unmarshalErr != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", unmarshalErr)
	}

	return cfg, nil
}

// Merge returns base with every value set in overlay applied on top.
func Merge(base, overlay Config) Config {
	if overlay.Use != "" {
		base.Use = overlay.Use
	}

	if len(overlay.TodoKeys) > 0 {
		base.TodoKeys = overlay.TodoKeys
	}

	if len(overlay.DoneKeys) > 0 {
		base.DoneKeys = overlay.DoneKeys
	}

	if overlay.Mapping != nil {
		base.Mapping = overlay.Mapping
	}

	if overlay.MappingFile != "" {
		base.MappingFile = overlay.MappingFile
	}

	if overlay.Exclude != nil {
		base.Exclude = overlay.Exclude
	}

	if overlay.ExcludeFile != "" {
		base.ExcludeFile = overlay.ExcludeFile
	}

	for _, field := range []struct{ dst, src *int }{
		{&base.MaxResults, &overlay.MaxResults},
		{&base.MaxTags, &overlay.MaxTags},
		{&base.MaxRelations, &overlay.MaxRelations},
		{&base.MinGroupSize, &overlay.MinGroupSize},
		{&base.MaxGroups, &overlay.MaxGroups},
		{&base.Buckets, &overlay.Buckets},
	} {
		if *field.src != 0 {
			*field.dst = *field.src
		}
	}

	if overlay.CategoryProperty != "" {
		base.CategoryProperty = overlay.CategoryProperty
	}

	if overlay.Color != nil {
		base.Color = overlay.Color
	}

	if overlay.Filters != nil {
		base.Filters = overlay.Filters
	}

	if overlay.Groups != nil {
		base.Groups = overlay.Groups
	}

	return base
}

// Validate checks value ranges and vocabularies.
func Validate(cfg Config) error {
	if _, err := extract.ParseDomain(cfg.Use); err != nil {
		return fmt.Errorf("%w: use: %w", ErrInvalidValue, err)
	}

	for _, keys := range [][]string{cfg.TodoKeys, cfg.DoneKeys} {
		if len(keys) == 0 {
			return fmt.Errorf("%w: %w", ErrInvalidValue, task.ErrNoStates)
		}

		for _, k := range keys {
			if err := task.ValidateKey(k); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidValue, err)
			}
		}
	}

	for name, n := range map[string]int{
		"max_results":    cfg.MaxResults,
		"max_tags":       cfg.MaxTags,
		"max_relations":  cfg.MaxRelations,
		"min_group_size": cfg.MinGroupSize,
		"max_groups":     cfg.MaxGroups,
	} {
		if n < 0 {
			return fmt.Errorf("%w: %s must be non-negative", ErrInvalidValue, name)
		}
	}

	if cfg.Buckets < MinBuckets {
		return fmt.Errorf("%w: buckets must be at least %d", ErrInvalidValue, MinBuckets)
	}

	return nil
}

// States returns the configured state vocabulary.
func (c Config) States() task.States {
	return task.States{Todo: slices.Clone(c.TodoKeys), Done: slices.Clone(c.DoneKeys)}
}
