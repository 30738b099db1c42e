// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"slices"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Galih066/lara-task/lib/collection"
)

// Search modes for the view's search box.
const (
	SearchSubstring = "substring"
	SearchFuzzy     = "fuzzy"
)

// Config is the taskboard configuration.
type Config struct {
	Data          DataConfig          `yaml:"data"`
	Backend       BackendConfig       `yaml:"backend"`
	View          ViewConfig          `yaml:"view"`
	Notifications NotificationsConfig `yaml:"notifications"`
}

// DataConfig names the snapshot files the in-process backend loads.
type DataConfig struct {
	// Tasks is the task snapshot (JSON, JSONL, JSONC, optionally .zst
	// or .lz4 compressed).
	Tasks string `yaml:"tasks"`

	// Members is the member snapshot. Optional.
	Members string `yaml:"members"`
}

// BackendConfig selects the backend.
type BackendConfig struct {
	// Socket is the Unix socket of a running `taskboard serve`. Empty
	// means an in-process memory backend over the data files.
	Socket string `yaml:"socket"`

	// Timeout bounds each backend call. Default: 10s.
	Timeout time.Duration `yaml:"timeout"`
}

// ViewConfig holds the list defaults.
type ViewConfig struct {
	// PageSize is the number of rows per page. Default: 10.
	PageSize int `yaml:"page_size"`

	// SortKey is the initial sort key. Default: due_date.
	SortKey string `yaml:"sort_key"`

	// SortDirection is asc or desc. Default: asc.
	SortDirection string `yaml:"sort_direction"`

	// SearchMode is substring or fuzzy. Default: substring.
	SearchMode string `yaml:"search_mode"`
}

// NotificationsConfig controls the status bar notices.
type NotificationsConfig struct {
	// Duration is how long a notice stays visible. Default: 4s.
	Duration time.Duration `yaml:"duration"`

	// Max is the number of notices shown at once. Default: 3.
	Max int `yaml:"max"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Tasks:   "tasks.json",
			Members: "",
		},
		Backend: BackendConfig{
			Timeout: 10 * time.Second,
		},
		View: ViewConfig{
			PageSize:      10,
			SortKey:       "due_date",
			SortDirection: string(collection.Ascending),
			SearchMode:    SearchSubstring,
		},
		Notifications: NotificationsConfig{
			Duration: 4 * time.Second,
			Max:      3,
		},
	}
}

// Load reads the file named by TASKBOARD_CONFIG, or returns the
// defaults when it is unset. Environment overrides apply either way.
func Load() (*Config, error) {
	configPath := os.Getenv("TASKBOARD_CONFIG")
	if configPath == "" {
		cfg := Default()
		if err := cfg.applyEnvironment(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return LoadFile(configPath)
}

// LoadFile reads configuration from path over the defaults, expands
// ${VAR} and ${VAR:-default} in path values, and applies environment
// overrides.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.expandVariables()
	if err := cfg.applyEnvironment(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvironment applies TASKBOARD_DATA, TASKBOARD_SOCKET, and
// TASKBOARD_PAGE_SIZE.
func (c *Config) applyEnvironment() error {
	if value := os.Getenv("TASKBOARD_DATA"); value != "" {
		c.Data.Tasks = value
	}
	if value := os.Getenv("TASKBOARD_SOCKET"); value != "" {
		c.Backend.Socket = value
	}
	if value := os.Getenv("TASKBOARD_PAGE_SIZE"); value != "" {
		pageSize, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("TASKBOARD_PAGE_SIZE: %w", err)
		}
		c.View.PageSize = pageSize
	}
	return nil
}

func (c *Config) expandVariables() {
	c.Data.Tasks = expandVars(c.Data.Tasks)
	c.Data.Members = expandVars(c.Data.Members)
	c.Backend.Socket = expandVars(c.Backend.Socket)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} from the environment.
func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		return parts[2]
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Data.Tasks == "" && c.Backend.Socket == "" {
		errs = append(errs, errors.New("data.tasks is required unless backend.socket is set"))
	}
	if c.Backend.Timeout < 0 {
		errs = append(errs, fmt.Errorf("backend.timeout must not be negative, got %s", c.Backend.Timeout))
	}
	if c.View.PageSize < 0 {
		errs = append(errs, fmt.Errorf("view.page_size must not be negative, got %d", c.View.PageSize))
	}
	if _, err := collection.ParseDirection(c.View.SortDirection); err != nil {
		errs = append(errs, fmt.Errorf("view.sort_direction: %w", err))
	}
	searchModes := []string{SearchSubstring, SearchFuzzy}
	if !slices.Contains(searchModes, c.View.SearchMode) {
		errs = append(errs, fmt.Errorf("view.search_mode must be one of: %v", searchModes))
	}
	if c.Notifications.Max < 1 {
		errs = append(errs, fmt.Errorf("notifications.max must be at least 1, got %d", c.Notifications.Max))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Direction returns the parsed sort direction. Call after Validate.
func (c *Config) Direction() collection.Direction {
	direction, err := collection.ParseDirection(c.View.SortDirection)
	if err != nil {
		return collection.Ascending
	}
	return direction
}
