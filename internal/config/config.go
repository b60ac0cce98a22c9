// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/codeviewx/internal/i18n"
	"github.com/matt-FFFFFF/codeviewx/internal/llm"
	"github.com/spf13/afero"
)

const (
	// DefaultFileName is looked up in the working directory when no file is named.
	DefaultFileName = ".codeviewx.yaml"
	// DefaultOutputDirectory is where documents are written.
	DefaultOutputDirectory = "docs"
	// DefaultRecursionLimit bounds the agent's super-steps.
	DefaultRecursionLimit = 1000
)

var (
	// ErrReadConfig is returned when the configuration file cannot be read.
	ErrReadConfig = errors.New("failed to read configuration file")
	// ErrInvalidYaml is returned when the configuration file is not valid YAML for Config.
	ErrInvalidYaml = errors.New("invalid YAML")
	// ErrInvalidConfig wraps all validation problems.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config is the effective run configuration.
type Config struct {
	Provider        string `yaml:"provider,omitempty"`
	Model           string `yaml:"model,omitempty"`
	BaseURL         string `yaml:"base_url,omitempty"`
	OutputDirectory string `yaml:"output_directory"`
	DocLanguage     string `yaml:"doc_language,omitempty"`
	UILanguage      string `yaml:"ui_language,omitempty"`
	RecursionLimit  int    `yaml:"recursion_limit"`
}

// Default returns the configuration used when no file is present.
// Empty languages are detected from the locale.
func Default() Config {
	return Config{
		OutputDirectory: DefaultOutputDirectory,
		RecursionLimit:  DefaultRecursionLimit,
	}
}

// Load reads path over the defaults.
// A missing file is not an error unless required is set.
func Load(path string, required bool) (Config, error) {
	cfg := Default()

	data, err := afero.ReadFile(FsFactory(), path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return cfg, nil
		}

		return cfg, errors.Join(ErrReadConfig, err)
	}

	if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
		return cfg, fmt.Errorf("%w: %s: %s", ErrInvalidYaml, path, yaml.FormatError(err, false, true))
	}

	return cfg, nil
}

// Overrides holds explicitly set values. Nil fields leave the config unchanged.
type Overrides struct {
	Provider        *string
	Model           *string
	BaseURL         *string
	OutputDirectory *string
	DocLanguage     *string
	UILanguage      *string
	RecursionLimit  *int
}

// Apply copies the non-nil overrides into c.
func (c *Config) Apply(o Overrides) {
	set(&c.Provider, o.Provider)
	set(&c.Model, o.Model)
	set(&c.BaseURL, o.BaseURL)
	set(&c.OutputDirectory, o.OutputDirectory)
	set(&c.DocLanguage, o.DocLanguage)
	set(&c.UILanguage, o.UILanguage)
	set(&c.RecursionLimit, o.RecursionLimit)
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Validate reports every problem found.
func (c Config) Validate() error {
	var result error

	providers := []string{"", llm.ProviderOpenAI, llm.ProviderGemini}
	if !slices.Contains(providers, strings.ToLower(c.Provider)) {
		result = multierror.Append(result, fmt.Errorf("provider %q is not one of %s", c.Provider,
			strings.Join(providers[1:], ", ")))
	}

	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			result = multierror.Append(result, fmt.Errorf("base_url %q is not an http(s) URL", c.BaseURL))
		}
	}

	if strings.TrimSpace(c.OutputDirectory) == "" {
		result = multierror.Append(result, errors.New("output_directory must not be empty"))
	}

	if c.DocLanguage != "" && !i18n.ValidDocLanguage(c.DocLanguage) {
		result = multierror.Append(result, fmt.Errorf("doc_language %q is not one of %s", c.DocLanguage,
			strings.Join(i18n.DocLanguages, ", ")))
	}

	if c.UILanguage != "" && !slices.Contains(i18n.UILanguages, strings.ToLower(c.UILanguage)) {
		result = multierror.Append(result, fmt.Errorf("ui_language %q is not one of %s", c.UILanguage,
			strings.Join(i18n.UILanguages, ", ")))
	}

	if c.RecursionLimit <= 0 {
		result = multierror.Append(result, fmt.Errorf("recursion_limit must be positive, got %d", c.RecursionLimit))
	}

	if result != nil {
		return errors.Join(ErrInvalidConfig, result)
	}

	return nil
}

// Language is a resolved language and whether it was detected from the locale.
type Language struct {
	Value        string
	AutoDetected bool
}

// ResolveDocLanguage returns the configured document language or the detected one.
func (c Config) ResolveDocLanguage() Language {
	if c.DocLanguage != "" {
		return Language{Value: c.DocLanguage}
	}

	return Language{Value: i18n.DetectDocLanguage(), AutoDetected: true}
}

// ResolveUILanguage returns the configured UI language or the detected one.
func (c Config) ResolveUILanguage() Language {
	if c.UILanguage != "" {
		return Language{Value: strings.ToLower(c.UILanguage)}
	}

	return Language{Value: i18n.DetectUILanguage(), AutoDetected: true}
}

// LLMSettings maps the provider fields onto llm.Settings.
func (c Config) LLMSettings() llm.Settings {
	return llm.Settings{
		Provider: c.Provider,
		Model:    c.Model,
		BaseURL:  c.BaseURL,
	}
}

// Marshal renders the config as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
