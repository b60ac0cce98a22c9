// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"testing"

	"github.com/matt-FFFFFF/codeviewx/internal/llm"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}

	stubs := gostub.StubFunc(&FsFactory, fs)
	t.Cleanup(stubs.Reset)

	return fs
}

func TestLoad(t *testing.T) {
	memFs(t, map[string]string{
		"/work/.codeviewx.yaml": `
provider: gemini
model: gemini-1.5-flash
output_directory: site
doc_language: Japanese
recursion_limit: 50
`,
		"/work/bad.yaml":     "provider: [",
		"/work/unknown.yaml": "colour: blue\n",
	})

	t.Run("file values over defaults", func(t *testing.T) {
		cfg, err := Load("/work/.codeviewx.yaml", false)
		require.NoError(t, err)
		assert.Equal(t, Config{
			Provider:        "gemini",
			Model:           "gemini-1.5-flash",
			OutputDirectory: "site",
			DocLanguage:     "Japanese",
			RecursionLimit:  50,
		}, cfg)
	})

	t.Run("missing optional file gives defaults", func(t *testing.T) {
		cfg, err := Load("/work/none.yaml", false)
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("missing required file", func(t *testing.T) {
		_, err := Load("/work/none.yaml", true)
		require.ErrorIs(t, err, ErrReadConfig)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := Load("/work/bad.yaml", false)
		require.ErrorIs(t, err, ErrInvalidYaml)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := Load("/work/unknown.yaml", false)
		require.ErrorIs(t, err, ErrInvalidYaml)
		assert.Contains(t, err.Error(), "colour")
	})
}

func TestApply(t *testing.T) {
	cfg := Default()
	cfg.Model = "from-file"
	cfg.DocLanguage = "French"

	model := "from-flag"
	limit := 10

	cfg.Apply(Overrides{Model: &model, RecursionLimit: &limit})

	assert.Equal(t, "from-flag", cfg.Model)
	assert.Equal(t, 10, cfg.RecursionLimit)
	assert.Equal(t, "French", cfg.DocLanguage)
	assert.Equal(t, DefaultOutputDirectory, cfg.OutputDirectory)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Default().Validate())

	ok := Config{
		Provider:        "OpenAI",
		BaseURL:         "https://api.deepseek.com/v1",
		OutputDirectory: "docs",
		DocLanguage:     "Chinese",
		UILanguage:      "zh",
		RecursionLimit:  1,
	}
	assert.NoError(t, ok.Validate())

	bad := Config{
		Provider:        "claude",
		BaseURL:         "ftp://example.com",
		OutputDirectory: " ",
		DocLanguage:     "Klingon",
		UILanguage:      "fr",
		RecursionLimit:  0,
	}

	err := bad.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)

	for _, want := range []string{"provider", "base_url", "output_directory", "doc_language", "ui_language", "recursion_limit"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestResolveLanguages(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "zh_CN.UTF-8")

	cfg := Default()
	assert.Equal(t, Language{Value: "Chinese", AutoDetected: true}, cfg.ResolveDocLanguage())
	assert.Equal(t, Language{Value: "zh", AutoDetected: true}, cfg.ResolveUILanguage())

	cfg.DocLanguage = "German"
	cfg.UILanguage = "EN"
	assert.Equal(t, Language{Value: "German"}, cfg.ResolveDocLanguage())
	assert.Equal(t, Language{Value: "en"}, cfg.ResolveUILanguage())
}

func TestLLMSettingsAndMarshal(t *testing.T) {
	cfg := Default()
	cfg.Provider = llm.ProviderOpenAI
	cfg.BaseURL = "http://localhost:11434/v1"

	assert.Equal(t, llm.Settings{Provider: "openai", BaseURL: "http://localhost:11434/v1"}, cfg.LLMSettings())

	out, err := cfg.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(out), "provider: openai")
	assert.Contains(t, string(out), "output_directory: docs")
	assert.Contains(t, string(out), "recursion_limit: 1000")
	assert.NotContains(t, string(out), "model:")
}

func TestLoadDotEnv(t *testing.T) {
	memFs(t, map[string]string{
		"/work/.env": "CODEVIEWX_TEST_NEW=from-file\nCODEVIEWX_TEST_SET=from-file\n",
		"/work/bad":  "KEY=\"unterminated\n",
	})

	t.Setenv("CODEVIEWX_TEST_NEW", "placeholder")
	require.NoError(t, os.Unsetenv("CODEVIEWX_TEST_NEW"))
	t.Setenv("CODEVIEWX_TEST_SET", "from-env")

	loaded, err := LoadDotEnv("/work/missing.env", "/work/.env")
	require.NoError(t, err)
	assert.Equal(t, []string{"CODEVIEWX_TEST_NEW"}, loaded)
	assert.Equal(t, "from-file", os.Getenv("CODEVIEWX_TEST_NEW"))
	assert.Equal(t, "from-env", os.Getenv("CODEVIEWX_TEST_SET"))

	_, err = LoadDotEnv("/work/bad")
	require.ErrorIs(t, err, ErrLoadDotEnv)
}
