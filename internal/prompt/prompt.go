// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package prompt loads the embedded system prompt templates.
package prompt

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"text/template"
)

// DocumentEngineer is the system prompt used for documentation runs.
const DocumentEngineer = "DocumentEngineer"

const ext = ".md"

//go:embed prompts/*.md
var prompts embed.FS

var (
	// ErrPromptNotFound is returned for a name without an embedded template.
	ErrPromptNotFound = errors.New("prompt not found")
	// ErrTemplateVariable is returned when a template refers to a variable that was not supplied.
	ErrTemplateVariable = errors.New("prompt template variable error")
	// ErrTemplateParse is returned when a template cannot be parsed.
	ErrTemplateParse = errors.New("prompt template parse error")
)

// Vars are the values substituted into a template.
type Vars map[string]any

// DocumentVars returns the variables expected by DocumentEngineer.
func DocumentVars(workingDir, outputDir, docLanguage string) Vars {
	return Vars{
		"WorkingDirectory": workingDir,
		"OutputDirectory":  outputDir,
		"DocLanguage":      docLanguage,
	}
}

// Load renders the named template. With nil vars the raw template text is returned.
func Load(name string, vars Vars) (string, error) {
	raw, err := prompts.ReadFile(path.Join("prompts", name+ext))
	if err != nil {
		return "", fmt.Errorf("%w: %s%s", ErrPromptNotFound, name, ext)
	}

	if vars == nil {
		return string(raw), nil
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return "", errors.Join(ErrTemplateParse, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any(vars)); err != nil {
		return "", errors.Join(ErrTemplateVariable, err)
	}

	return buf.String(), nil
}

// Names lists the embedded templates.
func Names() []string {
	entries, err := fs.ReadDir(prompts, "prompts")
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ext))
	}

	sort.Strings(names)

	return names
}
