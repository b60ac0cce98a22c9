// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package server

import (
	"bufio"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

const (
	// IndexFile is served for the root path.
	IndexFile = "README.md"

	entryMarkdown = "markdown"
	entryFile     = "file"
	readmeLabel   = "README"
)

// Entry is one file in the sidebar.
type Entry struct {
	Name        string
	DisplayName string
	Path        string
	Type        string
	Active      bool
}

// IsMarkdown reports whether the entry is rendered as a document.
func (e Entry) IsMarkdown() bool {
	return e.Type == entryMarkdown
}

// FileTree lists the files below root of fsys, README.md first and the rest sorted by path.
// Markdown files are labelled with their first heading. Hidden files and directories are skipped.
func FileTree(fsys afero.Fs, root, current string) ([]Entry, error) {
	var entries []Entry

	err := afero.Walk(fsys, root, func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}

		name := info.Name()
		if p != root && strings.HasPrefix(name, ".") {
			if info.IsDir() {
				return fs.SkipDir
			}

			return nil
		}

		if info.IsDir() {
			return nil
		}

		rel := strings.TrimPrefix(path.Clean(strings.TrimPrefix(p, root)), "/")

		e := Entry{
			Name:        name,
			DisplayName: name,
			Path:        rel,
			Type:        entryFile,
			Active:      rel == current,
		}

		if isMarkdown(name) {
			e.Type = entryMarkdown
			e.DisplayName = displayName(fsys, p, name)
		}

		entries = append(entries, e)

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		ri, rj := entries[i].Path == IndexFile, entries[j].Path == IndexFile
		if ri != rj {
			return ri
		}

		return entries[i].Path < entries[j].Path
	})

	return entries, nil
}

func displayName(fsys afero.Fs, p, name string) string {
	if strings.EqualFold(name, IndexFile) {
		return readmeLabel
	}

	if t := Title(fsys, p); t != "" {
		return t
	}

	return name[:len(name)-len(path.Ext(name))]
}

// Title returns the text of the first Markdown heading in the file, or "".
func Title(fsys afero.Fs, p string) string {
	f, err := fsys.Open(p)
	if err != nil {
		return ""
	}
	defer f.Close() //nolint:errcheck

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(line, "#") {
			continue
		}

		if t := strings.TrimSpace(strings.TrimLeft(line, "#")); t != "" {
			return t
		}
	}

	return ""
}

func isMarkdown(name string) bool {
	return strings.EqualFold(path.Ext(name), ".md")
}
