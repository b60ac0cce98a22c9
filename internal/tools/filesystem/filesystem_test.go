// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package filesystem

import (
	"context"
	"testing"

	"github.com/matt-FFFFFF/codeviewx/internal/agent"
	tr "github.com/matt-FFFFFF/codeviewx/internal/toolregistry"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry(t *testing.T, fs afero.Fs) *tr.Registry {
	t.Helper()

	stubs := gostub.Stub(&FsFactory, func() afero.Fs {
		return fs
	})
	t.Cleanup(stubs.Reset)

	return tr.New(Register)
}

func exec(t *testing.T, r *tr.Registry, name string, args map[string]any) agent.ToolResult {
	t.Helper()

	res, err := r.Execute(context.Background(), agent.ToolCall{Name: name, Args: args})
	require.NoError(t, err)

	return res
}

func TestRegister(t *testing.T) {
	r := newRegistry(t, afero.NewMemMapFs())
	assert.Equal(t, []string{tr.ListDirectory, tr.ReadFile, tr.WriteFile}, r.Names())
}

func TestWriteFile_CreatesParents(t *testing.T) {
	fs := afero.NewMemMapFs()
	r := newRegistry(t, fs)

	res := exec(t, r, tr.WriteFile, map[string]any{
		"file_path": "docs/guide/README.md",
		"content":   "# Title\n",
	})

	assert.Equal(t, "✅ Successfully wrote file: docs/guide/README.md (0.01 KB)", res.Content)
	assert.Equal(t, map[string]string{"docs/guide/README.md": "# Title\n"}, res.Files)

	data, err := afero.ReadFile(fs, "docs/guide/README.md")
	require.NoError(t, err)
	assert.Equal(t, "# Title\n", string(data))
}

func TestWriteFile_MissingContent(t *testing.T) {
	r := newRegistry(t, afero.NewMemMapFs())

	_, err := r.Execute(context.Background(), agent.ToolCall{
		Name: tr.WriteFile,
		Args: map[string]any{"file_path": "x.md"},
	})
	require.ErrorIs(t, err, tr.ErrInvalidArgument)
}

func TestWriteFile_ReadOnlyFs(t *testing.T) {
	r := newRegistry(t, afero.NewReadOnlyFs(afero.NewMemMapFs()))

	res := exec(t, r, tr.WriteFile, map[string]any{"file_path": "a.md", "content": "x"})
	assert.Contains(t, res.Content, agent.ToolErrorPrefix+"failed to write file")
	assert.Nil(t, res.Files)
}

func TestReadFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "main.go", []byte("package main\n\nfunc main() {}"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "bin.dat", []byte{0xff, 0xfe, 0x00}, 0o644))

	r := newRegistry(t, fs)

	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "text file",
			path: "main.go",
			want: "File: main.go (0.03 KB, 3 lines)\n" +
				"============================================================\n" +
				"package main\n\nfunc main() {}",
		},
		{
			name: "missing file",
			path: "nope.go",
			want: "❌ Error: file 'nope.go' does not exist",
		},
		{
			name: "binary file",
			path: "bin.dat",
			want: "❌ Error: file 'bin.dat' is not a text file or is not UTF-8 encoded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := exec(t, r, tr.ReadFile, map[string]any{"file_path": tt.path})
			assert.Equal(t, tt.want, res.Content)
		})
	}
}

func TestListDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/project/src", 0o755))
	require.NoError(t, fs.MkdirAll("/project/cmd", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/project/z.md", []byte("z"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/project/go.mod", []byte("module x"), 0o644))

	r := newRegistry(t, fs)

	res := exec(t, r, tr.ListDirectory, map[string]any{"directory": "/project"})
	assert.Equal(t, "Directory: /project\n"+
		"Total: 2 directories, 2 files\n\n"+
		"Directories:\n📁 cmd/\n📁 src/\n\n"+
		"Files:\n📄 go.mod\n📄 z.md", res.Content)

	res = exec(t, r, tr.ListDirectory, map[string]any{"directory": "/missing"})
	assert.Equal(t, "❌ Error: directory '/missing' does not exist", res.Content)
}

func TestListDirectory_Empty(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/empty", 0o755))

	r := newRegistry(t, fs)
	res := exec(t, r, tr.ListDirectory, map[string]any{"directory": "/empty"})
	assert.Equal(t, "Directory: /empty\nTotal: 0 directories, 0 files\n\n", res.Content)
}
