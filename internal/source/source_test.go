// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchLocalDirectory(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "pkg"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "main.go"), []byte("package main\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "pkg", "a.go"), []byte("package pkg\n"), 0o644))

	dir, cleanup, err := Fetch(context.Background(), src)
	require.NoError(t, err)

	b, err := os.ReadFile(filepath.Join(dir, "pkg", "a.go"))
	require.NoError(t, err)
	assert.Equal(t, "package pkg\n", string(b))

	fi, err := os.Lstat(dir)
	require.NoError(t, err)
	assert.Zero(t, fi.Mode()&os.ModeSymlink, "source should be copied, not linked")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "pkg", "a.go"), []byte("changed\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs"), 0o755))

	b, err = os.ReadFile(filepath.Join(src, "pkg", "a.go"))
	require.NoError(t, err)
	assert.Equal(t, "package pkg\n", string(b), "writes must not reach the original tree")

	_, err = os.Stat(filepath.Join(src, "docs"))
	assert.True(t, os.IsNotExist(err))

	cleanup()

	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestFetchLocalDirectorySkipsSymlinks(t *testing.T) {
	outside := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outside, "secret.txt"), []byte("secret"), 0o644))

	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "main.go"), []byte("package main\n"), 0o644))
	require.NoError(t, os.Symlink(outside, filepath.Join(src, "link")))

	dir, cleanup, err := Fetch(context.Background(), "file::"+src)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	assert.FileExists(t, filepath.Join(dir, "main.go"))

	_, err = os.Lstat(filepath.Join(dir, "link"))
	assert.True(t, os.IsNotExist(err))
}

func TestFetchErrors(t *testing.T) {
	tcs := []struct {
		name string
		src  string
		err  error
	}{
		{name: "empty", src: "", err: ErrEmptySource},
		{name: "unreachable git", src: "git::http://notexist.invalid/repo.git", err: ErrFetch},
		{name: "missing local dir", src: filepath.Join(t.TempDir(), "missing"), err: ErrFetch},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			dir, cleanup, err := Fetch(context.Background(), tc.src)
			require.ErrorIs(t, err, tc.err)
			assert.Empty(t, dir)
			require.NotNil(t, cleanup)
			cleanup()
		})
	}
}
