// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package source fetches a remote project into a temporary directory so it can be documented.
//
// Sources use Hashicorp's go-getter syntax, see https://github.com/hashicorp/go-getter.
// Examples are "github.com/org/repo", "git::https://example.com/repo.git?ref=v1.0.0",
// "https://example.com/project.tar.gz" and "s3::https://s3.amazonaws.com/bucket/project".
package source

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter/v2"
	"github.com/matt-FFFFFF/codeviewx/internal/ctxlog"
	"github.com/spf13/afero"
)

const (
	tempDirPattern  = "codeviewx-source-*"
	fileForcePrefix = "file::"
)

var (
	// ErrEmptySource is returned when no source is given.
	ErrEmptySource = errors.New("source must not be empty")
	// ErrFetch is returned when the source cannot be retrieved.
	ErrFetch = errors.New("failed to fetch source")
)

// Fetch downloads src into a new temporary directory and returns that directory.
// The returned cleanup removes it and is safe to call when err is non-nil.
func Fetch(ctx context.Context, src string) (string, func(), error) {
	noop := func() {}

	if src == "" {
		return "", noop, ErrEmptySource
	}

	tmpDir, err := os.MkdirTemp("", tempDirPattern)
	if err != nil {
		return "", noop, errors.Join(ErrFetch, err)
	}

	cleanup := func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			ctxlog.Warn(ctx, "failed to remove fetched source", "dir", tmpDir, "error", err)
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		cleanup()
		return "", noop, errors.Join(ErrFetch, err)
	}

	dst := filepath.Join(tmpDir, "src")

	// go-getter links local directories instead of copying them, which would
	// let the agent write into the original tree.
	if local, ok := localDir(src, wd); ok {
		ctxlog.Debug(ctx, "copying local source", "src", local, "dst", dst)

		if err := copyDir(afero.NewOsFs(), local, dst); err != nil {
			cleanup()
			return "", noop, errors.Join(ErrFetch, err)
		}

		return dst, cleanup, nil
	}

	cli := getter.Client{
		DisableSymlinks: true,
	}

	req := &getter.Request{
		Src:     src,
		Dst:     dst,
		Pwd:     wd,
		GetMode: getter.ModeDir,
		Copy:    true,
	}

	ctxlog.Debug(ctx, "fetching source", "src", src, "dst", req.Dst)

	res, err := cli.Get(ctx, req)
	if err != nil {
		cleanup()
		return "", noop, errors.Join(ErrFetch, err)
	}

	return res.Dst, cleanup, nil
}

// localDir reports whether src names an existing local directory.
func localDir(src, wd string) (string, bool) {
	path := strings.TrimPrefix(src, fileForcePrefix)
	if !filepath.IsAbs(path) {
		path = filepath.Join(wd, path)
	}

	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return "", false
	}

	return path, true
}

// copyDir copies the regular files and directories under src to dst.
// Symlinks are skipped.
func copyDir(fsys afero.Fs, src, dst string) error {
	return afero.Walk(fsys, src, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		target := filepath.Join(dst, rel)

		switch {
		case info.IsDir():
			return fsys.MkdirAll(target, info.Mode().Perm()|0o700)
		case info.Mode().IsRegular():
			data, err := afero.ReadFile(fsys, path)
			if err != nil {
				return err
			}

			return afero.WriteFile(fsys, target, data, info.Mode().Perm())
		default:
			return nil
		}
	})
}
