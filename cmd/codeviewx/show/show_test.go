// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package show

import (
	"bytes"
	"context"
	"testing"

	"github.com/matt-FFFFFF/codeviewx/internal/tools/filesystem"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestShow(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "docs/README.md", []byte("# Overview\n\nThe **main** entry point.\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "docs/02-architecture.md", []byte("# Architecture\n"), 0o644))

	stubs := gostub.Stub(&filesystem.FsFactory, func() afero.Fs { return fs })
	defer stubs.Reset()

	testCases := []struct {
		name     string
		args     []string
		wantCode int
		want     string
	}{
		{name: "default readme", want: "Overview"},
		{name: "named file", args: []string{"docs/02-architecture.md"}, want: "Architecture"},
		{name: "missing file", args: []string{"docs/nope.md"}, wantCode: 1, want: "failed to read file"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer

			root := &cli.Command{
				Name:           "codeviewx",
				Commands:       []*cli.Command{NewCommand()},
				Writer:         &out,
				ErrWriter:      &out,
				ExitErrHandler: func(context.Context, *cli.Command, error) {},
			}

			err := root.Run(context.Background(), append([]string{"codeviewx", "show"}, tc.args...))

			if tc.wantCode != 0 {
				var ec cli.ExitCoder
				require.ErrorAs(t, err, &ec)
				assert.Equal(t, tc.wantCode, ec.ExitCode())
				assert.Contains(t, err.Error(), tc.want)

				return
			}

			require.NoError(t, err)
			assert.Contains(t, out.String(), tc.want)
		})
	}
}

func TestRender(t *testing.T) {
	out, err := Render("# Title\n\n- one\n- two\n", &bytes.Buffer{})
	require.NoError(t, err)

	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "one")
	assert.Contains(t, out, "two")
}
