// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// DotEnvFileName is loaded from the working directory at startup.
const DotEnvFileName = ".env"

// ErrLoadDotEnv is returned when a .env file exists but cannot be parsed.
var ErrLoadDotEnv = errors.New("failed to load .env file")

// LoadDotEnv sets variables from the named files that are not already set.
// Missing files are skipped. It returns the names of the variables it set.
func LoadDotEnv(paths ...string) ([]string, error) {
	fsys := FsFactory()

	var loaded []string

	for _, p := range paths {
		f, err := fsys.Open(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}

			return loaded, errors.Join(ErrLoadDotEnv, err)
		}

		vars, err := godotenv.Parse(f)
		_ = f.Close()

		if err != nil {
			return loaded, fmt.Errorf("%w: %s: %w", ErrLoadDotEnv, p, err)
		}

		for k, v := range vars {
			if _, ok := os.LookupEnv(k); ok {
				continue
			}

			if err := os.Setenv(k, v); err != nil {
				return loaded, errors.Join(ErrLoadDotEnv, err)
			}

			loaded = append(loaded, k)
		}
	}

	return loaded, nil
}
