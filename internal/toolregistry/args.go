// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package toolregistry

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// StringArg returns the required string argument key.
func StringArg(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return "", fmt.Errorf("%w: %s is required", ErrInvalidArgument, key)
	}

	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", ErrInvalidArgument, key, v)
	}

	return s, nil
}

// OptionalStringArg returns the string argument key, or def when it is absent or empty.
func OptionalStringArg(args map[string]any, key, def string) (string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return def, nil
	}

	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", ErrInvalidArgument, key, v)
	}

	if s == "" {
		return def, nil
	}

	return s, nil
}

// IntArg returns the integer argument key, or def when it is absent.
// JSON numbers arrive as float64 and are accepted when integral.
func IntArg(args map[string]any, key string, def int) (int, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return def, nil
	}

	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%w: %s must be an integer, got %v", ErrInvalidArgument, key, n)
		}

		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: %s must be an integer: %v", ErrInvalidArgument, key, err)
		}

		return int(i), nil
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, fmt.Errorf("%w: %s must be an integer: %v", ErrInvalidArgument, key, err)
		}

		return i, nil
	default:
		return 0, fmt.Errorf("%w: %s must be an integer, got %T", ErrInvalidArgument, key, v)
	}
}

// BoolArg returns the boolean argument key, or def when it is absent.
func BoolArg(args map[string]any, key string, def bool) (bool, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return def, nil
	}

	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		parsed, err := strconv.ParseBool(b)
		if err != nil {
			return false, fmt.Errorf("%w: %s must be a boolean: %v", ErrInvalidArgument, key, err)
		}

		return parsed, nil
	default:
		return false, fmt.Errorf("%w: %s must be a boolean, got %T", ErrInvalidArgument, key, v)
	}
}
