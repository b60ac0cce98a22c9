// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package toolregistry

// Property is a JSON schema property.
type Property map[string]any

// String returns a string property.
func String(description string) Property {
	return Property{"type": "string", "description": description}
}

// Integer returns an integer property.
func Integer(description string) Property {
	return Property{"type": "integer", "description": description}
}

// Boolean returns a boolean property.
func Boolean(description string) Property {
	return Property{"type": "boolean", "description": description}
}

// Enum returns a string property limited to values.
func Enum(description string, values ...string) Property {
	return Property{"type": "string", "description": description, "enum": values}
}

// Array returns an array property of items.
func Array(description string, items Property) Property {
	return Property{"type": "array", "description": description, "items": map[string]any(items)}
}

// Object builds an object schema from properties and the required names.
func Object(props map[string]Property, required ...string) map[string]any {
	p := make(map[string]any, len(props))
	for k, v := range props {
		p[k] = map[string]any(v)
	}

	schema := map[string]any{
		"type":       "object",
		"properties": p,
	}

	if len(required) > 0 {
		schema["required"] = required
	}

	return schema
}
