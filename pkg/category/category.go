// Package category defines named groups of jump list entries and the
// structural rules each group type carries.
package category

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/jump/pkg/item"
)

// Type identifies how a category is populated and rendered.
type Type string

const (
	// TypeTasks is the single standard, unnamed category. It may hold
	// tasks, files, and separators, and is rendered through the platform's
	// dedicated user-tasks channel.
	TypeTasks Type = "tasks"
	// TypeCustom is a named, app-defined category holding tasks and files.
	// Separators are not allowed.
	TypeCustom Type = "custom"
	// TypeFrequent is OS-managed; the app only requests its presence.
	TypeFrequent Type = "frequent"
	// TypeRecent is OS-managed; the app only requests its presence.
	TypeRecent Type = "recent"
)

// AllTypes returns the list of supported category types.
func AllTypes() []Type {
	return []Type{
		TypeTasks,
		TypeCustom,
		TypeFrequent,
		TypeRecent,
	}
}

// ParseType converts a string to a Type or returns an error for unknown
// values. The empty string is returned as-is so Normalize can default it
// from the presence of a name.
func ParseType(raw string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(raw)))
	if t == "" {
		return "", nil
	}
	for _, candidate := range AllTypes() {
		if candidate == t {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("category: unknown type %q", raw)
}

// Category is one group of jump list entries. A nil Items slice means the
// caller never supplied an item list, which is invalid for tasks and custom
// categories; an empty non-nil slice is a valid, trivially successful group.
type Category struct {
	Type  Type        `json:"type,omitempty"`
	Name  string      `json:"name,omitempty"`
	Items []item.Item `json:"items,omitempty"`
}

type categoryJSON struct {
	Type  string       `json:"type"`
	Name  *string      `json:"name"`
	Items *[]item.Item `json:"items"`
}

// UnmarshalJSON decodes a declarative category description. An explicitly
// present but empty name is rejected; a missing items key leaves Items nil
// so Normalize can tell "no list" from "empty list".
func (c *Category) UnmarshalJSON(data []byte) error {
	var raw categoryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	typ, err := ParseType(raw.Type)
	if err != nil {
		return err
	}
	c.Type = typ

	c.Name = ""
	if raw.Name != nil {
		if *raw.Name == "" {
			return errors.New("category: name must not be empty when present")
		}
		c.Name = *raw.Name
	}

	c.Items = nil
	if raw.Items != nil {
		c.Items = *raw.Items
	}
	return nil
}

// Normalize defaults the category type from the presence of a name and
// checks the structural invariants for the resulting type. It runs once at
// parse time so downstream code never re-derives the default.
func (c *Category) Normalize() error {
	if c.Type == "" {
		if c.Name == "" {
			c.Type = TypeTasks
		} else {
			c.Type = TypeCustom
		}
	}

	switch c.Type {
	case TypeTasks:
		if c.Items == nil {
			return errors.New("category: tasks category requires an item list")
		}
	case TypeCustom:
		if c.Name == "" {
			return errors.New("category: custom category requires a name")
		}
		if c.Items == nil {
			return fmt.Errorf("category: custom category %q requires an item list", c.Name)
		}
	case TypeFrequent, TypeRecent:
		if c.Name != "" {
			return fmt.Errorf("category: %s category cannot be named", c.Type)
		}
		if c.Items != nil {
			return fmt.Errorf("category: %s category is OS-managed and cannot carry items", c.Type)
		}
	default:
		return fmt.Errorf("category: unknown type %q", c.Type)
	}
	return nil
}

// ParseList decodes and normalizes a JSON array of categories.
func ParseList(data []byte) ([]Category, error) {
	var categories []Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, err
	}
	for i := range categories {
		if err := categories[i].Normalize(); err != nil {
			return nil, err
		}
	}
	return categories, nil
}
