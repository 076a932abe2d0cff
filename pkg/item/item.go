// Package item defines the jump list entry model.
package item

import (
	"errors"
	"fmt"
	"strings"
)

// Type identifies the kind of a jump list entry.
type Type string

const (
	// TypeTask launches a program (usually the app that owns the jump list)
	// with fixed arguments.
	TypeTask Type = "task"
	// TypeSeparator draws a divider between entries. Separators are only
	// legal inside the standard Tasks category.
	TypeSeparator Type = "separator"
	// TypeFile opens a file with the app that owns the jump list. The app
	// must be a registered handler for the file's type, though it does not
	// have to be the default handler.
	TypeFile Type = "file"
)

// AllTypes returns the list of supported item types.
func AllTypes() []Type {
	return []Type{
		TypeTask,
		TypeSeparator,
		TypeFile,
	}
}

// ParseType converts a string to a Type or returns an error for unknown values.
func ParseType(raw string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(raw)))
	for _, candidate := range AllTypes() {
		if candidate == t {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("item: unknown type %q", raw)
}

// Item is one jump list entry. Which fields are meaningful depends on Type;
// Validate reports whether the populated fields satisfy the declared type.
type Item struct {
	Type Type `json:"type"`

	// Program is the executable a task launches.
	Program string `json:"program,omitempty"`
	// Arguments is the command line passed to Program.
	Arguments string `json:"arguments,omitempty"`
	// Title is the user-visible label of a task. Required.
	Title string `json:"title,omitempty"`
	// Description shows as the task's tooltip.
	Description string `json:"description,omitempty"`
	// IconPath points at a resource holding the task icon. When set,
	// IconIndex selects the icon inside that resource and is required.
	IconPath  string `json:"iconPath,omitempty"`
	IconIndex *int   `json:"iconIndex,omitempty"`

	// Path is the file a file link opens.
	Path string `json:"path,omitempty"`
}

// NewTask returns a task entry.
func NewTask(program, title string) Item {
	return Item{Type: TypeTask, Program: program, Title: title}
}

// NewSeparator returns a separator entry.
func NewSeparator() Item {
	return Item{Type: TypeSeparator}
}

// NewFile returns a file link entry.
func NewFile(path string) Item {
	return Item{Type: TypeFile, Path: path}
}

// Validate checks that the fields required by the declared type are present.
// A failed item is skipped by the category builder, it does not abort the
// surrounding transaction.
func (i Item) Validate() error {
	switch i.Type {
	case TypeTask:
		if i.Program == "" {
			return errors.New("item: task requires a program")
		}
		if i.Title == "" {
			return errors.New("item: task requires a title")
		}
		if i.IconPath != "" && i.IconIndex == nil {
			return errors.New("item: iconIndex is required when iconPath is set")
		}
		return nil
	case TypeSeparator:
		return nil
	case TypeFile:
		if i.Path == "" {
			return errors.New("item: file requires a path")
		}
		return nil
	}
	return fmt.Errorf("item: unknown type %q", i.Type)
}

func (i Item) String() string {
	switch i.Type {
	case TypeSeparator:
		return "separator"
	case TypeFile:
		return fmt.Sprintf("file %s", i.Path)
	default:
		if i.Arguments == "" {
			return fmt.Sprintf("%s (%s)", i.Title, i.Program)
		}
		return fmt.Sprintf("%s (%s %s)", i.Title, i.Program, i.Arguments)
	}
}
