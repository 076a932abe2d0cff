package configure

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/jump/pkg/printers"
	"tableflip.dev/jump/pkg/settings"
	"tableflip.dev/jump/pkg/store"
)

// FileType registers or removes an app as a handler for a file extension.
// Custom categories may only reference file types the app handles.
type FileType struct {
	App       string
	Extension string
	Remove    bool

	Persistence store.Persistence
}

func (n *FileType) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not configure file types, no persistence")
	}

	s := &settings.Settings{Registry: n.Persistence.Registry()}
	if n.Remove {
		return s.UnregisterFileType(n.App, n.Extension)
	}
	return s.RegisterFileType(n.App, n.Extension)
}

// Protocol registers or removes the current binary as the default client
// for a URL protocol, or reports the current registration.
type Protocol struct {
	Protocol string
	Remove   bool
	Query    bool

	Persistence store.Persistence
}

func (n *Protocol) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not configure protocols, no persistence")
	}

	s := &settings.Settings{Registry: n.Persistence.Registry()}
	switch {
	case n.Query:
		pp := printers.PrettyPrint{}
		pp.Title(n.Protocol)
		fmt.Printf("  default client: %t\n\n", s.IsDefaultProtocolClient(n.Protocol))
		return nil
	case n.Remove:
		return s.RemoveAsDefaultProtocolClient(n.Protocol)
	}
	return s.SetAsDefaultProtocolClient(n.Protocol)
}

// Login toggles or reports whether an app starts at login.
type Login struct {
	App    string
	Enable bool
	Remove bool
	Query  bool

	Persistence store.Persistence
}

func (n *Login) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not configure login items, no persistence")
	}

	s := &settings.Settings{Registry: n.Persistence.Registry()}
	if n.Query {
		pp := printers.PrettyPrint{}
		pp.Title(n.App)
		fmt.Printf("  open at login: %t\n\n", s.LoginItem(n.App))
		return nil
	}
	return s.SetLoginItem(n.App, n.Enable && !n.Remove)
}

// Privacy flips the policy gating custom categories. When disallowed,
// custom category submissions fail with an access-denied result.
type Privacy struct {
	AllowCustomCategories bool

	Persistence store.Persistence
}

func (n *Privacy) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not configure privacy, no persistence")
	}

	s := &settings.Settings{Registry: n.Persistence.Registry()}
	return s.SetCustomCategoriesAllowed(n.AllowCustomCategories)
}
