// Package settings implements the simple registry-backed collaborators
// around the jump list: file-type registration, default protocol client,
// run-at-login, and the custom category privacy policy. Each operation is a
// single read or write with no internal state machine.
package settings

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"tableflip.dev/jump/pkg/registry"
)

// Well-known key locations, mirroring the platform's layout.
const (
	classesKeyPrefix = "Software/Classes"
	runKey           = "Software/Microsoft/Windows/CurrentVersion/Run"
	policyKey        = "Software/Policies/JumpList"

	policyCustomCategories = "AllowCustomCategories"
	urlProtocolValue       = "URL Protocol"
)

// FileTypeKey returns the registration key for a file extension.
func FileTypeKey(ext string) string {
	return classesKeyPrefix + "/" + NormalizeExt(ext)
}

// NormalizeExt lowercases an extension and ensures the leading dot.
func NormalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ext
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// IsFileTypeRegistered reports whether the app is registered as a handler
// for the extension.
func IsFileTypeRegistered(reg registry.Registry, appID, ext string) bool {
	if reg == nil {
		return false
	}
	_, err := reg.Read(FileTypeKey(ext), appID)
	return err == nil
}

// CustomCategoriesAllowed reports whether the privacy policy permits custom
// jump list categories. The default is permissive.
func CustomCategoriesAllowed(reg registry.Registry) bool {
	if reg == nil {
		return true
	}
	value, err := reg.Read(policyKey, policyCustomCategories)
	if err != nil {
		return true
	}
	return value != "false"
}

// Settings performs the boundary operations on behalf of one executable.
type Settings struct {
	Registry registry.Registry

	// ExePath identifies the executable registered for protocol and login
	// entries. Defaults to the running binary.
	ExePath string
}

func (s *Settings) exePath() (string, error) {
	if s.ExePath != "" {
		return s.ExePath, nil
	}
	path, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("settings: resolve executable path: %w", err)
	}
	return path, nil
}

func (s *Settings) ready() error {
	if s.Registry == nil {
		return errors.New("settings: no registry configured")
	}
	return nil
}

// RegisterFileType registers the app as a handler for the extension. The
// app does not become the default handler.
func (s *Settings) RegisterFileType(appID, ext string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if NormalizeExt(ext) == "" {
		return errors.New("settings: file extension required")
	}
	return s.Registry.Write(FileTypeKey(ext), appID, "")
}

// UnregisterFileType removes the app's handler registration for the
// extension.
func (s *Settings) UnregisterFileType(appID, ext string) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.Registry.Delete(FileTypeKey(ext), appID)
}

// SetCustomCategoriesAllowed toggles the privacy policy that blocks custom
// jump list categories.
func (s *Settings) SetCustomCategoriesAllowed(allow bool) error {
	if err := s.ready(); err != nil {
		return err
	}
	if allow {
		return s.Registry.Delete(policyKey, policyCustomCategories)
	}
	return s.Registry.Write(policyKey, policyCustomCategories, "false")
}

func protocolKey(protocol string) string {
	return classesKeyPrefix + "/" + protocol
}

func protocolCommandKey(protocol string) string {
	return protocolKey(protocol) + "/shell/open/command"
}

func launchCommand(exePath string) string {
	return fmt.Sprintf("%q %q", exePath, "%1")
}

// SetAsDefaultProtocolClient registers the executable as the handler for a
// URL protocol.
func (s *Settings) SetAsDefaultProtocolClient(protocol string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if protocol == "" {
		return errors.New("settings: protocol required")
	}
	exe, err := s.exePath()
	if err != nil {
		return err
	}

	key := protocolKey(protocol)
	if err := s.Registry.Write(key, "", "URL:"+protocol); err != nil {
		return err
	}
	if err := s.Registry.Write(key, urlProtocolValue, ""); err != nil {
		return err
	}
	return s.Registry.Write(protocolCommandKey(protocol), "", launchCommand(exe))
}

// RemoveAsDefaultProtocolClient removes the registration if it points at
// this executable. A missing registration counts as already removed.
func (s *Settings) RemoveAsDefaultProtocolClient(protocol string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if protocol == "" {
		return errors.New("settings: protocol required")
	}
	exe, err := s.exePath()
	if err != nil {
		return err
	}

	command, err := s.Registry.Read(protocolCommandKey(protocol), "")
	if err != nil {
		return nil
	}
	if command != launchCommand(exe) {
		return nil
	}
	return s.Registry.DeleteKey(protocolCommandKey(protocol))
}

// IsDefaultProtocolClient reports whether the executable is the registered
// handler for the protocol.
func (s *Settings) IsDefaultProtocolClient(protocol string) bool {
	if s.Registry == nil || protocol == "" {
		return false
	}
	exe, err := s.exePath()
	if err != nil {
		return false
	}
	command, err := s.Registry.Read(protocolCommandKey(protocol), "")
	if err != nil {
		return false
	}
	return command == launchCommand(exe)
}

// SetLoginItem enables or disables launching the executable at login.
func (s *Settings) SetLoginItem(appID string, openAtLogin bool) error {
	if err := s.ready(); err != nil {
		return err
	}
	if !openAtLogin {
		return s.Registry.Delete(runKey, appID)
	}
	exe, err := s.exePath()
	if err != nil {
		return err
	}
	return s.Registry.Write(runKey, appID, exe)
}

// LoginItem reports whether the executable is registered to launch at
// login.
func (s *Settings) LoginItem(appID string) bool {
	if s.Registry == nil {
		return false
	}
	exe, err := s.exePath()
	if err != nil {
		return false
	}
	value, err := s.Registry.Read(runKey, appID)
	if err != nil {
		return false
	}
	return value == exe
}
