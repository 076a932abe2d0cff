// Package registry stores simple hierarchical key/value settings, the
// shape of the platform's registry surface: a key is a slash-separated
// path, each key holds named string values. The app's file-type
// registrations, protocol handler, login item, and jump list policy all
// live here.
package registry

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// ErrNotExist is returned when a key or value is not present.
var ErrNotExist = errors.New("registry: value does not exist")

// Config supplies the storage location.
type Config interface {
	BasePath() string
}

// Registry reads and writes named values under hierarchical keys. The
// empty name addresses a key's default value.
type Registry interface {
	Read(key, name string) (string, error)
	Write(key, name, value string) error
	Delete(key, name string) error
	DeleteKey(key string) error
	Values(key string) (map[string]string, error)
}

// Load creates a Registry backed by diskv under cfg.BasePath()/registry.
func Load(cfg Config) (Registry, error) {
	if cfg == nil {
		return nil, errors.New("registry: config required")
	}
	basePath := filepath.Join(cfg.BasePath(), "registry")
	return &registry{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	})}, nil
}

type registry struct {
	d *diskv.Diskv
}

func (r *registry) Values(key string) (map[string]string, error) {
	data, err := r.d.Read(toKey(key))
	if err != nil {
		return nil, ErrNotExist
	}
	values := make(map[string]string)
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("registry: decode key %q: %w", key, err)
	}
	return values, nil
}

func (r *registry) Read(key, name string) (string, error) {
	values, err := r.Values(key)
	if err != nil {
		return "", err
	}
	value, ok := values[name]
	if !ok {
		return "", ErrNotExist
	}
	return value, nil
}

func (r *registry) Write(key, name, value string) error {
	values, err := r.Values(key)
	if err != nil {
		values = make(map[string]string)
	}
	values[name] = value
	data, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return r.d.Write(toKey(key), data)
}

func (r *registry) Delete(key, name string) error {
	values, err := r.Values(key)
	if err != nil {
		return nil
	}
	if _, ok := values[name]; !ok {
		return nil
	}
	delete(values, name)
	if len(values) == 0 {
		return r.d.Erase(toKey(key))
	}
	data, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return r.d.Write(toKey(key), data)
}

func (r *registry) DeleteKey(key string) error {
	k := toKey(key)
	if !r.d.Has(k) {
		return nil
	}
	return r.d.Erase(k)
}

// toKey flattens a slash-separated key path into a diskv key. Segments are
// encoded so arbitrary key names stay path-safe on disk.
func toKey(key string) string {
	segments := strings.Split(strings.Trim(key, "/"), "/")
	encoded := make([]string, len(segments))
	for i, s := range segments {
		encoded[i] = base64.RawURLEncoding.EncodeToString([]byte(s))
	}
	return strings.Join(encoded, ".")
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, ".")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s.%s", strings.Join(pathKey.Path, "."), pathKey.FileName)
}
