// Package store is a file-backed implementation of the platform
// destination-list service. It persists committed jump lists, the
// removed-destinations feedback feed, and recent documents per app
// identity, and enforces the same picky transaction and policy rules the
// real service does (file-type registration, custom category privacy).
package store

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/jump/pkg/registry"
	"tableflip.dev/jump/pkg/settings"
	"tableflip.dev/jump/pkg/shell"
)

// ErrNoList is returned when an app identity has no committed jump list.
var ErrNoList = errors.New("store: no jump list committed")

// Destination kinds.
const (
	KindLink = "link"
	KindFile = "file"
)

// Destination is the persisted form of one jump list entry.
type Destination struct {
	Kind        string `json:"kind"`
	Path        string `json:"path,omitempty"`
	Arguments   string `json:"arguments,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	IconPath    string `json:"iconPath,omitempty"`
	IconIndex   int    `json:"iconIndex,omitempty"`
	Separator   bool   `json:"separator,omitempty"`
}

// Category is one committed group of destinations. OS-managed categories
// are persisted as bare markers.
type Category struct {
	Type  string        `json:"type"`
	Name  string        `json:"name,omitempty"`
	Items []Destination `json:"items,omitempty"`
}

// List is the committed jump list document for one app identity.
type List struct {
	AppID      string     `json:"appId"`
	MinSlots   int        `json:"minSlots"`
	Committed  time.Time  `json:"committed"`
	Categories []Category `json:"categories"`
}

// RecentDocument records one document opened on behalf of an app.
type RecentDocument struct {
	Path  string    `json:"path"`
	Count int       `json:"count"`
	Last  time.Time `json:"last"`
}

const maxRecentDocuments = 20

// Persistence is the full store surface: the shell boundary plus the
// read-side and simulation hooks the CLI uses.
type Persistence interface {
	shell.Shell

	// List reads the committed jump list for an app identity.
	List(ctx context.Context, appID string) (*List, error)
	// Apps lists app identities with a committed jump list.
	Apps(ctx context.Context) []string
	// Removed returns the destinations the user removed from the app's
	// previously committed list.
	Removed(ctx context.Context, appID string) []shell.Object
	// RemoveDestination simulates the user removing a destination: target
	// matches a committed entry by title or path, or names a plain file.
	RemoveDestination(ctx context.Context, appID, target string) error
	// ClearRemoved drops the removed-destinations feed.
	ClearRemoved(appID string) error
	// RecentDocuments returns the app's recent document history, most
	// recent first.
	RecentDocuments(appID string) []RecentDocument
	// Registry exposes the registry surface backing policy and
	// registration checks.
	Registry() registry.Registry
	// Watch streams change events until ctx is cancelled.
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	reg, err := registry.Load(cfg)
	if err != nil {
		return nil, err
	}

	return &persistence{
		d: diskv.New(diskv.Options{
			BasePath:          filepath.Join(basePath, "shell"),
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		basePath: basePath,
		minSlots: cfg.MinSlots(),
		reg:      reg,
	}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	minSlots int
	reg      registry.Registry
}

func (p *persistence) Registry() registry.Registry {
	return p.reg
}

// DestinationList opens a transaction handle for one app identity. The
// handle enforces the platform's begin-first, resolve-once rules.
func (p *persistence) DestinationList(appID string) (shell.DestinationList, error) {
	if strings.TrimSpace(appID) == "" {
		return nil, errors.New("store: app identity required")
	}
	return &transaction{p: p, appID: appID}, nil
}

func (p *persistence) DeleteList(ctx context.Context, appID string) error {
	if strings.TrimSpace(appID) == "" {
		return errors.New("store: app identity required")
	}
	for _, key := range []string{listKey(appID), removedKey(appID)} {
		if !p.d.Has(key) {
			continue
		}
		if err := p.d.Erase(key); err != nil {
			return fmt.Errorf("store: delete list for %s: %w", appID, err)
		}
	}
	return nil
}

func (p *persistence) ResolveFile(path string) (*shell.FileRef, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("store: resolve %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("store: resolve %s: is a directory", path)
	}
	return &shell.FileRef{Path: filepath.Clean(path)}, nil
}

func (p *persistence) AddRecentDocument(appID, path string) error {
	if strings.TrimSpace(appID) == "" {
		return errors.New("store: app identity required")
	}
	docs := p.RecentDocuments(appID)
	now := time.Now()

	updated := false
	for i := range docs {
		if docs[i].Path == path {
			docs[i].Count++
			docs[i].Last = now
			updated = true
			break
		}
	}
	if !updated {
		docs = append(docs, RecentDocument{Path: path, Count: 1, Last: now})
	}

	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].Last.After(docs[j].Last)
	})
	if len(docs) > maxRecentDocuments {
		docs = docs[:maxRecentDocuments]
	}

	data, err := json.Marshal(docs)
	if err != nil {
		return err
	}
	return p.d.Write(recentKey(appID), data)
}

func (p *persistence) ClearRecentDocuments(appID string) error {
	key := recentKey(appID)
	if !p.d.Has(key) {
		return nil
	}
	return p.d.Erase(key)
}

func (p *persistence) RecentDocuments(appID string) []RecentDocument {
	data, err := p.d.Read(recentKey(appID))
	if err != nil {
		return nil
	}
	var docs []RecentDocument
	if err := json.Unmarshal(data, &docs); err != nil {
		fmt.Fprintf(os.Stderr, "store: decode recent documents for %s: %v\n", appID, err)
		return nil
	}
	return docs
}

func (p *persistence) List(ctx context.Context, appID string) (*List, error) {
	data, err := p.d.Read(listKey(appID))
	if err != nil {
		return nil, ErrNoList
	}
	list := &List{}
	if err := json.Unmarshal(data, list); err != nil {
		return nil, fmt.Errorf("store: decode list for %s: %w", appID, err)
	}
	return list, nil
}

func (p *persistence) Apps(ctx context.Context) []string {
	apps := make([]string, 0)
	for key := range p.d.Keys(ctx.Done()) {
		kind, app, err := splitKey(key)
		if err != nil || kind != "list" {
			continue
		}
		apps = append(apps, app)
	}
	sort.Strings(apps)
	return apps
}

func (p *persistence) Removed(ctx context.Context, appID string) []shell.Object {
	data, err := p.d.Read(removedKey(appID))
	if err != nil {
		return nil
	}
	var removed []Destination
	if err := json.Unmarshal(data, &removed); err != nil {
		fmt.Fprintf(os.Stderr, "store: decode removed feed for %s: %v\n", appID, err)
		return nil
	}
	return toObjects(removed)
}

func (p *persistence) RemoveDestination(ctx context.Context, appID, target string) error {
	if strings.TrimSpace(target) == "" {
		return errors.New("store: removal target required")
	}

	removed := Destination{Kind: KindFile, Path: target}

	list, err := p.List(ctx, appID)
	if err == nil {
		found := false
		for ci := range list.Categories {
			c := &list.Categories[ci]
			for ii := range c.Items {
				d := c.Items[ii]
				if d.Separator {
					continue
				}
				if d.Title == target || d.Path == target {
					removed = d
					c.Items = append(c.Items[:ii], c.Items[ii+1:]...)
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if found {
			data, err := json.Marshal(list)
			if err != nil {
				return err
			}
			if err := p.d.Write(listKey(appID), data); err != nil {
				return err
			}
		}
	}

	feed := make([]Destination, 0)
	if data, err := p.d.Read(removedKey(appID)); err == nil {
		if err := json.Unmarshal(data, &feed); err != nil {
			feed = feed[:0]
		}
	}
	for _, d := range feed {
		if d == removed {
			return nil
		}
	}
	feed = append(feed, removed)

	data, err := json.Marshal(feed)
	if err != nil {
		return err
	}
	return p.d.Write(removedKey(appID), data)
}

func (p *persistence) ClearRemoved(appID string) error {
	key := removedKey(appID)
	if !p.d.Has(key) {
		return nil
	}
	return p.d.Erase(key)
}

// transaction is one begin/append/commit-or-abort pass. Calls out of order
// fail the way the real service's do.
type transaction struct {
	p        *persistence
	appID    string
	began    bool
	resolved bool
	staged   []Category
}

func (t *transaction) Begin(ctx context.Context) (int, []shell.Object, error) {
	if t.began {
		return 0, nil, errors.New("store: transaction already began")
	}
	t.began = true
	return t.p.minSlots, t.p.Removed(ctx, t.appID), nil
}

func (t *transaction) AppendCategory(name string, items *shell.ObjectCollection) error {
	if err := t.active(); err != nil {
		return err
	}
	if name == "" {
		return errors.New("store: custom category requires a name")
	}
	if !settings.CustomCategoriesAllowed(t.p.reg) {
		return fmt.Errorf("store: append category %q: %w", name, shell.ErrAccessDenied)
	}
	for _, o := range items.Objects() {
		ref, ok := o.(*shell.FileRef)
		if !ok {
			continue
		}
		ext := filepath.Ext(ref.Path)
		if !settings.IsFileTypeRegistered(t.p.reg, t.appID, ext) {
			return fmt.Errorf("store: append category %q: %s: %w", name, ext, shell.ErrFileTypeNotRegistered)
		}
	}
	t.staged = append(t.staged, Category{
		Type:  "custom",
		Name:  name,
		Items: toDestinations(items.Objects()),
	})
	return nil
}

func (t *transaction) AddUserTasks(items *shell.ObjectCollection) error {
	if err := t.active(); err != nil {
		return err
	}
	// The real service can reject an empty user-tasks submission.
	if items.Len() == 0 {
		return errors.New("store: user tasks collection is empty")
	}
	t.staged = append(t.staged, Category{
		Type:  "tasks",
		Items: toDestinations(items.Objects()),
	})
	return nil
}

func (t *transaction) AppendKnownCategory(kind shell.KnownCategory) error {
	if err := t.active(); err != nil {
		return err
	}
	switch kind {
	case shell.KnownFrequent, shell.KnownRecent:
	default:
		return fmt.Errorf("store: unknown category kind %q", kind)
	}
	t.staged = append(t.staged, Category{Type: string(kind)})
	return nil
}

func (t *transaction) Commit() error {
	if err := t.active(); err != nil {
		return err
	}
	t.resolved = true

	list := List{
		AppID:      t.appID,
		MinSlots:   t.p.minSlots,
		Committed:  time.Now(),
		Categories: t.staged,
	}
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	if err := t.p.d.Write(listKey(t.appID), data); err != nil {
		return fmt.Errorf("store: commit list for %s: %w", t.appID, err)
	}
	return nil
}

func (t *transaction) Abort() {
	t.resolved = true
	t.staged = nil
}

func (t *transaction) active() error {
	if !t.began {
		return errors.New("store: transaction not began")
	}
	if t.resolved {
		return errors.New("store: transaction already resolved")
	}
	return nil
}

func toDestination(o shell.Object) Destination {
	switch v := o.(type) {
	case *shell.FileRef:
		return Destination{Kind: KindFile, Path: v.Path}
	case *shell.Link:
		return Destination{
			Kind:        KindLink,
			Path:        v.Path,
			Arguments:   v.Arguments,
			Title:       v.Title,
			Description: v.Description,
			IconPath:    v.IconPath,
			IconIndex:   v.IconIndex,
			Separator:   v.Separator,
		}
	}
	return Destination{}
}

func toObject(d Destination) shell.Object {
	if d.Kind == KindFile {
		return &shell.FileRef{Path: d.Path}
	}
	return &shell.Link{
		Path:        d.Path,
		Arguments:   d.Arguments,
		Title:       d.Title,
		Description: d.Description,
		IconPath:    d.IconPath,
		IconIndex:   d.IconIndex,
		Separator:   d.Separator,
	}
}

func toDestinations(objects []shell.Object) []Destination {
	out := make([]Destination, 0, len(objects))
	for _, o := range objects {
		out = append(out, toDestination(o))
	}
	return out
}

func toObjects(destinations []Destination) []shell.Object {
	out := make([]shell.Object, 0, len(destinations))
	for _, d := range destinations {
		out = append(out, toObject(d))
	}
	return out
}

func listKey(appID string) string    { return "list." + encodeApp(appID) }
func removedKey(appID string) string { return "removed." + encodeApp(appID) }
func recentKey(appID string) string  { return "recent." + encodeApp(appID) }

func encodeApp(appID string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(appID))
}

func decodeApp(s string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("store: decode app identity: %w", err)
	}
	return string(raw), nil
}

func splitKey(key string) (kind, appID string, err error) {
	parts := strings.SplitN(key, ".", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("store: malformed key %q", key)
	}
	app, err := decodeApp(parts[1])
	if err != nil {
		return "", "", err
	}
	return parts[0], app, nil
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
