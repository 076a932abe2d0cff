// Package shell abstracts the platform destination-list service behind
// small interfaces. The real service is opaque, transactional, and stateful:
// a caller opens a transaction, learns the slot budget and which previously
// offered destinations the user removed, submits the desired layout, and
// commits or aborts. pkg/store provides a file-backed implementation.
package shell

import (
	"context"
	"errors"
)

var (
	// ErrFileTypeNotRegistered is reported when a custom category references
	// a file type the app is not registered to handle.
	ErrFileTypeNotRegistered = errors.New("shell: file type not registered")
	// ErrAccessDenied is reported when a user privacy setting blocks custom
	// categories.
	ErrAccessDenied = errors.New("shell: access denied")
)

// KnownCategory identifies an OS-managed category whose contents the
// platform derives automatically.
type KnownCategory string

const (
	KnownFrequent KnownCategory = "frequent"
	KnownRecent   KnownCategory = "recent"
)

// Object is a destination held by an ObjectCollection: either a *Link or a
// *FileRef.
type Object interface {
	object()
}

// Link is a shortcut destination: a task, or a bare separator marker.
type Link struct {
	Path        string
	Arguments   string
	Title       string
	Description string
	IconPath    string
	IconIndex   int
	Separator   bool
}

func (*Link) object() {}

// FileRef is a resolved reference to an existing file.
type FileRef struct {
	Path string
}

func (*FileRef) object() {}

// ObjectCollection is the ordered set of destinations assembled for one
// category before submission.
type ObjectCollection struct {
	objects []Object
}

// NewObjectCollection returns an empty collection.
func NewObjectCollection() *ObjectCollection {
	return &ObjectCollection{}
}

// Add appends a destination to the collection.
func (c *ObjectCollection) Add(o Object) {
	c.objects = append(c.objects, o)
}

// Len returns the number of destinations in the collection.
func (c *ObjectCollection) Len() int {
	return len(c.objects)
}

// Objects returns the destinations in submission order.
func (c *ObjectCollection) Objects() []Object {
	return c.objects
}

// Shell is the platform service entry point.
type Shell interface {
	// DestinationList opens the transactional list surface for one app
	// identity. The platform permits at most one open transaction per
	// identity at a time.
	DestinationList(appID string) (DestinationList, error)

	// DeleteList removes any previously committed jump list for the app
	// identity. No transaction is required.
	DeleteList(ctx context.Context, appID string) error

	// ResolveFile resolves a path to a destination file reference. The file
	// must exist.
	ResolveFile(path string) (*FileRef, error)

	// AddRecentDocument records a document open on behalf of the app,
	// feeding the OS-managed Recent and Frequent categories.
	AddRecentDocument(appID, path string) error

	// ClearRecentDocuments drops the app's recent document history.
	ClearRecentDocuments(appID string) error
}

// DestinationList drives one begin / append / commit-or-abort transaction.
// Once Begin succeeds the transaction must be resolved with exactly one
// Commit or Abort before the handle is discarded.
type DestinationList interface {
	// Begin opens the transaction. It reports the minimum number of slots
	// the platform suggests filling, and the destinations the user removed
	// from the previously committed list. Removed destinations must not be
	// re-submitted.
	Begin(ctx context.Context) (minSlots int, removed []Object, err error)

	// AppendCategory submits a named custom category.
	AppendCategory(name string, items *ObjectCollection) error

	// AddUserTasks submits the standard Tasks category through its
	// dedicated channel.
	AddUserTasks(items *ObjectCollection) error

	// AppendKnownCategory requests the presence of an OS-managed category.
	AppendKnownCategory(kind KnownCategory) error

	// Commit atomically replaces the app's jump list with the submitted
	// layout.
	Commit() error

	// Abort discards everything submitted since Begin.
	Abort()
}
