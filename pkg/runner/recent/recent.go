package recent

import (
	"context"
	"errors"

	"tableflip.dev/jump/pkg/printers"
	"tableflip.dev/jump/pkg/store"
)

// Recent manages the recent-documents history that feeds the OS-managed
// frequent and recent categories.
type Recent struct {
	App string

	// Path records a document open.
	Path string

	// Clear wipes the history.
	Clear bool

	Persistence store.Persistence
}

func (n *Recent) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not track recents, no persistence")
	}

	switch {
	case n.Clear:
		return n.Persistence.ClearRecentDocuments(n.App)
	case n.Path != "":
		return n.Persistence.AddRecentDocument(n.App, n.Path)
	}

	docs := n.Persistence.RecentDocuments(n.App)

	pp := printers.PrettyPrint{}
	pp.TitleWithCount("Recent documents", len(docs))
	pp.Recent(docs)
	return nil
}
