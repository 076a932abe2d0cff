package removed

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/jump/pkg/jumplist"
	"tableflip.dev/jump/pkg/printers"
	"tableflip.dev/jump/pkg/store"
)

// Removed inspects or mutates the removed-destinations feed an app sees on
// its next transaction.
type Removed struct {
	App string

	// Target removes the first committed destination whose title or path
	// matches, feeding it back as removed.
	Target string

	// Clear empties the feed.
	Clear bool

	Persistence store.Persistence
}

func (n *Removed) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not inspect removals, no persistence")
	}

	switch {
	case n.Clear:
		return n.Persistence.ClearRemoved(n.App)
	case n.Target != "":
		return n.Persistence.RemoveDestination(ctx, n.App, n.Target)
	}

	objects := n.Persistence.Removed(ctx, n.App)
	items := jumplist.RemovedItems(objects)

	pp := printers.PrettyPrint{}
	pp.TitleWithCount("Removed", len(items))
	if len(items) == 0 {
		pp.Destinations()
		return nil
	}
	for _, it := range items {
		fmt.Printf("  %s\n", it.String())
	}
	pp.NewLine()
	return nil
}
