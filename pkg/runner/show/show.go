package show

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/jump/pkg/printers"
	"tableflip.dev/jump/pkg/store"
)

// Show renders the committed jump list for one app, or for every app known
// to the store.
type Show struct {
	App              string
	Watch            bool
	ShowDescriptions bool

	Persistence store.Persistence
}

func (n *Show) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not show, no persistence")
	}

	if err := n.render(ctx); err != nil {
		return err
	}

	if !n.Watch {
		return nil
	}

	events, err := n.Persistence.Watch(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Type == store.EventListChanged && n.App != "" && ev.App != n.App {
				continue
			}
			if err := n.render(ctx); err != nil {
				return err
			}
		}
	}
}

func (n *Show) render(ctx context.Context) error {
	pp := printers.PrettyPrint{ShowDescriptions: n.ShowDescriptions}
	fmt.Println("")

	if n.App != "" {
		l, err := n.Persistence.List(ctx, n.App)
		if err != nil {
			return err
		}
		pp.List(l)
		return nil
	}

	apps := n.Persistence.Apps(ctx)
	if len(apps) == 0 {
		pp.Title("Jump Lists")
		pp.Destinations()
		return nil
	}
	for _, app := range apps {
		l, err := n.Persistence.List(ctx, app)
		if err != nil {
			continue
		}
		pp.List(l)
	}
	return nil
}
