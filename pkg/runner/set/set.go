package set

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"tableflip.dev/jump/pkg/category"
	"tableflip.dev/jump/pkg/item"
	"tableflip.dev/jump/pkg/jumplist"
	"tableflip.dev/jump/pkg/printers"
	"tableflip.dev/jump/pkg/result"
	"tableflip.dev/jump/pkg/store"
)

// Set replaces an app's jump list with the categories read from File.
type Set struct {
	App  string
	File string

	ShowRemoved bool

	// Result holds the code the call resolved to after Do returns.
	Result result.Code

	Persistence store.Persistence
}

func (n *Set) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not set, no persistence")
	}

	svc := jumplist.New(n.Persistence)

	code := svc.SetJumpList(ctx, n.App, func(minSlots int, removed []item.Item) ([]category.Category, error) {
		data, err := n.read()
		if err != nil {
			return nil, err
		}
		cats, err := category.ParseList(data)
		if err != nil {
			return nil, err
		}
		if n.ShowRemoved && len(removed) > 0 {
			pp := printers.PrettyPrint{}
			pp.Title("Removed by the user")
			for _, r := range removed {
				fmt.Printf("  %s\n", r.String())
			}
			pp.NewLine()
		}
		return cats, nil
	})

	n.Result = code

	pp := printers.PrettyPrint{}
	pp.Result(code)

	if !code.Ok() {
		return fmt.Errorf("set jump list: %s", code)
	}
	return nil
}

func (n *Set) read() ([]byte, error) {
	if n.File == "" || n.File == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(n.File)
}
