package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"

	"tableflip.dev/jump/pkg/item"
	"tableflip.dev/jump/pkg/jumplist"
	"tableflip.dev/jump/pkg/printers"
	"tableflip.dev/jump/pkg/result"
	"tableflip.dev/jump/pkg/store"
)

// Tasks replaces only the Tasks category of an app's jump list, leaving
// system-managed categories alone.
type Tasks struct {
	App  string
	File string

	// Result holds the code the call resolved to after Do returns.
	Result result.Code

	Persistence store.Persistence
}

func (n *Tasks) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not set tasks, no persistence")
	}

	data, err := n.read()
	if err != nil {
		return err
	}

	var items []item.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}

	svc := jumplist.New(n.Persistence)
	ok := svc.SetUserTasks(ctx, n.App, items)

	pp := printers.PrettyPrint{}
	if ok {
		n.Result = result.Success
		pp.Result(n.Result)
		return nil
	}
	n.Result = result.GenericError
	pp.Result(n.Result)
	return errors.New("set user tasks failed")
}

func (n *Tasks) read() ([]byte, error) {
	if n.File == "" || n.File == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(n.File)
}
