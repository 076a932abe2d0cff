package del

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/jump/pkg/jumplist"
	"tableflip.dev/jump/pkg/printers"
	"tableflip.dev/jump/pkg/result"
	"tableflip.dev/jump/pkg/store"
)

// Delete removes an app's committed jump list, restoring the default.
type Delete struct {
	App string

	// Result holds the code the call resolved to after Do returns.
	Result result.Code

	Persistence store.Persistence
}

func (n *Delete) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not delete, no persistence")
	}

	svc := jumplist.New(n.Persistence)
	code := svc.Delete(ctx, n.App)
	n.Result = code

	pp := printers.PrettyPrint{}
	pp.Result(code)

	if !code.Ok() {
		return fmt.Errorf("delete jump list: %s", code)
	}
	return nil
}
