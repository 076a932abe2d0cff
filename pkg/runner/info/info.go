package info

import (
	"context"
	"fmt"
	"os"

	"tableflip.dev/jump/pkg/store"
)

type Info struct {
	Config      store.Config
	Persistence store.Persistence
}

func (n *Info) Do(ctx context.Context) error {

	if override := os.Getenv("JUMP_CONFIG_PATH"); override != "" {
		fmt.Println("JUMP_CONFIG_PATH found on env, using ", override)
	} else {
		fmt.Println("JUMP_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	fmt.Println("Config.path: ", n.Config.BasePath())
	fmt.Println("Config.minSlots: ", n.Config.MinSlots())
	fmt.Println("Config.app: ", n.Config.DefaultAppID())

	if n.Persistence == nil {
		return fmt.Errorf("Failed to create persistence object.")
	}

	fmt.Printf("Apps:\n")
	foundApps := 0
	for _, app := range n.Persistence.Apps(ctx) {
		fmt.Printf("  %s\n", app)
		foundApps++
	}

	if foundApps == 0 {
		fmt.Printf("  %s\n", "no jump lists")
	}

	return nil
}
