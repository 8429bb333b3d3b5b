package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"

	"agentdesk/internal/config"
	"agentdesk/internal/storage"
	"agentdesk/internal/store"
	"agentdesk/internal/ui"
)

func main() {
	// .env values feed the AGENTDESK_* overrides; missing file is fine.
	_ = godotenv.Load()

	ctx := context.Background()

	cfgStore, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	var persister store.Persister
	slot, err := storage.Open(ctx, cfgStore.Config.DataDir)
	if err != nil {
		// Storage problems degrade to a memory-only session rather
		// than refusing to start.
		log.Println("open storage:", err)
	} else {
		defer slot.Close()
		persister = slot
	}

	st := store.New(store.Options{
		Persister: persister,
		Persist:   cfgStore.Config.Persist,
	})

	seeded := false
	if slot != nil {
		snapshot, err := slot.LoadSnapshot()
		switch {
		case err == nil:
			if err := st.Restore(snapshot); err != nil {
				log.Println("restore snapshot:", err)
				st.Seed()
				seeded = true
			}
		case errors.Is(err, storage.ErrNotFound):
			st.Seed()
			seeded = true
		default:
			log.Println("load snapshot:", err)
		}
	}
	if slot == nil && !seeded {
		st.Seed()
	}

	program := ui.NewProgram(st, cfgStore)
	if err := program.Start(); err != nil {
		log.Println("program terminated:", err)
		os.Exit(1)
	}
}
