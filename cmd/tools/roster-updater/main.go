// cmd/tools/roster-updater/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"warroom-workers/internal/common/config"
	"warroom-workers/internal/common/database"
	"warroom-workers/internal/common/logger"
	"warroom-workers/internal/structuring/roster"
)

func main() {
	addCmd := flag.NewFlagSet("add", flag.ExitOnError)
	removeCmd := flag.NewFlagSet("remove", flag.ExitOnError)
	listCmd := flag.NewFlagSet("list", flag.ExitOnError)

	nameAdd := addCmd.String("name", "", "Client name exactly as it appears in documents")
	nameRemove := removeCmd.String("name", "", "Client name to deactivate")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		fmt.Printf("Error connecting to postgres: %v\n", err)
		os.Exit(1)
	}
	defer pg.Close()

	rdb := database.NewRedis(cfg.Database.Redis)
	defer rdb.Close()

	log := logger.NewZapAdapter(logger.New(cfg.Logging.Level, "console"))
	store := roster.NewStore(pg.DB, rdb.Client,
		time.Duration(cfg.Structuring.RosterCacheTTLMin)*time.Minute, log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch os.Args[1] {
	case "add":
		addCmd.Parse(os.Args[2:])
		if *nameAdd == "" {
			fmt.Println("Error: name is required for add.")
			addCmd.Usage()
			os.Exit(1)
		}
		_, err := pg.DB.ExecContext(ctx,
			`INSERT INTO clients (name, active) VALUES ($1, TRUE)
			 ON CONFLICT (name) DO UPDATE SET active = TRUE`,
			*nameAdd)
		if err != nil {
			fmt.Printf("Error adding client: %v\n", err)
			os.Exit(1)
		}
		invalidate(ctx, store)
		fmt.Printf("Added client: %s\n", *nameAdd)

	case "remove":
		removeCmd.Parse(os.Args[2:])
		if *nameRemove == "" {
			fmt.Println("Error: name is required for remove.")
			removeCmd.Usage()
			os.Exit(1)
		}
		res, err := pg.DB.ExecContext(ctx,
			`UPDATE clients SET active = FALSE WHERE name = $1`, *nameRemove)
		if err != nil {
			fmt.Printf("Error removing client: %v\n", err)
			os.Exit(1)
		}
		if rows, _ := res.RowsAffected(); rows == 0 {
			fmt.Printf("No client named %q found.\n", *nameRemove)
			os.Exit(1)
		}
		invalidate(ctx, store)
		fmt.Printf("Deactivated client: %s\n", *nameRemove)

	case "list":
		listCmd.Parse(os.Args[2:])
		clients, err := store.Load(ctx)
		if err != nil {
			fmt.Printf("Error loading roster: %v\n", err)
			os.Exit(1)
		}
		for _, name := range clients {
			fmt.Println(name)
		}

	default:
		help()
		os.Exit(1)
	}
}

func invalidate(ctx context.Context, store *roster.Store) {
	if err := store.Invalidate(ctx); err != nil {
		fmt.Printf("Warning: cache invalidation failed: %v\n", err)
	}
}

func help() {
	fmt.Println("Usage: roster-updater <command> [flags]")
	fmt.Println("Commands:")
	fmt.Println("  add    -name <client name>   Add or reactivate a client")
	fmt.Println("  remove -name <client name>   Deactivate a client")
	fmt.Println("  list                         Print the active roster")
}
