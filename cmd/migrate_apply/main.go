package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"teamtasks/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Lists the SQL files in internal/migrations; with -apply, executes them in
// lexical order against DATABASE_URL.
func main() {
	apply := flag.Bool("apply", false, "apply migrations instead of listing them")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		logger.Fatal("database connect failed", "error", err)
	}
	defer db.Close()

	migDir := filepath.Join("internal", "migrations")
	entries, err := os.ReadDir(migDir)
	if err != nil {
		logger.Fatal("read migrations dir failed", "dir", migDir, "error", err)
	}

	var names []string
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".sql" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		if !*apply {
			fmt.Println(name)
			continue
		}

		sql, err := os.ReadFile(filepath.Join(migDir, name))
		if err != nil {
			logger.Fatal("read migration failed", "file", name, "error", err)
		}
		if _, err := db.Exec(context.Background(), string(sql)); err != nil {
			logger.Fatal("apply migration failed", "file", name, "error", err)
		}
		logger.Info("applied migration", "file", name)
	}
}
