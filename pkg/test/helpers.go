package test

import (
	"database/sql"
	"log"
	"os"
	"path/filepath"
	"runtime"

	_ "github.com/mattn/go-sqlite3"

	database "todoapi/internal/adapter/database/sqlite"
)

// findProjectRoot walks up from this file until it hits go.mod, so tests can
// locate the migrations directory regardless of which package runs them.
func findProjectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if wd, err := os.Getwd(); err == nil {
		return wd
	}

	log.Fatal("Could not find project root directory")
	return ""
}

// InitTestDB opens a fresh in-memory database with the full schema applied.
func InitTestDB() *database.DB {
	db, err := sql.Open("sqlite3", ":memory:")

	if err != nil {
		log.Fatal(err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		log.Fatal(err)
	}

	projectRoot := findProjectRoot()
	migrationsPath := filepath.Join(projectRoot, "db", "migrations")
	database.RunMigrations(db, migrationsPath)

	return database.Wrap(db)
}
