package main

import (
	"embed"
	"flag"
	"os"

	"pulse360/cmd/migration/initialize"
	"pulse360/cmd/migration/seed"
	"pulse360/config"
	"pulse360/internal/logger"

	migrate "github.com/rubenv/sql-migrate"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

func main() {
	log := logger.New("migration")

	seedFlag := flag.Bool("seed", false, "seed development data after migrating")
	downFlag := flag.Bool("down", false, "roll back the most recent migration")
	flag.Parse()

	config, err := config.InitConfig()
	if err != nil {
		log.Er("failed to initialize config", err)
		os.Exit(1)
	}

	db, err := gorm.Open(sqlite.Open(config.DatabaseDbPath), &gorm.Config{})
	if err != nil {
		log.Er("failed to open database", err, "dbPath", config.DatabaseDbPath)
		os.Exit(1)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Er("failed to get database handle", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	source := &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationFiles,
		Root:       "migrations",
	}

	if *downFlag {
		applied, err := migrate.ExecMax(sqlDB, "sqlite3", source, migrate.Down, 1)
		if err != nil {
			log.Er("failed to roll back migration", err)
			os.Exit(1)
		}
		log.Info("migration rolled back", "count", applied)
		return
	}

	applied, err := migrate.Exec(sqlDB, "sqlite3", source, migrate.Up)
	if err != nil {
		log.Er("failed to apply migrations", err)
		os.Exit(1)
	}
	log.Info("migrations applied", "count", applied)

	if err := initialize.InitializeTables(db, config, log); err != nil {
		log.Er("failed to initialize tables", err)
		os.Exit(1)
	}

	if *seedFlag || config.Environment == "development" {
		if err := seed.Seed(db, config, log); err != nil {
			log.Er("failed to seed data", err)
			os.Exit(1)
		}
	}
}
