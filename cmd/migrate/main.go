// Command migrate applies the SQL migrations under db/migrations to the
// configured database and reports the resulting schema version. It connects
// through database/sql directly so it can run before the API server starts,
// regardless of the AUTO_MIGRATE setting.
package main

import (
	"database/sql"
	"log"
	"os"

	"budgetflow/internal/config"
	"budgetflow/internal/database"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to open database connection: %v", err)
	}
	defer db.Close()

	runner := database.NewMigrationRunner(db)

	if err := runner.WaitForDatabase(); err != nil {
		log.Fatalf("Database readiness check failed: %v", err)
	}

	if len(os.Args) > 1 && os.Args[1] == "status" {
		version, dirty, err := runner.GetMigrationStatus()
		if err != nil {
			log.Fatalf("Failed to get migration status: %v", err)
		}
		log.Printf("Migration status - Version: %d, Dirty: %v", version, dirty)
		return
	}

	if err := runner.RunMigrations(); err != nil {
		log.Fatalf("Migration execution failed: %v", err)
	}
}
