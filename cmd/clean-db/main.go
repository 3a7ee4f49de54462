// Command-line tool to clean the database by dropping all tables in the public schema.
package main

import (
	"JobBoard-backend/internal/config"
	"JobBoard-backend/internal/database"
	"bufio"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

const dropAllTables = `
	DO $$
		DECLARE
			r RECORD;
		BEGIN
			FOR r IN (SELECT tablename FROM pg_tables WHERE schemaname = 'public') LOOP
				EXECUTE 'DROP TABLE IF EXISTS ' || quote_ident(r.tablename) || ' CASCADE';
			END LOOP;
		END $$;
	`

func main() {
	fmt.Println("WARNING: This command will DROP ALL TABLES in the 'public' schema of your database.")
	fmt.Println("This action is irreversible. Do you want to continue? (yes/no): ")

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		log.WithError(err).Fatal("failed to read input")
	}
	input = strings.TrimSpace(strings.ToLower(input))

	if input != "yes" {
		fmt.Println("Operation cancelled.")
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	// Connecting migrates, so the schema is dropped right after it is ensured
	db, err := database.GetMainDB(cfg)
	if err != nil {
		log.WithError(err).Fatal("database failed to initialize")
	}
	defer func() { _ = db.Close() }()

	if err := db.Exec(dropAllTables).Error; err != nil {
		log.WithError(err).Fatal("failed to execute drop command")
	}

	fmt.Println("All tables dropped successfully.")
}
