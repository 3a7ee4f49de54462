// Command-line tool to create an employer or applicant account with its profile.
package main

import (
	"JobBoard-backend/internal/config"
	"JobBoard-backend/internal/database"
	"JobBoard-backend/internal/policy"
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	v, _ := reader.ReadString('\n')
	return strings.TrimSpace(v)
}

func main() {
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("Creating user account")
	username := prompt(reader, "Enter username: ")
	role := prompt(reader, "Enter user type (EMPLOYER/APPLICANT): ")
	password1 := prompt(reader, "Enter password: ")
	password2 := prompt(reader, "Confirm password: ")

	if password1 != password2 {
		fmt.Println("Passwords do not match.")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}
	db, err := database.GetMainDB(cfg)
	if err != nil {
		log.WithError(err).Fatal("database failed to initialize")
	}
	defer func() { _ = db.Close() }()

	reg, err := policy.NewPolicy(db).Register(context.Background(), policy.RegisterInput{
		Username: username,
		Password: password1,
		Role:     role,
	})
	if err != nil {
		fmt.Printf("Failed to create user: %s\n", err)
		os.Exit(1)
	}

	fmt.Printf("Created %s user %s (%s)\n", reg.User.Role, reg.User.Username, reg.User.ID)
}
