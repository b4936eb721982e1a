package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"result-portal/app/config"
	"result-portal/app/database"
	"result-portal/app/services"
)

func main() {
	username := flag.String("username", "", "admin username")
	password := flag.String("password", "", "admin password")
	flag.Parse()

	if *username == "" || *password == "" {
		log.Fatal("Both -username and -password are required")
	}

	// Initialize database connection
	config.Load()
	config.InitDB()
	defer config.GetDB().Close()

	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	hashed, err := services.HashPassword(*password)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	store := database.NewAdminStore(config.GetDB())
	admin, err := store.Create(*username, hashed)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateUsername) {
			log.Fatalf("Admin with username %q already exists", *username)
		}
		log.Fatal("Error creating admin:", err)
	}

	fmt.Printf("Admin created successfully: %s (%s)\n", admin.Username, admin.ID)
}
