// Command seedadmin creates the initial admin account from ADMIN_EMAIL,
// ADMIN_PASSWORD and ADMIN_NAME. It is idempotent: an existing account with
// the same email is left untouched.
package main

import (
	"context"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"inkpress/config"
	"inkpress/db"
	"inkpress/internal/logger"
	"inkpress/models"
	"inkpress/repositories"
)

func main() {
	config.InitApp()
	logger.InitFromEnv("LOG_LEVEL")

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		logger.Log.Error("ADMIN_EMAIL and ADMIN_PASSWORD must be defined")
		os.Exit(1)
	}
	name := os.Getenv("ADMIN_NAME")
	if name == "" {
		name = "Admin User"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, database, err := db.Connect(ctx, config.MongoURI(), config.MongoDBName())
	if err != nil {
		logger.Log.Errorf("failed to initialize MongoDB: %v", err)
		os.Exit(1)
	}
	defer client.Disconnect(ctx)

	users := repositories.NewUserRepository(database)

	existing, err := users.FindByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorf("failed to look up admin: %v", err)
		os.Exit(1)
	}
	if existing != nil {
		logger.Log.Infof("admin user %s already exists", existing.Email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorf("failed to hash password: %v", err)
		os.Exit(1)
	}

	admin := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if _, err := users.Insert(ctx, admin); err != nil {
		logger.Log.Errorf("failed to create admin: %v", err)
		os.Exit(1)
	}

	logger.Log.Infof("admin user %s created, change the default password after first login", admin.Email)
}
