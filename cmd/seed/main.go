package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/jwtpizza/pizza-backend/config"
	"github.com/jwtpizza/pizza-backend/internal/app/model"
	"github.com/jwtpizza/pizza-backend/internal/app/repository"
	"github.com/jwtpizza/pizza-backend/internal/db"
	"github.com/jwtpizza/pizza-backend/pkg/util"
	"gorm.io/gorm"
)

var defaultMenu = []model.MenuItem{
	{Title: "Veggie", Description: "A garden of delight", Image: "pizza1.png", Price: 0.0038},
	{Title: "Pepperoni", Description: "Spicy treat", Image: "pizza2.png", Price: 0.0042},
	{Title: "Margarita", Description: "Essential classic", Image: "pizza3.png", Price: 0.0042},
	{Title: "Crusty", Description: "A dry mouthed favorite", Image: "pizza4.png", Price: 0.0028},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	userRepo := repository.NewUserRepository(db.GetDB())
	menuRepo := repository.NewMenuRepository(db.GetDB())

	adminEmail := getEnv("ADMIN_EMAIL", "a@jwt.com")
	adminPassword := getEnv("ADMIN_PASSWORD", "admin")

	if _, err := userRepo.FindByEmail(adminEmail); err == nil {
		fmt.Printf("Admin user %s already exists, skipping\n", adminEmail)
	} else if errors.Is(err, gorm.ErrRecordNotFound) {
		hash, err := util.HashPassword(adminPassword)
		if err != nil {
			log.Fatal("Failed to hash admin password:", err)
		}
		admin := &model.User{
			Name:         "Pizza Admin",
			Email:        adminEmail,
			PasswordHash: hash,
			Roles:        []model.UserRole{{Role: model.RoleAdmin}},
		}
		if err := userRepo.Create(admin); err != nil {
			log.Fatal("Failed to create admin user:", err)
		}
		fmt.Printf("Created admin user %s (id=%d)\n", adminEmail, admin.ID)
	} else {
		log.Fatal("Failed to look up admin user:", err)
	}

	menu, err := menuRepo.List()
	if err != nil {
		log.Fatal("Failed to read menu:", err)
	}
	if len(menu) > 0 {
		fmt.Printf("Menu already has %d items, skipping\n", len(menu))
		return
	}

	for i := range defaultMenu {
		if err := menuRepo.Create(&defaultMenu[i]); err != nil {
			log.Fatal("Failed to create menu item:", err)
		}
	}
	fmt.Printf("Seeded %d menu items\n", len(defaultMenu))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
