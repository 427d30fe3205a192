package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/athanas-ai/nakhasbit/internal/models"
	"github.com/athanas-ai/nakhasbit/internal/store"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	addAdminCmd := flag.NewFlagSet("add-admin", flag.ExitOnError)
	addUsername := addAdminCmd.String("username", "", "Username for the new admin")
	addPassword := addAdminCmd.String("password", "", "Password for the new admin")

	resetCmd := flag.NewFlagSet("reset-password", flag.ExitOnError)
	resetUsername := resetCmd.String("username", "", "Admin username to reset")
	resetPassword := resetCmd.String("password", "", "New password")

	if len(os.Args) < 2 {
		fmt.Println("expected 'add-admin', 'reset-password' or 'seed-samples' subcommand")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add-admin":
		addAdminCmd.Parse(os.Args[2:])
		if *addUsername == "" || *addPassword == "" {
			fmt.Println("username and password are required")
			addAdminCmd.PrintDefaults()
			os.Exit(1)
		}
		addAdmin(*addUsername, *addPassword)
	case "reset-password":
		resetCmd.Parse(os.Args[2:])
		if *resetUsername == "" || *resetPassword == "" {
			fmt.Println("username and password are required")
			resetCmd.PrintDefaults()
			os.Exit(1)
		}
		resetAdminPassword(*resetUsername, *resetPassword)
	case "seed-samples":
		seedSampleProducts()
	default:
		fmt.Println("expected 'add-admin', 'reset-password' or 'seed-samples' subcommand")
		os.Exit(1)
	}
}

func openStore() *store.Store {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./baskets.db"
	}

	db, err := store.NewStore(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	// Ensure tables exist if running cli before server
	if err := db.InitSchema(); err != nil {
		log.Fatalf("Failed to init schema: %v", err)
	}
	return db
}

func addAdmin(username, password string) {
	db := openStore()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	if err := db.CreateAdmin(username, string(hash)); err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	fmt.Printf("Admin '%s' created successfully.\n", username)
}

func resetAdminPassword(username, password string) {
	db := openStore()

	admin, err := db.GetAdminByUsername(username)
	if err != nil {
		log.Fatalf("Failed to look up admin: %v", err)
	}
	if admin == nil {
		log.Fatalf("No admin with username '%s'", username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	if err := db.UpdateAdminCredentials(admin.ID, admin.Username, string(hash)); err != nil {
		log.Fatalf("Failed to reset password: %v", err)
	}

	fmt.Printf("Password for '%s' reset successfully.\n", username)
}

// seedSampleProducts inserts a starter catalog of handwoven baskets.
// Products whose names already exist are skipped, so running it against a
// populated database adds nothing twice.
func seedSampleProducts() {
	db := openStore()

	samples := []models.Product{
		{
			Name:         "Small Storage Basket",
			Description:  "Perfect for organizing small items, handwoven with natural materials.",
			Price:        decimal.RequireFromString("12.99"),
			Availability: models.AvailabilityAvailable,
			Size:         "Small (20cm diameter)",
			Color:        "Natural",
		},
		{
			Name:         "Medium Gift Basket",
			Description:  "Ideal for gift wrapping or home decoration, beautifully crafted.",
			Price:        decimal.RequireFromString("24.99"),
			Availability: models.AvailabilityAvailable,
			Size:         "Medium (30cm diameter)",
			Color:        "Brown",
		},
		{
			Name:         "Large Laundry Basket",
			Description:  "Spacious and sturdy, great for laundry or storage needs.",
			Price:        decimal.RequireFromString("34.99"),
			Availability: models.AvailabilityAvailable,
			Size:         "Large (45cm diameter)",
			Color:        "Natural",
		},
		{
			Name:         "Decorative Wall Basket",
			Description:  "Beautiful wall hanging basket for home decoration.",
			Price:        decimal.RequireFromString("18.50"),
			Availability: models.AvailabilityAvailable,
			Size:         "Medium (25cm diameter)",
			Color:        "Mixed",
		},
		{
			Name:         "Picnic Basket with Handles",
			Description:  "Classic picnic basket with comfortable handles, perfect for outings.",
			Price:        decimal.RequireFromString("45.00"),
			Availability: models.AvailabilityMadeToOrder,
			Size:         "Large (40cm x 30cm)",
			Color:        "Natural",
		},
		{
			Name:         "Pet Bed Basket",
			Description:  "Cozy basket bed for small pets, lined with soft material.",
			Price:        decimal.RequireFromString("29.99"),
			Availability: models.AvailabilityAvailable,
			Size:         "Medium (35cm diameter)",
			Color:        "Brown",
		},
	}

	existing, err := db.GetAllProducts()
	if err != nil {
		log.Fatalf("Failed to list products: %v", err)
	}
	taken := make(map[string]bool, len(existing))
	for _, p := range existing {
		taken[p.Name] = true
	}

	added := 0
	for i := range samples {
		if taken[samples[i].Name] {
			continue
		}
		if err := db.CreateProduct(&samples[i]); err != nil {
			log.Fatalf("Failed to create sample product '%s': %v", samples[i].Name, err)
		}
		added++
	}

	fmt.Printf("Seeded %d sample products (%d already present).\n", added, len(samples)-added)
}
