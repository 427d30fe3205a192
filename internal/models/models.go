package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product availability states.
const (
	AvailabilityAvailable   = "available"
	AvailabilityOutOfStock  = "out_of_stock"
	AvailabilityMadeToOrder = "made_to_order"
)

// ValidAvailability reports whether s is one of the known availability states.
func ValidAvailability(s string) bool {
	switch s {
	case AvailabilityAvailable, AvailabilityOutOfStock, AvailabilityMadeToOrder:
		return true
	}
	return false
}

type Product struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Image        string          `json:"image"` // stored filename under the upload dir, empty if none
	Availability string          `json:"availability"`
	Size         string          `json:"size"`
	Color        string          `json:"color"`
	CreatedAt    time.Time       `json:"created_at"`
}

type CustomOrder struct {
	ID          int       `json:"id"`
	ProductType string    `json:"product_type"`
	Material    string    `json:"material"`
	Color       string    `json:"color"`
	Occasion    string    `json:"occasion"`
	Size        string    `json:"size"`
	Notes       string    `json:"notes"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	CreatedAt   time.Time `json:"created_at"`
}

type Admin struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // bcrypt hash
}

type Settings struct {
	ID             int    `json:"id"`
	WhatsAppNumber string `json:"whatsapp_number"`
}
